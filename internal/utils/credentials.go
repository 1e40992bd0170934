package utils

import (
	"crypto/subtle"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Identity describes a successfully verified caller.
type Identity struct {
	Role     string // "admin" or "user"
	Username string
	Name     string // display name shown by the front end
}

// CredentialVerifier checks a username/password pair against a role.
// The shipped implementation is a static pair from configuration;
// keeping it behind an interface means real authentication can replace
// it without touching the login handler.
type CredentialVerifier interface {
	Verify(username, password, role string) (Identity, bool)
}

// StaticVerifier accepts one fixed admin credential pair and one shared
// user password.  AdminPassword may be stored either in clear text or
// as a bcrypt hash.
type StaticVerifier struct {
	AdminUsername string
	AdminPassword string
	UserPassword  string
}

// Verify implements CredentialVerifier.  Admin logins require the exact
// configured pair; user logins require only the shared user password,
// and the supplied username becomes the display identity.
func (v StaticVerifier) Verify(username, password, role string) (Identity, bool) {
	if role == "admin" {
		if username == v.AdminUsername && passwordMatches(v.AdminPassword, password) {
			return Identity{Role: "admin", Username: v.AdminUsername, Name: "Administrator"}, true
		}
		return Identity{}, false
	}
	if passwordMatches(v.UserPassword, password) {
		name := username
		if name == "" {
			name = "User"
		}
		ident := Identity{Role: "user", Username: username, Name: name}
		if ident.Username == "" {
			ident.Username = "user"
		}
		return ident, true
	}
	return Identity{}, false
}

// passwordMatches compares a stored secret with a supplied password.
// Stored bcrypt hashes are compared with bcrypt; anything else is
// compared in constant time.
func passwordMatches(stored, supplied string) bool {
	if strings.HasPrefix(stored, "$2") {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(supplied)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(supplied)) == 1
}
