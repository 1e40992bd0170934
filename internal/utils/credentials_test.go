package utils

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func newVerifier() StaticVerifier {
	return StaticVerifier{
		AdminUsername: "admin",
		AdminPassword: "admin123",
		UserPassword:  "1",
	}
}

func TestVerifyAdmin(t *testing.T) {
	v := newVerifier()

	ident, ok := v.Verify("admin", "admin123", "admin")
	if !ok {
		t.Fatal("expected admin login to succeed")
	}
	if ident.Role != "admin" || ident.Name != "Administrator" {
		t.Fatalf("unexpected identity: %+v", ident)
	}

	if _, ok := v.Verify("admin", "wrong", "admin"); ok {
		t.Fatal("wrong admin password accepted")
	}
	if _, ok := v.Verify("other", "admin123", "admin"); ok {
		t.Fatal("wrong admin username accepted")
	}
	// The shared user password must never open the admin role.
	if _, ok := v.Verify("admin", "1", "admin"); ok {
		t.Fatal("user password accepted for admin role")
	}
}

func TestVerifyAdminBcryptHash(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	v := StaticVerifier{AdminUsername: "admin", AdminPassword: string(hash)}

	if _, ok := v.Verify("admin", "s3cret", "admin"); !ok {
		t.Fatal("bcrypt-hashed admin password rejected")
	}
	if _, ok := v.Verify("admin", "nope", "admin"); ok {
		t.Fatal("wrong password accepted against bcrypt hash")
	}
}

func TestVerifyUser(t *testing.T) {
	v := newVerifier()

	ident, ok := v.Verify("alice", "1", "user")
	if !ok {
		t.Fatal("expected user login to succeed")
	}
	if ident.Role != "user" || ident.Username != "alice" || ident.Name != "alice" {
		t.Fatalf("unexpected identity: %+v", ident)
	}

	ident, ok = v.Verify("", "1", "user")
	if !ok {
		t.Fatal("anonymous user login rejected")
	}
	if ident.Username != "user" || ident.Name != "User" {
		t.Fatalf("unexpected fallback identity: %+v", ident)
	}

	if _, ok := v.Verify("alice", "2", "user"); ok {
		t.Fatal("wrong user password accepted")
	}
}
