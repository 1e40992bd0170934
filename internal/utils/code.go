package utils // package utils provides helpers for code generation and token issuing

import (
	"crypto/rand" // secure random selection from the code alphabet
	"math/big"
	"strconv"
	"strings"
	"time"
)

// codeAlphabet is the character set for the random portion of a
// redemption code.  Upper-case letters and digits only so codes stay
// easy to read aloud and type.
const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// DefaultCodePrefix is used when neither the caller nor a product
// supplies a prefix.
const DefaultCodePrefix = "AMP"

// MaxCodeAttempts bounds the collision retry loop around
// GenerateShortCode.  The scheme is probabilistic (four random
// characters plus a time-correlated suffix) so collisions are rare but
// possible; callers give up after this many tries.
const MaxCodeAttempts = 10

// GenerateShortCode produces one candidate redemption code of the form
// "<prefix>-<4 random alphanumerics><last 4 digits of epoch millis>".
// Uniqueness is NOT guaranteed; the caller must check storage and
// retry on collision.
func GenerateShortCode(prefix string) (string, error) {
	if prefix == "" {
		prefix = DefaultCodePrefix
	}
	random := make([]byte, 4)
	alphabetLen := big.NewInt(int64(len(codeAlphabet)))
	for i := range random {
		n, err := rand.Int(rand.Reader, alphabetLen)
		if err != nil {
			return "", err
		}
		random[i] = codeAlphabet[n.Int64()]
	}
	millis := strconv.FormatInt(time.Now().UnixMilli(), 10)
	return prefix + "-" + string(random) + millis[len(millis)-4:], nil
}

// CodePrefix resolves the prefix for a product's codes: the caller's
// custom prefix when given, otherwise the first three characters of the
// product code upper-cased.
func CodePrefix(productCode, custom string) string {
	if custom != "" {
		return custom
	}
	if len(productCode) >= 3 {
		return strings.ToUpper(productCode[:3])
	}
	if productCode != "" {
		return strings.ToUpper(productCode)
	}
	return DefaultCodePrefix
}
