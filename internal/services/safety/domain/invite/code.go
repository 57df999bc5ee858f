package invite

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"

	apperrors "github.com/festsafe/festsafe/internal/platform/errors"
)

// CodeAlphabet excludes ambiguous characters (I, L, O, 0, 1) so codes
// survive being read aloud or scrawled on a wristband.
const CodeAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

// CodeLength is the number of characters in a generated code.
const CodeLength = 6

// MaxCodeAttempts bounds allocation retries before giving up.
const MaxCodeAttempts = 10

// GenerateCode returns a random candidate code. Uniqueness is enforced by
// the code index, not here.
func GenerateCode() (string, error) {
	max := big.NewInt(int64(len(CodeAlphabet)))
	var b strings.Builder
	b.Grow(CodeLength)
	for i := 0; i < CodeLength; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("read random index: %w", err)
		}
		b.WriteByte(CodeAlphabet[n.Int64()])
	}
	return b.String(), nil
}

// NormalizeCode canonicalizes user-entered codes: trim then uppercase.
// Lookup and storage both go through this, so entry is case-insensitive.
func NormalizeCode(value string) string {
	return strings.ToUpper(strings.TrimSpace(value))
}

// ValidateCode normalizes a code and rejects empty input.
func ValidateCode(value string) (string, error) {
	code := NormalizeCode(value)
	if code == "" {
		return "", apperrors.New(apperrors.CodeInviteCodeRequired, "invite code is required")
	}
	return code, nil
}
