// Package id generates compact unique identifiers for stored entities.
package id

import (
	"crypto/rand"
	"encoding/base32"
	"fmt"
	"strings"
)

// encoding is unpadded standard base32; identifiers are lowercased for
// URL and log friendliness.
var encoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// NewID returns a 26-character lowercase base32 identifier backed by a
// random UUIDv4.
func NewID() (string, error) {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}

	// UUIDv4 version and variant bits.
	b[6] = (b[6] & 0x0F) | 0x40
	b[8] = (b[8] & 0x3F) | 0x80

	return strings.ToLower(encoding.EncodeToString(b[:])), nil
}
