// Package utils holds small helpers shared by the sealer and resolver.
package utils

import (
	"crypto/rand"
	"fmt"
	"strings"
)

// CodeAlphabet - uppercase letters and digits with the lookalikes removed
// (no I, L, O, 0, 1). Guests type these codes from paper invitations.
const CodeAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

// DefaultCodeLength is the invite code length used when the sealer manifest
// does not override it.
const DefaultCodeLength = 6

// EventKeyLength is the length of generated per-wedding event keys. The cipher
// only keys on the first 16 bytes, so longer keys would be wasted material.
const EventKeyLength = 16

// GenerateCode returns a random invite code of the given length
func GenerateCode(length int) (string, error) {
	if length < 4 {
		return "", fmt.Errorf("invite codes shorter than 4 characters are guessable, got %d", length)
	}

	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("reading randomness: %w", err)
	}

	var sb strings.Builder
	for _, b := range buf {
		sb.WriteByte(CodeAlphabet[int(b)%len(CodeAlphabet)])
	}
	return sb.String(), nil
}

// GenerateEventKey returns a random key for sealing the event sheet
func GenerateEventKey() (string, error) {
	return GenerateCode(EventKeyLength)
}

// NormalizeCode trims the whitespace that sneaks in when a code is copied out
// of a URL or typed from paper. Matching itself is exact; only the surrounding
// whitespace is glue and safe to strip.
func NormalizeCode(code string) string {
	return strings.TrimSpace(code)
}
