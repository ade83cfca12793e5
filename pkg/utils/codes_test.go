package utils

import (
	"strings"
	"testing"
)

func TestGenerateCode(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 64; i++ {
		code, err := GenerateCode(6)
		if err != nil {
			t.Fatalf("GenerateCode failed: %v", err)
		}
		if len(code) != 6 {
			t.Fatalf("code %q has length %d, want 6", code, len(code))
		}
		for _, r := range code {
			if !strings.ContainsRune(CodeAlphabet, r) {
				t.Fatalf("code %q contains %q outside the alphabet", code, r)
			}
		}
		seen[code] = true
	}
	// 64 draws from a 31^6 space colliding would mean broken randomness.
	if len(seen) < 60 {
		t.Fatalf("only %d distinct codes out of 64", len(seen))
	}
}

func TestGenerateCodeRejectsShortLengths(t *testing.T) {
	if _, err := GenerateCode(3); err == nil {
		t.Fatal("expected error for a 3-character code")
	}
}

func TestNormalizeCode(t *testing.T) {
	if got := NormalizeCode("  ABC123\n"); got != "ABC123" {
		t.Fatalf("NormalizeCode = %q", got)
	}
	// Case is preserved: matching is exact.
	if got := NormalizeCode("abc123"); got != "abc123" {
		t.Fatalf("NormalizeCode = %q", got)
	}
}
