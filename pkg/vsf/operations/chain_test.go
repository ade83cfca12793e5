// Tests for operation chain packing/unpacking and chain-string parsing
package operations

import (
	"fmt"
	"testing"

	"github.com/hashicorp/go-hclog"
)

// TestOperationPacking tests packing operations into 64-bit integers
func TestOperationPacking(t *testing.T) {
	logger := hclog.New(&hclog.LoggerOptions{
		Name:  "chain_test",
		Level: hclog.Trace,
	})

	testCases := []struct {
		name       string
		operations []uint8
		expected   uint64
	}{
		{
			name:       "empty/raw",
			operations: []uint8{},
			expected:   0x0,
		},
		{
			name:       "single GZIP",
			operations: []uint8{OP_GZIP},
			expected:   0x10,
		},
		{
			name:       "single ZSTD",
			operations: []uint8{OP_ZSTD},
			expected:   0x1b,
		},
		{
			name:       "cell chain BTEA + BASE64",
			operations: []uint8{OP_BTEA, OP_BASE64},
			expected:   0x5044,
		},
		{
			name:       "8 operations",
			operations: []uint8{1, 2, 3, 4, 5, 6, 7, 8},
			expected:   0x0807060504030201,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			packed, err := PackOperations(tc.operations)
			if err != nil {
				t.Fatalf("PackOperations(%v) failed: %v", tc.operations, err)
			}

			logger.Debug("📦 Packed operations",
				"input", tc.operations,
				"output", fmt.Sprintf("0x%016x", packed),
			)

			if packed != tc.expected {
				t.Errorf("PackOperations(%v) = 0x%016x, want 0x%016x",
					tc.operations, packed, tc.expected)
			}

			unpacked := UnpackOperations(packed)
			if len(unpacked) != len(tc.operations) {
				t.Fatalf("UnpackOperations(0x%016x) = %v, want %v", packed, unpacked, tc.operations)
			}
			for i := range unpacked {
				if unpacked[i] != tc.operations[i] {
					t.Errorf("UnpackOperations(0x%016x)[%d] = 0x%02x, want 0x%02x",
						packed, i, unpacked[i], tc.operations[i])
				}
			}
		})
	}
}

func TestPackOperationsRejectsLongChains(t *testing.T) {
	if _, err := PackOperations(make([]uint8, 9)); err == nil {
		t.Fatal("expected error packing a 9-operation chain")
	}
}

func TestChainStrings(t *testing.T) {
	testCases := []struct {
		opString string
		packed   uint64
	}{
		{"raw", 0x0},
		{"gzip", 0x10},
		{"bzip2", 0x13},
		{"xz", 0x16},
		{"zstd", 0x1b},
		{"cell", 0x5044},
		{"btea|base64", 0x5044},
	}

	for _, tc := range testCases {
		t.Run(tc.opString, func(t *testing.T) {
			packed, err := StringToOperations(tc.opString)
			if err != nil {
				t.Fatalf("StringToOperations(%q) failed: %v", tc.opString, err)
			}
			if packed != tc.packed {
				t.Errorf("StringToOperations(%q) = 0x%x, want 0x%x", tc.opString, packed, tc.packed)
			}
		})
	}

	if got := OperationsToString(0x5044); got != "cell" {
		t.Errorf("OperationsToString(0x5044) = %q, want %q", got, "cell")
	}
	if got := OperationsToString(0); got != "raw" {
		t.Errorf("OperationsToString(0) = %q, want %q", got, "raw")
	}

	if _, err := StringToOperations("rot13"); err == nil {
		t.Error("expected error for unknown operation string")
	}
}

func TestGetRefusesKeyedOperation(t *testing.T) {
	if _, err := Get(OP_BTEA); err == nil {
		t.Fatal("registry lookup of the keyed cipher must fail")
	}
}
