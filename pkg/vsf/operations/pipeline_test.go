// Round-trip tests exercising the registered operation implementations
package operations_test

import (
	"bytes"
	"testing"

	"github.com/veilsheet/veilsheet/pkg/vsf/operations"
	"github.com/veilsheet/veilsheet/pkg/vsf/operations/cipher"
	_ "github.com/veilsheet/veilsheet/pkg/vsf/operations/compress"
	"github.com/veilsheet/veilsheet/pkg/vsf/operations/encode"
)

var snapshotPayload = bytes.Repeat([]byte("code,name,party,events\nU+r7fflmw8DnhNnv,...\n"), 64)

func TestCompressionChainsRoundTrip(t *testing.T) {
	for _, chain := range []string{"gzip", "bzip2", "xz", "zstd"} {
		t.Run(chain, func(t *testing.T) {
			packed, err := operations.StringToOperations(chain)
			if err != nil {
				t.Fatalf("StringToOperations(%q) failed: %v", chain, err)
			}
			ops := operations.UnpackOperations(packed)

			compressed, err := operations.ApplyChain(snapshotPayload, ops)
			if err != nil {
				t.Fatalf("ApplyChain(%s) failed: %v", chain, err)
			}
			if bytes.Equal(compressed, snapshotPayload) {
				t.Fatalf("%s left the payload untouched", chain)
			}

			back, err := operations.ReverseChain(compressed, ops)
			if err != nil {
				t.Fatalf("ReverseChain(%s) failed: %v", chain, err)
			}
			if !bytes.Equal(back, snapshotPayload) {
				t.Fatalf("%s round trip mismatch", chain)
			}
		})
	}
}

func TestCellPipelineRoundTrip(t *testing.T) {
	key := []byte("ABC123")
	pipeline := []operations.Operation{
		cipher.NewBTEAOperation(key),
		encode.NewBase64Operation(),
	}

	sealed, err := operations.ApplyPipeline([]byte("ABC123"), pipeline)
	if err != nil {
		t.Fatalf("ApplyPipeline failed: %v", err)
	}
	// Pinned against the browser-side implementation.
	if string(sealed) != "U+r7fflmw8DnhNnv" {
		t.Fatalf("sealed cell = %q, want %q", sealed, "U+r7fflmw8DnhNnv")
	}

	back, err := operations.ReversePipeline(sealed, pipeline)
	if err != nil {
		t.Fatalf("ReversePipeline failed: %v", err)
	}
	if string(back) != "ABC123" {
		t.Fatalf("unsealed cell = %q, want %q", back, "ABC123")
	}
}

func TestCellPipelineWrongKey(t *testing.T) {
	sealedPipeline := []operations.Operation{
		cipher.NewBTEAOperation([]byte("WRONG1")),
		encode.NewBase64Operation(),
	}

	if _, err := operations.ReversePipeline([]byte("U+r7fflmw8DnhNnv"), sealedPipeline); err == nil {
		t.Fatal("expected integrity failure reversing with the wrong key")
	}
}
