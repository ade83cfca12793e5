package sheet_2026

import (
	"encoding/binary"
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"

	"github.com/veilsheet/veilsheet/internal/cachedir"
	"github.com/veilsheet/veilsheet/pkg/vsf/operations"

	// Register the compression operations the snapshot chains rely on
	_ "github.com/veilsheet/veilsheet/pkg/vsf/operations/compress"
)

// DefaultSnapshotChain compresses cached sheets. Zstandard is the best
// ratio/speed trade-off for repetitive CSV text.
const DefaultSnapshotChain = "zstd"

// Snapshot file layout: 8 bytes of packed operation chain (little-endian),
// then the chained payload. The marker file next to it carries provenance and
// the checksum of the uncompressed sheet.

// SaveSnapshot stores a fetched sheet in the cache for offline fallback
func SaveSnapshot(source string, data []byte, logger hclog.Logger) error {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	if _, err := cachedir.EnsureCacheRoot(); err != nil {
		return fmt.Errorf("creating cache root: %w", err)
	}

	packed, err := operations.StringToOperations(DefaultSnapshotChain)
	if err != nil {
		return fmt.Errorf("resolving snapshot chain: %w", err)
	}
	ops := operations.UnpackOperations(packed)

	payload, err := operations.ApplyChain(data, ops)
	if err != nil {
		return fmt.Errorf("compressing snapshot: %w", err)
	}

	out := make([]byte, 8, 8+len(payload))
	binary.LittleEndian.PutUint64(out, packed)
	out = append(out, payload...)

	path := cachedir.SnapshotPath(source)
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}

	if err := cachedir.WriteMarker(path, source, cachedir.ComputeChecksum(data)); err != nil {
		return fmt.Errorf("writing snapshot marker: %w", err)
	}

	logger.Debug("💾 Snapshot cached",
		"source", source,
		"chain", operations.OperationsToString(packed),
		"raw_bytes", len(data),
		"stored_bytes", len(out),
	)
	return nil
}

// LoadSnapshot retrieves a cached sheet, verifying the marker and the
// checksum of the decompressed payload. Any inconsistency is reported as an
// error; the caller decides whether a stale miss is fatal.
func LoadSnapshot(source string, logger hclog.Logger) ([]byte, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	path := cachedir.SnapshotPath(source)
	checksum, ok := cachedir.IsValid(path, source)
	if !ok {
		return nil, fmt.Errorf("no valid snapshot for %s", source)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}
	if len(raw) < 8 {
		return nil, fmt.Errorf("snapshot truncated")
	}

	packed := binary.LittleEndian.Uint64(raw[:8])
	ops := operations.UnpackOperations(packed)

	data, err := operations.ReverseChain(raw[8:], ops)
	if err != nil {
		return nil, fmt.Errorf("decompressing snapshot: %w", err)
	}

	if !cachedir.VerifyChecksum(data, checksum) {
		return nil, fmt.Errorf("snapshot checksum mismatch")
	}

	logger.Debug("💾 Snapshot loaded", "source", source, "chain", operations.OperationsToString(packed))
	return data, nil
}
