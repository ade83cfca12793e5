// Snapshot validation markers, written next to each cached snapshot
package cachedir

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"strings"
	"time"
)

// MaxSnapshotAge is how long a cached snapshot stays usable as a fallback.
// Guest lists change in the run-up to the event; a month-old copy is worse
// than an honest failure.
const MaxSnapshotAge = 30 * 24 * time.Hour

// SnapshotMarker records provenance for a cached snapshot
type SnapshotMarker struct {
	Timestamp time.Time `json:"timestamp"`
	Source    string    `json:"source"`
	Checksum  string    `json:"checksum"`
}

func markerPath(snapshotPath string) string {
	return snapshotPath + ".marker"
}

// WriteMarker writes the validation marker for a snapshot. checksum is the
// prefixed checksum of the uncompressed sheet data.
func WriteMarker(snapshotPath, source, checksum string) error {
	marker := SnapshotMarker{
		Timestamp: time.Now().UTC(),
		Source:    source,
		Checksum:  checksum,
	}

	data, err := json.Marshal(marker)
	if err != nil {
		return err
	}

	return os.WriteFile(markerPath(snapshotPath), data, 0o644)
}

// IsValid checks whether a snapshot is present, matches its source and is not
// stale. It returns the recorded checksum so the caller can verify the
// decompressed payload.
func IsValid(snapshotPath, source string) (string, bool) {
	data, err := os.ReadFile(markerPath(snapshotPath))
	if err != nil {
		return "", false
	}

	var marker SnapshotMarker
	if err := json.Unmarshal(data, &marker); err != nil {
		return "", false
	}

	if marker.Source != source {
		return "", false
	}

	if time.Since(marker.Timestamp) > MaxSnapshotAge {
		return "", false
	}

	if _, err := os.Stat(snapshotPath); err != nil {
		return "", false
	}

	return marker.Checksum, true
}

// ComputeChecksum returns a prefixed checksum ("sha256:hex") of data
func ComputeChecksum(data []byte) string {
	sum := sha256.Sum256(data)
	return "sha256:" + hex.EncodeToString(sum[:])
}

// VerifyChecksum checks data against a prefixed checksum string. Unknown
// prefixes fail closed.
func VerifyChecksum(data []byte, checksum string) bool {
	if !strings.HasPrefix(checksum, "sha256:") {
		return false
	}
	return ComputeChecksum(data) == checksum
}
