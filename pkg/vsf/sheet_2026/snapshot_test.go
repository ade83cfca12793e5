package sheet_2026

import (
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veilsheet/veilsheet/internal/cachedir"
)

func TestSnapshotRoundTrip(t *testing.T) {
	t.Setenv("VEILSHEET_CACHE_DIR", t.TempDir())

	source := "https://sheets.example.com/guests.csv"
	data := []byte(guestFixture)

	require.NoError(t, SaveSnapshot(source, data, nil))

	loaded, err := LoadSnapshot(source, nil)
	require.NoError(t, err)
	assert.Equal(t, data, loaded)
}

func TestSnapshotSourceMismatch(t *testing.T) {
	t.Setenv("VEILSHEET_CACHE_DIR", t.TempDir())

	require.NoError(t, SaveSnapshot("https://a.example.com/s.csv", []byte("x,y\n"), nil))

	_, err := LoadSnapshot("https://b.example.com/s.csv", nil)
	assert.Error(t, err)
}

func TestSnapshotStaleMarkerRejected(t *testing.T) {
	t.Setenv("VEILSHEET_CACHE_DIR", t.TempDir())

	source := "https://sheets.example.com/guests.csv"
	require.NoError(t, SaveSnapshot(source, []byte(guestFixture), nil))

	// Backdate the marker past the staleness window
	markerFile := cachedir.SnapshotPath(source) + ".marker"
	raw, err := os.ReadFile(markerFile)
	require.NoError(t, err)

	var marker cachedir.SnapshotMarker
	require.NoError(t, json.Unmarshal(raw, &marker))
	marker.Timestamp = time.Now().UTC().Add(-cachedir.MaxSnapshotAge - time.Hour)

	raw, err = json.Marshal(marker)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(markerFile, raw, 0o644))

	_, err = LoadSnapshot(source, nil)
	assert.Error(t, err)
}

func TestSnapshotCorruptPayloadRejected(t *testing.T) {
	t.Setenv("VEILSHEET_CACHE_DIR", t.TempDir())

	source := "https://sheets.example.com/guests.csv"
	require.NoError(t, SaveSnapshot(source, []byte(guestFixture), nil))

	path := cachedir.SnapshotPath(source)
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	raw[len(raw)-1] ^= 0xFF
	require.NoError(t, os.WriteFile(path, raw, 0o644))

	_, err = LoadSnapshot(source, nil)
	assert.Error(t, err)
}
