// Package cachedir manages the on-disk cache of fetched sheet snapshots
package cachedir

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"runtime"
)

// SnapshotPath returns the cache path for a sheet source URL. The file name is
// derived from a hash of the source so unrelated sheets never collide.
func SnapshotPath(source string) string {
	h := sha256.New()
	h.Write([]byte(source))
	identifier := hex.EncodeToString(h.Sum(nil))[:16]

	return filepath.Join(CacheRoot(), identifier+".vsnap")
}

// CacheRoot returns the root cache directory
func CacheRoot() string {
	// Check environment variable first
	if cacheDir := os.Getenv("VEILSHEET_CACHE_DIR"); cacheDir != "" {
		return cacheDir
	}

	// Use platform-specific defaults
	switch runtime.GOOS {
	case "darwin":
		if home := os.Getenv("HOME"); home != "" {
			return filepath.Join(home, "Library", "Caches", "veilsheet")
		}
	case "linux":
		if xdgCache := os.Getenv("XDG_CACHE_HOME"); xdgCache != "" {
			return filepath.Join(xdgCache, "veilsheet")
		}
		if home := os.Getenv("HOME"); home != "" {
			return filepath.Join(home, ".cache", "veilsheet")
		}
	case "windows":
		if localAppData := os.Getenv("LOCALAPPDATA"); localAppData != "" {
			return filepath.Join(localAppData, "veilsheet", "cache")
		}
	}

	// Last resort: a dot directory next to the working directory
	return filepath.Join(".", ".veilsheet-cache")
}

// EnsureCacheRoot creates the cache root if it does not exist yet
func EnsureCacheRoot() (string, error) {
	root := CacheRoot()
	if err := os.MkdirAll(root, 0o755); err != nil {
		return "", err
	}
	return root, nil
}
