package capture

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Cache keeps downloaded captures on disk, keyed by URL.
type Cache struct {
	Dir string
}

// DefaultCacheDir returns the per-user capture cache directory.
func DefaultCacheDir() (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		home, herr := os.UserHomeDir()
		if herr != nil {
			return "", fmt.Errorf("failed to determine cache directory: %w", err)
		}
		dir = filepath.Join(home, ".cache")
	}
	return filepath.Join(dir, "legible", "captures"), nil
}

// Path returns the file a URL is cached in. The name is a hash of the URL
// plus its image extension, so query strings never reach the filesystem.
func (c Cache) Path(url string) string {
	sum := sha256.Sum256([]byte(url))
	name := hex.EncodeToString(sum[:16])

	ext := strings.ToLower(filepath.Ext(url))
	if i := strings.IndexAny(ext, "?#"); i >= 0 {
		ext = ext[:i]
	}
	if !IsImageFile("x" + ext) {
		ext = ".img"
	}
	return filepath.Join(c.Dir, name+ext)
}

// Get returns the cached bytes for a URL.
func (c Cache) Get(url string) ([]byte, bool) {
	data, err := os.ReadFile(c.Path(url))
	if err != nil || len(data) == 0 {
		return nil, false
	}
	return data, true
}

// Put stores the bytes for a URL.
func (c Cache) Put(url string, data []byte) error {
	if err := os.MkdirAll(c.Dir, 0o750); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}
	if err := os.WriteFile(c.Path(url), data, 0o600); err != nil {
		return fmt.Errorf("failed to write cached capture: %w", err)
	}
	return nil
}
