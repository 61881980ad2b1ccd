package capture

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format
	_ "image/jpeg" // Register JPEG format
	_ "image/png"  // Register PNG format
	"os"
	"path/filepath"
	"slices"
	"strings"

	_ "golang.org/x/image/webp" // Register WebP format

	"github.com/jmylchreest/legible/internal/security"
	httputil "github.com/jmylchreest/legible/internal/util/http"
)

// Loader loads a screen capture from a path.
type Loader interface {
	Load(ctx context.Context, path string) (*Screenshot, error)
}

// FileLoader loads captures from the local filesystem.
type FileLoader struct{}

// NewFileLoader creates a new FileLoader instance.
func NewFileLoader() *FileLoader {
	return &FileLoader{}
}

// Load loads a capture from a file path.
// Supported formats: JPEG, PNG, GIF, WebP.
func (l *FileLoader) Load(_ context.Context, path string) (*Screenshot, error) {
	if path == "" {
		return nil, fmt.Errorf("capture path cannot be empty")
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("capture file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to stat capture file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("path is a directory, not a file: %s", path)
	}

	file, err := os.Open(path) // #nosec G304 - User-specified capture path, intended to be read
	if err != nil {
		return nil, fmt.Errorf("failed to open capture file: %w", err)
	}
	defer file.Close()

	img, format, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode capture (format: %s): %w", format, err)
	}

	return New(img), nil
}

// SupportedImageExtensions returns a list of supported capture file extensions.
func SupportedImageExtensions() []string {
	return []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}
}

// IsImageFile checks if a file has a supported image extension.
func IsImageFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return slices.Contains(SupportedImageExtensions(), ext)
}

// SmartLoader loads captures from both local files and HTTP(S) URLs.
type SmartLoader struct {
	fileLoader *FileLoader

	// AllowInsecure permits plain HTTP URLs.
	AllowInsecure bool

	// Fetch configures remote requests.
	Fetch httputil.FetchOptions

	// Cache, when set, reuses earlier downloads of the same URL.
	Cache *Cache
}

// NewSmartLoader creates a new SmartLoader instance.
func NewSmartLoader() *SmartLoader {
	return &SmartLoader{
		fileLoader: NewFileLoader(),
	}
}

// Load loads a capture from either a local file path or HTTP(S) URL.
func (l *SmartLoader) Load(ctx context.Context, path string) (*Screenshot, error) {
	if isURL(path) {
		return l.loadFromURL(ctx, path)
	}
	return l.fileLoader.Load(ctx, path)
}

func (l *SmartLoader) loadFromURL(ctx context.Context, url string) (*Screenshot, error) {
	if err := security.ValidateHTTPURL(url, l.AllowInsecure); err != nil {
		return nil, err
	}

	data, err := l.fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode capture (format: %s): %w", format, err)
	}

	return New(img), nil
}

func (l *SmartLoader) fetch(ctx context.Context, url string) ([]byte, error) {
	if l.Cache != nil {
		if data, ok := l.Cache.Get(url); ok {
			return data, nil
		}
	}
	data, err := httputil.Fetch(ctx, url, l.Fetch)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch capture from URL: %w", err)
	}
	if l.Cache != nil {
		if err := l.Cache.Put(url, data); err != nil {
			return nil, err
		}
	}
	return data, nil
}

func isURL(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}
