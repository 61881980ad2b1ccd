// Package snapshot reads and writes serialized UI hierarchies.
package snapshot

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/legible/internal/compression"
	"github.com/jmylchreest/legible/internal/hierarchy"
)

// Encoding is a snapshot document encoding.
type Encoding string

const (
	EncodingAuto Encoding = ""
	EncodingJSON Encoding = "json"
	EncodingYAML Encoding = "yaml"
)

// EncodingFromName detects the encoding from a file name, ignoring any
// compression extension.
func EncodingFromName(name string) Encoding {
	switch strings.ToLower(filepath.Ext(compression.TrimExt(name))) {
	case ".json":
		return EncodingJSON
	case ".yaml", ".yml":
		return EncodingYAML
	default:
		return EncodingAuto
	}
}

// Load reads a snapshot file, decompressing it when needed.
func Load(path string) (*hierarchy.Snapshot, error) {
	f, err := os.Open(path) // #nosec G304 - User-specified snapshot path, intended to be read
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot: %w", err)
	}
	defer f.Close()

	snap, err := Decode(f, EncodingFromName(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return snap, nil
}

// Decode reads a possibly compressed snapshot document. EncodingAuto picks
// JSON when the document starts with '{' and YAML otherwise.
func Decode(r io.Reader, enc Encoding) (*hierarchy.Snapshot, error) {
	data, _, err := compression.ReadAll(r, compression.DefaultMaxBytes)
	if err != nil {
		return nil, err
	}

	if enc == EncodingAuto {
		enc = EncodingYAML
		if bytes.HasPrefix(bytes.TrimSpace(data), []byte("{")) {
			enc = EncodingJSON
		}
	}

	var snap hierarchy.Snapshot
	switch enc {
	case EncodingJSON:
		if err := json.Unmarshal(data, &snap); err != nil {
			return nil, fmt.Errorf("%w: %v", hierarchy.ErrInvalidSnapshot, err)
		}
	case EncodingYAML:
		if err := yaml.Unmarshal(data, &snap); err != nil {
			return nil, fmt.Errorf("%w: %v", hierarchy.ErrInvalidSnapshot, err)
		}
	default:
		return nil, fmt.Errorf("unknown snapshot encoding: %q", enc)
	}
	return &snap, nil
}

// Encode writes an uncompressed snapshot document.
func Encode(w io.Writer, snap *hierarchy.Snapshot, enc Encoding) error {
	switch enc {
	case EncodingJSON, EncodingAuto:
		e := json.NewEncoder(w)
		e.SetIndent("", "  ")
		return e.Encode(snap)
	case EncodingYAML:
		e := yaml.NewEncoder(w)
		e.SetIndent(2)
		if err := e.Encode(snap); err != nil {
			return err
		}
		return e.Close()
	default:
		return fmt.Errorf("unknown snapshot encoding: %q", enc)
	}
}
