// Package compression transparently decompresses gzip, xz and bzip2
// streams with a size limit on the decompressed output.
package compression

import (
	"bufio"
	"bytes"
	"compress/bzip2"
	"compress/gzip"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/jmylchreest/legible/internal/security"
	"github.com/ulikunitz/xz"
)

// DefaultMaxBytes caps decompressed output.
const DefaultMaxBytes = 100 * 1024 * 1024

// Format is a compression format.
type Format string

const (
	FormatNone  Format = ""
	FormatGzip  Format = "gzip"
	FormatXz    Format = "xz"
	FormatBzip2 Format = "bzip2"
)

var (
	gzipMagic  = []byte{0x1f, 0x8b}
	xzMagic    = []byte{0xfd, '7', 'z', 'X', 'Z', 0x00}
	bzip2Magic = []byte{'B', 'Z', 'h'}
)

// FormatFromName detects the format from a file extension.
func FormatFromName(name string) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".gz", ".gzip":
		return FormatGzip
	case ".xz":
		return FormatXz
	case ".bz2":
		return FormatBzip2
	default:
		return FormatNone
	}
}

// TrimExt strips a compression extension from name, so "a.json.gz" becomes
// "a.json".
func TrimExt(name string) string {
	if FormatFromName(name) == FormatNone {
		return name
	}
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// Sniff detects the format from leading magic bytes.
func Sniff(header []byte) Format {
	switch {
	case bytes.HasPrefix(header, gzipMagic):
		return FormatGzip
	case bytes.HasPrefix(header, xzMagic):
		return FormatXz
	case bytes.HasPrefix(header, bzip2Magic):
		return FormatBzip2
	default:
		return FormatNone
	}
}

// NewReader returns a reader yielding the decompressed content of r. The
// format is sniffed from the stream; plain data passes through unchanged.
// Reads fail with security.ErrSizeLimit beyond maxBytes of output.
func NewReader(r io.Reader, maxBytes int64) (io.Reader, Format, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}

	br := bufio.NewReader(r)
	header, err := br.Peek(len(xzMagic))
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, FormatNone, fmt.Errorf("failed to read header: %w", err)
	}

	format := Sniff(header)
	var dr io.Reader
	switch format {
	case FormatGzip:
		gzr, err := gzip.NewReader(br)
		if err != nil {
			return nil, format, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		dr = gzr
	case FormatXz:
		xzr, err := xz.NewReader(br)
		if err != nil {
			return nil, format, fmt.Errorf("failed to create xz reader: %w", err)
		}
		dr = xzr
	case FormatBzip2:
		dr = bzip2.NewReader(br)
	default:
		dr = br
	}

	return security.NewLimitedReader(dr, maxBytes), format, nil
}

// ReadAll decompresses r fully.
func ReadAll(r io.Reader, maxBytes int64) ([]byte, Format, error) {
	dr, format, err := NewReader(r, maxBytes)
	if err != nil {
		return nil, format, err
	}
	data, err := io.ReadAll(dr)
	if err != nil {
		return nil, format, fmt.Errorf("failed to decompress %s data: %w", formatName(format), err)
	}
	return data, format, nil
}

func formatName(f Format) string {
	if f == FormatNone {
		return "plain"
	}
	return string(f)
}
