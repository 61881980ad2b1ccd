package compression

import (
	"bytes"
	"compress/gzip"
	"errors"
	"strings"
	"testing"

	"github.com/jmylchreest/legible/internal/security"
	"github.com/ulikunitz/xz"
)

func gzipped(t *testing.T, s string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	if _, err := w.Write([]byte(s)); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func xzipped(t *testing.T, s string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w, err := xz.NewWriter(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := w.Write([]byte(s)); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestReadAll(t *testing.T) {
	const payload = `{"windows":[]}`

	tests := []struct {
		name   string
		data   []byte
		format Format
	}{
		{"plain", []byte(payload), FormatNone},
		{"gzip", gzipped(t, payload), FormatGzip},
		{"xz", xzipped(t, payload), FormatXz},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, format, err := ReadAll(bytes.NewReader(tt.data), 0)
			if err != nil {
				t.Fatalf("ReadAll() error: %v", err)
			}
			if format != tt.format {
				t.Errorf("format = %q, want %q", format, tt.format)
			}
			if string(got) != payload {
				t.Errorf("ReadAll() = %q, want %q", got, payload)
			}
		})
	}
}

func TestReadAllShortInput(t *testing.T) {
	got, format, err := ReadAll(strings.NewReader("{}"), 0)
	if err != nil {
		t.Fatalf("ReadAll() error: %v", err)
	}
	if format != FormatNone || string(got) != "{}" {
		t.Errorf("ReadAll() = %q (%q)", got, format)
	}
}

func TestReadAllSizeLimit(t *testing.T) {
	data := gzipped(t, strings.Repeat("a", 4096))
	if _, _, err := ReadAll(bytes.NewReader(data), 1024); !errors.Is(err, security.ErrSizeLimit) {
		t.Errorf("expected size limit error, got %v", err)
	}
}

func TestFormatFromName(t *testing.T) {
	tests := map[string]Format{
		"snap.json.gz":  FormatGzip,
		"snap.yaml.xz":  FormatXz,
		"snap.json.BZ2": FormatBzip2,
		"snap.json":     FormatNone,
	}
	for name, want := range tests {
		if got := FormatFromName(name); got != want {
			t.Errorf("FormatFromName(%q) = %q, want %q", name, got, want)
		}
	}
	if got := TrimExt("snap.yaml.xz"); got != "snap.yaml" {
		t.Errorf("TrimExt() = %q", got)
	}
	if got := TrimExt("snap.yaml"); got != "snap.yaml" {
		t.Errorf("TrimExt() = %q", got)
	}
}
