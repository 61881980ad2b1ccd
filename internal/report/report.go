// Package report presents text contrast results as tables or JSON
// documents.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jmylchreest/legible/internal/capture"
	"github.com/jmylchreest/legible/internal/check"
	"github.com/jmylchreest/legible/internal/colour"
)

// Entry is a result with its presentation fields.
type Entry struct {
	check.Result

	Outcome  string   `json:"outcome"`
	Message  string   `json:"message"`
	Priority *float64 `json:"priority,omitempty"`
	Evidence string   `json:"evidence,omitempty"`
}

// Summary counts results by outcome.
type Summary struct {
	Elements      int `json:"elements"`
	Failures      int `json:"failures"`
	Warnings      int `json:"warnings"`
	NotApplicable int `json:"not_applicable"`
}

// Document is a complete report for one run.
type Document struct {
	RunID     string    `json:"run_id"`
	Version   string    `json:"version,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	Snapshot  string    `json:"snapshot,omitempty"`
	Capture   string    `json:"capture,omitempty"`
	Summary   Summary   `json:"summary"`
	Entries   []Entry   `json:"results"`
}

// New builds a document for the results of evaluating the given number of
// elements. Entries keep the order of results.
func New(results []check.Result, elements int) *Document {
	doc := &Document{
		RunID:     uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		Summary:   Summary{Elements: elements},
		Entries:   make([]Entry, 0, len(results)),
	}
	for _, r := range results {
		e := Entry{
			Result:  r,
			Outcome: r.Outcome().String(),
			Message: Message(r),
		}
		if p, ok := check.SecondaryPriority(r); ok {
			e.Priority = &p
		}
		switch r.Outcome() {
		case check.OutcomeFail:
			doc.Summary.Failures++
		case check.OutcomeWarning:
			doc.Summary.Warnings++
		default:
			doc.Summary.NotApplicable++
		}
		doc.Entries = append(doc.Entries, e)
	}
	return doc
}

// HasFailures reports whether any entry is an error.
func (d *Document) HasFailures() bool {
	return d.Summary.Failures > 0
}

// SortByPriority orders entries by descending secondary priority. Entries
// without a priority follow in their original order.
func (d *Document) SortByPriority() {
	slices.SortStableFunc(d.Entries, func(a, b Entry) int {
		switch {
		case a.Priority == nil && b.Priority == nil:
			return 0
		case a.Priority == nil:
			return 1
		case b.Priority == nil:
			return -1
		case *a.Priority > *b.Priority:
			return -1
		case *a.Priority < *b.Priority:
			return 1
		}
		return 0
	})
}

// SaveEvidence writes the images attached to entries as PNG files in dir
// and records their paths.
func (d *Document) SaveEvidence(dir string) (int, error) {
	saved := 0
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return 0, fmt.Errorf("failed to create evidence directory: %w", err)
	}
	for i := range d.Entries {
		e := &d.Entries[i]
		if e.Image == nil {
			continue
		}
		name := fmt.Sprintf("element-%d-%s.png", e.ElementID, uuid.NewString())
		path := filepath.Join(dir, name)
		if err := capture.WritePNG(path, e.Image); err != nil {
			return saved, fmt.Errorf("failed to save evidence for element %d: %w", e.ElementID, err)
		}
		e.Evidence = path
		saved++
	}
	return saved, nil
}

// WriteJSON writes the document as indented JSON.
func (d *Document) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return nil
}

// TableOptions control table rendering.
type TableOptions struct {
	// Preview renders colour samples with ANSI escapes.
	Preview bool

	// Short uses one-line messages.
	Short bool

	// MessageWidth wraps the message column. Zero disables wrapping.
	MessageWidth int
}

// WriteTable writes the document as a text table followed by a summary line.
func (d *Document) WriteTable(w io.Writer, opts TableOptions) error {
	table := NewTable("ELEMENT", "OUTCOME", "RESULT", "RATIO", "COLOURS", "MESSAGE")
	table.SetColumnMaxWidth(5, opts.MessageWidth)
	for _, e := range d.Entries {
		msg := e.Message
		if opts.Short {
			msg = ShortMessage(e.Result)
		}
		if e.Evidence != "" {
			msg += " Evidence: " + e.Evidence
		}
		table.AddRow(
			strconv.Itoa(e.ElementID),
			e.Outcome,
			e.ID.String(),
			ratioCell(e.Metadata),
			coloursCell(e.Metadata, opts.Preview),
			msg,
		)
	}

	if _, err := io.WriteString(w, table.Render()); err != nil {
		return err
	}
	s := d.Summary
	_, err := fmt.Fprintf(w, "\n%d elements: %d failures, %d warnings, %d not applicable\n",
		s.Elements, s.Failures, s.Warnings, s.NotApplicable)
	return err
}

func ratioCell(md check.Metadata) string {
	ratio, ok := md.Float(check.KeyContrastRatio)
	if !ok {
		return ""
	}
	cell := strconv.FormatFloat(ratio, 'f', 2, 64)
	if required, ok := md.Float(check.KeyCustomHeuristicRatio); ok {
		return cell + " / " + strconv.FormatFloat(required, 'f', 2, 64)
	}
	if required, ok := md.Float(check.KeyRequiredContrastRatio); ok {
		return cell + " / " + strconv.FormatFloat(required, 'f', 2, 64)
	}
	return cell
}

func coloursCell(md check.Metadata, preview bool) string {
	bg, ok := md.Color(check.KeyBackgroundColor)
	if !ok {
		return ""
	}
	fg, ok := md.Color(check.KeyForegroundColor)
	if !ok {
		fg, ok = md.Color(check.KeyTextColor)
	}
	if !ok {
		return "on " + bg.Hex()
	}
	cell := fg.Hex() + " on " + bg.Hex()
	if extra := md.Colors(check.KeyAdditionalForegroundColor); len(extra) > 0 {
		hexes := make([]string, len(extra))
		for i, c := range extra {
			hexes[i] = c.Hex()
		}
		cell += " (+" + strings.Join(hexes, ",") + ")"
	}
	if preview {
		return colour.PreviewPair(fg.Opaque(), bg.Opaque(), "Aa", 4) + " " + cell
	}
	return cell
}
