package report

import (
	"bytes"
	"encoding/json"
	"image"
	"os"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/jmylchreest/legible/internal/check"
	"github.com/jmylchreest/legible/internal/colour"
)

func contrastResult(el int, ratio, required float64) check.Result {
	md := check.Metadata{}
	md.PutColor(check.KeyTextColor, colour.RGB(0x88, 0x88, 0x88))
	md.PutColor(check.KeyBackgroundColor, colour.White)
	md.PutFloat(check.KeyContrastRatio, ratio)
	md.PutFloat(check.KeyRequiredContrastRatio, required)
	return check.Result{ElementID: el, Type: check.Error, ID: check.ResultContrastNotSufficient, Metadata: md}
}

func sampleResults() []check.Result {
	return []check.Result{
		{ElementID: 1, Type: check.NotRun, ID: check.ResultNotVisible},
		contrastResult(2, 3.5, 4.5),
		contrastResult(3, 1.5, 4.5),
		{ElementID: 4, Type: check.Warning, ID: check.ResultScreenCaptureUniformColor, Metadata: check.Metadata{}},
	}
}

func TestNew(t *testing.T) {
	doc := New(sampleResults(), 5)

	if _, err := uuid.Parse(doc.RunID); err != nil {
		t.Errorf("RunID %q is not a uuid: %v", doc.RunID, err)
	}
	want := Summary{Elements: 5, Failures: 2, Warnings: 1, NotApplicable: 1}
	if doc.Summary != want {
		t.Errorf("Summary = %+v, want %+v", doc.Summary, want)
	}
	if !doc.HasFailures() {
		t.Error("HasFailures() = false, want true")
	}
	if doc.Entries[0].Priority != nil {
		t.Error("not-visible entry has a priority")
	}
	if p := doc.Entries[2].Priority; p == nil || *p != 3 {
		t.Errorf("priority = %v, want 3", p)
	}
	if doc.Entries[1].Outcome != "fail" || doc.Entries[3].Outcome != "warning" {
		t.Errorf("outcomes = %q %q", doc.Entries[1].Outcome, doc.Entries[3].Outcome)
	}
}

func TestSortByPriority(t *testing.T) {
	doc := New(sampleResults(), 5)
	doc.SortByPriority()

	var got []int
	for _, e := range doc.Entries {
		got = append(got, e.ElementID)
	}
	want := []int{3, 2, 1, 4}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestWriteJSON(t *testing.T) {
	doc := New(sampleResults(), 5)
	doc.Snapshot = "screen.json"

	var buf bytes.Buffer
	if err := doc.WriteJSON(&buf); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}

	var decoded struct {
		RunID   string `json:"run_id"`
		Summary Summary
		Results []struct {
			ElementID int            `json:"element_id"`
			Type      string         `json:"type"`
			ResultID  int            `json:"result_id"`
			Message   string         `json:"message"`
			Metadata  map[string]any `json:"metadata"`
		} `json:"results"`
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if decoded.RunID != doc.RunID {
		t.Errorf("run_id = %q, want %q", decoded.RunID, doc.RunID)
	}
	if len(decoded.Results) != 4 {
		t.Fatalf("got %d results, want 4", len(decoded.Results))
	}
	r := decoded.Results[1]
	if r.ElementID != 2 || r.Type != "error" || r.ResultID != 8 {
		t.Errorf("result = %+v", r)
	}
	if got := r.Metadata[check.KeyBackgroundColor]; got != "#FFFFFF" {
		t.Errorf("background = %v, want #FFFFFF", got)
	}
	if !strings.Contains(r.Message, "3.50") {
		t.Errorf("message = %q", r.Message)
	}
}

func TestWriteTable(t *testing.T) {
	doc := New(sampleResults(), 5)

	var buf bytes.Buffer
	if err := doc.WriteTable(&buf, TableOptions{MessageWidth: 40}); err != nil {
		t.Fatalf("WriteTable() error = %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"ELEMENT", "contrast_not_sufficient", "3.50 / 4.50", "#888888 on #FFFFFF",
		"5 elements: 2 failures, 1 warnings, 1 not applicable",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\033[") {
		t.Error("table contains ANSI escapes without preview")
	}

	buf.Reset()
	if err := doc.WriteTable(&buf, TableOptions{Preview: true, Short: true}); err != nil {
		t.Fatalf("WriteTable() error = %v", err)
	}
	if !strings.Contains(buf.String(), "\033[") {
		t.Error("preview table has no ANSI escapes")
	}
	if !strings.Contains(buf.String(), "Text contrast is not sufficient.") {
		t.Error("short table missing short message")
	}
}

func TestSaveEvidence(t *testing.T) {
	results := sampleResults()
	results[3].Image = image.NewNRGBA(image.Rect(0, 0, 4, 4))
	doc := New(results, 5)

	dir := t.TempDir() + "/evidence"
	n, err := doc.SaveEvidence(dir)
	if err != nil {
		t.Fatalf("SaveEvidence() error = %v", err)
	}
	if n != 1 {
		t.Fatalf("saved %d images, want 1", n)
	}
	path := doc.Entries[3].Evidence
	if !strings.HasPrefix(path, dir) || !strings.Contains(path, "element-4-") {
		t.Errorf("evidence path = %q", path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("evidence file: %v", err)
	}
	if doc.Entries[1].Evidence != "" {
		t.Error("entry without image has evidence")
	}
}
