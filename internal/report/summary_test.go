package report

import (
	"math"
	"strings"
	"testing"

	"github.com/okeanos-nlp/ocrscrub/pkg/scrub"
)

func analysisRow(badness float64, greekPct float64) AnalysisRow {
	return AnalysisRow{
		File: "doc.md",
		Metrics: &scrub.Metrics{
			Badness:           badness,
			ScriptPercentages: map[string]float64{"greek": greekPct},
		},
	}
}

func TestSummarize(t *testing.T) {
	rows := []AnalysisRow{
		analysisRow(0.05, 90), // clean and Greek-dominant
		analysisRow(0.05, 50), // clean but retention too low
		analysisRow(0.15, 95), // retention fine but too noisy
		analysisRow(0.95, 0),
		analysisRow(1.0, 0),
	}

	s := Summarize(rows, "greek")
	if s.Documents != 5 {
		t.Errorf("Documents = %d, want 5", s.Documents)
	}
	if s.Min != 0.05 || s.Max != 1.0 {
		t.Errorf("min/max = %v/%v, want 0.05/1.0", s.Min, s.Max)
	}
	if math.Abs(s.Mean-0.44) > 1e-9 {
		t.Errorf("Mean = %v, want 0.44", s.Mean)
	}
	if s.Median != 0.15 {
		t.Errorf("Median = %v, want 0.15", s.Median)
	}
	if s.P90 != 1.0 {
		t.Errorf("P90 = %v, want 1.0", s.P90)
	}

	wantHist := [10]int{2, 1, 0, 0, 0, 0, 0, 0, 0, 2}
	if s.Histogram != wantHist {
		t.Errorf("Histogram = %v, want %v", s.Histogram, wantHist)
	}
	if s.CleanUsable != 1 {
		t.Errorf("CleanUsable = %d, want 1", s.CleanUsable)
	}
}

func TestSummarize_NoDominantScript(t *testing.T) {
	rows := []AnalysisRow{analysisRow(0.01, 100)}
	s := Summarize(rows, "")
	if s.CleanUsable != 0 {
		t.Errorf("CleanUsable = %d, want 0 without a dominant script", s.CleanUsable)
	}
}

func TestSummarize_SingleDocument(t *testing.T) {
	s := Summarize([]AnalysisRow{analysisRow(0.3, 0)}, "")
	if s.StdDev != 0 {
		t.Errorf("StdDev = %v, want 0 for a single document", s.StdDev)
	}
	if s.Min != 0.3 || s.Max != 0.3 || s.Mean != 0.3 {
		t.Errorf("min/max/mean = %v/%v/%v, want 0.3", s.Min, s.Max, s.Mean)
	}
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil, "greek")
	if s.Documents != 0 {
		t.Errorf("Documents = %d, want 0", s.Documents)
	}
	if got := s.String(); got != "documents: 0\n" {
		t.Errorf("String() = %q", got)
	}
}

func TestSummary_String(t *testing.T) {
	s := Summarize([]AnalysisRow{analysisRow(0.05, 90), analysisRow(0.25, 10)}, "greek")
	out := s.String()

	for _, want := range []string{
		"documents: 2",
		"[0.0, 0.1): 1",
		"[0.2, 0.3): 1",
		"clean and usable",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("String() missing %q:\n%s", want, out)
		}
	}
}
