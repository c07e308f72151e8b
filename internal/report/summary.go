package report

import (
	"fmt"
	"sort"
	"strings"

	"gonum.org/v1/gonum/stat"
)

// Summary describes the badness distribution across a processed corpus.
type Summary struct {
	Documents int     `json:"documents" yaml:"documents"`
	Min       float64 `json:"min" yaml:"min"`
	Max       float64 `json:"max" yaml:"max"`
	Mean      float64 `json:"mean" yaml:"mean"`
	StdDev    float64 `json:"std_dev" yaml:"std_dev"`
	Median    float64 `json:"median" yaml:"median"`
	P90       float64 `json:"p90" yaml:"p90"`

	// Histogram counts documents per 0.1-wide badness bin; the last bin is
	// closed at 1.0.
	Histogram [10]int `json:"histogram" yaml:"histogram"`

	// CleanUsable counts documents with badness below 0.1 whose retention
	// of the dominant script is at least 70% - the corpus slice worth
	// feeding to downstream processing without review.
	CleanUsable int `json:"clean_usable" yaml:"clean_usable"`
}

// Summarize computes distribution statistics over analysis rows. scriptKey
// names the dominant script whose retention feeds the CleanUsable count; an
// empty key (or rows without detailed percentages) skips that check.
func Summarize(rows []AnalysisRow, scriptKey string) *Summary {
	s := &Summary{Documents: len(rows)}
	if len(rows) == 0 {
		return s
	}

	scores := make([]float64, 0, len(rows))
	for _, row := range rows {
		b := row.Metrics.Badness
		scores = append(scores, b)

		bin := int(b * 10)
		if bin > 9 {
			bin = 9
		}
		s.Histogram[bin]++

		if scriptKey != "" && b < 0.1 {
			if pct, ok := row.Metrics.ScriptPercentages[scriptKey]; ok && pct >= 70 {
				s.CleanUsable++
			}
		}
	}

	sort.Float64s(scores)
	s.Min = scores[0]
	s.Max = scores[len(scores)-1]
	s.Mean = stat.Mean(scores, nil)
	if len(scores) > 1 {
		s.StdDev = stat.StdDev(scores, nil)
	}
	s.Median = stat.Quantile(0.5, stat.Empirical, scores, nil)
	s.P90 = stat.Quantile(0.9, stat.Empirical, scores, nil)
	return s
}

// String renders the summary as a small fixed-width table.
func (s *Summary) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "documents: %d\n", s.Documents)
	if s.Documents == 0 {
		return sb.String()
	}
	fmt.Fprintf(&sb, "badness: min=%.4f max=%.4f mean=%.4f stddev=%.4f median=%.4f p90=%.4f\n",
		s.Min, s.Max, s.Mean, s.StdDev, s.Median, s.P90)
	sb.WriteString("distribution:\n")
	for i, count := range s.Histogram {
		lo := float64(i) / 10
		hi := lo + 0.1
		fmt.Fprintf(&sb, "  [%.1f, %.1f): %d\n", lo, hi, count)
	}
	if s.CleanUsable > 0 {
		fmt.Fprintf(&sb, "clean and usable (badness < 0.1, retention >= 70%%): %d\n", s.CleanUsable)
	}
	return sb.String()
}
