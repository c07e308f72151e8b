package scrub

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/okeanos-nlp/ocrscrub/pkg/scripts"
)

// Metrics captures how damaged a document was, derived by comparing the
// original text with its cleaned form. Badness is the estimated fraction of
// original non-whitespace content that was extraction noise.
type Metrics struct {
	Badness float64 `json:"badness" yaml:"badness"`

	BadCount  int `json:"bad_count" yaml:"bad_count"`
	GoodCount int `json:"good_count" yaml:"good_count"`

	TotalChars           int `json:"total_chars" yaml:"total_chars"`
	TotalNonWhitespace   int `json:"total_non_whitespace" yaml:"total_non_whitespace"`
	CleanedChars         int `json:"cleaned_chars" yaml:"cleaned_chars"`
	CleanedNonWhitespace int `json:"cleaned_non_whitespace" yaml:"cleaned_non_whitespace"`

	// GlyphCount and UnusualCount are measured on the original text.
	GlyphCount   int `json:"glyph_count" yaml:"glyph_count"`
	UnusualCount int `json:"unusual_count" yaml:"unusual_count"`

	// CommentMarkers is the number of text-missing annotations the cleaner
	// inserted.
	CommentMarkers int `json:"comment_markers" yaml:"comment_markers"`

	// ScriptPercentages maps each requested script to its share of the
	// cleaned text's non-whitespace characters. Informative only; it does
	// not feed into Badness.
	ScriptPercentages map[string]float64 `json:"script_percentages,omitempty" yaml:"script_percentages,omitempty"`
}

// String returns a one-line human-readable summary.
func (m *Metrics) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "badness=%.4f good=%d bad=%d markers=%d", m.Badness, m.GoodCount, m.BadCount, m.CommentMarkers)
	if m.GlyphCount > 0 {
		fmt.Fprintf(&sb, " glyphs=%d", m.GlyphCount)
	}
	if m.UnusualCount > 0 {
		fmt.Fprintf(&sb, " unusual=%d", m.UnusualCount)
	}
	return sb.String()
}

// Score compares original and cleaned text. Inserted markers are synthetic
// content and are subtracted before the damage ratio is computed; counts are
// clamped so badness always lands in [0, 1] and GoodCount+BadCount equals
// the original non-whitespace total.
func Score(original, cleaned, marker string) *Metrics {
	m := &Metrics{
		TotalChars:           len([]rune(original)),
		TotalNonWhitespace:   countNonSpace(original),
		CleanedChars:         len([]rune(cleaned)),
		CleanedNonWhitespace: countNonSpace(cleaned),
		CommentMarkers:       strings.Count(cleaned, marker),
		GlyphCount:           len(glyphRE.FindAllStringIndex(original, -1)),
	}

	unusual := scripts.Unusual()
	for _, r := range original {
		if unusual.Contains(r) {
			m.UnusualCount++
		}
	}

	markerChars := m.CommentMarkers * countNonSpace(marker)
	adjusted := m.CleanedNonWhitespace - markerChars
	if adjusted < 0 {
		adjusted = 0
	}

	// Cleaned output longer than the input should be structurally
	// impossible; clamp instead of going negative.
	if m.TotalNonWhitespace > adjusted {
		m.BadCount = m.TotalNonWhitespace - adjusted
	}
	m.GoodCount = m.TotalNonWhitespace - m.BadCount

	if m.TotalNonWhitespace > 0 {
		m.Badness = float64(m.BadCount) / float64(m.TotalNonWhitespace)
	}
	return m
}

// ScriptPercentages computes, per requested script, the share of cleaned
// non-whitespace characters belonging to that script's set. Unknown keys are
// skipped; an empty cleaned text yields zero for every script.
func ScriptPercentages(cleaned string, scriptKeys []string) map[string]float64 {
	percentages := make(map[string]float64, len(scriptKeys))

	var chars []rune
	for _, r := range cleaned {
		if !unicode.IsSpace(r) {
			chars = append(chars, r)
		}
	}

	for _, key := range scriptKeys {
		set, ok := scripts.Lookup(key)
		if !ok {
			continue
		}
		percentages[key] = 0
		if len(chars) == 0 {
			continue
		}
		count := 0
		for _, r := range chars {
			if set.Contains(r) {
				count++
			}
		}
		percentages[key] = float64(count) / float64(len(chars)) * 100
	}
	return percentages
}
