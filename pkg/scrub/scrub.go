// Package scrub removes OCR extraction artifacts from markdown text and
// scores how much content the removal cost. Cleaning works line by line:
// layout tags are stripped (HTML comments survive), glyph-substitution
// placeholders are dropped, and characters from unexpected scripts are
// filtered against an allow-list. Lines that lose enough content are
// annotated with a fixed marker comment so downstream consumers can find
// the damage with grep.
package scrub

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/okeanos-nlp/ocrscrub/pkg/scripts"
)

// Marker is the literal annotation inserted where text was removed. Its
// exact spelling is a wire contract with downstream consumers; changing it
// is a breaking change.
const Marker = "<!-- text-missing -->"

// DefaultMinRemoved is the per-line removal count at which the marker is
// inserted.
const DefaultMinRemoved = 5

var (
	// tagRE matches any <...> span, including comments.
	tagRE = regexp.MustCompile(`<[^>]*>`)
	// commentRE matches an HTML comment anywhere in a candidate span.
	commentRE = regexp.MustCompile(`<!--.*?-->`)
	// glyphRE matches whitespace-delimited tokens carrying a glyph
	// substitution artifact, e.g. glyph<c=84,font=/F12>.
	glyphRE = regexp.MustCompile(`\S*glyph\S*`)
)

// SanitizeLine cleans a single line and reports how many non-whitespace
// characters were removed. The passes run in a fixed order - tags, glyph
// tokens, unusual characters - each over the previous pass's output. The
// marker decision uses the combined removal count together with the line's
// emptiness before and after cleaning.
func SanitizeLine(line string, allowed, unusual scripts.Set, minRemoved int) (string, int) {
	removed := 0

	// Tag pass. Comment spans are kept verbatim; anything else between
	// angle brackets is treated as a stray layout tag.
	var afterTags strings.Builder
	last := 0
	for _, loc := range tagRE.FindAllStringIndex(line, -1) {
		afterTags.WriteString(line[last:loc[0]])
		span := line[loc[0]:loc[1]]
		if commentRE.MatchString(span) {
			afterTags.WriteString(span)
		} else {
			removed += countNonSpace(span)
		}
		last = loc[1]
	}
	afterTags.WriteString(line[last:])

	// Glyph pass.
	tagStripped := afterTags.String()
	var afterGlyphs strings.Builder
	last = 0
	for _, loc := range glyphRE.FindAllStringIndex(tagStripped, -1) {
		afterGlyphs.WriteString(tagStripped[last:loc[0]])
		removed += countNonSpace(tagStripped[loc[0]:loc[1]])
		last = loc[1]
	}
	afterGlyphs.WriteString(tagStripped[last:])

	// Unusual-character pass.
	var processed strings.Builder
	for _, r := range afterGlyphs.String() {
		if unusual.Contains(r) && !allowed.Contains(r) {
			if !unicode.IsSpace(r) {
				removed++
			}
			continue
		}
		processed.WriteRune(r)
	}

	out := processed.String()
	switch {
	case strings.TrimSpace(out) != "":
		if removed >= minRemoved {
			out = strings.TrimRightFunc(out, unicode.IsSpace) + " " + Marker
		}
	case removed >= minRemoved && strings.TrimSpace(line) != "":
		// The line held content and cleaning emptied it.
		out = Marker
	}
	return out, removed
}

// CleanDocument runs SanitizeLine over every line of text, preserving line
// structure. A trailing newline on non-empty input is kept exactly; no
// trailing newline is invented otherwise.
func CleanDocument(text string, allowed, unusual scripts.Set) string {
	if text == "" {
		return ""
	}

	trailingNewline := strings.HasSuffix(text, "\n")
	lines := strings.Split(text, "\n")
	if trailingNewline {
		// Split leaves an empty final element after the trailing
		// newline; it is not a line of the document.
		lines = lines[:len(lines)-1]
	}

	var out strings.Builder
	for _, line := range lines {
		cleaned, _ := SanitizeLine(line, allowed, unusual, DefaultMinRemoved)
		out.WriteString(cleaned)
		out.WriteByte('\n')
	}

	result := out.String()
	if !trailingNewline {
		result = strings.TrimSuffix(result, "\n")
	}
	return result
}

func countNonSpace(s string) int {
	n := 0
	for _, r := range s {
		if !unicode.IsSpace(r) {
			n++
		}
	}
	return n
}
