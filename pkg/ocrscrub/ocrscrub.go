// Package ocrscrub is the public entry point for cleaning and analyzing
// OCR-extracted markdown. It ties the script registry, the sanitizer, the
// badness scorer and the table validator together behind a small API that
// works on plain strings; callers own all file I/O.
package ocrscrub

import (
	"fmt"
	"strings"

	"github.com/okeanos-nlp/ocrscrub/pkg/scripts"
	"github.com/okeanos-nlp/ocrscrub/pkg/scrub"
	"github.com/okeanos-nlp/ocrscrub/pkg/tables"
)

// Marker re-exports the text-missing annotation literal.
const Marker = scrub.Marker

// AvailableScripts returns the selectable script keys in sorted order.
func AvailableScripts() []string {
	return scripts.Available()
}

// CleanText sanitizes text, keeping characters from the requested scripts
// plus the always-kept base categories (punctuation, numbers, common
// symbols). Unknown script keys are rejected.
func CleanText(text string, scriptsToKeep []string) (string, error) {
	allowed, unknown := scripts.Allowed(scriptsToKeep)
	if len(unknown) > 0 {
		return "", fmt.Errorf("unknown script key(s): %s", strings.Join(unknown, ", "))
	}
	return scrub.CleanDocument(text, allowed, scripts.Unusual()), nil
}

// AnalyzeText cleans text internally and scores the damage. Badness is
// computed against an allow-list containing every registered script, so the
// number reflects extraction noise rather than the caller's language
// selection. When detailed is true a second cleaning pass restricted to the
// requested scripts feeds the per-script retention percentages.
func AnalyzeText(text string, scriptsToKeep []string, detailed bool) (*scrub.Metrics, error) {
	// Validate the requested keys up front; the same policy as CleanText.
	if _, unknown := scripts.Allowed(scriptsToKeep); len(unknown) > 0 {
		return nil, fmt.Errorf("unknown script key(s): %s", strings.Join(unknown, ", "))
	}

	unusual := scripts.Unusual()
	cleaned := scrub.CleanDocument(text, scripts.AllowedAll(), unusual)
	metrics := scrub.Score(text, cleaned, scrub.Marker)

	if detailed && len(scriptsToKeep) > 0 {
		requested, _ := scripts.Allowed(scriptsToKeep)
		cleanedForScripts := scrub.CleanDocument(text, requested, unusual)
		metrics.ScriptPercentages = scrub.ScriptPercentages(cleanedForScripts, scriptsToKeep)
	}
	return metrics, nil
}

// AnalyzeTables scans text for structurally malformed markdown tables.
func AnalyzeTables(text string) *tables.Scan {
	return tables.Analyze(text)
}
