// Package scripts holds the curated character sets used to decide which
// characters in OCR-extracted text are legitimate and which are likely
// font-mapping noise. Sets are hand-curated rather than derived from Unicode
// script properties: the goal is matching the gazette corpus, not generality.
package scripts

import (
	"sort"
	"sync"
)

// Set is a collection of characters belonging to one script or category.
type Set map[rune]struct{}

// Contains reports whether r is a member of the set.
func (s Set) Contains(r rune) bool {
	_, ok := s[r]
	return ok
}

// add inserts every rune of chars.
func (s Set) add(chars string) {
	for _, r := range chars {
		s[r] = struct{}{}
	}
}

// addRange inserts code points in [lo, hi).
func (s Set) addRange(lo, hi rune) {
	for r := lo; r < hi; r++ {
		s[r] = struct{}{}
	}
}

// UnusualKey is the internal registry key for the encoding-error set. It is
// never listed by Available and cannot be requested as a script to keep.
const UnusualKey = "unusual"

// Curated character literals. The French, Spanish and accented-Greek sets
// exist both as selectable scripts and as exclusions when the unusual ranges
// are built, so legitimate accented text is never flagged as noise.
const (
	latinChars         = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	accentedGreekChars = "άέήίόύώΆΈΉΊΌΎΏϊϋΪΫΐΰ"
	frenchChars        = "àâçéèêëîïôùûüÿæœÀÂÇÉÈÊËÎÏÔÙÛÜŸÆŒ«»"
	spanishChars       = "áéíóúüñÁÉÍÓÚÜÑ¿¡"
	punctuationChars   = ".,;:!?()[]{}'\"&@#$%^*_-+=|\\<>/~`"
	digitChars         = "0123456789"
	commonSymbolChars  = "€£¥©®™°§"
)

var (
	registryOnce sync.Once
	registry     map[string]Set
)

// buildRegistry constructs every script set plus the unusual set. Runs once.
func buildRegistry() {
	reg := make(map[string]Set)

	latin := make(Set)
	latin.add(latinChars)
	reg["latin"] = latin

	// Greek block minus the Coptic sliver (U+03E2-U+03EF), plus the
	// precomposed accented forms.
	greek := make(Set)
	greek.addRange(0x0370, 0x03E2)
	greek.addRange(0x03F0, 0x0400)
	greek.add(accentedGreekChars)
	reg["greek"] = greek

	french := make(Set)
	french.add(frenchChars)
	reg["french"] = french

	spanish := make(Set)
	spanish.add(spanishChars)
	reg["spanish"] = spanish

	punctuation := make(Set)
	punctuation.add(punctuationChars)
	reg["punctuation"] = punctuation

	numbers := make(Set)
	numbers.add(digitChars)
	reg["numbers"] = numbers

	symbols := make(Set)
	symbols.add(commonSymbolChars)
	reg["common_symbols"] = symbols

	// Code-point ranges associated with OCR/font-mapping errors in this
	// corpus. Characters already curated into a supported script are
	// excluded so they are never stripped.
	curated := make(Set)
	curated.add(frenchChars)
	curated.add(spanishChars)
	curated.add(accentedGreekChars)
	curated.add(commonSymbolChars)
	curated.add(punctuationChars)

	accented := make(Set)
	accented.add(frenchChars)
	accented.add(spanishChars)

	unusual := make(Set)
	for r := rune(0x0080); r < 0x0100; r++ { // Latin-1 Supplement
		if !curated.Contains(r) {
			unusual[r] = struct{}{}
		}
	}
	for r := rune(0x0100); r < 0x0180; r++ { // Latin Extended-A
		if !accented.Contains(r) {
			unusual[r] = struct{}{}
		}
	}
	unusual.addRange(0x0180, 0x0250) // Latin Extended-B
	unusual.addRange(0x0250, 0x02B0) // IPA Extensions
	unusual.addRange(0x1E00, 0x1F00) // Latin Extended Additional
	unusual.addRange(0x03E2, 0x03F0) // Coptic inside the Greek block
	unusual.addRange(0x2C80, 0x2D00) // Coptic block
	unusual.addRange(0x0400, 0x0500) // Cyrillic
	unusual.addRange(0x0500, 0x0530) // Cyrillic Supplement
	reg[UnusualKey] = unusual

	registry = reg
}

// Lookup returns the set registered under key, or false when the key is
// unknown. The returned set is shared and must not be mutated.
func Lookup(key string) (Set, bool) {
	registryOnce.Do(buildRegistry)
	s, ok := registry[key]
	return s, ok
}

// Unusual returns the set of characters treated as likely encoding errors.
func Unusual() Set {
	registryOnce.Do(buildRegistry)
	return registry[UnusualKey]
}

// Available returns the selectable script keys in sorted order. The internal
// unusual key is excluded.
func Available() []string {
	registryOnce.Do(buildRegistry)
	keys := make([]string, 0, len(registry)-1)
	for k := range registry {
		if k == UnusualKey {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// baseKeys are always unioned into an allow-list regardless of the scripts a
// caller requests.
var baseKeys = []string{"punctuation", "numbers", "common_symbols"}

// Allowed builds the allow-list for a cleaning pass: the union of the
// requested script sets, the always-kept base categories, and basic
// whitespace. Unknown keys are reported back to the caller; the returned
// slice is nil when every key resolved.
func Allowed(keys []string) (Set, []string) {
	registryOnce.Do(buildRegistry)

	allowed := make(Set)
	var unknown []string
	for _, key := range keys {
		set, ok := registry[key]
		if !ok || key == UnusualKey {
			unknown = append(unknown, key)
			continue
		}
		for r := range set {
			allowed[r] = struct{}{}
		}
	}
	for _, key := range baseKeys {
		for r := range registry[key] {
			allowed[r] = struct{}{}
		}
	}
	// Whitespace survives cleaning no matter which scripts were requested.
	allowed.add(" \t\n")
	return allowed, unknown
}

// AllowedAll builds an allow-list containing every registered script. Used
// when scoring badness, so the damage ratio reflects extraction noise rather
// than the caller's language selection.
func AllowedAll() Set {
	registryOnce.Do(buildRegistry)

	allowed := make(Set)
	for key, set := range registry {
		if key == UnusualKey {
			continue
		}
		for r := range set {
			allowed[r] = struct{}{}
		}
	}
	allowed.add(" \t\n")
	return allowed
}
