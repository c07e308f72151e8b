package ocrscrub

import (
	"strings"
	"testing"
)

func TestAvailableScripts(t *testing.T) {
	keys := AvailableScripts()
	if len(keys) == 0 {
		t.Fatal("no scripts registered")
	}
	for _, key := range keys {
		if key == "unusual" {
			t.Error("the unusual set must not be selectable")
		}
	}
	for i := 1; i < len(keys); i++ {
		if keys[i-1] >= keys[i] {
			t.Errorf("keys not sorted: %v", keys)
		}
	}
}

func TestCleanText(t *testing.T) {
	got, err := CleanText("Νόμος <layout-tag> 4622\n", []string{"greek", "latin"})
	if err != nil {
		t.Fatal(err)
	}
	want := "Νόμος  4622 " + Marker + "\n"
	if got != want {
		t.Errorf("CleanText() = %q, want %q", got, want)
	}
}

func TestCleanText_UnknownScript(t *testing.T) {
	_, err := CleanText("text", []string{"greek", "klingon"})
	if err == nil {
		t.Fatal("expected error for unknown script key")
	}
	if !strings.Contains(err.Error(), "klingon") {
		t.Errorf("error should name the offending key, got %v", err)
	}
}

func TestAnalyzeText(t *testing.T) {
	m, err := AnalyzeText("καθαρό κείμενο\n", []string{"greek"}, false)
	if err != nil {
		t.Fatal(err)
	}
	if m.Badness != 0 {
		t.Errorf("clean text should score zero badness, got %v", m.Badness)
	}
	if m.ScriptPercentages != nil {
		t.Error("percentages should only be computed with detailed=true")
	}
}

func TestAnalyzeText_BadnessIgnoresScriptSelection(t *testing.T) {
	// Latin stays valid content for the badness measure even when the
	// caller only asked for Greek; selection shapes retention percentages,
	// not the damage score.
	text := "αβγδ abcd\n"

	greek, err := AnalyzeText(text, []string{"greek"}, false)
	if err != nil {
		t.Fatal(err)
	}
	latin, err := AnalyzeText(text, []string{"latin"}, false)
	if err != nil {
		t.Fatal(err)
	}
	if greek.Badness != 0 || latin.Badness != 0 {
		t.Errorf("badness should ignore script selection: greek=%v latin=%v", greek.Badness, latin.Badness)
	}
}

func TestAnalyzeText_Detailed(t *testing.T) {
	m, err := AnalyzeText("αβγδ abcd\n", []string{"greek", "latin"}, true)
	if err != nil {
		t.Fatal(err)
	}
	if m.ScriptPercentages == nil {
		t.Fatal("detailed=true should populate percentages")
	}
	if m.ScriptPercentages["greek"] != 50 || m.ScriptPercentages["latin"] != 50 {
		t.Errorf("percentages = %v, want greek=50 latin=50", m.ScriptPercentages)
	}
}

func TestAnalyzeText_UnknownScript(t *testing.T) {
	if _, err := AnalyzeText("text", []string{"elvish"}, false); err == nil {
		t.Fatal("expected error for unknown script key")
	}
}

func TestAnalyzeTables(t *testing.T) {
	scan := AnalyzeTables("| A | B |\n|---|---|\n| 1 | 2 | 3 |\n")
	if scan.Tables != 1 || scan.Malformed != 1 {
		t.Errorf("tables/malformed = %d/%d, want 1/1", scan.Tables, scan.Malformed)
	}
	if len(scan.Issues) != 1 || scan.Issues[0].Line != 3 {
		t.Errorf("issues = %+v, want one issue at line 3", scan.Issues)
	}
}
