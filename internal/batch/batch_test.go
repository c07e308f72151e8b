package batch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
)

func writeFile(t *testing.T, dir, rel, content string) {
	t.Helper()
	path := filepath.Join(dir, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestRun_ProcessesTree(t *testing.T) {
	input := t.TempDir()
	output := t.TempDir()
	writeFile(t, input, "a.md", "alpha")
	writeFile(t, input, "sub/b.md", "beta")
	writeFile(t, input, "sub/deep/c.MD", "gamma")
	writeFile(t, input, "notes.txt", "ignored")

	op := func(rel, content string) Result {
		return Result{Output: strings.ToUpper(content)}
	}

	var rels []string
	sink := func(res Result) {
		rels = append(rels, res.Rel)
	}

	summary, err := Run(context.Background(), Options{
		InputDir:  input,
		OutputDir: output,
		Workers:   2,
	}, op, sink)
	if err != nil {
		t.Fatal(err)
	}

	if summary.Found != 3 || summary.Processed != 3 || summary.Errored != 0 || summary.Skipped != 0 {
		t.Errorf("summary = %+v, want 3 found and processed", summary)
	}

	sort.Strings(rels)
	want := []string{"a.md", filepath.Join("sub", "b.md"), filepath.Join("sub", "deep", "c.MD")}
	if len(rels) != len(want) {
		t.Fatalf("sink saw %v, want %v", rels, want)
	}
	for i := range want {
		if rels[i] != want[i] {
			t.Errorf("sink saw %v, want %v", rels, want)
			break
		}
	}

	data, err := os.ReadFile(filepath.Join(output, "sub", "b.md"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "BETA" {
		t.Errorf("mirrored content = %q, want %q", data, "BETA")
	}
}

func TestRun_IncludeGlob(t *testing.T) {
	input := t.TempDir()
	writeFile(t, input, "a.md", "alpha")
	writeFile(t, input, "sub/b.md", "beta")
	writeFile(t, input, "sub/deep/c.md", "gamma")

	summary, err := Run(context.Background(), Options{
		InputDir: input,
		Include:  "sub/**",
		Workers:  1,
	}, func(rel, content string) Result { return Result{} }, nil)
	if err != nil {
		t.Fatal(err)
	}
	if summary.Found != 2 {
		t.Errorf("Found = %d, want 2 (only files under sub/)", summary.Found)
	}
}

func TestRun_MaxFileSize(t *testing.T) {
	input := t.TempDir()
	writeFile(t, input, "small.md", "ok")
	writeFile(t, input, "big.md", strings.Repeat("x", 100))

	summary, err := Run(context.Background(), Options{
		InputDir:    input,
		Workers:     1,
		MaxFileSize: 10,
	}, func(rel, content string) Result { return Result{} }, nil)
	if err != nil {
		t.Fatal(err)
	}
	if summary.Found != 2 || summary.Processed != 1 || summary.Skipped != 1 {
		t.Errorf("summary = %+v, want 1 processed and 1 skipped", summary)
	}
}

func TestRun_FileErrorsDoNotAbort(t *testing.T) {
	input := t.TempDir()
	writeFile(t, input, "good.md", "fine")
	writeFile(t, input, "bad.md", "broken")

	op := func(rel, content string) Result {
		if rel == "bad.md" {
			return Result{Err: errors.New("boom")}
		}
		return Result{}
	}

	summary, err := Run(context.Background(), Options{InputDir: input, Workers: 1}, op, nil)
	if err != nil {
		t.Fatal(err)
	}
	if summary.Processed != 1 || summary.Errored != 1 {
		t.Errorf("summary = %+v, want 1 processed and 1 errored", summary)
	}
}

func TestRun_EmptyTree(t *testing.T) {
	input := t.TempDir()
	writeFile(t, input, "readme.txt", "not markdown")

	summary, err := Run(context.Background(), Options{InputDir: input}, func(rel, content string) Result { return Result{} }, nil)
	if err != nil {
		t.Fatal(err)
	}
	if summary.Found != 0 || summary.Processed != 0 {
		t.Errorf("summary = %+v, want nothing found", summary)
	}
}

func TestRun_RejectsBadOptions(t *testing.T) {
	if _, err := Run(context.Background(), Options{}, nil, nil); err == nil {
		t.Fatal("expected error for missing input directory")
	}
	if _, err := Run(context.Background(), Options{InputDir: t.TempDir(), Workers: -1}, nil, nil); err == nil {
		t.Fatal("expected error for negative worker count")
	}
}

func TestRun_InputMustBeDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "file.md", "content")

	_, err := Run(context.Background(), Options{InputDir: filepath.Join(dir, "file.md")}, nil, nil)
	if err == nil {
		t.Fatal("expected error for non-directory input")
	}
}
