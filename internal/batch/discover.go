package batch

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charlievieth/fastwalk"
)

// discover walks the input tree collecting markdown files. fastwalk runs
// the callback from multiple goroutines, so the slice append is guarded.
// Results are sorted for deterministic report ordering.
func discover(opts Options) ([]string, error) {
	var (
		mu    sync.Mutex
		files []string
	)

	conf := fastwalk.Config{Follow: false}
	err := fastwalk.Walk(&conf, opts.InputDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			// Unreadable entries are skipped, not fatal.
			return nil
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".md") {
			return nil
		}
		if opts.Include != "" {
			rel, relErr := filepath.Rel(opts.InputDir, path)
			if relErr != nil {
				return nil
			}
			ok, matchErr := doublestar.Match(opts.Include, filepath.ToSlash(rel))
			if matchErr != nil {
				return matchErr
			}
			if !ok {
				return nil
			}
		}
		mu.Lock()
		files = append(files, path)
		mu.Unlock()
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}
