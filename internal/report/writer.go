// Package report serializes per-document analysis results. It supports CSV
// (the format the rest of the pipeline consumes), JSON and YAML, behind a
// common writer interface, and computes corpus-level badness distribution
// summaries.
package report

import (
	"fmt"
	"io"

	"github.com/okeanos-nlp/ocrscrub/pkg/scrub"
	"github.com/okeanos-nlp/ocrscrub/pkg/tables"
)

// Format represents report output formats.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// AnalysisRow is one document's quality metrics.
type AnalysisRow struct {
	File    string         `json:"file" yaml:"file"`
	Metrics *scrub.Metrics `json:"metrics" yaml:"metrics"`
}

// TableRow is one document's table scan.
type TableRow struct {
	File string       `json:"file" yaml:"file"`
	Scan *tables.Scan `json:"scan" yaml:"scan"`
}

// AnalysisWriter emits analysis rows. Close must be called to flush; for the
// structured formats it also terminates the document.
type AnalysisWriter interface {
	Write(row AnalysisRow) error
	Close() error
}

// TableWriter emits table-scan rows.
type TableWriter interface {
	Write(row TableRow) error
	Close() error
}

// NewAnalysisWriter creates a writer for the given format. scriptKeys fixes
// the order of the per-script retention columns in CSV output; the
// structured formats ignore it.
func NewAnalysisWriter(w io.Writer, format Format, scriptKeys []string) (AnalysisWriter, error) {
	switch format {
	case FormatCSV, "":
		return newAnalysisCSV(w, scriptKeys), nil
	case FormatJSON:
		return &jsonWriter[AnalysisRow]{w: w}, nil
	case FormatYAML:
		return &yamlWriter[AnalysisRow]{w: w}, nil
	default:
		return nil, fmt.Errorf("unsupported report format: %s", format)
	}
}

// NewTableWriter creates a table-report writer for the given format.
func NewTableWriter(w io.Writer, format Format) (TableWriter, error) {
	switch format {
	case FormatCSV, "":
		return newTableCSV(w), nil
	case FormatJSON:
		return &jsonWriter[TableRow]{w: w}, nil
	case FormatYAML:
		return &yamlWriter[TableRow]{w: w}, nil
	default:
		return nil, fmt.Errorf("unsupported report format: %s", format)
	}
}
