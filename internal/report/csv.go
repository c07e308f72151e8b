package report

import (
	"encoding/csv"
	"io"
	"strconv"
)

// analysisCSV streams one CSV record per document. The header is written
// lazily with the first row so an empty report stays an empty file.
type analysisCSV struct {
	w          *csv.Writer
	scriptKeys []string
	wroteHead  bool
}

func newAnalysisCSV(w io.Writer, scriptKeys []string) *analysisCSV {
	return &analysisCSV{w: csv.NewWriter(w), scriptKeys: scriptKeys}
}

func (c *analysisCSV) Write(row AnalysisRow) error {
	if !c.wroteHead {
		head := []string{
			"file", "badness", "bad_count", "good_count",
			"total_chars", "total_non_whitespace",
			"cleaned_chars", "cleaned_non_whitespace",
			"glyph_count", "unusual_count", "comment_markers",
		}
		for _, key := range c.scriptKeys {
			head = append(head, key+"_pct")
		}
		if err := c.w.Write(head); err != nil {
			return err
		}
		c.wroteHead = true
	}

	m := row.Metrics
	rec := []string{
		row.File,
		strconv.FormatFloat(m.Badness, 'f', 6, 64),
		strconv.Itoa(m.BadCount),
		strconv.Itoa(m.GoodCount),
		strconv.Itoa(m.TotalChars),
		strconv.Itoa(m.TotalNonWhitespace),
		strconv.Itoa(m.CleanedChars),
		strconv.Itoa(m.CleanedNonWhitespace),
		strconv.Itoa(m.GlyphCount),
		strconv.Itoa(m.UnusualCount),
		strconv.Itoa(m.CommentMarkers),
	}
	for _, key := range c.scriptKeys {
		rec = append(rec, strconv.FormatFloat(m.ScriptPercentages[key], 'f', 2, 64))
	}
	return c.w.Write(rec)
}

func (c *analysisCSV) Close() error {
	c.w.Flush()
	return c.w.Error()
}

// tableCSV emits one summary record per document:
// file, total tables, malformed tables, issue count.
type tableCSV struct {
	w         *csv.Writer
	wroteHead bool
}

func newTableCSV(w io.Writer) *tableCSV {
	return &tableCSV{w: csv.NewWriter(w)}
}

func (c *tableCSV) Write(row TableRow) error {
	if !c.wroteHead {
		if err := c.w.Write([]string{"file", "total_tables", "malformed_tables", "issues"}); err != nil {
			return err
		}
		c.wroteHead = true
	}
	return c.w.Write([]string{
		row.File,
		strconv.Itoa(row.Scan.Tables),
		strconv.Itoa(row.Scan.Malformed),
		strconv.Itoa(len(row.Scan.Issues)),
	})
}

func (c *tableCSV) Close() error {
	c.w.Flush()
	return c.w.Error()
}
