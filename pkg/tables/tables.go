// Package tables detects structurally malformed markdown tables: separator
// rows without headers, header/separator column mismatches, and body rows
// whose column count disagrees with the separator.
package tables

import (
	"regexp"
	"strings"
)

var (
	// separatorRE matches the dashes/colons rule row that delimits a table
	// header from its body.
	separatorRE = regexp.MustCompile(`^\s*\|\s*[-:]+\s*\|`)
	// rowRE matches any pipe-delimited table row.
	rowRE = regexp.MustCompile(`^\s*\|.*\|\s*$`)
)

// Issue is one structural finding. Line numbers are 1-based. Expected and
// Found are zero when the check has no meaningful count to report.
type Issue struct {
	Line        int    `json:"line" yaml:"line"`
	Description string `json:"description" yaml:"description"`
	Expected    int    `json:"expected_columns,omitempty" yaml:"expected_columns,omitempty"`
	Found       int    `json:"found_columns,omitempty" yaml:"found_columns,omitempty"`
}

// Scan is the result of analyzing one document.
type Scan struct {
	Tables    int     `json:"tables" yaml:"tables"`
	Malformed int     `json:"malformed" yaml:"malformed"`
	Issues    []Issue `json:"issues,omitempty" yaml:"issues,omitempty"`
}

// Analyze walks the document's lines in a single forward pass. Each
// separator row starts exactly one table; its contiguous body rows are
// consumed so tables never overlap. Issues come out in ascending line order,
// with a table's header/separator finding before its body findings.
func Analyze(text string) *Scan {
	scan := &Scan{}
	lines := strings.Split(text, "\n")

	for i := 0; i < len(lines); i++ {
		if !separatorRE.MatchString(lines[i]) {
			continue
		}

		// Line i is a separator: a new table starts here.
		scan.Tables++
		tableIssues := 0
		sepCols := columnCount(lines[i])

		if i > 0 && rowRE.MatchString(lines[i-1]) {
			headerCols := columnCount(lines[i-1])
			if headerCols != sepCols {
				scan.Issues = append(scan.Issues, Issue{
					Line:        i + 1,
					Description: "table header and separator column count mismatch",
					Expected:    headerCols,
					Found:       sepCols,
				})
				tableIssues++
			}
		} else {
			scan.Issues = append(scan.Issues, Issue{
				Line:        i + 1,
				Description: "table separator without header row",
				Found:       sepCols,
			})
			tableIssues++
		}

		// Consume the contiguous body. A zero-column separator gives the
		// row checks nothing meaningful to compare against.
		j := i + 1
		for j < len(lines) && rowRE.MatchString(lines[j]) {
			if sepCols != 0 {
				if rowCols := columnCount(lines[j]); rowCols != sepCols {
					scan.Issues = append(scan.Issues, Issue{
						Line:        j + 1,
						Description: "table row has inconsistent column count",
						Expected:    sepCols,
						Found:       rowCols,
					})
					tableIssues++
				}
			}
			j++
		}

		if tableIssues > 0 {
			scan.Malformed++
		}
		i = j - 1
	}
	return scan
}

// columnCount counts the |-delimited cells of a table row: one leading and
// one trailing pipe are stripped, interior pipes + 1 remain. A row that is
// not pipe-wrapped - or is a single bare pipe - has zero columns.
func columnCount(row string) int {
	trimmed := strings.TrimSpace(row)
	if len(trimmed) < 2 || !strings.HasPrefix(trimmed, "|") || !strings.HasSuffix(trimmed, "|") {
		return 0
	}
	inner := trimmed[1 : len(trimmed)-1]
	return strings.Count(inner, "|") + 1
}
