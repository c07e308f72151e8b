package commands

import (
	"context"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/okeanos-nlp/ocrscrub/internal/batch"
	"github.com/okeanos-nlp/ocrscrub/internal/logger"
	"github.com/okeanos-nlp/ocrscrub/internal/report"
	"github.com/okeanos-nlp/ocrscrub/pkg/ocrscrub"
	"github.com/okeanos-nlp/ocrscrub/pkg/tables"
)

var tablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "Detect malformed markdown tables",
	Long: `Tables scans every markdown file under the input directory for
structurally broken tables: separator rows without headers, header/separator
column mismatches, and body rows whose column count disagrees with the
separator. One report row per document.`,
	RunE: runTables,
}

func init() {
	rootCmd.AddCommand(tablesCmd)

	flags := tablesCmd.Flags()
	flags.StringP("input", "i", "", "input directory of markdown files (required)")
	flags.StringP("report", "r", "", "report output path (required)")
	flags.String("format", "csv", "report format: csv, json, yaml")
	flags.IntP("workers", "w", 0, "worker count (0 = all CPUs)")
	flags.String("include", "", "glob over relative paths, e.g. '2024/**/*.md'")
	flags.String("max-file-size", "0", "skip files larger than this (e.g. 10MB, 0 = unlimited)")

	_ = tablesCmd.MarkFlagRequired("input")
	_ = tablesCmd.MarkFlagRequired("report")
}

func runTables(cmd *cobra.Command, args []string) error {
	logger.Init(logger.Options{
		Debug: viper.GetBool("debug"),
		Quiet: viper.GetBool("quiet"),
	})

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts, err := batchOptions(cmd)
	if err != nil {
		return err
	}

	op := func(rel, content string) batch.Result {
		return batch.Result{Payload: ocrscrub.AnalyzeTables(content)}
	}

	var rows []report.TableRow
	sink := func(res batch.Result) {
		if res.Err != nil || res.Payload == nil {
			return
		}
		scan := res.Payload.(*tables.Scan)
		for _, issue := range scan.Issues {
			logger.Debug("table issue",
				"file", res.Rel,
				"line", issue.Line,
				"description", issue.Description,
				"expected", issue.Expected,
				"found", issue.Found)
		}
		rows = append(rows, report.TableRow{File: res.Rel, Scan: scan})
	}

	logger.Info("scanning tables", "input", opts.InputDir)
	summary, err := batch.Run(ctx, opts, op, sink)
	if err != nil {
		return err
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].File < rows[j].File })

	formatStr, _ := cmd.Flags().GetString("format")
	reportPath, _ := cmd.Flags().GetString("report")
	f, err := os.Create(reportPath)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	w, err := report.NewTableWriter(f, report.Format(formatStr))
	if err != nil {
		return err
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return err
		}
	}
	if err := w.Close(); err != nil {
		return err
	}

	logger.Info("table scan complete",
		"found", summary.Found,
		"processed", summary.Processed,
		"errors", summary.Errored,
		"skipped", summary.Skipped,
		"report", reportPath,
		"duration", summary.Duration)
	return nil
}
