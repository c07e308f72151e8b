package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/okeanos-nlp/ocrscrub/internal/batch"
	"github.com/okeanos-nlp/ocrscrub/internal/logger"
	"github.com/okeanos-nlp/ocrscrub/internal/report"
	"github.com/okeanos-nlp/ocrscrub/pkg/ocrscrub"
	"github.com/okeanos-nlp/ocrscrub/pkg/scrub"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Score extraction quality without writing cleaned files",
	Long: `Analyze scores every markdown file under the input directory: the
fraction of content that is extraction noise (badness), glyph-artifact and
unusual-character counts, and - with --detailed - how much of the cleaned
text each requested script retains.

The per-document report is CSV by default; --summary adds a corpus-level
badness distribution on stderr.`,
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	flags := analyzeCmd.Flags()
	flags.StringP("input", "i", "", "input directory of markdown files (required)")
	flags.StringP("report", "r", "", "report output path (required)")
	flags.String("format", "csv", "report format: csv, json, yaml")
	flags.String("scripts", "greek,latin", "comma-separated scripts for retention percentages")
	flags.Bool("detailed", false, "compute per-script retention percentages")
	flags.Bool("summary", false, "print a badness distribution summary")
	flags.IntP("workers", "w", 0, "worker count (0 = all CPUs)")
	flags.String("include", "", "glob over relative paths, e.g. '2024/**/*.md'")
	flags.String("max-file-size", "0", "skip files larger than this (e.g. 10MB, 0 = unlimited)")

	_ = analyzeCmd.MarkFlagRequired("input")
	_ = analyzeCmd.MarkFlagRequired("report")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	logger.Init(logger.Options{
		Debug: viper.GetBool("debug"),
		Quiet: viper.GetBool("quiet"),
	})

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	scriptKeys, err := splitScripts(cmd)
	if err != nil {
		return err
	}
	detailed, _ := cmd.Flags().GetBool("detailed")

	// Fail on typos before touching the filesystem.
	if _, err := ocrscrub.AnalyzeText("", scriptKeys, false); err != nil {
		return err
	}

	opts, err := batchOptions(cmd)
	if err != nil {
		return err
	}

	op := func(rel, content string) batch.Result {
		metrics, err := ocrscrub.AnalyzeText(content, scriptKeys, detailed)
		if err != nil {
			return batch.Result{Err: err}
		}
		return batch.Result{Payload: metrics}
	}

	var rows []report.AnalysisRow
	sink := func(res batch.Result) {
		if res.Err != nil || res.Payload == nil {
			return
		}
		rows = append(rows, report.AnalysisRow{File: res.Rel, Metrics: res.Payload.(*scrub.Metrics)})
	}

	logger.Info("analyzing", "input", opts.InputDir, "scripts", scriptKeys, "detailed", detailed)
	summary, err := batch.Run(ctx, opts, op, sink)
	if err != nil {
		return err
	}

	formatStr, _ := cmd.Flags().GetString("format")
	reportPath, _ := cmd.Flags().GetString("report")
	if err := writeAnalysisReport(reportPath, report.Format(formatStr), rows, scriptKeys); err != nil {
		return err
	}

	if wantSummary, _ := cmd.Flags().GetBool("summary"); wantSummary {
		// The first requested script is treated as the corpus's dominant
		// one for the clean-and-usable count.
		dominant := ""
		if detailed {
			dominant = scriptKeys[0]
		}
		dist := report.Summarize(rows, dominant)
		fmt.Fprint(os.Stderr, dist.String())
	}

	logger.Info("analysis complete",
		"found", summary.Found,
		"processed", summary.Processed,
		"errors", summary.Errored,
		"skipped", summary.Skipped,
		"report", reportPath,
		"duration", summary.Duration)
	return nil
}
