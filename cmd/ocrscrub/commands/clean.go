package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/okeanos-nlp/ocrscrub/internal/batch"
	"github.com/okeanos-nlp/ocrscrub/internal/logger"
	"github.com/okeanos-nlp/ocrscrub/internal/report"
	"github.com/okeanos-nlp/ocrscrub/pkg/scripts"
	"github.com/okeanos-nlp/ocrscrub/pkg/scrub"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Clean markdown files under a directory tree",
	Long: `Clean removes extraction artifacts from every markdown file under the
input directory and writes the results to the output directory, mirroring
the input tree. Characters from the requested scripts are kept; punctuation,
numbers and common symbols are always kept.

With --report, a per-document quality CSV is written alongside the cleaning
pass.`,
	RunE: runClean,
}

func init() {
	rootCmd.AddCommand(cleanCmd)

	flags := cleanCmd.Flags()
	flags.StringP("input", "i", "", "input directory of markdown files (required)")
	flags.StringP("output", "o", "", "output directory for cleaned files (required)")
	flags.String("scripts", "greek,latin", "comma-separated scripts to keep")
	flags.IntP("workers", "w", 0, "worker count (0 = all CPUs)")
	flags.String("include", "", "glob over relative paths, e.g. '2024/**/*.md'")
	flags.String("max-file-size", "0", "skip files larger than this (e.g. 10MB, 0 = unlimited)")
	flags.String("report", "", "also write a per-document analysis CSV to this path")

	_ = cleanCmd.MarkFlagRequired("input")
	_ = cleanCmd.MarkFlagRequired("output")
}

func runClean(cmd *cobra.Command, args []string) error {
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
	allowed, unknown := scripts.Allowed(scriptKeys)
	if len(unknown) > 0 {
		return fmt.Errorf("unknown script key(s): %s (available: %s)",
			strings.Join(unknown, ", "), strings.Join(scripts.Available(), ", "))
	}
	unusual := scripts.Unusual()
	allowedAll := scripts.AllowedAll()

	opts, err := batchOptions(cmd)
	if err != nil {
		return err
	}

	reportPath, _ := cmd.Flags().GetString("report")
	wantReport := reportPath != ""

	op := func(rel, content string) batch.Result {
		cleaned := scrub.CleanDocument(content, allowed, unusual)
		res := batch.Result{Output: cleaned}
		if wantReport {
			// Badness is scored against a clean pass with every script
			// allowed; the requested-scripts pass feeds retention.
			metrics := scrub.Score(content, scrub.CleanDocument(content, allowedAll, unusual), scrub.Marker)
			metrics.ScriptPercentages = scrub.ScriptPercentages(cleaned, scriptKeys)
			res.Payload = metrics
		}
		return res
	}

	var rows []report.AnalysisRow
	sink := func(res batch.Result) {
		if res.Err != nil || res.Payload == nil {
			return
		}
		rows = append(rows, report.AnalysisRow{File: res.Rel, Metrics: res.Payload.(*scrub.Metrics)})
	}

	logger.Info("cleaning", "input", opts.InputDir, "output", opts.OutputDir, "scripts", scriptKeys)
	summary, err := batch.Run(ctx, opts, op, sink)
	if err != nil {
		return err
	}

	if wantReport {
		if err := writeAnalysisReport(reportPath, report.FormatCSV, rows, scriptKeys); err != nil {
			return err
		}
		logger.Info("analysis report written", "path", reportPath, "rows", len(rows))
	}

	logger.Info("clean complete",
		"found", summary.Found,
		"processed", summary.Processed,
		"errors", summary.Errored,
		"skipped", summary.Skipped,
		"duration", summary.Duration)
	return nil
}

// splitScripts parses the --scripts flag into trimmed, non-empty keys.
func splitScripts(cmd *cobra.Command) ([]string, error) {
	raw, _ := cmd.Flags().GetString("scripts")
	var keys []string
	for _, part := range strings.Split(raw, ",") {
		if key := strings.TrimSpace(part); key != "" {
			keys = append(keys, key)
		}
	}
	if len(keys) == 0 {
		return nil, fmt.Errorf("at least one script must be requested (available: %s)",
			strings.Join(scripts.Available(), ", "))
	}
	return keys, nil
}

// batchOptions assembles batch.Options from the shared flags.
func batchOptions(cmd *cobra.Command) (batch.Options, error) {
	input, _ := cmd.Flags().GetString("input")
	output, _ := cmd.Flags().GetString("output")
	workers, _ := cmd.Flags().GetInt("workers")
	include, _ := cmd.Flags().GetString("include")

	opts := batch.Options{
		InputDir:  input,
		OutputDir: output,
		Workers:   workers,
		Include:   include,
	}

	sizeStr, _ := cmd.Flags().GetString("max-file-size")
	if s := strings.TrimSpace(sizeStr); s != "" && s != "0" {
		size, err := humanize.ParseBytes(s)
		if err != nil {
			return opts, fmt.Errorf("invalid max-file-size %q: %w", sizeStr, err)
		}
		opts.MaxFileSize = int64(size)
	}
	return opts, nil
}

// writeAnalysisReport sorts rows by file name and writes them out.
func writeAnalysisReport(path string, format report.Format, rows []report.AnalysisRow, scriptKeys []string) error {
	sort.Slice(rows, func(i, j int) bool { return rows[i].File < rows[j].File })

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	w, err := report.NewAnalysisWriter(f, format, scriptKeys)
	if err != nil {
		return err
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return w.Close()
}
