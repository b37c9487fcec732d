package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dshills/abifredact/internal/config"
	"github.com/dshills/abifredact/internal/discover"
	"github.com/dshills/abifredact/internal/output"
	"github.com/dshills/abifredact/internal/pipeline"
	"github.com/dshills/abifredact/internal/redact"
	"github.com/dshills/abifredact/internal/report"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run <source> <output>",
	Short: "Write a redacted copy of a source tree",
	Long: `Run walks <source>, writes each target file with its accession number
removed from name and content into <output>/<parent>/<name>, and copies all
other files unchanged unless --skip-others is given.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		run, err := cfg.ForRun(args[0], args[1])
		if err != nil {
			return err
		}
		writer, err := reportWriter(cfg.Format, flagVerbose)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		rep, err := redactTree(ctx, run, newLogger(os.Stderr))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitRuntimeError
			return nil
		}
		finish(rep, writer)
		return nil
	},
}

// redactTree discovers run.Source and writes the redacted tree. The error
// is non-nil only when the source cannot be walked; per-file problems are
// recorded in the report.
func redactTree(ctx context.Context, run config.Run, log *slog.Logger) (*report.Report, error) {
	rep := newReport("run", run)
	rep.Output = run.Output

	r, err := run.Redactor()
	if err != nil {
		return nil, err
	}

	start := time.Now()
	found, err := discover.Discover(run.Source, discover.Options{
		Targets: r,
		Exclude: run.Exclude,
	})
	if err != nil {
		return nil, err
	}
	rep.Timing.DiscoverMs = time.Since(start).Milliseconds()
	log.Info("discovered files",
		"targets", len(found.Targets), "other", len(found.Passthrough), "skipped", len(found.Skipped))

	p, err := newPipeline(r, run, log)
	if err != nil {
		return nil, err
	}

	start = time.Now()
	rep.Add(p.Redact(ctx, found.Targets)...)
	rep.Timing.RedactMs = time.Since(start).Milliseconds()

	if run.CopyOthers {
		start = time.Now()
		rep.Add(p.CopyAll(ctx, found.Passthrough)...)
		rep.Timing.CopyMs = time.Since(start).Milliseconds()
	}

	rep.Add(pipeline.SkippedItems(found.Skipped)...)
	rep.Finalize()
	return rep, nil
}

func newReport(mode string, run config.Run) *report.Report {
	rep := report.New(toolName, version, mode)
	rep.Source = run.Source
	rep.Pattern = run.Pattern
	rep.Extension = run.Extension
	return rep
}

func newPipeline(r *redact.Redactor, run config.Run, log *slog.Logger) (*pipeline.Pipeline, error) {
	return pipeline.New(r, pipeline.Options{
		OutputRoot: run.Output,
		Workers:    run.Workers,
		Logger:     log,
	})
}

// reportWriter returns the writer for format. verbose makes text reports
// list every item instead of problems only.
func reportWriter(format string, verbose bool) (output.Writer, error) {
	w, err := output.GetWriter(format)
	if err != nil {
		return nil, err
	}
	if tw, ok := w.(*output.TextWriter); ok {
		tw.Verbose = verbose
	}
	return w, nil
}

// finish writes the report and sets the exit code from its outcome.
func finish(rep *report.Report, writer output.Writer) {
	if err := output.Write(writer, rep, flagReport); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing report: %v\n", err)
		exitCode = ExitRuntimeError
		return
	}

	if failed := rep.Filter(report.StatusFailed); len(failed) > 0 {
		fmt.Fprintf(os.Stderr, "%d file(s) failed:\n", len(failed))
		for _, it := range failed {
			fmt.Fprintf(os.Stderr, "  %s: %s\n", it.Source, it.Error)
		}
	}
	exitCode = exitFor(rep)
}

// exitFor maps a finished report to an exit code. Failures take precedence
// over targets left unredacted.
func exitFor(rep *report.Report) int {
	c := rep.Summary.Counts
	if c.Failed > 0 {
		return ExitFileErrors
	}
	if c.Unredacted > 0 {
		return ExitUnredacted
	}
	for _, it := range rep.Items {
		if it.Kind == report.KindTarget && it.Status == report.StatusPlanned && !it.TokenFound {
			return ExitUnredacted
		}
	}
	return ExitSuccess
}

func init() {
	addRunFlags(runCmd.Flags())
}
