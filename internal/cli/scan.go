package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/dshills/abifredact/internal/config"
	"github.com/dshills/abifredact/internal/discover"
	"github.com/dshills/abifredact/internal/pipeline"
	"github.com/dshills/abifredact/internal/report"
	"github.com/spf13/cobra"
)

var scanCmd = &cobra.Command{
	Use:   "scan <source> [output]",
	Short: "Show what run would do without writing anything",
	Long: `Scan discovers files and plans destinations the way run does, but writes
nothing. Targets whose names carry no accession number are reported. When
[output] is omitted, destinations are shown under <source>-redacted.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		out := defaultScanOutput(args[0])
		if len(args) == 2 {
			out = args[1]
		}
		run, err := cfg.ForRun(args[0], out)
		if err != nil {
			return err
		}
		writer, err := reportWriter(cfg.Format, true)
		if err != nil {
			return err
		}

		rep, err := scanTree(run, newLogger(os.Stderr))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitRuntimeError
			return nil
		}
		finish(rep, writer)
		return nil
	},
}

func defaultScanOutput(source string) string {
	return filepath.Clean(source) + "-redacted"
}

// scanTree plans a run without touching the output tree.
func scanTree(run config.Run, log *slog.Logger) (*report.Report, error) {
	rep := newReport("scan", run)
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

	p, err := newPipeline(r, run, log)
	if err != nil {
		return nil, err
	}
	rep.Add(p.Preview(found.Targets)...)
	if run.CopyOthers {
		rep.Add(p.PreviewCopies(found.Passthrough)...)
	}
	rep.Add(pipeline.SkippedItems(found.Skipped)...)
	rep.Finalize()
	return rep, nil
}

func init() {
	addRunFlags(scanCmd.Flags())
}
