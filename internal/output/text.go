package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/dshills/abifredact/internal/report"
)

// TextWriter outputs a human-readable text report.
type TextWriter struct {
	// Verbose lists redacted, planned and copied items as well as problems.
	Verbose bool
}

func (t *TextWriter) Write(w io.Writer, r *report.Report) error {
	ew := &errWriter{w: w}
	c := r.Summary.Counts

	ew.printf("ABIF redaction: %s mode\n", r.Mode)
	ew.printf("Source: %s\n", r.Source)
	if r.Output != "" {
		ew.printf("Output: %s\n", r.Output)
	}
	ew.println(strings.Repeat("─", 60))
	ew.printf("Targets: %d  Other files: %d\n", r.Summary.Targets, r.Summary.Passthrough)
	ew.printf("Redacted: %d  Unredacted: %d  Copied: %d  Planned: %d  Failed: %d  Skipped: %d\n",
		c.Redacted, c.Unredacted, c.Copied, c.Planned, c.Failed, c.Skipped)
	ew.println(strings.Repeat("─", 60))

	if len(r.Items) == 0 {
		ew.println("\nNo files found.")
		return ew.err
	}

	if missing := untokenized(r); len(missing) > 0 {
		ew.printf("\n[!] NO ACCESSION NUMBER IN NAME (%d)\n", len(missing))
		ew.println(strings.Repeat("─", 40))
		for _, it := range missing {
			ew.printf("  %s\n", it.Source)
		}
	}

	grouped := groupByStatus(r.Items)
	for _, st := range statusOrder {
		items := grouped[st]
		if len(items) == 0 {
			continue
		}
		if !t.Verbose && !isProblem(st) {
			continue
		}

		ew.printf("\n%s %s (%d)\n", statusIcon(st), strings.ToUpper(string(st)), len(items))
		ew.println(strings.Repeat("─", 40))
		for _, it := range items {
			if it.Dest != "" {
				ew.printf("  %s -> %s\n", it.Source, it.Dest)
			} else {
				ew.printf("  %s\n", it.Source)
			}
			if d := detail(it); d != "" {
				ew.printf("    %s\n", d)
			}
		}
	}

	if line, _ := verdict(r); line != "" {
		ew.printf("\n%s\n", line)
	}

	ew.printf("\n%s\n", strings.Repeat("─", 60))
	ew.printf("Completed in %dms (discover: %dms, redact: %dms, copy: %dms)\n",
		r.Timing.TotalMs, r.Timing.DiscoverMs, r.Timing.RedactMs, r.Timing.CopyMs)

	return ew.err
}

// errWriter wraps an io.Writer and captures the first error.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...any) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}

func (ew *errWriter) println(s string) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintln(ew.w, s)
}

func isProblem(s report.Status) bool {
	return s == report.StatusFailed || s == report.StatusUnredacted || s == report.StatusSkipped
}

func statusIcon(s report.Status) string {
	switch s {
	case report.StatusFailed:
		return "[!!]"
	case report.StatusUnredacted:
		return "[!]"
	case report.StatusSkipped:
		return "[-]"
	default:
		return "[ok]"
	}
}
