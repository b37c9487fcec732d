package output

import (
	"io"
	"strings"

	"github.com/dshills/abifredact/internal/report"
)

// MarkdownWriter outputs a markdown report with a summary table and a
// collapsible section per status.
type MarkdownWriter struct{}

func (m *MarkdownWriter) Write(w io.Writer, r *report.Report) error {
	ew := &errWriter{w: w}
	c := r.Summary.Counts

	ew.printf("## ABIF Redaction Report\n\n")
	ew.printf("- Mode: `%s`\n", r.Mode)
	ew.printf("- Source: `%s`\n", r.Source)
	if r.Output != "" {
		ew.printf("- Output: `%s`\n", r.Output)
	}
	ew.printf("- Run: `%s`\n\n", r.RunID)

	ew.printf("| Status | Count |\n")
	ew.printf("|--------|-------|\n")
	ew.printf("| Redacted | %d |\n", c.Redacted)
	ew.printf("| Unredacted | %d |\n", c.Unredacted)
	ew.printf("| Copied | %d |\n", c.Copied)
	ew.printf("| Planned | %d |\n", c.Planned)
	ew.printf("| Failed | %d |\n", c.Failed)
	ew.printf("| Skipped | %d |\n", c.Skipped)
	ew.printf("| **Total** | **%d** |\n\n", len(r.Items))

	switch line, ok := verdict(r); {
	case line == "":
	case ok:
		ew.printf("%s :white_check_mark:\n\n", line)
	default:
		ew.printf("%s :warning:\n\n", line)
	}

	if missing := untokenized(r); len(missing) > 0 {
		ew.printf("**No accession number in name:**\n\n")
		for _, it := range missing {
			ew.printf("- `%s`\n", mdEscape(it.Source))
		}
		ew.printf("\n")
	}

	grouped := groupByStatus(r.Items)
	for _, st := range statusOrder {
		items := grouped[st]
		if len(items) == 0 {
			continue
		}
		ew.printf("<details>\n<summary>%s %s (%d)</summary>\n\n",
			mdStatusIcon(st), strings.ToUpper(string(st)), len(items))
		ew.printf("| Source | Destination | Detail |\n")
		ew.printf("|--------|-------------|--------|\n")
		for _, it := range items {
			ew.printf("| `%s` | %s | %s |\n", mdEscape(it.Source), mdCode(it.Dest), mdEscape(detail(it)))
		}
		ew.printf("\n</details>\n\n")
	}

	ew.printf("*Completed in %dms (discover: %dms, redact: %dms, copy: %dms)*\n",
		r.Timing.TotalMs, r.Timing.DiscoverMs, r.Timing.RedactMs, r.Timing.CopyMs)

	return ew.err
}

func mdStatusIcon(s report.Status) string {
	switch s {
	case report.StatusFailed:
		return ":red_circle:"
	case report.StatusUnredacted:
		return ":orange_circle:"
	case report.StatusSkipped:
		return ":white_circle:"
	default:
		return ":green_circle:"
	}
}

func mdCode(s string) string {
	if s == "" {
		return ""
	}
	return "`" + mdEscape(s) + "`"
}

func mdEscape(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
