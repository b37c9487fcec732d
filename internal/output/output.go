package output

import (
	"fmt"
	"io"
	"os"

	"github.com/dshills/abifredact/internal/report"
)

// Formats lists the supported format names.
var Formats = []string{"text", "json", "markdown"}

// Writer writes a report in a specific format.
type Writer interface {
	Write(w io.Writer, r *report.Report) error
}

// GetWriter returns a writer for the specified format.
func GetWriter(format string) (Writer, error) {
	switch format {
	case "text", "":
		return &TextWriter{}, nil
	case "json":
		return &JSONWriter{}, nil
	case "markdown", "md":
		return &MarkdownWriter{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

// Write renders r with writer to outPath, or to stdout when outPath is empty.
func Write(writer Writer, r *report.Report, outPath string) error {
	if outPath == "" {
		return writer.Write(os.Stdout, r)
	}

	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	if err := writer.Write(f, r); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// statusOrder is the display order for items, problems first.
var statusOrder = []report.Status{
	report.StatusFailed,
	report.StatusUnredacted,
	report.StatusSkipped,
	report.StatusRedacted,
	report.StatusPlanned,
	report.StatusCopied,
}

func groupByStatus(items []report.Item) map[report.Status][]report.Item {
	m := make(map[report.Status][]report.Item)
	for _, it := range items {
		m[it.Status] = append(m[it.Status], it)
	}
	return m
}

// detail is the trailing explanation for an item, if any.
func detail(it report.Item) string {
	switch {
	case it.Error != "":
		return it.Error
	case it.Reason != "":
		return it.Reason
	case it.Replacements > 0:
		return fmt.Sprintf("%d replacement(s)", it.Replacements)
	}
	return ""
}

// untokenized returns planned targets whose names carry no accession number.
// They would be written without redaction.
func untokenized(r *report.Report) []report.Item {
	var out []report.Item
	for _, it := range r.Items {
		if it.Kind == report.KindTarget && it.Status == report.StatusPlanned && !it.TokenFound {
			out = append(out, it)
		}
	}
	return out
}

// verdict is the closing line of a report. ok is false when the line is a
// warning; line is empty when there is nothing to add.
func verdict(r *report.Report) (line string, ok bool) {
	c := r.Summary.Counts
	if c.Failed > 0 || c.Unredacted > 0 {
		return "", false
	}
	switch r.Mode {
	case "run":
		return "All target files redacted.", true
	case "scan":
		if n := len(untokenized(r)); n > 0 {
			return fmt.Sprintf("%d target(s) have no accession number in the name.", n), false
		}
		return "All target names carry an accession number.", true
	}
	return "", false
}
