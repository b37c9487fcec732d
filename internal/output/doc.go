// Package output formats run reports for display or machine consumption.
//
// Three formats are supported:
//   - text     human-readable terminal output (default)
//   - json     full structured JSON report
//   - markdown summary table plus per-status sections, suitable for tickets
//
// Use [GetWriter] to obtain a [Writer] for a given format string, then call
// [Writer.Write] with an [io.Writer] and a [*report.Report]. [Write]
// handles destination selection.
package output
