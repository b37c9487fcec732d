// Package report defines the structured result of a redaction run.
//
// A [Report] carries one [Item] per source file in the order the files were
// discovered, a [Summary] with per-status counts, and timing. Reports never
// contain accession numbers; an item only records whether one was found.
package report
