package report

import (
	"time"

	"github.com/google/uuid"
)

// Kind says how a source file is handled.
type Kind string

const (
	KindTarget      Kind = "target"
	KindPassthrough Kind = "passthrough"
)

// Status is the outcome for a single file.
type Status string

const (
	// StatusRedacted: the token was removed from the name and blanked in the content.
	StatusRedacted Status = "redacted"
	// StatusUnredacted: the file was written but some sensitive content may remain.
	StatusUnredacted Status = "unredacted"
	StatusCopied     Status = "copied"
	StatusPlanned    Status = "planned"
	StatusFailed     Status = "failed"
	StatusSkipped    Status = "skipped"
)

// Reasons attached to unredacted and skipped items.
const (
	ReasonNoNameToken    = "no accession number in file name"
	ReasonNoContentToken = "accession number not found in file content"
)

// Item is the result for one source file.
type Item struct {
	Source       string `json:"source"`
	Dest         string `json:"dest,omitempty"`
	Kind         Kind   `json:"kind"`
	Status       Status `json:"status"`
	TokenFound   bool   `json:"tokenFound"`
	Replacements int    `json:"replacements"`
	Bytes        int64  `json:"bytes"`
	Reason       string `json:"reason,omitempty"`
	Error        string `json:"error,omitempty"`
}

// Counts holds per-status totals.
type Counts struct {
	Redacted   int `json:"redacted"`
	Unredacted int `json:"unredacted"`
	Copied     int `json:"copied"`
	Planned    int `json:"planned"`
	Failed     int `json:"failed"`
	Skipped    int `json:"skipped"`
}

// Summary provides an overview of a run.
type Summary struct {
	Targets     int    `json:"targets"`
	Passthrough int    `json:"passthrough"`
	Counts      Counts `json:"counts"`
}

// Timing contains phase durations.
type Timing struct {
	DiscoverMs int64 `json:"discoverMs"`
	RedactMs   int64 `json:"redactMs"`
	CopyMs     int64 `json:"copyMs"`
	TotalMs    int64 `json:"totalMs"`
}

// Report is the top-level output structure.
type Report struct {
	Tool       string    `json:"tool"`
	Version    string    `json:"version"`
	RunID      string    `json:"runId"`
	Mode       string    `json:"mode"`
	Source     string    `json:"source"`
	Output     string    `json:"output,omitempty"`
	Pattern    string    `json:"pattern"`
	Extension  string    `json:"extension"`
	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt"`
	Summary    Summary   `json:"summary"`
	Timing     Timing    `json:"timing"`
	Items      []Item    `json:"items"`
}

// New starts a report with a fresh run ID.
func New(tool, version, mode string) *Report {
	return &Report{
		Tool:      tool,
		Version:   version,
		RunID:     uuid.NewString(),
		Mode:      mode,
		StartedAt: time.Now().UTC(),
		Items:     []Item{},
	}
}

// Add appends items to the report.
func (r *Report) Add(items ...Item) {
	r.Items = append(r.Items, items...)
}

// Finalize stamps the finish time and recomputes the summary.
func (r *Report) Finalize() {
	r.FinishedAt = time.Now().UTC()
	r.Timing.TotalMs = r.FinishedAt.Sub(r.StartedAt).Milliseconds()
	r.Summary = ComputeSummary(r.Items)
}

// ComputeSummary counts items by kind and status.
func ComputeSummary(items []Item) Summary {
	var s Summary
	for _, it := range items {
		switch it.Kind {
		case KindTarget:
			s.Targets++
		case KindPassthrough:
			s.Passthrough++
		}
		switch it.Status {
		case StatusRedacted:
			s.Counts.Redacted++
		case StatusUnredacted:
			s.Counts.Unredacted++
		case StatusCopied:
			s.Counts.Copied++
		case StatusPlanned:
			s.Counts.Planned++
		case StatusFailed:
			s.Counts.Failed++
		case StatusSkipped:
			s.Counts.Skipped++
		}
	}
	return s
}

// Filter returns the items whose status is one of statuses.
func (r *Report) Filter(statuses ...Status) []Item {
	var out []Item
	for _, it := range r.Items {
		for _, s := range statuses {
			if it.Status == s {
				out = append(out, it)
				break
			}
		}
	}
	return out
}
