package pipeline

import (
	"context"

	"github.com/dshills/abifredact/internal/discover"
	"github.com/dshills/abifredact/internal/fsx"
	"github.com/dshills/abifredact/internal/redact"
	"github.com/dshills/abifredact/internal/report"
)

// Redact writes a redacted copy of every target into the output tree and
// returns one item per target, in input order.
func (p *Pipeline) Redact(ctx context.Context, targets []discover.FileRecord) []report.Item {
	jobs := p.planTargets(targets)
	items := make([]report.Item, len(jobs))
	p.each(ctx, len(jobs), func(ctx context.Context, i int) {
		items[i] = p.redactOne(ctx, jobs[i])
	})
	return items
}

func (p *Pipeline) redactOne(ctx context.Context, j job) report.Item {
	if j.err != nil {
		p.log.Error("file not redacted", "file", j.rec.SourcePath, "error", j.err)
		return failed(report.KindTarget, j, j.err)
	}
	if err := ctx.Err(); err != nil {
		return failed(report.KindTarget, j, err)
	}

	if err := p.dirs.Ensure(j.dir); err != nil {
		err = &FileError{Op: OpMkdir, Path: j.dir, Err: err}
		p.log.Error("file not redacted", "file", j.rec.SourcePath, "error", err)
		return failed(report.KindTarget, j, err)
	}

	payload, err := redact.ReadPayloadFile(j.rec.SourcePath)
	if err != nil {
		err = &FileError{Op: OpRead, Path: j.rec.SourcePath, Err: err}
		p.log.Error("file not redacted", "file", j.rec.SourcePath, "error", err)
		return failed(report.KindTarget, j, err)
	}

	out, n := redact.Anonymize(payload, j.token)
	data := out.Bytes()

	if err := fsx.WriteFileAtomic(j.dir, j.name, data, filePerm); err != nil {
		err = &FileError{Op: OpWrite, Path: j.dest(), Err: err}
		p.log.Error("file not redacted", "file", j.rec.SourcePath, "error", err)
		return failed(report.KindTarget, j, err)
	}

	item := report.Item{
		Source:       j.rec.SourcePath,
		Dest:         j.dest(),
		Kind:         report.KindTarget,
		Status:       report.StatusRedacted,
		TokenFound:   j.token != "",
		Replacements: n,
		Bytes:        int64(len(data)),
	}
	switch {
	case j.token == "":
		item.Status = report.StatusUnredacted
		item.Reason = report.ReasonNoNameToken
	case n == 0:
		item.Status = report.StatusUnredacted
		item.Reason = report.ReasonNoContentToken
	}

	if item.Status == report.StatusUnredacted {
		p.log.Warn("file written without redaction", "file", j.rec.SourcePath, "reason", item.Reason)
	} else {
		p.log.Debug("file redacted", "file", j.rec.SourcePath, "dest", item.Dest, "replacements", n)
	}
	return item
}

// Preview plans the targets without touching the filesystem. Items carry
// StatusPlanned, or StatusFailed for destination collisions.
func (p *Pipeline) Preview(targets []discover.FileRecord) []report.Item {
	jobs := p.planTargets(targets)
	items := make([]report.Item, len(jobs))
	for i, j := range jobs {
		if j.err != nil {
			items[i] = failed(report.KindTarget, j, j.err)
			continue
		}
		items[i] = report.Item{
			Source:     j.rec.SourcePath,
			Dest:       j.dest(),
			Kind:       report.KindTarget,
			Status:     report.StatusPlanned,
			TokenFound: j.token != "",
		}
		if j.token == "" {
			items[i].Reason = report.ReasonNoNameToken
		}
	}
	return items
}
