package pipeline

import (
	"context"
	"os"

	"github.com/dshills/abifredact/internal/discover"
	"github.com/dshills/abifredact/internal/fsx"
	"github.com/dshills/abifredact/internal/report"
)

// CopyAll copies pass-through files unchanged into the output tree, keeping
// permission bits and modification times.
func (p *Pipeline) CopyAll(ctx context.Context, files []discover.FileRecord) []report.Item {
	jobs := p.planCopies(files)
	items := make([]report.Item, len(jobs))
	p.each(ctx, len(jobs), func(ctx context.Context, i int) {
		items[i] = p.copyOne(ctx, jobs[i])
	})
	return items
}

func (p *Pipeline) copyOne(ctx context.Context, j job) report.Item {
	if j.err != nil {
		p.log.Error("file not copied", "file", j.rec.SourcePath, "error", j.err)
		return failed(report.KindPassthrough, j, j.err)
	}
	if err := ctx.Err(); err != nil {
		return failed(report.KindPassthrough, j, err)
	}

	if err := p.dirs.Ensure(j.dir); err != nil {
		err = &FileError{Op: OpMkdir, Path: j.dir, Err: err}
		p.log.Error("file not copied", "file", j.rec.SourcePath, "error", err)
		return failed(report.KindPassthrough, j, err)
	}
	if err := fsx.CopyFile(j.rec.SourcePath, j.dir, j.name); err != nil {
		err = &FileError{Op: OpCopy, Path: j.rec.SourcePath, Err: err}
		p.log.Error("file not copied", "file", j.rec.SourcePath, "error", err)
		return failed(report.KindPassthrough, j, err)
	}

	var size int64
	if fi, err := os.Stat(j.dest()); err == nil {
		size = fi.Size()
	}
	p.log.Debug("file copied", "file", j.rec.SourcePath, "dest", j.dest())
	return report.Item{
		Source: j.rec.SourcePath,
		Dest:   j.dest(),
		Kind:   report.KindPassthrough,
		Status: report.StatusCopied,
		Bytes:  size,
	}
}

// PreviewCopies plans pass-through copies without touching the filesystem.
func (p *Pipeline) PreviewCopies(files []discover.FileRecord) []report.Item {
	jobs := p.planCopies(files)
	items := make([]report.Item, len(jobs))
	for i, j := range jobs {
		if j.err != nil {
			items[i] = failed(report.KindPassthrough, j, j.err)
			continue
		}
		items[i] = report.Item{
			Source: j.rec.SourcePath,
			Dest:   j.dest(),
			Kind:   report.KindPassthrough,
			Status: report.StatusPlanned,
		}
	}
	return items
}
