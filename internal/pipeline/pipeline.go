package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/dshills/abifredact/internal/discover"
	"github.com/dshills/abifredact/internal/fsx"
	"github.com/dshills/abifredact/internal/redact"
	"github.com/dshills/abifredact/internal/report"
	"golang.org/x/sync/errgroup"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// Options configures a Pipeline.
type Options struct {
	// OutputRoot is where the mirrored tree is built.
	OutputRoot string
	// Workers bounds how many files are processed at once. Values below 1
	// mean sequential processing.
	Workers int
	Logger  *slog.Logger
}

// Pipeline redacts target files and copies pass-through files into the
// output tree.
type Pipeline struct {
	redactor *redact.Redactor
	out      string
	workers  int
	log      *slog.Logger
	dirs     *fsx.DirMaker

	mu      sync.Mutex
	claimed map[string]string
}

// New returns a Pipeline writing under opts.OutputRoot.
func New(r *redact.Redactor, opts Options) (*Pipeline, error) {
	if opts.OutputRoot == "" {
		return nil, fmt.Errorf("output root is required")
	}
	out, err := filepath.Abs(opts.OutputRoot)
	if err != nil {
		return nil, err
	}
	dirs, err := fsx.NewDirMaker(dirPerm, 0)
	if err != nil {
		return nil, err
	}
	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Pipeline{
		redactor: r,
		out:      out,
		workers:  workers,
		log:      log,
		dirs:     dirs,
		claimed:  make(map[string]string),
	}, nil
}

// OutputRoot returns the absolute output root.
func (p *Pipeline) OutputRoot() string {
	return p.out
}

// job is one planned file. token never leaves the package.
type job struct {
	rec   discover.FileRecord
	dir   string
	name  string
	token string
	err   error
}

func (j job) dest() string {
	return filepath.Join(j.dir, j.name)
}

// DestDir returns the output directory for rec.
func (p *Pipeline) DestDir(rec discover.FileRecord) string {
	return filepath.Join(p.out, rec.Parent())
}

func (p *Pipeline) claim(dest, src string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if other, ok := p.claimed[dest]; ok && other != src {
		return &CollisionError{Dest: dest, ClaimedBy: other}
	}
	p.claimed[dest] = src
	return nil
}

func (p *Pipeline) planTargets(targets []discover.FileRecord) []job {
	jobs := make([]job, len(targets))
	for i, rec := range targets {
		name, token := p.redactor.PopAccession(rec.SourcePath)
		j := job{rec: rec, dir: p.DestDir(rec), name: name, token: token}
		if err := p.claim(j.dest(), rec.SourcePath); err != nil {
			j.err = &FileError{Op: OpPlan, Path: rec.SourcePath, Err: err}
		}
		jobs[i] = j
	}
	return jobs
}

func (p *Pipeline) planCopies(files []discover.FileRecord) []job {
	jobs := make([]job, len(files))
	for i, rec := range files {
		j := job{rec: rec, dir: p.DestDir(rec), name: rec.Name()}
		if err := p.claim(j.dest(), rec.SourcePath); err != nil {
			j.err = &FileError{Op: OpPlan, Path: rec.SourcePath, Err: err}
		}
		jobs[i] = j
	}
	return jobs
}

// each runs fn for every index with at most p.workers in flight. Results
// are written by index, so order matches the input.
func (p *Pipeline) each(ctx context.Context, n int, fn func(ctx context.Context, i int)) {
	var g errgroup.Group
	g.SetLimit(p.workers)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			fn(ctx, i)
			return nil
		})
	}
	_ = g.Wait()
}

func failed(kind report.Kind, j job, err error) report.Item {
	return report.Item{
		Source:     j.rec.SourcePath,
		Dest:       j.dest(),
		Kind:       kind,
		Status:     report.StatusFailed,
		TokenFound: j.token != "",
		Error:      err.Error(),
	}
}

// SkippedItems converts discovery skips into report items.
func SkippedItems(entries []discover.Skipped) []report.Item {
	items := make([]report.Item, 0, len(entries))
	for _, s := range entries {
		items = append(items, report.Item{
			Source: s.Path,
			Status: report.StatusSkipped,
			Reason: s.Reason,
		})
	}
	return items
}
