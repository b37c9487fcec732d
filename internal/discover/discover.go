// Package discover walks a source tree and partitions its files into
// redaction targets and pass-through files.
package discover

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FileRecord is a regular file found under the source root.
type FileRecord struct {
	// SourcePath is absolute and clean.
	SourcePath string `json:"sourcePath"`
	// RelPath is SourcePath relative to the root.
	RelPath  string `json:"relPath"`
	IsTarget bool   `json:"isTarget"`
}

// Parent returns the name of the directory directly containing the file.
// Only this one level is mirrored into the output tree.
func (f FileRecord) Parent() string {
	return filepath.Base(filepath.Dir(f.SourcePath))
}

// Name returns the file's base name.
func (f FileRecord) Name() string {
	return filepath.Base(f.SourcePath)
}

// Skipped is an entry that was neither a target nor a pass-through file.
type Skipped struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

// Result holds the two partitions in walk order (lexical within each
// directory), plus anything that was skipped.
type Result struct {
	Root        string
	Targets     []FileRecord
	Passthrough []FileRecord
	Skipped     []Skipped
}

// Total returns the number of classified files.
func (r Result) Total() int {
	return len(r.Targets) + len(r.Passthrough)
}

// Classifier decides which file names are redaction targets.
type Classifier interface {
	IsTarget(name string) bool
}

// Options controls a walk.
type Options struct {
	// Targets classifies files by base name. With a nil Targets every file
	// is pass-through.
	Targets Classifier
	// Exclude lists directories that are not descended into. Relative
	// entries are resolved against the root.
	Exclude []string
}

// Error is returned when the source tree cannot be read. It is fatal for
// the whole run.
type Error struct {
	Path string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("discovering %q: %v", e.Path, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// IsError reports whether err is a discovery error.
func IsError(err error) bool {
	var e *Error
	return errors.As(err, &e)
}

// Discover walks root and classifies every regular file. An empty root
// yields an empty Result. Symlinks and other non-regular entries are
// reported in Result.Skipped rather than classified.
func Discover(root string, opts Options) (Result, error) {
	if strings.TrimSpace(root) == "" {
		return Result{}, nil
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return Result{}, &Error{Path: root, Err: err}
	}
	fi, err := os.Stat(abs)
	if err != nil {
		return Result{}, &Error{Path: abs, Err: err}
	}
	if !fi.IsDir() {
		return Result{}, &Error{Path: abs, Err: fmt.Errorf("not a directory")}
	}

	excluded := buildExcluded(abs, opts.Exclude)
	res := Result{Root: abs}

	err = filepath.WalkDir(abs, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			if path != abs && isExcluded(path, excluded) {
				return filepath.SkipDir
			}
			return nil
		}

		if !d.Type().IsRegular() {
			res.Skipped = append(res.Skipped, Skipped{Path: path, Reason: describe(d.Type())})
			return nil
		}

		rel, err := filepath.Rel(abs, path)
		if err != nil {
			return err
		}
		rec := FileRecord{
			SourcePath: path,
			RelPath:    rel,
			IsTarget:   opts.Targets != nil && opts.Targets.IsTarget(d.Name()),
		}
		if rec.IsTarget {
			res.Targets = append(res.Targets, rec)
		} else {
			res.Passthrough = append(res.Passthrough, rec)
		}
		return nil
	})
	if err != nil {
		return Result{}, &Error{Path: abs, Err: err}
	}
	return res, nil
}

func describe(m fs.FileMode) string {
	switch {
	case m&fs.ModeSymlink != 0:
		return "symlink"
	case m&fs.ModeNamedPipe != 0:
		return "named pipe"
	case m&fs.ModeSocket != 0:
		return "socket"
	case m&fs.ModeDevice != 0:
		return "device"
	default:
		return "not a regular file"
	}
}

func buildExcluded(root string, dirs []string) []string {
	out := make([]string, 0, len(dirs))
	for _, d := range dirs {
		d = strings.TrimSpace(d)
		if d == "" {
			continue
		}
		if !filepath.IsAbs(d) {
			d = filepath.Join(root, d)
		}
		out = append(out, filepath.Clean(d))
	}
	return out
}

func isExcluded(path string, excluded []string) bool {
	path = filepath.Clean(path)
	for _, base := range excluded {
		if path == base || strings.HasPrefix(path, base+string(filepath.Separator)) {
			return true
		}
	}
	return false
}
