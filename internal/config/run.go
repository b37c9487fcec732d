package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dshills/abifredact/internal/redact"
)

// Error reports an invalid configuration.
type Error struct {
	Field string
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.Field, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// IsError reports whether err is a configuration error.
func IsError(err error) bool {
	var e *Error
	return errors.As(err, &e)
}

// Run is the validated, read-only configuration for a single run.
type Run struct {
	Source     string
	Output     string
	Pattern    string
	Extension  string
	CopyOthers bool
	Workers    int
	Exclude    []string
}

// ForRun validates cfg against a source and output directory. Both paths
// are made absolute. The output directory is excluded from discovery when
// it lies inside the source tree.
func (c Config) ForRun(source, output string) (Run, error) {
	if strings.TrimSpace(source) == "" {
		return Run{}, &Error{Field: "source", Err: errors.New("source directory is required")}
	}
	if strings.TrimSpace(output) == "" {
		return Run{}, &Error{Field: "output", Err: errors.New("output directory is required")}
	}
	src, err := filepath.Abs(source)
	if err != nil {
		return Run{}, &Error{Field: "source", Err: err}
	}
	out, err := filepath.Abs(output)
	if err != nil {
		return Run{}, &Error{Field: "output", Err: err}
	}
	if src == out {
		return Run{}, &Error{Field: "output", Err: errors.New("output directory must differ from source")}
	}
	// Files are mirrored to <out>/<parent>, which would land inside the source.
	if isUnder(src, out) {
		return Run{}, &Error{Field: "output", Err: errors.New("output directory must not contain the source")}
	}

	if _, err := redact.NewMatcher(c.Pattern); err != nil {
		return Run{}, &Error{Field: "pattern", Err: err}
	}
	ext := c.Extension
	if ext == "" {
		ext = redact.DefaultExtension
	}
	if !strings.HasPrefix(ext, ".") {
		return Run{}, &Error{Field: "extension", Err: fmt.Errorf("%q must start with '.'", ext)}
	}

	exclude := append([]string(nil), c.Exclude...)
	if isUnder(out, src) {
		exclude = append(exclude, out)
	}

	return Run{
		Source:     src,
		Output:     out,
		Pattern:    c.Pattern,
		Extension:  ext,
		CopyOthers: c.CopyOthers,
		Workers:    ClampWorkers(c.Workers),
		Exclude:    exclude,
	}, nil
}

// ClampWorkers limits n to [MinWorkers, MaxWorkers].
func ClampWorkers(n int) int {
	if n < MinWorkers {
		return MinWorkers
	}
	if n > MaxWorkers {
		return MaxWorkers
	}
	return n
}

// Redactor builds the name and content redactor for the run.
func (r Run) Redactor() (*redact.Redactor, error) {
	m, err := redact.NewMatcher(r.Pattern)
	if err != nil {
		return nil, &Error{Field: "pattern", Err: err}
	}
	return redact.NewRedactor(m, r.Extension), nil
}

func isUnder(path, base string) bool {
	return strings.HasPrefix(path, base+string(filepath.Separator))
}
