package pipeline

import (
	"errors"
	"fmt"
)

// Operations recorded on a FileError.
const (
	OpPlan  = "plan"
	OpMkdir = "mkdir"
	OpRead  = "read"
	OpWrite = "write"
	OpCopy  = "copy"
)

// FileError is an I/O failure confined to one source file.
type FileError struct {
	Op   string
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileError) Unwrap() error { return e.Err }

// CollisionError means a destination was already claimed by another source
// in the same run.
type CollisionError struct {
	Dest      string
	ClaimedBy string
}

func (e *CollisionError) Error() string {
	return fmt.Sprintf("destination %q already claimed by %q", e.Dest, e.ClaimedBy)
}

// IsCollision reports whether err is a *CollisionError.
func IsCollision(err error) bool {
	var e *CollisionError
	return errors.As(err, &e)
}
