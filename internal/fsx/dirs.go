package fsx

import (
	"os"
	"path/filepath"

	lru "github.com/hashicorp/golang-lru/v2"
)

const defaultDirCacheSize = 1024

// DirMaker creates directories on demand and remembers the ones it has
// already ensured, so repeat calls skip the MkdirAll syscalls. It is safe for
// concurrent use; two workers racing on the same directory both succeed.
type DirMaker struct {
	perm  os.FileMode
	known *lru.Cache[string, struct{}]
}

// NewDirMaker returns a DirMaker that creates directories with perm and
// remembers up to size of them. size <= 0 selects a default.
func NewDirMaker(perm os.FileMode, size int) (*DirMaker, error) {
	if size <= 0 {
		size = defaultDirCacheSize
	}
	c, err := lru.New[string, struct{}](size)
	if err != nil {
		return nil, err
	}
	return &DirMaker{perm: perm, known: c}, nil
}

// Ensure creates dir and any missing parents.
func (m *DirMaker) Ensure(dir string) error {
	dir = filepath.Clean(dir)
	if m.known.Contains(dir) {
		return nil
	}
	// MkdirAll treats an existing directory as success.
	if err := os.MkdirAll(dir, m.perm); err != nil {
		return err
	}
	m.known.Add(dir, struct{}{})
	return nil
}

// Len returns the number of remembered directories.
func (m *DirMaker) Len() int {
	return m.known.Len()
}
