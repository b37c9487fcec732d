package fsx

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFileAtomic_SuccessAndNoTempLeft(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, WriteFileAtomic(dir, "a.ab1", []byte("hello"), 0o644))

	b, err := os.ReadFile(filepath.Join(dir, "a.ab1"))
	require.NoError(t, err)
	assert.Equal(t, "hello", string(b))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.False(t, strings.HasPrefix(e.Name(), ".a.ab1.tmp-"), "temp file left behind: %s", e.Name())
	}
}

func TestWriteFileAtomic_Replaces(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, WriteFileAtomic(dir, "a.ab1", []byte("old contents"), 0o644))
	require.NoError(t, WriteFileAtomic(dir, "a.ab1", []byte("new"), 0o644))

	b, err := os.ReadFile(filepath.Join(dir, "a.ab1"))
	require.NoError(t, err)
	assert.Equal(t, "new", string(b))
}

func TestWriteFileAtomic_RenameFail_CleanupTemp(t *testing.T) {
	dir := t.TempDir()

	old := renameFunc
	renameFunc = func(oldpath, newpath string) error {
		return os.ErrPermission
	}
	defer func() { renameFunc = old }()

	err := WriteFileAtomic(dir, "a.ab1", []byte("hello"), 0o644)
	require.Error(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestWriteFileAtomic_TargetIsDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "a.ab1"), 0o755))

	err := WriteFileAtomic(dir, "a.ab1", []byte("hello"), 0o644)
	require.Error(t, err)
	assert.True(t, IsPathTypeConflict(err), "got %T %v", err, err)
}

func TestCopyFile_PreservesModeAndMtime(t *testing.T) {
	src := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(src, []byte("plate notes"), 0o600))
	mtime := time.Date(2020, 5, 17, 10, 30, 0, 0, time.UTC)
	require.NoError(t, os.Chtimes(src, mtime, mtime))

	dstDir := t.TempDir()
	require.NoError(t, CopyFile(src, dstDir, "notes.txt"))

	dst := filepath.Join(dstDir, "notes.txt")
	b, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "plate notes", string(b))

	fi, err := os.Stat(dst)
	require.NoError(t, err)
	assert.True(t, fi.ModTime().Equal(mtime), "mtime = %v, want %v", fi.ModTime(), mtime)
	assert.Equal(t, os.FileMode(0o600), fi.Mode().Perm())
}

func TestCopyFile_MissingSource(t *testing.T) {
	err := CopyFile(filepath.Join(t.TempDir(), "nope"), t.TempDir(), "nope")
	assert.True(t, os.IsNotExist(err), "got %v", err)
}

func TestDirMaker_ConcurrentEnsure(t *testing.T) {
	root := t.TempDir()
	m, err := NewDirMaker(0o755, 0)
	require.NoError(t, err)

	target := filepath.Join(root, "plateA", "sub")
	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- m.Ensure(target)
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
	fi, err := os.Stat(target)
	require.NoError(t, err)
	assert.True(t, fi.IsDir())
	assert.Equal(t, 1, m.Len())
}

func TestDirMaker_FileInTheWay(t *testing.T) {
	root := t.TempDir()
	blocker := filepath.Join(root, "plateA")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	m, err := NewDirMaker(0o755, 4)
	require.NoError(t, err)
	assert.Error(t, m.Ensure(blocker))
	assert.Equal(t, 0, m.Len())
}
