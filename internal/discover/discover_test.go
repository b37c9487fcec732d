package discover

import (
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/dshills/abifredact/internal/redact"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTree(t *testing.T, root string, files ...string) {
	t.Helper()
	for _, f := range files {
		p := filepath.Join(root, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(f), 0o644))
	}
}

var ab1 = redact.NewRedactor(redact.MustMatcher(""), ".ab1")

func relPaths(recs []FileRecord) []string {
	out := make([]string, 0, len(recs))
	for _, r := range recs {
		out = append(out, filepath.ToSlash(r.RelPath))
	}
	return out
}

func TestDiscover_EmptyRoot(t *testing.T) {
	res, err := Discover("", Options{Targets: ab1})
	require.NoError(t, err)
	assert.Empty(t, res.Targets)
	assert.Empty(t, res.Passthrough)
}

func TestDiscover_MissingRoot(t *testing.T) {
	_, err := Discover(filepath.Join(t.TempDir(), "missing"), Options{Targets: ab1})
	require.Error(t, err)
	assert.True(t, IsError(err))
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestDiscover_RootIsFile(t *testing.T) {
	f := filepath.Join(t.TempDir(), "x.ab1")
	require.NoError(t, os.WriteFile(f, nil, 0o644))
	_, err := Discover(f, Options{Targets: ab1})
	assert.True(t, IsError(err))
}

func TestDiscover_Partition(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root,
		"plateA/12-345-678910_sample.ab1",
		"plateA/notes.txt",
		"plateB/run_A01.ab1",
		"plateB/run_A01.AB1",
		"plateB/deep/x.ab1",
		"readme.md",
	)

	res, err := Discover(root, Options{Targets: ab1})
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{
		"plateA/12-345-678910_sample.ab1",
		"plateB/run_A01.ab1",
		"plateB/deep/x.ab1",
	}, relPaths(res.Targets))
	assert.ElementsMatch(t, []string{
		"plateA/notes.txt",
		"plateB/run_A01.AB1",
		"readme.md",
	}, relPaths(res.Passthrough))
	assert.Equal(t, 6, res.Total())

	seen := map[string]int{}
	for _, r := range append(append([]FileRecord{}, res.Targets...), res.Passthrough...) {
		seen[r.SourcePath]++
		assert.True(t, filepath.IsAbs(r.SourcePath))
	}
	for p, n := range seen {
		assert.Equal(t, 1, n, "%s classified %d times", p, n)
	}
}

func TestDiscover_Exclude(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root,
		"plateA/a.ab1",
		"out/plateA/a.ab1",
		"archive/old.ab1",
	)

	res, err := Discover(root, Options{
		Targets: ab1,
		Exclude:   []string{"out", filepath.Join(root, "archive")},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"plateA/a.ab1"}, relPaths(res.Targets))
	assert.Empty(t, res.Passthrough)
}

func TestDiscover_SymlinkSkipped(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need privileges on windows")
	}
	root := t.TempDir()
	writeTree(t, root, "plateA/a.ab1")
	require.NoError(t, os.Symlink(filepath.Join(root, "plateA", "a.ab1"), filepath.Join(root, "plateA", "link.ab1")))

	res, err := Discover(root, Options{Targets: ab1})
	require.NoError(t, err)
	assert.Equal(t, []string{"plateA/a.ab1"}, relPaths(res.Targets))
	require.Len(t, res.Skipped, 1)
	assert.Equal(t, "symlink", res.Skipped[0].Reason)
}

func TestDiscover_NilClassifier(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "plateA/a.ab1", "plateA/notes.txt")

	res, err := Discover(root, Options{})
	require.NoError(t, err)
	assert.Empty(t, res.Targets)
	assert.Len(t, res.Passthrough, 2)
}

func TestFileRecord_Parent(t *testing.T) {
	r := FileRecord{SourcePath: filepath.Join("/data", "run1", "plateA", "x.ab1")}
	assert.Equal(t, "plateA", r.Parent())
	assert.Equal(t, "x.ab1", r.Name())
}
