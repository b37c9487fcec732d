package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dshills/abifredact/internal/redact"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for k := range envKeys {
		t.Setenv(k, "")
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, redact.DefaultPattern, cfg.Pattern)
	assert.Equal(t, ".ab1", cfg.Extension)
	assert.True(t, cfg.CopyOthers)
	assert.Equal(t, 1, cfg.Workers)
	assert.Equal(t, "text", cfg.Format)
}

func TestMergeEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("ABIFREDACT_PATTERN", `[A-Z]{3}\d+`)
	t.Setenv("ABIFREDACT_EXTENSION", ".scf")
	t.Setenv("ABIFREDACT_COPY_OTHERS", "false")
	t.Setenv("ABIFREDACT_WORKERS", "4")
	t.Setenv("ABIFREDACT_FORMAT", "json")
	t.Setenv("ABIFREDACT_EXCLUDE", "tmp, archive")

	cfg := Default()
	require.NoError(t, mergeEnv(&cfg))

	assert.Equal(t, `[A-Z]{3}\d+`, cfg.Pattern)
	assert.Equal(t, ".scf", cfg.Extension)
	assert.False(t, cfg.CopyOthers)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, []string{"tmp", "archive"}, cfg.Exclude)
}

func TestMergeEnv_Invalid(t *testing.T) {
	tests := []struct {
		env, value string
	}{
		{"ABIFREDACT_WORKERS", "many"},
		{"ABIFREDACT_COPY_OTHERS", "sometimes"},
	}
	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.env, tt.value)
			cfg := Default()
			err := mergeEnv(&cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.env)
		})
	}
}

func TestMergeOverrides(t *testing.T) {
	cfg := Default()
	err := mergeOverrides(&cfg, map[string]string{
		"pattern":    `X\d+`,
		"copyOthers": "false",
		"workers":    "8",
		"format":     "markdown",
	})
	require.NoError(t, err)

	assert.Equal(t, `X\d+`, cfg.Pattern)
	assert.False(t, cfg.CopyOthers)
	assert.Equal(t, 8, cfg.Workers)
	assert.Equal(t, "markdown", cfg.Format)
}

func TestMergeOverrides_Nil(t *testing.T) {
	cfg := Default()
	require.NoError(t, mergeOverrides(&cfg, nil))
	assert.Equal(t, Default(), cfg)
}

func TestSetField_UnknownKey(t *testing.T) {
	cfg := Default()
	assert.Error(t, SetField(&cfg, "nonexistent", "value"))
}

func TestSetField_AllKeys(t *testing.T) {
	values := map[string]string{
		"pattern":    "P",
		"extension":  ".x",
		"copyOthers": "true",
		"workers":    "2",
		"format":     "json",
		"exclude":    "a,b",
	}
	cfg := Default()
	for _, k := range Keys() {
		v, ok := values[k]
		require.True(t, ok, "no test value for key %q", k)
		assert.NoError(t, SetField(&cfg, k, v), "SetField(%q)", k)
	}
}

func TestConfigDir_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-test")

	dir, err := ConfigDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/tmp/xdg-test", "abifredact"), dir)

	path, err := ConfigPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "config.yaml"), path)
}

func TestLoadFile_Missing(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "none.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFile_PartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("copyOthers: false\nworkers: 3\n"), 0o644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.False(t, cfg.CopyOthers)
	assert.Equal(t, 3, cfg.Workers)
	assert.Equal(t, redact.DefaultPattern, cfg.Pattern)
}

func TestLoadFile_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("workers: [oops\n"), 0o644))

	_, err := LoadFile(path)
	assert.Error(t, err)
}

func TestSaveAndLoad(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Workers = 6
	cfg.Exclude = []string{"scratch"}
	require.NoError(t, Save(path, cfg))

	got, err := Load(path, map[string]string{"format": "json"})
	require.NoError(t, err)
	assert.Equal(t, 6, got.Workers)
	assert.Equal(t, "json", got.Format)
	assert.Equal(t, []string{"scratch"}, got.Exclude)
}

func TestConfigPrecedence(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("format: markdown\nworkers: 2\n"), 0o644))
	t.Setenv("ABIFREDACT_FORMAT", "json")

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Format, "env should beat file")

	cfg, err = Load(path, map[string]string{"format": "text"})
	require.NoError(t, err)
	assert.Equal(t, "text", cfg.Format, "flag should beat env")
	assert.Equal(t, 2, cfg.Workers)
}

func TestForRun(t *testing.T) {
	src := t.TempDir()
	out := filepath.Join(src, "redacted")

	cfg := Default()
	cfg.Workers = 100
	run, err := cfg.ForRun(src, out)
	require.NoError(t, err)

	assert.Equal(t, MaxWorkers, run.Workers)
	assert.Equal(t, []string{out}, run.Exclude, "nested output should be excluded")

	r, err := run.Redactor()
	require.NoError(t, err)
	name, tok := r.PopAccession("12-345-678910_x.ab1")
	assert.Equal(t, "x.ab1", name)
	assert.NotEmpty(t, tok)
}

func TestForRun_SiblingOutput(t *testing.T) {
	base := t.TempDir()
	run, err := Default().ForRun(filepath.Join(base, "plates"), filepath.Join(base, "plates-redacted"))
	require.NoError(t, err)
	assert.Empty(t, run.Exclude)
}

func TestForRun_Invalid(t *testing.T) {
	base := t.TempDir()
	src := filepath.Join(base, "plates")

	tests := []struct {
		name   string
		mutate func(*Config)
		src    string
		out    string
		field  string
	}{
		{"missing source", nil, "", "/tmp/out", "source"},
		{"missing output", nil, src, " ", "output"},
		{"same dirs", nil, src, src, "output"},
		{"output contains source", nil, src, base, "output"},
		{"output is an ancestor", nil, filepath.Join(src, "run1"), base, "output"},
		{"bad pattern", func(c *Config) { c.Pattern = "(" }, src, "/tmp/out", "pattern"},
		{"bad extension", func(c *Config) { c.Extension = "ab1" }, src, "/tmp/out", "extension"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			if tt.mutate != nil {
				tt.mutate(&cfg)
			}
			_, err := cfg.ForRun(tt.src, tt.out)
			require.Error(t, err)

			var cerr *Error
			require.ErrorAs(t, err, &cerr)
			assert.Equal(t, tt.field, cerr.Field)
		})
	}
}

func TestClampWorkers(t *testing.T) {
	tests := []struct{ in, want int }{
		{-1, 1}, {0, 1}, {1, 1}, {16, 16}, {32, 32}, {33, 32},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClampWorkers(tt.in), "ClampWorkers(%d)", tt.in)
	}
}
