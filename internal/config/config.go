package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/dshills/abifredact/internal/redact"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const appName = "abifredact"

// Worker bounds.
const (
	MinWorkers = 1
	MaxWorkers = 32
)

// Config represents the abifredact configuration.
type Config struct {
	// Pattern is an RE2 regular expression matched at the start of each
	// underscore-separated file-name segment.
	Pattern    string   `yaml:"pattern" json:"pattern"`
	Extension  string   `yaml:"extension" json:"extension"`
	CopyOthers bool     `yaml:"copyOthers" json:"copyOthers"`
	Workers    int      `yaml:"workers" json:"workers"`
	Format     string   `yaml:"format" json:"format"`
	Exclude    []string `yaml:"exclude,omitempty" json:"exclude,omitempty"`
}

// Default returns a Config with all defaults applied.
func Default() Config {
	return Config{
		Pattern:    redact.DefaultPattern,
		Extension:  redact.DefaultExtension,
		CopyOthers: true,
		Workers:    1,
		Format:     "text",
	}
}

// ConfigDir returns the platform-appropriate config directory for abifredact.
func ConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", appName), nil
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, appName), nil
		}
		return filepath.Join(home, "AppData", "Roaming", appName), nil
	default:
		return filepath.Join(home, ".config", appName), nil
	}
}

// ConfigPath returns the full path to the default config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// LoadFile reads the config file at path on top of the defaults. A missing
// file yields the defaults and a nil error.
func LoadFile(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}
	// Keys absent from the file keep their default values.
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path as YAML, creating parent directories.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Load builds the effective config by merging: defaults <- file <- env <- overrides.
// path selects the config file; empty means [ConfigPath]. The overrides map
// comes from CLI flags (only explicitly set values should be present).
func Load(path string, overrides map[string]string) (Config, error) {
	if path == "" {
		p, err := ConfigPath()
		if err != nil {
			return Config{}, err
		}
		path = p
	}

	cfg, err := LoadFile(path)
	if err != nil {
		return Config{}, err
	}

	// A missing .env is fine.
	_ = godotenv.Load()

	if err := mergeEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := mergeOverrides(&cfg, overrides); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

var envKeys = map[string]string{
	"ABIFREDACT_PATTERN":     "pattern",
	"ABIFREDACT_EXTENSION":   "extension",
	"ABIFREDACT_COPY_OTHERS": "copyOthers",
	"ABIFREDACT_WORKERS":     "workers",
	"ABIFREDACT_FORMAT":      "format",
	"ABIFREDACT_EXCLUDE":     "exclude",
}

func mergeEnv(cfg *Config) error {
	for env, key := range envKeys {
		v := os.Getenv(env)
		if v == "" {
			continue
		}
		if err := SetField(cfg, key, v); err != nil {
			return fmt.Errorf("%s: %w", env, err)
		}
	}
	return nil
}

func mergeOverrides(cfg *Config, overrides map[string]string) error {
	for key, v := range overrides {
		if v == "" {
			continue
		}
		if err := SetField(cfg, key, v); err != nil {
			return fmt.Errorf("flag %s: %w", key, err)
		}
	}
	return nil
}

// Keys lists the keys accepted by SetField.
func Keys() []string {
	return []string{"pattern", "extension", "copyOthers", "workers", "format", "exclude"}
}

// SetField sets a single config field by key name. Returns error if key is unknown.
func SetField(cfg *Config, key, value string) error {
	switch key {
	case "pattern":
		cfg.Pattern = value
	case "extension":
		cfg.Extension = value
	case "copyOthers":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("copyOthers must be true or false: %w", err)
		}
		cfg.CopyOthers = b
	case "workers":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("workers must be an integer: %w", err)
		}
		cfg.Workers = n
	case "format":
		cfg.Format = value
	case "exclude":
		cfg.Exclude = splitList(value)
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
