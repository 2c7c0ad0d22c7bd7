package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory layout configuration.
type Paths struct {
	// LibraryRoot is the operation root holding the ROM library.
	LibraryRoot string `toml:"library_root"`
	// MovedDirName is the fixed-name subdirectory, directly under the root,
	// that receives files excluded by a sort pass.
	MovedDirName string `toml:"moved_dir_name"`
	LogDir       string `toml:"log_dir"`
	HistoryDB    string `toml:"history_db"`
	// ReportName is the default report filename written under the root.
	ReportName string `toml:"report_name"`
}

// Sort contains defaults for the sort operation.
type Sort struct {
	// KeepLanguages is used when --keep is omitted on the command line.
	KeepLanguages []string `toml:"keep_languages"`
}

// Scan contains enumeration configuration.
type Scan struct {
	// ExtraExtensions extends the built-in ROM extension set.
	ExtraExtensions []string `toml:"extra_extensions"`
	// CaseInsensitiveFS folds case in moved-subtree containment checks, for
	// libraries on exFAT or NTFS mounts.
	CaseInsensitiveFS bool `toml:"case_insensitive_fs"`
}

// Logging contains configuration for structured log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for romuless.
type Config struct {
	Paths   Paths   `toml:"paths"`
	Sort    Sort    `toml:"sort"`
	Scan    Scan    `toml:"scan"`
	Logging Logging `toml:"logging"`
}

// SampleConfig returns the annotated sample configuration file contents.
func SampleConfig() string { return sampleConfig }

// DefaultConfigPath returns the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/romuless/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized. The boolean reports
// whether a config file was actually found.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}
	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		if _, err := os.Stat(expanded); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}
	projectPath, err := filepath.Abs("romuless.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}
	return defaultPath, false, nil
}

func (c *Config) normalize() error {
	var err error
	if strings.TrimSpace(c.Paths.LibraryRoot) == "" {
		c.Paths.LibraryRoot = defaultLibraryRoot
	}
	if c.Paths.LibraryRoot, err = expandPath(c.Paths.LibraryRoot); err != nil {
		return fmt.Errorf("paths.library_root: %w", err)
	}
	if strings.TrimSpace(c.Paths.MovedDirName) == "" {
		c.Paths.MovedDirName = defaultMovedDirName
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.HistoryDB) == "" {
		c.Paths.HistoryDB = defaultHistoryDB
	}
	if c.Paths.HistoryDB, err = expandPath(c.Paths.HistoryDB); err != nil {
		return fmt.Errorf("paths.history_db: %w", err)
	}
	if strings.TrimSpace(c.Paths.ReportName) == "" {
		c.Paths.ReportName = defaultReportName
	}
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	return nil
}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if strings.ContainsRune(c.Paths.MovedDirName, os.PathSeparator) {
		return errors.New("paths.moved_dir_name must be a single directory name, not a path")
	}
	if c.Paths.MovedDirName == "." || c.Paths.MovedDirName == ".." {
		return fmt.Errorf("paths.moved_dir_name %q is not a valid directory name", c.Paths.MovedDirName)
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	for _, lang := range c.Sort.KeepLanguages {
		if strings.TrimSpace(lang) == "" {
			return errors.New("sort.keep_languages must not contain empty entries")
		}
	}
	return nil
}

// EnsureDirectories creates the directories romuless writes into.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.LogDir, filepath.Dir(c.Paths.HistoryDB)} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// MovedRoot returns the absolute moved-aside subtree for the given root.
func (c *Config) MovedRoot(root string) string {
	return filepath.Join(root, c.Paths.MovedDirName)
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	absolute, err := filepath.Abs(filepath.Clean(pathValue))
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", pathValue, err)
	}
	return absolute, nil
}
