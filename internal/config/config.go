// Package config reads vars2css settings from a project configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"bennypowers.dev/vars2css/internal/css"
	"bennypowers.dev/vars2css/internal/export"
	"bennypowers.dev/vars2css/internal/resolver"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// FileNames are the configuration files looked up, in order, relative to
// the project root
var FileNames = []string{
	".config/vars2css.yaml",
	".config/vars2css.yml",
	".config/vars2css.json",
	"vars2css.yaml",
	"vars2css.yml",
	"vars2css.json",
}

// Config represents the project configuration
type Config struct {
	// Files lists variable files or glob patterns to export.
	// If empty, files are discovered with Patterns.
	Files []string `json:"files" yaml:"files"`

	// Patterns are the glob patterns used to discover files when Files is empty.
	// Empty means source.DefaultPatterns.
	Patterns []string `json:"patterns" yaml:"patterns"`

	// Prefix is the CSS variable prefix
	// Example: "ds" will generate "--ds-color-primary"
	Prefix string `json:"prefix" yaml:"prefix"`

	// Selector wraps the declarations. Default: ":root"
	Selector string `json:"selector" yaml:"selector"`

	// Pretty indents declarations instead of the design tool's layout
	Pretty bool `json:"pretty" yaml:"pretty"`

	// AliasMode is "reference" (var()) or "inline"
	AliasMode string `json:"aliasMode" yaml:"aliasMode"`

	// SkipEmpty drops declarations without a value
	SkipEmpty bool `json:"skipEmpty" yaml:"skipEmpty"`

	// Collections and Modes restrict the export by name or ID
	Collections []string `json:"collections" yaml:"collections"`
	Modes       []string `json:"modes" yaml:"modes"`

	// LogLevel is debug, info, warn or error
	LogLevel string `json:"logLevel" yaml:"logLevel"`
}

// Default returns the default configuration
func Default() Config {
	return Config{
		Selector:  css.DefaultSelector,
		AliasMode: resolver.AliasReference.String(),
		LogLevel:  "info",
	}
}

// Find looks for a configuration file under root.
// Returns an empty path and no error when there is none.
func Find(root string) (string, error) {
	for _, name := range FileNames {
		path := filepath.Join(root, filepath.FromSlash(name))
		info, err := os.Stat(path)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return "", err
		}
		if !info.IsDir() {
			return path, nil
		}
	}
	return "", nil
}

// Load reads the configuration file under root, if any, on top of Default.
// The returned path is empty when no file was found.
func Load(root string) (Config, string, error) {
	path, err := Find(root)
	if err != nil || path == "" {
		return Default(), "", err
	}
	cfg, err := LoadFile(path)
	return cfg, path, err
}

// LoadFile reads a YAML or JSON (comments allowed) configuration file on top of Default
func LoadFile(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		// YAML is a superset of JSON, so one decoder serves both
		data = jsonc.ToJSON(data)
	case ".yaml", ".yml":
	default:
		return cfg, fmt.Errorf("unsupported config file type: %s", path)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	// Relative file paths are relative to the project root, not the .config dir
	base := filepath.Dir(path)
	if filepath.Base(base) == ".config" {
		base = filepath.Dir(base)
	}
	for i, f := range cfg.Files {
		if !filepath.IsAbs(f) {
			cfg.Files[i] = filepath.Join(base, f)
		}
	}

	return cfg, cfg.Validate()
}

// Validate checks enumerated settings
func (c Config) Validate() error {
	if _, err := resolver.ParseAliasMode(c.AliasMode); err != nil {
		return err
	}
	switch strings.ToLower(c.LogLevel) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.LogLevel)
	}
	return nil
}

// ExportOptions converts the configuration to exporter options
func (c Config) ExportOptions() (export.Options, error) {
	mode, err := resolver.ParseAliasMode(c.AliasMode)
	if err != nil {
		return export.Options{}, err
	}
	return export.Options{
		Prefix:      c.Prefix,
		AliasMode:   mode,
		SkipEmpty:   c.SkipEmpty,
		Collections: c.Collections,
		Modes:       c.Modes,
		Format: css.Format{
			Pretty:   c.Pretty,
			Selector: c.Selector,
		},
	}, nil
}
