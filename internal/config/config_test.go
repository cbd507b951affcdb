package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"bennypowers.dev/vars2css/internal/config"
	"bennypowers.dev/vars2css/internal/resolver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestDefault(t *testing.T) {
	cfg := config.Default()
	assert.Equal(t, ":root", cfg.Selector)
	assert.Equal(t, "reference", cfg.AliasMode)
	assert.Empty(t, cfg.Files)
	assert.NoError(t, cfg.Validate())
}

func TestLoadMissing(t *testing.T) {
	cfg, path, err := config.Load(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, path)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoadYAML(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".config", "vars2css.yaml"), `
files:
  - design/variables.json
  - /abs/tokens.json
prefix: ds
pretty: true
aliasMode: inline
collections: [Theme]
modes: [Dark]
`)

	cfg, path, err := config.Load(root)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, ".config", "vars2css.yaml"), path)

	assert.Equal(t, []string{filepath.Join(root, "design", "variables.json"), "/abs/tokens.json"}, cfg.Files)
	assert.Equal(t, "ds", cfg.Prefix)
	assert.Equal(t, ":root", cfg.Selector, "unset keys keep defaults")
	assert.True(t, cfg.Pretty)

	opts, err := cfg.ExportOptions()
	require.NoError(t, err)
	assert.Equal(t, resolver.AliasInline, opts.AliasMode)
	assert.Equal(t, "ds", opts.Prefix)
	assert.True(t, opts.Format.Pretty)
	assert.Equal(t, []string{"Theme"}, opts.Collections)
	assert.Equal(t, []string{"Dark"}, opts.Modes)
}

func TestLoadJSONWithComments(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "vars2css.json"), `{
  // scope to dark theme
  "selector": "[data-theme=dark]",
  "skipEmpty": true,
  "logLevel": "debug",
}`)

	cfg, path, err := config.Load(root)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "vars2css.json"), path)
	assert.Equal(t, "[data-theme=dark]", cfg.Selector)
	assert.True(t, cfg.SkipEmpty)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestConfigDirWins(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "vars2css.yaml"), "prefix: root\n")
	writeFile(t, filepath.Join(root, ".config", "vars2css.yml"), "prefix: dotconfig\n")

	cfg, _, err := config.Load(root)
	require.NoError(t, err)
	assert.Equal(t, "dotconfig", cfg.Prefix)
}

func TestLoadFileErrors(t *testing.T) {
	root := t.TempDir()

	t.Run("invalid alias mode", func(t *testing.T) {
		path := filepath.Join(root, "bad-alias.yaml")
		writeFile(t, path, "aliasMode: deep\n")
		_, err := config.LoadFile(path)
		assert.Error(t, err)
	})

	t.Run("invalid log level", func(t *testing.T) {
		path := filepath.Join(root, "bad-level.yaml")
		writeFile(t, path, "logLevel: loud\n")
		_, err := config.LoadFile(path)
		assert.Error(t, err)
	})

	t.Run("syntax error", func(t *testing.T) {
		path := filepath.Join(root, "broken.yaml")
		writeFile(t, path, "files: [unclosed\n")
		_, err := config.LoadFile(path)
		assert.Error(t, err)
	})

	t.Run("unsupported extension", func(t *testing.T) {
		path := filepath.Join(root, "config.toml")
		writeFile(t, path, "prefix = 'x'\n")
		_, err := config.LoadFile(path)
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := config.LoadFile(filepath.Join(root, "nope.yaml"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}
