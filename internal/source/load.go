// Package source loads variable stores from exported files.
package source

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"bennypowers.dev/vars2css/internal/log"
	"bennypowers.dev/vars2css/internal/variables"
	"github.com/bmatcuk/doublestar/v4"
)

// DefaultPatterns are the glob patterns used to discover variable files
// when none are given explicitly
var DefaultPatterns = []string{
	"**/variables.json",
	"**/*.variables.json",
	"**/variables.yaml",
	"**/*.variables.yaml",
	"**/variables.yml",
	"**/*.variables.yml",
	"**/tokens.json",
	"**/*.tokens.json",
}

// Kind is the format of a variables file
type Kind int

const (
	// KindFigma is a Figma local variables export
	KindFigma Kind = iota
	// KindDTCG is a Design Tokens Community Group token file
	KindDTCG
)

// Load reads a single file and returns its store.
// The format is chosen from the file name and content; see Detect.
func Load(path string) (*variables.MemoryStore, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".json", ".jsonc", ".yaml", ".yml":
	default:
		return nil, fmt.Errorf("unsupported file type %s: %s", ext, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}

	isJSON := ext == ".json" || ext == ".jsonc"

	var store *variables.MemoryStore
	switch Detect(path, data) {
	case KindDTCG:
		store, err = ParseDTCG(data, collectionName(path))
	default:
		store, err = ParseFigma(data, isJSON)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	log.Info("Loaded %d variables from %s", store.Count(), path)
	return store, nil
}

// Detect decides whether data is a Figma export or a DTCG token file.
// Files named *.tokens.* or tokens.* are DTCG; otherwise a file is a Figma
// export when it mentions variableCollections.
func Detect(path string, data []byte) Kind {
	base := strings.ToLower(filepath.Base(path))
	if strings.HasPrefix(base, "tokens.") || strings.Contains(base, ".tokens.") {
		return KindDTCG
	}
	if bytes.Contains(data, []byte("variableCollections")) || bytes.Contains(data, []byte("valuesByMode")) {
		return KindFigma
	}
	if bytes.Contains(data, []byte("$value")) {
		return KindDTCG
	}
	return KindFigma
}

// LoadAll loads every file and merges them into one store, in argument order.
// All files are attempted; failures are joined into the returned error.
func LoadAll(paths []string) (*variables.MemoryStore, error) {
	merged := variables.NewMemoryStore()

	var errs []error
	for _, path := range paths {
		store, err := Load(path)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if err := merged.Merge(store); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", path, err))
		}
	}

	if len(errs) > 0 {
		return merged, fmt.Errorf("failed to load %d/%d files: %w", len(errs), len(paths), errors.Join(errs...))
	}
	return merged, nil
}

// Discover finds variable files under root matching patterns
// (DefaultPatterns when empty). Results are relative to root joined back
// onto it, sorted, and free of duplicates. node_modules is skipped.
func Discover(root string, patterns []string) ([]string, error) {
	if len(patterns) == 0 {
		patterns = DefaultPatterns
	}

	fsys := os.DirFS(root)
	seen := make(map[string]bool)
	var found []string

	for _, pattern := range patterns {
		matches, err := doublestar.Glob(fsys, filepath.ToSlash(pattern))
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %w", pattern, err)
		}
		for _, m := range matches {
			if seen[m] || strings.Contains(m, "node_modules/") {
				continue
			}
			info, err := fs.Stat(fsys, m)
			if err != nil || info.IsDir() {
				continue
			}
			seen[m] = true
			found = append(found, m)
		}
	}

	sort.Strings(found)
	out := make([]string, len(found))
	for i, m := range found {
		out[i] = filepath.Join(root, filepath.FromSlash(m))
	}
	return out, nil
}

// ExpandArgs turns command line arguments into file paths.
// Arguments containing glob metacharacters are expanded relative to the
// working directory; plain paths are kept as given.
func ExpandArgs(args []string) ([]string, error) {
	var out []string
	for _, arg := range args {
		if !strings.ContainsAny(arg, "*?[{") {
			out = append(out, arg)
			continue
		}
		matches, err := doublestar.FilepathGlob(arg)
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %w", arg, err)
		}
		if len(matches) == 0 {
			log.Warn("No files match %s", arg)
		}
		out = append(out, matches...)
	}
	return out, nil
}

func collectionName(path string) string {
	base := filepath.Base(path)
	for {
		ext := filepath.Ext(base)
		if ext == "" || ext == base {
			break
		}
		base = strings.TrimSuffix(base, ext)
	}
	if base == "" {
		return "tokens"
	}
	return base
}

