package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"bennypowers.dev/vars2css/internal/config"
	"bennypowers.dev/vars2css/internal/export"
	"bennypowers.dev/vars2css/internal/log"
	"bennypowers.dev/vars2css/internal/resolver"
	"bennypowers.dev/vars2css/internal/source"
	"bennypowers.dev/vars2css/internal/variables"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// exportFlags override configuration values when set on the command line
type exportFlags struct {
	output        string
	prefix        string
	selector      string
	pretty        bool
	inlineAliases bool
	skipEmpty     bool
	collections   []string
	modes         []string
}

func (f *exportFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.prefix, "prefix", "", "prefix for every custom property name")
	fs.StringVar(&f.selector, "selector", "", "selector wrapping the declarations (default \":root\")")
	fs.BoolVar(&f.pretty, "pretty", false, "indent declarations")
	fs.BoolVar(&f.inlineAliases, "inline-aliases", false, "write the resolved value of aliases instead of var() references")
	fs.BoolVar(&f.skipEmpty, "skip-empty", false, "omit declarations that have no value")
	fs.StringSliceVar(&f.collections, "collection", nil, "only export these collections (name or id, repeatable)")
	fs.StringSliceVar(&f.modes, "mode", nil, "only export these modes (name or id, repeatable)")
}

// apply copies flags that were set explicitly onto cfg
func (f *exportFlags) apply(fs *pflag.FlagSet, cfg *config.Config) {
	if fs.Changed("prefix") {
		cfg.Prefix = f.prefix
	}
	if fs.Changed("selector") {
		cfg.Selector = f.selector
	}
	if fs.Changed("pretty") {
		cfg.Pretty = f.pretty
	}
	if fs.Changed("inline-aliases") {
		if f.inlineAliases {
			cfg.AliasMode = resolver.AliasInline.String()
		} else {
			cfg.AliasMode = resolver.AliasReference.String()
		}
	}
	if fs.Changed("skip-empty") {
		cfg.SkipEmpty = f.skipEmpty
	}
	if fs.Changed("collection") {
		cfg.Collections = f.collections
	}
	if fs.Changed("mode") {
		cfg.Modes = f.modes
	}
}

func newExportCmd(root *rootOptions) *cobra.Command {
	flags := &exportFlags{}

	cmd := &cobra.Command{
		Use:   "export [files...]",
		Short: "Write variables as a CSS :root block",
		Long: `Export reads variable files and writes one CSS custom property per
variable and mode.

Files may be paths or glob patterns. With no arguments, the files listed in
the config are used, and failing that, variable files under --dir are
discovered (variables.json, *.variables.yaml, *.tokens.json and so on).`,
		Example: `  vars2css export design/variables.json
  vars2css export --prefix ds --inline-aliases -o tokens.css 'design/**/*.json'`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.setup(cmd)
			if err != nil {
				return err
			}
			flags.apply(cmd.Flags(), &cfg)

			result, err := runExport(cmd.Context(), root.dir, cfg, args)
			if err != nil {
				return err
			}

			if n := len(result.Skipped); n > 0 && !cfg.SkipEmpty {
				log.Warn("%d declarations have no value (use --skip-empty to omit them)", n)
			}

			return writeOutput(cmd, flags.output, result)
		},
	}

	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "write CSS to this file instead of stdout")
	flags.register(cmd.Flags())

	return cmd
}

// runExport resolves the input files, loads them and exports the store
func runExport(ctx context.Context, dir string, cfg config.Config, args []string) (*export.Result, error) {
	files, err := inputFiles(dir, cfg, args)
	if err != nil {
		return nil, err
	}

	store, err := source.LoadAll(files)
	if err != nil {
		return nil, err
	}

	opts, err := cfg.ExportOptions()
	if err != nil {
		return nil, err
	}

	return exportStore(ctx, store, opts)
}

func exportStore(ctx context.Context, store variables.Store, opts export.Options) (*export.Result, error) {
	result, err := export.New(store, opts).Export(ctx)
	if err != nil {
		return nil, err
	}
	log.Debug("Exported %d collections, %d modes", result.Collections, result.Modes)
	return result, nil
}

// inputFiles picks files from arguments, then config, then discovery
func inputFiles(dir string, cfg config.Config, args []string) ([]string, error) {
	var (
		files []string
		err   error
	)
	switch {
	case len(args) > 0:
		files, err = source.ExpandArgs(args)
	case len(cfg.Files) > 0:
		files, err = source.ExpandArgs(cfg.Files)
	default:
		files, err = source.Discover(dir, cfg.Patterns)
	}
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no variable files found")
	}
	log.Debug("Input files: %v", files)
	return files, nil
}

func writeOutput(cmd *cobra.Command, output string, result *export.Result) error {
	if output == "" || output == "-" {
		_, err := fmt.Fprint(cmd.OutOrStdout(), result.CSS)
		return err
	}

	if dir := filepath.Dir(output); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(output, []byte(result.CSS), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", output, err)
	}
	log.Info("Wrote %d declarations to %s", len(result.Entries), output)
	return nil
}
