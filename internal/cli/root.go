// Package cli provides the command-line interface for vars2css.
package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"bennypowers.dev/vars2css/internal/config"
	"bennypowers.dev/vars2css/internal/log"
	"bennypowers.dev/vars2css/internal/version"
	"github.com/spf13/cobra"
)

// rootOptions are the persistent flags shared by every subcommand
type rootOptions struct {
	verbose    bool
	quiet      bool
	configPath string
	dir        string
}

// NewRootCmd builds the command tree
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "vars2css",
		Short: "Export design tool variables as CSS custom properties",
		Long: `vars2css reads local variable exports from a design tool (JSON or YAML)
and DTCG token files, and writes them as CSS custom properties in a single
:root block.

Color variables become hex or rgba() values, numbers become px lengths,
font weight names become numeric weights, and aliases become var() references.`,
		Version:      version.GetVersion(),
		SilenceUsage: true,
	}

	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose output")
	cmd.PersistentFlags().BoolVarP(&opts.quiet, "quiet", "q", false, "suppress non-error output")
	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "config file (default: .config/vars2css.yaml under --dir)")
	cmd.PersistentFlags().StringVarP(&opts.dir, "dir", "C", ".", "project root used for config lookup and file discovery")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	cmd.SetVersionTemplate(version.String() + "\n")

	cmd.AddCommand(newExportCmd(opts))
	cmd.AddCommand(newCheckCmd(opts))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// Execute runs the root command and returns the process exit code
func Execute(ctx context.Context) int {
	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		return 1
	}
	return 0
}

// setup loads the configuration and applies log settings.
// --verbose and --quiet override the configured level.
func (o *rootOptions) setup(cmd *cobra.Command) (config.Config, error) {
	log.SetOutput(cmd.ErrOrStderr())

	var (
		cfg  config.Config
		path string
		err  error
	)
	if o.configPath != "" {
		path = o.configPath
		cfg, err = config.LoadFile(path)
	} else {
		cfg, path, err = config.Load(o.dir)
	}
	if err != nil {
		return cfg, err
	}

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return cfg, err
	}
	switch {
	case o.verbose:
		level = log.LevelDebug
	case o.quiet:
		level = log.LevelError
	}
	log.SetLevel(level)

	if path != "" {
		log.Debug("Using config %s", path)
	}
	return cfg, nil
}

func newVersionCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(version.GetBuildInfo())
			}
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print build information as JSON")

	return cmd
}
