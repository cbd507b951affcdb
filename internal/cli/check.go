package cli

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"bennypowers.dev/vars2css/internal/collections"
	"bennypowers.dev/vars2css/internal/css"
	"bennypowers.dev/vars2css/internal/log"
	"bennypowers.dev/vars2css/internal/resolver"
	"bennypowers.dev/vars2css/internal/source"
	"bennypowers.dev/vars2css/internal/variables"
	"github.com/spf13/cobra"
)

// errProblems is returned when check finds anything to report
var errProblems = errors.New("check failed")

func newCheckCmd(root *rootOptions) *cobra.Command {
	flags := &exportFlags{}
	var strict bool

	cmd := &cobra.Command{
		Use:   "check [files...]",
		Short: "Report broken aliases and problems in the generated CSS",
		Long: `Check loads variable files the same way export does and reports:

  - aliases to variables that are not in any loaded file
  - circular aliases
  - custom properties declared more than once (e.g. one per mode)
  - var() references to properties missing from the output

Declarations without a value are reported as warnings, or as problems with --strict.
The command exits non-zero when any problem is found.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.setup(cmd)
			if err != nil {
				return err
			}
			flags.apply(cmd.Flags(), &cfg)

			files, err := inputFiles(root.dir, cfg, args)
			if err != nil {
				return err
			}
			store, err := source.LoadAll(files)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			problems := checkGraph(out, store.Variables())
			if problems > 0 {
				// The export would stop at the first broken alias
				return fmt.Errorf("%w: %d problems", errProblems, problems)
			}

			opts, err := cfg.ExportOptions()
			if err != nil {
				return err
			}
			// "--x: ;" is not valid CSS; skips are reported separately below
			opts.SkipEmpty = true
			result, err := exportStore(cmd.Context(), store, opts)
			if err != nil {
				return err
			}

			for _, skip := range result.Skipped {
				if strict {
					fmt.Fprintf(out, "error: no value: %s\n", skip)
					problems++
				} else {
					fmt.Fprintf(out, "warning: no value: %s\n", skip)
				}
			}

			lint, err := css.Lint(result.CSS)
			if err != nil {
				return err
			}
			for _, p := range lint {
				fmt.Fprintf(out, "error: %s: %s\n", p.Kind, p)
			}
			problems += len(lint)

			if problems > 0 {
				return fmt.Errorf("%w: %d problems", errProblems, problems)
			}

			log.Info("%d declarations from %d files OK", len(result.Entries), len(files))
			return nil
		},
	}

	flags.register(cmd.Flags())
	cmd.Flags().BoolVar(&strict, "strict", false, "treat declarations without a value as problems")

	return cmd
}

// checkGraph prints dangling and circular aliases and returns how many it found
func checkGraph(out io.Writer, vars []*variables.Variable) int {
	graph := resolver.BuildGraph(vars)
	log.Debug("Built %s", graph)

	err := graph.Validate()
	if err == nil {
		return 0
	}
	log.Debug("Alias graph is invalid: %v", err)

	names := make(map[string]string, len(vars))
	for _, v := range vars {
		names[v.ID] = v.Name
	}
	labels := func(ids []string) []string {
		out := make([]string, len(ids))
		for i, id := range ids {
			if name, ok := names[id]; ok {
				out[i] = fmt.Sprintf("%s (%s)", name, id)
			} else {
				out[i] = id
			}
		}
		return out
	}

	problems := 0

	missing := collections.NewOrderedSet[string]()
	for _, targets := range graph.Dangling() {
		missing.AddAll(targets...)
	}
	targets := missing.Members()
	sort.Strings(targets)
	for _, target := range targets {
		fmt.Fprintf(out, "error: unknown variable %s is aliased by %s\n", target, strings.Join(labels(graph.Dependents(target)), ", "))
		problems++
	}

	if graph.HasCycle() {
		fmt.Fprintf(out, "error: circular alias: %s\n", strings.Join(labels(graph.FindCycle()), " -> "))
		problems++
	}

	return problems
}
