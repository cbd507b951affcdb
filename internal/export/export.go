// Package export walks a variable store and writes its variables as CSS custom properties.
package export

import (
	"context"
	"fmt"
	"strings"

	"bennypowers.dev/vars2css/internal/collections"
	"bennypowers.dev/vars2css/internal/css"
	"bennypowers.dev/vars2css/internal/log"
	"bennypowers.dev/vars2css/internal/resolver"
	"bennypowers.dev/vars2css/internal/variables"
)

// Options configures an export
type Options struct {
	// Prefix is inserted into every property name (e.g. "ds" -> "--ds-color-red")
	Prefix string

	// AliasMode selects var() references (default) or inlined values
	AliasMode resolver.AliasMode

	// Format controls the CSS layout
	Format css.Format

	// SkipEmpty drops declarations that resolved to nothing instead of
	// writing "--name: ;"
	SkipEmpty bool

	// Collections restricts the export to collections with these names or IDs.
	// Empty means all collections.
	Collections []string

	// Modes restricts the export to modes with these names or IDs.
	// Empty means all modes.
	Modes []string
}

// Skip records a declaration that has no value
type Skip struct {
	VariableID string
	Name       string
	Collection string
	Mode       string
	Reason     resolver.SkipReason
}

func (s Skip) String() string {
	return fmt.Sprintf("%s (%s) in %s/%s: %s", s.Name, s.VariableID, s.Collection, s.Mode, s.Reason)
}

// Result is the output of an export
type Result struct {
	// CSS is the complete selector block
	CSS string

	// Entries are the declarations in output order
	Entries []css.Entry

	// Skipped lists declarations without a value, in output order
	Skipped []Skip

	// Collections and Modes count what was visited
	Collections int
	Modes       int
}

// Exporter writes the variables of a store as CSS
type Exporter struct {
	store variables.Store
	opts  Options
}

// New creates an exporter for the given store
func New(store variables.Store, opts Options) *Exporter {
	return &Exporter{store: store, opts: opts}
}

// Export visits collections in store order, then each collection's modes,
// then its variable IDs, producing one declaration per (mode, variable).
//
// Lookups run one at a time so output order always matches input order.
// Any lookup or resolution error aborts the whole export.
func (e *Exporter) Export(ctx context.Context) (*Result, error) {
	all, err := e.store.Collections(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing collections: %w", err)
	}

	defaults := make(map[string]string, len(all))
	for i := range all {
		if m, ok := all[i].DefaultMode(); ok {
			defaults[all[i].ID] = m.ID
		}
	}

	res := resolver.New(e.store, resolver.Options{
		AliasMode:    e.opts.AliasMode,
		Prefix:       e.opts.Prefix,
		DefaultModes: defaults,
	})

	collectionFilter := collections.NewOrderedSet(e.opts.Collections...)
	modeFilter := collections.NewOrderedSet(e.opts.Modes...)

	result := &Result{}
	for _, c := range all {
		if !matches(collectionFilter, c.ID, c.Name) {
			log.Debug("Skipping collection %s", c.Name)
			continue
		}
		result.Collections++

		for _, mode := range c.Modes {
			if !matches(modeFilter, mode.ID, mode.Name) {
				continue
			}
			result.Modes++

			if err := e.exportMode(ctx, res, c, mode, result); err != nil {
				return nil, err
			}
		}
	}

	result.CSS = css.Block(result.Entries, e.opts.Format)
	log.Debug("Exported %d declarations from %d collections (%d skipped)",
		len(result.Entries), result.Collections, len(result.Skipped))
	return result, nil
}

func (e *Exporter) exportMode(ctx context.Context, res *resolver.Resolver, c variables.Collection, mode variables.Mode, result *Result) error {
	for _, id := range c.VariableIDs {
		if err := ctx.Err(); err != nil {
			return err
		}

		v, err := e.store.Variable(ctx, id)
		if err != nil {
			return fmt.Errorf("collection %s: %w", c.Name, err)
		}

		resolution, err := res.Resolve(ctx, v, mode.ID)
		if err != nil {
			return fmt.Errorf("collection %s, mode %s: %w", c.Name, mode.Name, err)
		}

		if !resolution.Resolved() {
			skip := Skip{
				VariableID: v.ID,
				Name:       v.Name,
				Collection: c.Name,
				Mode:       mode.Name,
				Reason:     resolution.Skipped,
			}
			result.Skipped = append(result.Skipped, skip)
			log.Debug("Skipped %s", skip)
			if e.opts.SkipEmpty {
				continue
			}
		}

		result.Entries = append(result.Entries, css.Entry{
			Name:  res.PropertyName(v),
			Value: resolution.Value,
		})
	}
	return nil
}

func matches(filter *collections.OrderedSet[string], id, name string) bool {
	if filter.Len() == 0 {
		return true
	}
	if filter.Has(id) || filter.Has(name) {
		return true
	}
	for _, f := range filter.Members() {
		if strings.EqualFold(f, name) {
			return true
		}
	}
	return false
}
