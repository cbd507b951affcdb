package resolver

import (
	"context"

	"bennypowers.dev/vars2css/internal/collections"
	"bennypowers.dev/vars2css/internal/variables"
)

// inline follows an alias chain to the first literal value and resolves it
// with the type of the variable that holds it.
//
// The chain is tracked so that cycles end in a CircularReferenceError instead
// of looping. When a target has no value for the requested mode, the default
// mode of the target's collection is tried.
func (r *Resolver) inline(ctx context.Context, v *variables.Variable, modeID string, alias variables.Alias) (Resolution, error) {
	chain := collections.NewOrderedSet(v.ID)
	holder := v
	mode := modeID
	next := alias

	for {
		if chain.Has(next.ID) {
			cycle := append(chain.From(next.ID), next.ID)
			return Resolution{}, variables.NewCircularReferenceError(cycle)
		}
		chain.Add(next.ID)

		target, err := r.lookup.Variable(ctx, next.ID)
		if err != nil {
			return Resolution{}, variables.NewUnresolvedReferenceError(holder.ID, mode, next.ID, err)
		}

		value, ok := target.ValueForMode(mode)
		if !ok {
			if fallback, has := r.opts.DefaultModes[target.CollectionID]; has && fallback != mode {
				mode = fallback
				value, ok = target.ValueForMode(mode)
			}
		}
		if !ok {
			return skipped(SkipMissingValue), nil
		}
		if !target.ResolvedType.Supported() {
			return skipped(SkipUnsupportedType), nil
		}

		a, isAlias := value.(variables.Alias)
		if !isAlias {
			return literal(target, mode, value)
		}
		holder, next = target, a
	}
}
