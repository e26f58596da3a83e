// Package registry builds a read-only, queryable snippet registry from a
// key to definition table.
package registry

import (
	"maps"
	"slices"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"cssnip/snippet"
)

// Registry holds one built-and-nested snippet set. Construction is a single
// pass; after New returns the registry never changes and is safe for
// concurrent reads.
type Registry struct {
	log      *zap.Logger
	snippets []*snippet.Snippet // resolution (key-sorted) order
	byKey    map[string]*snippet.Snippet
	roots    []*snippet.Snippet
}

// New builds every definition, nests the result and indexes it by key. A
// definition that fails to build is skipped - the rest of the registry is
// still usable; all per-entry failures are aggregated into the returned
// error, so err != nil does not mean the registry is unusable.
func New(log *zap.Logger, defs map[string]string) (*Registry, error) {
	if log == nil {
		log = zap.NewNop()
	}
	r := &Registry{
		log:   log.Named("registry"),
		byKey: make(map[string]*snippet.Snippet, len(defs)),
	}

	var errs error
	built := make([]*snippet.Snippet, 0, len(defs))
	for _, key := range slices.Sorted(maps.Keys(defs)) {
		s, err := snippet.Build(key, defs[key])
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		built = append(built, s)
	}

	r.snippets = snippet.Nest(built)
	for _, s := range r.snippets {
		r.byKey[s.Key] = s
	}

	// roots are properties not adopted by any shorthand
	children := make(map[*snippet.Snippet]struct{})
	for _, s := range r.snippets {
		for _, dep := range s.Dependencies() {
			children[dep] = struct{}{}
		}
	}
	for _, s := range r.snippets {
		if s.Kind != snippet.KindProperty {
			continue
		}
		if _, ok := children[s]; !ok {
			r.roots = append(r.roots, s)
		}
	}

	r.log.Debug("Registry built",
		zap.Int("definitions", len(defs)),
		zap.Int("snippets", len(r.snippets)),
		zap.Int("roots", len(r.roots)),
		zap.Int("failed", len(multierr.Errors(errs))))
	return r, errs
}

// Get returns the snippet registered under key.
func (r *Registry) Get(key string) (*snippet.Snippet, bool) {
	s, ok := r.byKey[key]
	return s, ok
}

// Keywords extracts keyword references for the snippet registered under key.
// The second return value reports whether the key is known at all; a known
// raw snippet yields an empty list.
func (r *Registry) Keywords(key string) ([]snippet.KeywordRef, bool) {
	s, ok := r.byKey[key]
	if !ok {
		return nil, false
	}
	return snippet.Keywords(s), true
}

// All returns every snippet in resolution order.
func (r *Registry) All() []*snippet.Snippet {
	return slices.Clone(r.snippets)
}

// Roots returns property snippets that are not a longhand of any other
// property, in resolution order.
func (r *Registry) Roots() []*snippet.Snippet {
	return slices.Clone(r.roots)
}

// Len returns number of registered snippets.
func (r *Registry) Len() int {
	return len(r.snippets)
}
