// Package snippet resolves CSS snippet definitions - short textual aliases
// used by abbreviation expansion - into typed records and links shorthand
// properties to their longhand extensions.
package snippet

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"cssnip/value"
)

//go:generate go tool go-enum --nocase

// Kind discriminates snippet variants.
// ENUM(raw, property)
type Kind int

// propertyRe matches definitions of the form "property" or "property:value",
// where property is lowercase letters and hyphens and value is a non-empty
// single-line payload. Everything else stays opaque text.
var propertyRe = regexp.MustCompile(`^([a-z-]+)(?::(.+))?$`)

// Snippet maps a lookup key to either opaque text (KindRaw) or a structured
// CSS property definition (KindProperty). A property snippet carries one
// entry in Values per |-separated alternative of the original definition.
//
// Dependency edges between shorthand and longhand properties are attached by
// Nest exactly once; afterwards the snippet is immutable and may be shared by
// reference between several parents.
type Snippet struct {
	Key      string
	Kind     Kind
	Value    string         // raw snippets: definition verbatim
	Property string         // property snippets: CSS property name
	Values   [][]value.Node // property snippets: parsed alternatives

	deps []*Snippet // populated by Nest only
}

// Dependencies returns the longhand properties attached to this shorthand by
// Nest. The slice is a copy - edges cannot be modified through it.
func (s *Snippet) Dependencies() []*Snippet {
	return slices.Clone(s.deps)
}

// Build classifies one key/definition pair. A definition matching the
// property pattern becomes a property snippet with its value alternatives
// parsed; anything else falls back to a raw snippet - free text is never an
// error. A property definition whose value cannot be parsed is an error for
// that single snippet.
func Build(key, definition string) (*Snippet, error) {
	m := propertyRe.FindStringSubmatch(definition)
	if m == nil {
		return &Snippet{Key: key, Kind: KindRaw, Value: definition}, nil
	}
	s := &Snippet{Key: key, Kind: KindProperty, Property: m[1]}
	if len(m[2]) == 0 {
		return s, nil
	}
	for _, alt := range strings.Split(m[2], "|") {
		nodes, err := value.Parse(strings.TrimSpace(alt))
		if err != nil {
			return nil, fmt.Errorf("snippet %q: %w", key, err)
		}
		s.Values = append(s.Values, nodes)
	}
	return s, nil
}
