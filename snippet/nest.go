package snippet

import (
	"slices"
	"strings"
)

// Nest links shorthand properties to their longhand extensions so that
// keyword extraction on a broad property also sees keywords reachable through
// the narrower ones (background -> background-position -> background-position-x).
// Raw snippets pass through untouched.
//
// The returned list is the input sorted ascending by key in code-point order.
// The sort is a hard precondition of the ancestor-stack pass below: hyphen
// sorts after letters, so every shorthand lands immediately before the run of
// its longhand extensions ("background" < "background-position" < "border").
//
// NOTE: snippets are grouped by key but parent/child tests compare property
// names; nesting assumes the two agree for property snippets. Aliased keys
// may nest incorrectly and are not repaired here.
func Nest(snippets []*Snippet) []*Snippet {
	sorted := slices.Clone(snippets)
	slices.SortStableFunc(sorted, func(a, b *Snippet) int {
		return strings.Compare(a.Key, b.Key)
	})

	var stack []*Snippet
	for _, cur := range sorted {
		if cur.Kind != KindProperty {
			continue
		}
		for len(stack) > 0 {
			prev := stack[len(stack)-1]
			if strings.HasPrefix(cur.Property, prev.Property+"-") {
				// direct longhand of prev
				prev.deps = append(prev.deps, cur)
				break
			}
			// prev cannot be an ancestor of cur or of anything sorted after it
			stack = stack[:len(stack)-1]
		}
		stack = append(stack, cur)
	}
	return sorted
}
