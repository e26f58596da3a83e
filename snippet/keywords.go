package snippet

import (
	"cssnip/value"
)

// KeywordRef points back into the snippet node that produced a keyword:
// Index is the position of the alternative, within the Values of the node
// where the keyword was first discovered.
type KeywordRef struct {
	Keyword string
	Index   int
}

// Keywords collects every literal and function-name keyword reachable from a
// property snippet through its transitive dependencies, first occurrence
// wins. Traversal is breadth-first over a worklist that only grows by
// previously unseen node identity, so shared and even cyclic dependency
// graphs terminate with a deterministic result. Raw snippets have no
// keywords.
func Keywords(s *Snippet) []KeywordRef {
	if s == nil || s.Kind != KindProperty {
		return nil
	}

	list := []*Snippet{s}
	enqueued := map[*Snippet]struct{}{s: {}}
	seen := make(map[string]struct{})

	var refs []KeywordRef
	for i := 0; i < len(list); i++ {
		node := list[i]
		for idx, alt := range node.Values {
			for _, n := range alt {
				var kw string
				switch n.Kind {
				case value.KindLiteral, value.KindFunction:
					kw = n.Text
				default:
					// numbers, strings and colors are not matchable keywords
					continue
				}
				if _, dup := seen[kw]; dup {
					continue
				}
				seen[kw] = struct{}{}
				refs = append(refs, KeywordRef{Keyword: kw, Index: idx})
			}
		}
		for _, dep := range node.deps {
			if _, ok := enqueued[dep]; !ok {
				enqueued[dep] = struct{}{}
				list = append(list, dep)
			}
		}
	}
	return refs
}
