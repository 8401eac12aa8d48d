// Package refs replaces local component references in an OpenAPI
// document with the subtrees they point to.
package refs

import (
	"strconv"
	"strings"

	"github.com/kolah/oacollect/internal/document"
)

// ComponentsPrefix is the only pointer form that gets resolved. Any other
// pointer is treated as external and left as written.
const ComponentsPrefix = "#/components/"

// Visited holds the pointers being expanded on the current descent path.
type Visited map[string]struct{}

func (v Visited) with(ref string) Visited {
	out := make(Visited, len(v)+1)
	for k := range v {
		out[k] = struct{}{}
	}
	out[ref] = struct{}{}
	return out
}

// ResolveDocument resolves doc against its own components section.
func ResolveDocument(doc *document.Node) *document.Node {
	return Resolve(doc, doc.Get("components"), nil)
}

// Resolve returns a copy of node in which every #/components/ reference is
// replaced by its target, itself resolved. The input is never modified.
//
// Cycle detection is scoped to the descent path: a pointer already being
// expanded by an ancestor is returned unexpanded, while siblings start from
// their parent's set and may expand the same component independently.
// Pointers that do not resolve are returned unexpanded.
func Resolve(node, components *document.Node, visited Visited) *document.Node {
	if node == nil {
		return nil
	}

	switch node.Kind {
	case document.KindScalar:
		return node.Clone()
	case document.KindSequence:
		out := document.NewSequence()
		for _, item := range node.Items {
			out.Append(Resolve(item, components, visited))
		}
		return out
	}

	if ref, ok := node.Ref(); ok {
		if _, seen := visited[ref]; seen {
			return node.Clone()
		}
		visited = visited.with(ref)

		if strings.HasPrefix(ref, ComponentsPrefix) {
			target, ok := lookup(components, strings.TrimPrefix(ref, ComponentsPrefix))
			if !ok {
				return node.Clone()
			}
			return Resolve(target, components, visited)
		}
	}

	out := document.NewMapping()
	for key, value := range node.Fields() {
		out.Set(key, Resolve(value, components, visited))
	}
	return out
}

func lookup(root *document.Node, pointer string) (*document.Node, bool) {
	cur := root
	for _, raw := range strings.Split(pointer, "/") {
		key := unescape(raw)
		switch {
		case cur.IsMapping():
			cur = cur.Get(key)
		case cur.IsSequence():
			i, err := strconv.Atoi(key)
			if err != nil || i < 0 || i >= len(cur.Items) {
				return nil, false
			}
			cur = cur.Items[i]
		default:
			return nil, false
		}
		if cur.IsNull() {
			return nil, false
		}
	}
	return cur, true
}

func unescape(token string) string {
	if !strings.Contains(token, "~") {
		return token
	}
	return strings.ReplaceAll(strings.ReplaceAll(token, "~1", "/"), "~0", "~")
}
