package schema

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/kolah/oacollect/internal/document"
)

// EmptyObject builds an object holding an empty value for every property
// of s. Nested objects recurse, arrays of objects get one synthesized
// element, other arrays are empty and everything else is "".
func EmptyObject(s *Schema) *document.Node {
	obj := document.NewMapping()
	if s == nil {
		return obj
	}
	for _, p := range s.Properties {
		obj.Set(p.Name, emptyValue(p.Schema))
	}
	return obj
}

func emptyValue(s *Schema) *document.Node {
	if s == nil {
		return document.NewString("")
	}
	switch s.Kind {
	case KindObject:
		return EmptyObject(s)
	case KindArray:
		if s.Items != nil && s.Items.Kind == KindObject {
			return document.NewSequence(EmptyObject(s.Items))
		}
		return document.NewSequence()
	case KindScalar, KindRef:
		return document.NewString("")
	}
	panic("schema: unhandled kind")
}

// EmptyBody returns the example for a JSON request body and whether the
// schema produces one. Objects give an empty object, arrays a one-element
// array built from the item schema.
func EmptyBody(s *Schema) (*document.Node, bool) {
	if s == nil {
		return nil, false
	}
	switch s.Kind {
	case KindObject:
		return EmptyObject(s), true
	case KindArray:
		return document.NewSequence(EmptyObject(s.Items)), true
	case KindScalar, KindRef:
		return nil, false
	}
	panic("schema: unhandled kind")
}

// EmptyBodyText renders EmptyBody as 2-space indented JSON. Property names
// are written as is, without HTML escaping.
func EmptyBodyText(s *Schema) (string, bool, error) {
	body, ok := EmptyBody(s)
	if !ok {
		return "", false, nil
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(body); err != nil {
		return "", false, err
	}
	return strings.TrimSuffix(buf.String(), "\n"), true, nil
}
