// Package schema reads request body schemas out of a resolved document and
// synthesizes empty example values from them.
package schema

import (
	"github.com/kolah/oacollect/internal/document"
)

type Kind int

const (
	KindScalar Kind = iota
	KindObject
	KindArray
	// KindRef is a reference that was left unresolved (cyclic or external).
	KindRef
)

type Schema struct {
	Kind        Kind
	Type        string
	Description string
	Ref         string
	Properties  []Property
	Items       *Schema
}

type Property struct {
	Name   string
	Schema *Schema
}

// FromNode builds a Schema from a resolved schema object. It returns nil
// for a missing node.
//
// The kind comes from the declared type only: an object without
// "type: object" is treated as a scalar. Properties are read regardless of
// kind.
func FromNode(n *document.Node) *Schema {
	if n == nil {
		return nil
	}

	s := &Schema{
		Type:        typeName(n.Get("type")),
		Description: n.Get("description").Text(),
	}

	if ref, ok := n.Ref(); ok {
		s.Kind = KindRef
		s.Ref = ref
		return s
	}

	switch s.Type {
	case "object":
		s.Kind = KindObject
	case "array":
		s.Kind = KindArray
	default:
		s.Kind = KindScalar
	}

	for name, prop := range n.Get("properties").Fields() {
		s.Properties = append(s.Properties, Property{Name: name, Schema: FromNode(prop)})
	}
	if items := n.Get("items"); items.IsMapping() {
		s.Items = FromNode(items)
	}
	return s
}

// typeName handles both "type: x" and the 3.1 "type: [x, null]" form.
func typeName(n *document.Node) string {
	if n.IsSequence() {
		for _, item := range n.Items {
			if t := item.Text(); t != "" && t != "null" {
				return t
			}
		}
		return ""
	}
	return n.Text()
}
