// Package document holds the ordered tree an OpenAPI file is decoded into.
//
// A Node is a tagged union over three kinds: mappings (ordered keys),
// sequences and scalars. Key order is preserved from the source text since
// importer rules such as "first media type wins" depend on it.
package document

import (
	"iter"
	"strconv"
	"strings"

	"github.com/pb33f/libopenapi/orderedmap"
)

type Kind int

const (
	KindScalar Kind = iota
	KindMapping
	KindSequence
)

func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindMapping:
		return "mapping"
	case KindSequence:
		return "sequence"
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// Scalar tags, using the YAML core schema short forms.
const (
	TagString = "!!str"
	TagInt    = "!!int"
	TagFloat  = "!!float"
	TagBool   = "!!bool"
	TagNull   = "!!null"
)

// RefKey is the key marking a reference object.
const RefKey = "$ref"

type Node struct {
	Kind Kind

	// Tag and Value are set for scalars only.
	Tag   string
	Value string

	// Items is set for sequences only.
	Items []*Node

	fields *orderedmap.Map[string, *Node]
}

func NewMapping() *Node {
	return &Node{Kind: KindMapping, fields: orderedmap.New[string, *Node]()}
}

func NewSequence(items ...*Node) *Node {
	if items == nil {
		items = []*Node{}
	}
	return &Node{Kind: KindSequence, Items: items}
}

func NewScalar(tag, value string) *Node {
	return &Node{Kind: KindScalar, Tag: tag, Value: value}
}

func NewString(s string) *Node {
	return NewScalar(TagString, s)
}

func NewBool(b bool) *Node {
	return NewScalar(TagBool, strconv.FormatBool(b))
}

func NewNull() *Node {
	return NewScalar(TagNull, "null")
}

func (n *Node) IsMapping() bool  { return n != nil && n.Kind == KindMapping }
func (n *Node) IsSequence() bool { return n != nil && n.Kind == KindSequence }
func (n *Node) IsScalar() bool   { return n != nil && n.Kind == KindScalar }

// IsNull reports whether n is missing or an explicit null scalar.
func (n *Node) IsNull() bool {
	return n == nil || (n.Kind == KindScalar && n.Tag == TagNull)
}

// Get returns the value stored under key, or nil when n is not a mapping or
// has no such key.
func (n *Node) Get(key string) *Node {
	if !n.IsMapping() {
		return nil
	}
	v, ok := n.fields.Get(key)
	if !ok {
		return nil
	}
	return v
}

// Has reports whether key is present, even with a null value.
func (n *Node) Has(key string) bool {
	if !n.IsMapping() {
		return false
	}
	_, ok := n.fields.Get(key)
	return ok
}

// Lookup walks a chain of mapping keys.
func (n *Node) Lookup(keys ...string) *Node {
	cur := n
	for _, k := range keys {
		cur = cur.Get(k)
		if cur == nil {
			return nil
		}
	}
	return cur
}

// Set stores value under key. Existing keys keep their position.
func (n *Node) Set(key string, value *Node) {
	if n.Kind != KindMapping {
		panic("document: Set on " + n.Kind.String())
	}
	if n.fields == nil {
		n.fields = orderedmap.New[string, *Node]()
	}
	n.fields.Set(key, value)
}

func (n *Node) Append(items ...*Node) {
	if n.Kind != KindSequence {
		panic("document: Append on " + n.Kind.String())
	}
	n.Items = append(n.Items, items...)
}

// Fields iterates a mapping in source order. It yields nothing for other kinds.
func (n *Node) Fields() iter.Seq2[string, *Node] {
	return func(yield func(string, *Node) bool) {
		if !n.IsMapping() || n.fields == nil {
			return
		}
		for k, v := range n.fields.FromOldest() {
			if !yield(k, v) {
				return
			}
		}
	}
}

func (n *Node) Keys() []string {
	var keys []string
	for k := range n.Fields() {
		keys = append(keys, k)
	}
	return keys
}

// First returns the first key and value of a mapping.
func (n *Node) First() (string, *Node, bool) {
	for k, v := range n.Fields() {
		return k, v, true
	}
	return "", nil, false
}

// Len is the number of fields or items; zero for scalars and nil.
func (n *Node) Len() int {
	switch {
	case n.IsMapping():
		if n.fields == nil {
			return 0
		}
		return n.fields.Len()
	case n.IsSequence():
		return len(n.Items)
	}
	return 0
}

// Elems returns the items of a sequence, or nil for nil and non-sequence
// nodes.
func (n *Node) Elems() []*Node {
	if !n.IsSequence() {
		return nil
	}
	return n.Items
}

// Text is the scalar value, or "" for null, missing and non-scalar nodes.
func (n *Node) Text() string {
	if !n.IsScalar() || n.Tag == TagNull {
		return ""
	}
	return n.Value
}

// Bool reports whether n is a boolean scalar holding true.
func (n *Node) Bool() bool {
	return n.IsScalar() && n.Tag == TagBool && strings.EqualFold(n.Value, "true")
}

// Ref returns the pointer of a reference object.
func (n *Node) Ref() (string, bool) {
	v := n.Get(RefKey)
	if !v.IsScalar() || v.Tag == TagNull {
		return "", false
	}
	return v.Value, true
}

// Clone returns a deep copy of n.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	switch n.Kind {
	case KindMapping:
		out := NewMapping()
		for k, v := range n.Fields() {
			out.Set(k, v.Clone())
		}
		return out
	case KindSequence:
		out := &Node{Kind: KindSequence, Items: make([]*Node, len(n.Items))}
		for i, item := range n.Items {
			out.Items[i] = item.Clone()
		}
		return out
	}
	c := *n
	return &c
}
