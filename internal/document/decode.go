package document

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.yaml.in/yaml/v4"
)

// maxAliasDepth bounds alias expansion so self-referencing anchors fail
// instead of recursing forever.
const maxAliasDepth = 512

// maxYAMLNodes caps the size of the expanded tree. Aliases are copied on
// expansion, so nested anchors grow the tree exponentially.
const maxYAMLNodes = 1_000_000

var (
	ErrEmptyDocument = errors.New("empty document")
	ErrTooLarge      = errors.New("document expands to too many nodes")
)

// Decode parses data as JSON and falls back to YAML when that fails.
func Decode(data []byte) (*Node, error) {
	node, jsonErr := DecodeJSON(data)
	if jsonErr == nil {
		return node, nil
	}
	node, yamlErr := DecodeYAML(data)
	if yamlErr != nil {
		return nil, fmt.Errorf("document is neither JSON (%v) nor YAML: %w", jsonErr, yamlErr)
	}
	return node, nil
}

// DecodeJSON parses a single JSON value, keeping object key order.
func DecodeJSON(data []byte) (*Node, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	node, err := decodeJSONValue(dec)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyDocument
		}
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after top-level JSON value")
	}
	return node, nil
}

func decodeJSONValue(dec *json.Decoder) (*Node, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			m := NewMapping()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("object key is %T, not string", keyTok)
				}
				value, err := decodeJSONValue(dec)
				if err != nil {
					return nil, err
				}
				m.Set(key, value)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return m, nil
		case '[':
			s := NewSequence()
			for dec.More() {
				item, err := decodeJSONValue(dec)
				if err != nil {
					return nil, err
				}
				s.Append(item)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return s, nil
		}
		return nil, fmt.Errorf("unexpected delimiter %q", t)
	case string:
		return NewString(t), nil
	case json.Number:
		if strings.ContainsAny(t.String(), ".eE") {
			return NewScalar(TagFloat, t.String()), nil
		}
		return NewScalar(TagInt, t.String()), nil
	case bool:
		return NewBool(t), nil
	case nil:
		return NewNull(), nil
	}
	return nil, fmt.Errorf("unexpected JSON token %T", tok)
}

// DecodeYAML parses the first YAML document in data.
func DecodeYAML(data []byte) (*Node, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	if root.Kind == 0 || (root.Kind == yaml.DocumentNode && len(root.Content) == 0) {
		return nil, ErrEmptyDocument
	}
	return FromYAML(&root)
}

// FromYAML converts a yaml.Node tree. Aliases are expanded and merge keys
// (<<) are applied without overriding explicit keys.
func FromYAML(y *yaml.Node) (*Node, error) {
	d := &yamlDecoder{budget: maxYAMLNodes}
	return d.node(y, 0)
}

type yamlDecoder struct {
	budget int
}

func (d *yamlDecoder) node(y *yaml.Node, depth int) (*Node, error) {
	if depth > maxAliasDepth {
		return nil, errors.New("yaml nesting too deep (recursive alias?)")
	}
	if y == nil {
		return NewNull(), nil
	}
	if y.Kind != yaml.DocumentNode && y.Kind != yaml.AliasNode {
		d.budget--
		if d.budget < 0 {
			return nil, fmt.Errorf("%w: more than %d", ErrTooLarge, maxYAMLNodes)
		}
	}

	switch y.Kind {
	case yaml.DocumentNode:
		if len(y.Content) == 0 {
			return NewNull(), nil
		}
		return d.node(y.Content[0], depth+1)
	case yaml.AliasNode:
		return d.node(y.Alias, depth+1)
	case yaml.ScalarNode:
		return NewScalar(y.ShortTag(), y.Value), nil
	case yaml.SequenceNode:
		s := &Node{Kind: KindSequence, Items: make([]*Node, 0, len(y.Content))}
		for _, c := range y.Content {
			item, err := d.node(c, depth+1)
			if err != nil {
				return nil, err
			}
			s.Items = append(s.Items, item)
		}
		return s, nil
	case yaml.MappingNode:
		m := NewMapping()
		explicit := make(map[string]bool)
		for i := 0; i+1 < len(y.Content); i += 2 {
			k, v := y.Content[i], y.Content[i+1]
			if k.ShortTag() == "!!merge" {
				if err := d.merge(m, explicit, v, depth+1); err != nil {
					return nil, err
				}
				continue
			}
			value, err := d.node(v, depth+1)
			if err != nil {
				return nil, err
			}
			m.Set(k.Value, value)
			explicit[k.Value] = true
		}
		return m, nil
	}
	return nil, fmt.Errorf("unsupported yaml node kind %d at line %d", y.Kind, y.Line)
}

func (d *yamlDecoder) merge(m *Node, explicit map[string]bool, src *yaml.Node, depth int) error {
	merged, err := d.node(src, depth)
	if err != nil {
		return err
	}
	var sources []*Node
	switch merged.Kind {
	case KindMapping:
		sources = []*Node{merged}
	case KindSequence:
		sources = merged.Items
	default:
		return fmt.Errorf("merge key value must be a mapping, got %s", merged.Kind)
	}
	for _, s := range sources {
		for k, v := range s.Fields() {
			if explicit[k] || m.Has(k) {
				continue
			}
			m.Set(k, v)
		}
	}
	return nil
}
