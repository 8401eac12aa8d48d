package document

import (
	"bytes"
	"encoding/json"
	"strings"
)

// MarshalJSON writes n as JSON, keeping mapping key order.
func (n *Node) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := n.writeJSON(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (n *Node) writeJSON(buf *bytes.Buffer) error {
	if n == nil {
		buf.WriteString("null")
		return nil
	}

	switch n.Kind {
	case KindMapping:
		buf.WriteByte('{')
		i := 0
		for k, v := range n.Fields() {
			if i > 0 {
				buf.WriteByte(',')
			}
			i++
			if err := writeJSONString(buf, k); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := v.writeJSON(buf); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	case KindSequence:
		buf.WriteByte('[')
		for i, item := range n.Items {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := item.writeJSON(buf); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	default:
		return n.writeScalarJSON(buf)
	}
	return nil
}

func (n *Node) writeScalarJSON(buf *bytes.Buffer) error {
	switch n.Tag {
	case TagNull:
		buf.WriteString("null")
		return nil
	case TagBool:
		buf.WriteString(strings.ToLower(n.Value))
		return nil
	case TagInt, TagFloat:
		// YAML allows forms like 0x1F or .inf that JSON does not.
		if json.Valid([]byte(n.Value)) {
			buf.WriteString(n.Value)
			return nil
		}
	}
	return writeJSONString(buf, n.Value)
}

// writeJSONString quotes s without escaping <, > and &.
func writeJSONString(buf *bytes.Buffer, s string) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	buf.Truncate(buf.Len() - 1)
	return nil
}
