package collection

import (
	"bytes"
	"encoding/json"
	"fmt"

	"go.yaml.in/yaml/v4"
)

const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Encode serializes c as indented JSON or as YAML.
func Encode(c *Collection, format string) ([]byte, error) {
	switch format {
	case FormatJSON, "":
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		if err := enc.Encode(c); err != nil {
			return nil, fmt.Errorf("encoding collection as json: %w", err)
		}
		return buf.Bytes(), nil
	case FormatYAML:
		out, err := yaml.Marshal(c)
		if err != nil {
			return nil, fmt.Errorf("encoding collection as yaml: %w", err)
		}
		return out, nil
	}
	return nil, fmt.Errorf("unsupported output format: %s (valid: json, yaml)", format)
}
