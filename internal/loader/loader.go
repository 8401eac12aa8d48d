// Package loader reads OpenAPI documents from disk and inspects them with
// libopenapi.
package loader

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/kolah/oacollect/internal/document"
)

type Result struct {
	Document *document.Node
	Path     string
	RawData  []byte
}

// LoadFile reads and decodes the document at path. The literal "-" reads
// standard input.
func LoadFile(path string) (*Result, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("reading spec file: %w", err)
	}

	result, err := Load(data)
	if err != nil {
		return nil, err
	}
	if path != "-" {
		if result.Path, err = filepath.Abs(path); err != nil {
			return nil, fmt.Errorf("resolving absolute path: %w", err)
		}
	}
	return result, nil
}

// Load decodes data as JSON, falling back to YAML.
func Load(data []byte) (*Result, error) {
	doc, err := document.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("parsing OpenAPI document: %w", err)
	}
	return &Result{Document: doc, RawData: data}, nil
}
