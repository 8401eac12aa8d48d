package collection

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const schemaURL = "https://oacollect.dev/schemas/collection.json"

//go:embed schemas/collection.json
var schemaFS embed.FS

var compiledSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	raw, err := schemaFS.ReadFile("schemas/collection.json")
	if err != nil {
		return nil, fmt.Errorf("reading collection schema: %w", err)
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("parsing collection schema: %w", err)
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource(schemaURL, doc); err != nil {
		return nil, fmt.Errorf("adding collection schema: %w", err)
	}
	return c.Compile(schemaURL)
})

// Validate checks c against the embedded collection JSON schema.
func Validate(c *Collection) error {
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding collection: %w", err)
	}
	return ValidateJSON(data)
}

// ValidateJSON checks an encoded collection against the schema.
func ValidateJSON(data []byte) error {
	sch, err := compiledSchema()
	if err != nil {
		return err
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("decoding collection: %w", err)
	}
	if err := sch.Validate(inst); err != nil {
		return fmt.Errorf("collection does not match schema: %w", err)
	}
	return nil
}
