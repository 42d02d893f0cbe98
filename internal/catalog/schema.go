package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed catalog.schema.json
var schemaJSON []byte

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

// validate checks raw catalog JSON against the embedded schema.
func validate(raw []byte) error {
	compiled, err := compiledSchema()
	if err != nil {
		return err
	}

	parsed, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("catalog: invalid JSON: %w", err)
	}

	if err := compiled.Validate(parsed); err != nil {
		return fmt.Errorf("catalog: schema validation failed: %w", err)
	}
	return nil
}

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		parsed, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaJSON))
		if err != nil {
			schemaErr = fmt.Errorf("parse catalog schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource("schema://catalog.json", parsed); err != nil {
			schemaErr = fmt.Errorf("add catalog schema: %w", err)
			return
		}
		schema, schemaErr = c.Compile("schema://catalog.json")
	})
	return schema, schemaErr
}
