package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// SchemaDocument is a JSON-Schema payload definition, kept as raw JSON so it
// can be embedded unmodified into the artifact bundle's "definitions" map
// without a decode/re-encode round trip.
type SchemaDocument = json.RawMessage

// validateSchemaDocument checks that schema is syntactically well-formed
// draft-07 JSON-Schema. It does not check anything about the payloads that
// will later be validated against it — only that the schema document
// itself would compile.
func validateSchemaDocument(identifier string, schema SchemaDocument) error {
	if len(bytes.TrimSpace(schema)) == 0 {
		return fmt.Errorf("manifest: declaration %q has an empty schema", identifier)
	}

	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft7

	resourceURL := fmt.Sprintf("mem://manifest/%s.schema.json", identifier)
	if err := compiler.AddResource(resourceURL, bytes.NewReader(schema)); err != nil {
		return fmt.Errorf("manifest: declaration %q has a malformed schema: %w", identifier, err)
	}
	if _, err := compiler.Compile(resourceURL); err != nil {
		return fmt.Errorf("manifest: declaration %q has an invalid schema: %w", identifier, err)
	}
	return nil
}
