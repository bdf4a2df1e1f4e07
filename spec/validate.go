package spec

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// documentSchema is the structural minimum we require of a document before
// attempting classification: a JSON object with an object `paths` whose
// values are themselves objects. Everything beyond that is handled
// per-operation so one bad operation never fails the whole document.
const documentSchema = `{
	"type": "object",
	"required": ["paths"],
	"properties": {
		"paths": {
			"type": "object",
			"additionalProperties": {"type": "object"}
		},
		"components": {"type": "object"},
		"info": {"type": "object"}
	}
}`

var documentSchemaLoader = gojsonschema.NewStringLoader(documentSchema)

// Validate checks raw bytes against the structural document schema. A
// failure is reported as ErrSchemaMalformed with the offending details.
func Validate(raw []byte) error {
	result, err := gojsonschema.Validate(documentSchemaLoader, gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSchemaMalformed, err)
	}
	if result.Valid() {
		return nil
	}

	details := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		details = append(details, desc.String())
	}
	return fmt.Errorf("%w: %s", ErrSchemaMalformed, strings.Join(details, "; "))
}
