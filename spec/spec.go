// Package spec models the subset of an OpenAPI 3 document that the widget
// pipeline consumes, and loads documents from a URL or a file on disk.
package spec

import (
	json "github.com/goccy/go-json"
)

// Extension field names recognized on operations. These are a compatibility
// surface shared with document authors; do not rename.
const (
	// ExtExclude marks an operation as excluded from widget generation.
	ExtExclude = "x-widget-exclude"

	// ExtOutput overrides the inferred output hint of a widget
	// ("table", "chart" or "text").
	ExtOutput = "x-widget-output"
)

// Parameter locations.
const (
	ParameterPath  = "path"
	ParameterQuery = "query"
)

type HTTPVerb string

type Path string

type StatusCode string

// Spec is a parsed OpenAPI document.
type Spec struct {
	Info       *Info                            `json:"info"`
	Paths      map[Path]map[HTTPVerb]*Operation `json:"paths"`
	Components Components                       `json:"components"`
}

type Info struct {
	Title   string `json:"title"`
	Version string `json:"version"`
}

type Components struct {
	Schemas map[string]*Schema `json:"schemas"`
}

type Operation struct {
	OperationID string                  `json:"operationId"`
	Summary     string                  `json:"summary"`
	Description string                  `json:"description"`
	Tags        []string                `json:"tags"`
	Parameters  []*Parameter            `json:"parameters"`
	Responses   map[StatusCode]Response `json:"responses"`

	// XWidgetExclude and XWidgetOutput carry the recognized extension
	// markers; see ExtExclude and ExtOutput.
	XWidgetExclude bool   `json:"x-widget-exclude"`
	XWidgetOutput  string `json:"x-widget-output"`
}

type Parameter struct {
	Name        string  `json:"name"`
	In          string  `json:"in"`
	Description string  `json:"description"`
	Required    bool    `json:"required"`
	Schema      *Schema `json:"schema"`
}

type Response struct {
	Description string               `json:"description"`
	Content     map[string]MediaType `json:"content"`
}

type MediaType struct {
	Schema *Schema `json:"schema"`
}

// Schema is one node of the typed schema tree. Enum values and defaults are
// kept as raw JSON so they propagate to the manifest byte for byte.
type Schema struct {
	Type        string             `json:"type"`
	Format      string             `json:"format"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Enum        []json.RawMessage  `json:"enum"`
	Default     json.RawMessage    `json:"default"`
	Items       *Schema            `json:"items"`
	Properties  map[string]*Schema `json:"properties"`
	AnyOf       []*Schema          `json:"anyOf"`

	// Ref is populated if this node is actually a JSON reference, and it
	// defines the location of the actual schema definition.
	Ref string `json:"$ref"`

	// RawFields stores a raw map of schema fields to values, including any
	// fields not modeled above.
	RawFields map[string]interface{} `json:"-"`
}

func (s *Schema) UnmarshalJSON(data []byte) error {
	type schema Schema
	var inner schema
	err := json.Unmarshal(data, &inner)
	if err != nil {
		return err
	}
	*s = Schema(inner)

	var rawFields map[string]interface{}
	err = json.Unmarshal(data, &rawFields)
	if err != nil {
		return err
	}
	s.RawFields = rawFields

	return nil
}

// ResolveRef returns the schema a node points at, following `$ref` chains
// through components.schemas. The second return is false when a reference
// cannot be resolved. A nil node resolves to nil, true.
func (s *Spec) ResolveRef(node *Schema) (*Schema, bool) {
	// The depth guard keeps cyclic references from looping forever.
	for depth := 0; node != nil && node.Ref != ""; depth++ {
		if depth > 32 {
			return nil, false
		}
		name, ok := definitionFromRef(node.Ref)
		if !ok {
			return nil, false
		}
		next, ok := s.Components.Schemas[name]
		if !ok {
			return nil, false
		}
		node = next
	}
	return node, true
}

// definitionFromRef extracts the name of a schema definition from a JSON
// pointer, so "#/components/schemas/PriceHistorical" becomes just
// "PriceHistorical". Only local component references are supported.
func definitionFromRef(pointer string) (string, bool) {
	const prefix = "#/components/schemas/"
	if len(pointer) <= len(prefix) || pointer[:len(prefix)] != prefix {
		return "", false
	}
	return pointer[len(prefix):], true
}
