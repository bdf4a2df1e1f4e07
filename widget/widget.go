// Package widget turns a parsed OpenAPI document into the widget manifest
// consumed by the Terminal Pro renderer: it classifies operations, maps their
// parameters to input controls, synthesizes widget definitions and aggregates
// them into a deterministic manifest document.
package widget

import (
	"fmt"

	json "github.com/goccy/go-json"
)

// ParamKind is the primitive kind of a declared parameter.
type ParamKind string

const (
	KindString  ParamKind = "string"
	KindNumber  ParamKind = "number"
	KindBoolean ParamKind = "boolean"
	KindEnum    ParamKind = "enum"
	KindDate    ParamKind = "date"
	KindArray   ParamKind = "array"

	// KindUnsupported marks a parameter whose schema cannot be mapped to
	// any input control. One unsupported parameter drops the whole
	// operation; a widget cannot be partially parameterized.
	KindUnsupported ParamKind = "unsupported"
)

// ParameterSpec is the canonical form of one declared parameter, extracted
// during classification.
type ParameterSpec struct {
	Name        string
	In          string
	Kind        ParamKind
	Required    bool
	Default     json.RawMessage
	Choices     []json.RawMessage
	Description string
}

// ControlKind is the presentation kind of an input control.
type ControlKind string

const (
	ControlText        ControlKind = "text"
	ControlSelect      ControlKind = "select"
	ControlMultiSelect ControlKind = "multiselect"
	ControlDatePicker  ControlKind = "date-picker"
	ControlCheckbox    ControlKind = "checkbox"
)

// InputControl is the rendered form of one ParameterSpec. Defaults and
// choices are raw JSON so the declared values pass through verbatim.
type InputControl struct {
	Name        string            `json:"name"`
	Type        ControlKind       `json:"type"`
	Location    string            `json:"location"`
	DataType    string            `json:"data_type,omitempty"`
	Required    bool              `json:"required"`
	Default     json.RawMessage   `json:"default,omitempty"`
	Options     []json.RawMessage `json:"options,omitempty"`
	Description string            `json:"description,omitempty"`
}

// OutputHint tells the renderer how widget data is best displayed. The
// inference producing it is best-effort; authors can pin a hint with the
// x-widget-output extension.
type OutputHint string

const (
	OutputTable OutputHint = "table"
	OutputChart OutputHint = "chart"
	OutputText  OutputHint = "text"
)

// Definition is one widget in the manifest. It is owned by the Manifest and
// rebuilt from scratch on every schema load.
type Definition struct {
	ID         string         `json:"-"`
	Name       string         `json:"name"`
	Category   string         `json:"category"`
	Grouping   []string       `json:"-"`
	Endpoint   string         `json:"endpoint"`
	Method     string         `json:"method"`
	Params     []InputControl `json:"params"`
	OutputHint OutputHint     `json:"output_hint"`
}

// Warning records an operation that was skipped or adjusted during a build.
// Warnings never abort a build.
type Warning struct {
	OperationID string `json:"operation_id"`
	Path        string `json:"path"`
	Method      string `json:"method"`
	Reason      string `json:"reason"`
}

func (w Warning) String() string {
	return fmt.Sprintf("%s %s (%s): %s", w.Method, w.Path, w.OperationID, w.Reason)
}
