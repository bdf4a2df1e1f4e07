package widget

import (
	"testing"

	json "github.com/goccy/go-json"
	assert "github.com/stretchr/testify/require"

	"github.com/terminalpro/widgets-backend/spec"
)

func raw(values ...string) []json.RawMessage {
	out := make([]json.RawMessage, len(values))
	for i, v := range values {
		out[i] = json.RawMessage(v)
	}
	return out
}

func TestDeriveParam(t *testing.T) {
	tests := []struct {
		name        string
		param       *spec.Parameter
		wantKind    ParamKind
		wantChoices []json.RawMessage
	}{
		{
			name:     "plain string",
			param:    &spec.Parameter{Name: "symbol", In: "query", Schema: &spec.Schema{Type: "string"}},
			wantKind: KindString,
		},
		{
			name:     "no schema is free text",
			param:    &spec.Parameter{Name: "q", In: "query"},
			wantKind: KindString,
		},
		{
			name:     "integer",
			param:    &spec.Parameter{Name: "page", In: "query", Schema: &spec.Schema{Type: "integer"}},
			wantKind: KindNumber,
		},
		{
			name:     "boolean",
			param:    &spec.Parameter{Name: "adjusted", In: "query", Schema: &spec.Schema{Type: "boolean"}},
			wantKind: KindBoolean,
		},
		{
			name:     "date format",
			param:    &spec.Parameter{Name: "start_date", In: "query", Schema: &spec.Schema{Type: "string", Format: "date"}},
			wantKind: KindDate,
		},
		{
			name:     "date-time format",
			param:    &spec.Parameter{Name: "as_of", In: "query", Schema: &spec.Schema{Type: "string", Format: "date-time"}},
			wantKind: KindDate,
		},
		{
			name:        "enum",
			param:       &spec.Parameter{Name: "provider", In: "query", Schema: &spec.Schema{Enum: raw(`"a"`, `"b"`)}},
			wantKind:    KindEnum,
			wantChoices: raw(`"a"`, `"b"`),
		},
		{
			name: "enum array",
			param: &spec.Parameter{Name: "providers", In: "query", Schema: &spec.Schema{
				Type:  "array",
				Items: &spec.Schema{Enum: raw(`"a"`, `"b"`, `"c"`)},
			}},
			wantKind:    KindArray,
			wantChoices: raw(`"a"`, `"b"`, `"c"`),
		},
		{
			name: "anyOf enums merged in declared order",
			param: &spec.Parameter{Name: "interval", In: "query", Schema: &spec.Schema{
				AnyOf: []*spec.Schema{
					{Enum: raw(`"1d"`, `"1w"`)},
					{Enum: raw(`"1w"`, `"1m"`)},
				},
			}},
			wantKind:    KindEnum,
			wantChoices: raw(`"1d"`, `"1w"`, `"1m"`),
		},
		{
			name: "anyOf without enums uses first typed branch",
			param: &spec.Parameter{Name: "symbol", In: "query", Schema: &spec.Schema{
				AnyOf: []*spec.Schema{
					{Type: "null"},
					{Type: "string"},
				},
			}},
			wantKind: KindString,
		},
		{
			name:     "path parameter",
			param:    &spec.Parameter{Name: "pair", In: "path", Required: true, Schema: &spec.Schema{Type: "string"}},
			wantKind: KindString,
		},
		{
			name:     "object is unsupported",
			param:    &spec.Parameter{Name: "filter", In: "query", Schema: &spec.Schema{Type: "object"}},
			wantKind: KindUnsupported,
		},
		{
			name:     "array of plain strings is unsupported",
			param:    &spec.Parameter{Name: "fields", In: "query", Schema: &spec.Schema{Type: "array", Items: &spec.Schema{Type: "string"}}},
			wantKind: KindUnsupported,
		},
		{
			name:     "header location is unsupported",
			param:    &spec.Parameter{Name: "x-trace", In: "header", Schema: &spec.Schema{Type: "string"}},
			wantKind: KindUnsupported,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ps := deriveParam(tt.param)
			assert.Equal(t, tt.wantKind, ps.Kind)
			assert.Equal(t, tt.wantChoices, ps.Choices)
			assert.Equal(t, tt.param.Required, ps.Required)
		})
	}
}

func TestMapControl(t *testing.T) {
	tests := []struct {
		kind     ParamKind
		wantType ControlKind
	}{
		{KindString, ControlText},
		{KindNumber, ControlText},
		{KindBoolean, ControlCheckbox},
		{KindDate, ControlDatePicker},
		{KindEnum, ControlSelect},
		{KindArray, ControlMultiSelect},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			control, ok := MapControl(ParameterSpec{Name: "p", In: "query", Kind: tt.kind})
			assert.True(t, ok)
			assert.Equal(t, tt.wantType, control.Type)
		})
	}
}

func TestMapControl_NumericSubKind(t *testing.T) {
	control, ok := MapControl(ParameterSpec{Name: "limit", In: "query", Kind: KindNumber})
	assert.True(t, ok)
	assert.Equal(t, ControlText, control.Type)
	assert.Equal(t, "number", control.DataType)

	control, ok = MapControl(ParameterSpec{Name: "symbol", In: "query", Kind: KindString})
	assert.True(t, ok)
	assert.Empty(t, control.DataType)
}

func TestMapControl_PropagatesVerbatim(t *testing.T) {
	control, ok := MapControl(ParameterSpec{
		Name:     "provider",
		In:       "query",
		Kind:     KindEnum,
		Required: true,
		Default:  json.RawMessage(`"a"`),
		Choices:  raw(`"a"`, `"b"`),
	})
	assert.True(t, ok)
	assert.True(t, control.Required)
	assert.Equal(t, `"a"`, string(control.Default))
	assert.Equal(t, raw(`"a"`, `"b"`), control.Options)
}

func TestMapControl_Unsupported(t *testing.T) {
	_, ok := MapControl(ParameterSpec{Name: "filter", In: "query", Kind: KindUnsupported})
	assert.False(t, ok)
}

func TestMapControls_ReportsFirstUnmappable(t *testing.T) {
	controls, bad := mapControls([]ParameterSpec{
		{Name: "symbol", In: "query", Kind: KindString},
		{Name: "filter", In: "query", Kind: KindUnsupported},
	})
	assert.Nil(t, controls)
	assert.Equal(t, "filter", bad)
}
