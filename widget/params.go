package widget

import (
	json "github.com/goccy/go-json"

	"github.com/terminalpro/widgets-backend/spec"
)

// renderControls are query parameters owned by the renderer itself (paging,
// sorting, the chart toggle). They are not widget inputs and are dropped
// during classification the way the original backend dropped them.
var renderControls = map[string]bool{
	"sort":  true,
	"limit": true,
	"order": true,
	"chart": true,
}

// declaredParams extracts the canonical parameter sequence of an operation,
// in declaration order, suppressing renderer-owned query parameters.
func declaredParams(op *spec.Operation) []ParameterSpec {
	params := make([]ParameterSpec, 0, len(op.Parameters))
	for _, p := range op.Parameters {
		if p == nil {
			continue
		}
		if p.In == spec.ParameterQuery && renderControls[p.Name] {
			continue
		}
		params = append(params, deriveParam(p))
	}
	return params
}

func deriveParam(p *spec.Parameter) ParameterSpec {
	ps := ParameterSpec{
		Name:        p.Name,
		In:          p.In,
		Required:    p.Required,
		Description: p.Description,
	}

	if p.In != spec.ParameterPath && p.In != spec.ParameterQuery {
		ps.Kind = KindUnsupported
		return ps
	}

	schema := p.Schema
	if schema == nil {
		// An undeclared schema is treated as free text, matching how the
		// wrapped API documents untyped query parameters.
		ps.Kind = KindString
		return ps
	}

	ps.Kind, ps.Choices = deriveKind(schema)
	ps.Default = schema.Default
	if ps.Description == "" {
		ps.Description = schema.Description
	}
	return ps
}

// deriveKind reduces a parameter schema to a primitive kind, plus the
// declared choices for enum kinds. Enum values keep their declared order;
// values repeated across anyOf branches are collapsed.
func deriveKind(schema *spec.Schema) (ParamKind, []json.RawMessage) {
	if len(schema.Enum) > 0 {
		return KindEnum, schema.Enum
	}

	if len(schema.AnyOf) > 0 {
		if choices := mergeEnums(schema.AnyOf); len(choices) > 0 {
			return KindEnum, choices
		}
		// No enum branch: fall back to the first branch with a usable type.
		for _, branch := range schema.AnyOf {
			if branch == nil || branch.Type == "" || branch.Type == "null" {
				continue
			}
			return deriveKind(branch)
		}
		return KindUnsupported, nil
	}

	switch schema.Type {
	case "boolean":
		return KindBoolean, nil
	case "string":
		if schema.Format == "date" || schema.Format == "date-time" {
			return KindDate, nil
		}
		return KindString, nil
	case "number", "integer":
		return KindNumber, nil
	case "array":
		if schema.Items == nil {
			return KindUnsupported, nil
		}
		itemKind, choices := deriveKind(schema.Items)
		if itemKind == KindEnum {
			return KindArray, choices
		}
		return KindUnsupported, nil
	default:
		return KindUnsupported, nil
	}
}

func mergeEnums(branches []*spec.Schema) []json.RawMessage {
	var merged []json.RawMessage
	seen := make(map[string]bool)
	for _, branch := range branches {
		if branch == nil {
			continue
		}
		for _, value := range branch.Enum {
			if seen[string(value)] {
				continue
			}
			seen[string(value)] = true
			merged = append(merged, value)
		}
	}
	return merged
}

// MapControl converts one ParameterSpec into its input control following the
// fixed kind-to-presentation table. The second return is false for an
// unmappable parameter, which drops the containing operation.
func MapControl(ps ParameterSpec) (InputControl, bool) {
	control := InputControl{
		Name:        ps.Name,
		Location:    ps.In,
		Required:    ps.Required,
		Default:     ps.Default,
		Description: ps.Description,
	}

	switch ps.Kind {
	case KindEnum:
		control.Type = ControlSelect
		control.Options = ps.Choices
	case KindArray:
		control.Type = ControlMultiSelect
		control.Options = ps.Choices
	case KindBoolean:
		control.Type = ControlCheckbox
	case KindDate:
		control.Type = ControlDatePicker
	case KindString:
		control.Type = ControlText
	case KindNumber:
		// The numeric sub-kind is preserved for client-side validation.
		control.Type = ControlText
		control.DataType = "number"
	default:
		return InputControl{}, false
	}

	return control, true
}

// mapControls maps every parameter of an operation. On the first unmappable
// parameter it reports that parameter's name and no controls.
func mapControls(params []ParameterSpec) ([]InputControl, string) {
	controls := make([]InputControl, 0, len(params))
	for _, ps := range params {
		control, ok := MapControl(ps)
		if !ok {
			return nil, ps.Name
		}
		controls = append(controls, control)
	}
	return controls, ""
}
