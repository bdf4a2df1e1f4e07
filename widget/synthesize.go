package widget

import (
	"strings"
	"unicode"

	"github.com/terminalpro/widgets-backend/spec"
)

// defaultCategory groups widgets whose operations declare no tags.
const defaultCategory = "general"

// Synthesize combines one descriptor and its mapped controls into a widget
// definition. The widget identifier is the operation identifier, so it is
// stable across reloads of the same document.
func Synthesize(s *spec.Spec, desc OperationDescriptor, controls []InputControl) Definition {
	grouping := make([]string, 0, len(desc.Tags))
	for _, tag := range desc.Tags {
		if tag != "" {
			grouping = append(grouping, strings.ToLower(tag))
		}
	}
	if len(grouping) == 0 {
		grouping = []string{defaultCategory}
	}

	name := desc.Summary
	if name == "" {
		name = humanize(desc.ID)
	}

	return Definition{
		ID:         desc.ID,
		Name:       name,
		Category:   humanize(grouping[0]),
		Grouping:   grouping,
		Endpoint:   desc.Path,
		Method:     desc.Method,
		Params:     controls,
		OutputHint: outputHint(s, desc),
	}
}

// outputHint prefers the document's explicit override and otherwise infers a
// hint from the response schema shape. The inference is best-effort: an
// array of objects renders as a table, numeric shapes as a chart, everything
// else as text. Novel shapes may be misclassified; the override is the
// escape hatch.
func outputHint(s *spec.Spec, desc OperationDescriptor) OutputHint {
	switch OutputHint(desc.Output) {
	case OutputTable, OutputChart, OutputText:
		return OutputHint(desc.Output)
	}
	return inferOutputHint(s, desc.Response, 0)
}

func inferOutputHint(s *spec.Spec, schema *spec.Schema, depth int) OutputHint {
	if schema == nil || depth > 8 {
		return OutputText
	}

	resolved, ok := s.ResolveRef(schema)
	if !ok || resolved == nil {
		return OutputText
	}
	schema = resolved

	// The wrapped API nests payloads under a "results" property; the hint
	// comes from the payload, not the envelope.
	if schema.Type == "object" || len(schema.Properties) > 0 {
		if results, ok := schema.Properties["results"]; ok {
			return inferOutputHint(s, results, depth+1)
		}
	}

	if len(schema.AnyOf) > 0 {
		return inferOutputHint(s, schema.AnyOf[0], depth+1)
	}

	switch schema.Type {
	case "array":
		items, ok := s.ResolveRef(schema.Items)
		if !ok || items == nil {
			return OutputText
		}
		if items.Type == "object" || len(items.Properties) > 0 {
			return OutputTable
		}
		if items.Type == "number" || items.Type == "integer" {
			return OutputChart
		}
		return OutputText
	case "number", "integer":
		return OutputChart
	default:
		return OutputText
	}
}

// humanize turns an operation identifier like "equity_price_historical"
// into "Equity Price Historical".
func humanize(id string) string {
	replacer := strings.NewReplacer("_", " ", "-", " ", ".", " ")
	words := strings.Fields(replacer.Replace(id))
	for i, word := range words {
		runes := []rune(word)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
