package widget

import (
	"sort"
	"strings"

	"github.com/terminalpro/widgets-backend/spec"
)

// OperationDescriptor is the canonical form of one eligible operation.
// Identifiers are regenerated on every load and never persisted.
type OperationDescriptor struct {
	Path        string
	Method      string
	ID          string
	Summary     string
	Description string
	Tags        []string
	Params      []ParameterSpec
	Response    *spec.Schema

	// Output carries the x-widget-output override when the document
	// declares one; empty means infer from the response schema.
	Output string
}

// Classify walks the document and produces a descriptor for every operation
// eligible to become a widget. Mutating methods, operations without a JSON
// response schema and operations carrying the exclusion marker are skipped
// outright; an operation whose response reference cannot be resolved is
// skipped with a warning so one malformed operation never fails the build.
//
// The document is JSON, so declaration order does not survive parsing; the
// descriptor sequence is ordered by path, then method, which is stable for
// identical input.
func Classify(s *spec.Spec) ([]OperationDescriptor, []Warning) {
	paths := make([]string, 0, len(s.Paths))
	for path := range s.Paths {
		paths = append(paths, string(path))
	}
	sort.Strings(paths)

	var descriptors []OperationDescriptor
	var warnings []Warning

	for _, path := range paths {
		verbs := s.Paths[spec.Path(path)]

		methods := make([]string, 0, len(verbs))
		for verb := range verbs {
			methods = append(methods, string(verb))
		}
		sort.Strings(methods)

		for _, method := range methods {
			op := verbs[spec.HTTPVerb(method)]
			if op == nil || !strings.EqualFold(method, "get") {
				continue
			}
			if op.XWidgetExclude {
				continue
			}

			schema := responseSchema(op)
			if schema == nil {
				continue
			}

			id := op.OperationID
			if id == "" {
				id = slugFromRoute(method, path)
			}

			resolved, ok := s.ResolveRef(schema)
			if !ok {
				warnings = append(warnings, Warning{
					OperationID: id,
					Path:        path,
					Method:      strings.ToUpper(method),
					Reason:      "unresolvable response schema reference",
				})
				continue
			}

			descriptors = append(descriptors, OperationDescriptor{
				Path:        path,
				Method:      strings.ToUpper(method),
				ID:          id,
				Summary:     op.Summary,
				Description: op.Description,
				Tags:        op.Tags,
				Params:      declaredParams(op),
				Response:    resolved,
				Output:      op.XWidgetOutput,
			})
		}
	}

	return descriptors, warnings
}

// responseSchema returns the schema of the operation's 200 JSON response, or
// nil if the operation declares none.
func responseSchema(op *spec.Operation) *spec.Schema {
	resp, ok := op.Responses["200"]
	if !ok {
		return nil
	}
	media, ok := resp.Content["application/json"]
	if !ok {
		return nil
	}
	return media.Schema
}

// slugFromRoute builds a stable operation identifier for documents that omit
// operationId, e.g. "get_api_equity_price_historical".
func slugFromRoute(method, path string) string {
	replacer := strings.NewReplacer("/", "_", "{", "", "}", "", "-", "_", ".", "_")
	return strings.ToLower(method) + "_" + replacer.Replace(strings.Trim(path, "/"))
}
