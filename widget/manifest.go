package widget

import (
	"bytes"
	"sort"
	"strings"

	json "github.com/goccy/go-json"
)

// Manifest is the complete widget collection for one document load. It is
// immutable once built and safe for concurrent readers.
type Manifest struct {
	fingerprint string
	widgets     map[string]Definition
	order       []string
}

// NewManifest aggregates definitions into a manifest. Identifiers should
// already be unique upstream; if two definitions collide anyway, the later
// one wins and the earlier is dropped with a warning.
func NewManifest(fingerprint string, defs []Definition) (*Manifest, []Warning) {
	widgets := make(map[string]Definition, len(defs))
	var warnings []Warning

	for _, def := range defs {
		if prev, exists := widgets[def.ID]; exists {
			warnings = append(warnings, Warning{
				OperationID: def.ID,
				Path:        prev.Endpoint,
				Method:      prev.Method,
				Reason:      "duplicate widget identifier, earlier definition dropped",
			})
		}
		widgets[def.ID] = def
	}

	order := make([]string, 0, len(widgets))
	for id := range widgets {
		order = append(order, id)
	}
	sort.Slice(order, func(i, j int) bool {
		a, b := widgets[order[i]], widgets[order[j]]
		ga, gb := strings.Join(a.Grouping, "/"), strings.Join(b.Grouping, "/")
		if ga != gb {
			return ga < gb
		}
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.ID < b.ID
	})

	return &Manifest{
		fingerprint: fingerprint,
		widgets:     widgets,
		order:       order,
	}, warnings
}

// Fingerprint identifies the source document this manifest was built from.
func (m *Manifest) Fingerprint() string { return m.fingerprint }

// Len returns the number of widgets.
func (m *Manifest) Len() int { return len(m.order) }

// IDs returns the widget identifiers in manifest order.
func (m *Manifest) IDs() []string {
	ids := make([]string, len(m.order))
	copy(ids, m.order)
	return ids
}

// Widget looks up one definition by identifier.
func (m *Manifest) Widget(id string) (Definition, bool) {
	def, ok := m.widgets[id]
	return def, ok
}

// MarshalJSON emits the manifest as an object mapping widget identifier to
// widget definition, keyed in manifest order. Identical manifests always
// produce identical bytes.
func (m *Manifest) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, id := range m.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(id)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')

		def := m.widgets[id]
		value, err := json.Marshal(&def)
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
