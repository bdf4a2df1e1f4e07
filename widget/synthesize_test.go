package widget

import (
	"testing"

	assert "github.com/stretchr/testify/require"

	"github.com/terminalpro/widgets-backend/spec"
)

func TestHumanize(t *testing.T) {
	assert.Equal(t, "Equity Price Historical", humanize("equity_price_historical"))
	assert.Equal(t, "Market Clock", humanize("market-clock"))
	assert.Equal(t, "Fx Rate", humanize("fx.rate"))
	assert.Equal(t, "General", humanize("general"))
}

func TestSynthesize_NamingAndCategory(t *testing.T) {
	s := spec.Test().Spec

	def := Synthesize(s, OperationDescriptor{
		ID:      "equity_search",
		Path:    "/api/equity/search",
		Method:  "GET",
		Tags:    []string{"Equity", "Discovery"},
		Summary: "",
	}, nil)
	assert.Equal(t, "Equity Search", def.Name)
	assert.Equal(t, "Equity", def.Category)
	assert.Equal(t, []string{"equity", "discovery"}, def.Grouping)

	def = Synthesize(s, OperationDescriptor{
		ID:      "market_clock",
		Path:    "/api/market/clock",
		Method:  "GET",
		Summary: "Market Clock",
	}, nil)
	assert.Equal(t, "General", def.Category)
	assert.Equal(t, []string{"general"}, def.Grouping)
}

func TestOutputHint_Inference(t *testing.T) {
	doc := spec.Test()
	s := doc.Spec

	tests := []struct {
		name   string
		schema *spec.Schema
		want   OutputHint
	}{
		{
			name:   "array of objects is a table",
			schema: &spec.Schema{Type: "array", Items: &spec.Schema{Type: "object"}},
			want:   OutputTable,
		},
		{
			name:   "results envelope unwrapped",
			schema: &spec.Schema{Ref: "#/components/schemas/PriceHistoricalResponse"},
			want:   OutputTable,
		},
		{
			name:   "numeric scalar is a chart",
			schema: &spec.Schema{Type: "number"},
			want:   OutputChart,
		},
		{
			name:   "array of numbers is a chart",
			schema: &spec.Schema{Type: "array", Items: &spec.Schema{Type: "number"}},
			want:   OutputChart,
		},
		{
			name:   "plain object is text",
			schema: &spec.Schema{Type: "object"},
			want:   OutputText,
		},
		{
			name:   "string is text",
			schema: &spec.Schema{Type: "string"},
			want:   OutputText,
		},
		{
			name:   "nil is text",
			schema: nil,
			want:   OutputText,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, inferOutputHint(s, tt.schema, 0))
		})
	}
}

func TestOutputHint_Override(t *testing.T) {
	s := spec.Test().Spec
	desc := OperationDescriptor{
		ID:       "notes_recent",
		Response: &spec.Schema{Type: "object"},
		Output:   "table",
	}
	assert.Equal(t, OutputTable, outputHint(s, desc))

	// An unrecognized override falls back to the heuristic.
	desc.Output = "sparkline"
	assert.Equal(t, OutputText, outputHint(s, desc))
}
