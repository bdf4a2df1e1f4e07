package spec

// testDocument is a small document that exercises every classification and
// mapping branch: enum, anyOf-enum, date, boolean and array parameters, an
// excluded operation, an unmappable one, an unresolvable response reference,
// an operation with no JSON response, and a mutating method.
const testDocument = `{
  "info": {"title": "Test Platform API", "version": "1.0.0"},
  "paths": {
    "/api/equity/price/historical": {
      "get": {
        "operationId": "equity_price_historical",
        "summary": "Historical Price",
        "description": "End of day price history.",
        "tags": ["equity"],
        "parameters": [
          {"name": "symbol", "in": "query", "required": true, "schema": {"type": "string"}},
          {"name": "provider", "in": "query", "required": false, "schema": {"enum": ["a", "b"], "default": "a"}},
          {"name": "start_date", "in": "query", "schema": {"type": "string", "format": "date"}},
          {"name": "adjusted", "in": "query", "schema": {"type": "boolean", "default": false}},
          {"name": "interval", "in": "query", "schema": {"anyOf": [{"enum": ["1d", "1w"]}, {"type": "null"}]}},
          {"name": "limit", "in": "query", "schema": {"type": "integer"}}
        ],
        "responses": {"200": {"content": {"application/json": {"schema": {"$ref": "#/components/schemas/PriceHistoricalResponse"}}}}}
      }
    },
    "/api/equity/search": {
      "get": {
        "operationId": "equity_search",
        "tags": ["equity"],
        "parameters": [
          {"name": "query", "in": "query", "required": true, "schema": {"type": "string"}},
          {"name": "providers", "in": "query", "schema": {"type": "array", "items": {"enum": ["a", "b", "c"]}}}
        ],
        "responses": {"200": {"content": {"application/json": {"schema": {"type": "array", "items": {"type": "object", "properties": {"symbol": {"type": "string"}}}}}}}}
      }
    },
    "/api/equity/order": {
      "post": {
        "operationId": "equity_order",
        "tags": ["equity"],
        "responses": {"200": {"content": {"application/json": {"schema": {"type": "object"}}}}}
      }
    },
    "/api/crypto/price": {
      "get": {
        "operationId": "crypto_price",
        "tags": ["crypto"],
        "x-widget-exclude": true,
        "responses": {"200": {"content": {"application/json": {"schema": {"type": "object"}}}}}
      }
    },
    "/api/economy/gdp": {
      "get": {
        "operationId": "economy_gdp",
        "tags": ["economy"],
        "responses": {"200": {"content": {"application/json": {"schema": {"$ref": "#/components/schemas/Missing"}}}}}
      }
    },
    "/api/health": {
      "get": {
        "operationId": "health",
        "responses": {"200": {"description": "ok"}}
      }
    },
    "/api/market/clock": {
      "get": {
        "operationId": "market_clock",
        "responses": {"200": {"content": {"application/json": {"schema": {"type": "number"}}}}}
      }
    },
    "/api/news/feed": {
      "get": {
        "operationId": "news_feed",
        "tags": ["news"],
        "parameters": [
          {"name": "filter", "in": "query", "schema": {"type": "object"}}
        ],
        "responses": {"200": {"content": {"application/json": {"schema": {"type": "object"}}}}}
      }
    },
    "/api/notes/recent": {
      "get": {
        "operationId": "notes_recent",
        "summary": "Recent Notes",
        "tags": ["notes"],
        "x-widget-output": "table",
        "responses": {"200": {"content": {"application/json": {"schema": {"type": "object"}}}}}
      }
    }
  },
  "components": {
    "schemas": {
      "PriceHistoricalResponse": {
        "type": "object",
        "properties": {
          "results": {"type": "array", "items": {"$ref": "#/components/schemas/PriceRow"}}
        }
      },
      "PriceRow": {
        "type": "object",
        "properties": {
          "date": {"type": "string", "format": "date"},
          "close": {"type": "number"}
        }
      }
    }
  }
}`

// Test returns the canned test document. Don't mutate it.
func Test() *Document {
	doc, err := Parse([]byte(testDocument), "testdata")
	if err != nil {
		panic(err)
	}
	return doc
}
