package schema

const CartSnapshotSchemaTextV1 = `{
	"type": "record",
	"namespace": "storefront",
	"name": "cart_snapshot",
	"fields": [
		{"name": "session_id", "type": "string"},
		{"name": "items", "type": {"type": "array", "items": {
			"type": "record",
			"name": "line_item",
			"fields": [
				{"name": "product_id", "type": "string"},
				{"name": "variant_id", "type": "string"},
				{"name": "quantity", "type": "long"},
				{"name": "unit_price", "type": "double"}
			]
		}}},
		{"name": "total_items", "type": "long"},
		{"name": "total_price", "type": "double"}
	]
}`

type (
	CartSnapshotV1 struct {
		SessionID  string       `avro:"session_id"`
		Items      []LineItemV1 `avro:"items"`
		TotalItems int          `avro:"total_items"`
		TotalPrice float64      `avro:"total_price"`
	}

	LineItemV1 struct {
		ProductID string  `avro:"product_id"`
		VariantID string  `avro:"variant_id"`
		Quantity  int     `avro:"quantity"`
		UnitPrice float64 `avro:"unit_price"`
	}
)
