package schema

const ProductSchemaTextV1 = `{
	"type": "record",
	"namespace": "storefront",
	"name": "product",
	"fields": [
		{"name": "product_id", "type": "string"},
		{"name": "slug", "type": "string"},
		{"name": "title", "type": "string"},
		{"name": "description", "type": "string"},
		{"name": "brand", "type": "string"},
		{"name": "condition", "type": "string"},
		{"name": "images", "type": {"type": "array", "items": "string"}},
		{"name": "featured", "type": "boolean"},
		{"name": "price", "type": "double"},
		{"name": "compare_at", "type": ["null", "double"], "default": null},
		{"name": "in_stock", "type": "boolean"},
		{"name": "currency", "type": "string"},
		{"name": "options", "type": {"type": "array", "items": {
			"type": "record",
			"name": "option",
			"fields": [
				{"name": "name", "type": "string"},
				{"name": "values", "type": {"type": "array", "items": "string"}},
				{"name": "swatches", "type": {"type": "map", "values": "string"}}
			]
		}}},
		{"name": "variants", "type": {"type": "array", "items": {
			"type": "record",
			"name": "variant",
			"fields": [
				{"name": "variant_id", "type": "string"},
				{"name": "option_values", "type": {"type": "map", "values": "string"}},
				{"name": "price", "type": "double"},
				{"name": "compare_at", "type": ["null", "double"], "default": null},
				{"name": "stock", "type": "long"},
				{"name": "image", "type": "string"}
			]
		}}}
	]
}`

type (
	ProductV1 struct {
		ProductID   string            `avro:"product_id"`
		Slug        string            `avro:"slug"`
		Title       string            `avro:"title"`
		Description string            `avro:"description"`
		Brand       string            `avro:"brand"`
		Condition   string            `avro:"condition"`
		Images      []string          `avro:"images"`
		Featured    bool              `avro:"featured"`
		Price       float64           `avro:"price"`
		CompareAt   *float64          `avro:"compare_at"`
		InStock     bool              `avro:"in_stock"`
		Currency    string            `avro:"currency"`
		Options     []ProductOptionV1 `avro:"options"`
		Variants    []VariantV1       `avro:"variants"`
	}

	ProductOptionV1 struct {
		Name     string            `avro:"name"`
		Values   []string          `avro:"values"`
		Swatches map[string]string `avro:"swatches"`
	}

	VariantV1 struct {
		VariantID    string            `avro:"variant_id"`
		OptionValues map[string]string `avro:"option_values"`
		Price        float64           `avro:"price"`
		CompareAt    *float64          `avro:"compare_at"`
		Stock        int               `avro:"stock"`
		Image        string            `avro:"image"`
	}
)
