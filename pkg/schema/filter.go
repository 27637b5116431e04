package schema

const ListingsFilterSchemaTextV1 = `{
	"type": "record",
	"namespace": "storefront",
	"name": "listings_filter",
	"fields": [
		{"name": "shopper", "type": "string"},
		{"name": "brands", "type": {"type": "array", "items": "string"}},
		{"name": "conditions", "type": {"type": "array", "items": "string"}}
	]
}`

// Empty brands/conditions mean "no filter".
type ListingsFilterV1 struct {
	Shopper    string   `avro:"shopper"`
	Brands     []string `avro:"brands"`
	Conditions []string `avro:"conditions"`
}
