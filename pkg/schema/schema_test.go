package schema

import (
	"testing"

	"github.com/hamba/avro/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductV1(t *testing.T) {
	t.Run("FullProduct", func(t *testing.T) {
		ca := 60.0
		vMarshal := ProductV1{
			ProductID:   "testProductID",
			Slug:        "field-jacket",
			Title:       "Field Jacket",
			Description: "testDescription",
			Brand:       "Vintage Band",
			Condition:   "Very Good",
			Images:      []string{"jacket-front.jpg"},
			Featured:    true,
			Price:       40,
			CompareAt:   &ca,
			InStock:     true,
			Currency:    "USD",
			Options: []ProductOptionV1{
				{
					Name:     "Color",
					Values:   []string{"Blue", "Black"},
					Swatches: map[string]string{"Blue": "#1c3d6e"},
				},
			},
			Variants: []VariantV1{
				{
					VariantID:    "var-m-blue",
					OptionValues: map[string]string{"Color": "Blue"},
					Price:        40,
					Stock:        5,
				},
			},
		}

		var productSchema avro.Schema
		require.NotPanics(t, func() {
			productSchema = avro.MustParse(ProductSchemaTextV1)
		})

		data, err := avro.Marshal(productSchema, vMarshal)
		require.NoError(t, err)

		var vUnmarshal ProductV1
		err = avro.Unmarshal(productSchema, data, &vUnmarshal)
		require.NoError(t, err)

		assert.Equal(t, vMarshal.ProductID, vUnmarshal.ProductID)
		assert.Equal(t, vMarshal.Slug, vUnmarshal.Slug)
		require.NotNil(t, vUnmarshal.CompareAt)
		assert.Equal(t, 60.0, *vUnmarshal.CompareAt)
		require.Len(t, vUnmarshal.Options, 1)
		assert.Equal(t, vMarshal.Options[0], vUnmarshal.Options[0])
		require.Len(t, vUnmarshal.Variants, 1)
		assert.Equal(t, vMarshal.Variants[0], vUnmarshal.Variants[0])
	})

	t.Run("NoCompareAtNoOptions", func(t *testing.T) {
		vMarshal := ProductV1{
			ProductID: "testProductID",
			Slug:      "silk-scarf",
			Title:     "Silk Scarf",
			Price:     35,
			InStock:   true,
			Currency:  "USD",
		}

		productSchema := avro.MustParse(ProductSchemaTextV1)

		data, err := avro.Marshal(productSchema, vMarshal)
		require.NoError(t, err)

		var vUnmarshal ProductV1
		err = avro.Unmarshal(productSchema, data, &vUnmarshal)
		require.NoError(t, err)

		assert.Nil(t, vUnmarshal.CompareAt)
		assert.Empty(t, vUnmarshal.Options)
		assert.Empty(t, vUnmarshal.Variants)
	})
}

func TestCartSnapshotV1(t *testing.T) {
	vMarshal := CartSnapshotV1{
		SessionID: "sess-a",
		Items: []LineItemV1{
			{ProductID: "prod-1", VariantID: "var-m-blue", Quantity: 5, UnitPrice: 40},
			{ProductID: "prod-2", VariantID: "", Quantity: 1, UnitPrice: 35},
		},
		TotalItems: 6,
		TotalPrice: 235,
	}

	cartSchema := avro.MustParse(CartSnapshotSchemaTextV1)

	data, err := avro.Marshal(cartSchema, vMarshal)
	require.NoError(t, err)

	var vUnmarshal CartSnapshotV1
	err = avro.Unmarshal(cartSchema, data, &vUnmarshal)
	require.NoError(t, err)

	assert.Equal(t, vMarshal, vUnmarshal)
}

func TestListingsFilterV1(t *testing.T) {
	t.Run("Regular", func(t *testing.T) {
		vMarshal := ListingsFilterV1{
			Shopper:    "sess-a",
			Brands:     []string{"Levi's", "Chanel"},
			Conditions: []string{"Excellent"},
		}

		filterSchema := avro.MustParse(ListingsFilterSchemaTextV1)

		data, err := avro.Marshal(filterSchema, vMarshal)
		require.NoError(t, err)

		var vUnmarshal ListingsFilterV1
		err = avro.Unmarshal(filterSchema, data, &vUnmarshal)
		require.NoError(t, err)

		assert.Equal(t, vMarshal, vUnmarshal)
	})

	t.Run("EmptyMeansNoFilter", func(t *testing.T) {
		vMarshal := ListingsFilterV1{Shopper: "sess-a"}

		filterSchema := avro.MustParse(ListingsFilterSchemaTextV1)

		data, err := avro.Marshal(filterSchema, vMarshal)
		require.NoError(t, err)

		var vUnmarshal ListingsFilterV1
		err = avro.Unmarshal(filterSchema, data, &vUnmarshal)
		require.NoError(t, err)

		assert.Empty(t, vUnmarshal.Brands)
		assert.Empty(t, vUnmarshal.Conditions)
	})
}
