package schema_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vintagefinds/storefront/pkg/schema"
)

type MockSchemaIdentifier struct {
	mock.Mock
}

func (c *MockSchemaIdentifier) DetermineID(
	ctx context.Context, subject string, avroSchemaText string,
) (id int, err error) {
	args := c.Called(ctx, subject, avroSchemaText)
	return args.Int(0), args.Error(1)
}

func TestSerdeCartSnapshotV1(t *testing.T) {
	t.Run("NoOpts", func(t *testing.T) {
		_, err := schema.NewSerdeCartSnapshotV1(t.Context())
		require.Error(t, err)
		assert.ErrorIs(t, err, schema.ErrTooFewOpts)
	})

	t.Run("OneOpt", func(t *testing.T) {
		_, err := schema.NewSerdeCartSnapshotV1(
			t.Context(),
			schema.SchemaIdentifierOpt(new(MockSchemaIdentifier)),
		)
		require.Error(t, err)
		assert.ErrorIs(t, err, schema.ErrTooFewOpts)
	})

	t.Run("EncodeDecode", func(t *testing.T) {
		schemaIdentifier := new(MockSchemaIdentifier)
		schemaID := 1
		subject := "testTopic-value"

		schemaIdentifier.On(
			"DetermineID", t.Context(), subject, schema.CartSnapshotSchemaTextV1,
		).Return(schemaID, nil)

		serde, err := schema.NewSerdeCartSnapshotV1(
			t.Context(),
			schema.SubjectOpt(subject),
			schema.SchemaIdentifierOpt(schemaIdentifier),
		)
		require.NoError(t, err)

		snapshotValue1 := schema.CartSnapshotV1{
			SessionID: "sess-a",
			Items: []schema.LineItemV1{
				{ProductID: "prod-1", VariantID: "var-m-blue", Quantity: 2, UnitPrice: 40},
			},
			TotalItems: 2,
			TotalPrice: 80,
		}

		encodedData, err := serde.Encode(snapshotValue1)
		require.NoError(t, err)

		var snapshotValue2 schema.CartSnapshotV1
		err = serde.Decode(encodedData, &snapshotValue2)
		require.NoError(t, err)

		assert.Equal(t, snapshotValue1, snapshotValue2)
	})
}

func TestSerdeListingsFilterV1(t *testing.T) {
	schemaIdentifier := new(MockSchemaIdentifier)
	schemaID := 2
	subject := "listings-filter-value"

	schemaIdentifier.On(
		"DetermineID", t.Context(), subject, schema.ListingsFilterSchemaTextV1,
	).Return(schemaID, nil)

	serde, err := schema.NewSerdeListingsFilterV1(
		t.Context(),
		schema.SubjectOpt(subject),
		schema.SchemaIdentifierOpt(schemaIdentifier),
	)
	require.NoError(t, err)

	filterValue1 := schema.ListingsFilterV1{
		Shopper:    "sess-a",
		Brands:     []string{"Designer"},
		Conditions: []string{"Good", "Fair"},
	}

	encodedData, err := serde.Encode(filterValue1)
	require.NoError(t, err)

	var filterValue2 schema.ListingsFilterV1
	err = serde.Decode(encodedData, &filterValue2)
	require.NoError(t, err)

	assert.Equal(t, filterValue1, filterValue2)
}
