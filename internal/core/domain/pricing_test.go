package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurrentPrice(t *testing.T) {
	p := fieldJacket()

	t.Run("ResolvedVariantPrice", func(t *testing.T) {
		v, ok := ResolveVariant(p, Selection{"Size": "M", "Color": "Black"})
		require.True(t, ok)
		assert.Equal(t, 45.0, CurrentPrice(p, v, ok))
	})

	t.Run("BasePriceWhileIncomplete", func(t *testing.T) {
		v, ok := ResolveVariant(p, Selection{"Size": "M"})
		require.False(t, ok)
		assert.Equal(t, 40.0, CurrentPrice(p, v, ok))
	})
}

func TestCurrentCompareAt(t *testing.T) {
	t.Run("VariantCompareAt", func(t *testing.T) {
		p := fieldJacket()
		v, ok := ResolveVariant(p, Selection{"Size": "M", "Color": "Black"})
		require.True(t, ok)

		ca := CurrentCompareAt(p, v, ok)
		require.NotNil(t, ca)
		assert.Equal(t, 45.0, *ca)
	})

	t.Run("FallsBackToProduct", func(t *testing.T) {
		p := fieldJacket()
		base := 55.0
		p.CompareAt = &base

		v, ok := ResolveVariant(p, Selection{"Size": "M", "Color": "Blue"})
		require.True(t, ok)

		ca := CurrentCompareAt(p, v, ok)
		require.NotNil(t, ca)
		assert.Equal(t, 55.0, *ca)
	})

	t.Run("Absent", func(t *testing.T) {
		p := fieldJacket()
		v, ok := ResolveVariant(p, Selection{"Size": "M", "Color": "Blue"})
		require.True(t, ok)
		assert.Nil(t, CurrentCompareAt(p, v, ok))
	})
}

func TestDiscountPercentage(t *testing.T) {
	t.Run("Regular", func(t *testing.T) {
		ca := 50.0
		pct, ok := DiscountPercentage(40, &ca)
		require.True(t, ok)
		assert.Equal(t, 20, pct)
	})

	t.Run("AbsentWhenNoCompareAt", func(t *testing.T) {
		_, ok := DiscountPercentage(40, nil)
		assert.False(t, ok)
	})

	t.Run("AbsentWhenCompareAtNotGreater", func(t *testing.T) {
		ca := 40.0
		_, ok := DiscountPercentage(40, &ca)
		assert.False(t, ok)

		ca = 30.0
		_, ok = DiscountPercentage(40, &ca)
		assert.False(t, ok)
	})

	t.Run("AbsentWhenPriceNotPositive", func(t *testing.T) {
		ca := 50.0
		_, ok := DiscountPercentage(0, &ca)
		assert.False(t, ok)

		_, ok = DiscountPercentage(-1, &ca)
		assert.False(t, ok)
	})

	t.Run("Rounding", func(t *testing.T) {
		ca := 30.0
		pct, ok := DiscountPercentage(20, &ca)
		require.True(t, ok)
		assert.Equal(t, 33, pct)
	})

	t.Run("ClampedTo100", func(t *testing.T) {
		ca := 100000.0
		pct, ok := DiscountPercentage(0.01, &ca)
		require.True(t, ok)
		assert.Equal(t, 100, pct)
	})
}

func TestFormatMoney(t *testing.T) {
	t.Run("KnownCurrency", func(t *testing.T) {
		a := 40.0
		assert.Equal(t, "$40.00", FormatMoney(&a, "USD"))
	})

	t.Run("NilAmountIsZero", func(t *testing.T) {
		assert.Equal(t, "$0.00", FormatMoney(nil, "USD"))
	})

	t.Run("UnknownCurrency", func(t *testing.T) {
		a := 12.5
		assert.Equal(t, "12.50 SEK", FormatMoney(&a, "SEK"))
	})
}

func TestAddToCartGate(t *testing.T) {
	t.Run("CompleteSelectionWithStock", func(t *testing.T) {
		p := fieldJacket()
		sel := Selection{"Size": "M", "Color": "Blue"}
		v, ok := ResolveVariant(p, sel)

		assert.True(t, InStock(v, ok))
		assert.True(t, CanAddToCart(p, sel, v, ok))
	})

	t.Run("ResolvedButSoldOut", func(t *testing.T) {
		p := fieldJacket()
		sel := Selection{"Size": "M", "Color": "Black"}
		v, ok := ResolveVariant(p, sel)
		require.True(t, ok)

		assert.False(t, InStock(v, ok))
		assert.False(t, CanAddToCart(p, sel, v, ok))
	})

	t.Run("IncompleteSelection", func(t *testing.T) {
		p := fieldJacket()
		sel := Selection{"Size": "M"}
		v, ok := ResolveVariant(p, sel)

		assert.False(t, CanAddToCart(p, sel, v, ok))
	})

	t.Run("NoOptionsBaseStock", func(t *testing.T) {
		p := Product{ID: "prod-2", Slug: "silk-scarf", Price: 35, InStock: true}
		v, ok := ResolveVariant(p, nil)

		assert.True(t, CanAddToCart(p, nil, v, ok))

		p.InStock = false
		v, ok = ResolveVariant(p, nil)
		assert.False(t, CanAddToCart(p, nil, v, ok))
	})
}

func TestBuildCard(t *testing.T) {
	t.Run("IncompleteSelection", func(t *testing.T) {
		p := fieldJacket()
		card := BuildCard(p, Selection{"Size": "M"})

		assert.False(t, card.Resolved)
		assert.Equal(t, 40.0, card.Price)
		assert.False(t, card.CanAddToCart)
		assert.False(t, card.Availability["Color"]["Black"])
		assert.True(t, card.Availability["Color"]["Blue"])
	})

	t.Run("ResolvedWithVariantImage", func(t *testing.T) {
		p := fieldJacket()
		p.Images = []string{"jacket-front.jpg"}
		p.Variants[0].Image = "jacket-blue.jpg"

		card := BuildCard(p, Selection{"Size": "M", "Color": "Blue"})
		require.True(t, card.Resolved)
		assert.Equal(t, "jacket-blue.jpg", card.Image)
		assert.True(t, card.CanAddToCart)
	})

	t.Run("DiscountBadge", func(t *testing.T) {
		p := fieldJacket()
		ca := 50.0
		p.Variants[0].CompareAt = &ca

		card := BuildCard(p, Selection{"Size": "M", "Color": "Blue"})
		require.True(t, card.HasDiscount)
		assert.Equal(t, 20, card.Discount)
	})
}
