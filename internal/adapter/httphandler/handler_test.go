package httphandler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vintagefinds/storefront/internal/core/cart"
	"github.com/vintagefinds/storefront/internal/core/domain"
)

type fakeViewer struct {
	products map[string]domain.Product
}

func (f fakeViewer) ViewCard(
	_ context.Context, slug string, sel domain.Selection,
) (domain.ProductCard, error) {
	p, ok := f.products[slug]
	if !ok {
		return domain.ProductCard{}, domain.ErrProductNotFound
	}
	return domain.BuildCard(p, sel), nil
}

type fakeEditor struct {
	admitted bool
	sum      cart.Summary
}

func (f fakeEditor) AddToCart(
	_ context.Context, _, _ string, _ domain.Selection, _ int,
) (cart.Summary, bool, error) {
	return f.sum, f.admitted, nil
}

func (f fakeEditor) RemoveFromCart(
	_ context.Context, _, _, _ string,
) (cart.Summary, error) {
	return f.sum, nil
}

func (f fakeEditor) ChangeQuantity(
	_ context.Context, _, _, _ string, _ int,
) (cart.Summary, error) {
	return f.sum, nil
}

func (f fakeEditor) Cart(
	_ context.Context, _ string,
) (cart.Summary, error) {
	return f.sum, nil
}

func denimJacket() domain.Product {
	return domain.Product{
		ID: "p-1", Slug: "denim-jacket", Title: "Denim Jacket",
		Price: 40, Currency: "USD", InStock: true,
		Options: []domain.Option{
			{Name: "Size", Values: []string{"S", "M"}},
		},
		Variants: []domain.Variant{
			{ID: "v-m", OptionValues: map[string]string{"Size": "M"}, Price: 40, Stock: 3},
		},
	}
}

func TestGetCard(t *testing.T) {
	mux := http.NewServeMux()
	RegisterCard(mux, fakeViewer{map[string]domain.Product{
		"denim-jacket": denimJacket(),
	}})

	t.Run("ResolvedSelection", func(t *testing.T) {
		r := httptest.NewRequest(
			http.MethodGet, "/v1/products/denim-jacket/card?Size=M", nil,
		)
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, r)

		require.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()
		assert.Contains(t, body, `"variant_id":"v-m"`)
		assert.Contains(t, body, `"can_add_to_cart":true`)
		assert.Contains(t, body, `"price_label":"$40.00"`)
	})

	t.Run("UnknownSlug", func(t *testing.T) {
		r := httptest.NewRequest(
			http.MethodGet, "/v1/products/no-such/card", nil,
		)
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, r)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestPostCartItem(t *testing.T) {
	newRequest := func() *http.Request {
		body := strings.NewReader(
			`{"slug":"denim-jacket","selection":{"Size":"M"},"quantity":1}`,
		)
		r := httptest.NewRequest(http.MethodPost, "/v1/cart/items", body)
		r.Header.Set(sessionHeader, "sess-1")
		return r
	}

	t.Run("Admitted", func(t *testing.T) {
		mux := http.NewServeMux()
		RegisterCart(mux, fakeEditor{
			admitted: true,
			sum: cart.Summary{
				Items: []cart.LineItem{
					{ProductID: "p-1", VariantID: "v-m", Quantity: 1, UnitPrice: 40},
				},
				TotalItems: 1,
				TotalPrice: 40,
			},
		})

		w := httptest.NewRecorder()
		mux.ServeHTTP(w, newRequest())

		require.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"total_items":1`)
	})

	t.Run("GateRefused", func(t *testing.T) {
		mux := http.NewServeMux()
		RegisterCart(mux, fakeEditor{admitted: false})

		w := httptest.NewRecorder()
		mux.ServeHTTP(w, newRequest())

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("MissingSession", func(t *testing.T) {
		mux := http.NewServeMux()
		RegisterCart(mux, fakeEditor{admitted: true})

		r := httptest.NewRequest(
			http.MethodPost, "/v1/cart/items", strings.NewReader(`{}`),
		)
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
