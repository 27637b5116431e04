package port

import (
	"context"

	"github.com/vintagefinds/storefront/internal/core/cart"
	"github.com/vintagefinds/storefront/internal/core/domain"
)

type CatalogSender interface {
	SendProducts(context.Context, []domain.Product) error
}

type CatalogSaver interface {
	SaveProducts(context.Context, []domain.Product) error
}

type CardViewer interface {
	ViewCard(ctx context.Context, slug string, sel domain.Selection) (domain.ProductCard, error)
}

type CartEditor interface {
	// AddToCart resolves and gates the selection. The boolean result
	// is false when the admission gate refuses; that is an ordinary
	// state, not an error.
	AddToCart(ctx context.Context, sessionID, slug string, sel domain.Selection, quantity int) (cart.Summary, bool, error)
	RemoveFromCart(ctx context.Context, sessionID, productID, variantID string) (cart.Summary, error)
	ChangeQuantity(ctx context.Context, sessionID, productID, variantID string, quantity int) (cart.Summary, error)
	Cart(ctx context.Context, sessionID string) (cart.Summary, error)
}

type FilterSetter interface {
	SetFilter(ctx context.Context, shopper string, f domain.ListingsFilter) error
}

type FilterReader interface {
	Filter(shopper string) (domain.ListingsFilter, bool, error)
}

type CatalogProducer interface {
	ProduceProducts(context.Context, []domain.Product) error
}

type CartEventsProducer interface {
	ProduceCartSnapshot(ctx context.Context, sessionID string, s cart.Summary) error
}

type ListingsFilterProducer interface {
	ProduceFilter(ctx context.Context, shopper string, f domain.ListingsFilter) error
}

type CatalogStorage interface {
	StoreProducts(context.Context, []domain.Product) error
	ProductBySlug(context.Context, string) (domain.Product, error)
}

type CartArchiver interface {
	ArchiveAddEvent(ctx context.Context, sessionID string, evt domain.CartAddEvent) error
}
