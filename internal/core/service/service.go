package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/vintagefinds/storefront/internal/core/cart"
	"github.com/vintagefinds/storefront/internal/core/domain"
	"github.com/vintagefinds/storefront/internal/core/port"
)

var _ port.CatalogSender = (*Service)(nil)
var _ port.CatalogSaver = (*Service)(nil)
var _ port.CardViewer = (*Service)(nil)
var _ port.CartEditor = (*Service)(nil)
var _ port.FilterSetter = (*Service)(nil)

type Service struct {
	catalogProducer port.CatalogProducer
	catalogStorage  port.CatalogStorage
	cartEvents      port.CartEventsProducer
	filterProducer  port.ListingsFilterProducer
	archiver        port.CartArchiver
	carts           *cart.Sessions
	now             func() time.Time
}

func New(
	catalogProducer port.CatalogProducer,
	catalogStorage port.CatalogStorage,
	cartEvents port.CartEventsProducer,
	filterProducer port.ListingsFilterProducer,
	archiver port.CartArchiver,
) Service {
	return Service{
		catalogProducer: catalogProducer,
		catalogStorage:  catalogStorage,
		cartEvents:      cartEvents,
		filterProducer:  filterProducer,
		archiver:        archiver,
		carts:           cart.NewSessions(),
		now:             time.Now,
	}
}

func (s Service) SendProducts(ctx context.Context, ps []domain.Product) error {
	const op = "Service.SendProducts"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	err := s.catalogProducer.ProduceProducts(ctx, ps)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s Service) SaveProducts(ctx context.Context, ps []domain.Product) error {
	const op = "Service.SaveProducts"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	err := s.catalogStorage.StoreProducts(ctx, ps)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s Service) ViewCard(
	ctx context.Context, slug string, sel domain.Selection,
) (domain.ProductCard, error) {
	const op = "Service.ViewCard"

	if err := ctx.Err(); err != nil {
		return domain.ProductCard{}, fmt.Errorf("%s: %w", op, err)
	}

	p, err := s.catalogStorage.ProductBySlug(ctx, slug)
	if err != nil {
		return domain.ProductCard{}, fmt.Errorf("%s: %w", op, err)
	}

	return domain.BuildCard(p, sel), nil
}

// AddToCart admits the selection through the gate, commits the cart
// mutation and only then notifies observers: the cart snapshot and the
// archive event must never describe a cart state that has not been
// committed.
func (s Service) AddToCart(
	ctx context.Context, sessionID, slug string, sel domain.Selection, quantity int,
) (cart.Summary, bool, error) {
	const op = "Service.AddToCart"

	if err := ctx.Err(); err != nil {
		return cart.Summary{}, false, fmt.Errorf("%s: %w", op, err)
	}

	p, err := s.catalogStorage.ProductBySlug(ctx, slug)
	if err != nil {
		return cart.Summary{}, false, fmt.Errorf("%s: %w", op, err)
	}

	v, resolved := domain.ResolveVariant(p, sel)
	if !domain.CanAddToCart(p, sel, v, resolved) {
		return cart.Summary{}, false, nil
	}

	unitPrice := domain.CurrentPrice(p, v, resolved)
	sum := s.carts.Get(sessionID).AddItem(p.ID, v.ID, quantity, unitPrice)

	s.notifyCartChanged(ctx, sessionID, sum)
	s.archiveAdd(ctx, sessionID, p, v, quantity, unitPrice)

	return sum, true, nil
}

func (s Service) RemoveFromCart(
	ctx context.Context, sessionID, productID, variantID string,
) (cart.Summary, error) {
	const op = "Service.RemoveFromCart"

	if err := ctx.Err(); err != nil {
		return cart.Summary{}, fmt.Errorf("%s: %w", op, err)
	}

	sum := s.carts.Get(sessionID).RemoveItem(productID, variantID)
	s.notifyCartChanged(ctx, sessionID, sum)
	return sum, nil
}

func (s Service) ChangeQuantity(
	ctx context.Context, sessionID, productID, variantID string, quantity int,
) (cart.Summary, error) {
	const op = "Service.ChangeQuantity"

	if err := ctx.Err(); err != nil {
		return cart.Summary{}, fmt.Errorf("%s: %w", op, err)
	}

	sum := s.carts.Get(sessionID).UpdateQuantity(productID, variantID, quantity)
	s.notifyCartChanged(ctx, sessionID, sum)
	return sum, nil
}

func (s Service) Cart(
	ctx context.Context, sessionID string,
) (cart.Summary, error) {
	const op = "Service.Cart"

	if err := ctx.Err(); err != nil {
		return cart.Summary{}, fmt.Errorf("%s: %w", op, err)
	}

	return s.carts.Get(sessionID).Summary(), nil
}

func (s Service) SetFilter(
	ctx context.Context, shopper string, f domain.ListingsFilter,
) error {
	const op = "Service.SetFilter"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	err := s.filterProducer.ProduceFilter(ctx, shopper, f)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// notifyCartChanged publishes the committed summary. Observer delivery
// is best effort: a broker failure must not undo the cart mutation.
func (s Service) notifyCartChanged(
	ctx context.Context, sessionID string, sum cart.Summary,
) {
	const op = "Service.notifyCartChanged"

	if s.cartEvents == nil {
		return
	}
	err := s.cartEvents.ProduceCartSnapshot(ctx, sessionID, sum)
	if err != nil {
		slog.Warn("failed to produce cart snapshot",
			"op", op, "session", sessionID, "err", err)
	}
}

func (s Service) archiveAdd(
	ctx context.Context, sessionID string,
	p domain.Product, v domain.Variant, quantity int, unitPrice float64,
) {
	const op = "Service.archiveAdd"

	if s.archiver == nil {
		return
	}
	evt := domain.CartAddEvent{
		ProductID: p.ID,
		VariantID: v.ID,
		Title:     p.Title,
		Brand:     p.Brand,
		Quantity:  quantity,
		UnitPrice: unitPrice,
		Currency:  p.Currency,
		At:        s.now(),
	}
	err := s.archiver.ArchiveAddEvent(ctx, sessionID, evt)
	if err != nil {
		slog.Warn("failed to archive add event",
			"op", op, "session", sessionID, "err", err)
	}
}
