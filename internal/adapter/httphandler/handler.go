package httphandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/vintagefinds/storefront/internal/core/cart"
	"github.com/vintagefinds/storefront/internal/core/domain"
	"github.com/vintagefinds/storefront/internal/core/port"
)

const sessionHeader = "X-Session-ID"

// POST v1/catalog/products JSON [from merchandising] (response 202 Accepted, 400 Bad request)
// GET v1/products/{slug}/card?Option=Value... (response 200 OK, 404 Not found)
// GET v1/cart Headers X-Session-ID (200 OK)
// POST v1/cart/items JSON {"slug", "selection", "quantity"} (201 Created, 409 Conflict)
// PATCH v1/cart/items JSON {"product_id", "variant_id", "quantity"} (200 OK)
// DELETE v1/cart/items/{productID}?variant_id= (200 OK)
// POST v1/filter JSON {"brands", "conditions"} (202 Accepted)
// GET v1/filter Headers X-Session-ID (200 OK, 204 No content)

type CatalogHandler struct {
	sender port.CatalogSender
}

func RegisterCatalog(mux *http.ServeMux, sender port.CatalogSender) {
	h := CatalogHandler{sender}
	mux.HandleFunc("POST /v1/catalog/products", h.PostProducts)
}

func (h CatalogHandler) PostProducts(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.PostProducts"
	log := slog.With("op", op)

	var ps []Product
	err := json.NewDecoder(r.Body).Decode(&ps)
	if err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	err = h.sender.SendProducts(r.Context(), h.toDomain(ps))
	if err != nil {
		http.Error(
			w, "failed to accept products", http.StatusServiceUnavailable,
		)
		log.Error("failed to send products", "err", err)
		return
	}

	w.WriteHeader(http.StatusAccepted)
	if _, err = w.Write([]byte("Accepted")); err != nil {
		log.Error("failed to write response body", "err", err)
		return
	}

	log.Info("accepted", "nProducts", len(ps))
}

func (h CatalogHandler) toDomain(ps []Product) (domainPs []domain.Product) {
	for _, p := range ps {
		dp := domain.Product{
			ID:          p.ProductID,
			Slug:        p.Slug,
			Title:       p.Title,
			Description: p.Description,
			Brand:       p.Brand,
			Condition:   p.Condition,
			Images:      p.Images,
			Featured:    p.Featured,
			Price:       p.Price,
			CompareAt:   p.CompareAt,
			InStock:     p.InStock,
			Currency:    p.Currency,
		}

		dp.Options = make([]domain.Option, len(p.Options))
		for i, opt := range p.Options {
			dp.Options[i] = domain.Option{
				Name:     opt.Name,
				Values:   opt.Values,
				Swatches: opt.Swatches,
			}
		}

		dp.Variants = make([]domain.Variant, len(p.Variants))
		for i, v := range p.Variants {
			dp.Variants[i] = domain.Variant{
				ID:           v.VariantID,
				OptionValues: v.OptionValues,
				Price:        v.Price,
				CompareAt:    v.CompareAt,
				Stock:        v.Stock,
				Image:        v.Image,
			}
		}
		domainPs = append(domainPs, dp)
	}
	return domainPs
}

type CardHandler struct {
	viewer port.CardViewer
}

func RegisterCard(mux *http.ServeMux, viewer port.CardViewer) {
	h := CardHandler{viewer}
	mux.HandleFunc("GET /v1/products/{slug}/card", h.GetCard)
}

func (h CardHandler) GetCard(w http.ResponseWriter, r *http.Request) {
	const op = "CardHandler.GetCard"
	log := slog.With("op", op)

	slug := r.PathValue("slug")

	sel := domain.Selection{}
	for name, values := range r.URL.Query() {
		if len(values) == 0 {
			continue
		}
		sel = sel.With(name, values[0])
	}

	card, err := h.viewer.ViewCard(r.Context(), slug, sel)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			http.Error(w, "product not found", http.StatusNotFound)
			return
		}
		http.Error(w, "failed to view card", http.StatusServiceUnavailable)
		log.Error("failed to view card", "slug", slug, "err", err)
		return
	}

	writeJSON(w, http.StatusOK, toCardResponse(card))
}

func toCardResponse(c domain.ProductCard) ProductCard {
	resp := ProductCard{
		ProductID:    c.Product.ID,
		Slug:         c.Product.Slug,
		Title:        c.Product.Title,
		Brand:        c.Product.Brand,
		Condition:    c.Product.Condition,
		Selection:    c.Selection,
		VariantID:    c.Variant.ID,
		Resolved:     c.Resolved,
		Price:        c.Price,
		PriceLabel:   domain.FormatMoney(&c.Price, c.Product.Currency),
		CompareAt:    c.CompareAt,
		InStock:      c.InStock,
		CanAddToCart: c.CanAddToCart,
		Image:        c.Image,
		Availability: c.Availability,
	}
	if c.HasDiscount {
		resp.Discount = c.Discount
		resp.CompareAtLabel = domain.FormatMoney(c.CompareAt, c.Product.Currency)
	}
	return resp
}

type CartHandler struct {
	editor port.CartEditor
}

func RegisterCart(mux *http.ServeMux, editor port.CartEditor) {
	h := CartHandler{editor}
	mux.HandleFunc("GET /v1/cart", h.GetCart)
	mux.HandleFunc("POST /v1/cart/items", h.PostItem)
	mux.HandleFunc("PATCH /v1/cart/items", h.PatchItem)
	mux.HandleFunc("DELETE /v1/cart/items/{productID}", h.DeleteItem)
}

func (h CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.GetCart"
	log := slog.With("op", op)

	sessionID, ok := requireSession(w, r)
	if !ok {
		return
	}

	sum, err := h.editor.Cart(r.Context(), sessionID)
	if err != nil {
		http.Error(w, "failed to read cart", http.StatusServiceUnavailable)
		log.Error("failed to read cart", "err", err)
		return
	}

	writeJSON(w, http.StatusOK, toCartResponse(sum))
}

func (h CartHandler) PostItem(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.PostItem"
	log := slog.With("op", op)

	sessionID, ok := requireSession(w, r)
	if !ok {
		return
	}

	var item AddCartItem
	err := json.NewDecoder(r.Body).Decode(&item)
	if err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	sum, admitted, err := h.editor.AddToCart(
		r.Context(), sessionID, item.Slug,
		domain.Selection(item.Selection), item.Quantity,
	)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			http.Error(w, "product not found", http.StatusNotFound)
			return
		}
		http.Error(w, "failed to add item", http.StatusServiceUnavailable)
		log.Error("failed to add item", "err", err)
		return
	}

	if !admitted {
		http.Error(
			w, "selection is not purchasable", http.StatusConflict,
		)
		return
	}

	writeJSON(w, http.StatusCreated, toCartResponse(sum))
}

func (h CartHandler) PatchItem(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.PatchItem"
	log := slog.With("op", op)

	sessionID, ok := requireSession(w, r)
	if !ok {
		return
	}

	var item ChangeCartItem
	err := json.NewDecoder(r.Body).Decode(&item)
	if err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	sum, err := h.editor.ChangeQuantity(
		r.Context(), sessionID, item.ProductID, item.VariantID, item.Quantity,
	)
	if err != nil {
		http.Error(w, "failed to change quantity", http.StatusServiceUnavailable)
		log.Error("failed to change quantity", "err", err)
		return
	}

	writeJSON(w, http.StatusOK, toCartResponse(sum))
}

func (h CartHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.DeleteItem"
	log := slog.With("op", op)

	sessionID, ok := requireSession(w, r)
	if !ok {
		return
	}

	productID := r.PathValue("productID")
	variantID := r.URL.Query().Get("variant_id")

	sum, err := h.editor.RemoveFromCart(
		r.Context(), sessionID, productID, variantID,
	)
	if err != nil {
		http.Error(w, "failed to remove item", http.StatusServiceUnavailable)
		log.Error("failed to remove item", "err", err)
		return
	}

	writeJSON(w, http.StatusOK, toCartResponse(sum))
}

func toCartResponse(sum cart.Summary) CartSummary {
	resp := CartSummary{
		Items:      make([]CartLine, len(sum.Items)),
		TotalItems: sum.TotalItems,
		TotalPrice: sum.TotalPrice,
	}
	for i, it := range sum.Items {
		resp.Items[i] = CartLine{
			ProductID: it.ProductID,
			VariantID: it.VariantID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		}
	}
	return resp
}

type FilterHandler struct {
	setter port.FilterSetter
	reader port.FilterReader
}

func RegisterFilter(
	mux *http.ServeMux, setter port.FilterSetter, reader port.FilterReader,
) {
	h := FilterHandler{setter, reader}
	mux.HandleFunc("POST /v1/filter", h.PostFilter)
	mux.HandleFunc("GET /v1/filter", h.GetFilter)
}

func (h FilterHandler) PostFilter(w http.ResponseWriter, r *http.Request) {
	const op = "FilterHandler.PostFilter"
	log := slog.With("op", op)

	shopper, ok := requireSession(w, r)
	if !ok {
		return
	}

	var f ListingsFilter
	err := json.NewDecoder(r.Body).Decode(&f)
	if err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	err = h.setter.SetFilter(r.Context(), shopper, domain.ListingsFilter{
		Brands:     f.Brands,
		Conditions: f.Conditions,
	})
	if err != nil {
		http.Error(w, "failed to accept filter", http.StatusServiceUnavailable)
		log.Error("failed to set filter", "err", err)
		return
	}

	w.WriteHeader(http.StatusAccepted)
}

func (h FilterHandler) GetFilter(w http.ResponseWriter, r *http.Request) {
	const op = "FilterHandler.GetFilter"
	log := slog.With("op", op)

	shopper, ok := requireSession(w, r)
	if !ok {
		return
	}

	f, found, err := h.reader.Filter(shopper)
	if err != nil {
		http.Error(w, "failed to read filter", http.StatusServiceUnavailable)
		log.Error("failed to read filter", "err", err)
		return
	}

	if !found {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	writeJSON(w, http.StatusOK, ListingsFilter{
		Brands:     f.Brands,
		Conditions: f.Conditions,
	})
}

func requireSession(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := r.Header.Get(sessionHeader)
	if id == "" {
		http.Error(w, "missing "+sessionHeader+" header", http.StatusBadRequest)
		return "", false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to write response body", "err", err)
	}
}
