package domain

// An OptionAvailability maps option name -> value -> purchasable.
type OptionAvailability map[string]map[string]bool

// A ProductCard is the projection behind one product card: the
// resolved variant, derived prices and the admission gate, computed
// once per selection change.
type ProductCard struct {
	Product      Product
	Selection    Selection
	Variant      Variant
	Resolved     bool
	Price        float64
	CompareAt    *float64
	Discount     int
	HasDiscount  bool
	InStock      bool
	CanAddToCart bool
	Image        string
	Availability OptionAvailability
}

// BuildCard derives the full card projection for a selection.
func BuildCard(p Product, sel Selection) ProductCard {
	v, resolved := ResolveVariant(p, sel)

	price := CurrentPrice(p, v, resolved)
	compareAt := CurrentCompareAt(p, v, resolved)
	discount, hasDiscount := DiscountPercentage(price, compareAt)

	availability := make(OptionAvailability, len(p.Options))
	for _, opt := range p.Options {
		values := make(map[string]bool, len(opt.Values))
		for _, val := range opt.Values {
			values[val] = OptionValueAvailable(p, sel, opt.Name, val)
		}
		availability[opt.Name] = values
	}

	return ProductCard{
		Product:      p,
		Selection:    sel,
		Variant:      v,
		Resolved:     resolved,
		Price:        price,
		CompareAt:    compareAt,
		Discount:     discount,
		HasDiscount:  hasDiscount,
		InStock:      InStock(v, resolved),
		CanAddToCart: CanAddToCart(p, sel, v, resolved),
		Image:        cardImage(p, v, resolved),
		Availability: availability,
	}
}

func cardImage(p Product, v Variant, resolved bool) string {
	if resolved && v.Image != "" {
		return v.Image
	}
	if len(p.Images) > 0 {
		return p.Images[0]
	}
	return ""
}
