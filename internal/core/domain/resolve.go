package domain

import "log/slog"

// ResolveVariant maps a selection to its matching variant.
//
// The second result is false when the selection leaves a declared
// option unset or no variant carries the selected combination; both
// are ordinary states, not errors. A product without options resolves
// to an implicit variant carrying the base price and stock.
//
// Duplicate variants for one combination violate the catalog
// uniqueness invariant: the resolver warns and deterministically
// returns the first in declaration order.
func ResolveVariant(p Product, sel Selection) (Variant, bool) {
	const op = "domain.ResolveVariant"

	if len(p.Options) == 0 {
		return p.implicitVariant(), true
	}

	sel = sel.declared(p)
	if !SelectionComplete(p, sel) {
		return Variant{}, false
	}

	var (
		found   Variant
		matches int
	)
	for _, v := range p.Variants {
		if !variantMatches(p, v, sel) {
			continue
		}
		if matches == 0 {
			found = v
		}
		matches++
	}

	if matches == 0 {
		return Variant{}, false
	}
	if matches > 1 {
		slog.Warn("duplicate variants for option combination",
			"op", op, "product", p.Slug, "matches", matches)
	}
	return found, true
}

// OptionValueAvailable reports whether selecting value for optName is
// compatible with the rest of the current selection: some variant
// matches every *other* selected option, carries value for optName and
// has stock. The option under evaluation itself need not be selected.
func OptionValueAvailable(p Product, sel Selection, optName, value string) bool {
	sel = sel.declared(p)

	for _, v := range p.Variants {
		if v.OptionValues[optName] != value || v.Stock <= 0 {
			continue
		}
		if variantMatchesOthers(p, v, sel, optName) {
			return true
		}
	}
	return false
}

func variantMatches(p Product, v Variant, sel Selection) bool {
	for _, opt := range p.Options {
		if v.OptionValues[opt.Name] != sel[opt.Name] {
			return false
		}
	}
	return true
}

func variantMatchesOthers(p Product, v Variant, sel Selection, skip string) bool {
	for _, opt := range p.Options {
		if opt.Name == skip {
			continue
		}
		want, selected := sel[opt.Name]
		if selected && want != "" && v.OptionValues[opt.Name] != want {
			return false
		}
	}
	return true
}

func (p Product) implicitVariant() Variant {
	var stock int
	if p.InStock {
		stock = 1
	}
	return Variant{
		Price:     p.Price,
		CompareAt: p.CompareAt,
		Stock:     stock,
	}
}
