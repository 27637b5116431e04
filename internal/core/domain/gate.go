package domain

// InStock reports whether the resolved variant is purchasable.
// For a product without options the implicit variant carries the
// base stock flag, so the same rule covers both shapes.
func InStock(v Variant, resolved bool) bool {
	return resolved && v.Stock > 0
}

// CanAddToCart is the admission gate: the selection covers every
// declared option and the resolved variant has stock. A false result
// disables the action in the UI, it is never an error.
func CanAddToCart(p Product, sel Selection, v Variant, resolved bool) bool {
	return SelectionComplete(p, sel.declared(p)) && InStock(v, resolved)
}
