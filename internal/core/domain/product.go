package domain

import "time"

type (
	// A Product is an immutable catalog snapshot.
	// Created and destroyed outside the core.
	Product struct {
		ID          string
		Slug        string
		Title       string
		Description string
		Brand       string
		Condition   string
		Images      []string
		Featured    bool
		Price       float64
		CompareAt   *float64
		InStock     bool
		Currency    string
		Options     []Option
		Variants    []Variant
	}

	// An Option is a named axis of configuration, e.g. "Size".
	// Swatches map values to CSS colors, rendering hint only.
	Option struct {
		Name     string
		Values   []string
		Swatches map[string]string
	}

	// A Variant is one concrete, independently priced and
	// stocked combination of option values.
	Variant struct {
		ID           string
		OptionValues map[string]string
		Price        float64
		CompareAt    *float64
		Stock        int
		Image        string
	}
)

// A ListingsFilter narrows the product listing.
// Empty slices mean "no filter".
type ListingsFilter struct {
	Brands     []string
	Conditions []string
}

// A CartAddEvent records one committed add-to-cart, archived
// for the analytics collaborator.
type CartAddEvent struct {
	ProductID string
	VariantID string
	Title     string
	Brand     string
	Quantity  int
	UnitPrice float64
	Currency  string
	At        time.Time
}
