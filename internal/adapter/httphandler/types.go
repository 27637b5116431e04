package httphandler

type (
	Product struct {
		ProductID   string    `json:"product_id"`
		Slug        string    `json:"slug"`
		Title       string    `json:"title"`
		Description string    `json:"description"`
		Brand       string    `json:"brand"`
		Condition   string    `json:"condition"`
		Images      []string  `json:"images"`
		Featured    bool      `json:"featured"`
		Price       float64   `json:"price"`
		CompareAt   *float64  `json:"compare_at,omitempty"`
		InStock     bool      `json:"in_stock"`
		Currency    string    `json:"currency"`
		Options     []Option  `json:"options"`
		Variants    []Variant `json:"variants"`
	}

	Option struct {
		Name     string            `json:"name"`
		Values   []string          `json:"values"`
		Swatches map[string]string `json:"swatches,omitempty"`
	}

	Variant struct {
		VariantID    string            `json:"variant_id"`
		OptionValues map[string]string `json:"option_values"`
		Price        float64           `json:"price"`
		CompareAt    *float64          `json:"compare_at,omitempty"`
		Stock        int               `json:"stock"`
		Image        string            `json:"image,omitempty"`
	}
)

type ProductCard struct {
	ProductID      string                     `json:"product_id"`
	Slug           string                     `json:"slug"`
	Title          string                     `json:"title"`
	Brand          string                     `json:"brand"`
	Condition      string                     `json:"condition"`
	Selection      map[string]string          `json:"selection"`
	VariantID      string                     `json:"variant_id,omitempty"`
	Resolved       bool                       `json:"resolved"`
	Price          float64                    `json:"price"`
	PriceLabel     string                     `json:"price_label"`
	CompareAt      *float64                   `json:"compare_at,omitempty"`
	CompareAtLabel string                     `json:"compare_at_label,omitempty"`
	Discount       int                        `json:"discount,omitempty"`
	InStock        bool                       `json:"in_stock"`
	CanAddToCart   bool                       `json:"can_add_to_cart"`
	Image          string                     `json:"image,omitempty"`
	Availability   map[string]map[string]bool `json:"availability"`
}

type AddCartItem struct {
	Slug      string            `json:"slug"`
	Selection map[string]string `json:"selection"`
	Quantity  int               `json:"quantity"`
}

type ChangeCartItem struct {
	ProductID string `json:"product_id"`
	VariantID string `json:"variant_id"`
	Quantity  int    `json:"quantity"`
}

type CartSummary struct {
	Items      []CartLine `json:"items"`
	TotalItems int        `json:"total_items"`
	TotalPrice float64    `json:"total_price"`
}

type CartLine struct {
	ProductID string  `json:"product_id"`
	VariantID string  `json:"variant_id"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

type ListingsFilter struct {
	Brands     []string `json:"brands"`
	Conditions []string `json:"conditions"`
}
