// Package cart holds the running cart aggregate. The store is the one
// piece of shared mutable state in the core: every mutation goes
// through it, giving a single serialization point.
package cart

import "sync"

// A LineItem is one (product, variant, quantity) cart entry.
// UnitPrice is the price at the time of adding. VariantID is empty
// only for products without options.
type LineItem struct {
	ProductID string
	VariantID string
	Quantity  int
	UnitPrice float64
}

// A Summary is the aggregate returned after every mutation.
type Summary struct {
	Items      []LineItem
	TotalItems int
	TotalPrice float64
}

// A Store aggregates line items for one shopping session.
// Construct fresh per test and inject wherever needed.
type Store struct {
	mu    sync.Mutex
	items []LineItem
}

func NewStore() *Store {
	return &Store{}
}

// AddItem merges into an existing (productID, variantID) line item by
// incrementing its quantity, otherwise appends. Quantity is clamped
// to at least 1.
func (s *Store) AddItem(productID, variantID string, quantity int, unitPrice float64) Summary {
	if quantity < 1 {
		quantity = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ProductID == productID && s.items[i].VariantID == variantID {
			s.items[i].Quantity += quantity
			return s.summary()
		}
	}

	s.items = append(s.items, LineItem{
		ProductID: productID,
		VariantID: variantID,
		Quantity:  quantity,
		UnitPrice: unitPrice,
	})
	return s.summary()
}

// RemoveItem deletes the matching line item. Absent items are a no-op.
func (s *Store) RemoveItem(productID, variantID string) Summary {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ProductID == productID && s.items[i].VariantID == variantID {
			s.items = append(s.items[:i], s.items[i+1:]...)
			break
		}
	}
	return s.summary()
}

// UpdateQuantity sets the quantity exactly; a value of zero or less
// removes the line item.
func (s *Store) UpdateQuantity(productID, variantID string, quantity int) Summary {
	if quantity <= 0 {
		return s.RemoveItem(productID, variantID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ProductID == productID && s.items[i].VariantID == variantID {
			s.items[i].Quantity = quantity
			break
		}
	}
	return s.summary()
}

func (s *Store) Summary() Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.summary()
}

// Items returns a snapshot copy of the line item sequence.
func (s *Store) Items() []LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copyItems()
}

func (s *Store) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totalItems()
}

func (s *Store) TotalPrice() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totalPrice()
}

func (s *Store) summary() Summary {
	return Summary{
		Items:      s.copyItems(),
		TotalItems: s.totalItems(),
		TotalPrice: s.totalPrice(),
	}
}

func (s *Store) copyItems() []LineItem {
	items := make([]LineItem, len(s.items))
	copy(items, s.items)
	return items
}

func (s *Store) totalItems() (n int) {
	for _, it := range s.items {
		n += it.Quantity
	}
	return n
}

func (s *Store) totalPrice() (p float64) {
	for _, it := range s.items {
		p += float64(it.Quantity) * it.UnitPrice
	}
	return p
}
