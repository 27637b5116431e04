package domain

// A DemandSignal aggregates the archived add-to-cart
// events of a single shopping session.
type DemandSignal struct {
	SessionID string
	AddEvents int
}
