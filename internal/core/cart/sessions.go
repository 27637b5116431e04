package cart

import "sync"

// A Sessions registry maps shopper session IDs to their stores,
// creating a store on first use. Carts live for the duration of a
// shopping session; external persistence is a boundary concern.
type Sessions struct {
	mu     sync.Mutex
	stores map[string]*Store
}

func NewSessions() *Sessions {
	return &Sessions{stores: make(map[string]*Store)}
}

func (s *Sessions) Get(sessionID string) *Store {
	s.mu.Lock()
	defer s.mu.Unlock()

	store, ok := s.stores[sessionID]
	if !ok {
		store = NewStore()
		s.stores[sessionID] = store
	}
	return store
}

func (s *Sessions) Drop(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.stores, sessionID)
}
