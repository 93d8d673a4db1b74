package render

// Registry holds the hover wiring of rendered cards, keyed by card ID.
// A card is wired at most once.
type Registry struct {
	hovers map[int]*Hover
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{hovers: make(map[int]*Hover)}
}

// Attach wires hover handling for card. Cards without a breakdown have no
// popup and are skipped, and a card that is already wired is left alone.
// Reports whether new wiring was registered.
func (r *Registry) Attach(card Card) bool {
	if card.Breakdown == nil {
		return false
	}
	if _, ok := r.hovers[card.ID]; ok {
		return false
	}
	r.hovers[card.ID] = newHover(card.Breakdown)
	return true
}

// Get returns the hover of card id, or nil when it is not wired.
func (r *Registry) Get(id int) *Hover {
	return r.hovers[id]
}

// Enter dispatches a focus-enter to card id. Returns the hover generation
// and false when the card is not wired.
func (r *Registry) Enter(id int) (int, bool) {
	h := r.hovers[id]
	if h == nil {
		return 0, false
	}
	return h.Enter(), true
}

// Leave dispatches a focus-leave to card id.
func (r *Registry) Leave(id int) (int, bool) {
	h := r.hovers[id]
	if h == nil {
		return 0, false
	}
	return h.Leave(), true
}

// Invocations returns how many events were dispatched to card id.
func (r *Registry) Invocations(id int) int {
	if h := r.hovers[id]; h != nil {
		return h.Invocations()
	}
	return 0
}

// Len returns the number of wired cards.
func (r *Registry) Len() int { return len(r.hovers) }
