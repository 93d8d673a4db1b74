package render

import "github.com/abelbrown/scour/internal/search"

// List is the ordered set of rendered cards and their hover wiring.
// Cards are only ever appended.
type List struct {
	cards  []Card
	hovers *Registry
}

// NewList creates an empty list.
func NewList() *List {
	return &List{hovers: NewRegistry()}
}

// Append renders results in the order given and wires hover handling for
// exactly those new cards. Returns the IDs of the appended cards.
func (l *List) Append(results []search.Result) []int {
	ids := make([]int, 0, len(results))
	for _, r := range results {
		c := NewCard(r)
		c.ID = len(l.cards)
		l.cards = append(l.cards, c)
		ids = append(ids, c.ID)
	}
	l.wire(ids)
	return ids
}

// WireAll runs hover initialization over every card. Cards that are already
// wired are skipped; returns how many were newly wired.
func (l *List) WireAll() int {
	ids := make([]int, len(l.cards))
	for i := range l.cards {
		ids[i] = i
	}
	return l.wire(ids)
}

func (l *List) wire(ids []int) int {
	n := 0
	for _, id := range ids {
		if l.hovers.Attach(l.cards[id]) {
			n++
		}
	}
	return n
}

// Len returns the number of cards.
func (l *List) Len() int { return len(l.cards) }

// Card returns card i.
func (l *List) Card(i int) Card { return l.cards[i] }

// Cards returns the cards in display order. The slice must not be modified.
func (l *List) Cards() []Card { return l.cards }

// Hovers returns the hover registry.
func (l *List) Hovers() *Registry { return l.hovers }
