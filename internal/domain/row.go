package domain

import "errors"

var (
	// ErrCardTooLow is returned when a card cannot legally extend a row.
	ErrCardTooLow = errors.New("card is lower than the row's last card")
	// ErrRowFull is returned when appending to a row at capacity without
	// going through overflow handling.
	ErrRowFull = errors.New("row is full")
)

// Row is one table lane: an ordered run of cards, strictly ascending in
// value, bounded by the configured capacity.
type Row struct {
	cards    []Card
	capacity int
}

// NewRow starts a row from a single card.
func NewRow(start Card, capacity int) *Row {
	return &Row{cards: []Card{start}, capacity: capacity}
}

// Cards returns a copy of the cards currently in the row.
func (r *Row) Cards() []Card {
	out := make([]Card, len(r.cards))
	copy(out, r.cards)
	return out
}

// Len returns the number of cards in the row.
func (r *Row) Len() int {
	return len(r.cards)
}

// LastCard returns the rightmost (highest) card of the row.
func (r *Row) LastCard() Card {
	return r.cards[len(r.cards)-1]
}

// Points returns the total penalty points of every card in the row.
func (r *Row) Points() int {
	return SumPoints(r.cards)
}

// CanPlace reports whether the card may extend this row.
func (r *Row) CanPlace(c Card) bool {
	return c.Value > r.LastCard().Value
}

// Place appends a card to the row. If the card is the capacity-th card, the
// preceding cards are returned as the penalty pile and the row restarts
// from the placed card.
func (r *Row) Place(c Card) ([]Card, error) {
	if !r.CanPlace(c) {
		return nil, ErrCardTooLow
	}
	if len(r.cards) >= r.capacity {
		return nil, ErrRowFull
	}

	r.cards = append(r.cards, c)
	if len(r.cards) < r.capacity {
		return nil, nil
	}

	taken := r.cards[:len(r.cards)-1]
	r.cards = []Card{c}
	return taken, nil
}

// WipeAndReplace empties the row, returning all of its cards as the penalty
// pile, and restarts it from the given card.
func (r *Row) WipeAndReplace(c Card) []Card {
	taken := r.cards
	r.cards = []Card{c}
	return taken
}
