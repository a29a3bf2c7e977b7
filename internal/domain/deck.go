package domain

import (
	"errors"
	"math/rand"
)

// ErrInsufficientCards is returned when a deal request cannot be satisfied
// by the cards remaining in the deck.
var ErrInsufficientCards = errors.New("not enough cards in deck")

// Deck is a finite, non-repeating supply of cards.
type Deck struct {
	cards []Card
}

// NewDeck builds an ordered deck holding every value 1..size exactly once.
func NewDeck(size int) *Deck {
	cards := make([]Card, 0, size)
	for v := 1; v <= size; v++ {
		cards = append(cards, Card{Value: v})
	}
	return &Deck{cards: cards}
}

// Shuffle randomizes the deck order using the provided source.
func (d *Deck) Shuffle(rng *rand.Rand) {
	rng.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

// Deal removes and returns n cards from the top of the deck.
func (d *Deck) Deal(n int) ([]Card, error) {
	if n > len(d.cards) {
		return nil, ErrInsufficientCards
	}
	dealt := d.cards[len(d.cards)-n:]
	d.cards = d.cards[:len(d.cards)-n]
	out := make([]Card, n)
	copy(out, dealt)
	return out, nil
}

// DealHands removes handSize cards for each of playerCount players.
// The deck is checked up front so either every hand is dealt or none are.
func (d *Deck) DealHands(handSize, playerCount int) ([][]Card, error) {
	if handSize*playerCount > len(d.cards) {
		return nil, ErrInsufficientCards
	}
	hands := make([][]Card, playerCount)
	for i := range hands {
		hand, err := d.Deal(handSize)
		if err != nil {
			return nil, err
		}
		hands[i] = hand
	}
	return hands, nil
}

// Remaining returns the number of cards left in the deck.
func (d *Deck) Remaining() int {
	return len(d.cards)
}
