package domain

// Card is a single card identified by its face value.
type Card struct {
	Value int `json:"value"`
}

// Points returns the card's penalty value. 55 outranks the other rules,
// then multiples of 11, of 10 and of 5; every other card costs one point.
func (c Card) Points() int {
	switch {
	case c.Value%55 == 0:
		return 7
	case c.Value%11 == 0:
		return 5
	case c.Value%10 == 0:
		return 3
	case c.Value%5 == 0:
		return 2
	default:
		return 1
	}
}

// SumPoints totals the penalty points of a pile.
func SumPoints(cards []Card) int {
	total := 0
	for _, c := range cards {
		total += c.Points()
	}
	return total
}

// RemoveCard returns the hand without the first card of the given value.
// An absent value leaves the hand unchanged.
func RemoveCard(hand []Card, value int) []Card {
	for i, c := range hand {
		if c.Value == value {
			return append(hand[:i:i], hand[i+1:]...)
		}
	}
	return hand
}

// ContainsCard reports whether the hand holds a card of the given value.
func ContainsCard(hand []Card, value int) bool {
	for _, c := range hand {
		if c.Value == value {
			return true
		}
	}
	return false
}
