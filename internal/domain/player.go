package domain

import (
	"errors"
	"sort"
)

var (
	// ErrCardNotInHand is returned when a selection names a card the
	// player does not hold.
	ErrCardNotInHand = errors.New("card not in hand")
	// ErrAlreadySelected is returned when a player selects twice in the
	// same turn.
	ErrAlreadySelected = errors.New("card already selected this turn")
)

// Player holds the per-participant state for a game.
type Player struct {
	UserID string
	Seat   int // 0-based seat index

	Hand     []Card
	Selected *Card // pending selection for the current turn, nil between turns

	RoundScore int
	TotalScore int
	Taken      []Card // penalty cards collected this round
}

// DealHand replaces the player's hand, sorted ascending for display.
func (p *Player) DealHand(cards []Card) {
	p.Hand = append([]Card(nil), cards...)
	sort.Slice(p.Hand, func(i, j int) bool { return p.Hand[i].Value < p.Hand[j].Value })
}

// Select marks a card from the hand as this turn's play.
func (p *Player) Select(value int) error {
	if p.Selected != nil {
		return ErrAlreadySelected
	}
	if !ContainsCard(p.Hand, value) {
		return ErrCardNotInHand
	}
	p.Selected = &Card{Value: value}
	return nil
}

// ClearSelection drops any pending selection.
func (p *Player) ClearSelection() {
	p.Selected = nil
}

// TakePenalty adds a pile of penalty cards to the player's round tally and
// returns the points gained.
func (p *Player) TakePenalty(cards []Card) int {
	points := SumPoints(cards)
	p.RoundScore += points
	p.Taken = append(p.Taken, cards...)
	return points
}

// ResetRound clears round-scoped state ahead of a new round.
func (p *Player) ResetRound() {
	p.RoundScore = 0
	p.Taken = nil
	p.Selected = nil
	p.Hand = nil
}

// FoldRoundScore moves the round score into the running total.
func (p *Player) FoldRoundScore() {
	p.TotalScore += p.RoundScore
}
