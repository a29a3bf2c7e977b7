package domain

import (
	"errors"
	"fmt"
	"sort"
)

// ErrInvalidSelection is returned when a turn's selection set is malformed.
// Resolution never starts on a rejected set, so no state is mutated.
var ErrInvalidSelection = errors.New("invalid selection set")

// Placement records the outcome of placing one card during resolution.
type Placement struct {
	UserID       string `json:"user_id"`
	Card         Card   `json:"card"`
	RowIndex     int    `json:"row_index"`
	Overflow     bool   `json:"overflow"`
	ForcedWipe   bool   `json:"forced_wipe"`
	Taken        []Card `json:"taken,omitempty"`
	PenaltyDelta int    `json:"penalty_delta"`
}

// RowChoiceRequest suspends resolution until the card's owner picks a row
// to take. It is answered through TurnResolution.ChooseRow.
type RowChoiceRequest struct {
	UserID string `json:"user_id"`
	Card   Card   `json:"card"`
}

type pendingPlay struct {
	player *Player
	card   Card
}

// TurnResolution resolves one simultaneous turn. Cards are placed strictly
// in ascending value order, each placement completed (including overflow or
// forced wipe) before the next card is considered. When a card is lower
// than every row, resolution suspends and surfaces a RowChoiceRequest; it
// resumes once ChooseRow supplies the owner's answer.
type TurnResolution struct {
	table      *Table
	queue      []pendingPlay
	next       int
	pending    *RowChoiceRequest
	placements []Placement
}

// NewTurnResolution validates the current selection set and prepares the
// resolution. Every player still holding cards must have selected exactly
// one card from their own hand, and no value may repeat. A rejected set
// leaves the game untouched.
func NewTurnResolution(g *Game) (*TurnResolution, error) {
	queue := make([]pendingPlay, 0, len(g.Players))
	seen := make(map[int]string, len(g.Players))

	for _, id := range g.SeatOrder {
		p := g.Players[id]
		if len(p.Hand) == 0 {
			continue
		}
		if p.Selected == nil {
			return nil, fmt.Errorf("%w: player %s has no selection", ErrInvalidSelection, p.UserID)
		}
		card := *p.Selected
		if !ContainsCard(p.Hand, card.Value) {
			return nil, fmt.Errorf("%w: player %s does not hold card %d", ErrInvalidSelection, p.UserID, card.Value)
		}
		if other, dup := seen[card.Value]; dup {
			return nil, fmt.Errorf("%w: card %d selected by both %s and %s", ErrInvalidSelection, card.Value, other, p.UserID)
		}
		seen[card.Value] = p.UserID
		queue = append(queue, pendingPlay{player: p, card: card})
	}

	if len(queue) == 0 {
		return nil, fmt.Errorf("%w: no selections", ErrInvalidSelection)
	}

	sort.Slice(queue, func(i, j int) bool { return queue[i].card.Value < queue[j].card.Value })

	return &TurnResolution{table: g.Table, queue: queue}, nil
}

// Advance processes queued cards in order until resolution completes or a
// forced choice is required. It returns the pending request, or nil when
// every card has been placed.
func (r *TurnResolution) Advance() *RowChoiceRequest {
	if r.pending != nil {
		return r.pending
	}

	for r.next < len(r.queue) {
		play := r.queue[r.next]

		if r.table.MustWipe(play.card) {
			r.pending = &RowChoiceRequest{UserID: play.player.UserID, Card: play.card}
			return r.pending
		}

		rowIndex, taken, err := r.table.Place(play.card)
		if err != nil {
			// Unreachable once MustWipe passed; placement rules and the
			// target-row search share the same ordering.
			panic(err)
		}
		r.complete(play, Placement{
			UserID:   play.player.UserID,
			Card:     play.card,
			RowIndex: rowIndex,
			Overflow: len(taken) > 0,
			Taken:    taken,
		})
	}
	return nil
}

// ChooseRow answers the pending forced-choice request. An out-of-range row
// index is rejected without mutating any state so the owner can be asked
// again.
func (r *TurnResolution) ChooseRow(rowIndex int) error {
	if r.pending == nil {
		return errors.New("no pending row choice")
	}

	play := r.queue[r.next]
	taken, err := r.table.PlaceForced(play.card, rowIndex)
	if err != nil {
		return err
	}

	r.pending = nil
	r.complete(play, Placement{
		UserID:     play.player.UserID,
		Card:       play.card,
		RowIndex:   rowIndex,
		ForcedWipe: true,
		Taken:      taken,
	})
	return nil
}

// complete applies the side effects of a finished placement: the card
// leaves the owner's hand, any taken pile is scored, and the result is
// recorded.
func (r *TurnResolution) complete(play pendingPlay, placement Placement) {
	play.player.Hand = RemoveCard(play.player.Hand, play.card.Value)
	play.player.ClearSelection()
	if len(placement.Taken) > 0 {
		placement.PenaltyDelta = play.player.TakePenalty(placement.Taken)
	}
	r.placements = append(r.placements, placement)
	r.next++
}

// Done reports whether every card of the turn has been placed.
func (r *TurnResolution) Done() bool {
	return r.pending == nil && r.next >= len(r.queue)
}

// Pending returns the outstanding row-choice request, if any.
func (r *TurnResolution) Pending() *RowChoiceRequest {
	return r.pending
}

// Placements returns the ordered results of the turn so far.
func (r *TurnResolution) Placements() []Placement {
	return r.placements
}
