package domain

import (
	"fmt"
	"sort"
)

// Rules carries the configurable constants of a game. The engine never
// reads ambient globals; callers construct games with an explicit Rules
// value so tests can run with small decks.
type Rules struct {
	DeckSize       int
	RowCount       int
	RowCapacity    int
	HandSize       int
	MinPlayers     int
	MaxPlayers     int
	ScoreThreshold int
}

// DefaultRules returns the standard 5 Takes configuration: a 104-card deck,
// four rows of capacity five, ten-card hands, 3-10 players, game end above
// 50 points.
func DefaultRules() Rules {
	return Rules{
		DeckSize:       104,
		RowCount:       4,
		RowCapacity:    5,
		HandSize:       10,
		MinPlayers:     3,
		MaxPlayers:     10,
		ScoreThreshold: 50,
	}
}

// CardsNeeded returns the number of cards a round consumes for the given
// player count: one hand per player plus the row starters.
func (r Rules) CardsNeeded(playerCount int) int {
	return playerCount*r.HandSize + r.RowCount
}

// ValidatePlayerCount checks the player count against the configured
// bounds and the deck's capacity.
func (r Rules) ValidatePlayerCount(count int) error {
	if count < r.MinPlayers {
		return fmt.Errorf("%w: have %d, need at least %d", ErrTooFewPlayers, count, r.MinPlayers)
	}
	if count > r.MaxPlayers {
		return fmt.Errorf("%w: have %d, allow at most %d", ErrTooManyPlayers, count, r.MaxPlayers)
	}
	if r.CardsNeeded(count) > r.DeckSize {
		return ErrInsufficientCards
	}
	return nil
}

// GameOver reports whether any player's total score exceeds the threshold.
func (r Rules) GameOver(players map[string]*Player) bool {
	for _, p := range players {
		if p.TotalScore > r.ScoreThreshold {
			return true
		}
	}
	return false
}

// Ranking orders players by ascending total score; lower is better. Ties
// fall back to seat order so the result is deterministic.
func Ranking(players map[string]*Player) []*Player {
	out := make([]*Player, 0, len(players))
	for _, p := range players {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalScore != out[j].TotalScore {
			return out[i].TotalScore < out[j].TotalScore
		}
		return out[i].Seat < out[j].Seat
	})
	return out
}
