package bot

import (
	"errors"

	"fivetakes/internal/domain"
)

// ErrEmptyHand is returned when a strategy is asked to select from an
// empty hand.
var ErrEmptyHand = errors.New("no cards in hand")

// GoodBot is the baseline strategy: dump the lowest card every turn and,
// when forced to take a row, take the cheapest one.
type GoodBot struct{}

func (b *GoodBot) SelectCard(game *domain.Game, player *domain.Player) (domain.Card, error) {
	if len(player.Hand) == 0 {
		return domain.Card{}, ErrEmptyHand
	}

	lowest := player.Hand[0]
	for _, c := range player.Hand[1:] {
		if c.Value < lowest.Value {
			lowest = c
		}
	}
	return lowest, nil
}

func (b *GoodBot) ChooseRow(game *domain.Game, player *domain.Player) (int, error) {
	return cheapestRow(game.Table.Rows()), nil
}

// cheapestRow returns the index of the row with the fewest penalty points,
// breaking ties on the lower index.
func cheapestRow(rows []*domain.Row) int {
	best := 0
	for i, r := range rows[1:] {
		if r.Points() < rows[best].Points() {
			best = i + 1
		}
	}
	return best
}
