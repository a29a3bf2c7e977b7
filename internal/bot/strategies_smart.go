package bot

import "fivetakes/internal/domain"

// SmartBot weighs where each card would land before committing. It prefers
// cards that extend a row without filling it, keeping the gap to the row's
// last card as small as possible so fewer opposing cards fit underneath.
// When no card is safe it plays the one with the cheapest worst case.
type SmartBot struct{}

func (b *SmartBot) SelectCard(game *domain.Game, player *domain.Player) (domain.Card, error) {
	if len(player.Hand) == 0 {
		return domain.Card{}, ErrEmptyHand
	}

	table := game.Table
	capacity := game.Rules.RowCapacity

	bestSafe := domain.Card{}
	bestGap := 0
	haveSafe := false
	for _, c := range player.Hand {
		idx, ok := table.FindTargetRow(c)
		if !ok {
			continue
		}
		row := table.Rows()[idx]
		if row.Len() >= capacity-1 {
			// Placing here would be the row's final slot and take the pile.
			continue
		}
		gap := c.Value - row.LastCard().Value
		if !haveSafe || gap < bestGap || (gap == bestGap && c.Value < bestSafe.Value) {
			bestSafe = c
			bestGap = gap
			haveSafe = true
		}
	}
	if haveSafe {
		return bestSafe, nil
	}

	// Every card takes a pile this turn. Pick the cheapest damage.
	bestCard := player.Hand[0]
	bestCost := b.placementCost(table, player.Hand[0])
	for _, c := range player.Hand[1:] {
		cost := b.placementCost(table, c)
		if cost < bestCost || (cost == bestCost && c.Value < bestCard.Value) {
			bestCard = c
			bestCost = cost
		}
	}
	return bestCard, nil
}

// placementCost estimates the penalty points playing this card costs right
// now, assuming the table does not change before it resolves.
func (b *SmartBot) placementCost(table *domain.Table, c domain.Card) int {
	idx, ok := table.FindTargetRow(c)
	if !ok {
		// Forced choice: the bot will take the cheapest row.
		return table.Rows()[cheapestRow(table.Rows())].Points()
	}
	return table.Rows()[idx].Points()
}

func (b *SmartBot) ChooseRow(game *domain.Game, player *domain.Player) (int, error) {
	rows := game.Table.Rows()
	best := 0
	for i, r := range rows[1:] {
		idx := i + 1
		if r.Points() < rows[best].Points() {
			best = idx
			continue
		}
		// Same price: prefer handing back the shorter row so the table
		// keeps more cards out of future overflows.
		if r.Points() == rows[best].Points() && r.Len() < rows[best].Len() {
			best = idx
		}
	}
	return best, nil
}
