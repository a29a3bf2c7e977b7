package domain

// Settlement captures the coin movements applied when a game ends.
type Settlement struct {
	// BalanceChanges maps userID to the signed coin delta. Changes always
	// sum to zero.
	BalanceChanges map[string]int64
}

// CalculateSettlement derives a zero-sum payout from the final ranking:
// with n players the best-placed gains (n-1) times the base bet, the
// worst-placed loses the same, and each step between neighbours is worth
// two base bets.
func (g *Game) CalculateSettlement(baseBet int64) Settlement {
	ranking := Ranking(g.Players)
	n := len(ranking)

	changes := make(map[string]int64, n)
	for i, p := range ranking {
		multiplier := int64(n-1) - int64(2*i)
		changes[p.UserID] = multiplier * baseBet
	}
	return Settlement{BalanceChanges: changes}
}
