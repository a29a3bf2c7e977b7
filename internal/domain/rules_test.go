package domain

import (
	"errors"
	"testing"
)

func TestValidatePlayerCount(t *testing.T) {
	rules := DefaultRules()

	tests := []struct {
		name    string
		count   int
		wantErr error
	}{
		{name: "below minimum", count: 2, wantErr: ErrTooFewPlayers},
		{name: "minimum", count: 3, wantErr: nil},
		{name: "maximum", count: 10, wantErr: nil},
		{name: "above maximum", count: 11, wantErr: ErrTooManyPlayers},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := rules.ValidatePlayerCount(tt.count)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidatePlayerCountAgainstDeck(t *testing.T) {
	// A shrunken deck cannot seat players the bounds alone would allow.
	rules := DefaultRules()
	rules.DeckSize = 30

	if err := rules.ValidatePlayerCount(3); !errors.Is(err, ErrInsufficientCards) {
		t.Errorf("error = %v, want ErrInsufficientCards", err)
	}
}

func TestCardsNeeded(t *testing.T) {
	rules := DefaultRules()
	if got := rules.CardsNeeded(10); got != 104 {
		t.Errorf("CardsNeeded(10) = %d, want 104", got)
	}
	if got := rules.CardsNeeded(3); got != 34 {
		t.Errorf("CardsNeeded(3) = %d, want 34", got)
	}
}

func TestGameOver(t *testing.T) {
	rules := DefaultRules()
	players := map[string]*Player{
		"A": {UserID: "A", TotalScore: 12},
		"B": {UserID: "B", TotalScore: 50},
	}

	if rules.GameOver(players) {
		t.Errorf("game over at exactly the threshold, want play to continue")
	}

	players["B"].TotalScore = 51
	if !rules.GameOver(players) {
		t.Errorf("game not over above the threshold")
	}
}

func TestRankingAscendingWithSeatTieBreak(t *testing.T) {
	players := map[string]*Player{
		"A": {UserID: "A", Seat: 0, TotalScore: 20},
		"B": {UserID: "B", Seat: 1, TotalScore: 7},
		"C": {UserID: "C", Seat: 2, TotalScore: 20},
		"D": {UserID: "D", Seat: 3, TotalScore: 55},
	}

	ranking := Ranking(players)
	want := []string{"B", "A", "C", "D"}
	for i, id := range want {
		if ranking[i].UserID != id {
			t.Fatalf("ranking[%d] = %s, want %s", i, ranking[i].UserID, id)
		}
	}
}

func TestCalculateSettlementSumsToZero(t *testing.T) {
	tests := []struct {
		name   string
		scores map[string]int
	}{
		{name: "three players", scores: map[string]int{"A": 10, "B": 55, "C": 20}},
		{name: "four players", scores: map[string]int{"A": 10, "B": 55, "C": 20, "D": 31}},
		{name: "five players", scores: map[string]int{"A": 1, "B": 2, "C": 3, "D": 4, "E": 60}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			players := make(map[string]*Player, len(tt.scores))
			seat := 0
			for id, score := range tt.scores {
				players[id] = &Player{UserID: id, Seat: seat, TotalScore: score}
				seat++
			}
			g := &Game{Players: players}

			settlement := g.CalculateSettlement(100)
			if len(settlement.BalanceChanges) != len(tt.scores) {
				t.Fatalf("changes = %d, want %d", len(settlement.BalanceChanges), len(tt.scores))
			}

			var sum int64
			for _, delta := range settlement.BalanceChanges {
				sum += delta
			}
			if sum != 0 {
				t.Errorf("settlement sum = %d, want 0", sum)
			}
		})
	}
}

func TestCalculateSettlementPaysWinnerMost(t *testing.T) {
	players := map[string]*Player{
		"A": {UserID: "A", Seat: 0, TotalScore: 10},
		"B": {UserID: "B", Seat: 1, TotalScore: 30},
		"C": {UserID: "C", Seat: 2, TotalScore: 60},
	}
	g := &Game{Players: players}

	settlement := g.CalculateSettlement(100)
	if got := settlement.BalanceChanges["A"]; got != 200 {
		t.Errorf("winner delta = %d, want 200", got)
	}
	if got := settlement.BalanceChanges["B"]; got != 0 {
		t.Errorf("middle delta = %d, want 0", got)
	}
	if got := settlement.BalanceChanges["C"]; got != -200 {
		t.Errorf("loser delta = %d, want -200", got)
	}
}
