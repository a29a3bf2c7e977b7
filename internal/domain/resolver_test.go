package domain

import (
	"errors"
	"testing"
)

// resolutionGame builds a playing game with the given table last-values and
// one player per entry of hands, seated in map-key order "A", "B", ...
func resolutionGame(t *testing.T, lasts []int, hands map[string][]int) *Game {
	t.Helper()

	players := make(map[string]*Player, len(hands))
	order := make([]string, 0, len(hands))
	for _, id := range []string{"A", "B", "C", "D", "E"} {
		values, ok := hands[id]
		if !ok {
			continue
		}
		cards := make([]Card, len(values))
		for i, v := range values {
			cards[i] = Card{Value: v}
		}
		players[id] = &Player{UserID: id, Seat: len(order), Hand: cards}
		order = append(order, id)
	}

	return &Game{
		Rules:     DefaultRules(),
		Phase:     PhasePlaying,
		Players:   players,
		SeatOrder: order,
		Table:     tableWithLastValues(t, lasts),
	}
}

func selectCards(t *testing.T, g *Game, picks map[string]int) {
	t.Helper()
	for id, v := range picks {
		if err := g.Players[id].Select(v); err != nil {
			t.Fatalf("select %d for %s: %v", v, id, err)
		}
	}
}

func TestResolveProcessesCardsAscending(t *testing.T) {
	g := resolutionGame(t, []int{10, 53, 52, 100}, map[string][]int{
		"A": {54, 60},
		"B": {5, 61},
		"C": {21, 62},
	})
	selectCards(t, g, map[string]int{"A": 54, "B": 5, "C": 21})

	res, err := NewTurnResolution(g)
	if err != nil {
		t.Fatalf("new resolution error: %v", err)
	}

	// B's 5 is lower than every row, so resolution must suspend for B
	// before C's 21 or A's 54 are placed.
	req := res.Advance()
	if req == nil {
		t.Fatalf("expected forced choice, resolution ran to completion")
	}
	if req.UserID != "B" || req.Card.Value != 5 {
		t.Fatalf("pending request = %+v, want B playing 5", req)
	}
	if len(res.Placements()) != 0 {
		t.Fatalf("placements before B's choice = %d, want 0", len(res.Placements()))
	}

	if err := res.ChooseRow(0); err != nil {
		t.Fatalf("choose row error: %v", err)
	}
	if req := res.Advance(); req != nil {
		t.Fatalf("unexpected second forced choice: %+v", req)
	}
	if !res.Done() {
		t.Fatalf("resolution not done")
	}

	placements := res.Placements()
	wantOrder := []int{5, 21, 54}
	if len(placements) != len(wantOrder) {
		t.Fatalf("placements = %d, want %d", len(placements), len(wantOrder))
	}
	for i, want := range wantOrder {
		if placements[i].Card.Value != want {
			t.Errorf("placement %d card = %d, want %d", i, placements[i].Card.Value, want)
		}
	}

	// B wiped row 0 ([10]) and pays its 3 points.
	if !placements[0].ForcedWipe || placements[0].PenaltyDelta != 3 {
		t.Errorf("B placement = %+v, want forced wipe with penalty 3", placements[0])
	}
	if g.Players["B"].RoundScore != 3 {
		t.Errorf("B round score = %d, want 3", g.Players["B"].RoundScore)
	}

	// 21 goes after B's 5 on the wiped row, 54 after 53.
	if placements[1].RowIndex != 0 {
		t.Errorf("21 placed on row %d, want 0", placements[1].RowIndex)
	}
	if placements[2].RowIndex != 1 {
		t.Errorf("54 placed on row %d, want 1", placements[2].RowIndex)
	}

	// Placed cards left their hands.
	for id, size := range map[string]int{"A": 1, "B": 1, "C": 1} {
		if got := len(g.Players[id].Hand); got != size {
			t.Errorf("%s hand size = %d, want %d", id, got, size)
		}
	}
}

func TestResolveRejectsMissingSelection(t *testing.T) {
	g := resolutionGame(t, []int{10, 53, 52, 100}, map[string][]int{
		"A": {54},
		"B": {60},
	})
	selectCards(t, g, map[string]int{"A": 54})

	_, err := NewTurnResolution(g)
	if !errors.Is(err, ErrInvalidSelection) {
		t.Fatalf("error = %v, want ErrInvalidSelection", err)
	}
	if len(g.Players["A"].Hand) != 1 || g.Players["A"].Selected == nil {
		t.Errorf("rejected selection set mutated player state")
	}
}

func TestResolveRejectsCardOutsideHand(t *testing.T) {
	g := resolutionGame(t, []int{10, 53, 52, 100}, map[string][]int{
		"A": {54},
		"B": {60},
	})
	selectCards(t, g, map[string]int{"A": 54, "B": 60})

	// Simulate a stale selection: the card left the hand after selecting.
	g.Players["B"].Hand = nil
	g.Players["B"].Hand = []Card{{Value: 70}}

	_, err := NewTurnResolution(g)
	if !errors.Is(err, ErrInvalidSelection) {
		t.Fatalf("error = %v, want ErrInvalidSelection", err)
	}
}

func TestResolveRejectsDuplicateValues(t *testing.T) {
	g := resolutionGame(t, []int{10, 53, 52, 100}, map[string][]int{
		"A": {54},
		"B": {54},
	})
	selectCards(t, g, map[string]int{"A": 54, "B": 54})

	_, err := NewTurnResolution(g)
	if !errors.Is(err, ErrInvalidSelection) {
		t.Fatalf("error = %v, want ErrInvalidSelection", err)
	}
}

func TestChooseRowRejectsBadIndexAndReasks(t *testing.T) {
	g := resolutionGame(t, []int{10, 53, 52, 100}, map[string][]int{
		"A": {3},
		"B": {60},
		"C": {70},
	})
	selectCards(t, g, map[string]int{"A": 3, "B": 60, "C": 70})

	res, err := NewTurnResolution(g)
	if err != nil {
		t.Fatalf("new resolution error: %v", err)
	}

	req := res.Advance()
	if req == nil || req.UserID != "A" {
		t.Fatalf("pending = %+v, want forced choice for A", req)
	}

	if err := res.ChooseRow(9); err != ErrInvalidRowChoice {
		t.Fatalf("ChooseRow(9) error = %v, want ErrInvalidRowChoice", err)
	}
	// The request stays pending and nothing moved.
	if res.Pending() == nil || res.Pending().UserID != "A" {
		t.Fatalf("pending request lost after rejected choice")
	}
	if len(g.Players["A"].Hand) != 1 {
		t.Fatalf("rejected row choice mutated A's hand")
	}

	if err := res.ChooseRow(3); err != nil {
		t.Fatalf("valid choice error: %v", err)
	}
	if req := res.Advance(); req != nil {
		t.Fatalf("unexpected forced choice: %+v", req)
	}
	if !res.Done() {
		t.Fatalf("resolution not done")
	}

	// A took row 3 ([100]) for 3 points.
	if g.Players["A"].RoundScore != 3 {
		t.Errorf("A round score = %d, want 3", g.Players["A"].RoundScore)
	}
}

func TestOverflowDuringResolutionScoresOwner(t *testing.T) {
	g := resolutionGame(t, []int{2, 50, 70, 90}, map[string][]int{
		"A": {6},
		"B": {7},
	})
	// Fill row 0 up to four cards first.
	for _, v := range []int{3, 4, 5} {
		if _, _, err := g.Table.Place(Card{Value: v}); err != nil {
			t.Fatalf("setup place %d: %v", v, err)
		}
	}
	selectCards(t, g, map[string]int{"A": 6, "B": 7})

	res, err := NewTurnResolution(g)
	if err != nil {
		t.Fatalf("new resolution error: %v", err)
	}
	if req := res.Advance(); req != nil {
		t.Fatalf("unexpected forced choice: %+v", req)
	}

	placements := res.Placements()
	if !placements[0].Overflow {
		t.Fatalf("A's 6 should have overflowed row 0: %+v", placements[0])
	}
	if len(placements[0].Taken) != 4 {
		t.Errorf("overflow took %d cards, want 4", len(placements[0].Taken))
	}
	// Row restarted at 6, so B's 7 follows it on the same row.
	if placements[1].RowIndex != placements[0].RowIndex {
		t.Errorf("7 placed on row %d, want %d", placements[1].RowIndex, placements[0].RowIndex)
	}
	if placements[1].Overflow || placements[1].PenaltyDelta != 0 {
		t.Errorf("B placement = %+v, want plain placement", placements[1])
	}
}
