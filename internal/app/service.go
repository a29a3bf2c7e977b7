package app

import (
	"errors"
	"math/rand"
	"sort"
	"time"

	"fivetakes/internal/domain"
)

var (
	ErrNotPlaying       = errors.New("game not in playing phase")
	ErrUnknownPlayer    = errors.New("player not found")
	ErrTurnInProgress   = errors.New("turn resolution in progress")
	ErrNoPendingChoice  = errors.New("no row choice pending")
	ErrNotChoiceOwner   = errors.New("row choice belongs to another player")
	ErrNoActiveGame     = errors.New("no active game")
	ErrGameAlreadyEnded = errors.New("game already ended")
)

// Service contains the 5 Takes use-cases operating on domain state. It is
// the single mutator of table and score state; callers dispatch the events
// it returns.
type Service struct {
	rng *rand.Rand
}

// NewService constructs a Service with the provided rng or a time-seeded
// default. Tests pass a seeded rng for deterministic deals.
func NewService(rng *rand.Rand) *Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Service{rng: rng}
}

// StartGame creates a new game for the given seats and deals the first
// round. userIDs are in seat order; empty strings mark empty seats.
func (s *Service) StartGame(userIDs []string, rules domain.Rules, baseBet int64) (*domain.Game, []Event, error) {
	seated := make([]string, 0, len(userIDs))
	for _, id := range userIDs {
		if id != "" {
			seated = append(seated, id)
		}
	}

	game, err := domain.NewGame(rules, seated)
	if err != nil {
		return nil, nil, err
	}
	game.BaseBet = baseBet

	events := []Event{{
		Kind:    EventGameStarted,
		Payload: GameStartedPayload{Phase: game.Phase, Players: game.SeatOrder},
	}}

	roundEvents, err := s.startRound(game)
	if err != nil {
		return nil, nil, err
	}

	return game, append(events, roundEvents...), nil
}

// startRound resets round state, builds the table from freshly drawn row
// starters and deals every hand.
func (s *Service) startRound(g *domain.Game) ([]Event, error) {
	g.Round++
	g.Turn = 0
	for _, p := range g.Players {
		p.ResetRound()
	}

	g.Deck = domain.NewDeck(g.Rules.DeckSize)
	g.Deck.Shuffle(s.rng)

	starters, err := g.Deck.Deal(g.Rules.RowCount)
	if err != nil {
		return nil, err
	}
	sort.Slice(starters, func(i, j int) bool { return starters[i].Value < starters[j].Value })
	g.Table = domain.NewTable(starters, g.Rules.RowCapacity)

	hands, err := g.Deck.DealHands(g.Rules.HandSize, len(g.SeatOrder))
	if err != nil {
		return nil, err
	}

	events := make([]Event, 0, len(g.SeatOrder)+1)
	events = append(events, Event{
		Kind:    EventRoundStarted,
		Payload: RoundStartedPayload{Round: g.Round, Rows: tableRows(g)},
	})

	for i, id := range g.SeatOrder {
		p := g.Players[id]
		p.DealHand(hands[i])
		events = append(events, Event{
			Kind:       EventHandDealt,
			Payload:    HandDealtPayload{UserID: id, Hand: p.Hand},
			Recipients: []string{id},
		})
	}

	return events, nil
}

// SelectCard records a player's pending selection for the current turn.
// Once every player holding cards has selected, the turn resolves; forced
// row choices suspend resolution and surface as targeted events.
func (s *Service) SelectCard(g *domain.Game, userID string, cardValue int) ([]Event, error) {
	if g == nil {
		return nil, ErrNoActiveGame
	}
	if g.Phase == domain.PhaseEnded {
		return nil, ErrGameAlreadyEnded
	}
	if g.Phase != domain.PhasePlaying {
		return nil, ErrNotPlaying
	}
	if g.Resolution != nil {
		return nil, ErrTurnInProgress
	}

	p, ok := g.Players[userID]
	if !ok {
		return nil, ErrUnknownPlayer
	}
	if err := p.Select(cardValue); err != nil {
		return nil, err
	}

	events := []Event{{
		Kind:    EventSelectionMade,
		Payload: SelectionMadePayload{UserID: userID, Remaining: pendingSelections(g)},
	}}

	if !g.AllSelected() {
		return events, nil
	}

	res, err := domain.NewTurnResolution(g)
	if err != nil {
		return nil, err
	}
	g.Resolution = res

	more, err := s.advanceResolution(g)
	if err != nil {
		return nil, err
	}
	return append(events, more...), nil
}

// ChooseRow answers a pending forced-choice request and resumes the
// suspended resolution.
func (s *Service) ChooseRow(g *domain.Game, userID string, rowIndex int) ([]Event, error) {
	if g == nil {
		return nil, ErrNoActiveGame
	}
	if g.Phase == domain.PhaseEnded {
		return nil, ErrGameAlreadyEnded
	}
	if g.Phase != domain.PhasePlaying {
		return nil, ErrNotPlaying
	}
	if g.Resolution == nil || g.Resolution.Pending() == nil {
		return nil, ErrNoPendingChoice
	}
	if g.Resolution.Pending().UserID != userID {
		return nil, ErrNotChoiceOwner
	}

	if err := g.Resolution.ChooseRow(rowIndex); err != nil {
		return nil, err
	}

	return s.advanceResolution(g)
}

// advanceResolution drives the in-flight resolution until it suspends for
// a row choice or completes; completion closes out the turn and, when hands
// are drained, the round and possibly the game.
func (s *Service) advanceResolution(g *domain.Game) ([]Event, error) {
	if req := g.Resolution.Advance(); req != nil {
		return []Event{{
			Kind:       EventRowChoiceRequired,
			Payload:    RowChoiceRequiredPayload{UserID: req.UserID, Card: req.Card, Rows: tableRows(g)},
			Recipients: []string{req.UserID},
		}}, nil
	}

	placements := g.Resolution.Placements()
	g.Resolution = nil
	g.Turn++

	events := []Event{{
		Kind: EventTurnResolved,
		Payload: TurnResolvedPayload{
			Turn:       g.Turn,
			Placements: placements,
			Rows:       tableRows(g),
			Scores:     scores(g),
		},
	}}

	if !g.RoundOver() {
		return events, nil
	}

	for _, p := range g.Players {
		p.FoldRoundScore()
	}
	events = append(events, Event{
		Kind:    EventRoundEnded,
		Payload: RoundEndedPayload{Round: g.Round, Scores: scores(g)},
	})

	if g.Rules.GameOver(g.Players) {
		g.Phase = domain.PhaseEnded
		ranking := domain.Ranking(g.Players)
		settlement := g.CalculateSettlement(g.BaseBet)
		events = append(events, Event{
			Kind: EventGameEnded,
			Payload: GameEndedPayload{
				WinnerUserID:   ranking[0].UserID,
				Ranking:        scoresOf(ranking),
				BalanceChanges: settlement.BalanceChanges,
			},
		})
		return events, nil
	}

	nextRound, err := s.startRound(g)
	if err != nil {
		return nil, err
	}
	return append(events, nextRound...), nil
}

func pendingSelections(g *domain.Game) int {
	n := 0
	for _, p := range g.Players {
		if len(p.Hand) > 0 && p.Selected == nil {
			n++
		}
	}
	return n
}

func tableRows(g *domain.Game) [][]domain.Card {
	rows := g.Table.Rows()
	out := make([][]domain.Card, len(rows))
	for i, r := range rows {
		out[i] = r.Cards()
	}
	return out
}

func scores(g *domain.Game) []PlayerScore {
	return scoresOf(domain.Ranking(g.Players))
}

func scoresOf(players []*domain.Player) []PlayerScore {
	out := make([]PlayerScore, len(players))
	for i, p := range players {
		out[i] = PlayerScore{
			UserID:     p.UserID,
			Seat:       p.Seat,
			RoundScore: p.RoundScore,
			TotalScore: p.TotalScore,
		}
	}
	return out
}
