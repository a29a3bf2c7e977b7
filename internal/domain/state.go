package domain

import "errors"

// Phase represents the lifecycle stage of a game.
type Phase string

const (
	// PhaseLobby is the pre-game state where players can join.
	PhaseLobby Phase = "lobby"
	// PhasePlaying is the active game state where turns are resolved.
	PhasePlaying Phase = "playing"
	// PhaseEnded is the state after a player crosses the score threshold.
	PhaseEnded Phase = "ended"
)

var (
	ErrTooFewPlayers  = errors.New("not enough players")
	ErrTooManyPlayers = errors.New("too many players")
)

// Game holds the authoritative state for one game of 5 Takes across rounds.
type Game struct {
	Rules Rules
	Phase Phase

	Players   map[string]*Player // userID -> player
	SeatOrder []string           // userIDs in seat order

	Deck  *Deck
	Table *Table

	Round int
	Turn  int

	// BaseBet scales the coin settlement applied when the game ends.
	BaseBet int64

	// Resolution is the in-flight turn resolution, nil between turns.
	Resolution *TurnResolution
}

// NewGame constructs a playing-phase game for the given seats. Hands and
// table are populated by the first StartRound.
func NewGame(rules Rules, userIDs []string) (*Game, error) {
	if err := rules.ValidatePlayerCount(len(userIDs)); err != nil {
		return nil, err
	}

	players := make(map[string]*Player, len(userIDs))
	order := make([]string, 0, len(userIDs))
	for seat, id := range userIDs {
		players[id] = &Player{UserID: id, Seat: seat}
		order = append(order, id)
	}

	return &Game{
		Rules:     rules,
		Phase:     PhasePlaying,
		Players:   players,
		SeatOrder: order,
	}, nil
}

// PlayerBySeat returns the player occupying the given seat, or nil.
func (g *Game) PlayerBySeat(seat int) *Player {
	for _, p := range g.Players {
		if p.Seat == seat {
			return p
		}
	}
	return nil
}

// AllSelected reports whether every player holding cards has a pending
// selection for the current turn.
func (g *Game) AllSelected() bool {
	for _, p := range g.Players {
		if len(p.Hand) > 0 && p.Selected == nil {
			return false
		}
	}
	return true
}

// RoundOver reports whether every hand has been drained.
func (g *Game) RoundOver() bool {
	for _, p := range g.Players {
		if len(p.Hand) > 0 {
			return false
		}
	}
	return true
}

// CardsInPlay counts every card currently tracked by the game: deck, table
// rows, hands and collected penalty piles. Selected cards stay in the hand
// until their placement completes, so the sum equals the deck size at every
// point in a round.
func (g *Game) CardsInPlay() int {
	n := 0
	if g.Deck != nil {
		n += g.Deck.Remaining()
	}
	if g.Table != nil {
		n += g.Table.CardCount()
	}
	for _, p := range g.Players {
		n += len(p.Hand) + len(p.Taken)
	}
	return n
}
