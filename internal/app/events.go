package app

import "fivetakes/internal/domain"

// EventKind identifies emitted game events for dispatch.
type EventKind string

const (
	EventGameStarted       EventKind = "game_started"
	EventRoundStarted      EventKind = "round_started"
	EventHandDealt         EventKind = "hand_dealt"
	EventSelectionMade     EventKind = "selection_made"
	EventRowChoiceRequired EventKind = "row_choice_required"
	EventTurnResolved      EventKind = "turn_resolved"
	EventRoundEnded        EventKind = "round_ended"
	EventGameEnded         EventKind = "game_ended"
)

// Event is an app event with optional targeted recipients.
type Event struct {
	Kind       EventKind
	Payload    any
	Recipients []string // user IDs; empty means broadcast
}

// PlayerScore is a score snapshot for one player.
type PlayerScore struct {
	UserID     string `json:"user_id"`
	Seat       int    `json:"seat"`
	RoundScore int    `json:"round_score"`
	TotalScore int    `json:"total_score"`
}

type GameStartedPayload struct {
	Phase   domain.Phase
	Players []string // user IDs in seat order
}

type RoundStartedPayload struct {
	Round int
	Rows  [][]domain.Card // one starter card per row at round start
}

type HandDealtPayload struct {
	UserID string
	Hand   []domain.Card
}

// SelectionMadePayload acknowledges a selection without revealing the card;
// values surface only in the resolved turn results.
type SelectionMadePayload struct {
	UserID    string
	Remaining int // players still to select this turn
}

type RowChoiceRequiredPayload struct {
	UserID string
	Card   domain.Card
	Rows   [][]domain.Card
}

type TurnResolvedPayload struct {
	Turn       int
	Placements []domain.Placement
	Rows       [][]domain.Card
	Scores     []PlayerScore
}

type RoundEndedPayload struct {
	Round  int
	Scores []PlayerScore
}

type GameEndedPayload struct {
	WinnerUserID   string
	Ranking        []PlayerScore
	BalanceChanges map[string]int64
}
