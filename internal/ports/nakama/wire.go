package nakama

import (
	"fivetakes/internal/app"
	"fivetakes/internal/domain"
)

// Client messages. Card values travel as plain ints; the server resolves
// them against the authoritative hand.

type selectCardMessage struct {
	Card int `json:"card"`
}

type chooseRowMessage struct {
	Row int `json:"row"`
}

// MatchLabel is the JSON match listing label used by quick-match queries.
type MatchLabel struct {
	Open  int    `json:"open"`
	Game  string `json:"game"`
	Phase string `json:"phase"`
}

// Server event payloads. These mirror the app event payloads with stable
// JSON field names for clients.

type playerStateWire struct {
	UserID         string `json:"user_id"`
	Seat           int    `json:"seat"`
	IsOwner        bool   `json:"is_owner"`
	IsBot          bool   `json:"is_bot"`
	DisplayName    string `json:"display_name"`
	CardsRemaining int    `json:"cards_remaining"`
}

type playerJoinedWire struct {
	UserID string `json:"user_id"`
	Seat   int    `json:"seat"`
}

type playerLeftWire struct {
	UserID    string `json:"user_id"`
	Seat      int    `json:"seat"`
	Autopilot bool   `json:"autopilot"`
}

type matchStateWire struct {
	Seats     []string          `json:"seats"`
	OwnerSeat int               `json:"owner_seat"`
	Tick      int64             `json:"tick"`
	Players   []playerStateWire `json:"players"`
}

type gameStartedWire struct {
	Phase   string   `json:"phase"`
	Players []string `json:"players"`
}

type roundStartedWire struct {
	Round int             `json:"round"`
	Rows  [][]domain.Card `json:"rows"`
}

type handDealtWire struct {
	Hand []domain.Card `json:"hand"`
}

type cardSelectedWire struct {
	UserID    string `json:"user_id"`
	Remaining int    `json:"remaining"`
}

type rowChoiceRequiredWire struct {
	Card domain.Card     `json:"card"`
	Rows [][]domain.Card `json:"rows"`
}

type turnResolvedWire struct {
	Turn       int                `json:"turn"`
	Placements []domain.Placement `json:"placements"`
	Rows       [][]domain.Card    `json:"rows"`
	Scores     []app.PlayerScore  `json:"scores"`
}

type roundEndedWire struct {
	Round  int               `json:"round"`
	Scores []app.PlayerScore `json:"scores"`
}

type gameEndedWire struct {
	WinnerUserID   string            `json:"winner_user_id"`
	Ranking        []app.PlayerScore `json:"ranking"`
	BalanceChanges map[string]int64  `json:"balance_changes"`
}

type gameErrorWire struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
