package bot

import "fivetakes/internal/domain"

// Brain is the interface all bot strategies implement. The engine never
// cares how a selection was produced; a Brain covers exactly the two
// decisions a participant makes: which card to play and, when forced,
// which row to take.
type Brain interface {
	SelectCard(game *domain.Game, player *domain.Player) (domain.Card, error)
	ChooseRow(game *domain.Game, player *domain.Player) (int, error)
}

// BotLevel selects a strategy tier.
type BotLevel int

const (
	BotLevelGood BotLevel = iota
	BotLevelSmart
)
