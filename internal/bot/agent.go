package bot

import (
	"errors"

	"fivetakes/internal/domain"
)

// ErrNotSeated is returned when an agent is asked to act in a game it is
// not part of.
var ErrNotSeated = errors.New("agent not seated in game")

// Agent represents an autonomous bot player.
type Agent struct {
	ID       string
	Name     string
	Strategy Brain
}

// SelectCard asks the agent which card to play this turn.
func (a *Agent) SelectCard(game *domain.Game) (domain.Card, error) {
	player, ok := game.Players[a.ID]
	if !ok {
		return domain.Card{}, ErrNotSeated
	}
	return a.Strategy.SelectCard(game, player)
}

// ChooseRow asks the agent which row to take for a forced-choice event.
func (a *Agent) ChooseRow(game *domain.Game) (int, error) {
	player, ok := game.Players[a.ID]
	if !ok {
		return 0, ErrNotSeated
	}
	return a.Strategy.ChooseRow(game, player)
}
