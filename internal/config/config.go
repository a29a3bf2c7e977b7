package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"fivetakes/internal/domain"
)

// GameConfig is the tunable game configuration loaded from the data folder.
// Zero fields fall back to the standard 5 Takes values.
type GameConfig struct {
	DeckSize       int   `json:"deck_size"`
	RowCount       int   `json:"row_count"`
	RowCapacity    int   `json:"row_capacity"`
	HandSize       int   `json:"hand_size"`
	MinPlayers     int   `json:"min_players"`
	MaxPlayers     int   `json:"max_players"`
	ScoreThreshold int   `json:"score_threshold"`
	BaseBet        int64 `json:"base_bet"`
	// BotAutoFillDelaySeconds configures how many seconds to wait before
	// filling a short-handed lobby with bots.
	BotAutoFillDelaySeconds int `json:"bot_auto_fill_delay_seconds"`
}

var (
	cfg      *GameConfig
	loadOnce sync.Once
	loadErr  error
)

// LoadGameConfig loads the game configuration from the given path.
func LoadGameConfig(path string) error {
	loadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("failed to read game config: %w", err)
			return
		}

		var c GameConfig
		if err := json.Unmarshal(data, &c); err != nil {
			loadErr = fmt.Errorf("failed to unmarshal game config: %w", err)
			return
		}
		cfg = &c
	})
	return loadErr
}

// GetGameConfig returns the loaded configuration, or nil if loading failed.
func GetGameConfig() *GameConfig {
	return cfg
}

// Rules produces the explicit rules structure the engine takes, applying
// defaults for any unset field. A nil receiver yields the defaults.
func (c *GameConfig) Rules() domain.Rules {
	rules := domain.DefaultRules()
	if c == nil {
		return rules
	}
	if c.DeckSize > 0 {
		rules.DeckSize = c.DeckSize
	}
	if c.RowCount > 0 {
		rules.RowCount = c.RowCount
	}
	if c.RowCapacity > 0 {
		rules.RowCapacity = c.RowCapacity
	}
	if c.HandSize > 0 {
		rules.HandSize = c.HandSize
	}
	if c.MinPlayers > 0 {
		rules.MinPlayers = c.MinPlayers
	}
	if c.MaxPlayers > 0 {
		rules.MaxPlayers = c.MaxPlayers
	}
	if c.ScoreThreshold > 0 {
		rules.ScoreThreshold = c.ScoreThreshold
	}
	return rules
}

// GetBaseBet returns the configured base bet or a safe default.
func GetBaseBet() int64 {
	if cfg == nil || cfg.BaseBet <= 0 {
		return 100
	}
	return cfg.BaseBet
}
