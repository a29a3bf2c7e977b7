package bot

import "fmt"

// NewBrain creates a strategy for the given level.
func NewBrain(level BotLevel) (Brain, error) {
	switch level {
	case BotLevelGood:
		return &GoodBot{}, nil
	case BotLevelSmart:
		return &SmartBot{}, nil
	default:
		return nil, fmt.Errorf("unknown bot level: %d", level)
	}
}

// NewAgent builds an agent for a provisioned bot identity, mapping its
// configured difficulty to a strategy tier.
func NewAgent(userID string) (*Agent, error) {
	level := BotLevelGood
	name := userID
	if identity, ok := GetBotConfig(userID); ok {
		name = identity.DisplayName
		if identity.Difficulty == "hard" {
			level = BotLevelSmart
		}
	}

	brain, err := NewBrain(level)
	if err != nil {
		return nil, err
	}
	return &Agent{ID: userID, Name: name, Strategy: brain}, nil
}
