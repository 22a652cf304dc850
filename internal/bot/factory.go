package bot

import (
	"fmt"
)

// BotLevel selects a strategy.
type BotLevel int

const (
	BotLevelBasic BotLevel = iota + 1
	BotLevelGreedy
)

// ParseBotLevel maps a level name to a BotLevel.
func ParseBotLevel(name string) (BotLevel, error) {
	switch name {
	case "basic":
		return BotLevelBasic, nil
	case "greedy":
		return BotLevelGreedy, nil
	default:
		return 0, fmt.Errorf("unknown bot level: %q", name)
	}
}

// NewBrain creates a new AI brain based on the specified level.
func NewBrain(level BotLevel) (Brain, error) {
	switch level {
	case BotLevelBasic:
		return &BasicBot{}, nil
	case BotLevelGreedy:
		return &GreedyBot{Tuning: DefaultTuning}, nil
	default:
		return nil, fmt.Errorf("unknown bot level: %d", level)
	}
}
