package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// GameConfig holds the scoring and economy rules of a round.
type GameConfig struct {
	PointsPerCardTakenFromBoard  int64 `json:"points_per_card_taken_from_board"`
	PointsPerCardRemainingInDeck int64 `json:"points_per_card_remaining_in_deck"`
	PointsPerSecondRemaining     int64 `json:"points_per_second_remaining"`
	CoinsPerCardTakenFromBoard   int64 `json:"coins_per_card_taken_from_board"`
	CoinsPerCardRemainingInDeck  int64 `json:"coins_per_card_remaining_in_deck"`
	CoinsPerSecondRemaining      int64 `json:"coins_per_second_remaining"`

	// CardsForExtraLife is the deck size a won round must leave to earn a life.
	CardsForExtraLife int `json:"cards_for_extra_life"`

	CostForUndo       int64   `json:"cost_for_undo"`
	CostForShuffle    int64   `json:"cost_for_shuffle"`
	CostForWildCard   int64   `json:"cost_for_wild_card"`
	CostForExtraCards int64   `json:"cost_for_extra_cards"`
	CostForExtraTime  int64   `json:"cost_for_extra_time"`
	ExtraCardsPowerup int     `json:"extra_cards_powerup"`
	ExtraTimePowerup  float64 `json:"extra_time_powerup_seconds"`

	// StartingCoins is granted once to new accounts.
	StartingCoins int64 `json:"starting_coins"`
}

var (
	cfg      *GameConfig
	loadOnce sync.Once
	loadErr  error
)

// Default returns the rules used when no config file is loaded.
func Default() GameConfig {
	return GameConfig{
		PointsPerCardTakenFromBoard:  100,
		PointsPerCardRemainingInDeck: 50,
		PointsPerSecondRemaining:     10,
		CoinsPerCardTakenFromBoard:   1,
		CoinsPerCardRemainingInDeck:  2,
		CoinsPerSecondRemaining:      1,
		CardsForExtraLife:            10,
		CostForUndo:                  5,
		CostForShuffle:               20,
		CostForWildCard:              25,
		CostForExtraCards:            15,
		CostForExtraTime:             10,
		ExtraCardsPowerup:            5,
		ExtraTimePowerup:             15,
		StartingCoins:                100,
	}
}

// ParseGameConfig decodes a JSON config on top of the defaults.
func ParseGameConfig(data []byte) (GameConfig, error) {
	c := Default()
	if err := json.Unmarshal(data, &c); err != nil {
		return GameConfig{}, fmt.Errorf("failed to unmarshal game config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return GameConfig{}, err
	}
	return c, nil
}

// Validate rejects negative costs and power-up sizes.
func (c GameConfig) Validate() error {
	costs := map[string]int64{
		"cost_for_undo":        c.CostForUndo,
		"cost_for_shuffle":     c.CostForShuffle,
		"cost_for_wild_card":   c.CostForWildCard,
		"cost_for_extra_cards": c.CostForExtraCards,
		"cost_for_extra_time":  c.CostForExtraTime,
	}
	for name, v := range costs {
		if v < 0 {
			return fmt.Errorf("game config: %s must not be negative", name)
		}
	}
	if c.ExtraCardsPowerup < 1 {
		return fmt.Errorf("game config: extra_cards_powerup must be at least 1")
	}
	if c.ExtraTimePowerup <= 0 {
		return fmt.Errorf("game config: extra_time_powerup_seconds must be positive")
	}
	return nil
}

// LoadGameConfig loads the game configuration from the given path.
func LoadGameConfig(path string) error {
	loadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("failed to read game config: %w", err)
			return
		}

		c, err := ParseGameConfig(data)
		if err != nil {
			loadErr = err
			return
		}
		cfg = &c
	})
	return loadErr
}

// GetGameConfig returns the loaded configuration, or the defaults if none
// was loaded.
func GetGameConfig() GameConfig {
	if cfg == nil {
		return Default()
	}
	return *cfg
}
