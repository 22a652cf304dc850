package config

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"tripeaks/internal/domain"
)

// Level is one playable board configuration.
type Level struct {
	Level     int                 `yaml:"level" json:"level"`
	Round     int                 `yaml:"round" json:"round"`
	RoundTime float64             `yaml:"round_time" json:"round_time"`
	NumDecks  int                 `yaml:"num_decks" json:"num_decks"`
	Board     domain.LayoutParams `yaml:"board" json:"board"`
}

// LevelList is the ordered set of levels shipped with the game.
type LevelList struct {
	Levels []Level `yaml:"levels" json:"levels"`
}

// DefaultLevel is the classic three-peak board with one deck.
func DefaultLevel() Level {
	return Level{
		Level:     1,
		Round:     1,
		RoundTime: 60,
		NumDecks:  1,
		Board:     domain.LayoutParams{Shape: domain.ShapePeaks, NumPeaks: 3, PeakHeight: 4},
	}
}

// Validate checks that the level can be played.
func (l Level) Validate() error {
	if l.Level < 1 || l.Round < 1 {
		return fmt.Errorf("level %d round %d: level and round start at 1", l.Level, l.Round)
	}
	if l.RoundTime <= 0 {
		return fmt.Errorf("level %d round %d: round_time must be positive", l.Level, l.Round)
	}
	if l.NumDecks < 1 {
		return fmt.Errorf("level %d round %d: num_decks must be at least 1", l.Level, l.Round)
	}
	if err := l.Board.Validate(); err != nil {
		return fmt.Errorf("level %d round %d: %w", l.Level, l.Round, err)
	}
	return nil
}

// ParseLevels decodes, validates and sorts a YAML level list.
func ParseLevels(data []byte) (LevelList, error) {
	var list LevelList
	if err := yaml.Unmarshal(data, &list); err != nil {
		return LevelList{}, fmt.Errorf("failed to unmarshal levels: %w", err)
	}
	for _, l := range list.Levels {
		if err := l.Validate(); err != nil {
			return LevelList{}, err
		}
	}
	list.Sort()
	return list, nil
}

// LoadLevels reads a YAML level list from path.
func LoadLevels(path string) (LevelList, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return LevelList{}, fmt.Errorf("failed to read levels: %w", err)
	}
	return ParseLevels(data)
}

// Sort orders levels by level, then round.
func (l *LevelList) Sort() {
	sort.SliceStable(l.Levels, func(i, j int) bool {
		a, b := l.Levels[i], l.Levels[j]
		if a.Level != b.Level {
			return a.Level < b.Level
		}
		return a.Round < b.Round
	})
}

// Find returns the level entry for (level, round).
func (l LevelList) Find(level, round int) (Level, bool) {
	for _, lv := range l.Levels {
		if lv.Level == level && lv.Round == round {
			return lv, true
		}
	}
	return Level{}, false
}

// First returns the lowest round of the given level.
func (l LevelList) First(level int) (Level, bool) {
	for _, lv := range l.Levels {
		if lv.Level == level {
			return lv, true
		}
	}
	return Level{}, false
}
