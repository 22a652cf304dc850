package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripeaks/internal/domain"
)

func TestParseGameConfigOverridesDefaults(t *testing.T) {
	c, err := ParseGameConfig([]byte(`{"cost_for_undo": 7, "extra_cards_powerup": 3}`))
	require.NoError(t, err)
	assert.Equal(t, int64(7), c.CostForUndo)
	assert.Equal(t, 3, c.ExtraCardsPowerup)
	assert.Equal(t, Default().PointsPerCardTakenFromBoard, c.PointsPerCardTakenFromBoard)
}

func TestParseGameConfigRejectsBadValues(t *testing.T) {
	_, err := ParseGameConfig([]byte(`{"cost_for_shuffle": -1}`))
	assert.Error(t, err)
	_, err = ParseGameConfig([]byte(`{"extra_time_powerup_seconds": 0}`))
	assert.Error(t, err)
	_, err = ParseGameConfig([]byte(`{`))
	assert.Error(t, err)
}

func TestGetGameConfigFallsBackToDefaults(t *testing.T) {
	if cfg == nil {
		assert.Equal(t, Default(), GetGameConfig())
	}
}

const levelsYAML = `
levels:
  - level: 2
    round: 1
    round_time: 90
    num_decks: 2
    board:
      shape: columns
      num_columns: 7
      column_height: 4
  - level: 1
    round: 2
    round_time: 50
    num_decks: 1
    board:
      shape: peaks
      num_peaks: 3
      peak_height: 4
  - level: 1
    round: 1
    round_time: 60
    num_decks: 1
    board:
      shape: peaks
      num_peaks: 2
      peak_height: 3
`

func TestParseLevelsSortsAndFinds(t *testing.T) {
	list, err := ParseLevels([]byte(levelsYAML))
	require.NoError(t, err)
	require.Len(t, list.Levels, 3)

	assert.Equal(t, 1, list.Levels[0].Level)
	assert.Equal(t, 1, list.Levels[0].Round)
	assert.Equal(t, 2, list.Levels[1].Round)
	assert.Equal(t, 2, list.Levels[2].Level)

	lv, ok := list.Find(2, 1)
	require.True(t, ok)
	assert.Equal(t, domain.ShapeColumns, lv.Board.Shape)
	assert.Equal(t, 7, lv.Board.NumColumns)
	assert.Equal(t, 2, lv.NumDecks)

	first, ok := list.First(1)
	require.True(t, ok)
	assert.Equal(t, 2, first.Board.NumPeaks)

	_, ok = list.Find(9, 9)
	assert.False(t, ok)
}

func TestParseLevelsRejectsInvalidBoard(t *testing.T) {
	_, err := ParseLevels([]byte(`
levels:
  - level: 1
    round: 1
    round_time: 60
    num_decks: 1
    board:
      shape: peaks
      num_peaks: 0
      peak_height: 4
`))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidLayoutParams)
}

func TestDefaultLevelIsValid(t *testing.T) {
	assert.NoError(t, DefaultLevel().Validate())
}

func TestShippedDataFiles(t *testing.T) {
	data, err := os.ReadFile("../../data/game_config.json")
	require.NoError(t, err)
	c, err := ParseGameConfig(data)
	require.NoError(t, err)
	assert.Equal(t, Default(), c)

	levels, err := LoadLevels("../../data/levels.yaml")
	require.NoError(t, err)
	require.NotEmpty(t, levels.Levels)
	for _, lv := range levels.Levels {
		board, err := domain.Arrange(lv.Board)
		require.NoError(t, err, "level %d round %d", lv.Level, lv.Round)
		assert.Less(t, board.Len(), lv.NumDecks*domain.CardsPerDeck, "level %d round %d leaves no deck", lv.Level, lv.Round)
	}
	first, ok := levels.First(1)
	require.True(t, ok)
	assert.Equal(t, 1, first.Round)
}
