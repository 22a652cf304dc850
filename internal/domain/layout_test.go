package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rowSizes(b *Board) map[int]int {
	rows := map[int]int{}
	for _, s := range b.Slots() {
		rows[int(math.Round(s.Pos.Layer/LayerStep))]++
	}
	return rows
}

func TestArrangePeaksCounts(t *testing.T) {
	tests := []struct {
		name          string
		peaks, height int
		wantTotal     int
		wantRows      map[int]int
	}{
		{name: "classic three peaks", peaks: 3, height: 4, wantTotal: 28, wantRows: map[int]int{0: 10, 1: 9, 2: 6, 3: 3}},
		{name: "three peaks height three", peaks: 3, height: 3, wantTotal: 16, wantRows: map[int]int{0: 7, 1: 6, 2: 3}},
		{name: "single slot", peaks: 2, height: 1, wantTotal: 1, wantRows: map[int]int{0: 1}},
		{name: "one peak", peaks: 1, height: 2, wantTotal: 3, wantRows: map[int]int{0: 2, 1: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := ArrangePeaks(tt.peaks, tt.height)
			require.NoError(t, err)
			assert.Equal(t, tt.wantTotal, b.Len())
			assert.Equal(t, tt.wantRows, rowSizes(b))
			assert.Equal(t, ShapePeaks, b.Shape)
		})
	}
}

func TestArrangeColumnsCounts(t *testing.T) {
	b, err := ArrangeColumns(4, 3)
	require.NoError(t, err)
	assert.Equal(t, 12, b.Len())
	assert.Equal(t, map[int]int{0: 4, 1: 4, 2: 4}, rowSizes(b))
}

func TestArrangeRejectsInvalidParams(t *testing.T) {
	_, err := ArrangePeaks(0, 3)
	assert.ErrorIs(t, err, ErrInvalidLayoutParams)
	_, err = ArrangePeaks(3, 0)
	assert.ErrorIs(t, err, ErrInvalidLayoutParams)
	_, err = ArrangeColumns(0, 2)
	assert.ErrorIs(t, err, ErrInvalidLayoutParams)
	_, err = ArrangeColumns(2, 0)
	assert.ErrorIs(t, err, ErrInvalidLayoutParams)
	_, err = Arrange(LayoutParams{Shape: "spiral"})
	assert.ErrorIs(t, err, ErrInvalidLayoutParams)
}

func TestSlotOrderIsFrontToBack(t *testing.T) {
	b, err := ArrangePeaks(3, 4)
	require.NoError(t, err)
	slots := b.Slots()
	for i := 1; i < len(slots); i++ {
		prev, cur := slots[i-1].Pos, slots[i].Pos
		assert.LessOrEqual(t, prev.Layer, cur.Layer+epsilon)
		assert.Equal(t, i, slots[i].ID)
	}
	// The whole bottom row comes first, left to right.
	for i := 1; i < 10; i++ {
		assert.Less(t, slots[i-1].Pos.X, slots[i].Pos.X)
		assert.Zero(t, slots[i].Pos.Layer)
	}
}

func TestPeaksCoverage(t *testing.T) {
	b, err := ArrangePeaks(3, 4)
	require.NoError(t, err)

	for _, s := range b.Slots() {
		if nearlyEqual(s.Pos.Layer, 0) {
			assert.Empty(t, s.Blocking, "bottom slot %d", s.ID)
			continue
		}
		// Every upper card rests on the two cards diagonally in front of it.
		require.Len(t, s.Blocking, 2, "slot %d", s.ID)
		for _, id := range s.Blocking {
			blocker, err := b.Slot(id)
			require.NoError(t, err)
			assert.InDelta(t, s.Pos.Layer-LayerStep, blocker.Pos.Layer, epsilon)
			assert.InDelta(t, SpacingX/2, math.Abs(s.Pos.X-blocker.Pos.X), epsilon)
		}
	}
}

func TestColumnsCoverage(t *testing.T) {
	b, err := ArrangeColumns(2, 3)
	require.NoError(t, err)
	for _, s := range b.Slots() {
		if nearlyEqual(s.Pos.Layer, 0) {
			assert.Empty(t, s.Blocking)
			continue
		}
		require.Len(t, s.Blocking, 1)
		below, _ := b.Slot(s.Blocking[0])
		assert.Equal(t, s.Pos.X, below.Pos.X)
		assert.InDelta(t, s.Pos.Y-SpacingY, below.Pos.Y, epsilon)
	}
}

func TestRevealableFollowsBlockers(t *testing.T) {
	b, err := ArrangePeaks(1, 2)
	require.NoError(t, err)
	d := NewDeck()
	for _, s := range b.Slots() {
		require.NoError(t, s.PlaceCard(d.CreateCard(Ace, Spades, Normal)))
	}
	b.RefreshReveals()

	top, _ := b.Slot(2)
	require.Len(t, top.Blocking, 2)
	assert.False(t, b.Revealable(2))
	assert.True(t, b.Revealable(0))
	assert.True(t, b.Revealable(1))

	left, _ := b.Slot(top.Blocking[0])
	_, err = left.TakeCard()
	require.NoError(t, err)
	assert.False(t, b.Revealable(2), "one blocker still occupied")

	right, _ := b.Slot(top.Blocking[1])
	_, err = right.TakeCard()
	require.NoError(t, err)
	assert.True(t, b.Revealable(2), "last blocker emptied")

	b.RefreshReveals()
	assert.True(t, top.Card().Revealed)
	assert.False(t, b.Revealable(0), "empty slot is never revealable")
	assert.False(t, b.Revealable(99))
}

func TestSlotPlaceAndTake(t *testing.T) {
	s := &Slot{}
	_, err := s.TakeCard()
	assert.ErrorIs(t, err, ErrSlotEmpty)

	c := &Card{ID: 4}
	require.NoError(t, s.PlaceCard(c))
	assert.ErrorIs(t, s.PlaceCard(&Card{ID: 5}), ErrSlotOccupied)
	assert.Same(t, c, s.Card())

	got, err := s.TakeCard()
	require.NoError(t, err)
	assert.Same(t, c, got)
	assert.False(t, s.Occupied())
}

func TestBounds(t *testing.T) {
	b, err := ArrangeColumns(3, 2)
	require.NoError(t, err)
	assert.InDelta(t, -SpacingX-CardW/2, b.Bounds.MinX, epsilon)
	assert.InDelta(t, SpacingX+CardW/2, b.Bounds.MaxX, epsilon)
	assert.InDelta(t, -SpacingY/2-CardH/2, b.Bounds.MinY, epsilon)
	assert.InDelta(t, SpacingY/2+CardH/2, b.Bounds.MaxY, epsilon)
}
