package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripeaks/internal/ports"
)

func TestStoreGetSet(t *testing.T) {
	ctx := context.Background()
	s := NewStore(map[string]int64{ports.KeyCoins: 40})

	v, err := s.Get(ctx, ports.KeyCoins)
	require.NoError(t, err)
	assert.Equal(t, int64(40), v)

	v, err = s.Get(ctx, ports.KeyHighScore)
	require.NoError(t, err)
	assert.Zero(t, v)

	require.NoError(t, s.Set(ctx, ports.KeyHighScore, 1200))
	v, _ = s.Get(ctx, ports.KeyHighScore)
	assert.Equal(t, int64(1200), v)
	assert.Equal(t, 1, s.Writes())
}
