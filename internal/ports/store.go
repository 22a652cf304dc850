package ports

import "context"

// Keys understood by every ScoreStore.
const (
	KeyHighScore = "high_score"
	KeyCoins     = "coins"
)

// ScoreStore persists per-player integer values such as the coin balance
// and the high score. A key that was never written reads as 0.
type ScoreStore interface {
	// Get returns the stored value for key.
	Get(ctx context.Context, key string) (int64, error)

	// Set replaces the stored value for key.
	Set(ctx context.Context, key string, value int64) error
}
