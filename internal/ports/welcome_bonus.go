package ports

import "context"

// WelcomeBonusPort grants the starting coin balance at most once per user.
type WelcomeBonusPort interface {
	// GrantWelcomeBonusOnce credits amount coins unless the user already
	// received them. Returns granted=false when the bonus was already granted.
	GrantWelcomeBonusOnce(ctx context.Context, userID string, amount int64, metadata map[string]interface{}) (bool, error)
}
