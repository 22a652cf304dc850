package ports

import "context"

// AccountPort updates the public profile shown next to a player's scores.
type AccountPort interface {
	// UpdateProfile sets the username and display name of userID.
	UpdateProfile(ctx context.Context, userID, username, displayName string) error
}
