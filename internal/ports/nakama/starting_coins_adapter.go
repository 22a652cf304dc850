package nakama

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"tripeaks/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
)

const (
	onboardingCollection = "onboarding"
	startingCoinsKey     = "starting_coins_v1"
)

// startingCoinsMarker is the storage object that records a grant.
type startingCoinsMarker struct {
	Coins     int64  `json:"coins"`
	GrantedAt string `json:"granted_at"`
}

// StartingCoinsAdapter credits a new player's first coins. The wallet
// credit and the marker object go in one MultiUpdate, and the marker is
// written with Version "*", so a player is credited at most once.
type StartingCoinsAdapter struct {
	nk  runtime.NakamaModule
	now func() time.Time
}

func NewStartingCoinsAdapter(nk runtime.NakamaModule) *StartingCoinsAdapter {
	return &StartingCoinsAdapter{nk: nk, now: time.Now}
}

// GrantWelcomeBonusOnce reports false without error when the marker
// already exists.
func (a *StartingCoinsAdapter) GrantWelcomeBonusOnce(ctx context.Context, userID string, amount int64, metadata map[string]interface{}) (bool, error) {
	switch {
	case userID == "":
		return false, errors.New("starting coins: user id is empty")
	case amount <= 0:
		return false, fmt.Errorf("starting coins: amount %d is not positive", amount)
	}

	marker, err := json.Marshal(startingCoinsMarker{
		Coins:     amount,
		GrantedAt: a.now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return false, fmt.Errorf("failed to marshal starting coins marker: %w", err)
	}

	write := &runtime.StorageWrite{
		Collection:      onboardingCollection,
		Key:             startingCoinsKey,
		UserID:          userID,
		Value:           string(marker),
		Version:         "*",
		PermissionRead:  runtime.STORAGE_PERMISSION_NO_READ,
		PermissionWrite: runtime.STORAGE_PERMISSION_NO_WRITE,
	}
	credit := &runtime.WalletUpdate{
		UserID:    userID,
		Changeset: map[string]int64{ports.KeyCoins: amount},
		Metadata:  metadata,
	}

	_, _, err = a.nk.MultiUpdate(ctx, nil, []*runtime.StorageWrite{write}, nil, []*runtime.WalletUpdate{credit}, true)
	if errors.Is(err, runtime.ErrStorageRejectedVersion) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to credit starting coins to %s: %w", userID, err)
	}
	return true, nil
}

var _ ports.WelcomeBonusPort = (*StartingCoinsAdapter)(nil)
