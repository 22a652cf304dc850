package nakama

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"tripeaks/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
)

// NakamaScoreStore implements ports.ScoreStore for one player. Coins live
// in the Nakama wallet; every other key is a storage object.
//
// The wallet is shared by every match the player has open, so a coin Set
// applies only the change since this store last read or wrote the balance.
type NakamaScoreStore struct {
	nk       runtime.NakamaModule
	userID   string
	metadata map[string]interface{}

	mu          sync.Mutex
	coins       int64
	coinsLoaded bool
}

// NewNakamaScoreStore creates a store bound to userID. metadata is
// attached to wallet ledger entries.
func NewNakamaScoreStore(nk runtime.NakamaModule, userID string, metadata map[string]interface{}) *NakamaScoreStore {
	return &NakamaScoreStore{nk: nk, userID: userID, metadata: metadata}
}

type storedValue struct {
	Value int64 `json:"value"`
}

// Get returns the value for key, or 0 when nothing is stored.
func (s *NakamaScoreStore) Get(ctx context.Context, key string) (int64, error) {
	if key == ports.KeyCoins {
		coins, err := s.walletBalance(ctx)
		if err != nil {
			return 0, err
		}
		s.mu.Lock()
		s.coins, s.coinsLoaded = coins, true
		s.mu.Unlock()
		return coins, nil
	}

	objects, err := s.nk.StorageRead(ctx, []*runtime.StorageRead{{
		Collection: StorageCollection,
		Key:        key,
		UserID:     s.userID,
	}})
	if err != nil {
		return 0, fmt.Errorf("failed to read %s: %w", key, err)
	}
	if len(objects) == 0 {
		return 0, nil
	}

	var v storedValue
	if err := json.Unmarshal([]byte(objects[0].GetValue()), &v); err != nil {
		return 0, fmt.Errorf("failed to unmarshal %s: %w", key, err)
	}
	return v.Value, nil
}

// Set stores value under key. Coins are written as a wallet delta against
// the balance last seen by this store, so the ledger records what the round
// earned or spent and changes made by other matches are kept.
func (s *NakamaScoreStore) Set(ctx context.Context, key string, value int64) error {
	if key == ports.KeyCoins {
		return s.setCoins(ctx, value)
	}

	data, err := json.Marshal(storedValue{Value: value})
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}
	_, err = s.nk.StorageWrite(ctx, []*runtime.StorageWrite{{
		Collection:      StorageCollection,
		Key:             key,
		UserID:          s.userID,
		Value:           string(data),
		PermissionRead:  runtime.STORAGE_PERMISSION_PUBLIC_READ,
		PermissionWrite: runtime.STORAGE_PERMISSION_NO_WRITE,
	}})
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

func (s *NakamaScoreStore) setCoins(ctx context.Context, value int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.coinsLoaded {
		current, err := s.walletBalance(ctx)
		if err != nil {
			return err
		}
		s.coins, s.coinsLoaded = current, true
	}
	delta := value - s.coins
	if delta == 0 {
		return nil
	}
	if _, _, err := s.nk.WalletUpdate(ctx, s.userID, map[string]int64{ports.KeyCoins: delta}, s.metadata, true); err != nil {
		return fmt.Errorf("failed to update wallet for user %s: %w", s.userID, err)
	}
	s.coins = value
	return nil
}

func (s *NakamaScoreStore) walletBalance(ctx context.Context) (int64, error) {
	account, err := s.nk.AccountGetId(ctx, s.userID)
	if err != nil {
		return 0, fmt.Errorf("failed to get account: %w", err)
	}
	if account.GetWallet() == "" {
		return 0, nil
	}

	var wallet map[string]int64
	if err := json.Unmarshal([]byte(account.GetWallet()), &wallet); err != nil {
		return 0, fmt.Errorf("failed to unmarshal wallet: %w", err)
	}
	return wallet[ports.KeyCoins], nil
}

var _ ports.ScoreStore = (*NakamaScoreStore)(nil)
