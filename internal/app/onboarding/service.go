package onboarding

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"tripeaks/internal/ports"
)

// Result captures non-fatal onboarding outcomes.
type Result struct {
	// ProfileUpdateErr is set when the profile update failed but onboarding continued.
	ProfileUpdateErr error
	// WelcomeBonusGranted is false when the account already had its starting coins.
	WelcomeBonusGranted bool
}

// Service handles post-auth onboarding for new players.
type Service struct {
	accounts      ports.AccountPort
	bonuses       ports.WelcomeBonusPort
	startingCoins int64
	rng           *rand.Rand
}

// NewService constructs an onboarding service.
// accounts/bonuses must be non-nil; rng may be nil to use a time-seeded default.
func NewService(accounts ports.AccountPort, bonuses ports.WelcomeBonusPort, startingCoins int64, rng *rand.Rand) *Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Service{
		accounts:      accounts,
		bonuses:       bonuses,
		startingCoins: startingCoins,
		rng:           rng,
	}
}

// OnboardNewUser gives a new account a friendly name and its starting
// coins. Profile failures are reported in Result; a failed coin grant is
// returned as an error.
func (s *Service) OnboardNewUser(ctx context.Context, userID string) (Result, error) {
	if s.accounts == nil || s.bonuses == nil {
		return Result{}, fmt.Errorf("onboarding service not configured")
	}

	result := Result{}
	displayName := s.generateFriendlyName()
	if err := s.accounts.UpdateProfile(ctx, userID, displayName, displayName); err != nil {
		result.ProfileUpdateErr = err
	}

	if s.startingCoins <= 0 {
		return result, nil
	}
	granted, err := s.bonuses.GrantWelcomeBonusOnce(ctx, userID, s.startingCoins, map[string]interface{}{
		"reason": "starting_coins",
	})
	if err != nil {
		return result, fmt.Errorf("failed to grant starting coins: %w", err)
	}
	result.WelcomeBonusGranted = granted

	return result, nil
}

func (s *Service) generateFriendlyName() string {
	adjectives := []string{"Lucky", "Nimble", "Steady", "Sunny", "Quick", "Patient", "Clever", "Bold", "Merry", "Keen"}
	nouns := []string{"Climber", "Summit", "Ridge", "Valley", "Ranger", "Sherpa", "Condor", "Ibex", "Marmot", "Lynx"}

	adj := adjectives[s.rng.Intn(len(adjectives))]
	noun := nouns[s.rng.Intn(len(nouns))]
	num := s.rng.Intn(9000) + 1000

	return fmt.Sprintf("%s%s%d", adj, noun, num)
}
