package app

import (
	"context"
	"fmt"
	"math"

	"tripeaks/internal/domain"
	"tripeaks/internal/ports"
)

// RoundResult summarises a finished round.
type RoundResult struct {
	Won            bool
	Round          int
	BaseScore      int64
	DeckBonus      int64
	TimeBonus      int64
	TotalScore     int64
	CoinsCollected int64
	DeckCoins      int64
	TimeCoins      int64
	TotalCoins     int64
	ExtraLife      bool
	NewHighScore   bool
}

// Tick advances the round clock by elapsed seconds and ends the round
// when the board is clear (won) or time has run out (lost). It returns
// the result when the round ends on this tick, and nil otherwise. Ticks
// outside of play, or while paused, do nothing. If saving the result
// fails, later ticks retry the save without running the clock.
func (e *Engine) Tick(ctx context.Context, elapsed float64) (*RoundResult, error) {
	if elapsed < 0 {
		return nil, domain.ErrInvalidAmount
	}
	if e.phase != PhasePlaying || e.state.Outcome != OutcomeInProgress || e.state.Paused {
		return nil, nil
	}
	if !e.finishPending {
		e.state.TimeRemaining -= elapsed
	}

	won := e.board.Cleared()
	if !won && e.state.TimeRemaining > 0 {
		e.finishPending = false
		return nil, nil
	}
	r, err := e.finish(ctx, won)
	e.finishPending = err != nil
	return r, err
}

// EndRound lets the player close a round once the deck is used up or the
// board is clear. The round is won only if the board is clear.
func (e *Engine) EndRound(ctx context.Context) (*RoundResult, error) {
	if err := e.requirePlaying(); err != nil {
		return nil, err
	}
	cleared := e.board.Cleared()
	if !cleared && e.deck.Len() > 0 {
		return nil, fmt.Errorf("%w: cards remain in the deck", domain.ErrInvalidState)
	}
	return e.finish(ctx, cleared)
}

// finish computes bonuses, persists the new totals and moves to
// RoundEnd. Nothing changes in memory if the store rejects the write.
func (e *Engine) finish(ctx context.Context, won bool) (*RoundResult, error) {
	deckSize := int64(e.deck.Len())
	seconds := int64(math.Floor(math.Max(e.state.TimeRemaining, 0)))

	r := RoundResult{
		Won:            won,
		Round:          e.state.Round,
		BaseScore:      e.state.Score,
		CoinsCollected: e.state.CoinsCollected,
	}
	if won {
		r.DeckBonus = deckSize * e.rules.PointsPerCardRemainingInDeck
		r.TimeBonus = seconds * e.rules.PointsPerSecondRemaining
		r.DeckCoins = deckSize * e.rules.CoinsPerCardRemainingInDeck
		r.TimeCoins = seconds * e.rules.CoinsPerSecondRemaining
		r.ExtraLife = e.deck.Len() >= e.rules.CardsForExtraLife
	}
	r.TotalScore = r.BaseScore + r.DeckBonus + r.TimeBonus
	r.TotalCoins = r.CoinsCollected + r.DeckCoins + r.TimeCoins
	r.NewHighScore = r.TotalScore > e.state.HighScore

	coins := e.state.Coins + r.DeckCoins + r.TimeCoins
	if err := e.store.Set(ctx, ports.KeyCoins, coins); err != nil {
		return nil, fmt.Errorf("failed to save coins: %w", err)
	}
	if r.NewHighScore {
		if err := e.store.Set(ctx, ports.KeyHighScore, r.TotalScore); err != nil {
			return nil, fmt.Errorf("failed to save high score: %w", err)
		}
		e.state.HighScore = r.TotalScore
	}

	e.state.Coins = coins
	e.state.Score = r.TotalScore
	if r.ExtraLife {
		e.state.Lives++
	}
	if won {
		e.state.Outcome = OutcomeWon
	} else {
		e.state.Outcome = OutcomeLost
		e.state.TimeRemaining = math.Max(e.state.TimeRemaining, 0)
	}
	e.phase = PhaseRoundEnd
	e.result = &r

	out := r
	return &out, nil
}
