package bot

import (
	"context"
	"errors"
	"fmt"

	"tripeaks/internal/app"
	"tripeaks/internal/domain"
)

// maxSteps bounds PlayRound against a brain that never finishes.
const maxSteps = 10000

// ErrNoProgress is returned when a round does not end within maxSteps.
var ErrNoProgress = errors.New("bot made no progress")

// Agent represents an autonomous player driving one engine.
type Agent struct {
	ID       string
	Name     string
	Strategy Brain
}

// Step asks the strategy for a move and applies it. A wild card the
// player cannot afford is replaced by ending the round.
func (a *Agent) Step(ctx context.Context, engine *app.Engine) (Move, []app.Event, *app.RoundResult, error) {
	move := a.Strategy.CalculateMove(engine.Snapshot())

	var (
		events []app.Event
		result *app.RoundResult
		err    error
	)
	switch move.Kind {
	case MoveMatch:
		events, err = engine.AttemptMatch(move.SlotID)
	case MoveReveal:
		events, err = engine.RevealNextCard()
	case MoveWildCard:
		events, err = engine.GenerateWildCard()
		if errors.Is(err, domain.ErrInsufficientCurrency) {
			move = Move{Kind: MoveEndRound}
			result, err = engine.EndRound(ctx)
		}
	case MoveEndRound:
		result, err = engine.EndRound(ctx)
	default:
		err = fmt.Errorf("unknown move kind %d", move.Kind)
	}
	if err != nil {
		return move, nil, nil, fmt.Errorf("agent %s: %s: %w", a.ID, move.Kind, err)
	}
	return move, events, result, nil
}

// PlayRound plays the current round to its end. Each move is followed by
// a clock tick of stepSeconds.
func (a *Agent) PlayRound(ctx context.Context, engine *app.Engine, stepSeconds float64) (app.RoundResult, error) {
	for i := 0; i < maxSteps; i++ {
		if err := ctx.Err(); err != nil {
			return app.RoundResult{}, err
		}
		if engine.Phase() != app.PhasePlaying {
			return app.RoundResult{}, fmt.Errorf("%w: round is %s", domain.ErrInvalidState, engine.Phase())
		}

		_, _, result, err := a.Step(ctx, engine)
		if err != nil {
			return app.RoundResult{}, err
		}
		if result != nil {
			return *result, nil
		}

		result, err = engine.Tick(ctx, stepSeconds)
		if err != nil {
			return app.RoundResult{}, err
		}
		if result != nil {
			return *result, nil
		}
	}
	return app.RoundResult{}, ErrNoProgress
}
