package bot

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"tripeaks/internal/app"
	"tripeaks/internal/config"
	"tripeaks/internal/domain"
	"tripeaks/internal/ports"
	"tripeaks/internal/ports/memory"
)

func newEngine(t *testing.T, seed int64, coins int64) *app.Engine {
	t.Helper()
	store := memory.NewStore(map[string]int64{ports.KeyCoins: coins})
	engine := app.NewEngine(config.Default(), store, rand.New(rand.NewSource(seed)))
	if _, err := engine.Start(context.Background(), config.DefaultLevel()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	return engine
}

type scriptedBrain struct {
	moves []Move
}

func (s *scriptedBrain) CalculateMove(app.Snapshot) Move {
	m := s.moves[0]
	if len(s.moves) > 1 {
		s.moves = s.moves[1:]
	}
	return m
}

func TestAgent_PlayRoundEndsRound(t *testing.T) {
	for _, level := range []BotLevel{BotLevelBasic, BotLevelGreedy} {
		for seed := int64(1); seed <= 5; seed++ {
			brain, err := NewBrain(level)
			if err != nil {
				t.Fatalf("NewBrain failed: %v", err)
			}
			agent := &Agent{ID: "bot-1", Name: "Sim", Strategy: brain}
			engine := newEngine(t, seed, 200)

			result, err := agent.PlayRound(context.Background(), engine, 0.5)
			if err != nil {
				t.Fatalf("level %d seed %d: PlayRound failed: %v", level, seed, err)
			}
			if engine.Phase() != app.PhaseRoundEnd {
				t.Fatalf("level %d seed %d: expected round end, got %s", level, seed, engine.Phase())
			}
			if result.Won != (engine.OccupiedSlots() == 0) {
				t.Fatalf("level %d seed %d: won=%t with %d cards on the board", level, seed, result.Won, engine.OccupiedSlots())
			}
		}
	}
}

func TestAgent_StepAppliesMoves(t *testing.T) {
	engine := newEngine(t, 3, 0)
	agent := &Agent{ID: "bot-1", Strategy: &scriptedBrain{moves: []Move{{Kind: MoveReveal}}}}

	move, events, result, err := agent.Step(context.Background(), engine)
	if err != nil {
		t.Fatalf("Step failed: %v", err)
	}
	if move.Kind != MoveReveal || len(events) != 1 || result != nil {
		t.Fatalf("unexpected step outcome: %+v %v %v", move, events, result)
	}
	if engine.DeckSize() != 22 {
		t.Fatalf("expected 22 cards in the deck, got %d", engine.DeckSize())
	}
}

func TestAgent_StepReportsIllegalMoves(t *testing.T) {
	engine := newEngine(t, 3, 0)
	// The last slot is at the back of a peak and always covered after the deal.
	agent := &Agent{ID: "bot-1", Strategy: &scriptedBrain{moves: []Move{{Kind: MoveMatch, SlotID: engine.BoardSize() - 1}}}}

	_, _, _, err := agent.Step(context.Background(), engine)
	if !errors.Is(err, domain.ErrIllegalMove) {
		t.Fatalf("expected ErrIllegalMove, got %v", err)
	}
}

func TestAgent_UnaffordableWildCardEndsRound(t *testing.T) {
	engine := newEngine(t, 3, 0)
	for engine.DeckSize() > 0 {
		if _, err := engine.RevealNextCard(); err != nil {
			t.Fatalf("RevealNextCard failed: %v", err)
		}
	}
	agent := &Agent{ID: "bot-1", Strategy: &scriptedBrain{moves: []Move{{Kind: MoveWildCard}}}}

	move, _, result, err := agent.Step(context.Background(), engine)
	if err != nil {
		t.Fatalf("Step failed: %v", err)
	}
	if move.Kind != MoveEndRound || result == nil || result.Won {
		t.Fatalf("expected a lost round, got %+v %+v", move, result)
	}
}

func TestAgent_PlayRoundStopsOnCancel(t *testing.T) {
	engine := newEngine(t, 3, 0)
	agent := &Agent{ID: "bot-1", Strategy: &BasicBot{}}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := agent.PlayRound(ctx, engine, 0.5); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
