package app

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"tripeaks/internal/config"
	"tripeaks/internal/domain"
	"tripeaks/internal/ports"
	"tripeaks/internal/ports/memory"
)

// Phase is the round lifecycle stage.
type Phase string

const (
	PhaseSetup    Phase = "setup"
	PhaseDealing  Phase = "dealing"
	PhasePlaying  Phase = "playing"
	PhaseRoundEnd Phase = "round_end"
)

// Outcome of the current round.
type Outcome string

const (
	OutcomeInProgress Outcome = "in_progress"
	OutcomeWon        Outcome = "won"
	OutcomeLost       Outcome = "lost"
)

// RoundState is the player-facing state of the current round.
type RoundState struct {
	Round          int
	Lives          int
	Score          int64
	Coins          int64
	CoinsCollected int64 // coins earned from matches this round
	HighScore      int64
	TimeRemaining  float64
	Paused         bool
	Outcome        Outcome
}

// Engine runs TriPeaks rounds. It owns every card and is not safe for
// concurrent use: callers apply one command at a time.
type Engine struct {
	rules config.GameConfig
	level config.Level
	store ports.ScoreStore
	rng   *rand.Rand

	deck  *domain.Deck
	waste *domain.Waste
	board *domain.Board

	phase  Phase
	state  RoundState
	undo   []UndoEntry
	result *RoundResult

	// finishPending is set while a decided round waits for its totals to
	// be saved. The clock stays stopped until the save succeeds.
	finishPending bool
}

// NewEngine constructs an Engine. A nil store keeps values in memory and a
// nil rng uses a time-seeded default.
func NewEngine(rules config.GameConfig, store ports.ScoreStore, rng *rand.Rand) *Engine {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if store == nil {
		store = memory.NewStore(nil)
	}
	return &Engine{
		rules: rules,
		store: store,
		rng:   rng,
		deck:  domain.NewDeck(),
		waste: domain.NewWaste(),
		phase: PhaseSetup,
	}
}

// Start prepares the first round of level and deals it.
func (e *Engine) Start(ctx context.Context, level config.Level) ([]Event, error) {
	if err := e.Prepare(ctx, level); err != nil {
		return nil, err
	}
	return e.Deal()
}

// Prepare runs Setup for the first round of level: it loads the stored
// coin balance and high score, builds the deck and arranges the board.
// The board is not dealt until Deal is called, so ArrangeBoard and
// GenerateDeck may still override the level's choices.
func (e *Engine) Prepare(ctx context.Context, level config.Level) error {
	if e.phase != PhaseSetup || e.board != nil {
		return fmt.Errorf("%w: engine already started", domain.ErrInvalidState)
	}
	if err := level.Validate(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidLayoutParams, err)
	}
	coins, high, err := e.loadTotals(ctx)
	if err != nil {
		return err
	}
	e.level = level
	e.state = RoundState{Round: level.Round}
	return e.setup(coins, high)
}

// SetLevel changes the level used by the next Restart.
func (e *Engine) SetLevel(level config.Level) error {
	if e.phase != PhaseRoundEnd {
		return fmt.Errorf("%w: level can only change between rounds", domain.ErrInvalidState)
	}
	if err := level.Validate(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidLayoutParams, err)
	}
	e.level = level
	return nil
}

// ArrangeBoard replaces the undealt board with one built from params.
func (e *Engine) ArrangeBoard(params domain.LayoutParams) error {
	if e.phase != PhaseSetup || e.board == nil {
		return fmt.Errorf("%w: board can only be arranged during setup", domain.ErrInvalidState)
	}
	board, err := domain.Arrange(params)
	if err != nil {
		return err
	}
	e.board = board
	return nil
}

// GenerateDeck replaces the undealt deck with deckCount fresh standard decks.
func (e *Engine) GenerateDeck(deckCount int) error {
	if e.phase != PhaseSetup || e.board == nil {
		return fmt.Errorf("%w: deck can only be generated during setup", domain.ErrInvalidState)
	}
	return e.deck.Generate(deckCount)
}

// Deal shuffles the deck, deals one card into every slot in slot order
// while cards remain, reveals the uncovered cards and turns the first
// waste card. The round is then in play.
func (e *Engine) Deal() ([]Event, error) {
	if e.phase != PhaseSetup || e.board == nil {
		return nil, fmt.Errorf("%w: nothing to deal", domain.ErrInvalidState)
	}
	e.phase = PhaseDealing
	e.deck.Shuffle(e.rng)

	events := []Event{{
		Kind: EventRoundStarted,
		Payload: RoundStartedPayload{
			Round:         e.state.Round,
			Lives:         e.state.Lives,
			TimeRemaining: e.state.TimeRemaining,
			Slots:         e.board.Len(),
		},
	}}

	for _, slot := range e.board.Slots() {
		card, err := e.deck.DealTop()
		if err != nil {
			break
		}
		_ = slot.PlaceCard(card) // slots are empty during setup
		events = append(events, Event{Kind: EventCardDealt, Payload: CardDealtPayload{SlotID: slot.ID, Card: *card}})
	}
	e.board.RefreshReveals()

	if card, err := e.deck.DealTop(); err == nil {
		card.Revealed = true
		e.waste.Push(card)
		events = append(events, Event{Kind: EventCardRevealed, Payload: CardRevealedPayload{Card: *card}})
	}

	e.phase = PhasePlaying
	return events, nil
}

// Restart collects the cards of a finished round, applies the round
// progression rules and deals the next round. Generated cards are
// destroyed; all others return to the deck face down.
func (e *Engine) Restart(ctx context.Context) ([]Event, error) {
	if e.phase != PhaseRoundEnd {
		return nil, fmt.Errorf("%w: round still in progress", domain.ErrInvalidState)
	}
	coins, high, err := e.loadTotals(ctx)
	if err != nil {
		return nil, err
	}

	for _, slot := range e.board.Slots() {
		if card, err := slot.TakeCard(); err == nil {
			e.recycle(card)
		}
	}
	for e.waste.Len() > 0 {
		card, _ := e.waste.Pop()
		e.recycle(card)
	}
	e.deck.RemoveGenerated()

	switch {
	case e.state.Outcome == OutcomeWon:
		e.state.Round++
	case e.state.Lives > 0:
		e.state.Lives--
	default:
		e.state.Score = 0
		e.state.Round = 1
	}

	if err := e.setup(coins, high); err != nil {
		return nil, err
	}
	return e.Deal()
}

// NextRound returns the round Restart will deal once the current round
// has ended.
func (e *Engine) NextRound() int {
	switch {
	case e.state.Outcome == OutcomeWon:
		return e.state.Round + 1
	case e.state.Lives > 0:
		return e.state.Round
	default:
		return 1
	}
}

// SetPaused pauses or resumes play. Paused rounds reject commands and do
// not consume time.
func (e *Engine) SetPaused(paused bool) error {
	if e.phase != PhasePlaying || e.state.Outcome != OutcomeInProgress {
		return fmt.Errorf("%w: no round in play", domain.ErrInvalidState)
	}
	e.state.Paused = paused
	return nil
}

func (e *Engine) recycle(card *domain.Card) {
	if card.Generated {
		return
	}
	card.Revealed = false
	e.deck.PushTop(card)
}

func (e *Engine) loadTotals(ctx context.Context) (coins, high int64, err error) {
	if coins, err = e.store.Get(ctx, ports.KeyCoins); err != nil {
		return 0, 0, fmt.Errorf("failed to load coins: %w", err)
	}
	if high, err = e.store.Get(ctx, ports.KeyHighScore); err != nil {
		return 0, 0, fmt.Errorf("failed to load high score: %w", err)
	}
	return coins, high, nil
}

// setup resets per-round state and arranges a fresh board. All cards must
// already be back in the deck.
func (e *Engine) setup(coins, high int64) error {
	board, err := domain.Arrange(e.level.Board)
	if err != nil {
		return err
	}
	if e.deck.Len() != e.level.NumDecks*domain.CardsPerDeck {
		if err := e.deck.Generate(e.level.NumDecks); err != nil {
			return err
		}
	}

	e.board = board
	e.undo = nil
	e.result = nil
	e.finishPending = false
	e.state.Coins = coins
	e.state.HighScore = high
	e.state.CoinsCollected = 0
	e.state.TimeRemaining = e.level.RoundTime
	e.state.Paused = false
	e.state.Outcome = OutcomeInProgress
	e.phase = PhaseSetup
	return nil
}

// requirePlaying guards every player command.
func (e *Engine) requirePlaying() error {
	if e.phase != PhasePlaying || e.state.Outcome != OutcomeInProgress {
		return fmt.Errorf("%w: no round in play", domain.ErrInvalidState)
	}
	if e.state.Paused {
		return fmt.Errorf("%w: paused", domain.ErrInvalidState)
	}
	return nil
}

func (e *Engine) requireCoins(cost int64) error {
	if e.state.Coins < cost {
		return fmt.Errorf("%w: need %d, have %d", domain.ErrInsufficientCurrency, cost, e.state.Coins)
	}
	return nil
}
