package app

import (
	"tripeaks/internal/config"
	"tripeaks/internal/domain"
)

// SlotView is a read-only copy of a slot.
type SlotView struct {
	ID         int
	Pos        domain.Position
	Blocking   []int
	Card       *domain.Card
	Revealable bool
}

// Snapshot is a read-only copy of everything the presentation layer draws.
type Snapshot struct {
	Phase  Phase
	State  RoundState
	Bounds domain.Bounds
	Slots  []SlotView
	Deck   []domain.Card // front first
	Waste  []domain.Card // top first
	Result *RoundResult
}

// Phase returns the lifecycle stage.
func (e *Engine) Phase() Phase { return e.phase }

// State returns a copy of the round state.
func (e *Engine) State() RoundState { return e.state }

// Level returns the level being played.
func (e *Engine) Level() config.Level { return e.level }

// DeckSize returns the number of cards left to deal.
func (e *Engine) DeckSize() int { return e.deck.Len() }

// WasteSize returns the number of cards on the waste.
func (e *Engine) WasteSize() int { return e.waste.Len() }

// BoardSize returns the number of slots on the board.
func (e *Engine) BoardSize() int {
	if e.board == nil {
		return 0
	}
	return e.board.Len()
}

// OccupiedSlots returns the number of slots holding a card.
func (e *Engine) OccupiedSlots() int {
	if e.board == nil {
		return 0
	}
	return e.board.Occupied()
}

// CardsInPlay returns the number of cards across deck, waste and board.
func (e *Engine) CardsInPlay() int {
	return e.DeckSize() + e.WasteSize() + e.OccupiedSlots()
}

// UndoDepth returns the number of moves that can be undone.
func (e *Engine) UndoDepth() int { return len(e.undo) }

// WasteTop returns a copy of the waste top card.
func (e *Engine) WasteTop() (domain.Card, bool) {
	top, err := e.waste.PeekTop()
	if err != nil {
		return domain.Card{}, false
	}
	return *top, true
}

// Slot returns a copy of one slot.
func (e *Engine) Slot(id int) (SlotView, error) {
	if e.board == nil {
		return SlotView{}, domain.ErrUnknownSlot
	}
	s, err := e.board.Slot(id)
	if err != nil {
		return SlotView{}, err
	}
	return e.viewSlot(s), nil
}

// LastResult returns the result of the round that just ended, if any.
func (e *Engine) LastResult() (RoundResult, bool) {
	if e.result == nil {
		return RoundResult{}, false
	}
	return *e.result, true
}

// Snapshot copies the full engine state.
func (e *Engine) Snapshot() Snapshot {
	snap := Snapshot{
		Phase: e.phase,
		State: e.state,
		Deck:  e.deck.Cards(),
		Waste: e.waste.Cards(),
	}
	if e.result != nil {
		r := *e.result
		snap.Result = &r
	}
	if e.board != nil {
		snap.Bounds = e.board.Bounds
		snap.Slots = make([]SlotView, 0, e.board.Len())
		for _, s := range e.board.Slots() {
			snap.Slots = append(snap.Slots, e.viewSlot(s))
		}
	}
	return snap
}

func (e *Engine) viewSlot(s *domain.Slot) SlotView {
	v := SlotView{
		ID:         s.ID,
		Pos:        s.Pos,
		Blocking:   append([]int(nil), s.Blocking...),
		Revealable: e.board.Revealable(s.ID),
	}
	if c := s.Card(); c != nil {
		card := *c
		v.Card = &card
	}
	return v
}
