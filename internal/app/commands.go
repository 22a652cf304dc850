package app

import (
	"fmt"

	"tripeaks/internal/domain"
)

// RevealNextCard turns the top deck card onto the waste. It does nothing
// when the deck is empty.
func (e *Engine) RevealNextCard() ([]Event, error) {
	if err := e.requirePlaying(); err != nil {
		return nil, err
	}
	card, err := e.deck.DealTop()
	if err != nil {
		return nil, nil
	}
	card.Revealed = true
	e.waste.Push(card)
	e.undo = append(e.undo, UndoEntry{Kind: MoveRevealFromDeck, SlotID: -1})

	return []Event{{Kind: EventCardRevealed, Payload: CardRevealedPayload{Card: *card}}}, nil
}

// AttemptMatch moves the card in slotID onto the waste if it is face up
// and one rank above or below the waste top, or the waste top is wild.
func (e *Engine) AttemptMatch(slotID int) ([]Event, error) {
	if err := e.requirePlaying(); err != nil {
		return nil, err
	}
	slot, err := e.board.Slot(slotID)
	if err != nil {
		return nil, err
	}
	card := slot.Card()
	if card == nil {
		return nil, domain.ErrSlotEmpty
	}
	if !card.Revealed || !e.board.Revealable(slotID) {
		return nil, fmt.Errorf("%w: slot %d is covered", domain.ErrIllegalMove, slotID)
	}
	top, err := e.waste.PeekTop()
	if err != nil {
		return nil, fmt.Errorf("%w: nothing to match against", domain.ErrIllegalMove)
	}
	if !card.CanPlayOn(top) {
		return nil, fmt.Errorf("%w: %s does not play on %s", domain.ErrIllegalMove, card, top)
	}

	_, _ = slot.TakeCard()
	e.waste.Push(card)
	e.board.RefreshReveals()

	points := e.rules.PointsPerCardTakenFromBoard
	coins := e.rules.CoinsPerCardTakenFromBoard
	e.undo = append(e.undo, UndoEntry{Kind: MoveTakeFromSlot, SlotID: slotID, Points: points, Coins: coins})
	e.state.Score += points
	e.state.Coins += coins
	e.state.CoinsCollected += coins

	return []Event{{
		Kind:    EventCardMatched,
		Payload: CardMatchedPayload{SlotID: slotID, Card: *card, Points: points, Coins: coins},
	}}, nil
}

// Undo reverses the most recent reveal or match for a coin cost. Wild
// cards on top of the waste are destroyed first because they have no
// origin to return to. Undoing a match takes back its points and coins.
func (e *Engine) Undo() ([]Event, error) {
	if err := e.requirePlaying(); err != nil {
		return nil, err
	}
	if len(e.undo) == 0 {
		return nil, fmt.Errorf("%w: nothing to undo", domain.ErrInvalidState)
	}

	entry := e.undo[len(e.undo)-1]
	cost := e.rules.CostForUndo
	if err := e.requireCoins(cost + entry.Coins); err != nil {
		return nil, err
	}

	wilds := 0
	waste := e.waste.Cards()
	for wilds < len(waste) && waste[wilds].Kind == domain.Wild {
		wilds++
	}
	if wilds == len(waste) {
		return nil, domain.ErrWasteEmpty
	}
	var slot *domain.Slot
	if entry.Kind == MoveTakeFromSlot {
		s, err := e.board.Slot(entry.SlotID)
		if err != nil {
			return nil, err
		}
		if s.Occupied() {
			return nil, domain.ErrSlotOccupied
		}
		slot = s
	}

	e.state.Coins -= cost
	events := make([]Event, 0, wilds+1)
	for i := 0; i < wilds; i++ {
		card, _ := e.waste.Pop()
		events = append(events, Event{Kind: EventCardDiscarded, Payload: CardDiscardedPayload{Card: *card}})
	}

	e.undo = e.undo[:len(e.undo)-1]
	card, _ := e.waste.Pop()
	switch entry.Kind {
	case MoveRevealFromDeck:
		card.Revealed = false
		e.deck.PushTop(card)
	case MoveTakeFromSlot:
		_ = slot.PlaceCard(card)
		e.board.RefreshReveals()
		e.state.Score -= entry.Points
		e.state.Coins -= entry.Coins
		e.state.CoinsCollected -= entry.Coins
	}

	events = append(events, Event{
		Kind:    EventMoveUndone,
		Payload: MoveUndonePayload{Move: entry.Kind, SlotID: entry.SlotID, Card: *card},
	})
	return events, nil
}

// ShuffleBoard returns every board card to the deck, shuffles the deck
// and deals the same slots again.
func (e *Engine) ShuffleBoard() ([]Event, error) {
	if err := e.requirePlaying(); err != nil {
		return nil, err
	}
	if err := e.requireCoins(e.rules.CostForShuffle); err != nil {
		return nil, err
	}
	e.state.Coins -= e.rules.CostForShuffle

	slots := e.board.Slots()
	var occupied []*domain.Slot
	for i := len(slots) - 1; i >= 0; i-- {
		card, err := slots[i].TakeCard()
		if err != nil {
			continue
		}
		card.Revealed = false
		e.deck.PushTop(card)
		occupied = append(occupied, slots[i])
	}

	e.deck.Shuffle(e.rng)

	placements := make([]CardDealtPayload, 0, len(occupied))
	for i := len(occupied) - 1; i >= 0; i-- {
		card, _ := e.deck.DealTop() // the deck holds at least the cards just returned
		_ = occupied[i].PlaceCard(card)
		placements = append(placements, CardDealtPayload{SlotID: occupied[i].ID})
	}
	e.board.RefreshReveals()
	for i := range placements {
		slot, _ := e.board.Slot(placements[i].SlotID)
		placements[i].Card = *slot.Card()
	}

	return []Event{{Kind: EventBoardShuffled, Payload: BoardShuffledPayload{Placements: placements}}}, nil
}

// GenerateWildCard puts a new face-up wild card on the waste.
func (e *Engine) GenerateWildCard() ([]Event, error) {
	if err := e.requirePlaying(); err != nil {
		return nil, err
	}
	if err := e.requireCoins(e.rules.CostForWildCard); err != nil {
		return nil, err
	}
	e.state.Coins -= e.rules.CostForWildCard

	card := e.deck.CreateCard(domain.Ace, domain.Spades, domain.Wild)
	card.Generated = true
	card.Revealed = true
	e.waste.Push(card)

	return []Event{{Kind: EventWildCardGenerated, Payload: WildCardGeneratedPayload{Card: *card}}}, nil
}

// AddExtraCards puts n new random cards on top of the deck.
func (e *Engine) AddExtraCards(n int) ([]Event, error) {
	if err := e.requirePlaying(); err != nil {
		return nil, err
	}
	if n < 1 {
		return nil, domain.ErrInvalidAmount
	}
	if err := e.requireCoins(e.rules.CostForExtraCards); err != nil {
		return nil, err
	}
	e.state.Coins -= e.rules.CostForExtraCards

	added := make([]domain.Card, 0, n)
	for i := 0; i < n; i++ {
		rank := domain.Rank(e.rng.Intn(domain.NumRanks))
		suit := domain.Suit(e.rng.Intn(domain.NumSuits))
		card := e.deck.CreateCard(rank, suit, domain.Normal)
		card.Generated = true
		e.deck.PushTop(card)
		added = append(added, *card)
	}

	return []Event{{Kind: EventExtraCardsAdded, Payload: ExtraCardsAddedPayload{Cards: added}}}, nil
}

// AddExtraTime extends the round clock.
func (e *Engine) AddExtraTime(seconds float64) ([]Event, error) {
	if err := e.requirePlaying(); err != nil {
		return nil, err
	}
	if seconds <= 0 {
		return nil, domain.ErrInvalidAmount
	}
	if err := e.requireCoins(e.rules.CostForExtraTime); err != nil {
		return nil, err
	}
	e.state.Coins -= e.rules.CostForExtraTime
	e.state.TimeRemaining += seconds

	return []Event{{
		Kind:    EventExtraTimeAdded,
		Payload: ExtraTimeAddedPayload{Seconds: seconds, TimeRemaining: e.state.TimeRemaining},
	}}, nil
}
