package app

import "tripeaks/internal/domain"

// EventKind identifies a card movement or round change produced by a
// command. The presentation layer replays events as animations.
type EventKind string

const (
	EventRoundStarted      EventKind = "round_started"
	EventCardDealt         EventKind = "card_dealt"
	EventCardRevealed      EventKind = "card_revealed"
	EventCardMatched       EventKind = "card_matched"
	EventMoveUndone        EventKind = "move_undone"
	EventCardDiscarded     EventKind = "card_discarded"
	EventBoardShuffled     EventKind = "board_shuffled"
	EventWildCardGenerated EventKind = "wild_card_generated"
	EventExtraCardsAdded   EventKind = "extra_cards_added"
	EventExtraTimeAdded    EventKind = "extra_time_added"
)

// Event is an engine event with its payload.
type Event struct {
	Kind    EventKind
	Payload any
}

type RoundStartedPayload struct {
	Round         int
	Lives         int
	TimeRemaining float64
	Slots         int
}

type CardDealtPayload struct {
	SlotID int
	Card   domain.Card
}

type CardRevealedPayload struct {
	Card domain.Card
}

type CardMatchedPayload struct {
	SlotID int
	Card   domain.Card
	Points int64
	Coins  int64
}

type MoveUndonePayload struct {
	Move   MoveKind
	SlotID int // -1 for deck reveals
	Card   domain.Card
}

type CardDiscardedPayload struct {
	Card domain.Card
}

type BoardShuffledPayload struct {
	Placements []CardDealtPayload
}

type WildCardGeneratedPayload struct {
	Card domain.Card
}

type ExtraCardsAddedPayload struct {
	Cards []domain.Card
}

type ExtraTimeAddedPayload struct {
	Seconds       float64
	TimeRemaining float64
}
