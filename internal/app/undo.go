package app

// MoveKind is a reversible player action.
type MoveKind string

const (
	MoveRevealFromDeck MoveKind = "reveal_from_deck"
	MoveTakeFromSlot   MoveKind = "take_from_slot"
)

// UndoEntry records one reversible move and the rewards it granted, so
// that undoing a match also takes the points and coins back.
type UndoEntry struct {
	Kind   MoveKind
	SlotID int // -1 unless Kind is MoveTakeFromSlot
	Points int64
	Coins  int64
}
