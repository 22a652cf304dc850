package bot

import (
	"tripeaks/internal/app"
)

// MoveKind is the action a bot chooses.
type MoveKind int

const (
	// MoveMatch plays the card in SlotID onto the waste.
	MoveMatch MoveKind = iota
	// MoveReveal turns the next deck card onto the waste.
	MoveReveal
	// MoveWildCard buys a wild card for the waste.
	MoveWildCard
	// MoveEndRound gives up once nothing else can be played.
	MoveEndRound
)

func (k MoveKind) String() string {
	switch k {
	case MoveMatch:
		return "match"
	case MoveReveal:
		return "reveal"
	case MoveWildCard:
		return "wild_card"
	default:
		return "end_round"
	}
}

// Move represents the decision made by the AI.
type Move struct {
	Kind   MoveKind
	SlotID int
}

// Brain is the interface that all bot strategies must implement.
type Brain interface {
	CalculateMove(snap app.Snapshot) Move
}
