package bot

import (
	"tripeaks/internal/app"
	botinternal "tripeaks/internal/bot/internal"
)

// BasicBot plays the first matching card it finds and otherwise turns the
// deck. It never spends coins.
type BasicBot struct{}

func (b *BasicBot) CalculateMove(snap app.Snapshot) Move {
	if snap.Phase != app.PhasePlaying {
		return Move{Kind: MoveEndRound}
	}
	if len(snap.Waste) > 0 {
		pos := botinternal.NewPosition(snap)
		if ids := pos.Candidates(snap.Waste[0]); len(ids) > 0 {
			return Move{Kind: MoveMatch, SlotID: ids[0]}
		}
	}
	if len(snap.Deck) > 0 {
		return Move{Kind: MoveReveal}
	}
	return Move{Kind: MoveEndRound}
}
