package bot

import (
	"tripeaks/internal/app"
	botinternal "tripeaks/internal/bot/internal"
)

// GreedyBot scores every playable card by the run it starts and the cards
// it uncovers, weighted by the phase of the round. When the deck is empty
// it buys a wild card if the balance allows.
type GreedyBot struct {
	Tuning botinternal.BotTuning
}

func (b *GreedyBot) CalculateMove(snap app.Snapshot) Move {
	if snap.Phase != app.PhasePlaying {
		return Move{Kind: MoveEndRound}
	}

	if len(snap.Waste) > 0 {
		pos := botinternal.NewPosition(snap)
		weights := b.Tuning.ForPhase(botinternal.DetectPhase(snap))
		scored := botinternal.BuildScoredMoves(pos, snap.Waste[0], weights, b.Tuning.MaxChainDepth)
		if len(scored) > 0 {
			return Move{Kind: MoveMatch, SlotID: scored[0].SlotID}
		}
	}

	if len(snap.Deck) > 0 {
		return Move{Kind: MoveReveal}
	}
	if b.Tuning.WildCardReserve >= 0 && snap.State.Coins > b.Tuning.WildCardReserve && hasCards(snap) {
		return Move{Kind: MoveWildCard}
	}
	return Move{Kind: MoveEndRound}
}

func hasCards(snap app.Snapshot) bool {
	for _, s := range snap.Slots {
		if s.Card != nil {
			return true
		}
	}
	return false
}
