package internal

import (
	"sort"

	"tripeaks/internal/domain"
)

// PhaseWeights tune move scoring for a specific phase.
type PhaseWeights struct {
	ChainWeight   float64
	UncoverWeight float64
	CoverWeight   float64
	LayerWeight   float64
}

// BotTuning defines phase weights and thresholds for a bot difficulty.
type BotTuning struct {
	Opening       PhaseWeights
	Mid           PhaseWeights
	End           PhaseWeights
	MaxChainDepth int
	// WildCardReserve is the coin balance kept back when buying a wild
	// card to get unstuck. Negative disables wild cards.
	WildCardReserve int64
}

// ForPhase returns the weights that match the supplied phase.
func (t BotTuning) ForPhase(phase GamePhase) PhaseWeights {
	switch phase {
	case PhaseOpening:
		return t.Opening
	case PhaseEnd:
		return t.End
	default:
		return t.Mid
	}
}

// ScoredMove is a candidate match with its evaluation.
type ScoredMove struct {
	SlotID    int
	Chain     int
	Uncovered int
	Score     float64
}

// BuildScoredMoves evaluates every candidate and returns them best first.
// Ties go to the lower slot id.
func BuildScoredMoves(pos *Position, top domain.Card, weights PhaseWeights, maxDepth int) []ScoredMove {
	candidates := pos.Candidates(top)
	scored := make([]ScoredMove, 0, len(candidates))
	for _, id := range candidates {
		m := ScoredMove{
			SlotID:    id,
			Chain:     pos.Chain(id, maxDepth),
			Uncovered: pos.Uncovers(id),
		}
		m.Score = weights.ChainWeight*float64(m.Chain) +
			weights.UncoverWeight*float64(m.Uncovered) +
			weights.CoverWeight*float64(pos.Covers(id)) +
			weights.LayerWeight*pos.Layer(id)
		scored = append(scored, m)
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].SlotID < scored[j].SlotID
	})
	return scored
}
