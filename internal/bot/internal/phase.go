package internal

import "tripeaks/internal/app"

// GamePhase is a coarse stage of the round used to pick scoring weights.
type GamePhase int

const (
	PhaseOpening GamePhase = iota
	PhaseMid
	PhaseEnd
)

func (p GamePhase) String() string {
	switch p {
	case PhaseOpening:
		return "opening"
	case PhaseEnd:
		return "end"
	default:
		return "mid"
	}
}

// DetectPhase classifies the round by how much of the board is still
// occupied and how many cards remain to be dealt.
func DetectPhase(snap app.Snapshot) GamePhase {
	total := len(snap.Slots)
	if total == 0 {
		return PhaseEnd
	}
	occupied := 0
	for _, s := range snap.Slots {
		if s.Card != nil {
			occupied++
		}
	}

	switch {
	case len(snap.Deck) <= 3 || occupied*4 <= total:
		return PhaseEnd
	case occupied*4 >= total*3:
		return PhaseOpening
	default:
		return PhaseMid
	}
}
