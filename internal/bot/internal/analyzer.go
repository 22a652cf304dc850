package internal

import (
	"sort"

	"tripeaks/internal/app"
	"tripeaks/internal/domain"
)

// Position is the board as a player sees it. Face-down cards are known to
// be present but never used for planning.
type Position struct {
	cards    map[int]domain.Card
	blocking map[int][]int
	covers   map[int]int
	layers   map[int]float64
}

// NewPosition builds a Position from an engine snapshot.
func NewPosition(snap app.Snapshot) *Position {
	p := &Position{
		cards:    make(map[int]domain.Card),
		blocking: make(map[int][]int, len(snap.Slots)),
		covers:   make(map[int]int, len(snap.Slots)),
		layers:   make(map[int]float64, len(snap.Slots)),
	}
	for _, s := range snap.Slots {
		p.blocking[s.ID] = s.Blocking
		p.layers[s.ID] = s.Pos.Layer
		if s.Card != nil {
			p.cards[s.ID] = *s.Card
		}
		for _, b := range s.Blocking {
			p.covers[b]++
		}
	}
	return p
}

// Occupied returns the number of slots holding a card.
func (p *Position) Occupied() int {
	return len(p.cards)
}

// Visible returns the ids of face-up board cards in ascending order.
func (p *Position) Visible() []int {
	ids := make([]int, 0, len(p.cards))
	for id, c := range p.cards {
		if c.Revealed {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)
	return ids
}

// Candidates returns the face-up cards that play on top, in ascending id.
func (p *Position) Candidates(top domain.Card) []int {
	var ids []int
	for _, id := range p.Visible() {
		c := p.cards[id]
		if c.CanPlayOn(&top) {
			ids = append(ids, id)
		}
	}
	return ids
}

// Uncovers returns how many slots become free of blockers once id is
// emptied.
func (p *Position) Uncovers(id int) int {
	n := 0
	for sid, blockers := range p.blocking {
		if _, ok := p.cards[sid]; !ok || !contains(blockers, id) {
			continue
		}
		free := true
		for _, b := range blockers {
			if b == id {
				continue
			}
			if _, ok := p.cards[b]; ok {
				free = false
				break
			}
		}
		if free {
			n++
		}
	}
	return n
}

// Covers returns how many slots id blocks on the full board.
func (p *Position) Covers(id int) int {
	return p.covers[id]
}

// Layer returns the layer of slot id.
func (p *Position) Layer(id int) float64 {
	return p.layers[id]
}

// Chain returns the length of the longest run of face-up cards that can be
// played starting with id, counting id itself. Search stops at maxDepth.
// Face-down and empty slots start no run.
func (p *Position) Chain(id int, maxDepth int) int {
	start, ok := p.cards[id]
	if !ok || !start.Revealed || maxDepth <= 0 {
		return 0
	}
	visible := p.Visible()
	used := map[int]bool{id: true}
	return 1 + p.extend(start, visible, used, maxDepth-1)
}

func (p *Position) extend(top domain.Card, visible []int, used map[int]bool, depth int) int {
	if depth == 0 {
		return 0
	}
	best := 0
	for _, id := range visible {
		if used[id] {
			continue
		}
		c := p.cards[id]
		if !c.CanPlayOn(&top) {
			continue
		}
		used[id] = true
		if n := 1 + p.extend(c, visible, used, depth-1); n > best {
			best = n
		}
		used[id] = false
		if best == depth {
			break
		}
	}
	return best
}

func contains(ids []int, id int) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
