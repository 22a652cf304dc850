package domain

// Bounds is the visual extent of a board, including half a card around
// the outermost slot centres.
type Bounds struct {
	MinX float64
	MinY float64
	MaxX float64
	MaxY float64
}

// Board is the set of slots for the current round. Slot ids index Slots()
// and follow the deal order.
type Board struct {
	Shape  Shape
	Bounds Bounds

	slots []*Slot
}

// Len returns the number of slots.
func (b *Board) Len() int {
	return len(b.slots)
}

// Slot returns the slot with the given id.
func (b *Board) Slot(id int) (*Slot, error) {
	if id < 0 || id >= len(b.slots) {
		return nil, ErrUnknownSlot
	}
	return b.slots[id], nil
}

// Slots returns the slots in deal order. The slice must not be modified.
func (b *Board) Slots() []*Slot {
	return b.slots
}

// Revealable reports whether the slot holds a card and none of its
// blockers do. This is the only authority on whether a board card may be
// face up.
func (b *Board) Revealable(id int) bool {
	s, err := b.Slot(id)
	if err != nil || !s.Occupied() {
		return false
	}
	for _, blocker := range s.Blocking {
		if b.slots[blocker].Occupied() {
			return false
		}
	}
	return true
}

// RefreshReveals sets every board card's revealed flag from Revealable.
func (b *Board) RefreshReveals() {
	for _, s := range b.slots {
		if s.card != nil {
			s.card.Revealed = b.Revealable(s.ID)
		}
	}
}

// Occupied returns the number of slots holding a card.
func (b *Board) Occupied() int {
	n := 0
	for _, s := range b.slots {
		if s.Occupied() {
			n++
		}
	}
	return n
}

// Cleared reports whether every slot is empty.
func (b *Board) Cleared() bool {
	return b.Occupied() == 0
}
