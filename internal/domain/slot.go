package domain

// Position places a slot on the board. Lower Layer values are closer to
// the viewer.
type Position struct {
	X     float64
	Y     float64
	Layer float64
}

// Slot is a board cell holding at most one card.
type Slot struct {
	ID  int
	Pos Position
	// Blocking lists the ids of slots whose cards cover this one. It is
	// fixed when the board is arranged.
	Blocking []int

	card *Card
}

// PlaceCard puts card into an empty slot.
func (s *Slot) PlaceCard(card *Card) error {
	if s.card != nil {
		return ErrSlotOccupied
	}
	s.card = card
	return nil
}

// TakeCard removes and returns the slot's card.
func (s *Slot) TakeCard() (*Card, error) {
	if s.card == nil {
		return nil, ErrSlotEmpty
	}
	card := s.card
	s.card = nil
	return card, nil
}

// Card returns the card in the slot, or nil.
func (s *Slot) Card() *Card {
	return s.card
}

// Occupied reports whether the slot holds a card.
func (s *Slot) Occupied() bool {
	return s.card != nil
}
