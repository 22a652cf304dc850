package domain

// Waste is the face-up discard pile. Index 0 is the top card, which is
// the current match target.
type Waste struct {
	cards []*Card
}

// NewWaste returns an empty waste pile.
func NewWaste() *Waste {
	return &Waste{}
}

// Push places card on top.
func (w *Waste) Push(card *Card) {
	w.cards = append(w.cards, nil)
	copy(w.cards[1:], w.cards)
	w.cards[0] = card
}

// Pop removes and returns the top card.
func (w *Waste) Pop() (*Card, error) {
	if len(w.cards) == 0 {
		return nil, ErrWasteEmpty
	}
	card := w.cards[0]
	w.cards[0] = nil
	w.cards = w.cards[1:]
	return card, nil
}

// PeekTop returns the top card without removing it.
func (w *Waste) PeekTop() (*Card, error) {
	if len(w.cards) == 0 {
		return nil, ErrWasteEmpty
	}
	return w.cards[0], nil
}

// Len returns the number of cards in the pile.
func (w *Waste) Len() int {
	return len(w.cards)
}

// Cards returns a copy of the pile, top first.
func (w *Waste) Cards() []Card {
	out := make([]Card, len(w.cards))
	for i, c := range w.cards {
		out[i] = *c
	}
	return out
}
