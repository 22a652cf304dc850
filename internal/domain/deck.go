package domain

import "math/rand"

// Deck is the face-down draw pile. Index 0 is the next card to deal.
// It also allocates card ids for every card created during a session.
type Deck struct {
	cards  []*Card
	nextID int
}

// NewDeck returns an empty deck.
func NewDeck() *Deck {
	return &Deck{}
}

// Generate discards the current contents and appends deckCount standard
// 52-card sets in rank-major, suit-minor order, all face down.
func (d *Deck) Generate(deckCount int) error {
	if deckCount < 1 {
		return ErrInvalidAmount
	}
	d.cards = make([]*Card, 0, deckCount*CardsPerDeck)
	for n := 0; n < deckCount; n++ {
		for r := Rank(0); r < NumRanks; r++ {
			for s := Suit(0); s < NumSuits; s++ {
				d.cards = append(d.cards, d.CreateCard(r, s, Normal))
			}
		}
	}
	return nil
}

// Shuffle permutes the deck in place (Fisher-Yates via rng.Shuffle).
func (d *Deck) Shuffle(rng *rand.Rand) {
	rng.Shuffle(len(d.cards), func(i, j int) { d.cards[i], d.cards[j] = d.cards[j], d.cards[i] })
}

// DealTop removes and returns the front card.
func (d *Deck) DealTop() (*Card, error) {
	if len(d.cards) == 0 {
		return nil, ErrDeckEmpty
	}
	card := d.cards[0]
	d.cards[0] = nil
	d.cards = d.cards[1:]
	return card, nil
}

// PushTop puts card at the front so it is dealt next.
func (d *Deck) PushTop(card *Card) {
	d.cards = append(d.cards, nil)
	copy(d.cards[1:], d.cards)
	d.cards[0] = card
}

// CreateCard allocates a card with a fresh id. The card is not placed in
// any container; the caller decides where it goes.
func (d *Deck) CreateCard(rank Rank, suit Suit, kind Kind) *Card {
	d.nextID++
	return &Card{ID: d.nextID, Rank: rank, Suit: suit, Kind: kind}
}

// RemoveGenerated drops every generated card from the deck and returns them.
func (d *Deck) RemoveGenerated() []*Card {
	var removed []*Card
	kept := d.cards[:0]
	for _, c := range d.cards {
		if c.Generated {
			removed = append(removed, c)
			continue
		}
		kept = append(kept, c)
	}
	for i := len(kept); i < len(d.cards); i++ {
		d.cards[i] = nil
	}
	d.cards = kept
	return removed
}

// Len returns the number of cards remaining.
func (d *Deck) Len() int {
	return len(d.cards)
}

// Peek returns the front card without removing it.
func (d *Deck) Peek() (*Card, bool) {
	if len(d.cards) == 0 {
		return nil, false
	}
	return d.cards[0], true
}

// Cards returns a copy of the deck contents, front first.
func (d *Deck) Cards() []Card {
	out := make([]Card, len(d.cards))
	for i, c := range d.cards {
		out[i] = *c
	}
	return out
}
