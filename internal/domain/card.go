package domain

import "fmt"

// Rank is the face value of a card, Ace (0) through King (12).
type Rank int

const (
	Ace Rank = iota
	Two
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
)

// NumRanks is the number of distinct ranks in a suit.
const NumRanks = 13

// Suit of a card.
type Suit int

const (
	Spades Suit = iota
	Hearts
	Clubs
	Diamonds
)

// NumSuits is the number of suits in a standard deck.
const NumSuits = 4

// CardsPerDeck is the size of one standard deck.
const CardsPerDeck = NumRanks * NumSuits

// Kind distinguishes regular cards from power-up wild cards.
type Kind int

const (
	// Normal cards match by rank.
	Normal Kind = iota
	// Wild cards match any rank when on top of the waste.
	Wild
)

var rankNames = [NumRanks]string{"A", "2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K"}
var suitNames = [NumSuits]string{"S", "H", "C", "D"}

func (r Rank) String() string {
	if r < 0 || int(r) >= NumRanks {
		return fmt.Sprintf("Rank(%d)", int(r))
	}
	return rankNames[r]
}

func (s Suit) String() string {
	if s < 0 || int(s) >= NumSuits {
		return fmt.Sprintf("Suit(%d)", int(s))
	}
	return suitNames[s]
}

func (k Kind) String() string {
	switch k {
	case Normal:
		return "normal"
	case Wild:
		return "wild"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Card is a single card. Its identity is ID; the face fields may change
// when a power-up reuses an allocation.
type Card struct {
	ID        int
	Rank      Rank
	Suit      Suit
	Kind      Kind
	Revealed  bool
	Generated bool // created mid-round by a power-up
}

func (c Card) String() string {
	if c.Kind == Wild {
		return fmt.Sprintf("#%d(wild)", c.ID)
	}
	return fmt.Sprintf("#%d(%s%s)", c.ID, c.Rank, c.Suit)
}

// Adjacent reports whether two ranks differ by one, wrapping King to Ace.
func Adjacent(a, b Rank) bool {
	return int(a) == (int(b)+1)%NumRanks || int(a) == (int(b)+NumRanks-1)%NumRanks
}

// CanPlayOn reports whether c may be moved onto a waste whose top card is top.
// Revealed state is checked by the caller.
func (c *Card) CanPlayOn(top *Card) bool {
	if top == nil {
		return false
	}
	if top.Kind == Wild {
		return true
	}
	return c.Kind == Normal && Adjacent(c.Rank, top.Rank)
}
