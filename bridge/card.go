package bridge

import "fmt"

// Suit of a card. The numeric values match the wire/index encoding:
// index % 4 gives the suit of a card index.
type Suit int

const (
	Clubs Suit = iota
	Diamonds
	Hearts
	Spades
)

func (s Suit) String() string {
	switch s {
	case Clubs:
		return "C"
	case Diamonds:
		return "D"
	case Hearts:
		return "H"
	case Spades:
		return "S"
	}
	return fmt.Sprintf("Suit(%d)", int(s))
}

// Rank of a card, Two..Ace.
type Rank int

const (
	Two Rank = iota
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
	Ace
)

var rankNames = [...]string{"2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K", "A"}

func (r Rank) String() string {
	if r < Two || r > Ace {
		return fmt.Sprintf("Rank(%d)", int(r))
	}
	return rankNames[r]
}

// NumCards is the size of the deck and of the card index space.
const NumCards = 52

// Card is an immutable card value identified by a unique index 0..51.
type Card struct {
	Suit Suit
	Rank Rank
}

// CardFromIndex decodes a card index: index%4 is the suit, index/4 the rank.
// Panics on an out-of-range index; callers validate indices first.
func CardFromIndex(i int) Card {
	if i < 0 || i >= NumCards {
		panic(fmt.Sprintf("bridge: card index %d out of range", i))
	}
	return Card{Suit: Suit(i % 4), Rank: Rank(i / 4)}
}

// Index returns the unique 0..51 index of the card.
func (c Card) Index() int {
	return int(c.Rank)*4 + int(c.Suit)
}

func (c Card) String() string {
	return c.Rank.String() + c.Suit.String()
}

// Strain is the denomination of a bid: one of the four suits or notrump.
// The suit values coincide with Suit so a strain can name a trump suit.
type Strain int

const (
	StrainClubs Strain = iota
	StrainDiamonds
	StrainHearts
	StrainSpades
	NoTrump
)

// NumStrains is the size of the strain space, including notrump.
const NumStrains = 5

func (s Strain) String() string {
	if s == NoTrump {
		return "NT"
	}
	return Suit(s).String()
}

// Trump returns the trump suit named by the strain, or false for notrump.
func (s Strain) Trump() (Suit, bool) {
	if s == NoTrump {
		return 0, false
	}
	return Suit(s), true
}
