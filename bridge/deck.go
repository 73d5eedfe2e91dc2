package bridge

import (
	"fmt"
	"math/rand"
	"sort"
)

// NewDeck returns all 52 cards in index order.
func NewDeck() []Card {
	deck := make([]Card, NumCards)
	for i := range deck {
		deck[i] = CardFromIndex(i)
	}
	return deck
}

// Deal is a shuffled deck partitioned into four 13-card hands.
// Immutable once created; hands are sorted by card index.
type Deal struct {
	Dealer Seat
	hands  [NumSeats][]Card
}

// HandSize is the number of cards dealt to each seat.
const HandSize = NumCards / NumSeats

// NewDeal shuffles a fresh deck with the given source and deals 13 cards to
// each seat in rotation starting from the dealer. The same rng state always
// produces the same deal.
func NewDeal(dealer Seat, rng *rand.Rand) *Deal {
	deck := NewDeck()
	rng.Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})

	d := &Deal{Dealer: dealer}
	seat := dealer
	for i := 0; i < NumSeats; i++ {
		hand := make([]Card, HandSize)
		copy(hand, deck[i*HandSize:(i+1)*HandSize])
		sort.Slice(hand, func(a, b int) bool { return hand[a].Index() < hand[b].Index() })
		d.hands[seat] = hand
		seat = seat.Next()
	}
	d.checkPartition()
	return d
}

// DealFromHands builds a Deal from explicit hands, for tests and for
// resuming a known position. The hands must partition the deck.
func DealFromHands(dealer Seat, hands [NumSeats][]Card) *Deal {
	d := &Deal{Dealer: dealer}
	for seat, hand := range hands {
		h := make([]Card, len(hand))
		copy(h, hand)
		sort.Slice(h, func(a, b int) bool { return h[a].Index() < h[b].Index() })
		d.hands[seat] = h
	}
	d.checkPartition()
	return d
}

// Hand returns a copy of the seat's dealt hand.
func (d *Deal) Hand(s Seat) []Card {
	hand := make([]Card, len(d.hands[s]))
	copy(hand, d.hands[s])
	return hand
}

// A deal with duplicate or missing cards is a programming defect, never a
// game event, so it fails loudly.
func (d *Deal) checkPartition() {
	var seen [NumCards]bool
	total := 0
	for seat := range d.hands {
		if len(d.hands[seat]) != HandSize {
			panic(fmt.Sprintf("bridge: seat %s dealt %d cards", Seat(seat), len(d.hands[seat])))
		}
		for _, c := range d.hands[seat] {
			if seen[c.Index()] {
				panic(fmt.Sprintf("bridge: card %s dealt twice", c))
			}
			seen[c.Index()] = true
			total++
		}
	}
	if total != NumCards {
		panic(fmt.Sprintf("bridge: deal contains %d cards", total))
	}
}
