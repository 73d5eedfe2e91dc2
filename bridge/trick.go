package bridge

// Play is one card played by one seat within a trick.
type Play struct {
	Seat Seat
	Card Card
}

// Trick is one round of up to four plays, started by the lead seat.
type Trick struct {
	Lead  Seat
	Plays []Play
}

// LedSuit returns the suit of the first card, once one has been played.
func (t *Trick) LedSuit() (Suit, bool) {
	if len(t.Plays) == 0 {
		return 0, false
	}
	return t.Plays[0].Card.Suit, true
}

// Complete reports whether all four seats have played.
func (t *Trick) Complete() bool {
	return len(t.Plays) == NumSeats
}

// ToPlay returns the seat expected to play next within the trick.
func (t *Trick) ToPlay() Seat {
	return Seat((int(t.Lead) + len(t.Plays)) % NumSeats)
}

// Winner returns the seat that won a complete trick: the highest trump if
// any trump was played, otherwise the highest card of the led suit.
func (t *Trick) Winner(trump Strain) Seat {
	if !t.Complete() {
		panic("bridge: winner of an incomplete trick")
	}
	led := t.Plays[0].Card.Suit
	best := 0
	for i := 1; i < len(t.Plays); i++ {
		if cardBeats(t.Plays[i].Card, t.Plays[best].Card, led, trump) {
			best = i
		}
	}
	return t.Plays[best].Seat
}

// cardBeats reports whether a outranks b given the led suit and trump.
func cardBeats(a, b Card, led Suit, trump Strain) bool {
	if ts, ok := trump.Trump(); ok {
		switch {
		case a.Suit == ts && b.Suit != ts:
			return true
		case b.Suit == ts && a.Suit != ts:
			return false
		case a.Suit == ts && b.Suit == ts:
			return a.Rank > b.Rank
		}
	}
	switch {
	case a.Suit == led && b.Suit != led:
		return true
	case b.Suit == led && a.Suit != led:
		return false
	case a.Suit == led && b.Suit == led:
		return a.Rank > b.Rank
	}
	return false
}
