package bridge

// NumTricks is the number of tricks in a complete hand.
const NumTricks = 13

// PlayState tracks the card-play phase of one contract: the remaining
// hands, the trick in progress, the completed tricks and the running
// trick counts per partnership.
type PlayState struct {
	Contract  Contract
	hands     [NumSeats][]Card
	Completed []Trick
	Current   Trick
	won       [NumSides]int
}

// NewPlayState starts the play phase: the opening lead belongs to the seat
// left of declarer.
func NewPlayState(contract Contract, deal *Deal) *PlayState {
	p := &PlayState{
		Contract: contract,
		Current:  Trick{Lead: contract.Declarer.Next()},
	}
	for _, seat := range Seats {
		p.hands[seat] = deal.Hand(seat)
	}
	return p
}

// ToAct returns the seat slot expected to play the next card. Note that
// when this is the dummy, the acting agent is the declarer; see Controller.
func (p *PlayState) ToAct() Seat {
	return p.Current.ToPlay()
}

// Controller returns the agent that acts for a seat slot: the declarer for
// the dummy, the seat itself otherwise.
func (p *PlayState) Controller(seat Seat) Seat {
	if seat == p.Contract.Dummy() {
		return p.Contract.Declarer
	}
	return seat
}

// Hand returns a copy of the cards the seat still holds.
func (p *PlayState) Hand(seat Seat) []Card {
	hand := make([]Card, len(p.hands[seat]))
	copy(hand, p.hands[seat])
	return hand
}

// DummyRevealed reports whether the dummy's hand is public, which happens
// after the opening lead.
func (p *PlayState) DummyRevealed() bool {
	return len(p.Completed) > 0 || len(p.Current.Plays) > 0
}

// LegalCards returns the cards the seat may play now: cards of the led
// suit if it holds any, otherwise its whole remaining hand.
func (p *PlayState) LegalCards(seat Seat) []Card {
	hand := p.hands[seat]
	led, ok := p.Current.LedSuit()
	if ok {
		var follow []Card
		for _, c := range hand {
			if c.Suit == led {
				follow = append(follow, c)
			}
		}
		if len(follow) > 0 {
			return follow
		}
	}
	out := make([]Card, len(hand))
	copy(out, hand)
	return out
}

// TrickResult describes a completed trick.
type TrickResult struct {
	Winner Seat
	Trick  Trick
}

// PlayCard validates and applies one card for the seat slot to act. On
// trick completion the winner's partnership is credited and the winner
// leads the next trick. State is unchanged when an error is returned.
// The returned result is non-nil exactly when the play completed a trick.
func (p *PlayState) PlayCard(seat Seat, card Card) (*TrickResult, error) {
	if p.Done() {
		return nil, &IllegalActionError{Seat: seat, Reason: "hand is complete"}
	}
	if seat != p.ToAct() {
		return nil, &IllegalActionError{Seat: seat, Reason: "not this seat's turn to play"}
	}
	idx := -1
	for i, c := range p.hands[seat] {
		if c == card {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, &IllegalActionError{Seat: seat, Reason: "card " + card.String() + " not in hand"}
	}
	if led, ok := p.Current.LedSuit(); ok && card.Suit != led && hasSuit(p.hands[seat], led) {
		return nil, &IllegalActionError{Seat: seat, Reason: "must follow " + led.String()}
	}

	p.hands[seat] = append(p.hands[seat][:idx], p.hands[seat][idx+1:]...)
	p.Current.Plays = append(p.Current.Plays, Play{Seat: seat, Card: card})

	if !p.Current.Complete() {
		return nil, nil
	}
	winner := p.Current.Winner(p.Contract.Strain)
	p.won[winner.Side()]++
	res := &TrickResult{Winner: winner, Trick: p.Current}
	p.Completed = append(p.Completed, p.Current)
	p.Current = Trick{Lead: winner}
	return res, nil
}

func hasSuit(hand []Card, s Suit) bool {
	for _, c := range hand {
		if c.Suit == s {
			return true
		}
	}
	return false
}

// TricksWon returns the number of tricks the partnership has taken.
func (p *PlayState) TricksWon(side Side) int {
	return p.won[side]
}

// Done reports whether all 13 tricks have been played.
func (p *PlayState) Done() bool {
	return len(p.Completed) == NumTricks
}
