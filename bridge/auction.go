package bridge

// SeatCall is one auction entry: who called and what.
type SeatCall struct {
	Seat Seat
	Call Call
}

// Auction is the ordered call sequence of the bidding phase, starting from
// the dealer. It is terminal after three passes following a bid, or four
// passes from the start (a passed-out deal).
type Auction struct {
	Dealer Seat
	Calls  []SeatCall
}

func NewAuction(dealer Seat) *Auction {
	return &Auction{Dealer: dealer}
}

// ToAct returns the seat expected to call next.
func (a *Auction) ToAct() Seat {
	return Seat((int(a.Dealer) + len(a.Calls)) % NumSeats)
}

// lastBid returns the most recent contract bid and its position, if any.
func (a *Auction) lastBid() (SeatCall, int, bool) {
	for i := len(a.Calls) - 1; i >= 0; i-- {
		if a.Calls[i].Call.Type == CallBid {
			return a.Calls[i], i, true
		}
	}
	return SeatCall{}, -1, false
}

// doubling returns the doubling state of the standing bid.
func (a *Auction) doubling() Doubling {
	d := Undoubled
	_, bidIdx, ok := a.lastBid()
	if !ok {
		return d
	}
	for _, sc := range a.Calls[bidIdx+1:] {
		switch sc.Call.Type {
		case CallDouble:
			d = Doubled
		case CallRedouble:
			d = Redoubled
		}
	}
	return d
}

// LegalCalls returns the calls permitted to the seat to act: Pass always,
// every contract bid strictly above the standing bid, Double only against
// an undoubled opposing bid, Redouble only against an opponent's double.
func (a *Auction) LegalCalls() []Call {
	calls := []Call{Pass()}

	last, _, hasBid := a.lastBid()
	toAct := a.ToAct()
	if hasBid {
		d := a.doubling()
		if d == Undoubled && last.Seat.Side() != toAct.Side() {
			calls = append(calls, Double())
		}
		if d == Doubled && last.Seat.Side() == toAct.Side() {
			calls = append(calls, Redouble())
		}
	}

	minRank := -1
	if hasBid {
		minRank = last.Call.BidRank()
	}
	for rank := minRank + 1; rank < NumBids; rank++ {
		calls = append(calls, ContractBid(rank/NumStrains+1, Strain(rank%NumStrains)))
	}
	return calls
}

// legal reports whether the call is currently permitted to the seat to act.
func (a *Auction) legal(c Call) bool {
	switch c.Type {
	case CallPass:
		return true
	case CallBid:
		if c.Level < 1 || c.Level > 7 {
			return false
		}
		last, _, hasBid := a.lastBid()
		return !hasBid || c.Beats(last.Call)
	case CallDouble:
		last, _, hasBid := a.lastBid()
		return hasBid && a.doubling() == Undoubled && last.Seat.Side() != a.ToAct().Side()
	case CallRedouble:
		last, _, hasBid := a.lastBid()
		return hasBid && a.doubling() == Doubled && last.Seat.Side() == a.ToAct().Side()
	}
	return false
}

// Apply appends the call for the seat and advances the rotation. The
// auction is unchanged when an error is returned.
func (a *Auction) Apply(seat Seat, c Call) error {
	if a.IsTerminal() {
		return &IllegalActionError{Seat: seat, Reason: "auction is over"}
	}
	if seat != a.ToAct() {
		return &IllegalActionError{Seat: seat, Reason: "not this seat's turn to call"}
	}
	if !a.legal(c) {
		return &IllegalActionError{Seat: seat, Reason: "call " + c.String() + " is not legal now"}
	}
	a.Calls = append(a.Calls, SeatCall{Seat: seat, Call: c})
	return nil
}

// IsTerminal reports whether the auction has ended.
func (a *Auction) IsTerminal() bool {
	n := len(a.Calls)
	if n < NumSeats {
		return false
	}
	for _, sc := range a.Calls[n-3:] {
		if sc.Call.Type != CallPass {
			return false
		}
	}
	// three trailing passes end the auction once anyone has bid; with no
	// bid the fourth pass from the start passes the deal out
	if _, _, hasBid := a.lastBid(); hasBid {
		return true
	}
	return a.Calls[n-4].Call.Type == CallPass
}

// PassedOut reports a terminal auction with no contract bid.
func (a *Auction) PassedOut() bool {
	_, _, hasBid := a.lastBid()
	return a.IsTerminal() && !hasBid
}

// Contract resolves the terminal auction. ok is false while the auction is
// still open or when the deal passed out. The declarer is the first member
// of the winning side to have named the final strain.
func (a *Auction) Contract() (Contract, bool) {
	if !a.IsTerminal() || a.PassedOut() {
		return Contract{}, false
	}
	last, _, _ := a.lastBid()
	side := last.Seat.Side()
	declarer := last.Seat
	for _, sc := range a.Calls {
		if sc.Call.Type == CallBid && sc.Seat.Side() == side && sc.Call.Strain == last.Call.Strain {
			declarer = sc.Seat
			break
		}
	}
	return Contract{
		Level:    last.Call.Level,
		Strain:   last.Call.Strain,
		Declarer: declarer,
		Doubling: a.doubling(),
	}, true
}
