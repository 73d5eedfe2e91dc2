package env

import (
	"sort"

	"github.com/bridgelab/bridge-rl/bridge"
	"github.com/bridgelab/bridge-rl/rl"
)

// Action space layout. One flat index space covers both phases: card plays
// occupy the card indices, auction calls the range above them. Which half
// is decodable depends on the game phase.
const (
	// NoAction is the sentinel a passive seat submits in the simultaneous
	// variant. Never a valid action for the acting seat.
	NoAction = -1

	bidActionBase = bridge.NumCards

	PassAction     = bidActionBase + bridge.NumBids
	DoubleAction   = PassAction + 1
	RedoubleAction = DoubleAction + 1

	ActionSpaceSize = RedoubleAction + 1
)

// EncodeCard returns the action index of a card play.
func EncodeCard(c bridge.Card) int {
	return c.Index()
}

// EncodeCall returns the action index of an auction call.
func EncodeCall(c bridge.Call) int {
	switch c.Type {
	case bridge.CallPass:
		return PassAction
	case bridge.CallDouble:
		return DoubleAction
	case bridge.CallRedouble:
		return RedoubleAction
	}
	return bidActionBase + c.BidRank()
}

// DecodeCard decodes an action index into a card play.
func DecodeCard(idx int) (bridge.Card, error) {
	if idx < 0 || idx >= bridge.NumCards {
		return bridge.Card{}, &bridge.InvalidActionSpaceError{Index: idx, Reason: "not a card play index"}
	}
	return bridge.CardFromIndex(idx), nil
}

// DecodeCall decodes an action index into an auction call.
func DecodeCall(idx int) (bridge.Call, error) {
	switch {
	case idx == PassAction:
		return bridge.Pass(), nil
	case idx == DoubleAction:
		return bridge.Double(), nil
	case idx == RedoubleAction:
		return bridge.Redouble(), nil
	case idx >= bidActionBase && idx < bidActionBase+bridge.NumBids:
		rank := idx - bidActionBase
		return bridge.ContractBid(rank/bridge.NumStrains+1, bridge.Strain(rank%bridge.NumStrains)), nil
	}
	return bridge.Call{}, &bridge.InvalidActionSpaceError{Index: idx, Reason: "not an auction call index"}
}

// LegalActions flattens the game's current legal moves into sorted action
// indices. Empty once the hand is complete.
func LegalActions(g *bridge.Game) []int {
	var out []int
	switch g.Phase() {
	case bridge.PhaseBidding:
		for _, c := range g.LegalCalls() {
			out = append(out, EncodeCall(c))
		}
	case bridge.PhasePlaying:
		for _, c := range g.LegalCards() {
			out = append(out, EncodeCard(c))
		}
	}
	sort.Ints(out)
	return out
}

// Observation layout. Fixed shape across phases and seats; slots that do
// not apply yet stay zero. Multi-hot card blocks index by card index;
// auction blocks count call occurrences per seat, so repeated passes or a
// second double by the same seat stay distinguishable.
const (
	numCallSlots = bridge.NumBids + 3 // contract bids, pass, double, redouble
	numLevels    = 7
	numDoublings = 3
	numSuits     = 4
	numPhases    = 3

	phaseOffset      = 0
	ownSeatOffset    = phaseOffset + numPhases
	activeSeatOffset = ownSeatOffset + bridge.NumSeats
	dummySeatOffset  = activeSeatOffset + bridge.NumSeats
	ownHandOffset    = dummySeatOffset + bridge.NumSeats
	dummyHandOffset  = ownHandOffset + bridge.NumCards
	tableOffset      = dummyHandOffset + bridge.NumCards
	tricksOffset     = tableOffset + bridge.NumSeats*bridge.NumCards
	auctionOffset    = tricksOffset + bridge.NumTricks*bridge.NumSeats*bridge.NumCards
	ledSuitOffset    = auctionOffset + bridge.NumSeats*numCallSlots
	trumpOffset      = ledSuitOffset + numSuits
	levelOffset      = trumpOffset + bridge.NumStrains
	doublingOffset   = levelOffset + numLevels
	wonOffset        = doublingOffset + numDoublings

	// ObservationSize is the flat observation length for every seat.
	ObservationSize = wonOffset + (bridge.NumTricks+1)*bridge.NumSides
)

func callSlot(c bridge.Call) int {
	switch c.Type {
	case bridge.CallPass:
		return bridge.NumBids
	case bridge.CallDouble:
		return bridge.NumBids + 1
	case bridge.CallRedouble:
		return bridge.NumBids + 2
	}
	return c.BidRank()
}

// EncodeObservation renders the game from one seat's perspective. Hidden
// information stays hidden: only the seat's own hand is encoded, plus the
// dummy's hand once it is public.
func EncodeObservation(g *bridge.Game, seat bridge.Seat) rl.Observation {
	obs := make(rl.Observation, ObservationSize)

	obs[phaseOffset+int(g.Phase())] = 1
	obs[ownSeatOffset+int(seat)] = 1
	obs[activeSeatOffset+int(g.ActiveSeat())] = 1

	contract, hasContract := g.Contract()
	if hasContract {
		obs[dummySeatOffset+int(contract.Dummy())] = 1
		obs[trumpOffset+int(contract.Strain)] = 1
		obs[levelOffset+contract.Level-1] = 1
		obs[doublingOffset+int(contract.Doubling)] = 1
	}

	var hand []bridge.Card
	if g.Play != nil {
		hand = g.Play.Hand(seat)
	} else {
		hand = g.Deal.Hand(seat)
	}
	for _, c := range hand {
		obs[ownHandOffset+c.Index()] = 1
	}

	if g.Play != nil {
		dummy := contract.Dummy()
		if g.Play.DummyRevealed() && seat != dummy {
			for _, c := range g.Play.Hand(dummy) {
				obs[dummyHandOffset+c.Index()] = 1
			}
		}

		for _, p := range g.Play.Current.Plays {
			obs[tableOffset+int(p.Seat)*bridge.NumCards+p.Card.Index()] = 1
		}
		if led, ok := g.Play.Current.LedSuit(); ok {
			obs[ledSuitOffset+int(led)] = 1
		}

		for t, trick := range g.Play.Completed {
			base := tricksOffset + t*bridge.NumSeats*bridge.NumCards
			for _, p := range trick.Plays {
				obs[base+int(p.Seat)*bridge.NumCards+p.Card.Index()] = 1
			}
		}

		for _, side := range []bridge.Side{bridge.NorthSouth, bridge.EastWest} {
			won := g.Play.TricksWon(side)
			obs[wonOffset+int(side)*(bridge.NumTricks+1)+won] = 1
		}
	}

	for _, sc := range g.Auction.Calls {
		obs[auctionOffset+int(sc.Seat)*numCallSlots+callSlot(sc.Call)]++
	}

	return obs
}

// Observations encodes every seat's view of the game.
func Observations(g *bridge.Game) map[bridge.Seat]rl.Observation {
	out := make(map[bridge.Seat]rl.Observation, bridge.NumSeats)
	for _, seat := range bridge.Seats {
		out[seat] = EncodeObservation(g, seat)
	}
	return out
}
