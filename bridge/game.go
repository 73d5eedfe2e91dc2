package bridge

import "math/rand"

// Phase of one hand. Transitions are one-directional: bidding, then play
// (skipped when the deal passes out), then complete.
type Phase int

const (
	PhaseBidding Phase = iota
	PhasePlaying
	PhaseComplete
)

func (p Phase) String() string {
	switch p {
	case PhaseBidding:
		return "bidding"
	case PhasePlaying:
		return "playing"
	case PhaseComplete:
		return "complete"
	}
	return "unknown"
}

// Game is the full state machine for one hand: the deal, the auction, the
// play and the final score. A Game is owned by a single environment
// instance; nothing here is safe for concurrent use.
type Game struct {
	Deal    *Deal
	Auction *Auction
	Play    *PlayState

	phase      Phase
	passedOut  bool
	contract   Contract
	scoring    ScoringMode
	vulnerable bool

	// declarerScore is the signed score for the declaring side, set when
	// the hand completes; zero for a passed-out deal.
	declarerScore int
}

// NewGame deals a fresh hand with the given source and opens the auction.
func NewGame(dealer Seat, rng *rand.Rand, scoring ScoringMode, vulnerable bool) *Game {
	return GameFromDeal(NewDeal(dealer, rng), scoring, vulnerable)
}

// GameFromDeal opens the auction over an existing deal.
func GameFromDeal(deal *Deal, scoring ScoringMode, vulnerable bool) *Game {
	return &Game{
		Deal:       deal,
		Auction:    NewAuction(deal.Dealer),
		phase:      PhaseBidding,
		scoring:    scoring,
		vulnerable: vulnerable,
	}
}

func (g *Game) Phase() Phase         { return g.phase }
func (g *Game) Done() bool           { return g.phase == PhaseComplete }
func (g *Game) PassedOut() bool      { return g.passedOut }
func (g *Game) Scoring() ScoringMode { return g.scoring }
func (g *Game) Vulnerable() bool     { return g.vulnerable }

// Contract returns the resolved contract; ok is false until the auction
// has produced one.
func (g *Game) Contract() (Contract, bool) {
	if g.phase == PhaseBidding || g.passedOut {
		return Contract{}, false
	}
	return g.contract, true
}

// ActiveSeat returns the seat slot whose action the game expects, derived
// from the current phase. After completion it returns the slot that acted
// last, so repeated calls stay stable at any point of an episode.
func (g *Game) ActiveSeat() Seat {
	switch g.phase {
	case PhaseBidding:
		return g.Auction.ToAct()
	case PhasePlaying:
		return g.Play.ToAct()
	}
	if g.passedOut {
		// the fourth passer ended the hand
		return Seat((int(g.Auction.Dealer) + len(g.Auction.Calls) - 1) % NumSeats)
	}
	last := g.Play.Completed[len(g.Play.Completed)-1]
	return last.Plays[len(last.Plays)-1].Seat
}

// Controller returns the agent seat that acts for a seat slot: during play
// the declarer acts for the dummy, otherwise the slot acts for itself.
func (g *Game) Controller(seat Seat) Seat {
	if g.phase == PhasePlaying {
		return g.Play.Controller(seat)
	}
	return seat
}

// LegalCalls returns the auction calls currently available, or nil outside
// the bidding phase.
func (g *Game) LegalCalls() []Call {
	if g.phase != PhaseBidding {
		return nil
	}
	return g.Auction.LegalCalls()
}

// LegalCards returns the cards the active seat slot may play, or nil
// outside the play phase.
func (g *Game) LegalCards() []Card {
	if g.phase != PhasePlaying {
		return nil
	}
	return g.Play.LegalCards(g.Play.ToAct())
}

// ApplyCall feeds one auction call through the state machine. On the
// terminal call the game moves to the play phase, or directly to
// completion with zero score when the deal passes out. State is unchanged
// when an error is returned.
func (g *Game) ApplyCall(seat Seat, c Call) error {
	if g.phase != PhaseBidding {
		return &IllegalActionError{Seat: seat, Reason: "not in the bidding phase"}
	}
	if err := g.Auction.Apply(seat, c); err != nil {
		return err
	}
	if !g.Auction.IsTerminal() {
		return nil
	}
	if g.Auction.PassedOut() {
		g.passedOut = true
		g.phase = PhaseComplete
		return nil
	}
	contract, _ := g.Auction.Contract()
	g.contract = contract
	g.Play = NewPlayState(contract, g.Deal)
	g.phase = PhasePlaying
	return nil
}

// ApplyCard feeds one card play through the state machine. After the 13th
// trick the hand completes and the score is computed. State is unchanged
// when an error is returned. The result is non-nil on trick completion.
func (g *Game) ApplyCard(seat Seat, card Card) (*TrickResult, error) {
	if g.phase != PhasePlaying {
		return nil, &IllegalActionError{Seat: seat, Reason: "not in the play phase"}
	}
	res, err := g.Play.PlayCard(seat, card)
	if err != nil {
		return nil, err
	}
	if g.Play.Done() {
		g.phase = PhaseComplete
		won := g.Play.TricksWon(g.contract.Declarer.Side())
		g.declarerScore = Score(g.contract, won, g.scoring, g.vulnerable)
	}
	return res, nil
}

// DeclarerScore returns the signed score for the declaring side; ok is
// false until the hand is complete.
func (g *Game) DeclarerScore() (int, bool) {
	if g.phase != PhaseComplete {
		return 0, false
	}
	return g.declarerScore, true
}

// RewardFor returns the seat's terminal reward: the partnership's signed
// score differential, identical for both partners, zero before completion
// and zero for every seat on a passed-out deal.
func (g *Game) RewardFor(seat Seat) float64 {
	if g.phase != PhaseComplete || g.passedOut {
		return 0
	}
	score := float64(g.declarerScore)
	if seat.Side() == g.contract.Declarer.Side() {
		return score
	}
	return -score
}
