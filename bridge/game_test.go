package bridge

import "testing"

func playOut(t *testing.T, g *Game, calls ...Call) {
	t.Helper()
	for _, c := range calls {
		if err := g.ApplyCall(g.ActiveSeat(), c); err != nil {
			t.Fatalf("call %s: %v", c, err)
		}
	}
}

func TestGamePassedOut(t *testing.T) {
	g := GameFromDeal(oneSuitDeal(North), ScoreTricks, false)
	playOut(t, g, Pass(), Pass(), Pass(), Pass())

	if !g.Done() || !g.PassedOut() {
		t.Fatal("four passes should complete the hand")
	}
	if g.Phase() != PhaseComplete {
		t.Fatalf("phase %s", g.Phase())
	}
	for _, seat := range Seats {
		if r := g.RewardFor(seat); r != 0 {
			t.Fatalf("seat %s rewarded %v on a passed-out deal", seat, r)
		}
	}
	// the fourth passer acted last
	if g.ActiveSeat() != West {
		t.Fatalf("last actor %s, want %s", g.ActiveSeat(), West)
	}
	if err := g.ApplyCall(North, Pass()); err == nil {
		t.Fatal("call accepted on a completed hand")
	}
}

func TestGameBiddingToPlayTransition(t *testing.T) {
	g := GameFromDeal(oneSuitDeal(North), ScoreTricks, false)
	playOut(t, g, ContractBid(1, NoTrump), Pass(), Pass(), Pass())

	if g.Phase() != PhasePlaying {
		t.Fatalf("phase %s after the auction", g.Phase())
	}
	contract, ok := g.Contract()
	if !ok {
		t.Fatal("no contract after the auction")
	}
	if contract.Declarer != North {
		t.Fatalf("declarer %s", contract.Declarer)
	}
	// opening lead left of declarer
	if g.ActiveSeat() != East {
		t.Fatalf("opening lead by %s, want %s", g.ActiveSeat(), East)
	}
	if err := g.ApplyCall(East, Pass()); err == nil {
		t.Fatal("auction call accepted during play")
	}
}

func TestGameCompleteHandScoresAndRewards(t *testing.T) {
	g := GameFromDeal(oneSuitDeal(North), ScoreTricks, false)
	// North declares 1NT; East leads hearts and wins every trick
	playOut(t, g, ContractBid(1, NoTrump), Pass(), Pass(), Pass())

	for r := Two; r <= Ace; r++ {
		plays := []Play{
			{East, Card{Suit: Hearts, Rank: r}},
			{South, Card{Suit: Diamonds, Rank: r}},
			{West, Card{Suit: Clubs, Rank: r}},
			{North, Card{Suit: Spades, Rank: r}},
		}
		for _, play := range plays {
			if _, err := g.ApplyCard(play.Seat, play.Card); err != nil {
				t.Fatalf("%s plays %s: %v", play.Seat, play.Card, err)
			}
		}
	}

	if !g.Done() {
		t.Fatal("hand not complete after 13 tricks")
	}
	score, ok := g.DeclarerScore()
	if !ok {
		t.Fatal("no score on a completed hand")
	}
	// declarer took 0 of the 7 required tricks
	if score != -7 {
		t.Fatalf("declarer score %d, want -7", score)
	}
	if g.RewardFor(North) != -7 || g.RewardFor(South) != -7 {
		t.Fatalf("declaring side rewards %v/%v", g.RewardFor(North), g.RewardFor(South))
	}
	if g.RewardFor(East) != 7 || g.RewardFor(West) != 7 {
		t.Fatalf("defending side rewards %v/%v", g.RewardFor(East), g.RewardFor(West))
	}
	// the last card of the last trick was played by North
	if g.ActiveSeat() != North {
		t.Fatalf("last actor %s", g.ActiveSeat())
	}
}

// ruffAndRunSpades plays out a spade contract by North over the one-suit
// deal: North trumps the opening lead and runs the remaining trumps,
// winning all 13 tricks.
func ruffAndRunSpades(t *testing.T, g *Game) {
	t.Helper()
	firstTrick := []Play{
		{East, Card{Suit: Hearts, Rank: Two}},
		{South, Card{Suit: Diamonds, Rank: Two}},
		{West, Card{Suit: Clubs, Rank: Two}},
		{North, Card{Suit: Spades, Rank: Two}},
	}
	for _, play := range firstTrick {
		if _, err := g.ApplyCard(play.Seat, play.Card); err != nil {
			t.Fatalf("%s plays %s: %v", play.Seat, play.Card, err)
		}
	}
	for r := Three; r <= Ace; r++ {
		plays := []Play{
			{North, Card{Suit: Spades, Rank: r}},
			{East, Card{Suit: Hearts, Rank: r}},
			{South, Card{Suit: Diamonds, Rank: r}},
			{West, Card{Suit: Clubs, Rank: r}},
		}
		for _, play := range plays {
			if _, err := g.ApplyCard(play.Seat, play.Card); err != nil {
				t.Fatalf("%s plays %s: %v", play.Seat, play.Card, err)
			}
		}
	}
}

func TestGameMadeContractPositiveForDeclarer(t *testing.T) {
	g := GameFromDeal(oneSuitDeal(North), ScoreTricks, false)
	// North declares 1S holding all the trumps and ruffs the opening lead
	playOut(t, g, ContractBid(1, StrainSpades), Pass(), Pass(), Pass())
	ruffAndRunSpades(t, g)

	score, ok := g.DeclarerScore()
	if !ok {
		t.Fatal("no score on a completed hand")
	}
	// 13 tricks against a 7-trick target
	if score != 6 {
		t.Fatalf("declarer score %d, want 6", score)
	}
	if g.RewardFor(North) <= 0 || g.RewardFor(South) <= 0 {
		t.Fatal("made contract must reward the declaring side positively")
	}
}

func TestGameExactlyMadeContract(t *testing.T) {
	// 7S needs all 13 tricks, so the ruff-and-run line makes it exactly
	g := GameFromDeal(oneSuitDeal(North), ScoreDuplicate, false)
	playOut(t, g, ContractBid(7, StrainSpades), Pass(), Pass(), Pass())
	ruffAndRunSpades(t, g)

	score, ok := g.DeclarerScore()
	if !ok {
		t.Fatal("no score on a completed hand")
	}
	// 210 trick points + 300 game + 1000 grand slam
	if score != 1510 {
		t.Fatalf("declarer score %d, want 1510", score)
	}
	if g.RewardFor(North) <= 0 || g.RewardFor(South) <= 0 {
		t.Fatal("exactly made contract must reward the declaring side positively")
	}
	if g.RewardFor(East) != -g.RewardFor(North) {
		t.Fatalf("defender reward %v, want %v", g.RewardFor(East), -g.RewardFor(North))
	}

	// under trick-differential scoring the same hand is worth zero: the
	// declaring side took exactly its target
	g2 := GameFromDeal(oneSuitDeal(North), ScoreTricks, false)
	playOut(t, g2, ContractBid(7, StrainSpades), Pass(), Pass(), Pass())
	ruffAndRunSpades(t, g2)
	if score2, _ := g2.DeclarerScore(); score2 != 0 {
		t.Fatalf("trick-differential score %d, want 0", score2)
	}
}

func TestGameControllerDuringPlay(t *testing.T) {
	g := GameFromDeal(oneSuitDeal(North), ScoreTricks, false)
	playOut(t, g, ContractBid(1, NoTrump), Pass(), Pass(), Pass())

	// dummy is South; the declarer acts for it
	if g.Controller(South) != North {
		t.Fatalf("dummy controlled by %s", g.Controller(South))
	}
	if g.Controller(East) != East {
		t.Fatalf("defender controlled by %s", g.Controller(East))
	}
}

func TestGameRewardBeforeCompletion(t *testing.T) {
	g := GameFromDeal(oneSuitDeal(North), ScoreTricks, false)
	if g.RewardFor(North) != 0 {
		t.Fatal("reward before completion")
	}
	playOut(t, g, ContractBid(1, NoTrump), Pass(), Pass(), Pass())
	if g.RewardFor(East) != 0 {
		t.Fatal("reward during play")
	}
}
