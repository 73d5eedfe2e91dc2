package bridge

import "fmt"

// CallType distinguishes the four kinds of auction calls.
type CallType int

const (
	CallPass CallType = iota
	CallBid
	CallDouble
	CallRedouble
)

// Call is a single auction action: a contract bid (level 1-7 in a strain)
// or one of Pass, Double, Redouble.
type Call struct {
	Type   CallType
	Level  int
	Strain Strain
}

// NumBids is the number of distinct contract bids (7 levels x 5 strains).
const NumBids = 35

func Pass() Call     { return Call{Type: CallPass} }
func Double() Call   { return Call{Type: CallDouble} }
func Redouble() Call { return Call{Type: CallRedouble} }

// ContractBid returns the bid of the given level (1-7) and strain.
func ContractBid(level int, strain Strain) Call {
	return Call{Type: CallBid, Level: level, Strain: strain}
}

// BidRank totally orders contract bids by (level, strain), 0..34.
// Only meaningful for CallBid calls.
func (c Call) BidRank() int {
	return (c.Level-1)*NumStrains + int(c.Strain)
}

// Beats reports whether c, a contract bid, strictly exceeds other.
func (c Call) Beats(other Call) bool {
	return c.BidRank() > other.BidRank()
}

func (c Call) String() string {
	switch c.Type {
	case CallPass:
		return "Pass"
	case CallDouble:
		return "X"
	case CallRedouble:
		return "XX"
	case CallBid:
		return fmt.Sprintf("%d%s", c.Level, c.Strain)
	}
	return fmt.Sprintf("Call(%d)", int(c.Type))
}

// Doubling is the doubling level of a contract.
type Doubling int

const (
	Undoubled Doubling = iota
	Doubled
	Redoubled
)

func (d Doubling) String() string {
	switch d {
	case Doubled:
		return "X"
	case Redoubled:
		return "XX"
	}
	return ""
}

// Multiplier returns the scoring multiplier for the doubling level.
func (d Doubling) Multiplier() int {
	switch d {
	case Doubled:
		return 2
	case Redoubled:
		return 4
	}
	return 1
}

// Contract is the outcome of a non-passed-out auction.
type Contract struct {
	Level    int
	Strain   Strain
	Declarer Seat
	Doubling Doubling
}

// Target is the number of tricks the declaring side must win.
func (c Contract) Target() int {
	return c.Level + 6
}

// Dummy returns the seat whose hand is exposed and played by declarer.
func (c Contract) Dummy() Seat {
	return c.Declarer.Partner()
}

func (c Contract) String() string {
	return fmt.Sprintf("%d%s%s by %s", c.Level, c.Strain, c.Doubling, c.Declarer)
}
