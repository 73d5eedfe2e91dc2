package bridge

import "fmt"

// Seat is one of the four table positions, in clockwise order N, E, S, W.
type Seat int

const (
	North Seat = iota
	East
	South
	West
)

// NumSeats is the number of table positions.
const NumSeats = 4

// Seats lists all seats in rotation order.
var Seats = [NumSeats]Seat{North, East, South, West}

func (s Seat) String() string {
	switch s {
	case North:
		return "N"
	case East:
		return "E"
	case South:
		return "S"
	case West:
		return "W"
	}
	return fmt.Sprintf("Seat(%d)", int(s))
}

// Next returns the seat to the left, i.e. the next to act in rotation.
func (s Seat) Next() Seat {
	return Seat((int(s) + 1) % NumSeats)
}

// Partner returns the seat across the table.
func (s Seat) Partner() Seat {
	return Seat((int(s) + 2) % NumSeats)
}

// Side is a partnership: North-South or East-West.
type Side int

const (
	NorthSouth Side = iota
	EastWest
)

// NumSides is the number of partnerships.
const NumSides = 2

func (s Side) String() string {
	if s == NorthSouth {
		return "NS"
	}
	return "EW"
}

// Other returns the opposing partnership.
func (s Side) Other() Side {
	return Side(1 - int(s))
}

// Side returns the partnership the seat belongs to.
func (s Seat) Side() Side {
	if s == North || s == South {
		return NorthSouth
	}
	return EastWest
}
