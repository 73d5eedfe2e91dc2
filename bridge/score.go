package bridge

// ScoringMode selects how a completed contract is scored. The trick
// differential mode is a deliberate simplification for experiments that do
// not need duplicate scoring; it is always an explicit configuration
// choice, never a silent default behind the duplicate rules.
type ScoringMode int

const (
	// ScoreTricks scores the signed trick differential against the
	// contract target, multiplied by the doubling level.
	ScoreTricks ScoringMode = iota
	// ScoreDuplicate scores contract points, game and slam bonuses and
	// undertrick penalties per duplicate practice. Honors are not scored.
	ScoreDuplicate
)

func (m ScoringMode) String() string {
	if m == ScoreDuplicate {
		return "duplicate"
	}
	return "tricks"
}

// Score returns the signed score of a completed hand from the declaring
// side's perspective, given the tricks that side won.
func Score(c Contract, tricksWon int, mode ScoringMode, vulnerable bool) int {
	if mode == ScoreTricks {
		return (tricksWon - c.Target()) * c.Doubling.Multiplier()
	}
	return duplicateScore(c, tricksWon, vulnerable)
}

func duplicateScore(c Contract, tricksWon int, vulnerable bool) int {
	over := tricksWon - c.Target()
	if over < 0 {
		return -undertrickPenalty(-over, c.Doubling, vulnerable)
	}

	trickPoints := contractTrickPoints(c) * c.Doubling.Multiplier()
	score := trickPoints

	if trickPoints >= 100 {
		if vulnerable {
			score += 500
		} else {
			score += 300
		}
	} else {
		score += 50
	}

	switch c.Level {
	case 6:
		if vulnerable {
			score += 750
		} else {
			score += 500
		}
	case 7:
		if vulnerable {
			score += 1500
		} else {
			score += 1000
		}
	}

	switch c.Doubling {
	case Doubled:
		score += 50
		if vulnerable {
			score += over * 200
		} else {
			score += over * 100
		}
	case Redoubled:
		score += 100
		if vulnerable {
			score += over * 400
		} else {
			score += over * 200
		}
	default:
		score += over * perTrickPoints(c.Strain)
	}
	return score
}

// contractTrickPoints is the base value of the odd tricks bid and made.
func contractTrickPoints(c Contract) int {
	if c.Strain == NoTrump {
		return 40 + (c.Level-1)*30
	}
	return c.Level * perTrickPoints(c.Strain)
}

func perTrickPoints(s Strain) int {
	switch s {
	case StrainClubs, StrainDiamonds:
		return 20
	case StrainHearts, StrainSpades:
		return 30
	}
	return 30 // notrump overtricks
}

func undertrickPenalty(down int, d Doubling, vulnerable bool) int {
	switch d {
	case Undoubled:
		if vulnerable {
			return down * 100
		}
		return down * 50
	case Doubled:
		return doubledPenalty(down, vulnerable)
	default:
		return 2 * doubledPenalty(down, vulnerable)
	}
}

func doubledPenalty(down int, vulnerable bool) int {
	if vulnerable {
		return 200 + 300*(down-1)
	}
	switch down {
	case 1:
		return 100
	case 2:
		return 300
	case 3:
		return 500
	default:
		return 500 + 300*(down-3)
	}
}
