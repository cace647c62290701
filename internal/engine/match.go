package engine

// Segment matcher bonuses.
const (
	// AnchorBonus rewards a match that starts on the first rune of a segment.
	AnchorBonus = 4
	// FullLengthBonus rewards a query that consumes the whole segment.
	FullLengthBonus = 4
)

// ScorePart scores how well query matches segment as a fuzzy subsequence,
// rune by rune. It returns 0 when query is not a subsequence of segment;
// otherwise the score grows with the number of matched runes, the length of
// consecutive runs and a match anchored at the segment start.
//
// Each query rune is first compared with the next segment rune (lock-step).
// A lock-step hit is worth 1 + 2*successive where successive counts the
// consecutive hits before it. On a miss the rest of the segment is scanned
// for the rune; a hit there is worth 1 and restarts the run at 1. Running
// out of segment in either state fails the whole match.
func ScorePart(query, segment string) int {
	q := []rune(query)
	s := []rune(segment)
	if len(q) == 0 || len(s) == 0 {
		return 0
	}

	score, successive, si := 0, 0, 0
	for qi, c := range q {
		if si == len(s) {
			return 0
		}

		if s[si] == c {
			si++
			score += 1 + 2*successive
			if qi == 0 {
				score += AnchorBonus
			}
			successive++
			continue
		}

		si++
		for si < len(s) && s[si] != c {
			si++
		}
		if si == len(s) {
			return 0
		}
		si++
		score++
		successive = 1
	}

	if si == len(s) && successive > 0 {
		score += FullLengthBonus
	}
	return score
}
