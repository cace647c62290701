package engine

import "strings"

const (
	// MinSegmentScore is the lowest segment score a non-anchor token accepts.
	MinSegmentScore = 5
	// FullDepthBonus is added when the last token consumed the last segment.
	FullDepthBonus = 10
)

// ScoreQuery scores a space-separated query against a slash-separated path.
// It returns 0 when the path cannot host every token in order.
//
// The first token (the anchor) is tried against every segment that leaves
// enough trailing segments for the other tokens; the best position wins, the
// earliest on ties. Each following token then takes the first later segment
// scoring at least MinSegmentScore. Segments are never reused.
func ScoreQuery(query, path string) int {
	tokens := strings.Split(query, " ")
	segments := strings.Split(path, "/")
	q, p := len(tokens), len(segments)
	if q == 0 || p == 0 || p < q {
		return 0
	}

	anchor := 0
	best := ScorePart(tokens[0], segments[0])
	for i := 1; i <= p-q; i++ {
		if s := ScorePart(tokens[0], segments[i]); s > best {
			anchor, best = i, s
		}
	}
	if best <= 0 {
		return 0
	}

	total := best
	rest := segments[anchor+1:]
	next := 0
	for _, token := range tokens[1:] {
		for {
			if next == len(rest) {
				return 0
			}
			s := ScorePart(token, rest[next])
			next++
			if s < MinSegmentScore {
				continue
			}
			total += s
			break
		}
	}

	if next == len(rest) {
		total += FullDepthBonus
	}
	return total
}

// QueryFromArgs turns command-line arguments into a query: every argument is
// split on "/" and all pieces are joined with single spaces, so
// `flow search gh/flow` and `flow search gh flow` are the same query.
func QueryFromArgs(args []string) string {
	var parts []string
	for _, arg := range args {
		parts = append(parts, strings.Split(arg, "/")...)
	}
	return strings.Join(parts, " ")
}
