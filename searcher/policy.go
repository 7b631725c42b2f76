package searcher

import "math"

type uct struct {
	numerator float64
}

// newUCT precomputes the exploration numerator c^2*ln(N) shared by all the
// children of a node visited N times.
func newUCT(cSquared float64, N float64) *uct {
	if N < 0 {
		panic("N cannot be negative")
	}
	return &uct{numerator: cSquared * math.Log(N)}
}

func (u uct) evaluate(q float64, n float64) float64 {
	// Unvisited children are explored before any estimate is trusted
	if n == 0 {
		return math.Inf(1)
	}
	// UCT = q/n + sqrt(c^2*ln(N)/n)
	return q/n + math.Sqrt(u.numerator/n)
}
