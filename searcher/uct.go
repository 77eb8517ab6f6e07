package searcher

import "math"

// DefaultExploration is the UCT exploration constant c. sqrt(2) is the
// theoretical value for rewards in [0, 1].
const DefaultExploration = math.Sqrt2

// Rewards are expressed relative to the root player regardless of ply
// depth: 1 for a root-player win, 0 for a loss, 1/2 for a draw.
const (
	Win  = 1.0
	Loss = 0.0
	Draw = 0.5
)

// ucb1 scores a child given its cumulative rewards, its visits, and the
// precomputed numerator 2*c^2*ln(N) for parent visit count N:
//
//	UCT = w/n + c*sqrt(2*ln(N)/n) = w/n + sqrt(2*c^2*ln(N)/n)
//
// An unvisited child scores +Inf so it is always picked first.
func ucb1(rewards float64, visits int, c2LnN float64) float64 {
	if visits == 0 {
		return math.Inf(1)
	}

	n := float64(visits)
	return rewards/n + math.Sqrt(c2LnN/n)
}

// uctNumerator computes the shared 2*c^2*ln(N) term for scoring the
// children of a parent with N visits.
func uctNumerator(c float64, parentVisits int) float64 {
	if parentVisits == 0 {
		panic("cannot compute UCT: parent has 0 visits")
	}
	return 2 * c * c * math.Log(float64(parentVisits))
}
