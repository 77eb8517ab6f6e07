package searcher

import "connectfour/game"

// ChildStats reports one direct child of the root at the end of a
// search: its move, visit count, observed win rate, and UCT score at
// the final tree state.
type ChildStats struct {
	Move    game.Move
	Visits  int
	WinRate float64
	UCT     float64
}

// Stats is the statistics snapshot returned with a chosen move, so
// callers (UI overlays, evaluation harnesses) never re-walk tree
// internals. Forced marks a move produced by the tactical override, for
// which no tree was built.
type Stats struct {
	BestMove  game.Move
	BestScore float64
	Forced    bool
	Children  []ChildStats
	Metrics   SearchMetrics
}

// newStats snapshots the root's direct children once, immediately after
// the search loop.
func newStats(t *tree, best int, c float64) Stats {
	root := t.nodes[rootID]
	numerator := uctNumerator(c, root.visits)

	stats := Stats{Children: make([]ChildStats, 0, len(root.children))}
	for _, id := range root.children {
		n := t.nodes[id]
		child := ChildStats{
			Move:    n.move,
			Visits:  n.visits,
			WinRate: n.rewards / float64(n.visits),
			UCT:     ucb1(n.rewards, n.visits, numerator),
		}
		stats.Children = append(stats.Children, child)
		if id == best {
			stats.BestMove = child.Move
			stats.BestScore = child.UCT
		}
	}
	return stats
}
