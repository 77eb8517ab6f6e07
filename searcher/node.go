package searcher

import (
	"math"

	"golang.org/x/exp/rand"

	"connectfour/game"
)

const (
	rootID   = 0
	noParent = -1
)

// node is one reached state in the search tree. Nodes live in the
// tree's arena slice and refer to each other by index; parent is used
// only for upward traversal during backpropagation.
type node struct {
	parent   int
	move     game.Move // move that led here from the parent
	children []int
	untried  []game.Move
	terminal bool
	visits   int
	rewards  float64
}

// expanded reports whether every legal move has a child.
func (n *node) expanded() bool {
	return len(n.untried) == 0
}

// tree is an arena of nodes rooted at index 0. One tree is built per
// search call and discarded when it returns. All randomness (expansion
// picks, tie-breaks, rollouts) flows through the tree's rng.
type tree struct {
	nodes []node
	rng   *rand.Rand
}

func newTree(state game.State, rng *rand.Rand) *tree {
	t := &tree{rng: rng}
	t.nodes = append(t.nodes, node{
		parent:   noParent,
		untried:  state.LegalMoves(),
		terminal: state.Terminal(),
	})
	return t
}

// addChild attaches a new node for the state reached by playing move
// from parent, and returns its index.
func (t *tree) addChild(parent int, move game.Move, state game.State) int {
	id := len(t.nodes)
	t.nodes = append(t.nodes, node{
		parent:   parent,
		move:     move,
		untried:  state.LegalMoves(),
		terminal: state.Terminal(),
	})
	t.nodes[parent].children = append(t.nodes[parent].children, id)
	return id
}

// bestChild returns the child of id with the highest UCT score for
// exploration constant c. Ties among maximal children are broken
// uniformly at random.
func (t *tree) bestChild(id int, c float64) int {
	parent := &t.nodes[id]
	if len(parent.children) == 0 {
		panic("cannot select: node has no children")
	}
	numerator := uctNumerator(c, parent.visits)

	best := -1
	bestScore := math.Inf(-1)
	ties := 0
	for _, child := range parent.children {
		n := &t.nodes[child]
		score := ucb1(n.rewards, n.visits, numerator)
		switch {
		case score > bestScore:
			best, bestScore, ties = child, score, 1
		case score == bestScore:
			ties++
			if t.rng.Intn(ties) == 0 {
				best = child
			}
		}
	}
	return best
}

// mostVisitedChild returns the robust child of id: highest visit count,
// ties broken uniformly at random.
func (t *tree) mostVisitedChild(id int) int {
	parent := &t.nodes[id]
	if len(parent.children) == 0 {
		panic("cannot pick robust child: node has no children")
	}

	best := -1
	bestVisits := -1
	ties := 0
	for _, child := range parent.children {
		visits := t.nodes[child].visits
		switch {
		case visits > bestVisits:
			best, bestVisits, ties = child, visits, 1
		case visits == bestVisits:
			ties++
			if t.rng.Intn(ties) == 0 {
				best = child
			}
		}
	}
	return best
}

// backup walks from id up through parent links to the root, adding one
// visit and the reward at every node on the path.
func (t *tree) backup(id int, reward float64) {
	for id != noParent {
		n := &t.nodes[id]
		n.visits++
		n.rewards += reward
		id = n.parent
	}
}
