// Package searcher selects moves for deterministic, perfect-information,
// two-player zero-sum games with Monte Carlo Tree Search: UCT selection,
// uniform-random rollouts, and root-relative reward backpropagation,
// with an optional one-ply tactical override.
package searcher

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"connectfour/game"
)

// DefaultIterations is the search budget used when no iteration count
// or profile is configured.
const DefaultIterations = 400

// ErrConfiguration rejects an invalid engine configuration before any
// tree work begins.
var ErrConfiguration = errors.New("invalid searcher configuration")

// Profile is a named difficulty preset mapping to an iteration budget.
type Profile string

const (
	ProfileEasy   Profile = "easy"
	ProfileMedium Profile = "medium"
	ProfileHard   Profile = "hard"
)

// Iterations returns the preset's budget, or 0 for an unknown profile.
func (p Profile) Iterations() int {
	switch p {
	case ProfileEasy:
		return 100
	case ProfileMedium:
		return 400
	case ProfileHard:
		return 1200
	default:
		return 0
	}
}

type Option func(*MCTS)

// MCTS is a configured search engine. One Search call runs to
// completion before returning; the tree it builds is exclusively owned
// by that call and discarded on return, so an engine holds no state
// across calls.
type MCTS struct {
	iterations  int
	exploration float64
	parallelism int
	override    bool
	seed        uint64
	seeded      bool
	metrics     Collector
}

// WithIterations sets the iteration budget.
func WithIterations(iterations int) Option {
	return func(m *MCTS) {
		m.iterations = iterations
	}
}

// WithProfile sets the iteration budget from a named difficulty preset.
func WithProfile(profile Profile) Option {
	return func(m *MCTS) {
		m.iterations = profile.Iterations()
	}
}

// WithExploration sets the UCT exploration constant c.
func WithExploration(c float64) Option {
	return func(m *MCTS) {
		m.exploration = c
	}
}

// WithSeed seeds the engine RNG. Two searches with the same seed,
// budget, and root state choose the same move and report identical
// statistics. Unseeded engines seed from the clock.
func WithSeed(seed uint64) Option {
	return func(m *MCTS) {
		m.seed = seed
		m.seeded = true
	}
}

// WithTacticalOverride plays one-ply forced wins and blocks without
// building a tree.
func WithTacticalOverride() Option {
	return func(m *MCTS) {
		m.override = true
	}
}

// WithMetrics attaches a real metrics collector; search timing and
// iteration counts then ride along with the returned Stats.
func WithMetrics() Option {
	return func(m *MCTS) {
		m.metrics = NewCollector()
	}
}

// WithRootParallelism splits the iteration budget across workers, each
// searching an independent tree; per-move statistics are merged by
// summation, so the merged root visit total still equals the budget.
func WithRootParallelism(workers int) Option {
	return func(m *MCTS) {
		m.parallelism = workers
	}
}

// NewMCTS builds an engine, rejecting invalid configuration before any
// tree work.
func NewMCTS(options ...Option) (*MCTS, error) {
	m := &MCTS{
		iterations:  DefaultIterations,
		exploration: DefaultExploration,
		parallelism: 1,
		metrics:     NewNoopCollector(),
	}
	for _, option := range options {
		option(m)
	}

	if m.iterations <= 0 {
		return nil, fmt.Errorf("%w: iterations must be positive, got %d", ErrConfiguration, m.iterations)
	}
	if m.exploration <= 0 {
		return nil, fmt.Errorf("%w: exploration constant must be positive, got %v", ErrConfiguration, m.exploration)
	}
	if m.parallelism < 1 {
		return nil, fmt.Errorf("%w: parallelism must be at least 1, got %d", ErrConfiguration, m.parallelism)
	}
	return m, nil
}

// Search picks a move for the player to move at root. It returns a nil
// move and zero Stats when root is already terminal or has no legal
// moves. The caller's state is never mutated; all exploration happens
// on clones.
func (m *MCTS) Search(root game.State) (game.Move, Stats) {
	if root.Terminal() || len(root.LegalMoves()) == 0 {
		return nil, Stats{}
	}

	if m.override {
		if move := ImmediateTacticalMove(root); move != nil {
			log.Debug().Stringer("move", move).Msg("tactical override, skipping search")
			return move, Stats{BestMove: move, Forced: true}
		}
	}

	rng := m.newRNG()
	m.metrics.Start(m.parallelism)

	var t *tree
	if m.parallelism == 1 {
		t = m.searchTree(root, m.iterations, rng)
	} else {
		t = m.searchParallel(root, rng)
	}

	best := t.mostVisitedChild(rootID)
	stats := newStats(t, best, m.exploration)
	stats.Metrics = m.metrics.Complete()

	log.Debug().
		Stringer("move", stats.BestMove).
		Int("visits", t.nodes[best].visits).
		Msg("search complete")
	return stats.BestMove, stats
}

func (m *MCTS) newRNG() *rand.Rand {
	seed := m.seed
	if !m.seeded {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewSource(seed))
}

// searchTree runs the full select-expand-simulate-backup loop for the
// given budget on one tree.
func (m *MCTS) searchTree(root game.State, iterations int, rng *rand.Rand) *tree {
	t := newTree(root, rng)
	rootPlayer := root.Player()
	for i := 0; i < iterations; i++ {
		m.simulate(t, root, rootPlayer)
		m.metrics.AddIteration()
	}
	return t
}

// simulate runs one iteration: descend by UCT, expand one random
// untried move, roll out to a terminal state, and back up the reward.
func (m *MCTS) simulate(t *tree, root game.State, rootPlayer int) {
	state := root.Clone()
	id := rootID

	// Selection
	for t.nodes[id].expanded() && len(t.nodes[id].children) > 0 && !t.nodes[id].terminal {
		id = t.bestChild(id, m.exploration)
		mustApply(state, t.nodes[id].move)
	}

	// Expansion: a random untried move avoids move-order bias.
	if n := &t.nodes[id]; !n.terminal && len(n.untried) > 0 {
		pick := t.rng.Intn(len(n.untried))
		move := n.untried[pick]
		n.untried[pick] = n.untried[len(n.untried)-1]
		n.untried = n.untried[:len(n.untried)-1]
		mustApply(state, move)
		id = t.addChild(id, move, state)
	}

	reward := m.rollout(state, rootPlayer, t.rng)
	t.backup(id, reward)
}

// rollout plays uniformly random moves to a terminal state and returns
// the reward relative to the root player.
func (m *MCTS) rollout(state game.State, rootPlayer int, rng *rand.Rand) float64 {
	depth := 0
	for !state.Terminal() {
		moves := state.LegalMoves()
		mustApply(state, moves[rng.Intn(len(moves))])
		depth++
	}
	m.metrics.AddRollout(depth)

	switch state.Winner() {
	case rootPlayer:
		return Win
	case game.NoPlayer:
		return Draw
	default:
		return Loss
	}
}

// searchParallel splits the budget across independent worker trees with
// seeds derived from the engine RNG, then merges root statistics by
// summation. Each worker's tree mutation is entirely local, so no
// locking is needed.
func (m *MCTS) searchParallel(root game.State, rng *rand.Rand) *tree {
	seeds := make([]uint64, m.parallelism)
	for i := range seeds {
		seeds[i] = rng.Uint64()
	}
	budgets := splitBudget(m.iterations, m.parallelism)

	trees := make([]*tree, m.parallelism)
	var wg sync.WaitGroup
	for i := 0; i < m.parallelism; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			worker := rand.New(rand.NewSource(seeds[i]))
			trees[i] = m.searchTree(root.Clone(), budgets[i], worker)
		}(i)
	}
	wg.Wait()

	return mergeRoots(trees, rng)
}

// splitBudget divides iterations across workers, spreading the
// remainder over the first workers so the total is preserved.
func splitBudget(iterations, workers int) []int {
	budgets := make([]int, workers)
	base, remainder := iterations/workers, iterations%workers
	for i := range budgets {
		budgets[i] = base
		if i < remainder {
			budgets[i]++
		}
	}
	return budgets
}

// mergeRoots sums per-move visit and reward statistics of the worker
// trees' root children into one depth-one tree. Summation is
// order-independent, so the merge is deterministic.
func mergeRoots(trees []*tree, rng *rand.Rand) *tree {
	merged := &tree{rng: rng}
	merged.nodes = append(merged.nodes, node{parent: noParent})

	index := make(map[game.Move]int)
	for _, t := range trees {
		root := t.nodes[rootID]
		merged.nodes[rootID].visits += root.visits
		merged.nodes[rootID].rewards += root.rewards

		for _, child := range root.children {
			n := t.nodes[child]
			id, ok := index[n.move]
			if !ok {
				id = len(merged.nodes)
				index[n.move] = id
				merged.nodes = append(merged.nodes, node{parent: rootID, move: n.move})
				merged.nodes[rootID].children = append(merged.nodes[rootID].children, id)
			}
			merged.nodes[id].visits += n.visits
			merged.nodes[id].rewards += n.rewards
		}
	}
	return merged
}

func mustApply(state game.State, move game.Move) {
	if err := state.Apply(move); err != nil {
		// Only legal moves are ever drawn, so this is a rules-module bug.
		panic(fmt.Sprintf("searcher applied illegal move %v: %v", move, err))
	}
}
