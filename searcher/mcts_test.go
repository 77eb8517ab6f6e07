package searcher

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"connectfour/connect4"
	"connectfour/game"
)

func TestNewMCTS(t *testing.T) {
	t.Run("defaults are valid", func(t *testing.T) {
		mcts, err := NewMCTS()
		require.NoError(t, err)
		require.NotNil(t, mcts)
	})

	t.Run("rejects a non-positive iteration budget", func(t *testing.T) {
		_, err := NewMCTS(WithIterations(0))
		require.ErrorIs(t, err, ErrConfiguration)
	})

	t.Run("rejects a non-positive exploration constant", func(t *testing.T) {
		_, err := NewMCTS(WithExploration(-1.4))
		require.ErrorIs(t, err, ErrConfiguration)
	})

	t.Run("rejects zero parallelism", func(t *testing.T) {
		_, err := NewMCTS(WithRootParallelism(0))
		require.ErrorIs(t, err, ErrConfiguration)
	})

	t.Run("rejects an unknown profile", func(t *testing.T) {
		_, err := NewMCTS(WithProfile(Profile("impossible")))
		require.ErrorIs(t, err, ErrConfiguration)
	})
}

func TestProfileIterations(t *testing.T) {
	require.Equal(t, 100, ProfileEasy.Iterations())
	require.Equal(t, 400, ProfileMedium.Iterations())
	require.Equal(t, 1200, ProfileHard.Iterations())
}

func TestSearchTerminalRoot(t *testing.T) {
	t.Run("won game returns no move and empty stats", func(t *testing.T) {
		var board [connect4.Rows][connect4.Cols]int
		for col := 0; col < 4; col++ {
			board[connect4.Rows-1][col] = connect4.Player1
		}
		state := connect4.FromBoard(board, connect4.Player2)

		mcts, err := NewMCTS(WithIterations(100), WithSeed(1))
		require.NoError(t, err)

		move, stats := mcts.Search(state)
		require.Nil(t, move)
		require.Empty(t, stats.Children)
		require.Nil(t, stats.BestMove)
	})

	t.Run("drawn full board returns no move and empty stats", func(t *testing.T) {
		state := fullDrawState()
		require.True(t, state.Terminal())

		mcts, err := NewMCTS(WithIterations(100), WithSeed(1))
		require.NoError(t, err)

		move, stats := mcts.Search(state)
		require.Nil(t, move)
		require.Empty(t, stats.Children)
	})
}

func TestSearchEmptyBoard(t *testing.T) {
	const iterations = 2000
	mcts, err := NewMCTS(WithIterations(iterations), WithSeed(42))
	require.NoError(t, err)

	state := connect4.NewState()
	move, stats := mcts.Search(state)

	col, ok := move.(connect4.Column)
	require.True(t, ok, "Move should be a column")
	require.GreaterOrEqual(t, int(col), 0)
	require.Less(t, int(col), connect4.Cols)

	visits := 0
	for _, child := range stats.Children {
		require.GreaterOrEqual(t, child.Visits, 1, "Reported children must exist in the tree")
		require.GreaterOrEqual(t, child.WinRate, 0.0)
		require.LessOrEqual(t, child.WinRate, 1.0)
		visits += child.Visits
	}
	require.Equal(t, iterations, visits,
		"Every iteration passes through exactly one root child")
	require.Len(t, stats.Children, connect4.Cols, "All seven columns should be expanded")
}

func TestSearchDoesNotMutateCallerState(t *testing.T) {
	mcts, err := NewMCTS(WithIterations(300), WithSeed(5))
	require.NoError(t, err)

	state := connect4.NewState()
	require.NoError(t, state.Apply(connect4.Column(3)))
	before := state.String()
	player := state.Player()

	mcts.Search(state)

	require.Equal(t, before, state.String(), "Search must only explore clones")
	require.Equal(t, player, state.Player())
}

func TestSearchDeterminism(t *testing.T) {
	search := func() (game.Move, Stats) {
		mcts, err := NewMCTS(WithIterations(500), WithSeed(99))
		require.NoError(t, err)
		return mcts.Search(connect4.NewState())
	}

	move1, stats1 := search()
	move2, stats2 := search()

	require.Equal(t, move1, move2, "Same seed and budget must choose the same move")
	require.Equal(t, stats1, stats2, "Same seed and budget must report identical statistics")
}

func TestSearchRootParallel(t *testing.T) {
	t.Run("merged visits equal the budget", func(t *testing.T) {
		const iterations = 400
		mcts, err := NewMCTS(
			WithIterations(iterations),
			WithRootParallelism(4),
			WithSeed(7),
		)
		require.NoError(t, err)

		move, stats := mcts.Search(connect4.NewState())
		require.NotNil(t, move)

		visits := 0
		for _, child := range stats.Children {
			visits += child.Visits
		}
		require.Equal(t, iterations, visits,
			"Summation merge must preserve the total budget")
	})

	t.Run("deterministic given a seed", func(t *testing.T) {
		search := func() (game.Move, Stats) {
			mcts, err := NewMCTS(
				WithIterations(200),
				WithRootParallelism(4),
				WithSeed(11),
			)
			require.NoError(t, err)
			return mcts.Search(connect4.NewState())
		}

		move1, stats1 := search()
		move2, stats2 := search()

		require.Equal(t, move1, move2)
		require.Equal(t, stats1, stats2)
	})
}

func TestSearchMetrics(t *testing.T) {
	const iterations = 250
	mcts, err := NewMCTS(WithIterations(iterations), WithSeed(3), WithMetrics())
	require.NoError(t, err)

	_, stats := mcts.Search(connect4.NewState())

	require.Equal(t, int64(iterations), stats.Metrics.Iterations)
	require.Equal(t, int64(iterations), stats.Metrics.Rollouts, "Each iteration runs one rollout")
	require.Equal(t, 1, stats.Metrics.Workers)
	require.Greater(t, stats.Metrics.Duration, time.Duration(0))
}

func TestSearchFindsForcedWinWithoutOverride(t *testing.T) {
	// With a healthy budget the statistics alone should find an
	// immediate horizontal win.
	mcts, err := NewMCTS(WithIterations(2000), WithSeed(17))
	require.NoError(t, err)

	move, _ := mcts.Search(openThree())
	require.Contains(t, []connect4.Column{1, 5}, move)
}

// fullDrawState builds a terminal board with every cell filled and no
// four-in-a-row anywhere.
func fullDrawState() *connect4.State {
	var board [connect4.Rows][connect4.Cols]int
	for row := 0; row < connect4.Rows; row++ {
		for col := 0; col < connect4.Cols; col++ {
			piece := connect4.Player1
			if (col+row/2)%2 == 1 {
				piece = connect4.Player2
			}
			board[row][col] = piece
		}
	}
	return connect4.FromBoard(board, connect4.Player1)
}
