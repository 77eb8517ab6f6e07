package searcher

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUCTNumerator(t *testing.T) {
	t.Run("panics with zero parent visits", func(t *testing.T) {
		require.Panics(t, func() {
			uctNumerator(DefaultExploration, 0)
		}, "Should panic when the parent has no visits")
	})

	t.Run("computes 2*c^2*ln(N)", func(t *testing.T) {
		got := uctNumerator(1.4, 100)
		require.InDelta(t, 2*1.4*1.4*math.Log(100), got, 0.0001)
	})
}

func TestUCB1(t *testing.T) {
	t.Run("computing UCT value", func(t *testing.T) {
		numerator := uctNumerator(1.4, 100)
		got := ucb1(5.0, 10, numerator)

		expected := 5.0/10 + 1.4*math.Sqrt(2*math.Log(100)/10)
		require.InDelta(t, expected, got, 0.0001,
			"Should compute w/n + c*sqrt(2*ln(N)/n)")
	})

	t.Run("unvisited child scores infinity", func(t *testing.T) {
		got := ucb1(0, 0, uctNumerator(1.4, 100))
		require.True(t, math.IsInf(got, 1), "Unvisited children should always be chosen first")
	})

	t.Run("exploration term increases with parent visits", func(t *testing.T) {
		score1 := ucb1(5.0, 10, uctNumerator(1.4, 100))
		score2 := ucb1(5.0, 10, uctNumerator(1.4, 1000))

		require.Greater(t, score2, score1,
			"More parent visits should increase exploration term")
	})

	t.Run("exploration term decreases with child visits", func(t *testing.T) {
		numerator := uctNumerator(1.4, 100)
		score1 := ucb1(5.0, 10, numerator)
		score2 := ucb1(5.0, 20, numerator)

		require.Greater(t, score1, score2,
			"More child visits should decrease exploration term")
	})
}
