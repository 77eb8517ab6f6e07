package experiments

import (
	"time"

	"gonum.org/v1/gonum/stat"

	"connectfour/game"
)

// Summary aggregates an evaluation run: win counts per player seat,
// and the spread of game lengths and per-move search times.
type Summary struct {
	Games        int
	Wins         map[int]int // player id -> games won
	Draws        int
	MeanMoves    float64
	StdDevMoves  float64
	MeanSearch   time.Duration
	StdDevSearch time.Duration
}

// Summarize computes run statistics from the recorded games and moves.
func Summarize(games []GameRecord, moves []MoveRecord) Summary {
	summary := Summary{
		Games: len(games),
		Wins:  map[int]int{},
	}

	lengths := make([]float64, 0, len(games))
	for _, g := range games {
		if g.Winner == game.NoPlayer {
			summary.Draws++
		} else {
			summary.Wins[g.Winner]++
		}
		lengths = append(lengths, float64(g.Moves))
	}

	searches := make([]float64, 0, len(moves))
	for _, m := range moves {
		searches = append(searches, float64(m.Duration))
	}

	summary.MeanMoves, summary.StdDevMoves = meanStdDev(lengths)
	meanSearch, stdDevSearch := meanStdDev(searches)
	summary.MeanSearch = time.Duration(meanSearch)
	summary.StdDevSearch = time.Duration(stdDevSearch)
	return summary
}

func meanStdDev(values []float64) (float64, float64) {
	switch len(values) {
	case 0:
		return 0, 0
	case 1:
		// stat.StdDev is undefined for a single sample
		return values[0], 0
	}
	mean, stddev := stat.MeanStdDev(values, nil)
	return mean, stddev
}
