// Package experiments runs agent-vs-agent evaluation matches and
// records the results for offline analysis.
package experiments

import (
	"time"

	"connectfour/searcher"
)

// GameRecord summarizes one evaluation game.
type GameRecord struct {
	ID       int
	Profile1 searcher.Profile // plays as player 1
	Profile2 searcher.Profile // plays as player 2
	Winner   int              // game.NoPlayer on a draw
	Moves    int
	Duration time.Duration
}

// MoveRecord summarizes one move of an evaluation game.
type MoveRecord struct {
	Game       int // GameRecord.ID
	Step       int
	Player     int
	Move       string
	Forced     bool
	Iterations int64
	Duration   time.Duration
}
