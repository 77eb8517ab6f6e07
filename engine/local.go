// Package engine runs the turn-taking decision loop: it owns the
// authoritative game state, asks each player's agent for a move, and
// applies the returned move itself. The searcher only ever sees clones.
package engine

import (
	"github.com/rs/zerolog/log"

	"connectfour/game"
	"connectfour/searcher"
)

// Agent produces a move for the player to move at state.
type Agent interface {
	FindMove(state game.State) (game.Move, searcher.Stats)
}

// MCTSAgent answers moves from a configured search engine.
type MCTSAgent struct {
	search *searcher.MCTS
}

func NewMCTSAgent(search *searcher.MCTS) *MCTSAgent {
	return &MCTSAgent{search: search}
}

func (a *MCTSAgent) FindMove(state game.State) (game.Move, searcher.Stats) {
	return a.search.Search(state)
}

// MoveRecord captures one applied move with its search statistics.
type MoveRecord struct {
	Step    int
	Player  int
	Move    game.Move
	Forced  bool
	Metrics searcher.SearchMetrics
}

// Engine drives one local game. Agents are indexed by player id minus
// one, so agents[0] plays as player 1.
type Engine struct {
	State  game.State
	Agents []Agent
}

func Local(state game.State, agents []Agent) *Engine {
	if len(agents) < 2 {
		panic("need at least two agents")
	}
	return &Engine{State: state, Agents: agents}
}

// Run loops until the state is terminal and returns the winner
// (game.NoPlayer on a draw) with the per-move records.
func (e *Engine) Run() (int, []MoveRecord) {
	var records []MoveRecord

	log.Info().Int("player", e.State.Player()).Msg("game starting")

	step := 1
	for !e.State.Terminal() {
		player := e.State.Player()
		move, stats := e.Agents[player-1].FindMove(e.State)
		if move == nil {
			// Defined outcome for a finished game, but Terminal already
			// guards the loop; nothing left to play.
			break
		}

		if err := e.State.Apply(move); err != nil {
			log.Panic().Err(err).Stringer("move", move).Int("player", player).
				Msg("agent returned an illegal move")
		}

		log.Info().
			Int("step", step).
			Int("player", player).
			Stringer("move", move).
			Bool("forced", stats.Forced).
			Msg("move applied")

		records = append(records, MoveRecord{
			Step:    step,
			Player:  player,
			Move:    move,
			Forced:  stats.Forced,
			Metrics: stats.Metrics,
		})
		step++
	}

	winner := e.State.Winner()
	if winner == game.NoPlayer {
		log.Info().Msg("game drawn")
	} else {
		log.Info().Int("winner", winner).Msg("game over")
	}
	return winner, records
}
