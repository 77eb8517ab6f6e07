package experiments

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"connectfour/connect4"
	"connectfour/engine"
	"connectfour/searcher"
)

// MatchUp pairs two difficulty profiles; the first plays as player 1.
type MatchUp struct {
	Profile1 searcher.Profile
	Profile2 searcher.Profile
}

// RunProfileExperiment plays gamesPerMatchUp games for every matchup,
// writes the per-game and per-move records to CSV, and returns the run
// summary.
func RunProfileExperiment(name string, matchUps []MatchUp, gamesPerMatchUp int) (Summary, error) {
	writer, err := NewWriter(name)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to set up experiment output: %w", err)
	}

	var gameRecords []GameRecord
	var moveRecords []MoveRecord

	gameID := 1
	for _, matchUp := range matchUps {
		log.Info().
			Str("profile1", string(matchUp.Profile1)).
			Str("profile2", string(matchUp.Profile2)).
			Int("games", gamesPerMatchUp).
			Msg("running matchup")

		for i := 0; i < gamesPerMatchUp; i++ {
			record, moves, err := runGame(gameID, matchUp)
			if err != nil {
				return Summary{}, err
			}
			gameRecords = append(gameRecords, record)
			moveRecords = append(moveRecords, moves...)
			gameID++
		}
	}

	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return Summary{}, err
	}
	if err := writer.WriteMoveRecords(moveRecords); err != nil {
		return Summary{}, err
	}

	return Summarize(gameRecords, moveRecords), nil
}

func runGame(id int, matchUp MatchUp) (GameRecord, []MoveRecord, error) {
	agents := make([]engine.Agent, 0, 2)
	for _, profile := range []searcher.Profile{matchUp.Profile1, matchUp.Profile2} {
		mcts, err := searcher.NewMCTS(
			searcher.WithProfile(profile),
			searcher.WithTacticalOverride(),
			searcher.WithMetrics(),
		)
		if err != nil {
			return GameRecord{}, nil, fmt.Errorf("failed to configure %s agent: %w", profile, err)
		}
		agents = append(agents, engine.NewMCTSAgent(mcts))
	}

	start := time.Now()
	winner, moves := engine.Local(connect4.NewState(), agents).Run()

	record := GameRecord{
		ID:       id,
		Profile1: matchUp.Profile1,
		Profile2: matchUp.Profile2,
		Winner:   winner,
		Moves:    len(moves),
		Duration: time.Since(start),
	}

	moveRecords := make([]MoveRecord, 0, len(moves))
	for _, move := range moves {
		moveRecords = append(moveRecords, MoveRecord{
			Game:       id,
			Step:       move.Step,
			Player:     move.Player,
			Move:       move.Move.String(),
			Forced:     move.Forced,
			Iterations: move.Metrics.Iterations,
			Duration:   move.Metrics.Duration,
		})
	}
	return record, moveRecords, nil
}
