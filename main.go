package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"connectfour/experiments"
	"connectfour/searcher"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	runProfileExperiment()
}

func runProfileExperiment() {
	// Each profile plays both seats against every other profile, so
	// first-move advantage does not skew the comparison.
	profiles := []searcher.Profile{
		searcher.ProfileEasy,
		searcher.ProfileMedium,
		searcher.ProfileHard,
	}
	matchUps := []experiments.MatchUp{}
	for _, p1 := range profiles {
		for _, p2 := range profiles {
			if p1 == p2 {
				continue
			}
			matchUps = append(matchUps, experiments.MatchUp{Profile1: p1, Profile2: p2})
		}
	}

	fmt.Printf("Running profile experiment...\n")
	summary, err := experiments.RunProfileExperiment("profiles", matchUps, 10)
	if err != nil {
		log.Fatal().Err(err).Msg("experiment failed")
	}

	fmt.Printf("Finished profile experiment.\n")
	fmt.Printf("Games: %d (draws: %d)\n", summary.Games, summary.Draws)
	for player, wins := range summary.Wins {
		fmt.Printf("Player %d won %d games\n", player, wins)
	}
	fmt.Printf("Game length: %.1f moves (stddev %.1f)\n", summary.MeanMoves, summary.StdDevMoves)
	fmt.Printf("Search time per move: %s (stddev %s)\n", summary.MeanSearch, summary.StdDevSearch)
}
