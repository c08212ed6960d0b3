package main

import (
	"os"

	"github.com/Tyrest/PBJ-Chess/bot"
	"github.com/Tyrest/PBJ-Chess/experiments"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	runStrategyExperiment()
}

// runStrategyExperiment pits the two search strategies against each other
// over a short match with modest budgets.
func runStrategyExperiment() {
	numGames := 4

	mctsConfig := bot.Config{
		Strategy:          bot.StrategyMCTS,
		MoveTimeMs:        1000,
		ExplorationWeight: 1,
		RolloutCutoff:     7,
		Evaluator:         "material",
	}
	alphaBetaConfig := bot.Config{
		Strategy:  bot.StrategyAlphaBeta,
		Depth:     3,
		Evaluator: "positional",
	}

	if err := experiments.RunMatch("mcts-vs-alphabeta", mctsConfig, alphaBetaConfig, numGames); err != nil {
		log.Fatal().Err(err).Msg("match failed")
	}
}
