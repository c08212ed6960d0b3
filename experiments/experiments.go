// Package experiments plays configured bots against each other and records
// per-game results and per-move search metrics as CSV.
package experiments

import (
	"fmt"
	"time"

	"github.com/Tyrest/PBJ-Chess/bot"
	"github.com/Tyrest/PBJ-Chess/experiments/metrics"
	"github.com/notnil/chess"
	"github.com/rs/zerolog/log"
)

// MaxMoves caps runaway games: position-level play has no threefold
// repetition history, so shuffling endgames must be cut off.
const MaxMoves = 300

// RunMatch plays games between two bot configs, alternating colors each
// game, and writes the records under experiments/results/<name>.
func RunMatch(name string, config1, config2 bot.Config, games int) error {
	log.Info().Msgf("starting %s match...", name)

	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}
	for i := 0; i < games; i++ {
		white, black := config1, config2
		if i%2 == 1 {
			white, black = black, white
		}

		log.Info().Msgf("starting game %d of %d...", i+1, games)
		gameMetric, moveMetrics, err := playGame(white, black)
		if err != nil {
			return fmt.Errorf("game %d failed: %w", i+1, err)
		}

		gameRecords = append(gameRecords, metrics.GameRecord{
			ID:         i + 1,
			GameMetric: gameMetric,
		})
		for _, mm := range moveMetrics {
			moveRecords = append(moveRecords, metrics.MoveRecord{
				Game:       i + 1,
				MoveMetric: mm,
			})
		}
		log.Info().Msgf("completed game %d of %d with outcome %s after %d moves",
			i+1, games, gameMetric.Outcome, gameMetric.TotalMoves)
	}

	log.Info().Msgf("completed %s match", name)

	writer, err := metrics.NewWriter(name)
	if err != nil {
		return fmt.Errorf("failed to create match writer: %w", err)
	}
	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return fmt.Errorf("failed to write game records: %w", err)
	}
	if err := writer.WriteMoveRecords(moveRecords); err != nil {
		return fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msgf("stored match records under %s", writer.BaseDir())
	return nil
}

// playGame runs a single game between two configured bots until an outcome
// or the move cap.
func playGame(whiteConfig, blackConfig bot.Config) (metrics.GameMetric, []metrics.MoveMetric, error) {
	white, err := bot.New(whiteConfig)
	if err != nil {
		return metrics.GameMetric{}, nil, fmt.Errorf("failed to create white bot: %w", err)
	}
	black, err := bot.New(blackConfig)
	if err != nil {
		return metrics.GameMetric{}, nil, fmt.Errorf("failed to create black bot: %w", err)
	}

	g := chess.NewGame()
	startTime := time.Now()
	moveMetrics := []metrics.MoveMetric{}

	step := 0
	for g.Outcome() == chess.NoOutcome && step < MaxMoves {
		mover := white
		if g.Position().Turn() == chess.Black {
			mover = black
		}

		if err := mover.UpdatePosition(g.Position().String()); err != nil {
			return metrics.GameMetric{}, nil, err
		}
		move, err := mover.Move()
		if err != nil {
			return metrics.GameMetric{}, nil, fmt.Errorf("%s failed to move: %w", mover.Name(), err)
		}
		if err := g.Move(move); err != nil {
			return metrics.GameMetric{}, nil, fmt.Errorf("%s played illegal move %s: %w", mover.Name(), move, err)
		}

		step++
		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         step,
			Player:       mover.Name(),
			SearchMetric: mover.LastMetric(),
		})
	}

	endTime := time.Now()
	return metrics.GameMetric{
		White:      white.Name(),
		Black:      black.Name(),
		Outcome:    g.Outcome().String(),
		StartTime:  startTime,
		EndTime:    endTime,
		Duration:   endTime.Sub(startTime),
		TotalMoves: step,
	}, moveMetrics, nil
}
