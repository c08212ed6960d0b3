// Package bot wires the search strategies to the chess rules engine behind
// a two-call surface: feed it a position, ask it for a move.
package bot

import (
	"fmt"
	"time"

	"github.com/Tyrest/PBJ-Chess/chessgame"
	"github.com/Tyrest/PBJ-Chess/experiments/metrics"
	"github.com/Tyrest/PBJ-Chess/searcher"
	"github.com/notnil/chess"
	"github.com/rs/zerolog/log"
)

type Bot struct {
	config     Config
	driver     *searcher.Driver
	collector  metrics.Collector
	current    *chessgame.Position
	lastMetric metrics.SearchMetric
}

// New builds a bot from a validated config, starting at the initial
// position.
func New(config Config) (*Bot, error) {
	if err := config.validate(); err != nil {
		return nil, err
	}
	evaluate, err := chessgame.EvaluatorByName(config.Evaluator)
	if err != nil {
		return nil, err
	}

	seed := config.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	collector := metrics.NewCollector()

	var strategy searcher.Searcher
	switch config.Strategy {
	case StrategyMCTS:
		options := []searcher.Option{
			searcher.WithExplorationWeight(config.ExplorationWeight),
			searcher.WithSeed(seed),
			searcher.WithCollector(collector),
		}
		if config.RolloutCutoff > 0 {
			options = append(options,
				searcher.WithEvaluationFn(evaluate),
				searcher.WithCutoff(config.RolloutCutoff))
		}
		strategy = searcher.NewMCTS(options...)
	case StrategyAlphaBeta:
		strategy = searcher.NewAlphaBeta(config.Depth, evaluate,
			searcher.WithTieBreakSeed(seed),
			searcher.WithAlphaBetaCollector(collector))
	}

	budget := time.Duration(config.MoveTimeMs) * time.Millisecond
	return &Bot{
		config:    config,
		driver:    searcher.NewDriver(strategy, budget),
		collector: collector,
		current:   chessgame.StartingPosition(),
	}, nil
}

// UpdatePosition resets the bot to the position encoded by fen.
func (b *Bot) UpdatePosition(fen string) error {
	position, err := chessgame.NewPosition(fen)
	if err != nil {
		return err
	}
	b.current = position
	return nil
}

func (b *Bot) Position() *chessgame.Position {
	return b.current
}

// Move decides a move for the current position. The bot's position is not
// advanced; the caller plays the move and feeds the resulting FEN back via
// UpdatePosition.
func (b *Bot) Move() (*chess.Move, error) {
	chosen, err := b.driver.Decide(b.current)
	if err != nil {
		return nil, err
	}
	next, ok := chosen.(*chessgame.Position)
	if !ok {
		panic("unexpected state type")
	}

	b.lastMetric = b.collector.Complete()
	log.Debug().
		Str("strategy", b.config.Strategy).
		Dur("duration", b.lastMetric.Duration).
		Int("rollouts", b.lastMetric.Rollouts).
		Int("nodes", b.lastMetric.Nodes).
		Msgf("decided %s", next.Move())
	return next.Move(), nil
}

// LastMetric reports the search effort behind the most recent decision.
func (b *Bot) LastMetric() metrics.SearchMetric {
	return b.lastMetric
}

// Name describes the bot for match records.
func (b *Bot) Name() string {
	switch b.config.Strategy {
	case StrategyAlphaBeta:
		return fmt.Sprintf("%s-d%d-%s", b.config.Strategy, b.config.Depth, b.config.Evaluator)
	default:
		return fmt.Sprintf("%s-%dms-%s", b.config.Strategy, b.config.MoveTimeMs, b.config.Evaluator)
	}
}
