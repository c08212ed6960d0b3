package bot

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	StrategyMCTS      = "mcts"
	StrategyAlphaBeta = "alphabeta"
)

// Config selects and tunes a search strategy. Zero values fall back to the
// defaults below, so a partial YAML file only overrides what it names.
type Config struct {
	Strategy          string  `yaml:"strategy"`
	MoveTimeMs        int     `yaml:"move_time_ms"`
	Depth             int     `yaml:"depth"`
	ExplorationWeight float64 `yaml:"exploration_weight"`
	RolloutCutoff     int     `yaml:"rollout_cutoff"`
	Evaluator         string  `yaml:"evaluator"`
	Seed              uint64  `yaml:"seed"`
}

func DefaultConfig() Config {
	return Config{
		Strategy:          StrategyMCTS,
		MoveTimeMs:        20000,
		Depth:             4,
		ExplorationWeight: 1,
		RolloutCutoff:     7,
		Evaluator:         "material",
	}
}

// LoadConfig reads a YAML config file over the defaults.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := config.validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

func (c Config) validate() error {
	switch c.Strategy {
	case StrategyMCTS, StrategyAlphaBeta:
	default:
		return fmt.Errorf("unknown strategy %q", c.Strategy)
	}
	if c.Strategy == StrategyAlphaBeta && c.Depth <= 0 {
		return fmt.Errorf("alphabeta requires a positive depth, got %d", c.Depth)
	}
	if c.Strategy == StrategyMCTS && c.MoveTimeMs <= 0 {
		return fmt.Errorf("mcts requires a positive move time, got %dms", c.MoveTimeMs)
	}
	if c.MoveTimeMs < 0 {
		return fmt.Errorf("move time cannot be negative, got %dms", c.MoveTimeMs)
	}
	return nil
}
