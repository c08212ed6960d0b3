package searcher

import (
	"time"

	"github.com/Tyrest/PBJ-Chess/game"
	"github.com/rs/zerolog/log"
)

// Driver wraps a strategy in a wall-clock budget and produces the final
// move decision.
type Driver struct {
	strategy Searcher
	budget   time.Duration
}

// NewDriver builds a driver around a strategy. A budget of zero means no
// deadline: depth-bounded strategies run to their configured depth, anytime
// strategies degrade to their no-work fallback.
func NewDriver(strategy Searcher, budget time.Duration) *Driver {
	if strategy == nil {
		panic("must specify a search strategy")
	}
	return &Driver{strategy: strategy, budget: budget}
}

// Decide picks a successor of root. A root with exactly one legal move
// short-circuits without searching, whatever the budget.
func (d *Driver) Decide(root game.State) (game.State, error) {
	if root.IsTerminal() {
		return nil, ErrTerminalChoice
	}
	if children := root.FindChildren(); len(children) == 1 {
		log.Debug().Msg("single legal move, skipping search")
		return children[0], nil
	}

	var deadline time.Time
	if d.budget > 0 {
		deadline = time.Now().Add(d.budget)
	}
	return d.strategy.Search(root, deadline)
}
