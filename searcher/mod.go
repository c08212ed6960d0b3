package searcher

import (
	"errors"
	"math"
	"time"

	"github.com/Tyrest/PBJ-Chess/game"
)

// Reward scale shared by rollouts and terminal states

const Win = 1.0
const Loss = 0.0
const Draw = 0.5

// ExplorationWeight is the default UCT exploration constant.
const ExplorationWeight = 1.0

// ErrTerminalChoice is returned when a move decision is requested on a state
// with no legal moves.
var ErrTerminalChoice = errors.New("cannot choose a move from a terminal state")

// Searcher is a decision strategy runnable under a wall-clock deadline. A
// zero deadline means no time limit for depth-bounded strategies and an
// already-expired budget for anytime strategies.
type Searcher interface {
	Search(root game.State, deadline time.Time) (game.State, error)
}

func uctScore(rewards float64, visits float64, weight float64, logN float64) float64 {
	if visits == 0 {
		panic("cannot compute UCT: 0 visits")
	}
	// UCT = q/n + w*sqrt(ln(N)/n)
	return rewards/visits + weight*math.Sqrt(logN/visits)
}
