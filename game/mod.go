package game

import "golang.org/x/exp/rand"

// StateHash is a stable hash over a canonical position encoding. Two states
// representing the same position hash equally even when they were reached by
// different move sequences, which lets the search tree share their node.
type StateHash uint64

// State is the capability contract every playable game implements. The
// search core is generic over this interface, never over a concrete game
// type. States are immutable: successors are returned as new values and the
// receiver is never mutated.
type State interface {
	// FindChildren returns every state reachable by one legal move.
	// The result is empty exactly when the state is terminal.
	FindChildren() []State

	// FindRandomChild returns a legal successor drawn uniformly from the
	// supplied source. Membership-equivalent with FindChildren.
	FindRandomChild(rng *rand.Rand) State

	// IsTerminal reports whether the game is over at this state.
	IsTerminal() bool

	// Reward is the result of a terminal state from the perspective of the
	// player to move: 1 for a win, 0 for a loss, 0.5 for a draw.
	// Implementations must panic on non-terminal states.
	Reward() float64

	// Hash identifies the position. Consistent with structural equality:
	// equal positions share a hash regardless of move order.
	Hash() StateHash
}

// Evaluate scores a non-terminal state to a value between -1 and 1
// indicating how favorable the position is to the side to move (positive =
// favorable). Every evaluator follows this one sign convention; callers that
// need the opponent's view negate the result themselves.
type Evaluate func(State) float64
