package searcher

import (
	"math"
	"sort"
	"time"

	"github.com/Tyrest/PBJ-Chess/experiments/metrics"
	"github.com/Tyrest/PBJ-Chess/game"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

// MateScore saturates the evaluation scale: any forced win outscores any
// heuristic value. The remaining search depth is added on top so shorter
// forced wins rank above longer ones.
const MateScore = 10000.0

type AlphaBetaOption func(ab *AlphaBeta)

// AlphaBeta is a depth-limited negamax searcher with alpha-beta pruning.
// Successors are ordered by a one-ply static score before searching; ordering
// only affects pruning efficiency, never the chosen move. Exact ties between
// moves break uniformly at random.
type AlphaBeta struct {
	depth    int
	evaluate game.Evaluate
	rng      *rand.Rand
	metrics  metrics.Collector
}

func WithTieBreakSeed(seed uint64) AlphaBetaOption {
	return func(ab *AlphaBeta) {
		ab.rng = rand.New(rand.NewSource(seed))
	}
}

func WithAlphaBetaCollector(collector metrics.Collector) AlphaBetaOption {
	return func(ab *AlphaBeta) {
		if collector != nil {
			ab.metrics = collector
		}
	}
}

func NewAlphaBeta(depth int, evaluate game.Evaluate, options ...AlphaBetaOption) *AlphaBeta {
	if depth <= 0 {
		panic("must specify a positive search depth")
	}
	if evaluate == nil {
		panic("must specify an evaluation function")
	}
	ab := &AlphaBeta{ // Default values
		depth:    depth,
		evaluate: evaluate,
		rng:      rand.New(rand.NewSource(uint64(time.Now().UnixNano()))),
		metrics:  metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(ab)
	}
	return ab
}

// Move returns the best successor of root at the configured fixed depth.
// A single legal move is returned without searching.
func (ab *AlphaBeta) Move(root game.State) (game.State, error) {
	if root.IsTerminal() {
		return nil, ErrTerminalChoice
	}
	if children := root.FindChildren(); len(children) == 1 {
		return children[0], nil
	}
	_, best := ab.searchRoot(root, ab.depth)
	return best, nil
}

// Search runs fixed-depth negamax when deadline is zero. Otherwise it
// deepens iteratively up to the configured depth, checking the deadline
// between iterations, and returns the move from the deepest fully completed
// depth. No partially searched depth ever decides the move.
func (ab *AlphaBeta) Search(root game.State, deadline time.Time) (game.State, error) {
	if root.IsTerminal() {
		return nil, ErrTerminalChoice
	}
	children := root.FindChildren()
	if len(children) == 1 {
		return children[0], nil
	}

	ab.metrics.Start("alphabeta", 0)

	if deadline.IsZero() {
		_, best := ab.searchRoot(root, ab.depth)
		ab.metrics.SetDepth(ab.depth)
		return best, nil
	}

	var best game.State
	for depth := 1; depth <= ab.depth; depth++ {
		if !time.Now().Before(deadline) {
			break
		}
		_, move := ab.searchRoot(root, depth)
		best = move
		ab.metrics.SetDepth(depth)
	}
	if best == nil {
		log.Warn().Msg("budget elapsed before any depth completed, falling back to a random move")
		return children[ab.rng.Intn(len(children))], nil
	}
	return best, nil
}

// searchRoot scores every successor of root and picks uniformly among the
// true ties. Strictly improving scores from a narrowed window are exact, but
// a later child can fail high at exactly the best score while its true value
// is lower; those candidates are confirmed with a full-window re-search
// before they may join the tie set.
func (ab *AlphaBeta) searchRoot(root game.State, depth int) (float64, game.State) {
	ab.metrics.AddNode()
	children := ab.orderChildren(root.FindChildren())

	maxScore := math.Inf(-1)
	var best []game.State
	for _, child := range children {
		score := -ab.negamax(child, depth-1, math.Inf(-1), -maxScore)
		switch {
		case score > maxScore:
			maxScore = score
			best = append(best[:0], child)
		case score == maxScore:
			if exact := -ab.negamax(child, depth-1, math.Inf(-1), math.Inf(1)); exact == maxScore {
				best = append(best, child)
			}
		}
	}
	return maxScore, best[ab.rng.Intn(len(best))]
}

// negamax scores node from its side-to-move's perspective: a child's value
// is the negation of the child's own score one ply deeper. Fail-soft: the
// result is exact inside (alpha, beta) and a bound outside.
func (ab *AlphaBeta) negamax(node game.State, depth int, alpha, beta float64) float64 {
	if node.IsTerminal() {
		return terminalScore(node, depth)
	}
	if depth == 0 {
		return ab.evaluate(node)
	}
	ab.metrics.AddNode()

	maxScore := math.Inf(-1)
	for _, child := range ab.orderChildren(node.FindChildren()) {
		if score := -ab.negamax(child, depth-1, -beta, -alpha); score > maxScore {
			maxScore = score
		}
		if maxScore > alpha {
			alpha = maxScore
		}
		if alpha >= beta {
			break // Remaining siblings cannot beat the refutation
		}
	}
	return maxScore
}

// terminalScore maps a terminal result to the saturating scale, from the
// perspective of the player to move. The remaining depth bonus makes wins
// found closer to the root dominate deeper ones.
func terminalScore(node game.State, depth int) float64 {
	reward := node.Reward()
	switch {
	case reward > Draw: // Unreachable in chess, possible in other games
		return MateScore + float64(depth)
	case reward < Draw:
		return -(MateScore + float64(depth))
	default:
		return 0
	}
}

type scoredChild struct {
	state game.State
	score float64
}

// orderChildren sorts successors so the likely best come first, by a cheap
// one-ply static score: the negation of the child's own evaluation.
func (ab *AlphaBeta) orderChildren(children []game.State) []game.State {
	scored := make([]scoredChild, len(children))
	for i, child := range children {
		var score float64
		if child.IsTerminal() {
			score = -terminalScore(child, 0)
		} else {
			score = -ab.evaluate(child)
		}
		scored[i] = scoredChild{state: child, score: score}
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})
	ordered := make([]game.State, len(children))
	for i, sc := range scored {
		ordered[i] = sc.state
	}
	return ordered
}
