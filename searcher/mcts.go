package searcher

import (
	"math"
	"time"

	"github.com/Tyrest/PBJ-Chess/experiments/metrics"
	"github.com/Tyrest/PBJ-Chess/game"
	"golang.org/x/exp/rand"
)

type Option func(m *MCTS)

// MCTS runs Monte Carlo tree search with UCT selection. The tree is a set of
// maps keyed by state hash: visit counts, cumulative rewards, and expanded
// child lists. Statistics belong to a single move decision; Search rebuilds
// them from scratch every time, so no stale values survive across turns.
type MCTS struct {
	weight   float64
	cutoff   int
	evaluate game.Evaluate
	rng      *rand.Rand
	metrics  metrics.Collector

	stats    map[game.StateHash]*nodeStats
	children map[game.StateHash][]game.State
}

type nodeStats struct {
	visits  int
	rewards float64
}

func WithExplorationWeight(weight float64) Option {
	return func(m *MCTS) {
		if weight > 0 {
			m.weight = weight
		}
	}
}

// WithCutoff caps rollouts at depth plies; a rollout reaching the cap is
// scored by the evaluation function instead of playing to the end.
func WithCutoff(depth int) Option {
	return func(m *MCTS) {
		if depth > 0 {
			m.cutoff = depth
		}
	}
}

func WithEvaluationFn(evaluate game.Evaluate) Option {
	return func(m *MCTS) {
		if evaluate != nil {
			m.evaluate = evaluate
		}
	}
}

func WithSeed(seed uint64) Option {
	return func(m *MCTS) {
		m.rng = rand.New(rand.NewSource(seed))
	}
}

func WithCollector(collector metrics.Collector) Option {
	return func(m *MCTS) {
		if collector != nil {
			m.metrics = collector
		}
	}
}

func NewMCTS(options ...Option) *MCTS {
	m := &MCTS{ // Default values
		weight:  ExplorationWeight,
		rng:     rand.New(rand.NewSource(uint64(time.Now().UnixNano()))),
		metrics: metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(m)
	}
	if m.cutoff > 0 && m.evaluate == nil {
		panic("must specify an evaluation function with a rollout cutoff")
	}
	m.Reset()
	return m
}

// Reset discards all statistics. Each decision owns a fresh tree.
func (m *MCTS) Reset() {
	m.stats = map[game.StateHash]*nodeStats{}
	m.children = map[game.StateHash][]game.State{}
}

// Search rebuilds the tree and runs rollouts until the deadline, checked
// between rollouts, then picks a move. A deadline already in the past yields
// the degraded random fallback from Choose.
func (m *MCTS) Search(root game.State, deadline time.Time) (game.State, error) {
	if root.IsTerminal() {
		return nil, ErrTerminalChoice
	}
	m.Reset()
	m.metrics.Start("mcts", m.cutoff)
	for time.Now().Before(deadline) {
		m.DoRollout(root)
	}
	return m.Choose(root)
}

// DoRollout makes the tree one rollout better: select a path to the fringe,
// expand, simulate, backpropagate.
func (m *MCTS) DoRollout(root game.State) {
	path := m.selectPath(root)
	leaf := path[len(path)-1]
	m.expand(leaf)
	reward := m.simulate(leaf)
	m.backpropagate(path, reward)
	m.metrics.AddRollout()
}

// Choose returns the successor of root with the highest average reward.
// Children never visited score negative infinity; if every child is
// unvisited, or root was never expanded, Choose degrades to a uniformly
// random legal move.
func (m *MCTS) Choose(root game.State) (game.State, error) {
	if root.IsTerminal() {
		return nil, ErrTerminalChoice
	}

	children, ok := m.children[root.Hash()]
	if !ok {
		return root.FindRandomChild(m.rng), nil
	}

	var best game.State
	maxScore := math.Inf(-1)
	for _, child := range children {
		stats, ok := m.stats[child.Hash()]
		if !ok || stats.visits == 0 {
			continue
		}
		if score := stats.rewards / float64(stats.visits); score > maxScore {
			maxScore = score
			best = child
		}
	}
	if best == nil {
		return root.FindRandomChild(m.rng), nil
	}
	return best, nil
}

// selectPath descends from root along UCT-best fully expanded nodes and
// returns the visited path. The walk stops at the first unexpanded or
// terminal node, or appends a fresh fringe child and stops there.
func (m *MCTS) selectPath(root game.State) []game.State {
	path := []game.State{}
	node := root
	for {
		path = append(path, node)

		children, expanded := m.children[node.Hash()]
		if !expanded || len(children) == 0 {
			return path
		}

		for _, child := range children {
			if _, ok := m.children[child.Hash()]; !ok {
				return append(path, child)
			}
		}

		node = m.uctSelect(node, children)
	}
}

func (m *MCTS) uctSelect(node game.State, children []game.State) game.State {
	stats, ok := m.stats[node.Hash()]
	if !ok {
		panic("cannot compute UCT: 0 visits")
	}
	logN := math.Log(float64(stats.visits))

	var best game.State
	maxScore := math.Inf(-1)
	for _, child := range children {
		childStats, ok := m.stats[child.Hash()]
		if !ok {
			// selectPath only reaches here once every child is expanded,
			// and expanded nodes have been visited at least once.
			panic("cannot compute UCT: 0 visits")
		}
		score := uctScore(childStats.rewards, float64(childStats.visits), m.weight, logN)
		if score > maxScore {
			maxScore = score
			best = child
		}
	}
	return best
}

func (m *MCTS) expand(leaf game.State) {
	key := leaf.Hash()
	if _, ok := m.children[key]; ok {
		return // Already expanded
	}
	m.children[key] = leaf.FindChildren()
}

// simulate plays random moves from leaf and scores the end of the line for
// the player who moved into leaf: terminal states by their reward, cutoff
// states by the evaluation function normalized to [0, 1].
func (m *MCTS) simulate(leaf game.State) float64 {
	node := leaf
	invert := true
	depth := 0
	for {
		if node.IsTerminal() {
			m.metrics.AddFullPlayout()
			reward := node.Reward()
			if invert {
				return Win - reward
			}
			return reward
		}
		if m.cutoff > 0 && depth >= m.cutoff {
			// Evaluate is from node's side-to-move perspective in [-1, 1];
			// map it onto the [0, 1] reward scale.
			reward := (1 + m.evaluate(node)) / 2
			if invert {
				return Win - reward
			}
			return reward
		}
		node = node.FindRandomChild(m.rng)
		invert = !invert
		depth++
	}
}

// backpropagate walks the path leaf to root. Each node's reward is from the
// perspective of the player who moved into it, so the credit alternates
// r, 1-r, r, ... up the path.
func (m *MCTS) backpropagate(path []game.State, reward float64) {
	for i := len(path) - 1; i >= 0; i-- {
		key := path[i].Hash()
		stats, ok := m.stats[key]
		if !ok {
			stats = &nodeStats{}
			m.stats[key] = stats
		}
		stats.visits++
		stats.rewards += reward
		reward = Win - reward
	}
}
