package searcher

import (
	"github.com/Tyrest/PBJ-Chess/game"
	"golang.org/x/exp/rand"
)

// nimState is a take-away game for exercising the search core: players
// alternately remove 1 to 3 sticks and taking the last stick wins. A state
// is terminal at zero sticks, where the player to move has already lost.
// Positions with equal stick counts are identical, so the hash is the count.
type nimState struct {
	sticks int
}

const nimMaxTake = 3

func (n nimState) FindChildren() []game.State {
	children := []game.State{}
	for take := 1; take <= nimMaxTake && take <= n.sticks; take++ {
		children = append(children, nimState{sticks: n.sticks - take})
	}
	return children
}

func (n nimState) FindRandomChild(rng *rand.Rand) game.State {
	children := n.FindChildren()
	return children[rng.Intn(len(children))]
}

func (n nimState) IsTerminal() bool {
	return n.sticks == 0
}

func (n nimState) Reward() float64 {
	if n.sticks != 0 {
		panic("reward requested for a non-terminal state")
	}
	return Loss // The previous mover took the last stick
}

func (n nimState) Hash() game.StateHash {
	return game.StateHash(n.sticks)
}

// nimEvaluate knows the winning rule: multiples of four lose for the side
// to move.
func nimEvaluate(s game.State) float64 {
	n, ok := s.(nimState)
	if !ok {
		panic("unexpected state type")
	}
	if n.sticks%4 == 0 {
		return -0.9
	}
	return 0.9
}

// toyTree is a scripted game tree keyed by node ID, for tests that need
// exact control over shape and terminal rewards.
type toyTree struct {
	children map[int][]int
	rewards  map[int]float64
}

type toyState struct {
	id   int
	tree *toyTree
}

func (t toyState) FindChildren() []game.State {
	ids := t.tree.children[t.id]
	children := make([]game.State, len(ids))
	for i, id := range ids {
		children[i] = toyState{id: id, tree: t.tree}
	}
	return children
}

func (t toyState) FindRandomChild(rng *rand.Rand) game.State {
	children := t.FindChildren()
	return children[rng.Intn(len(children))]
}

func (t toyState) IsTerminal() bool {
	return len(t.tree.children[t.id]) == 0
}

func (t toyState) Reward() float64 {
	reward, ok := t.tree.rewards[t.id]
	if !ok {
		panic("reward requested for a non-terminal state")
	}
	return reward
}

func (t toyState) Hash() game.StateHash {
	return game.StateHash(t.id)
}
