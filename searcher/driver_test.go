package searcher

import (
	"testing"
	"time"

	"github.com/Tyrest/PBJ-Chess/game"
	"github.com/stretchr/testify/require"
)

// recordingSearcher captures the deadline the driver hands to the strategy.
type recordingSearcher struct {
	deadline time.Time
	result   game.State
}

func (r *recordingSearcher) Search(root game.State, deadline time.Time) (game.State, error) {
	r.deadline = deadline
	return r.result, nil
}

type panicSearcher struct{}

func (panicSearcher) Search(root game.State, deadline time.Time) (game.State, error) {
	panic("strategy must not run")
}

func TestNewDriver(t *testing.T) {
	t.Run("panics without a strategy", func(t *testing.T) {
		require.Panics(t, func() {
			NewDriver(nil, time.Second)
		})
	})
}

func TestDecide(t *testing.T) {
	t.Run("returns an error on a terminal root before the strategy runs", func(t *testing.T) {
		d := NewDriver(panicSearcher{}, time.Second)

		_, err := d.Decide(nimState{sticks: 0})

		require.ErrorIs(t, err, ErrTerminalChoice)
	})

	t.Run("a single legal move skips the search regardless of budget", func(t *testing.T) {
		d := NewDriver(panicSearcher{}, 0)

		child, err := d.Decide(nimState{sticks: 1})

		require.NoError(t, err)
		require.Equal(t, nimState{sticks: 0}, child)
	})

	t.Run("derives the deadline from the budget", func(t *testing.T) {
		strategy := &recordingSearcher{result: nimState{sticks: 9}}
		d := NewDriver(strategy, 100*time.Millisecond)

		_, err := d.Decide(nimState{sticks: 10})

		require.NoError(t, err)
		require.WithinDuration(t, time.Now().Add(100*time.Millisecond), strategy.deadline, 50*time.Millisecond)
	})

	t.Run("a zero budget passes a zero deadline", func(t *testing.T) {
		strategy := &recordingSearcher{result: nimState{sticks: 9}}
		d := NewDriver(strategy, 0)

		_, err := d.Decide(nimState{sticks: 10})

		require.NoError(t, err)
		require.True(t, strategy.deadline.IsZero())
	})

	t.Run("drives MCTS to a legal move under a small budget", func(t *testing.T) {
		d := NewDriver(NewMCTS(WithSeed(5)), 50*time.Millisecond)

		child, err := d.Decide(nimState{sticks: 10})

		require.NoError(t, err)
		require.Contains(t, []game.State{
			nimState{sticks: 9},
			nimState{sticks: 8},
			nimState{sticks: 7},
		}, child)
	})

	t.Run("drives alpha-beta to the winning reply", func(t *testing.T) {
		d := NewDriver(NewAlphaBeta(7, nimEvaluate, WithTieBreakSeed(6)), time.Second)

		child, err := d.Decide(nimState{sticks: 6})

		require.NoError(t, err)
		require.Equal(t, nimState{sticks: 4}, child)
	})
}
