package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCollector(t *testing.T) {
	t.Run("tracks a single search", func(t *testing.T) {
		c := NewCollector()
		c.Start("mcts", 7)
		c.AddRollout()
		c.AddRollout()
		c.AddRollout()
		c.AddFullPlayout()

		metric := c.Complete()

		require.Equal(t, "mcts", metric.Strategy)
		require.Equal(t, 7, metric.Cutoff)
		require.Equal(t, 3, metric.Rollouts)
		require.Equal(t, 1, metric.FullPlayouts)
		require.GreaterOrEqual(t, metric.Duration, time.Duration(0))
	})

	t.Run("clears the counters after completing", func(t *testing.T) {
		c := NewCollector()
		c.Start("alphabeta", 0)
		c.AddNode()
		c.AddNode()
		c.SetDepth(3)
		_ = c.Complete()

		metric := c.Complete()

		require.Zero(t, metric.Nodes)
		require.Zero(t, metric.Depth)
		require.Zero(t, metric.Rollouts)
		require.Zero(t, metric.Duration, "a completed search must not leak into the next report")
	})

	t.Run("restarting resets the previous search", func(t *testing.T) {
		c := NewCollector()
		c.Start("mcts", 0)
		c.AddRollout()
		c.Start("mcts", 0)
		c.AddRollout()

		require.Equal(t, 1, c.Complete().Rollouts)
	})

	t.Run("the dummy collector reports nothing", func(t *testing.T) {
		c := NewDummyCollector()
		c.Start("mcts", 7)
		c.AddRollout()

		require.Equal(t, SearchMetric{}, c.Complete())
	})
}
