package chessgame

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEvaluateMaterial(t *testing.T) {
	t.Run("the balanced starting position scores zero", func(t *testing.T) {
		require.InDelta(t, 0, EvaluateMaterial(StartingPosition()), 1e-9)
	})

	t.Run("favors the side up material", func(t *testing.T) {
		// Black's queen is missing: white 39 points, black 30
		white, err := NewPosition("rnb1kbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1")
		require.NoError(t, err)
		black, err := NewPosition("rnb1kbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR b KQkq - 0 1")
		require.NoError(t, err)

		require.InDelta(t, 9.0/69.0, EvaluateMaterial(white), 1e-9)
		require.InDelta(t, -9.0/69.0, EvaluateMaterial(black), 1e-9,
			"the same imbalance must flip sign with the side to move")
	})
}

func TestEvaluatePositional(t *testing.T) {
	t.Run("the symmetric starting position scores zero", func(t *testing.T) {
		require.InDelta(t, 0, EvaluatePositional(StartingPosition()), 1e-9)
	})

	t.Run("a centralized knight outweighs a rim knight", func(t *testing.T) {
		// White knight on e4, black knight on a8, kings mirrored on the rim
		p, err := NewPosition("n6k/8/8/8/4N3/8/8/7K w - - 0 1")
		require.NoError(t, err)

		// Material, king safety, and pawns cancel; only the knight term is
		// left: e4 scores 1, a8 scores 0.
		require.InDelta(t, 0.25, EvaluatePositional(p), 1e-9)
	})
}

func TestEvaluateMobility(t *testing.T) {
	t.Run("counts the mover's share of central moves", func(t *testing.T) {
		// From the start only d2d4 and e2e4 land on a center square
		require.InDelta(t, (2.0/20.0)/5, EvaluateMobility(StartingPosition()), 1e-9)
	})
}

func TestEvaluatorByName(t *testing.T) {
	t.Run("resolves every configured evaluator", func(t *testing.T) {
		for _, name := range []string{"material", "positional", "mobility"} {
			evaluate, err := EvaluatorByName(name)
			require.NoError(t, err)
			require.NotNil(t, evaluate)
		}
	})

	t.Run("rejects unknown names", func(t *testing.T) {
		_, err := EvaluatorByName("tablebase")
		require.Error(t, err)
		require.Contains(t, err.Error(), "unknown evaluator")
	})
}
