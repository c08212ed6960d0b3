package chessgame

import (
	"fmt"
	"math"

	"github.com/Tyrest/PBJ-Chess/game"
	"github.com/notnil/chess"
)

var pieceValues = map[chess.PieceType]float64{
	chess.Pawn:   1,
	chess.Knight: 3,
	chess.Bishop: 3,
	chess.Rook:   5,
	chess.Queen:  9,
}

// EvaluateMaterial tallies each side's material to produce a relative score
// between -1 and 1 from the side-to-move's perspective.
func EvaluateMaterial(s game.State) float64 {
	p, ok := s.(*Position)
	if !ok {
		panic("unexpected state type")
	}
	return p.calculateMaterialScore()
}

// EvaluatePositional considers knight placement, king exposure, and pawn
// progress, in addition to material, to produce a score between -1 and 1
// from the side-to-move's perspective.
func EvaluatePositional(s game.State) float64 {
	p, ok := s.(*Position)
	if !ok {
		panic("unexpected state type")
	}
	materialScore := p.calculateMaterialScore()
	knightScore := p.calculateKnightScore()
	kingScore := p.calculateKingSafetyScore()
	pawnScore := p.calculatePawnScore()

	return (materialScore + knightScore + kingScore + pawnScore) / 4
}

// EvaluateMobility adds a center-activity bonus for the side to move on top
// of the positional terms.
func EvaluateMobility(s game.State) float64 {
	p, ok := s.(*Position)
	if !ok {
		panic("unexpected state type")
	}
	materialScore := p.calculateMaterialScore()
	knightScore := p.calculateKnightScore()
	kingScore := p.calculateKingSafetyScore()
	pawnScore := p.calculatePawnScore()
	centerScore := p.calculateCenterScore()

	return (materialScore + knightScore + kingScore + pawnScore + centerScore) / 5
}

// EvaluatorByName resolves a configured evaluator name.
func EvaluatorByName(name string) (game.Evaluate, error) {
	switch name {
	case "material":
		return EvaluateMaterial, nil
	case "positional":
		return EvaluatePositional, nil
	case "mobility":
		return EvaluateMobility, nil
	default:
		return nil, fmt.Errorf("unknown evaluator %q", name)
	}
}

func (p *Position) calculateMaterialScore() float64 {
	material := make(map[chess.Color]float64)

	board := p.pos.Board()
	for sq := chess.A1; sq <= chess.H8; sq++ {
		piece := board.Piece(sq)
		if piece == chess.NoPiece {
			continue
		}
		material[piece.Color()] += pieceValues[piece.Type()]
	}

	turn := p.pos.Turn()
	return normalize(material[turn], material[turn.Other()])
}

// calculateKnightScore rewards knights near the board center, where they
// cover the most squares.
func (p *Position) calculateKnightScore() float64 {
	centrality := make(map[chess.Color]float64)

	board := p.pos.Board()
	for sq := chess.A1; sq <= chess.H8; sq++ {
		piece := board.Piece(sq)
		if piece == chess.NoPiece || piece.Type() != chess.Knight {
			continue
		}
		// Manhattan distance from the board center ranges 1 to 7
		distance := math.Abs(float64(sq.File())-3.5) + math.Abs(float64(sq.Rank())-3.5)
		centrality[piece.Color()] += (7 - distance) / 6
	}

	turn := p.pos.Turn()
	return normalize(centrality[turn], centrality[turn.Other()])
}

// calculateKingSafetyScore penalizes a king standing on central files, where
// open lines expose it.
func (p *Position) calculateKingSafetyScore() float64 {
	safety := make(map[chess.Color]float64)

	board := p.pos.Board()
	for sq := chess.A1; sq <= chess.H8; sq++ {
		piece := board.Piece(sq)
		if piece == chess.NoPiece || piece.Type() != chess.King {
			continue
		}
		safety[piece.Color()] = math.Abs(float64(sq.File())-3.5) / 3.5
	}

	turn := p.pos.Turn()
	return normalize(safety[turn], safety[turn.Other()])
}

// calculatePawnScore rewards pawns advanced toward promotion.
func (p *Position) calculatePawnScore() float64 {
	progress := make(map[chess.Color]float64)

	board := p.pos.Board()
	for sq := chess.A1; sq <= chess.H8; sq++ {
		piece := board.Piece(sq)
		if piece == chess.NoPiece || piece.Type() != chess.Pawn {
			continue
		}
		// Ranks 2 through 7 map to progress 0 through 1
		if piece.Color() == chess.White {
			progress[chess.White] += (float64(sq.Rank()) - 1) / 5
		} else {
			progress[chess.Black] += (6 - float64(sq.Rank())) / 5
		}
	}

	turn := p.pos.Turn()
	return normalize(progress[turn], progress[turn.Other()])
}

// calculateCenterScore measures the share of the side to move's legal moves
// that land on the four center squares. Only the mover's moves are known to
// the rules engine, so this term is a tempo bonus rather than a two-sided
// comparison.
func (p *Position) calculateCenterScore() float64 {
	moves := p.pos.ValidMoves()
	if len(moves) == 0 {
		return 0
	}
	center := 0
	for _, move := range moves {
		switch move.S2() {
		case chess.D4, chess.D5, chess.E4, chess.E5:
			center++
		}
	}
	return float64(center) / float64(len(moves))
}

// normalize normalizes value relative to otherValue to a score between -1 and 1
func normalize(value float64, otherValue float64) float64 {
	total := value + otherValue
	if total == 0 {
		return 0
	}
	return (value - otherValue) / total
}
