// Package chessgame adapts the notnil/chess rules engine to the search
// core's game.State contract. Legal-move generation, rule enforcement, and
// FEN parsing all live in the rules engine; this package only bridges
// representations.
package chessgame

import (
	"fmt"
	"hash/fnv"
	"strconv"
	"strings"

	"github.com/Tyrest/PBJ-Chess/game"
	"github.com/notnil/chess"
	"golang.org/x/exp/rand"
)

// drawHalfmoveClock ends a game after fifty full moves without a capture or
// a pawn move. Without it a pawnless playout could shuffle pieces forever.
const drawHalfmoveClock = 100

// Position is an immutable chess position together with the move that
// produced it, so a chosen successor maps back to a playable move at the
// boundary. The move is nil at a root position.
type Position struct {
	pos  *chess.Position
	move *chess.Move
}

// NewPosition decodes a FEN string into a root position. Malformed FEN is
// rejected with a wrapped parse error.
func NewPosition(fen string) (*Position, error) {
	option, err := chess.FEN(fen)
	if err != nil {
		return nil, fmt.Errorf("invalid position %q: %w", fen, err)
	}
	return &Position{pos: chess.NewGame(option).Position()}, nil
}

func StartingPosition() *Position {
	return &Position{pos: chess.NewGame().Position()}
}

// Move returns the move that produced this position, nil at a root.
func (p *Position) Move() *chess.Move {
	return p.move
}

// FEN returns the canonical encoding of the position.
func (p *Position) FEN() string {
	return p.pos.String()
}

func (p *Position) Turn() chess.Color {
	return p.pos.Turn()
}

func (p *Position) FindChildren() []game.State {
	if p.IsTerminal() {
		return nil
	}
	moves := p.pos.ValidMoves()
	children := make([]game.State, len(moves))
	for i, move := range moves {
		children[i] = &Position{pos: p.pos.Update(move), move: move}
	}
	return children
}

func (p *Position) FindRandomChild(rng *rand.Rand) game.State {
	if p.IsTerminal() {
		panic("no legal moves in a terminal position")
	}
	moves := p.pos.ValidMoves()
	move := moves[rng.Intn(len(moves))]
	return &Position{pos: p.pos.Update(move), move: move}
}

// IsTerminal also flags the dead draws the rules engine's Status does not
// detect, so full random playouts always end: neither side retaining mating
// material, and the halfmove clock expiring.
func (p *Position) IsTerminal() bool {
	if p.pos.Status() != chess.NoMethod {
		return true
	}
	return p.insufficientMaterial() || p.halfmoveClock() >= drawHalfmoveClock
}

// Reward is the terminal result for the player to move: 0 when checkmated,
// 0.5 for stalemate and the dead draws.
func (p *Position) Reward() float64 {
	switch {
	case p.pos.Status() == chess.Checkmate:
		return 0
	case p.IsTerminal():
		return 0.5
	default:
		panic("reward requested for a non-terminal position")
	}
}

// insufficientMaterial reports positions no sequence of legal moves can
// win: bare kings, a lone minor piece, or bishops confined to one square
// color.
func (p *Position) insufficientMaterial() bool {
	knights := 0
	sameColorBishops := true
	bishopColor := -1

	board := p.pos.Board()
	for sq := chess.A1; sq <= chess.H8; sq++ {
		piece := board.Piece(sq)
		switch {
		case piece == chess.NoPiece || piece.Type() == chess.King:
		case piece.Type() == chess.Knight:
			knights++
		case piece.Type() == chess.Bishop:
			color := (int(sq.File()) + int(sq.Rank())) % 2
			if bishopColor == -1 {
				bishopColor = color
			} else if color != bishopColor {
				sameColorBishops = false
			}
		default:
			return false // A pawn, rook, or queen can still mate
		}
	}

	bishops := bishopColor != -1
	switch {
	case !bishops:
		return knights <= 1
	case knights == 0:
		return sameColorBishops
	default:
		return false
	}
}

func (p *Position) halfmoveClock() int {
	fields := strings.Fields(p.pos.String())
	clock, err := strconv.Atoi(fields[4])
	if err != nil {
		return 0
	}
	return clock
}

// Hash folds the first four FEN fields (placement, side to move, castling,
// en passant) so transposed move orders reaching the same position share a
// node, and move counters do not split equivalent positions.
func (p *Position) Hash() game.StateHash {
	fields := strings.SplitN(p.pos.String(), " ", 5)
	h := fnv.New64a()
	for _, field := range fields[:4] {
		h.Write([]byte(field))
		h.Write([]byte{' '})
	}
	return game.StateHash(h.Sum64())
}
