package game

import (
	"fmt"
	"strings"
)

const (
	Columns = 7
	Rows    = 6
	// One padding bit on top of each column keeps shifted lanes from wrapping
	// into the next column.
	laneHeight = Rows + 1
	maxMoves   = Columns * Rows
)

// topMask has the padding bit of every column set. A column is full once its
// next free bit lands on the padding row.
const topMask uint64 = 0b1000000_1000000_1000000_1000000_1000000_1000000_1000000

// Shift distances between neighbouring cells in the packed layout
var directions = [4]uint{
	1,              // vertical
	laneHeight,     // horizontal
	laneHeight - 1, // diagonal \
	laneHeight + 1, // diagonal /
}

// Position is a Connect Four board packed into two bitboards, one per player.
// Bit 7*c+r is the cell in column c, row r (row 0 at the bottom).
type Position struct {
	bitboards [2]uint64
	heights   [Columns]uint8
	counter   int
	moves     []Move
}

// NewPosition returns an empty board with player 0 on move.
func NewPosition() *Position {
	return &Position{
		moves: make([]Move, 0, maxMoves),
	}
}

func (p *Position) Player() int {
	return p.counter & 1
}

// Moves returns the number of moves played so far.
func (p *Position) Moves() int {
	return p.counter
}

// Height returns the number of stones in a column.
func (p *Position) Height(column Move) int {
	return int(p.heights[column])
}

// History returns a copy of the columns played so far, oldest first.
func (p *Position) History() []Move {
	history := make([]Move, len(p.moves))
	copy(history, p.moves)
	return history
}

func (p *Position) nextBit(column Move) uint64 {
	return 1 << (uint(column)*laneHeight + uint(p.heights[column]))
}

// Play drops a stone of the player on move into a column. Playing into a full
// or non-existent column is a programming error and panics.
func (p *Position) Play(move Move) {
	if move < 0 || move >= Columns {
		panic(fmt.Sprintf("column %d out of range", move))
	}
	bit := p.nextBit(move)
	if bit&topMask != 0 {
		panic(fmt.Sprintf("column %d is full", move))
	}
	p.bitboards[p.counter&1] |= bit
	p.heights[move]++
	p.moves = append(p.moves, move)
	p.counter++
}

// undo reverses the last Play exactly.
func (p *Position) undo() {
	if p.counter == 0 {
		panic("no move to undo")
	}
	p.counter--
	move := p.moves[p.counter]
	p.moves = p.moves[:p.counter]
	p.heights[move]--
	p.bitboards[p.counter&1] &^= p.nextBit(move)
}

// IsWin reports whether a player has four in a row.
func (p *Position) IsWin(player int) bool {
	board := p.bitboards[player]
	for _, shift := range directions {
		pairs := board & (board >> shift)
		if pairs&(pairs>>(2*shift)) != 0 {
			return true
		}
	}
	return false
}

// LegalMoves returns the columns that are not full, in ascending order.
func (p *Position) LegalMoves() []Move {
	moves := make([]Move, 0, Columns)
	for column := Move(0); column < Columns; column++ {
		if p.nextBit(column)&topMask == 0 {
			moves = append(moves, column)
		}
	}
	return moves
}

// Full reports whether every column is full.
func (p *Position) Full() bool {
	return p.counter == maxMoves
}

// Winner returns the player with four in a row, or NoPlayer.
func (p *Position) Winner() int {
	for player := 0; player < 2; player++ {
		if p.IsWin(player) {
			return player
		}
	}
	return NoPlayer
}

// Playout plays uniformly random moves until someone connects four or the
// board fills up, then takes every move back. It returns the winner or
// NoPlayer for a draw. A position the previous mover has already won is
// scored without playing further.
func (p *Position) Playout(rng Rand) int {
	if p.counter > 0 {
		if last := Opponent(p.Player()); p.IsWin(last) {
			return last
		}
	}

	winner := NoPlayer
	played := 0
	for moves := p.LegalMoves(); len(moves) > 0; moves = p.LegalMoves() {
		mover := p.Player()
		p.Play(moves[rng.Intn(len(moves))])
		played++
		if p.IsWin(mover) {
			winner = mover
			break
		}
	}

	for ; played > 0; played-- {
		p.undo()
	}
	return winner
}

// RandomPlayout runs a Playout and reports whether the player on move when it
// was called won. Draws count as false.
func (p *Position) RandomPlayout(rng Rand) bool {
	player := p.Player()
	return p.Playout(rng) == player
}

// Clone returns a deep copy with its own move history.
func (p *Position) Clone() State {
	return p.Copy()
}

func (p *Position) Copy() *Position {
	moves := make([]Move, len(p.moves), maxMoves)
	copy(moves, p.moves)
	return &Position{
		bitboards: p.bitboards,
		heights:   p.heights,
		counter:   p.counter,
		moves:     moves,
	}
}

// String renders the board top row first, X for player 0 and O for player 1.
func (p *Position) String() string {
	var sb strings.Builder
	for row := Rows - 1; row >= 0; row-- {
		for column := 0; column < Columns; column++ {
			bit := uint64(1) << uint(column*laneHeight+row)
			switch {
			case p.bitboards[0]&bit != 0:
				sb.WriteByte('X')
			case p.bitboards[1]&bit != 0:
				sb.WriteByte('O')
			default:
				sb.WriteByte('.')
			}
			sb.WriteByte(' ')
		}
		sb.WriteByte('\n')
	}
	for column := 0; column < Columns; column++ {
		fmt.Fprintf(&sb, "%d ", column)
	}
	sb.WriteByte('\n')
	return sb.String()
}
