// Package connect4 implements the Connect Four rules as a game.State:
// a 6x7 board with gravity drops, four-in-a-row win detection in all
// four directions, and draw detection on a full board.
package connect4

import (
	"fmt"
	"strings"

	"connectfour/game"
)

const (
	Rows = 6
	Cols = 7

	Player1 = 1
	Player2 = 2

	empty = game.NoPlayer
)

// Column is a Connect Four move: the index of the column to drop into.
type Column int

func (c Column) String() string {
	return fmt.Sprintf("column %d", int(c))
}

// Cell addresses one board position. Row 0 is the top row.
type Cell struct {
	Row int
	Col int
}

// Drop records one applied move for the move history.
type Drop struct {
	Row    int
	Col    int
	Player int
}

// State holds the board and the player to move. The zero value is not
// usable; construct with NewState or FromBoard.
type State struct {
	board   [Rows][Cols]int
	player  int
	history []Drop
}

// NewState returns an empty board with Player1 to move.
func NewState() *State {
	return &State{player: Player1}
}

// FromBoard builds a state from an explicit board layout, for callers
// resuming a game from a known position. Row 0 is the top row.
func FromBoard(board [Rows][Cols]int, player int) *State {
	return &State{board: board, player: player}
}

func (s *State) Clone() game.State {
	clone := &State{board: s.board, player: s.player}
	clone.history = append([]Drop(nil), s.history...)
	return clone
}

func (s *State) Player() int {
	return s.player
}

// LegalMoves returns the columns whose top cell is empty, left to right.
func (s *State) LegalMoves() []game.Move {
	moves := make([]game.Move, 0, Cols)
	for col := 0; col < Cols; col++ {
		if s.board[0][col] == empty {
			moves = append(moves, Column(col))
		}
	}
	return moves
}

// Apply drops the current player's piece into the given column and
// advances the turn. The state is unchanged on error.
func (s *State) Apply(m game.Move) error {
	col, ok := m.(Column)
	if !ok {
		return fmt.Errorf("%w: %v is not a column", game.ErrInvalidMove, m)
	}
	if col < 0 || col >= Cols {
		return fmt.Errorf("%w: column %d out of range", game.ErrInvalidMove, col)
	}
	for row := Rows - 1; row >= 0; row-- {
		if s.board[row][col] == empty {
			s.board[row][col] = s.player
			s.history = append(s.history, Drop{Row: row, Col: int(col), Player: s.player})
			s.player = opponent(s.player)
			return nil
		}
	}
	return fmt.Errorf("%w: column %d is full", game.ErrInvalidMove, col)
}

// Winner returns the player with four in a row, or game.NoPlayer.
func (s *State) Winner() int {
	winner, _ := s.WinningCells()
	return winner
}

// WinningCells returns the winner and the four cells of the winning
// line, or (game.NoPlayer, nil). Callers that highlight the win use the
// cells; the searcher only needs the winner.
func (s *State) WinningCells() (int, []Cell) {
	directions := [4][2]int{
		{0, 1},  // horizontal
		{1, 0},  // vertical
		{1, 1},  // diagonal down-right
		{-1, 1}, // diagonal up-right
	}
	for row := 0; row < Rows; row++ {
		for col := 0; col < Cols; col++ {
			piece := s.board[row][col]
			if piece == empty {
				continue
			}
			for _, d := range directions {
				cells := s.line(row, col, d[0], d[1], piece)
				if cells != nil {
					return piece, cells
				}
			}
		}
	}
	return game.NoPlayer, nil
}

func (s *State) line(row, col, dr, dc, piece int) []Cell {
	endRow := row + 3*dr
	endCol := col + 3*dc
	if endRow < 0 || endRow >= Rows || endCol >= Cols {
		return nil
	}
	cells := make([]Cell, 0, 4)
	for i := 0; i < 4; i++ {
		r, c := row+i*dr, col+i*dc
		if s.board[r][c] != piece {
			return nil
		}
		cells = append(cells, Cell{Row: r, Col: c})
	}
	return cells
}

// Full reports whether the top row has no empty cell.
func (s *State) Full() bool {
	for col := 0; col < Cols; col++ {
		if s.board[0][col] == empty {
			return false
		}
	}
	return true
}

func (s *State) Terminal() bool {
	return s.Winner() != game.NoPlayer || s.Full()
}

// Reset clears the board back to the initial position.
func (s *State) Reset() {
	s.board = [Rows][Cols]int{}
	s.player = Player1
	s.history = nil
}

// History returns the applied moves in order.
func (s *State) History() []Drop {
	return s.history
}

// Cell returns the piece at (row, col), or game.NoPlayer if empty.
func (s *State) Cell(row, col int) int {
	return s.board[row][col]
}

// String renders the board for logs, top row first.
func (s *State) String() string {
	var b strings.Builder
	for row := 0; row < Rows; row++ {
		for col := 0; col < Cols; col++ {
			switch s.board[row][col] {
			case Player1:
				b.WriteByte('X')
			case Player2:
				b.WriteByte('O')
			default:
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func opponent(player int) int {
	if player == Player1 {
		return Player2
	}
	return Player1
}
