package entity

import (
	"fmt"

	"github.com/rocketscienceinc/connectfour/internal/apperror"
)

const (
	Rows      = 6
	Columns   = 7
	WinLength = 4
)

// Position - row and column of a slot. Row 0 is the top of the board.
type Position struct {
	Row    int
	Column int
}

// Board - the 6x7 grid. Pieces only get in through DropPiece, which keeps every
// column filled from the bottom without gaps.
type Board struct {
	Grid [Rows][Columns]Slot `json:"grid"`
}

// NewBoard - an empty board.
func NewBoard() *Board {
	return &Board{}
}

// GetColumn - returns the slots of column n from top to bottom.
func (that *Board) GetColumn(n int) []Slot {
	column := make([]Slot, 0, Rows)
	for _, row := range that.Grid {
		column = append(column, row[n])
	}

	return column
}

// FindOpenSlot - returns the row of the lowest empty slot in column n.
func (that *Board) FindOpenSlot(n int) (int, bool) {
	for row := Rows - 1; row >= 0; row-- {
		if that.Grid[row][n].IsEmpty() {
			return row, true
		}
	}

	return -1, false
}

// DropPiece - puts a piece of the given color into the lowest empty slot of column n.
// The caller must make sure the column is not full.
func (that *Board) DropPiece(n int, color Color) (Slot, int) {
	row, ok := that.FindOpenSlot(n)
	if !ok {
		panic(fmt.Errorf("%w: column %d", apperror.ErrColumnFull, n))
	}

	that.Grid[row][n].Color = color

	return that.Grid[row][n], row
}

// IsColumnFull - true when column n has no empty slot left.
func (that *Board) IsColumnFull(n int) bool {
	_, ok := that.FindOpenSlot(n)
	return !ok
}

// Rows - copies of the grid rows from top to bottom.
func (that *Board) Rows() [][]Slot {
	rows := make([][]Slot, 0, Rows)
	for _, row := range that.Grid {
		line := make([]Slot, Columns)
		copy(line, row[:])
		rows = append(rows, line)
	}

	return rows
}

// Columns - every column from left to right, each from top to bottom.
func (that *Board) Columns() [][]Slot {
	columns := make([][]Slot, 0, Columns)
	for n := 0; n < Columns; n++ {
		columns = append(columns, that.GetColumn(n))
	}

	return columns
}

// Diagonals - every down-right and down-left window of four slots.
func (that *Board) Diagonals() [][]Slot {
	windows := diagonalWindows()

	diagonals := make([][]Slot, 0, len(windows))
	for _, window := range windows {
		line := make([]Slot, 0, WinLength)
		for _, pos := range window {
			line = append(line, that.Grid[pos.Row][pos.Column])
		}
		diagonals = append(diagonals, line)
	}

	return diagonals
}

func diagonalWindows() [][WinLength]Position {
	var windows [][WinLength]Position

	for i := 0; i+WinLength <= Rows; i++ {
		for j := 0; j < Columns; j++ {
			if j+WinLength <= Columns {
				var window [WinLength]Position
				for k := 0; k < WinLength; k++ {
					window[k] = Position{Row: i + k, Column: j + k}
				}
				windows = append(windows, window)
			}

			if j >= WinLength-1 {
				var window [WinLength]Position
				for k := 0; k < WinLength; k++ {
					window[k] = Position{Row: i + k, Column: j - k}
				}
				windows = append(windows, window)
			}
		}
	}

	return windows
}

// Winner - true when any line holds four slots of the same color.
func (that *Board) Winner() bool {
	return that.WinningColor() != NoColor
}

// WinningColor - color of the first four-in-a-row found, scanning rows, then columns,
// then diagonals. Returns NoColor when nobody has won.
func (that *Board) WinningColor() Color {
	for _, lines := range [][][]Slot{that.Rows(), that.Columns(), that.Diagonals()} {
		for _, line := range lines {
			if color := fourInARow(line); color != NoColor {
				return color
			}
		}
	}

	return NoColor
}

// Full - true when every slot is occupied.
func (that *Board) Full() bool {
	for _, row := range that.Grid {
		for _, slot := range row {
			if slot.IsEmpty() {
				return false
			}
		}
	}

	return true
}

// Stalemate - a full board without a winner. A full board with four in a row is a win.
func (that *Board) Stalemate() bool {
	return that.Full() && !that.Winner()
}

// GameOver - true on a win or a stalemate.
func (that *Board) GameOver() bool {
	return that.Winner() || that.Stalemate()
}

// fourInARow - slides a window of WinLength over the line and stops once fewer
// than WinLength slots remain.
func fourInARow(line []Slot) Color {
	for start := 0; start+WinLength <= len(line); start++ {
		color := line[start].Color
		if color == NoColor {
			continue
		}

		matched := true
		for _, slot := range line[start+1 : start+WinLength] {
			if slot.Color != color {
				matched = false
				break
			}
		}

		if matched {
			return color
		}
	}

	return NoColor
}
