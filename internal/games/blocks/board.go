package blocks

import (
	"errors"
	"fmt"
	"strings"
)

// Cell values stored on the board.
const (
	CellEmpty    uint8 = 0
	CellWall     uint8 = 1 // walls and floor, never cleared
	CellFragment uint8 = 2 // first fragment value; a fragment is 2 + color
)

// Reference board geometry.
const (
	DefaultWidth  = 12
	DefaultHeight = 21
)

var (
	// ErrBoardShape is returned when a literal board is not a width x height rectangle.
	ErrBoardShape = errors.New("blocks: board pattern has wrong dimensions")
	// ErrCellValue is returned for literal cells outside the known value range.
	ErrCellValue = errors.New("blocks: invalid cell value")
	// ErrBorder is returned when a literal board breaks the wall/floor border.
	ErrBorder = errors.New("blocks: board border must be walls and floor")
)

// Board is the grid of walls, floor and settled fragments.
// Cells are stored row-major in a single slice.
type Board struct {
	width  int
	height int
	cells  []uint8
}

// NewBoard creates an empty board with its walls and floor in place.
func NewBoard(width, height int) *Board {
	b := &Board{
		width:  width,
		height: height,
		cells:  make([]uint8, width*height),
	}
	b.initWallsAndFloor()
	return b
}

// BoardFromRows builds a board from a literal pattern.
// The pattern must be a width x height rectangle of values 0..2+ColorCount-1
// whose left column, right column and bottom row are walls.
func BoardFromRows(rows [][]int, width, height int) (*Board, error) {
	if len(rows) != height {
		return nil, fmt.Errorf("%w: %d rows, want %d", ErrBoardShape, len(rows), height)
	}

	b := &Board{
		width:  width,
		height: height,
		cells:  make([]uint8, width*height),
	}
	maxValue := int(CellFragment) + ColorCount - 1

	for y, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrBoardShape, y, len(row), width)
		}
		for x, v := range row {
			if v < 0 || v > maxValue {
				return nil, fmt.Errorf("%w: %d at (%d, %d)", ErrCellValue, v, x, y)
			}
			b.cells[y*width+x] = uint8(v)
		}
	}

	for y := range height {
		if b.At(0, y) != CellWall || b.At(width-1, y) != CellWall {
			return nil, fmt.Errorf("%w: row %d", ErrBorder, y)
		}
	}
	for x := range width {
		if b.At(x, height-1) != CellWall {
			return nil, fmt.Errorf("%w: floor column %d", ErrBorder, x)
		}
	}

	return b, nil
}

// initWallsAndFloor sets column 0, the last column and the last row to walls.
func (b *Board) initWallsAndFloor() {
	for y := range b.height {
		b.set(0, y, CellWall)
		b.set(b.width-1, y, CellWall)
	}
	for x := range b.width {
		b.set(x, b.height-1, CellWall)
	}
}

// Width returns the number of columns, walls included.
func (b *Board) Width() int {
	return b.width
}

// Height returns the number of rows, floor included.
func (b *Board) Height() int {
	return b.height
}

// InBounds reports whether (x, y) is a cell of the grid.
func (b *Board) InBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

func (b *Board) index(x, y int) int {
	if !b.InBounds(x, y) {
		panic(fmt.Sprintf("blocks: cell (%d, %d) outside %dx%d board", x, y, b.width, b.height))
	}
	return y*b.width + x
}

func (b *Board) set(x, y int, v uint8) {
	b.cells[b.index(x, y)] = v
}

// At returns the raw cell value. Panics outside the grid.
func (b *Board) At(x, y int) uint8 {
	return b.cells[b.index(x, y)]
}

// IsFilled reports whether the cell holds a wall or a fragment.
// Panics outside the grid; callers guard with InBounds.
func (b *Board) IsFilled(x, y int) bool {
	return b.At(x, y) >= CellWall
}

// Settle writes value into every given cell.
func (b *Board) Settle(cells []Point, value uint8) {
	for _, c := range cells {
		b.set(c.X, c.Y, value)
	}
}

// Row returns a copy of row y.
func (b *Board) Row(y int) []uint8 {
	row := make([]uint8, b.width)
	copy(row, b.cells[b.index(0, y):b.index(0, y)+b.width])
	return row
}

// Rows returns a copy of the whole grid, one slice per row.
func (b *Board) Rows() [][]uint8 {
	rows := make([][]uint8, b.height)
	for y := range b.height {
		rows[y] = b.Row(y)
	}
	return rows
}

// Clone returns an independent copy of the board.
func (b *Board) Clone() *Board {
	c := &Board{
		width:  b.width,
		height: b.height,
		cells:  make([]uint8, len(b.cells)),
	}
	copy(c.cells, b.cells)
	return c
}

// FilledRows returns, top to bottom, every row above the floor whose
// interior columns are all filled.
func (b *Board) FilledRows() []int {
	var rows []int
	for y := 0; y < b.height-1; y++ {
		if b.rowFilled(y) {
			rows = append(rows, y)
		}
	}
	return rows
}

func (b *Board) rowFilled(y int) bool {
	for x := 1; x < b.width-1; x++ {
		if !b.IsFilled(x, y) {
			return false
		}
	}
	return true
}

// ClearRows removes every filled row and compacts the rows above it.
// Rows 0..maxRow (maxRow being the lowest filled row) keep their relative
// order with the filled ones deleted, and empty rows are inserted at the top.
// Walls and floor are never touched. Returns the cleared rows, top to bottom.
func (b *Board) ClearRows() []int {
	filled := b.FilledRows()
	if len(filled) == 0 {
		return nil
	}

	cleared := make([]bool, b.height)
	for _, y := range filled {
		cleared[y] = true
	}
	maxRow := filled[len(filled)-1]

	// Walk upwards; write never passes y so unread rows are never overwritten.
	write := maxRow
	for y := maxRow; y >= 0; y-- {
		if cleared[y] {
			continue
		}
		if write != y {
			b.copyInterior(y, write)
		}
		write--
	}
	for ; write >= 0; write-- {
		b.clearInterior(write)
	}

	return filled
}

func (b *Board) copyInterior(from, to int) {
	for x := 1; x < b.width-1; x++ {
		b.set(x, to, b.At(x, from))
	}
}

func (b *Board) clearInterior(y int) {
	for x := 1; x < b.width-1; x++ {
		b.set(x, y, CellEmpty)
	}
}

// FormatRows renders rows as lines of space separated digits.
func FormatRows(rows [][]uint8) string {
	var sb strings.Builder
	for y, row := range rows {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x, v := range row {
			if x > 0 {
				sb.WriteByte(' ')
			}
			fmt.Fprintf(&sb, "%d", v)
		}
	}
	return sb.String()
}

// String renders the board with FormatRows.
func (b *Board) String() string {
	return FormatRows(b.Rows())
}
