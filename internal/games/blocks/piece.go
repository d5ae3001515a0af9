package blocks

import "fmt"

// ColorCount is the number of piece color tags.
const ColorCount = 3

// Point is a board cell coordinate.
type Point struct {
	X, Y int
}

// Piece is the geometric state of one piece instance.
// It has no collision awareness; the engine validates every change.
type Piece struct {
	X, Y     int // top-left corner of the 5x5 box, in board cells
	Shape    Shape
	Rotation int // applied quarter turns, 0..3
	Color    int // color tag, 0..2
}

// Move translates the piece unconditionally.
func (p *Piece) Move(dx, dy int) {
	p.X += dx
	p.Y += dy
}

// Rotate turns the piece a quarter: dir > 0 counter-clockwise, otherwise clockwise.
func (p *Piece) Rotate(dir int) {
	if dir > 0 {
		p.Rotation = (p.Rotation + 1) % 4
	} else {
		p.Rotation = (p.Rotation + 3) % 4
	}
}

// Pattern returns the occupancy mask for the current rotation.
func (p Piece) Pattern() Pattern {
	if p.Rotation < 0 || p.Rotation > 3 {
		panic(fmt.Sprintf("blocks: invalid rotation %d", p.Rotation))
	}
	result := BasePattern(p.Shape)
	for range p.Rotation {
		result = RotateQuarter(result)
	}
	return result
}

// Cells returns the board coordinates of the occupied cells, row by row.
func (p Piece) Cells() []Point {
	pattern := p.Pattern()
	cells := make([]Point, 0, 4)
	for i := range PatternSize {
		for j := range PatternSize {
			if pattern[i][j] != 0 {
				cells = append(cells, Point{X: p.X + j, Y: p.Y + i})
			}
		}
	}
	return cells
}

// FragmentValue is the board value written when the piece locks.
func (p Piece) FragmentValue() uint8 {
	return CellFragment + uint8(p.Color)
}
