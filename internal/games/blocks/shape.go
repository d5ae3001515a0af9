// Package blocks implements the falling-block puzzle: a fixed catalog of
// seven shapes, a bordered board, and a single-threaded engine that advances
// one discrete frame per Tick.
package blocks

import "fmt"

// PatternSize is the edge length of every piece bounding box.
const PatternSize = 5

// Pattern is a piece occupancy mask indexed as p[row][col]; 1 means occupied.
type Pattern [PatternSize][PatternSize]uint8

// Shape identifies one of the seven piece geometries.
type Shape int

const (
	Shape0 Shape = iota // vertical bar
	Shape1              // L
	Shape2              // J
	Shape3              // square
	Shape4              // T
	Shape5              // S
	Shape6              // Z
)

// ShapeCount is the number of shapes in the catalog.
const ShapeCount = 7

// basePatterns holds every shape in its spawn orientation.
var basePatterns = [ShapeCount]Pattern{
	Shape0: {
		{0, 0, 0, 0, 0},
		{0, 0, 1, 0, 0},
		{0, 0, 1, 0, 0},
		{0, 0, 1, 0, 0},
		{0, 0, 1, 0, 0},
	},
	Shape1: {
		{0, 0, 0, 0, 0},
		{0, 0, 1, 0, 0},
		{0, 0, 1, 0, 0},
		{0, 0, 1, 1, 0},
		{0, 0, 0, 0, 0},
	},
	Shape2: {
		{0, 0, 0, 0, 0},
		{0, 0, 1, 0, 0},
		{0, 0, 1, 0, 0},
		{0, 1, 1, 0, 0},
		{0, 0, 0, 0, 0},
	},
	Shape3: {
		{0, 0, 0, 0, 0},
		{0, 0, 1, 1, 0},
		{0, 0, 1, 1, 0},
		{0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0},
	},
	Shape4: {
		{0, 0, 0, 0, 0},
		{0, 0, 1, 0, 0},
		{0, 1, 1, 1, 0},
		{0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0},
	},
	Shape5: {
		{0, 0, 0, 0, 0},
		{0, 0, 1, 1, 0},
		{0, 1, 1, 0, 0},
		{0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0},
	},
	Shape6: {
		{0, 0, 0, 0, 0},
		{0, 1, 1, 0, 0},
		{0, 0, 1, 1, 0},
		{0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0},
	},
}

// Valid reports whether s is one of the catalog shapes.
func (s Shape) Valid() bool {
	return s >= 0 && s < ShapeCount
}

// String returns a short name like "S3".
func (s Shape) String() string {
	return fmt.Sprintf("S%d", int(s))
}

// BasePattern returns the unrotated mask of a shape.
// Panics for shapes outside the catalog.
func BasePattern(s Shape) Pattern {
	if !s.Valid() {
		panic(fmt.Sprintf("blocks: unknown shape %d", int(s)))
	}
	return basePatterns[s]
}

// RotateQuarter turns a mask by one quarter: result[4-j][i] = p[i][j].
func RotateQuarter(p Pattern) Pattern {
	var result Pattern
	for i := range PatternSize {
		for j := range PatternSize {
			result[PatternSize-1-j][i] = p[i][j]
		}
	}
	return result
}
