package blocks

import "sort"

// Built-in start layouts for the reference 12x21 board.
const (
	LayoutEmpty = "empty"
	LayoutDemo  = "demo"
)

var layouts = map[string]func() [][]int{
	LayoutEmpty: emptyLayout,
	LayoutDemo:  demoLayout,
}

// Layout returns a fresh copy of a named start board.
func Layout(name string) ([][]int, bool) {
	f, ok := layouts[name]
	if !ok {
		return nil, false
	}
	return f(), true
}

// LayoutNames lists the built-in layouts in sorted order.
func LayoutNames() []string {
	result := make([]string, 0, len(layouts))
	for name := range layouts {
		result = append(result, name)
	}
	sort.Strings(result)
	return result
}

func emptyLayout() [][]int {
	rows := make([][]int, DefaultHeight)
	for y := range rows {
		row := make([]int, DefaultWidth)
		row[0] = int(CellWall)
		row[DefaultWidth-1] = int(CellWall)
		if y == DefaultHeight-1 {
			for x := range row {
				row[x] = int(CellWall)
			}
		}
		rows[y] = row
	}
	return rows
}

// demoLayout is the pile the game originally shipped with: two nearly
// complete rows above the floor.
func demoLayout() [][]int {
	rows := emptyLayout()
	rows[18] = []int{1, 1, 1, 1, 1, 1, 1, 1, 1, 0, 0, 1}
	rows[19] = []int{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 0, 1}
	return rows
}
