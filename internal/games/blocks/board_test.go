package blocks

import (
	"errors"
	"testing"
)

func fullRow() []int {
	return []int{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1}
}

func mustBoard(t *testing.T, rows [][]int) *Board {
	t.Helper()
	b, err := BoardFromRows(rows, DefaultWidth, DefaultHeight)
	if err != nil {
		t.Fatalf("BoardFromRows() error = %v", err)
	}
	return b
}

func rowEquals(got []uint8, want []int) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if int(got[i]) != want[i] {
			return false
		}
	}
	return true
}

func TestNewBoardBorder(t *testing.T) {
	b := NewBoard(DefaultWidth, DefaultHeight)

	for y := range DefaultHeight {
		if b.At(0, y) != CellWall || b.At(DefaultWidth-1, y) != CellWall {
			t.Errorf("row %d: missing side wall", y)
		}
	}
	for x := range DefaultWidth {
		if b.At(x, DefaultHeight-1) != CellWall {
			t.Errorf("column %d: missing floor", x)
		}
	}
	if b.At(5, 5) != CellEmpty {
		t.Errorf("At(5, 5) = %d, expected empty", b.At(5, 5))
	}
}

func TestNewBoardMatchesEmptyLayout(t *testing.T) {
	b := NewBoard(DefaultWidth, DefaultHeight)
	layout, _ := Layout(LayoutEmpty)

	for y, row := range layout {
		if !rowEquals(b.Row(y), row) {
			t.Errorf("row %d = %v, expected %v", y, b.Row(y), row)
		}
	}
}

func TestBoardFromRowsErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func([][]int) [][]int
		want   error
	}{
		{"too few rows", func(r [][]int) [][]int { return r[1:] }, ErrBoardShape},
		{"short row", func(r [][]int) [][]int { r[3] = r[3][:11]; return r }, ErrBoardShape},
		{"negative value", func(r [][]int) [][]int { r[4][4] = -1; return r }, ErrCellValue},
		{"value too large", func(r [][]int) [][]int { r[4][4] = 5; return r }, ErrCellValue},
		{"hole in left wall", func(r [][]int) [][]int { r[7][0] = 0; return r }, ErrBorder},
		{"fragment in right wall", func(r [][]int) [][]int { r[7][11] = 2; return r }, ErrBorder},
		{"hole in floor", func(r [][]int) [][]int { r[20][5] = 0; return r }, ErrBorder},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := tt.mutate(emptyLayout())
			_, err := BoardFromRows(rows, DefaultWidth, DefaultHeight)
			if !errors.Is(err, tt.want) {
				t.Errorf("BoardFromRows() error = %v, expected %v", err, tt.want)
			}
		})
	}
}

func TestBoardFromRowsAcceptsFragments(t *testing.T) {
	rows := emptyLayout()
	rows[19][1] = 2
	rows[19][2] = 3
	rows[19][3] = 4

	b := mustBoard(t, rows)
	if b.At(3, 19) != 4 {
		t.Errorf("At(3, 19) = %d, expected 4", b.At(3, 19))
	}
	if !b.IsFilled(1, 19) {
		t.Error("fragment cell should be filled")
	}
}

func TestIsFilledOutOfBoundsPanics(t *testing.T) {
	b := NewBoard(DefaultWidth, DefaultHeight)
	defer func() {
		if recover() == nil {
			t.Error("IsFilled(-1, 0) should panic")
		}
	}()
	b.IsFilled(-1, 0)
}

func TestClearRowsNoop(t *testing.T) {
	rows := emptyLayout()
	rows[19] = []int{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 0, 1}
	b := mustBoard(t, rows)
	before := b.String()

	if cleared := b.ClearRows(); cleared != nil {
		t.Errorf("ClearRows() = %v, expected nothing cleared", cleared)
	}
	if b.String() != before {
		t.Error("board changed without a filled row")
	}
}

func TestClearRowsBottomPair(t *testing.T) {
	rows := emptyLayout()
	rows[17] = []int{1, 1, 1, 0, 0, 0, 0, 0, 0, 0, 0, 1}
	rows[18] = fullRow()
	rows[19] = fullRow()
	b := mustBoard(t, rows)

	cleared := b.ClearRows()
	if len(cleared) != 2 || cleared[0] != 18 || cleared[1] != 19 {
		t.Errorf("ClearRows() = %v, expected [18 19]", cleared)
	}

	want := emptyLayout()
	want[19] = []int{1, 1, 1, 0, 0, 0, 0, 0, 0, 0, 0, 1}
	for y := range want {
		if !rowEquals(b.Row(y), want[y]) {
			t.Errorf("row %d = %v, expected %v", y, b.Row(y), want[y])
		}
	}
}

func TestClearRowsSingleAboveFloor(t *testing.T) {
	rows := emptyLayout()
	rows[18] = []int{1, 1, 1, 0, 0, 0, 0, 0, 0, 0, 0, 1}
	rows[19] = fullRow()
	b := mustBoard(t, rows)

	b.ClearRows()

	if !rowEquals(b.Row(19), []int{1, 1, 1, 0, 0, 0, 0, 0, 0, 0, 0, 1}) {
		t.Errorf("row 19 = %v, expected the old row 18", b.Row(19))
	}
	if !rowEquals(b.Row(18), emptyLayout()[18]) {
		t.Errorf("row 18 = %v, expected empty", b.Row(18))
	}
}

func TestClearRowsLeavesRowsBelowUntouched(t *testing.T) {
	// Rows below the lowest filled row keep their content; rows above
	// shift down by the number of cleared rows and are not dropped further.
	rows := emptyLayout()
	rows[2] = []int{1, 1, 1, 0, 0, 0, 0, 0, 0, 0, 0, 1}
	rows[3] = fullRow()
	rows[4] = fullRow()
	rows[10] = []int{1, 0, 0, 0, 0, 2, 0, 0, 0, 0, 0, 1}
	b := mustBoard(t, rows)

	b.ClearRows()

	if !rowEquals(b.Row(4), []int{1, 1, 1, 0, 0, 0, 0, 0, 0, 0, 0, 1}) {
		t.Errorf("row 4 = %v, expected the old row 2", b.Row(4))
	}
	if !rowEquals(b.Row(10), rows[10]) {
		t.Errorf("row 10 = %v, expected unchanged", b.Row(10))
	}
	for y := 0; y < 4; y++ {
		if !rowEquals(b.Row(y), emptyLayout()[y]) {
			t.Errorf("row %d = %v, expected empty", y, b.Row(y))
		}
	}
}

func TestClearRowsNonContiguous(t *testing.T) {
	a := []int{1, 2, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1}
	bRow := []int{1, 0, 3, 0, 0, 0, 0, 0, 0, 0, 0, 1}
	c := []int{1, 0, 0, 4, 0, 0, 0, 0, 0, 0, 0, 1}

	rows := emptyLayout()
	rows[15] = c
	rows[16] = a
	rows[17] = fullRow()
	rows[18] = bRow
	rows[19] = fullRow()
	b := mustBoard(t, rows)

	cleared := b.ClearRows()
	if len(cleared) != 2 || cleared[0] != 17 || cleared[1] != 19 {
		t.Errorf("ClearRows() = %v, expected [17 19]", cleared)
	}

	checks := map[int][]int{
		19: bRow,
		18: a,
		17: c,
		16: emptyLayout()[16],
		15: emptyLayout()[15],
	}
	for y, want := range checks {
		if !rowEquals(b.Row(y), want) {
			t.Errorf("row %d = %v, expected %v", y, b.Row(y), want)
		}
	}
}

func TestClearRowsShiftLaw(t *testing.T) {
	// For a contiguous block of k filled rows ending at maxRow,
	// post[y] = pre[y-k] for k <= y <= maxRow and rows 0..k-1 are emptied.
	rows := emptyLayout()
	for y := 0; y < 14; y++ {
		rows[y][1+y%10] = 2 + y%3
	}
	rows[14] = fullRow()
	rows[15] = fullRow()
	rows[16] = fullRow()
	rows[18] = []int{1, 0, 0, 0, 0, 0, 0, 0, 0, 2, 2, 1}
	b := mustBoard(t, rows)
	pre := b.Rows()

	b.ClearRows()

	const k, maxRow = 3, 16
	for y := k; y <= maxRow; y++ {
		if got := b.Row(y); string(got) != string(pre[y-k]) {
			t.Errorf("row %d = %v, expected %v", y, got, pre[y-k])
		}
	}
	for y := range k {
		if !rowEquals(b.Row(y), emptyLayout()[y]) {
			t.Errorf("row %d = %v, expected empty", y, b.Row(y))
		}
	}
	for y := maxRow + 1; y < DefaultHeight; y++ {
		if string(b.Row(y)) != string(pre[y]) {
			t.Errorf("row %d below the cleared block changed", y)
		}
	}
}

func TestCloneIsIndependent(t *testing.T) {
	b := NewBoard(DefaultWidth, DefaultHeight)
	c := b.Clone()
	c.Settle([]Point{{3, 3}}, 2)

	if b.At(3, 3) != CellEmpty {
		t.Error("Settle on a clone changed the original")
	}
}

func TestFormatRows(t *testing.T) {
	got := FormatRows([][]uint8{{1, 0, 1}, {1, 1, 1}})
	want := "1 0 1\n1 1 1"
	if got != want {
		t.Errorf("FormatRows() = %q, expected %q", got, want)
	}
}
