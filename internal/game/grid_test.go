package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fillRow occupies every cell of row y except the listed columns.
func fillRow(g *Grid, y int, c Color, holes ...int) {
	for x := 0; x < g.Width; x++ {
		g.Set(x, y, Occupied(c))
	}
	for _, x := range holes {
		g.Set(x, y, Empty())
	}
}

func TestIsValidPlacementBounds(t *testing.T) {
	g := NewBoard()
	s := Definition(KindO).Shape(0)

	assert.True(t, g.IsValidPlacement(s, 0, 0))
	assert.True(t, g.IsValidPlacement(s, 8, 18))
	assert.False(t, g.IsValidPlacement(s, -1, 0), "left wall")
	assert.False(t, g.IsValidPlacement(s, 9, 0), "right wall")
	assert.False(t, g.IsValidPlacement(s, 0, 19), "floor")
}

func TestIsValidPlacementAboveField(t *testing.T) {
	g := NewBoard()
	fillRow(g, 0, ColorRed)
	s := Definition(KindO).Shape(0)

	// both rows above the field: only columns are checked
	assert.True(t, g.IsValidPlacement(s, 4, -2))
	assert.False(t, g.IsValidPlacement(s, -1, -2))
	assert.False(t, g.IsValidPlacement(s, 9, -2))
	// lower row reaches the filled top row
	assert.False(t, g.IsValidPlacement(s, 4, -1))
}

func TestIsValidPlacementOccupied(t *testing.T) {
	g := NewBoard()
	g.Set(5, 10, Occupied(ColorBlue))
	s := Definition(KindO).Shape(0)

	assert.False(t, g.IsValidPlacement(s, 4, 9))
	assert.False(t, g.IsValidPlacement(s, 5, 10))
	assert.True(t, g.IsValidPlacement(s, 6, 10))
	assert.True(t, g.IsValidPlacement(s, 4, 11))
}

func TestLockWritesColor(t *testing.T) {
	g := NewBoard()
	p := NewPiece(KindT)
	p.Y = 18

	above := g.Lock(p)
	assert.False(t, above)

	for _, pt := range p.Blocks() {
		c, ok := g.At(pt.X, pt.Y).Color()
		require.True(t, ok)
		assert.Equal(t, ColorPurple, c)
	}
	filled := 0
	for _, v := range g.ToFlat() {
		if v != 0 {
			filled++
		}
	}
	assert.Equal(t, 4, filled)
}

func TestLockAboveField(t *testing.T) {
	g := NewBoard()
	p := NewPiece(KindO)
	p.Y = -1

	assert.True(t, g.Lock(p))
	assert.False(t, g.At(4, 0).IsEmpty())
	assert.False(t, g.At(5, 0).IsEmpty())
}

func TestClearFullRowsTwoRows(t *testing.T) {
	g := NewBoard()
	// every row but 5 and 6 keeps one hole, in a column unique to that row
	for y := 0; y < g.Height; y++ {
		if y == 5 || y == 6 {
			fillRow(g, y, ColorRed)
			continue
		}
		fillRow(g, y, ColorGreen, y%g.Width)
	}
	before := g.Clone()

	n := g.ClearFullRows()
	require.Equal(t, 2, n)

	for y := 0; y < 2; y++ {
		for x := 0; x < g.Width; x++ {
			assert.True(t, g.At(x, y).IsEmpty(), "row %d should be empty", y)
		}
	}
	// rows 0..4 moved down by two
	for y := 0; y < 5; y++ {
		assert.Equal(t, before.Cells[y], g.Cells[y+2], "row %d", y)
	}
	// rows below the cleared block stay put
	for y := 7; y < g.Height; y++ {
		assert.Equal(t, before.Cells[y], g.Cells[y], "row %d", y)
	}
}

func TestClearFullRowsFourConsecutive(t *testing.T) {
	g := NewBoard()
	for y := 16; y < 20; y++ {
		fillRow(g, y, ColorCyan)
	}
	fillRow(g, 15, ColorRed, 0)

	assert.Equal(t, 4, g.ClearFullRows())
	assert.True(t, g.At(0, 19).IsEmpty())
	c, ok := g.At(1, 19).Color()
	require.True(t, ok)
	assert.Equal(t, ColorRed, c)
	for y := 0; y < 19; y++ {
		for x := 0; x < g.Width; x++ {
			assert.True(t, g.At(x, y).IsEmpty())
		}
	}
}

func TestClearFullRowsNone(t *testing.T) {
	g := NewBoard()
	fillRow(g, 19, ColorBlue, 3)
	assert.Equal(t, 0, g.ClearFullRows())
	assert.False(t, g.At(0, 19).IsEmpty())
}

func TestClearFullRowsSeparated(t *testing.T) {
	g := NewBoard()
	fillRow(g, 19, ColorBlue)
	fillRow(g, 18, ColorRed, 2)
	fillRow(g, 17, ColorBlue)

	assert.Equal(t, 2, g.ClearFullRows())
	assert.True(t, g.At(2, 19).IsEmpty())
	assert.False(t, g.At(3, 19).IsEmpty())
	for x := 0; x < g.Width; x++ {
		assert.True(t, g.At(x, 18).IsEmpty())
	}
}

func TestGridFromFlat(t *testing.T) {
	g := NewBoard()
	g.Set(0, 0, Occupied(ColorCyan))
	g.Set(9, 19, Occupied(ColorOrange))

	back := GridFromFlat(g.ToFlat(), g.Width, g.Height)
	assert.Equal(t, g.Cells, back.Cells)
}
