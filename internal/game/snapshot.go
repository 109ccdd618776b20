package game

import "time"

// Snapshot is a read-only copy of everything a renderer needs.
type Snapshot struct {
	Width  int
	Height int
	Cells  [][]Cell

	Active      []Point
	ActiveColor Color
	Ghost       []Point

	Next      Kind
	NextShape Shape
	NextColor Color

	Score    int
	Lines    int
	Level    int
	Interval time.Duration
	State    State
}

// GameOver reports whether the snapshot was taken after block-out.
func (s Snapshot) GameOver() bool {
	return s.State == StateGameOver
}

// Grid rebuilds the settled cells as a Grid.
func (s Snapshot) Grid() *Grid {
	g := NewGrid(s.Width, s.Height)
	for y := range s.Cells {
		copy(g.Cells[y], s.Cells[y])
	}
	return g
}

// ColorAt resolves what is drawn at (x, y): the active piece wins over the
// settled grid. ghost is true when only the ghost piece covers the cell.
func (s Snapshot) ColorAt(x, y int) (c Color, filled bool, ghost bool) {
	for _, pt := range s.Active {
		if pt.X == x && pt.Y == y {
			return s.ActiveColor, true, false
		}
	}
	if y >= 0 && y < len(s.Cells) && x >= 0 && x < len(s.Cells[y]) {
		if c, ok := s.Cells[y][x].Color(); ok {
			return c, true, false
		}
	}
	for _, pt := range s.Ghost {
		if pt.X == x && pt.Y == y {
			return s.ActiveColor, false, true
		}
	}
	return 0, false, false
}
