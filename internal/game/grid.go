package game

// Cell is a single grid position: either empty or occupied by a color.
type Cell struct {
	filled bool
	color  Color
}

// Empty returns an unoccupied cell.
func Empty() Cell {
	return Cell{}
}

// Occupied returns a cell settled with color c.
func Occupied(c Color) Cell {
	return Cell{filled: true, color: c}
}

func (c Cell) IsEmpty() bool {
	return !c.filled
}

// Color returns the cell's color and whether the cell is occupied.
func (c Cell) Color() (Color, bool) {
	return c.color, c.filled
}

// Grid is the playfield of settled blocks. Row 0 is the top.
type Grid struct {
	Cells  [][]Cell
	Width  int
	Height int
}

func NewGrid(width, height int) *Grid {
	cells := make([][]Cell, height)
	for i := range cells {
		cells[i] = make([]Cell, width)
	}
	return &Grid{
		Cells:  cells,
		Width:  width,
		Height: height,
	}
}

// NewBoard returns an empty standard-size grid.
func NewBoard() *Grid {
	return NewGrid(BoardWidth, BoardHeight)
}

// At returns the cell at (x, y). Coordinates must be inside the grid.
func (g *Grid) At(x, y int) Cell {
	return g.Cells[y][x]
}

// Set overwrites the cell at (x, y).
func (g *Grid) Set(x, y int, c Cell) {
	g.Cells[y][x] = c
}

// IsValidPlacement reports whether s can sit with its top-left corner at
// (originX, originY). Blocks above the top row only have their column checked.
func (g *Grid) IsValidPlacement(s Shape, originX, originY int) bool {
	for y, row := range s {
		for x, filled := range row {
			if !filled {
				continue
			}
			gx := originX + x
			gy := originY + y
			if gx < 0 || gx >= g.Width {
				return false
			}
			if gy >= g.Height {
				return false
			}
			if gy >= 0 && g.Cells[gy][gx].filled {
				return false
			}
		}
	}
	return true
}

// Lock writes the piece into the grid. It reports whether any block was above
// the top row, in which case that block is dropped.
func (g *Grid) Lock(p *Piece) (aboveField bool) {
	c := p.Color()
	for _, pt := range p.Blocks() {
		if pt.Y < 0 {
			aboveField = true
			continue
		}
		if pt.Y < g.Height && pt.X >= 0 && pt.X < g.Width {
			g.Cells[pt.Y][pt.X] = Occupied(c)
		}
	}
	return aboveField
}

func (g *Grid) rowFull(y int) bool {
	for _, c := range g.Cells[y] {
		if !c.filled {
			return false
		}
	}
	return true
}

// ClearFullRows removes every fully occupied row, shifts the rows above it
// down and inserts empty rows at the top. It returns the number of rows removed.
func (g *Grid) ClearFullRows() int {
	cleared := 0
	for y := g.Height - 1; y >= 0; y-- {
		if !g.rowFull(y) {
			continue
		}
		copy(g.Cells[1:y+1], g.Cells[:y])
		g.Cells[0] = make([]Cell, g.Width)
		cleared++
		// the row that slid into y has not been checked yet
		y++
	}
	return cleared
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	out := NewGrid(g.Width, g.Height)
	for y := range g.Cells {
		copy(out.Cells[y], g.Cells[y])
	}
	return out
}

// ToFlat returns the grid as a flat row-major array of color ids (0 = empty).
func (g *Grid) ToFlat() []int {
	flat := make([]int, g.Height*g.Width)
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			if c, ok := g.Cells[y][x].Color(); ok {
				flat[y*g.Width+x] = int(c)
			}
		}
	}
	return flat
}

// GridFromFlat reconstructs a Grid from a flat color-id array.
func GridFromFlat(flat []int, width, height int) *Grid {
	g := NewGrid(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			idx := y*width + x
			if idx < len(flat) && flat[idx] != 0 {
				g.Cells[y][x] = Occupied(Color(flat[idx]))
			}
		}
	}
	return g
}
