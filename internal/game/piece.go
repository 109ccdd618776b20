package game

// Piece is a falling instance of a tetromino.
type Piece struct {
	def      *Tetromino
	Rotation int
	X, Y     int
}

// Spawn creates a piece of kind k in its spawn orientation, horizontally
// centered on a board of the given width, at the top row.
func Spawn(k Kind, boardWidth int) *Piece {
	def := Definition(k)
	s := def.Shape(0)
	return &Piece{
		def:      def,
		Rotation: 0,
		X:        boardWidth/2 - s.Width()/2,
		Y:        0,
	}
}

// NewPiece spawns k on a standard-width board.
func NewPiece(k Kind) *Piece {
	return Spawn(k, BoardWidth)
}

func (p *Piece) Kind() Kind {
	return p.def.Kind
}

func (p *Piece) Color() Color {
	return p.def.Color
}

// Shape is the piece's current rotation state.
func (p *Piece) Shape() Shape {
	return p.def.Shape(p.Rotation)
}

// NextRotation returns the rotation index and shape that a clockwise turn
// would produce, without changing the piece.
func (p *Piece) NextRotation() (int, Shape) {
	r := (p.Rotation + 1) % p.def.States()
	return r, p.def.Shape(r)
}

// Blocks returns the absolute grid coordinates of the piece's blocks.
func (p *Piece) Blocks() []Point {
	return p.BlocksAt(p.X, p.Y)
}

// BlocksAt returns the blocks the piece would cover if anchored at (x, y).
func (p *Piece) BlocksAt(x, y int) []Point {
	pts := p.Shape().Blocks()
	for i := range pts {
		pts[i].X += x
		pts[i].Y += y
	}
	return pts
}

func (p *Piece) clone() *Piece {
	c := *p
	return &c
}
