package game

const (
	BoardWidth  = 10
	BoardHeight = 20
)

// Kind identifies one of the seven tetrominoes.
type Kind int

const (
	KindI Kind = iota
	KindO
	KindT
	KindS
	KindZ
	KindJ
	KindL
)

// Kinds lists every piece kind in bag order.
var Kinds = [...]Kind{KindI, KindO, KindT, KindS, KindZ, KindJ, KindL}

func (k Kind) String() string {
	if k < KindI || k > KindL {
		return "?"
	}
	return "IOTSZJL"[k : k+1]
}

// Color is the display color id of a settled or falling block.
type Color uint8

const (
	ColorCyan Color = iota + 1
	ColorYellow
	ColorPurple
	ColorGreen
	ColorRed
	ColorBlue
	ColorOrange
)

// Shape is one rotation state: rows of occupied/empty flags.
type Shape [][]bool

// Width is the column count of the shape's bounding matrix.
func (s Shape) Width() int {
	if len(s) == 0 {
		return 0
	}
	return len(s[0])
}

// Height is the row count of the shape's bounding matrix.
func (s Shape) Height() int {
	return len(s)
}

// Blocks returns the occupied offsets of the shape relative to its top-left corner.
func (s Shape) Blocks() []Point {
	var pts []Point
	for y, row := range s {
		for x, filled := range row {
			if filled {
				pts = append(pts, Point{X: x, Y: y})
			}
		}
	}
	return pts
}

// Point is a grid coordinate.
type Point struct {
	X, Y int
}

// Tetromino is the immutable definition of one piece kind.
type Tetromino struct {
	Kind      Kind
	Color     Color
	Rotations []Shape
}

// States is the number of distinct rotation states.
func (t *Tetromino) States() int {
	return len(t.Rotations)
}

// Shape returns the rotation state at index r, wrapping cyclically.
func (t *Tetromino) Shape(r int) Shape {
	n := len(t.Rotations)
	return t.Rotations[((r%n)+n)%n]
}

// Definition returns the tetromino table entry for k.
func Definition(k Kind) *Tetromino {
	if k < KindI || k > KindL {
		panic("game: unknown piece kind")
	}
	return &tetrominoes[k]
}

// shape builds a Shape from a 0/1 matrix.
func shape(rows ...[]int) Shape {
	s := make(Shape, len(rows))
	for y, row := range rows {
		s[y] = make([]bool, len(row))
		for x, v := range row {
			s[y][x] = v == 1
		}
	}
	return s
}

// Rotation states are listed clockwise starting from the spawn orientation.
var tetrominoes = [...]Tetromino{
	KindI: {
		Kind:  KindI,
		Color: ColorCyan,
		Rotations: []Shape{
			shape([]int{0, 0, 0, 0}, []int{1, 1, 1, 1}, []int{0, 0, 0, 0}, []int{0, 0, 0, 0}),
			shape([]int{0, 1, 0, 0}, []int{0, 1, 0, 0}, []int{0, 1, 0, 0}, []int{0, 1, 0, 0}),
			shape([]int{0, 0, 0, 0}, []int{0, 0, 0, 0}, []int{1, 1, 1, 1}, []int{0, 0, 0, 0}),
			shape([]int{0, 0, 1, 0}, []int{0, 0, 1, 0}, []int{0, 0, 1, 0}, []int{0, 0, 1, 0}),
		},
	},
	KindO: {
		Kind:  KindO,
		Color: ColorYellow,
		Rotations: []Shape{
			shape([]int{1, 1}, []int{1, 1}),
		},
	},
	KindT: {
		Kind:  KindT,
		Color: ColorPurple,
		Rotations: []Shape{
			shape([]int{0, 1, 0}, []int{1, 1, 1}, []int{0, 0, 0}),
			shape([]int{0, 1, 0}, []int{0, 1, 1}, []int{0, 1, 0}),
			shape([]int{0, 0, 0}, []int{1, 1, 1}, []int{0, 1, 0}),
			shape([]int{0, 1, 0}, []int{1, 1, 0}, []int{0, 1, 0}),
		},
	},
	KindS: {
		Kind:  KindS,
		Color: ColorGreen,
		Rotations: []Shape{
			shape([]int{0, 1, 1}, []int{1, 1, 0}, []int{0, 0, 0}),
			shape([]int{0, 1, 0}, []int{0, 1, 1}, []int{0, 0, 1}),
			shape([]int{0, 0, 0}, []int{0, 1, 1}, []int{1, 1, 0}),
			shape([]int{1, 0, 0}, []int{1, 1, 0}, []int{0, 1, 0}),
		},
	},
	KindZ: {
		Kind:  KindZ,
		Color: ColorRed,
		Rotations: []Shape{
			shape([]int{1, 1, 0}, []int{0, 1, 1}, []int{0, 0, 0}),
			shape([]int{0, 0, 1}, []int{0, 1, 1}, []int{0, 1, 0}),
			shape([]int{0, 0, 0}, []int{1, 1, 0}, []int{0, 1, 1}),
			shape([]int{0, 1, 0}, []int{1, 1, 0}, []int{1, 0, 0}),
		},
	},
	KindJ: {
		Kind:  KindJ,
		Color: ColorBlue,
		Rotations: []Shape{
			shape([]int{1, 0, 0}, []int{1, 1, 1}, []int{0, 0, 0}),
			shape([]int{0, 1, 1}, []int{0, 1, 0}, []int{0, 1, 0}),
			shape([]int{0, 0, 0}, []int{1, 1, 1}, []int{0, 0, 1}),
			shape([]int{0, 1, 0}, []int{0, 1, 0}, []int{1, 1, 0}),
		},
	},
	KindL: {
		Kind:  KindL,
		Color: ColorOrange,
		Rotations: []Shape{
			shape([]int{0, 0, 1}, []int{1, 1, 1}, []int{0, 0, 0}),
			shape([]int{0, 1, 0}, []int{0, 1, 0}, []int{0, 1, 1}),
			shape([]int{0, 0, 0}, []int{1, 1, 1}, []int{1, 0, 0}),
			shape([]int{1, 1, 0}, []int{0, 1, 0}, []int{0, 1, 0}),
		},
	},
}
