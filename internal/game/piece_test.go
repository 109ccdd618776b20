package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSpawnCentered(t *testing.T) {
	tests := []struct {
		kind Kind
		x    int
	}{
		{KindI, 3},
		{KindO, 4},
		{KindT, 4},
		{KindS, 4},
		{KindZ, 4},
		{KindJ, 4},
		{KindL, 4},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			p := NewPiece(tt.kind)
			assert.Equal(t, tt.x, p.X)
			assert.Equal(t, 0, p.Y)
			assert.Equal(t, 0, p.Rotation)
		})
	}
}

func TestEveryRotationHasFourBlocks(t *testing.T) {
	for _, k := range Kinds {
		def := Definition(k)
		for r := 0; r < def.States(); r++ {
			assert.Len(t, def.Shape(r).Blocks(), 4, "%s rotation %d", k, r)
		}
	}
}

func TestNextRotationCycles(t *testing.T) {
	p := NewPiece(KindJ)
	seen := []int{}
	for i := 0; i < 4; i++ {
		r, _ := p.NextRotation()
		p.Rotation = r
		seen = append(seen, r)
	}
	assert.Equal(t, []int{1, 2, 3, 0}, seen)

	o := NewPiece(KindO)
	r, s := o.NextRotation()
	assert.Equal(t, 0, r)
	assert.Equal(t, o.Shape(), s)
}

func TestBlocksAt(t *testing.T) {
	p := NewPiece(KindO)
	assert.ElementsMatch(t, []Point{{4, 0}, {5, 0}, {4, 1}, {5, 1}}, p.Blocks())
	assert.ElementsMatch(t, []Point{{0, 7}, {1, 7}, {0, 8}, {1, 8}}, p.BlocksAt(0, 7))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "I", KindI.String())
	assert.Equal(t, "L", KindL.String())
	assert.Equal(t, "?", Kind(42).String())
}

func TestDefinitionUnknownKindPanics(t *testing.T) {
	assert.Panics(t, func() { Definition(Kind(-1)) })
}

func TestPieceGeneratorDeterministic(t *testing.T) {
	a := NewPieceGenerator(42)
	b := NewPieceGenerator(42)
	for i := 0; i < 50; i++ {
		assert.Equal(t, a.Peek(), b.Peek())
		assert.Equal(t, a.Next(), b.Next())
	}
}

func TestPieceGeneratorBagContainsEveryKind(t *testing.T) {
	pg := NewPieceGenerator(7)
	for bag := 0; bag < 5; bag++ {
		seen := map[Kind]int{}
		for i := 0; i < len(Kinds); i++ {
			seen[pg.Next()]++
		}
		assert.Len(t, seen, len(Kinds))
		for k, n := range seen {
			assert.Equal(t, 1, n, "kind %s in bag %d", k, bag)
		}
	}
}

func TestFallInterval(t *testing.T) {
	s := Settings{
		StartingInterval: 800 * time.Millisecond,
		SpeedIncrement:   50 * time.Millisecond,
		MinInterval:      100 * time.Millisecond,
		LinesPerLevel:    10,
	}
	assert.Equal(t, 800*time.Millisecond, s.FallInterval(1))
	assert.Equal(t, 600*time.Millisecond, s.FallInterval(5))
	assert.Equal(t, 100*time.Millisecond, s.FallInterval(15))
	assert.Equal(t, 100*time.Millisecond, s.FallInterval(20))
}

func TestScoreForLines(t *testing.T) {
	assert.Equal(t, 0, ScoreForLines(0, 1))
	assert.Equal(t, 100, ScoreForLines(1, 1))
	assert.Equal(t, 300, ScoreForLines(2, 1))
	assert.Equal(t, 900, ScoreForLines(2, 3))
	assert.Equal(t, 500, ScoreForLines(3, 1))
	assert.Equal(t, 1600, ScoreForLines(4, 2))
	assert.Equal(t, 0, ScoreForLines(5, 1))
}

func TestLevelForLines(t *testing.T) {
	s := DefaultSettings()
	assert.Equal(t, 1, s.LevelForLines(0))
	assert.Equal(t, 1, s.LevelForLines(9))
	assert.Equal(t, 2, s.LevelForLines(10))
	assert.Equal(t, 5, s.LevelForLines(47))
}

func TestParseCommand(t *testing.T) {
	for c := range commandNames {
		got, err := ParseCommand(c.String())
		assert.NoError(t, err)
		assert.Equal(t, c, got)
	}
	_, err := ParseCommand("teleport")
	assert.Error(t, err)
}
