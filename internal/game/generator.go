package game

import (
	"math/rand"
	"time"
)

// Source supplies the kinds of successive pieces.
type Source interface {
	Next() Kind
}

// PieceGenerator produces pieces using the 7-bag randomizer system.
// When created with the same seed, two generators produce identical sequences.
type PieceGenerator struct {
	rng *rand.Rand
	bag []Kind
}

// NewPieceGenerator creates a seeded 7-bag piece generator. A zero seed picks
// one from the clock.
func NewPieceGenerator(seed int64) *PieceGenerator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &PieceGenerator{
		rng: rand.New(rand.NewSource(seed)),
	}
}

// Next returns the next kind from the 7-bag.
func (pg *PieceGenerator) Next() Kind {
	if len(pg.bag) == 0 {
		pg.refillBag()
	}
	k := pg.bag[0]
	pg.bag = pg.bag[1:]
	return k
}

// Peek returns the next kind without consuming it.
func (pg *PieceGenerator) Peek() Kind {
	if len(pg.bag) == 0 {
		pg.refillBag()
	}
	return pg.bag[0]
}

func (pg *PieceGenerator) refillBag() {
	pg.bag = append(pg.bag[:0], Kinds[:]...)
	// Fisher-Yates shuffle
	for i := len(pg.bag) - 1; i > 0; i-- {
		j := pg.rng.Intn(i + 1)
		pg.bag[i], pg.bag[j] = pg.bag[j], pg.bag[i]
	}
}
