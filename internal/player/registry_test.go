package player

import (
	"testing"
	"time"

	"github.com/hersh/startris/internal/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryAddRemove(t *testing.T) {
	r := NewRegistry()
	r.Add("a", "ana")
	r.Add("b", "bo")
	r.Add("a", "ana2")

	assert.Equal(t, 2, r.Count())
	all := r.All()
	require.Len(t, all, 2)
	assert.Equal(t, "ana2", all[0].Name)
	assert.Equal(t, "bo", all[1].Name)

	r.Remove("a")
	r.Remove("missing")
	_, ok := r.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 1, r.Count())
}

func TestRegistryUpdateAndRecord(t *testing.T) {
	r := NewRegistry()
	r.Add("a", "ana")

	r.Update("a", 300, 2, 1, game.StateRunning.String())
	assert.Equal(t, 1, r.CountPlaying())

	r.Update("a", 300, 2, 1, game.StateGameOver.String())
	assert.Equal(t, 0, r.CountPlaying())

	r.RecordGame("a", Result{Score: 300, Lines: 2, Level: 1})
	r.RecordGame("a", Result{Score: 100, Lines: 5, Level: 1})
	p, ok := r.Get("a")
	require.True(t, ok)
	assert.Equal(t, 2, p.Games)
	assert.Equal(t, 300, p.Best)
	assert.Equal(t, 5, p.BestLines)
	assert.Len(t, p.History, 2)

	// Get hands out copies
	p.History[0].Score = 9999
	again, _ := r.Get("a")
	assert.Equal(t, 300, again.History[0].Score)
}

func TestRanking(t *testing.T) {
	r := NewRegistry()
	r.Add("a", "ana")
	r.Add("b", "bo")
	r.RecordGame("b", Result{Score: 800})
	r.RecordGame("a", Result{Score: 100})

	ranking := r.Ranking()
	require.Len(t, ranking, 2)
	assert.Equal(t, "bo", ranking[0].Name)
}

type nopScheduler struct{}

func (nopScheduler) Arm(time.Duration) {}
func (nopScheduler) Cancel()           {}

func TestRecorderRecordsEachGameOnce(t *testing.T) {
	r := NewRegistry()
	r.Add("a", "ana")
	rec := NewRecorder(r, "a")

	e := game.NewEngine(nopScheduler{}, game.WithRenderer(rec))
	e.Start()
	p, _ := r.Get("a")
	assert.True(t, p.Playing)

	for !e.IsGameOver() {
		e.HardDrop()
	}
	snap := e.Snapshot()
	rec.Render(snap)

	p, _ = r.Get("a")
	assert.Equal(t, 1, p.Games)
	assert.Equal(t, snap.Score, p.Best)
	assert.False(t, p.Playing)

	e.HandleCommand(game.CommandRestart)
	for !e.IsGameOver() {
		e.HardDrop()
	}
	p, _ = r.Get("a")
	assert.Equal(t, 2, p.Games)
}
