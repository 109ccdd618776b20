package player

import "github.com/hersh/startris/internal/game"

// Recorder mirrors one player's game into a Registry. It is a game.Renderer
// and can also be fed snapshots received from a server.
type Recorder struct {
	reg  *Registry
	id   string
	last game.State
}

func NewRecorder(reg *Registry, id string) *Recorder {
	return &Recorder{reg: reg, id: id, last: game.StateIdle}
}

func (r *Recorder) Render(s game.Snapshot) {
	r.reg.Update(r.id, s.Score, s.Lines, s.Level, s.State.String())
	if s.State == game.StateGameOver && r.last != game.StateGameOver {
		r.reg.RecordGame(r.id, Result{Score: s.Score, Lines: s.Lines, Level: s.Level})
	}
	r.last = s.State
}
