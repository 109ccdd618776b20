package game

import (
	"fmt"
	"time"
)

// Scheduler calls Engine.Tick periodically. Arm replaces any previous
// schedule; after Cancel no tick from an earlier Arm may be delivered.
type Scheduler interface {
	Arm(period time.Duration)
	Cancel()
}

// Renderer receives a snapshot after every state change. It runs inside the
// engine call that caused the change and must not call back into the engine's
// mutating methods.
type Renderer interface {
	Render(Snapshot)
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(Snapshot)

func (f RendererFunc) Render(s Snapshot) { f(s) }

type Option func(*Engine)

func WithRenderer(r Renderer) Option {
	return func(e *Engine) { e.renderer = r }
}

func WithSource(s Source) Option {
	return func(e *Engine) { e.source = s }
}

func WithSettings(s Settings) Option {
	return func(e *Engine) { e.settings = s }
}

// Engine is the game state machine: Idle -> Running <-> Paused, Running ->
// GameOver, and back to Running through Start. It is not safe for concurrent
// use; the caller serializes ticks and commands.
type Engine struct {
	settings Settings
	sched    Scheduler
	renderer Renderer
	source   Source

	grid     *Grid
	current  *Piece
	next     *Piece
	score    int
	lines    int
	level    int
	interval time.Duration
	state    State

	busy bool
}

// wall kick offsets tried in order when a rotation collides
var rotationKicks = [...]int{0, 1, -1}

func NewEngine(sched Scheduler, opts ...Option) *Engine {
	if sched == nil {
		panic("game: nil scheduler")
	}
	e := &Engine{
		settings: DefaultSettings(),
		sched:    sched,
		state:    StateIdle,
		level:    1,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.source == nil {
		e.source = NewPieceGenerator(0)
	}
	e.grid = NewBoard()
	e.interval = e.settings.FallInterval(1)
	return e
}

func (e *Engine) enter() {
	if e.busy {
		panic("game: re-entrant engine call")
	}
	e.busy = true
}

func (e *Engine) leave() {
	e.busy = false
}

func (e *Engine) requireActive() {
	if e.current == nil {
		panic("game: no active piece, engine was never started")
	}
}

// Start begins a fresh game, discarding any previous one.
func (e *Engine) Start() {
	e.enter()
	defer e.leave()

	e.sched.Cancel()
	e.grid = NewBoard()
	e.score = 0
	e.lines = 0
	e.level = 1
	e.interval = e.settings.FallInterval(e.level)
	e.current = e.spawn()
	e.next = e.spawn()
	e.state = StateRunning
	e.sched.Arm(e.interval)
	e.render()
}

// Reset is Start.
func (e *Engine) Reset() {
	e.Start()
}

func (e *Engine) spawn() *Piece {
	return Spawn(e.source.Next(), e.grid.Width)
}

// Tick advances the active piece one row, locking it when it cannot move.
func (e *Engine) Tick() {
	e.enter()
	defer e.leave()

	e.requireActive()
	if e.state != StateRunning {
		return
	}
	e.softDrop()
	e.render()
}

// MoveLeft shifts the active piece one column left if the space is free.
func (e *Engine) MoveLeft() bool {
	return e.MoveHorizontal(-1)
}

// MoveRight shifts the active piece one column right if the space is free.
func (e *Engine) MoveRight() bool {
	return e.MoveHorizontal(1)
}

// MoveHorizontal shifts the active piece by dir (-1 or +1). A blocked move is
// not an error; it reports false and leaves the piece where it was.
func (e *Engine) MoveHorizontal(dir int) bool {
	if dir != -1 && dir != 1 {
		panic(fmt.Sprintf("game: invalid horizontal direction %d", dir))
	}
	e.enter()
	defer e.leave()

	e.requireActive()
	if e.state != StateRunning {
		return false
	}
	p := e.current
	if !e.grid.IsValidPlacement(p.Shape(), p.X+dir, p.Y) {
		return false
	}
	p.X += dir
	e.render()
	return true
}

// SoftDrop moves the active piece down one row. It reports false when the
// piece could not move and was locked instead, or when the game is not running.
func (e *Engine) SoftDrop() bool {
	e.enter()
	defer e.leave()

	e.requireActive()
	if e.state != StateRunning {
		return false
	}
	moved := e.softDrop()
	e.render()
	return moved
}

// HardDrop drops the active piece to its landing row and locks it.
func (e *Engine) HardDrop() bool {
	e.enter()
	defer e.leave()

	e.requireActive()
	if e.state != StateRunning {
		return false
	}
	p := e.current
	rows := e.ghostY() - p.Y
	p.Y += rows
	e.score += rows * hardDropPointsPerRow
	e.lockAndAdvance()
	e.render()
	return true
}

// Rotate turns the active piece clockwise, trying the current column, then one
// to the right, then one to the left. If none fits nothing changes.
func (e *Engine) Rotate() bool {
	e.enter()
	defer e.leave()

	e.requireActive()
	if e.state != StateRunning {
		return false
	}
	p := e.current
	r, s := p.NextRotation()
	for _, dx := range rotationKicks {
		if e.grid.IsValidPlacement(s, p.X+dx, p.Y) {
			p.Rotation = r
			p.X += dx
			e.render()
			return true
		}
	}
	return false
}

// TogglePause suspends or resumes a running game.
func (e *Engine) TogglePause() bool {
	e.enter()
	defer e.leave()

	e.requireActive()
	switch e.state {
	case StateRunning:
		e.sched.Cancel()
		e.state = StatePaused
	case StatePaused:
		e.state = StateRunning
		e.sched.Arm(e.interval)
	default:
		return false
	}
	e.render()
	return true
}

// HandleCommand dispatches cmd and reports whether it was applied. Restart is
// only honoured before the first game and after game over; every other command
// is ignored once the game is over. Unknown commands panic.
func (e *Engine) HandleCommand(cmd Command) bool {
	switch cmd {
	case CommandRestart:
		if e.state != StateIdle && e.state != StateGameOver {
			return false
		}
		e.Start()
		return true
	case CommandLeft, CommandRight, CommandSoftDrop, CommandHardDrop, CommandRotate, CommandPause:
	default:
		panic(fmt.Sprintf("game: unknown command %d", int(cmd)))
	}

	e.requireActive()
	if e.state == StateGameOver {
		return false
	}
	if e.state == StatePaused && cmd != CommandPause {
		return false
	}

	switch cmd {
	case CommandLeft:
		return e.MoveLeft()
	case CommandRight:
		return e.MoveRight()
	case CommandSoftDrop:
		e.SoftDrop()
		return true
	case CommandHardDrop:
		return e.HardDrop()
	case CommandRotate:
		return e.Rotate()
	case CommandPause:
		return e.TogglePause()
	}
	return false
}

// softDrop must be called with the engine entered and running.
func (e *Engine) softDrop() bool {
	p := e.current
	if e.grid.IsValidPlacement(p.Shape(), p.X, p.Y+1) {
		p.Y++
		return true
	}
	e.lockAndAdvance()
	return false
}

// lockAndAdvance settles the active piece, clears rows, scores them, promotes
// the next piece and either re-arms the scheduler or ends the game.
func (e *Engine) lockAndAdvance() {
	lockedOut := e.grid.Lock(e.current)

	if n := e.grid.ClearFullRows(); n > 0 {
		e.score += ScoreForLines(n, e.level)
		e.lines += n
		e.level = e.settings.LevelForLines(e.lines)
	}

	e.current = e.next
	e.next = e.spawn()
	e.interval = e.settings.FallInterval(e.level)

	if lockedOut || !e.grid.IsValidPlacement(e.current.Shape(), e.current.X, e.current.Y) {
		e.state = StateGameOver
		e.sched.Cancel()
		return
	}
	e.sched.Arm(e.interval)
}

// ghostY is the row the active piece would land on.
func (e *Engine) ghostY() int {
	p := e.current
	s := p.Shape()
	y := p.Y
	for e.grid.IsValidPlacement(s, p.X, y+1) {
		y++
	}
	return y
}

func (e *Engine) render() {
	if e.renderer != nil {
		e.renderer.Render(e.Snapshot())
	}
}

// Snapshot copies the current state for rendering.
func (e *Engine) Snapshot() Snapshot {
	s := Snapshot{
		Width:    e.grid.Width,
		Height:   e.grid.Height,
		Cells:    e.grid.Clone().Cells,
		Score:    e.score,
		Lines:    e.lines,
		Level:    e.level,
		Interval: e.interval,
		State:    e.state,
	}
	// after block-out the spawned piece overlaps the stack and is not drawn
	if e.current != nil && e.state != StateGameOver {
		s.Active = e.current.Blocks()
		s.ActiveColor = e.current.Color()
		s.Ghost = e.current.BlocksAt(e.current.X, e.ghostY())
	}
	if e.next != nil {
		s.Next = e.next.Kind()
		s.NextShape = cloneShape(e.next.Shape())
		s.NextColor = e.next.Color()
	}
	return s
}

func cloneShape(s Shape) Shape {
	out := make(Shape, len(s))
	for i := range s {
		out[i] = append([]bool(nil), s[i]...)
	}
	return out
}

func (e *Engine) State() State            { return e.state }
func (e *Engine) Score() int              { return e.score }
func (e *Engine) Lines() int              { return e.lines }
func (e *Engine) Level() int              { return e.level }
func (e *Engine) Interval() time.Duration { return e.interval }
func (e *Engine) Settings() Settings      { return e.settings }

func (e *Engine) IsGameOver() bool {
	return e.state == StateGameOver
}
