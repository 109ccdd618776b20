package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/hersh/startris/internal/game"
	"github.com/hersh/startris/internal/netclient"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	joined   []string
	commands []game.Command
	closed   bool
}

func (f *fakeSender) Join(name string)             { f.joined = append(f.joined, name) }
func (f *fakeSender) SendCommand(cmd game.Command) { f.commands = append(f.commands, cmd) }
func (f *fakeSender) Close()                       { f.closed = true }

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	require.True(t, ok)
	return nm, cmd
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func startLocalGame(t *testing.T) Model {
	t.Helper()
	m := NewModel(Options{PlayerName: "ana", Seed: 7})
	require.Equal(t, ScreenWelcome, m.screen)

	m, cmd := update(t, m, runes("1"))
	require.Equal(t, ScreenPlaying, m.screen)
	require.NotNil(t, cmd, "starting a game arms the fall timer")
	require.Equal(t, game.StateRunning, m.state())
	return m
}

func TestNewModelRegistersPlayer(t *testing.T) {
	m := NewModel(Options{PlayerName: "ana"})

	p, ok := m.Registry().Get(m.PlayerID())
	require.True(t, ok)
	assert.Equal(t, "ana", p.Name)
	assert.Equal(t, game.DefaultSettings(), m.settings)
}

func TestLocalTick(t *testing.T) {
	m := startLocalGame(t)
	before := m.engine.Snapshot().Active

	// a tick from a cancelled arming is dropped
	m, cmd := update(t, m, GameTickMsg{Gen: m.sched.gen - 1})
	assert.Nil(t, cmd)
	assert.Equal(t, before, m.engine.Snapshot().Active)

	m, cmd = update(t, m, GameTickMsg{Gen: m.sched.gen})
	assert.NotNil(t, cmd)
	after := m.engine.Snapshot().Active
	require.Len(t, after, len(before))
	for i := range before {
		assert.Equal(t, before[i].Y+1, after[i].Y)
	}
}

func TestLocalCommands(t *testing.T) {
	m := startLocalGame(t)
	x := m.engine.Snapshot().Active[0].X

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, x-1, m.engine.Snapshot().Active[0].X)

	m, _ = update(t, m, runes("p"))
	assert.Equal(t, game.StatePaused, m.state())

	m, _ = update(t, m, runes("p"))
	assert.Equal(t, game.StateRunning, m.state())

	score := m.engine.Score()
	m, cmd := update(t, m, runes("c"))
	assert.Greater(t, m.engine.Score(), score)
	assert.NotNil(t, cmd, "locking re-arms the timer")
}

func TestQuitKeys(t *testing.T) {
	m := startLocalGame(t)

	m, cmd := update(t, m, runes("q"))
	assert.False(t, isQuit(cmd), "q is ignored while running")

	m, _ = update(t, m, runes("p"))
	_, cmd = update(t, m, runes("q"))
	assert.True(t, isQuit(cmd))

	m = startLocalGame(t)
	_, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.True(t, isQuit(cmd))
}

func TestBackToMenu(t *testing.T) {
	m := startLocalGame(t)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, ScreenPlaying, m.screen, "esc does nothing while running")

	m, _ = update(t, m, runes("p"))
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, ScreenWelcome, m.screen)

	m, _ = update(t, m, runes("1"))
	assert.Equal(t, game.StateRunning, m.state())
	assert.Equal(t, 0, m.engine.Score())
}

func TestLocalGameOverRecordsResult(t *testing.T) {
	m := startLocalGame(t)

	for i := 0; i < 200 && m.state() != game.StateGameOver; i++ {
		m, _ = update(t, m, runes("c"))
	}
	require.Equal(t, game.StateGameOver, m.state())

	p, _ := m.Registry().Get(m.PlayerID())
	assert.Equal(t, 1, p.Games)
	assert.Equal(t, m.engine.Score(), p.Best)
	assert.Contains(t, m.View(), "GAME OVER")

	// movement is ignored, enter starts again
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, game.StateGameOver, m.state())
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, game.StateRunning, m.state())
}

func TestRemoteFlow(t *testing.T) {
	sender := &fakeSender{}
	m := NewModel(Options{PlayerName: "bo", Client: sender})
	assert.Equal(t, ScreenConnecting, m.screen)
	assert.Contains(t, m.View(), "Connecting")

	m, _ = update(t, m, netclient.ConnectedMsg{PlayerID: "srv-1"})
	assert.Equal(t, ScreenWelcome, m.screen)

	m, _ = update(t, m, runes("1"))
	assert.Equal(t, []string{"bo"}, sender.joined)

	// no snapshot yet, so keys go nowhere
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Empty(t, sender.commands)

	engine := game.NewEngine(&TeaScheduler{})
	engine.Start()
	m, _ = update(t, m, netclient.SnapshotMsg{Snapshot: engine.Snapshot()})
	assert.Contains(t, m.View(), "STARTRIS")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	m, _ = update(t, m, runes("x"))
	assert.Equal(t, []game.Command{game.CommandLeft, game.CommandRotate}, sender.commands)

	over := engine.Snapshot()
	over.State = game.StateGameOver
	over.Score = 1200
	m, _ = update(t, m, netclient.SnapshotMsg{Snapshot: over})
	p, _ := m.Registry().Get(m.PlayerID())
	assert.Equal(t, 1, p.Games)
	assert.Equal(t, 1200, p.Best)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, game.CommandRestart, sender.commands[len(sender.commands)-1])

	m, _ = update(t, m, netclient.ServerErrorMsg{Message: "bad command"})
	assert.Contains(t, m.View(), "bad command")

	m, _ = update(t, m, netclient.DisconnectedMsg{})
	assert.Contains(t, m.View(), "Disconnected")

	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.True(t, isQuit(cmd))
	assert.True(t, sender.closed)
}
