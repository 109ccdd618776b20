package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/hersh/startris/internal/game"
	"github.com/hersh/startris/internal/netclient"
	"github.com/hersh/startris/internal/player"
)

// --- Screens ---

type Screen int

const (
	ScreenConnecting Screen = iota
	ScreenWelcome
	ScreenPlaying
)

// CommandSender forwards player input to a remote game. *netclient.Client
// satisfies it.
type CommandSender interface {
	Join(playerName string)
	SendCommand(cmd game.Command)
	Close()
}

// Options configures a Model.
type Options struct {
	PlayerName string
	Settings   game.Settings
	Seed       int64

	// Client switches the model to remote play. Nil plays locally.
	Client CommandSender

	// Registry collects the results of finished games. A new one is created
	// when nil.
	Registry *player.Registry
}

// --- Model ---

type Model struct {
	screen     Screen
	playerID   string
	playerName string
	keys       KeyMap
	help       help.Model
	width      int
	height     int

	registry *player.Registry
	recorder *player.Recorder

	// local play
	settings game.Settings
	seed     int64
	engine   *game.Engine
	sched    *TeaScheduler

	// remote play
	client   CommandSender
	snapshot game.Snapshot
	received bool

	serverErr    string
	err          error
	disconnected bool
}

// NewModel creates a model for the client TUI.
func NewModel(opts Options) Model {
	reg := opts.Registry
	if reg == nil {
		reg = player.NewRegistry()
	}
	settings := opts.Settings
	if settings == (game.Settings{}) {
		settings = game.DefaultSettings()
	}

	id := uuid.NewString()
	reg.Add(id, opts.PlayerName)

	screen := ScreenWelcome
	if opts.Client != nil {
		screen = ScreenConnecting
	}

	return Model{
		screen:     screen,
		playerID:   id,
		playerName: opts.PlayerName,
		keys:       DefaultKeyMap(),
		help:       help.New(),
		registry:   reg,
		recorder:   player.NewRecorder(reg, id),
		settings:   settings,
		seed:       opts.Seed,
		client:     opts.Client,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// Registry returns the registry the model records finished games into.
func (m Model) Registry() *player.Registry {
	return m.registry
}

func (m Model) PlayerID() string {
	return m.playerID
}

func (m Model) remote() bool {
	return m.client != nil
}

// current returns the snapshot to draw and whether there is one yet.
func (m Model) current() (game.Snapshot, bool) {
	if m.remote() {
		return m.snapshot, m.received
	}
	if m.engine == nil {
		return game.Snapshot{}, false
	}
	return m.engine.Snapshot(), true
}

func (m Model) state() game.State {
	s, ok := m.current()
	if !ok {
		return game.StateIdle
	}
	return s.State
}

// --- Update ---

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case GameTickMsg:
		return m.handleGameTick(msg)

	// Network messages
	case netclient.ConnectedMsg:
		m.screen = ScreenWelcome
		return m, nil
	case netclient.SnapshotMsg:
		m.snapshot = msg.Snapshot
		m.received = true
		m.serverErr = ""
		m.recorder.Render(msg.Snapshot)
		return m, nil
	case netclient.ServerErrorMsg:
		m.serverErr = msg.Message
		return m, nil
	case netclient.DisconnectedMsg:
		m.disconnected = true
		m.err = msg.Err
		return m, nil
	}
	return m, nil
}

func (m Model) handleGameTick(msg GameTickMsg) (tea.Model, tea.Cmd) {
	if m.engine == nil {
		return m, nil
	}
	if m.sched.Fire(msg) {
		m.engine.Tick()
	}
	return m, m.sched.Cmd()
}

// --- Key handlers ---

func (m Model) quit() (tea.Model, tea.Cmd) {
	if m.engine != nil {
		m.sched.Cancel()
	}
	if m.client != nil {
		m.client.Close()
	}
	return m, tea.Quit
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m.quit()
	}
	if key.Matches(msg, m.keys.Quit) {
		// q is a no-op while a game is running
		if m.screen != ScreenPlaying || m.state() != game.StateRunning {
			return m.quit()
		}
	}

	switch m.screen {
	case ScreenWelcome:
		return m.handleWelcomeKeys(msg)
	case ScreenPlaying:
		return m.handlePlayingKeys(msg)
	}
	return m, nil
}

func (m Model) handleWelcomeKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "1", "s", "enter":
		m.screen = ScreenPlaying
		if m.remote() {
			m.received = false
			m.client.Join(m.playerName)
			return m, nil
		}
		return m.startLocal()
	}
	return m, nil
}

func (m Model) startLocal() (tea.Model, tea.Cmd) {
	if m.engine == nil {
		m.sched = &TeaScheduler{}
		m.engine = game.NewEngine(m.sched,
			game.WithRenderer(m.recorder),
			game.WithSettings(m.settings),
			game.WithSource(game.NewPieceGenerator(m.seed)),
		)
	}
	m.engine.Start()
	return m, m.sched.Cmd()
}

func (m Model) handlePlayingKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if _, ok := m.current(); !ok {
		return m, nil
	}
	state := m.state()

	if key.Matches(msg, m.keys.Back) && !m.remote() && state != game.StateRunning {
		m.screen = ScreenWelcome
		return m, nil
	}

	cmd, ok := m.keys.Command(msg, state)
	if !ok {
		return m, nil
	}
	if m.remote() {
		m.client.SendCommand(cmd)
		return m, nil
	}
	m.engine.HandleCommand(cmd)
	return m, m.sched.Cmd()
}

// --- View ---

func (m Model) View() string {
	if m.disconnected {
		msg := "Disconnected from server.\nPress Ctrl+C to exit."
		if m.err != nil {
			msg = "Disconnected from server: " + m.err.Error() + "\nPress Ctrl+C to exit."
		}
		return m.renderCentered(msg)
	}

	switch m.screen {
	case ScreenConnecting:
		return m.renderCentered("Connecting to server...")
	case ScreenWelcome:
		return m.renderCentered(RenderWelcome(m.remote()))
	case ScreenPlaying:
		return m.renderPlaying()
	}
	return ""
}

func (m Model) renderCentered(content string) string {
	return lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

func (m Model) renderPlaying() string {
	s, ok := m.current()
	if !ok {
		return m.renderCentered("Waiting for server...")
	}

	leftPanel := lipgloss.NewStyle().
		Width(24).
		Render(RenderInfo(s, m.playerName))

	centerPanel := lipgloss.NewStyle().
		Padding(1, 2).
		Render(RenderBoard(s))

	mainContent := lipgloss.JoinHorizontal(lipgloss.Top, leftPanel, centerPanel)

	if s.GameOver() {
		stats, _ := m.registry.Get(m.playerID)
		rightPanel := lipgloss.NewStyle().
			Padding(1, 2).
			Render(RenderGameOver(s, stats))
		mainContent = lipgloss.JoinHorizontal(lipgloss.Top, leftPanel, centerPanel, rightPanel)
	}

	footer := m.help.View(m.keys)
	if m.serverErr != "" {
		footer = gameOverStyle.Render(m.serverErr) + "\n" + footer
	}

	return m.renderCentered(lipgloss.JoinVertical(lipgloss.Center, mainContent, footer))
}
