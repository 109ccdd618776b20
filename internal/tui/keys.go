package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/hersh/startris/internal/game"
)

// KeyMap binds keys to game commands.
type KeyMap struct {
	Left     key.Binding
	Right    key.Binding
	SoftDrop key.Binding
	HardDrop key.Binding
	Rotate   key.Binding
	Pause    key.Binding
	Restart  key.Binding
	Back     key.Binding
	Quit     key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "right"),
		),
		SoftDrop: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "soft drop"),
		),
		HardDrop: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "hard drop"),
		),
		Rotate: key.NewBinding(
			key.WithKeys("up", "x", "k", " "),
			key.WithHelp("↑/space", "rotate"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pause"),
		),
		Restart: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "restart"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "menu"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Rotate, k.SoftDrop, k.HardDrop, k.Pause, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Rotate},
		{k.SoftDrop, k.HardDrop},
		{k.Pause, k.Restart, k.Back, k.Quit},
	}
}

// Command translates a key press into a game command. Restart is only
// produced once the game is over and everything else only while it is not.
func (k KeyMap) Command(msg tea.KeyMsg, state game.State) (game.Command, bool) {
	if state == game.StateGameOver {
		if key.Matches(msg, k.Restart) {
			return game.CommandRestart, true
		}
		return 0, false
	}

	switch {
	case key.Matches(msg, k.Left):
		return game.CommandLeft, true
	case key.Matches(msg, k.Right):
		return game.CommandRight, true
	case key.Matches(msg, k.SoftDrop):
		return game.CommandSoftDrop, true
	case key.Matches(msg, k.HardDrop):
		return game.CommandHardDrop, true
	case key.Matches(msg, k.Rotate):
		return game.CommandRotate, true
	case key.Matches(msg, k.Pause):
		return game.CommandPause, true
	}
	return 0, false
}
