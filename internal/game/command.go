package game

import "fmt"

// Command is an abstract player instruction accepted by Engine.HandleCommand.
type Command int

const (
	CommandLeft Command = iota
	CommandRight
	CommandSoftDrop
	CommandHardDrop
	CommandRotate
	CommandPause
	CommandRestart
)

var commandNames = map[Command]string{
	CommandLeft:     "left",
	CommandRight:    "right",
	CommandSoftDrop: "soft_drop",
	CommandHardDrop: "hard_drop",
	CommandRotate:   "rotate",
	CommandPause:    "pause",
	CommandRestart:  "restart",
}

func (c Command) String() string {
	if name, ok := commandNames[c]; ok {
		return name
	}
	return fmt.Sprintf("command(%d)", int(c))
}

// ParseCommand maps a wire name back to a Command.
func ParseCommand(s string) (Command, error) {
	for c, name := range commandNames {
		if name == s {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown command %q", s)
}

// State is the engine lifecycle phase.
type State int

const (
	StateIdle State = iota
	StateRunning
	StatePaused
	StateGameOver
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	case StateGameOver:
		return "game_over"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// ParseState is the inverse of State.String.
func ParseState(s string) (State, error) {
	for _, st := range []State{StateIdle, StateRunning, StatePaused, StateGameOver} {
		if st.String() == s {
			return st, nil
		}
	}
	return 0, fmt.Errorf("unknown state %q", s)
}
