package protocol

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hersh/startris/internal/game"
)

// MessageType identifies the kind of message sent over the wire.
type MessageType string

const (
	// Server -> Client messages
	MsgAssignID MessageType = "assign_id"
	MsgSnapshot MessageType = "snapshot"
	MsgError    MessageType = "error"

	// Client -> Server messages
	MsgJoin    MessageType = "join"
	MsgCommand MessageType = "command"
)

// Envelope is the top-level wire format for all messages.
type Envelope struct {
	Type    MessageType `json:"type"`
	Payload interface{} `json:"payload"`
}

// RawEnvelope is an Envelope whose payload has not been decoded yet.
type RawEnvelope struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Decode parses a raw message into its type and undecoded payload.
func Decode(data []byte) (RawEnvelope, error) {
	var env RawEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return env, fmt.Errorf("decode envelope: %w", err)
	}
	if env.Type == "" {
		return env, fmt.Errorf("decode envelope: missing type")
	}
	return env, nil
}

// Into unmarshals the payload into target.
func (e RawEnvelope) Into(target interface{}) error {
	if len(e.Payload) == 0 {
		return fmt.Errorf("%s: empty payload", e.Type)
	}
	if err := json.Unmarshal(e.Payload, target); err != nil {
		return fmt.Errorf("%s payload: %w", e.Type, err)
	}
	return nil
}

// --- Server -> Client payloads ---

// AssignIDPayload is sent when a client first connects.
type AssignIDPayload struct {
	PlayerID string `json:"player_id"`
}

// ErrorPayload reports a rejected client message.
type ErrorPayload struct {
	Message string `json:"message"`
}

// Cell is one block coordinate on the wire.
type Cell struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// SnapshotPayload is the full render state of one game.
type SnapshotPayload struct {
	Width  int `json:"width"`
	Height int `json:"height"`
	// Board is a flat array: Height * Width cells.
	// Each value is a color id (0 = empty).
	Board []int `json:"board"`

	Active      []Cell `json:"active"`
	ActiveColor int    `json:"active_color"`
	Ghost       []Cell `json:"ghost"`
	Next        string `json:"next"`

	Score      int    `json:"score"`
	Lines      int    `json:"lines"`
	Level      int    `json:"level"`
	IntervalMS int64  `json:"interval_ms"`
	State      string `json:"state"`
}

// --- Client -> Server payloads ---

// JoinPayload starts a game for the connecting player.
type JoinPayload struct {
	PlayerName string `json:"player_name"`
}

// CommandPayload carries one player command by wire name.
type CommandPayload struct {
	Command string `json:"command"`
}

// --- HTTP types ---

// SessionInfo describes one hosted game in the list-sessions response.
type SessionInfo struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
	Score      int    `json:"score"`
	Lines      int    `json:"lines"`
	Level      int    `json:"level"`
	State      string `json:"state"`
	Games      int    `json:"games"`
	Best       int    `json:"best"`
}

// ListSessionsResponse is returned by GET /sessions.
type ListSessionsResponse struct {
	Sessions []SessionInfo `json:"sessions"`
}

// ErrorResponse is a generic JSON error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// --- conversions ---

func toCells(pts []game.Point) []Cell {
	if len(pts) == 0 {
		return nil
	}
	cells := make([]Cell, len(pts))
	for i, pt := range pts {
		cells[i] = Cell{X: pt.X, Y: pt.Y}
	}
	return cells
}

func toPoints(cells []Cell) []game.Point {
	if len(cells) == 0 {
		return nil
	}
	pts := make([]game.Point, len(cells))
	for i, c := range cells {
		pts[i] = game.Point{X: c.X, Y: c.Y}
	}
	return pts
}

// NewSnapshotPayload flattens an engine snapshot for the wire.
func NewSnapshotPayload(s game.Snapshot) SnapshotPayload {
	return SnapshotPayload{
		Width:       s.Width,
		Height:      s.Height,
		Board:       s.Grid().ToFlat(),
		Active:      toCells(s.Active),
		ActiveColor: int(s.ActiveColor),
		Ghost:       toCells(s.Ghost),
		Next:        s.Next.String(),
		Score:       s.Score,
		Lines:       s.Lines,
		Level:       s.Level,
		IntervalMS:  s.Interval.Milliseconds(),
		State:       s.State.String(),
	}
}

// Snapshot rebuilds an engine snapshot from the wire form.
func (p SnapshotPayload) Snapshot() (game.Snapshot, error) {
	if p.Width <= 0 || p.Height <= 0 {
		return game.Snapshot{}, fmt.Errorf("snapshot: invalid size %dx%d", p.Width, p.Height)
	}
	if len(p.Board) != p.Width*p.Height {
		return game.Snapshot{}, fmt.Errorf("snapshot: board has %d cells, want %d", len(p.Board), p.Width*p.Height)
	}
	state, err := game.ParseState(p.State)
	if err != nil {
		return game.Snapshot{}, fmt.Errorf("snapshot: %w", err)
	}
	s := game.Snapshot{
		Width:       p.Width,
		Height:      p.Height,
		Cells:       game.GridFromFlat(p.Board, p.Width, p.Height).Cells,
		Active:      toPoints(p.Active),
		ActiveColor: game.Color(p.ActiveColor),
		Ghost:       toPoints(p.Ghost),
		Score:       p.Score,
		Lines:       p.Lines,
		Level:       p.Level,
		Interval:    time.Duration(p.IntervalMS) * time.Millisecond,
		State:       state,
	}
	for _, k := range game.Kinds {
		if k.String() == p.Next {
			def := game.Definition(k)
			s.Next = k
			s.NextShape = def.Shape(0)
			s.NextColor = def.Color
			break
		}
	}
	return s, nil
}
