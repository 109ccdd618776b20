package netclient

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gorilla/websocket"
	"github.com/hersh/startris/internal/game"
	"github.com/hersh/startris/internal/protocol"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingInterval   = (pongWait * 9) / 10
	maxMessageSize = 16384
)

// ConnectedMsg is sent when the client connects and receives its PlayerID.
type ConnectedMsg struct {
	PlayerID string
}

// SnapshotMsg carries the latest state of the player's game on the server.
type SnapshotMsg struct {
	Snapshot game.Snapshot
}

// ServerErrorMsg reports a message the server rejected.
type ServerErrorMsg struct {
	Message string
}

// DisconnectedMsg is sent when the WebSocket connection is lost.
type DisconnectedMsg struct {
	Err error
}

// Sender delivers messages into the running program. *tea.Program satisfies it.
type Sender interface {
	Send(msg tea.Msg)
}

// Client manages the WebSocket connection to the game server.
type Client struct {
	mu      sync.Mutex
	conn    *websocket.Conn
	sendCh  chan []byte
	program Sender
	done    chan struct{}
	closed  bool
}

// Dial creates a Client connected to the given server URL.
func Dial(ctx context.Context, serverURL string) (*Client, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, serverURL, nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", serverURL, err)
	}

	c := &Client{
		conn:   conn,
		sendCh: make(chan []byte, 256),
		done:   make(chan struct{}),
	}

	return c, nil
}

// SetProgram sets the bubbletea program so the client can send messages to it.
func (c *Client) SetProgram(p Sender) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.program = p
}

// Start launches the read and write pumps.
func (c *Client) Start() {
	go c.writePump()
	go c.readPump()
}

// Send marshals and queues an envelope for the server.
func (c *Client) Send(env protocol.Envelope) {
	data, err := json.Marshal(env)
	if err != nil {
		log.Printf("client marshal error: %v", err)
		return
	}
	select {
	case c.sendCh <- data:
	default:
		log.Printf("client send channel full, dropping %s", env.Type)
	}
}

// Join asks the server to start a game for playerName.
func (c *Client) Join(playerName string) {
	c.Send(protocol.Envelope{
		Type:    protocol.MsgJoin,
		Payload: protocol.JoinPayload{PlayerName: playerName},
	})
}

// SendCommand forwards one player command.
func (c *Client) SendCommand(cmd game.Command) {
	c.Send(protocol.Envelope{
		Type:    protocol.MsgCommand,
		Payload: protocol.CommandPayload{Command: cmd.String()},
	})
}

// Close shuts down the client connection.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.done)
	c.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	c.conn.Close()
}

func (c *Client) deliver(msg tea.Msg) {
	c.mu.Lock()
	p := c.program
	c.mu.Unlock()
	if p != nil {
		p.Send(msg)
	}
}

// readPump reads messages from the WebSocket and sends them to the bubbletea program.
func (c *Client) readPump() {
	var readErr error
	defer func() {
		c.deliver(DisconnectedMsg{Err: readErr})
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("readPump error: %v", err)
				readErr = err
			}
			return
		}

		msg, err := decodeServerMessage(message)
		if err != nil {
			log.Printf("client: %v", err)
			continue
		}
		if msg != nil {
			c.deliver(msg)
		}
	}
}

// decodeServerMessage turns a wire message into the tea.Msg the TUI expects.
// Unknown message types decode to nil.
func decodeServerMessage(data []byte) (tea.Msg, error) {
	env, err := protocol.Decode(data)
	if err != nil {
		return nil, err
	}

	switch env.Type {
	case protocol.MsgAssignID:
		var payload protocol.AssignIDPayload
		if err := env.Into(&payload); err != nil {
			return nil, err
		}
		return ConnectedMsg{PlayerID: payload.PlayerID}, nil
	case protocol.MsgSnapshot:
		var payload protocol.SnapshotPayload
		if err := env.Into(&payload); err != nil {
			return nil, err
		}
		snap, err := payload.Snapshot()
		if err != nil {
			return nil, err
		}
		return SnapshotMsg{Snapshot: snap}, nil
	case protocol.MsgError:
		var payload protocol.ErrorPayload
		if err := env.Into(&payload); err != nil {
			return nil, err
		}
		return ServerErrorMsg{Message: payload.Message}, nil
	}
	log.Printf("client: ignoring message type %s", env.Type)
	return nil, nil
}

// writePump writes messages from sendCh to the WebSocket.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg := <-c.sendCh:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.done:
			return
		}
	}
}
