package server

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/hersh/startris/internal/game"
	"github.com/hersh/startris/internal/player"
	"github.com/hersh/startris/internal/protocol"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingInterval   = (pongWait * 9) / 10
	maxMessageSize = 16384
)

// tickerScheduler drives Engine.Tick from a time.Ticker. It is owned by the
// session's run loop; C is nil while nothing is armed.
type tickerScheduler struct {
	ticker *time.Ticker
}

func (t *tickerScheduler) Arm(period time.Duration) {
	if t.ticker != nil {
		t.ticker.Stop()
	}
	t.ticker = time.NewTicker(period)
}

func (t *tickerScheduler) Cancel() {
	if t.ticker != nil {
		t.ticker.Stop()
		t.ticker = nil
	}
}

func (t *tickerScheduler) C() <-chan time.Time {
	if t.ticker == nil {
		return nil
	}
	return t.ticker.C
}

// session is one connected player and the engine it plays on. The read pump
// forwards requests to run, which is the only goroutine touching the engine.
type session struct {
	id   string
	name string
	srv  *Server
	conn *websocket.Conn

	sendCh chan []byte
	joins  chan string
	cmds   chan game.Command
	done   chan struct{}
	once   sync.Once
}

func newSession(srv *Server, conn *websocket.Conn) *session {
	return &session{
		id:     uuid.NewString(),
		srv:    srv,
		conn:   conn,
		sendCh: make(chan []byte, 256),
		joins:  make(chan string),
		cmds:   make(chan game.Command, 16),
		done:   make(chan struct{}),
	}
}

// serve blocks until the connection is gone.
func (s *session) serve() {
	s.send(protocol.Envelope{
		Type:    protocol.MsgAssignID,
		Payload: protocol.AssignIDPayload{PlayerID: s.id},
	})

	go s.writePump()
	go s.run()

	s.readPump()
	s.close()
}

func (s *session) close() {
	s.once.Do(func() {
		close(s.done)
		s.conn.Close()
	})
}

func (s *session) run() {
	sched := &tickerScheduler{}
	defer sched.Cancel()

	var recorder *player.Recorder
	engine := game.NewEngine(sched,
		game.WithSettings(s.srv.settings),
		game.WithSource(game.NewPieceGenerator(s.srv.seed)),
		game.WithRenderer(game.RendererFunc(func(snap game.Snapshot) {
			if recorder != nil {
				recorder.Render(snap)
			}
			s.send(protocol.Envelope{
				Type:    protocol.MsgSnapshot,
				Payload: protocol.NewSnapshotPayload(snap),
			})
		})),
	)

	for {
		select {
		case name := <-s.joins:
			if engine.State() != game.StateIdle {
				s.sendError("already joined")
				continue
			}
			s.name = name
			s.srv.registry.Add(s.id, name)
			recorder = player.NewRecorder(s.srv.registry, s.id)
			log.Printf("player %s (%s) joined", name, s.id)
			engine.Start()

		case cmd := <-s.cmds:
			if engine.State() == game.StateIdle {
				s.sendError("join before sending commands")
				continue
			}
			if !engine.HandleCommand(cmd) {
				log.Printf("session %s: %s rejected in state %s", s.id, cmd, engine.State())
			}

		case <-sched.C():
			engine.Tick()

		case <-s.done:
			return
		}
	}
}

func (s *session) send(env protocol.Envelope) {
	data, err := json.Marshal(env)
	if err != nil {
		log.Printf("marshal error for session %s: %v", s.id, err)
		return
	}
	select {
	case s.sendCh <- data:
	default:
		log.Printf("send channel full for session %s, dropping %s", s.id, env.Type)
	}
}

func (s *session) sendError(msg string) {
	s.send(protocol.Envelope{
		Type:    protocol.MsgError,
		Payload: protocol.ErrorPayload{Message: msg},
	})
}

// writePump sends messages from sendCh to the WebSocket.
func (s *session) writePump() {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case msg := <-s.sendCh:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				s.close()
				return
			}
		case <-ticker.C:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				s.close()
				return
			}
		case <-s.done:
			return
		}
	}
}

// readPump reads client messages and hands them to run.
func (s *session) readPump() {
	s.conn.SetReadLimit(maxMessageSize)
	s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		s.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("read error for %s: %v", s.id, err)
			}
			return
		}
		if !s.handleMessage(message) {
			return
		}
	}
}

// handleMessage dispatches one client message. It returns false once the
// session is closing.
func (s *session) handleMessage(data []byte) bool {
	env, err := protocol.Decode(data)
	if err != nil {
		s.sendError(err.Error())
		return true
	}

	switch env.Type {
	case protocol.MsgJoin:
		var payload protocol.JoinPayload
		if err := env.Into(&payload); err != nil {
			s.sendError(err.Error())
			return true
		}
		name := payload.PlayerName
		if name == "" {
			name = "Player"
		}
		select {
		case s.joins <- name:
		case <-s.done:
			return false
		}

	case protocol.MsgCommand:
		var payload protocol.CommandPayload
		if err := env.Into(&payload); err != nil {
			s.sendError(err.Error())
			return true
		}
		cmd, err := game.ParseCommand(payload.Command)
		if err != nil {
			s.sendError(err.Error())
			return true
		}
		select {
		case s.cmds <- cmd:
		case <-s.done:
			return false
		}

	default:
		log.Printf("unknown message type from %s: %s", s.id, env.Type)
		s.sendError("unknown message type " + string(env.Type))
	}
	return true
}
