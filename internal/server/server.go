package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/hersh/startris/internal/game"
	"github.com/hersh/startris/internal/player"
	"github.com/hersh/startris/internal/protocol"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

// Server hosts one authoritative game per WebSocket connection.
type Server struct {
	settings game.Settings
	seed     int64
	registry *player.Registry
	upgrader websocket.Upgrader

	mu       sync.Mutex
	sessions map[string]*session
}

type Option func(*Server)

// WithSettings sets the difficulty curve for hosted games.
func WithSettings(s game.Settings) Option {
	return func(srv *Server) { srv.settings = s }
}

// WithSeed makes every session draw the same piece sequence. Zero seeds each
// session from the clock.
func WithSeed(seed int64) Option {
	return func(srv *Server) { srv.seed = seed }
}

func New(opts ...Option) *Server {
	s := &Server{
		settings: game.DefaultSettings(),
		registry: player.NewRegistry(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		sessions: make(map[string]*session),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Registry exposes the players known to the server.
func (s *Server) Registry() *player.Registry {
	return s.registry
}

// Handler routes /ws, /sessions and /health.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)
	mux.HandleFunc("/sessions", s.handleSessions)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	return mux
}

// Run serves on addr until ctx is cancelled, then shuts down and closes every
// open session.
func (s *Server) Run(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:    addr,
		Handler: s.Handler(),
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("startris server listening on %s", addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen on %s: %w", addr, err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Println("server shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.closeSessions()
		return httpServer.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("upgrade error: %v", err)
		return
	}

	sess := newSession(s, conn)
	s.mu.Lock()
	s.sessions[sess.id] = sess
	s.mu.Unlock()

	sess.serve()

	s.mu.Lock()
	delete(s.sessions, sess.id)
	s.mu.Unlock()
	s.registry.Remove(sess.id)
	log.Printf("session %s closed", sess.id)
}

func (s *Server) handleSessions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, protocol.ErrorResponse{Error: "method not allowed"})
		return
	}

	players := s.registry.Ranking()
	resp := protocol.ListSessionsResponse{Sessions: make([]protocol.SessionInfo, 0, len(players))}
	for _, p := range players {
		resp.Sessions = append(resp.Sessions, protocol.SessionInfo{
			PlayerID:   p.ID,
			PlayerName: p.Name,
			Score:      p.Score,
			Lines:      p.Lines,
			Level:      p.Level,
			State:      p.State,
			Games:      p.Games,
			Best:       p.Best,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) closeSessions() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sess := range s.sessions {
		sess.close()
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write response: %v", err)
	}
}
