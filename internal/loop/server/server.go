// Package server hosts terminal sessions. Every session plays its own
// isolated game; the server only tracks who is connected, hands out
// per-session games, and tells everyone when it is going away.
package server

import (
	"io"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/log"

	"github.com/alessiosferro/space-shooter-v1/internal/audio"
	"github.com/alessiosferro/space-shooter-v1/internal/loop"
	"github.com/alessiosferro/space-shooter-v1/internal/loop/config"
)

// Host is the interface clients use to talk to the session server.
// Decouples the Client from the concrete Server implementation.
type Host interface {
	Register(username string) *SessionHandle
	Unregister(id int)
	NewGame(h *SessionHandle, sound audio.Player, now time.Time) *loop.Game
	ReportScore(id, score int) (best int)
	Sessions() int
	Rules() config.Rules
}

// Server tracks connected sessions.
type Server struct {
	rules  config.Rules
	logger *log.Logger

	mu       sync.RWMutex
	sessions map[int]*SessionHandle
	nextID   int
	seeds    *rand.Rand

	best     atomic.Int64
	shutdown atomic.Bool
}

// Compile-time check that Server implements Host.
var _ Host = (*Server)(nil)

// SessionHandle represents one connected terminal.
type SessionHandle struct {
	ID        int
	Username  string
	StartedAt time.Time
	EventsCh  chan SessionEvent // Events sent to the session (shutdown, etc.)
}

// SessionEvent represents an event sent from server to session.
type SessionEvent struct {
	Type SessionEventType
}

// SessionEventType identifies the type of session event.
type SessionEventType int

const (
	EventServerShutdown SessionEventType = iota
)

// NewServer creates a session server handing out games with the given rules.
func NewServer(rules config.Rules, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Server{
		rules:    rules,
		logger:   logger,
		sessions: make(map[int]*SessionHandle),
		nextID:   1,
		seeds:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// truncateUsername cuts name to at most n bytes without splitting a rune.
func truncateUsername(name string, n int) string {
	if len(name) <= n {
		return name
	}
	for n > 0 && !utf8.RuneStart(name[n]) {
		n--
	}
	return name[:n]
}

// Register adds a session. A session joining during shutdown is told so
// right away.
func (s *Server) Register(username string) *SessionHandle {
	username = truncateUsername(username, config.MaxUsernameLength)

	s.mu.Lock()
	h := &SessionHandle{
		ID:        s.nextID,
		Username:  username,
		StartedAt: time.Now(),
		EventsCh:  make(chan SessionEvent, 4),
	}
	s.nextID++
	s.sessions[h.ID] = h
	count := len(s.sessions)
	s.mu.Unlock()

	if s.shutdown.Load() {
		h.EventsCh <- SessionEvent{Type: EventServerShutdown}
	}
	s.logger.Info("session registered", "id", h.ID, "user", username, "sessions", count)
	return h
}

// Unregister removes a session and closes its event channel.
func (s *Server) Unregister(id int) {
	s.mu.Lock()
	h, ok := s.sessions[id]
	if ok {
		delete(s.sessions, id)
		close(h.EventsCh)
	}
	count := len(s.sessions)
	s.mu.Unlock()

	if ok {
		s.logger.Info("session closed", "id", id, "user", h.Username, "duration", time.Since(h.StartedAt).Round(time.Second), "sessions", count)
	}
}

// NewGame creates the isolated game for a session. With a fixed seed in
// the rules every session gets its own derived seed.
func (s *Server) NewGame(h *SessionHandle, sound audio.Player, now time.Time) *loop.Game {
	s.mu.Lock()
	seed := s.seeds.Int63()
	s.mu.Unlock()
	if s.rules.Seed != 0 {
		seed = s.rules.Seed + int64(h.ID)
	}

	return loop.NewGame(loop.Options{
		Rules:  s.rules,
		Rand:   rand.New(rand.NewSource(seed)),
		Sound:  sound,
		Logger: s.logger.With("session", h.ID, "user", h.Username),
	}, now)
}

// ReportScore records a finished run and returns the best score seen by
// this server so far.
func (s *Server) ReportScore(id, score int) int {
	for {
		best := s.best.Load()
		if int64(score) <= best {
			return int(best)
		}
		if s.best.CompareAndSwap(best, int64(score)) {
			s.logger.Info("new best score", "id", id, "score", score)
			return score
		}
	}
}

// Rules returns the ruleset every session plays with.
func (s *Server) Rules() config.Rules {
	return s.rules
}

// Sessions returns the number of connected sessions.
func (s *Server) Sessions() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Shutdown notifies all connected sessions and waits for them to
// disconnect, up to the given timeout.
func (s *Server) Shutdown(timeout time.Duration) {
	s.shutdown.Store(true)

	s.mu.RLock()
	for _, h := range s.sessions {
		select {
		case h.EventsCh <- SessionEvent{Type: EventServerShutdown}:
		default:
		}
	}
	s.mu.RUnlock()

	deadline := time.After(timeout)
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-deadline:
			s.logger.Warn("shutdown timed out", "sessions", s.Sessions())
			return
		case <-ticker.C:
			if s.Sessions() == 0 {
				return
			}
		}
	}
}
