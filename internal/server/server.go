// Package server implements the TCP matchmaking and relay server. All game
// state (sessions, wait queue, match registry) is owned by a single event
// loop goroutine; per-connection reader goroutines only decode frames and
// post them to the loop, so handlers never need locks.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"sync/atomic"

	"github.com/memoryxin/battlechess/internal/dependencies/random"
	"github.com/memoryxin/battlechess/internal/logging"
	"github.com/memoryxin/battlechess/internal/match"
	"github.com/memoryxin/battlechess/internal/protocol"
	"github.com/memoryxin/battlechess/internal/services/auth"
)

// DefaultAddr is the listen address the desktop client expects
const DefaultAddr = ":1122"

// Config holds the server's listen address and dependencies
type Config struct {
	// Addr is the TCP listen address; defaults to DefaultAddr
	Addr string
	// Auth performs account operations against the user store
	Auth *auth.Service
	// Pool is the wait queue and match registry
	Pool *match.Pool
	// Random deals the boards
	Random random.Random
	// Audit records user events; defaults to a no-op log
	Audit *logging.Audit
	// Logger is the structured server log; defaults to a no-op logger
	Logger *slog.Logger
}

type eventKind int

const (
	eventConnect eventKind = iota
	eventMessage
	eventDisconnect
)

// event is one unit of work for the event loop
type event struct {
	kind eventKind
	sess *Session
	msg  *protocol.Message
}

// Server accepts connections and relays game traffic between paired clients
type Server struct {
	cfg    Config
	logger *slog.Logger

	ln     net.Listener
	events chan event
	done   chan struct{}

	// ctx is the run context, used for store calls from handlers
	ctx context.Context

	nextID atomic.Int64
	stats  stats

	// event-loop owned state
	sessions map[*Session]struct{}
	clients  map[string]*Session
}

// stats are live gauges for the ops API
type stats struct {
	connections atomic.Int64
	waiting     atomic.Int64
	matches     atomic.Int64
}

// Status is a snapshot of the server's gauges
type Status struct {
	Connections int64 `json:"connections"`
	Waiting     int64 `json:"waiting"`
	Matches     int64 `json:"matches"`
}

// New creates a server. Auth, Pool and Random are required.
func New(cfg Config) *Server {
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	if cfg.Audit == nil {
		cfg.Audit = logging.Nop()
	}
	return &Server{
		cfg:      cfg,
		logger:   cfg.Logger,
		events:   make(chan event, 128),
		done:     make(chan struct{}),
		sessions: make(map[*Session]struct{}),
		clients:  make(map[string]*Session),
	}
}

// Listen binds the TCP socket. Separate from Serve so callers (and tests
// using port 0) can learn the bound address before serving.
func (s *Server) Listen() error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.cfg.Addr, err)
	}
	s.ln = ln
	s.logger.Info("server listening", slog.String("addr", ln.Addr().String()))
	return nil
}

// Addr returns the bound listen address; nil before Listen
func (s *Server) Addr() net.Addr {
	if s.ln == nil {
		return nil
	}
	return s.ln.Addr()
}

// Run listens and serves until the context is cancelled
func (s *Server) Run(ctx context.Context) error {
	if err := s.Listen(); err != nil {
		return err
	}
	return s.Serve(ctx)
}

// Serve runs the accept loop and the event loop. It returns after the
// context is cancelled and all connections are torn down.
func (s *Server) Serve(ctx context.Context) error {
	s.ctx = ctx
	go s.acceptLoop()
	s.loop(ctx)
	return nil
}

// Status returns the current gauge values
func (s *Server) Status() Status {
	return Status{
		Connections: s.stats.connections.Load(),
		Waiting:     s.stats.waiting.Load(),
		Matches:     s.stats.matches.Load(),
	}
}

func (s *Server) acceptLoop() {
	for {
		conn, err := s.ln.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return
			}
			select {
			case <-s.done:
				return
			default:
			}
			s.logger.Error("accept failed", slog.String("error", err.Error()))
			continue
		}

		sess := newSession(s.nextID.Add(1), conn, s.logger)
		select {
		case s.events <- event{kind: eventConnect, sess: sess}:
		case <-s.done:
			_ = conn.Close()
			return
		}
		go sess.readLoop(s.events, s.done)
		go sess.writeLoop(s.done)
	}
}

func (s *Server) loop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			s.shutdown()
			return
		case ev := <-s.events:
			switch ev.kind {
			case eventConnect:
				s.handleConnect(ev.sess)
			case eventMessage:
				s.dispatch(ev.sess, ev.msg)
			case eventDisconnect:
				s.handleDisconnect(ev.sess)
			}
			s.syncStats()
		}
	}
}

func (s *Server) handleConnect(sess *Session) {
	s.sessions[sess] = struct{}{}
	s.stats.connections.Add(1)
	s.logger.Info("connection accepted",
		slog.Int64("conn", sess.id),
		slog.String("remote", sess.conn.RemoteAddr().String()))
}

func (s *Server) handleDisconnect(sess *Session) {
	if _, ok := s.sessions[sess]; !ok {
		return
	}
	delete(s.sessions, sess)
	s.stats.connections.Add(-1)

	if sess.name == "" {
		s.logger.Info("connection closed", slog.Int64("conn", sess.id))
		return
	}
	if s.clients[sess.name] != sess {
		// The name is bound to another live connection; nothing to clean up
		return
	}

	s.logger.Info("user disconnected", slog.String("name", sess.name))
	s.cfg.Audit.Event(sess.name, "退出了游戏")

	if _, inMatch := s.cfg.Pool.Opponent(sess.name); inMatch {
		// The opponent wins by forfeit: synthesize a giveup on the
		// disconnected player's behalf before clearing the registry
		s.relayToOpponent(sess, []byte(`{"type":"giveup"}`))
		opponent, _ := s.cfg.Pool.EndMatch(sess.name)
		s.logger.Info("game ended by disconnect",
			slog.String("name", sess.name),
			slog.String("opponent", opponent))
	} else if s.cfg.Pool.Dequeue(sess.name) {
		s.cfg.Audit.Event(sess.name, "放弃了匹配")
		s.logger.Info("match request dropped on disconnect", slog.String("name", sess.name))
	}

	delete(s.clients, sess.name)
}

func (s *Server) syncStats() {
	s.stats.waiting.Store(int64(s.cfg.Pool.Waiting()))
	s.stats.matches.Store(int64(s.cfg.Pool.Matches()))
}

func (s *Server) shutdown() {
	close(s.done)
	_ = s.ln.Close()
	for sess := range s.sessions {
		sess.close()
	}
	s.logger.Info("server stopped")
}
