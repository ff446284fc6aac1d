// Package server streams live searches to browsers.
//
// A client creates a session with POST /api/searches, then opens
// GET /api/searches/{id}/stream as a websocket and receives one JSON
// driver.Frame per visited cell until the search terminates. Each session
// owns its own engine and is removed once its stream ends or, if never
// streamed, after the session TTL.
//
// Routes:
//
//	POST /api/searches              {rows, strategy, interval_ms} → 201 {id, ...}
//	GET  /api/searches/{id}         session status
//	GET  /api/searches/{id}/stream  websocket of frames
//	GET  /healthz                   liveness and session count
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	channerics "github.com/niceyeti/channerics/channels"
	"golang.org/x/sync/errgroup"
)

const (
	// Time allowed to write a frame to the peer.
	writeWait = time.Second
	// Time the peer has to answer our close message.
	closeWait = time.Second
	// Largest request body accepted by the create endpoint.
	maxBodyBytes = 1 << 20
	// Largest interval a client may ask for.
	maxInterval = 10 * time.Second
)

var (
	// ErrBadRequest marks client errors answered with 400.
	ErrBadRequest = errors.New("server: bad request")
	// ErrNoSession marks an unknown or expired session id.
	ErrNoSession = errors.New("server: no such session")
	// ErrBusy marks a session that is already being streamed.
	ErrBusy = errors.New("server: session already streaming")
)

// Limits bound what a single session may consume.
type Limits struct {
	// MaxCells caps rows×cols of a submitted board.
	MaxCells int
	// MaxSteps caps engine steps per stream; 0 means unlimited.
	MaxSteps int
	// MaxRuntime caps wall time per stream; 0 means unlimited.
	MaxRuntime time.Duration
	// DefaultInterval is used when a request leaves interval_ms at 0.
	DefaultInterval time.Duration
	// SessionTTL is how long an unstreamed session is kept.
	SessionTTL time.Duration
}

// DefaultLimits returns the limits used by NewServer.
func DefaultLimits() Limits {
	return Limits{
		MaxCells:        256 * 256,
		DefaultInterval: 20 * time.Millisecond,
		SessionTTL:      5 * time.Minute,
	}
}

// Server holds the router and the live sessions.
type Server struct {
	router   *mux.Router
	log      *slog.Logger
	limits   Limits
	upgrader websocket.Upgrader
	now      func() time.Time

	mu       sync.Mutex
	sessions map[uuid.UUID]*session
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the structured logger. nil keeps the default.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.log = l
		}
	}
}

// WithLimits replaces the default limits. Zero fields keep their defaults.
func WithLimits(l Limits) Option {
	return func(s *Server) {
		def := DefaultLimits()
		if l.MaxCells <= 0 {
			l.MaxCells = def.MaxCells
		}
		if l.DefaultInterval <= 0 {
			l.DefaultInterval = def.DefaultInterval
		}
		if l.SessionTTL <= 0 {
			l.SessionTTL = def.SessionTTL
		}
		s.limits = l
	}
}

// NewServer builds a Server with its routes registered.
func NewServer(opts ...Option) *Server {
	s := &Server{
		log:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		limits:   DefaultLimits(),
		now:      time.Now,
		sessions: make(map[uuid.UUID]*session),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := mux.NewRouter()
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/api/searches", s.handleCreate).Methods(http.MethodPost)
	r.HandleFunc("/api/searches/{id}", s.handleStatus).Methods(http.MethodGet)
	r.HandleFunc("/api/searches/{id}/stream", s.handleStream).Methods(http.MethodGet)
	s.router = r

	return s
}

// Handler returns the HTTP handler serving every route.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves on addr until ctx is done, then shuts down
// gracefully. Expired sessions are reaped once per TTL/2 meanwhile.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		s.log.Info("viewer listening", slog.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server: listen %s: %w", addr, err)
		}
		return nil
	})
	group.Go(func() error {
		for range channerics.NewTicker(groupCtx.Done(), s.limits.SessionTTL/2) {
			if n := s.reap(); n > 0 {
				s.log.Debug("reaped idle sessions", slog.Int("count", n))
			}
		}
		return nil
	})
	group.Go(func() error {
		<-groupCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return group.Wait()
}

// Sessions returns the number of live sessions.
func (s *Server) Sessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
