package server

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/katalvlaran/gridpath/driver"
	"github.com/katalvlaran/gridpath/grid"
	"github.com/katalvlaran/gridpath/search"
)

// session is one submitted board and the engine that searches it.
type session struct {
	id        uuid.UUID
	engine    *search.Engine
	strategy  search.Strategy
	start     grid.Coordinate
	end       grid.Coordinate
	rows      int
	cols      int
	interval  time.Duration
	created   time.Time
	streaming bool
	reachable bool
	// last frame seen by the stream, guarded by Server.mu
	last *driver.Frame
}

// add registers a new session and returns it.
func (s *Server) add(eng *search.Engine, interval time.Duration, reachable bool) *session {
	sess := &session{
		id:        uuid.New(),
		engine:    eng,
		strategy:  eng.Strategy(),
		start:     eng.Start(),
		end:       eng.End(),
		rows:      eng.Grid().Rows(),
		cols:      eng.Grid().Cols(),
		interval:  interval,
		created:   s.now(),
		reachable: reachable,
	}
	s.mu.Lock()
	s.sessions[sess.id] = sess
	s.mu.Unlock()

	return sess
}

// lookup returns the session named by raw.
func (s *Server) lookup(raw string) (*session, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrNoSession, raw)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoSession, id)
	}
	return sess, nil
}

// claim marks the session as streaming. Only one stream per session.
func (s *Server) claim(raw string) (*session, error) {
	sess, err := s.lookup(raw)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess.streaming {
		return nil, fmt.Errorf("%w: %s", ErrBusy, sess.id)
	}
	sess.streaming = true
	return sess, nil
}

// release undoes a claim that never reached the stream.
func (s *Server) release(sess *session) {
	s.mu.Lock()
	sess.streaming = false
	s.mu.Unlock()
}

// record stores the latest frame for status requests.
func (s *Server) record(sess *session, f driver.Frame) {
	s.mu.Lock()
	sess.last = &f
	s.mu.Unlock()
}

// remove drops the session.
func (s *Server) remove(sess *session) {
	s.mu.Lock()
	delete(s.sessions, sess.id)
	s.mu.Unlock()
}

// reap drops sessions older than the TTL that are not streaming and
// returns how many were dropped.
func (s *Server) reap() int {
	cutoff := s.now().Add(-s.limits.SessionTTL)
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for id, sess := range s.sessions {
		if !sess.streaming && sess.created.Before(cutoff) {
			delete(s.sessions, id)
			n++
		}
	}
	return n
}
