package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/katalvlaran/gridpath/grid"
	"github.com/katalvlaran/gridpath/search"
)

// createRequest is the body of POST /api/searches.
type createRequest struct {
	Rows       []string `json:"rows"`
	Strategy   string   `json:"strategy"`
	IntervalMS int      `json:"interval_ms"`
}

// sessionView is the JSON description of a session.
type sessionView struct {
	ID        string          `json:"id"`
	Rows      int             `json:"rows"`
	Cols      int             `json:"cols"`
	Strategy  string          `json:"strategy"`
	Interval  int64           `json:"interval_ms"`
	Reachable bool            `json:"reachable"`
	Streaming bool            `json:"streaming"`
	State     string          `json:"state"`
	Start     grid.Coordinate `json:"start"`
	End       grid.Coordinate `json:"end"`
	Metrics   *search.Metrics `json:"metrics,omitempty"`
}

type errorView struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "sessions": s.Sessions()})
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	sess, err := s.create(w, r)
	if err != nil {
		s.log.Info("rejected search", slog.Any("err", err))
		s.writeError(w, err)
		return
	}
	s.log.Info("search created",
		slog.String("id", sess.id.String()),
		slog.String("strategy", sess.strategy.String()),
		slog.Bool("reachable", sess.reachable),
	)
	writeJSON(w, http.StatusCreated, s.view(sess))
}

// create validates the request and registers a session.
func (s *Server) create(w http.ResponseWriter, r *http.Request) (*session, error) {
	var req createRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		return nil, fmt.Errorf("%w: decode body: %v", ErrBadRequest, err)
	}

	g, err := grid.Parse(req.Rows)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadRequest, err)
	}
	if cells := g.Rows() * g.Cols(); cells > s.limits.MaxCells {
		return nil, fmt.Errorf("%w: board has %d cells, limit %d", ErrBadRequest, cells, s.limits.MaxCells)
	}
	start, end, err := g.Endpoints()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadRequest, err)
	}

	strategy := search.Heuristic
	if req.Strategy != "" {
		if strategy, err = search.ParseStrategy(req.Strategy); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrBadRequest, err)
		}
	}
	interval := s.limits.DefaultInterval
	if req.IntervalMS < 0 {
		return nil, fmt.Errorf("%w: interval_ms %d is negative", ErrBadRequest, req.IntervalMS)
	}
	if req.IntervalMS > 0 {
		interval = time.Duration(req.IntervalMS) * time.Millisecond
	}
	if interval > maxInterval {
		return nil, fmt.Errorf("%w: interval %v above %v", ErrBadRequest, interval, maxInterval)
	}

	eng, err := search.NewEngine(g, start, end, strategy, search.WithLogger(s.log))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadRequest, err)
	}
	return s.add(eng, interval, g.Reachable(start, end)), nil
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	sess, err := s.lookup(mux.Vars(r)["id"])
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.view(sess))
}

// view renders a session. The engine itself is not touched, since a stream
// may be stepping it.
func (s *Server) view(sess *session) sessionView {
	v := sessionView{
		ID:        sess.id.String(),
		Rows:      sess.rows,
		Cols:      sess.cols,
		Strategy:  sess.strategy.String(),
		Interval:  sess.interval.Milliseconds(),
		Reachable: sess.reachable,
		State:     search.Initialized.String(),
		Start:     sess.start,
		End:       sess.end,
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	v.Streaming = sess.streaming
	if sess.last != nil {
		m := sess.last.Metrics
		v.State = sess.last.State
		v.Metrics = &m
	}
	return v
}

// writeError maps package errors onto status codes.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, ErrBadRequest):
		code = http.StatusBadRequest
	case errors.Is(err, ErrNoSession):
		code = http.StatusNotFound
	case errors.Is(err, ErrBusy):
		code = http.StatusConflict
	}
	writeJSON(w, code, errorView{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
