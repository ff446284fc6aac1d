package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	channerics "github.com/niceyeti/channerics/channels"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/gridpath/driver"
)

// errClientClosed ends a stream whose peer went away first.
var errClientClosed = errors.New("server: client closed stream")

// maxCloseReason is the room left for a close reason in a control frame.
const maxCloseReason = 120

// handleStream upgrades to a websocket and drives the session's engine,
// writing one frame per visited cell. The stream ends with a close message
// whose reason is empty on completion or names the ceiling that stopped it.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	sess, err := s.claim(mux.Vars(r)["id"])
	if err != nil {
		s.writeError(w, err)
		return
	}
	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already answered the request.
		s.release(sess)
		s.log.Warn("websocket upgrade failed", slog.Any("err", err))
		return
	}
	defer ws.Close()
	defer s.remove(sess)

	log := s.log.With(slog.String("id", sess.id.String()))
	log.Info("stream opened")

	st := &stream{server: s, sess: sess, ws: ws, log: log, frames: make(chan driver.Frame)}
	if err := st.sync(r.Context()); err != nil && !errors.Is(err, errClientClosed) {
		log.Warn("stream failed", slog.Any("err", err))
		return
	}
	log.Info("stream closed")
}

// stream is one websocket connection bound to one session.
type stream struct {
	server *Server
	sess   *session
	ws     *websocket.Conn
	log    *slog.Logger
	frames chan driver.Frame
	// set by run before frames is closed
	runErr error
}

// sync runs the reader, the driver and the writer until the search ends or
// the peer leaves.
func (st *stream) sync(ctx context.Context) error {
	group, groupCtx := errgroup.WithContext(ctx)
	finished := make(chan struct{})
	// unblock the reader once any member fails
	stop := context.AfterFunc(groupCtx, func() { _ = st.ws.SetReadDeadline(time.Now()) })
	defer stop()

	group.Go(func() error {
		return st.readMessages(finished)
	})
	group.Go(func() error {
		return st.run(groupCtx)
	})
	group.Go(func() error {
		defer close(finished)
		return st.publish(groupCtx)
	})

	return group.Wait()
}

// readMessages drains client messages. Reads only fail permanently, so any
// error ends the stream; after publish finished it is the expected close,
// before that it means the peer left.
func (st *stream) readMessages(finished <-chan struct{}) error {
	for {
		if _, _, err := st.ws.ReadMessage(); err != nil {
			select {
			case <-finished:
				return nil
			default:
			}
			if isClosure(err) {
				return errClientClosed
			}
			return fmt.Errorf("%w: %v", errClientClosed, err)
		}
	}
}

// run drives the engine and feeds frames to publish.
func (st *stream) run(ctx context.Context) error {
	defer close(st.frames)
	lim := st.server.limits
	_, err := driver.Run(ctx, st.sess.engine, driver.Options{
		Interval:   st.sess.interval,
		MaxSteps:   lim.MaxSteps,
		MaxRuntime: lim.MaxRuntime,
		Logger:     st.log,
		OnFrame: func(f driver.Frame) {
			st.server.record(st.sess, f)
			select {
			case st.frames <- f:
			case <-ctx.Done():
			}
		},
	})
	if errors.Is(err, driver.ErrStepLimit) || errors.Is(err, driver.ErrDeadline) {
		st.runErr = err
		return nil
	}
	if ctx.Err() != nil {
		// the peer or the request went away; reported by whoever noticed
		return nil
	}
	return err
}

// publish writes frames until the driver stops, then closes the socket
// politely and gives the peer closeWait to answer.
func (st *stream) publish(ctx context.Context) error {
	var frames <-chan driver.Frame = st.frames
	for f := range channerics.OrDone(ctx.Done(), frames) {
		if err := st.ws.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
			return fmt.Errorf("set deadline: %w", err)
		}
		if err := st.ws.WriteJSON(f); err != nil {
			if isError(err) {
				return fmt.Errorf("publish: %w", err)
			}
			return errClientClosed
		}
	}
	if ctx.Err() != nil {
		return nil
	}

	reason := ""
	if st.runErr != nil {
		reason = st.runErr.Error()
		if len(reason) > maxCloseReason {
			reason = reason[:maxCloseReason]
		}
	}
	_ = st.ws.SetWriteDeadline(time.Now().Add(writeWait))
	if err := st.ws.WriteMessage(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, reason),
	); err != nil {
		return errClientClosed
	}
	return st.ws.SetReadDeadline(time.Now().Add(closeWait))
}

func isError(err error) bool {
	return err != nil && websocket.IsUnexpectedCloseError(
		err,
		websocket.CloseNormalClosure,
		websocket.CloseGoingAway)
}

func isClosure(err error) bool {
	return err != nil && websocket.IsCloseError(
		err,
		websocket.CloseNormalClosure,
		websocket.CloseGoingAway)
}
