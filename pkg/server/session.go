package server

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync/atomic"

	"github.com/vango-dev/clickaway/pkg/dom"
	"github.com/vango-dev/clickaway/pkg/protocol"
	"github.com/vango-dev/clickaway/pkg/vango"
)

// AppFunc builds the root component of a page bound to its document.
type AppFunc func(doc dom.EventTarget) vango.Component

var sessionCounter atomic.Uint64

// Session is one mounted page: a document, the root owner of its component
// tree and the mounted root component. All methods must be called from the
// goroutine that created the session; reactive tracking is goroutine-local.
type Session struct {
	ID string

	doc   *dom.Document
	owner *vango.Owner
	root  *vango.ComponentInstance

	logger *slog.Logger
	closed atomic.Bool
}

// NewSession mounts app against a fresh document.
func NewSession(app AppFunc, logger *slog.Logger, docOpts ...dom.Option) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	id := fmt.Sprintf("s%d", sessionCounter.Add(1))
	logger = logger.With("session_id", id)

	doc := dom.New(append([]dom.Option{dom.WithLogger(logger)}, docOpts...)...)
	s := &Session{
		ID:     id,
		doc:    doc,
		owner:  vango.NewOwner(nil),
		logger: logger,
	}

	s.root = vango.Mount(s.owner, app(doc), nil)
	doc.SetRoot(s.root.Tree())

	logger.Debug("session mounted")
	return s
}

// Document returns the session's document.
func (s *Session) Document() *dom.Document {
	return s.doc
}

// maxRenderPasses bounds the re-renders one event may trigger. A render
// that writes a signal it reads would otherwise loop forever.
const maxRenderPasses = 100

// HandleEvent dispatches an input event, then re-renders the root component
// if the event changed state it depends on. Listener panics are recovered and
// returned as errors so one bad handler does not kill the connection; state
// changed by the listeners that ran before the panic is still rendered.
func (s *Session) HandleEvent(ctx context.Context, ev protocol.Event) (err error) {
	if s.closed.Load() {
		return ErrSessionClosed
	}

	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("event handler panic",
				"type", ev.Type.String(),
				"seq", ev.Seq,
				"panic", r,
				"stack", string(debug.Stack()))
			err = fmt.Errorf("%w: %v", ErrHandlerPanic, r)
		}
	}()
	defer func() {
		if ferr := s.flush(); ferr != nil && err == nil {
			err = ferr
		}
	}()

	called := s.doc.Dispatch(ctx, ev)
	s.logger.Debug("event dispatched", "type", ev.Type.String(), "hid", ev.HID, "listeners", called)
	return nil
}

// flush re-renders the root while it is dirty and runs pending effects.
func (s *Session) flush() error {
	var err error
	for passes := 0; s.root.IsDirty(); passes++ {
		if passes == maxRenderPasses {
			s.logger.Warn("render loop cut short", "passes", passes)
			err = ErrRenderLoop
			break
		}
		s.doc.SetRoot(s.root.Render())
	}
	s.owner.RunPendingEffects()
	return err
}

// Close unmounts the component tree, which removes every document listener
// installed by its hooks. Close is idempotent.
func (s *Session) Close() {
	if s.closed.Swap(true) {
		return
	}
	s.root.Unmount()
	s.owner.Dispose()
	s.logger.Debug("session closed")
}
