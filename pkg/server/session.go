package server

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	verrors "github.com/vango-dev/vtree/internal/errors"
	"github.com/vango-dev/vtree/pkg/dom"
	"github.com/vango-dev/vtree/pkg/metrics"
	"github.com/vango-dev/vtree/pkg/protocol"
	"github.com/vango-dev/vtree/pkg/vdom"
)

// Session is one WebSocket connection with its own document and tree.
type Session struct {
	ID        string
	CreatedAt time.Time

	conn    *websocket.Conn
	config  *Config
	logger  *slog.Logger
	metrics *metrics.Collector

	// mu serializes engine work and connection writes.
	mu     sync.Mutex
	doc    *dom.Document
	root   *vdom.Root
	seq    uint64
	closed atomic.Bool
	events atomic.Uint64
}

func newSession(conn *websocket.Conn, app AppFunc, config *Config, logger *slog.Logger, m *metrics.Collector) (*Session, error) {
	id := uuid.NewString()
	logger = logger.With("session", id)

	doc := dom.New()
	opts := []vdom.Option{vdom.WithLogger(logger)}
	if m != nil {
		opts = append(opts, vdom.WithObserver(m))
	}
	rc := vdom.NewContext(doc, opts...)

	var tree *vdom.Node
	if app != nil {
		tree = app()
	}
	root, err := rc.Attach(tree, doc.Body())
	if err != nil {
		return nil, fmt.Errorf("attach app: %w", err)
	}

	s := &Session{
		ID:        id,
		CreatedAt: time.Now(),
		conn:      conn,
		config:    config,
		logger:    logger,
		metrics:   m,
		doc:       doc,
		root:      root,
	}
	if m != nil {
		m.SessionOpened()
	}
	logger.Info("session opened")
	return s, nil
}

// Run sends the Hello frame and the initial patches, then reads client
// frames until the connection closes.
func (s *Session) Run() {
	defer s.Close()

	hello := protocol.EncodeHello(&protocol.Hello{
		Version:   protocol.Version,
		SessionID: s.ID,
		Root:      s.doc.Body().ID(),
	})
	s.mu.Lock()
	err := s.writeFrame(protocol.NewFrame(protocol.FrameHello, hello))
	if err == nil {
		err = s.flushLocked()
	}
	s.mu.Unlock()
	if err != nil {
		s.logger.Error("initial send failed", "error", err)
		return
	}

	s.readLoop()
}

func (s *Session) readLoop() {
	for {
		_ = s.conn.SetReadDeadline(time.Now().Add(s.config.SessionReadTimeout))
		_, msg, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				s.logger.Error("read error", "error", err)
			}
			return
		}

		frame, err := protocol.DecodeFrame(msg)
		if err != nil {
			s.logger.Warn("frame decode error", "error", err)
			s.sendError(verrors.New("V070").Wrap(err))
			continue
		}

		switch frame.Type {
		case protocol.FrameEvent:
			s.handleEventFrame(frame.Payload)
		default:
			s.logger.Warn("unexpected frame type", "type", frame.Type)
		}
	}
}

func (s *Session) handleEventFrame(payload []byte) {
	ev, err := protocol.DecodeEvent(payload)
	if err != nil {
		s.logger.Warn("event decode error", "error", err)
		s.sendError(verrors.New("V070").Wrap(err))
		return
	}
	if err := s.HandleEvent(ev); err != nil {
		s.sendError(err)
	}
}

// HandleEvent dispatches ev into the session document and flushes the
// resulting patches.
func (s *Session) HandleEvent(ev *protocol.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed.Load() {
		return nil
	}

	s.events.Add(1)
	target := s.doc.ByID(ev.Target)
	if target == nil {
		err := verrors.New("V071").WithDetailf("node #%d", ev.Target)
		s.recordEvent(ev.Type, err)
		return err
	}

	var detail map[string]any
	if len(ev.Detail) > 0 {
		detail = make(map[string]any, len(ev.Detail))
		for k, v := range ev.Detail {
			detail[k] = v
		}
	}
	calls := s.doc.Dispatch(target, &vdom.Event{Type: ev.Type, Value: ev.Value, Detail: detail})
	s.logger.Debug("event dispatched", "type", ev.Type, "target", ev.Target, "listeners", calls)

	err := s.flushLocked()
	s.recordEvent(ev.Type, err)
	return err
}

func (s *Session) recordEvent(eventType string, err error) {
	if s.metrics != nil {
		s.metrics.RecordEvent(eventType, err)
	}
}

// flushLocked sends the pending mutation log as one Patches frame.
func (s *Session) flushLocked() error {
	log := s.doc.Drain()
	if len(log) == 0 {
		return nil
	}
	patches, err := protocol.PatchesFromMutations(log)
	if err != nil {
		return err
	}
	s.seq++
	payload := protocol.EncodePatches(&protocol.PatchesFrame{Seq: s.seq, Patches: patches})
	frame := protocol.NewFrame(protocol.FramePatches, payload)
	frame.Flags = protocol.FlagFinal
	if err := s.writeFrame(frame); err != nil {
		return err
	}
	if s.metrics != nil {
		s.metrics.RecordPatches(len(patches))
	}
	return nil
}

func (s *Session) sendError(err error) {
	msg := protocol.NewErrorMessage(err, false)
	s.mu.Lock()
	defer s.mu.Unlock()
	if werr := s.writeFrame(protocol.NewFrame(protocol.FrameError, protocol.EncodeErrorMessage(msg))); werr != nil {
		s.logger.Debug("error frame not sent", "error", werr)
	}
}

func (s *Session) writeFrame(f *protocol.Frame) error {
	if s.closed.Load() {
		return websocket.ErrCloseSent
	}
	_ = s.conn.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout))
	return s.conn.WriteMessage(websocket.BinaryMessage, f.Encode())
}

// HTML returns the session document serialized with node ids.
func (s *Session) HTML() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.HTML(dom.HTMLOptions{IDs: true, Listeners: true})
}

// EventCount returns the number of events handled.
func (s *Session) EventCount() uint64 {
	return s.events.Load()
}

// Close unmounts the tree and closes the connection. It is safe to call
// more than once.
func (s *Session) Close() {
	if s.closed.Swap(true) {
		return
	}
	s.mu.Lock()
	if err := s.root.Unmount(); err != nil {
		s.logger.Warn("unmount failed", "error", err)
	}
	s.mu.Unlock()

	_ = s.conn.Close()
	if s.metrics != nil {
		s.metrics.SessionClosed()
	}
	s.logger.Info("session closed",
		"duration", time.Since(s.CreatedAt).Round(time.Millisecond),
		"events", s.events.Load())
}
