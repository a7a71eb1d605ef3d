package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"playground/catalog"
	"playground/playground"
	"playground/snippet"
)

var ErrUnknownMessage = errors.New("unknown message type")

// Session is one live playground: a controller, the event loop that drives
// it, and at most one connected browser.
type Session struct {
	ID         string
	Profile    string
	CreatedAt  time.Time
	LastActive time.Time
	Connected  bool

	ctrl    *playground.Controller
	editors map[snippet.Pane]*remoteEditor
	log     *zap.Logger

	events    chan func()
	done      chan struct{}
	closeOnce sync.Once

	outChan  chan Message
	kickChan chan struct{}
	outMu    sync.Mutex

	// idleGen changes on every connect and disconnect; a reap scheduled for
	// an older generation is stale. onIdle is called, outside outMu, each
	// time the last client leaves.
	idleGen uint64
	onIdle  func(gen uint64)

	// viewport is only touched on the event loop.
	viewport struct{ width, left float64 }

	mirrorMu sync.Mutex
	mirror   mirror
}

type optionKey struct {
	pane snippet.Pane
	name string
}

// mirror is the browser-visible state replayed to a (re)connecting client.
type mirror struct {
	texts      map[snippet.Pane]string
	options    map[optionKey]string
	preview    string
	theme      snippet.Theme
	entries    []catalog.Entry
	paneWidth  float64
	fullscreen snippet.Pane
}

type sessionInfo struct {
	ID         string    `json:"id"`
	Profile    string    `json:"profile"`
	CreatedAt  time.Time `json:"created_at"`
	LastActive time.Time `json:"last_active"`
	Connected  bool      `json:"connected"`
}

func newSession(id, profile string, log *zap.Logger) *Session {
	now := time.Now()
	s := &Session{
		ID:         id,
		Profile:    profile,
		CreatedAt:  now,
		LastActive: now,
		editors:    make(map[snippet.Pane]*remoteEditor),
		log:        log.With(zap.String("session", id)),
		events:     make(chan func(), 64),
		done:       make(chan struct{}),
		mirror: mirror{
			texts:   make(map[snippet.Pane]string),
			options: make(map[optionKey]string),
		},
	}
	for _, p := range snippet.Panes {
		s.editors[p] = &remoteEditor{s: s, pane: p}
	}
	return s
}

// MarshalJSON reports the session's public fields.
func (s *Session) MarshalJSON() ([]byte, error) {
	s.outMu.Lock()
	info := sessionInfo{
		ID:         s.ID,
		Profile:    s.Profile,
		CreatedAt:  s.CreatedAt,
		LastActive: s.LastActive,
		Connected:  s.Connected,
	}
	s.outMu.Unlock()
	return json.Marshal(info)
}

// Post queues fn to run on the event loop. It is dropped once the session
// has ended.
func (s *Session) Post(fn func()) {
	select {
	case s.events <- fn:
	case <-s.done:
	}
}

func (s *Session) loop() {
	for {
		select {
		case fn := <-s.events:
			fn()
		case <-s.done:
			return
		}
	}
}

// Handle applies a message received from the browser.
func (s *Session) Handle(msg Message) error {
	s.touch()
	switch msg.Type {
	case MsgChange:
		ed, ok := s.editors[msg.Pane]
		if !ok {
			return fmt.Errorf("%w: %q", playground.ErrUnknownPane, msg.Pane)
		}
		text := msg.Value
		s.Post(func() { ed.apply(text) })
	case MsgViewport:
		width, left := msg.Width, msg.Left
		s.Post(func() {
			s.viewport.width = width
			s.viewport.left = left
		})
	case MsgEvent:
		if msg.Event == nil {
			return fmt.Errorf("event message without event")
		}
		ev := *msg.Event
		ev.Catalog = nil
		s.Post(func() {
			if err := s.ctrl.Dispatch(ev); err != nil {
				s.log.Debug("dispatch failed", zap.String("event", string(ev.Kind)), zap.Error(err))
			}
		})
	default:
		return fmt.Errorf("%w: %q", ErrUnknownMessage, msg.Type)
	}
	return nil
}

func (s *Session) touch() {
	s.outMu.Lock()
	s.LastActive = time.Now()
	s.outMu.Unlock()
}

func (s *Session) send(msg Message) {
	s.outMu.Lock()
	defer s.outMu.Unlock()
	if s.outChan != nil {
		select {
		case s.outChan <- msg:
		default:
			s.log.Warn("client too slow, dropping message", zap.String("type", msg.Type))
		}
	}
}

// Snapshot returns the messages that bring a freshly connected browser to
// the session's current state.
func (s *Session) Snapshot() []Message {
	s.mirrorMu.Lock()
	defer s.mirrorMu.Unlock()

	m := s.mirror
	msgs := []Message{}
	if m.theme != "" {
		msgs = append(msgs, themeMessage(m.theme))
	}
	for _, p := range snippet.Panes {
		for k, v := range m.options {
			if k.pane == p {
				msgs = append(msgs, Message{Type: MsgOption, Pane: p, Name: k.name, Value: v})
			}
		}
		msgs = append(msgs, Message{Type: MsgSet, Pane: p, Value: m.texts[p]})
	}
	if len(m.entries) > 0 {
		msgs = append(msgs, Message{Type: MsgTemplates, Entries: m.entries})
	}
	if m.paneWidth > 0 {
		msgs = append(msgs, Message{Type: MsgPaneWidth, Width: m.paneWidth})
	}
	if m.fullscreen != "" {
		msgs = append(msgs, Message{Type: MsgFullscreen, Pane: m.fullscreen, Open: true})
	}
	if m.preview != "" {
		msgs = append(msgs, Message{Type: MsgPreview, Value: m.preview})
	}
	return msgs
}

// SetClient registers a channel to receive outgoing messages. If a previous
// client is connected it is kicked: its kick channel is closed so the
// websocket handler can detect the displacement and close that connection.
// Returns a kick channel that will be closed if this client is itself later
// displaced.
func (s *Session) SetClient(ch chan Message) <-chan struct{} {
	s.outMu.Lock()
	defer s.outMu.Unlock()
	if s.kickChan != nil {
		close(s.kickChan)
	}
	kick := make(chan struct{})
	s.kickChan = kick
	s.outChan = ch
	s.Connected = true
	s.idleGen++
	return kick
}

// ClearClient is called when a connection ends. It only updates session state
// if ch is still the current owner (guards against a displaced connection
// clearing a newer one). It always closes ch so the pump goroutine exits.
func (s *Session) ClearClient(ch chan Message) {
	s.outMu.Lock()
	left := s.outChan == ch
	var gen uint64
	if left {
		s.outChan = nil
		s.Connected = false
		s.kickChan = nil
		s.idleGen++
		gen = s.idleGen
	}
	s.outMu.Unlock()
	close(ch)

	if left && s.onIdle != nil {
		s.onIdle(gen)
	}
}

// idleSince reports whether no client has connected since generation gen.
func (s *Session) idleSince(gen uint64) bool {
	s.outMu.Lock()
	defer s.outMu.Unlock()
	return !s.Connected && s.idleGen == gen
}

// Done returns a channel that is closed when the session ends.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

func (s *Session) close() {
	s.closeOnce.Do(func() { close(s.done) })
}
