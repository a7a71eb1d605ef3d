package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"playground/catalog"
	"playground/debounce"
	"playground/playground"
	"playground/snippet"
	"playground/store"
)

var ErrNotFound = errors.New("session not found")

// DefaultIdleTimeout is how long a session survives without a connected
// browser.
const DefaultIdleTimeout = 10 * time.Minute

// Options configures the sessions a Manager creates.
type Options struct {
	Profiles      store.Profiles
	Templates     catalog.Source
	DebounceDelay time.Duration
	RefreshDelay  time.Duration
	// IdleTimeout ends sessions left without a client this long. Zero means
	// DefaultIdleTimeout; negative disables reaping.
	IdleTimeout   time.Duration
	Clock         debounce.Clock
	Log           *zap.Logger
}

type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	opts     Options
}

// NewManager returns a Manager. Missing options fall back to in-memory
// profiles, an empty template catalog, DefaultIdleTimeout, the system clock
// and a no-op logger.
func NewManager(opts Options) *Manager {
	if opts.Profiles == nil {
		opts.Profiles = store.NewMemoryProfiles()
	}
	if opts.Templates == nil {
		opts.Templates = staticSource{catalog.Empty()}
	}
	if opts.IdleTimeout == 0 {
		opts.IdleTimeout = DefaultIdleTimeout
	}
	if opts.Clock == nil {
		opts.Clock = debounce.System
	}
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}
	return &Manager{sessions: make(map[string]*Session), opts: opts}
}

type staticSource struct{ c *catalog.Catalog }

func (s staticSource) Fetch(context.Context) (*catalog.Catalog, error) { return s.c, nil }

// Create starts a session for profile. An empty profile gets a fresh id.
func (m *Manager) Create(profile string) (*Session, error) {
	if profile == "" {
		profile = uuid.New().String()
	}
	kv, err := m.opts.Profiles.Profile(profile)
	if err != nil {
		return nil, fmt.Errorf("opening profile %s: %w", profile, err)
	}

	s := newSession(uuid.New().String(), profile, m.opts.Log)
	view := remoteView{s: s}
	ui := playground.UI{
		Editors:    make(map[snippet.Pane]playground.Editor, len(s.editors)),
		Surface:    view,
		Downloader: view,
		Chrome:     view,
		Viewport:   view,
	}
	for p, ed := range s.editors {
		ui.Editors[p] = ed
	}
	ctrl, err := playground.New(ui, store.NewPersistence(kv), loopClock{s: s, base: m.opts.Clock}, playground.Options{
		DebounceDelay: m.opts.DebounceDelay,
		RefreshDelay:  m.opts.RefreshDelay,
		Log:           s.log,
	})
	if err != nil {
		return nil, err
	}
	s.ctrl = ctrl
	if m.opts.IdleTimeout > 0 {
		s.onIdle = func(gen uint64) { m.reapWhenIdle(s, gen) }
	}

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()

	go s.loop()
	s.Post(ctrl.Start)
	go m.loadCatalog(s)

	// A session nobody connects to is reaped like an abandoned one.
	if s.onIdle != nil {
		s.onIdle(0)
	}

	s.log.Info("session created", zap.String("profile", profile))
	return s, nil
}

// loadCatalog fetches the template catalog once. A failed fetch leaves the
// session without templates.
func (m *Manager) loadCatalog(s *Session) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		select {
		case <-s.done:
			cancel()
		case <-ctx.Done():
		}
	}()

	c, err := m.opts.Templates.Fetch(ctx)
	if err != nil {
		s.log.Info("template catalog unavailable", zap.Error(err))
		return
	}
	s.Post(func() {
		s.ctrl.Dispatch(playground.Event{Kind: playground.EventCatalogLoaded, Catalog: c})
	})
}

// reapWhenIdle kills s once it has stayed without a client for the idle
// timeout starting now.
func (m *Manager) reapWhenIdle(s *Session, gen uint64) {
	m.opts.Clock.AfterFunc(m.opts.IdleTimeout, func() {
		if !s.idleSince(gen) {
			return
		}
		if err := m.Kill(s.ID); err == nil {
			s.log.Info("idle session reaped", zap.Duration("idle", m.opts.IdleTimeout))
		}
	})
}

func (m *Manager) List() []*Session {
	m.mu.RLock()
	defer m.mu.RUnlock()

	list := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		list = append(list, s)
	}
	return list
}

func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	return s, ok
}

// Kill ends a session. Its connected browser, if any, is told it closed.
func (m *Manager) Kill(id string) error {
	m.mu.Lock()
	s, ok := m.sessions[id]
	if !ok {
		m.mu.Unlock()
		return ErrNotFound
	}
	delete(m.sessions, id)
	m.mu.Unlock()

	s.close()
	s.log.Info("session ended")
	return nil
}

// Close ends every session.
func (m *Manager) Close() {
	for _, s := range m.List() {
		m.Kill(s.ID)
	}
}
