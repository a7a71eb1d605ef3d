package catalog

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	bepdebounce "github.com/bep/debounce"
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// reloadSettle coalesces the burst of events an editor save produces.
const reloadSettle = 100 * time.Millisecond

// Manager holds the catalog loaded from a manifest file and can reload it
// when the file changes. Sessions take a snapshot through Fetch, so a reload
// never alters the catalog of a session that already has one.
type Manager struct {
	mu       sync.RWMutex
	filePath string
	catalog  *Catalog
	log      *zap.Logger
}

// NewManager loads the manifest at filePath. A missing or unreadable manifest
// leaves the catalog empty; the failure is logged.
func NewManager(filePath string, log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	m := &Manager{filePath: filePath, catalog: Empty(), log: log}
	if err := m.Reload(); err != nil {
		log.Warn("template manifest unusable, starting with no templates", zap.Error(err))
	}
	return m
}

// Get returns the current catalog.
func (m *Manager) Get() *Catalog {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.catalog
}

// Fetch implements Source.
func (m *Manager) Fetch(ctx context.Context) (*Catalog, error) {
	return m.Get(), nil
}

// Reload re-reads the manifest file. A missing file yields an empty catalog.
func (m *Manager) Reload() error {
	f, err := os.Open(m.filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			m.set(Empty())
			return nil
		}
		return fmt.Errorf("opening manifest %s: %w", m.filePath, err)
	}
	defer f.Close()

	c, err := Parse(f)
	if err != nil {
		return fmt.Errorf("parsing manifest %s: %w", m.filePath, err)
	}
	m.set(c)
	return nil
}

func (m *Manager) set(c *Catalog) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.catalog = c
}

// Watch reloads the manifest whenever it changes until ctx is done. The
// containing directory is watched so that editors which save by rename are
// picked up. A failed reload keeps the previous catalog.
func (m *Manager) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	dir := filepath.Dir(m.filePath)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return fmt.Errorf("watching %s: %w", dir, err)
	}

	go m.watchLoop(ctx, watcher)
	return nil
}

func (m *Manager) watchLoop(ctx context.Context, watcher *fsnotify.Watcher) {
	defer watcher.Close()

	debounced := bepdebounce.New(reloadSettle)
	reload := func() {
		if err := m.Reload(); err != nil {
			m.log.Warn("template manifest reload failed", zap.Error(err))
			return
		}
		m.log.Info("template manifest reloaded",
			zap.String("path", m.filePath),
			zap.Int("templates", m.Get().Len()))
	}

	target := filepath.Clean(m.filePath)
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) != 0 {
				debounced(reload)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			m.log.Warn("template manifest watcher error", zap.Error(err))
		}
	}
}
