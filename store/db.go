// Package store persists playground state per browser profile.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"
)

const profilePrefix = "profile:"

// ErrNoProfile is returned when a profile id is empty.
var ErrNoProfile = errors.New("profile id is required")

// KV is a durable string key-value store.
type KV interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
}

// batchKV is implemented by stores that can write several keys atomically.
type batchKV interface {
	SetAll(kv map[string]string) error
}

// DB is a bbolt database holding one bucket per profile.
type DB struct {
	db *bolt.DB
}

// Open opens or creates the database at path.
func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("creating store directory: %w", err)
	}
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening store %s: %w", path, err)
	}
	return &DB{db: db}, nil
}

// Close closes the database.
func (d *DB) Close() error {
	return d.db.Close()
}

// Profile returns the key-value view of one profile.
func (d *DB) Profile(id string) (KV, error) {
	if id == "" {
		return nil, ErrNoProfile
	}
	return &profileKV{db: d.db, bucket: []byte(profilePrefix + id)}, nil
}

// Profiles lists the ids of every profile with stored state.
func (d *DB) Profiles() ([]string, error) {
	var ids []string
	err := d.db.View(func(tx *bolt.Tx) error {
		return tx.ForEach(func(name []byte, _ *bolt.Bucket) error {
			if n := string(name); strings.HasPrefix(n, profilePrefix) {
				ids = append(ids, strings.TrimPrefix(n, profilePrefix))
			}
			return nil
		})
	})
	return ids, err
}

type profileKV struct {
	db     *bolt.DB
	bucket []byte
}

func (p *profileKV) Get(key string) (string, bool, error) {
	var (
		value string
		ok    bool
	)
	err := p.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(p.bucket)
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(key)); v != nil {
			value, ok = string(v), true
		}
		return nil
	})
	return value, ok, err
}

func (p *profileKV) Set(key, value string) error {
	return p.SetAll(map[string]string{key: value})
}

func (p *profileKV) SetAll(kv map[string]string) error {
	return p.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(p.bucket)
		if err != nil {
			return err
		}
		for k, v := range kv {
			if err := b.Put([]byte(k), []byte(v)); err != nil {
				return err
			}
		}
		return nil
	})
}

// Memory is an in-memory KV used when no database is configured.
type Memory struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewMemory returns an empty Memory store.
func NewMemory() *Memory {
	return &Memory{data: make(map[string]string)}
}

func (m *Memory) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *Memory) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *Memory) SetAll(kv map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k, v := range kv {
		m.data[k] = v
	}
	return nil
}

// Profiles hands out per-profile stores. *DB and *MemoryProfiles implement it.
type Profiles interface {
	Profile(id string) (KV, error)
}

// MemoryProfiles keeps one Memory store per profile for the process lifetime.
type MemoryProfiles struct {
	mu       sync.Mutex
	profiles map[string]*Memory
}

// NewMemoryProfiles returns an empty MemoryProfiles.
func NewMemoryProfiles() *MemoryProfiles {
	return &MemoryProfiles{profiles: make(map[string]*Memory)}
}

func (m *MemoryProfiles) Profile(id string) (KV, error) {
	if id == "" {
		return nil, ErrNoProfile
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.profiles[id]
	if !ok {
		p = NewMemory()
		m.profiles[id] = p
	}
	return p, nil
}
