package session

import (
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"playground/debounce"
	"playground/store"
)

func zapNop() *zap.Logger { return zap.NewNop() }

func TestCreateAndGet(t *testing.T) {
	m := newTestManager(t, nil, nil)
	s, err := m.Create("profile-1")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if s.Profile != "profile-1" {
		t.Fatalf("expected profile 'profile-1', got %q", s.Profile)
	}
	got, ok := m.Get(s.ID)
	if !ok || got != s {
		t.Fatal("Get did not return the created session")
	}
}

func TestList(t *testing.T) {
	m := newTestManager(t, nil, nil)
	m.Create("a")
	m.Create("b")
	if n := len(m.List()); n != 2 {
		t.Fatalf("expected 2 sessions, got %d", n)
	}
}

func TestKill(t *testing.T) {
	m := newTestManager(t, nil, nil)
	s, _ := m.Create("killme")
	if err := m.Kill(s.ID); err != nil {
		t.Fatalf("Kill failed: %v", err)
	}
	if _, ok := m.Get(s.ID); ok {
		t.Fatal("session still exists after Kill")
	}
	select {
	case <-s.Done():
	default:
		t.Fatal("session not done after Kill")
	}
}

func TestKillNotFound(t *testing.T) {
	m := newTestManager(t, nil, nil)
	if err := m.Kill("nonexistent"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCreateWithBoltProfiles(t *testing.T) {
	db := store.MustTempDB(t)
	m := newTestManager(t, db, nil)
	s, err := m.Create("bolt")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	s.drain(t)

	ids, err := db.Profiles()
	if err != nil {
		t.Fatalf("Profiles: %v", err)
	}
	if len(ids) != 1 || ids[0] != "bolt" {
		t.Fatalf("expected startup save to create profile, got %v", ids)
	}
}

func newIdleManager(t *testing.T, idle time.Duration) (*Manager, *debounce.FakeClock) {
	t.Helper()
	clock := debounce.NewFakeClock()
	m := NewManager(Options{IdleTimeout: idle, Clock: clock, Log: zapNop()})
	t.Cleanup(m.Close)
	return m, clock
}

func alive(m *Manager, s *Session) bool {
	_, ok := m.Get(s.ID)
	return ok
}

func TestDisconnectedSessionReaped(t *testing.T) {
	m, clock := newIdleManager(t, time.Minute)
	s, _ := m.Create("idle")

	ch := make(chan Message, 64)
	s.SetClient(ch)
	clock.Advance(2 * time.Minute)
	if !alive(m, s) {
		t.Fatal("connected session was reaped")
	}

	s.ClearClient(ch)
	clock.Advance(30 * time.Second)
	if !alive(m, s) {
		t.Fatal("session reaped before the idle timeout")
	}
	clock.Advance(31 * time.Second)
	if alive(m, s) {
		t.Fatal("session still alive after the idle timeout")
	}
	select {
	case <-s.Done():
	default:
		t.Fatal("reaped session not done")
	}
}

func TestReconnectCancelsReap(t *testing.T) {
	m, clock := newIdleManager(t, time.Minute)
	s, _ := m.Create("back")

	first := make(chan Message, 64)
	s.SetClient(first)
	s.ClearClient(first)
	clock.Advance(30 * time.Second)

	second := make(chan Message, 64)
	s.SetClient(second)
	clock.Advance(5 * time.Minute)
	if !alive(m, s) {
		t.Fatal("reconnected session was reaped")
	}

	s.ClearClient(second)
	clock.Advance(time.Minute)
	if alive(m, s) {
		t.Fatal("session not reaped after its last client left")
	}
}

func TestNeverConnectedSessionReaped(t *testing.T) {
	m, clock := newIdleManager(t, time.Minute)
	s, _ := m.Create("ghost")
	clock.Advance(time.Minute)
	if alive(m, s) {
		t.Fatal("session without any client was kept")
	}
}

func TestAbandonedSessionsDoNotAccumulate(t *testing.T) {
	m, clock := newIdleManager(t, time.Minute)
	for i := 0; i < 50; i++ {
		s, err := m.Create("")
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		ch := make(chan Message, 64)
		s.SetClient(ch)
		s.ClearClient(ch)
	}
	clock.Advance(time.Minute)
	if n := len(m.List()); n != 0 {
		t.Fatalf("expected every abandoned session reaped, %d left", n)
	}
}

func TestNegativeIdleTimeoutDisablesReaping(t *testing.T) {
	m, clock := newIdleManager(t, -1)
	s, _ := m.Create("keep")
	clock.Advance(24 * time.Hour)
	if !alive(m, s) {
		t.Fatal("session reaped with reaping disabled")
	}
}
