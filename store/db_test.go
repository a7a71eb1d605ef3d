package store_test

import (
	"path/filepath"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"

	"playground/store"
)

func TestProfilesAreIsolated(t *testing.T) {
	db := store.MustTempDB(t)
	a, _ := db.Profile("a")
	b, _ := db.Profile("b")

	if err := a.Set("k", "from-a"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, ok, _ := b.Get("k"); ok {
		t.Fatal("profile b sees profile a's key")
	}
	if v, ok, _ := a.Get("k"); !ok || v != "from-a" {
		t.Fatalf("expected from-a, got %q ok=%v", v, ok)
	}

	b.Set("k", "from-b")
	ids, err := db.Profiles()
	if err != nil {
		t.Fatalf("Profiles: %v", err)
	}
	sort.Strings(ids)
	if diff := cmp.Diff([]string{"a", "b"}, ids); diff != "" {
		t.Fatalf("profiles mismatch (-want +got):\n%s", diff)
	}
}

func TestEmptyProfileRejected(t *testing.T) {
	db := store.MustTempDB(t)
	if _, err := db.Profile(""); err != store.ErrNoProfile {
		t.Fatalf("expected ErrNoProfile, got %v", err)
	}
	if _, err := store.NewMemoryProfiles().Profile(""); err != store.ErrNoProfile {
		t.Fatalf("expected ErrNoProfile from memory profiles, got %v", err)
	}
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state.db")
	db, err := store.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	p, _ := db.Profile("x")
	p.Set(store.KeyTheme, "light")
	db.Close()

	db, err = store.Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer db.Close()
	p, _ = db.Profile("x")
	if v, ok, _ := p.Get(store.KeyTheme); !ok || v != "light" {
		t.Fatalf("expected persisted theme, got %q ok=%v", v, ok)
	}
}

func TestMemoryProfilesReuseStore(t *testing.T) {
	mp := store.NewMemoryProfiles()
	a1, _ := mp.Profile("a")
	a1.Set("k", "v")
	a2, _ := mp.Profile("a")
	if v, ok, _ := a2.Get("k"); !ok || v != "v" {
		t.Fatalf("expected same store for same profile, got %q ok=%v", v, ok)
	}
}
