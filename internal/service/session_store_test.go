package service

import (
	"testing"
	"time"

	"holland-test/internal/catalog"
)

func TestMemorySessionStore(t *testing.T) {
	store := NewMemorySessionStore(0)
	session := newSession("s1", "strict", catalog.Default(), time.Now().UTC())

	if err := store.Save(session); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, ok := store.Get("s1")
	if !ok || got != session {
		t.Fatalf("expected stored session")
	}
	if err := store.Save(&Session{}); err != nil {
		t.Fatalf("expected blank id to be ignored, got %v", err)
	}
	if err := store.Delete("s1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok := store.Get("s1"); ok {
		t.Fatalf("expected deleted session to be gone")
	}
}

func TestMemorySessionStoreExpiry(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	store := &memorySessionStore{
		ttl:   time.Hour,
		now:   func() time.Time { return now },
		items: make(map[string]memorySessionItem),
	}
	_ = store.Save(newSession("old", "strict", catalog.Default(), now))

	now = now.Add(30 * time.Minute)
	if _, ok := store.Get("old"); !ok {
		t.Fatalf("expected session within ttl")
	}

	now = now.Add(time.Hour + time.Minute)
	_ = store.Save(newSession("new", "strict", catalog.Default(), now))
	if _, ok := store.items["old"]; ok {
		t.Fatalf("expected expired session to be swept on save")
	}
	if _, ok := store.Get("new"); !ok {
		t.Fatalf("expected fresh session")
	}
}

func TestSessionCollectorsFollowCatalogOrder(t *testing.T) {
	cat := catalog.Default()
	session := newSession("s1", "strict", cat, time.Now().UTC())
	collectors := session.Collectors()
	if len(collectors) != 6 {
		t.Fatalf("expected 6 collectors, got %d", len(collectors))
	}
	for i, code := range cat.Order() {
		if collectors[i].Trait().Code != code {
			t.Fatalf("expected %s at %d, got %s", code, i, collectors[i].Trait().Code)
		}
	}
	if _, err := session.Collector("Z"); err == nil {
		t.Fatalf("expected unknown trait error")
	}
}

func TestMemorySessionStoreReadsKeepSessionAlive(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	store := &memorySessionStore{
		ttl:   time.Hour,
		now:   func() time.Time { return now },
		items: make(map[string]memorySessionItem),
	}
	_ = store.Save(newSession("active", "strict", catalog.Default(), now))

	for i := 0; i < 4; i++ {
		now = now.Add(45 * time.Minute)
		if _, ok := store.Get("active"); !ok {
			t.Fatalf("expected active session to survive read %d", i+1)
		}
	}

	now = now.Add(time.Hour + time.Second)
	if _, ok := store.Get("active"); ok {
		t.Fatalf("expected idle session to expire")
	}
}
