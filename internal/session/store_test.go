package session

import (
	"errors"
	"testing"
	"time"

	"icms-service/internal/domain"
)

func TestStore_PutGetDelete(t *testing.T) {
	store := NewStore(time.Minute, time.Minute)
	table := &domain.TransactionTable{Sheet: "Entradas"}

	id := store.Put(table)
	if id == "" {
		t.Fatal("Put returned an empty id")
	}
	if other := store.Put(table); other == id {
		t.Error("each Put must return a new id")
	}

	got, err := store.Get(id)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != table {
		t.Error("Get returned a different table")
	}

	store.Delete(id)
	if _, err := store.Get(id); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Errorf("Get after Delete: got %v, want ErrSessionNotFound", err)
	}
	store.Delete("inexistente")
}

func TestStore_Expiration(t *testing.T) {
	store := NewStore(20*time.Millisecond, time.Hour)
	id := store.Put(&domain.TransactionTable{})

	time.Sleep(50 * time.Millisecond)
	if _, err := store.Get(id); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Errorf("expired session: got %v, want ErrSessionNotFound", err)
	}
}

func TestNewStore_Defaults(t *testing.T) {
	s, ok := NewStore(0, -1).(*cacheStore)
	if !ok {
		t.Fatal("NewStore must return *cacheStore")
	}
	if s.ttl != DefaultTTL {
		t.Errorf("ttl = %s, want %s", s.ttl, DefaultTTL)
	}
}
