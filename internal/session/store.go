// internal/session/store.go
package session

import (
	"time"

	"icms-service/internal/domain"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

const (
	DefaultTTL             = 30 * time.Minute
	DefaultCleanupInterval = time.Hour
)

// Store keeps the normalized table of each upload session until it expires.
// Tables are never modified after Put, so callers may share the returned pointer.
type Store interface {
	Put(table *domain.TransactionTable) string
	Get(id string) (*domain.TransactionTable, error)
	Delete(id string)
}

type cacheStore struct {
	tables *cache.Cache
	ttl    time.Duration
}

// NewStore creates an in-memory store; zero durations fall back to the defaults.
func NewStore(ttl, cleanupInterval time.Duration) Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if cleanupInterval <= 0 {
		cleanupInterval = DefaultCleanupInterval
	}
	return &cacheStore{tables: cache.New(ttl, cleanupInterval), ttl: ttl}
}

func (s *cacheStore) Put(table *domain.TransactionTable) string {
	id := uuid.NewString()
	s.tables.Set(id, table, s.ttl)
	return id
}

func (s *cacheStore) Get(id string) (*domain.TransactionTable, error) {
	v, ok := s.tables.Get(id)
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	table, ok := v.(*domain.TransactionTable)
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return table, nil
}

func (s *cacheStore) Delete(id string) {
	s.tables.Delete(id)
}
