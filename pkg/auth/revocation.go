package auth

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const revokedKeyPrefix = "sitterhub:revoked:"

// RevocationStore remembers logged-out token ids until they would have
// expired anyway.
type RevocationStore interface {
	Revoke(ctx context.Context, tokenID string, until time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
	Stop()
}

type RedisRevocationStore struct {
	client *redis.Client
}

func NewRedisRevocationStore(client *redis.Client) *RedisRevocationStore {
	return &RedisRevocationStore{client: client}
}

func (s *RedisRevocationStore) Revoke(ctx context.Context, tokenID string, until time.Time) error {
	ttl := time.Until(until)
	if ttl <= 0 {
		return nil
	}
	return s.client.Set(ctx, revokedKeyPrefix+tokenID, 1, ttl).Err()
}

func (s *RedisRevocationStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	err := s.client.Get(ctx, revokedKeyPrefix+tokenID).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *RedisRevocationStore) Stop() {}

type InMemoryRevocationStore struct {
	mu      sync.RWMutex
	revoked map[string]time.Time
	stop    chan struct{}
	once    sync.Once
}

func NewInMemoryRevocationStore(cleanupInterval time.Duration) *InMemoryRevocationStore {
	store := &InMemoryRevocationStore{
		revoked: make(map[string]time.Time),
		stop:    make(chan struct{}),
	}
	go store.cleanup(cleanupInterval)
	return store
}

func (s *InMemoryRevocationStore) Revoke(_ context.Context, tokenID string, until time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revoked[tokenID] = until
	return nil
}

func (s *InMemoryRevocationStore) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	until, ok := s.revoked[tokenID]
	return ok && time.Now().Before(until), nil
}

func (s *InMemoryRevocationStore) Stop() {
	s.once.Do(func() { close(s.stop) })
}

func (s *InMemoryRevocationStore) cleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			now := time.Now()
			s.mu.Lock()
			for id, until := range s.revoked {
				if now.After(until) {
					delete(s.revoked, id)
				}
			}
			s.mu.Unlock()
		case <-s.stop:
			return
		}
	}
}
