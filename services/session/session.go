// Package session keeps the signed-in user's record under a named slot, one entry per access token.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/techagentng/civiceye/models"
)

var ErrNoSession = errors.New("no session for token")

type Store interface {
	Save(ctx context.Context, token string, user *models.User, ttl time.Duration) error
	Load(ctx context.Context, token string) (*models.User, error)
	Clear(ctx context.Context, token string) error
}

func key(slot, token string) string {
	return slot + ":" + token
}

// RedisStore keeps sessions in Redis so every API instance sees the same slots.
type RedisStore struct {
	client *redis.Client
	slot   string
}

func NewRedisStore(client *redis.Client, slot string) *RedisStore {
	return &RedisStore{client: client, slot: slot}
}

// NewRedisClient builds a client with short timeouts.
func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  3 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})
}

func (s *RedisStore) Save(ctx context.Context, token string, user *models.User, ttl time.Duration) error {
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key(s.slot, token), data, ttl).Err()
}

func (s *RedisStore) Load(ctx context.Context, token string) (*models.User, error) {
	data, err := s.client.Get(ctx, key(s.slot, token)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNoSession
		}
		return nil, err
	}
	var user models.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *RedisStore) Clear(ctx context.Context, token string) error {
	return s.client.Del(ctx, key(s.slot, token)).Err()
}

type memoryEntry struct {
	user      models.User
	expiresAt time.Time
}

// MemoryStore is the single-instance fallback used when no Redis address is configured.
type MemoryStore struct {
	mu      sync.Mutex
	slot    string
	entries map[string]memoryEntry
	now     func() time.Time
}

func NewMemoryStore(slot string) *MemoryStore {
	return &MemoryStore{slot: slot, entries: map[string]memoryEntry{}, now: time.Now}
}

func (s *MemoryStore) Save(_ context.Context, token string, user *models.User, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key(s.slot, token)] = memoryEntry{user: *user, expiresAt: s.now().Add(ttl)}
	return nil
}

func (s *MemoryStore) Load(_ context.Context, token string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := key(s.slot, token)
	entry, ok := s.entries[k]
	if !ok {
		return nil, ErrNoSession
	}
	if !s.now().Before(entry.expiresAt) {
		delete(s.entries, k)
		return nil, ErrNoSession
	}
	user := entry.user
	return &user, nil
}

func (s *MemoryStore) Clear(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key(s.slot, token))
	return nil
}
