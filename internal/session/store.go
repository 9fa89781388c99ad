package session

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/complaint-desk/internal/domain"
)

// ErrNoSession reports an absent or expired session record.
var ErrNoSession = errors.New("session not found")

// Flash is a transient user-visible message rendered on the next page.
type Flash struct {
	Category string `json:"category"`
	Message  string `json:"message"`
}

// Record is the server-side session state. A record with a zero UserID
// is an anonymous session carrying only flash messages.
type Record struct {
	UserID  int64       `json:"user_id,omitempty"`
	Role    domain.Role `json:"role,omitempty"`
	Name    string      `json:"name,omitempty"`
	Flashes []Flash     `json:"flashes,omitempty"`
}

func (r *Record) authenticated() bool {
	return r != nil && r.UserID != 0
}

// Store persists session records keyed by session id.
type Store interface {
	Get(ctx context.Context, id string) (*Record, error)
	Set(ctx context.Context, id string, record *Record, ttl time.Duration) error
	Delete(ctx context.Context, id string) error
}

type memoryEntry struct {
	payload   []byte
	expiresAt time.Time
}

type memoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
}

// NewMemoryStore returns the in-process store used when no Redis
// address is configured.
func NewMemoryStore() Store {
	return &memoryStore{entries: make(map[string]memoryEntry)}
}

func (s *memoryStore) Get(_ context.Context, id string) (*Record, error) {
	s.mu.Lock()
	entry, ok := s.entries[id]
	if ok && time.Now().After(entry.expiresAt) {
		delete(s.entries, id)
		ok = false
	}
	s.mu.Unlock()

	if !ok {
		return nil, ErrNoSession
	}

	var record Record
	if err := json.Unmarshal(entry.payload, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

func (s *memoryStore) Set(_ context.Context, id string, record *Record, ttl time.Duration) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.entries[id] = memoryEntry{payload: payload, expiresAt: time.Now().Add(ttl)}
	s.mu.Unlock()
	return nil
}

func (s *memoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	delete(s.entries, id)
	s.mu.Unlock()
	return nil
}

const redisKeyPrefix = "session:"

type redisStore struct {
	client *redis.Client
}

// NewRedisStore returns a Redis-backed store so sessions survive
// process restarts.
func NewRedisStore(client *redis.Client) Store {
	return &redisStore{client: client}
}

func (s *redisStore) Get(ctx context.Context, id string) (*Record, error) {
	payload, err := s.client.Get(ctx, redisKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, err
	}

	var record Record
	if err := json.Unmarshal(payload, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

func (s *redisStore) Set(ctx context.Context, id string, record *Record, ttl time.Duration) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, redisKeyPrefix+id, payload, ttl).Err()
}

func (s *redisStore) Delete(ctx context.Context, id string) error {
	return s.client.Del(ctx, redisKeyPrefix+id).Err()
}
