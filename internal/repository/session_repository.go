package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/noah-isme/pbis-gateway/internal/models"
	appErrors "github.com/noah-isme/pbis-gateway/pkg/errors"
)

const (
	sessionKeyPrefix   = "pbis:session:"
	dateRangeKeyPrefix = "pbis:daterange:"
)

// SessionStore persists sessions and their per-session date range. Entries
// never expire; they live until logout.
type SessionStore interface {
	SaveSession(ctx context.Context, session *models.Session) error
	GetSession(ctx context.Context, id string) (*models.Session, error)
	DeleteSession(ctx context.Context, id string) error
	SaveDateRange(ctx context.Context, sessionID string, r models.DateRange) error
	GetDateRange(ctx context.Context, sessionID string) (*models.DateRange, error)
}

// StoreObserver receives latency samples for store operations.
type StoreObserver interface {
	RecordStoreOperation(op string, hit bool, duration time.Duration)
}

// RedisSessionRepository keeps sessions in Redis as JSON.
type RedisSessionRepository struct {
	client   *redis.Client
	logger   *zap.Logger
	observer StoreObserver
}

// NewRedisSessionRepository constructs a Redis backed session store.
func NewRedisSessionRepository(client *redis.Client, logger *zap.Logger, observer StoreObserver) *RedisSessionRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisSessionRepository{client: client, logger: logger, observer: observer}
}

func sessionKey(id string) string   { return sessionKeyPrefix + id }
func dateRangeKey(id string) string { return dateRangeKeyPrefix + id }

// SaveSession stores the session without TTL.
func (r *RedisSessionRepository) SaveSession(ctx context.Context, session *models.Session) error {
	return r.set(ctx, "session_set", sessionKey(session.ID), session)
}

// GetSession returns ErrCacheMiss when the session does not exist.
func (r *RedisSessionRepository) GetSession(ctx context.Context, id string) (*models.Session, error) {
	var session models.Session
	if err := r.get(ctx, "session_get", sessionKey(id), &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// DeleteSession removes the session and its date range.
func (r *RedisSessionRepository) DeleteSession(ctx context.Context, id string) error {
	start := time.Now()
	err := r.client.Del(ctx, sessionKey(id), dateRangeKey(id)).Err()
	r.record("session_delete", err == nil, start)
	if err != nil {
		return fmt.Errorf("redis delete session %s: %w", id, err)
	}
	return nil
}

// SaveDateRange persists the session's active range.
func (r *RedisSessionRepository) SaveDateRange(ctx context.Context, sessionID string, dr models.DateRange) error {
	return r.set(ctx, "daterange_set", dateRangeKey(sessionID), dr)
}

// GetDateRange returns ErrCacheMiss when no range was persisted.
func (r *RedisSessionRepository) GetDateRange(ctx context.Context, sessionID string) (*models.DateRange, error) {
	var dr models.DateRange
	if err := r.get(ctx, "daterange_get", dateRangeKey(sessionID), &dr); err != nil {
		return nil, err
	}
	return &dr, nil
}

func (r *RedisSessionRepository) get(ctx context.Context, op, key string, dest interface{}) error {
	start := time.Now()
	raw, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			r.record(op, false, start)
			return appErrors.ErrCacheMiss
		}
		r.record(op, false, start)
		return fmt.Errorf("redis get %s: %w", key, err)
	}
	r.record(op, true, start)

	if err := json.Unmarshal(raw, dest); err != nil {
		r.logger.Warn("discarding corrupt store entry", zap.String("key", key), zap.Error(err))
		return appErrors.ErrCacheMiss
	}
	return nil
}

func (r *RedisSessionRepository) set(ctx context.Context, op, key string, value interface{}) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal store value for %s: %w", key, err)
	}
	start := time.Now()
	err = r.client.Set(ctx, key, payload, 0).Err()
	r.record(op, err == nil, start)
	if err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (r *RedisSessionRepository) record(op string, hit bool, start time.Time) {
	if r.observer != nil {
		r.observer.RecordStoreOperation(op, hit, time.Since(start))
	}
}

// Close releases the underlying Redis connection.
func (r *RedisSessionRepository) Close() error {
	return r.client.Close()
}

// MemorySessionRepository is the single-process fallback used when Redis is
// disabled. Sessions do not survive a restart.
type MemorySessionRepository struct {
	mu         sync.RWMutex
	sessions   map[string]models.Session
	dateRanges map[string]models.DateRange
}

// NewMemorySessionRepository constructs an empty in-memory store.
func NewMemorySessionRepository() *MemorySessionRepository {
	return &MemorySessionRepository{
		sessions:   make(map[string]models.Session),
		dateRanges: make(map[string]models.DateRange),
	}
}

func (m *MemorySessionRepository) SaveSession(_ context.Context, session *models.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[session.ID] = *session
	return nil
}

func (m *MemorySessionRepository) GetSession(_ context.Context, id string) (*models.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, appErrors.ErrCacheMiss
	}
	return &s, nil
}

func (m *MemorySessionRepository) DeleteSession(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	delete(m.dateRanges, id)
	return nil
}

func (m *MemorySessionRepository) SaveDateRange(_ context.Context, sessionID string, r models.DateRange) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dateRanges[sessionID] = r
	return nil
}

func (m *MemorySessionRepository) GetDateRange(_ context.Context, sessionID string) (*models.DateRange, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.dateRanges[sessionID]
	if !ok {
		return nil, appErrors.ErrCacheMiss
	}
	return &r, nil
}
