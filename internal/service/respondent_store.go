package service

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// RespondentStore tracks questionnaire sessions: when each one started and
// whether it has a submission in flight.
type RespondentStore interface {
	StartSession(ctx context.Context, sessionID string, at time.Time) error
	SessionStart(ctx context.Context, sessionID string) (time.Time, bool, error)
	EndSession(ctx context.Context, sessionID string) error
	// Acquire returns false when the session already holds the lock.
	Acquire(ctx context.Context, sessionID string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, sessionID string) error
}

const (
	sessionKeyPrefix  = "respondent:session:"
	inFlightKeyPrefix = "respondent:inflight:"
	sessionTTL        = 24 * time.Hour
	pruneInterval     = time.Minute
)

type RedisRespondentStore struct {
	Redis *redis.Client
}

func NewRedisRespondentStore(rdb *redis.Client) *RedisRespondentStore {
	return &RedisRespondentStore{Redis: rdb}
}

func (s *RedisRespondentStore) StartSession(ctx context.Context, sessionID string, at time.Time) error {
	return s.Redis.Set(ctx, sessionKeyPrefix+sessionID, at.UnixMilli(), sessionTTL).Err()
}

func (s *RedisRespondentStore) SessionStart(ctx context.Context, sessionID string) (time.Time, bool, error) {
	val, err := s.Redis.Get(ctx, sessionKeyPrefix+sessionID).Result()
	if err == redis.Nil {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, err
	}
	ms, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return time.Time{}, false, nil
	}
	return time.UnixMilli(ms), true, nil
}

func (s *RedisRespondentStore) EndSession(ctx context.Context, sessionID string) error {
	return s.Redis.Del(ctx, sessionKeyPrefix+sessionID).Err()
}

func (s *RedisRespondentStore) Acquire(ctx context.Context, sessionID string, ttl time.Duration) (bool, error) {
	return s.Redis.SetNX(ctx, inFlightKeyPrefix+sessionID, 1, ttl).Result()
}

func (s *RedisRespondentStore) Release(ctx context.Context, sessionID string) error {
	return s.Redis.Del(ctx, inFlightKeyPrefix+sessionID).Err()
}

// MemoryRespondentStore is the single-instance fallback used when Redis is
// disabled. Expired sessions and locks are pruned when new sessions start.
type MemoryRespondentStore struct {
	mu         sync.Mutex
	sessions   map[string]time.Time
	inFlight   map[string]time.Time
	lastPruned time.Time
	now        func() time.Time
}

func NewMemoryRespondentStore() *MemoryRespondentStore {
	return &MemoryRespondentStore{
		sessions: make(map[string]time.Time),
		inFlight: make(map[string]time.Time),
		now:      time.Now,
	}
}

func (s *MemoryRespondentStore) StartSession(_ context.Context, sessionID string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pruneLocked()
	s.sessions[sessionID] = at
	return nil
}

func (s *MemoryRespondentStore) EndSession(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}

// pruneLocked drops expired entries, at most once per pruneInterval.
func (s *MemoryRespondentStore) pruneLocked() {
	now := s.now()
	if now.Sub(s.lastPruned) < pruneInterval {
		return
	}
	s.lastPruned = now
	for id, at := range s.sessions {
		if now.Sub(at) > sessionTTL {
			delete(s.sessions, id)
		}
	}
	for id, expires := range s.inFlight {
		if !now.Before(expires) {
			delete(s.inFlight, id)
		}
	}
}

func (s *MemoryRespondentStore) SessionStart(_ context.Context, sessionID string) (time.Time, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	at, ok := s.sessions[sessionID]
	if ok && s.now().Sub(at) > sessionTTL {
		delete(s.sessions, sessionID)
		return time.Time{}, false, nil
	}
	return at, ok, nil
}

func (s *MemoryRespondentStore) Acquire(_ context.Context, sessionID string, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if expires, ok := s.inFlight[sessionID]; ok && s.now().Before(expires) {
		return false, nil
	}
	s.inFlight[sessionID] = s.now().Add(ttl)
	return true, nil
}

func (s *MemoryRespondentStore) Release(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, sessionID)
	return nil
}
