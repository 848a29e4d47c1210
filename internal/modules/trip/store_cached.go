package trip

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"tripdraft/internal/types"
)

const cacheKeyPrefix = "trip:"

// CachedStore puts a Redis read-through cache in front of another Store.
// Records never change after Save, so entries are only ever expired.
// Redis failures are logged and bypassed.
type CachedStore struct {
	next   Store
	rdb    *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func NewCachedStore(next Store, rdb *redis.Client, ttl time.Duration, logger *slog.Logger) *CachedStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &CachedStore{next: next, rdb: rdb, ttl: ttl, logger: logger}
}

func (s *CachedStore) Save(ctx context.Context, rec *Record) (types.ID, error) {
	id, err := s.next.Save(ctx, rec)
	if err != nil {
		return "", err
	}
	s.put(ctx, rec)
	return id, nil
}

func (s *CachedStore) Get(ctx context.Context, id types.ID) (*Record, error) {
	raw, err := s.rdb.Get(ctx, cacheKeyPrefix+string(id)).Bytes()
	switch {
	case err == nil:
		var rec Record
		if jerr := json.Unmarshal(raw, &rec); jerr == nil {
			return &rec, nil
		}
		s.logger.Warn("discarding unreadable cached trip", "trip_id", id)
	case !errors.Is(err, redis.Nil):
		s.logger.Warn("trip cache read failed", "trip_id", id, "error", err)
	}

	rec, err := s.next.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	s.put(ctx, rec)
	return rec, nil
}

func (s *CachedStore) put(ctx context.Context, rec *Record) {
	raw, err := json.Marshal(rec)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, cacheKeyPrefix+string(rec.ID), raw, s.ttl).Err(); err != nil {
		s.logger.Warn("trip cache write failed", "trip_id", rec.ID, "error", err)
	}
}
