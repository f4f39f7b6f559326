package repository

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jengzang/tracker-dashboard-go/internal/models"
)

const (
	sessionCachePrefix   = "sessions"
	sessionGenerationKey = "sessions:generation"
)

// SessionCache memoizes reconstructed sessions in Redis. Entries are keyed by a
// hash of the validated record set and the size threshold, under a generation
// counter that Invalidate bumps.
type SessionCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionCache creates a cache over the given client
func NewSessionCache(client *redis.Client, ttl time.Duration) *SessionCache {
	return &SessionCache{client: client, ttl: ttl}
}

// Key builds the cache key for a record set under the current generation
func (c *SessionCache) Key(ctx context.Context, records []models.LocationRecord, minRecords int) (string, error) {
	generation, err := c.client.Get(ctx, sessionGenerationKey).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return "", fmt.Errorf("failed to read cache generation: %w", err)
	}
	return fmt.Sprintf("%s:g%d:%s:%d", sessionCachePrefix, generation, ContentHash(records), minRecords), nil
}

// Get returns the cached sessions, or ok=false on a miss
func (c *SessionCache) Get(ctx context.Context, key string) ([]models.KeyedSession, bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read cached sessions: %w", err)
	}

	var sessions []models.KeyedSession
	if err := json.Unmarshal(data, &sessions); err != nil {
		return nil, false, fmt.Errorf("failed to decode cached sessions: %w", err)
	}
	return sessions, true, nil
}

// Set stores sessions under key
func (c *SessionCache) Set(ctx context.Context, key string, sessions []models.KeyedSession) error {
	data, err := json.Marshal(sessions)
	if err != nil {
		return fmt.Errorf("failed to encode sessions: %w", err)
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache sessions: %w", err)
	}
	return nil
}

// Invalidate retires every cached entry by moving to a new generation
func (c *SessionCache) Invalidate(ctx context.Context) error {
	if err := c.client.Incr(ctx, sessionGenerationKey).Err(); err != nil {
		return fmt.Errorf("failed to bump cache generation: %w", err)
	}
	return nil
}

// ContentHash fingerprints a record set. Any change to a record changes the hash.
func ContentHash(records []models.LocationRecord) string {
	h := sha256.New()
	var buf [8]byte
	writeFloat := func(v float64) {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
		h.Write(buf[:])
	}
	writeString := func(s string) {
		binary.LittleEndian.PutUint64(buf[:], uint64(len(s)))
		h.Write(buf[:])
		h.Write([]byte(s))
	}

	for _, rec := range records {
		writeString(rec.ID)
		writeString(rec.GUID)
		if rec.TrackingID != nil {
			h.Write([]byte{1})
			writeString(*rec.TrackingID)
		} else {
			h.Write([]byte{0})
		}
		writeFloat(rec.Latitude)
		writeFloat(rec.Longitude)
		writeFloat(rec.Accuracy)
		writeFloat(rec.Speed)
		binary.LittleEndian.PutUint64(buf[:], uint64(rec.Timestamp))
		h.Write(buf[:])
	}

	return hex.EncodeToString(h.Sum(nil))
}
