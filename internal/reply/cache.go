package reply

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/ignite/support-triage/internal/pkg/logger"
	"github.com/redis/go-redis/v9"
)

const draftCacheKeyPrefix = "triage:draft:"

// CachedDrafter memoizes drafts in Redis keyed by the full request, so
// re-running a batch does not pay for a second generation of the same reply.
// Cache errors are logged and absorbed; the inner drafter always decides the
// outcome.
type CachedDrafter struct {
	inner Drafter
	rdb   *redis.Client
	ttl   time.Duration
}

// NewCachedDrafter wraps inner with a Redis-backed draft cache.
func NewCachedDrafter(inner Drafter, rdb *redis.Client, ttl time.Duration) *CachedDrafter {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &CachedDrafter{inner: inner, rdb: rdb, ttl: ttl}
}

// Draft returns the cached reply for req if present, otherwise delegates to
// the inner drafter and stores the result.
func (d *CachedDrafter) Draft(ctx context.Context, req DraftRequest) (string, error) {
	key := draftCacheKey(req)

	cached, err := d.rdb.Get(ctx, key).Result()
	if err == nil {
		return cached, nil
	}
	if !errors.Is(err, redis.Nil) {
		logger.Warn("draft cache read failed", "error", err)
	}

	out, err := d.inner.Draft(ctx, req)
	if err != nil {
		return "", err
	}
	if err := d.rdb.Set(ctx, key, out, d.ttl).Err(); err != nil {
		logger.Warn("draft cache write failed", "error", err)
	}
	return out, nil
}

// draftCacheKey hashes every request field so any change in input or labels
// produces a distinct cache entry.
func draftCacheKey(req DraftRequest) string {
	h := sha256.Sum256([]byte(strings.Join([]string{
		req.Subject,
		req.Body,
		string(req.Category),
		string(req.Sentiment),
		string(req.Priority),
		req.ProductHint,
	}, "\x1f")))
	return draftCacheKeyPrefix + hex.EncodeToString(h[:])
}
