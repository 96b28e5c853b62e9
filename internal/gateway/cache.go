package gateway

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gregjones/httpcache"

	"github.com/naka-gawa/github-dashboard/internal/domain"
)

// DefaultCacheTTL is how long a fetched profile is served from memory.
const DefaultCacheTTL = 5 * time.Minute

// cachedUser is the stored form of a profile.
type cachedUser struct {
	User      *domain.User `json:"user"`
	FetchedAt time.Time    `json:"fetched_at"`
}

// CachingFetcher serves repeated profile lookups of the same login from a cache.
// Rate limits and failed lookups are never cached.
type CachingFetcher struct {
	next   Fetcher
	cache  httpcache.Cache
	ttl    time.Duration
	now    func() time.Time
	logger *log.Logger
}

// NewCachingFetcher wraps next. Entries older than ttl are fetched again.
func NewCachingFetcher(next Fetcher, cache httpcache.Cache, ttl time.Duration, logger *log.Logger) *CachingFetcher {
	return &CachingFetcher{
		next:   next,
		cache:  cache,
		ttl:    ttl,
		now:    time.Now,
		logger: logger,
	}
}

func cacheKey(login string) string {
	return "user:" + strings.ToLower(login)
}

// FetchUser returns the cached profile for login when it is still fresh.
func (c *CachingFetcher) FetchUser(ctx context.Context, login string) (*domain.User, error) {
	key := cacheKey(login)
	if data, ok := c.cache.Get(key); ok {
		var entry cachedUser
		if err := json.Unmarshal(data, &entry); err == nil && c.now().Sub(entry.FetchedAt) < c.ttl {
			c.logger.Debug("Serving user profile from cache", "login", login)
			return entry.User, nil
		}
		c.cache.Delete(key)
	}

	user, err := c.next.FetchUser(ctx, login)
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(cachedUser{User: user, FetchedAt: c.now()})
	if err != nil {
		c.logger.Warn("Failed to cache user profile", "login", login, "err", err)
		return user, nil
	}
	c.cache.Set(key, data)
	return user, nil
}

// FetchRateLimit always asks GitHub, a stale quota is worse than none.
func (c *CachingFetcher) FetchRateLimit(ctx context.Context) (*domain.RateLimit, error) {
	return c.next.FetchRateLimit(ctx)
}
