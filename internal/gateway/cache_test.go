package gateway

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gregjones/httpcache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naka-gawa/github-dashboard/internal/domain"
)

// countingHandler answers profile and rate limit requests and counts the hits.
func countingHandler(hits *int32) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(hits, 1)
		if strings.Contains(r.URL.Path, "rate_limit") {
			fmt.Fprint(w, `{"resources":{"core":{"limit":5000,"remaining":4999,"reset":1372700873},"graphql":{"limit":5000,"remaining":4990,"reset":1372700873}}}`)
			return
		}
		body, _ := io.ReadAll(r.Body)
		if strings.Contains(string(body), "ghost") {
			fmt.Fprint(w, `{"errors":[{"type":"NOT_FOUND","message":"Could not resolve to a User with the login of 'ghost'."}]}`)
			return
		}
		fmt.Fprint(w, userResponse)
	}
}

func TestCachingFetcher_FetchUser(t *testing.T) {
	var hits int32
	gateway, server := setupTestGateway(t, countingHandler(&hits))
	defer server.Close()
	fetcher := NewCachingFetcher(gateway, httpcache.NewMemoryCache(), time.Minute, log.New(io.Discard))

	first, err := fetcher.FetchUser(context.Background(), "octocat")
	require.NoError(t, err)
	second, err := fetcher.FetchUser(context.Background(), "Octocat")
	require.NoError(t, err)

	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
	assert.Equal(t, first, second)
	assert.NotSame(t, first, second)
}

func TestCachingFetcher_Expiry(t *testing.T) {
	var hits int32
	gateway, server := setupTestGateway(t, countingHandler(&hits))
	defer server.Close()
	fetcher := NewCachingFetcher(gateway, httpcache.NewMemoryCache(), time.Minute, log.New(io.Discard))
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	fetcher.now = func() time.Time { return now }

	_, err := fetcher.FetchUser(context.Background(), "octocat")
	require.NoError(t, err)
	now = now.Add(30 * time.Second)
	_, err = fetcher.FetchUser(context.Background(), "octocat")
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))

	now = now.Add(time.Minute)
	_, err = fetcher.FetchUser(context.Background(), "octocat")
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&hits))
}

func TestCachingFetcher_DoesNotCacheFailures(t *testing.T) {
	var hits int32
	gateway, server := setupTestGateway(t, countingHandler(&hits))
	defer server.Close()
	fetcher := NewCachingFetcher(gateway, httpcache.NewMemoryCache(), time.Minute, log.New(io.Discard))

	for i := 0; i < 2; i++ {
		_, err := fetcher.FetchUser(context.Background(), "ghost")
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	}
	assert.Equal(t, int32(2), atomic.LoadInt32(&hits))
}

func TestCachingFetcher_RateLimitBypassesCache(t *testing.T) {
	var hits int32
	gateway, server := setupTestGateway(t, countingHandler(&hits))
	defer server.Close()
	fetcher := NewCachingFetcher(gateway, httpcache.NewMemoryCache(), time.Minute, log.New(io.Discard))

	for i := 0; i < 2; i++ {
		limits, err := fetcher.FetchRateLimit(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 4999, limits.Core.Remaining)
	}
	assert.Equal(t, int32(2), atomic.LoadInt32(&hits))
}
