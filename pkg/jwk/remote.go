package jwk

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"
)

// FetchSet fetches a JWK set from the given URL and HTTP client.
func FetchSet(ctx context.Context, url string, client *http.Client) (*Set, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create JWK set request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch JWK set: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch JWK set: %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read JWK set: %w", err)
	}

	set, err := ParseSet(body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse JWK set: %w", err)
	}
	return set, nil
}

// SetCache is a cache of JWK sets keyed by URL that can be used to
// verify objects from multiple issuers. It refreshes JWK sets when
// they expire and caches them for a configurable amount of time.
type SetCache struct {
	mutex sync.RWMutex

	// sets is a map of JWK sets keyed by URL.
	sets map[string]*Set

	// cacheTimes is a map of JWK set expiry times keyed by URL.
	cacheTimes map[string]time.Time

	// client is the HTTP client used to fetch JWK sets.
	client *http.Client

	// refreshInterval is the amount of time between refreshing JWK sets.
	refreshInterval time.Duration

	// cacheDuration is the amount of time to cache JWK sets.
	cacheDuration time.Duration
}

// NewSetCache returns a new JWK set cache.
func NewSetCache(client *http.Client, refreshInterval, cacheDuration time.Duration) *SetCache {
	return &SetCache{
		sets:            make(map[string]*Set),
		cacheTimes:      make(map[string]time.Time),
		client:          client,
		refreshInterval: refreshInterval,
		cacheDuration:   cacheDuration,
	}
}

// Get returns the JWK set for the given URL, fetching it if it is not
// already cached or if the cached copy has expired.
func (c *SetCache) Get(ctx context.Context, url string) (*Set, error) {
	c.mutex.RLock()
	set, cached := c.sets[url]
	expiry := c.cacheTimes[url]
	c.mutex.RUnlock()

	if !cached || time.Now().After(expiry) {
		return c.Fetch(ctx, url)
	}
	return set, nil
}

// GetKey returns the first key from the JWK set for the given URL that
// matches the given key id, fetching the JWK set if needed.
func (c *SetCache) GetKey(ctx context.Context, url string, keyID string) (Key, error) {
	set, err := c.Get(ctx, url)
	if err != nil {
		return nil, err
	}

	key, ok := set.Get(keyID)
	if !ok {
		return nil, fmt.Errorf("key %q not found in JWK set from %q", keyID, url)
	}
	return key, nil
}

// Select returns the keys from the JWK set for the given URL that the
// matcher accepts, fetching the JWK set if needed.
func (c *SetCache) Select(ctx context.Context, url string, matcher *Matcher) ([]Key, error) {
	set, err := c.Get(ctx, url)
	if err != nil {
		return nil, err
	}
	return matcher.Select(set), nil
}

// Range iterates over the JWK sets in the cache, calling the given
// function for each URL and key. If the function returns false, the
// iteration stops.
func (c *SetCache) Range(fn func(url string, key Key) bool) {
	if fn == nil || c == nil {
		return
	}

	c.mutex.RLock()
	defer c.mutex.RUnlock()

	for url, set := range c.sets {
		for _, key := range set.keys {
			if !fn(url, key) {
				return
			}
		}
	}
}

// Fetch fetches the JWK set for the given URL and caches it.
func (c *SetCache) Fetch(ctx context.Context, url string) (*Set, error) {
	set, err := FetchSet(ctx, url, c.client)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch JWK set: %w", err)
	}

	c.mutex.Lock()
	c.sets[url] = set
	c.cacheTimes[url] = time.Now().Add(c.cacheDuration)
	c.mutex.Unlock()

	return set, nil
}

// Refresh refreshes the JWK set for the given URL.
func (c *SetCache) Refresh(ctx context.Context, url string) (*Set, error) {
	return c.Fetch(ctx, url)
}

// RefreshAll refreshes all JWK sets in the cache.
func (c *SetCache) RefreshAll(ctx context.Context) error {
	c.mutex.RLock()
	urls := make([]string, 0, len(c.sets))
	for url := range c.sets {
		urls = append(urls, url)
	}
	c.mutex.RUnlock()

	for _, url := range urls {
		if _, err := c.Refresh(ctx, url); err != nil {
			return fmt.Errorf("failed to refresh JWK set for %q: %w", url, err)
		}
	}
	return nil
}

// Start refreshes the cached JWK sets at the configured interval. It
// blocks until the context is canceled, and returns an error only when
// a refresh fails.
//
// Most callers will want to call this in a goroutine after creating
// the cache.
func (c *SetCache) Start(ctx context.Context) error {
	ticker := time.NewTicker(c.refreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := c.RefreshAll(ctx); err != nil {
				return fmt.Errorf("failed to refresh JWK sets: %w", err)
			}
		}
	}
}
