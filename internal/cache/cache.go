package cache

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/lcaruso/corkboard/internal/logger"
	"github.com/lcaruso/corkboard/internal/storage"
)

// Prefix namespaces every cache entry inside the shared storage tier, so
// bulk invalidation never touches foreign keys (session token, nav record).
const Prefix = "cache_"

// envelope is the stored form of an entry. Unparseable payloads are
// treated as absent, never as errors.
type envelope struct {
	Value     json.RawMessage `json:"value"`
	ExpiresAt time.Time       `json:"expires_at"`
}

// Cache is an expiring key-value store layered over a persistence tier.
// Expiry is enforced lazily at read time; there is no background eviction.
// It is safe for concurrent use by multiple goroutines.
type Cache struct {
	tier storage.Tier
	now  func() time.Time
}

func New(tier storage.Tier) *Cache {
	return &Cache{tier: tier, now: time.Now}
}

// Set stores value under the namespaced key with an absolute expiry of
// now+ttl. Writes are best-effort: on a quota failure the cache purges
// every expired entry and retries once; a second failure is logged and
// swallowed so callers never see a cache write error.
func (c *Cache) Set(key string, value any, ttl time.Duration) {
	raw, err := json.Marshal(value)
	if err != nil {
		logger.Warnf("cache: marshal %q: %v", key, err)
		return
	}
	buf, err := json.Marshal(envelope{Value: raw, ExpiresAt: c.now().Add(ttl)})
	if err != nil {
		logger.Warnf("cache: marshal envelope %q: %v", key, err)
		return
	}
	if err := c.tier.Set(Prefix+key, buf); err != nil {
		if !errors.Is(err, storage.ErrQuotaExceeded) {
			logger.Warnf("cache: set %q: %v", key, err)
			return
		}
		c.ClearExpired()
		if err := c.tier.Set(Prefix+key, buf); err != nil {
			logger.Warnf("cache: set %q after purge: %v", key, err)
		}
	}
}

// Get decodes the entry for key into dest and reports whether a live entry
// was found. Expired or malformed entries are deleted and reported absent.
func (c *Cache) Get(key string, dest any) bool {
	buf, err := c.tier.Get(Prefix + key)
	if err != nil {
		return false
	}
	var env envelope
	if err := json.Unmarshal(buf, &env); err != nil || env.ExpiresAt.IsZero() {
		_ = c.tier.Delete(Prefix + key)
		return false
	}
	if !c.now().Before(env.ExpiresAt) {
		_ = c.tier.Delete(Prefix + key)
		return false
	}
	if err := json.Unmarshal(env.Value, dest); err != nil {
		_ = c.tier.Delete(Prefix + key)
		return false
	}
	return true
}

// Remove unconditionally deletes an entry. Used for invalidation after
// mutations.
func (c *Cache) Remove(key string) {
	_ = c.tier.Delete(Prefix + key)
}

// ClearExpired removes every namespaced entry whose expiry has passed or
// whose payload cannot be parsed.
func (c *Cache) ClearExpired() {
	keys, err := c.tier.Keys()
	if err != nil {
		logger.Warnf("cache: list keys: %v", err)
		return
	}
	for _, k := range keys {
		if !strings.HasPrefix(k, Prefix) {
			continue
		}
		buf, err := c.tier.Get(k)
		if err != nil {
			continue
		}
		var env envelope
		if err := json.Unmarshal(buf, &env); err != nil || env.ExpiresAt.IsZero() || !c.now().Before(env.ExpiresAt) {
			_ = c.tier.Delete(k)
		}
	}
}

// ClearAll removes every namespaced entry. Used on logout and when the
// session turns out to be invalid on boot.
func (c *Cache) ClearAll() {
	keys, err := c.tier.Keys()
	if err != nil {
		logger.Warnf("cache: list keys: %v", err)
		return
	}
	for _, k := range keys {
		if strings.HasPrefix(k, Prefix) {
			_ = c.tier.Delete(k)
		}
	}
}
