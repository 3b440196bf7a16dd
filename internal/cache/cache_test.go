package cache

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lcaruso/corkboard/internal/storage"
)

type board struct {
	BoardID   string `json:"boardId"`
	BoardName string `json:"boardName"`
}

func newTestCache(t *testing.T, maxBytes int64) (*Cache, *storage.Memory, *time.Time) {
	t.Helper()
	tier := storage.NewMemory(maxBytes)
	c := New(tier)
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := &now
	c.now = func() time.Time { return *clock }
	return c, tier, clock
}

func TestSetGetRoundTrip(t *testing.T) {
	c, _, _ := newTestCache(t, 0)

	in := []board{{BoardID: "b1", BoardName: "General"}}
	c.Set("boards", in, 30*time.Minute)

	var out []board
	require.True(t, c.Get("boards", &out))
	assert.Equal(t, in, out)
}

func TestGetExpiresAtTTLBoundary(t *testing.T) {
	c, tier, clock := newTestCache(t, 0)

	c.Set("boards", []board{{BoardID: "b1", BoardName: "General"}}, 30*time.Minute)

	*clock = clock.Add(29 * time.Minute)
	var out []board
	require.True(t, c.Get("boards", &out))
	require.Len(t, out, 1)
	assert.Equal(t, "b1", out[0].BoardID)

	*clock = clock.Add(2 * time.Minute)
	assert.False(t, c.Get("boards", &out))

	// The expired entry must be physically gone, not just unreadable.
	_, err := tier.Get(Prefix + "boards")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestGetTreatsMalformedAsAbsent(t *testing.T) {
	c, tier, _ := newTestCache(t, 0)

	require.NoError(t, tier.Set(Prefix+"dashboard", []byte("{not json")))
	var out map[string]any
	assert.False(t, c.Get("dashboard", &out))

	_, err := tier.Get(Prefix + "dashboard")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestRemove(t *testing.T) {
	c, _, _ := newTestCache(t, 0)

	c.Set("dashboard", "x", time.Minute)
	c.Remove("dashboard")

	var out string
	assert.False(t, c.Get("dashboard", &out))
}

func TestClearExpired(t *testing.T) {
	c, tier, clock := newTestCache(t, 0)

	c.Set("fresh", "a", time.Hour)
	c.Set("stale", "b", time.Minute)
	require.NoError(t, tier.Set(Prefix+"corrupt", []byte("???")))
	require.NoError(t, tier.Set("sessionToken", []byte("tok")))

	*clock = clock.Add(5 * time.Minute)
	c.ClearExpired()

	var out string
	assert.True(t, c.Get("fresh", &out), "non-expired entries must survive")
	_, err := tier.Get(Prefix + "stale")
	assert.ErrorIs(t, err, storage.ErrNotFound)
	_, err = tier.Get(Prefix + "corrupt")
	assert.ErrorIs(t, err, storage.ErrNotFound)
	// Keys outside the namespace are never touched.
	v, err := tier.Get("sessionToken")
	require.NoError(t, err)
	assert.Equal(t, "tok", string(v))
}

func TestClearAllOnlyTouchesNamespace(t *testing.T) {
	c, tier, _ := newTestCache(t, 0)

	c.Set("boards", "a", time.Hour)
	c.Set("dashboard", "b", time.Hour)
	require.NoError(t, tier.Set("currentNav", []byte(`{"page":"board"}`)))

	c.ClearAll()

	var out string
	assert.False(t, c.Get("boards", &out))
	assert.False(t, c.Get("dashboard", &out))
	_, err := tier.Get("currentNav")
	assert.NoError(t, err)
}

func TestQuotaPurgeThenRetry(t *testing.T) {
	c, tier, clock := newTestCache(t, 200)

	// Fill most of the budget, then let the filler expire.
	c.Set("old", strings.Repeat("x", 120), time.Minute)
	*clock = clock.Add(2 * time.Minute)

	// A fresh write would blow the budget unless expired entries are
	// purged first.
	c.Set("new", "fresh-value", time.Hour)

	var out string
	require.True(t, c.Get("new", &out))
	assert.Equal(t, "fresh-value", out)
	_, err := tier.Get(Prefix + "old")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestQuotaSecondFailureIsSilent(t *testing.T) {
	c, _, _ := newTestCache(t, 40)

	// Nothing expired to purge, so the retry fails too; the value is
	// simply not cached and no error escapes.
	c.Set("big", strings.Repeat("x", 500), time.Hour)

	var out string
	assert.False(t, c.Get("big", &out))
}
