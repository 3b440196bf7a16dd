package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tiers under test share one contract; run the common suite over both.
func testTiers(t *testing.T) map[string]func(t *testing.T, maxBytes int64) Tier {
	t.Helper()
	return map[string]func(t *testing.T, maxBytes int64) Tier{
		"memory": func(t *testing.T, maxBytes int64) Tier {
			return NewMemory(maxBytes)
		},
		"bolt": func(t *testing.T, maxBytes int64) Tier {
			s, err := OpenBolt(filepath.Join(t.TempDir(), "test.db"), BoltOptions{MaxBytes: maxBytes})
			require.NoError(t, err)
			t.Cleanup(func() { _ = s.Close() })
			return s
		},
	}
}

func TestTierBasicOperations(t *testing.T) {
	for name, open := range testTiers(t) {
		t.Run(name, func(t *testing.T) {
			tier := open(t, 0)

			_, err := tier.Get("missing")
			assert.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, tier.Set("a", []byte("1")))
			require.NoError(t, tier.Set("b", []byte("2")))
			v, err := tier.Get("a")
			require.NoError(t, err)
			assert.Equal(t, "1", string(v))

			require.NoError(t, tier.Set("a", []byte("updated")))
			v, err = tier.Get("a")
			require.NoError(t, err)
			assert.Equal(t, "updated", string(v))

			keys, err := tier.Keys()
			require.NoError(t, err)
			assert.ElementsMatch(t, []string{"a", "b"}, keys)

			require.NoError(t, tier.Delete("a"))
			require.NoError(t, tier.Delete("a")) // idempotent
			_, err = tier.Get("a")
			assert.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, tier.Clear())
			keys, err = tier.Keys()
			require.NoError(t, err)
			assert.Empty(t, keys)
		})
	}
}

func TestTierQuota(t *testing.T) {
	for name, open := range testTiers(t) {
		t.Run(name, func(t *testing.T) {
			tier := open(t, 16)

			require.NoError(t, tier.Set("k", []byte("12345678")))
			// 9 + 8 over a 16 byte budget.
			err := tier.Set("x", []byte("12345678"))
			assert.ErrorIs(t, err, ErrQuotaExceeded)
			// The failed write must not clobber anything.
			_, err = tier.Get("x")
			assert.ErrorIs(t, err, ErrNotFound)
			v, err := tier.Get("k")
			require.NoError(t, err)
			assert.Equal(t, "12345678", string(v))

			// Replacing an existing value only counts the delta.
			require.NoError(t, tier.Set("k", []byte("123456789012345")))

			// Deleting frees budget.
			require.NoError(t, tier.Delete("k"))
			require.NoError(t, tier.Set("x", []byte("12345678")))
		})
	}
}

func TestBoltPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	s, err := OpenBolt(path, BoltOptions{MaxBytes: 64})
	require.NoError(t, err)
	require.NoError(t, s.Set("sessionToken", []byte("tok-1")))
	require.NoError(t, s.Close())

	s, err = OpenBolt(path, BoltOptions{MaxBytes: 64})
	require.NoError(t, err)
	defer s.Close()

	v, err := s.Get("sessionToken")
	require.NoError(t, err)
	assert.Equal(t, "tok-1", string(v))

	// The running size is reseeded on open, so the budget still binds.
	err = s.Set("big", []byte("0123456789012345678901234567890123456789012345678901234567890123"))
	assert.ErrorIs(t, err, ErrQuotaExceeded)
}
