package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lcaruso/corkboard/internal/api"
	"github.com/lcaruso/corkboard/internal/storage"
)

func TestTokenStoreRememberUsesDurableTierOnly(t *testing.T) {
	durable := storage.NewMemory(0)
	local := storage.NewMemory(0)
	ts := NewTokenStore(durable, local)

	require.NoError(t, ts.Save("tok-remember", true))

	v, err := durable.Get(TokenKey)
	require.NoError(t, err)
	assert.Equal(t, "tok-remember", string(v))
	_, err = local.Get(TokenKey)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestTokenStoreSessionScopedOnly(t *testing.T) {
	durable := storage.NewMemory(0)
	local := storage.NewMemory(0)
	ts := NewTokenStore(durable, local)

	require.NoError(t, ts.Save("tok-session", false))

	_, err := durable.Get(TokenKey)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	v, err := local.Get(TokenKey)
	require.NoError(t, err)
	assert.Equal(t, "tok-session", string(v))
}

func TestTokenStoreSaveEvictsOtherTier(t *testing.T) {
	durable := storage.NewMemory(0)
	local := storage.NewMemory(0)
	ts := NewTokenStore(durable, local)

	require.NoError(t, ts.Save("a", true))
	require.NoError(t, ts.Save("b", false))

	// Re-login without remember must not leave the old durable token
	// behind; the tiers are mutually exclusive.
	_, err := durable.Get(TokenKey)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	tok, ok := ts.Load()
	require.True(t, ok)
	assert.Equal(t, "b", tok)
}

func TestTokenStoreLoadPrefersDurable(t *testing.T) {
	durable := storage.NewMemory(0)
	local := storage.NewMemory(0)
	require.NoError(t, durable.Set(TokenKey, []byte("durable-tok")))
	require.NoError(t, local.Set(TokenKey, []byte("session-tok")))

	tok, ok := NewTokenStore(durable, local).Load()
	require.True(t, ok)
	assert.Equal(t, "durable-tok", tok)
}

func TestTokenStoreClear(t *testing.T) {
	durable := storage.NewMemory(0)
	local := storage.NewMemory(0)
	ts := NewTokenStore(durable, local)
	require.NoError(t, durable.Set(TokenKey, []byte("a")))
	require.NoError(t, local.Set(TokenKey, []byte("b")))

	ts.Clear()

	_, ok := ts.Load()
	assert.False(t, ok)
}

func TestNavStoreRoundTrip(t *testing.T) {
	ns := NewNavStore(storage.NewMemory(0))

	_, ok := ns.Load()
	assert.False(t, ok)

	ns.Save(NavigationRecord{Page: "board", Params: map[string]string{"boardId": "b1"}})
	rec, ok := ns.Load()
	require.True(t, ok)
	assert.Equal(t, "board", rec.Page)
	assert.Equal(t, "b1", rec.Params["boardId"])

	ns.Clear()
	_, ok = ns.Load()
	assert.False(t, ok)
}

func TestNavStoreMalformedRecordIsAbsent(t *testing.T) {
	tier := storage.NewMemory(0)
	require.NoError(t, tier.Set(NavKey, []byte("{broken")))

	_, ok := NewNavStore(tier).Load()
	assert.False(t, ok)
}

func TestStateResetEmptiesEverything(t *testing.T) {
	s := NewState()
	s.SetAuth("tok", api.User{Username: "u", IsAdmin: true, IsFirstLogin: true},
		[]api.BoardSummary{{BoardID: "b1", BoardName: "General"}})
	s.SetLocation("board", "b1", "p1")

	require.Equal(t, "tok", s.Token())
	require.True(t, s.IsAdmin())
	require.True(t, s.IsFirstLogin())

	s.Reset()

	assert.Empty(t, s.Token())
	assert.Empty(t, s.Boards())
	assert.False(t, s.IsAdmin())
	page, boardID, postID := s.Location()
	assert.Empty(t, page)
	assert.Empty(t, boardID)
	assert.Empty(t, postID)
}

func TestStateClearFirstLogin(t *testing.T) {
	s := NewState()
	s.SetAuth("tok", api.User{Username: "u", IsFirstLogin: true}, nil)

	s.ClearFirstLogin()

	assert.False(t, s.IsFirstLogin())
	assert.False(t, s.User().IsFirstLogin)
}
