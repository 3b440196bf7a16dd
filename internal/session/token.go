package session

import (
	"errors"

	"github.com/lcaruso/corkboard/internal/logger"
	"github.com/lcaruso/corkboard/internal/storage"
)

// TokenKey is the storage key the session token lives under in either tier.
const TokenKey = "sessionToken"

// TokenStore persists the session token in exactly one of the two tiers,
// chosen by the remember flag at login. Storing in one tier always deletes
// from the other so the tiers stay mutually exclusive.
type TokenStore struct {
	durable storage.Tier
	local   storage.Tier
}

func NewTokenStore(durable, sessionScoped storage.Tier) *TokenStore {
	return &TokenStore{durable: durable, local: sessionScoped}
}

// Save writes the token to the durable tier when remember is set, else to
// the session-scoped tier.
func (t *TokenStore) Save(token string, remember bool) error {
	if remember {
		if err := t.local.Delete(TokenKey); err != nil {
			logger.Warnf("session: clear session-scoped token: %v", err)
		}
		return t.durable.Set(TokenKey, []byte(token))
	}
	if err := t.durable.Delete(TokenKey); err != nil {
		logger.Warnf("session: clear durable token: %v", err)
	}
	return t.local.Set(TokenKey, []byte(token))
}

// Load returns the stored token, preferring the durable tier, and reports
// whether one was found.
func (t *TokenStore) Load() (string, bool) {
	for _, tier := range []storage.Tier{t.durable, t.local} {
		v, err := tier.Get(TokenKey)
		if err == nil && len(v) > 0 {
			return string(v), true
		}
		if err != nil && !errors.Is(err, storage.ErrNotFound) {
			logger.Warnf("session: load token: %v", err)
		}
	}
	return "", false
}

// Clear removes the token from both tiers.
func (t *TokenStore) Clear() {
	if err := t.durable.Delete(TokenKey); err != nil {
		logger.Warnf("session: clear durable token: %v", err)
	}
	if err := t.local.Delete(TokenKey); err != nil {
		logger.Warnf("session: clear session-scoped token: %v", err)
	}
}
