package session

import (
	"encoding/json"

	"github.com/lcaruso/corkboard/internal/logger"
	"github.com/lcaruso/corkboard/internal/storage"
)

// NavKey is the session-scoped storage key for the navigation record.
const NavKey = "currentNav"

// NavigationRecord is persisted on every successful navigation and read
// back exactly once, to restore the view after a reload. It never drives
// any other logic.
type NavigationRecord struct {
	Page   string            `json:"page"`
	Params map[string]string `json:"params,omitempty"`
}

// NavStore persists the navigation record in the session-scoped tier.
type NavStore struct {
	tier storage.Tier
}

func NewNavStore(sessionScoped storage.Tier) *NavStore {
	return &NavStore{tier: sessionScoped}
}

func (n *NavStore) Save(rec NavigationRecord) {
	buf, err := json.Marshal(rec)
	if err != nil {
		logger.Warnf("session: marshal nav record: %v", err)
		return
	}
	if err := n.tier.Set(NavKey, buf); err != nil {
		logger.Warnf("session: save nav record: %v", err)
	}
}

// Load returns the persisted record and whether a well-formed one exists.
// A malformed record restores as absent.
func (n *NavStore) Load() (NavigationRecord, bool) {
	buf, err := n.tier.Get(NavKey)
	if err != nil {
		return NavigationRecord{}, false
	}
	var rec NavigationRecord
	if err := json.Unmarshal(buf, &rec); err != nil || rec.Page == "" {
		return NavigationRecord{}, false
	}
	return rec, true
}

func (n *NavStore) Clear() {
	if err := n.tier.Delete(NavKey); err != nil {
		logger.Warnf("session: clear nav record: %v", err)
	}
}
