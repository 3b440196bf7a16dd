// Package session holds the process-wide application state and the small
// pieces of it that persist across reloads: the session token (in exactly
// one of the two persistence tiers) and the current navigation record.
package session

import (
	"sync"

	"github.com/lcaruso/corkboard/internal/api"
)

// State is the in-memory session snapshot, created at boot or login and
// reset to empty on logout. The boards slice is a cache-derived snapshot;
// it is not kept in lockstep with the cache tier automatically and is
// reconciled at the next explicit refresh.
type State struct {
	mu sync.RWMutex

	token          string
	user           api.User
	currentPage    string
	currentBoardID string
	currentPostID  string
	boards         []api.BoardSummary
	isAdmin        bool
	isFirstLogin   bool
}

func NewState() *State { return &State{} }

// SetAuth installs the authenticated identity after login or boot.
func (s *State) SetAuth(token string, user api.User, boards []api.BoardSummary) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.user = user
	s.boards = boards
	s.isAdmin = user.IsAdmin
	s.isFirstLogin = user.IsFirstLogin
}

func (s *State) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *State) User() api.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

func (s *State) IsAdmin() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isAdmin
}

func (s *State) IsFirstLogin() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isFirstLogin
}

// ClearFirstLogin marks the forced password change as completed.
func (s *State) ClearFirstLogin() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.isFirstLogin = false
	s.user.IsFirstLogin = false
}

func (s *State) Boards() []api.BoardSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]api.BoardSummary, len(s.boards))
	copy(out, s.boards)
	return out
}

// SetBoards replaces the board snapshot after a refresh.
func (s *State) SetBoards(boards []api.BoardSummary) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.boards = boards
}

// SetLocation records the current page and the board/post it is scoped to.
func (s *State) SetLocation(page, boardID, postID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentPage = page
	s.currentBoardID = boardID
	s.currentPostID = postID
}

func (s *State) Location() (page, boardID, postID string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentPage, s.currentBoardID, s.currentPostID
}

// Reset empties the state. Called on logout and on a failed boot.
func (s *State) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.user = api.User{}
	s.currentPage = ""
	s.currentBoardID = ""
	s.currentPostID = ""
	s.boards = nil
	s.isAdmin = false
	s.isFirstLogin = false
}
