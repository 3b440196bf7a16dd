// Package app is the client engine for the remote content-board service:
// a session-restoring navigation router over stale-while-revalidate
// loaders, keeping the rendered view, the expiring cache and the two
// persistence tiers consistent under background refreshes.
package app

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/lcaruso/corkboard/internal/api"
	"github.com/lcaruso/corkboard/internal/cache"
	"github.com/lcaruso/corkboard/internal/debounce"
	"github.com/lcaruso/corkboard/internal/logger"
	"github.com/lcaruso/corkboard/internal/session"
)

// Phase is the authentication lifecycle state.
type Phase int

const (
	PhaseUnauthenticated Phase = iota
	PhaseAuthenticated
	PhasePasswordChange
)

// Gateway is the remote call surface the engine depends on. *api.Client
// implements it; tests substitute a scriptable fake.
type Gateway interface {
	Call(ctx context.Context, action string, params map[string]any) api.Response
	CallAs(ctx context.Context, action string, params map[string]any, token string) api.Response
}

// ErrEmptyCredentials is returned by Login before any remote call when a
// credential field is blank.
var ErrEmptyCredentials = errors.New("app: username and password are required")

// Config carries the cache TTL policy and input throttling knobs. Zero
// values select the defaults: volatile resources (dashboard, a board's
// first page) 5 minutes, the aggregate board list 30 minutes.
type Config struct {
	TTLDashboard   time.Duration
	TTLPosts       time.Duration
	TTLBoards      time.Duration
	SearchDebounce time.Duration
}

func (c Config) withDefaults() Config {
	if c.TTLDashboard <= 0 {
		c.TTLDashboard = 5 * time.Minute
	}
	if c.TTLPosts <= 0 {
		c.TTLPosts = 5 * time.Minute
	}
	if c.TTLBoards <= 0 {
		c.TTLBoards = 30 * time.Minute
	}
	if c.SearchDebounce <= 0 {
		c.SearchDebounce = 300 * time.Millisecond
	}
	return c
}

// App owns the session state and dispatches every flow: boot, login,
// logout, navigation and mutations.
type App struct {
	gw       Gateway
	cache    *cache.Cache
	state    *session.State
	tokens   *session.TokenStore
	nav      *session.NavStore
	renderer Renderer
	cfg      Config

	loaders map[Page]loaderFunc
	search  func(string)
	flight  singleflight.Group

	mu    sync.Mutex
	phase Phase
	gen   uint64
}

func New(gw Gateway, c *cache.Cache, state *session.State, tokens *session.TokenStore, nav *session.NavStore, r Renderer, cfg Config) *App {
	a := &App{
		gw:       gw,
		cache:    c,
		state:    state,
		tokens:   tokens,
		nav:      nav,
		renderer: r,
		cfg:      cfg.withDefaults(),
	}
	a.loaders = map[Page]loaderFunc{
		PageDashboard: a.loadDashboard,
		PageBoard:     a.loadBoard,
		PagePost:      a.loadPost,
	}
	a.search = debounce.Debounce(a.searchNow, a.cfg.SearchDebounce)
	return a
}

// Phase returns the current lifecycle phase.
func (a *App) Phase() Phase {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.phase
}

func (a *App) setPhase(p Phase) {
	a.mu.Lock()
	a.phase = p
	a.mu.Unlock()
}

// bumpGen advances the navigation generation and returns the new value.
// Background tasks capture it at dispatch and compare before committing.
func (a *App) bumpGen() uint64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.gen++
	return a.gen
}

// current reports whether gen still identifies the active navigation.
func (a *App) current(gen uint64) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.gen == gen
}

// Boot restores a previous session: a stored token (durable tier first)
// is exchanged for initial data. Absent token renders the login view with
// no remote call. A failed initial-data fetch is the one condition that
// forces a full reset: both tokens, nav record and the whole cache.
func (a *App) Boot(ctx context.Context) {
	token, ok := a.tokens.Load()
	if !ok {
		a.setPhase(PhaseUnauthenticated)
		a.renderer.RenderLogin("")
		return
	}
	resp := a.gw.CallAs(ctx, api.ActionGetInitialData, nil, token)
	var init api.InitialData
	if !resp.Success || resp.Decode(&init) != nil {
		logger.Warnf("app: boot initial data failed: %s", resp.Error)
		a.teardown()
		a.renderer.RenderLogin("your session has expired, please log in again")
		return
	}
	a.state.SetAuth(token, init.User, init.Boards)
	if init.User.IsFirstLogin {
		a.setPhase(PhasePasswordChange)
		a.renderer.RenderPasswordChange()
		return
	}
	a.setPhase(PhaseAuthenticated)
	a.Reload(ctx)
}

// Login exchanges credentials for a session token and stores it in
// exactly one persistence tier per the remember flag. The returned
// response carries the server's verdict; transport failures surface the
// same way, with Success false.
func (a *App) Login(ctx context.Context, username, password string, remember bool) (api.Response, error) {
	if strings.TrimSpace(username) == "" || strings.TrimSpace(password) == "" {
		return api.Response{}, ErrEmptyCredentials
	}
	resp := a.gw.CallAs(ctx, api.ActionLogin, map[string]any{
		"username": username,
		"password": password,
	}, "")
	if !resp.Success {
		return resp, nil
	}
	token := resp.SessionToken
	var user api.User
	if err := resp.Decode(&user); err != nil {
		logger.Warnf("app: login payload: %v", err)
		return api.Response{Success: false, Error: "unexpected login response"}, nil
	}
	if err := a.tokens.Save(token, remember); err != nil {
		// The in-memory session still works; only reload-restore is lost.
		logger.Warnf("app: persist token: %v", err)
	}
	a.state.SetAuth(token, user, nil)
	if user.IsFirstLogin {
		a.setPhase(PhasePasswordChange)
		a.renderer.RenderPasswordChange()
		return resp, nil
	}
	a.setPhase(PhaseAuthenticated)
	a.NavigateTo(ctx, PageDashboard, nil)
	return resp, nil
}

// ChangePassword completes the forced first-login branch.
func (a *App) ChangePassword(ctx context.Context, newPassword string) api.Response {
	resp := a.gw.Call(ctx, api.ActionChangePassword, map[string]any{
		"newPassword": newPassword,
	})
	if !resp.Success {
		return resp
	}
	a.state.ClearFirstLogin()
	a.setPhase(PhaseAuthenticated)
	a.NavigateTo(ctx, PageDashboard, nil)
	return resp
}

// Logout is optimistic: all in-memory and persisted state is cleared and
// the login view rendered before the remote logout resolves. The remote
// call is fire-and-forget; its failure is only logged.
func (a *App) Logout(ctx context.Context) {
	token := a.state.Token()
	a.teardown()
	a.renderer.RenderLogin("")
	if token == "" {
		return
	}
	go func() {
		resp := a.gw.CallAs(context.WithoutCancel(ctx), api.ActionLogout, nil, token)
		if !resp.Success {
			logger.Warnf("app: remote logout failed: %s", resp.Error)
		}
	}()
}

// teardown resets everything a session touched. Bumping the generation
// first orphans any in-flight background refresh.
func (a *App) teardown() {
	a.mu.Lock()
	a.phase = PhaseUnauthenticated
	a.gen++
	a.mu.Unlock()
	a.state.Reset()
	a.tokens.Clear()
	a.nav.Clear()
	a.cache.ClearAll()
}

// SearchPosts issues a debounced live search; rapid repeated calls
// collapse into one trailing request with the latest query. Results are
// never cached.
func (a *App) SearchPosts(query string) {
	if a.Phase() != PhaseAuthenticated {
		return
	}
	a.search(query)
}

func (a *App) searchNow(query string) {
	if strings.TrimSpace(query) == "" {
		return
	}
	resp := a.gw.Call(context.Background(), api.ActionSearchPosts, map[string]any{"query": query})
	if !resp.Success {
		a.renderer.RenderError(PageSearch, errorMessage(resp))
		return
	}
	var results []api.Post
	if err := resp.Decode(&results); err != nil {
		logger.Warnf("app: search payload: %v", err)
		return
	}
	a.renderer.RenderSearch(results)
}

func errorMessage(resp api.Response) string {
	if resp.Error != "" {
		return resp.Error
	}
	if resp.Message != "" {
		return resp.Message
	}
	return "something went wrong"
}
