package app

import (
	"context"

	"github.com/lcaruso/corkboard/internal/api"
	"github.com/lcaruso/corkboard/internal/logger"
	"github.com/lcaruso/corkboard/internal/session"
)

// Page identifies a logical view. Unknown pages dispatch the dashboard
// loader.
type Page string

const (
	PageDashboard Page = "dashboard"
	PageBoard     Page = "board"
	PagePost      Page = "post"
	PageSearch    Page = "search"
)

// Renderer is the callback surface the engine exposes to the UI
// collaborator. The engine decides what to show and when; the collaborator
// decides how it looks.
type Renderer interface {
	RenderLogin(message string)
	RenderPasswordChange()
	RenderLoading(page Page)
	RenderDashboard(d api.Dashboard)
	RenderBoard(b api.BoardPage)
	RenderPost(p api.PostDetail)
	RenderSearch(results []api.Post)
	RenderError(page Page, message string)
	SetReturnVisible(visible bool)
	SetActiveNav(page Page)
}

// loaderFunc loads and renders one page. gen is the navigation generation
// captured at dispatch; background work must re-check it before committing
// a render.
type loaderFunc func(ctx context.Context, gen uint64, params map[string]string)

// NavigateTo records the new location, updates the navigation chrome and
// dispatches the loader registered for page. At most one page is current
// at a time; navigating away does not cancel in-flight background
// refreshes, which check relevance before rendering.
func (a *App) NavigateTo(ctx context.Context, page Page, params map[string]string) {
	if a.Phase() != PhaseAuthenticated {
		logger.Warnf("app: navigate to %q while not authenticated", page)
		return
	}
	ld, ok := a.loaders[page]
	if !ok {
		// Unknown page ids fall back to the default view.
		page = PageDashboard
		ld = a.loadDashboard
	}
	gen := a.bumpGen()
	a.nav.Save(session.NavigationRecord{Page: string(page), Params: params})
	a.state.SetLocation(string(page), params["boardId"], params["postId"])
	a.renderer.SetActiveNav(page)
	a.renderer.SetReturnVisible(page != PageDashboard)
	ld(ctx, gen, params)
}

// Return navigates back to the default page. The affordance driving it is
// hidden on the dashboard itself.
func (a *App) Return(ctx context.Context) {
	a.NavigateTo(ctx, PageDashboard, nil)
}

// Back re-enters the current page. Browser back-navigation is trapped
// while a session is active: the collaborator forwards back-intent here
// and the engine re-renders the view it is already on instead of leaving.
func (a *App) Back(ctx context.Context) {
	if a.Phase() != PhaseAuthenticated {
		return
	}
	a.Reload(ctx)
}

// Reload re-dispatches the loader for the persisted current location.
func (a *App) Reload(ctx context.Context) {
	if rec, ok := a.nav.Load(); ok {
		a.NavigateTo(ctx, Page(rec.Page), rec.Params)
		return
	}
	a.NavigateTo(ctx, PageDashboard, nil)
}
