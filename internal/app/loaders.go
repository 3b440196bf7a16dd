package app

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/lcaruso/corkboard/internal/api"
	"github.com/lcaruso/corkboard/internal/logger"
)

// Cache keys. Pages beyond a board's first are never cached: page-2+
// browsing is infrequent and staleness there costs more than the latency
// saved.
const (
	keyBoards    = "boards"
	keyDashboard = "dashboard"
)

func boardPostsKey(boardID string) string {
	return fmt.Sprintf("posts_%s_page1", boardID)
}

// loadDashboard implements the stale-while-revalidate strategy for the
// default view: a cached entry renders immediately and a detached refresh
// replaces it only while the dashboard is still the active page; a cache
// miss takes the live path behind the loading placeholder.
func (a *App) loadDashboard(ctx context.Context, gen uint64, _ map[string]string) {
	a.renderer.RenderLoading(PageDashboard)
	var cached api.Dashboard
	if a.cache.Get(keyDashboard, &cached) {
		if a.current(gen) {
			a.renderer.RenderDashboard(cached)
		}
		go a.revalidateDashboard(ctx, gen)
		return
	}
	d, err := a.fetchDashboard(ctx)
	if err != nil {
		if a.current(gen) {
			a.renderer.RenderError(PageDashboard, err.Error())
		}
		return
	}
	a.commitDashboard(gen, d)
}

func (a *App) revalidateDashboard(ctx context.Context, gen uint64) {
	v, err, _ := a.flight.Do(keyDashboard, func() (any, error) {
		return a.fetchDashboard(ctx)
	})
	if err != nil {
		logger.Warnf("app: dashboard refresh discarded: %v", err)
		return
	}
	a.commitDashboard(gen, v.(api.Dashboard))
}

func (a *App) fetchDashboard(ctx context.Context) (api.Dashboard, error) {
	resp := a.gw.Call(ctx, api.ActionGetDashboard, nil)
	if !resp.Success {
		return api.Dashboard{}, errors.New(errorMessage(resp))
	}
	var d api.Dashboard
	if err := resp.Decode(&d); err != nil {
		return api.Dashboard{}, fmt.Errorf("unexpected dashboard payload: %w", err)
	}
	return d, nil
}

// commitDashboard writes through and renders, but only while the page
// that issued the request is still the active one. A refresh arriving
// after navigation is discarded whole: no render, no stale overwrite of
// another page's view.
func (a *App) commitDashboard(gen uint64, d api.Dashboard) {
	if !a.current(gen) {
		return
	}
	a.cache.Set(keyDashboard, d, a.cfg.TTLDashboard)
	a.cache.Set(keyBoards, d.Boards, a.cfg.TTLBoards)
	a.state.SetBoards(d.Boards)
	a.renderer.RenderDashboard(d)
}

// loadBoard loads one page of a board's post list. Only the first page is
// cached and revalidated; later pages always hit the live path.
func (a *App) loadBoard(ctx context.Context, gen uint64, params map[string]string) {
	boardID := params["boardId"]
	if boardID == "" {
		a.renderer.RenderError(PageBoard, "missing board id")
		return
	}
	page := 1
	if p, err := strconv.Atoi(params["page"]); err == nil && p > 1 {
		page = p
	}
	a.renderer.RenderLoading(PageBoard)

	if page == 1 {
		var cached api.BoardPage
		if a.cache.Get(boardPostsKey(boardID), &cached) {
			if a.current(gen) {
				a.renderer.RenderBoard(cached)
			}
			go a.revalidateBoard(ctx, gen, boardID)
			return
		}
	}
	b, err := a.fetchBoard(ctx, boardID, page)
	if err != nil {
		if a.current(gen) {
			a.renderer.RenderError(PageBoard, err.Error())
		}
		return
	}
	a.commitBoard(gen, boardID, b)
}

func (a *App) revalidateBoard(ctx context.Context, gen uint64, boardID string) {
	v, err, _ := a.flight.Do(boardPostsKey(boardID), func() (any, error) {
		return a.fetchBoard(ctx, boardID, 1)
	})
	if err != nil {
		logger.Warnf("app: board %s refresh discarded: %v", boardID, err)
		return
	}
	a.commitBoard(gen, boardID, v.(api.BoardPage))
}

func (a *App) fetchBoard(ctx context.Context, boardID string, page int) (api.BoardPage, error) {
	resp := a.gw.Call(ctx, api.ActionGetPosts, map[string]any{
		"boardId": boardID,
		"page":    page,
	})
	if !resp.Success {
		return api.BoardPage{}, errors.New(errorMessage(resp))
	}
	var b api.BoardPage
	if err := resp.Decode(&b); err != nil {
		return api.BoardPage{}, fmt.Errorf("unexpected posts payload: %w", err)
	}
	if resp.Pagination != nil {
		b.Page = resp.Pagination.Page
		b.TotalPages = resp.Pagination.TotalPages
	}
	if b.Page == 0 {
		b.Page = page
	}
	return b, nil
}

func (a *App) commitBoard(gen uint64, boardID string, b api.BoardPage) {
	if !a.current(gen) {
		return
	}
	if b.Page <= 1 {
		a.cache.Set(boardPostsKey(boardID), b, a.cfg.TTLPosts)
	}
	a.renderer.RenderBoard(b)
}

// loadPost is always live: a single post with its comments is too volatile
// and too cheap to be worth a cache entry.
func (a *App) loadPost(ctx context.Context, gen uint64, params map[string]string) {
	postID := params["postId"]
	if postID == "" {
		a.renderer.RenderError(PagePost, "missing post id")
		return
	}
	a.renderer.RenderLoading(PagePost)
	resp := a.gw.Call(ctx, api.ActionGetPost, map[string]any{"postId": postID})
	if !a.current(gen) {
		return
	}
	if !resp.Success {
		a.renderer.RenderError(PagePost, errorMessage(resp))
		return
	}
	var p api.PostDetail
	if err := resp.Decode(&p); err != nil {
		a.renderer.RenderError(PagePost, "unexpected post payload")
		return
	}
	a.renderer.RenderPost(p)
}
