package app

import (
	"context"

	"github.com/lcaruso/corkboard/internal/api"
)

// Mutation identifies a write against the remote service for the purpose
// of cache invalidation.
type Mutation string

const (
	MutationBoardCreate   Mutation = "board.create"
	MutationBoardUpdate   Mutation = "board.update"
	MutationBoardDelete   Mutation = "board.delete"
	MutationPostCreate    Mutation = "post.create"
	MutationPostUpdate    Mutation = "post.update"
	MutationPostDelete    Mutation = "post.delete"
	MutationCommentCreate Mutation = "comment.create"
)

// keyBoardPage1 is a placeholder row expanded with the mutation's board id.
const keyBoardPage1 = "posts_{boardId}_page1"

// invalidationTable is the manual, enumerated list of cache keys each
// mutation kind can affect. It lives next to the loaders on purpose: a
// missed row here is a latent staleness bug, not a crash, so the table
// must stay auditable in one place. Comment creation touches the same
// keys as a post mutation because comment counts surface on both views.
var invalidationTable = map[Mutation][]string{
	MutationBoardCreate:   {keyBoards, keyDashboard},
	MutationBoardUpdate:   {keyBoards, keyDashboard},
	MutationBoardDelete:   {keyBoards, keyDashboard},
	MutationPostCreate:    {keyDashboard, keyBoardPage1},
	MutationPostUpdate:    {keyDashboard, keyBoardPage1},
	MutationPostDelete:    {keyDashboard, keyBoardPage1},
	MutationCommentCreate: {keyDashboard, keyBoardPage1},
}

// Invalidate removes the cache entries the mutation can affect. boardID
// expands the per-board placeholder and is ignored for board-list rows.
func (a *App) Invalidate(m Mutation, boardID string) {
	for _, k := range invalidationTable[m] {
		if k == keyBoardPage1 {
			k = boardPostsKey(boardID)
		}
		a.cache.Remove(k)
	}
}

// mutate runs a write action, and on success invalidates the enumerated
// keys before refreshing the current view.
func (a *App) mutate(ctx context.Context, action string, params map[string]any, m Mutation, boardID string) api.Response {
	resp := a.gw.Call(ctx, action, params)
	if resp.Success {
		a.Invalidate(m, boardID)
		a.Reload(ctx)
	}
	return resp
}

func (a *App) CreateBoard(ctx context.Context, name string) api.Response {
	return a.mutate(ctx, api.ActionCreateBoard, map[string]any{"boardName": name},
		MutationBoardCreate, "")
}

func (a *App) UpdateBoard(ctx context.Context, boardID, name string) api.Response {
	return a.mutate(ctx, api.ActionUpdateBoard, map[string]any{"boardId": boardID, "boardName": name},
		MutationBoardUpdate, "")
}

func (a *App) DeleteBoard(ctx context.Context, boardID string) api.Response {
	return a.mutate(ctx, api.ActionDeleteBoard, map[string]any{"boardId": boardID},
		MutationBoardDelete, "")
}

func (a *App) CreatePost(ctx context.Context, boardID, title, body string) api.Response {
	return a.mutate(ctx, api.ActionCreatePost, map[string]any{"boardId": boardID, "title": title, "body": body},
		MutationPostCreate, boardID)
}

func (a *App) UpdatePost(ctx context.Context, boardID, postID, title, body string) api.Response {
	return a.mutate(ctx, api.ActionUpdatePost, map[string]any{"postId": postID, "title": title, "body": body},
		MutationPostUpdate, boardID)
}

func (a *App) DeletePost(ctx context.Context, boardID, postID string) api.Response {
	return a.mutate(ctx, api.ActionDeletePost, map[string]any{"postId": postID},
		MutationPostDelete, boardID)
}

func (a *App) CreateComment(ctx context.Context, boardID, postID, body string) api.Response {
	return a.mutate(ctx, api.ActionCreateComment, map[string]any{"postId": postID, "body": body},
		MutationCommentCreate, boardID)
}
