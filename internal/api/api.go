package api

import "encoding/json"

// Single-endpoint JSON protocol for the remote content-board service.
// One POST request -> one response; every outcome is keyed off Success.

// Actions understood by the remote endpoint.
const (
	ActionLogin          = "login"
	ActionLogout         = "logout"
	ActionChangePassword = "changePassword"
	ActionGetInitialData = "getInitialData"
	ActionGetDashboard   = "getDashboard"
	ActionGetBoards      = "getBoards"
	ActionGetPosts       = "getPosts"
	ActionGetPost        = "getPost"
	ActionSearchPosts    = "searchPosts"
	ActionCreateBoard    = "createBoard"
	ActionUpdateBoard    = "updateBoard"
	ActionDeleteBoard    = "deleteBoard"
	ActionCreatePost     = "createPost"
	ActionUpdatePost     = "updatePost"
	ActionDeletePost     = "deletePost"
	ActionCreateComment  = "createComment"
)

type Request struct {
	Action string         `json:"action"`
	Params map[string]any `json:"params"`
	// SessionToken is null before login and during the login call itself.
	SessionToken *string `json:"sessionToken"`
}

type Pagination struct {
	Page       int `json:"page"`
	TotalPages int `json:"totalPages"`
}

type Response struct {
	Success      bool            `json:"success"`
	Data         json.RawMessage `json:"data,omitempty"`
	Error        string          `json:"error,omitempty"`
	Message      string          `json:"message,omitempty"`
	Pagination   *Pagination     `json:"pagination,omitempty"`
	SessionToken string          `json:"sessionToken,omitempty"`
	Debug        json.RawMessage `json:"debug,omitempty"`
}

// Decode unmarshals the response payload into dest.
func (r Response) Decode(dest any) error {
	return json.Unmarshal(r.Data, dest)
}

type User struct {
	Username     string `json:"username"`
	DisplayName  string `json:"displayName"`
	IsAdmin      bool   `json:"isAdmin"`
	IsFirstLogin bool   `json:"isFirstLogin"`
}

// BoardSummary is ordered display data. PostCount may be absent on first
// paint and is backfilled by a later refresh.
type BoardSummary struct {
	BoardID   string `json:"boardId"`
	BoardName string `json:"boardName"`
	PostCount *int   `json:"postCount,omitempty"`
}

type Post struct {
	PostID       string `json:"postId"`
	BoardID      string `json:"boardId"`
	Title        string `json:"title"`
	Author       string `json:"author"`
	Body         string `json:"body,omitempty"`
	CommentCount int    `json:"commentCount"`
	CreatedAt    string `json:"createdAt"`
}

type Comment struct {
	CommentID string `json:"commentId"`
	PostID    string `json:"postId"`
	Author    string `json:"author"`
	Body      string `json:"body"`
	CreatedAt string `json:"createdAt"`
}

// Dashboard is the landing view payload.
type Dashboard struct {
	Boards      []BoardSummary `json:"boards"`
	RecentPosts []Post         `json:"recentPosts"`
}

// BoardPage is one page of a board's post list.
type BoardPage struct {
	Board      BoardSummary `json:"board"`
	Posts      []Post       `json:"posts"`
	Page       int          `json:"page"`
	TotalPages int          `json:"totalPages"`
}

type PostDetail struct {
	Post     Post      `json:"post"`
	Comments []Comment `json:"comments"`
}

// InitialData is returned by getInitialData during boot and after login.
type InitialData struct {
	User   User           `json:"user"`
	Boards []BoardSummary `json:"boards"`
}
