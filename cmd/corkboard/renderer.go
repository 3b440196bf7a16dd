package main

import (
	"fmt"
	"io"

	"github.com/lcaruso/corkboard/internal/api"
	"github.com/lcaruso/corkboard/internal/app"
)

// termRenderer is the reference UI collaborator: plain text on a writer.
type termRenderer struct {
	out io.Writer
}

func (r *termRenderer) RenderLogin(message string) {
	if message != "" {
		fmt.Fprintf(r.out, "! %s\n", message)
	}
	fmt.Fprintln(r.out, "Not logged in. Use: login <username> <password> [remember]")
}

func (r *termRenderer) RenderPasswordChange() {
	fmt.Fprintln(r.out, "Password change required. Use: passwd <new-password>")
}

func (r *termRenderer) RenderLoading(page app.Page) {
	fmt.Fprintf(r.out, "... loading %s\n", page)
}

func (r *termRenderer) RenderDashboard(d api.Dashboard) {
	fmt.Fprintln(r.out, "== Dashboard ==")
	for _, b := range d.Boards {
		if b.PostCount != nil {
			fmt.Fprintf(r.out, "  [%s] %s (%d posts)\n", b.BoardID, b.BoardName, *b.PostCount)
		} else {
			fmt.Fprintf(r.out, "  [%s] %s\n", b.BoardID, b.BoardName)
		}
	}
	for _, p := range d.RecentPosts {
		fmt.Fprintf(r.out, "  recent: %s — %s (%s)\n", p.Title, p.Author, p.BoardID)
	}
}

func (r *termRenderer) RenderBoard(b api.BoardPage) {
	fmt.Fprintf(r.out, "== %s (page %d/%d) ==\n", b.Board.BoardName, b.Page, b.TotalPages)
	for _, p := range b.Posts {
		fmt.Fprintf(r.out, "  [%s] %s — %s (%d comments)\n", p.PostID, p.Title, p.Author, p.CommentCount)
	}
}

func (r *termRenderer) RenderPost(p api.PostDetail) {
	fmt.Fprintf(r.out, "== %s — %s ==\n%s\n", p.Post.Title, p.Post.Author, p.Post.Body)
	for _, c := range p.Comments {
		fmt.Fprintf(r.out, "  %s: %s\n", c.Author, c.Body)
	}
}

func (r *termRenderer) RenderSearch(results []api.Post) {
	fmt.Fprintf(r.out, "== Search results (%d) ==\n", len(results))
	for _, p := range results {
		fmt.Fprintf(r.out, "  [%s] %s — %s\n", p.PostID, p.Title, p.BoardID)
	}
}

func (r *termRenderer) RenderError(page app.Page, message string) {
	fmt.Fprintf(r.out, "error on %s: %s\n", page, message)
}

func (r *termRenderer) SetReturnVisible(visible bool) {
	if visible {
		fmt.Fprintln(r.out, "(type `return` for the dashboard)")
	}
}

func (r *termRenderer) SetActiveNav(page app.Page) {
	fmt.Fprintf(r.out, "-- %s --\n", page)
}
