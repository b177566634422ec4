package blog

import (
	"errors"
	"log/slog"
	"net/http"

	"blogsmith/internal/domain/entity"
	"blogsmith/internal/handler/http/auth"
	"blogsmith/internal/handler/http/pathutil"
	"blogsmith/internal/usecase/blog"
)

type homePageData struct {
	Username string
}

type listPageData struct {
	Username string
	Posts    []*entity.BlogPost
	Total    int64
}

type detailPageData struct {
	Username string
	Post     *entity.BlogPost
}

// Home renders the landing page with the generation form.
// The page adapts to the session: visitors see login links, members see
// the form.
func (h *Handlers) Home(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	data := homePageData{}
	if session := auth.SessionFromContext(r.Context()); session != nil {
		data.Username = session.Username
	}
	h.Renderer.Render(w, http.StatusOK, "index.html", data)
}

// List renders the authenticated user's blog posts, newest first.
func (h *Handlers) List(w http.ResponseWriter, r *http.Request) {
	session := auth.SessionFromContext(r.Context())
	if session == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	posts, err := h.Blogs.List(r.Context(), session.UserID)
	if err != nil {
		slog.ErrorContext(r.Context(), "list blog posts failed",
			slog.Int64("user_id", session.UserID),
			slog.Any("error", err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	total, err := h.Blogs.Count(r.Context(), session.UserID)
	if err != nil {
		// カウントは表示用なので失敗しても一覧は出す
		slog.WarnContext(r.Context(), "count blog posts failed",
			slog.Int64("user_id", session.UserID),
			slog.Any("error", err))
		total = int64(len(posts))
	}

	h.Renderer.Render(w, http.StatusOK, "blogs.html", listPageData{
		Username: session.Username,
		Posts:    posts,
		Total:    total,
	})
}

// Detail renders a single blog post. Requests for posts that do not
// exist, or that belong to someone else, are redirected home rather than
// revealing whether the post exists.
func (h *Handlers) Detail(w http.ResponseWriter, r *http.Request) {
	session := auth.SessionFromContext(r.Context())
	if session == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	id, err := pathutil.ExtractID(r.URL.Path, "/blogs/")
	if err != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	post, err := h.Blogs.GetOwned(r.Context(), session.UserID, id)
	if err != nil {
		switch {
		case errors.Is(err, blog.ErrBlogNotFound),
			errors.Is(err, blog.ErrNotOwner),
			errors.Is(err, blog.ErrInvalidBlogID):
			http.Redirect(w, r, "/", http.StatusSeeOther)
		default:
			slog.ErrorContext(r.Context(), "get blog post failed",
				slog.Int64("blog_id", id),
				slog.Any("error", err))
			http.Error(w, "internal server error", http.StatusInternalServerError)
		}
		return
	}

	h.Renderer.Render(w, http.StatusOK, "blog_detail.html", detailPageData{
		Username: session.Username,
		Post:     post,
	})
}
