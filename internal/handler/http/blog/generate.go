// Package blog provides the HTTP endpoints for generating and browsing
// blog posts.
package blog

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"blogsmith/internal/domain/entity"
	httpx "blogsmith/internal/handler/http"
	"blogsmith/internal/handler/http/auth"
	"blogsmith/internal/handler/http/requestid"
	"blogsmith/internal/handler/http/respond"
	"blogsmith/internal/handler/http/web"
	"blogsmith/internal/usecase/blog"
)

// Handlers bundles the blog endpoints.
type Handlers struct {
	Blogs    *blog.Service
	Sessions *auth.SessionManager
	Renderer *web.Renderer
}

type generateRequest struct {
	Link string `json:"link"`
}

type generateResponse struct {
	Content string `json:"content"`
}

// Generate runs the full link-to-article pipeline for the authenticated
// user. The route's postOnly wrapper has already rejected non-POST
// requests by the time this runs.
func (h *Handlers) Generate(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID := requestid.FromContext(r.Context())
	logger := slog.With(slog.String("request_id", requestID))

	session := auth.SessionFromContext(r.Context())
	if session == nil {
		respond.SafeError(w, http.StatusUnauthorized, errors.New("authentication required"))
		return
	}

	link := extractLink(r)

	post, err := h.Blogs.Generate(r.Context(), session.UserID, link)
	if err != nil {
		httpx.RecordBlogGenerated(false)
		switch {
		case errors.Is(err, blog.ErrEmptyLink):
			respond.Error(w, http.StatusBadRequest, errors.New("No YouTube link provided"))
		case errors.Is(err, entity.ErrAudioNotFound), errors.Is(err, entity.ErrTranscriptionFailed):
			logger.Error("transcription failed",
				slog.String("link", link),
				slog.Any("error", err))
			respond.Error(w, http.StatusInternalServerError, errors.New("Failed to get transcript"))
		case errors.Is(err, entity.ErrGenerationFailed):
			logger.Error("article generation failed",
				slog.String("link", link),
				slog.Any("error", err))
			respond.Error(w, http.StatusInternalServerError, errors.New("Failed to generate blog article"))
		default:
			logger.Error("blog generation failed",
				slog.String("link", link),
				slog.Any("error", err))
			respond.JSON(w, http.StatusInternalServerError, map[string]string{
				"error": "Internal Server Error: " + respond.SanitizeError(err),
			})
		}
		return
	}

	duration := time.Since(start)
	httpx.RecordBlogGenerated(true)
	httpx.RecordGenerationDuration(duration)

	logger.Info("blog post generated",
		slog.Int64("blog_id", post.ID),
		slog.Int64("user_id", session.UserID),
		slog.String("title", post.YoutubeTitle),
		slog.Duration("duration", duration))

	respond.JSON(w, http.StatusOK, generateResponse{Content: post.GeneratedContent})
}

// extractLink pulls the YouTube link from either a form post or a JSON body.
func extractLink(r *http.Request) string {
	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "application/json") {
		var req generateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return ""
		}
		return req.Link
	}

	if err := r.ParseForm(); err != nil {
		return ""
	}
	return r.PostFormValue("link")
}
