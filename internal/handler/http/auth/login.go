package auth

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	httpx "blogsmith/internal/handler/http"
	"blogsmith/internal/handler/http/requestid"
	"blogsmith/internal/handler/http/web"
	"blogsmith/internal/usecase/user"
)

// Handlers bundles the authentication endpoints.
type Handlers struct {
	Users    *user.Service
	Sessions *SessionManager
	Renderer *web.Renderer
	Limiter  *LoginLimiter
}

type loginPageData struct {
	Error    string
	Username string
}

// LoginPage renders the login form.
func (h *Handlers) LoginPage(w http.ResponseWriter, r *http.Request) {
	// 既にログイン済みならトップへ
	if _, err := h.Sessions.Validate(r); err == nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	h.Renderer.Render(w, http.StatusOK, "login.html", loginPageData{})
}

// Login handles the login form submission.
// Failed attempts re-render the form with an inline error; the error text
// never distinguishes an unknown username from a wrong password.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID := requestid.FromContext(r.Context())
	logger := slog.With(slog.String("request_id", requestID))

	ip := httpx.ExtractIP(r)
	if h.Limiter != nil && !h.Limiter.Allow(ip) {
		logger.Warn("login throttled",
			slog.String("client_ip", ip))
		h.Renderer.Render(w, http.StatusTooManyRequests, "login.html", loginPageData{
			Error: "Too many login attempts. Please try again later.",
		})
		return
	}

	if err := r.ParseForm(); err != nil {
		h.Renderer.Render(w, http.StatusBadRequest, "login.html", loginPageData{
			Error: "Invalid form submission.",
		})
		return
	}

	username := r.PostFormValue("username")
	password := r.PostFormValue("password")

	account, err := h.Users.Login(r.Context(), username, password)
	if err != nil {
		if errors.Is(err, user.ErrInvalidCredentials) {
			logger.Warn("login failed",
				slog.String("reason", "invalid_credentials"),
				slog.String("client_ip", ip),
				slog.Int64("duration_ms", time.Since(start).Milliseconds()))
			h.Renderer.Render(w, http.StatusOK, "login.html", loginPageData{
				Error:    "Invalid username or password.",
				Username: username,
			})
			return
		}
		logger.Error("login failed",
			slog.Any("error", err),
			slog.Int64("duration_ms", time.Since(start).Milliseconds()))
		h.Renderer.Render(w, http.StatusInternalServerError, "login.html", loginPageData{
			Error:    "Something went wrong. Please try again.",
			Username: username,
		})
		return
	}

	if err := h.Sessions.Issue(w, account.ID, account.Username); err != nil {
		logger.Error("session issue failed", slog.Any("error", err))
		h.Renderer.Render(w, http.StatusInternalServerError, "login.html", loginPageData{
			Error:    "Something went wrong. Please try again.",
			Username: username,
		})
		return
	}

	logger.Info("login successful",
		slog.String("username", account.Username),
		slog.Int64("duration_ms", time.Since(start).Milliseconds()))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
