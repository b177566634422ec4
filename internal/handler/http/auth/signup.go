package auth

import (
	"errors"
	"log/slog"
	"net/http"

	"blogsmith/internal/domain/entity"
	"blogsmith/internal/handler/http/requestid"
	"blogsmith/internal/usecase/user"
)

type signupPageData struct {
	Error    string
	Username string
	Email    string
}

// SignupPage renders the registration form.
func (h *Handlers) SignupPage(w http.ResponseWriter, r *http.Request) {
	if _, err := h.Sessions.Validate(r); err == nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	h.Renderer.Render(w, http.StatusOK, "signup.html", signupPageData{})
}

// Signup handles the registration form submission.
// Validation failures re-render the form with an inline error and the
// submitted username and email so the visitor does not retype them.
func (h *Handlers) Signup(w http.ResponseWriter, r *http.Request) {
	requestID := requestid.FromContext(r.Context())
	logger := slog.With(slog.String("request_id", requestID))

	if err := r.ParseForm(); err != nil {
		h.Renderer.Render(w, http.StatusBadRequest, "signup.html", signupPageData{
			Error: "Invalid form submission.",
		})
		return
	}

	input := user.SignupInput{
		Username:        r.PostFormValue("username"),
		Email:           r.PostFormValue("email"),
		Password:        r.PostFormValue("password"),
		ConfirmPassword: r.PostFormValue("confirm_password"),
	}
	data := signupPageData{Username: input.Username, Email: input.Email}

	account, err := h.Users.Signup(r.Context(), input)
	if err != nil {
		var vErr *entity.ValidationError
		switch {
		case errors.Is(err, user.ErrPasswordMismatch):
			data.Error = "Passwords do not match."
		case errors.Is(err, user.ErrUsernameTaken):
			data.Error = "That username is already taken."
		case errors.As(err, &vErr):
			data.Error = vErr.Error()
		default:
			logger.Error("signup failed", slog.Any("error", err))
			h.Renderer.Render(w, http.StatusInternalServerError, "signup.html", signupPageData{
				Error:    "Something went wrong. Please try again.",
				Username: input.Username,
				Email:    input.Email,
			})
			return
		}
		h.Renderer.Render(w, http.StatusOK, "signup.html", data)
		return
	}

	// 登録後はそのままログイン状態にする
	if err := h.Sessions.Issue(w, account.ID, account.Username); err != nil {
		logger.Error("session issue failed", slog.Any("error", err))
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	logger.Info("account created", slog.String("username", account.Username))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Logout clears the session cookie and sends the visitor home.
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	h.Sessions.Clear(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
