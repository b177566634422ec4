// Package respond writes JSON responses and keeps internal error
// details out of what the client sees.
package respond

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
)

// safeSubstrings marks error messages that originate from input
// validation and are fine to show to the client as-is.
// これに該当しないメッセージは全て汎用エラーに置き換える
var safeSubstrings = []string{
	"required",
	"invalid",
	"not found",
	"already exists",
	"must be",
	"cannot be",
	"too long",
	"too short",
}

// JSON writes v as a JSON body with the given status code. A nil v
// writes the status line only.
func JSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// ヘッダ送信済みなのでログに残すしかない
		slog.Default().Error("failed to encode JSON response",
			slog.Int("status_code", code),
			slog.Any("error", err))
	}
}

// Error writes err's message as {"error": ...} with the given code.
func Error(w http.ResponseWriter, code int, err error) {
	JSON(w, code, map[string]string{"error": err.Error()})
}

// SafeError is Error for messages that may contain internal detail.
// Validation-style messages pass through; anything else, and every 5xx
// regardless of content, becomes "internal server error" with the real
// message logged after sanitization.
func SafeError(w http.ResponseWriter, code int, err error) {
	if err == nil {
		return
	}

	msg := err.Error()
	if code < 500 && isSafeMessage(msg) {
		JSON(w, code, map[string]string{"error": msg})
		return
	}

	slog.Default().Error("internal server error",
		slog.String("status", http.StatusText(code)),
		slog.Int("code", code),
		slog.String("error", SanitizeError(err)))
	JSON(w, code, map[string]string{"error": "internal server error"})
}

func isSafeMessage(msg string) bool {
	lower := strings.ToLower(msg)
	for _, s := range safeSubstrings {
		if strings.Contains(lower, s) {
			return true
		}
	}
	return false
}
