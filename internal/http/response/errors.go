package response

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/kalobtand/table-reservations/internal/validate"
	"github.com/kalobtand/table-reservations/pkg/logger"
)

// ErrorResponse is the structured JSON error body. Fields beyond Error and
// Code are populated per rejection kind.
type ErrorResponse struct {
	Error      string                     `json:"error"`
	Code       string                     `json:"code,omitempty"`
	Fields     []validate.ValidationError `json:"fields,omitempty"`
	RetryAfter int                        `json:"retry_after_seconds,omitempty"`
	RedirectTo string                     `json:"redirect_to,omitempty"`
}

// Common error codes
const (
	CodeInvalidInput   = "INVALID_INPUT"
	CodeBotCheckFailed = "BOT_CHECK_FAILED"
	CodeRateLimit      = "RATE_LIMIT_EXCEEDED"
	CodeUnauthorized   = "UNAUTHORIZED"
	CodeForbidden      = "FORBIDDEN"
	CodeNotFound       = "NOT_FOUND"
	CodeConflict       = "CONFLICT"
	CodeInternalError  = "INTERNAL_ERROR"
)

func write(w http.ResponseWriter, statusCode int, body ErrorResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("failed to encode error response", "error", err)
	}
}

func WriteError(w http.ResponseWriter, statusCode int, message, code string) {
	write(w, statusCode, ErrorResponse{Error: message, Code: code})
}

func BadRequest(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusBadRequest, message, CodeInvalidInput)
}

func BotCheckFailed(w http.ResponseWriter) {
	WriteError(w, http.StatusBadRequest, "captcha verification required", CodeBotCheckFailed)
}

// RateLimited reports the cooldown remainder both in the body and in the
// standard Retry-After header so clients can show a countdown.
func RateLimited(w http.ResponseWriter, retryAfter int) {
	w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
	write(w, http.StatusTooManyRequests, ErrorResponse{
		Error:      "too many submissions, try again later",
		Code:       CodeRateLimit,
		RetryAfter: retryAfter,
	})
}

func InvalidFields(w http.ResponseWriter, fields validate.FieldErrors) {
	write(w, http.StatusBadRequest, ErrorResponse{
		Error:  "one or more fields are invalid",
		Code:   CodeInvalidInput,
		Fields: fields,
	})
}

// UnauthorizedRedirect never leaks why access was denied; it resolves to a
// login redirect carrying the originally requested path.
func UnauthorizedRedirect(w http.ResponseWriter, redirectTo string) {
	write(w, http.StatusUnauthorized, ErrorResponse{
		Error:      "authentication required",
		Code:       CodeUnauthorized,
		RedirectTo: redirectTo,
	})
}

func Unauthorized(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusUnauthorized, message, CodeUnauthorized)
}

func NotFound(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusNotFound, message, CodeNotFound)
}

func Conflict(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusConflict, message, CodeConflict)
}

// InternalError stays generic; storage internals are never surfaced.
func InternalError(w http.ResponseWriter) {
	WriteError(w, http.StatusInternalServerError, "something went wrong", CodeInternalError)
}
