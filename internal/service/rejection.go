package service

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/kalobtand/table-reservations/internal/validate"
	"github.com/kalobtand/table-reservations/pkg/auth"
)

var ErrNotFound = errors.New("booking not found")
var ErrInvalidTransition = errors.New("invalid status transition")

type RejectKind string

const (
	RejectBotCheck      RejectKind = "bot_check_failed"
	RejectRateLimited   RejectKind = "rate_limited"
	RejectInvalidFields RejectKind = "invalid_fields"
	RejectStorage       RejectKind = "storage_failure"
	RejectUnauthorized  RejectKind = "unauthorized"
)

// Rejection is the typed reason a submission or admin request was refused.
// Each pipeline stage produces a distinguishable kind.
type Rejection struct {
	Kind       RejectKind
	RetryAfter int                  // seconds, set for RejectRateLimited
	Fields     validate.FieldErrors // set for RejectInvalidFields
	RedirectTo string               // set for RejectUnauthorized
}

func (r *Rejection) Error() string {
	switch r.Kind {
	case RejectRateLimited:
		return fmt.Sprintf("rate limited, retry after %ds", r.RetryAfter)
	case RejectInvalidFields:
		return r.Fields.Error()
	default:
		return string(r.Kind)
	}
}

// AsRejection unwraps a pipeline error into its Rejection, nil otherwise.
func AsRejection(err error) *Rejection {
	var rej *Rejection
	if errors.As(err, &rej) {
		return rej
	}
	return nil
}

// Authorize allows access iff a session is present, the role is admin and
// the email is verified. It runs at the router boundary and again before
// every admin data fetch; both enforcement points must pass.
func Authorize(claims *auth.Claims, requestedPath, loginPath string) *Rejection {
	if claims == nil || claims.Role != auth.RoleAdmin || !claims.EmailVerified {
		return &Rejection{
			Kind:       RejectUnauthorized,
			RedirectTo: loginPath + "?redirect=" + url.QueryEscape(requestedPath),
		}
	}
	return nil
}
