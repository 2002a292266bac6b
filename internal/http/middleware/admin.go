package middleware

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/kalobtand/table-reservations/internal/http/response"
	"github.com/kalobtand/table-reservations/pkg/auth"
	"github.com/kalobtand/table-reservations/pkg/logger"
)

type ctxKey string

const CtxClaims ctxKey = "claims"

// SessionCookie matches the cookie the login handler sets.
const SessionCookie = "session"

// RequireAdmin rejects requests without a verified admin session. The
// admin service re-runs the same check before fetching data; this
// middleware is not the only line of defense.
func RequireAdmin(secret, loginPath string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				if c, err := r.Cookie(SessionCookie); err == nil {
					token = c.Value
				}
			}

			redirect := loginPath + "?redirect=" + url.QueryEscape(r.URL.Path)

			if token == "" {
				response.UnauthorizedRedirect(w, redirect)
				return
			}

			claims, err := auth.Parse(token, secret)
			if err != nil {
				response.UnauthorizedRedirect(w, redirect)
				return
			}

			if claims.Role != auth.RoleAdmin || !claims.EmailVerified {
				response.UnauthorizedRedirect(w, redirect)
				return
			}

			ctx := context.WithValue(r.Context(), CtxClaims, claims)
			ctx = context.WithValue(ctx, logger.AdminKey, claims.Email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func Claims(r *http.Request) *auth.Claims {
	v := r.Context().Value(CtxClaims)
	if v == nil {
		return nil
	}
	return v.(*auth.Claims)
}

func bearerToken(r *http.Request) string {
	authz := r.Header.Get("Authorization")
	if strings.HasPrefix(authz, "Bearer ") {
		return strings.TrimPrefix(authz, "Bearer ")
	}
	return ""
}
