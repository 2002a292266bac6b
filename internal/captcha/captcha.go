// Package captcha gates booking submissions on a proof-of-humanity token
// from the Cloudflare Turnstile widget.
package captcha

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/go-querystring/query"

	"github.com/kalobtand/table-reservations/pkg/logger"
)

var ErrMissingToken = errors.New("captcha token missing")
var ErrRejected = errors.New("captcha token rejected")

// Gate admits a submission when a challenge token is acceptable.
type Gate interface {
	Admit(ctx context.Context, token string) error
}

// PresenceGate only enforces that a token was presented. Sufficient for
// development; production deployments must verify tokens server-side with
// TurnstileGate, since a presence check alone does not stop automated abuse.
type PresenceGate struct{}

func (PresenceGate) Admit(_ context.Context, token string) error {
	if strings.TrimSpace(token) == "" {
		return ErrMissingToken
	}
	return nil
}

// TurnstileGate verifies the token against the Turnstile siteverify
// endpoint in addition to the presence check.
type TurnstileGate struct {
	secret    string
	verifyURL string
	client    *http.Client
}

func NewTurnstileGate(secret, verifyURL string) *TurnstileGate {
	return &TurnstileGate{
		secret:    secret,
		verifyURL: verifyURL,
		client:    &http.Client{Timeout: 5 * time.Second},
	}
}

type verifyRequest struct {
	Secret   string `url:"secret"`
	Response string `url:"response"`
}

type verifyResponse struct {
	Success    bool     `json:"success"`
	ErrorCodes []string `json:"error-codes"`
}

func (g *TurnstileGate) Admit(ctx context.Context, token string) error {
	if strings.TrimSpace(token) == "" {
		return ErrMissingToken
	}

	form, err := query.Values(verifyRequest{Secret: g.secret, Response: token})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.verifyURL, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := g.client.Do(req)
	if err != nil {
		// Fail open on transport errors: the presence check already ran and
		// submissions must not be lost to a challenge-service outage.
		logger.WarnContext(ctx, "Captcha verification unavailable, admitting on presence only", "error", err)
		return nil
	}
	defer resp.Body.Close()

	var out verifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		logger.WarnContext(ctx, "Captcha verification response unreadable, admitting on presence only", "error", err)
		return nil
	}

	if !out.Success {
		logger.InfoContext(ctx, "Captcha token rejected", "error_codes", out.ErrorCodes)
		return ErrRejected
	}
	return nil
}
