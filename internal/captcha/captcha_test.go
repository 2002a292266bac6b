package captcha_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kalobtand/table-reservations/internal/captcha"
)

func TestPresenceGate(t *testing.T) {
	g := captcha.PresenceGate{}

	if err := g.Admit(context.Background(), "tok-1"); err != nil {
		t.Fatalf("token present, got %v", err)
	}
	for _, token := range []string{"", "   "} {
		if err := g.Admit(context.Background(), token); !errors.Is(err, captcha.ErrMissingToken) {
			t.Fatalf("token=%q: got %v, want ErrMissingToken", token, err)
		}
	}
}

func TestTurnstileGate_Success(t *testing.T) {
	var gotSecret, gotResponse string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
		}
		gotSecret = r.PostFormValue("secret")
		gotResponse = r.PostFormValue("response")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true}`))
	}))
	defer srv.Close()

	g := captcha.NewTurnstileGate("secret-key", srv.URL)
	if err := g.Admit(context.Background(), "tok-1"); err != nil {
		t.Fatalf("expected admission, got %v", err)
	}
	if gotSecret != "secret-key" || gotResponse != "tok-1" {
		t.Fatalf("verify request carried secret=%q response=%q", gotSecret, gotResponse)
	}
}

func TestTurnstileGate_RejectedToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":false,"error-codes":["invalid-input-response"]}`))
	}))
	defer srv.Close()

	g := captcha.NewTurnstileGate("secret-key", srv.URL)
	if err := g.Admit(context.Background(), "tok-1"); !errors.Is(err, captcha.ErrRejected) {
		t.Fatalf("got %v, want ErrRejected", err)
	}
}

func TestTurnstileGate_MissingToken(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	g := captcha.NewTurnstileGate("secret-key", srv.URL)
	if err := g.Admit(context.Background(), "  "); !errors.Is(err, captcha.ErrMissingToken) {
		t.Fatalf("got %v, want ErrMissingToken", err)
	}
	if called {
		t.Fatal("a blank token must not reach the verify endpoint")
	}
}

func TestTurnstileGate_FailsOpenOnTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	g := captcha.NewTurnstileGate("secret-key", srv.URL)
	if err := g.Admit(context.Background(), "tok-1"); err != nil {
		t.Fatalf("verification outage must admit on presence, got %v", err)
	}
}

func TestTurnstileGate_FailsOpenOnUnreadableResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	g := captcha.NewTurnstileGate("secret-key", srv.URL)
	if err := g.Admit(context.Background(), "tok-1"); err != nil {
		t.Fatalf("unreadable verify response must admit on presence, got %v", err)
	}
}
