package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/fittrack/internal/app/system/auth"
	"github.com/dalemusser/fittrack/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// TokenSecret signs every token minted by Tokens.
const TokenSecret = "fittrack-test-secret-0123456789abcdef"

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx, ok := r.Context().Value(chi.RouteCtxKey).(*chi.Context)
	if !ok || rctx == nil {
		rctx = chi.NewRouteContext()
	}
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Tokens returns an issuer/verifier using TokenSecret and the default TTL.
func Tokens(t *testing.T) *auth.Tokens {
	t.Helper()
	tok, err := auth.NewTokens(TokenSecret, 0, zap.NewNop())
	if err != nil {
		t.Fatalf("NewTokens: %v", err)
	}
	return tok
}

// BearerToken signs a token for email/role and returns the Authorization header value.
func BearerToken(t *testing.T, tok *auth.Tokens, email string, role models.Role) string {
	t.Helper()
	raw, err := tok.Issue(auth.Claims{Email: email, Role: role})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	return "Bearer " + raw
}

// WithClaims injects claims directly, bypassing the verifier. Use it when
// calling a handler without its route middleware.
func WithClaims(r *http.Request, email string, role models.Role) *http.Request {
	return r.WithContext(auth.WithClaims(r.Context(), &auth.Claims{Email: email, Role: role}))
}

// JSONRequest builds a request with body encoded as JSON.
func JSONRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		rdr = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, target, rdr)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// Do serves req on h and returns the recorder.
func Do(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// DecodeJSON decodes the recorder body into dst.
func DecodeJSON(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), dst); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
}

// AssertStatus checks the response status code.
func AssertStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("status code: got %d, want %d (body %s)", rec.Code, want, rec.Body.String())
	}
}

// AssertMessage checks the {"message": ...} envelope.
func AssertMessage(t *testing.T, rec *httptest.ResponseRecorder, want string) {
	t.Helper()
	var m struct {
		Message string `json:"message"`
	}
	DecodeJSON(t, rec, &m)
	if m.Message != want {
		t.Errorf("message: got %q, want %q", m.Message, want)
	}
}
