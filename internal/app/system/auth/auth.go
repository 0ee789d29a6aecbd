// internal/app/system/auth/auth.go
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dalemusser/fittrack/internal/app/system/respond"
	"github.com/dalemusser/fittrack/internal/domain/models"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

/*─────────────────────────────────────────────────────────────────────────────*
| Errors                                                                      |
*─────────────────────────────────────────────────────────────────────────────*/

var (
	// ErrUnauthenticated means no bearer token was presented (401).
	ErrUnauthenticated = errors.New("unauthorized access")
	// ErrInvalidToken means the token failed signature, algorithm, or expiry checks (403).
	ErrInvalidToken = errors.New("token is not valid")
	// ErrForbidden means the token is valid but carries the wrong role (403).
	ErrForbidden = errors.New("forbidden")
)

// DefaultTTL is how long an issued token stays valid.
const DefaultTTL = 9 * time.Hour

/*─────────────────────────────────────────────────────────────────────────────*
| Claims                                                                      |
*─────────────────────────────────────────────────────────────────────────────*/

// Claims is the decoded token payload attached to authenticated requests.
type Claims struct {
	Email string      `json:"email"`
	Name  string      `json:"name,omitempty"`
	Role  models.Role `json:"role"`
	jwt.RegisteredClaims
}

type ctxKey string

const claimsKey ctxKey = "claims"

// WithClaims returns ctx carrying c.
func WithClaims(ctx context.Context, c *Claims) context.Context {
	return context.WithValue(ctx, claimsKey, c)
}

// ClaimsFrom returns the claims the verifier attached, if any.
func ClaimsFrom(ctx context.Context) (*Claims, bool) {
	c, ok := ctx.Value(claimsKey).(*Claims)
	return c, ok && c != nil
}

/*─────────────────────────────────────────────────────────────────────────────*
| Signing & verification                                                      |
*─────────────────────────────────────────────────────────────────────────────*/

// Tokens signs and verifies HS256 bearer tokens with a shared secret.
// It is safe for concurrent use.
type Tokens struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
	log    *zap.Logger
}

// NewTokens builds a Tokens. A zero ttl means DefaultTTL.
func NewTokens(secret string, ttl time.Duration, logger *zap.Logger) (*Tokens, error) {
	if secret == "" {
		return nil, fmt.Errorf("token secret is empty")
	}
	if len(secret) < 32 {
		logger.Warn("token secret is short; 32+ chars recommended", zap.Int("length", len(secret)))
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Tokens{secret: []byte(secret), ttl: ttl, now: time.Now, log: logger}, nil
}

// SetClock replaces the time source. Tests use it to mint expired tokens.
func (t *Tokens) SetClock(now func() time.Time) { t.now = now }

// Issue signs a token for the given identity. iat and exp are set here;
// any registered claims already on c are overwritten.
func (t *Tokens) Issue(c Claims) (string, error) {
	now := t.now()
	c.IssuedAt = jwt.NewNumericDate(now)
	c.ExpiresAt = jwt.NewNumericDate(now.Add(t.ttl))
	if c.Subject == "" {
		c.Subject = c.Email
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Parse verifies raw and returns its claims. A role outside models.Roles
// fails like a bad signature. Every failure wraps ErrInvalidToken.
func (t *Tokens) Parse(raw string) (*Claims, error) {
	var c Claims
	tok, err := jwt.ParseWithClaims(raw, &c, func(*jwt.Token) (any, error) {
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(t.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !tok.Valid {
		return nil, ErrInvalidToken
	}
	role, err := models.ParseRole(string(c.Role))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	c.Role = role
	return &c, nil
}

// BearerToken extracts the token from "Authorization: Bearer <token>".
func BearerToken(r *http.Request) (string, error) {
	h := strings.TrimSpace(r.Header.Get("Authorization"))
	if h == "" {
		return "", ErrUnauthenticated
	}
	scheme, tok, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, "bearer") || strings.TrimSpace(tok) == "" {
		return "", ErrUnauthenticated
	}
	return strings.TrimSpace(tok), nil
}

// Authenticate runs the full verifier against r.
func (t *Tokens) Authenticate(r *http.Request) (*Claims, error) {
	raw, err := BearerToken(r)
	if err != nil {
		return nil, err
	}
	return t.Parse(raw)
}

/*─────────────────────────────────────────────────────────────────────────────*
| Middleware                                                                  |
*─────────────────────────────────────────────────────────────────────────────*/

// Verify requires a valid bearer token and attaches its claims to the
// request context.
//
//	no token        401 {"message":"unauthorized access"}
//	bad/expired     403 {"message":"Token is not valid."}
func (t *Tokens) Verify(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := t.Authenticate(r)
		if err != nil {
			t.reject(w, r, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), c)))
	})
}

// RequireRole is Verify followed by a role check. Verifier failures come
// through unchanged; a valid token with another role gets 403.
func (t *Tokens) RequireRole(role models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return t.Verify(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c, _ := ClaimsFrom(r.Context())
			if c.Role != role {
				t.log.Info("role gate rejected request",
					zap.String("path", r.URL.Path),
					zap.String("email", c.Email),
					zap.String("have", string(c.Role)),
					zap.String("want", string(role)))
				respond.Message(w, http.StatusForbidden, forbiddenMessage(role))
				return
			}
			next.ServeHTTP(w, r)
		}))
	}
}

func (t *Tokens) reject(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrUnauthenticated):
		respond.Message(w, http.StatusUnauthorized, "unauthorized access")
	default:
		t.log.Debug("token rejected", zap.String("path", r.URL.Path), zap.Error(err))
		respond.Message(w, http.StatusForbidden, "Token is not valid.")
	}
}

func forbiddenMessage(role models.Role) string {
	switch role {
	case models.RoleAdmin:
		return "Admins only"
	case models.RoleTrainer:
		return "Trainers only"
	default:
		return "forbidden"
	}
}
