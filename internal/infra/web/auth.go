package web

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"property-marketplace/internal/config"
	"property-marketplace/internal/domain/model"
)

const sessionCookieName = "admin_session"

var errNoSession = errors.New("no admin session")

// AuthManager issues and validates the admin dashboard session. A session is
// an HS256 JWT stamped with the operator identity from config, delivered both
// as an HttpOnly cookie and as a bearer token for non-browser clients.
type AuthManager struct {
	secret       []byte
	identity     string
	cookieDomain string
	secure       bool
	ttl          time.Duration
}

func NewAuthManager(cfg config.AuthConfig) *AuthManager {
	return &AuthManager{
		secret:       []byte(cfg.SessionSecret),
		identity:     cfg.AdminEmail,
		cookieDomain: cfg.CookieDomain,
		secure:       cfg.SecureCookie,
		ttl:          cfg.SessionTTL,
	}
}

// AdminClaims is the session payload. Role gates the admin route group;
// Email records who the session was minted for.
type AdminClaims struct {
	Role  string `json:"role"`
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// Mint signs a fresh session, sets the cookie on w, and returns the token so
// the login response can hand it to non-browser clients.
func (a *AuthManager) Mint(w http.ResponseWriter) (string, error) {
	now := time.Now()
	claims := AdminClaims{
		Role:  string(model.RoleAdmin),
		Email: a.identity,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   a.identity,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
	if err != nil {
		return "", err
	}
	http.SetCookie(w, a.sessionCookie(signed, int(a.ttl.Seconds())))
	return signed, nil
}

// Clear expires the session cookie.
func (a *AuthManager) Clear(w http.ResponseWriter) {
	http.SetCookie(w, a.sessionCookie("", -1))
}

// ParseFromRequest extracts the session from the Authorization header or the
// cookie, in that order, and validates it.
func (a *AuthManager) ParseFromRequest(r *http.Request) (*AdminClaims, error) {
	tok := ""
	if hdr := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(hdr), "bearer ") {
		tok = strings.TrimSpace(hdr[7:])
	} else if c, err := r.Cookie(sessionCookieName); err == nil {
		tok = c.Value
	}
	if tok == "" {
		return nil, errNoSession
	}

	claims := &AdminClaims{}
	parsed, err := jwt.ParseWithClaims(tok, claims,
		func(*jwt.Token) (any, error) { return a.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil || !parsed.Valid {
		return nil, errNoSession
	}
	return claims, nil
}

func (a *AuthManager) sessionCookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     sessionCookieName,
		Value:    value,
		Path:     "/",
		Domain:   a.cookieDomain,
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   a.secure,
		SameSite: http.SameSiteStrictMode,
	}
}
