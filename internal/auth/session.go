package auth

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"sneakerfav/internal/model"
)

const (
	// CookieName holds the signed session token.
	CookieName = "session"
	// ContextKey is where the parsed token is stored on echo.Context.
	ContextKey = "session"
)

// UserRef is the authenticated user as carried by the session.
type UserRef struct {
	ID       uint
	Username string
}

// SessionManager binds the logged-in user to a signed cookie.
// A request is Authenticated only while it carries a valid, unrevoked token.
type SessionManager struct {
	tokens       *JWTService
	store        RevocationStore
	secureCookie bool
}

// NewSessionManager creates a session manager.
func NewSessionManager(tokens *JWTService, store RevocationStore, secureCookie bool) *SessionManager {
	return &SessionManager{tokens: tokens, store: store, secureCookie: secureCookie}
}

// Middleware parses the session cookie on every request. Missing or invalid
// cookies leave the request anonymous instead of failing it.
func (m *SessionManager) Middleware() echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		TokenLookup: "cookie:" + CookieName,
		ContextKey:  ContextKey,
		ParseTokenFunc: func(c echo.Context, raw string) (interface{}, error) {
			claims, err := m.tokens.Validate(raw)
			if err != nil {
				return nil, err
			}
			return &jwt.Token{Claims: claims, Valid: true}, nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return nil
		},
		ContinueOnIgnoredError: true,
	})
}

// Start binds user to the session of the response.
func (m *SessionManager) Start(c echo.Context, user *model.User) error {
	token, claims, err := m.tokens.Issue(user.ID, user.Username)
	if err != nil {
		return err
	}

	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   m.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	c.Set(ContextKey, &jwt.Token{Claims: claims, Valid: true})
	return nil
}

// End clears the session unconditionally.
func (m *SessionManager) End(c echo.Context) {
	if claims := m.claims(c); claims != nil && claims.ExpiresAt != nil {
		_ = m.store.Revoke(c.Request().Context(), claims.ID, time.Until(claims.ExpiresAt.Time))
	}

	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	c.Set(ContextKey, nil)
}

// Current returns the authenticated user, if any.
func (m *SessionManager) Current(c echo.Context) (UserRef, bool) {
	claims := m.claims(c)
	if claims == nil || claims.UserID == 0 {
		return UserRef{}, false
	}
	if claims.ID != "" && m.store.IsRevoked(c.Request().Context(), claims.ID) {
		return UserRef{}, false
	}
	return UserRef{ID: claims.UserID, Username: claims.Username}, true
}

func (m *SessionManager) claims(c echo.Context) *Claims {
	token, ok := c.Get(ContextKey).(*jwt.Token)
	if !ok || token == nil || !token.Valid {
		return nil
	}
	claims, _ := token.Claims.(*Claims)
	return claims
}
