package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"sneakerfav/internal/auth"
	"sneakerfav/internal/errors"
	"sneakerfav/internal/view"
)

// Catalog is the subset of the catalog client the handlers need.
type Catalog interface {
	ListRecent(ctx context.Context, limit int) (json.RawMessage, error)
	Search(ctx context.Context, name string, limit int, releasedAfter string) (json.RawMessage, error)
	GetByID(ctx context.Context, sneakerID string) (json.RawMessage, error)
}

// StatusResponse is the body of the asynchronous favorite endpoints.
type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Code    string `json:"code,omitempty"`
}

const genericFailure = "Something went wrong. Please try again later."

// render fills the per-request parts of page and renders it.
func render(c echo.Context, sessions *auth.SessionManager, code int, name string, page *view.Page) error {
	if u, ok := sessions.Current(c); ok {
		page.Viewer = &view.Viewer{ID: u.ID, Username: u.Username}
	}
	if token, ok := c.Get(middleware.DefaultCSRFConfig.ContextKey).(string); ok {
		page.CSRFToken = token
	}
	page.Notices = view.TakeFlashes(c)
	return c.Render(code, name, page)
}

func redirect(c echo.Context, to string) error {
	return c.Redirect(http.StatusFound, to)
}

// wantsJSON reports whether the caller is a script expecting a JSON body.
func wantsJSON(c echo.Context) bool {
	req := c.Request()
	if strings.EqualFold(req.Header.Get(echo.HeaderXRequestedWith), "XMLHttpRequest") {
		return true
	}
	return strings.Contains(req.Header.Get(echo.HeaderAccept), echo.MIMEApplicationJSON)
}

// RequireUser rejects anonymous requests. Page requests are redirected to
// the login page with message; script requests get a 401 status body.
func RequireUser(sessions *auth.SessionManager, message string) echo.MiddlewareFunc {
	return requireUser(sessions, message, false)
}

// RequireUserJSON is RequireUser for endpoints that always answer JSON.
func RequireUserJSON(sessions *auth.SessionManager, message string) echo.MiddlewareFunc {
	return requireUser(sessions, message, true)
}

func requireUser(sessions *auth.SessionManager, message string, alwaysJSON bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := sessions.Current(c); ok {
				return next(c)
			}
			if alwaysJSON || wantsJSON(c) {
				httpErr := errors.MapErrorToHTTP(errors.ErrNotAuthenticated)
				return c.JSON(httpErr.StatusCode, StatusResponse{Status: "error", Message: message, Code: httpErr.Code})
			}
			view.Flash(c, view.Danger, message)
			return redirect(c, "/login")
		}
	}
}

// currentUser returns the session user. Routes behind RequireUser always have one.
func currentUser(c echo.Context, sessions *auth.SessionManager) auth.UserRef {
	u, _ := sessions.Current(c)
	return u
}
