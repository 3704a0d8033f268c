package view

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"
)

// Notice categories, matching the alert styles of the templates.
const (
	Success = "success"
	Info    = "info"
	Danger  = "danger"
	Error   = "error"
)

const (
	flashCookie = "flash"
	flashKey    = "view.flash"
)

// Notice is a one-shot message shown on the next rendered page.
type Notice struct {
	Category string `json:"c"`
	Message  string `json:"m"`
}

// Flash queues a notice. It is shown by the page rendered for this request,
// or by the next page if this request redirects.
func Flash(c echo.Context, category, message string) {
	pending := append(load(c), Notice{Category: category, Message: message})
	c.Set(flashKey, pending)

	raw, err := json.Marshal(pending)
	if err != nil {
		return
	}
	c.SetCookie(&http.Cookie{
		Name:     flashCookie,
		Value:    base64.RawURLEncoding.EncodeToString(raw),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// TakeFlashes returns every queued notice and clears the queue.
func TakeFlashes(c echo.Context) []Notice {
	notices := load(c)
	c.Set(flashKey, []Notice{})
	if _, err := c.Cookie(flashCookie); err == nil || len(notices) > 0 {
		c.SetCookie(&http.Cookie{Name: flashCookie, Value: "", Path: "/", MaxAge: -1, HttpOnly: true})
	}
	return notices
}

// load returns the notices for this request, reading the incoming cookie once.
func load(c echo.Context) []Notice {
	if pending, ok := c.Get(flashKey).([]Notice); ok {
		return pending
	}

	var notices []Notice
	if cookie, err := c.Cookie(flashCookie); err == nil && cookie.Value != "" {
		if raw, err := base64.RawURLEncoding.DecodeString(cookie.Value); err == nil {
			_ = json.Unmarshal(raw, &notices)
		}
	}
	c.Set(flashKey, notices)
	return notices
}
