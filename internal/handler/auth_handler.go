package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"sneakerfav/internal/auth"
	"sneakerfav/internal/errors"
	"sneakerfav/internal/form"
	"sneakerfav/internal/service"
	"sneakerfav/internal/view"
)

// AuthHandler handles login, logout and registration.
type AuthHandler struct {
	accounts service.AccountService
	sessions *auth.SessionManager
	log      logrus.FieldLogger
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(accounts service.AccountService, sessions *auth.SessionManager, log logrus.FieldLogger) *AuthHandler {
	return &AuthHandler{accounts: accounts, sessions: sessions, log: log}
}

// Login shows the login form and, on POST, starts a session.
func (h *AuthHandler) Login(c echo.Context) error {
	page := &view.Page{Title: "Login", Form: form.Login{}}
	if c.Request().Method != http.MethodPost {
		return render(c, h.sessions, http.StatusOK, view.Login, page)
	}

	var in form.Login
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form body")
	}
	if err := c.Validate(&in); err != nil {
		page.Form = form.Login{Email: in.Email}
		page.Errors = form.AsFieldErrors(err)
		return render(c, h.sessions, http.StatusOK, view.Login, page)
	}
	page.Form = form.Login{Email: in.Email}

	user, err := h.accounts.Authenticate(c.Request().Context(), in.Email, in.Password)
	if err != nil {
		if errors.Is(err, errors.ErrUnauthorized) {
			view.Flash(c, view.Danger, "Login Unsuccessful. Please check email and password")
		} else {
			h.log.WithError(err).Error("login failed")
			view.Flash(c, view.Danger, genericFailure)
		}
		return render(c, h.sessions, http.StatusOK, view.Login, page)
	}

	if err := h.sessions.Start(c, user); err != nil {
		h.log.WithError(err).WithField("user_id", user.ID).Error("start session")
		view.Flash(c, view.Danger, genericFailure)
		return render(c, h.sessions, http.StatusOK, view.Login, page)
	}

	h.log.WithField("user_id", user.ID).Info("user logged in")
	view.Flash(c, view.Success, "You have been logged in!")
	return redirect(c, "/")
}

// Logout ends the session, whatever its state.
func (h *AuthHandler) Logout(c echo.Context) error {
	h.sessions.End(c)
	view.Flash(c, view.Success, "You have been logged out!")
	return redirect(c, "/")
}

// Register shows the sign-up form and, on POST, creates the account.
func (h *AuthHandler) Register(c echo.Context) error {
	page := &view.Page{Title: "Register", Form: form.Registration{}}
	if c.Request().Method != http.MethodPost {
		return render(c, h.sessions, http.StatusOK, view.Register, page)
	}

	var in form.Registration
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form body")
	}
	verr := c.Validate(&in)
	// Never echo passwords back into the page.
	page.Form = form.Registration{Username: in.Username, Email: in.Email, FullName: in.FullName}
	if verr != nil {
		page.Errors = form.AsFieldErrors(verr)
		return render(c, h.sessions, http.StatusOK, view.Register, page)
	}

	user, err := h.accounts.Register(c.Request().Context(), in.Username, in.Email, in.FullName, in.Password)
	if err != nil {
		if errors.Is(err, errors.ErrConflict) {
			view.Flash(c, view.Danger, "Email or username is already registered.")
		} else {
			h.log.WithError(err).Error("registration failed")
			view.Flash(c, view.Danger, genericFailure)
		}
		return render(c, h.sessions, http.StatusOK, view.Register, page)
	}

	h.log.WithField("user_id", user.ID).Info("user registered")
	view.Flash(c, view.Success, "Your account has been created! You are now able to log in")
	return redirect(c, "/login")
}
