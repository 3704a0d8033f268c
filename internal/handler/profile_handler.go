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

// ProfileHandler handles the logged-in user's own account pages.
type ProfileHandler struct {
	accounts service.AccountService
	sessions *auth.SessionManager
	log      logrus.FieldLogger
}

// NewProfileHandler creates a new profile handler.
func NewProfileHandler(accounts service.AccountService, sessions *auth.SessionManager, log logrus.FieldLogger) *ProfileHandler {
	return &ProfileHandler{accounts: accounts, sessions: sessions, log: log}
}

// Profile shows the current user's record.
func (h *ProfileHandler) Profile(c echo.Context) error {
	me := currentUser(c, h.sessions)

	user, err := h.accounts.GetProfile(c.Request().Context(), me.ID)
	if err != nil {
		return h.missingUser(c, err)
	}

	return render(c, h.sessions, http.StatusOK, view.Profile, &view.Page{Title: "Profile", Profile: user})
}

// EditProfile prefills the form on GET and overwrites the profile on a valid POST.
func (h *ProfileHandler) EditProfile(c echo.Context) error {
	me := currentUser(c, h.sessions)
	ctx := c.Request().Context()
	page := &view.Page{Title: "Edit Profile"}

	if c.Request().Method != http.MethodPost {
		user, err := h.accounts.GetProfile(ctx, me.ID)
		if err != nil {
			return h.missingUser(c, err)
		}
		page.Form = form.EditProfile{Username: user.Username, Email: user.Email, FullName: user.FullName}
		return render(c, h.sessions, http.StatusOK, view.EditProfile, page)
	}

	var in form.EditProfile
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form body")
	}
	if err := c.Validate(&in); err != nil {
		page.Form = in
		page.Errors = form.AsFieldErrors(err)
		return render(c, h.sessions, http.StatusOK, view.EditProfile, page)
	}
	page.Form = in

	user, err := h.accounts.UpdateProfile(ctx, me.ID, in.Username, in.Email, in.FullName)
	switch {
	case err == nil:
	case errors.Is(err, errors.ErrConflict):
		view.Flash(c, view.Danger, "Email or username is already registered.")
		return render(c, h.sessions, http.StatusOK, view.EditProfile, page)
	case errors.Is(err, errors.ErrUserNotFound):
		return h.missingUser(c, err)
	default:
		h.log.WithError(err).WithField("user_id", me.ID).Error("update profile failed")
		view.Flash(c, view.Danger, genericFailure)
		return render(c, h.sessions, http.StatusOK, view.EditProfile, page)
	}

	// Reissue the session so the navigation shows the new username.
	if user.Username != me.Username {
		h.sessions.End(c)
		if err := h.sessions.Start(c, user); err != nil {
			h.log.WithError(err).WithField("user_id", user.ID).Error("restart session")
		}
	}

	view.Flash(c, view.Success, "Your profile has been updated!")
	return redirect(c, "/profile")
}

// DeleteAccount removes the account after the password is entered again.
func (h *ProfileHandler) DeleteAccount(c echo.Context) error {
	me := currentUser(c, h.sessions)
	page := &view.Page{Title: "Delete Account", Form: form.DeleteAccount{}}
	if c.Request().Method != http.MethodPost {
		return render(c, h.sessions, http.StatusOK, view.DeleteAccount, page)
	}

	var in form.DeleteAccount
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form body")
	}
	if err := c.Validate(&in); err != nil {
		page.Errors = form.AsFieldErrors(err)
		return render(c, h.sessions, http.StatusOK, view.DeleteAccount, page)
	}

	err := h.accounts.DeleteAccount(c.Request().Context(), me.ID, in.Password)
	switch {
	case err == nil:
	case errors.Is(err, errors.ErrUnauthorized):
		view.Flash(c, view.Danger, "Password is incorrect.")
		return render(c, h.sessions, http.StatusOK, view.DeleteAccount, page)
	case errors.Is(err, errors.ErrUserNotFound):
		return h.missingUser(c, err)
	default:
		h.log.WithError(err).WithField("user_id", me.ID).Error("delete account failed")
		view.Flash(c, view.Danger, "An error occurred while deleting your account. Please try again later.")
		return render(c, h.sessions, http.StatusOK, view.DeleteAccount, page)
	}

	h.log.WithField("user_id", me.ID).Info("account deleted")
	h.sessions.End(c)
	view.Flash(c, view.Success, "Your account has been deleted!")
	return redirect(c, "/")
}

// missingUser handles a session that points at no user, or a storage failure while loading it.
func (h *ProfileHandler) missingUser(c echo.Context, err error) error {
	if errors.Is(err, errors.ErrUserNotFound) {
		view.Flash(c, view.Danger, "User not found.")
	} else {
		h.log.WithError(err).Error("load profile failed")
		view.Flash(c, view.Danger, genericFailure)
	}
	return redirect(c, "/")
}
