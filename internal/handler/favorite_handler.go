package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"sneakerfav/internal/auth"
	"sneakerfav/internal/catalog"
	"sneakerfav/internal/errors"
	"sneakerfav/internal/service"
	"sneakerfav/internal/view"
)

// FavoriteHandler handles the favorites page and its mutations.
type FavoriteHandler struct {
	favorites service.FavoriteService
	accounts  service.AccountService
	catalog   Catalog
	sessions  *auth.SessionManager
	log       logrus.FieldLogger
}

// NewFavoriteHandler creates a new favorite handler.
func NewFavoriteHandler(favorites service.FavoriteService, accounts service.AccountService, catalog Catalog, sessions *auth.SessionManager, log logrus.FieldLogger) *FavoriteHandler {
	return &FavoriteHandler{favorites: favorites, accounts: accounts, catalog: catalog, sessions: sessions, log: log}
}

// owner returns the session user after checking the account still exists.
// A session that outlived its account is ended.
func (h *FavoriteHandler) owner(c echo.Context) (auth.UserRef, error) {
	me := currentUser(c, h.sessions)
	if _, err := h.accounts.GetProfile(c.Request().Context(), me.ID); err != nil {
		if errors.Is(err, errors.ErrUserNotFound) {
			h.sessions.End(c)
		}
		return me, err
	}
	return me, nil
}

// staleJSON answers a favorite call whose account is gone or could not be loaded.
func (h *FavoriteHandler) staleJSON(c echo.Context, err error, message string) error {
	if errors.Is(err, errors.ErrUserNotFound) {
		err = errors.ErrNotAuthenticated
	} else {
		h.log.WithError(err).Error("load favorite owner failed")
		message = genericFailure
	}
	httpErr := errors.MapErrorToHTTP(err)
	return c.JSON(httpErr.StatusCode, StatusResponse{Status: "error", Message: message, Code: httpErr.Code})
}

// AddFavorite godoc
// @Summary Add a sneaker to the current user's favorites
// @Tags favorites
// @Produce json
// @Param sneaker_id path string true "Catalog sneaker ID"
// @Success 200 {object} StatusResponse "status is success, or info when already present"
// @Failure 401 {object} StatusResponse
// @Failure 500 {object} StatusResponse
// @Router /add_to_favorites/{sneaker_id} [post]
func (h *FavoriteHandler) AddFavorite(c echo.Context) error {
	me, err := h.owner(c)
	if err != nil {
		return h.staleJSON(c, err, "You must be logged in to add favorites.")
	}
	sneakerID := c.Param("sneaker_id")

	var created bool
	created, err = h.favorites.Add(c.Request().Context(), me.ID, sneakerID)
	if err != nil {
		h.log.WithError(err).WithFields(logrus.Fields{"user_id": me.ID, "sneaker_id": sneakerID}).Error("add favorite failed")
		httpErr := errors.MapErrorToHTTP(err)
		return c.JSON(httpErr.StatusCode, StatusResponse{
			Status:  "error",
			Message: "An error occurred while adding the sneaker to favorites.",
			Code:    httpErr.Code,
		})
	}
	if !created {
		return c.JSON(http.StatusOK, StatusResponse{Status: "info", Message: "Sneaker is already in your favorites."})
	}
	return c.JSON(http.StatusOK, StatusResponse{Status: "success", Message: "Sneaker added to favorites."})
}

// Favorites resolves each saved sneaker id against the catalog, one request
// per favorite. Failed lookups are listed by id and reported once.
func (h *FavoriteHandler) Favorites(c echo.Context) error {
	ctx := c.Request().Context()
	page := &view.Page{Title: "Favorites"}

	me, err := h.owner(c)
	switch {
	case err == nil:
	case errors.Is(err, errors.ErrUserNotFound):
		view.Flash(c, view.Danger, "User not found.")
		return redirect(c, "/login")
	default:
		h.log.WithError(err).WithField("user_id", me.ID).Error("load favorite owner failed")
		view.Flash(c, view.Danger, genericFailure)
		return render(c, h.sessions, http.StatusOK, view.Favorites, page)
	}

	ids, err := h.favorites.List(ctx, me.ID)
	if err != nil {
		h.log.WithError(err).WithField("user_id", me.ID).Error("list favorites failed")
		view.Flash(c, view.Danger, genericFailure)
		return render(c, h.sessions, http.StatusOK, view.Favorites, page)
	}

	for _, id := range ids {
		payload, err := h.catalog.GetByID(ctx, id)
		if err != nil {
			page.Unresolved = append(page.Unresolved, id)
			h.log.WithError(err).WithField("sneaker_id", id).Warn("catalog lookup failed")
			continue
		}
		page.Sneakers = append(page.Sneakers, catalog.Sneakers(payload)...)
	}
	if len(page.Unresolved) > 0 {
		view.Flash(c, view.Danger, "Failed to fetch sneaker information. Please try again later.")
	}

	return render(c, h.sessions, http.StatusOK, view.Favorites, page)
}

// DeleteFavorite godoc
// @Summary Remove a sneaker from the current user's favorites
// @Description Answers JSON when requested, otherwise redirects to /favorites with a notice.
// @Tags favorites
// @Produce json
// @Param sneaker_id path string true "Catalog sneaker ID"
// @Success 200 {object} StatusResponse "status is success, or info when it was not a favorite"
// @Failure 401 {object} StatusResponse
// @Failure 500 {object} StatusResponse
// @Router /delete_favorite/{sneaker_id} [post]
func (h *FavoriteHandler) DeleteFavorite(c echo.Context) error {
	me, err := h.owner(c)
	if err != nil {
		if wantsJSON(c) {
			return h.staleJSON(c, err, "You must be logged in to delete favorites.")
		}
		if errors.Is(err, errors.ErrUserNotFound) {
			view.Flash(c, view.Danger, "User not found.")
			return redirect(c, "/login")
		}
		h.log.WithError(err).WithField("user_id", me.ID).Error("load favorite owner failed")
		view.Flash(c, view.Danger, genericFailure)
		return redirect(c, "/favorites")
	}
	sneakerID := c.Param("sneaker_id")

	var removed bool
	removed, err = h.favorites.Remove(c.Request().Context(), me.ID, sneakerID)

	var resp StatusResponse
	code := http.StatusOK
	switch {
	case err != nil:
		h.log.WithError(err).WithFields(logrus.Fields{"user_id": me.ID, "sneaker_id": sneakerID}).Error("remove favorite failed")
		httpErr := errors.MapErrorToHTTP(err)
		code = httpErr.StatusCode
		resp = StatusResponse{Status: "error", Message: "An error occurred while removing the sneaker from favorites.", Code: httpErr.Code}
	case removed:
		resp = StatusResponse{Status: "success", Message: "Sneaker removed from favorites."}
	default:
		resp = StatusResponse{Status: "info", Message: "Sneaker is not in your favorites."}
	}

	if wantsJSON(c) {
		return c.JSON(code, resp)
	}

	category := view.Danger
	switch resp.Status {
	case "success":
		category = view.Success
	case "info":
		category = view.Info
	}
	view.Flash(c, category, resp.Message)
	return redirect(c, "/favorites")
}
