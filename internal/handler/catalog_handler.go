package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"sneakerfav/internal/auth"
	"sneakerfav/internal/catalog"
	"sneakerfav/internal/form"
	"sneakerfav/internal/view"
)

// CatalogHandler serves the home listing and search pages.
type CatalogHandler struct {
	catalog  Catalog
	sessions *auth.SessionManager
	log      logrus.FieldLogger
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(catalog Catalog, sessions *auth.SessionManager, log logrus.FieldLogger) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, sessions: sessions, log: log}
}

// Home lists recent catalog entries. A catalog failure still renders the page.
func (h *CatalogHandler) Home(c echo.Context) error {
	page := &view.Page{Form: form.Search{}}

	payload, err := h.catalog.ListRecent(c.Request().Context(), catalog.DefaultLimit)
	if err != nil {
		h.log.WithError(err).Warn("catalog listing failed")
		view.Flash(c, view.Error, err.Error())
	} else {
		page.Sneakers = catalog.Sneakers(payload)
	}

	return render(c, h.sessions, http.StatusOK, view.Home, page)
}

// Search queries the catalog by name on POST and shows the empty form on GET.
func (h *CatalogHandler) Search(c echo.Context) error {
	page := &view.Page{Title: "Search"}
	if c.Request().Method != http.MethodPost {
		page.Form = form.Search{}
		return render(c, h.sessions, http.StatusOK, view.Search, page)
	}

	var in form.Search
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form body")
	}
	if err := c.Validate(&in); err != nil {
		page.Form = in
		page.Errors = form.AsFieldErrors(err)
		return render(c, h.sessions, http.StatusOK, view.Search, page)
	}
	page.Form = in
	page.AttemptedSearch = true

	payload, err := h.catalog.Search(c.Request().Context(), in.SearchQuery, catalog.DefaultLimit, catalog.DefaultReleaseFloor)
	if err != nil {
		h.log.WithError(err).WithField("query", in.SearchQuery).Warn("catalog search failed")
		view.Flash(c, view.Error, err.Error())
		return render(c, h.sessions, http.StatusOK, view.Search, page)
	}

	if catalog.Count(payload) == 0 {
		view.Flash(c, view.Error, "No search results found.")
		return render(c, h.sessions, http.StatusOK, view.Search, page)
	}
	page.Sneakers = catalog.Sneakers(payload)
	return render(c, h.sessions, http.StatusOK, view.Search, page)
}
