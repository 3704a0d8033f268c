package router

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"sneakerfav/internal/auth"
	"sneakerfav/internal/config"
	"sneakerfav/internal/form"
	"sneakerfav/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	sessions *auth.SessionManager,
	catalogHandler *handler.CatalogHandler,
	authHandler *handler.AuthHandler,
	profileHandler *handler.ProfileHandler,
	favoriteHandler *handler.FavoriteHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.Validator = form.NewValidator()

	if cfg.CSRFEnabled {
		e.Use(middleware.CSRFWithConfig(middleware.CSRFConfig{
			TokenLookup:    "header:X-CSRF-Token,form:csrf_token",
			CookiePath:     "/",
			CookieHTTPOnly: true,
			CookieSecure:   cfg.CookieSecure,
			CookieSameSite: http.SameSiteLaxMode,
			Skipper: func(c echo.Context) bool {
				return c.Path() == "/healthz" || c.Path() == "/swagger/*"
			},
		}))
	}

	// Every route sees the session; only the groups below require one.
	e.Use(sessions.Middleware())

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Public pages
	e.GET("/", catalogHandler.Home)
	e.Match(formMethods, "/search", catalogHandler.Search)
	e.Match(formMethods, "/login", authHandler.Login)
	e.GET("/logout", authHandler.Logout)
	e.Match(formMethods, "/register", authHandler.Register)

	// Account pages
	e.GET("/profile", profileHandler.Profile,
		handler.RequireUser(sessions, "Please log in to view this page."))
	account := e.Group("", handler.RequireUser(sessions, "Please log in to access this page."))
	account.Match(formMethods, "/edit-profile", profileHandler.EditProfile)
	account.Match(formMethods, "/delete-account", profileHandler.DeleteAccount)

	// Favorites
	e.POST("/add_to_favorites/:sneaker_id", favoriteHandler.AddFavorite,
		handler.RequireUserJSON(sessions, "You must be logged in to add favorites."))
	e.Match(formMethods, "/favorites", favoriteHandler.Favorites,
		handler.RequireUser(sessions, "You must be logged in to access your favorites."))
	e.POST("/delete_favorite/:sneaker_id", favoriteHandler.DeleteFavorite,
		handler.RequireUser(sessions, "You must be logged in to delete favorites."))
}

var formMethods = []string{http.MethodGet, http.MethodPost}
