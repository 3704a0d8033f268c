package main

import (
	"context"
	"net/http"
	"strings"
	"time"

	_ "sneakerfav/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"sneakerfav/internal/auth"
	"sneakerfav/internal/cache"
	"sneakerfav/internal/catalog"
	"sneakerfav/internal/config"
	"sneakerfav/internal/db"
	"sneakerfav/internal/handler"
	"sneakerfav/internal/logging"
	"sneakerfav/internal/model"
	"sneakerfav/internal/repository"
	"sneakerfav/internal/router"
	"sneakerfav/internal/service"
	"sneakerfav/internal/view"
)

// @title Sneaker Favorites API
// @version 1.0
// @description JSON endpoints used by the sneaker favorites pages.
// @host localhost:8080
// @BasePath /
// @schemes http
// @securityDefinitions.apikey SessionCookie
// @in cookie
// @name session
func main() {
	cfg := config.Load()
	log := logging.New(cfg.LogLevel)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.RequestID())

	gormDB, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		log.WithError(err).Fatal("database init")
	}
	log.WithField("driver", db.Driver(cfg.DatabaseURL)).Info("connected to database")

	if cfg.ResetDB {
		log.Warn("RESET_DB=true detected, dropping all tables")
		// Favorites reference users, so they go first.
		for _, table := range []interface{}{&model.Favorite{}, &model.User{}} {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				log.WithError(err).Warn("failed to drop table (may not exist)")
			}
		}
	}

	if err := gormDB.AutoMigrate(&model.User{}, &model.Favorite{}); err != nil {
		log.WithError(err).Fatal("auto-migrate")
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer cacheClient.Close()
	pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	if err := cacheClient.Ping(pingCtx); err != nil {
		log.WithError(err).Warn("redis unreachable, logout will only clear the cookie")
	}
	cancel()

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	favoriteRepo := repository.NewFavoriteRepository(gormDB)

	// Initialize services
	accountService := service.NewAccountService(userRepo)
	favoriteService := service.NewFavoriteService(favoriteRepo)

	// Initialize session components
	jwtService := auth.NewJWTService(cfg.SecretKey, cfg.SessionTTL)
	tokenStore := auth.NewTokenStore(cacheClient)
	sessions := auth.NewSessionManager(jwtService, tokenStore, cfg.CookieSecure)

	catalogClient := catalog.New(cfg.CatalogBaseURL, cfg.CatalogHost, cfg.RapidAPIKey, http.DefaultClient)
	if cfg.RapidAPIKey == "" {
		log.Warn("RAPIDAPI_KEY is empty, catalog pages will show an error")
	}

	renderer, err := view.NewRenderer()
	if err != nil {
		log.WithError(err).Fatal("parse templates")
	}
	e.Renderer = renderer

	// Initialize handlers
	catalogHandler := handler.NewCatalogHandler(catalogClient, sessions, log)
	authHandler := handler.NewAuthHandler(accountService, sessions, log)
	profileHandler := handler.NewProfileHandler(accountService, sessions, log)
	favoriteHandler := handler.NewFavoriteHandler(favoriteService, accountService, catalogClient, sessions, log)

	router.Register(
		e,
		cfg,
		sessions,
		catalogHandler,
		authHandler,
		profileHandler,
		favoriteHandler,
	)

	swaggerURL := "http://localhost:" + cfg.ServerPort + "/swagger/index.html"
	if cfg.SwaggerHost != "" {
		host := cfg.SwaggerHost
		if !strings.HasPrefix(host, "http://") && !strings.HasPrefix(host, "https://") {
			host = "http://" + host
		}
		swaggerURL = host + "/swagger/index.html"
	}
	log.Infof("Swagger documentation available at: %s", swaggerURL)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.WithError(err).Fatal("server start")
	}
}
