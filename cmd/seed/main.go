package main

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"sneakerfav/internal/config"
	"sneakerfav/internal/db"
	"sneakerfav/internal/errors"
	"sneakerfav/internal/logging"
	"sneakerfav/internal/model"
	"sneakerfav/internal/repository"
	"sneakerfav/internal/service"
)

// seedUser is one sample account together with the sneakers it favorites.
type seedUser struct {
	Username string
	Email    string
	FullName string
	Password string
	Sneakers []string
}

var sampleUsers = []seedUser{
	{Username: "user1", Email: "user1@example.com", FullName: "User One", Password: "password1", Sneakers: []string{"sneaker1"}},
	{Username: "user2", Email: "user2@example.com", FullName: "User Two", Password: "password2", Sneakers: []string{"sneaker2"}},
}

func main() {
	cfg := config.Load()
	log := logging.New(cfg.LogLevel)
	log.Info("Starting seed script...")

	gormDB, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to database")
	}

	if err := gormDB.AutoMigrate(&model.User{}, &model.Favorite{}); err != nil {
		log.WithError(err).Fatal("Failed to run migrations")
	}

	userRepo := repository.NewUserRepository(gormDB)
	accounts := service.NewAccountService(userRepo)
	favorites := service.NewFavoriteService(repository.NewFavoriteRepository(gormDB))

	created, skipped, added, err := seed(context.Background(), log, accounts, userRepo, favorites, sampleUsers)
	if err != nil {
		log.WithError(err).Fatal("Failed to seed")
	}

	log.WithFields(logrus.Fields{
		"users_created":   created,
		"users_skipped":   skipped,
		"favorites_added": added,
	}).Info("Seed completed successfully!")
}

// seed registers each sample user unless the username or email is taken,
// then adds its favorites. Running it twice changes nothing.
func seed(
	ctx context.Context,
	log logrus.FieldLogger,
	accounts service.AccountService,
	users repository.UserRepository,
	favorites service.FavoriteService,
	samples []seedUser,
) (created, skipped, added int, err error) {
	for _, s := range samples {
		user, err := accounts.Register(ctx, s.Username, s.Email, s.FullName, s.Password)
		switch {
		case err == nil:
			created++
		case errors.Is(err, errors.ErrConflict):
			skipped++
			user, err = users.FindByEmail(ctx, s.Email)
			if stderrors.Is(err, gorm.ErrRecordNotFound) {
				log.WithField("username", s.Username).Warn("user exists under another email, skipping favorites")
				continue
			}
			if err != nil {
				return created, skipped, added, fmt.Errorf("look up %s: %w", s.Email, err)
			}
		default:
			return created, skipped, added, fmt.Errorf("register %s: %w", s.Username, err)
		}

		for _, sneakerID := range s.Sneakers {
			ok, err := favorites.Add(ctx, user.ID, sneakerID)
			if err != nil {
				return created, skipped, added, fmt.Errorf("favorite %s for %s: %w", sneakerID, s.Username, err)
			}
			if ok {
				added++
			}
		}
	}
	return created, skipped, added, nil
}
