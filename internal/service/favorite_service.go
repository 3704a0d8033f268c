package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"sneakerfav/internal/model"
	"sneakerfav/internal/repository"
)

// FavoriteService manages a user's saved sneakers. Duplicate adds and
// removals of missing favorites are reported through the boolean result,
// not as errors.
type FavoriteService interface {
	Add(ctx context.Context, userID uint, sneakerID string) (created bool, err error)
	Remove(ctx context.Context, userID uint, sneakerID string) (removed bool, err error)
	List(ctx context.Context, userID uint) ([]string, error)
}

type favoriteService struct {
	favorites repository.FavoriteRepository
}

// NewFavoriteService creates a new favorite service.
func NewFavoriteService(favorites repository.FavoriteRepository) FavoriteService {
	return &favoriteService{favorites: favorites}
}

func (s *favoriteService) Add(ctx context.Context, userID uint, sneakerID string) (bool, error) {
	existing, err := s.favorites.Find(ctx, userID, sneakerID)
	if err == nil && existing != nil {
		return false, nil
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, fmt.Errorf("check favorite: %w", err)
	}

	favorite := &model.Favorite{UserID: &userID, SneakerID: sneakerID}
	if err := s.favorites.Create(ctx, favorite); err != nil {
		return false, fmt.Errorf("create favorite: %w", err)
	}
	return true, nil
}

func (s *favoriteService) Remove(ctx context.Context, userID uint, sneakerID string) (bool, error) {
	favorite, err := s.favorites.Find(ctx, userID, sneakerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("find favorite: %w", err)
	}

	if err := s.favorites.Delete(ctx, favorite); err != nil {
		return false, fmt.Errorf("delete favorite: %w", err)
	}
	return true, nil
}

// List returns the user's sneaker ids in the order they were favorited.
func (s *favoriteService) List(ctx context.Context, userID uint) ([]string, error) {
	favorites, err := s.favorites.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}

	ids := make([]string, 0, len(favorites))
	for _, f := range favorites {
		ids = append(ids, f.SneakerID)
	}
	return ids, nil
}
