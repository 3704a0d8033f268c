package repository

import (
	"context"

	"gorm.io/gorm"

	"sneakerfav/internal/model"
)

// FavoriteRepository defines favorite persistence operations.
type FavoriteRepository interface {
	Create(ctx context.Context, favorite *model.Favorite) error
	Find(ctx context.Context, userID uint, sneakerID string) (*model.Favorite, error)
	Delete(ctx context.Context, favorite *model.Favorite) error
	ListByUser(ctx context.Context, userID uint) ([]model.Favorite, error)
}

type favoriteRepository struct {
	db *gorm.DB
}

// NewFavoriteRepository creates a new favorite repository.
func NewFavoriteRepository(db *gorm.DB) FavoriteRepository {
	return &favoriteRepository{db: db}
}

// Create creates a new favorite.
func (r *favoriteRepository) Create(ctx context.Context, favorite *model.Favorite) error {
	return r.db.WithContext(ctx).Create(favorite).Error
}

// Find finds the favorite a user holds for a sneaker.
func (r *favoriteRepository) Find(ctx context.Context, userID uint, sneakerID string) (*model.Favorite, error) {
	var favorite model.Favorite
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND sneaker_id = ?", userID, sneakerID).
		First(&favorite).Error; err != nil {
		return nil, err
	}
	return &favorite, nil
}

// Delete removes a favorite by primary key.
func (r *favoriteRepository) Delete(ctx context.Context, favorite *model.Favorite) error {
	return r.db.WithContext(ctx).Delete(&model.Favorite{}, favorite.ID).Error
}

// ListByUser lists a user's favorites in the order they were added.
func (r *favoriteRepository) ListByUser(ctx context.Context, userID uint) ([]model.Favorite, error) {
	var favorites []model.Favorite
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&favorites).Error; err != nil {
		return nil, err
	}
	return favorites, nil
}
