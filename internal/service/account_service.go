package service

import (
	"context"
	stderrors "errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"sneakerfav/internal/errors"
	"sneakerfav/internal/model"
	"sneakerfav/internal/repository"
)

const bcryptCost = 10

// AccountService handles registration, login and profile operations.
type AccountService interface {
	Register(ctx context.Context, username, email, fullName, password string) (*model.User, error)
	Authenticate(ctx context.Context, email, password string) (*model.User, error)
	GetProfile(ctx context.Context, id uint) (*model.User, error)
	UpdateProfile(ctx context.Context, id uint, username, email, fullName string) (*model.User, error)
	DeleteAccount(ctx context.Context, id uint, password string) error
}

type accountService struct {
	users repository.UserRepository
}

// NewAccountService creates a new account service.
func NewAccountService(users repository.UserRepository) AccountService {
	return &accountService{users: users}
}

// Register creates a new user with a bcrypt password hash.
func (s *accountService) Register(ctx context.Context, username, email, fullName, password string) (*model.User, error) {
	if err := s.checkAvailable(ctx, 0, email, username); err != nil {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashedPassword),
		FullName:     fullName,
	}

	if err := s.users.Create(ctx, user); err != nil {
		// A concurrent registration can slip past the lookup; the unique index catches it.
		if stderrors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errors.ErrConflict
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

// Authenticate verifies email and password.
func (s *accountService) Authenticate(ctx context.Context, email, password string) (*model.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrUnauthorized
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, errors.ErrUnauthorized
	}

	return user, nil
}

// GetProfile loads a user by id.
func (s *accountService) GetProfile(ctx context.Context, id uint) (*model.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

// UpdateProfile overwrites username, email and full name. The new username
// and email must not belong to another user.
func (s *accountService) UpdateProfile(ctx context.Context, id uint, username, email, fullName string) (*model.User, error) {
	user, err := s.GetProfile(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.checkAvailable(ctx, id, email, username); err != nil {
		return nil, err
	}

	user.Username = username
	user.Email = email
	user.FullName = fullName

	if err := s.users.Update(ctx, user); err != nil {
		if stderrors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errors.ErrConflict
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}

// DeleteAccount re-checks the password, orphans the user's favorites and
// removes the user.
func (s *accountService) DeleteAccount(ctx context.Context, id uint, password string) error {
	user, err := s.GetProfile(ctx, id)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return errors.ErrUnauthorized
	}

	if err := s.users.DeleteAndOrphanFavorites(ctx, id); err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return errors.ErrUserNotFound
		}
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

func (s *accountService) checkAvailable(ctx context.Context, excludeID uint, email, username string) error {
	existing, err := s.users.FindConflicting(ctx, excludeID, email, username)
	if err == nil && existing != nil {
		return errors.ErrConflict
	}
	if err != nil && !stderrors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("check user existence: %w", err)
	}
	return nil
}
