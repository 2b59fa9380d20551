// Package repository provides data access layer for the auth module.
package repository

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/communityhub/initiatives/internal/auth/model"
)

// Repository defines the interface for user data access operations.
type Repository interface {
	// Create persists a new user.
	Create(ctx context.Context, user *model.User) error

	// GetByID finds a user by id.
	GetByID(ctx context.Context, id uint) (*model.User, error)

	// GetByEmail finds a user by email.
	GetByEmail(ctx context.Context, email string) (*model.User, error)

	// ExistsByUsernameOrEmail reports whether a user with the given
	// username or email already exists.
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
}

type repository struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new auth repository instance.
func New(db *gorm.DB, logger *zap.SugaredLogger) Repository {
	return &repository{db: db, logger: logger}
}

// Create persists a new user.
func (r *repository) Create(ctx context.Context, user *model.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return model.ErrUserExists
		}
		r.logger.Errorw("Create user database error", "username", user.Username, "error", err)
		return err
	}
	return nil
}

// GetByID finds a user by id.
func (r *repository) GetByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrUserNotFound
		}
		r.logger.Errorw("GetByID database error", "user_id", id, "error", err)
		return nil, err
	}
	return &user, nil
}

// GetByEmail finds a user by email.
func (r *repository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrUserNotFound
		}
		r.logger.Errorw("GetByEmail database error", "error", err)
		return nil, err
	}
	return &user, nil
}

// ExistsByUsernameOrEmail reports whether a user with the given username or email exists.
func (r *repository) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("username = ? OR email = ?", username, email).
		Count(&count).Error

	if err != nil {
		r.logger.Errorw("ExistsByUsernameOrEmail database error", "error", err)
		return false, err
	}
	return count > 0, nil
}
