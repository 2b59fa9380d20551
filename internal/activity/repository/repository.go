// Package repository provides data access layer for the activity module.
package repository

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/communityhub/initiatives/internal/activity/model"
)

// Repository defines the interface for activity data access operations.
type Repository interface {
	// Create persists a new activity entry.
	Create(ctx context.Context, activity *model.Activity) error

	// ListRecent returns the most recent activity entries, newest first.
	ListRecent(ctx context.Context, limit int) ([]model.Activity, error)
}

type repository struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new activity repository instance.
func New(db *gorm.DB, logger *zap.SugaredLogger) Repository {
	return &repository{db: db, logger: logger}
}

// Create persists a new activity entry.
func (r *repository) Create(ctx context.Context, activity *model.Activity) error {
	if err := r.db.WithContext(ctx).Create(activity).Error; err != nil {
		r.logger.Errorw("Create activity database error", "activity_type", activity.ActivityType, "error", err)
		return err
	}
	return nil
}

// ListRecent returns the most recent activity entries, newest first.
func (r *repository) ListRecent(ctx context.Context, limit int) ([]model.Activity, error) {
	var activities []model.Activity
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&activities).Error

	if err != nil {
		r.logger.Errorw("ListRecent database error", "error", err)
		return nil, err
	}

	if activities == nil {
		activities = []model.Activity{}
	}
	return activities, nil
}
