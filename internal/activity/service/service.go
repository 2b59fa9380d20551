// Package service provides business logic layer for the activity module.
package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/communityhub/initiatives/internal/activity/model"
	"github.com/communityhub/initiatives/internal/activity/publisher"
	"github.com/communityhub/initiatives/internal/activity/repository"
)

const defaultFeedLimit = 50

// Service defines the interface for activity business logic operations.
type Service interface {
	// Record persists an activity entry and fans it out to subscribers.
	// It never fails the caller: persistence errors are returned for
	// logging, fan-out errors are swallowed.
	Record(ctx context.Context, actorID uint, kind, message string, subjectID uint) error

	// ListRecent returns the most recent activity entries, newest first.
	ListRecent(ctx context.Context, limit int) (*model.ListActivitiesResponse, error)
}

type service struct {
	repo   repository.Repository
	pub    publisher.Publisher
	logger *zap.SugaredLogger
}

// New creates a new activity service instance. pub may be nil, in which
// case entries are only persisted.
func New(repo repository.Repository, pub publisher.Publisher, logger *zap.SugaredLogger) Service {
	return &service{repo: repo, pub: pub, logger: logger}
}

// Record persists an activity entry and fans it out to subscribers.
func (s *service) Record(ctx context.Context, actorID uint, kind, message string, subjectID uint) error {
	entry := &model.Activity{
		UserID:       actorID,
		ActivityType: kind,
		Message:      message,
	}
	if subjectID != 0 {
		related := subjectID
		entry.RelatedID = &related
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		return err
	}

	if s.pub != nil {
		payload := map[string]interface{}{
			"user_id":    actorID,
			"message":    message,
			"related_id": entry.RelatedID,
		}
		// Fan-out is best effort; the database row is the source of truth.
		if err := s.pub.Publish(ctx, kind, payload); err != nil {
			s.logger.Warnw("activity fan-out failed", "kind", kind, "error", err)
		}
	}

	return nil
}

// ListRecent returns the most recent activity entries, newest first.
func (s *service) ListRecent(ctx context.Context, limit int) (*model.ListActivitiesResponse, error) {
	if limit <= 0 || limit > 200 {
		limit = defaultFeedLimit
	}

	activities, err := s.repo.ListRecent(ctx, limit)
	if err != nil {
		s.logger.Errorw("ListRecent failed", "error", err)
		return nil, err
	}

	return &model.ListActivitiesResponse{Activities: activities}, nil
}
