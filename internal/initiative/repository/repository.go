// Package repository provides data access layer for the initiative module.
package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/communityhub/initiatives/internal/initiative/model"
)

// Repository defines the interface for initiative data access operations.
type Repository interface {
	// Create persists a new initiative.
	Create(ctx context.Context, initiative *model.Initiative) error

	// GetByID finds an initiative by id.
	GetByID(ctx context.Context, id uint) (*model.Initiative, error)

	// List returns initiatives matching the filters, ordered ascending by
	// event date. An empty status disables status filtering; a non-empty
	// location is matched as a case-insensitive substring.
	List(ctx context.Context, status, location string) ([]model.Initiative, error)

	// CompleteElapsed flips the given initiatives from upcoming to
	// completed where their event date is before now. Returns the number
	// of rows changed.
	CompleteElapsed(ctx context.Context, ids []uint, now time.Time) (int64, error)

	// Update persists changes to an existing initiative.
	Update(ctx context.Context, initiative *model.Initiative) error

	// HasJoined reports whether the user has a joined participant row for
	// the initiative.
	HasJoined(ctx context.Context, initiativeID, userID uint) (bool, error)

	// CountJoined returns the number of joined participants of an initiative.
	CountJoined(ctx context.Context, initiativeID uint) (int64, error)

	// AddParticipant persists a new participant row.
	AddParticipant(ctx context.Context, participant *model.InitiativeParticipant) error

	// ListJoined returns the joined participants of an initiative in
	// insertion order.
	ListJoined(ctx context.Context, initiativeID uint) ([]model.InitiativeParticipant, error)
}

type repository struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new initiative repository instance.
func New(db *gorm.DB, logger *zap.SugaredLogger) Repository {
	return &repository{db: db, logger: logger}
}

// Create persists a new initiative.
func (r *repository) Create(ctx context.Context, initiative *model.Initiative) error {
	if err := r.db.WithContext(ctx).Create(initiative).Error; err != nil {
		r.logger.Errorw("Create initiative database error", "title", initiative.Title, "error", err)
		return err
	}
	return nil
}

// GetByID finds an initiative by id.
func (r *repository) GetByID(ctx context.Context, id uint) (*model.Initiative, error) {
	var initiative model.Initiative
	err := r.db.WithContext(ctx).First(&initiative, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrInitiativeNotFound
		}
		r.logger.Errorw("GetByID database error", "initiative_id", id, "error", err)
		return nil, err
	}
	return &initiative, nil
}

// List returns initiatives matching the filters, ordered ascending by event date.
func (r *repository) List(ctx context.Context, status, location string) ([]model.Initiative, error) {
	query := r.db.WithContext(ctx).Model(&model.Initiative{})

	if status != "" {
		query = query.Where("status = ?", status)
	}
	if location != "" {
		// LOWER + LIKE instead of ILIKE so the query also runs on sqlite.
		query = query.Where("LOWER(location) LIKE ?", "%"+strings.ToLower(location)+"%")
	}

	var initiatives []model.Initiative
	if err := query.Order("event_date ASC").Find(&initiatives).Error; err != nil {
		r.logger.Errorw("List database error", "status", status, "error", err)
		return nil, err
	}

	if initiatives == nil {
		initiatives = []model.Initiative{}
	}
	return initiatives, nil
}

// CompleteElapsed flips the given initiatives from upcoming to completed
// where their event date is before now. The read-then-write of the lazy
// transition collapses into this single statement.
func (r *repository) CompleteElapsed(ctx context.Context, ids []uint, now time.Time) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	result := r.db.WithContext(ctx).
		Model(&model.Initiative{}).
		Where("id IN ?", ids).
		Where("status = ?", model.StatusUpcoming).
		Where("event_date < ?", now).
		Update("status", model.StatusCompleted)

	if result.Error != nil {
		r.logger.Errorw("CompleteElapsed database error", "error", result.Error)
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// Update persists changes to an existing initiative.
func (r *repository) Update(ctx context.Context, initiative *model.Initiative) error {
	if err := r.db.WithContext(ctx).Save(initiative).Error; err != nil {
		r.logger.Errorw("Update database error", "initiative_id", initiative.ID, "error", err)
		return err
	}
	return nil
}

// HasJoined reports whether the user has a joined participant row for the initiative.
func (r *repository) HasJoined(ctx context.Context, initiativeID, userID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.InitiativeParticipant{}).
		Where("initiative_id = ? AND user_id = ? AND status = ?", initiativeID, userID, model.ParticipantJoined).
		Count(&count).Error

	if err != nil {
		r.logger.Errorw("HasJoined database error", "initiative_id", initiativeID, "user_id", userID, "error", err)
		return false, err
	}
	return count > 0, nil
}

// CountJoined returns the number of joined participants of an initiative.
func (r *repository) CountJoined(ctx context.Context, initiativeID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.InitiativeParticipant{}).
		Where("initiative_id = ? AND status = ?", initiativeID, model.ParticipantJoined).
		Count(&count).Error

	if err != nil {
		r.logger.Errorw("CountJoined database error", "initiative_id", initiativeID, "error", err)
		return 0, err
	}
	return count, nil
}

// AddParticipant persists a new participant row.
func (r *repository) AddParticipant(ctx context.Context, participant *model.InitiativeParticipant) error {
	if err := r.db.WithContext(ctx).Create(participant).Error; err != nil {
		r.logger.Errorw("AddParticipant database error",
			"initiative_id", participant.InitiativeID,
			"user_id", participant.UserID,
			"error", err)
		return err
	}
	return nil
}

// ListJoined returns the joined participants of an initiative in insertion order.
func (r *repository) ListJoined(ctx context.Context, initiativeID uint) ([]model.InitiativeParticipant, error) {
	var participants []model.InitiativeParticipant
	err := r.db.WithContext(ctx).
		Where("initiative_id = ? AND status = ?", initiativeID, model.ParticipantJoined).
		Order("id ASC").
		Find(&participants).Error

	if err != nil {
		r.logger.Errorw("ListJoined database error", "initiative_id", initiativeID, "error", err)
		return nil, err
	}

	if participants == nil {
		participants = []model.InitiativeParticipant{}
	}
	return participants, nil
}
