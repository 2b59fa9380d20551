// Package service provides business logic layer for the initiative module.
package service

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	activityModel "github.com/communityhub/initiatives/internal/activity/model"
	"github.com/communityhub/initiatives/internal/initiative/model"
	"github.com/communityhub/initiatives/internal/initiative/repository"
)

// Recorder records activity feed entries. Emission is fire-and-forget for
// the caller: the service logs sink failures and never surfaces them.
type Recorder interface {
	Record(ctx context.Context, actorID uint, kind, message string, subjectID uint) error
}

// Service defines the interface for initiative business logic operations.
type Service interface {
	// Create validates and persists a new upcoming initiative.
	Create(ctx context.Context, creatorID uint, req *model.CreateInitiativeRequest) (*model.InitiativeResponse, error)

	// List returns initiatives filtered by status and location substring,
	// ordered ascending by event date. Upcoming initiatives in the result
	// set whose event date has passed are flipped to completed first.
	List(ctx context.Context, status, location string) (*model.ListInitiativesResponse, error)

	// Get returns a single initiative without touching its status.
	Get(ctx context.Context, id uint) (*model.InitiativeResponse, error)

	// Join adds the user to an upcoming initiative under capacity.
	Join(ctx context.Context, initiativeID, userID uint) (*model.JoinResponse, error)

	// ListParticipants returns the joined participants of an initiative.
	ListParticipants(ctx context.Context, initiativeID uint) (*model.ListParticipantsResponse, error)

	// Update applies a creator-only partial update.
	Update(ctx context.Context, initiativeID, requesterID uint, req *model.UpdateInitiativeRequest) (*model.InitiativeResponse, error)
}

type service struct {
	repo     repository.Repository
	db       *gorm.DB
	activity Recorder
	logger   *zap.SugaredLogger
	now      func() time.Time
}

// New creates a new initiative service instance.
func New(repo repository.Repository, db *gorm.DB, activity Recorder, logger *zap.SugaredLogger) Service {
	return &service{
		repo:     repo,
		db:       db,
		activity: activity,
		logger:   logger,
		now:      time.Now,
	}
}

// Create validates and persists a new upcoming initiative.
func (s *service) Create(ctx context.Context, creatorID uint, req *model.CreateInitiativeRequest) (*model.InitiativeResponse, error) {
	if req.Title == "" || req.Description == "" || req.Location == "" || req.EventDate == "" || req.DurationHours == 0 {
		s.logger.Debugw("Create validation failed", "error", "missing required fields")
		return nil, model.ErrMissingFields
	}
	if req.DurationHours < 0 {
		return nil, model.ErrInvalidDuration
	}
	if req.MaxParticipants != nil && *req.MaxParticipants <= 0 {
		return nil, model.ErrInvalidMaxParticipants
	}

	eventDate, err := time.Parse(time.RFC3339, req.EventDate)
	if err != nil {
		s.logger.Debugw("Create validation failed", "event_date", req.EventDate, "error", err)
		return nil, model.ErrInvalidDate
	}
	if eventDate.Before(s.now()) {
		return nil, model.ErrPastDate
	}

	initiative := &model.Initiative{
		Title:           req.Title,
		Description:     req.Description,
		Location:        req.Location,
		EventDate:       eventDate,
		DurationHours:   req.DurationHours,
		MaxParticipants: req.MaxParticipants,
		Requirements:    req.Requirements,
		ContactInfo:     req.ContactInfo,
		ImageURL:        req.ImageURL,
		Status:          model.StatusUpcoming,
		CreatedBy:       creatorID,
	}

	if err := s.repo.Create(ctx, initiative); err != nil {
		return nil, err
	}

	s.record(ctx, creatorID, activityModel.KindInitiativeCreated,
		"Created new initiative: "+initiative.Title, initiative.ID)

	s.logger.Infow("Create completed", "initiative_id", initiative.ID, "created_by", creatorID)
	return &model.InitiativeResponse{
		Message:    "Initiative created successfully",
		Initiative: *initiative,
	}, nil
}

// List returns initiatives filtered by status and location substring.
//
// The status flip is read-triggered: only rows in this call's filtered
// candidate set are checked, so a row never listed can stay upcoming past
// its event date until some list call touches it.
func (s *service) List(ctx context.Context, status, location string) (*model.ListInitiativesResponse, error) {
	if status == "" {
		status = model.StatusUpcoming
	}

	filter := status
	if status == model.StatusAll {
		filter = ""
	}

	initiatives, err := s.repo.List(ctx, filter, location)
	if err != nil {
		return nil, err
	}

	now := s.now()
	var elapsed []uint
	for i := range initiatives {
		if initiatives[i].Status == model.StatusUpcoming && initiatives[i].EventDate.Before(now) {
			elapsed = append(elapsed, initiatives[i].ID)
		}
	}

	if len(elapsed) > 0 {
		flipped, err := s.repo.CompleteElapsed(ctx, elapsed, now)
		if err != nil {
			return nil, err
		}
		s.logger.Infow("lazy status transition", "completed", flipped)

		for i := range initiatives {
			if initiatives[i].Status == model.StatusUpcoming && initiatives[i].EventDate.Before(now) {
				initiatives[i].Status = model.StatusCompleted
			}
		}
	}

	return &model.ListInitiativesResponse{Initiatives: initiatives}, nil
}

// Get returns a single initiative without touching its status.
func (s *service) Get(ctx context.Context, id uint) (*model.InitiativeResponse, error) {
	initiative, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &model.InitiativeResponse{Initiative: *initiative}, nil
}

// Join adds the user to an upcoming initiative under capacity. All checks
// and the insert run in one transaction so concurrent joins near the
// capacity limit cannot interleave.
func (s *service) Join(ctx context.Context, initiativeID, userID uint) (*model.JoinResponse, error) {
	var participant *model.InitiativeParticipant
	var title string

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := repository.New(tx, s.logger)

		initiative, err := repo.GetByID(ctx, initiativeID)
		if err != nil {
			return err
		}
		title = initiative.Title

		// Stored status only; the event date is deliberately not consulted.
		if initiative.Status != model.StatusUpcoming {
			return model.ErrNotUpcoming
		}

		joined, err := repo.HasJoined(ctx, initiativeID, userID)
		if err != nil {
			return err
		}
		if joined {
			return model.ErrAlreadyJoined
		}

		if initiative.MaxParticipants != nil {
			count, err := repo.CountJoined(ctx, initiativeID)
			if err != nil {
				return err
			}
			if count >= int64(*initiative.MaxParticipants) {
				return model.ErrInitiativeFull
			}
		}

		participant = &model.InitiativeParticipant{
			InitiativeID: initiativeID,
			UserID:       userID,
			Status:       model.ParticipantJoined,
		}
		return repo.AddParticipant(ctx, participant)
	})

	if err != nil {
		return nil, err
	}

	s.record(ctx, userID, activityModel.KindInitiativeJoined,
		"Joined initiative: "+title, initiativeID)

	s.logger.Infow("Join completed", "initiative_id", initiativeID, "user_id", userID)
	return &model.JoinResponse{
		Message:     "Successfully joined initiative",
		Participant: *participant,
	}, nil
}

// ListParticipants returns the joined participants of an initiative.
func (s *service) ListParticipants(ctx context.Context, initiativeID uint) (*model.ListParticipantsResponse, error) {
	if _, err := s.repo.GetByID(ctx, initiativeID); err != nil {
		return nil, err
	}

	participants, err := s.repo.ListJoined(ctx, initiativeID)
	if err != nil {
		return nil, err
	}

	return &model.ListParticipantsResponse{Participants: participants}, nil
}

// Update applies a creator-only partial update.
func (s *service) Update(ctx context.Context, initiativeID, requesterID uint, req *model.UpdateInitiativeRequest) (*model.InitiativeResponse, error) {
	initiative, err := s.repo.GetByID(ctx, initiativeID)
	if err != nil {
		return nil, err
	}

	if initiative.CreatedBy != requesterID {
		s.logger.Debugw("Update rejected", "initiative_id", initiativeID, "requester_id", requesterID)
		return nil, model.ErrNotCreator
	}

	if req.Status != nil && !model.ValidStatus(*req.Status) {
		return nil, model.ErrInvalidStatus
	}

	if req.Title != nil {
		initiative.Title = *req.Title
	}
	if req.Description != nil {
		initiative.Description = *req.Description
	}
	if req.Requirements != nil {
		initiative.Requirements = req.Requirements
	}
	if req.ContactInfo != nil {
		initiative.ContactInfo = req.ContactInfo
	}
	if req.Status != nil {
		initiative.Status = *req.Status
	}

	if err := s.repo.Update(ctx, initiative); err != nil {
		return nil, err
	}

	s.logger.Infow("Update completed", "initiative_id", initiativeID)
	return &model.InitiativeResponse{
		Message:    "Initiative updated successfully",
		Initiative: *initiative,
	}, nil
}

// record emits an activity entry, logging failures instead of returning them.
func (s *service) record(ctx context.Context, actorID uint, kind, message string, subjectID uint) {
	if s.activity == nil {
		return
	}
	if err := s.activity.Record(ctx, actorID, kind, message, subjectID); err != nil {
		s.logger.Warnw("activity record failed", "kind", kind, "error", err)
	}
}
