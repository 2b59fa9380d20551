package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/communityhub/initiatives/internal/initiative/model"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) Create(ctx context.Context, initiative *model.Initiative) error {
	args := m.Called(ctx, initiative)
	return args.Error(0)
}

func (m *mockRepository) GetByID(ctx context.Context, id uint) (*model.Initiative, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Initiative), args.Error(1)
}

func (m *mockRepository) List(ctx context.Context, status, location string) ([]model.Initiative, error) {
	args := m.Called(ctx, status, location)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Initiative), args.Error(1)
}

func (m *mockRepository) CompleteElapsed(ctx context.Context, ids []uint, now time.Time) (int64, error) {
	args := m.Called(ctx, ids, now)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockRepository) Update(ctx context.Context, initiative *model.Initiative) error {
	args := m.Called(ctx, initiative)
	return args.Error(0)
}

func (m *mockRepository) HasJoined(ctx context.Context, initiativeID, userID uint) (bool, error) {
	args := m.Called(ctx, initiativeID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *mockRepository) CountJoined(ctx context.Context, initiativeID uint) (int64, error) {
	args := m.Called(ctx, initiativeID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockRepository) AddParticipant(ctx context.Context, participant *model.InitiativeParticipant) error {
	args := m.Called(ctx, participant)
	return args.Error(0)
}

func (m *mockRepository) ListJoined(ctx context.Context, initiativeID uint) ([]model.InitiativeParticipant, error) {
	args := m.Called(ctx, initiativeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.InitiativeParticipant), args.Error(1)
}

type mockRecorder struct {
	mock.Mock
}

func (m *mockRecorder) Record(ctx context.Context, actorID uint, kind, message string, subjectID uint) error {
	args := m.Called(ctx, actorID, kind, message, subjectID)
	return args.Error(0)
}

func validCreateRequest() *model.CreateInitiativeRequest {
	return &model.CreateInitiativeRequest{
		Title:         "Park cleanup",
		Description:   "Bring gloves",
		Location:      "Riverside Park",
		EventDate:     time.Now().Add(24 * time.Hour).Format(time.RFC3339),
		DurationHours: 2.5,
	}
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		mockRepo := new(mockRepository)
		recorder := new(mockRecorder)
		svc := New(mockRepo, nil, recorder, zap.NewNop().Sugar())

		mockRepo.On("Create", ctx, mock.AnythingOfType("*model.Initiative")).
			Run(func(args mock.Arguments) {
				args.Get(1).(*model.Initiative).ID = 42
			}).
			Return(nil)
		recorder.On("Record", ctx, uint(1), "initiative_created", "Created new initiative: Park cleanup", uint(42)).
			Return(nil)

		resp, err := svc.Create(ctx, 1, validCreateRequest())

		require.NoError(t, err)
		assert.Equal(t, model.StatusUpcoming, resp.Initiative.Status)
		assert.Equal(t, uint(1), resp.Initiative.CreatedBy)
		assert.Equal(t, "Park cleanup", resp.Initiative.Title)
		assert.Equal(t, 2.5, resp.Initiative.DurationHours)
		mockRepo.AssertExpectations(t)
		recorder.AssertExpectations(t)
	})

	t.Run("missing required field", func(t *testing.T) {
		mutations := map[string]func(*model.CreateInitiativeRequest){
			"title":          func(r *model.CreateInitiativeRequest) { r.Title = "" },
			"description":    func(r *model.CreateInitiativeRequest) { r.Description = "" },
			"location":       func(r *model.CreateInitiativeRequest) { r.Location = "" },
			"event_date":     func(r *model.CreateInitiativeRequest) { r.EventDate = "" },
			"duration_hours": func(r *model.CreateInitiativeRequest) { r.DurationHours = 0 },
		}

		for field, mutate := range mutations {
			t.Run(field, func(t *testing.T) {
				mockRepo := new(mockRepository)
				svc := New(mockRepo, nil, new(mockRecorder), zap.NewNop().Sugar())

				req := validCreateRequest()
				mutate(req)

				resp, err := svc.Create(ctx, 1, req)

				assert.Nil(t, resp)
				assert.ErrorIs(t, err, model.ErrMissingFields)
				mockRepo.AssertNotCalled(t, "Create")
			})
		}
	})

	t.Run("malformed date", func(t *testing.T) {
		svc := New(new(mockRepository), nil, new(mockRecorder), zap.NewNop().Sugar())

		req := validCreateRequest()
		req.EventDate = "next tuesday"

		_, err := svc.Create(ctx, 1, req)
		assert.ErrorIs(t, err, model.ErrInvalidDate)
	})

	t.Run("date without timezone", func(t *testing.T) {
		svc := New(new(mockRepository), nil, new(mockRecorder), zap.NewNop().Sugar())

		req := validCreateRequest()
		req.EventDate = "2030-06-01T10:00:00"

		_, err := svc.Create(ctx, 1, req)
		assert.ErrorIs(t, err, model.ErrInvalidDate)
	})

	t.Run("past date", func(t *testing.T) {
		mockRepo := new(mockRepository)
		svc := New(mockRepo, nil, new(mockRecorder), zap.NewNop().Sugar())

		req := validCreateRequest()
		req.EventDate = time.Now().Add(-time.Hour).Format(time.RFC3339)

		_, err := svc.Create(ctx, 1, req)
		assert.ErrorIs(t, err, model.ErrPastDate)
		mockRepo.AssertNotCalled(t, "Create")
	})

	t.Run("negative duration", func(t *testing.T) {
		svc := New(new(mockRepository), nil, new(mockRecorder), zap.NewNop().Sugar())

		req := validCreateRequest()
		req.DurationHours = -1

		_, err := svc.Create(ctx, 1, req)
		assert.ErrorIs(t, err, model.ErrInvalidDuration)
	})

	t.Run("non-positive max participants", func(t *testing.T) {
		svc := New(new(mockRepository), nil, new(mockRecorder), zap.NewNop().Sugar())

		req := validCreateRequest()
		zero := 0
		req.MaxParticipants = &zero

		_, err := svc.Create(ctx, 1, req)
		assert.ErrorIs(t, err, model.ErrInvalidMaxParticipants)
	})

	t.Run("recorder failure does not fail creation", func(t *testing.T) {
		mockRepo := new(mockRepository)
		recorder := new(mockRecorder)
		svc := New(mockRepo, nil, recorder, zap.NewNop().Sugar())

		mockRepo.On("Create", ctx, mock.AnythingOfType("*model.Initiative")).Return(nil)
		recorder.On("Record", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(errors.New("sink down"))

		resp, err := svc.Create(ctx, 1, validCreateRequest())

		require.NoError(t, err)
		assert.NotNil(t, resp)
	})
}

func TestService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("default status filter", func(t *testing.T) {
		mockRepo := new(mockRepository)
		svc := New(mockRepo, nil, new(mockRecorder), zap.NewNop().Sugar())

		mockRepo.On("List", ctx, model.StatusUpcoming, "").Return([]model.Initiative{}, nil)

		resp, err := svc.List(ctx, "", "")
		require.NoError(t, err)
		assert.Empty(t, resp.Initiatives)
		mockRepo.AssertExpectations(t)
	})

	t.Run("all disables status filtering", func(t *testing.T) {
		mockRepo := new(mockRepository)
		svc := New(mockRepo, nil, new(mockRecorder), zap.NewNop().Sugar())

		mockRepo.On("List", ctx, "", "park").Return([]model.Initiative{}, nil)

		_, err := svc.List(ctx, model.StatusAll, "park")
		require.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("lazy transition flips elapsed upcoming rows", func(t *testing.T) {
		mockRepo := new(mockRepository)
		svc := New(mockRepo, nil, new(mockRecorder), zap.NewNop().Sugar())

		now := time.Now()
		rows := []model.Initiative{
			{ID: 1, Status: model.StatusUpcoming, EventDate: now.Add(-2 * time.Hour)},
			{ID: 2, Status: model.StatusUpcoming, EventDate: now.Add(2 * time.Hour)},
			{ID: 3, Status: model.StatusCompleted, EventDate: now.Add(-2 * time.Hour)},
		}

		mockRepo.On("List", ctx, "", "").Return(rows, nil)
		mockRepo.On("CompleteElapsed", ctx, []uint{1}, mock.AnythingOfType("time.Time")).
			Return(int64(1), nil)

		resp, err := svc.List(ctx, model.StatusAll, "")
		require.NoError(t, err)
		require.Len(t, resp.Initiatives, 3)
		assert.Equal(t, model.StatusCompleted, resp.Initiatives[0].Status)
		assert.Equal(t, model.StatusUpcoming, resp.Initiatives[1].Status)
		assert.Equal(t, model.StatusCompleted, resp.Initiatives[2].Status)
		mockRepo.AssertExpectations(t)
	})

	t.Run("no elapsed rows skips the flip", func(t *testing.T) {
		mockRepo := new(mockRepository)
		svc := New(mockRepo, nil, new(mockRecorder), zap.NewNop().Sugar())

		rows := []model.Initiative{
			{ID: 1, Status: model.StatusUpcoming, EventDate: time.Now().Add(time.Hour)},
		}
		mockRepo.On("List", ctx, model.StatusUpcoming, "").Return(rows, nil)

		_, err := svc.List(ctx, model.StatusUpcoming, "")
		require.NoError(t, err)
		mockRepo.AssertNotCalled(t, "CompleteElapsed")
	})
}

func TestService_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("success leaves status untouched", func(t *testing.T) {
		mockRepo := new(mockRepository)
		svc := New(mockRepo, nil, new(mockRecorder), zap.NewNop().Sugar())

		stale := &model.Initiative{ID: 5, Status: model.StatusUpcoming, EventDate: time.Now().Add(-time.Hour)}
		mockRepo.On("GetByID", ctx, uint(5)).Return(stale, nil)

		resp, err := svc.Get(ctx, 5)
		require.NoError(t, err)
		assert.Equal(t, model.StatusUpcoming, resp.Initiative.Status)
		mockRepo.AssertNotCalled(t, "CompleteElapsed")
		mockRepo.AssertNotCalled(t, "Update")
	})

	t.Run("not found", func(t *testing.T) {
		mockRepo := new(mockRepository)
		svc := New(mockRepo, nil, new(mockRecorder), zap.NewNop().Sugar())

		mockRepo.On("GetByID", ctx, uint(404)).Return(nil, model.ErrInitiativeNotFound)

		_, err := svc.Get(ctx, 404)
		assert.ErrorIs(t, err, model.ErrInitiativeNotFound)
	})
}

// Join exercises the transactional path against a real database.
func setupJoinDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Initiative{}, &model.InitiativeParticipant{}))
	return db
}

func seedInitiative(t *testing.T, db *gorm.DB, status string, maxParticipants *int) *model.Initiative {
	t.Helper()
	initiative := &model.Initiative{
		Title:           "Park cleanup",
		Description:     "d",
		Location:        "l",
		EventDate:       time.Now().Add(24 * time.Hour),
		DurationHours:   2,
		MaxParticipants: maxParticipants,
		Status:          status,
		CreatedBy:       1,
	}
	require.NoError(t, db.Create(initiative).Error)
	return initiative
}

func TestService_Join(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		db := setupJoinDB(t)
		recorder := new(mockRecorder)
		svc := New(nil, db, recorder, zap.NewNop().Sugar())

		initiative := seedInitiative(t, db, model.StatusUpcoming, nil)
		recorder.On("Record", ctx, uint(7), "initiative_joined", "Joined initiative: Park cleanup", initiative.ID).
			Return(nil)

		resp, err := svc.Join(ctx, initiative.ID, 7)

		require.NoError(t, err)
		assert.Equal(t, model.ParticipantJoined, resp.Participant.Status)
		assert.Equal(t, uint(7), resp.Participant.UserID)
		assert.Equal(t, initiative.ID, resp.Participant.InitiativeID)
		recorder.AssertExpectations(t)
	})

	t.Run("initiative not found", func(t *testing.T) {
		db := setupJoinDB(t)
		svc := New(nil, db, new(mockRecorder), zap.NewNop().Sugar())

		_, err := svc.Join(ctx, 999, 7)
		assert.ErrorIs(t, err, model.ErrInitiativeNotFound)
	})

	t.Run("not upcoming even with future date", func(t *testing.T) {
		for _, status := range []string{model.StatusCompleted, model.StatusCancelled} {
			t.Run(status, func(t *testing.T) {
				db := setupJoinDB(t)
				svc := New(nil, db, new(mockRecorder), zap.NewNop().Sugar())

				initiative := seedInitiative(t, db, status, nil)

				_, err := svc.Join(ctx, initiative.ID, 7)
				assert.ErrorIs(t, err, model.ErrNotUpcoming)
			})
		}
	})

	t.Run("duplicate join", func(t *testing.T) {
		db := setupJoinDB(t)
		recorder := new(mockRecorder)
		recorder.On("Record", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
		svc := New(nil, db, recorder, zap.NewNop().Sugar())

		initiative := seedInitiative(t, db, model.StatusUpcoming, nil)

		_, err := svc.Join(ctx, initiative.ID, 7)
		require.NoError(t, err)

		_, err = svc.Join(ctx, initiative.ID, 7)
		assert.ErrorIs(t, err, model.ErrAlreadyJoined)
	})

	t.Run("capacity scenario", func(t *testing.T) {
		db := setupJoinDB(t)
		recorder := new(mockRecorder)
		recorder.On("Record", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
		svc := New(nil, db, recorder, zap.NewNop().Sugar())

		one := 1
		initiative := seedInitiative(t, db, model.StatusUpcoming, &one)

		// user A joins
		_, err := svc.Join(ctx, initiative.ID, 7)
		require.NoError(t, err)

		// user B bounces off the capacity limit
		_, err = svc.Join(ctx, initiative.ID, 8)
		assert.ErrorIs(t, err, model.ErrInitiativeFull)

		// user A again is a duplicate, not a capacity error
		_, err = svc.Join(ctx, initiative.ID, 7)
		assert.ErrorIs(t, err, model.ErrAlreadyJoined)

		var count int64
		require.NoError(t, db.Model(&model.InitiativeParticipant{}).
			Where("initiative_id = ? AND status = ?", initiative.ID, model.ParticipantJoined).
			Count(&count).Error)
		assert.Equal(t, int64(1), count, "joined count never exceeds max_participants")
	})

	t.Run("failed join leaves no participant row", func(t *testing.T) {
		db := setupJoinDB(t)
		svc := New(nil, db, new(mockRecorder), zap.NewNop().Sugar())

		initiative := seedInitiative(t, db, model.StatusCancelled, nil)

		_, err := svc.Join(ctx, initiative.ID, 7)
		require.Error(t, err)

		var count int64
		require.NoError(t, db.Model(&model.InitiativeParticipant{}).Count(&count).Error)
		assert.Zero(t, count)
	})
}

func TestService_ListParticipants(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		mockRepo := new(mockRepository)
		svc := New(mockRepo, nil, new(mockRecorder), zap.NewNop().Sugar())

		mockRepo.On("GetByID", ctx, uint(1)).Return(&model.Initiative{ID: 1}, nil)
		mockRepo.On("ListJoined", ctx, uint(1)).Return([]model.InitiativeParticipant{
			{ID: 1, InitiativeID: 1, UserID: 7, Status: model.ParticipantJoined},
		}, nil)

		resp, err := svc.ListParticipants(ctx, 1)
		require.NoError(t, err)
		require.Len(t, resp.Participants, 1)
		assert.Equal(t, uint(7), resp.Participants[0].UserID)
	})

	t.Run("initiative not found", func(t *testing.T) {
		mockRepo := new(mockRepository)
		svc := New(mockRepo, nil, new(mockRecorder), zap.NewNop().Sugar())

		mockRepo.On("GetByID", ctx, uint(999)).Return(nil, model.ErrInitiativeNotFound)

		_, err := svc.ListParticipants(ctx, 999)
		assert.ErrorIs(t, err, model.ErrInitiativeNotFound)
		mockRepo.AssertNotCalled(t, "ListJoined")
	})
}

func TestService_Update(t *testing.T) {
	ctx := context.Background()

	existing := func() *model.Initiative {
		return &model.Initiative{
			ID:          1,
			Title:       "old title",
			Description: "old description",
			Status:      model.StatusUpcoming,
			CreatedBy:   1,
		}
	}

	t.Run("not found", func(t *testing.T) {
		mockRepo := new(mockRepository)
		svc := New(mockRepo, nil, new(mockRecorder), zap.NewNop().Sugar())

		mockRepo.On("GetByID", ctx, uint(999)).Return(nil, model.ErrInitiativeNotFound)

		_, err := svc.Update(ctx, 999, 1, &model.UpdateInitiativeRequest{})
		assert.ErrorIs(t, err, model.ErrInitiativeNotFound)
	})

	t.Run("non-creator is rejected without changes", func(t *testing.T) {
		mockRepo := new(mockRepository)
		svc := New(mockRepo, nil, new(mockRecorder), zap.NewNop().Sugar())

		mockRepo.On("GetByID", ctx, uint(1)).Return(existing(), nil)

		title := "hijacked"
		_, err := svc.Update(ctx, 1, 2, &model.UpdateInitiativeRequest{Title: &title})

		assert.ErrorIs(t, err, model.ErrNotCreator)
		mockRepo.AssertNotCalled(t, "Update")
	})

	t.Run("invalid status is rejected", func(t *testing.T) {
		mockRepo := new(mockRepository)
		svc := New(mockRepo, nil, new(mockRecorder), zap.NewNop().Sugar())

		mockRepo.On("GetByID", ctx, uint(1)).Return(existing(), nil)

		status := "postponed"
		_, err := svc.Update(ctx, 1, 1, &model.UpdateInitiativeRequest{Status: &status})

		assert.ErrorIs(t, err, model.ErrInvalidStatus)
		mockRepo.AssertNotCalled(t, "Update")
	})

	t.Run("partial patch only touches provided fields", func(t *testing.T) {
		mockRepo := new(mockRepository)
		svc := New(mockRepo, nil, new(mockRecorder), zap.NewNop().Sugar())

		mockRepo.On("GetByID", ctx, uint(1)).Return(existing(), nil)
		mockRepo.On("Update", ctx, mock.AnythingOfType("*model.Initiative")).Return(nil)

		title := "new title"
		resp, err := svc.Update(ctx, 1, 1, &model.UpdateInitiativeRequest{Title: &title})

		require.NoError(t, err)
		assert.Equal(t, "new title", resp.Initiative.Title)
		assert.Equal(t, "old description", resp.Initiative.Description)
		assert.Equal(t, model.StatusUpcoming, resp.Initiative.Status)
	})

	t.Run("creator can cancel", func(t *testing.T) {
		mockRepo := new(mockRepository)
		svc := New(mockRepo, nil, new(mockRecorder), zap.NewNop().Sugar())

		mockRepo.On("GetByID", ctx, uint(1)).Return(existing(), nil)
		mockRepo.On("Update", ctx, mock.AnythingOfType("*model.Initiative")).Return(nil)

		status := model.StatusCancelled
		resp, err := svc.Update(ctx, 1, 1, &model.UpdateInitiativeRequest{Status: &status})

		require.NoError(t, err)
		assert.Equal(t, model.StatusCancelled, resp.Initiative.Status)
	})
}
