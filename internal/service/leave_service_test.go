package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"leavedesk/internal/errors"
	"leavedesk/internal/model"
	"leavedesk/internal/repository"
)

func newLeaveService(leaveRepo *MockLeaveRepository, userRepo *MockUserRepository, notifier *MockNotifier) LeaveService {
	return NewLeaveService(leaveRepo, userRepo, nil, notifier, zerolog.Nop())
}

func validInput() LeaveInput {
	return LeaveInput{
		LeaveType:    model.LeaveTypeAnnual,
		LeavePurpose: "family event",
		LeaveTime:    model.LeaveTimeFullDay,
		LeaveDate:    "2026-09-07", // a Monday
	}
}

func TestLeaveService_CreateValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*LeaveInput)
		wantErr error
	}{
		{
			name:    "missing purpose",
			mutate:  func(in *LeaveInput) { in.LeavePurpose = "" },
			wantErr: errors.ErrMissingField,
		},
		{
			name:    "missing date",
			mutate:  func(in *LeaveInput) { in.LeaveDate = "" },
			wantErr: errors.ErrMissingField,
		},
		{
			name:    "unknown leave type",
			mutate:  func(in *LeaveInput) { in.LeaveType = "Sabbatical" },
			wantErr: errors.ErrInvalidLeaveType,
		},
		{
			name:    "unknown leave time",
			mutate:  func(in *LeaveInput) { in.LeaveTime = "Quarter Day" },
			wantErr: errors.ErrInvalidLeaveTime,
		},
		{
			name:    "unparseable date",
			mutate:  func(in *LeaveInput) { in.LeaveDate = "07/09/2026" },
			wantErr: errors.ErrInvalidLeaveDate,
		},
		{
			name:    "saturday rejected",
			mutate:  func(in *LeaveInput) { in.LeaveDate = "2026-09-05" },
			wantErr: errors.ErrWeekendDate,
		},
		{
			name:    "sunday rejected",
			mutate:  func(in *LeaveInput) { in.LeaveDate = "2026-09-06" },
			wantErr: errors.ErrWeekendDate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput()
			tt.mutate(&input)

			// No repository or notifier calls are expected for rejected input.
			leaveRepo := new(MockLeaveRepository)
			notifier := new(MockNotifier)
			service := newLeaveService(leaveRepo, new(MockUserRepository), notifier)

			leave, err := service.Create(context.Background(), uuid.New(), input)

			assert.Equal(t, tt.wantErr, err)
			assert.Nil(t, leave)
			leaveRepo.AssertExpectations(t)
			notifier.AssertExpectations(t)
		})
	}
}

func TestLeaveService_Create(t *testing.T) {
	userID := uuid.New()
	input := validInput()

	leaveRepo := new(MockLeaveRepository)
	leaveRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Leave")).Return(nil)

	notifier := new(MockNotifier)
	notifier.On("PublishLeaveEvent", mock.Anything, mock.MatchedBy(func(e LeaveEvent) bool {
		return e.Event == EventLeaveCreated && e.UserID == userID.String()
	})).Return()

	service := newLeaveService(leaveRepo, new(MockUserRepository), notifier)
	leave, err := service.Create(context.Background(), userID, input)

	assert.NoError(t, err)
	assert.NotNil(t, leave)
	assert.Equal(t, model.LeaveStatusPending, leave.Status)
	assert.Equal(t, userID, leave.UserID)
	assert.Equal(t, input.LeaveDate, leave.LeaveDate)
	leaveRepo.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestLeaveService_UpdateOwnership(t *testing.T) {
	owner := uuid.New()
	stranger := uuid.New()
	leaveID := uuid.New()

	existing := &model.Leave{
		ID:        leaveID,
		UserID:    owner,
		LeaveType: model.LeaveTypeMedical,
		LeaveTime: model.LeaveTimeHalfDay,
		LeaveDate: "2026-09-08",
		Status:    model.LeaveStatusApproved,
	}

	t.Run("non-owner is rejected", func(t *testing.T) {
		leaveRepo := new(MockLeaveRepository)
		leaveRepo.On("FindByID", mock.Anything, leaveID).Return(existing, nil)

		service := newLeaveService(leaveRepo, new(MockUserRepository), new(MockNotifier))
		leave, err := service.Update(context.Background(), leaveID, stranger, validInput())

		assert.Equal(t, errors.ErrForbidden, err)
		assert.Nil(t, leave)
	})

	t.Run("missing row maps to not found", func(t *testing.T) {
		leaveRepo := new(MockLeaveRepository)
		leaveRepo.On("FindByID", mock.Anything, leaveID).Return(nil, gorm.ErrRecordNotFound)

		service := newLeaveService(leaveRepo, new(MockUserRepository), new(MockNotifier))
		_, err := service.Update(context.Background(), leaveID, owner, validInput())

		assert.Equal(t, errors.ErrLeaveNotFound, err)
	})

	t.Run("owner edit keeps review status", func(t *testing.T) {
		leaveRepo := new(MockLeaveRepository)
		leaveRepo.On("FindByID", mock.Anything, leaveID).Return(existing, nil)
		leaveRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.Leave")).Return(nil)

		notifier := new(MockNotifier)
		notifier.On("PublishLeaveEvent", mock.Anything, mock.MatchedBy(func(e LeaveEvent) bool {
			return e.Event == EventLeaveUpdated
		})).Return()

		service := newLeaveService(leaveRepo, new(MockUserRepository), notifier)
		input := validInput()
		leave, err := service.Update(context.Background(), leaveID, owner, input)

		assert.NoError(t, err)
		assert.Equal(t, input.LeaveType, leave.LeaveType)
		assert.Equal(t, input.LeaveDate, leave.LeaveDate)
		assert.Equal(t, model.LeaveStatusApproved, leave.Status)
		leaveRepo.AssertExpectations(t)
		notifier.AssertExpectations(t)
	})
}

func TestLeaveService_Delete(t *testing.T) {
	owner := uuid.New()
	leaveID := uuid.New()
	existing := &model.Leave{ID: leaveID, UserID: owner, LeaveDate: "2026-09-09"}

	leaveRepo := new(MockLeaveRepository)
	leaveRepo.On("FindByID", mock.Anything, leaveID).Return(existing, nil)
	leaveRepo.On("Delete", mock.Anything, leaveID).Return(nil)

	notifier := new(MockNotifier)
	notifier.On("PublishLeaveEvent", mock.Anything, mock.MatchedBy(func(e LeaveEvent) bool {
		return e.Event == EventLeaveDeleted && e.LeaveID == leaveID.String()
	})).Return()

	service := newLeaveService(leaveRepo, new(MockUserRepository), notifier)

	assert.NoError(t, service.Delete(context.Background(), leaveID, owner))
	assert.Equal(t, errors.ErrForbidden, service.Delete(context.Background(), leaveID, uuid.New()))
	leaveRepo.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestLeaveService_SetStatus(t *testing.T) {
	leaveID := uuid.New()
	approved := &model.Leave{ID: leaveID, UserID: uuid.New(), Status: model.LeaveStatusApproved, LeaveDate: "2026-09-10"}

	t.Run("unknown status rejected", func(t *testing.T) {
		service := newLeaveService(new(MockLeaveRepository), new(MockUserRepository), new(MockNotifier))
		leave, err := service.SetStatus(context.Background(), leaveID, model.LeaveStatus("Maybe"))

		assert.Equal(t, errors.ErrInvalidStatus, err)
		assert.Nil(t, leave)
	})

	t.Run("missing row", func(t *testing.T) {
		leaveRepo := new(MockLeaveRepository)
		leaveRepo.On("UpdateStatus", mock.Anything, leaveID, model.LeaveStatusApproved).Return(gorm.ErrRecordNotFound)

		service := newLeaveService(leaveRepo, new(MockUserRepository), new(MockNotifier))
		_, err := service.SetStatus(context.Background(), leaveID, model.LeaveStatusApproved)

		assert.Equal(t, errors.ErrLeaveNotFound, err)
	})

	t.Run("re-approving is idempotent", func(t *testing.T) {
		leaveRepo := new(MockLeaveRepository)
		leaveRepo.On("UpdateStatus", mock.Anything, leaveID, model.LeaveStatusApproved).Return(nil).Twice()
		leaveRepo.On("FindByID", mock.Anything, leaveID).Return(approved, nil).Twice()

		notifier := new(MockNotifier)
		notifier.On("PublishLeaveEvent", mock.Anything, mock.MatchedBy(func(e LeaveEvent) bool {
			return e.Event == EventLeaveStatusChanged && e.Status == string(model.LeaveStatusApproved)
		})).Return().Twice()

		service := newLeaveService(leaveRepo, new(MockUserRepository), notifier)

		first, err := service.SetStatus(context.Background(), leaveID, model.LeaveStatusApproved)
		assert.NoError(t, err)
		second, err := service.SetStatus(context.Background(), leaveID, model.LeaveStatusApproved)
		assert.NoError(t, err)

		assert.Equal(t, first.Status, second.Status)
		leaveRepo.AssertExpectations(t)
		notifier.AssertExpectations(t)
	})
}

func TestLeaveService_ListFilteredPassesFilterThrough(t *testing.T) {
	filter := repository.LeaveFilter{
		Search:  "perera",
		From:    "2026-09-01",
		To:      "2026-09-30",
		Page:    2,
		PerPage: 10,
	}
	rows := []model.Leave{{LeaveDate: "2026-09-07"}, {LeaveDate: "2026-09-08"}}

	leaveRepo := new(MockLeaveRepository)
	leaveRepo.On("ListFiltered", mock.Anything, filter).Return(rows, int64(12), nil)

	service := newLeaveService(leaveRepo, new(MockUserRepository), new(MockNotifier))
	got, total, err := service.ListFiltered(context.Background(), filter)

	assert.NoError(t, err)
	assert.Equal(t, rows, got)
	assert.Equal(t, int64(12), total)
	leaveRepo.AssertExpectations(t)
}

func TestLeaveService_Stats(t *testing.T) {
	today := time.Now().Format(model.DateLayout)

	userRepo := new(MockUserRepository)
	userRepo.On("CountEmployees", mock.Anything).Return(int64(8), nil)

	leaveRepo := new(MockLeaveRepository)
	leaveRepo.On("CountByDate", mock.Anything, today).Return(int64(2), nil)
	leaveRepo.On("CountAfterDate", mock.Anything, today).Return(int64(5), nil)

	service := newLeaveService(leaveRepo, userRepo, new(MockNotifier))
	stats, err := service.Stats(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, &DashboardStats{TotalEmployees: 8, TodayLeaves: 2, UpcomingLeaves: 5}, stats)
	userRepo.AssertExpectations(t)
	leaveRepo.AssertExpectations(t)
}
