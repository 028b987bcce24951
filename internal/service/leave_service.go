package service

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"leavedesk/internal/cache"
	"leavedesk/internal/errors"
	"leavedesk/internal/model"
	"leavedesk/internal/repository"
)

const (
	statsCacheKey = "dashboard:stats"
	statsCacheTTL = time.Minute
)

// LeaveInput carries the four employee-supplied fields of a leave request.
// All of them are required; incomplete submissions are rejected with an
// explicit error rather than silently dropped.
type LeaveInput struct {
	LeaveType    string
	LeavePurpose string
	LeaveTime    string
	LeaveDate    string
}

// DashboardStats backs the three admin summary cards.
type DashboardStats struct {
	TotalEmployees int64 `json:"total_employees"`
	TodayLeaves    int64 `json:"today_leaves"`
	UpcomingLeaves int64 `json:"upcoming_leaves"`
}

// LeaveService handles leave request CRUD and the admin review flow.
type LeaveService interface {
	Create(ctx context.Context, userID uuid.UUID, input LeaveInput) (*model.Leave, error)
	Update(ctx context.Context, id, userID uuid.UUID, input LeaveInput) (*model.Leave, error)
	Delete(ctx context.Context, id, userID uuid.UUID) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Leave, error)
	ListFiltered(ctx context.Context, filter repository.LeaveFilter) ([]model.Leave, int64, error)
	SetStatus(ctx context.Context, id uuid.UUID, status model.LeaveStatus) (*model.Leave, error)
	ListUpdatedSince(ctx context.Context, since time.Time) ([]model.Leave, error)
	Stats(ctx context.Context) (*DashboardStats, error)
}

type leaveService struct {
	leaveRepo repository.LeaveRepository
	userRepo  repository.UserRepository
	cache     *cache.Client
	notifier  Notifier
	logger    zerolog.Logger
}

// NewLeaveService creates a new leave service.
func NewLeaveService(
	leaveRepo repository.LeaveRepository,
	userRepo repository.UserRepository,
	cache *cache.Client,
	notifier Notifier,
	logger zerolog.Logger,
) LeaveService {
	return &leaveService{
		leaveRepo: leaveRepo,
		userRepo:  userRepo,
		cache:     cache,
		notifier:  notifier,
		logger:    logger,
	}
}

// Create submits a new leave request with status Pending.
func (s *leaveService) Create(ctx context.Context, userID uuid.UUID, input LeaveInput) (*model.Leave, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	leave := &model.Leave{
		UserID:       userID,
		LeaveType:    input.LeaveType,
		LeavePurpose: input.LeavePurpose,
		LeaveTime:    input.LeaveTime,
		LeaveDate:    input.LeaveDate,
		Status:       model.LeaveStatusPending,
	}
	if err := s.leaveRepo.Create(ctx, leave); err != nil {
		s.logger.Error().Err(err).Str("user_id", userID.String()).Msg("create leave")
		return nil, err
	}

	s.invalidateStats(ctx)
	s.notifier.PublishLeaveEvent(ctx, leaveEvent(EventLeaveCreated, leave))
	return leave, nil
}

// Update applies a full edit by the owning employee. The status is left
// untouched; only an admin review changes it.
func (s *leaveService) Update(ctx context.Context, id, userID uuid.UUID, input LeaveInput) (*model.Leave, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	leave, err := s.findOwned(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	leave.LeaveType = input.LeaveType
	leave.LeavePurpose = input.LeavePurpose
	leave.LeaveTime = input.LeaveTime
	leave.LeaveDate = input.LeaveDate
	if err := s.leaveRepo.Update(ctx, leave); err != nil {
		s.logger.Error().Err(err).Str("leave_id", id.String()).Msg("update leave")
		return nil, err
	}

	s.invalidateStats(ctx)
	s.notifier.PublishLeaveEvent(ctx, leaveEvent(EventLeaveUpdated, leave))
	return leave, nil
}

// Delete removes a leave request owned by the caller.
func (s *leaveService) Delete(ctx context.Context, id, userID uuid.UUID) error {
	leave, err := s.findOwned(ctx, id, userID)
	if err != nil {
		return err
	}

	if err := s.leaveRepo.Delete(ctx, id); err != nil {
		s.logger.Error().Err(err).Str("leave_id", id.String()).Msg("delete leave")
		return err
	}

	s.invalidateStats(ctx)
	s.notifier.PublishLeaveEvent(ctx, leaveEvent(EventLeaveDeleted, leave))
	return nil
}

// ListByUser lists the caller's leave requests ascending by date.
func (s *leaveService) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Leave, error) {
	return s.leaveRepo.ListByUser(ctx, userID)
}

// ListFiltered lists leave requests for the admin table.
func (s *leaveService) ListFiltered(ctx context.Context, filter repository.LeaveFilter) ([]model.Leave, int64, error) {
	return s.leaveRepo.ListFiltered(ctx, filter)
}

// SetStatus records an admin review decision. The transition is
// unconditional: re-approving an already approved request is idempotent,
// not an error.
func (s *leaveService) SetStatus(ctx context.Context, id uuid.UUID, status model.LeaveStatus) (*model.Leave, error) {
	if !model.ValidLeaveStatus(status) {
		return nil, errors.ErrInvalidStatus
	}

	if err := s.leaveRepo.UpdateStatus(ctx, id, status); err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrLeaveNotFound
		}
		s.logger.Error().Err(err).Str("leave_id", id.String()).Msg("update leave status")
		return nil, err
	}

	leave, err := s.leaveRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.notifier.PublishLeaveEvent(ctx, leaveEvent(EventLeaveStatusChanged, leave))
	return leave, nil
}

// ListUpdatedSince backs the notification catch-up feed.
func (s *leaveService) ListUpdatedSince(ctx context.Context, since time.Time) ([]model.Leave, error) {
	return s.leaveRepo.ListUpdatedSince(ctx, since)
}

// Stats returns the dashboard card counts, cached briefly.
func (s *leaveService) Stats(ctx context.Context) (*DashboardStats, error) {
	if data, _ := s.cache.Get(ctx, statsCacheKey); data != nil {
		var cached DashboardStats
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	today := time.Now().Format(model.DateLayout)

	employees, err := s.userRepo.CountEmployees(ctx)
	if err != nil {
		return nil, err
	}
	todayLeaves, err := s.leaveRepo.CountByDate(ctx, today)
	if err != nil {
		return nil, err
	}
	upcoming, err := s.leaveRepo.CountAfterDate(ctx, today)
	if err != nil {
		return nil, err
	}

	stats := &DashboardStats{
		TotalEmployees: employees,
		TodayLeaves:    todayLeaves,
		UpcomingLeaves: upcoming,
	}
	if payload, err := json.Marshal(stats); err == nil {
		_ = s.cache.Set(ctx, statsCacheKey, payload, statsCacheTTL)
	}
	return stats, nil
}

func (s *leaveService) findOwned(ctx context.Context, id, userID uuid.UUID) (*model.Leave, error) {
	leave, err := s.leaveRepo.FindByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrLeaveNotFound
		}
		return nil, err
	}
	if leave.UserID != userID {
		return nil, errors.ErrForbidden
	}
	return leave, nil
}

func (s *leaveService) invalidateStats(ctx context.Context) {
	_ = s.cache.Delete(ctx, statsCacheKey)
}

func validateInput(input LeaveInput) error {
	if input.LeaveType == "" || input.LeavePurpose == "" || input.LeaveTime == "" || input.LeaveDate == "" {
		return errors.ErrMissingField
	}
	if !model.ValidLeaveType(input.LeaveType) {
		return errors.ErrInvalidLeaveType
	}
	if !model.ValidLeaveTime(input.LeaveTime) {
		return errors.ErrInvalidLeaveTime
	}

	date, err := time.Parse(model.DateLayout, input.LeaveDate)
	if err != nil {
		return errors.ErrInvalidLeaveDate
	}
	if wd := date.Weekday(); wd == time.Saturday || wd == time.Sunday {
		return errors.ErrWeekendDate
	}
	return nil
}

func leaveEvent(event string, leave *model.Leave) LeaveEvent {
	return LeaveEvent{
		Event:     event,
		LeaveID:   leave.ID.String(),
		UserID:    leave.UserID.String(),
		LeaveDate: leave.LeaveDate,
		Status:    string(leave.Status),
	}
}
