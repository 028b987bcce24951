package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"leavedesk/internal/availability"
	"leavedesk/internal/model"
	"leavedesk/internal/repository"
)

// AvailabilityService produces the weekly availability summary behind the
// admin resource chart.
type AvailabilityService interface {
	WeekSummary(ctx context.Context, weekStart time.Time) ([]availability.DaySummary, error)
}

type availabilityService struct {
	userRepo  repository.UserRepository
	leaveRepo repository.LeaveRepository
	logger    zerolog.Logger
}

// NewAvailabilityService creates a new availability service.
func NewAvailabilityService(
	userRepo repository.UserRepository,
	leaveRepo repository.LeaveRepository,
	logger zerolog.Logger,
) AvailabilityService {
	return &availabilityService{
		userRepo:  userRepo,
		leaveRepo: leaveRepo,
		logger:    logger,
	}
}

// WeekSummary aggregates availability for the Monday–Friday week containing
// weekStart. Leave rows whose employee cannot be resolved are logged and
// dropped; they never fail the aggregation.
func (s *availabilityService) WeekSummary(ctx context.Context, weekStart time.Time) ([]availability.DaySummary, error) {
	monday := availability.WeekOf(weekStart)
	friday := monday.AddDate(0, 0, 4)
	days := availability.WorkingDays(monday, friday)

	employees, err := s.userRepo.ListEmployees(ctx)
	if err != nil {
		return nil, err
	}
	roster := make([]string, 0, len(employees))
	for _, e := range employees {
		roster = append(roster, e.FullName)
	}

	rows, err := s.leaveRepo.ListByDateRange(ctx, monday.Format(model.DateLayout), friday.Format(model.DateLayout))
	if err != nil {
		return nil, err
	}

	entries := make([]availability.Entry, 0, len(rows))
	for _, row := range rows {
		name := row.EmployeeName()
		if name == "" {
			s.logger.Warn().
				Str("leave_id", row.ID.String()).
				Str("leave_date", row.LeaveDate).
				Msg("dropping leave row with unresolved employee")
			continue
		}
		entries = append(entries, availability.Entry{
			Date:     row.LeaveDate,
			Employee: name,
			Time:     row.LeaveTime,
		})
	}

	return availability.Aggregate(roster, entries, days), nil
}
