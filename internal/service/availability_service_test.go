package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"leavedesk/internal/model"
)

func TestAvailabilityService_WeekSummary(t *testing.T) {
	alice := &model.User{FullName: "Alice Perera"}

	userRepo := new(MockUserRepository)
	userRepo.On("ListEmployees", mock.Anything).Return([]model.User{
		{FullName: "Alice Perera"},
		{FullName: "Bob Silva"},
		{FullName: "Carol Fernando"},
	}, nil)

	leaveRepo := new(MockLeaveRepository)
	// 2026-09-07 is a Monday; the query window must be Monday through Friday.
	leaveRepo.On("ListByDateRange", mock.Anything, "2026-09-07", "2026-09-11").Return([]model.Leave{
		{LeaveDate: "2026-09-07", LeaveTime: model.LeaveTimeFullDay, User: alice},
		{LeaveDate: "2026-09-09", LeaveTime: model.LeaveTimeHalfDay, User: alice},
		// Orphaned row, relation unresolved: dropped, never counted.
		{LeaveDate: "2026-09-09", LeaveTime: model.LeaveTimeFullDay, User: nil},
	}, nil)

	service := NewAvailabilityService(userRepo, leaveRepo, zerolog.Nop())

	// Any instant inside the week picks the same Monday.
	wednesday := time.Date(2026, 9, 9, 15, 30, 0, 0, time.UTC)
	days, err := service.WeekSummary(context.Background(), wednesday)

	assert.NoError(t, err)
	if !assert.Len(t, days, 5) {
		return
	}

	monday := days[0]
	assert.Equal(t, "2026-09-07", monday.Date)
	assert.Equal(t, 2, monday.Available)
	assert.Equal(t, 1, monday.OnLeave)
	assert.Equal(t, []string{"Alice Perera"}, monday.FullDayEmployees)

	wed := days[2]
	assert.Equal(t, "2026-09-09", wed.Date)
	assert.Equal(t, 2, wed.Available)
	assert.Equal(t, 1, wed.OnLeave)
	assert.Equal(t, []string{"Alice Perera"}, wed.HalfDayEmployees)

	friday := days[4]
	assert.Equal(t, "2026-09-11", friday.Date)
	assert.Equal(t, 3, friday.Available)
	assert.Empty(t, friday.FullDayEmployees)

	userRepo.AssertExpectations(t)
	leaveRepo.AssertExpectations(t)
}

func TestAvailabilityService_WeekSummaryIgnoresAdminLeaves(t *testing.T) {
	admin := &model.User{FullName: "Admin User", IsAdmin: true}

	userRepo := new(MockUserRepository)
	userRepo.On("ListEmployees", mock.Anything).Return([]model.User{
		{FullName: "Alice Perera"},
		{FullName: "Bob Silva"},
	}, nil)

	// Admins can submit their own leave, but they are not on the non-admin
	// roster and must not show up in the chart.
	leaveRepo := new(MockLeaveRepository)
	leaveRepo.On("ListByDateRange", mock.Anything, "2026-09-07", "2026-09-11").Return([]model.Leave{
		{LeaveDate: "2026-09-07", LeaveTime: model.LeaveTimeFullDay, User: admin},
	}, nil)

	service := NewAvailabilityService(userRepo, leaveRepo, zerolog.Nop())
	days, err := service.WeekSummary(context.Background(), time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC))

	assert.NoError(t, err)
	if !assert.Len(t, days, 5) {
		return
	}
	monday := days[0]
	assert.Equal(t, 2, monday.Available)
	assert.Equal(t, 0, monday.OnLeave)
	assert.Empty(t, monday.FullDayEmployees)
	assert.Empty(t, monday.HalfDayEmployees)

	userRepo.AssertExpectations(t)
	leaveRepo.AssertExpectations(t)
}
