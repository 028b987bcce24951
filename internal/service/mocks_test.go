package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"leavedesk/internal/model"
	"leavedesk/internal/repository"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) ListEmployees(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUserRepository) CountEmployees(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockSessionRepository is a mock implementation of SessionRepository.
type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) Create(ctx context.Context, session *model.Session) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockSessionRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockSessionRepository) FindLatestByUser(ctx context.Context, userID uuid.UUID) (*model.Session, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Session), args.Error(1)
}

// MockLeaveRepository is a mock implementation of LeaveRepository.
type MockLeaveRepository struct {
	mock.Mock
}

func (m *MockLeaveRepository) Create(ctx context.Context, leave *model.Leave) error {
	args := m.Called(ctx, leave)
	return args.Error(0)
}

func (m *MockLeaveRepository) Update(ctx context.Context, leave *model.Leave) error {
	args := m.Called(ctx, leave)
	return args.Error(0)
}

func (m *MockLeaveRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockLeaveRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Leave, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Leave), args.Error(1)
}

func (m *MockLeaveRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Leave, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Leave), args.Error(1)
}

func (m *MockLeaveRepository) ListFiltered(ctx context.Context, filter repository.LeaveFilter) ([]model.Leave, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]model.Leave), args.Get(1).(int64), args.Error(2)
}

func (m *MockLeaveRepository) ListByDateRange(ctx context.Context, from, to string) ([]model.Leave, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Leave), args.Error(1)
}

func (m *MockLeaveRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.LeaveStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockLeaveRepository) CountByDate(ctx context.Context, date string) (int64, error) {
	args := m.Called(ctx, date)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLeaveRepository) CountAfterDate(ctx context.Context, date string) (int64, error) {
	args := m.Called(ctx, date)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLeaveRepository) ListUpdatedSince(ctx context.Context, since time.Time) ([]model.Leave, error) {
	args := m.Called(ctx, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Leave), args.Error(1)
}

// MockTokenStore is a mock implementation of TokenStoreInterface.
type MockTokenStore struct {
	mock.Mock
}

func (m *MockTokenStore) StoreRefreshToken(ctx context.Context, tokenID string, userID string, email string, ttl time.Duration) error {
	args := m.Called(ctx, tokenID, userID, email, ttl)
	return args.Error(0)
}

func (m *MockTokenStore) GetRefreshToken(ctx context.Context, tokenID string) (string, string, error) {
	args := m.Called(ctx, tokenID)
	return args.String(0), args.String(1), args.Error(2)
}

func (m *MockTokenStore) DeleteRefreshToken(ctx context.Context, tokenID string) error {
	args := m.Called(ctx, tokenID)
	return args.Error(0)
}

// MockNotifier is a mock implementation of Notifier.
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) PublishLeaveEvent(ctx context.Context, event LeaveEvent) {
	m.Called(ctx, event)
}

func (m *MockNotifier) Subscribe(ctx context.Context) (<-chan LeaveEvent, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(<-chan LeaveEvent), args.Error(1)
}
