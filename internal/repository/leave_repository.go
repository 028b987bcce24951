package repository

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"leavedesk/internal/model"
)

// LeaveFilter composes the optional, conjunctive predicates of the admin
// listing: employee-name substring (case-insensitive) and inclusive
// leave_date bounds as ISO strings. Page/PerPage control pagination;
// PerPage <= 0 disables it.
type LeaveFilter struct {
	Search  string
	From    string
	To      string
	Page    int
	PerPage int
}

// LeaveRepository defines leave persistence operations.
type LeaveRepository interface {
	Create(ctx context.Context, leave *model.Leave) error
	Update(ctx context.Context, leave *model.Leave) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Leave, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Leave, error)
	ListFiltered(ctx context.Context, filter LeaveFilter) ([]model.Leave, int64, error)
	ListByDateRange(ctx context.Context, from, to string) ([]model.Leave, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.LeaveStatus) error
	CountByDate(ctx context.Context, date string) (int64, error)
	CountAfterDate(ctx context.Context, date string) (int64, error)
	ListUpdatedSince(ctx context.Context, since time.Time) ([]model.Leave, error)
}

type leaveRepository struct {
	db *gorm.DB
}

// NewLeaveRepository creates a new leave repository.
func NewLeaveRepository(db *gorm.DB) LeaveRepository {
	return &leaveRepository{db: db}
}

// Create creates a new leave request.
func (r *leaveRepository) Create(ctx context.Context, leave *model.Leave) error {
	return r.db.WithContext(ctx).Create(leave).Error
}

// Update persists a full edit of an existing leave request.
func (r *leaveRepository) Update(ctx context.Context, leave *model.Leave) error {
	return r.db.WithContext(ctx).Save(leave).Error
}

// Delete removes a leave request.
func (r *leaveRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.Leave{}).Error
}

// FindByID finds a leave request by ID.
func (r *leaveRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Leave, error) {
	var leave model.Leave
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&leave).Error; err != nil {
		return nil, err
	}
	return &leave, nil
}

// ListByUser lists one employee's leave requests ascending by date.
func (r *leaveRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Leave, error) {
	var leaves []model.Leave
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("leave_date asc").
		Find(&leaves).Error; err != nil {
		return nil, err
	}
	return leaves, nil
}

// ListFiltered lists leave requests matching filter together with the total
// match count, ordered ascending by leave_date. The employee relation is
// loaded for name display.
func (r *leaveRepository) ListFiltered(ctx context.Context, filter LeaveFilter) ([]model.Leave, int64, error) {
	query := r.filtered(ctx, filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Preload("User").Order("leaves.leave_date asc")
	if filter.PerPage > 0 {
		page := filter.Page
		if page < 1 {
			page = 1
		}
		query = query.Limit(filter.PerPage).Offset((page - 1) * filter.PerPage)
	}

	var leaves []model.Leave
	if err := query.Find(&leaves).Error; err != nil {
		return nil, 0, err
	}
	return leaves, total, nil
}

// ListByDateRange lists all leave rows with leave_date inside [from, to],
// with the employee relation loaded, for availability aggregation.
func (r *leaveRepository) ListByDateRange(ctx context.Context, from, to string) ([]model.Leave, error) {
	var leaves []model.Leave
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("leave_date >= ? AND leave_date <= ?", from, to).
		Order("leave_date asc").
		Find(&leaves).Error; err != nil {
		return nil, err
	}
	return leaves, nil
}

// UpdateStatus sets the review status unconditionally. Re-approving an
// already approved row is a no-op by value, not an error.
func (r *leaveRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.LeaveStatus) error {
	res := r.db.WithContext(ctx).Model(&model.Leave{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CountByDate counts leave rows on an exact date.
func (r *leaveRepository) CountByDate(ctx context.Context, date string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Leave{}).
		Where("leave_date = ?", date).
		Count(&count).Error
	return count, err
}

// CountAfterDate counts leave rows strictly after a date.
func (r *leaveRepository) CountAfterDate(ctx context.Context, date string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Leave{}).
		Where("leave_date > ?", date).
		Count(&count).Error
	return count, err
}

// ListUpdatedSince lists leave rows changed after the given instant, most
// recent first, for the notification feed.
func (r *leaveRepository) ListUpdatedSince(ctx context.Context, since time.Time) ([]model.Leave, error) {
	var leaves []model.Leave
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("updated_at > ?", since).
		Order("updated_at desc").
		Find(&leaves).Error; err != nil {
		return nil, err
	}
	return leaves, nil
}

func (r *leaveRepository) filtered(ctx context.Context, filter LeaveFilter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&model.Leave{})

	if filter.Search != "" {
		query = query.
			Joins("JOIN users ON users.id = leaves.user_id").
			Where("LOWER(users.full_name) LIKE ?", "%"+strings.ToLower(filter.Search)+"%")
	}
	if filter.From != "" {
		query = query.Where("leaves.leave_date >= ?", filter.From)
	}
	if filter.To != "" {
		query = query.Where("leaves.leave_date <= ?", filter.To)
	}
	return query
}
