package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"leavedesk/internal/model"
)

// UserRepository defines user persistence operations. Accounts are
// read-only to the application; creation happens through the seed tool.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	ListEmployees(ctx context.Context) ([]model.User, error)
	CountEmployees(ctx context.Context) (int64, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Create creates a new user account.
func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// FindByID finds a user by ID.
func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail finds a user by exact email match.
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// ListEmployees lists all non-admin users, the availability roster.
func (r *userRepository) ListEmployees(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := r.db.WithContext(ctx).
		Where("is_admin = ?", false).
		Order("full_name asc").
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// CountEmployees counts non-admin users.
func (r *userRepository) CountEmployees(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.User{}).
		Where("is_admin = ?", false).
		Count(&count).Error
	return count, err
}
