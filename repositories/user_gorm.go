package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/project-registry/models"
	"gorm.io/gorm"
)

// GormUserRepository handles relational database operations for users.
// The *gorm.DB must be opened with TranslateError so unique violations
// surface as gorm.ErrDuplicatedKey.
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new user repository instance
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// FindByEmail retrieves a user by email address
func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Create inserts a new user into the database
func (r *GormUserRepository) Create(ctx context.Context, user *models.User) error {
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now
	err := r.db.WithContext(ctx).Create(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateEmail
	}
	return err
}
