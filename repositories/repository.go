package repositories

import (
	"context"
	"errors"

	"github.com/project-registry/models"
)

var (
	ErrProjectNotFound = errors.New("project not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrDuplicateEmail  = errors.New("email already registered")
)

// ProjectRepository is the persistence contract for project records.
// Implementations assign ids and creation/update timestamps.
type ProjectRepository interface {
	Create(ctx context.Context, project *models.Project) error
	FindAll(ctx context.Context) ([]models.Project, error)
	// UpdateStatus sets the status of one project in a single store operation
	// and returns the updated record, or ErrProjectNotFound.
	UpdateStatus(ctx context.Context, id, status string) (*models.Project, error)
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status string) (int64, error)
	// FindRecent returns at most limit projects, newest first.
	FindRecent(ctx context.Context, limit int) ([]models.Project, error)
	// DepartmentStats groups all projects by division.
	DepartmentStats(ctx context.Context) ([]models.DepartmentStat, error)
}

// UserRepository is the persistence contract for user accounts.
type UserRepository interface {
	// FindByEmail returns ErrUserNotFound when no account uses the address.
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	// Create returns ErrDuplicateEmail when the address is taken.
	Create(ctx context.Context, user *models.User) error
}
