package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/project-registry/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormProjectRepository handles relational database operations for projects
type GormProjectRepository struct {
	db *gorm.DB
}

// NewGormProjectRepository creates a new project repository instance
func NewGormProjectRepository(db *gorm.DB) *GormProjectRepository {
	return &GormProjectRepository{db: db}
}

// Create inserts a new project into the database
func (r *GormProjectRepository) Create(ctx context.Context, project *models.Project) error {
	now := time.Now().UTC()
	project.CreatedAt = now
	project.UpdatedAt = now
	return r.db.WithContext(ctx).Create(project).Error
}

// FindAll retrieves all projects
func (r *GormProjectRepository) FindAll(ctx context.Context) ([]models.Project, error) {
	projects := make([]models.Project, 0)
	result := r.db.WithContext(ctx).Find(&projects)
	return projects, result.Error
}

// UpdateStatus modifies the status of an existing project
func (r *GormProjectRepository) UpdateStatus(ctx context.Context, id, status string) (*models.Project, error) {
	// ids are uuid columns; anything else cannot match a row
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrProjectNotFound
	}

	var project models.Project
	result := r.db.WithContext(ctx).
		Model(&project).
		Clauses(clause.Returning{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrProjectNotFound
	}
	return &project, nil
}

// Count counts every project
func (r *GormProjectRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&models.Project{}).Count(&count)
	return count, result.Error
}

// CountByStatus counts projects whose status matches exactly
func (r *GormProjectRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&models.Project{}).Where("status = ?", status).Count(&count)
	return count, result.Error
}

// FindRecent retrieves the newest projects by creation time
func (r *GormProjectRepository) FindRecent(ctx context.Context, limit int) ([]models.Project, error) {
	projects := make([]models.Project, 0, limit)
	result := r.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&projects)
	return projects, result.Error
}

// DepartmentStats counts total and closed projects per division
func (r *GormProjectRepository) DepartmentStats(ctx context.Context) ([]models.DepartmentStat, error) {
	stats := make([]models.DepartmentStat, 0)
	result := r.db.WithContext(ctx).
		Model(&models.Project{}).
		Select(`"div" AS div, COUNT(*) AS total_projects, `+
			`COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS closed_projects`, models.StatusClosed).
		Group(`"div"`).
		Scan(&stats)
	return stats, result.Error
}
