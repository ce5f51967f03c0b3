package services

import (
	"context"
	"errors"

	"github.com/project-registry/logutils"
	"github.com/project-registry/models"
	"github.com/project-registry/repositories"
)

// ProjectService handles business logic for projects
type ProjectService struct {
	projectRepo repositories.ProjectRepository
}

// NewProjectService creates a new project service instance
func NewProjectService(projectRepo repositories.ProjectRepository) *ProjectService {
	return &ProjectService{projectRepo: projectRepo}
}

// Submit validates a submission body and stores it as a new Registered project.
func (s *ProjectService) Submit(ctx context.Context, payload map[string]interface{}) (*models.Project, error) {
	project, err := BuildSubmission(payload)
	if err != nil {
		projectsSubmitted.WithLabelValues("rejected").Inc()
		return nil, err
	}

	if err := s.projectRepo.Create(ctx, project); err != nil {
		projectsSubmitted.WithLabelValues("failed").Inc()
		return nil, persistenceError("create project", err)
	}

	projectsSubmitted.WithLabelValues("created").Inc()
	logutils.Log.WithFields(logutils.Fields{
		"project_id": project.ID,
		"name":       project.Name,
	}).Info("project registered")
	return project, nil
}

// List retrieves every project in store order
func (s *ProjectService) List(ctx context.Context) ([]models.Project, error) {
	projects, err := s.projectRepo.FindAll(ctx)
	if err != nil {
		return nil, persistenceError("fetch projects", err)
	}
	return projects, nil
}

// UpdateStatus sets the status of a project to the given value. Any string is
// accepted; there is no transition table.
func (s *ProjectService) UpdateStatus(ctx context.Context, id, status string) (*models.Project, error) {
	project, err := s.projectRepo.UpdateStatus(ctx, id, status)
	if err != nil {
		if errors.Is(err, repositories.ErrProjectNotFound) {
			return nil, err
		}
		return nil, persistenceError("update project", err)
	}

	projectStatusUpdates.WithLabelValues(statusLabel(status)).Inc()
	logutils.Log.WithFields(logutils.Fields{
		"project_id": project.ID,
		"status":     status,
	}).Info("project status updated")
	return project, nil
}

// Counters returns the total project count and the counts of the tracked
// statuses. Registered projects only contribute to the total.
func (s *ProjectService) Counters(ctx context.Context) (*models.ProjectCounters, error) {
	total, err := s.projectRepo.Count(ctx)
	if err != nil {
		return nil, persistenceError("fetch project counters", err)
	}

	counters := &models.ProjectCounters{TotalProjects: total}
	tracked := []struct {
		status string
		dst    *int64
	}{
		{models.StatusClosed, &counters.ClosedProjects},
		{models.StatusRunning, &counters.RunningProjects},
		{models.StatusClosureDelayed, &counters.ClosureDelayedProjects},
		{models.StatusCancelled, &counters.CancelledProjects},
	}
	for _, t := range tracked {
		n, err := s.projectRepo.CountByStatus(ctx, t.status)
		if err != nil {
			return nil, persistenceError("fetch project counters", err)
		}
		*t.dst = n
	}
	return counters, nil
}

// Recent returns the most recently created projects, newest first
func (s *ProjectService) Recent(ctx context.Context) ([]models.Project, error) {
	projects, err := s.projectRepo.FindRecent(ctx, models.RecentProjectsLimit)
	if err != nil {
		return nil, persistenceError("fetch recent projects", err)
	}
	return projects, nil
}

// DepartmentStats returns total and closed project counts per division
func (s *ProjectService) DepartmentStats(ctx context.Context) ([]models.DepartmentStat, error) {
	stats, err := s.projectRepo.DepartmentStats(ctx)
	if err != nil {
		return nil, persistenceError("fetch department statistics", err)
	}
	return stats, nil
}
