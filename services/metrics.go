package services

import (
	"github.com/project-registry/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	projectsSubmitted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "projects_submitted_total",
		Help: "Project submissions by outcome (created, rejected, failed).",
	}, []string{"outcome"})

	projectStatusUpdates = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "project_status_updates_total",
		Help: "Status updates by the status value that was set.",
	}, []string{"status"})
)

// statusLabel keeps the status label set bounded; free-text statuses are
// reported as "other".
func statusLabel(status string) string {
	switch status {
	case models.StatusRegistered, models.StatusRunning, models.StatusClosed,
		models.StatusClosureDelayed, models.StatusCancelled:
		return status
	}
	return "other"
}
