package models

import (
	"time"
)

// Known project statuses. Status is free text in storage; these are the values
// the counters recognise.
const (
	StatusRegistered     = "Registered"
	StatusRunning        = "Running"
	StatusClosed         = "Closed"
	StatusClosureDelayed = "Closure Delayed"
	StatusCancelled      = "Cancelled"
)

// RecentProjectsLimit is the number of records returned by the recent-projects query.
const RecentProjectsLimit = 5

// Project represents a registered project record
type Project struct {
	ID               string    `json:"_id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Name             string    `json:"name" gorm:"not null"`
	Reason           string    `json:"reason" gorm:"not null"`
	Type             string    `json:"type" gorm:"not null"`
	Div              *string   `json:"div,omitempty" gorm:"column:div;index"`
	Category         string    `json:"category" gorm:"not null"`
	Priority         string    `json:"priority" gorm:"not null"`
	HelpDeskLocation string    `json:"helpDeskLocation" gorm:"not null"`
	ProjectLocation  string    `json:"projectLocation" gorm:"not null"`
	Status           string    `json:"status" gorm:"not null;default:'Registered';index"`
	StartDate        time.Time `json:"startDate" gorm:"not null"`
	EndDate          time.Time `json:"endDate" gorm:"not null"`
	CreatedAt        time.Time `json:"createdAt" gorm:"index"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// ProjectCounters is the per-status summary returned by the counters endpoint.
// Registered projects are only part of the total.
type ProjectCounters struct {
	TotalProjects          int64 `json:"totalProjects"`
	ClosedProjects         int64 `json:"closedProjects"`
	RunningProjects        int64 `json:"runningProjects"`
	ClosureDelayedProjects int64 `json:"closureDelayedProjects"`
	CancelledProjects      int64 `json:"cancelledProjects"`
}

// DepartmentStat is one group of the department statistics. Div is nil for
// projects submitted without a division.
type DepartmentStat struct {
	Div            *string `json:"_id" bson:"_id" gorm:"column:div"`
	TotalProjects  int64   `json:"totalProjects" bson:"totalProjects" gorm:"column:total_projects"`
	ClosedProjects int64   `json:"closedProjects" bson:"closedProjects" gorm:"column:closed_projects"`
}
