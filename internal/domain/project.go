package domain

import (
	"fmt"
	"time"
)

type Project struct {
	ID          string
	OwnerID     string
	Title       string
	Description *string
	StartDate   *time.Time
	DueDate     *time.Time
	Priority    Priority
	Status      ProjectStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Validate checks the minimal invariants a project must satisfy before
// it can be persisted.
func (p *Project) Validate() error {
	if p.Title == "" {
		return fmt.Errorf("project title is required")
	}
	if p.StartDate != nil && p.DueDate != nil && p.StartDate.After(*p.DueDate) {
		return fmt.Errorf("due date must be after start date")
	}
	return nil
}

// InitialStatus derives the status a newly created project should carry:
// in_progress when the start date is today or in the past, pending otherwise.
func InitialStatus(start time.Time, now time.Time) ProjectStatus {
	startDay := start.Truncate(24 * time.Hour)
	today := now.Truncate(24 * time.Hour)
	if startDay.After(today) {
		return ProjectPending
	}
	return ProjectInProgress
}

// Team is the companion team record created alongside each project.
type Team struct {
	ID          string
	Name        string
	Description string
	ProjectID   string
	CreatedAt   time.Time
}

type Activity struct {
	ID          string
	ProjectID   string
	Title       string
	Description string
	Status      ActivityStatus
	DueDate     *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Task struct {
	ID             string
	ActivityID     string
	Title          string
	Description    string
	Status         TaskStatus
	Priority       Priority
	EstimatedHours *float64
	DueDate        *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
