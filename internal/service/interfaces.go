// Package service implements the application use cases over the repository
// layer: project creation with its companion team, project overviews,
// snapshot assembly for analysis and breakdown materialization.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/nbelkacem/gestia/internal/breakdown"
	"github.com/nbelkacem/gestia/internal/domain"
)

// ErrDuplicateTitle is returned when the owner already has a project with
// the requested title.
var ErrDuplicateTitle = errors.New("a project with this title already exists")

// ErrProjectNotFound is returned when a project id resolves to nothing.
var ErrProjectNotFound = errors.New("project not found")

// CreateProjectParams carries the validated inputs for project creation.
type CreateProjectParams struct {
	OwnerID     string
	Title       string
	Description *string
	StartDate   time.Time
	DueDate     time.Time
	Priority    domain.Priority
}

// ProjectOverview is one project with its aggregate activity and task
// statistics, as shown by list and status commands.
type ProjectOverview struct {
	Project    *domain.Project
	Activities int
	TotalTasks int
	DoneTasks  int
	Progress   int
}

// MaterializeStats reports what one materialization persisted.
type MaterializeStats struct {
	Activities int
	Tasks      int
}

// ProjectService is the use-case surface consumed by the chat responder,
// the HTTP handlers and the CLI.
type ProjectService interface {
	// CreateWithTeam persists a new project and its companion team in one
	// transaction. Returns ErrDuplicateTitle when the owner already has a
	// project with the same title.
	CreateWithTeam(ctx context.Context, params CreateProjectParams) (*domain.Project, *domain.Team, error)

	// Overviews returns all projects of the owner with their statistics,
	// ordered by creation time.
	Overviews(ctx context.Context, ownerID string) ([]ProjectOverview, error)

	// Overview returns the statistics of a single project.
	Overview(ctx context.Context, projectID string) (*ProjectOverview, error)

	// Snapshot assembles the read-only view of a project handed to the
	// analysis pipeline.
	Snapshot(ctx context.Context, projectID string) (domain.ProjectSnapshot, error)

	// Materialize persists a breakdown under the project: all activities and
	// tasks, or none. Titles, priorities and statuses are defaulted here.
	Materialize(ctx context.Context, projectID string, b *breakdown.Breakdown) (MaterializeStats, error)

	// IsOwner reports whether userID owns the project. A missing project is
	// ErrProjectNotFound, not false.
	IsOwner(ctx context.Context, projectID, userID string) (bool, error)
}
