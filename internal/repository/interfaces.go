// Package repository provides SQLite-backed persistence for projects,
// teams, activities and tasks. Every repository is built over db.DBTX so
// the same code runs against a plain connection or inside a transaction.
package repository

import (
	"context"
	"errors"

	"github.com/nbelkacem/gestia/internal/domain"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("not found")

// ProjectRepo persists projects.
type ProjectRepo interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.Project, error)
	ExistsByTitle(ctx context.Context, ownerID, title string) (bool, error)
}

// TeamRepo persists the companion team created with each project.
type TeamRepo interface {
	Create(ctx context.Context, t *domain.Team) error
	GetByProject(ctx context.Context, projectID string) (*domain.Team, error)
}

// ActivityRepo persists activities.
type ActivityRepo interface {
	Create(ctx context.Context, a *domain.Activity) error
	ListByProject(ctx context.Context, projectID string) ([]*domain.Activity, error)
}

// TaskRepo persists tasks.
type TaskRepo interface {
	Create(ctx context.Context, t *domain.Task) error
	ListByActivity(ctx context.Context, activityID string) ([]*domain.Task, error)
	CountByProject(ctx context.Context, projectID string) (total, done int, err error)
}
