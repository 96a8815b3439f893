package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/nbelkacem/gestia/internal/db"
	"github.com/nbelkacem/gestia/internal/domain"
	"github.com/nbelkacem/gestia/internal/repository"
)

// SeedProject inserts a project with sensible defaults and returns it.
func SeedProject(t *testing.T, conn db.DBTX, ownerID, title string) *domain.Project {
	t.Helper()
	now := time.Now().UTC()
	start := now
	p := &domain.Project{
		ID:        uuid.New().String(),
		OwnerID:   ownerID,
		Title:     title,
		StartDate: &start,
		Priority:  domain.PriorityMedium,
		Status:    domain.ProjectInProgress,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := repository.NewSQLiteProjectRepo(conn).Create(context.Background(), p); err != nil {
		t.Fatalf("seeding project: %v", err)
	}
	return p
}

// SeedActivity inserts an activity under the given project.
func SeedActivity(t *testing.T, conn db.DBTX, projectID, title string) *domain.Activity {
	t.Helper()
	now := time.Now().UTC()
	a := &domain.Activity{
		ID:        uuid.New().String(),
		ProjectID: projectID,
		Title:     title,
		Status:    domain.ActivityPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := repository.NewSQLiteActivityRepo(conn).Create(context.Background(), a); err != nil {
		t.Fatalf("seeding activity: %v", err)
	}
	return a
}

// SeedTask inserts a task under the given activity.
func SeedTask(t *testing.T, conn db.DBTX, activityID, title string, status domain.TaskStatus) *domain.Task {
	t.Helper()
	now := time.Now().UTC()
	task := &domain.Task{
		ID:         uuid.New().String(),
		ActivityID: activityID,
		Title:      title,
		Status:     status,
		Priority:   domain.PriorityMedium,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := repository.NewSQLiteTaskRepo(conn).Create(context.Background(), task); err != nil {
		t.Fatalf("seeding task: %v", err)
	}
	return task
}
