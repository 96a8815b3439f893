package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nbelkacem/gestia/internal/breakdown"
	"github.com/nbelkacem/gestia/internal/db"
	"github.com/nbelkacem/gestia/internal/domain"
	"github.com/nbelkacem/gestia/internal/repository"
)

type projectService struct {
	projects   repository.ProjectRepo
	teams      repository.TeamRepo
	activities repository.ActivityRepo
	tasks      repository.TaskRepo
	uow        db.UnitOfWork
	observer   UseCaseObserver
}

// NewProjectService creates the ProjectService over the given repositories
// and unit of work. A nil observer disables telemetry.
func NewProjectService(
	projects repository.ProjectRepo,
	teams repository.TeamRepo,
	activities repository.ActivityRepo,
	tasks repository.TaskRepo,
	uow db.UnitOfWork,
	observer UseCaseObserver,
) ProjectService {
	if observer == nil {
		observer = NoopUseCaseObserver{}
	}
	return &projectService{
		projects:   projects,
		teams:      teams,
		activities: activities,
		tasks:      tasks,
		uow:        uow,
		observer:   observer,
	}
}

func (s *projectService) CreateWithTeam(ctx context.Context, params CreateProjectParams) (*domain.Project, *domain.Team, error) {
	started := time.Now()

	exists, err := s.projects.ExistsByTitle(ctx, params.OwnerID, params.Title)
	if err != nil {
		return nil, nil, err
	}
	if exists {
		return nil, nil, ErrDuplicateTitle
	}

	now := time.Now().UTC()
	start := params.StartDate
	due := params.DueDate
	priority := params.Priority
	if priority == "" {
		priority = domain.PriorityMedium
	}

	project := &domain.Project{
		ID:          uuid.New().String(),
		OwnerID:     params.OwnerID,
		Title:       params.Title,
		Description: params.Description,
		StartDate:   &start,
		DueDate:     &due,
		Priority:    priority,
		Status:      domain.InitialStatus(start, now),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := project.Validate(); err != nil {
		return nil, nil, err
	}

	team := &domain.Team{
		ID:          uuid.New().String(),
		Name:        "Equipe - " + params.Title,
		Description: "Equipe automatique pour le projet: " + params.Title,
		ProjectID:   project.ID,
		CreatedAt:   now,
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := repository.NewSQLiteProjectRepo(tx).Create(ctx, project); err != nil {
			return err
		}
		return repository.NewSQLiteTeamRepo(tx).Create(ctx, team)
	})

	s.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      "create_project_with_team",
		Duration:  time.Since(started),
		Success:   err == nil,
		Err:       err,
		Fields:    map[string]any{"owner_id": params.OwnerID},
		StartedAt: started,
	})
	if err != nil {
		return nil, nil, err
	}
	return project, team, nil
}

func (s *projectService) Overviews(ctx context.Context, ownerID string) ([]ProjectOverview, error) {
	projects, err := s.projects.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	overviews := make([]ProjectOverview, 0, len(projects))
	for _, p := range projects {
		ov, err := s.buildOverview(ctx, p)
		if err != nil {
			return nil, err
		}
		overviews = append(overviews, *ov)
	}
	return overviews, nil
}

func (s *projectService) Overview(ctx context.Context, projectID string) (*ProjectOverview, error) {
	p, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	return s.buildOverview(ctx, p)
}

func (s *projectService) buildOverview(ctx context.Context, p *domain.Project) (*ProjectOverview, error) {
	activities, err := s.activities.ListByProject(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	total, done, err := s.tasks.CountByProject(ctx, p.ID)
	if err != nil {
		return nil, err
	}

	progress := 0
	if total > 0 {
		progress = int(float64(done)/float64(total)*100 + 0.5)
	}
	return &ProjectOverview{
		Project:    p,
		Activities: len(activities),
		TotalTasks: total,
		DoneTasks:  done,
		Progress:   progress,
	}, nil
}

func (s *projectService) Snapshot(ctx context.Context, projectID string) (domain.ProjectSnapshot, error) {
	p, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		if err == repository.ErrNotFound {
			return domain.ProjectSnapshot{}, ErrProjectNotFound
		}
		return domain.ProjectSnapshot{}, err
	}

	snap := domain.ProjectSnapshot{
		Title:       p.Title,
		Description: p.Description,
		Priority:    string(p.Priority),
		Status:      string(p.Status),
	}
	if p.StartDate != nil {
		d := p.StartDate.Format("2006-01-02")
		snap.StartDate = &d
	}
	if p.DueDate != nil {
		d := p.DueDate.Format("2006-01-02")
		snap.DueDate = &d
	}

	activities, err := s.activities.ListByProject(ctx, projectID)
	if err != nil {
		return domain.ProjectSnapshot{}, err
	}
	for _, a := range activities {
		ac := domain.ActivityContext{
			Title:       a.Title,
			Description: a.Description,
			Status:      string(a.Status),
		}
		tasks, err := s.tasks.ListByActivity(ctx, a.ID)
		if err != nil {
			return domain.ProjectSnapshot{}, err
		}
		for _, t := range tasks {
			ac.Tasks = append(ac.Tasks, domain.TaskContext{
				Title:          t.Title,
				Description:    t.Description,
				Status:         string(t.Status),
				Priority:       string(t.Priority),
				EstimatedHours: t.EstimatedHours,
			})
		}
		snap.Activities = append(snap.Activities, ac)
	}
	return snap, nil
}

func (s *projectService) Materialize(ctx context.Context, projectID string, b *breakdown.Breakdown) (MaterializeStats, error) {
	started := time.Now()

	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		if err == repository.ErrNotFound {
			return MaterializeStats{}, ErrProjectNotFound
		}
		return MaterializeStats{}, err
	}

	var stats MaterializeStats
	now := time.Now().UTC()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		activityRepo := repository.NewSQLiteActivityRepo(tx)
		taskRepo := repository.NewSQLiteTaskRepo(tx)

		for _, a := range b.Activities {
			activity := &domain.Activity{
				ID:          uuid.New().String(),
				ProjectID:   project.ID,
				Title:       a.EffectiveTitle(),
				Description: a.Description,
				Status:      domain.ActivityInProgress,
				DueDate:     project.DueDate,
				CreatedAt:   now,
				UpdatedAt:   now,
			}
			if err := activityRepo.Create(ctx, activity); err != nil {
				return fmt.Errorf("persisting activity %q: %w", activity.Title, err)
			}
			stats.Activities++

			for _, t := range a.Tasks {
				task := &domain.Task{
					ID:             uuid.New().String(),
					ActivityID:     activity.ID,
					Title:          t.EffectiveTitle(),
					Description:    t.Description,
					Status:         domain.TaskPending,
					Priority:       t.EffectivePriority(),
					EstimatedHours: t.EstimatedHours,
					DueDate:        project.DueDate,
					CreatedAt:      now,
					UpdatedAt:      now,
				}
				if err := taskRepo.Create(ctx, task); err != nil {
					return fmt.Errorf("persisting task %q: %w", task.Title, err)
				}
				stats.Tasks++
			}
		}
		return nil
	})

	s.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:     "materialize_breakdown",
		Duration: time.Since(started),
		Success:  err == nil,
		Err:      err,
		Fields: map[string]any{
			"project_id": projectID,
			"activities": stats.Activities,
			"tasks":      stats.Tasks,
		},
		StartedAt: started,
	})
	if err != nil {
		return MaterializeStats{}, err
	}
	return stats, nil
}

func (s *projectService) IsOwner(ctx context.Context, projectID, userID string) (bool, error) {
	p, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		if err == repository.ErrNotFound {
			return false, ErrProjectNotFound
		}
		return false, err
	}
	return p.OwnerID == userID, nil
}
