package cli

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nbelkacem/gestia/internal/analysis"
	"github.com/nbelkacem/gestia/internal/breakdown"
	"github.com/nbelkacem/gestia/internal/chat"
	"github.com/nbelkacem/gestia/internal/config"
	"github.com/nbelkacem/gestia/internal/domain"
	"github.com/nbelkacem/gestia/internal/llm"
	"github.com/nbelkacem/gestia/internal/service"
)

type stubProjects struct {
	overviews    []service.ProjectOverview
	materialized int
}

func (s *stubProjects) CreateWithTeam(_ context.Context, params service.CreateProjectParams) (*domain.Project, *domain.Team, error) {
	p := &domain.Project{ID: "p1", Title: params.Title, Status: domain.ProjectInProgress}
	return p, &domain.Team{Name: "Equipe - " + params.Title}, nil
}

func (s *stubProjects) Overviews(context.Context, string) ([]service.ProjectOverview, error) {
	return s.overviews, nil
}

func (s *stubProjects) Overview(context.Context, string) (*service.ProjectOverview, error) {
	if len(s.overviews) == 0 {
		return nil, service.ErrProjectNotFound
	}
	return &s.overviews[0], nil
}

func (s *stubProjects) Snapshot(context.Context, string) (domain.ProjectSnapshot, error) {
	return domain.ProjectSnapshot{Title: "Site Web"}, nil
}

func (s *stubProjects) Materialize(_ context.Context, _ string, b *breakdown.Breakdown) (service.MaterializeStats, error) {
	s.materialized++
	return service.MaterializeStats{Activities: len(b.Activities), Tasks: b.TaskCount()}, nil
}

func (s *stubProjects) IsOwner(context.Context, string, string) (bool, error) { return true, nil }

type stubLLM struct {
	text string
	err  error
}

func (s *stubLLM) Complete(context.Context, llm.CompletionRequest) (string, error) {
	return s.text, s.err
}

func (s *stubLLM) Probe(context.Context) error { return s.err }

func newTestApp(projects service.ProjectService, client llm.Client) *App {
	pipeline := analysis.NewPipeline(client, nil)
	return &App{
		Config:        config.Default(),
		Projects:      projects,
		Responder:     chat.NewResponder(chat.NewRouter("/"), projects, pipeline, client, nil),
		Pipeline:      pipeline,
		Client:        client,
		UserID:        "local",
		IsInteractive: func() bool { return false },
	}
}

func execute(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func siteWebOverview() service.ProjectOverview {
	due := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	return service.ProjectOverview{
		Project:    &domain.Project{ID: "p1", OwnerID: "local", Title: "Site Web", Status: domain.ProjectInProgress, DueDate: &due},
		Activities: 2,
		TotalTasks: 8,
		DoneTasks:  4,
		Progress:   50,
	}
}

func TestProjectList_Empty(t *testing.T) {
	out, err := execute(t, newTestApp(&stubProjects{}, &stubLLM{}), "project", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No projects found.")
}

func TestProjectList(t *testing.T) {
	app := newTestApp(&stubProjects{overviews: []service.ProjectOverview{siteWebOverview()}}, &stubLLM{})
	out, err := execute(t, app, "project", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Site Web")
	assert.Contains(t, out, "4/8 tasks")
	assert.Contains(t, out, "50%")
}

func TestProjectStatus(t *testing.T) {
	app := newTestApp(&stubProjects{overviews: []service.ProjectOverview{siteWebOverview()}}, &stubLLM{})
	out, err := execute(t, app, "project", "status", "site", "web")
	require.NoError(t, err)
	assert.Contains(t, out, "Progress:   50%")
	assert.Contains(t, out, "Due:        2026-10-01")
}

func TestProjectStatus_NotFound(t *testing.T) {
	app := newTestApp(&stubProjects{}, &stubLLM{})
	_, err := execute(t, app, "project", "status", "Inconnu")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "project not found")
}

func TestProjectNew_Flags(t *testing.T) {
	app := newTestApp(&stubProjects{}, &stubLLM{})
	out, err := execute(t, app, "project", "new", "--title", "Site Web", "--start", "2026-01-10", "--due", "2026-03-01")
	require.NoError(t, err)
	assert.Contains(t, out, `Created project "Site Web"`)
	assert.Contains(t, out, "Equipe - Site Web")
}

func TestProjectNew_RequiresTitle(t *testing.T) {
	app := newTestApp(&stubProjects{}, &stubLLM{})
	_, err := execute(t, app, "project", "new")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "title is required")
}

func TestAnalyze_PersistsAndReports(t *testing.T) {
	svc := &stubProjects{overviews: []service.ProjectOverview{siteWebOverview()}}
	payload := `{"activities":[{"title":"Conception","tasks":[{"title":"Maquettes"}]}]}`
	app := newTestApp(svc, &stubLLM{text: payload})

	out, err := execute(t, app, "analyze", "Site Web")
	require.NoError(t, err)
	assert.Equal(t, 1, svc.materialized)
	assert.Contains(t, out, "Created 1 activities and 1 tasks")
	assert.NotContains(t, out, "standard plan")
}

func TestAnalyze_FallbackReported(t *testing.T) {
	svc := &stubProjects{overviews: []service.ProjectOverview{siteWebOverview()}}
	app := newTestApp(svc, &stubLLM{err: &llm.TransportError{Err: errors.New("down")}})

	out, err := execute(t, app, "analyze", "Site Web")
	require.NoError(t, err)
	assert.Contains(t, out, "Created 4 activities and 16 tasks")
	assert.Contains(t, out, "standard plan")
}

func TestChat_OneShot(t *testing.T) {
	app := newTestApp(&stubProjects{}, &stubLLM{})
	out, err := execute(t, app, "chat", "/help")
	require.NoError(t, err)
	assert.Contains(t, out, "/create-project")
}

func TestLLMProbe(t *testing.T) {
	app := newTestApp(&stubProjects{}, &stubLLM{})
	out, err := execute(t, app, "llm", "probe")
	require.NoError(t, err)
	assert.Contains(t, out, "reachable")

	app = newTestApp(&stubProjects{}, &stubLLM{err: &llm.TransportError{Err: errors.New("refused")}})
	_, err = execute(t, app, "llm", "probe")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TRANSPORT")
}
