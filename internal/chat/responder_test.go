package chat

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nbelkacem/gestia/internal/analysis"
	"github.com/nbelkacem/gestia/internal/breakdown"
	"github.com/nbelkacem/gestia/internal/domain"
	"github.com/nbelkacem/gestia/internal/llm"
	"github.com/nbelkacem/gestia/internal/service"
)

// fakeProjectService records mutations and serves canned overviews.
type fakeProjectService struct {
	overviews []service.ProjectOverview
	snapshot  domain.ProjectSnapshot
	createErr error

	created      []service.CreateProjectParams
	materialized []*breakdown.Breakdown
}

func (f *fakeProjectService) CreateWithTeam(_ context.Context, params service.CreateProjectParams) (*domain.Project, *domain.Team, error) {
	if f.createErr != nil {
		return nil, nil, f.createErr
	}
	f.created = append(f.created, params)
	project := &domain.Project{
		ID:        "p1",
		OwnerID:   params.OwnerID,
		Title:     params.Title,
		StartDate: &params.StartDate,
		DueDate:   &params.DueDate,
		Status:    domain.InitialStatus(params.StartDate, time.Now().UTC()),
	}
	team := &domain.Team{ID: "t1", Name: "Equipe - " + params.Title, ProjectID: "p1"}
	return project, team, nil
}

func (f *fakeProjectService) Overviews(context.Context, string) ([]service.ProjectOverview, error) {
	return f.overviews, nil
}

func (f *fakeProjectService) Overview(_ context.Context, projectID string) (*service.ProjectOverview, error) {
	for i := range f.overviews {
		if f.overviews[i].Project.ID == projectID {
			return &f.overviews[i], nil
		}
	}
	return nil, service.ErrProjectNotFound
}

func (f *fakeProjectService) Snapshot(context.Context, string) (domain.ProjectSnapshot, error) {
	return f.snapshot, nil
}

func (f *fakeProjectService) Materialize(_ context.Context, _ string, b *breakdown.Breakdown) (service.MaterializeStats, error) {
	f.materialized = append(f.materialized, b)
	return service.MaterializeStats{Activities: len(b.Activities), Tasks: b.TaskCount()}, nil
}

func (f *fakeProjectService) IsOwner(context.Context, string, string) (bool, error) {
	return true, nil
}

// fakeLLM returns a fixed completion or error.
type fakeLLM struct {
	text string
	err  error
}

func (f *fakeLLM) Complete(context.Context, llm.CompletionRequest) (string, error) {
	return f.text, f.err
}

func (f *fakeLLM) Probe(context.Context) error { return f.err }

func overviewFor(title string) service.ProjectOverview {
	due := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	return service.ProjectOverview{
		Project: &domain.Project{
			ID:      "p-" + title,
			OwnerID: "u1",
			Title:   title,
			Status:  domain.ProjectInProgress,
			DueDate: &due,
		},
		Activities: 2,
		TotalTasks: 8,
		DoneTasks:  4,
		Progress:   50,
	}
}

func newResponder(projects service.ProjectService, client llm.Client, sigil string) *Responder {
	return NewResponder(NewRouter(sigil), projects, analysis.NewPipeline(client, nil), client, nil)
}

func TestRespond_Help(t *testing.T) {
	r := newResponder(&fakeProjectService{}, &fakeLLM{}, "")
	reply := r.Respond(context.Background(), "u1", "/help", nil)
	assert.Contains(t, reply, "/create-project")
	assert.Contains(t, reply, "/project-status")
}

func TestRespond_UnknownCommand(t *testing.T) {
	r := newResponder(&fakeProjectService{}, &fakeLLM{}, "")
	reply := r.Respond(context.Background(), "u1", "/frobnicate", nil)
	assert.Contains(t, reply, "Commande inconnue : /frobnicate")
	assert.Contains(t, reply, "/help")
}

func TestRespond_ProjectStatus_NotFound_NoMutation(t *testing.T) {
	svc := &fakeProjectService{overviews: []service.ProjectOverview{overviewFor("Intranet")}}
	r := newResponder(svc, &fakeLLM{}, ";")

	reply := r.Respond(context.Background(), "u1", ";project-status Website", nil)

	assert.Contains(t, reply, "Projet non trouvé : Website")
	assert.Empty(t, svc.created)
	assert.Empty(t, svc.materialized)
}

func TestRespond_ProjectStatus_Found(t *testing.T) {
	svc := &fakeProjectService{overviews: []service.ProjectOverview{overviewFor("Site Web")}}
	r := newResponder(svc, &fakeLLM{}, "")

	reply := r.Respond(context.Background(), "u1", "/project-status site web", nil)

	assert.Contains(t, reply, "Site Web")
	assert.Contains(t, reply, "Tâches terminées : 4/8")
	assert.Contains(t, reply, "Progression : 50%")
	assert.Contains(t, reply, "Échéance : 01/10/2026")
}

func TestRespond_CreateProject(t *testing.T) {
	svc := &fakeProjectService{}
	r := newResponder(svc, &fakeLLM{}, "")

	reply := r.Respond(context.Background(), "u1",
		"/create-project Site Web | Refonte du site | 2026-01-10 | 2026-03-01", nil)

	assert.Contains(t, reply, "Projet créé avec succès")
	assert.Contains(t, reply, "Équipe : Equipe - Site Web")
	assert.Contains(t, reply, "Début : 10/01/2026")

	require.Len(t, svc.created, 1)
	params := svc.created[0]
	assert.Equal(t, "Site Web", params.Title)
	require.NotNil(t, params.Description)
	assert.Equal(t, "Refonte du site", *params.Description)
	assert.Equal(t, "2026-01-10", params.StartDate.Format("2006-01-02"))
}

func TestRespond_CreateProject_DefaultsDates(t *testing.T) {
	svc := &fakeProjectService{}
	r := newResponder(svc, &fakeLLM{}, "")
	r.now = func() time.Time { return time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC) }

	r.Respond(context.Background(), "u1", "/create-project Sans Dates", nil)

	require.Len(t, svc.created, 1)
	assert.Equal(t, "2026-08-28", svc.created[0].StartDate.Format("2006-01-02"))
	assert.Equal(t, "2026-09-27", svc.created[0].DueDate.Format("2006-01-02"))
	assert.Nil(t, svc.created[0].Description)
}

func TestRespond_CreateProject_InvalidDate(t *testing.T) {
	svc := &fakeProjectService{}
	r := newResponder(svc, &fakeLLM{}, "")

	reply := r.Respond(context.Background(), "u1", "/create-project X | | 10-01-2026", nil)

	assert.Contains(t, reply, "Format de date invalide")
	assert.Empty(t, svc.created)
}

func TestRespond_CreateProject_EndBeforeStart(t *testing.T) {
	r := newResponder(&fakeProjectService{}, &fakeLLM{}, "")
	reply := r.Respond(context.Background(), "u1",
		"/create-project X | | 2026-03-01 | 2026-01-10", nil)
	assert.Contains(t, reply, "La date de fin doit être après la date de début")
}

func TestRespond_CreateProject_DuplicateTitle(t *testing.T) {
	svc := &fakeProjectService{createErr: service.ErrDuplicateTitle}
	r := newResponder(svc, &fakeLLM{}, "")

	reply := r.Respond(context.Background(), "u1", "/create-project Site Web", nil)
	assert.Contains(t, reply, "Un projet avec ce nom existe déjà : Site Web")
}

func TestRespond_CreateProject_MissingArgs(t *testing.T) {
	r := newResponder(&fakeProjectService{}, &fakeLLM{}, "")
	reply := r.Respond(context.Background(), "u1", "/create-project", nil)
	assert.Contains(t, reply, "Veuillez spécifier les détails du projet")
}

func TestRespond_ListProjects_Empty(t *testing.T) {
	r := newResponder(&fakeProjectService{}, &fakeLLM{}, "")
	reply := r.Respond(context.Background(), "u1", "/list-projects", nil)
	assert.Contains(t, reply, "Aucun projet trouvé")
}

func TestRespond_ListProjects(t *testing.T) {
	svc := &fakeProjectService{overviews: []service.ProjectOverview{overviewFor("Site Web")}}
	r := newResponder(svc, &fakeLLM{}, "")

	reply := r.Respond(context.Background(), "u1", "/list-projects", nil)
	assert.Contains(t, reply, "Vos projets")
	assert.Contains(t, reply, "Site Web")
	assert.Contains(t, reply, "4/8 tâches")
	assert.Contains(t, reply, "50%")
}

func TestRespond_Casual(t *testing.T) {
	r := newResponder(&fakeProjectService{}, &fakeLLM{}, "")
	reply := r.Respond(context.Background(), "u1", "Bonjour !", nil)
	assert.Contains(t, reply, "Bonjour ! Je suis votre assistant IA")
}

func TestRespond_GeneralChat(t *testing.T) {
	r := newResponder(&fakeProjectService{}, &fakeLLM{text: "  Voici un conseil.  "}, "")
	reply := r.Respond(context.Background(), "u1", "Explique les jalons d'un projet", nil)
	assert.Equal(t, "Voici un conseil.", reply)
}

func TestRespond_GeneralChat_ErrorIsCanned(t *testing.T) {
	client := &fakeLLM{err: &llm.TransportError{Err: errors.New("boom")}}
	r := newResponder(&fakeProjectService{}, client, "")

	reply := r.Respond(context.Background(), "u1", "Explique les jalons d'un projet", nil)
	assert.Contains(t, reply, "Je n'ai pas pu traiter votre demande")
	assert.NotContains(t, reply, "boom")
}

func TestRespond_ActivityIntent_NoProject(t *testing.T) {
	r := newResponder(&fakeProjectService{}, &fakeLLM{}, "")
	reply := r.Respond(context.Background(), "u1", "Crée une activité de test", nil)
	assert.Contains(t, reply, "veuillez spécifier le projet")
}

func TestRespond_ActivityIntent_Materializes(t *testing.T) {
	svc := &fakeProjectService{
		overviews: []service.ProjectOverview{overviewFor("Site Web")},
		snapshot:  domain.ProjectSnapshot{Title: "Site Web"},
	}
	payload := `{"activities":[{"title":"Design","tasks":[{"title":"Maquettes"}]}]}`
	r := newResponder(svc, &fakeLLM{text: payload}, "")

	reply := r.Respond(context.Background(), "u1", "crée une activité pour le projet Site Web", nil)

	require.Len(t, svc.materialized, 1)
	assert.Equal(t, "Design", svc.materialized[0].Activities[0].Title)
	assert.Contains(t, reply, "1 activité(s) et 1 tâche(s)")
	assert.NotContains(t, reply, "plan standard")
}

func TestRespond_ActivityIntent_FallbackNoted(t *testing.T) {
	svc := &fakeProjectService{
		overviews: []service.ProjectOverview{overviewFor("Site Web")},
		snapshot:  domain.ProjectSnapshot{Title: "Site Web"},
	}
	client := &fakeLLM{err: &llm.TransportError{Err: errors.New("down")}}
	r := newResponder(svc, client, "")

	reply := r.Respond(context.Background(), "u1", "nouvelle activité pour Site Web", nil)

	require.Len(t, svc.materialized, 1)
	assert.Len(t, svc.materialized[0].Activities, 4)
	assert.Contains(t, reply, "plan standard")
}
