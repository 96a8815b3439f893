package chat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/nbelkacem/gestia/internal/analysis"
	"github.com/nbelkacem/gestia/internal/llm"
	"github.com/nbelkacem/gestia/internal/service"
)

const displayDateLayout = "02/01/2006"

// Responder turns classified actions into replies. It is the single chat
// entry point shared by the HTTP endpoint and the TUI.
type Responder struct {
	router   *Router
	projects service.ProjectService
	pipeline *analysis.Pipeline
	client   llm.Client
	logger   *slog.Logger
	now      func() time.Time
}

// NewResponder wires the responder. A nil logger discards telemetry.
func NewResponder(router *Router, projects service.ProjectService, pipeline *analysis.Pipeline, client llm.Client, logger *slog.Logger) *Responder {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Responder{
		router:   router,
		projects: projects,
		pipeline: pipeline,
		client:   client,
		logger:   logger,
		now:      time.Now,
	}
}

// Respond classifies one message and produces its reply. It never returns
// an error: failures become canned French replies.
func (r *Responder) Respond(ctx context.Context, ownerID, message string, turns []Turn) string {
	switch action := r.router.Classify(message, turns).(type) {
	case Command:
		return r.handleCommand(ctx, ownerID, action)
	case ActivityIntent:
		return r.handleActivityIntent(ctx, ownerID, action.RawText)
	case Casual:
		return CasualReply(action.Category, r.router.Sigil())
	case GeneralChat:
		return r.handleGeneralChat(ctx, action.Prompt)
	}
	return ProcessingErrorReply(r.router.Sigil())
}

func (r *Responder) handleCommand(ctx context.Context, ownerID string, cmd Command) string {
	if !cmd.Known {
		return UnknownCommandReply(cmd.Name, r.router.Sigil())
	}
	switch cmd.Name {
	case CmdHelp:
		return HelpReply(r.router.Sigil())
	case CmdCreateProject:
		return r.handleCreateProject(ctx, ownerID, cmd.Args)
	case CmdCreateActivity:
		return r.handleActivityIntent(ctx, ownerID, cmd.Args)
	case CmdListProjects:
		return r.handleListProjects(ctx, ownerID)
	case CmdProjectStatus:
		return r.handleProjectStatus(ctx, ownerID, cmd.Args)
	}
	return UnknownCommandReply(cmd.Name, r.router.Sigil())
}

func (r *Responder) handleCreateProject(ctx context.Context, ownerID, args string) string {
	if strings.TrimSpace(args) == "" {
		return fmt.Sprintf("Veuillez spécifier les détails du projet.\nUsage : %screate-project [titre] | [description] | [date_debut] | [date_fin]\nFormat des dates : YYYY-MM-DD", r.router.Sigil())
	}

	parts := strings.Split(args, "|")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	field := func(i int) string {
		if i < len(parts) {
			return parts[i]
		}
		return ""
	}

	title := field(0)
	if title == "" {
		return "Le titre du projet est obligatoire."
	}

	now := r.now().UTC()
	startStr := field(2)
	endStr := field(3)
	if startStr == "" {
		startStr = now.Format("2006-01-02")
	}
	if endStr == "" {
		endStr = now.AddDate(0, 0, 30).Format("2006-01-02")
	}

	start, err := time.Parse("2006-01-02", startStr)
	if err != nil {
		return "Format de date invalide.\nUtilisez le format YYYY-MM-DD (ex: 2025-12-25)."
	}
	end, err := time.Parse("2006-01-02", endStr)
	if err != nil {
		return "Format de date invalide.\nUtilisez le format YYYY-MM-DD (ex: 2025-12-25)."
	}
	if start.After(end) {
		return "La date de fin doit être après la date de début."
	}

	params := service.CreateProjectParams{
		OwnerID:   ownerID,
		Title:     title,
		StartDate: start,
		DueDate:   end,
	}
	if desc := field(1); desc != "" {
		params.Description = &desc
	}

	project, team, err := r.projects.CreateWithTeam(ctx, params)
	if err != nil {
		if errors.Is(err, service.ErrDuplicateTitle) {
			return fmt.Sprintf("Un projet avec ce nom existe déjà : %s", title)
		}
		r.logger.Error("create project failed", "owner_id", ownerID, "error", err)
		return "Erreur lors de la création du projet."
	}

	return fmt.Sprintf("✅ Projet créé avec succès !\nTitre : %s\nStatut : %s\nDébut : %s\nFin prévue : %s\nÉquipe : %s",
		project.Title,
		StatusLabel(project.Status),
		start.Format(displayDateLayout),
		end.Format(displayDateLayout),
		team.Name,
	)
}

func (r *Responder) handleListProjects(ctx context.Context, ownerID string) string {
	overviews, err := r.projects.Overviews(ctx, ownerID)
	if err != nil {
		r.logger.Error("list projects failed", "owner_id", ownerID, "error", err)
		return ProcessingErrorReply(r.router.Sigil())
	}
	if len(overviews) == 0 {
		return "📋 Aucun projet trouvé. Créez d'abord un projet."
	}

	var b strings.Builder
	b.WriteString("📋 Vos projets\n")
	for _, ov := range overviews {
		fmt.Fprintf(&b, "\n%s %s\n", StatusIcon(ov.Project.Status), ov.Project.Title)
		fmt.Fprintf(&b, "   📊 %d activités   ✓ %d/%d tâches   📈 %d%%\n",
			ov.Activities, ov.DoneTasks, ov.TotalTasks, ov.Progress)
	}
	return b.String()
}

func (r *Responder) handleProjectStatus(ctx context.Context, ownerID, args string) string {
	needle := strings.TrimSpace(args)
	if needle == "" {
		return fmt.Sprintf("Veuillez spécifier le nom du projet.\nUsage : %sproject-status [nom du projet]", r.router.Sigil())
	}

	ov, err := r.findProject(ctx, ownerID, needle)
	if err != nil {
		r.logger.Error("project status failed", "owner_id", ownerID, "error", err)
		return ProcessingErrorReply(r.router.Sigil())
	}
	if ov == nil {
		return fmt.Sprintf("Projet non trouvé : %s", needle)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", StatusIcon(ov.Project.Status), ov.Project.Title)
	fmt.Fprintf(&b, "Statut : %s\n", ov.Project.Status)
	fmt.Fprintf(&b, "Activités : %d\n", ov.Activities)
	fmt.Fprintf(&b, "Tâches terminées : %d/%d\n", ov.DoneTasks, ov.TotalTasks)
	fmt.Fprintf(&b, "Progression : %d%%\n", ov.Progress)
	if ov.Project.DueDate != nil {
		fmt.Fprintf(&b, "Échéance : %s\n", ov.Project.DueDate.Format(displayDateLayout))
	}
	return b.String()
}

func (r *Responder) handleActivityIntent(ctx context.Context, ownerID, text string) string {
	ov, err := r.findProject(ctx, ownerID, text)
	if err != nil {
		r.logger.Error("activity intent failed", "owner_id", ownerID, "error", err)
		return ProcessingErrorReply(r.router.Sigil())
	}
	if ov == nil {
		return "Pour créer une activité, veuillez spécifier le projet.\n" +
			"Exemple : \"Crée une activité de développement pour le projet Site Web\""
	}

	snap, err := r.projects.Snapshot(ctx, ov.Project.ID)
	if err != nil {
		r.logger.Error("snapshot failed", "project_id", ov.Project.ID, "error", err)
		return ProcessingErrorReply(r.router.Sigil())
	}

	result := r.pipeline.Analyze(ctx, snap, snap.Progress(), analysis.ModeSingleActivity)
	stats, err := r.projects.Materialize(ctx, ov.Project.ID, result.Breakdown)
	if err != nil {
		r.logger.Error("materialize failed", "project_id", ov.Project.ID, "error", err)
		return "Erreur lors de la création de l'activité."
	}

	reply := fmt.Sprintf("✅ %d activité(s) et %d tâche(s) créées pour le projet %s.",
		stats.Activities, stats.Tasks, ov.Project.Title)
	if result.UsedFallback {
		reply += "\nL'IA était indisponible, un plan standard a été appliqué."
	}
	return reply
}

func (r *Responder) handleGeneralChat(ctx context.Context, prompt string) string {
	text, err := r.client.Complete(ctx, llm.CompletionRequest{Task: llm.TaskChat, Prompt: prompt})
	if err != nil {
		r.logger.Error("chat completion failed", "cause", llm.ErrorKind(err), "error", err)
		return ProcessingErrorReply(r.router.Sigil())
	}
	return strings.TrimSpace(text)
}

// findProject resolves a project by substring match against the owner's
// project titles. A nil overview with nil error means no match.
func (r *Responder) findProject(ctx context.Context, ownerID, message string) (*service.ProjectOverview, error) {
	overviews, err := r.projects.Overviews(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	titles := make([]string, len(overviews))
	for i, ov := range overviews {
		titles[i] = ov.Project.Title
	}
	if i, ok := MatchProjectTitle(message, titles); ok {
		return &overviews[i], nil
	}
	return nil, nil
}
