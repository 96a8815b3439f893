// Package analysis orchestrates the project-analysis pipeline: prompt
// construction, the completion call, payload extraction, validation and the
// degrade-to-template policy.
package analysis

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nbelkacem/gestia/internal/domain"
)

// Mode selects how many activities the prompt asks for.
type Mode string

const (
	// ModeFullProject asks for 2 to 4 new activities.
	ModeFullProject Mode = "full_project"
	// ModeSingleActivity constrains the generation to exactly one activity,
	// used by the chat activity-creation flow.
	ModeSingleActivity Mode = "single_activity"
)

const noDescriptionPlaceholder = "Aucune description fournie"

// BuildAnalysisPrompt renders the instruction prompt for a project analysis.
// Identical inputs produce byte-identical prompts: no timestamps, no
// randomness, stable iteration order.
func BuildAnalysisPrompt(snap domain.ProjectSnapshot, progress int, mode Mode) string {
	description := noDescriptionPlaceholder
	if snap.Description != nil && *snap.Description != "" {
		description = *snap.Description
	}

	var b strings.Builder
	b.WriteString("Tu es un expert en gestion de projet. Analyse ce projet et génère des activités et tâches SPÉCIFIQUES et CONCRÈTES en tenant compte de l'état actuel du projet.\n\n")
	b.WriteString("PROJET :\n")
	fmt.Fprintf(&b, "Titre: %s\n", snap.Title)
	fmt.Fprintf(&b, "Description: %s", description)
	if snap.StartDate != nil && *snap.StartDate != "" {
		fmt.Fprintf(&b, "\nDate de début: %s", *snap.StartDate)
	}
	if snap.DueDate != nil && *snap.DueDate != "" {
		fmt.Fprintf(&b, "\nDate de fin: %s", *snap.DueDate)
	}
	if snap.Priority != "" {
		fmt.Fprintf(&b, "\nPriorité: %s", snap.Priority)
	}
	if snap.Status != "" {
		fmt.Fprintf(&b, "\nStatut: %s", snap.Status)
	}

	writeExistingActivities(&b, snap.Activities, progress)

	generationRule := "Génère 2 à 4 NOUVELLES activités SPÉCIFIQUES qui complètent le projet"
	if mode == ModeSingleActivity {
		generationRule = "Génère EXACTEMENT 1 NOUVELLE activité SPÉCIFIQUE qui complète le projet"
	}

	b.WriteString("\n\nINSTRUCTIONS CRITIQUES :\n")
	fmt.Fprintf(&b, "1. Analyse l'état actuel du projet et la progression (%d%%)\n", progress)
	b.WriteString("2. Si des activités existent déjà, propose des activités dans la CONTINUITÉ logique du projet\n")
	b.WriteString("3. Évite de proposer des activités similaires ou redondantes avec celles existantes\n")
	fmt.Fprintf(&b, "4. %s\n", generationRule)
	b.WriteString("5. Chaque activité doit avoir 2 à 4 tâches CONCRÈTES et actionnables\n")
	b.WriteString("6. Les titres doivent être clairs et professionnels\n")
	b.WriteString("7. Les estimations d'heures doivent être réalistes (2h à 20h)\n")
	b.WriteString("8. Les priorités doivent être bien distribuées (high/medium/low)\n")
	b.WriteString("9. Considère les dépendances logiques avec les activités existantes\n")

	b.WriteString(`
RÉPONDS UNIQUEMENT AVEC CE FORMAT JSON (aucun texte avant ou après) :
{
    "activities": [
        {
            "title": "Titre spécifique de la nouvelle activité",
            "description": "Description claire expliquant pourquoi cette activité complète le projet",
            "tasks": [
                {
                    "title": "Titre de la tâche",
                    "description": "Description de la tâche",
                    "priority": "high",
                    "estimated_hours": 8
                }
            ]
        }
    ]
}`)

	return b.String()
}

// writeExistingActivities serializes the existing-activity context section.
// The section is omitted entirely when the project has no activities yet.
func writeExistingActivities(b *strings.Builder, activities []domain.ActivityContext, progress int) {
	if len(activities) == 0 {
		return
	}

	fmt.Fprintf(b, "\n\nACTIVITÉS EXISTANTES (%d%% terminé) :\n", progress)
	for i, a := range activities {
		fmt.Fprintf(b, "%d. %s (Statut: %s)\n", i+1, a.Title, a.Status)
		fmt.Fprintf(b, "   Description: %s\n", a.Description)
		if len(a.Tasks) > 0 {
			b.WriteString("   Tâches:\n")
			for _, task := range a.Tasks {
				fmt.Fprintf(b, "   - %s (Statut: %s, Priorité: %s", task.Title, task.Status, task.Priority)
				if task.EstimatedHours != nil {
					fmt.Fprintf(b, ", %sh estimées", strconv.FormatFloat(*task.EstimatedHours, 'f', -1, 64))
				}
				b.WriteString(")\n")
				if task.Description != "" {
					fmt.Fprintf(b, "     Description: %s\n", task.Description)
				}
			}
		}
		b.WriteString("\n")
	}
}
