// Package breakdown defines the structured object the model is instructed to
// produce for a project analysis, and the validation boundary that turns
// untrusted JSON text into that object.
package breakdown

import "github.com/nbelkacem/gestia/internal/domain"

// Breakdown is the contract the model must satisfy: at least one activity,
// each with a non-empty list of tasks.
type Breakdown struct {
	Activities []Activity `json:"activities"`
}

// Activity is one generated activity with its nested tasks.
type Activity struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Tasks       []Task `json:"tasks"`
}

// Task is one generated task. Optional fields keep whatever the model sent;
// defaults are applied at materialization, not during validation.
type Task struct {
	Title          string   `json:"title,omitempty"`
	Description    string   `json:"description,omitempty"`
	Priority       string   `json:"priority,omitempty"`
	EstimatedHours *float64 `json:"estimated_hours,omitempty"`
}

// Placeholder titles used when the model omits one.
const (
	DefaultActivityTitle = "Activité sans titre"
	DefaultTaskTitle     = "Tâche sans titre"
)

// EffectiveTitle returns the activity title, or the placeholder if absent.
func (a Activity) EffectiveTitle() string {
	if a.Title == "" {
		return DefaultActivityTitle
	}
	return a.Title
}

// EffectiveTitle returns the task title, or the placeholder if absent.
func (t Task) EffectiveTitle() string {
	if t.Title == "" {
		return DefaultTaskTitle
	}
	return t.Title
}

// EffectivePriority returns the task priority mapped to a canonical value.
func (t Task) EffectivePriority() domain.Priority {
	return MapPriority(t.Priority)
}

// TaskCount returns the total number of tasks across all activities.
func (b *Breakdown) TaskCount() int {
	n := 0
	for _, a := range b.Activities {
		n += len(a.Tasks)
	}
	return n
}
