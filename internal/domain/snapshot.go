package domain

import "math"

// ProjectSnapshot is the read-only view of a project handed to the analysis
// pipeline. It is assembled by the persistence layer and never mutated by
// the AI core.
type ProjectSnapshot struct {
	Title       string
	Description *string
	StartDate   *string // YYYY-MM-DD
	DueDate     *string // YYYY-MM-DD
	Priority    string
	Status      string
	Activities  []ActivityContext
}

// ActivityContext is one existing activity as serialized into the prompt.
type ActivityContext struct {
	Title       string
	Description string
	Status      string
	Tasks       []TaskContext
}

// TaskContext is one existing task as serialized into the prompt.
type TaskContext struct {
	Title          string
	Description    string
	Status         string
	Priority       string
	EstimatedHours *float64
}

// Progress computes the completion percentage across all tasks of the
// snapshot, rounded to the nearest integer. A project with no tasks is 0%.
func (s ProjectSnapshot) Progress() int {
	total := 0
	done := 0
	for _, a := range s.Activities {
		for _, t := range a.Tasks {
			total++
			if TaskStatus(t.Status).IsDone() {
				done++
			}
		}
	}
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(done) / float64(total) * 100))
}
