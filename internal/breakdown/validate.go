package breakdown

import (
	"encoding/json"
	"fmt"
)

// ValidationErrorKind enumerates the distinct ways a payload can fail
// structural validation.
type ValidationErrorKind string

const (
	ErrJSONSyntax           ValidationErrorKind = "JSON_SYNTAX"
	ErrMissingActivitiesKey ValidationErrorKind = "MISSING_ACTIVITIES_KEY"
	ErrActivitiesNotArray   ValidationErrorKind = "ACTIVITIES_NOT_ARRAY"
	ErrEmptyActivities      ValidationErrorKind = "EMPTY_ACTIVITIES"
	ErrInvalidActivity      ValidationErrorKind = "INVALID_ACTIVITY"
	ErrTasksNotArray        ValidationErrorKind = "TASKS_NOT_ARRAY"
)

// ValidationError describes a structural validation failure. Index is the
// offending activity index for the per-activity kinds, -1 otherwise.
type ValidationError struct {
	Kind   ValidationErrorKind
	Index  int
	Detail string
}

func (e *ValidationError) Error() string {
	switch e.Kind {
	case ErrInvalidActivity, ErrTasksNotArray:
		return fmt.Sprintf("%s at activity %d: %s", e.Kind, e.Index, e.Detail)
	default:
		return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
	}
}

const excerptLen = 200

// Validate parses jsonText and checks it against the Breakdown contract.
// Structural failures reject the whole payload; missing per-task fields do
// not (they are defaulted at materialization). Untyped values never escape
// this function: the result is a fully typed Breakdown.
func Validate(jsonText string) (*Breakdown, error) {
	var root any
	if err := json.Unmarshal([]byte(jsonText), &root); err != nil {
		return nil, &ValidationError{
			Kind:   ErrJSONSyntax,
			Index:  -1,
			Detail: fmt.Sprintf("%v - excerpt: %s", err, truncate(jsonText, excerptLen)),
		}
	}

	obj, ok := root.(map[string]any)
	if !ok {
		return nil, &ValidationError{Kind: ErrMissingActivitiesKey, Index: -1, Detail: "top-level value is not an object"}
	}

	rawActivities, present := obj["activities"]
	if !present {
		return nil, &ValidationError{Kind: ErrMissingActivitiesKey, Index: -1, Detail: `no "activities" key`}
	}

	list, ok := rawActivities.([]any)
	if !ok {
		return nil, &ValidationError{Kind: ErrActivitiesNotArray, Index: -1, Detail: `"activities" is not an array`}
	}
	if len(list) == 0 {
		return nil, &ValidationError{Kind: ErrEmptyActivities, Index: -1, Detail: "no activities generated"}
	}

	b := &Breakdown{Activities: make([]Activity, 0, len(list))}
	for i, raw := range list {
		activity, err := validateActivity(i, raw)
		if err != nil {
			return nil, err
		}
		b.Activities = append(b.Activities, activity)
	}

	return b, nil
}

func validateActivity(index int, raw any) (Activity, error) {
	obj, ok := raw.(map[string]any)
	if !ok {
		return Activity{}, &ValidationError{Kind: ErrInvalidActivity, Index: index, Detail: "not an object"}
	}
	if _, present := obj["title"]; !present {
		return Activity{}, &ValidationError{Kind: ErrInvalidActivity, Index: index, Detail: `missing "title"`}
	}
	rawTasks, present := obj["tasks"]
	if !present {
		return Activity{}, &ValidationError{Kind: ErrInvalidActivity, Index: index, Detail: `missing "tasks"`}
	}
	taskList, ok := rawTasks.([]any)
	if !ok {
		return Activity{}, &ValidationError{Kind: ErrTasksNotArray, Index: index, Detail: `"tasks" is not an array`}
	}

	activity := Activity{
		Title:       stringField(obj, "title"),
		Description: stringField(obj, "description"),
		Tasks:       make([]Task, 0, len(taskList)),
	}
	for _, rawTask := range taskList {
		activity.Tasks = append(activity.Tasks, coerceTask(rawTask))
	}
	return activity, nil
}

// coerceTask reads task fields leniently. Type mismatches are treated the
// same as absent fields; defaults are filled in later, at materialization.
func coerceTask(raw any) Task {
	obj, ok := raw.(map[string]any)
	if !ok {
		return Task{}
	}
	return Task{
		Title:          stringField(obj, "title"),
		Description:    stringField(obj, "description"),
		Priority:       stringField(obj, "priority"),
		EstimatedHours: floatField(obj, "estimated_hours"),
	}
}

func stringField(obj map[string]any, key string) string {
	if v, ok := obj[key].(string); ok {
		return v
	}
	return ""
}

func floatField(obj map[string]any, key string) *float64 {
	if v, ok := obj[key].(float64); ok {
		return &v
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
