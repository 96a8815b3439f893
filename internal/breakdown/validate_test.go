package breakdown

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kindOf(t *testing.T, err error) ValidationErrorKind {
	t.Helper()
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	return ve.Kind
}

func TestValidate_JSONSyntaxError(t *testing.T) {
	_, err := Validate(`{"activities": [`)
	require.Error(t, err)
	assert.Equal(t, ErrJSONSyntax, kindOf(t, err))
	assert.Contains(t, err.Error(), "excerpt")
}

func TestValidate_MissingActivitiesKey(t *testing.T) {
	_, err := Validate(`{"items": []}`)
	assert.Equal(t, ErrMissingActivitiesKey, kindOf(t, err))
}

func TestValidate_TopLevelNotObject(t *testing.T) {
	_, err := Validate(`[1, 2, 3]`)
	assert.Equal(t, ErrMissingActivitiesKey, kindOf(t, err))
}

func TestValidate_ActivitiesNotArray(t *testing.T) {
	_, err := Validate(`{"activities": "beaucoup"}`)
	assert.Equal(t, ErrActivitiesNotArray, kindOf(t, err))
}

func TestValidate_EmptyActivities(t *testing.T) {
	_, err := Validate(`{"activities": []}`)
	assert.Equal(t, ErrEmptyActivities, kindOf(t, err))
}

func TestValidate_InvalidActivity_MissingTitle(t *testing.T) {
	_, err := Validate(`{"activities": [{"tasks": []}]}`)
	assert.Equal(t, ErrInvalidActivity, kindOf(t, err))

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, 0, ve.Index)
}

func TestValidate_InvalidActivity_MissingTasks(t *testing.T) {
	_, err := Validate(`{"activities": [{"title": "ok", "tasks": []}, {"title": "sans tâches"}]}`)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, ErrInvalidActivity, ve.Kind)
	assert.Equal(t, 1, ve.Index)
}

func TestValidate_TasksNotArray(t *testing.T) {
	_, err := Validate(`{"activities": [{"title": "a", "tasks": {"x": 1}}]}`)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, ErrTasksNotArray, ve.Kind)
	assert.Equal(t, 0, ve.Index)
}

func TestValidate_TaskFieldsNotRecursed(t *testing.T) {
	// A task missing every field is accepted; defaults apply later.
	b, err := Validate(`{"activities": [{"title": "a", "tasks": [{}]}]}`)
	require.NoError(t, err)
	require.Len(t, b.Activities, 1)
	require.Len(t, b.Activities[0].Tasks, 1)

	task := b.Activities[0].Tasks[0]
	assert.Equal(t, DefaultTaskTitle, task.EffectiveTitle())
	assert.Equal(t, "medium", string(task.EffectivePriority()))
	assert.Nil(t, task.EstimatedHours)
}

func TestValidate_TaskTypeMismatchesTreatedAsAbsent(t *testing.T) {
	b, err := Validate(`{"activities": [{"title": "a", "tasks": [{"title": 42, "priority": 3, "estimated_hours": "huit"}]}]}`)
	require.NoError(t, err)
	task := b.Activities[0].Tasks[0]
	assert.Equal(t, DefaultTaskTitle, task.EffectiveTitle())
	assert.Equal(t, "medium", string(task.EffectivePriority()))
	assert.Nil(t, task.EstimatedHours)
}

func TestValidate_RoundTrip(t *testing.T) {
	est := 8.0
	original := Breakdown{
		Activities: []Activity{
			{
				Title:       "Conception",
				Description: "Phase initiale",
				Tasks: []Task{
					{Title: "Spécifier", Description: "Écrire les specs", Priority: "high", EstimatedHours: &est},
					{Title: "Maquetter", Priority: "low"},
				},
			},
		},
	}

	data, err := json.Marshal(original)
	require.NoError(t, err)

	parsed, err := Validate(string(data))
	require.NoError(t, err)
	assert.Equal(t, &original, parsed)
}

func TestValidate_PartialTaskDefaultsAtMaterialization(t *testing.T) {
	raw := `{"activities": [{"title": "a", "tasks": [
		{"title": "t1", "priority": "high", "estimated_hours": 4},
		{"title": "t2"}
	]}]}`
	b, err := Validate(raw)
	require.NoError(t, err)

	first := b.Activities[0].Tasks[0]
	second := b.Activities[0].Tasks[1]
	assert.Equal(t, "high", string(first.EffectivePriority()))
	require.NotNil(t, first.EstimatedHours)
	assert.Equal(t, 4.0, *first.EstimatedHours)
	assert.Equal(t, "medium", string(second.EffectivePriority()))
}

func TestMapPriority(t *testing.T) {
	cases := map[string]string{
		"high":    "high",
		"HIGH":    "high",
		"élevée":  "high",
		"Élevée":  "high",
		"medium":  "medium",
		"moyenne": "medium",
		"low":     "low",
		"faible":  "low",
		"weird":   "medium",
		"":        "medium",
	}
	for in, want := range cases {
		assert.Equal(t, want, string(MapPriority(in)), "input %q", in)
	}
}
