package breakdown

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFallback_Shape(t *testing.T) {
	b := Fallback()
	require.Len(t, b.Activities, 4)
	for _, a := range b.Activities {
		assert.NotEmpty(t, a.Title)
		assert.Len(t, a.Tasks, 4)
	}
	assert.Equal(t, 16, b.TaskCount())
}

func TestFallback_Deterministic(t *testing.T) {
	first, err := json.Marshal(Fallback())
	require.NoError(t, err)
	second, err := json.Marshal(Fallback())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestFallback_ValidAgainstContract(t *testing.T) {
	data, err := json.Marshal(Fallback())
	require.NoError(t, err)
	parsed, err := Validate(string(data))
	require.NoError(t, err)
	assert.Equal(t, Fallback(), parsed)
}

func TestFallback_HourEstimatesInRange(t *testing.T) {
	seen := map[string]bool{}
	for _, a := range Fallback().Activities {
		for _, task := range a.Tasks {
			require.NotNil(t, task.EstimatedHours)
			assert.GreaterOrEqual(t, *task.EstimatedHours, 2.0)
			assert.LessOrEqual(t, *task.EstimatedHours, 20.0)
			seen[task.Priority] = true
		}
	}
	// Priorities are distributed across all three levels.
	assert.True(t, seen["high"] && seen["medium"] && seen["low"])
}

func TestFallback_CallersCannotCorruptTemplate(t *testing.T) {
	b := Fallback()
	b.Activities[0].Title = "modifié"
	b.Activities[0].Tasks[0].Priority = "low"
	assert.Equal(t, "Analyse et conception", Fallback().Activities[0].Title)
	assert.Equal(t, "high", Fallback().Activities[0].Tasks[0].Priority)
}
