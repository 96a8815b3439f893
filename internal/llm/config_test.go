package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig_Timeouts(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 120000, cfg.TaskTimeout(TaskAnalysis))
	assert.Equal(t, 30000, cfg.TaskTimeout(TaskProbe))
	assert.Equal(t, 30000, cfg.TaskTimeout(TaskChat))
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("GESTIA_GEMINI_API_KEY", "secret")
	t.Setenv("GESTIA_LLM_MODEL", "gemini-test")
	t.Setenv("GESTIA_LLM_ANALYSIS_TIMEOUT_MS", "5000")

	cfg := LoadConfig()
	assert.Equal(t, "secret", cfg.APIKey)
	assert.Equal(t, "gemini-test", cfg.Model)
	assert.Equal(t, 5000, cfg.TaskTimeout(TaskAnalysis))
}

func TestLoadConfig_IgnoresInvalidTimeout(t *testing.T) {
	t.Setenv("GESTIA_LLM_ANALYSIS_TIMEOUT_MS", "not-a-number")
	cfg := LoadConfig()
	assert.Equal(t, 120000, cfg.TaskTimeout(TaskAnalysis))
}
