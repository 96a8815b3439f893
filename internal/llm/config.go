package llm

import (
	"os"
	"strconv"
)

// TaskType identifies the kind of completion being requested. Timeouts and
// generation parameters are configured per task.
type TaskType string

const (
	TaskAnalysis TaskType = "analysis"
	TaskChat     TaskType = "chat"
	TaskProbe    TaskType = "probe"
)

// TaskConfig holds per-task generation parameters.
type TaskConfig struct {
	Temperature      float64
	TopK             int
	TopP             float64
	MaxOutputTokens  int
	TimeoutMs        int
	ResponseMIMEType string // "application/json" or "" for plain text
}

// Config holds all configuration for the Gemini client.
type Config struct {
	APIKey   string
	Endpoint string
	Model    string
	LogCalls bool
	Tasks    map[TaskType]TaskConfig
}

// DefaultConfig returns a Config with the production defaults: the v1beta
// generateContent endpoint, a 120s timeout for analysis calls and 30s for
// lightweight probes.
func DefaultConfig() Config {
	return Config{
		Endpoint: "https://generativelanguage.googleapis.com/v1beta/models",
		Model:    "gemini-2.5-flash",
		Tasks: map[TaskType]TaskConfig{
			TaskAnalysis: {
				Temperature:      0.7,
				TopK:             40,
				TopP:             0.95,
				MaxOutputTokens:  4096,
				TimeoutMs:        120000,
				ResponseMIMEType: "application/json",
			},
			TaskChat: {
				Temperature:     0.7,
				MaxOutputTokens: 1024,
				TimeoutMs:       30000,
			},
			TaskProbe: {
				Temperature:      0.1,
				MaxOutputTokens:  100,
				TimeoutMs:        30000,
				ResponseMIMEType: "application/json",
			},
		},
	}
}

// LoadConfig reads client configuration from environment variables, falling
// back to defaults for any unset value.
func LoadConfig() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("GESTIA_GEMINI_API_KEY"); v != "" {
		cfg.APIKey = v
	}
	if v := os.Getenv("GESTIA_LLM_ENDPOINT"); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv("GESTIA_LLM_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("GESTIA_LLM_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}

	applyTaskTimeoutEnv(&cfg, TaskAnalysis, "GESTIA_LLM_ANALYSIS_TIMEOUT_MS")
	applyTaskTimeoutEnv(&cfg, TaskChat, "GESTIA_LLM_CHAT_TIMEOUT_MS")
	applyTaskTimeoutEnv(&cfg, TaskProbe, "GESTIA_LLM_PROBE_TIMEOUT_MS")

	return cfg
}

// TaskTimeout returns the effective timeout in milliseconds for a task.
func (c Config) TaskTimeout(task TaskType) int {
	if tc, ok := c.Tasks[task]; ok && tc.TimeoutMs > 0 {
		return tc.TimeoutMs
	}
	return 30000
}

func applyTaskTimeoutEnv(cfg *Config, task TaskType, envName string) {
	v := os.Getenv(envName)
	if v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return
	}
	tc := cfg.Tasks[task]
	tc.TimeoutMs = n
	cfg.Tasks[task] = tc
}
