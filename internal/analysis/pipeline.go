package analysis

import (
	"context"
	"log/slog"

	"github.com/nbelkacem/gestia/internal/breakdown"
	"github.com/nbelkacem/gestia/internal/domain"
	"github.com/nbelkacem/gestia/internal/llm"
)

// Result is the uniform return contract of an analysis: a breakdown that is
// always safe to materialize, plus the flag telling the caller which path
// produced it. Callers branch on UsedFallback only, never on error types.
type Result struct {
	Breakdown    *breakdown.Breakdown
	UsedFallback bool
}

// Pipeline runs one analysis end to end. It is stateless: every call is an
// independent invocation and the completion call is the sole blocking point,
// bounded by the client's task timeout.
type Pipeline struct {
	client llm.Client
	logger *slog.Logger
}

// NewPipeline creates a Pipeline. A nil logger disables telemetry.
func NewPipeline(client llm.Client, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Pipeline{client: client, logger: logger}
}

// Analyze builds the prompt, requests a completion, extracts and validates
// the payload. Any client or validation failure degrades to the fixed
// fallback template; this path never raises to the caller. One request, one
// attempt, no retry: callers needing resilience wrap the pipeline.
func (p *Pipeline) Analyze(ctx context.Context, snap domain.ProjectSnapshot, progress int, mode Mode) Result {
	prompt := BuildAnalysisPrompt(snap, progress, mode)

	raw, err := p.client.Complete(ctx, llm.CompletionRequest{
		Task:   llm.TaskAnalysis,
		Prompt: prompt,
	})
	if err != nil {
		p.logger.Warn("analysis fell back",
			"project", snap.Title,
			"stage", "requesting",
			"cause", llm.ErrorKind(err),
			"error", err.Error(),
		)
		return Result{Breakdown: breakdown.Fallback(), UsedFallback: true}
	}

	payload := llm.ExtractJSON(raw)
	parsed, err := breakdown.Validate(payload)
	if err != nil {
		p.logger.Warn("analysis fell back",
			"project", snap.Title,
			"stage", "validating",
			"cause", validationKind(err),
			"error", err.Error(),
		)
		return Result{Breakdown: breakdown.Fallback(), UsedFallback: true}
	}

	p.logger.Info("analysis succeeded",
		"project", snap.Title,
		"activities", len(parsed.Activities),
		"tasks", parsed.TaskCount(),
	)
	return Result{Breakdown: parsed}
}

func validationKind(err error) string {
	if ve, ok := err.(*breakdown.ValidationError); ok {
		return string(ve.Kind)
	}
	return "UNKNOWN"
}
