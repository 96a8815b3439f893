package llm

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// CallEvent records metadata about a single completion request. The endpoint
// is stored with the API key already redacted.
type CallEvent struct {
	Task       TaskType
	Endpoint   string
	Model      string
	PromptLen  int
	StatusCode int
	LatencyMs  int64
	Success    bool
	ErrorKind  string
}

// Observer receives events about completion calls for logging and metrics.
type Observer interface {
	OnCallComplete(event CallEvent)
}

// LogObserver writes call events to an io.Writer, one line per call.
type LogObserver struct {
	w io.Writer
}

// NewLogObserver creates an Observer that logs events to w.
func NewLogObserver(w io.Writer) *LogObserver {
	return &LogObserver{w: w}
}

func (o *LogObserver) OnCallComplete(event CallEvent) {
	ts := time.Now().UTC().Format(time.RFC3339)
	status := "ok"
	if !event.Success {
		status = "err:" + event.ErrorKind
	}
	fmt.Fprintf(o.w, "[%s] llm_call task=%s model=%s endpoint=%s prompt_len=%d http_status=%d latency_ms=%d status=%s\n",
		ts, event.Task, event.Model, event.Endpoint, event.PromptLen, event.StatusCode, event.LatencyMs, status)
}

// NoopObserver discards all events. Useful for tests.
type NoopObserver struct{}

func (NoopObserver) OnCallComplete(CallEvent) {}

// redactKey replaces every occurrence of the API key in s with "HIDDEN".
// Credentials must never reach the logs.
func redactKey(s, key string) string {
	if key == "" {
		return s
	}
	return strings.ReplaceAll(s, key, "HIDDEN")
}
