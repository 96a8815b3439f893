package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"
)

// CompletionRequest holds the parameters for one completion call.
type CompletionRequest struct {
	Task   TaskType
	Prompt string
}

// Client provides access to the completion endpoint. Implementations make
// exactly one blocking call per invocation, bounded by the task timeout.
type Client interface {
	// Complete sends the prompt and returns the raw text of the first
	// candidate. Failures are *TransportError, *UpstreamError or
	// *MalformedEnvelopeError.
	Complete(ctx context.Context, req CompletionRequest) (string, error)

	// Probe sends a minimal request to verify the endpoint is reachable
	// and the credentials are accepted.
	Probe(ctx context.Context) error
}

// geminiClient implements Client against the Gemini generateContent API.
type geminiClient struct {
	cfg      Config
	http     *http.Client
	observer Observer
}

// NewGeminiClient creates a Client for the Gemini REST API.
func NewGeminiClient(cfg Config, observer Observer) Client {
	if observer == nil {
		observer = NoopObserver{}
	}
	return &geminiClient{
		cfg: cfg,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
		observer: observer,
	}
}

// geminiRequest is the JSON body sent to POST {model}:generateContent.
type geminiRequest struct {
	Contents         []geminiContent        `json:"contents"`
	GenerationConfig geminiGenerationConfig `json:"generationConfig"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiGenerationConfig struct {
	Temperature      float64 `json:"temperature"`
	TopK             int     `json:"topK,omitempty"`
	TopP             float64 `json:"topP,omitempty"`
	MaxOutputTokens  int     `json:"maxOutputTokens"`
	ResponseMIMEType string  `json:"responseMimeType,omitempty"`
}

// geminiResponse mirrors the nested envelope the API returns. Pointer fields
// distinguish "absent" from "empty" at each level.
type geminiResponse struct {
	Candidates *[]geminiCandidate `json:"candidates"`
}

type geminiCandidate struct {
	Content *geminiCandidateContent `json:"content"`
}

type geminiCandidateContent struct {
	Parts *[]geminiResponsePart `json:"parts"`
}

type geminiResponsePart struct {
	Text *string `json:"text"`
}

func (c *geminiClient) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	start := time.Now()
	taskCfg := c.cfg.Tasks[req.Task]

	ctx, cancel := context.WithTimeout(ctx, time.Duration(c.cfg.TaskTimeout(req.Task))*time.Millisecond)
	defer cancel()

	endpoint := fmt.Sprintf("%s/%s:generateContent?key=%s", c.cfg.Endpoint, c.cfg.Model, c.cfg.APIKey)
	body := geminiRequest{
		Contents: []geminiContent{
			{Parts: []geminiPart{{Text: req.Prompt}}},
		},
		GenerationConfig: geminiGenerationConfig{
			Temperature:      taskCfg.Temperature,
			TopK:             taskCfg.TopK,
			TopP:             taskCfg.TopP,
			MaxOutputTokens:  taskCfg.MaxOutputTokens,
			ResponseMIMEType: taskCfg.ResponseMIMEType,
		},
	}

	text, statusCode, err := c.doRequest(ctx, endpoint, body)

	c.observer.OnCallComplete(CallEvent{
		Task:       req.Task,
		Endpoint:   redactKey(endpoint, c.cfg.APIKey),
		Model:      c.cfg.Model,
		PromptLen:  len(req.Prompt),
		StatusCode: statusCode,
		LatencyMs:  time.Since(start).Milliseconds(),
		Success:    err == nil,
		ErrorKind:  ErrorKind(err),
	})

	if err != nil {
		return "", err
	}
	return text, nil
}

func (c *geminiClient) doRequest(ctx context.Context, endpoint string, body geminiRequest) (string, int, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return "", 0, &TransportError{Err: fmt.Errorf("marshaling request: %w", err)}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(data))
	if err != nil {
		return "", 0, &TransportError{Err: fmt.Errorf("creating request: %w", err)}
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		return "", 0, &TransportError{Err: err}
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return "", httpResp.StatusCode, &TransportError{Err: fmt.Errorf("reading response: %w", err)}
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		return "", httpResp.StatusCode, &UpstreamError{
			StatusCode: httpResp.StatusCode,
			Body:       string(respBody),
		}
	}

	text, err := decodeEnvelope(respBody)
	if err != nil {
		return "", httpResp.StatusCode, err
	}
	return text, httpResp.StatusCode, nil
}

// decodeEnvelope walks the five required levels of the response envelope and
// reports precisely which one is missing.
func decodeEnvelope(body []byte) (string, error) {
	var resp geminiResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", &MalformedEnvelopeError{Field: "body"}
	}
	if resp.Candidates == nil {
		return "", &MalformedEnvelopeError{Field: "candidates"}
	}
	if len(*resp.Candidates) == 0 {
		return "", &MalformedEnvelopeError{Field: "candidates[0]"}
	}
	first := (*resp.Candidates)[0]
	if first.Content == nil {
		return "", &MalformedEnvelopeError{Field: "candidates[0].content"}
	}
	if first.Content.Parts == nil || len(*first.Content.Parts) == 0 {
		return "", &MalformedEnvelopeError{Field: "candidates[0].content.parts"}
	}
	part := (*first.Content.Parts)[0]
	if part.Text == nil {
		return "", &MalformedEnvelopeError{Field: "candidates[0].content.parts[0].text"}
	}
	return *part.Text, nil
}

func (c *geminiClient) Probe(ctx context.Context) error {
	_, err := c.Complete(ctx, CompletionRequest{
		Task:   TaskProbe,
		Prompt: `Réponds simplement "OK" en JSON: {"status": "OK"}`,
	})
	return err
}
