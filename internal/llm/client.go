package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"
)

// GenerateRequest holds the parameters for one generation call.
type GenerateRequest struct {
	Task         TaskType
	SystemPrompt string
	UserPrompt   string
	Temperature  *float64 // nil uses the task default
	MaxTokens    *int     // nil uses the task default
}

// GenerateResponse holds the model's answer.
type GenerateResponse struct {
	Text      string
	Model     string
	LatencyMs int64
}

// LLMClient generates text from a prompt.
type LLMClient interface {
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)

	// Available checks whether the backing server answers.
	Available(ctx context.Context) bool
}

// New returns an Ollama client when cfg is enabled and a disabled client
// otherwise.
func New(cfg LLMConfig, observer Observer) LLMClient {
	if !cfg.Enabled {
		return disabledClient{}
	}
	return NewOllamaClient(cfg, observer)
}

type disabledClient struct{}

func (disabledClient) Generate(context.Context, GenerateRequest) (*GenerateResponse, error) {
	return nil, ErrDisabled
}

func (disabledClient) Available(context.Context) bool { return false }

type ollamaClient struct {
	cfg      LLMConfig
	http     *http.Client
	observer Observer
}

// NewOllamaClient creates a client for the Ollama /api/generate endpoint.
func NewOllamaClient(cfg LLMConfig, observer Observer) LLMClient {
	if observer == nil {
		observer = NoopObserver{}
	}
	return &ollamaClient{
		cfg: cfg,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{Timeout: 5 * time.Second}).DialContext,
			},
		},
		observer: observer,
	}
}

type ollamaRequest struct {
	Model   string        `json:"model"`
	System  string        `json:"system,omitempty"`
	Prompt  string        `json:"prompt"`
	Stream  bool          `json:"stream"`
	Options ollamaOptions `json:"options,omitempty"`
}

type ollamaOptions struct {
	Temperature float64 `json:"temperature,omitempty"`
	NumPredict  int     `json:"num_predict,omitempty"`
}

type ollamaResponse struct {
	Model    string `json:"model"`
	Response string `json:"response"`
}

func (c *ollamaClient) buildRequest(req GenerateRequest) ollamaRequest {
	task := c.cfg.Tasks[req.Task]
	if req.Temperature != nil {
		task.Temperature = *req.Temperature
	}
	if req.MaxTokens != nil {
		task.MaxTokens = *req.MaxTokens
	}
	return ollamaRequest{
		Model:  c.cfg.Model,
		System: req.SystemPrompt,
		Prompt: req.UserPrompt,
		Options: ollamaOptions{
			Temperature: task.Temperature,
			NumPredict:  task.MaxTokens,
		},
	}
}

// Generate sends the prompt, retrying up to MaxRetries times. Each attempt
// gets the full task timeout; the parent context bounds the whole call.
func (c *ollamaClient) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	start := time.Now()
	body := c.buildRequest(req)
	timeout := time.Duration(c.cfg.TaskTimeout(req.Task)) * time.Millisecond

	var lastErr error
	attempts := 0
	for attempts < 1+c.cfg.MaxRetries {
		attempts++
		resp, err := c.attempt(ctx, body, timeout)
		if err == nil {
			latency := time.Since(start).Milliseconds()
			c.observer.OnCallComplete(LLMCallEvent{
				Task: req.Task, Model: c.cfg.Model, Attempts: attempts,
				LatencyMs: latency, Success: true,
			})
			return &GenerateResponse{Text: resp.Response, Model: resp.Model, LatencyMs: latency}, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			break
		}
	}

	err := classify(ctx, lastErr)
	c.observer.OnCallComplete(LLMCallEvent{
		Task: req.Task, Model: c.cfg.Model, Attempts: attempts,
		LatencyMs: time.Since(start).Milliseconds(), ErrorCode: errorCode(err),
	})
	return nil, err
}

func (c *ollamaClient) attempt(ctx context.Context, body ollamaRequest, timeout time.Duration) (*ollamaResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	resp, err := c.doRequest(ctx, body)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: %v", ErrTimeout, err)
		}
		return nil, err
	}
	if strings.TrimSpace(resp.Response) == "" {
		return nil, ErrEmptyResponse
	}
	return resp, nil
}

func (c *ollamaClient) doRequest(ctx context.Context, body ollamaRequest) (*ollamaResponse, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint+"/api/generate", bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if httpResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ollama returned status %d: %s", httpResp.StatusCode, string(respBody))
	}

	var resp ollamaResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	return &resp, nil
}

func (c *ollamaClient) Available(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.Endpoint+"/api/tags", nil)
	if err != nil {
		return false
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// classify maps the final attempt error onto the package sentinels.
func classify(ctx context.Context, err error) error {
	switch {
	case ctx.Err() != nil:
		return fmt.Errorf("%w: %v", ErrTimeout, ctx.Err())
	case errors.Is(err, ErrTimeout), errors.Is(err, ErrEmptyResponse):
		return err
	case isConnectionError(err):
		return fmt.Errorf("%w: %v", ErrOllamaUnavailable, err)
	default:
		return fmt.Errorf("%w: %v", ErrRetryExhausted, err)
	}
}

func isConnectionError(err error) bool {
	var opErr *net.OpError
	return errors.As(err, &opErr)
}

func errorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTimeout):
		return "TIMEOUT"
	case errors.Is(err, ErrOllamaUnavailable):
		return "UNAVAILABLE"
	case errors.Is(err, ErrEmptyResponse):
		return "EMPTY"
	default:
		return "UNKNOWN"
	}
}
