// Package narrative turns report totals into a prose performance analysis.
// The analysis is advisory: it never feeds back into any aggregate.
package narrative

import (
	"context"
	"strings"

	"github.com/alexanderramin/tracksheet/internal/aggregate"
	"github.com/alexanderramin/tracksheet/internal/llm"
)

const (
	SourceLLM      = "llm"
	SourceFallback = "fallback"
)

// Analysis is a Markdown performance write-up.
type Analysis struct {
	Text   string `json:"text"`
	Source string `json:"source"`
	Model  string `json:"model,omitempty"`
}

// Analyzer is the port consumed by services and the HTTP API.
type Analyzer interface {
	Analyze(ctx context.Context, totals aggregate.Totals) (*Analysis, error)
}

type Service struct {
	client llm.LLMClient
}

// NewService returns an Analyzer backed by client. A nil client always
// produces the deterministic analysis.
func NewService(client llm.LLMClient) *Service {
	return &Service{client: client}
}

func (s *Service) Analyze(ctx context.Context, totals aggregate.Totals) (*Analysis, error) {
	if s.client == nil || totals.TotalActivities == 0 {
		return Deterministic(totals), nil
	}

	resp, err := s.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskNarrative,
		SystemPrompt: systemPrompt,
		UserPrompt:   BuildPrompt(totals),
	})
	if err != nil {
		return Deterministic(totals), nil
	}

	text := strings.TrimSpace(resp.Text)
	if text == "" {
		return Deterministic(totals), nil
	}
	return &Analysis{Text: text, Source: SourceLLM, Model: resp.Model}, nil
}
