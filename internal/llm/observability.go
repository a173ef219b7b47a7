package llm

import (
	"context"
	"log/slog"
)

// LLMCallEvent records metadata about a single generation call.
type LLMCallEvent struct {
	Task      TaskType
	Model     string
	Attempts  int
	LatencyMs int64
	Success   bool
	ErrorCode string
}

// Observer receives events about LLM calls.
type Observer interface {
	OnCallComplete(event LLMCallEvent)
}

// LogObserver writes call events to a slog.Logger.
type LogObserver struct {
	logger *slog.Logger
}

func NewLogObserver(logger *slog.Logger) *LogObserver {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogObserver{logger: logger}
}

func (o *LogObserver) OnCallComplete(event LLMCallEvent) {
	level := slog.LevelInfo
	attrs := []slog.Attr{
		slog.String("task", string(event.Task)),
		slog.String("model", event.Model),
		slog.Int("attempts", event.Attempts),
		slog.Int64("latency_ms", event.LatencyMs),
	}
	if !event.Success {
		level = slog.LevelWarn
		attrs = append(attrs, slog.String("error_code", event.ErrorCode))
	}
	o.logger.LogAttrs(context.Background(), level, "llm_call", attrs...)
}

// NoopObserver discards all events.
type NoopObserver struct{}

func (NoopObserver) OnCallComplete(LLMCallEvent) {}
