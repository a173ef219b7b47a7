package llm

import "errors"

var (
	// ErrDisabled is returned by the disabled client so callers can take
	// their fallback path without a network round trip.
	ErrDisabled = errors.New("llm disabled")

	// ErrOllamaUnavailable indicates the Ollama server is unreachable.
	ErrOllamaUnavailable = errors.New("ollama server unavailable")

	// ErrTimeout indicates the request exceeded the task timeout.
	ErrTimeout = errors.New("llm request timed out")

	// ErrEmptyResponse indicates the model answered with no text.
	ErrEmptyResponse = errors.New("llm returned an empty response")

	// ErrRetryExhausted indicates all retry attempts failed.
	ErrRetryExhausted = errors.New("llm retry attempts exhausted")
)
