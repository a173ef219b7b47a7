package llm

// TaskType identifies what a generation call is for. Each task carries its
// own sampling parameters and timeout.
type TaskType string

const (
	// TaskNarrative produces the prose performance analysis of a report.
	TaskNarrative TaskType = "narrative"
)

// TaskConfig holds per-task sampling parameters.
type TaskConfig struct {
	Temperature float64
	MaxTokens   int
	TimeoutMs   int // overrides LLMConfig.TimeoutMs when > 0
}

// LLMConfig is the client-side view of the [llm] settings.
type LLMConfig struct {
	Enabled    bool
	LogCalls   bool
	Endpoint   string
	Model      string
	TimeoutMs  int
	MaxRetries int
	Tasks      map[TaskType]TaskConfig
}

// DefaultConfig returns a disabled client pointed at a local Ollama.
func DefaultConfig() LLMConfig {
	return LLMConfig{
		Endpoint:   "http://localhost:11434",
		Model:      "llama3.2",
		TimeoutMs:  10000,
		MaxRetries: 1,
		Tasks:      defaultTasks(),
	}
}

func defaultTasks() map[TaskType]TaskConfig {
	return map[TaskType]TaskConfig{
		TaskNarrative: {Temperature: 0.3, MaxTokens: 1024},
	}
}

// Settings is the subset of user configuration the client consumes. It
// mirrors config.LLMConfig so this package stays free of the config loader.
type Settings struct {
	Enabled    bool
	LogCalls   bool
	Endpoint   string
	Model      string
	TimeoutMs  int
	MaxRetries int
}

// NewConfig fills task defaults around user settings. Zero or negative
// numeric settings keep their defaults.
func NewConfig(s Settings) LLMConfig {
	cfg := DefaultConfig()
	cfg.Enabled = s.Enabled
	cfg.LogCalls = s.LogCalls
	if s.Endpoint != "" {
		cfg.Endpoint = s.Endpoint
	}
	if s.Model != "" {
		cfg.Model = s.Model
	}
	if s.TimeoutMs > 0 {
		cfg.TimeoutMs = s.TimeoutMs
	}
	if s.MaxRetries >= 0 {
		cfg.MaxRetries = s.MaxRetries
	}
	return cfg
}

// TaskTimeout returns the effective timeout in milliseconds for task.
func (c LLMConfig) TaskTimeout(task TaskType) int {
	if tc, ok := c.Tasks[task]; ok && tc.TimeoutMs > 0 {
		return tc.TimeoutMs
	}
	return c.TimeoutMs
}
