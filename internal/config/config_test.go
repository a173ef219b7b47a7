package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_DefaultsWhenNothingConfigured(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"), "")
	require.NoError(t, err)

	assert.Equal(t, "light", cfg.Display.Theme)
	assert.Equal(t, 500*time.Millisecond, cfg.AutosaveDelay())
	assert.False(t, cfg.LLM.Enabled)
	assert.Equal(t, "127.0.0.1:8080", cfg.Server.Addr)
}

func TestLoad_TOMLOverridesDefaults(t *testing.T) {
	path := writeFile(t, "config.toml", `
[database]
path = "/tmp/ts.db"

[display]
theme = "dark"

[autosave]
delay_ms = 250

[llm]
enabled = true
model = "qwen2.5"
`)

	cfg, err := Load(path, "")
	require.NoError(t, err)

	assert.Equal(t, "/tmp/ts.db", cfg.Database.Path)
	assert.Equal(t, "dark", cfg.Display.Theme)
	assert.Equal(t, 250, cfg.Autosave.DelayMS)
	assert.True(t, cfg.LLM.Enabled)
	assert.Equal(t, "qwen2.5", cfg.LLM.Model)
	assert.Equal(t, "http://localhost:11434", cfg.LLM.Endpoint, "unset keys keep defaults")
}

func TestLoad_EnvOverridesTOML(t *testing.T) {
	path := writeFile(t, "config.toml", "[display]\ntheme = \"dark\"\n")
	t.Setenv("TRACKSHEET_THEME", "blue-green")
	t.Setenv("TRACKSHEET_LLM_MAX_RETRIES", "3")
	t.Setenv("TRACKSHEET_LLM_ENABLED", "not-a-bool")

	cfg, err := Load(path, "")
	require.NoError(t, err)

	assert.Equal(t, "blue-green", cfg.Display.Theme)
	assert.Equal(t, 3, cfg.LLM.MaxRetries)
	assert.False(t, cfg.LLM.Enabled, "unparseable values are ignored")
}

func TestLoad_DotEnvFillsUnsetVariables(t *testing.T) {
	envFile := writeFile(t, ".env", "TRACKSHEET_ADDR=0.0.0.0:9999\nTRACKSHEET_LOG_LEVEL=debug\n")
	t.Setenv("TRACKSHEET_LOG_LEVEL", "warn")
	// Registers cleanup for the variable godotenv will set.
	t.Setenv("TRACKSHEET_ADDR", "")
	require.NoError(t, os.Unsetenv("TRACKSHEET_ADDR"))

	cfg, err := Load("", envFile)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:9999", cfg.Server.Addr)
	assert.Equal(t, "warn", cfg.Logging.Level, "process env wins over .env")
}

func TestLoad_InvalidValues(t *testing.T) {
	cases := map[string]string{
		"theme":  "[display]\ntheme = \"neon\"\n",
		"delay":  "[autosave]\ndelay_ms = 0\n",
		"level":  "[logging]\nlevel = \"loud\"\n",
		"syntax": "[display\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeFile(t, "config.toml", content), "")
			assert.Error(t, err)
		})
	}
}
