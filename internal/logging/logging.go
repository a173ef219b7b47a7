// Package logging builds the process-wide slog logger on top of a
// charmbracelet/log handler.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	charmLog "github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"
)

// New returns a logger writing to w at the given level. Terminals get the
// colored text formatter; everything else gets logfmt.
func New(w io.Writer, level string) (*slog.Logger, error) {
	h, err := NewHandler(w, level)
	if err != nil {
		return nil, err
	}
	return slog.New(h), nil
}

// NewHandler is New without the slog wrapper, for callers that want the
// charm logger's own API.
func NewHandler(w io.Writer, level string) (*charmLog.Logger, error) {
	lvl, err := charmLog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return nil, fmt.Errorf("parse log level %q: %w", level, err)
	}
	formatter := charmLog.LogfmtFormatter
	if isTerminal(w) {
		formatter = charmLog.TextFormatter
	}
	return charmLog.NewWithOptions(w, charmLog.Options{
		Level:           lvl,
		Prefix:          "tracksheet",
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Formatter:       formatter,
	}), nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}
