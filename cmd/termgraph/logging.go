package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/urfave/cli/v2"
)

const (
	centralLogName  = "central.log"
	runDirLayout    = "20060102_150405"
	logFileMetadata = "log-file"
)

func parseLevel(value string) (slog.Level, error) {
	levelStr := strings.ToLower(value)
	switch levelStr {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}
}

// setupLogger installs the default logger: the console receives the chosen
// level and, with --log-path, central.log in a per-run directory receives
// INFO and above.
func setupLogger(c *cli.Context) error {
	level, err := parseLevel(c.String("log-level"))
	if err != nil {
		return err
	}

	var handler slog.Handler = slog.NewTextHandler(c.App.ErrWriter, &slog.HandlerOptions{
		Level: level,
	})

	if logPath := c.String("log-path"); logPath != "" {
		file, err := openRunLog(logPath, time.Now())
		if err != nil {
			return err
		}
		if c.App.Metadata == nil {
			c.App.Metadata = map[string]any{}
		}
		c.App.Metadata[logFileMetadata] = file

		handler = newFanoutHandler(handler, slog.NewTextHandler(file, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}))
	}

	logger := slog.New(handler).With("run", uuid.NewString())
	slog.SetDefault(logger)
	return nil
}

// openRunLog creates the run directory for now under logPath and opens its
// central log.
func openRunLog(logPath string, now time.Time) (*os.File, error) {
	runDir := filepath.Join(logPath, now.Format(runDirLayout))
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}
	return os.OpenFile(filepath.Join(runDir, centralLogName), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
}

func closeLogger(c *cli.Context) error {
	if file, ok := c.App.Metadata[logFileMetadata].(io.Closer); ok {
		delete(c.App.Metadata, logFileMetadata)
		return file.Close()
	}
	return nil
}

// fanoutHandler passes every record to each handler that accepts its level.
type fanoutHandler struct {
	handlers []slog.Handler
}

func newFanoutHandler(handlers ...slog.Handler) *fanoutHandler {
	return &fanoutHandler{handlers: handlers}
}

func (h *fanoutHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (h *fanoutHandler) Handle(ctx context.Context, record slog.Record) error {
	var errs []error
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, record.Level) {
			errs = append(errs, handler.Handle(ctx, record.Clone()))
		}
	}
	return errors.Join(errs...)
}

func (h *fanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	handlers := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		handlers[i] = handler.WithAttrs(attrs)
	}
	return &fanoutHandler{handlers: handlers}
}

func (h *fanoutHandler) WithGroup(name string) slog.Handler {
	handlers := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		handlers[i] = handler.WithGroup(name)
	}
	return &fanoutHandler{handlers: handlers}
}
