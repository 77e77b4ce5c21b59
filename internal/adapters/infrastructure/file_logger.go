package infrastructure

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"lakeweather.bot/internal/ports"
	"lakeweather.bot/pkg/errors"
)

// FileLoggerAdapter writes one JSON object per line to a provider log file.
// It records the outbound forecast traffic separately from the process log.
type FileLoggerAdapter struct {
	file     *os.File
	minLevel slog.Level
	clock    clockwork.Clock
	mutex    sync.Mutex
}

// FileLoggerOptions configures a FileLoggerAdapter
type FileLoggerOptions struct {
	Path     string
	MinLevel slog.Level
	Clock    clockwork.Clock
}

// NewFileLoggerAdapter opens (or creates) the log file in append mode
func NewFileLoggerAdapter(opts FileLoggerOptions) (*FileLoggerAdapter, error) {
	if opts.Path == "" {
		return nil, errors.NewConfigurationError("log file path cannot be empty", nil)
	}

	if err := os.MkdirAll(filepath.Dir(opts.Path), 0755); err != nil {
		return nil, errors.NewConfigurationError("failed to create log directory", err)
	}

	file, err := os.OpenFile(opts.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, errors.NewConfigurationError("failed to open log file", err)
	}

	clock := opts.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	return &FileLoggerAdapter{
		file:     file,
		minLevel: opts.MinLevel,
		clock:    clock,
	}, nil
}

func (f *FileLoggerAdapter) Debug(msg string, fields ...ports.Field) {
	f.writeLogEntry(slog.LevelDebug, msg, fields...)
}

func (f *FileLoggerAdapter) Info(msg string, fields ...ports.Field) {
	f.writeLogEntry(slog.LevelInfo, msg, fields...)
}

func (f *FileLoggerAdapter) Warn(msg string, fields ...ports.Field) {
	f.writeLogEntry(slog.LevelWarn, msg, fields...)
}

func (f *FileLoggerAdapter) Error(msg string, fields ...ports.Field) {
	f.writeLogEntry(slog.LevelError, msg, fields...)
}

// Close flushes and releases the file; later writes are dropped
func (f *FileLoggerAdapter) Close() error {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	if f.file == nil {
		return nil
	}
	err := f.file.Close()
	f.file = nil
	return err
}

func (f *FileLoggerAdapter) writeLogEntry(level slog.Level, msg string, fields ...ports.Field) {
	if level < f.minLevel {
		return
	}

	logEntry := map[string]interface{}{
		"timestamp": f.clock.Now().UTC().Format(time.RFC3339),
		"level":     level.String(),
		"message":   msg,
	}
	for _, field := range fields {
		logEntry[field.Key] = field.Value
	}

	jsonData, err := json.Marshal(logEntry)
	if err != nil {
		f.writeRawLog(fmt.Sprintf("ERROR: failed to marshal log entry %q: %v", msg, err))
		return
	}

	f.writeRawLog(string(jsonData))
}

func (f *FileLoggerAdapter) writeRawLog(data string) {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	if f.file == nil {
		return
	}
	if _, err := f.file.WriteString(data + "\n"); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write log entry: %v\n", err)
	}
}
