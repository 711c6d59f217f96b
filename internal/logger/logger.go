package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/palemoky/tichu/internal/config"
)

const maxLogSize = 10 * 1024 * 1024

var logFile *os.File

// Init sets the global zerolog level and output. With no file configured it
// writes human readable lines to stderr.
func Init(cfg config.LogConfig) error {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}
	if level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339Nano

	var out io.Writer = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}
	if cfg.File != "" {
		f, err := openFile(cfg.File)
		if err != nil {
			return err
		}
		logFile = f
		out = f
	}

	log.Logger = zerolog.New(out).With().Timestamp().Logger()
	log.Debug().Str("level", level.String()).Str("file", cfg.File).Msg("logger initialized")
	return nil
}

// openFile opens path for appending, rotating it first when it is too large.
func openFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	if info, err := os.Stat(path); err == nil && info.Size() > maxLogSize {
		_ = os.Rename(path, fmt.Sprintf("%s.%d", path, time.Now().Unix()))
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, nil
}

// DefaultFile returns ~/.tichu/<name>, the log location used by the terminal
// client whose screen owns stdout and stderr.
func DefaultFile(name string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "tichu", name)
	}
	return filepath.Join(home, ".tichu", name)
}

// Close closes the log file, if any.
func Close() {
	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
}

// LogPanic logs a recovered panic with its stack trace.
func LogPanic(r any) {
	log.Error().Interface("panic", r).Str("stack", string(debug.Stack())).Msg("recovered from panic")
}
