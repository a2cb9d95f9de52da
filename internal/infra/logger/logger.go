package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"

	"github.com/datallboy/gofetch/internal/domain"
)

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
)

func (l Level) toZerolog() zerolog.Level {
	switch l {
	case LevelDebug:
		return zerolog.DebugLevel
	case LevelWarn:
		return zerolog.WarnLevel
	case LevelError:
		return zerolog.ErrorLevel
	case LevelFatal:
		return zerolog.FatalLevel
	default:
		return zerolog.InfoLevel
	}
}

type Logger struct {
	zl   zerolog.Logger
	file *os.File
}

// New opens filePath for appending (when set) and optionally mirrors to stdout.
// The file receives JSON lines, stdout gets the colorized console format.
func New(filePath string, level Level, includeStdout bool) (*Logger, error) {
	var writers []io.Writer
	var f *os.File

	if filePath != "" {
		var err error
		f, err = os.OpenFile(filePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return nil, err
		}
		writers = append(writers, f)
	}

	if includeStdout {
		writers = append(writers, zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "15:04:05.000"})
	}

	if len(writers) == 0 {
		writers = append(writers, io.Discard)
	}

	zl := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(level.toZerolog()).
		With().Timestamp().Logger()

	return &Logger{zl: zl, file: f}, nil
}

// NewWriter builds a Logger on top of an arbitrary writer. Used by tests.
func NewWriter(w io.Writer, level Level) *Logger {
	zl := zerolog.New(w).Level(level.toZerolog()).With().Timestamp().Logger()
	return &Logger{zl: zl}
}

// Nop discards everything.
func Nop() *Logger {
	return &Logger{zl: zerolog.Nop()}
}

func ParseLevel(lvl string) Level {
	switch strings.ToLower(lvl) {
	case "debug":
		return LevelDebug
	case "warn":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

func (l *Logger) Debug(f string, v ...any) { l.zl.Debug().Msgf(f, v...) }
func (l *Logger) Info(f string, v ...any)  { l.zl.Info().Msgf(f, v...) }
func (l *Logger) Warn(f string, v ...any)  { l.zl.Warn().Msgf(f, v...) }
func (l *Logger) Error(f string, v ...any) { l.zl.Error().Msgf(f, v...) }

func (l *Logger) Write(p []byte) (n int, err error) {
	// Echo and other libraries often include a newline at the end
	msg := strings.TrimSpace(string(p))
	if msg != "" {
		l.Info("%s", msg)
	}
	return len(p), nil
}

func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}

// Record renders batch events as log lines.
func (l *Logger) Record(e domain.Event) {
	switch e.Kind {
	case domain.EventBatchStarted:
		l.zl.Info().Str("batch", e.BatchID).Str("dir", e.Dir).
			Msgf("Starting batch of %d targets", e.Report.Total)
	case domain.EventFetchStarted:
		l.zl.Info().Str("batch", e.BatchID).Str("url", e.URL).
			Msgf("Begin downloading %s", e.Target.Name)
	case domain.EventFetchFailed:
		l.zl.Error().Str("batch", e.BatchID).Str("cause", string(e.Cause)).Err(e.Err).
			Msgf("Error downloading %s", e.Target.Name)
	case domain.EventFileWritten:
		l.zl.Info().Str("batch", e.BatchID).Str("target", e.Target.Name).
			Msgf("Finished writing %s (%s)", e.Path, humanize.Bytes(uint64(e.Bytes)))
	case domain.EventWorkDirCleanup:
		l.zl.Debug().Str("batch", e.BatchID).Msgf("Removing work directory %s", e.Dir)
	case domain.EventBatchFinished:
		r := e.Report
		l.zl.Info().Str("batch", e.BatchID).
			Int("succeeded", r.Succeeded).
			Int("failed", r.Failed).
			Int("peak", r.PeakConcurrency).
			Msgf("Execution time: %s (%s written)", formatElapsed(r.Elapsed), humanize.Bytes(uint64(r.BytesWritten)))
	}
}

func formatElapsed(d time.Duration) string {
	return fmt.Sprintf("%0.2f seconds", d.Seconds())
}
