package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Log levels
const (
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
)

var levelRank = map[string]int{
	LevelDebug: 0,
	LevelInfo:  1,
	LevelWarn:  2,
	LevelError: 3,
}

var (
	debugTag = color.New(color.FgWhite, color.BgBlue).SprintFunc()("[DEBUG]")
	infoTag  = color.New(color.FgWhite, color.BgGreen).SprintFunc()("[INFO]")
	warnTag  = color.New(color.FgBlack, color.BgYellow).SprintFunc()("[WARN]")
	errorTag = color.New(color.FgWhite, color.BgRed).SprintFunc()("[ERROR]")
)

// Config holds logging-related configuration
type Config struct {
	Level      string // debug, info, warn, error
	File       string // optional path to a rotated log file
	MaxSize    int    // MB
	MaxBackups int
	MaxAge     int // days
}

type Logger struct {
	*log.Logger
	level  int
	writer *lumberjack.Logger
}

// New creates a logger writing to stdout and, when cfg.File is set, to a rotated file.
func New(cfg Config) (*Logger, error) {
	level, ok := levelRank[strings.ToLower(cfg.Level)]
	if !ok {
		if cfg.Level != "" {
			return nil, fmt.Errorf("invalid log level: %s", cfg.Level)
		}
		level = levelRank[LevelInfo]
	}

	var out io.Writer = os.Stdout
	var writer *lumberjack.Logger
	if cfg.File != "" {
		logFile := cfg.File
		if strings.HasPrefix(logFile, "~/") {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return nil, fmt.Errorf("failed to get home directory: %w", err)
			}
			logFile = filepath.Join(homeDir, logFile[2:])
		}
		if err := os.MkdirAll(filepath.Dir(logFile), 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		writer = &lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    withDefault(cfg.MaxSize, 10),
			MaxBackups: withDefault(cfg.MaxBackups, 3),
			MaxAge:     withDefault(cfg.MaxAge, 28),
			Compress:   true,
		}
		out = io.MultiWriter(writer, os.Stdout)
	}

	return &Logger{
		Logger: log.New(out, "", log.LstdFlags),
		level:  level,
		writer: writer,
	}, nil
}

// NewWriter creates a logger on an arbitrary writer. Used by tests and tools.
func NewWriter(w io.Writer, level string) *Logger {
	rank, ok := levelRank[strings.ToLower(level)]
	if !ok {
		rank = levelRank[LevelInfo]
	}
	return &Logger{Logger: log.New(w, "", 0), level: rank}
}

// Discard returns a logger that drops everything.
func Discard() *Logger {
	return NewWriter(io.Discard, LevelError)
}

func (l *Logger) Close() error {
	if l.writer == nil {
		return nil
	}
	return l.writer.Close()
}

func (l *Logger) Debug(format string, v ...interface{}) {
	l.logf(LevelDebug, debugTag, format, v...)
}

func (l *Logger) Info(format string, v ...interface{}) {
	l.logf(LevelInfo, infoTag, format, v...)
}

func (l *Logger) Warn(format string, v ...interface{}) {
	l.logf(LevelWarn, warnTag, format, v...)
}

func (l *Logger) Error(format string, v ...interface{}) {
	l.logf(LevelError, errorTag, format, v...)
}

func (l *Logger) logf(level, tag, format string, v ...interface{}) {
	if levelRank[level] < l.level {
		return
	}
	l.Printf(tag+" "+format, v...)
}

func withDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
