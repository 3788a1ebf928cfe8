package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"
)

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var (
	mu       sync.Mutex
	std      = log.New(os.Stdout, "", log.Ldate|log.Ltime)
	minLevel = LevelInfo
)

// Options mirror the LOGGING section of the XML config.
type Options struct {
	Dir        string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Level      string
}

// Setup routes all log output to stdout plus a size-rotated file.
func Setup(opts Options) {
	mu.Lock()
	defer mu.Unlock()

	minLevel = parseLevel(opts.Level)

	if opts.Dir == "" {
		return
	}
	rotated := &lumberjack.Logger{
		Filename:   filepath.Join(opts.Dir, "api.log"),
		MaxSize:    opts.MaxSizeMB,
		MaxBackups: opts.MaxBackups,
		MaxAge:     opts.MaxAgeDays,
		Compress:   true,
	}
	w := io.MultiWriter(os.Stdout, rotated)
	std = log.New(w, "", log.Ldate|log.Ltime)

	// Route Go's default logger through the same writer.
	log.SetOutput(w)
}

func parseLevel(s string) Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return LevelDebug
	case "WARN", "WARNING":
		return LevelWarn
	case "ERROR":
		return LevelError
	default:
		return LevelInfo
	}
}

func logf(level Level, tag, format string, v ...interface{}) {
	mu.Lock()
	defer mu.Unlock()
	if level < minLevel {
		return
	}
	std.Printf("%s %s", tag, fmt.Sprintf(format, v...))
}

func Debug(format string, v ...interface{}) { logf(LevelDebug, "DEBUG:", format, v...) }
func Info(format string, v ...interface{})  { logf(LevelInfo, "INFO:", format, v...) }
func Warn(format string, v ...interface{})  { logf(LevelWarn, "WARNING:", format, v...) }
func Error(format string, v ...interface{}) { logf(LevelError, "ERROR:", format, v...) }
