package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
)

// Level represents the logging level
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns the string representation of the log level
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Logger handles dual-output logging (console + optional file)
type Logger struct {
	mu            sync.Mutex
	consoleLogger *log.Logger
	fileLogger    *log.Logger
	logFile       *os.File
	verbose       bool
	minLevel      Level
}

var globalLogger *Logger

// Init initializes the global logger
// consoleOutput: where to write INFO and above (os.Stdout, or os.Stderr when stdout carries a protocol)
// logFilePath: path to the log file receiving every level
// verbose: if true, show DEBUG logs on console as well
func Init(consoleOutput io.Writer, logFilePath string, verbose bool) error {
	logDir := filepath.Dir(logFilePath)
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	logFile, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	Close()
	globalLogger = newLogger(consoleOutput, verbose)
	globalLogger.fileLogger = log.New(logFile, "", log.LstdFlags)
	globalLogger.logFile = logFile
	return nil
}

// InitConsole initializes the global logger without a log file
func InitConsole(consoleOutput io.Writer, verbose bool) {
	Close()
	globalLogger = newLogger(consoleOutput, verbose)
}

func newLogger(consoleOutput io.Writer, verbose bool) *Logger {
	minLevel := LevelInfo
	if verbose {
		minLevel = LevelDebug
	}
	return &Logger{
		consoleLogger: log.New(consoleOutput, "", 0),
		verbose:       verbose,
		minLevel:      minLevel,
	}
}

// Close closes the log file
func Close() {
	if globalLogger != nil && globalLogger.logFile != nil {
		globalLogger.logFile.Close()
		globalLogger.logFile = nil
		globalLogger.fileLogger = nil
	}
}

// Debug logs a debug message (file only, unless verbose)
func Debug(format string, args ...interface{}) {
	if globalLogger == nil {
		return
	}
	globalLogger.log(LevelDebug, format, args...)
}

// Info logs an info message (console + file)
func Info(format string, args ...interface{}) {
	if globalLogger == nil {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
		return
	}
	globalLogger.log(LevelInfo, format, args...)
}

// Warn logs a warning message (console + file)
func Warn(format string, args ...interface{}) {
	if globalLogger == nil {
		fmt.Fprintf(os.Stderr, "WARN: "+format+"\n", args...)
		return
	}
	globalLogger.log(LevelWarn, format, args...)
}

// Error logs an error message (console + file)
func Error(format string, args ...interface{}) {
	if globalLogger == nil {
		fmt.Fprintf(os.Stderr, "ERROR: "+format+"\n", args...)
		return
	}
	globalLogger.log(LevelError, format, args...)
}

func (l *Logger) log(level Level, format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)

	l.mu.Lock()
	defer l.mu.Unlock()

	// File gets every level regardless of minLevel
	if l.fileLogger != nil {
		l.fileLogger.Printf("[%s] %s", level.String(), message)
	}

	if level < l.minLevel {
		return
	}

	switch level {
	case LevelDebug:
		l.consoleLogger.Printf("[DEBUG] %s", message)
	case LevelInfo:
		l.consoleLogger.Printf("%s", message)
	case LevelWarn:
		l.consoleLogger.Printf("⚠️  %s", message)
	case LevelError:
		l.consoleLogger.Printf("❌ %s", message)
	}
}

// LogFetchError records a navigation failure.
// Details go to the log file; the console only sees a DEBUG line.
func LogFetchError(target string, err error, context string) {
	if globalLogger == nil {
		return
	}

	globalLogger.mu.Lock()
	if globalLogger.fileLogger != nil {
		globalLogger.fileLogger.Printf("[FETCH_ERROR] Target: %s, Context: %s, Error: %v", target, context, err)
	}
	globalLogger.mu.Unlock()

	Debug("Fetch error for %s: %v", target, err)
}

// GetLogFilePath returns the path to the current log file
func GetLogFilePath() string {
	if globalLogger != nil && globalLogger.logFile != nil {
		return globalLogger.logFile.Name()
	}
	return ""
}

// IsVerbose returns whether verbose logging is enabled
func IsVerbose() bool {
	if globalLogger == nil {
		return false
	}
	return globalLogger.verbose
}
