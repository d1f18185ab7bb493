package logger

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
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

// FileName is the log file written into the output directory
const FileName = "nest-sdk-gen.log"

// Logger handles dual-output logging (console + file)
type Logger struct {
	consoleLogger *log.Logger
	fileLogger    *log.Logger
	logFile       *os.File
	pending       *bytes.Buffer // file output held until AttachFile
	verbose       bool
	minLevel      Level
}

var globalLogger *Logger

// Init initializes the global logger
// consoleOutput: where to write INFO logs (typically os.Stdout)
// logFilePath: path to the log file for DEBUG/ERROR logs
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

	globalLogger = newLogger(consoleOutput, log.New(logFile, "", log.LstdFlags), verbose)
	globalLogger.logFile = logFile
	return nil
}

// InitConsole initializes a logger whose file output is held in memory
// until AttachFile is called. A run that fails before writing anything
// never creates the log file.
func InitConsole(consoleOutput io.Writer, verbose bool) {
	pending := &bytes.Buffer{}
	globalLogger = newLogger(consoleOutput, log.New(pending, "", log.LstdFlags), verbose)
	globalLogger.pending = pending
}

// AttachFile opens the log file, flushes the held file output into it and
// sends all further file output there.
func AttachFile(logFilePath string) error {
	if globalLogger == nil {
		return fmt.Errorf("logger is not initialized")
	}
	if err := os.MkdirAll(filepath.Dir(logFilePath), 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	logFile, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	if globalLogger.pending != nil {
		if _, err := logFile.Write(globalLogger.pending.Bytes()); err != nil {
			logFile.Close()
			return fmt.Errorf("failed to write log file: %w", err)
		}
		globalLogger.pending = nil
	}
	if globalLogger.logFile != nil {
		globalLogger.logFile.Close()
	}

	globalLogger.fileLogger.SetOutput(logFile)
	globalLogger.logFile = logFile
	return nil
}

func newLogger(consoleOutput io.Writer, fileLogger *log.Logger, verbose bool) *Logger {
	minLevel := LevelInfo
	if verbose {
		minLevel = LevelDebug
	}
	return &Logger{
		consoleLogger: log.New(consoleOutput, "", 0), // No prefix for clean console output
		fileLogger:    fileLogger,
		verbose:       verbose,
		minLevel:      minLevel,
	}
}

// Close closes the log file
func Close() {
	if globalLogger != nil && globalLogger.logFile != nil {
		globalLogger.logFile.Close()
	}
	globalLogger = nil
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
		fmt.Printf(format+"\n", args...)
		return
	}
	globalLogger.log(LevelInfo, format, args...)
}

// Warn logs a warning message (console + file)
func Warn(format string, args ...interface{}) {
	if globalLogger == nil {
		fmt.Printf("WARN: "+format+"\n", args...)
		return
	}
	globalLogger.log(LevelWarn, format, args...)
}

// Error logs an error message (console + file)
func Error(format string, args ...interface{}) {
	if globalLogger == nil {
		fmt.Printf("ERROR: "+format+"\n", args...)
		return
	}
	globalLogger.log(LevelError, format, args...)
}

// Skip records a handler that was intentionally not generated.
// Skips are not errors: they go to the file under their own tag and reach
// the console only in verbose mode.
func Skip(controller, method, reason string) {
	if globalLogger == nil {
		return
	}
	message := fmt.Sprintf("%s.%s: %s", controller, method, reason)
	globalLogger.fileLogger.Printf("[SKIP] %s", message)
	if globalLogger.verbose {
		globalLogger.consoleLogger.Printf("[SKIP] %s", message)
	}
}

// log handles the actual logging logic
func (l *Logger) log(level Level, format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)

	// Always log to file with timestamp and level (regardless of minLevel)
	l.fileLogger.Printf("[%s] %s", level.String(), message)

	if level < l.minLevel {
		return
	}

	switch level {
	case LevelDebug:
		if l.verbose {
			l.consoleLogger.Printf("[DEBUG] %s", message)
		}
	case LevelInfo:
		l.consoleLogger.Printf("%s", message)
	case LevelWarn:
		l.consoleLogger.Printf("⚠️  %s", message)
	case LevelError:
		l.consoleLogger.Printf("❌ %s", message)
	}
}

// LogParseError logs a parsing error (file only, not console)
// This keeps the console clean while preserving error details in the log file
func LogParseError(filePath string, err error, context string) {
	if globalLogger == nil {
		return
	}

	globalLogger.fileLogger.Printf("[PARSE_ERROR] File: %s, Context: %s, Error: %v", filePath, context, err)

	// Only show count on console, details in file
	Debug("Parse error in %s: %v", filePath, err)
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
