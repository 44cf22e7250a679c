package logger

import (
	"io"
	"log"
	"os"
	"strings"
)

type LogLevel int

const (
	ERROR LogLevel = iota
	WARN
	INFO
	DEBUG
	TRACE
)

var (
	nullWriter   = &NullWriter{}
	currentLevel = ERROR
	Info         *log.Logger
	Warn         *log.Logger
	Error        *log.Logger
	Debug        *log.Logger
	Trace        *log.Logger
)

func StringToLogLevel(value string) LogLevel {
	switch strings.ToLower(value) {
	case "error":
		return ERROR
	case "warn":
		return WARN
	case "info":
		return INFO
	case "debug":
		return DEBUG
	case "trace":
		return TRACE
	}
	log.Printf("Invalid log level: '%s'. Returning INFO", value)
	return INFO
}

func IsValidLogLevel(value string) bool {
	switch strings.ToLower(value) {
	case "error", "warn", "info", "debug", "trace":
		return true
	}
	return false
}

func (s LogLevel) String() string {
	switch s {
	case ERROR:
		return "ERROR"
	case WARN:
		return "WARN"
	case INFO:
		return "INFO"
	case DEBUG:
		return "DEBUG"
	case TRACE:
		return "TRACE"
	}
	return "UNKNOWN"
}

type NullWriter struct {
	io.Writer
}

func (s *NullWriter) Write(p []byte) (n int, err error) {
	return len(p), nil
}

func init() {
	Error = log.New(nullWriter, "ERROR: ", log.Ldate|log.Ltime|log.Lshortfile)
	Warn = log.New(nullWriter, "WARN:  ", log.Ldate|log.Ltime|log.Lshortfile)
	Info = log.New(nullWriter, "INFO:  ", log.Ldate|log.Ltime|log.Lshortfile)
	Debug = log.New(nullWriter, "DEBUG: ", log.Ldate|log.Ltime|log.Lshortfile)
	Trace = log.New(nullWriter, "TRACE: ", log.Ldate|log.Ltime|log.Lshortfile)
}

// Initialize routes every logger up to logLevel to stderr. Stdout is
// reserved for the pair listing.
func Initialize(logLevel LogLevel) {
	InitializeWithWriter(logLevel, os.Stderr)
}

func InitializeWithWriter(logLevel LogLevel, writer io.Writer) {
	currentLevel = logLevel

	writerFor := func(level LogLevel) io.Writer {
		if logLevel >= level {
			return writer
		}
		return nullWriter
	}

	Error = log.New(writerFor(ERROR), "ERROR: ", log.Ldate|log.Ltime|log.Lshortfile)
	Warn = log.New(writerFor(WARN), "WARN:  ", log.Ldate|log.Ltime|log.Lshortfile)
	Info = log.New(writerFor(INFO), "INFO:  ", log.Ldate|log.Ltime|log.Lshortfile)
	Debug = log.New(writerFor(DEBUG), "DEBUG: ", log.Ldate|log.Ltime|log.Lshortfile)
	Trace = log.New(writerFor(TRACE), "TRACE: ", log.Ldate|log.Ltime|log.Lshortfile)

	Debug.Printf("Initialized loggers: '%s'", logLevel.String())
}

func IsLogLevel(logLevel LogLevel) bool {
	return currentLevel >= logLevel
}
