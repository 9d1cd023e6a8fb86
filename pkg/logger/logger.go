package logger

import (
	"log"
	"os"
)

type Logger struct {
	info  *log.Logger
	warn  *log.Logger
	error *log.Logger
	debug *log.Logger

	debugEnabled bool
}

func New() *Logger {
	flags := log.Ldate | log.Ltime | log.Lmicroseconds
	return &Logger{
		info:         log.New(os.Stdout, "[INFO] ", flags),
		warn:         log.New(os.Stdout, "[WARN] ", flags),
		error:        log.New(os.Stderr, "[ERROR] ", flags),
		debug:        log.New(os.Stdout, "[DEBUG] ", flags),
		debugEnabled: os.Getenv("LOG_LEVEL") == "debug",
	}
}

func (l *Logger) Info(format string, v ...interface{}) {
	l.info.Printf(format, v...)
}

func (l *Logger) Warn(format string, v ...interface{}) {
	l.warn.Printf(format, v...)
}

func (l *Logger) Error(format string, v ...interface{}) {
	l.error.Printf(format, v...)
}

// Debug is a no-op unless LOG_LEVEL=debug.
func (l *Logger) Debug(format string, v ...interface{}) {
	if !l.debugEnabled {
		return
	}
	l.debug.Printf(format, v...)
}
