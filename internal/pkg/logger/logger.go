package logger

import (
	"fmt"
	"log"
	"os"
)

type Level int

const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
)

var levelNames = map[Level]string{
	DEBUG: "DEBUG",
	INFO:  "INFO",
	WARN:  "WARN",
	ERROR: "ERROR",
}

// Logger is a leveled logger with a component name prefix. Background
// workers (webhook delivery, ban-list sync) each get a named logger so
// their failures are attributable in mixed output.
type Logger struct {
	name  string
	level Level
	log   *log.Logger
}

func New(name string, level Level) *Logger {
	return &Logger{
		name:  name,
		level: level,
		log:   log.New(os.Stdout, "", log.LstdFlags),
	}
}

// Named returns a logger for a sub-component, inheriting the level.
func (l *Logger) Named(name string) *Logger {
	return &Logger{
		name:  l.name + "." + name,
		level: l.level,
		log:   l.log,
	}
}

func (l *Logger) output(level Level, format string, v ...interface{}) {
	if l.level > level {
		return
	}
	l.log.Printf("[%s] [%s] %s", levelNames[level], l.name, fmt.Sprintf(format, v...))
}

func (l *Logger) Debug(format string, v ...interface{}) { l.output(DEBUG, format, v...) }
func (l *Logger) Info(format string, v ...interface{})  { l.output(INFO, format, v...) }
func (l *Logger) Warn(format string, v ...interface{})  { l.output(WARN, format, v...) }
func (l *Logger) Error(format string, v ...interface{}) { l.output(ERROR, format, v...) }

// SetLevel changes the logging level
func (l *Logger) SetLevel(level Level) {
	l.level = level
}

// ParseLevel maps a config string to a level, defaulting to INFO.
func ParseLevel(s string) Level {
	switch s {
	case "debug":
		return DEBUG
	case "warn":
		return WARN
	case "error":
		return ERROR
	default:
		return INFO
	}
}
