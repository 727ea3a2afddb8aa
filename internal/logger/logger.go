package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
	"time"
)

type Level int

const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
	FATAL
)

var (
	levelNames = map[Level]string{
		DEBUG: "DEBUG",
		INFO:  "INFO",
		WARN:  "WARN",
		ERROR: "ERROR",
		FATAL: "FATAL",
	}

	levelColors = map[Level]string{
		DEBUG: "\033[36m", // Cyan
		INFO:  "\033[32m", // Green
		WARN:  "\033[33m", // Yellow
		ERROR: "\033[31m", // Red
		FATAL: "\033[35m", // Magenta
	}

	reset = "\033[0m"
	gray  = "\033[90m"
)

// ParseLevel maps a level name to a Level. Unknown names fall back to INFO.
func ParseLevel(name string) Level {
	for level, levelName := range levelNames {
		if strings.EqualFold(name, levelName) {
			return level
		}
	}
	return INFO
}

func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return fmt.Sprintf("LEVEL(%d)", int(l))
}

type field struct {
	key   string
	value interface{}
}

type Logger struct {
	mu        *sync.Mutex
	level     Level
	out       io.Writer
	service   string
	useColors bool
	showTime  bool
	fields    []field
	exit      func(int)
}

// New builds a logger for service writing to stdout, configured from
// LOG_LEVEL and LOG_COLORS.
func New(service string) *Logger {
	return NewWithWriter(service, os.Stdout, ParseLevel(os.Getenv("LOG_LEVEL")), os.Getenv("LOG_COLORS") != "false")
}

func NewWithWriter(service string, out io.Writer, level Level, useColors bool) *Logger {
	return &Logger{
		mu:        &sync.Mutex{},
		level:     level,
		out:       out,
		service:   service,
		useColors: useColors,
		showTime:  true,
		exit:      os.Exit,
	}
}

// With returns a child logger that appends key=value to every line.
func (l *Logger) With(key string, value interface{}) *Logger {
	child := *l
	child.fields = make([]field, len(l.fields), len(l.fields)+1)
	copy(child.fields, l.fields)
	child.fields = append(child.fields, field{key: key, value: value})
	return &child
}

func (l *Logger) Enabled(level Level) bool {
	return level >= l.level
}

func (l *Logger) colorize(color, s string) string {
	if !l.useColors {
		return s
	}
	return color + s + reset
}

func (l *Logger) log(level Level, format string, args ...interface{}) {
	if !l.Enabled(level) {
		return
	}

	var buf strings.Builder

	if l.showTime {
		buf.WriteString(time.Now().Format("15:04:05"))
		buf.WriteByte(' ')
	}

	buf.WriteString(l.colorize(levelColors[level], fmt.Sprintf("%-5s", levelNames[level])))
	buf.WriteByte(' ')

	if l.service != "" {
		buf.WriteString(l.colorize(gray, "["+l.service+"]"))
		buf.WriteByte(' ')
	}

	buf.WriteString(fmt.Sprintf(format, args...))

	for _, f := range l.fields {
		buf.WriteByte(' ')
		buf.WriteString(l.colorize(gray, f.key+"="))
		buf.WriteString(fmt.Sprint(f.value))
	}

	l.mu.Lock()
	fmt.Fprintln(l.out, buf.String())
	l.mu.Unlock()

	if level == FATAL {
		l.exit(1)
	}
}

func (l *Logger) Debug(format string, args ...interface{}) {
	l.log(DEBUG, format, args...)
}

func (l *Logger) Info(format string, args ...interface{}) {
	l.log(INFO, format, args...)
}

func (l *Logger) Warn(format string, args ...interface{}) {
	l.log(WARN, format, args...)
}

func (l *Logger) Error(format string, args ...interface{}) {
	l.log(ERROR, format, args...)
}

func (l *Logger) Fatal(format string, args ...interface{}) {
	l.log(FATAL, format, args...)
}

// SetStdLog redirects standard log package to use this logger
func (l *Logger) SetStdLog() {
	log.SetOutput(&stdLogWriter{logger: l})
	log.SetFlags(0)
}

type stdLogWriter struct {
	logger *Logger
}

func (w *stdLogWriter) Write(p []byte) (n int, err error) {
	msg := strings.TrimSpace(string(p))
	w.logger.Info("%s", msg)
	return len(p), nil
}
