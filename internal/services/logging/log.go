package logging

import (
	"bytes"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.td.teradata.com/sandbox/touch-ctl/internal/config"
)

// Level is the logging level.
type Level int

const (
	// DEBUG level for developer information
	DEBUG Level = iota - 1
	// INFO level for state and status
	INFO
	// WARN level for possible issues
	WARN
	// ERROR level for errors
	ERROR
)

// String returns an upper case string representation of the log level
func (l Level) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	default:
		return fmt.Sprintf("Level(%d)", l)
	}
}

// PaddedString returns a five character upper case representation of the log level
func (l Level) PaddedString() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO "
	case WARN:
		return "WARN "
	default:
		return l.String()
	}
}

// UnmarshalText converts a slice of characters to a Level
func (l *Level) UnmarshalText(text []byte) bool {
	switch strings.TrimSpace(string(bytes.ToUpper(text))) {
	case "DEBUG":
		*l = DEBUG
	case "INFO", "":
		*l = INFO
	case "WARN":
		*l = WARN
	case "ERROR":
		*l = ERROR
	default:
		return false
	}
	return true
}

// Log writes levelled, timestamped messages to a side file. The process owns
// the terminal while buttons are on screen, so nothing may ever be logged to
// standard output; with no file configured every message is dropped.
type Log struct {
	level           Level
	writer          io.Writer
	file            *os.File
	timestampFormat string
	callerFormat    string
}

// New builds a logger from the touch.log configuration block.
func New(cfg *config.Log) (*Log, error) {
	l := &Log{
		writer:          ioutil.Discard,
		timestampFormat: "01-02 15:04:05.000 ",
		callerFormat:    " %20.20s:%03d - ",
	}
	if cfg == nil {
		return l, nil
	}
	l.level.UnmarshalText([]byte(cfg.Level))
	if cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file %s: %w", cfg.File, err)
		}
		l.file = f
		l.writer = f
	}
	return l, nil
}

// Discard returns a logger that drops everything. Used by tests.
func Discard() *Log {
	l, _ := New(nil)
	return l
}

// SetOutput redirects all future log messages to w.
func (l *Log) SetOutput(w io.Writer) {
	l.writer = w
}

// SetLogLevel sets a filter on the minimum level of messages that will be logged.
func (l *Log) SetLogLevel(level Level) {
	l.level = level
}

func (l *Log) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}

// Perform the actual logging routine
func (l *Log) log(level Level, format string, args []interface{}) {
	if level < l.level {
		return
	}

	_, file, line, ok := runtime.Caller(2)
	if !ok {
		file = "???"
		line = 0
	} else {
		file = filepath.Base(file)
	}

	var msg string
	if format == "" {
		msg = fmt.Sprint(args...)
	} else {
		msg = fmt.Sprintf(format, args...)
	}

	var b strings.Builder
	b.WriteString(time.Now().Format(l.timestampFormat))
	b.WriteString(level.PaddedString())
	_, _ = fmt.Fprintf(&b, l.callerFormat, file, line)
	b.WriteString(msg)
	b.WriteString("\n")
	_, _ = l.writer.Write([]byte(b.String()))
}

// Debug logs a message at DEBUG level.
func (l *Log) Debug(args ...interface{}) {
	l.log(DEBUG, "", args)
}

// Debugf logs a formatted message at DEBUG level.
func (l *Log) Debugf(format string, args ...interface{}) {
	l.log(DEBUG, format, args)
}

// Info logs a message at INFO level.
func (l *Log) Info(args ...interface{}) {
	l.log(INFO, "", args)
}

// Infof logs a formatted message at INFO level.
func (l *Log) Infof(format string, args ...interface{}) {
	l.log(INFO, format, args)
}

// Warn logs a message at WARN level.
func (l *Log) Warn(args ...interface{}) {
	l.log(WARN, "", args)
}

// Warnf logs a formatted message at WARN level.
func (l *Log) Warnf(format string, args ...interface{}) {
	l.log(WARN, format, args)
}

// Error logs a message at ERROR level.
func (l *Log) Error(args ...interface{}) {
	l.log(ERROR, "", args)
}

// Errorf logs a formatted message at ERROR level.
func (l *Log) Errorf(format string, args ...interface{}) {
	l.log(ERROR, format, args)
}
