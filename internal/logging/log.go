// Package logging builds the named logrus loggers used across crtsim.
package logging

import (
	"fmt"
	"io"
	"os"
	"path"
	"runtime"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

// Levels accepted by ParseLevel, most to least severe.
var Levels = []string{"panic", "fatal", "error", "warn", "info", "debug"}

var (
	mu      sync.Mutex
	level   = logrus.InfoLevel
	loggers []*logrus.Logger
)

// SetLevel changes the level of every logger, including ones created
// earlier.
func SetLevel(l logrus.Level) {
	mu.Lock()
	defer mu.Unlock()
	level = l
	for _, lg := range loggers {
		lg.SetLevel(l)
	}
}

// ParseLevel accepts one of Levels, case-insensitively.
func ParseLevel(s string) (logrus.Level, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, name := range Levels {
		if s == name {
			return logrus.ParseLevel(s)
		}
	}
	return logrus.InfoLevel, fmt.Errorf("invalid logging level %q, one of: %s", s, strings.Join(Levels, ", "))
}

// NamedLogger creates a logger whose entries carry the component name and
// the caller's file:line.
func NamedLogger(name string) *logrus.Entry {
	return NewLogger(os.Stderr).WithField("component", name)
}

// NewLogger creates a logger writing to out at the current level.
func NewLogger(out io.Writer) *logrus.Logger {
	mu.Lock()
	defer mu.Unlock()
	lg := &logrus.Logger{
		Out: out,
		Formatter: &CallerTextFormatter{
			TextFormatter: logrus.TextFormatter{
				DisableTimestamp: false,
				FullTimestamp:    true,
			},
		},
		Hooks: make(logrus.LevelHooks),
		Level: level,
	}
	loggers = append(loggers, lg)
	return lg
}

// CallerTextFormatter prefixes each message with the file and line that
// logged it.
type CallerTextFormatter struct {
	logrus.TextFormatter
}

// Format renders a single log entry.
func (f *CallerTextFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	if file, line, ok := caller(); ok {
		entry.Message = fmt.Sprintf("[%-15s:%03d] %s", path.Base(file), line, entry.Message)
	}
	return f.TextFormatter.Format(entry)
}

// caller walks past logrus frames to the first frame outside it.
func caller() (string, int, bool) {
	for skip := 2; skip < 16; skip++ {
		pc, file, line, ok := runtime.Caller(skip)
		if !ok {
			return "", 0, false
		}
		fn := runtime.FuncForPC(pc)
		if fn == nil {
			continue
		}
		name := fn.Name()
		if strings.Contains(name, "sirupsen/logrus") || strings.HasSuffix(name, "logging.caller") ||
			strings.Contains(name, "logging.(*CallerTextFormatter)") {
			continue
		}
		return file, line, true
	}
	return "", 0, false
}
