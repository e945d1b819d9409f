package common

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/andrescamacho/spacetraders-fleet/internal/application/events"
)

// Log levels, lowest to highest.
const (
	LevelTrace = "trace"
	LevelInfo  = "info"
	LevelWarn  = "warning"
	LevelError = "error"
)

var levelRank = map[string]int{
	LevelTrace: 0,
	LevelInfo:  1,
	LevelWarn:  2,
	LevelError: 3,
}

// Logger writes leveled log lines to an output and mirrors every line onto
// the event bus as a log event, so dashboard subscribers see the same
// stream as the terminal.
type Logger struct {
	mu  sync.Mutex
	out io.Writer
	min int
	bus *events.Bus
}

// NewLogger creates a logger writing to stderr. minLevel filters terminal
// output only; bus events always carry every line at info and above.
func NewLogger(minLevel string, bus *events.Bus) *Logger {
	rank, ok := levelRank[minLevel]
	if !ok {
		rank = levelRank[LevelInfo]
	}
	return &Logger{out: os.Stderr, min: rank, bus: bus}
}

// NewTestLogger creates a logger that writes to the given writer and has no
// event bus attached.
func NewTestLogger(out io.Writer) *Logger {
	return &Logger{out: out, min: levelRank[LevelTrace]}
}

func (l *Logger) log(level, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)

	if levelRank[level] >= l.min {
		l.mu.Lock()
		fmt.Fprintf(l.out, "[%s] %s\n", level, msg)
		l.mu.Unlock()
	}

	if l.bus != nil && levelRank[level] >= levelRank[LevelInfo] {
		l.bus.Publish(events.Event{
			Type: events.TypeLog,
			Data: events.Log{Level: level, Message: msg},
		})
	}
}

func (l *Logger) Tracef(format string, args ...any) { l.log(LevelTrace, format, args...) }
func (l *Logger) Infof(format string, args ...any)  { l.log(LevelInfo, format, args...) }
func (l *Logger) Warnf(format string, args ...any)  { l.log(LevelWarn, format, args...) }
func (l *Logger) Errorf(format string, args ...any) { l.log(LevelError, format, args...) }

// LogError reports an error with its type name, matching the format the
// original operators grep for.
func (l *Logger) LogError(err error) {
	l.Errorf("%T: %v", err, err)
}
