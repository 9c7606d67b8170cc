package ui

import (
	"fmt"
	"io"
	"os"
	"sync"
)

type Logger struct {
	Debug bool

	mu     *sync.Mutex
	out    io.Writer
	prefix string
}

func NewLogger(debug bool) *Logger {
	return NewLoggerTo(os.Stderr, debug)
}

func NewLoggerTo(w io.Writer, debug bool) *Logger {
	return &Logger{Debug: debug, mu: &sync.Mutex{}, out: w}
}

// WithPrefix returns a logger sharing l's output that tags every line
// with the component name.
func (l *Logger) WithPrefix(component string) *Logger {
	return &Logger{Debug: l.Debug, mu: l.mu, out: l.out, prefix: component + " "}
}

func (l *Logger) Debugf(format string, args ...any) {
	if l.Debug {
		l.write("[DEBUG] ", format, args...)
	}
}

func (l *Logger) Infof(format string, args ...any) {
	l.write("[INFO] ", format, args...)
}

func (l *Logger) Errorf(format string, args ...any) {
	l.write("[ERROR] ", format, args...)
}

func (l *Logger) write(level, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if n := len(msg); n == 0 || msg[n-1] != '\n' {
		msg += "\n"
	}

	out := l.out
	if out == nil {
		out = os.Stderr
	}
	if l.mu != nil {
		l.mu.Lock()
		defer l.mu.Unlock()
	}
	_, _ = fmt.Fprint(out, level+l.prefix+msg)
}
