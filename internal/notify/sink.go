package notify

import (
	"fmt"
	"io"
	"sync"

	"go.uber.org/zap"
)

// Severity classifies a notification
type Severity int

const (
	Info Severity = iota
	Error
)

func (s Severity) String() string {
	switch s {
	case Info:
		return "info"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// Sink displays notifications
type Sink interface {
	Notify(message string, severity Severity)
}

// Func adapts a plain function to Sink
type Func func(message string, severity Severity)

// Notify calls f
func (f Func) Notify(message string, severity Severity) {
	f(message, severity)
}

// Multi fans a notification out to every sink in order
func Multi(sinks ...Sink) Sink {
	return Func(func(message string, severity Severity) {
		for _, s := range sinks {
			s.Notify(message, severity)
		}
	})
}

// NewLogSink writes notifications to a structured logger
func NewLogSink(logger *zap.SugaredLogger) Sink {
	return Func(func(message string, severity Severity) {
		if severity == Error {
			logger.Errorw("notification", "message", message)
			return
		}
		logger.Infow("notification", "message", message)
	})
}

// NewWriterSink prints notifications as single lines to w
func NewWriterSink(w io.Writer) Sink {
	var mu sync.Mutex
	return Func(func(message string, severity Severity) {
		mu.Lock()
		defer mu.Unlock()
		if severity == Error {
			fmt.Fprintf(w, "Error: %s\n", message)
			return
		}
		fmt.Fprintf(w, "%s\n", message)
	})
}
