package notify

import (
	"sync"

	"go.uber.org/zap"
)

const defaultAsyncBuffer = 32

type notification struct {
	message  string
	severity Severity
}

// Async decouples senders from a slow sink. Notify never blocks; when the
// buffer is full the notification is dropped and logged.
type Async struct {
	sink   Sink
	logger *zap.SugaredLogger
	queue  chan notification

	mu     sync.RWMutex
	closed bool
	done   chan struct{}
}

// NewAsync starts a goroutine that forwards notifications to sink
func NewAsync(sink Sink, buffer int, logger *zap.SugaredLogger) *Async {
	if buffer <= 0 {
		buffer = defaultAsyncBuffer
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	a := &Async{
		sink:   sink,
		logger: logger,
		queue:  make(chan notification, buffer),
		done:   make(chan struct{}),
	}
	go a.run()
	return a
}

// Notify queues a notification for delivery
func (a *Async) Notify(message string, severity Severity) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if a.closed {
		return
	}

	select {
	case a.queue <- notification{message: message, severity: severity}:
	default:
		a.logger.Warnw("notification dropped, sink is busy", "message", message, "severity", severity.String())
	}
}

// Close delivers queued notifications and stops the forwarding goroutine
func (a *Async) Close() {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		<-a.done
		return
	}
	a.closed = true
	close(a.queue)
	a.mu.Unlock()

	<-a.done
}

func (a *Async) run() {
	defer close(a.done)
	for n := range a.queue {
		a.sink.Notify(n.message, n.severity)
	}
}
