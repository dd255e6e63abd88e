package translation

import (
	"context"
	"errors"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// CodeCircuitOpen is the error code reported while the circuit breaker
// rejects calls
const CodeCircuitOpen = "CIRCUIT_OPEN"

// BreakerConfig configures WithCircuitBreaker
type BreakerConfig struct {
	Name        string
	MaxFailures uint32        // consecutive failures before opening
	OpenTimeout time.Duration // time spent open before probing again
}

type breakerTranslator struct {
	next Translator
	name string
	cb   *gobreaker.CircuitBreaker
}

// WithCircuitBreaker wraps t so that after MaxFailures consecutive transport
// or server failures further calls fail fast with CodeCircuitOpen until
// OpenTimeout has passed. Calls are never retried.
func WithCircuitBreaker(t Translator, config BreakerConfig, logger *zap.SugaredLogger) Translator {
	if config.Name == "" {
		config.Name = "translation"
	}
	if config.MaxFailures == 0 {
		config.MaxFailures = 5
	}
	if config.OpenTimeout <= 0 {
		config.OpenTimeout = 30 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	maxFailures := config.MaxFailures
	settings := gobreaker.Settings{
		Name:    config.Name,
		Timeout: config.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		IsSuccessful: countsAsSuccess,
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warnw("circuit breaker state changed", "breaker", name, "from", from.String(), "to", to.String())
		},
	}

	return &breakerTranslator{
		next: t,
		name: config.Name,
		cb:   gobreaker.NewCircuitBreaker(settings),
	}
}

func (b *breakerTranslator) DetectLanguage(ctx context.Context, text string) (string, error) {
	return b.execute(ctx, func() (string, error) {
		return b.next.DetectLanguage(ctx, text)
	})
}

func (b *breakerTranslator) Translate(ctx context.Context, text, source, target string) (string, error) {
	return b.execute(ctx, func() (string, error) {
		return b.next.Translate(ctx, text, source, target)
	})
}

func (b *breakerTranslator) execute(ctx context.Context, fn func() (string, error)) (string, error) {
	res, err := b.cb.Execute(func() (interface{}, error) {
		return fn()
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return "", &RemoteError{
			Provider:  b.name,
			Code:      CodeCircuitOpen,
			Message:   err.Error(),
			RequestID: requestID(ctx),
		}
	}
	if err != nil {
		return "", err
	}
	return res.(string), nil
}

// countsAsSuccess keeps client-side rejections (bad language pair, text too
// long, undetectable input) and abandoned calls from tripping the breaker
func countsAsSuccess(err error) bool {
	if err == nil || errors.Is(err, ErrEmptyText) || errors.Is(err, context.Canceled) {
		return true
	}
	var remoteErr *RemoteError
	if errors.As(err, &remoteErr) {
		if remoteErr.Code == CodeUndetected {
			return true
		}
		return remoteErr.Status > 0 && remoteErr.Status < 500
	}
	return false
}
