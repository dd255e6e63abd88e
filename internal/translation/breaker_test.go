package translation

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"
)

type scriptedTranslator struct {
	err   error
	calls int
}

func (s *scriptedTranslator) DetectLanguage(ctx context.Context, text string) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return "en", nil
}

func (s *scriptedTranslator) Translate(ctx context.Context, text, source, target string) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return "translated", nil
}

func TestCircuitBreaker_OpensAfterFailures(t *testing.T) {
	next := &scriptedTranslator{err: &TransportError{Provider: "papago", Err: errors.New("connection refused")}}
	tr := WithCircuitBreaker(next, BreakerConfig{MaxFailures: 2, OpenTimeout: time.Minute}, zaptest.NewLogger(t).Sugar())

	for i := 0; i < 2; i++ {
		if _, err := tr.Translate(context.Background(), "hello", "en", "ko"); err == nil {
			t.Fatal("expected failure from wrapped translator")
		}
	}

	_, err := tr.Translate(WithRequestID(context.Background(), 11), "hello", "en", "ko")
	var remoteErr *RemoteError
	if !errors.As(err, &remoteErr) || remoteErr.Code != CodeCircuitOpen {
		t.Fatalf("expected circuit open error, got %v", err)
	}
	if remoteErr.RequestID != 11 {
		t.Errorf("RequestID = %d, want 11", remoteErr.RequestID)
	}
	if next.calls != 2 {
		t.Errorf("wrapped translator called %d times, want 2", next.calls)
	}
}

func TestCircuitBreaker_ClientErrorsDoNotTrip(t *testing.T) {
	next := &scriptedTranslator{err: &RemoteError{Provider: "papago", Status: 400, Code: "N2MT05"}}
	tr := WithCircuitBreaker(next, BreakerConfig{MaxFailures: 1}, nil)

	for i := 0; i < 3; i++ {
		_, err := tr.Translate(context.Background(), "hello", "en", "en")
		var remoteErr *RemoteError
		if !errors.As(err, &remoteErr) || remoteErr.Code != "N2MT05" {
			t.Fatalf("call %d: expected N2MT05, got %v", i, err)
		}
	}
	if next.calls != 3 {
		t.Errorf("wrapped translator called %d times, want 3", next.calls)
	}
}

func TestCircuitBreaker_PassesThroughSuccess(t *testing.T) {
	tr := WithCircuitBreaker(&scriptedTranslator{}, BreakerConfig{}, nil)

	lang, err := tr.DetectLanguage(context.Background(), "hello")
	if err != nil || lang != "en" {
		t.Errorf("DetectLanguage() = %q, %v", lang, err)
	}
	out, err := tr.Translate(context.Background(), "hello", "en", "ko")
	if err != nil || out != "translated" {
		t.Errorf("Translate() = %q, %v", out, err)
	}
}

func TestCountsAsSuccess(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, true},
		{"empty text", ErrEmptyText, true},
		{"client error", &RemoteError{Status: 400}, true},
		{"server error", &RemoteError{Status: 503}, false},
		{"undetected without status", &RemoteError{Code: CodeUndetected}, true},
		{"canceled", &TransportError{Err: context.Canceled}, true},
		{"deadline", &TransportError{Err: context.DeadlineExceeded}, false},
		{"transport", &TransportError{Err: errors.New("boom")}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := countsAsSuccess(tt.err); got != tt.want {
				t.Errorf("countsAsSuccess() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCircuitBreaker_UndetectedAndCanceledDoNotTrip(t *testing.T) {
	healthy := &scriptedTranslator{}
	tr := WithCircuitBreaker(WithDetector(healthy, NewLinguaDetector([]string{"ko", "en"})),
		BreakerConfig{MaxFailures: 2, OpenTimeout: time.Minute}, zaptest.NewLogger(t).Sugar())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	for i := 0; i < 2; i++ {
		if _, err := tr.DetectLanguage(context.Background(), "12345"); err == nil {
			t.Fatal("expected digits to be undetectable")
		}
		if _, err := tr.DetectLanguage(ctx, "hello"); err == nil {
			t.Fatal("expected canceled detection to fail")
		}
	}

	out, err := tr.Translate(context.Background(), "hello", "en", "ko")
	if err != nil || out != "translated" {
		t.Errorf("Translate() = %q, %v, want healthy backend result", out, err)
	}
}
