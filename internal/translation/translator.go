package translation

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Translator is a remote detection and translation service
type Translator interface {
	// DetectLanguage returns the language code of text
	DetectLanguage(ctx context.Context, text string) (string, error)

	// Translate translates text from source to target language
	Translate(ctx context.Context, text, source, target string) (string, error)
}

// Detector is the detection half of a Translator
type Detector interface {
	DetectLanguage(ctx context.Context, text string) (string, error)
}

// ErrEmptyText is returned when a backend is asked to work on blank text
var ErrEmptyText = errors.New("text is empty")

// ErrMalformedResponse is wrapped in a TransportError when a success response
// lacks the expected fields
var ErrMalformedResponse = errors.New("malformed response")

// RemoteError is a well-formed error response from a translation service
type RemoteError struct {
	Provider  string
	Status    int    // HTTP status, 0 if not applicable
	Code      string // service error code, may be empty
	Message   string // service error message
	RequestID uint64
}

func (e *RemoteError) Error() string {
	var b strings.Builder
	b.WriteString(e.Provider)
	b.WriteString(": ")
	if e.Code != "" {
		b.WriteString(e.Code)
		b.WriteString(": ")
	}
	b.WriteString(e.Message)
	if e.Status != 0 {
		fmt.Fprintf(&b, " (status %d)", e.Status)
	}
	return b.String()
}

// TransportError indicates that no usable response was received
type TransportError struct {
	Provider  string
	RequestID uint64
	Err       error
}

func (e *TransportError) Error() string {
	return e.Provider + ": request failed: " + e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

type requestIDKey struct{}

// WithRequestID attaches the orchestrator's request id to ctx. Backends
// forward it to the service where possible and copy it into their errors.
func WithRequestID(ctx context.Context, id uint64) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFrom returns the request id stored in ctx
func RequestIDFrom(ctx context.Context) (uint64, bool) {
	id, ok := ctx.Value(requestIDKey{}).(uint64)
	return id, ok
}

func requestID(ctx context.Context) uint64 {
	id, _ := RequestIDFrom(ctx)
	return id
}

// WithDetector returns a Translator that detects languages with d and
// translates with t
func WithDetector(t Translator, d Detector) Translator {
	return &detectorOverride{Translator: t, detector: d}
}

type detectorOverride struct {
	Translator
	detector Detector
}

func (o *detectorOverride) DetectLanguage(ctx context.Context, text string) (string, error) {
	return o.detector.DetectLanguage(ctx, text)
}

// NormalizeLanguageCode converts free-form model output such as "EN." or
// "zh-hans" into the codes used by the language catalog
func NormalizeLanguageCode(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, "\"'`.")
	s = strings.ReplaceAll(s, "_", "-")
	lower := strings.ToLower(s)

	switch lower {
	case "zh", "zh-cn", "zh-hans", "zh-sg":
		return "zh-CN"
	case "zh-tw", "zh-hant", "zh-hk":
		return "zh-TW"
	}
	return lower
}
