package testutil

import (
	"context"
	"fmt"
	"sync"

	"codeberg.org/snonux/livetrans/internal/notify"
)

// TranslateCall records one Translate invocation
type TranslateCall struct {
	Text   string
	Source string
	Target string
}

// MockTranslator mocks a translation backend. Calls for a text can be held
// back with Hold to control the order in which responses arrive.
type MockTranslator struct {
	Detections      map[string]string // text -> language code
	Translations    map[string]string // text -> translation
	DetectErrors    map[string]error
	TranslateErrors map[string]error

	mu             sync.Mutex
	calls          []string
	translateCalls []TranslateCall
	gates          map[string]chan struct{}
}

// NewMockTranslator creates an empty mock
func NewMockTranslator() *MockTranslator {
	return &MockTranslator{
		Detections:      make(map[string]string),
		Translations:    make(map[string]string),
		DetectErrors:    make(map[string]error),
		TranslateErrors: make(map[string]error),
		gates:           make(map[string]chan struct{}),
	}
}

// Hold blocks every call for text until the returned release func is called
func (m *MockTranslator) Hold(text string) (release func()) {
	gate := make(chan struct{})
	m.mu.Lock()
	m.gates[text] = gate
	m.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			m.mu.Lock()
			delete(m.gates, text)
			m.mu.Unlock()
			close(gate)
		})
	}
}

// DetectLanguage mocks language detection
func (m *MockTranslator) DetectLanguage(ctx context.Context, text string) (string, error) {
	m.record(fmt.Sprintf("Detect: %s", text))
	if err := m.wait(ctx, text); err != nil {
		return "", err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if err, ok := m.DetectErrors[text]; ok {
		return "", err
	}
	if lang, ok := m.Detections[text]; ok {
		return lang, nil
	}
	return "en", nil
}

// Translate mocks translating text
func (m *MockTranslator) Translate(ctx context.Context, text, fromLang, toLang string) (string, error) {
	m.mu.Lock()
	m.calls = append(m.calls, fmt.Sprintf("Translate: %s (%s->%s)", text, fromLang, toLang))
	m.translateCalls = append(m.translateCalls, TranslateCall{Text: text, Source: fromLang, Target: toLang})
	m.mu.Unlock()

	if err := m.wait(ctx, text); err != nil {
		return "", err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if err, ok := m.TranslateErrors[text]; ok {
		return "", err
	}
	if translation, ok := m.Translations[text]; ok {
		return translation, nil
	}

	// Default mock translation
	return fmt.Sprintf("mock translation of %s", text), nil
}

// Calls returns every call in the order it was made
func (m *MockTranslator) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

// TranslateCalls returns the arguments of every Translate call
func (m *MockTranslator) TranslateCalls() []TranslateCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]TranslateCall(nil), m.translateCalls...)
}

func (m *MockTranslator) record(call string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, call)
}

func (m *MockTranslator) wait(ctx context.Context, text string) error {
	m.mu.Lock()
	gate, held := m.gates[text]
	m.mu.Unlock()
	if !held {
		return nil
	}

	select {
	case <-gate:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Notification is one message received by a RecordingSink
type Notification struct {
	Message  string
	Severity notify.Severity
}

// RecordingSink is a notify.Sink that remembers everything it was given
type RecordingSink struct {
	mu    sync.Mutex
	items []Notification
}

// Notify records the notification
func (r *RecordingSink) Notify(message string, severity notify.Severity) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, Notification{Message: message, Severity: severity})
}

// Notifications returns all recorded notifications
func (r *RecordingSink) Notifications() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notification(nil), r.items...)
}
