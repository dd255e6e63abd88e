package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"codeberg.org/snonux/livetrans/internal"
	"codeberg.org/snonux/livetrans/internal/notify"
	"codeberg.org/snonux/livetrans/internal/selection"
	"codeberg.org/snonux/livetrans/internal/translation"
)

// State of a session
type State int

const (
	Idle State = iota
	Detecting
	Translating
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Detecting:
		return "detecting"
	case Translating:
		return "translating"
	default:
		return "unknown"
	}
}

const (
	DefaultHomeLanguage      = "ko"
	DefaultSecondaryLanguage = "en"
	DefaultTimeout           = 10 * time.Second
)

// Config is fixed for the lifetime of a session
type Config struct {
	HomeLanguage      string
	SecondaryLanguage string
	Timeout           time.Duration // per remote call
}

// SelectionSource provides the language pair chosen in the UI
type SelectionSource interface {
	Selection() selection.Selection
}

// Classifier turns backend errors into display messages
type Classifier interface {
	ClassifyError(err error) string
}

// Dependencies of a session. Sink and Logger are optional.
type Dependencies struct {
	Translator translation.Translator
	Selection  SelectionSource
	Classifier Classifier
	Sink       notify.Sink
	Logger     *zap.SugaredLogger
}

// Snapshot is the observable state of a session
type Snapshot struct {
	State      State
	RequestID  uint64
	Text       string // last settled input
	Translated string
	Source     string // pair that produced Translated
	Target     string
	Error      string // message of the last failure, cleared by the next settle
	Version    uint64 // increases with every change
}

// Event is input for Handle
type Event interface {
	event()
}

// Settled carries text that stopped changing
type Settled struct {
	Text string
}

// SelectionChanged reports that the user picked a different language pair
type SelectionChanged struct{}

type detected struct {
	id   uint64
	text string
	lang string
	err  error
}

type translated struct {
	id     uint64
	source string
	target string
	text   string
	err    error
}

func (Settled) event()          {}
func (SelectionChanged) event() {}
func (detected) event()         {}
func (translated) event()       {}

// Session orchestrates detection and translation for one user
type Session struct {
	cfg        Config
	translator translation.Translator
	selection  SelectionSource
	classifier Classifier
	sink       notify.Sink
	logger     *zap.SugaredLogger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu        sync.Mutex
	snap      Snapshot
	closed    bool
	listeners []func(Snapshot)

	emitMu  sync.Mutex
	emitted uint64
}

// New creates an idle session
func New(cfg Config, deps Dependencies) (*Session, error) {
	if deps.Translator == nil {
		return nil, errors.New("session: translator is required")
	}
	if deps.Selection == nil {
		return nil, errors.New("session: selection is required")
	}
	if deps.Classifier == nil {
		return nil, errors.New("session: classifier is required")
	}
	if cfg.HomeLanguage == "" {
		cfg.HomeLanguage = DefaultHomeLanguage
	}
	if cfg.SecondaryLanguage == "" {
		cfg.SecondaryLanguage = DefaultSecondaryLanguage
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	sink := deps.Sink
	if sink == nil {
		sink = notify.Func(func(string, notify.Severity) {})
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Session{
		cfg:        cfg,
		translator: deps.Translator,
		selection:  deps.Selection,
		classifier: deps.Classifier,
		sink:       sink,
		logger:     logger,
		ctx:        ctx,
		cancel:     cancel,
	}, nil
}

// Config returns the effective configuration
func (s *Session) Config() Config {
	return s.cfg
}

// Snapshot returns the current state
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap
}

// OnChange registers fn to receive every new snapshot. Snapshots are
// delivered in version order. fn must not call Handle.
func (s *Session) OnChange(fn func(Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Handle applies an event to the state machine
func (s *Session) Handle(ev Event) {
	var (
		changed bool
		notice  string
	)

	switch e := ev.(type) {
	case Settled:
		changed = s.settle(e.Text)
	case SelectionChanged:
		changed = s.reselect()
	case detected:
		changed, notice = s.onDetected(e)
	case translated:
		changed, notice = s.onTranslated(e)
	default:
		s.logger.Warnw("Ignoring unknown event", "event", ev)
	}

	if notice != "" {
		s.sink.Notify(notice, notify.Error)
	}
	if changed {
		s.publish()
	}
}

// Wait blocks until all requests issued so far have completed
func (s *Session) Wait() {
	s.wg.Wait()
}

// Close aborts in-flight requests and ignores all further events
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.mu.Unlock()

	s.cancel()
	s.wg.Wait()
}

func (s *Session) settle(text string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}

	s.snap.RequestID++
	s.snap.Text = text
	s.snap.Error = ""
	s.snap.Version++
	id := s.snap.RequestID

	if strings.TrimSpace(text) == "" {
		s.logger.Debugw("Cleared input", "request_id", id)
		s.snap.State = Idle
		s.snap.Translated = ""
		s.snap.Source = ""
		s.snap.Target = ""
		return true
	}

	s.startLocked(id, text)
	return true
}

func (s *Session) reselect() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || strings.TrimSpace(s.snap.Text) == "" {
		return false
	}

	s.snap.RequestID++
	s.snap.Error = ""
	s.snap.Version++
	s.startLocked(s.snap.RequestID, s.snap.Text)
	return true
}

func (s *Session) startLocked(id uint64, text string) {
	sel := s.selection.Selection()
	if sel.Detect() {
		s.logger.Debugw("Detecting language", "request_id", id, "text", internal.Excerpt(text))
		s.snap.State = Detecting
		s.wg.Add(1)
		go s.detect(id, text)
		return
	}

	s.logger.Debugw("Translating", "request_id", id, "source", sel.Source, "target", sel.Target,
		"text", internal.Excerpt(text))
	s.snap.State = Translating
	s.wg.Add(1)
	go s.translate(id, text, sel.Source, sel.Target)
}

func (s *Session) onDetected(e detected) (bool, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false, ""
	}
	if e.id != s.snap.RequestID {
		s.logger.Debugw("Discarding stale detection", "request_id", e.id, "latest", s.snap.RequestID)
		return false, ""
	}
	if e.err != nil {
		return true, s.failLocked(e.id, e.err)
	}

	source, target := s.resolvePair(e.lang)
	s.logger.Debugw("Detected language", "request_id", e.id, "lang", e.lang, "source", source, "target", target)
	s.snap.State = Translating
	s.snap.Version++
	s.wg.Add(1)
	go s.translate(e.id, e.text, source, target)
	return true, ""
}

func (s *Session) onTranslated(e translated) (bool, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false, ""
	}
	if e.id != s.snap.RequestID {
		s.logger.Debugw("Discarding stale translation", "request_id", e.id, "latest", s.snap.RequestID)
		return false, ""
	}
	if e.err != nil {
		return true, s.failLocked(e.id, e.err)
	}

	s.snap.State = Idle
	s.snap.Translated = e.text
	s.snap.Source = e.source
	s.snap.Target = e.target
	s.snap.Version++
	return true, ""
}

// failLocked keeps the previous translation and returns the message to show
func (s *Session) failLocked(id uint64, err error) string {
	msg := s.classifier.ClassifyError(err)
	s.logger.Warnw("Request failed", "request_id", id, "error", err)
	s.snap.State = Idle
	s.snap.Error = msg
	s.snap.Version++
	return msg
}

// resolvePair picks the pair for a detected language. Text that is not in
// the home language is translated into it, home language text goes to the
// secondary language.
func (s *Session) resolvePair(lang string) (string, string) {
	if lang != s.cfg.HomeLanguage {
		return lang, s.cfg.HomeLanguage
	}
	return s.cfg.HomeLanguage, s.cfg.SecondaryLanguage
}

func (s *Session) detect(id uint64, text string) {
	defer s.wg.Done()

	ctx, cancel := s.requestContext(id)
	lang, err := s.translator.DetectLanguage(ctx, text)
	cancel()

	s.Handle(detected{id: id, text: text, lang: lang, err: err})
}

func (s *Session) translate(id uint64, text, source, target string) {
	defer s.wg.Done()

	ctx, cancel := s.requestContext(id)
	result, err := s.translator.Translate(ctx, text, source, target)
	cancel()

	s.Handle(translated{id: id, source: source, target: target, text: result, err: err})
}

func (s *Session) requestContext(id uint64) (context.Context, context.CancelFunc) {
	ctx := translation.WithRequestID(s.ctx, id)
	return context.WithTimeout(ctx, s.cfg.Timeout)
}

func (s *Session) publish() {
	s.emitMu.Lock()
	defer s.emitMu.Unlock()

	s.mu.Lock()
	snap := s.snap
	listeners := append(([]func(Snapshot))(nil), s.listeners...)
	s.mu.Unlock()

	if snap.Version <= s.emitted {
		return
	}
	s.emitted = snap.Version
	for _, fn := range listeners {
		fn(snap)
	}
}
