// Package gui implements the livetrans desktop window: language selects,
// an input area translated while typing, the translated output and copy
// buttons.
package gui

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	fynetooltip "github.com/dweymouth/fyne-tooltip"
	ttwidget "github.com/dweymouth/fyne-tooltip/widget"
	"go.uber.org/zap"

	"codeberg.org/snonux/livetrans/internal"
	"codeberg.org/snonux/livetrans/internal/catalog"
	"codeberg.org/snonux/livetrans/internal/debounce"
	"codeberg.org/snonux/livetrans/internal/errorcodes"
	"codeberg.org/snonux/livetrans/internal/notify"
	"codeberg.org/snonux/livetrans/internal/selection"
	"codeberg.org/snonux/livetrans/internal/session"
)

// SessionFactory creates the translation session for the window
type SessionFactory func(sel session.SelectionSource, sink notify.Sink) (*session.Session, error)

// Config holds GUI application configuration
type Config struct {
	Catalog       *catalog.Catalog
	Classifier    *errorcodes.Classifier
	Logger        *zap.SugaredLogger
	Debounce      time.Duration
	InitialTarget string
	Selection     *selection.Model // preselected pair, built from InitialTarget when nil
	NewSession    SessionFactory
}

// Application represents the main GUI application
type Application struct {
	// Fyne components
	app    fyne.App
	window fyne.Window

	// UI elements
	sourceSelect    *widget.Select
	targetSelect    *widget.Select
	input           *InputEntry
	output          *widget.Label
	progress        *widget.ProgressBarInfinite
	translateButton *ttwidget.Button
	copyInputBtn    *ttwidget.Button
	copyOutputBtn   *ttwidget.Button
	clearButton     *ttwidget.Button
	toast           *Toast

	// Translation pipeline
	config    *Config
	selection *selection.Model
	session   *session.Session
	debouncer *debounce.Debouncer
	sink      *notify.Async
	logger    *zap.SugaredLogger

	// State management
	mu         sync.Mutex
	sources    options
	targets    options
	syncing    bool   // set while selects are updated from the model
	rendered   uint64 // version of the last rendered snapshot
	translated string
}

// New creates a new GUI application
func New(config *Config) (*Application, error) {
	if config == nil || config.Catalog == nil || config.Classifier == nil || config.NewSession == nil {
		return nil, errors.New("gui: catalog, classifier and session factory are required")
	}
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	if config.Debounce <= 0 {
		config.Debounce = 300 * time.Millisecond
	}

	sel := config.Selection
	if sel == nil {
		sel = selection.New(config.Catalog, config.InitialTarget)
	}

	myApp := app.NewWithID("org.codeberg.snonux.livetrans")

	a := &Application{
		app:       myApp,
		config:    config,
		selection: sel,
		sources:   sourceOptions(config.Catalog),
		logger:    logger,
		toast:     NewToast(),
	}
	a.sink = notify.NewAsync(notify.Multi(a.toast, notify.NewLogSink(logger)), 0, logger)

	s, err := config.NewSession(a.selection, a.sink)
	if err != nil {
		a.sink.Close()
		return nil, err
	}
	a.session = s
	a.debouncer = debounce.New(config.Debounce, func(text string) {
		a.session.Handle(session.Settled{Text: text})
	})

	a.setupUI()

	a.selection.OnChange(a.onSelectionChanged)
	a.session.OnChange(func(snap session.Snapshot) {
		fyne.Do(func() { a.render(snap) })
	})

	return a, nil
}

// setupUI creates the main user interface
func (a *Application) setupUI() {
	a.window = a.app.NewWindow(fmt.Sprintf("livetrans v%s", internal.Version))
	a.window.Resize(fyne.NewSize(900, 520))

	// Language selection
	a.sourceSelect = widget.NewSelect(a.sources.titles, a.onSourceSelected)
	a.targetSelect = widget.NewSelect(nil, a.onTargetSelected)
	a.syncSelects(a.selection.Selection())

	// Input area
	a.input = NewInputEntry()
	a.input.SetPlaceHolder("번역할 내용을 입력하세요")
	a.input.OnChanged = a.debouncer.Feed
	a.input.SetOnCommit(a.onTranslate)
	a.input.SetOnEscape(a.onClear)

	// Output area
	a.output = widget.NewLabel("")
	a.output.Wrapping = fyne.TextWrapWord
	a.output.Selectable = true
	a.progress = widget.NewProgressBarInfinite()
	a.progress.Hide()

	// Buttons (tooltips will be set after tooltip layer is created)
	a.translateButton = ttwidget.NewButtonWithIcon("", theme.ConfirmIcon(), a.onTranslate)
	a.translateButton.Importance = widget.HighImportance
	a.clearButton = ttwidget.NewButtonWithIcon("", theme.ContentClearIcon(), a.onClear)
	a.copyInputBtn = ttwidget.NewButtonWithIcon("", theme.ContentCopyIcon(), func() {
		a.copyToClipboard(a.input.Text)
	})
	a.copyOutputBtn = ttwidget.NewButtonWithIcon("", theme.ContentCopyIcon(), func() {
		a.mu.Lock()
		text := a.translated
		a.mu.Unlock()
		a.copyToClipboard(text)
	})

	inputSection := container.NewBorder(
		container.NewBorder(nil, nil, nil, container.NewHBox(a.clearButton, a.copyInputBtn), a.sourceSelect),
		nil, nil, nil,
		a.input,
	)
	outputSection := container.NewBorder(
		container.NewBorder(nil, nil, nil, a.copyOutputBtn, a.targetSelect),
		a.progress,
		nil, nil,
		container.NewVScroll(a.output),
	)

	panes := container.NewHSplit(inputSection, outputSection)
	panes.SetOffset(0.5)

	statusSection := container.NewBorder(
		nil, nil, nil,
		a.translateButton,
		container.New(layout.NewStackLayout(), a.toast.Widget()),
	)

	content := container.NewBorder(nil, statusSection, nil, nil, panes)

	// Add the tooltip layer to enable tooltips
	a.window.SetContent(fynetooltip.AddWindowToolTipLayer(content, a.window.Canvas()))
	a.setupTooltips()

	a.window.SetOnClosed(func() {
		a.debouncer.Stop()
		a.session.Close()
		a.toast.Stop()
		a.sink.Close()
	})
}

// setupTooltips sets up all tooltips after the tooltip layer has been created
func (a *Application) setupTooltips() {
	a.translateButton.SetToolTip("번역 (Enter)")
	a.clearButton.SetToolTip("지우기 (Esc)")
	a.copyInputBtn.SetToolTip("입력 복사")
	a.copyOutputBtn.SetToolTip("번역 결과 복사")
}

// Run starts the GUI application
func (a *Application) Run() {
	a.window.Canvas().Focus(a.input)
	a.window.ShowAndRun()
}

// onTranslate commits the current input without waiting for the debounce
func (a *Application) onTranslate() {
	a.debouncer.Flush()
}

// onClear empties the input and the result at once
func (a *Application) onClear() {
	a.input.SetText("")
	a.debouncer.Feed("")
	a.debouncer.Flush()
}

func (a *Application) onSourceSelected(title string) {
	if a.isSyncing() {
		return
	}
	id, ok := a.sources.id(title)
	if !ok {
		return
	}
	if err := a.selection.SetSource(id); err != nil {
		a.sink.Notify(err.Error(), notify.Error)
	}
}

func (a *Application) onTargetSelected(title string) {
	if a.isSyncing() {
		return
	}
	a.mu.Lock()
	id, ok := a.targets.id(title)
	a.mu.Unlock()
	if !ok {
		return
	}
	if err := a.selection.SetTarget(id); err != nil {
		a.sink.Notify(err.Error(), notify.Error)
	}
}

// onSelectionChanged runs on the UI thread, it is only triggered by the selects
func (a *Application) onSelectionChanged(sel selection.Selection) {
	a.syncSelects(sel)
	a.session.Handle(session.SelectionChanged{})
}

// syncSelects shows sel in both selects and offers the targets allowed
// for its source
func (a *Application) syncSelects(sel selection.Selection) {
	targets := newOptions(a.selection.Targets())

	a.mu.Lock()
	a.targets = targets
	a.syncing = true
	a.mu.Unlock()

	a.sourceSelect.SetSelected(a.sources.title(sel.Source))
	a.targetSelect.Options = targets.titles
	a.targetSelect.SetSelected(targets.title(sel.Target))
	a.targetSelect.Refresh()

	a.mu.Lock()
	a.syncing = false
	a.mu.Unlock()
}

func (a *Application) isSyncing() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.syncing
}

// render shows a session snapshot, older snapshots are ignored
func (a *Application) render(snap session.Snapshot) {
	a.mu.Lock()
	if snap.Version <= a.rendered {
		a.mu.Unlock()
		return
	}
	a.rendered = snap.Version
	a.translated = snap.Translated
	a.mu.Unlock()

	a.output.SetText(snap.Translated)
	if snap.State == session.Idle {
		a.progress.Hide()
	} else {
		a.progress.Show()
	}
}

func (a *Application) copyToClipboard(text string) {
	if text == "" {
		return
	}
	a.window.Clipboard().SetContent(text)
	a.sink.Notify(a.config.Classifier.Message(errorcodes.MsgCopied), notify.Info)
}
