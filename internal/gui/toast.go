package gui

import (
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"

	"codeberg.org/snonux/livetrans/internal/notify"
)

const toastDuration = 3 * time.Second

// Toast is a notify.Sink showing each message in a label for a short time
type Toast struct {
	label    *widget.Label
	duration time.Duration
	do       func(func()) // runs UI updates on the fyne thread

	mu    sync.Mutex
	gen   uint64
	timer *time.Timer
}

// NewToast creates an empty toast
func NewToast() *Toast {
	label := widget.NewLabel("")
	label.Wrapping = fyne.TextWrapWord
	return &Toast{
		label:    label,
		duration: toastDuration,
		do:       fyne.Do,
	}
}

// Widget returns the label to place in a layout
func (t *Toast) Widget() fyne.CanvasObject {
	return t.label
}

// Notify shows message until it expires or the next message arrives
func (t *Toast) Notify(message string, severity notify.Severity) {
	t.mu.Lock()
	t.gen++
	gen := t.gen
	if t.timer != nil {
		t.timer.Stop()
	}
	t.timer = time.AfterFunc(t.duration, func() { t.expire(gen) })
	t.mu.Unlock()

	t.do(func() {
		t.label.Importance = importanceOf(severity)
		t.label.SetText(message)
	})
}

// Stop cancels a pending expiry
func (t *Toast) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.timer != nil {
		t.timer.Stop()
	}
	t.gen++
}

func (t *Toast) expire(gen uint64) {
	t.mu.Lock()
	current := gen == t.gen
	t.mu.Unlock()
	if !current {
		return
	}
	t.do(func() {
		t.label.SetText("")
	})
}

func importanceOf(severity notify.Severity) widget.Importance {
	if severity == notify.Error {
		return widget.DangerImportance
	}
	return widget.SuccessImportance
}
