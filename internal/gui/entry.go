package gui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

// InputEntry is a multi-line entry where Enter commits the text and
// Shift+Enter inserts a line break. Escape clears it.
type InputEntry struct {
	widget.Entry
	onCommit func()
	onEscape func()
	shift    bool
}

// NewInputEntry creates a new input entry
func NewInputEntry() *InputEntry {
	entry := &InputEntry{}
	entry.MultiLine = true
	entry.Wrapping = fyne.TextWrapWord
	entry.ExtendBaseWidget(entry)
	return entry
}

// TypedKey handles key events
func (e *InputEntry) TypedKey(key *fyne.KeyEvent) {
	switch key.Name {
	case fyne.KeyEscape:
		if e.onEscape != nil {
			e.onEscape()
			return
		}
	case fyne.KeyReturn, fyne.KeyEnter:
		if !e.shift && e.onCommit != nil {
			e.onCommit()
			return
		}
	}
	e.Entry.TypedKey(key)
}

// KeyDown tracks the shift modifier
func (e *InputEntry) KeyDown(key *fyne.KeyEvent) {
	if isShift(key.Name) {
		e.shift = true
	}
	e.Entry.KeyDown(key)
}

// KeyUp tracks the shift modifier
func (e *InputEntry) KeyUp(key *fyne.KeyEvent) {
	if isShift(key.Name) {
		e.shift = false
	}
	e.Entry.KeyUp(key)
}

// SetOnCommit sets the callback for when Enter is pressed
func (e *InputEntry) SetOnCommit(f func()) {
	e.onCommit = f
}

// SetOnEscape sets the callback for when Escape is pressed
func (e *InputEntry) SetOnEscape(f func()) {
	e.onEscape = f
}

func isShift(name fyne.KeyName) bool {
	return name == desktop.KeyShiftLeft || name == desktop.KeyShiftRight
}
