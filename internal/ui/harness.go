package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Harness drives the UI model programmatically for integration tests. It
// owns a manual clock so gesture timing is deterministic.
type Harness struct {
	model *Model
	now   time.Time
}

// NewHarness creates a harness for the provided model and takes over its
// clock.
func NewHarness(model *Model) *Harness {
	h := &Harness{model: model, now: time.Unix(0, 0)}
	if model != nil {
		model.clock = func() time.Time { return h.now }
		model.start = h.now
	}
	return h
}

// Send routes a message through the model and executes any returned commands.
func (h *Harness) Send(msg tea.Msg) {
	if h.model == nil {
		return
	}
	mdl, cmd := h.model.Update(msg)
	if updated, ok := mdl.(*Model); ok {
		h.model = updated
	}
	h.processCmd(cmd)
}

func (h *Harness) processCmd(cmd tea.Cmd) {
	for cmd != nil {
		msg := cmd()
		if msg == nil {
			return
		}
		mdl, next := h.model.Update(msg)
		if updated, ok := mdl.(*Model); ok {
			h.model = updated
		}
		cmd = next
	}
}

// Advance moves the clock forward.
func (h *Harness) Advance(d time.Duration) {
	h.now = h.now.Add(d)
}

// Press, Drag and Release send left-button mouse events at screen cell
// coordinates.
func (h *Harness) Press(x, y int) {
	h.Send(tea.MouseMsg{X: x, Y: y, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
}

func (h *Harness) Drag(x, y int) {
	h.Send(tea.MouseMsg{X: x, Y: y, Button: tea.MouseButtonLeft, Action: tea.MouseActionMotion})
}

func (h *Harness) Release(x, y int) {
	h.Send(tea.MouseMsg{X: x, Y: y, Button: tea.MouseButtonLeft, Action: tea.MouseActionRelease})
}

// Tap presses and releases at one point, advancing the clock in between.
func (h *Harness) Tap(x, y int) {
	h.Press(x, y)
	h.Advance(50 * time.Millisecond)
	h.Release(x, y)
	h.Advance(50 * time.Millisecond)
}

// View returns the current view string.
func (h *Harness) View() string {
	if h.model == nil {
		return ""
	}
	return h.model.View()
}

// Model exposes the underlying model.
func (h *Harness) Model() *Model {
	return h.model
}
