package ui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/swipekbd/internal/backend"
)

func waitForBackendEvent(w *backend.Watcher) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-w.Events()
		if !ok {
			return backendDoneMsg{}
		}
		return backendEventMsg{event: evt}
	}
}

type backendEventMsg struct {
	event backend.Event
}

type backendDoneMsg struct{}

func (m *Model) handleBackendEventMsg(msg tea.Msg) tea.Cmd {
	eventMsg, ok := msg.(backendEventMsg)
	if !ok {
		return nil
	}
	m.applyBackendEvent(eventMsg.event)
	if m.backend != nil {
		return waitForBackendEvent(m.backend)
	}
	return nil
}

func (m *Model) handleBackendDoneMsg(msg tea.Msg) tea.Cmd {
	m.backend = nil
	return nil
}

// applyBackendEvent hands a dictionary reload to the dispatcher and refreshes
// the suggestions so they reflect the new word list.
func (m *Model) applyBackendEvent(evt backend.Event) {
	if evt.Err != nil {
		m.backendErr = evt.Err.Error()
		return
	}
	if m.dispatcher == nil {
		return
	}
	res := m.dispatcher.Handle(evt)
	if res.Err != nil {
		m.backendErr = res.Err.Error()
		return
	}
	m.backendErr = ""
	if res.DictionaryReloaded {
		m.setInfo(fmt.Sprintf("dictionary loaded: %d words", res.Words))
		if m.kb != nil {
			m.kb.RefreshSuggestions()
			m.kb.Draw()
		}
	}
}

func waitForPredictions(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return predictionsReadyMsg{}
	}
}

type predictionsReadyMsg struct{}

// handlePredictionsReadyMsg re-runs the current query once a background
// prediction has landed in the cache.
func (m *Model) handlePredictionsReadyMsg(msg tea.Msg) tea.Cmd {
	if m.kb != nil {
		m.kb.RefreshSuggestions()
		m.kb.Draw()
	}
	if m.predictions != nil {
		return waitForPredictions(m.predictions)
	}
	return nil
}

type trailTickMsg struct{}

func trailTickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return trailTickMsg{}
	})
}

// startTrail begins repainting the swipe trail while it fades.
func (m *Model) startTrail() tea.Cmd {
	if m.trailTick <= 0 || m.trailRunning || m.kb == nil || m.kb.SwipePoints() < 2 {
		return nil
	}
	m.trailRunning = true
	return trailTickCmd(m.trailTick)
}

func (m *Model) handleTrailTickMsg(msg tea.Msg) tea.Cmd {
	if m.kb == nil || !m.kb.Tick(m.millis()) {
		m.trailRunning = false
		return nil
	}
	return trailTickCmd(m.trailTick)
}
