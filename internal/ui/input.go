package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type keyMap struct {
	Quit      key.Binding
	Clear     key.Binding
	Landscape key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "esc"),
			key.WithHelp("esc", "quit"),
		),
		Clear: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("^l", "clear"),
		),
		Landscape: key.NewBinding(
			key.WithKeys("ctrl+o"),
			key.WithHelp("^o", "landscape"),
		),
	}
}

func (k keyMap) bindings() []key.Binding {
	return []key.Binding{k.Quit, k.Clear, k.Landscape}
}

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		return tea.Quit
	case key.Matches(keyMsg, m.keys.Clear):
		m.transcript.Clear()
		m.errMsg = ""
		m.forceClearInfo()
	case key.Matches(keyMsg, m.keys.Landscape):
		m.landscape = !m.landscape
		if m.kb != nil {
			m.kb.SetLandscape(m.landscape)
		}
		if m.landscape {
			m.setInfo("landscape layers")
		} else {
			m.setInfo("portrait layers")
		}
	}
	return nil
}

// handleMouseMsg turns left-button pointer events into keyboard gestures.
// Presses outside the canvas are ignored; once a gesture has started,
// motion and release are forwarded wherever the pointer is.
func (m *Model) handleMouseMsg(msg tea.Msg) tea.Cmd {
	mouse, ok := msg.(tea.MouseMsg)
	if !ok || m.kb == nil {
		return nil
	}
	t := m.millis()
	x, y := mouse.X, mouse.Y-m.canvasTop()
	switch mouse.Action {
	case tea.MouseActionPress:
		if mouse.Button != tea.MouseButtonLeft || y < 0 {
			return nil
		}
		m.pointerDown = true
		m.kb.Down(t, x, y)
	case tea.MouseActionMotion:
		if !m.pointerDown {
			return nil
		}
		m.kb.Motion(t, x, y)
	case tea.MouseActionRelease:
		if !m.pointerDown {
			return nil
		}
		m.pointerDown = false
		m.kb.Up(t, x, y)
	default:
		return nil
	}
	return m.startTrail()
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	m.resizeKeyboard()
	return nil
}
