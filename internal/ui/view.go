package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/atomicstack/swipekbd/internal/layout"
)

const emptyTranscript = "tap or swipe the keys below"

// View implements tea.Model.
func (m *Model) View() string {
	sections := make([]string, 0, transcriptRows+2)
	sections = append(sections, m.transcriptLines()...)
	sections = append(sections, m.statusLine())
	if m.canvas.width > 0 && m.canvas.height > 0 {
		sections = append(sections, m.canvas.Render())
	}
	return strings.Join(sections, "\n")
}

// transcriptLines returns exactly transcriptRows lines holding the tail of
// the typed text, with the cursor after the last character.
func (m *Model) transcriptLines() []string {
	lines := make([]string, transcriptRows)
	text := m.transcript.Text()
	if text == "" {
		lines[0] = styles.TranscriptEmpty.Render(truncateText(emptyTranscript, m.width))
		return lines
	}
	text = strings.ReplaceAll(text, "\t", "    ")
	rows := strings.Split(text, "\n")
	if len(rows) > transcriptRows {
		rows = rows[len(rows)-transcriptRows:]
	}
	for i, row := range rows {
		last := i == len(rows)-1
		limit := m.width
		if last && limit > 0 {
			limit--
		}
		row = tailFit(row, limit)
		row = styles.Transcript.Render(row)
		if last {
			row += m.cursor.View()
		}
		lines[i] = row
	}
	return lines
}

// tailFit keeps the end of s when it is wider than width.
func tailFit(s string, width int) string {
	if width <= 0 || lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes)) > width-1 {
		runes = runes[1:]
	}
	return "…" + string(runes)
}

func (m *Model) statusLine() string {
	if m.errMsg != "" {
		return styles.Error.Render(truncateText(m.errMsg, m.width))
	}
	if m.backendErr != "" {
		return styles.Error.Render(truncateText("dictionary: "+m.backendErr, m.width))
	}
	parts := make([]string, 0, 6)
	if m.kb != nil {
		if l := m.kb.Layout(); l != nil {
			parts = append(parts, styles.StatusKey.Render(l.Name))
		}
		if mods := modifierNames(m.kb.Mods()); mods != "" {
			parts = append(parts, styles.Status.Render(mods))
		}
		if token := m.kb.Token(); token != "" {
			parts = append(parts, styles.Status.Render(fmt.Sprintf("word %q", token)))
		}
		if word, ok := m.kb.Pending(); ok {
			parts = append(parts, styles.Status.Render("next "+word))
		}
	}
	if info := m.currentInfo(); info != "" {
		parts = append(parts, styles.Info.Render(info))
	}
	help := make([]string, 0, 3)
	for _, b := range m.keys.bindings() {
		h := b.Help()
		help = append(help, h.Key+" "+h.Desc)
	}
	parts = append(parts, styles.Footer.Render(strings.Join(help, " · ")))
	line := strings.Join(parts, "  ")
	if m.width > 0 && lipgloss.Width(line) > m.width {
		line = truncate.StringWithTail(line, uint(m.width-1), "…")
	}
	return line
}

var modifierLabels = []struct {
	mod   layout.Modifier
	label string
}{
	{layout.Shift, "shift"},
	{layout.CapsLock, "caps"},
	{layout.Ctrl, "ctrl"},
	{layout.Alt, "alt"},
	{layout.Super, "super"},
	{layout.AltGr, "altgr"},
}

func modifierNames(mods layout.Modifier) string {
	names := make([]string, 0, len(modifierLabels))
	for _, ml := range modifierLabels {
		if mods&ml.mod != 0 {
			names = append(names, ml.label)
		}
	}
	return strings.Join(names, "+")
}

func (m *Model) setInfo(message string) {
	m.infoMsg = message
	m.infoExpire = m.clock().Add(5 * time.Second)
}

func (m *Model) forceClearInfo() {
	m.infoMsg = ""
	m.infoExpire = time.Time{}
}

func (m *Model) currentInfo() string {
	if m.infoMsg != "" && !m.infoExpire.IsZero() && m.clock().After(m.infoExpire) {
		m.forceClearInfo()
	}
	return m.infoMsg
}

func truncateText(text string, width int) string {
	if width <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= width {
		return text
	}
	if width == 1 {
		return string(runes[:1])
	}
	return string(runes[:width-1]) + "…"
}
