package ui

import (
	"reflect"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/swipekbd/internal/backend"
	"github.com/atomicstack/swipekbd/internal/data/dispatcher"
	"github.com/atomicstack/swipekbd/internal/keyboard"
	"github.com/atomicstack/swipekbd/internal/theme"
	"github.com/atomicstack/swipekbd/internal/vkbd"
)

const transcriptRows = 3

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// Config wires a Model to its collaborators. Keyboard must draw onto Canvas
// and type into Transcript.
type Config struct {
	Keyboard   *keyboard.Keyboard
	Canvas     *Canvas
	Transcript *vkbd.Transcript
	// Watcher and Dispatcher deliver dictionary reloads; both may be nil.
	Watcher    *backend.Watcher
	Dispatcher *dispatcher.Dispatcher
	// Predictions signals completed background predictions.
	Predictions <-chan struct{}
	// TrailTick is the repaint interval while a swipe trail fades. Zero
	// disables trail animation.
	TrailTick time.Duration
	Width     int
	Height    int
}

// Model implements the Bubble Tea model for the on-screen keyboard.
type Model struct {
	kb          *keyboard.Keyboard
	canvas      *Canvas
	transcript  *vkbd.Transcript
	backend     *backend.Watcher
	backendErr  string
	dispatcher  *dispatcher.Dispatcher
	predictions <-chan struct{}

	keys         keyMap
	cursor       cursor.Model
	width        int
	height       int
	fixedWidth   bool
	fixedHeight  bool
	landscape    bool
	pointerDown  bool
	trailTick    time.Duration
	trailRunning bool
	errMsg       string
	infoMsg      string
	infoExpire   time.Time

	start time.Time
	clock func() time.Time

	handlers map[reflect.Type]msgHandler
}

// NewModel builds the model around an already constructed keyboard.
func NewModel(cfg Config) *Model {
	m := &Model{
		kb:          cfg.Keyboard,
		canvas:      cfg.Canvas,
		transcript:  cfg.Transcript,
		backend:     cfg.Watcher,
		dispatcher:  cfg.Dispatcher,
		predictions: cfg.Predictions,
		keys:        defaultKeyMap(),
		trailTick:   cfg.TrailTick,
		clock:       time.Now,
	}
	if m.canvas == nil {
		m.canvas = NewCanvas(0, 0)
	}
	if m.transcript == nil {
		m.transcript = vkbd.NewTranscript()
	}
	m.start = m.clock()
	c := cursor.New()
	if styles.TranscriptCursor != nil {
		c.Style = *styles.TranscriptCursor
	}
	c.SetChar(" ")
	m.cursor = c
	if cfg.Width > 0 {
		m.width = cfg.Width
		m.fixedWidth = true
	}
	if cfg.Height > 0 {
		m.height = cfg.Height
		m.fixedHeight = true
	}
	if m.width > 0 && m.height > 0 {
		m.resizeKeyboard()
	}
	m.registerHandlers()
	return m
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{}
	if m.backend != nil {
		cmds = append(cmds, waitForBackendEvent(m.backend))
	}
	if m.predictions != nil {
		cmds = append(cmds, waitForPredictions(m.predictions))
	}
	if cmd := m.cursor.Focus(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 2)
	var cmd tea.Cmd
	m.cursor, cmd = m.cursor.Update(msg)
	if cmd != nil {
		cmds = append(cmds, cmd)
	}
	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	switch len(cmds) {
	case 0:
		return m, nil
	case 1:
		return m, cmds[0]
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):          m.handleKeyMsg,
		reflect.TypeOf(tea.MouseMsg{}):        m.handleMouseMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}):   m.handleWindowSizeMsg,
		reflect.TypeOf(trailTickMsg{}):        m.handleTrailTickMsg,
		reflect.TypeOf(predictionsReadyMsg{}): m.handlePredictionsReadyMsg,
		reflect.TypeOf(backendEventMsg{}):     m.handleBackendEventMsg,
		reflect.TypeOf(backendDoneMsg{}):      m.handleBackendDoneMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

// millis is the event clock handed to the keyboard: milliseconds since the
// model was created.
func (m *Model) millis() uint32 {
	return uint32(m.clock().Sub(m.start).Milliseconds())
}

// canvasTop is the first screen row of the keyboard canvas.
func (m *Model) canvasTop() int {
	return transcriptRows + 1
}

func (m *Model) resizeKeyboard() {
	h := m.height - m.canvasTop()
	if h < 1 {
		h = 1
	}
	m.canvas.Resize(m.width, h)
	if m.kb != nil {
		m.kb.Resize(m.width, h)
	}
}

// Keyboard exposes the keyboard driven by the model.
func (m *Model) Keyboard() *keyboard.Keyboard {
	return m.kb
}

// Transcript returns the text typed so far.
func (m *Model) Transcript() string {
	return m.transcript.Text()
}
