// Package keyboard implements the input and prediction core of the on-screen
// keyboard: layer navigation, gesture classification, token tracking,
// suggestion policy and word commits. A Keyboard is driven from a single
// goroutine; every transition happens inside Down, Motion, Up or a refresh.
package keyboard

import (
	"fmt"
	"io"
	"os"

	"github.com/atomicstack/swipekbd/internal/layout"
	"github.com/atomicstack/swipekbd/internal/logging"
	"github.com/atomicstack/swipekbd/internal/logging/events"
	"github.com/atomicstack/swipekbd/internal/predict"
	"github.com/atomicstack/swipekbd/internal/state"
	"github.com/atomicstack/swipekbd/internal/suggest"
	"github.com/atomicstack/swipekbd/internal/theme"
	"github.com/atomicstack/swipekbd/internal/vkbd"
)

const (
	// MaxSwipePoints caps a swipe capture; later samples are dropped.
	MaxSwipePoints = 192

	DefaultSwipeThreshold = 18
	DefaultSwipeRefresh   = 40
	DefaultKeyBorder      = 2
	DefaultTrailFade      = 800
	DefaultTrailWidth     = 10

	// autoCommitDelay separates an auto-committed word from the separator
	// key that triggered it.
	autoCommitDelay = 32
)

// Trail configures the faded polyline drawn along a swipe.
type Trail struct {
	Enabled bool
	// FadeMS fades points by age, FadeDistance by path distance from the
	// newest point. Zero disables the respective fade.
	FadeMS       uint32
	FadeDistance float64
	Width        int
	// Color defaults to the swipe colour of the first scheme.
	Color theme.Color
}

// Options configures a Keyboard. Zero values select the defaults.
type Options struct {
	// Layers and LandscapeLayers are comma separated layout names.
	Layers          string
	LandscapeLayers string
	Landscape       bool

	SuggestHeight  int
	Visible        int
	ContextWords   int
	SwipeThreshold int
	// SwipeRefresh is the minimum event-time gap between swipe queries.
	SwipeRefresh    uint32
	ShiftSpaceIsTab bool
	KeyBorder       int

	Bar     suggest.Metrics
	Schemes []theme.Scheme
	Trail   Trail

	// Print receives the labels of emitted keys when set.
	Print io.Writer
	// PrintIntersect highlights every key a dragging pointer crosses and
	// prints its label, ending the trace with a newline on release. It
	// serves external swipe decoders reading Print.
	PrintIntersect bool
	// Fatal handles unrecoverable device errors. The default logs and exits
	// with status 1.
	Fatal func(error)
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		Layers:         layout.DefaultLayers,
		Visible:        suggest.DefaultVisible,
		ContextWords:   state.DefaultContextWords,
		SwipeThreshold: DefaultSwipeThreshold,
		SwipeRefresh:   DefaultSwipeRefresh,
		KeyBorder:      DefaultKeyBorder,
		Bar:            suggest.DefaultMetrics(),
		Schemes:        theme.DefaultSchemes(),
		Trail: Trail{
			Enabled: true,
			FadeMS:  DefaultTrailFade,
			Width:   DefaultTrailWidth,
		},
	}
}

func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.Layers == "" {
		o.Layers = def.Layers
	}
	if o.Visible <= 0 {
		o.Visible = def.Visible
	}
	if o.ContextWords <= 0 {
		o.ContextWords = def.ContextWords
	}
	if o.SwipeThreshold <= 0 {
		o.SwipeThreshold = def.SwipeThreshold
	}
	if o.SwipeRefresh == 0 {
		o.SwipeRefresh = def.SwipeRefresh
	}
	if o.KeyBorder < 0 {
		o.KeyBorder = 0
	}
	if o.Bar == (suggest.Metrics{}) {
		o.Bar = def.Bar
	}
	if len(o.Schemes) == 0 {
		o.Schemes = def.Schemes
	}
	if o.Trail.Color == 0 {
		o.Trail.Color = o.Schemes[0].Swipe
	}
	if o.Fatal == nil {
		o.Fatal = exitOnFatal
	}
	return o
}

func exitOnFatal(err error) {
	logging.Error(err)
	events.App.Fatal(err)
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}

type inputMode int

const (
	inputNone inputMode = iota
	inputTap
	inputSwipe
	inputSuggestScroll
)

func (m inputMode) String() string {
	switch m {
	case inputTap:
		return "tap"
	case inputSwipe:
		return "swipe"
	case inputSuggestScroll:
		return "suggest-scroll"
	default:
		return "none"
	}
}

// Keyboard is the keyboard session state.
type Keyboard struct {
	reg  *layout.Registry
	dev  vkbd.Device
	surf Surface
	pred predict.Predictor
	opts Options

	layers          []layout.ID
	landscapeLayers []layout.ID
	landscape       bool

	layout       *layout.Layout
	prevLayout   *layout.Layout
	layerIndex   int
	lastAbc      *layout.Layout
	lastAbcIndex int
	mods         layout.Modifier
	compose      int
	lastPress    *layout.Key
	previewKey   *layout.Key

	width  int
	height int

	token     state.Token
	context   *state.ContextWords
	dismissed state.DismissedWords

	input           inputMode
	down            bool
	downX, downY    int
	lastX, lastY    int
	moved           bool
	dragStartX      float64
	dragStartScroll float64
	points          []predict.Point
	lastSwipe       *layout.Key
	swiped          []*layout.Key
	refresh         throttle
	trailNow        uint32

	suggestions []suggest.Suggestion
	mode        suggest.Mode
	bar         suggest.Bar
	scroll      float64
	pending     bool
	pendingWord string
}

// New validates the layer configuration, selects the first layer and uploads
// its keymap. Configuration problems are returned as *layout.ConfigError.
// surf and pred may be nil.
func New(reg *layout.Registry, dev vkbd.Device, surf Surface, pred predict.Predictor, opts Options) (*Keyboard, error) {
	opts = opts.withDefaults()
	layers, err := reg.ResolveLayers(opts.Layers)
	if err != nil {
		return nil, err
	}
	landscape := layers
	if opts.LandscapeLayers != "" {
		if landscape, err = reg.ResolveLayers(opts.LandscapeLayers); err != nil {
			return nil, err
		}
	}
	if err := reg.ValidateKeymaps(vkbd.Known); err != nil {
		return nil, err
	}
	if surf == nil {
		surf = nopSurface{}
	}

	k := &Keyboard{
		reg:             reg,
		dev:             dev,
		surf:            surf,
		pred:            pred,
		opts:            opts,
		layers:          layers,
		landscapeLayers: landscape,
		landscape:       opts.Landscape,
		context:         state.NewContextWords(opts.ContextWords),
		points:          make([]predict.Point, 0, MaxSwipePoints),
		refresh:         throttle{interval: opts.SwipeRefresh},
	}
	first := reg.Layout(k.activeLayers()[0])
	k.layout = first
	k.lastAbc = first
	if err := dev.UploadKeymap(first.Keymap, 0, 0); err != nil {
		return nil, fmt.Errorf("upload keymap %s: %w", first.Keymap, err)
	}
	events.Layout.Keymap(first.Keymap, 0, 0)
	return k, nil
}

// Resize lays every layout out below the suggestion bar and redraws.
func (k *Keyboard) Resize(width, height int) {
	k.width, k.height = width, height
	keyHeight := height - k.opts.SuggestHeight
	if keyHeight < 0 {
		keyHeight = 0
	}
	k.reg.Arrange(uint32(max(width, 0)), uint32(keyHeight), uint32(max(k.opts.SuggestHeight, 0)))
	k.drawLayout()
}

// SetLandscape selects the landscape or portrait layer sequence, restarting
// at its first layer.
func (k *Keyboard) SetLandscape(on bool) {
	if k.landscape == on {
		return
	}
	k.landscape = on
	k.switchLayout(k.reg.Layout(k.activeLayers()[0]), 0)
	k.resetLastAbc()
}

// Layout returns the active layout.
func (k *Keyboard) Layout() *layout.Layout { return k.layout }

// LayerIndex returns the position of the active layout in the layer sequence.
func (k *Keyboard) LayerIndex() int { return k.layerIndex }

// LastAbc returns the layout BackLayer keys return to.
func (k *Keyboard) LastAbc() *layout.Layout { return k.lastAbc }

// Mods returns the latched modifier mask.
func (k *Keyboard) Mods() layout.Modifier { return k.mods }

// Compose returns the compose counter; zero when no compose is active.
func (k *Keyboard) Compose() int { return k.compose }

// Token returns the word being typed.
func (k *Keyboard) Token() string { return k.token.String() }

// ContextWords returns the recently committed words, oldest first.
func (k *Keyboard) ContextWords() []string { return k.context.Words() }

// Dismissed returns the words dismissed this session.
func (k *Keyboard) Dismissed() []string { return k.dismissed.Words() }

// Suggestions returns a copy of the current suggestion list.
func (k *Keyboard) Suggestions() []suggest.Suggestion {
	return append([]suggest.Suggestion(nil), k.suggestions...)
}

// Mode returns the query mode that produced the suggestions.
func (k *Keyboard) Mode() suggest.Mode { return k.mode }

// Bar returns the last computed suggestion bar layout.
func (k *Keyboard) Bar() suggest.Bar { return k.bar }

// Pending returns the swipe word armed for auto-commit.
func (k *Keyboard) Pending() (string, bool) { return k.pendingWord, k.pending }

// SwipePoints returns the number of captured swipe samples.
func (k *Keyboard) SwipePoints() int { return len(k.points) }

// Size returns the surface size given to Resize.
func (k *Keyboard) Size() (int, int) { return k.width, k.height }

// SuggestHeight returns the height of the suggestion bar.
func (k *Keyboard) SuggestHeight() int { return k.opts.SuggestHeight }

func (k *Keyboard) fatal(err error) {
	k.opts.Fatal(err)
}
