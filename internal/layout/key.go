package layout

// Kind tags the behaviour of a key.
type Kind int

const (
	// Pad is spacing, never pressable.
	Pad Kind = iota
	// Code emits a scancode.
	Code
	// Mod toggles the modifier mask stored in Code.
	Mod
	// Copy types the code point stored in Code through a temporary keymap.
	Copy
	// Switch jumps to the layout named by Target.
	Switch
	// BackLayer returns to the last alphabetic layout.
	BackLayer
	// NextLayer advances through the layer sequence.
	NextLayer
	// Compose switches to the target layout of the next key pressed.
	Compose
	// EndRow terminates a row.
	EndRow
	// Last terminates a layout.
	Last
)

func (k Kind) String() string {
	switch k {
	case Pad:
		return "pad"
	case Code:
		return "code"
	case Mod:
		return "mod"
	case Copy:
		return "copy"
	case Switch:
		return "switch"
	case BackLayer:
		return "back-layer"
	case NextLayer:
		return "next-layer"
	case Compose:
		return "compose"
	case EndRow:
		return "end-row"
	case Last:
		return "last"
	default:
		return "unknown"
	}
}

// Modifier is the modifier mask understood by the virtual keyboard protocol.
// The values follow wl_keyboard's (undocumented) bit assignment.
type Modifier uint8

const (
	NoMod    Modifier = 0
	Shift    Modifier = 1
	CapsLock Modifier = 2
	Ctrl     Modifier = 4
	Alt      Modifier = 8
	Super    Modifier = 64
	AltGr    Modifier = 128
)

// ID indexes a layout inside a Registry. NoLayout marks an absent reference.
type ID int

const NoLayout ID = -1

// Rect is an absolute rectangle in surface pixels.
type Rect struct {
	X, Y, W, H uint32
}

// Contains reports whether the point lies inside the half-open rect.
func (r Rect) Contains(x, y uint32) bool {
	return x >= r.X && y >= r.Y && x < r.X+r.W && y < r.Y+r.H
}

// Center returns the midpoint of the rect.
func (r Rect) Center() (float64, float64) {
	return float64(r.X) + float64(r.W)/2.0, float64(r.Y) + float64(r.H)/2.0
}

// Key is one entry of a layout. Geometry (Rect) is computed by Arrange and is
// never authored by hand.
type Key struct {
	Label      string
	ShiftLabel string
	Width      float64
	Kind       Kind

	// Code is the evdev scancode for Code keys, the modifier mask for Mod
	// keys, and the code point for Copy keys.
	Code uint32
	// CodeMod is the modifier forced while a Code key is pressed, or the
	// shifted code point for Copy keys.
	CodeMod  uint32
	ResetMod bool
	Scheme   uint8

	// TargetName names the Switch destination or compose target. It is
	// resolved into Target when the registry is built.
	TargetName string
	Target     ID

	Rect Rect
}

// Pressable reports whether the key can be returned by hit testing.
func (k *Key) Pressable() bool {
	return k.Kind != Pad && k.Kind != EndRow && k.Kind != Last
}
