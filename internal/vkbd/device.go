// Package vkbd models the virtual keyboard device the keyboard types into.
package vkbd

import (
	"errors"

	"github.com/atomicstack/swipekbd/internal/layout"
)

// ErrUnknownKeymap is returned when a keymap name has no table.
var ErrUnknownKeymap = errors.New("no such keymap defined")

// Device receives keymaps, modifier state and key events. Uploading a keymap
// is synchronous; an error means the device is unusable.
type Device interface {
	UploadKeymap(name string, comp, compShift uint32) error
	SetModifiers(mods layout.Modifier)
	SendKey(time, code uint32, pressed bool)
}
