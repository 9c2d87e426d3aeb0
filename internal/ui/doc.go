// Package ui contains the Bubble Tea program that hosts the on-screen
// keyboard in a terminal.
//
// Screen layout, top to bottom: a few rows of transcript showing what the
// keyboard has typed, a status line, and the keyboard canvas. The canvas is a
// character-cell implementation of keyboard.Surface; one cell is one surface
// unit, so the keyboard and suggestion bar are laid out in cells.
//
// Message flow:
//   - Mouse presses, motion and releases on the canvas become Down, Motion
//     and Up gestures, stamped with a millisecond clock relative to model
//     creation.
//   - Key presses are matched against a bubbles/key map (quit, clear the
//     transcript, toggle landscape layers).
//   - A backend.Watcher streams dictionary file contents; each event is
//     applied through the dispatcher and the current suggestions are
//     re-queried.
//   - When predictions run in the background, completion is signalled on a
//     channel that Update waits on; each signal re-runs the current query.
//   - While a swipe trail is fading, a tick repaints it until it expires.
package ui
