// Package editor routes adapter input to the scene.
//
// An [Editor] sits between a platform adapter (window, terminal, script
// player) and a [scene.Scene]. Adapters forward raw events through the
// On* callbacks; the editor decides which focus target receives them.
// The canvas target drives the scene, the help target shows the active
// keymap and swallows canvas keys until it is dismissed.
//
// An Editor is not safe for concurrent use. Each adapter calls it from a
// single goroutine.
package editor

import (
	"fmt"
	"time"

	"github.com/matzehuels/blockone/pkg/geom"
	"github.com/matzehuels/blockone/pkg/render"
	"github.com/matzehuels/blockone/pkg/scene"
)

// HelpKey toggles the help overlay.
const HelpKey = scene.HelpText

// Target is the part of the editor that currently receives keyboard input.
type Target int

const (
	TargetCanvas Target = iota
	TargetHelp
)

func (t Target) String() string {
	switch t {
	case TargetCanvas:
		return "canvas"
	case TargetHelp:
		return "help"
	}
	return "unknown"
}

// handler is the per-target input table.
type handler interface {
	text(e *Editor, s string)
	key(e *Editor, k scene.Key)
	mouseDown(e *Editor, b scene.Button, mods scene.Modifiers)
	render(e *Editor, t render.Target)
}

// Editor owns a scene and the focus target.
type Editor struct {
	scene      *scene.Scene
	target     Target
	handlers   map[Target]handler
	dirty      bool
	lineHeight float64

	frames  int
	elapsed time.Duration
}

// Option configures an Editor.
type Option func(*Editor)

// WithLineHeight sets the spacing of overlay text lines in canvas units.
// Adapters with coarse text cells use their cell height.
func WithLineHeight(h float64) Option {
	return func(e *Editor) {
		if h > 0 {
			e.lineHeight = h
		}
	}
}

// New wraps s. Input goes to the canvas until the help overlay is opened.
func New(s *scene.Scene, opts ...Option) *Editor {
	e := &Editor{
		scene:  s,
		target: TargetCanvas,
		handlers: map[Target]handler{
			TargetCanvas: canvasHandler{},
			TargetHelp:   helpHandler{},
		},
		dirty:      true,
		lineHeight: defaultLineHeight,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Scene returns the edited scene.
func (e *Editor) Scene() *scene.Scene { return e.scene }

// Target returns the focus target.
func (e *Editor) Target() Target { return e.target }

// SetTarget moves keyboard focus to t.
func (e *Editor) SetTarget(t Target) {
	if _, ok := e.handlers[t]; !ok || t == e.target {
		return
	}
	e.target = t
	e.dirty = true
}

// Configure applies scene options, e.g. after a config reload.
func (e *Editor) Configure(opts ...scene.Option) {
	e.scene.Configure(opts...)
	e.dirty = true
}

// OnTextInput dispatches typed text one character at a time.
func (e *Editor) OnTextInput(text string) {
	for _, r := range text {
		e.handlers[e.target].text(e, string(r))
	}
	if text != "" {
		e.dirty = true
	}
}

// OnKeyDown dispatches a named key.
func (e *Editor) OnKeyDown(k scene.Key) {
	e.handlers[e.target].key(e, k)
	e.dirty = true
}

// OnMouseDown dispatches a button press at the last reported position.
func (e *Editor) OnMouseDown(b scene.Button, mods scene.Modifiers) {
	e.handlers[e.target].mouseDown(e, b, mods)
	e.dirty = true
}

// OnMouseUp forwards a button release. Releases always reach the scene so a
// drag cannot outlive the button.
func (e *Editor) OnMouseUp(b scene.Button) {
	e.scene.OnMouseRelease(b)
}

// OnMouseMove forwards the cursor position. The scene tracks the cursor
// regardless of focus target.
func (e *Editor) OnMouseMove(p geom.Point) {
	if p == e.scene.MousePosition() {
		return
	}
	e.scene.OnMouseMove(p)
	e.dirty = true
}

// OnTick advances the scene by elapsed.
func (e *Editor) OnTick(elapsed time.Duration) {
	e.elapsed += elapsed
	e.scene.Update(elapsed)
}

// OnRedraw draws the scene and the active target's overlay onto t.
func (e *Editor) OnRedraw(t render.Target) {
	e.scene.Render(t)
	e.handlers[e.target].render(e, t)
	e.frames++
	e.dirty = false
}

// NeedsRedraw reports whether anything changed since the last OnRedraw.
// A pending link follows the cursor, so mouse motion counts as a change.
func (e *Editor) NeedsRedraw() bool { return e.dirty }

// Frames returns the number of OnRedraw calls.
func (e *Editor) Frames() int { return e.frames }

// Elapsed returns the total time passed to OnTick.
func (e *Editor) Elapsed() time.Duration { return e.elapsed }

// Status is a one-line summary for adapter status bars.
func (e *Editor) Status() string {
	s := e.scene
	links := s.Links()
	line := fmt.Sprintf("blocks %d  links %d", len(s.Blocks()), len(links))
	if n := s.PendingLinks(); n > 0 {
		line += fmt.Sprintf(" (%d pending)", n)
	}
	line += fmt.Sprintf("  focused %d  [%s]  %s help", len(s.Focused()), e.target, HelpKey)
	return line
}
