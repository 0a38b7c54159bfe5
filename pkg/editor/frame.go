package editor

import (
	"time"

	"github.com/matzehuels/blockone/pkg/geom"
	"github.com/matzehuels/blockone/pkg/scene"
)

// Frame is the input gathered by a polling adapter during one tick.
type Frame struct {
	Mouse     geom.Point
	Modifiers scene.Modifiers
	Pressed   []scene.Button
	Released  []scene.Button
	Text      string
	Keys      []scene.Key
	Elapsed   time.Duration
}

// Apply feeds a frame to the editor: cursor motion first, then button
// presses and releases, typed text, named keys and finally the tick.
func (e *Editor) Apply(f Frame) {
	e.OnMouseMove(f.Mouse)
	for _, b := range f.Pressed {
		e.OnMouseDown(b, f.Modifiers)
	}
	for _, b := range f.Released {
		e.OnMouseUp(b)
	}
	e.OnTextInput(f.Text)
	for _, k := range f.Keys {
		e.OnKeyDown(k)
	}
	if f.Elapsed > 0 {
		e.OnTick(f.Elapsed)
	}
}
