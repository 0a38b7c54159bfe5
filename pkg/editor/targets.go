package editor

import (
	"fmt"
	"image/color"

	"github.com/matzehuels/blockone/pkg/geom"
	"github.com/matzehuels/blockone/pkg/render"
	"github.com/matzehuels/blockone/pkg/scene"
)

// canvasHandler sends input to the scene.
type canvasHandler struct{}

func (canvasHandler) text(e *Editor, s string) {
	if s == HelpKey {
		e.SetTarget(TargetHelp)
		return
	}
	e.scene.OnTextInput(s)
}

func (canvasHandler) key(e *Editor, k scene.Key) { e.scene.OnKeyDown(k) }

func (canvasHandler) mouseDown(e *Editor, b scene.Button, mods scene.Modifiers) {
	e.scene.OnMouseClick(b, mods)
}

func (canvasHandler) render(*Editor, render.Target) {}

// Help overlay layout in canvas units.
const (
	helpOrigin        = 20.0
	helpWidth         = 280.0
	helpPadding       = 10.0
	defaultLineHeight = 16.0
)

var (
	helpBackground = color.RGBA{R: 245, G: 245, B: 245, A: 235}
	helpBorder     = color.RGBA{R: 100, G: 100, B: 100, A: 255}
	helpText       = color.Black
)

// helpHandler shows the keymap and returns to the canvas on "?", "q" or
// Escape. Mouse presses dismiss it without reaching the scene.
type helpHandler struct{}

func (helpHandler) text(e *Editor, s string) {
	if s == HelpKey || s == "q" {
		e.SetTarget(TargetCanvas)
	}
}

func (helpHandler) key(e *Editor, k scene.Key) {
	if k == scene.KeyEscape {
		e.SetTarget(TargetCanvas)
	}
}

func (helpHandler) mouseDown(e *Editor, _ scene.Button, _ scene.Modifiers) {
	e.SetTarget(TargetCanvas)
}

func (helpHandler) render(e *Editor, t render.Target) {
	lines := HelpLines(e.scene.Keymap())
	box := geom.R(helpOrigin, helpOrigin, helpWidth, float64(len(lines))*e.lineHeight+2*helpPadding)
	t.FillRect(box, helpBackground)
	render.RectBorder(t, box, 1, helpBorder)
	for i, line := range lines {
		p := geom.Pt(box.Min.X+helpPadding, box.Min.Y+helpPadding+float64(i)*e.lineHeight)
		t.Text(p, line, helpText)
	}
}

// HelpLines formats the keymap for display, one binding per line, followed
// by the mouse bindings and the overlay's own keys.
func HelpLines(k scene.Keymap) []string {
	lines := []string{"Keys"}
	for _, b := range k.Bindings() {
		lines = append(lines, fmt.Sprintf("  %-12s %s", b.Input, b.Command))
	}
	return append(lines,
		fmt.Sprintf("  %-12s %s", "click", "focus block / finish link"),
		fmt.Sprintf("  %-12s %s", "shift+click", "add to focus"),
		fmt.Sprintf("  %-12s %s", "drag", "move focused"),
		fmt.Sprintf("  %-12s %s", HelpKey+" q <esc>", "close help"),
	)
}
