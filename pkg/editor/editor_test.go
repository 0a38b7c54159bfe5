package editor

import (
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/blockone/pkg/geom"
	"github.com/matzehuels/blockone/pkg/render"
	"github.com/matzehuels/blockone/pkg/scene"
)

func click(e *Editor, p geom.Point) {
	e.OnMouseMove(p)
	e.OnMouseDown(scene.ButtonPrimary, scene.Modifiers{})
	e.OnMouseUp(scene.ButtonPrimary)
}

func TestTextInputSplitsRunes(t *testing.T) {
	e := New(scene.New())
	e.OnTextInput("nn")
	if n := len(e.Scene().Blocks()); n != 2 {
		t.Errorf("blocks = %d after \"nn\", want 2", n)
	}

	e.OnTextInput("xyz")
	if n := len(e.Scene().Blocks()); n != 2 {
		t.Errorf("blocks = %d after unbound text, want 2", n)
	}
}

// Every binding a keymap accepts must be reachable by typing it.
func TestBoundTextReachesScene(t *testing.T) {
	k := scene.NewKeymap()
	for _, b := range []string{"b", "é", "<"} {
		if err := k.Bind(b, scene.CommandAddBlock); err != nil {
			t.Fatalf("Bind(%q): %v", b, err)
		}
	}
	e := New(scene.New(scene.WithKeymap(k)))

	for i, b := range k.Bindings() {
		e.OnTextInput(b.Input)
		if n := len(e.Scene().Blocks()); n != i+1 {
			t.Errorf("typing %q: blocks = %d, want %d", b.Input, n, i+1)
		}
	}
	if e.Target() != TargetCanvas {
		t.Errorf("target = %v, want canvas", e.Target())
	}
}

func TestConnectScenario(t *testing.T) {
	e := New(scene.New())
	e.OnMouseMove(geom.Pt(10, 10))
	e.OnTextInput("n")
	e.OnMouseMove(geom.Pt(300, 300))
	e.OnTextInput("a")
	click(e, geom.Pt(20, 20))
	e.OnTextInput("l")
	click(e, geom.Pt(310, 310))

	s := e.Scene()
	blocks := s.Blocks()
	if len(blocks) != 2 {
		t.Fatalf("blocks = %d, want 2", len(blocks))
	}
	want := []scene.Link{{From: blocks[0].ID, To: blocks[1].ID}}
	if got := s.Links(); !slices.Equal(got, want) {
		t.Errorf("links = %v, want %v", got, want)
	}
}

func TestHelpTargetSwallowsCanvasInput(t *testing.T) {
	e := New(scene.New())
	e.OnTextInput("n")
	click(e, geom.Pt(10, 10))
	if len(e.Scene().Focused()) != 1 {
		t.Fatalf("focused = %d, want 1", len(e.Scene().Focused()))
	}

	e.OnTextInput(HelpKey)
	if e.Target() != TargetHelp {
		t.Fatalf("target = %v, want help", e.Target())
	}

	e.OnTextInput("n")
	e.OnTextInput("l")
	e.OnKeyDown(scene.KeyDelete)
	if len(e.Scene().Blocks()) != 1 || len(e.Scene().Links()) != 0 {
		t.Errorf("help target let input through: %d blocks, %d links", len(e.Scene().Blocks()), len(e.Scene().Links()))
	}

	e.OnKeyDown(scene.KeyEscape)
	if e.Target() != TargetCanvas {
		t.Fatalf("target = %v after escape, want canvas", e.Target())
	}

	e.OnKeyDown(scene.KeyDelete)
	if len(e.Scene().Blocks()) != 0 {
		t.Errorf("delete on canvas left %d blocks", len(e.Scene().Blocks()))
	}
}

func TestHelpCloseKeys(t *testing.T) {
	tests := []struct {
		name  string
		close func(e *Editor)
	}{
		{"question mark", func(e *Editor) { e.OnTextInput("?") }},
		{"q", func(e *Editor) { e.OnTextInput("q") }},
		{"escape", func(e *Editor) { e.OnKeyDown(scene.KeyEscape) }},
		{"click", func(e *Editor) { e.OnMouseDown(scene.ButtonPrimary, scene.Modifiers{}) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New(scene.New())
			e.SetTarget(TargetHelp)
			tt.close(e)
			if e.Target() != TargetCanvas {
				t.Errorf("target = %v, want canvas", e.Target())
			}
		})
	}
}

func TestHelpClickDoesNotReachScene(t *testing.T) {
	e := New(scene.New())
	e.OnTextInput("n")
	e.OnTextInput(HelpKey)
	click(e, geom.Pt(10, 10))

	if e.Target() != TargetCanvas {
		t.Errorf("target = %v, want canvas", e.Target())
	}
	if len(e.Scene().Focused()) != 0 {
		t.Error("closing click focused a block")
	}
}

func TestEscapeCancelsOnCanvas(t *testing.T) {
	e := New(scene.New())
	e.OnTextInput("n")
	click(e, geom.Pt(10, 10))
	e.OnTextInput("l")
	if e.Scene().PendingLinks() != 1 {
		t.Fatalf("PendingLinks = %d, want 1", e.Scene().PendingLinks())
	}

	e.OnKeyDown(scene.KeyEscape)
	if e.Scene().PendingLinks() != 0 {
		t.Errorf("PendingLinks = %d after escape", e.Scene().PendingLinks())
	}
	if e.Target() != TargetCanvas {
		t.Errorf("target = %v, want canvas", e.Target())
	}
}

func TestDragThroughEditor(t *testing.T) {
	e := New(scene.New())
	e.OnTextInput("n")
	e.OnMouseMove(geom.Pt(10, 10))
	e.OnMouseDown(scene.ButtonPrimary, scene.Modifiers{})
	e.OnMouseMove(geom.Pt(60, 30))
	e.OnMouseUp(scene.ButtonPrimary)
	e.OnMouseMove(geom.Pt(400, 400))

	if got := e.Scene().Blocks()[0].Pos; got != geom.Pt(50, 20) {
		t.Errorf("block at %v, want (50,20)", got)
	}
}

func TestRedrawTracking(t *testing.T) {
	e := New(scene.New())
	if !e.NeedsRedraw() {
		t.Error("first frame is always drawn")
	}

	var rec render.Recorder
	e.OnRedraw(&rec)
	if e.NeedsRedraw() || e.Frames() != 1 {
		t.Errorf("after redraw: dirty = %v, frames = %d", e.NeedsRedraw(), e.Frames())
	}

	e.OnTick(16 * time.Millisecond)
	if e.NeedsRedraw() {
		t.Error("a tick alone should not dirty the editor")
	}
	if e.Elapsed() != 16*time.Millisecond {
		t.Errorf("Elapsed() = %v", e.Elapsed())
	}

	e.OnMouseMove(geom.Pt(3, 4))
	if !e.NeedsRedraw() {
		t.Error("mouse motion should dirty the editor")
	}
	e.OnRedraw(&rec)

	e.OnMouseMove(geom.Pt(3, 4))
	if e.NeedsRedraw() {
		t.Error("same position is not a change")
	}
}

func TestHelpOverlayRender(t *testing.T) {
	e := New(scene.New())
	e.OnTextInput("n")

	var canvas render.Recorder
	e.OnRedraw(&canvas)
	if n := len(canvas.Filter(render.OpText)); n != 0 {
		t.Errorf("canvas drew %d text ops", n)
	}

	e.SetTarget(TargetHelp)
	var help render.Recorder
	e.OnRedraw(&help)

	// Overlay is drawn after the scene.
	if len(help.Ops) < len(canvas.Ops) || !slices.Equal(canvas.Ops, help.Ops[:len(canvas.Ops)]) {
		t.Fatal("help frame does not start with the scene")
	}
	texts := help.Filter(render.OpText)
	if len(texts) != len(HelpLines(scene.DefaultKeymap())) {
		t.Fatalf("text ops = %d, want %d", len(texts), len(HelpLines(scene.DefaultKeymap())))
	}
	if texts[0].Text != "Keys" {
		t.Errorf("first line = %q, want Keys", texts[0].Text)
	}
}

func TestHelpLines(t *testing.T) {
	joined := strings.Join(HelpLines(scene.DefaultKeymap()), "\n")
	for _, want := range []string{"add_block", "add_link", "<delete>", "<escape>", "cancel", "close help"} {
		if !strings.Contains(joined, want) {
			t.Errorf("help missing %q:\n%s", want, joined)
		}
	}
}

func TestStatus(t *testing.T) {
	e := New(scene.New())
	e.OnTextInput("n")
	click(e, geom.Pt(10, 10))
	e.OnTextInput("l")

	want := "blocks 1  links 1 (1 pending)  focused 1  [canvas]  ? help"
	if got := e.Status(); got != want {
		t.Errorf("Status() = %q, want %q", got, want)
	}
}

func TestConfigure(t *testing.T) {
	e := New(scene.New())
	e.Configure(scene.WithBlockSize(geom.Size{W: 10, H: 10}))
	e.OnTextInput("n")
	if w := e.Scene().Blocks()[0].Width; w != 10 {
		t.Errorf("width = %v, want 10", w)
	}
}

func TestWithLineHeight(t *testing.T) {
	e := New(scene.New(), WithLineHeight(20))
	e.SetTarget(TargetHelp)

	var rec render.Recorder
	e.OnRedraw(&rec)
	texts := rec.Filter(render.OpText)
	if len(texts) < 2 {
		t.Fatalf("text ops = %d, want at least 2", len(texts))
	}
	if d := texts[1].A.Y - texts[0].A.Y; d != 20 {
		t.Errorf("line spacing = %v, want 20", d)
	}
}
