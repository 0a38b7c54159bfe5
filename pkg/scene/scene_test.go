package scene

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/google/uuid"

	"github.com/matzehuels/blockone/pkg/geom"
	"github.com/matzehuels/blockone/pkg/observability"
	"github.com/matzehuels/blockone/pkg/render"
)

// addBlockAt moves the cursor to p and presses "n".
func addBlockAt(s *Scene, p geom.Point) BlockID {
	s.OnMouseMove(p)
	s.OnTextInput("n")
	blocks := s.Blocks()
	return blocks[len(blocks)-1].ID
}

func clickAt(s *Scene, p geom.Point) {
	s.OnMouseMove(p)
	s.OnMouseClick(ButtonPrimary, Modifiers{})
	s.OnMouseRelease(ButtonPrimary)
}

func shiftClickAt(s *Scene, p geom.Point) {
	s.OnMouseMove(p)
	s.OnMouseClick(ButtonPrimary, Modifiers{Shift: true})
	s.OnMouseRelease(ButtonPrimary)
}

// focusedIDs lists the focused block handles in order.
func focusedIDs(s *Scene) []BlockID {
	var ids []BlockID
	for _, b := range s.Focused() {
		ids = append(ids, b.ID)
	}
	return ids
}

func TestNewScene(t *testing.T) {
	s := New()
	if len(s.Blocks()) != 0 || len(s.Links()) != 0 {
		t.Errorf("new scene has %d blocks, %d links", len(s.Blocks()), len(s.Links()))
	}
	if s.MousePosition() != (geom.Point{}) {
		t.Errorf("mouse = %v", s.MousePosition())
	}
	if s.Dragging() {
		t.Error("new scene is dragging")
	}
	if s.Bounds() != (geom.Rect{}) {
		t.Errorf("Bounds() = %v", s.Bounds())
	}
}

func TestAddBlockAtMouse(t *testing.T) {
	s := New(WithBlockSize(geom.Size{W: 40, H: 20}))
	s.OnMouseMove(geom.Pt(12, 34))
	s.OnTextInput("a")

	blocks := s.Blocks()
	if len(blocks) != 1 {
		t.Fatalf("blocks = %d, want 1", len(blocks))
	}
	b := blocks[0]
	if b.Pos != geom.Pt(12, 34) || b.Width != 40 || b.Height != 20 || b.Focused {
		t.Errorf("block = %+v", b)
	}
}

func TestUnboundInputIsIgnored(t *testing.T) {
	s := New()
	s.OnTextInput("x")
	s.OnTextInput("nn")
	s.OnTextInput("")
	s.OnKeyDown(KeyTab)
	s.OnKeyDown(KeyUnknown)
	if len(s.Blocks()) != 0 || len(s.Links()) != 0 {
		t.Errorf("unbound input changed the scene: %d blocks, %d links", len(s.Blocks()), len(s.Links()))
	}
}

func TestSecondaryClickIgnored(t *testing.T) {
	s := New()
	addBlockAt(s, geom.Pt(0, 0))
	s.OnMouseMove(geom.Pt(5, 5))
	s.OnMouseClick(ButtonSecondary, Modifiers{})
	s.OnMouseClick(ButtonMiddle, Modifiers{})
	if len(s.Focused()) != 0 || s.Dragging() {
		t.Errorf("focused = %d, dragging = %v", len(s.Focused()), s.Dragging())
	}
}

func TestFocusExclusivityAfterClick(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	s := New()
	for range 12 {
		addBlockAt(s, geom.Pt(rng.Float64()*600, rng.Float64()*400))
	}
	// Start from several focused blocks.
	shiftClickAt(s, geom.Pt(50, 50))
	shiftClickAt(s, geom.Pt(300, 200))

	for i := range 200 {
		p := geom.Pt(rng.Float64()*800-100, rng.Float64()*600-100)
		hit, ok := s.BlockAt(p)
		clickAt(s, p)

		got := focusedIDs(s)
		switch {
		case !ok && len(got) != 0:
			t.Fatalf("click %d at %v on empty canvas left %d focused", i, p, len(got))
		case ok && (len(got) != 1 || got[0] != hit.ID):
			t.Fatalf("click %d at %v: focused = %v, want [%v]", i, p, got, hit.ID)
		}
	}
}

func TestClickFocusedBlockKeepsFocus(t *testing.T) {
	s := New()
	addBlockAt(s, geom.Pt(0, 0))
	clickAt(s, geom.Pt(10, 10))
	if len(s.Focused()) != 1 {
		t.Fatalf("focused = %d, want 1", len(s.Focused()))
	}

	// Focus is cleared first, then toggled back on.
	clickAt(s, geom.Pt(10, 10))
	if len(s.Focused()) != 1 {
		t.Errorf("focused = %d after second click, want 1", len(s.Focused()))
	}
}

func TestClickHitsFirstBlockInOrder(t *testing.T) {
	s := New()
	first := addBlockAt(s, geom.Pt(0, 0))
	addBlockAt(s, geom.Pt(50, 20))

	clickAt(s, geom.Pt(60, 30))
	if got := focusedIDs(s); !slices.Equal(got, []BlockID{first}) {
		t.Errorf("focused = %v, want [%v]", got, first)
	}
}

func TestShiftClickAdditive(t *testing.T) {
	s := New()
	a := addBlockAt(s, geom.Pt(0, 0))
	b := addBlockAt(s, geom.Pt(300, 0))

	clickAt(s, geom.Pt(10, 10))
	shiftClickAt(s, geom.Pt(310, 10))
	if got := focusedIDs(s); !slices.Equal(got, []BlockID{a, b}) {
		t.Fatalf("focused = %v, want [%v %v]", got, a, b)
	}

	// Shift-clicking a focused block toggles it off.
	shiftClickAt(s, geom.Pt(10, 10))
	if got := focusedIDs(s); !slices.Equal(got, []BlockID{b}) {
		t.Errorf("focused = %v, want [%v]", got, b)
	}
}

func TestShiftClickWithoutAdditiveSelect(t *testing.T) {
	s := New(WithAdditiveSelect(false))
	addBlockAt(s, geom.Pt(0, 0))
	b := addBlockAt(s, geom.Pt(300, 0))

	clickAt(s, geom.Pt(10, 10))
	shiftClickAt(s, geom.Pt(310, 10))
	if got := focusedIDs(s); !slices.Equal(got, []BlockID{b}) {
		t.Errorf("focused = %v, want [%v]", got, b)
	}
}

func TestSelfLoopRejected(t *testing.T) {
	s := New()
	a := addBlockAt(s, geom.Pt(0, 0))
	clickAt(s, geom.Pt(10, 10))
	s.OnTextInput("l")
	clickAt(s, geom.Pt(20, 20))

	want := []Link{{From: a, To: uuid.Nil}}
	if got := s.Links(); !slices.Equal(got, want) {
		t.Errorf("links = %v, want %v", got, want)
	}
}

func TestScenarioConnectTwoBlocks(t *testing.T) {
	s := New()
	b1 := addBlockAt(s, geom.Pt(10, 10))
	b2 := addBlockAt(s, geom.Pt(300, 300))

	clickAt(s, geom.Pt(50, 50))
	s.OnTextInput("l")
	clickAt(s, geom.Pt(350, 350))

	if len(s.Blocks()) != 2 {
		t.Errorf("blocks = %d, want 2", len(s.Blocks()))
	}
	want := []Link{{From: b1, To: b2}}
	if got := s.Links(); !slices.Equal(got, want) {
		t.Errorf("links = %v, want %v", got, want)
	}
}

func TestScenarioEmptyClickLeavesLinkIncomplete(t *testing.T) {
	s := New()
	addBlockAt(s, geom.Pt(10, 10))
	clickAt(s, geom.Pt(20, 20))
	s.OnTextInput("l")
	clickAt(s, geom.Pt(500, 500))

	links := s.Links()
	if len(links) != 1 || links[0].Completed() {
		t.Errorf("links = %v, want one pending link", links)
	}
	if len(s.Focused()) != 0 {
		t.Errorf("focused = %d, want 0", len(s.Focused()))
	}
}

func TestScenarioDeleteFromBlock(t *testing.T) {
	s := New()
	addBlockAt(s, geom.Pt(10, 10))
	b2 := addBlockAt(s, geom.Pt(300, 300))
	clickAt(s, geom.Pt(20, 20))
	s.OnTextInput("l")
	clickAt(s, geom.Pt(310, 310))
	if len(s.Links()) != 1 {
		t.Fatalf("links = %d, want 1", len(s.Links()))
	}

	clickAt(s, geom.Pt(20, 20))
	s.OnKeyDown(KeyDelete)

	blocks := s.Blocks()
	if len(blocks) != 1 || blocks[0].ID != b2 {
		t.Errorf("blocks = %v, want only %v", blocks, b2)
	}
	if len(s.Links()) != 0 {
		t.Errorf("links = %v, want none", s.Links())
	}
}

func TestLinkCompletesOnlyLastLink(t *testing.T) {
	s := New()
	a := addBlockAt(s, geom.Pt(0, 0))
	b := addBlockAt(s, geom.Pt(300, 0))
	c := addBlockAt(s, geom.Pt(600, 0))

	// Two pending links from a and b.
	clickAt(s, geom.Pt(10, 10))
	s.OnMouseMove(geom.Pt(310, 10))
	s.OnMouseClick(ButtonPrimary, Modifiers{Shift: true})
	s.OnTextInput("l")
	if s.PendingLinks() != 2 {
		t.Fatalf("PendingLinks = %d, want 2", s.PendingLinks())
	}

	clickAt(s, geom.Pt(610, 10))
	want := []Link{{From: a, To: uuid.Nil}, {From: b, To: c}}
	if got := s.Links(); !slices.Equal(got, want) {
		t.Fatalf("links = %v, want %v", got, want)
	}

	// The last link is complete now, so further clicks connect nothing.
	clickAt(s, geom.Pt(310, 10))
	if s.Links()[0].Completed() {
		t.Error("older pending link was completed")
	}
}

func TestDeleteReferentialIntegrity(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	for round := range 50 {
		s := New(WithAdditiveSelect(true))
		n := 3 + rng.IntN(8)
		for i := range n {
			addBlockAt(s, geom.Pt(float64(i)*200, float64(rng.IntN(3))*100))
		}
		blocks := s.Blocks()

		// Random completed and pending links.
		for range rng.IntN(10) {
			from := blocks[rng.IntN(n)]
			to := blocks[rng.IntN(n)]
			clickAt(s, from.Pos.Add(geom.Pt(1, 1)))
			s.OnTextInput("l")
			if rng.IntN(4) > 0 {
				clickAt(s, to.Pos.Add(geom.Pt(1, 1)))
			}
		}

		// Focus a random subset.
		clickAt(s, geom.Pt(-1000, -1000))
		deleted := make(map[BlockID]bool)
		for _, b := range blocks {
			if rng.IntN(2) == 0 {
				continue
			}
			shiftClickAt(s, b.Pos.Add(geom.Pt(1, 1)))
			deleted[b.ID] = true
		}
		linksBefore := s.Links()

		s.DeleteFocused()

		for _, b := range s.Blocks() {
			if deleted[b.ID] {
				t.Fatalf("round %d: focused block %v survived", round, b.ID)
			}
		}
		if got := len(s.Blocks()); got != n-len(deleted) {
			t.Fatalf("round %d: blocks = %d, want %d", round, got, n-len(deleted))
		}
		var want []Link
		for _, l := range linksBefore {
			if !deleted[l.From] && !(l.Completed() && deleted[l.To]) {
				want = append(want, l)
			}
		}
		if got := s.Links(); !slices.Equal(got, want) {
			t.Fatalf("round %d: links = %v, want %v", round, got, want)
		}
	}
}

func TestDeleteWithNothingFocused(t *testing.T) {
	s := New()
	addBlockAt(s, geom.Pt(0, 0))
	s.OnKeyDown(KeyBackspace)
	if len(s.Blocks()) != 1 {
		t.Errorf("blocks = %d, want 1", len(s.Blocks()))
	}
}

func TestMoveFocusedTranslatesOnlyFocused(t *testing.T) {
	s := New()
	for i := range 6 {
		addBlockAt(s, geom.Pt(float64(i)*200, 0))
	}
	for _, x := range []float64{10, 410, 810} {
		shiftClickAt(s, geom.Pt(x, 10))
	}
	before := s.Blocks()
	mouse := s.MousePosition()

	s.MoveFocused(mouse.Add(geom.Pt(15, -7)))

	if s.MousePosition() != mouse {
		t.Errorf("MoveFocused changed the mouse to %v", s.MousePosition())
	}
	for i, b := range s.Blocks() {
		want := before[i].Pos
		if before[i].Focused {
			want = want.Add(geom.Pt(15, -7))
		}
		if b.Pos != want {
			t.Errorf("block %d at %v, want %v", i, b.Pos, want)
		}
	}
}

func TestDragMove(t *testing.T) {
	s := New()
	id := addBlockAt(s, geom.Pt(0, 0))
	other := addBlockAt(s, geom.Pt(300, 0))

	s.OnMouseMove(geom.Pt(10, 10))
	s.OnMouseClick(ButtonPrimary, Modifiers{})
	if !s.Dragging() {
		t.Fatal("click on a block should start a drag")
	}

	s.OnMouseMove(geom.Pt(30, 15))
	s.OnMouseMove(geom.Pt(40, 40))
	s.OnMouseRelease(ButtonPrimary)
	if s.Dragging() {
		t.Error("release should end the drag")
	}

	s.OnMouseMove(geom.Pt(100, 100))

	b, ok := s.Block(id)
	if !ok {
		t.Fatal("dragged block missing")
	}
	if b.Pos != geom.Pt(30, 30) {
		t.Errorf("dragged block at %v, want (30,30)", b.Pos)
	}
	if o, _ := s.Block(other); o.Pos != geom.Pt(300, 0) {
		t.Errorf("unfocused block moved to %v", o.Pos)
	}
}

func TestDragMoveDisabled(t *testing.T) {
	s := New(WithDragMove(false))
	id := addBlockAt(s, geom.Pt(0, 0))

	s.OnMouseMove(geom.Pt(10, 10))
	s.OnMouseClick(ButtonPrimary, Modifiers{})
	if s.Dragging() {
		t.Error("drag started with drag-move off")
	}
	s.OnMouseMove(geom.Pt(50, 50))

	if b, _ := s.Block(id); b.Pos != geom.Pt(0, 0) {
		t.Errorf("block moved to %v", b.Pos)
	}
}

func TestClickOnEmptyCanvasDoesNotDrag(t *testing.T) {
	s := New()
	s.OnMouseClick(ButtonPrimary, Modifiers{})
	if s.Dragging() {
		t.Error("empty click started a drag")
	}
}

func TestCancelPendingLinks(t *testing.T) {
	s := New()
	addBlockAt(s, geom.Pt(0, 0))
	addBlockAt(s, geom.Pt(300, 0))
	clickAt(s, geom.Pt(10, 10))
	s.OnTextInput("l")
	clickAt(s, geom.Pt(310, 10))
	s.OnTextInput("l")
	if len(s.Links()) != 2 {
		t.Fatalf("links = %d, want 2", len(s.Links()))
	}

	s.OnKeyDown(KeyEscape)

	links := s.Links()
	if len(links) != 1 || !links[0].Completed() {
		t.Errorf("links = %v, want one complete link", links)
	}
	if s.PendingLinks() != 0 {
		t.Errorf("PendingLinks = %d", s.PendingLinks())
	}
}

func TestRenderOrder(t *testing.T) {
	s := New()
	addBlockAt(s, geom.Pt(0, 0))
	addBlockAt(s, geom.Pt(300, 0))
	clickAt(s, geom.Pt(10, 10))
	s.OnTextInput("l")
	clickAt(s, geom.Pt(310, 10))
	s.OnTextInput("l") // pending link follows the cursor

	var rec render.Recorder
	s.Render(&rec)

	// Two blocks at twelve ops each, then two curves.
	if len(rec.Ops) != 26 {
		t.Fatalf("ops = %d, want 26", len(rec.Ops))
	}
	for i, op := range rec.Ops[:24] {
		if op.Kind == render.OpCubic {
			t.Errorf("op %d is a curve drawn before the blocks", i)
		}
	}
	curves := rec.Filter(render.OpCubic)
	if len(curves) != 2 {
		t.Fatalf("curves = %d, want 2", len(curves))
	}
	if want := Curve(geom.R(0, 0, 150, 80), geom.R(300, 0, 150, 80)); curves[0].Curve != want {
		t.Errorf("complete link curve = %+v, want %+v", curves[0].Curve, want)
	}
	cursor := geom.Rect{Min: s.MousePosition(), W: DefaultBlockWidth, H: DefaultBlockHeight}
	if want := Curve(geom.R(300, 0, 150, 80), cursor); curves[1].Curve != want {
		t.Errorf("pending link curve = %+v, want %+v", curves[1].Curve, want)
	}
}

func TestRenderDoesNotMutate(t *testing.T) {
	s := New()
	addBlockAt(s, geom.Pt(0, 0))
	clickAt(s, geom.Pt(10, 10))
	s.OnTextInput("l")
	blocks, links := s.Blocks(), s.Links()

	var rec render.Recorder
	s.Render(&rec)
	s.Update(0)

	if !slices.Equal(blocks, s.Blocks()) || !slices.Equal(links, s.Links()) {
		t.Error("Render or Update changed the scene")
	}
}

func TestRenderDebugOverlay(t *testing.T) {
	s := New(WithDebug(true))
	addBlockAt(s, geom.Pt(0, 0))
	clickAt(s, geom.Pt(10, 10))
	s.OnTextInput("l")

	var plain, debug render.Recorder
	s.Configure(WithDebug(false))
	s.Render(&plain)
	s.Configure(WithDebug(true))
	s.Render(&debug)

	if len(debug.Ops) != len(plain.Ops)+5 {
		t.Errorf("debug ops = %d, want %d", len(debug.Ops), len(plain.Ops)+5)
	}
}

func TestBounds(t *testing.T) {
	s := New()
	addBlockAt(s, geom.Pt(-10, 20))
	addBlockAt(s, geom.Pt(300, 100))
	if got, want := s.Bounds(), geom.R(-10, 20, 460, 160); got != want {
		t.Errorf("Bounds() = %v, want %v", got, want)
	}
}

func TestConfigureKeepsGraph(t *testing.T) {
	s := New()
	addBlockAt(s, geom.Pt(0, 0))

	k := NewKeymap()
	if err := k.Bind("b", CommandAddBlock); err != nil {
		t.Fatal(err)
	}
	s.Configure(WithKeymap(k))

	s.OnTextInput("n")
	if len(s.Blocks()) != 1 {
		t.Errorf("old binding still active: %d blocks", len(s.Blocks()))
	}
	s.OnTextInput("b")
	if len(s.Blocks()) != 2 {
		t.Errorf("new binding inactive: %d blocks", len(s.Blocks()))
	}
}

// recordingHooks counts scene events.
type recordingHooks struct {
	observability.NoopSceneHooks
	added, removed, linked, completed, rejected, unlinked int
	ignored                                                []string
	focus                                                  []int
}

func (h *recordingHooks) OnBlockAdded(string, float64, float64) { h.added++ }
func (h *recordingHooks) OnBlockRemoved(string)                 { h.removed++ }
func (h *recordingHooks) OnFocusChanged(n int)                  { h.focus = append(h.focus, n) }
func (h *recordingHooks) OnLinkAdded(string)                    { h.linked++ }
func (h *recordingHooks) OnLinkCompleted(string, string)        { h.completed++ }
func (h *recordingHooks) OnLinkRejected(string)                 { h.rejected++ }
func (h *recordingHooks) OnLinkRemoved(string, string)          { h.unlinked++ }
func (h *recordingHooks) OnInputIgnored(in string)              { h.ignored = append(h.ignored, in) }

func TestSceneHooks(t *testing.T) {
	h := &recordingHooks{}
	observability.SetSceneHooks(h)
	t.Cleanup(observability.Reset)

	s := New()
	addBlockAt(s, geom.Pt(0, 0))
	addBlockAt(s, geom.Pt(300, 0))
	clickAt(s, geom.Pt(10, 10))
	s.OnTextInput("l")
	clickAt(s, geom.Pt(10, 10)) // self-loop
	clickAt(s, geom.Pt(310, 10))
	s.OnTextInput("z")
	clickAt(s, geom.Pt(10, 10))
	s.OnKeyDown(KeyDelete)

	counts := []struct {
		name      string
		got, want int
	}{
		{"added", h.added, 2},
		{"linked", h.linked, 1},
		{"rejected", h.rejected, 1},
		{"completed", h.completed, 1},
		{"unlinked", h.unlinked, 1},
		{"removed", h.removed, 1},
	}
	for _, c := range counts {
		if c.got != c.want {
			t.Errorf("%s = %d, want %d", c.name, c.got, c.want)
		}
	}
	if !slices.Equal(h.ignored, []string{"z"}) {
		t.Errorf("ignored = %v", h.ignored)
	}
	if !slices.Equal(h.focus, []int{1, 1, 1, 1}) {
		t.Errorf("focus = %v", h.focus)
	}
}
