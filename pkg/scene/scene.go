package scene

import (
	"maps"
	"slices"
	"time"

	"github.com/matzehuels/blockone/pkg/geom"
	"github.com/matzehuels/blockone/pkg/observability"
	"github.com/matzehuels/blockone/pkg/render"
)

// Button identifies a mouse button.
type Button int

const (
	ButtonPrimary Button = iota
	ButtonSecondary
	ButtonMiddle
)

// Modifiers is the modifier key state at the time of a click.
type Modifiers struct {
	Shift bool
	Ctrl  bool
	Alt   bool
}

// Scene owns the blocks and links of a diagram and applies input to them.
//
// The zero value is not usable; create scenes with New.
type Scene struct {
	blocks   []*Block
	links    []*Link
	mouse    geom.Point
	dragging bool

	keymap    Keymap
	blockSize geom.Size
	style     Style
	dragMove  bool
	additive  bool
	debug     bool
}

// Option configures a Scene.
type Option func(*Scene)

// WithKeymap replaces the default keymap.
func WithKeymap(k Keymap) Option { return func(s *Scene) { s.keymap = k } }

// WithBlockSize sets the size of newly added blocks and of the cursor box
// used by incomplete links.
func WithBlockSize(size geom.Size) Option {
	return func(s *Scene) { s.blockSize = geom.Size{W: max(size.W, 0), H: max(size.H, 0)} }
}

// WithStyle sets the render style.
func WithStyle(st Style) Option { return func(s *Scene) { s.style = st } }

// WithDragMove enables or disables dragging focused blocks with the primary
// button held down.
func WithDragMove(on bool) Option { return func(s *Scene) { s.dragMove = on } }

// WithAdditiveSelect lets a shift-click toggle the hit block without clearing
// the focus of the others.
func WithAdditiveSelect(on bool) Option { return func(s *Scene) { s.additive = on } }

// WithDebug draws link construction markers.
func WithDebug(on bool) Option { return func(s *Scene) { s.debug = on } }

// New creates an empty scene with the default keymap, block size and style.
// Drag-to-move and additive selection are enabled.
func New(opts ...Option) *Scene {
	s := &Scene{
		keymap:    DefaultKeymap(),
		blockSize: DefaultBlockSize,
		style:     DefaultStyle(),
		dragMove:  true,
		additive:  true,
	}
	s.Configure(opts...)
	return s
}

// Configure applies options to an existing scene. Graph state is untouched.
func (s *Scene) Configure(opts ...Option) {
	for _, opt := range opts {
		opt(s)
	}
}

// =============================================================================
// Input
// =============================================================================

// OnTextInput dispatches typed text through the keymap. The whole string is
// matched literally; unbound text is ignored.
func (s *Scene) OnTextInput(text string) {
	cmd, ok := s.keymap.Text[text]
	if !ok {
		observability.Scene().OnInputIgnored(text)
		return
	}
	s.Execute(cmd)
}

// OnKeyDown dispatches a named key through the keymap.
func (s *Scene) OnKeyDown(k Key) {
	cmd, ok := s.keymap.Keys[k]
	if !ok {
		observability.Scene().OnInputIgnored(k.String())
		return
	}
	s.Execute(cmd)
}

// Execute runs cmd against the scene.
func (s *Scene) Execute(cmd Command) {
	switch cmd {
	case CommandAddBlock:
		s.AddBlock()
	case CommandAddLink:
		s.AddLinks()
	case CommandDeleteFocused:
		s.DeleteFocused()
	case CommandCancelLinks:
		s.CancelPendingLinks()
	}
}

// OnMouseClick handles a button press at the current mouse position.
//
// Only the primary button does anything. Focus is cleared on every block
// (unless shift is held and additive selection is on), then the first block
// in creation order under the cursor has its focus toggled. If the most
// recently created link is still incomplete, the hit block becomes its
// target; connecting a block to itself is ignored.
func (s *Scene) OnMouseClick(b Button, mods Modifiers) {
	if b != ButtonPrimary {
		return
	}
	defer func() { observability.Scene().OnFocusChanged(s.focusedCount()) }()

	if !(mods.Shift && s.additive) {
		for _, blk := range s.blocks {
			blk.Focused = false
		}
	}

	hit := s.blockAt(s.mouse)
	if hit == nil {
		return
	}
	hit.ToggleFocus()

	if n := len(s.links); n > 0 && !s.links[n-1].Completed() {
		last := s.links[n-1]
		if last.Complete(hit.ID) {
			observability.Scene().OnLinkCompleted(last.From.String(), last.To.String())
		} else {
			observability.Scene().OnLinkRejected(last.From.String())
		}
	}

	if s.dragMove && hit.Focused {
		s.dragging = true
	}
}

// OnMouseRelease ends a drag when the primary button is released.
func (s *Scene) OnMouseRelease(b Button) {
	if b == ButtonPrimary {
		s.dragging = false
	}
}

// OnMouseMove records the new cursor position, dragging focused blocks along
// when a drag is active.
func (s *Scene) OnMouseMove(p geom.Point) {
	if s.dragging {
		s.MoveFocused(p)
	}
	s.mouse = p
}

// SetMousePosition records the cursor position without any drag handling.
func (s *Scene) SetMousePosition(p geom.Point) { s.mouse = p }

// =============================================================================
// Mutations
// =============================================================================

// AddBlock appends an unfocused block at the mouse position and returns its
// handle.
func (s *Scene) AddBlock() BlockID {
	b := NewBlockSized(s.mouse, s.blockSize)
	s.blocks = append(s.blocks, b)
	observability.Scene().OnBlockAdded(b.ID.String(), b.Pos.X, b.Pos.Y)
	return b.ID
}

// AddLinks starts one incomplete link from every focused block, in block
// order. It returns the number of links created.
func (s *Scene) AddLinks() int {
	n := 0
	for _, b := range s.blocks {
		if !b.Focused {
			continue
		}
		s.links = append(s.links, NewLink(b.ID))
		observability.Scene().OnLinkAdded(b.ID.String())
		n++
	}
	return n
}

// MoveFocused translates every focused block by the distance between p and
// the stored mouse position. The stored position is not updated.
func (s *Scene) MoveFocused(p geom.Point) {
	delta := p.Sub(s.mouse)
	for _, b := range s.blocks {
		if b.Focused {
			b.Pos = b.Pos.Add(delta)
		}
	}
}

// DeleteFocused removes every focused block together with every link that
// references one of them. Remaining blocks and links keep their order.
func (s *Scene) DeleteFocused() {
	blockIdx := make(map[int]struct{})
	linkIdx := make(map[int]struct{})
	for i, b := range s.blocks {
		if !b.Focused {
			continue
		}
		blockIdx[i] = struct{}{}
		for j, l := range s.links {
			if l.References(b.ID) {
				linkIdx[j] = struct{}{}
			}
		}
	}
	if len(blockIdx) == 0 {
		return
	}

	hooks := observability.Scene()
	for _, j := range descending(linkIdx) {
		l := s.links[j]
		s.links = slices.Delete(s.links, j, j+1)
		hooks.OnLinkRemoved(l.From.String(), endpointString(l))
	}
	for _, i := range descending(blockIdx) {
		b := s.blocks[i]
		s.blocks = slices.Delete(s.blocks, i, i+1)
		hooks.OnBlockRemoved(b.ID.String())
	}
	s.dragging = false
}

// CancelPendingLinks removes every incomplete link.
func (s *Scene) CancelPendingLinks() {
	hooks := observability.Scene()
	s.links = slices.DeleteFunc(s.links, func(l *Link) bool {
		if l.Completed() {
			return false
		}
		hooks.OnLinkRemoved(l.From.String(), "")
		return true
	})
}

// Update advances time-driven state. Nothing in the scene animates yet, so
// this is a no-op adapters may call every tick.
func (s *Scene) Update(elapsed time.Duration) {}

// =============================================================================
// Rendering
// =============================================================================

// Render draws all blocks in creation order, then all links on top.
// Incomplete links end at a virtual block placed at the mouse position.
func (s *Scene) Render(t render.Target) {
	byID := make(map[BlockID]*Block, len(s.blocks))
	for _, b := range s.blocks {
		b.Render(t, s.style)
		byID[b.ID] = b
	}

	cursor := geom.Rect{Min: s.mouse, W: s.blockSize.W, H: s.blockSize.H}
	for _, l := range s.links {
		from, ok := byID[l.From]
		if !ok {
			continue
		}
		to := cursor
		if l.Completed() {
			tb, ok := byID[l.To]
			if !ok {
				continue
			}
			to = tb.Bounds()
		}
		l.Render(from.Bounds(), to, t, s.style, s.debug)
	}
}

// =============================================================================
// Queries
// =============================================================================

// Blocks returns copies of all blocks in creation order.
func (s *Scene) Blocks() []Block {
	out := make([]Block, len(s.blocks))
	for i, b := range s.blocks {
		out[i] = *b
	}
	return out
}

// Links returns copies of all links in creation order.
func (s *Scene) Links() []Link {
	out := make([]Link, len(s.links))
	for i, l := range s.links {
		out[i] = *l
	}
	return out
}

// Block returns a copy of the block with the given handle.
func (s *Scene) Block(id BlockID) (Block, bool) {
	for _, b := range s.blocks {
		if b.ID == id {
			return *b, true
		}
	}
	return Block{}, false
}

// BlockAt returns a copy of the first block, in creation order, containing p.
func (s *Scene) BlockAt(p geom.Point) (Block, bool) {
	if b := s.blockAt(p); b != nil {
		return *b, true
	}
	return Block{}, false
}

// Focused returns copies of the focused blocks in creation order.
func (s *Scene) Focused() []Block {
	var out []Block
	for _, b := range s.blocks {
		if b.Focused {
			out = append(out, *b)
		}
	}
	return out
}

// PendingLinks returns the number of incomplete links.
func (s *Scene) PendingLinks() int {
	n := 0
	for _, l := range s.links {
		if !l.Completed() {
			n++
		}
	}
	return n
}

// MousePosition returns the stored cursor position.
func (s *Scene) MousePosition() geom.Point { return s.mouse }

// Dragging reports whether a drag is in progress.
func (s *Scene) Dragging() bool { return s.dragging }

// Keymap returns the active keymap.
func (s *Scene) Keymap() Keymap { return s.keymap }

// Style returns the active render style.
func (s *Scene) Style() Style { return s.style }

// Bounds returns the box enclosing every block, or the zero Rect for an
// empty scene.
func (s *Scene) Bounds() geom.Rect {
	var r geom.Rect
	for _, b := range s.blocks {
		r = r.Union(b.Bounds())
	}
	return r
}

func (s *Scene) blockAt(p geom.Point) *Block {
	for _, b := range s.blocks {
		if b.Contains(p) {
			return b
		}
	}
	return nil
}

func (s *Scene) focusedCount() int {
	n := 0
	for _, b := range s.blocks {
		if b.Focused {
			n++
		}
	}
	return n
}

func descending(set map[int]struct{}) []int {
	idx := slices.Sorted(maps.Keys(set))
	slices.Reverse(idx)
	return idx
}

func endpointString(l *Link) string {
	if !l.Completed() {
		return ""
	}
	return l.To.String()
}
