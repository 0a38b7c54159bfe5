package scene

import (
	"github.com/google/uuid"

	"github.com/matzehuels/blockone/pkg/geom"
	"github.com/matzehuels/blockone/pkg/render"
)

// Default block dimensions in canvas units.
const (
	DefaultBlockWidth  = 150.0
	DefaultBlockHeight = 80.0
)

// BlockID is the stable handle of a block. The zero value (uuid.Nil) never
// names a block.
type BlockID = uuid.UUID

// DefaultBlockSize is the size of blocks created without an explicit size.
var DefaultBlockSize = geom.Size{W: DefaultBlockWidth, H: DefaultBlockHeight}

// Block is a rectangular node on the canvas. Pos is the top-left corner.
type Block struct {
	ID      BlockID
	Pos     geom.Point
	Width   float64
	Height  float64
	Focused bool
}

// NewBlock creates an unfocused block of the default size at pos.
func NewBlock(pos geom.Point) *Block {
	return NewBlockSized(pos, DefaultBlockSize)
}

// NewBlockSized creates an unfocused block of the given size at pos.
// Negative dimensions are clamped to zero.
func NewBlockSized(pos geom.Point, size geom.Size) *Block {
	return &Block{
		ID:     uuid.New(),
		Pos:    pos,
		Width:  max(size.W, 0),
		Height: max(size.H, 0),
	}
}

// ToggleFocus inverts the focus flag.
func (b *Block) ToggleFocus() {
	b.Focused = !b.Focused
}

// Bounds returns the block's bounding box.
func (b *Block) Bounds() geom.Rect {
	return geom.Rect{Min: b.Pos, W: b.Width, H: b.Height}
}

// Contains reports whether p is inside the block. Left and top edges are
// inclusive, right and bottom edges exclusive.
func (b *Block) Contains(p geom.Point) bool {
	return b.Bounds().Contains(p)
}

// Render draws the block body and a border whose color reflects focus.
func (b *Block) Render(t render.Target, st Style) {
	border := st.Border
	if b.Focused {
		border = st.BorderFocused
	}
	render.RoundedRectWithBorder(t, b.Bounds(), st.Radius, st.BorderWidth, st.Fill, border)
}
