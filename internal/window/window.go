// Package window runs the editor in a desktop window using ebiten.
package window

import (
	"context"
	stderrors "errors"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/matzehuels/blockone/pkg/config"
	"github.com/matzehuels/blockone/pkg/editor"
	"github.com/matzehuels/blockone/pkg/errors"
	"github.com/matzehuels/blockone/pkg/geom"
	"github.com/matzehuels/blockone/pkg/observability"
	"github.com/matzehuels/blockone/pkg/scene"
)

const statusHeight = 18

var statusBackground = color.RGBA{R: 40, G: 40, B: 40, A: 255}

var namedKeys = []struct {
	ebiten ebiten.Key
	key    scene.Key
}{
	{ebiten.KeyDelete, scene.KeyDelete},
	{ebiten.KeyBackspace, scene.KeyBackspace},
	{ebiten.KeyEscape, scene.KeyEscape},
	{ebiten.KeyEnter, scene.KeyEnter},
	{ebiten.KeyTab, scene.KeyTab},
}

var mouseButtons = []struct {
	ebiten ebiten.MouseButton
	button scene.Button
}{
	{ebiten.MouseButtonLeft, scene.ButtonPrimary},
	{ebiten.MouseButtonRight, scene.ButtonSecondary},
	{ebiten.MouseButtonMiddle, scene.ButtonMiddle},
}

// Options configures Run.
type Options struct {
	Config  *config.Config
	Reloads <-chan config.Reload
	// Status draws the editor status line at the bottom of the window.
	Status bool
}

// Run opens a window and blocks until it is closed or ctx is cancelled.
func Run(ctx context.Context, e *editor.Editor, opts Options) error {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}

	g := &game{
		ctx:     ctx,
		editor:  e,
		reloads: opts.Reloads,
		status:  opts.Status,
		tick:    time.Second / time.Duration(cfg.Window.TPS),
		bg:      cfg.Theme.BackgroundColor(),
		target:  newTarget(),
	}

	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.Window.TPS)

	err := ebiten.RunGame(g)
	if stderrors.Is(err, ebiten.Termination) {
		return ctx.Err()
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "run window")
	}
	return nil
}

// game implements ebiten.Game.
type game struct {
	ctx     context.Context
	editor  *editor.Editor
	reloads <-chan config.Reload
	status  bool
	tick    time.Duration
	bg      color.Color
	target  *target

	chars []rune
}

func (g *game) Update() error {
	if g.ctx.Err() != nil {
		return ebiten.Termination
	}
	g.drainReloads()
	g.editor.Apply(g.poll())
	return nil
}

func (g *game) poll() editor.Frame {
	x, y := ebiten.CursorPosition()
	f := editor.Frame{
		Mouse: geom.Pt(float64(x), float64(y)),
		Modifiers: scene.Modifiers{
			Shift: ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight),
			Ctrl:  ebiten.IsKeyPressed(ebiten.KeyControlLeft) || ebiten.IsKeyPressed(ebiten.KeyControlRight),
			Alt:   ebiten.IsKeyPressed(ebiten.KeyAltLeft) || ebiten.IsKeyPressed(ebiten.KeyAltRight),
		},
		Elapsed: g.tick,
	}
	for _, m := range mouseButtons {
		if inpututil.IsMouseButtonJustPressed(m.ebiten) {
			f.Pressed = append(f.Pressed, m.button)
		}
		if inpututil.IsMouseButtonJustReleased(m.ebiten) {
			f.Released = append(f.Released, m.button)
		}
	}

	g.chars = ebiten.AppendInputChars(g.chars[:0])
	f.Text = string(g.chars)

	for _, k := range namedKeys {
		if inpututil.IsKeyJustPressed(k.ebiten) {
			f.Keys = append(f.Keys, k.key)
		}
	}
	return f
}

// drainReloads applies every pending config reload. Invalid reloads keep the
// current settings.
func (g *game) drainReloads() {
	for {
		select {
		case r := <-g.reloads:
			err := r.Err
			if err == nil {
				var opts []scene.Option
				opts, err = r.Config.Options()
				if err == nil {
					g.editor.Configure(opts...)
					g.bg = r.Config.Theme.BackgroundColor()
				}
			}
			observability.Adapter().OnConfigReload(g.ctx, r.Path, err)
		default:
			return
		}
	}
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(g.bg)
	g.target.dst = screen
	g.editor.OnRedraw(g.target)

	if g.status {
		w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
		g.target.FillRect(geom.R(0, float64(h-statusHeight), float64(w), statusHeight), statusBackground)
		ebitenutil.DebugPrintAt(screen, g.editor.Status(), 4, h-statusHeight)
	}
}

// Layout keeps one world unit per device-independent pixel.
func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}
