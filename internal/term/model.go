// Package term runs the editor in a terminal using bubbletea.
//
// The canvas is a grid of cells, each covering cell_width×cell_height world
// units. Mouse events are reported per cell and mapped to the cell's
// top-left world point.
package term

import (
	"context"
	stderrors "errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/blockone/pkg/config"
	"github.com/matzehuels/blockone/pkg/editor"
	"github.com/matzehuels/blockone/pkg/errors"
	"github.com/matzehuels/blockone/pkg/observability"
	"github.com/matzehuels/blockone/pkg/scene"
)

// TickRate is the tick frequency of the terminal adapter.
const TickRate = time.Second / 60

var statusStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#D0D0D0")).
	Background(lipgloss.Color("#303030"))

type tickMsg time.Time

type reloadMsg config.Reload

var namedKeys = map[tea.KeyType]scene.Key{
	tea.KeyDelete:    scene.KeyDelete,
	tea.KeyBackspace: scene.KeyBackspace,
	tea.KeyEsc:       scene.KeyEscape,
	tea.KeyEnter:     scene.KeyEnter,
	tea.KeyTab:       scene.KeyTab,
}

var mouseButtons = map[tea.MouseButton]scene.Button{
	tea.MouseButtonLeft:   scene.ButtonPrimary,
	tea.MouseButtonRight:  scene.ButtonSecondary,
	tea.MouseButtonMiddle: scene.ButtonMiddle,
}

// Model is the bubbletea model wrapping an editor.
type Model struct {
	ctx      context.Context
	editor   *editor.Editor
	grid     *Grid
	reloads  <-chan config.Reload
	lastTick time.Time
}

// Options configures a Model.
type Options struct {
	Config  *config.Config
	Reloads <-chan config.Reload
}

// NewModel creates a model for e. The grid is sized on the first
// tea.WindowSizeMsg.
func NewModel(ctx context.Context, e *editor.Editor, opts Options) *Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	return &Model{
		ctx:     ctx,
		editor:  e,
		grid:    NewGrid(0, 0, cfg.Terminal.CellWidth, cfg.Terminal.CellHeight),
		reloads: opts.Reloads,
	}
}

// Editor returns the wrapped editor.
func (m *Model) Editor() *editor.Editor { return m.editor }

// Grid returns the canvas grid.
func (m *Model) Grid() *Grid { return m.grid }

func (m *Model) Init() tea.Cmd {
	return tea.Batch(tick(), m.waitReload())
}

func tick() tea.Cmd {
	return tea.Tick(TickRate, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m *Model) waitReload() tea.Cmd {
	if m.reloads == nil {
		return nil
	}
	return func() tea.Msg {
		r, ok := <-m.reloads
		if !ok {
			return nil
		}
		return reloadMsg(r)
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		// Last line is the status bar.
		m.grid.Resize(msg.Width, max(msg.Height-1, 0))

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			return m, tea.Quit
		case tea.KeyRunes:
			m.editor.OnTextInput(string(msg.Runes))
		case tea.KeySpace:
			m.editor.OnTextInput(" ")
		default:
			if k, ok := namedKeys[msg.Type]; ok {
				m.editor.OnKeyDown(k)
			}
		}

	case tea.MouseMsg:
		m.handleMouse(msg)

	case tickMsg:
		now := time.Time(msg)
		if !m.lastTick.IsZero() {
			m.editor.OnTick(now.Sub(m.lastTick))
		}
		m.lastTick = now
		return m, tick()

	case reloadMsg:
		m.applyReload(config.Reload(msg))
		return m, m.waitReload()
	}
	return m, nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	m.editor.OnMouseMove(m.grid.PointOf(msg.X, msg.Y))

	switch msg.Action {
	case tea.MouseActionPress:
		b, ok := mouseButtons[msg.Button]
		if !ok {
			return
		}
		m.editor.OnMouseDown(b, scene.Modifiers{Shift: msg.Shift, Ctrl: msg.Ctrl, Alt: msg.Alt})
	case tea.MouseActionRelease:
		// Some terminals do not report which button was released.
		b, ok := mouseButtons[msg.Button]
		if !ok {
			b = scene.ButtonPrimary
		}
		m.editor.OnMouseUp(b)
	}
}

func (m *Model) applyReload(r config.Reload) {
	err := r.Err
	if err == nil {
		var opts []scene.Option
		opts, err = r.Config.Options()
		if err == nil {
			m.editor.Configure(opts...)
			m.grid.CellW, m.grid.CellH = r.Config.Terminal.CellWidth, r.Config.Terminal.CellHeight
		}
	}
	observability.Adapter().OnConfigReload(m.ctx, r.Path, err)
}

func (m *Model) View() string {
	m.grid.Clear()
	m.editor.OnRedraw(m.grid)
	status := statusStyle.Width(m.grid.Cols).Render(m.editor.Status())
	if m.grid.Rows == 0 {
		return status
	}
	return m.grid.View() + "\n" + status
}

// Run starts the terminal UI and blocks until the user quits or ctx is
// cancelled.
func Run(ctx context.Context, e *editor.Editor, opts Options) error {
	progOpts := []tea.ProgramOption{tea.WithContext(ctx), tea.WithMouseCellMotion()}
	if opts.Config == nil || opts.Config.Terminal.AltScreen {
		progOpts = append(progOpts, tea.WithAltScreen())
	}

	_, err := tea.NewProgram(NewModel(ctx, e, opts), progOpts...).Run()
	if err != nil {
		if stderrors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return ctx.Err()
		}
		return errors.Wrap(errors.ErrCodeInternal, err, "run terminal ui")
	}
	return nil
}
