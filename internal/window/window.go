// Package window runs the controller surface as a bubbletea program. The
// window has a fixed logical size in pixels; every frame the widget tree is
// resolved in pixel space and painted onto a terminal cell canvas.
package window

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"go.uber.org/zap"

	"github.com/meaty/meatymidi/internal/geom"
	"github.com/meaty/meatymidi/internal/render"
	"github.com/meaty/meatymidi/internal/widget"
)

// State is the window lifecycle state.
type State uint8

const (
	Open State = iota
	Closed
)

func (s State) String() string {
	if s == Closed {
		return "closed"
	}
	return "open"
}

// CloseMsg asks the window to close, like the title bar close button.
type CloseMsg struct{}

// Close is a command that closes the window.
func Close() tea.Msg { return CloseMsg{} }

// Options configures a Window.
type Options struct {
	Title      string
	Size       geom.Size
	Scale      render.Scale
	Background lipgloss.Color
	Keys       *KeyRegistry
	Logger     *zap.Logger
}

// Window owns the widget tree and the frame buffer. It implements tea.Model.
type Window struct {
	title      string
	size       geom.Size
	background lipgloss.Color
	root       *widget.Widget
	keys       *KeyRegistry
	log        *zap.Logger

	painter *render.Painter
	canvas  *render.Canvas
	geo     widget.Geometry
	help    string

	state    State
	frames   int
	events   int
	terminal geom.Size
}

// New creates an open window around root. The tree must already be complete;
// its geometry is resolved once here so a broken layout fails before the
// program starts.
func New(root *widget.Widget, opts Options) (*Window, error) {
	if root == nil {
		return nil, fmt.Errorf("window: nil root")
	}
	if opts.Size.W <= 0 || opts.Size.H <= 0 {
		return nil, fmt.Errorf("window: size %vx%v must be positive", opts.Size.W, opts.Size.H)
	}
	if !root.Sealed() {
		root.Seal()
	}
	if opts.Scale.CellW <= 0 || opts.Scale.CellH <= 0 {
		opts.Scale = render.DefaultScale
	}
	if opts.Background == "" {
		opts.Background = render.DefaultBackground()
	}
	if opts.Keys == nil {
		opts.Keys = NewKeyRegistry()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	geo, err := widget.Resolve(root, opts.Size)
	if err != nil {
		return nil, fmt.Errorf("window: resolve layout: %w", err)
	}
	cols, rows := opts.Scale.GridSize(opts.Size)

	w := &Window{
		title:      opts.Title,
		size:       opts.Size,
		background: opts.Background,
		root:       root,
		keys:       opts.Keys,
		log:        opts.Logger,
		painter:    render.NewPainter(opts.Scale),
		canvas:     render.NewCanvas(cols, rows),
		geo:        geo,
	}

	closeKeys := []string{}
	for _, b := range w.keys.HelpBindings() {
		closeKeys = append(closeKeys, b.Keys()...)
	}
	w.help = ansi.Truncate(renderHelp(w.keys.HelpBindings()), cols, "")
	w.log.Info("window open",
		zap.String("title", w.title),
		zap.Float64("width", w.size.W),
		zap.Float64("height", w.size.H),
		zap.Int("cols", cols),
		zap.Int("rows", rows),
		zap.Int("widgets", root.Count(func(*widget.Widget) bool { return true })),
		zap.Strings("keys", closeKeys),
	)
	return w, nil
}

func (w *Window) State() State           { return w.state }
func (w *Window) Frames() int            { return w.frames }
func (w *Window) Events() int            { return w.events }
func (w *Window) Root() *widget.Widget   { return w.root }
func (w *Window) Size() geom.Size        { return w.size }
func (w *Window) Title() string          { return w.title }
func (w *Window) Canvas() *render.Canvas { return w.canvas }

// TerminalSize is the last size the terminal reported. It does not affect
// the window.
func (w *Window) TerminalSize() geom.Size { return w.terminal }

// Geometry returns the geometry used for the last frame.
func (w *Window) Geometry() widget.Geometry { return w.geo }

func (w *Window) Init() tea.Cmd {
	if w.title == "" {
		return nil
	}
	return tea.SetWindowTitle(w.title)
}

// Update runs one loop iteration. The tree sees every message first; a
// close event ends the loop on the same iteration.
func (w *Window) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if w.state == Closed {
		return w, nil
	}
	w.events++
	w.dispatch(msg)

	switch msg := msg.(type) {
	case CloseMsg:
		return w.close("close event")
	case tea.KeyMsg:
		if w.keys.Is(actionClose, msg) {
			return w.close(msg.String())
		}
	case tea.WindowSizeMsg:
		w.terminal = geom.Size{W: float64(msg.Width), H: float64(msg.Height)}
		w.log.Debug("terminal resized, window size unchanged",
			zap.Int("cols", msg.Width), zap.Int("rows", msg.Height))
	}
	return w, nil
}

// dispatch hands msg to the widget tree. Only pointer motion and focus
// changes affect it.
func (w *Window) dispatch(msg tea.Msg) {
	switch msg := msg.(type) {
	case tea.MouseMsg:
		if msg.Action != tea.MouseActionMotion {
			return
		}
		p := w.painter.Scale().Center(msg.X, msg.Y)
		if widget.Hover(w.root, w.geo, p) {
			w.log.Debug("hover", zap.Int("x", msg.X), zap.Int("y", msg.Y))
		}
	case tea.BlurMsg:
		widget.ClearHover(w.root)
	}
}

func (w *Window) close(reason string) (tea.Model, tea.Cmd) {
	w.state = Closed
	w.log.Info("window closed",
		zap.String("reason", reason),
		zap.Int("frames", w.frames),
		zap.Int("events", w.events))
	return w, tea.Quit
}

// View draws one frame followed by the key hint line. A closed window draws
// nothing.
func (w *Window) View() string {
	if w.state == Closed {
		return ""
	}
	w.canvas.Clear(w.background)
	geo, err := widget.Resolve(w.root, w.size)
	if err != nil {
		w.log.Error("resolve layout", zap.Error(err))
	} else {
		w.geo = geo
		w.painter.Paint(w.canvas, w.root, w.geo)
	}
	w.frames++
	return w.canvas.String() + "\n" + w.help
}

// Help returns the key hint line drawn under the canvas.
func (w *Window) Help() string { return w.help }
