package window

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"

	"github.com/meaty/meatymidi/internal/geom"
	"github.com/meaty/meatymidi/internal/layout"
	"github.com/meaty/meatymidi/internal/render"
	"github.com/meaty/meatymidi/internal/widget"
)

var defaultSize = geom.Size{W: 930, H: 330}

func newTestWindow(t *testing.T) *Window {
	t.Helper()
	d, err := layout.Default()
	require.NoError(t, err)
	root, err := layout.NewBuilder(nil).Build(d)
	require.NoError(t, err)
	w, err := New(root, Options{Title: "MEATY MIDI Programmer", Size: defaultSize})
	require.NoError(t, err)
	return w
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEscape}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// cellAt returns the terminal cell under the centre of n.
func cellAt(w *Window, n *widget.Widget) (int, int) {
	r := w.Geometry()[n]
	s := render.DefaultScale
	return int((r.X + r.W/2) / s.CellW), int((r.Y + r.H/2) / s.CellH)
}

func motion(col, row int) tea.MouseMsg {
	return tea.MouseMsg{X: col, Y: row, Action: tea.MouseActionMotion}
}

func TestInitSetsTitle(t *testing.T) {
	w := newTestWindow(t)
	require.NotNil(t, w.Init())
	require.Equal(t, Open, w.State())
}

func TestCloseEvents(t *testing.T) {
	msgs := map[string]tea.Msg{
		"close msg": CloseMsg{},
		"q":         keyMsg("q"),
		"esc":       keyMsg("esc"),
		"ctrl+c":    keyMsg("ctrl+c"),
	}
	for name, msg := range msgs {
		t.Run(name, func(t *testing.T) {
			w := newTestWindow(t)
			require.NotEmpty(t, w.View())
			require.Equal(t, 1, w.Frames())

			_, cmd := w.Update(msg)
			require.Equal(t, Closed, w.State())
			require.NotNil(t, cmd)
			require.IsType(t, tea.QuitMsg{}, cmd())

			require.Empty(t, w.View())
			require.Equal(t, 1, w.Frames(), "a closed window renders nothing")
		})
	}
}

func TestCloseCommand(t *testing.T) {
	w := newTestWindow(t)
	_, cmd := w.Update(Close())
	require.Equal(t, Closed, w.State())
	require.NotNil(t, cmd)
}

func TestOtherKeysKeepWindowOpen(t *testing.T) {
	w := newTestWindow(t)
	for _, k := range []string{"x", "Q", "enter", " "} {
		_, cmd := w.Update(keyMsg(k))
		require.Nil(t, cmd, k)
		require.Equal(t, Open, w.State(), k)
	}
	require.Equal(t, 4, w.Events())
}

func TestClosedIsTerminal(t *testing.T) {
	w := newTestWindow(t)
	w.Update(CloseMsg{})
	events := w.Events()

	for _, msg := range []tea.Msg{keyMsg("x"), CloseMsg{}, tea.WindowSizeMsg{Width: 10, Height: 10}} {
		_, cmd := w.Update(msg)
		require.Nil(t, cmd)
	}
	require.Equal(t, Closed, w.State())
	require.Equal(t, events, w.Events())
}

func TestResizeKeepsGeometry(t *testing.T) {
	w := newTestWindow(t)
	w.View()
	before := w.Geometry()

	for _, size := range [][2]int{{20, 5}, {400, 120}, {1, 1}, {0, 0}} {
		_, cmd := w.Update(tea.WindowSizeMsg{Width: size[0], Height: size[1]})
		require.Nil(t, cmd)
		require.Equal(t, Open, w.State())
		require.Equal(t, geom.Size{W: float64(size[0]), H: float64(size[1])}, w.TerminalSize())

		require.NotEmpty(t, w.View())
		require.Equal(t, defaultSize, w.Size())
		require.Equal(t, before, w.Geometry())
	}
	require.Equal(t, 5, w.Frames())
}

func TestViewDrawsFixedGrid(t *testing.T) {
	w := newTestWindow(t)
	out := w.View()
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 18, "17 canvas rows and the key hint")
	hint := ansi.Strip(lines[17])
	require.Equal(t, "q/esc/ctrl+c close", hint)
	require.Equal(t, w.Help(), lines[17])
	require.Equal(t, 93, w.Canvas().Cols())
	require.Equal(t, 17, w.Canvas().Rows())

	plain := w.Canvas().Plain()
	for _, label := range []string{"F1", "F4", "W1", "B6"} {
		require.Contains(t, plain, label)
	}

	w.View()
	w.View()
	require.Equal(t, 3, w.Frames())
}

func TestHoverButton(t *testing.T) {
	w := newTestWindow(t)
	w.View()

	btn := w.Root().Find("F2")
	require.NotNil(t, btn)
	col, row := cellAt(w, btn)

	_, cmd := w.Update(motion(col, row))
	require.Nil(t, cmd)
	require.True(t, btn.Hovered())

	w.View()
	require.Equal(t, btn.Style.BackgroundHover, w.Canvas().At(col, row).BG)

	// moving onto a disabled knob clears the hover and hovers nothing
	knob := w.Root().Find("knob_k2")
	col, row = cellAt(w, knob)
	w.Update(motion(col, row))
	require.False(t, btn.Hovered())
	require.False(t, knob.Hovered())
	require.Zero(t, w.Root().Count((*widget.Widget).Hovered))
}

func TestHoverIgnoresClicksAndDisabledWidgets(t *testing.T) {
	w := newTestWindow(t)
	w.View()

	btn := w.Root().Find("W3")
	col, row := cellAt(w, btn)
	w.Update(tea.MouseMsg{X: col, Y: row, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	require.False(t, btn.Hovered())

	slider := w.Root().Find("slider_s1")
	col, row = cellAt(w, slider)
	w.Update(motion(col, row))
	require.False(t, slider.Hovered())
	require.Equal(t, Open, w.State())
}

func TestBlurClearsHover(t *testing.T) {
	w := newTestWindow(t)
	w.View()
	btn := w.Root().Find("B7")
	col, row := cellAt(w, btn)
	w.Update(motion(col, row))
	require.True(t, btn.Hovered())

	w.Update(tea.BlurMsg{})
	require.False(t, btn.Hovered())
}

func TestNewRejectsBadInput(t *testing.T) {
	_, err := New(nil, Options{Size: defaultSize})
	require.Error(t, err)

	root := widget.New(widget.KindGroup, "root")
	_, err = New(root, Options{Size: geom.Size{W: 0, H: 10}})
	require.Error(t, err)

	bad := widget.New(widget.KindGroup, "root")
	p := widget.New(widget.KindPanel, "p")
	p.SetPosition(geom.MustParse("right(later)"), geom.Fixed(0))
	require.NoError(t, bad.Add(p))
	_, err = New(bad, Options{Size: defaultSize})
	require.ErrorIs(t, err, geom.ErrUnresolved)
}

func TestNewSealsTree(t *testing.T) {
	root := widget.New(widget.KindGroup, "root")
	require.NoError(t, root.Add(widget.New(widget.KindPanel, "p")))
	w, err := New(root, Options{Size: defaultSize})
	require.NoError(t, err)
	require.True(t, w.Root().Sealed())
	require.Nil(t, w.Init(), "no title, no command")
}

func TestKeyRegistry(t *testing.T) {
	r := NewKeyRegistry()
	require.NotNil(t, r.Lookup("Escape"))
	require.NotNil(t, r.Lookup("control+c"))
	require.Nil(t, r.Lookup("Q"))
	require.Nil(t, r.Lookup(""))

	r.Register(Binding{Action: "other", Keys: []string{"q", "x"}, Help: "other"})
	require.Equal(t, actionClose, r.Lookup("q").Action, "first registration wins")
	require.Equal(t, Action("other"), r.Lookup("x").Action)

	help := r.HelpBindings()
	require.Len(t, help, 2)
	require.Equal(t, []string{"q", "esc", "ctrl+c"}, help[0].Keys())
	require.Equal(t, "q/esc/ctrl+c", help[0].Help().Key)
	require.Equal(t, "close", help[0].Help().Desc)

	line := ansi.Strip(renderHelp(help))
	require.Equal(t, "q/esc/ctrl+c close  q/x other", line)
}
