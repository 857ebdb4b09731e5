package widget

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/meaty/meatymidi/internal/geom"
)

func sampleTree(t *testing.T) *Widget {
	t.Helper()
	root := New(KindGroup, "root")
	panel := New(KindPanel, "panel")
	panel.SetPosition(geom.Fixed(10), geom.Fixed(10))
	panel.SetSize(geom.PercentOffset(100, -20), geom.PercentOffset(100, -20))
	require.NoError(t, root.Add(panel))

	slider := New(KindSlider, "slider")
	slider.SetPosition(geom.Fixed(15), geom.Percent(10))
	slider.SetSize(geom.Percent(8), geom.Percent(80))
	slider.SetEnabled(false)
	require.NoError(t, panel.Add(slider))

	knobs := New(KindPanel, "knobs")
	knobs.SetPosition(geom.PercentOffset(100, -20), geom.Bind(geom.EdgeTop, "slider", 0))
	knobs.SetSize(geom.Percent(50), geom.Percent(25))
	knobs.Origin = geom.Point{X: 1}
	require.NoError(t, panel.Add(knobs))

	row := New(KindHorizontalLayout, "row")
	row.SetPosition(geom.Fixed(0), geom.Percent(100))
	row.SetSize(geom.Percent(100), geom.Fixed(50))
	row.Origin = geom.Point{Y: 1}
	require.NoError(t, panel.Add(row))

	for _, label := range []string{"A", "B"} {
		b := New(KindButton, label)
		b.Text = label
		require.NoError(t, row.Add(b))
		gap := New(KindSpace, "")
		gap.Ratio = 0.5
		require.NoError(t, row.Add(gap))
	}
	return root
}

func TestAddParentsExactlyOnce(t *testing.T) {
	a := New(KindGroup, "a")
	b := New(KindGroup, "b")
	child := New(KindButton, "child")

	require.NoError(t, a.Add(child))
	require.True(t, child.Attached())

	err := b.Add(child)
	require.ErrorIs(t, err, ErrAlreadyParented)
	require.Empty(t, b.Children())

	require.ErrorIs(t, a.Add(a), ErrAlreadyParented)

	// an unattached ancestor cannot move under its own descendant
	root := New(KindGroup, "root")
	mid := New(KindPanel, "mid")
	require.NoError(t, root.Add(mid))
	require.ErrorIs(t, mid.Add(root), ErrCycle)
	leafParent := New(KindGroup, "leaf_parent")
	require.NoError(t, mid.Add(leafParent))
	require.ErrorIs(t, leafParent.Add(root), ErrCycle)
	require.Empty(t, leafParent.Children())
	require.False(t, root.Attached())
	require.Equal(t, 3, root.Count(func(*Widget) bool { return true }))
}

func TestAddRejectsLeafParentsAndDuplicates(t *testing.T) {
	button := New(KindButton, "button")
	require.ErrorIs(t, button.Add(New(KindKnob, "k")), ErrNotContainer)

	group := New(KindGroup, "g")
	require.NoError(t, group.Add(New(KindKnob, "k")))
	require.ErrorIs(t, group.Add(New(KindKnob, "k")), ErrDuplicateSibling)
	require.NoError(t, group.Add(New(KindSpace, "")))
	require.NoError(t, group.Add(New(KindSpace, "")))
}

func TestSealFreezesStructure(t *testing.T) {
	root := sampleTree(t)
	root.Seal()

	err := root.Find("panel").Add(New(KindButton, "late"))
	if !errors.Is(err, ErrSealed) {
		t.Fatalf("Add after Seal error = %v, want ErrSealed", err)
	}
	root.Walk(func(n *Widget, _ int) bool {
		if n.ID == "" {
			t.Fatalf("widget %q has no id after Seal", n.Name)
		}
		return true
	})
}

func TestSealIDsAreDeterministic(t *testing.T) {
	a, b := sampleTree(t), sampleTree(t)
	a.Seal()
	b.Seal()
	require.Equal(t, a.Fingerprint(), b.Fingerprint())
	require.Equal(t, a.Find("slider").ID, b.Find("slider").ID)
	require.NotEqual(t, a.Find("slider").ID, a.Find("knobs").ID)
}

func TestCountKind(t *testing.T) {
	root := sampleTree(t)
	require.Equal(t, 2, root.CountKind(KindButton))
	require.Equal(t, 2, root.CountKind(KindSpace))
	require.Equal(t, 1, root.CountKind(KindSlider))
	require.Equal(t, 2, root.CountKind(KindPanel))
}

func TestResolvePlacesChildren(t *testing.T) {
	root := sampleTree(t)
	geo, err := Resolve(root, geom.Size{W: 420, H: 220})
	require.NoError(t, err)

	require.Equal(t, geom.NewRect(10, 10, 400, 200), geo[root.Find("panel")])
	require.Equal(t, geom.NewRect(25, 30, 32, 160), geo[root.Find("slider")])
	// right edge at 100% - 20 with origin 1, top bound to the slider
	require.Equal(t, geom.NewRect(190, 30, 200, 50), geo[root.Find("knobs")])
	require.Equal(t, geom.NewRect(10, 160, 400, 50), geo[root.Find("row")])

	a, b := geo[root.Find("A")], geo[root.Find("B")]
	require.InDelta(t, 400.0/3, a.W, 1e-9)
	require.InDelta(t, a.W, b.W, 1e-9)
	require.InDelta(t, a.Right()+a.W/2, b.X, 1e-9)
	require.Equal(t, 50.0, a.H)
}

func TestResolveKeepsChildrenInsideParents(t *testing.T) {
	root := sampleTree(t)
	for _, size := range []geom.Size{{W: 930, H: 330}, {W: 40, H: 30}, {W: 1, H: 1}, {W: 0, H: 0}, {W: 4000, H: 90}} {
		geo, err := Resolve(root, size)
		require.NoError(t, err)
		bad, ok := geo.Contained(root)
		if !ok {
			t.Fatalf("size %+v: %q at %+v escapes its parent", size, bad.Name, geo[bad])
		}
	}
}

func TestResolveRejectsForwardBindings(t *testing.T) {
	root := New(KindGroup, "root")
	early := New(KindPanel, "early")
	early.SetPosition(geom.Bind(geom.EdgeRight, "late", 0), geom.Fixed(0))
	require.NoError(t, root.Add(early))
	require.NoError(t, root.Add(New(KindPanel, "late")))

	_, err := Resolve(root, geom.Size{W: 100, H: 100})
	require.ErrorIs(t, err, geom.ErrUnresolved)
}

func TestHoverSkipsDisabledWidgets(t *testing.T) {
	root := sampleTree(t)
	geo, err := Resolve(root, geom.Size{W: 420, H: 220})
	require.NoError(t, err)

	a := root.Find("A")
	ar := geo[a]
	require.True(t, Hover(root, geo, geom.Point{X: ar.X + 1, Y: ar.Y + 1}))
	require.True(t, a.Hovered())
	require.Same(t, a, HitTest(root, geo, geom.Point{X: ar.X + 1, Y: ar.Y + 1}))

	sr := geo[root.Find("slider")]
	require.True(t, Hover(root, geo, geom.Point{X: sr.X + 1, Y: sr.Y + 100}))
	require.False(t, a.Hovered())
	require.False(t, root.Find("slider").Hovered())

	require.False(t, ClearHover(root))
}

func TestValueFraction(t *testing.T) {
	w := New(KindSlider, "s")
	w.Min, w.Max, w.Value = 0, 10, 5
	require.Equal(t, 0.5, w.ValueFraction())
	w.Value = 20
	require.Equal(t, 1.0, w.ValueFraction())
	w.Max = w.Min
	require.Equal(t, 0.0, w.ValueFraction())
}
