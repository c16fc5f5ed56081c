package toolkit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAncestorsMostDerivedFirst(t *testing.T) {
	chain := WindowType.Ancestors()
	names := make([]string, len(chain))
	for i, c := range chain {
		names[i] = c.Name()
	}
	assert.Equal(t, []string{"Window", "Bin", "Container", "Widget", "Object", "root"}, names)
	assert.Same(t, Root, chain[len(chain)-1])
}

func TestLookupAndTypes(t *testing.T) {
	got, ok := Lookup("VBox")
	require.True(t, ok)
	assert.Same(t, VBoxType, got)

	_, ok = Lookup("NoSuchWidget")
	assert.False(t, ok)

	assert.Len(t, Types(), 16)

	_, ok = Lookup("TreeSortable")
	assert.False(t, ok, "capabilities are not instantiable types")
}

func TestNewReturnsMostDerivedType(t *testing.T) {
	for _, typ := range Types() {
		obj := typ.New()
		require.NotNil(t, obj, typ.Name())
		assert.Same(t, typ, obj.Type(), typ.Name())
		assert.NotEmpty(t, obj.ID())
	}
	assert.Nil(t, Root.New())
}

func TestIsA(t *testing.T) {
	assert.True(t, HBoxType.IsA(BoxType))
	assert.True(t, HBoxType.IsA(WidgetType))
	assert.False(t, StatusIconType.IsA(WidgetType))
}

func TestConnectAndEmit(t *testing.T) {
	b := NewButtonWithLabel("OK")

	var got []Object
	id, err := b.Connect("clicked", func(obj Object, args ...any) { got = append(got, obj) })
	require.NoError(t, err)

	b.Clicked()
	require.Len(t, got, 1)
	assert.Same(t, b, got[0])

	assert.True(t, b.Disconnect(id))
	assert.False(t, b.Disconnect(id))
	b.Clicked()
	assert.Len(t, got, 1)
}

func TestConnectInheritedSignal(t *testing.T) {
	w := NewWindow(WindowToplevel)
	destroyed := false
	_, err := w.Connect("destroy", func(Object, ...any) { destroyed = true })
	require.NoError(t, err)

	w.Close()
	assert.True(t, destroyed)
	assert.True(t, w.Destroyed())
}

func TestConnectUnknownSignal(t *testing.T) {
	l := NewLabel("x")
	_, err := l.Connect("clicked", func(Object, ...any) {})
	assert.ErrorIs(t, err, ErrUnknownSignal)

	_, err = l.Connect("show", nil)
	assert.ErrorIs(t, err, ErrNilCallback)
}

func TestShowHideEmitOnChange(t *testing.T) {
	l := NewLabel("x")
	shows := 0
	_, err := l.Connect("show", func(Object, ...any) { shows++ })
	require.NoError(t, err)

	l.Show()
	l.Show()
	assert.Equal(t, 1, shows)
	assert.True(t, l.Visible())

	l.Hide()
	assert.False(t, l.Visible())
}

func TestBinHoldsOneChild(t *testing.T) {
	w := NewWindow(WindowToplevel)
	require.NoError(t, w.Add(NewLabel("a")))
	assert.ErrorIs(t, w.Add(NewLabel("b")), ErrBinOccupied)
}

func TestContainerParenting(t *testing.T) {
	box := NewVBox()
	l := NewLabel("a")
	require.NoError(t, box.Add(l))
	assert.Same(t, box, l.Parent())

	assert.ErrorIs(t, NewHBox().Add(l), ErrHasParent)
	assert.ErrorIs(t, box.Add(NewStatusIcon()), ErrNotWidget)

	require.NoError(t, box.Remove(l))
	assert.Nil(t, l.Parent())
	assert.ErrorIs(t, box.Remove(l), ErrNotChild)
}

func TestContainerCycle(t *testing.T) {
	outer := NewVBox()
	inner := NewHBox()
	require.NoError(t, outer.Add(inner))
	assert.ErrorIs(t, inner.Add(outer), ErrCycle)
}

func TestBoxOrdered(t *testing.T) {
	box := NewHBox()
	a, b, c, d := NewLabel("a"), NewLabel("b"), NewLabel("c"), NewLabel("d")
	require.NoError(t, box.PackStart(a, true, true, 0))
	require.NoError(t, box.PackEnd(b, false, false, 2))
	require.NoError(t, box.PackStart(c, true, true, 0))
	require.NoError(t, box.PackEnd(d, false, false, 0))

	assert.Equal(t, []Object{a, c, d, b}, box.Ordered())

	p, ok := box.Packing(b)
	require.True(t, ok)
	assert.Equal(t, Packing{Padding: 2, End: true}, p)
}

func TestDestroyCascades(t *testing.T) {
	w := NewWindow(WindowToplevel)
	box := NewVBox()
	l := NewLabel("x")
	require.NoError(t, box.Add(l))
	require.NoError(t, w.Add(box))

	w.Destroy()
	assert.True(t, l.Destroyed())
	assert.True(t, box.Destroyed())
	assert.Empty(t, w.Children())
}

func TestEntryMaxLength(t *testing.T) {
	e := NewEntry(3)
	e.SetText("abcdef")
	assert.Equal(t, "abc", e.Text())

	e.SetMaxLength(2)
	assert.Equal(t, "ab", e.Text())

	e.SetMaxLength(0)
	e.SetText("abcdef")
	assert.Equal(t, "abcdef", e.Text())
}

func TestWindowSizes(t *testing.T) {
	w := NewWindow(WindowPopup)
	assert.Equal(t, WindowPopup, w.Kind())

	w.SetDefaultSize(200, -1)
	dw, dh := w.DefaultSize()
	assert.Equal(t, 200, dw)
	assert.Equal(t, -1, dh)

	w.Resize(640, 480)
	width, height := w.Size()
	assert.Equal(t, 640, width)
	assert.Equal(t, 480, height)

	_, err := ParseWindowKind("dialog")
	assert.Error(t, err)
}

func TestTreeViewColumns(t *testing.T) {
	tv := NewTreeView()
	a, b, c := NewTextColumn("A", 0), NewTextColumn("B", 1), NewTextColumn("C", 2)
	tv.AppendColumn(a)
	tv.AppendColumn(c)
	tv.InsertColumn(b, 1)
	assert.Equal(t, []*TreeViewColumn{a, b, c}, tv.Columns())

	tv.RemoveColumn(a)
	assert.Equal(t, []*TreeViewColumn{b, c}, tv.Columns())
}

func TestTreeSelectionModes(t *testing.T) {
	sel := NewTreeView().Selection()
	changes := 0
	_, err := sel.Connect("changed", func(Object, ...any) { changes++ })
	require.NoError(t, err)

	sel.SetMode(SelectionMultiple)
	sel.Select(1)
	sel.Select(2)
	assert.Equal(t, []int{1, 2}, sel.Selected())

	sel.SetMode(SelectionSingle)
	assert.Equal(t, []int{1}, sel.Selected())
	assert.Equal(t, 2, changes)

	mode, err := ParseSelectionMode("Browse")
	require.NoError(t, err)
	assert.Equal(t, SelectionBrowse, mode)
}

func TestListStore(t *testing.T) {
	s := NewListStore(2)
	require.NoError(t, s.Append("a", "b"))
	assert.ErrorIs(t, s.Append("a"), ErrColumnCount)
	assert.Equal(t, "b", s.Value(0, 1))
	assert.Equal(t, "", s.Value(5, 0))
}

func TestListStoreSort(t *testing.T) {
	s := NewListStore(2)
	for _, row := range [][]string{{"b", "x"}, {"a", "y"}, {"b", "z"}} {
		require.NoError(t, s.Append(row...))
	}
	_, _, sorted := s.SortColumnID()
	assert.False(t, sorted)

	require.NoError(t, s.SetSortColumnID(0, SortAscending))
	assert.Equal(t, []string{"y", "x", "z"}, []string{s.Value(0, 1), s.Value(1, 1), s.Value(2, 1)})

	require.NoError(t, s.SetSortColumnID(1, SortDescending))
	assert.Equal(t, "z", s.Value(0, 1))
	col, order, sorted := s.SortColumnID()
	assert.Equal(t, []any{1, SortDescending, true}, []any{col, order, sorted})

	assert.ErrorIs(t, s.SetSortColumnID(2, SortAscending), ErrNoColumn)

	order, err := ParseSortType("Descending")
	require.NoError(t, err)
	assert.Equal(t, SortDescending, order)
	_, err = ParseSortType("up")
	assert.Error(t, err)
}

func TestCapabilities(t *testing.T) {
	c, ok := LookupCapability("TreeSortable")
	require.True(t, ok)
	assert.Same(t, SortableCapability, c)
	assert.True(t, c.IsCapability())
	assert.Nil(t, c.Parent())
	assert.Nil(t, c.New())

	assert.True(t, TreeViewType.Provides(SortableCapability))
	assert.False(t, LabelType.Provides(SortableCapability))
	assert.False(t, TreeViewType.Provides(ContainerType))
	assert.Equal(t, []*Type{SortableCapability}, TreeViewType.Capabilities())
	assert.Empty(t, WindowType.Capabilities())

	var _ Sortable = NewListStore(1)
	assert.ErrorIs(t, NewTreeView().SetSortColumnID(0, SortAscending), ErrNotSortable)

	assert.Panics(t, func() { NewCapability[Sortable]("TreeSortable") })
	assert.Panics(t, func() { NewCapability[ListStore]("NotAnInterface") })
	assert.Panics(t, func() { NewType("FromCapability", SortableCapability, nil) })
}

func TestAdjustmentClamps(t *testing.T) {
	a := NewAdjustment(95, 0, 100, 1, 10, 10)
	assert.Equal(t, 90.0, a.Value())

	moves := 0
	_, err := a.Connect("value-changed", func(Object, ...any) { moves++ })
	require.NoError(t, err)

	a.SetValue(-5)
	assert.Equal(t, 0.0, a.Value())
	a.SetValue(0)
	assert.Equal(t, 1, moves)

	a.SetValue(50)
	a.SetUpper(40)
	assert.Equal(t, 30.0, a.Value())
	assert.Equal(t, 3, moves)
}

func TestScrolledWindowAdjustments(t *testing.T) {
	h := NewAdjustment(0, 0, 10, 1, 1, 1)
	sw := NewScrolledWindow(h, nil)
	assert.Same(t, h, sw.Hadjustment())
	require.NotNil(t, sw.Vadjustment())
	assert.True(t, sw.Type().IsA(BinType))

	sw.SetHadjustment(nil)
	assert.NotSame(t, h, sw.Hadjustment())

	sw.SetPolicy(PolicyNever, PolicyAlways)
	hp, vp := sw.Policy()
	assert.Equal(t, "never", hp.String())
	assert.Equal(t, "always", vp.String())

	p, err := ParseScrollPolicy("Automatic")
	require.NoError(t, err)
	assert.Equal(t, PolicyAutomatic, p)

	require.NoError(t, sw.Add(NewLabel("x")))
	assert.ErrorIs(t, sw.Add(NewLabel("y")), ErrBinOccupied)
}
