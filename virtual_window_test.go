package vlist

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/gdamore/tcell/v3"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubModel is a DataModel over "row N" strings with injectable failures.
type stubModel struct {
	count    int
	selected map[string]bool

	countErr error
	failAt   int
	rowErr   error
	rowCalls int
}

func newStubModel(count int) *stubModel {
	return &stubModel{count: count, selected: make(map[string]bool), failAt: -1}
}

func (m *stubModel) RowCount() (int, error) {
	if m.countErr != nil {
		return 0, m.countErr
	}
	return m.count, nil
}

func (m *stubModel) RowAt(index int) (string, error) {
	m.rowCalls++
	if index == m.failAt {
		return "", m.rowErr
	}
	return fmt.Sprintf("row %d", index), nil
}

func (m *stubModel) IsRowSelected(value string) bool {
	return m.selected[value]
}

// countingRenderer returns a TextRow renderer and a pointer to its call count.
func countingRenderer() (RowRenderer[string], *int) {
	calls := 0
	return func(value string) (Primitive, error) {
		calls++
		return NewTextRow(value), nil
	}, &calls
}

// newTestWindow returns a ready window of the given viewport height without
// borders, so the viewport equals the rectangle.
func newTestWindow(t *testing.T, model *stubModel, rowHeight, viewport int) (*VirtualWindow[string], *int) {
	t.Helper()
	render, calls := countingRenderer()
	w := NewVirtualWindow[string]().SetRowRenderer(render)
	w.SetRect(0, 0, 40, viewport)
	w.SetModel(model)
	require.NoError(t, w.SetRowHeight(rowHeight))
	return w, calls
}

func indicesBetween(first, last int) []int {
	var indices []int
	for i := first; i <= last; i++ {
		indices = append(indices, i)
	}
	return indices
}

// assertConsistent checks that the arena and the node container describe the
// same rows.
func assertConsistent(t *testing.T, w *VirtualWindow[string]) {
	t.Helper()
	nodes := w.Nodes()
	require.Len(t, nodes, len(w.MaterializedIndices()))
	for _, index := range w.MaterializedIndices() {
		row := w.RowAt(index)
		require.NotNil(t, row)
		assert.Contains(t, nodes, row.VisualNode())
	}
}

func TestVirtualWindow_MaterializesVisibleRows(t *testing.T) {
	tests := []struct {
		name   string
		offset int
		want   []int
	}{
		{name: "top", offset: 0, want: indicesBetween(0, 10)},
		{name: "partial row", offset: 15, want: indicesBetween(0, 10)},
		{name: "one row down", offset: 20, want: indicesBetween(1, 11)},
		{name: "middle", offset: 555, want: indicesBetween(27, 37)},
		{name: "bottom", offset: 1800, want: indicesBetween(90, 99)},
		{name: "past bottom", offset: 5000, want: indicesBetween(90, 99)},
		{name: "negative", offset: -10, want: indicesBetween(0, 10)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, _ := newTestWindow(t, newStubModel(100), 20, 200)
			require.NoError(t, w.ScrollTo(tt.offset))

			assert.Equal(t, tt.want, w.MaterializedIndices())
			assertConsistent(t, w)
		})
	}
}

func TestVirtualWindow_ContentHeight(t *testing.T) {
	w, _ := newTestWindow(t, newStubModel(100), 20, 200)

	assert.Equal(t, 2000, w.ContentHeight())
	assert.Equal(t, 1800, w.MaxScrollOffset())
	assert.Equal(t, 200, w.ViewportHeight())
}

func TestVirtualWindow_ScrollWithoutChangeKeepsRows(t *testing.T) {
	model := newStubModel(100)
	w, calls := newTestWindow(t, model, 20, 200)
	require.NoError(t, w.ScrollTo(100))

	before := make(map[int]*RowView[string])
	for _, index := range w.MaterializedIndices() {
		before[index] = w.RowAt(index)
	}
	rendered := *calls

	require.NoError(t, w.ScrollTo(100))
	require.NoError(t, w.ScrollBy(0))

	assert.Equal(t, rendered, *calls)
	for index, row := range before {
		assert.Same(t, row, w.RowAt(index))
	}
}

func TestVirtualWindow_IncrementalReuse(t *testing.T) {
	w, calls := newTestWindow(t, newStubModel(100), 20, 200)
	require.Equal(t, indicesBetween(0, 10), w.MaterializedIndices())
	assert.Equal(t, 11, *calls)

	kept := make(map[int]*RowView[string])
	for i := 1; i <= 10; i++ {
		kept[i] = w.RowAt(i)
	}
	first := w.RowAt(0)

	require.NoError(t, w.ScrollTo(20))

	assert.Equal(t, indicesBetween(1, 11), w.MaterializedIndices())
	assert.Equal(t, 12, *calls, "only row 11 is new")
	assert.Nil(t, w.RowAt(0))
	assert.Nil(t, first.VisualNode(), "row 0 is destroyed")
	for index, row := range kept {
		assert.Same(t, row, w.RowAt(index))
	}
	assertConsistent(t, w)
}

func TestVirtualWindow_ShortList(t *testing.T) {
	w, calls := newTestWindow(t, newStubModel(5), 20, 200)

	assert.Equal(t, indicesBetween(0, 4), w.MaterializedIndices())
	assert.Equal(t, 5, *calls)
	assert.Equal(t, 100, w.ContentHeight())
	assert.Zero(t, w.MaxScrollOffset())

	require.NoError(t, w.ScrollTo(50))
	assert.Zero(t, w.ScrollOffset())
}

func TestVirtualWindow_EmptyModel(t *testing.T) {
	w, calls := newTestWindow(t, newStubModel(0), 20, 200)

	assert.Empty(t, w.MaterializedIndices())
	assert.Empty(t, w.Nodes())
	assert.Zero(t, *calls)
	assert.Zero(t, w.ContentHeight())
}

func TestVirtualWindow_RowPlacement(t *testing.T) {
	w, _ := newTestWindow(t, newStubModel(100), 20, 200)
	require.NoError(t, w.ScrollTo(30))

	for _, index := range w.MaterializedIndices() {
		assert.Equal(t, index*20, w.rows[index].top)
	}
}

func TestVirtualWindow_SelectionFromModel(t *testing.T) {
	model := newStubModel(100)
	model.selected["row 3"] = true
	w, _ := newTestWindow(t, model, 20, 200)

	assert.True(t, w.RowAt(3).IsSelected())
	assert.False(t, w.RowAt(4).IsSelected())
	assert.True(t, w.RowAt(3).VisualNode().(*TextRow).IsSelected())
}

func TestVirtualWindow_ItemSelected(t *testing.T) {
	model := newStubModel(100)
	model.selected["row 3"] = true
	w, _ := newTestWindow(t, model, 20, 200)

	var events []ItemSelectedEvent[string]
	w.SetItemSelectedFunc(func(event ItemSelectedEvent[string]) {
		events = append(events, event)
		model.selected[event.Value] = event.Selected
	})

	w.RowAt(3).Toggle()
	w.RowAt(4).Toggle()

	assert.Equal(t, []ItemSelectedEvent[string]{
		{Value: "row 3", Selected: false},
		{Value: "row 4", Selected: true},
	}, events)
	for _, index := range w.MaterializedIndices() {
		if index == 4 {
			continue
		}
		assert.False(t, w.RowAt(index).IsSelected(), "row %d", index)
		assert.False(t, w.RowAt(index).VisualNode().(*TextRow).IsSelected(), "row %d", index)
	}

	// Rows rebuilt later pick up the model's state.
	require.NoError(t, w.Refresh())
	assert.False(t, w.RowAt(3).IsSelected())
	assert.True(t, w.RowAt(4).IsSelected())
}

func TestVirtualWindow_DestroyedRowDoesNotEmit(t *testing.T) {
	w, _ := newTestWindow(t, newStubModel(100), 20, 200)

	emitted := 0
	w.SetItemSelectedFunc(func(ItemSelectedEvent[string]) { emitted++ })

	row := w.RowAt(0)
	require.NoError(t, w.ScrollTo(200))
	require.Nil(t, w.RowAt(0))

	row.Toggle()
	assert.Zero(t, emitted)
}

// taggedNode is a value-type node whose dynamic type is not comparable.
type taggedNode struct {
	*Box
	tags []string
}

func TestVirtualWindow_UncomparableNodes(t *testing.T) {
	w := NewVirtualWindow[string]().
		SetRowRenderer(func(value string) (Primitive, error) {
			return taggedNode{Box: NewBox(), tags: []string{value}}, nil
		}).
		SetModel(newStubModel(100))
	w.SetRect(0, 0, 40, 10)
	require.NoError(t, w.SetRowHeight(1))

	require.NoError(t, w.ScrollTo(5))
	assert.Equal(t, indicesBetween(5, 15), w.MaterializedIndices())
	assertConsistent(t, w)
	assert.Equal(t, []string{"row 5"}, w.RowAt(5).VisualNode().(taggedNode).tags)

	require.NoError(t, w.Refresh())
	assertConsistent(t, w)
	w.Destroy()
	assert.Empty(t, w.Nodes())
}

func TestVirtualWindow_Unready(t *testing.T) {
	render, calls := countingRenderer()
	w := NewVirtualWindow[string]().SetRowRenderer(render)
	w.SetRect(0, 0, 40, 200)

	assert.False(t, w.Ready())
	require.NoError(t, w.Refresh())
	require.NoError(t, w.ScrollTo(50))
	require.NoError(t, w.SetRowHeight(10))
	w.SetRect(0, 0, 40, 100)

	assert.NoError(t, w.Err())
	assert.Zero(t, w.ScrollOffset())
	assert.Zero(t, w.ContentHeight())
	assert.Empty(t, w.MaterializedIndices())
	assert.Zero(t, *calls)

	// A nil model leaves the window unready.
	w.SetModel(nil)
	assert.False(t, w.Ready())
}

func TestVirtualWindow_SetModelDefersRebuild(t *testing.T) {
	w, _ := newTestWindow(t, newStubModel(100), 20, 200)
	old := w.RowAt(0)

	next := newStubModel(3)
	w.SetModel(next)

	assert.True(t, w.Ready())
	assert.Empty(t, w.MaterializedIndices())
	assert.Empty(t, w.Nodes())
	assert.Nil(t, old.VisualNode())
	assert.Zero(t, next.rowCalls)

	require.NoError(t, w.Refresh())
	assert.Equal(t, indicesBetween(0, 2), w.MaterializedIndices())
	assert.Equal(t, 60, w.ContentHeight())
}

func TestVirtualWindow_SetRowHeight(t *testing.T) {
	w, _ := newTestWindow(t, newStubModel(100), 20, 200)

	require.NoError(t, w.SetRowHeight(10))
	assert.Equal(t, 10, w.RowHeight())
	assert.Equal(t, 1000, w.ContentHeight())
	assert.Equal(t, indicesBetween(0, 20), w.MaterializedIndices())

	for _, height := range []int{0, -3} {
		err := w.SetRowHeight(height)
		require.ErrorIs(t, err, ErrInvalidRowHeight)
	}
	assert.Equal(t, 10, w.RowHeight())
	assert.Equal(t, 1000, w.ContentHeight())
}

func TestVirtualWindow_RefreshRebuildsRows(t *testing.T) {
	model := newStubModel(100)
	w, calls := newTestWindow(t, model, 20, 200)
	old := w.RowAt(5)

	model.count = 50
	require.NoError(t, w.Refresh())

	assert.Equal(t, 22, *calls)
	assert.NotSame(t, old, w.RowAt(5))
	assert.Equal(t, 1000, w.ContentHeight())
}

func TestVirtualWindow_RefreshClampsOffset(t *testing.T) {
	model := newStubModel(100)
	w, _ := newTestWindow(t, model, 20, 200)
	require.NoError(t, w.ScrollTo(1800))

	model.count = 20
	require.NoError(t, w.Refresh())

	assert.Equal(t, 200, w.ScrollOffset())
	assert.Equal(t, indicesBetween(10, 19), w.MaterializedIndices())
}

func TestVirtualWindow_Failures(t *testing.T) {
	errCount := errors.New("count failed")
	errRow := errors.New("row failed")
	errRender := errors.New("render failed")

	t.Run("row count", func(t *testing.T) {
		model := newStubModel(100)
		w, _ := newTestWindow(t, model, 20, 200)

		model.countErr = errCount
		require.ErrorIs(t, w.Refresh(), errCount)
		require.ErrorIs(t, w.ScrollTo(100), errCount)
	})

	t.Run("row at", func(t *testing.T) {
		model := newStubModel(100)
		model.failAt = 5
		model.rowErr = errRow
		render, _ := countingRenderer()
		w := NewVirtualWindow[string]().SetRowRenderer(render).SetModel(model)
		w.SetRect(0, 0, 40, 200)

		err := w.SetRowHeight(20)
		require.ErrorIs(t, err, errRow)
		assert.Contains(t, err.Error(), "row 5")
		assert.Equal(t, indicesBetween(0, 4), w.MaterializedIndices())
		assertConsistent(t, w)

		// Scrolling to the same offset finishes the interrupted pass.
		model.failAt = -1
		require.NoError(t, w.ScrollTo(w.ScrollOffset()))
		assert.Equal(t, indicesBetween(0, 10), w.MaterializedIndices())
		assertConsistent(t, w)
	})

	t.Run("renderer", func(t *testing.T) {
		w := NewVirtualWindow[string]().
			SetRowRenderer(func(string) (Primitive, error) { return nil, errRender }).
			SetModel(newStubModel(100))
		w.SetRect(0, 0, 40, 200)

		require.ErrorIs(t, w.SetRowHeight(20), errRender)
		assert.Empty(t, w.MaterializedIndices())
	})

	t.Run("no renderer", func(t *testing.T) {
		w := NewVirtualWindow[string]().SetModel(newStubModel(100))
		w.SetRect(0, 0, 40, 200)

		require.ErrorIs(t, w.Refresh(), ErrNoRenderer)
	})
}

func TestVirtualWindow_Resize(t *testing.T) {
	model := newStubModel(100)
	w, _ := newTestWindow(t, model, 20, 200)

	w.SetRect(0, 0, 40, 400)
	require.NoError(t, w.Err())
	assert.Equal(t, indicesBetween(0, 20), w.MaterializedIndices())

	w.SetRect(0, 0, 40, 100)
	require.NoError(t, w.Err())
	assert.Equal(t, indicesBetween(0, 5), w.MaterializedIndices())
	assertConsistent(t, w)

	// Width changes do not reconcile.
	rowCalls := model.rowCalls
	w.SetRect(0, 0, 80, 100)
	assert.Equal(t, rowCalls, model.rowCalls)

	model.countErr = errors.New("gone")
	w.SetRect(0, 0, 80, 120)
	assert.Error(t, w.Err())
}

func TestVirtualWindow_ResizeClampsOffset(t *testing.T) {
	w, _ := newTestWindow(t, newStubModel(20), 20, 200)
	require.NoError(t, w.ScrollTo(200))

	w.SetRect(0, 0, 40, 300)
	require.NoError(t, w.Err())

	assert.Equal(t, 100, w.ScrollOffset())
	assert.Equal(t, indicesBetween(5, 19), w.MaterializedIndices())
}

func TestVirtualWindow_BordersShrinkViewport(t *testing.T) {
	render, _ := countingRenderer()
	w := NewVirtualWindow[string]().SetRowRenderer(render).SetModel(newStubModel(100))
	w.SetBorders(BordersAll)
	w.SetRect(0, 0, 40, 12)
	require.NoError(t, w.SetRowHeight(1))

	assert.Equal(t, 10, w.ViewportHeight())
	assert.Equal(t, indicesBetween(0, 10), w.MaterializedIndices())
}

func TestVirtualWindow_Draw(t *testing.T) {
	w, _ := newTestWindow(t, newStubModel(100), 2, 6)
	w.SetScrollBarVisible(false)
	w.SetRect(0, 0, 20, 6)
	require.NoError(t, w.ScrollTo(3))
	require.Equal(t, indicesBetween(1, 4), w.MaterializedIndices())

	canvas := NewCanvas(20, 6)
	w.Draw(canvas)

	assert.Equal(t, []string{
		"",
		"[ ] row 2",
		"",
		"[ ] row 3",
		"",
		"[ ] row 4",
	}, canvas.Lines())

	x, y, width, height := w.RowAt(2).VisualNode().GetRect()
	assert.Equal(t, []int{0, 1, 20, 2}, []int{x, y, width, height})
	_, y, _, _ = w.RowAt(1).VisualNode().GetRect()
	assert.Equal(t, -1, y)
}

func TestVirtualWindow_DrawDoesNotReconcile(t *testing.T) {
	model := newStubModel(100)
	w, calls := newTestWindow(t, model, 1, 10)
	w.SetScrollBarVisible(false)
	rendered, rowCalls := *calls, model.rowCalls

	canvas := NewCanvas(40, 10)
	w.Draw(canvas)
	w.Draw(canvas)

	assert.Equal(t, rendered, *calls)
	assert.Equal(t, rowCalls, model.rowCalls)
	assert.Equal(t, "[ ] row 0", canvas.Line(0))
}

func TestVirtualWindow_DrawScrollBar(t *testing.T) {
	w, _ := newTestWindow(t, newStubModel(100), 1, 10)

	canvas := NewCanvas(40, 10)
	w.Draw(canvas)

	x, _, width, _ := w.RowAt(0).VisualNode().GetRect()
	assert.Equal(t, 0, x)
	assert.Equal(t, 39, width)

	// A list that fits needs no scroll bar.
	short, _ := newTestWindow(t, newStubModel(3), 1, 10)
	short.Draw(canvas)
	_, _, width, _ = short.RowAt(0).VisualNode().GetRect()
	assert.Equal(t, 40, width)
}

func TestVirtualWindow_Keys(t *testing.T) {
	w, _ := newTestWindow(t, newStubModel(100), 1, 10)
	w.SetScrollStep(2)

	cmd := w.InputHandler(tcell.NewEventKey(tcell.KeyDown, "", tcell.ModNone))
	assert.Equal(t, RedrawCommand{}, cmd)
	assert.Equal(t, 2, w.ScrollOffset())

	w.InputHandler(tcell.NewEventKey(tcell.KeyPgDn, "", tcell.ModNone))
	assert.Equal(t, 12, w.ScrollOffset())

	w.InputHandler(tcell.NewEventKey(tcell.KeyEnd, "", tcell.ModNone))
	assert.Equal(t, 90, w.ScrollOffset())
	assert.Equal(t, indicesBetween(90, 99), w.MaterializedIndices())

	w.InputHandler(tcell.NewEventKey(tcell.KeyHome, "", tcell.ModNone))
	assert.Zero(t, w.ScrollOffset())

	assert.Nil(t, w.InputHandler(tcell.NewEventKey(tcell.KeyRune, "x", tcell.ModNone)))
}

func TestVirtualWindow_KeysReportErrors(t *testing.T) {
	model := newStubModel(100)
	w, _ := newTestWindow(t, model, 1, 10)

	errCount := errors.New("count failed")
	model.countErr = errCount

	cmd := w.InputHandler(tcell.NewEventKey(tcell.KeyDown, "", tcell.ModNone))
	require.IsType(t, ErrorCommand{}, cmd)
	assert.ErrorIs(t, cmd.(ErrorCommand).Err, errCount)
}

func TestVirtualWindow_Logging(t *testing.T) {
	var buf bytes.Buffer
	render, _ := countingRenderer()
	w := NewVirtualWindow[string]().
		SetRowRenderer(render).
		SetLogger(zerolog.New(&buf).Level(zerolog.DebugLevel)).
		SetModel(newStubModel(100))
	w.SetRect(0, 0, 40, 10)
	require.NoError(t, w.SetRowHeight(1))

	assert.Contains(t, buf.String(), `"message":"reconcile"`)
	assert.Contains(t, buf.String(), `"range":"[0, 10]"`)
	assert.Contains(t, buf.String(), `"message":"refresh"`)
}

func TestVirtualWindow_Destroy(t *testing.T) {
	w, _ := newTestWindow(t, newStubModel(100), 20, 200)
	row := w.RowAt(0)

	w.Destroy()

	assert.Empty(t, w.MaterializedIndices())
	assert.Empty(t, w.Nodes())
	assert.Nil(t, row.VisualNode())
}

func mouseEvent(x, y int) *tcell.EventMouse {
	return tcell.NewEventMouse(x, y, tcell.ButtonNone, tcell.ModNone)
}

func TestVirtualWindow_MouseHandler(t *testing.T) {
	tests := []struct {
		name       string
		borders    bool
		action     MouseAction
		x, y       int
		wantFocus  bool
		wantCmd    Command
		wantOffset int
		wantRows   []int
		wantEvents []ItemSelectedEvent[string]
	}{
		{
			name:       "click partially scrolled row",
			action:     MouseLeftClick,
			x:          5,
			y:          0,
			wantCmd:    RedrawCommand{},
			wantOffset: 3,
			wantRows:   indicesBetween(1, 4),
			wantEvents: []ItemSelectedEvent[string]{{Value: "row 1", Selected: true}},
		},
		{
			name:       "click full row",
			action:     MouseLeftClick,
			x:          5,
			y:          2,
			wantCmd:    RedrawCommand{},
			wantOffset: 3,
			wantRows:   indicesBetween(1, 4),
			wantEvents: []ItemSelectedEvent[string]{{Value: "row 2", Selected: true}},
		},
		{
			name:       "wheel down",
			action:     MouseScrollDown,
			x:          5,
			y:          2,
			wantCmd:    RedrawCommand{},
			wantOffset: 6,
			wantRows:   indicesBetween(3, 6),
		},
		{
			name:       "wheel up",
			action:     MouseScrollUp,
			x:          5,
			y:          2,
			wantCmd:    RedrawCommand{},
			wantOffset: 0,
			wantRows:   indicesBetween(0, 3),
		},
		{
			name:       "scroll bar page down",
			action:     MouseLeftDown,
			x:          39,
			y:          5,
			wantFocus:  true,
			wantCmd:    RedrawCommand{},
			wantOffset: 9,
			wantRows:   indicesBetween(4, 7),
		},
		{
			name:       "scroll bar click",
			action:     MouseLeftClick,
			x:          39,
			y:          2,
			wantOffset: 3,
			wantRows:   indicesBetween(1, 4),
		},
		{
			name:       "outside",
			action:     MouseLeftClick,
			x:          5,
			y:          6,
			wantOffset: 3,
			wantRows:   indicesBetween(1, 4),
		},
		{
			name:       "border down",
			borders:    true,
			action:     MouseLeftDown,
			x:          0,
			y:          3,
			wantFocus:  true,
			wantOffset: 3,
			wantRows:   indicesBetween(1, 4),
		},
		{
			name:       "border click",
			borders:    true,
			action:     MouseLeftClick,
			x:          10,
			y:          0,
			wantOffset: 3,
			wantRows:   indicesBetween(1, 4),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			render, _ := countingRenderer()
			w := NewVirtualWindow[string]().SetRowRenderer(render).SetModel(newStubModel(100))
			height := 6
			if tt.borders {
				w.SetBorders(BordersAll)
				height += 2
			}
			w.SetRect(0, 0, 40, height)
			require.NoError(t, w.SetRowHeight(2))
			require.NoError(t, w.ScrollTo(3))
			w.Draw(NewCanvas(40, height))

			var events []ItemSelectedEvent[string]
			w.SetItemSelectedFunc(func(event ItemSelectedEvent[string]) {
				events = append(events, event)
			})

			_, cmd := w.MouseHandler(tt.action, mouseEvent(tt.x, tt.y))

			var want Command
			if tt.wantFocus {
				want = SetFocusCommand{Target: w}
			}
			want = AppendCommand(want, tt.wantCmd)
			assert.Equal(t, want, cmd)
			assert.Equal(t, tt.wantOffset, w.ScrollOffset())
			assert.Equal(t, tt.wantRows, w.MaterializedIndices())
			assert.Equal(t, tt.wantEvents, events)
			assertConsistent(t, w)
		})
	}
}

func TestVirtualWindow_MouseHandlerReportsErrors(t *testing.T) {
	model := newStubModel(100)
	w, _ := newTestWindow(t, model, 2, 6)

	errCount := errors.New("count failed")
	model.countErr = errCount

	_, cmd := w.MouseHandler(MouseScrollDown, mouseEvent(5, 2))
	require.IsType(t, ErrorCommand{}, cmd)
	assert.ErrorIs(t, cmd.(ErrorCommand).Err, errCount)
}
