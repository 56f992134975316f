package vlist

import (
	"fmt"
	"maps"
	"slices"

	"github.com/ayn2op/vlist/keybind"
	"github.com/gdamore/tcell/v3"
	"github.com/rs/zerolog"
)

const (
	// DefaultRowHeight is the row height of a new VirtualWindow, in terminal
	// lines.
	DefaultRowHeight = 20
	// DefaultScrollStep is the number of lines scrolled per wheel notch or
	// line key.
	DefaultScrollStep = 3
)

// ItemSelectedEvent is emitted by a VirtualWindow whenever one of its
// materialized rows toggles its selection.
type ItemSelectedEvent[T any] struct {
	Value    T
	Selected bool
}

// KeyMap holds the scroll keys of a VirtualWindow.
type KeyMap struct {
	LineUp   keybind.Keybind
	LineDown keybind.Keybind
	PageUp   keybind.Keybind
	PageDown keybind.Keybind
	Top      keybind.Keybind
	Bottom   keybind.Keybind
}

// DefaultKeyMap returns arrow, page and home/end bindings with vi-style
// alternatives.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		LineUp: keybind.NewKeybind(
			keybind.WithKeys("up", "k"),
			keybind.WithHelp("↑/k", "up"),
		),
		LineDown: keybind.NewKeybind(
			keybind.WithKeys("down", "j"),
			keybind.WithHelp("↓/j", "down"),
		),
		PageUp: keybind.NewKeybind(
			keybind.WithKeys("pgup", "ctrl+b"),
			keybind.WithHelp("pgup", "page up"),
		),
		PageDown: keybind.NewKeybind(
			keybind.WithKeys("pgdn", "ctrl+f"),
			keybind.WithHelp("pgdn", "page down"),
		),
		Top: keybind.NewKeybind(
			keybind.WithKeys("home", "g"),
			keybind.WithHelp("g/home", "top"),
		),
		Bottom: keybind.NewKeybind(
			keybind.WithKeys("end", "G"),
			keybind.WithHelp("G/end", "bottom"),
		),
	}
}

func (k KeyMap) ShortHelp() []keybind.Keybind {
	return []keybind.Keybind{k.LineUp, k.LineDown, k.PageDown, k.Bottom}
}

func (k KeyMap) FullHelp() [][]keybind.Keybind {
	return [][]keybind.Keybind{
		{k.LineUp, k.LineDown},
		{k.PageUp, k.PageDown},
		{k.Top, k.Bottom},
	}
}

// materializedRow is an arena entry: a live row and its placement.
type materializedRow[T any] struct {
	view   *RowView[T]
	cancel func()
	top    int
}

// VirtualWindow displays the rows of a DataModel inside its inner rectangle,
// materializing only the rows intersecting the viewport. Rows are created
// when they scroll into view and destroyed when they leave it; rows that stay
// in view are never rebuilt.
//
// A window is unready until a model is set. While unready, refreshes and
// scrolls do nothing. All methods must be called from the event loop
// goroutine.
type VirtualWindow[T any] struct {
	*Box

	model     DataModel[T]
	renderRow RowRenderer[T]

	rowHeight     int
	scrollTop     int
	contentHeight int

	// viewportHeight is the inner height the window was last reconciled
	// against, or -1 before the first reconciliation.
	viewportHeight int

	// rows maps row indices to materialized rows. nodes holds the same rows
	// in insertion order. Nodes are found by row pointer, never by comparing
	// visual nodes, which may be of uncomparable types.
	rows  map[int]*materializedRow[T]
	nodes []*materializedRow[T]

	scrollBar     *ScrollBar
	showScrollBar bool
	scrollStep    int

	keyMap       KeyMap
	itemSelected func(ItemSelectedEvent[T])

	logger zerolog.Logger
	err    error

	// incomplete is set when a reconciliation stopped on an error, so that
	// the next scroll finishes it even if the offset did not change.
	incomplete bool
}

// NewVirtualWindow returns an unready window with the default row height.
func NewVirtualWindow[T any]() *VirtualWindow[T] {
	return &VirtualWindow[T]{
		Box:            NewBox(),
		rowHeight:      DefaultRowHeight,
		viewportHeight: -1,
		rows:           make(map[int]*materializedRow[T]),
		scrollBar:      NewScrollBar().SetScrollStep(DefaultScrollStep),
		showScrollBar:  true,
		scrollStep:     DefaultScrollStep,
		keyMap:         DefaultKeyMap(),
		logger:         zerolog.Nop(),
	}
}

// SetModel replaces the data model. All materialized rows are destroyed, but
// nothing is rebuilt until the next Refresh, so that a model and row height
// change can be applied together. A nil model is ignored.
func (w *VirtualWindow[T]) SetModel(model DataModel[T]) *VirtualWindow[T] {
	if model == nil {
		return w
	}
	w.destroyRows()
	w.model = model
	return w
}

// SetRowRenderer sets the function that builds the visual node of each row.
// It applies to rows materialized from now on.
func (w *VirtualWindow[T]) SetRowRenderer(render RowRenderer[T]) *VirtualWindow[T] {
	w.renderRow = render
	return w
}

// SetRowHeight sets the height of every row and refreshes the window.
func (w *VirtualWindow[T]) SetRowHeight(height int) error {
	if height < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidRowHeight, height)
	}
	w.rowHeight = height
	return w.Refresh()
}

// SetScrollStep sets the number of lines scrolled per wheel notch or line key.
func (w *VirtualWindow[T]) SetScrollStep(step int) *VirtualWindow[T] {
	w.scrollStep = max(step, 1)
	w.scrollBar.SetScrollStep(w.scrollStep)
	return w
}

// SetScrollBarVisible controls whether a scrollBar is drawn in the rightmost
// inner column when the content overflows.
func (w *VirtualWindow[T]) SetScrollBarVisible(visible bool) *VirtualWindow[T] {
	w.showScrollBar = visible
	return w
}

// ScrollBar returns the window's scrollBar for customization.
func (w *VirtualWindow[T]) ScrollBar() *ScrollBar {
	return w.scrollBar
}

// SetKeyMap replaces the scroll key bindings.
func (w *VirtualWindow[T]) SetKeyMap(keyMap KeyMap) *VirtualWindow[T] {
	w.keyMap = keyMap
	return w
}

// KeyMap returns the scroll key bindings.
func (w *VirtualWindow[T]) KeyMap() KeyMap {
	return w.keyMap
}

// SetItemSelectedFunc sets the handler called whenever a materialized row
// toggles. The handler is expected to update the model's selection.
func (w *VirtualWindow[T]) SetItemSelectedFunc(handler func(ItemSelectedEvent[T])) *VirtualWindow[T] {
	w.itemSelected = handler
	return w
}

// SetLogger sets the logger used for reconciliation diagnostics.
func (w *VirtualWindow[T]) SetLogger(logger zerolog.Logger) *VirtualWindow[T] {
	w.logger = logger
	return w
}

// Ready reports whether a model has been set.
func (w *VirtualWindow[T]) Ready() bool {
	return w.model != nil
}

// RowHeight returns the height of every row.
func (w *VirtualWindow[T]) RowHeight() int {
	return w.rowHeight
}

// ContentHeight returns the total height of all rows as of the last refresh.
func (w *VirtualWindow[T]) ContentHeight() int {
	return w.contentHeight
}

// ViewportHeight returns the height of the inner rectangle.
func (w *VirtualWindow[T]) ViewportHeight() int {
	_, _, _, height := w.GetInnerRect()
	return height
}

// ScrollOffset returns the distance between the top of the content and the
// top of the viewport.
func (w *VirtualWindow[T]) ScrollOffset() int {
	return w.scrollTop
}

// MaxScrollOffset returns the largest valid scroll offset.
func (w *VirtualWindow[T]) MaxScrollOffset() int {
	return max(0, w.contentHeight-w.ViewportHeight())
}

// VisibleRange returns the rows intersecting the viewport at the current
// scroll offset.
func (w *VirtualWindow[T]) VisibleRange() VisibleRange {
	return ComputeVisibleRange(w.scrollTop, w.ViewportHeight(), w.rowHeight)
}

// MaterializedIndices returns the indices of all live rows in ascending order.
func (w *VirtualWindow[T]) MaterializedIndices() []int {
	return slices.Sorted(maps.Keys(w.rows))
}

// RowAt returns the live row at index, or nil if it is not materialized.
func (w *VirtualWindow[T]) RowAt(index int) *RowView[T] {
	if row, ok := w.rows[index]; ok {
		return row.view
	}
	return nil
}

// Nodes returns the visual nodes of all live rows in insertion order.
func (w *VirtualWindow[T]) Nodes() []Primitive {
	nodes := make([]Primitive, 0, len(w.nodes))
	for _, row := range w.nodes {
		nodes = append(nodes, row.view.VisualNode())
	}
	return nodes
}

// Err returns the error of the last reconciliation triggered by a resize.
func (w *VirtualWindow[T]) Err() error {
	return w.err
}

// Refresh recomputes the content height from the model, destroys every live
// row and rebuilds the visible ones. It does nothing while the window is
// unready.
func (w *VirtualWindow[T]) Refresh() error {
	if w.model == nil {
		return nil
	}

	count, err := w.model.RowCount()
	if err != nil {
		w.incomplete = true
		return fmt.Errorf("row count: %w", err)
	}
	w.contentHeight = count * w.rowHeight
	w.destroyRows()
	w.scrollTop = clamp(w.scrollTop, 0, w.MaxScrollOffset())
	w.logger.Debug().
		Int("rows", count).
		Int("row_height", w.rowHeight).
		Int("content_height", w.contentHeight).
		Msg("refresh")
	return w.reconcile(count)
}

// ScrollTo scrolls to offset, clamped to [0, MaxScrollOffset]. Scrolling to
// the current offset does nothing unless the previous reconciliation failed,
// in which case it is retried.
func (w *VirtualWindow[T]) ScrollTo(offset int) error {
	offset = clamp(offset, 0, w.MaxScrollOffset())
	if offset == w.scrollTop && !w.incomplete {
		return nil
	}
	w.scrollTop = offset
	return w.onScrollOrResize()
}

// ScrollBy scrolls by delta lines, see [VirtualWindow.ScrollTo].
func (w *VirtualWindow[T]) ScrollBy(delta int) error {
	return w.ScrollTo(w.scrollTop + delta)
}

// SetRect sets the window's rectangle. A change of the inner height
// reconciles the rows; its error is available through Err.
func (w *VirtualWindow[T]) SetRect(x, y, width, height int) {
	w.Box.SetRect(x, y, width, height)
	if w.ViewportHeight() != w.viewportHeight {
		w.err = w.onScrollOrResize()
	}
}

// onScrollOrResize brings the live rows in line with the current scroll
// offset and viewport height.
func (w *VirtualWindow[T]) onScrollOrResize() error {
	if w.model == nil {
		return nil
	}
	count, err := w.model.RowCount()
	if err != nil {
		w.incomplete = true
		return fmt.Errorf("row count: %w", err)
	}
	// A taller viewport may leave the offset past the end of the content.
	w.scrollTop = clamp(w.scrollTop, 0, w.MaxScrollOffset())
	return w.reconcile(count)
}

// reconcile materializes every row of the visible range below count that is
// not yet live, then destroys the rows outside the range. Each insertion and
// removal keeps the arena and the node container in sync, so an error leaves
// a consistent window behind.
func (w *VirtualWindow[T]) reconcile(count int) error {
	w.viewportHeight = w.ViewportHeight()
	visible := ComputeVisibleRange(w.scrollTop, w.viewportHeight, w.rowHeight)

	stale := make(map[int]struct{}, len(w.rows))
	for index := range w.rows {
		stale[index] = struct{}{}
	}

	created := 0
	for index := visible.First; index <= visible.Last; index++ {
		if _, ok := w.rows[index]; ok {
			delete(stale, index)
			continue
		}
		if index < 0 || index >= count {
			continue
		}
		if err := w.insertRow(index); err != nil {
			w.incomplete = true
			return err
		}
		created++
	}

	for index := range stale {
		w.removeRow(index)
	}
	w.incomplete = false

	w.logger.Debug().
		Stringer("range", visible).
		Int("scroll_top", w.scrollTop).
		Int("created", created).
		Int("destroyed", len(stale)).
		Int("live", len(w.rows)).
		Msg("reconcile")
	return nil
}

func (w *VirtualWindow[T]) insertRow(index int) error {
	value, err := w.model.RowAt(index)
	if err != nil {
		return fmt.Errorf("row %d: %w", index, err)
	}
	view, err := NewRowView(value, w.renderRow)
	if err != nil {
		return fmt.Errorf("row %d: %w", index, err)
	}
	view.SetSelected(w.model.IsRowSelected(value))

	row := &materializedRow[T]{
		view: view,
		top:  index * w.rowHeight,
	}
	row.cancel = view.OnToggle(func() {
		w.emitItemSelected(view)
	})
	w.rows[index] = row
	w.nodes = append(w.nodes, row)
	return nil
}

func (w *VirtualWindow[T]) removeRow(index int) {
	row, ok := w.rows[index]
	if !ok {
		return
	}
	delete(w.rows, index)
	if i := slices.Index(w.nodes, row); i >= 0 {
		w.nodes = slices.Delete(w.nodes, i, i+1)
	}
	row.cancel()
	row.view.Destroy()
}

func (w *VirtualWindow[T]) destroyRows() {
	for index := range w.rows {
		w.removeRow(index)
	}
}

func (w *VirtualWindow[T]) emitItemSelected(view *RowView[T]) {
	if w.itemSelected != nil {
		w.itemSelected(ItemSelectedEvent[T]{Value: view.Value(), Selected: view.IsSelected()})
	}
}

// Destroy destroys every live row.
func (w *VirtualWindow[T]) Destroy() {
	w.destroyRows()
}

// scrollBarVisible syncs the scrollBar with the window and reports whether it
// is drawn for a viewport of the given height.
func (w *VirtualWindow[T]) scrollBarVisible(height int) bool {
	if !w.showScrollBar {
		return false
	}
	w.scrollBar.SetLengths(ScrollLengths{ContentLen: w.contentHeight, ViewportLen: height})
	w.scrollBar.SetOffset(w.scrollTop)
	return w.scrollBar.Visible(height)
}

// Draw lays out the live rows at their positions relative to the scroll
// offset and draws them clipped to the inner rectangle. Drawing never
// creates or destroys rows.
func (w *VirtualWindow[T]) Draw(screen tcell.Screen) {
	w.DrawFrame(screen)

	x, y, width, height := w.GetInnerRect()
	if width <= 0 || height <= 0 {
		return
	}

	rowWidth := width
	showScrollBar := w.scrollBarVisible(height)
	if showScrollBar {
		rowWidth--
	}

	clipped := newClippedScreen(screen, x, y, rowWidth, height)
	for _, index := range w.MaterializedIndices() {
		row := w.rows[index]
		node := row.view.VisualNode()
		node.SetRect(x, y+row.top-w.scrollTop, rowWidth, w.rowHeight)
		node.Draw(clipped)
	}

	if showScrollBar {
		w.scrollBar.SetRect(x+width-1, y, 1, height)
		w.scrollBar.Draw(screen)
	}
}

// rowIndexAt returns the index of the row drawn at screen row y.
func (w *VirtualWindow[T]) rowIndexAt(y int) int {
	_, innerY, _, _ := w.GetInnerRect()
	return floorDiv(y-innerY+w.scrollTop, w.rowHeight)
}

// InputHandler scrolls the window according to its key map.
func (w *VirtualWindow[T]) InputHandler(event *tcell.EventKey) Command {
	page := max(w.ViewportHeight(), 1)

	var err error
	switch {
	case keybind.Matches(event, w.keyMap.LineUp):
		err = w.ScrollBy(-w.scrollStep)
	case keybind.Matches(event, w.keyMap.LineDown):
		err = w.ScrollBy(w.scrollStep)
	case keybind.Matches(event, w.keyMap.PageUp):
		err = w.ScrollBy(-page)
	case keybind.Matches(event, w.keyMap.PageDown):
		err = w.ScrollBy(page)
	case keybind.Matches(event, w.keyMap.Top):
		err = w.ScrollTo(0)
	case keybind.Matches(event, w.keyMap.Bottom):
		err = w.ScrollTo(w.MaxScrollOffset())
	default:
		return nil
	}
	return commandFromError(err, RedrawCommand{})
}

// MouseHandler scrolls on wheel events and scrollBar clicks and forwards
// clicks on rows to the row under the pointer.
func (w *VirtualWindow[T]) MouseHandler(action MouseAction, event *tcell.EventMouse) (Primitive, Command) {
	x, y := event.Position()
	if !w.InRect(x, y) {
		return nil, nil
	}

	switch action {
	case MouseScrollUp:
		return nil, commandFromError(w.ScrollBy(-w.scrollStep), RedrawCommand{})
	case MouseScrollDown:
		return nil, commandFromError(w.ScrollBy(w.scrollStep), RedrawCommand{})
	}

	if !w.InInnerRect(x, y) {
		if action == MouseLeftDown {
			return nil, SetFocusCommand{Target: w}
		}
		return nil, nil
	}

	var cmd Command
	if action == MouseLeftDown {
		cmd = SetFocusCommand{Target: w}
	}

	innerX, innerY, width, height := w.GetInnerRect()
	if w.scrollBarVisible(height) && x == innerX+width-1 {
		if action == MouseLeftDown {
			offset := w.scrollBar.OffsetForClick(y-innerY, height)
			cmd = AppendCommand(cmd, commandFromError(w.ScrollTo(offset), RedrawCommand{}))
		}
		return nil, cmd
	}

	if row := w.RowAt(w.rowIndexAt(y)); row != nil {
		_, rowCmd := row.MouseHandler(action, event)
		cmd = AppendCommand(cmd, rowCmd)
	}
	return nil, cmd
}

var _ Primitive = &VirtualWindow[int]{}
