package vlist

import (
	"fmt"

	"github.com/gdamore/tcell/v3"
)

// RowRenderer builds the visual node for a row value. It is called exactly
// once per materialized row.
type RowRenderer[T any] func(value T) (Primitive, error)

// RowView owns one materialized row: its value, its selected flag and the
// visual node produced by the renderer.
type RowView[T any] struct {
	value     T
	node      Primitive
	selected  bool
	destroyed bool

	listeners map[int]func()
	nextID    int
}

// NewRowView renders value and returns the row owning the resulting node.
// Renderer failures are returned and no row is produced.
func NewRowView[T any](value T, render RowRenderer[T]) (*RowView[T], error) {
	if render == nil {
		return nil, ErrNoRenderer
	}
	node, err := render(value)
	if err != nil {
		return nil, fmt.Errorf("render row: %w", err)
	}
	if node == nil {
		return nil, fmt.Errorf("render row: %w", ErrNilNode)
	}
	return &RowView[T]{
		value:     value,
		node:      node,
		listeners: make(map[int]func()),
	}, nil
}

// Value returns the value the row was built from.
func (r *RowView[T]) Value() T {
	return r.value
}

// VisualNode returns the row's node, or nil once the row is destroyed.
func (r *RowView[T]) VisualNode() Primitive {
	return r.node
}

// IsSelected returns the row's selected flag.
func (r *RowView[T]) IsSelected() bool {
	return r.selected
}

// SetSelected sets the selected flag and forwards it to the node if the node
// is Selectable. Listeners are not notified.
func (r *RowView[T]) SetSelected(selected bool) {
	r.selected = selected
	if s, ok := r.node.(Selectable); ok {
		s.SetSelected(selected)
	}
}

// Toggle flips the selected flag and notifies every listener. Destroyed rows
// ignore toggles.
func (r *RowView[T]) Toggle() {
	if r.destroyed {
		return
	}
	r.SetSelected(!r.selected)
	for id := 0; id < r.nextID; id++ {
		if fn, ok := r.listeners[id]; ok {
			fn()
		}
	}
}

// OnToggle registers fn to be called after every toggle, in registration
// order. The returned function removes the listener.
func (r *RowView[T]) OnToggle(fn func()) (cancel func()) {
	if r.destroyed || fn == nil {
		return func() {}
	}
	id := r.nextID
	r.nextID++
	r.listeners[id] = fn
	return func() {
		delete(r.listeners, id)
	}
}

// MouseHandler toggles the row on a left click inside its node.
func (r *RowView[T]) MouseHandler(action MouseAction, event *tcell.EventMouse) (Primitive, Command) {
	if r.destroyed || action != MouseLeftClick {
		return nil, nil
	}
	x, y := event.Position()
	if !inPrimitive(r.node, x, y) {
		return nil, nil
	}
	r.Toggle()
	return nil, RedrawCommand{}
}

// Destroy releases the node and all listeners. It is safe to call more than
// once.
func (r *RowView[T]) Destroy() {
	if r.destroyed {
		return
	}
	r.destroyed = true
	clear(r.listeners)
	if d, ok := r.node.(Destroyer); ok {
		d.Destroy()
	}
	r.node = nil
}

// inPrimitive reports whether (x, y) lies within p's rectangle.
func inPrimitive(p Primitive, x, y int) bool {
	if p == nil {
		return false
	}
	px, py, width, height := p.GetRect()
	return x >= px && x < px+width && y >= py && y < py+height
}
