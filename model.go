package vlist

import (
	"fmt"
	"slices"
	"sync"
)

// DataModel is the source of rows for a VirtualWindow. It is queried
// synchronously from the event loop while the window reconciles.
//
// RowCount and RowAt failures abort the current reconciliation and are
// returned to the caller. IsRowSelected reports the host's selection state
// for a value and is consulted once, when the row is materialized.
type DataModel[T any] interface {
	RowCount() (int, error)
	RowAt(index int) (T, error)
	IsRowSelected(value T) bool
}

// VisibleRange is an inclusive range of row indices. It is not clamped to the
// model's row count, so Last may point past the final row.
type VisibleRange struct {
	First int
	Last  int
}

// ComputeVisibleRange returns the rows intersecting a viewport of the given
// height scrolled to scrollTop, with rows of rowHeight units each. The range
// has no overscan. Both bounds are inclusive, which means a viewport whose
// bottom edge falls exactly on a row boundary also includes the row below it.
func ComputeVisibleRange(scrollTop, viewportHeight, rowHeight int) VisibleRange {
	if rowHeight < 1 {
		rowHeight = 1
	}
	return VisibleRange{
		First: floorDiv(scrollTop, rowHeight),
		Last:  floorDiv(scrollTop+viewportHeight, rowHeight),
	}
}

// floorDiv divides rounding towards negative infinity.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// Contains reports whether index lies within the range.
func (r VisibleRange) Contains(index int) bool {
	return index >= r.First && index <= r.Last
}

// Len returns the number of indices in the range.
func (r VisibleRange) Len() int {
	return max(r.Last-r.First+1, 0)
}

// Indices returns the indices of the range in ascending order.
func (r VisibleRange) Indices() []int {
	indices := make([]int, 0, r.Len())
	for i := r.First; i <= r.Last; i++ {
		indices = append(indices, i)
	}
	return indices
}

func (r VisibleRange) String() string {
	return fmt.Sprintf("[%d, %d]", r.First, r.Last)
}

// SliceModel is an in-memory DataModel backed by a slice, with a set of
// selected values. It is safe for concurrent use.
type SliceModel[T comparable] struct {
	mu       sync.RWMutex
	rows     []T
	selected map[T]struct{}
}

// NewSliceModel returns a model holding rows. The slice is copied.
func NewSliceModel[T comparable](rows ...T) *SliceModel[T] {
	return &SliceModel[T]{
		rows:     slices.Clone(rows),
		selected: make(map[T]struct{}),
	}
}

// RowCount returns the number of rows. It never fails.
func (m *SliceModel[T]) RowCount() (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.rows), nil
}

// RowAt returns the row at index, or an error if index is out of range.
func (m *SliceModel[T]) RowAt(index int) (T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if index < 0 || index >= len(m.rows) {
		var zero T
		return zero, fmt.Errorf("row %d out of range [0, %d)", index, len(m.rows))
	}
	return m.rows[index], nil
}

// IsRowSelected reports whether value is in the selected set.
func (m *SliceModel[T]) IsRowSelected(value T) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.selected[value]
	return ok
}

// SetSelected adds value to or removes it from the selected set.
func (m *SliceModel[T]) SetSelected(value T, selected bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if selected {
		m.selected[value] = struct{}{}
	} else {
		delete(m.selected, value)
	}
}

// Selected returns the selected values in row order.
func (m *SliceModel[T]) Selected() []T {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var selected []T
	for _, row := range m.rows {
		if _, ok := m.selected[row]; ok {
			selected = append(selected, row)
		}
	}
	return selected
}

// SetRows replaces all rows. Selections of values that are still present are
// kept.
func (m *SliceModel[T]) SetRows(rows []T) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows = slices.Clone(rows)
	for value := range m.selected {
		if !slices.Contains(m.rows, value) {
			delete(m.selected, value)
		}
	}
}

// Append adds rows to the end of the model.
func (m *SliceModel[T]) Append(rows ...T) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows = append(m.rows, rows...)
}
