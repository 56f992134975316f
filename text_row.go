package vlist

import (
	"github.com/gdamore/tcell/v3"
)

// TextRow is a row node showing word-wrapped text with a selection marker.
type TextRow struct {
	*Box

	text     string
	selected bool

	style         tcell.Style
	selectedStyle tcell.Style

	marker         string
	selectedMarker string
}

// NewTextRow returns a row node showing text.
func NewTextRow(text string) *TextRow {
	return &TextRow{
		Box:            NewBox(),
		text:           text,
		style:          Styles.RowStyle,
		selectedStyle:  Styles.SelectedRowStyle,
		marker:         "[ ] ",
		selectedMarker: "[x] ",
	}
}

// SetText sets the row's text.
func (r *TextRow) SetText(text string) *TextRow {
	r.text = text
	return r
}

// Text returns the row's text.
func (r *TextRow) Text() string {
	return r.text
}

// SetStyles sets the styles of unselected and selected rows.
func (r *TextRow) SetStyles(style, selected tcell.Style) *TextRow {
	r.style, r.selectedStyle = style, selected
	return r
}

// SetMarkers sets the prefixes drawn before the text of unselected and
// selected rows. Empty markers hide the selection column.
func (r *TextRow) SetMarkers(marker, selected string) *TextRow {
	r.marker, r.selectedMarker = marker, selected
	return r
}

// SetSelected implements Selectable.
func (r *TextRow) SetSelected(selected bool) {
	r.selected = selected
}

// IsSelected returns whether the row is drawn as selected.
func (r *TextRow) IsSelected() bool {
	return r.selected
}

func (r *TextRow) currentStyle() (tcell.Style, string) {
	if r.selected {
		return r.selectedStyle, r.selectedMarker
	}
	return r.style, r.marker
}

// Draw draws the row. Lines that do not fit the row's height are dropped.
func (r *TextRow) Draw(screen tcell.Screen) {
	style, marker := r.currentStyle()
	r.SetBackgroundColor(style.GetBackground())
	r.DrawFrame(screen)

	x, y, width, height := r.GetInnerRect()
	if width <= 0 || height <= 0 {
		return
	}

	markerWidth := StringWidth(marker)
	if markerWidth > 0 && markerWidth < width {
		PrintWithStyle(screen, marker, x, y, markerWidth, AlignmentLeft, style, false)
		x += markerWidth
		width -= markerWidth
	}

	for i, line := range WordWrap(r.text, width) {
		if i >= height {
			break
		}
		PrintWithStyle(screen, line, x, y+i, width, AlignmentLeft, style, false)
	}
}

// TextRenderer returns a RowRenderer producing a TextRow with the text
// returned by format.
func TextRenderer[T any](format func(T) string) RowRenderer[T] {
	return func(value T) (Primitive, error) {
		return NewTextRow(format(value)), nil
	}
}

var _ Selectable = &TextRow{}
