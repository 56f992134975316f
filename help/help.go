// Package help draws the key bindings of a KeyMap, either on one line or as
// aligned columns.
package help

import (
	"slices"
	"strings"

	"github.com/ayn2op/vlist"
	"github.com/ayn2op/vlist/keybind"
	"github.com/gdamore/tcell/v3"
)

// KeyMap provides the bindings shown by Help.
type KeyMap interface {
	// ShortHelp returns keybinds for single-line help.
	ShortHelp() []keybind.Keybind
	// FullHelp returns keybind groups, where each top-level entry is a column.
	FullHelp() [][]keybind.Keybind
}

const (
	shortSeparator = " • "
	fullSeparator  = "    "
	ellipsis       = "…"
)

// Help renders the short or full help of a KeyMap.
type Help struct {
	*vlist.Box

	styles  Styles
	keyMap  KeyMap
	showAll bool
}

func New() *Help {
	return &Help{
		Box:    vlist.NewBox(),
		styles: DefaultStyles(),
	}
}

// SetKeyMap sets the key map used by this help primitive.
func (h *Help) SetKeyMap(keyMap KeyMap) *Help {
	h.keyMap = keyMap
	return h
}

// SetShowAll switches between the short and the full help.
func (h *Help) SetShowAll(showAll bool) *Help {
	h.showAll = showAll
	return h
}

// ShowAll returns whether full help mode is enabled.
func (h *Help) ShowAll() bool {
	return h.showAll
}

// Height returns the number of lines the help needs at the given width.
func (h *Help) Height(width int) int {
	switch {
	case h.keyMap == nil:
		return 0
	case h.showAll:
		return len(h.fullLines(h.keyMap.FullHelp(), width))
	}
	return 1
}

// ShortHelpLine returns the short help as plain text. A positive maxWidth
// drops the bindings that do not fit.
func (h *Help) ShortHelpLine(maxWidth int) string {
	if h.keyMap == nil {
		return ""
	}
	return h.shortLine(h.keyMap.ShortHelp(), maxWidth).String()
}

// FullHelpLines returns the columns of groups as plain text lines. A positive
// maxWidth drops the columns that do not fit.
func (h *Help) FullHelpLines(groups [][]keybind.Keybind, maxWidth int) []string {
	var lines []string
	for _, l := range h.fullLines(groups, maxWidth) {
		lines = append(lines, l.String())
	}
	return lines
}

// Draw draws as many help lines as fit the inner rectangle.
func (h *Help) Draw(screen tcell.Screen) {
	h.DrawFrame(screen)
	if h.keyMap == nil {
		return
	}

	x, y, width, height := h.GetInnerRect()
	lines := []line{h.shortLine(h.keyMap.ShortHelp(), width)}
	if h.showAll {
		lines = h.fullLines(h.keyMap.FullHelp(), width)
	}
	for i, l := range lines {
		if i >= height {
			break
		}
		l.draw(screen, x, y+i, width)
	}
}

type segment struct {
	text  string
	style tcell.Style
}

// line is a run of styled text.
type line []segment

func (l line) width() int {
	width := 0
	for _, s := range l {
		width += vlist.StringWidth(s.text)
	}
	return width
}

func (l line) String() string {
	var b strings.Builder
	for _, s := range l {
		b.WriteString(s.text)
	}
	return b.String()
}

func (l line) draw(screen tcell.Screen, x, y, width int) {
	for _, s := range l {
		if width <= 0 {
			return
		}
		_, _, printed := vlist.PrintWithStyle(screen, s.text, x, y, width, vlist.AlignmentLeft, s.style, false)
		x += printed
		width -= printed
	}
}

// withEllipsis appends an ellipsis to l if it fits within maxWidth.
func (h *Help) withEllipsis(l line, maxWidth int) line {
	if maxWidth <= 0 {
		return l
	}
	tail := line{{text: " ", style: h.styles.EllipsisStyle}, {text: ellipsis, style: h.styles.EllipsisStyle}}
	if l.width()+tail.width() > maxWidth {
		return l
	}
	return append(l, tail...)
}

// shortLine joins the enabled bindings with separators, stopping at the
// first one that does not fit.
func (h *Help) shortLine(bindings []keybind.Keybind, maxWidth int) line {
	var out line
	for _, kb := range bindings {
		item := h.shortItem(kb)
		if item == nil {
			continue
		}
		next := item
		if out != nil {
			next = append(slices.Clone(out), segment{text: shortSeparator, style: h.styles.ShortSeparatorStyle})
			next = append(next, item...)
		}
		if maxWidth > 0 && next.width() > maxWidth {
			if out == nil {
				return nil
			}
			return h.withEllipsis(out, maxWidth)
		}
		out = next
	}
	return out
}

func (h *Help) shortItem(kb keybind.Keybind) line {
	if !kb.Enabled() {
		return nil
	}
	key, desc := kb.Help().Key, kb.Help().Desc
	keyStyle, descStyle := h.styles.ShortKeyStyle, h.styles.ShortDescStyle
	switch {
	case key == "" && desc == "":
		return nil
	case key == "":
		return line{{text: desc, style: descStyle}}
	case desc == "":
		return line{{text: key, style: keyStyle}}
	}
	return line{{text: key, style: keyStyle}, {text: " ", style: descStyle}, {text: desc, style: descStyle}}
}

// column is one group of the full help. keyWidth is the widest key and width
// the widest entry.
type column struct {
	entries  []keybind.Help
	keyWidth int
	width    int
}

func newColumns(groups [][]keybind.Keybind) []column {
	var columns []column
	for _, group := range groups {
		var c column
		for _, kb := range group {
			entry := kb.Help()
			if !kb.Enabled() || entry == (keybind.Help{}) {
				continue
			}
			c.entries = append(c.entries, entry)
			c.keyWidth = max(c.keyWidth, vlist.StringWidth(entry.Key))
		}
		if len(c.entries) == 0 {
			continue
		}
		for _, entry := range c.entries {
			width := c.keyWidth + vlist.StringWidth(entry.Desc)
			if entry.Key != "" && entry.Desc != "" {
				width++
			}
			c.width = max(c.width, width)
		}
		columns = append(columns, c)
	}
	return columns
}

// fullLines lays the groups out as columns from left to right, as many as
// fit within maxWidth. Every column but the last is padded to its width so
// that separators line up; rows past the end of a column are blank.
func (h *Help) fullLines(groups [][]keybind.Keybind, maxWidth int) []line {
	columns := newColumns(groups)
	if len(columns) == 0 {
		return nil
	}

	sepWidth := vlist.StringWidth(fullSeparator)
	fit, total := 0, 0
	for i, c := range columns {
		width := c.width
		if i > 0 {
			width += sepWidth
		}
		if maxWidth > 0 && total+width > maxWidth {
			break
		}
		fit++
		total += width
	}
	if fit == 0 {
		return []line{{{text: ellipsis, style: h.styles.EllipsisStyle}}}
	}

	rows := 0
	for _, c := range columns[:fit] {
		rows = max(rows, len(c.entries))
	}
	lines := make([]line, rows)
	for row := range lines {
		for i, c := range columns[:fit] {
			if i > 0 {
				lines[row] = append(lines[row], segment{text: fullSeparator, style: h.styles.FullSeparatorStyle})
			}
			lines[row] = append(lines[row], h.fullCell(c, row, i < fit-1)...)
		}
	}

	if fit < len(columns) {
		lines[0] = h.withEllipsis(lines[0], maxWidth)
	}
	return lines
}

func (h *Help) fullCell(c column, row int, pad bool) line {
	if row >= len(c.entries) {
		return line{{text: strings.Repeat(" ", c.width), style: h.styles.FullDescStyle}}
	}

	entry := c.entries[row]
	var cell line
	if entry.Key != "" {
		cell = append(cell, segment{text: entry.Key, style: h.styles.FullKeyStyle})
	}
	if n := c.keyWidth - vlist.StringWidth(entry.Key); n > 0 {
		cell = append(cell, segment{text: strings.Repeat(" ", n), style: h.styles.FullKeyStyle})
	}
	if entry.Key != "" && entry.Desc != "" {
		cell = append(cell, segment{text: " ", style: h.styles.FullDescStyle})
	}
	if entry.Desc != "" {
		cell = append(cell, segment{text: entry.Desc, style: h.styles.FullDescStyle})
	}
	if n := c.width - cell.width(); pad && n > 0 {
		cell = append(cell, segment{text: strings.Repeat(" ", n), style: h.styles.FullDescStyle})
	}
	return cell
}
