package vlist

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v3"
	"github.com/stretchr/testify/assert"
)

func TestPrintWithStyle(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		maxWidth  int
		alignment Alignment
		want      string
		width     int
	}{
		{name: "left", text: "hello", maxWidth: 8, alignment: AlignmentLeft, want: "hello", width: 5},
		{name: "truncated", text: "hello", maxWidth: 3, alignment: AlignmentLeft, want: "hel", width: 3},
		{name: "right", text: "ab", maxWidth: 5, alignment: AlignmentRight, want: "   ab", width: 2},
		{name: "center", text: "ab", maxWidth: 6, alignment: AlignmentCenter, want: "  ab", width: 2},
		{name: "empty", text: "", maxWidth: 5, alignment: AlignmentLeft, want: "", width: 0},
		{name: "no room", text: "abc", maxWidth: 0, alignment: AlignmentLeft, want: "", width: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCanvas(8, 1)
			_, _, width := PrintWithStyle(c, tt.text, 0, 0, tt.maxWidth, tt.alignment, tcell.StyleDefault, false)
			assert.Equal(t, tt.width, width)
			assert.Equal(t, tt.want, c.Line(0))
		})
	}
}

func TestPrintWithStyle_OutsideScreen(t *testing.T) {
	c := NewCanvas(4, 1)
	_, _, width := PrintWithStyle(c, "abc", 0, -1, 4, AlignmentLeft, tcell.StyleDefault, false)
	assert.Zero(t, width)
	_, _, width = PrintWithStyle(c, "abc", 0, 1, 4, AlignmentLeft, tcell.StyleDefault, false)
	assert.Zero(t, width)
}

func TestPrint(t *testing.T) {
	c := NewCanvas(6, 1)
	n, width := Print(c, "日本", 0, 0, 6, AlignmentLeft, tcell.ColorDefault)
	assert.Equal(t, len("日本"), n)
	assert.Equal(t, 4, width)
	assert.Equal(t, "日本", c.Line(0))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 5, clamp(5, 0, 10))
	assert.Equal(t, 0, clamp(-3, 0, 10))
	assert.Equal(t, 10, clamp(30, 0, 10))
	assert.Equal(t, 0, clamp(4, 0, -1))
}

func TestStringWidth(t *testing.T) {
	assert.Equal(t, 3, StringWidth("abc"))
	assert.Equal(t, 4, StringWidth("日本"))
	assert.Zero(t, StringWidth(""))
}

func TestWordWrap(t *testing.T) {
	text := "the quick brown fox jumps over the lazy dog"
	lines := WordWrap(text, 10)

	assert.Greater(t, len(lines), 1)
	for _, line := range lines {
		assert.LessOrEqual(t, StringWidth(line), 10, line)
	}
	assert.Equal(t, text, strings.Join(lines, ""))

	assert.Equal(t, []string{"a", "b"}, WordWrap("a\nb", 10))
	assert.Nil(t, WordWrap("abc", 0))
}
