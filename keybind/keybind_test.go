package keybind

import (
	"testing"

	"github.com/gdamore/tcell/v3"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "Ctrl+A", want: "ctrl+a"},
		{in: " esc ", want: "esc"},
		{in: "Escape", want: "esc"},
		{in: "PageUp", want: "pgup"},
		{in: "pagedown", want: "pgdn"},
		{in: "Return", want: "enter"},
		{in: "ctrl-c", want: "ctrl+c"},
		{in: "Rune[j]", want: "j"},
		{in: "backtab", want: "shift+tab"},
		{in: "shift+ctrl+x", want: "shift+ctrl+x"},
		{in: "ctrl+ctrl+x", want: "ctrl+x"},
		{in: "G", want: "G"},
		{in: "", want: ""},
		{in: "ctrl+", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeKey(tt.in))
		})
	}
}

func TestKeybind_Enabled(t *testing.T) {
	assert.False(t, NewKeybind().Enabled())
	assert.True(t, NewKeybind(WithKeys("j")).Enabled())

	k := NewKeybind(WithKeys("j"), WithDisabled())
	assert.False(t, k.Enabled())
	k.SetEnabled(true)
	assert.True(t, k.Enabled())
}

func TestMatches(t *testing.T) {
	down := NewKeybind(WithKeys("down", "j"), WithHelp("↓/j", "down"))
	top := NewKeybind(WithKeys("home", "g"), WithDisabled())

	assert.True(t, Matches(tcell.NewEventKey(tcell.KeyDown, "", tcell.ModNone), down))
	assert.True(t, Matches(tcell.NewEventKey(tcell.KeyRune, "j", tcell.ModNone), top, down))
	assert.False(t, Matches(tcell.NewEventKey(tcell.KeyRune, "k", tcell.ModNone), down))
	assert.False(t, Matches(tcell.NewEventKey(tcell.KeyHome, "", tcell.ModNone), top))
	assert.False(t, Matches(nil, down))

	assert.Equal(t, Help{Key: "↓/j", Desc: "down"}, down.Help())
	assert.Equal(t, []string{"down", "j"}, down.Keys())
}

func TestEventKeyString(t *testing.T) {
	tests := []struct {
		name  string
		event *tcell.EventKey
		want  string
	}{
		{name: "arrow", event: tcell.NewEventKey(tcell.KeyDown, "", tcell.ModNone), want: "down"},
		{name: "page", event: tcell.NewEventKey(tcell.KeyPgDn, "", tcell.ModNone), want: "pgdn"},
		{name: "rune", event: tcell.NewEventKey(tcell.KeyRune, "G", tcell.ModNone), want: "G"},
		{name: "alt rune", event: tcell.NewEventKey(tcell.KeyRune, "X", tcell.ModAlt), want: "alt+x"},
		{name: "ctrl letter", event: tcell.NewEventKey(tcell.KeyCtrlF, "", tcell.ModNone), want: "ctrl+f"},
		{name: "backtab", event: tcell.NewEventKey(tcell.KeyBacktab, "", tcell.ModNone), want: "shift+tab"},
		{name: "shift backtab", event: tcell.NewEventKey(tcell.KeyBacktab, "", tcell.ModShift), want: "shift+tab"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, eventKeyString(tt.event))
		})
	}
}

func TestWithKeys(t *testing.T) {
	k := NewKeybind(WithKeys("PageDown", " ", "ctrl+F"), WithKeys("j", "Down"))
	assert.Equal(t, []string{"j", "down"}, k.Keys())
}
