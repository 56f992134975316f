// Package keybind matches tcell key events against named key bindings such
// as "ctrl+f", "pgdn" or "G", and carries the help text shown for them.
package keybind

import (
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/gdamore/tcell/v3"
)

// Keybind associates a set of normalized key strings with a help entry.
type Keybind struct {
	keys     []string
	help     Help
	disabled bool
}

// Help is the text shown for a binding: the key as the user types it and
// what it does.
type Help struct {
	Key  string
	Desc string
}

type Option func(*Keybind)

func NewKeybind(options ...Option) Keybind {
	var k Keybind
	for _, option := range options {
		option(&k)
	}
	return k
}

// WithKeys sets the keys of the binding. Unparseable keys are dropped.
func WithKeys(keys ...string) Option {
	return func(k *Keybind) {
		k.keys = k.keys[:0]
		for _, key := range keys {
			if key = normalizeKey(key); key != "" {
				k.keys = append(k.keys, key)
			}
		}
	}
}

func WithHelp(key, desc string) Option {
	return func(k *Keybind) {
		k.help = Help{Key: key, Desc: desc}
	}
}

// WithDisabled creates the keybind in the disabled state.
func WithDisabled() Option {
	return func(k *Keybind) {
		k.disabled = true
	}
}

func (k Keybind) Keys() []string {
	return k.keys
}

func (k Keybind) Help() Help {
	return k.help
}

// Enabled reports whether the keybind matches events and shows up in help.
func (k Keybind) Enabled() bool {
	return !k.disabled && len(k.keys) > 0
}

func (k *Keybind) SetEnabled(enabled bool) {
	k.disabled = !enabled
}

// Matches reports whether event triggers any of the enabled keybinds.
func Matches(event *tcell.EventKey, keybinds ...Keybind) bool {
	if event == nil {
		return false
	}
	key := eventKeyString(event)
	return slices.ContainsFunc(keybinds, func(k Keybind) bool {
		return k.Enabled() && slices.Contains(k.keys, key)
	})
}

var modifierNames = map[string]string{
	"ctrl":    "ctrl",
	"control": "ctrl",
	"alt":     "alt",
	"shift":   "shift",
	"meta":    "meta",
}

var keyAliases = map[string]string{
	"escape":   "esc",
	"return":   "enter",
	"pageup":   "pgup",
	"pagedown": "pgdn",
}

// normalizeKey turns a key description into its canonical form: modifiers
// in the order given, without duplicates, followed by the lower-case key
// name or the literal character. It returns "" for descriptions without a
// key.
func normalizeKey(key string) string {
	key = strings.TrimSpace(key)
	if len(key) > len("ctrl-") && strings.EqualFold(key[:len("ctrl-")], "ctrl-") {
		key = "ctrl+" + key[len("ctrl-"):]
	}

	var mods []string
	primary := ""
	for _, part := range strings.Split(key, "+") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if mod, ok := modifierNames[strings.ToLower(part)]; ok {
			mods = addModifier(mods, mod)
			continue
		}
		primary = primaryKey(part)
	}

	switch primary {
	case "":
		return ""
	case "backtab":
		mods = addModifier(mods, "shift")
		primary = "tab"
	}
	return joinKey(mods, primary)
}

func primaryKey(key string) string {
	if strings.HasPrefix(key, "Rune[") && strings.HasSuffix(key, "]") && len(key) > len("Rune[]") {
		return key[len("Rune[") : len(key)-1]
	}
	if utf8.RuneCountInString(key) == 1 {
		return key
	}
	key = strings.ToLower(key)
	if alias, ok := keyAliases[key]; ok {
		return alias
	}
	return key
}

func addModifier(mods []string, mod string) []string {
	if slices.Contains(mods, mod) {
		return mods
	}
	return append(mods, mod)
}

// joinKey joins modifiers and a key. Characters are lower-cased when
// combined with modifiers, since terminals disagree on their case.
func joinKey(mods []string, primary string) string {
	if len(mods) == 0 {
		return primary
	}
	if utf8.RuneCountInString(primary) == 1 {
		primary = strings.ToLower(primary)
	}
	return strings.Join(append(mods, primary), "+")
}

var keyNames = map[tcell.Key]string{
	tcell.KeyEnter:      "enter",
	tcell.KeyEscape:     "esc",
	tcell.KeyTab:        "tab",
	tcell.KeyBacktab:    "tab",
	tcell.KeyHome:       "home",
	tcell.KeyEnd:        "end",
	tcell.KeyUp:         "up",
	tcell.KeyDown:       "down",
	tcell.KeyLeft:       "left",
	tcell.KeyRight:      "right",
	tcell.KeyPgUp:       "pgup",
	tcell.KeyPgDn:       "pgdn",
	tcell.KeyDelete:     "delete",
	tcell.KeyBackspace:  "backspace",
	tcell.KeyBackspace2: "backspace",
	tcell.KeyInsert:     "insert",
	tcell.KeyF1:         "f1",
}

var eventModifiers = []struct {
	mask tcell.ModMask
	name string
}{
	{tcell.ModCtrl, "ctrl"},
	{tcell.ModAlt, "alt"},
	{tcell.ModShift, "shift"},
	{tcell.ModMeta, "meta"},
}

// eventKeyString returns the canonical key string of event, in the form
// produced by normalizeKey.
func eventKeyString(event *tcell.EventKey) string {
	key := event.Key()

	var mods []string
	for _, m := range eventModifiers {
		if event.Modifiers()&m.mask != 0 {
			mods = append(mods, m.name)
		}
	}

	primary, named := keyNames[key]
	switch {
	case named:
		if key == tcell.KeyBacktab {
			mods = addModifier(mods, "shift")
		}
	case key == tcell.KeyRune:
		primary = event.Str()
	case key >= tcell.KeyCtrlA && key <= tcell.KeyCtrlZ:
		return "ctrl+" + string(rune('a'+(key-tcell.KeyCtrlA)))
	default:
		return normalizeKey(event.Name())
	}
	return joinKey(mods, primary)
}
