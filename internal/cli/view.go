package cli

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v3"
	"github.com/rs/zerolog"

	"github.com/ayn2op/vlist"
	"github.com/ayn2op/vlist/help"
	"github.com/ayn2op/vlist/internal/config"
	"github.com/ayn2op/vlist/keybind"
)

// entry is one row of the demo list. The index keeps equal lines distinct.
type entry struct {
	Index int
	Text  string
}

func newEntries(lines []string) []entry {
	entries := make([]entry, len(lines))
	for i, line := range lines {
		entries[i] = entry{Index: i, Text: line}
	}
	return entries
}

func formatEntry(e entry) string {
	return fmt.Sprintf("%6d  %s", e.Index, e.Text)
}

// demoKeyMap holds the keys handled by the demo view itself.
type demoKeyMap struct {
	vlist.KeyMap

	Help keybind.Keybind
	Quit keybind.Keybind
}

func newDemoKeyMap(window vlist.KeyMap) demoKeyMap {
	return demoKeyMap{
		KeyMap: window,
		Help: keybind.NewKeybind(
			keybind.WithKeys("?", "f1"),
			keybind.WithHelp("?", "help"),
		),
		Quit: keybind.NewKeybind(
			keybind.WithKeys("q", "ctrl+c", "esc"),
			keybind.WithHelp("q", "quit"),
		),
	}
}

func (k demoKeyMap) ShortHelp() []keybind.Keybind {
	return append(k.KeyMap.ShortHelp(), k.Help, k.Quit)
}

func (k demoKeyMap) FullHelp() [][]keybind.Keybind {
	return append(k.KeyMap.FullHelp(), []keybind.Keybind{k.Help, k.Quit})
}

// demoView stacks the list, a status line and the help.
type demoView struct {
	*vlist.Box

	model  *vlist.SliceModel[entry]
	window *vlist.VirtualWindow[entry]
	status *vlist.TextRow
	help   *help.Help
	keys   demoKeyMap

	// lastToggle describes the most recent itemSelected event.
	lastToggle string
	// footer shows the rows on screen in the list's bottom border.
	footer bool

	logger zerolog.Logger
}

// newDemoView builds the view over rows. The window stays unready until the
// first layout, which refreshes it.
func newDemoView(cfg *config.Config, rows []entry, logger zerolog.Logger) (*demoView, error) {
	v := &demoView{
		Box:    vlist.NewBox(),
		model:  vlist.NewSliceModel(rows...),
		window: vlist.NewVirtualWindow[entry](),
		status: vlist.NewTextRow("").SetMarkers("", ""),
		help:   help.New(),
		footer: showFooter(cfg),
		logger: logger,
	}
	v.SetDontClear(true)

	v.window.
		SetRowRenderer(vlist.TextRenderer(formatEntry)).
		SetScrollStep(cfg.ScrollStep).
		SetScrollBarVisible(cfg.ScrollBar).
		SetItemSelectedFunc(v.onItemSelected).
		SetLogger(logger).
		SetModel(v.model)
	applyBorder(v.window.Box, cfg)
	applyScrollBar(v.window.ScrollBar(), cfg)

	v.status.SetStyles(tcell.StyleDefault.Dim(true), tcell.StyleDefault)
	v.keys = newDemoKeyMap(v.window.KeyMap())
	v.help.SetKeyMap(v.keys)

	if err := v.window.SetRowHeight(cfg.RowHeight); err != nil {
		return nil, err
	}
	return v, nil
}

func applyBorder(box *vlist.Box, cfg *config.Config) {
	box.SetTitle(cfg.Title)
	if strings.EqualFold(cfg.Border, "none") {
		box.SetBorders(vlist.BordersNone)
		return
	}
	if set, ok := vlist.BorderSetByName(cfg.Border); ok {
		box.SetBorders(vlist.BordersAll).SetBorderSet(set)
	}
}

func showFooter(cfg *config.Config) bool {
	return cfg.Footer && !strings.EqualFold(cfg.Border, "none")
}

func applyScrollBar(bar *vlist.ScrollBar, cfg *config.Config) {
	if glyphs, ok := vlist.GlyphSetByName(cfg.ScrollBarGlyphs); ok {
		bar.SetGlyphSet(glyphs)
	}
	arrows := vlist.ScrollBarArrowsNone
	if cfg.ScrollBarArrows {
		arrows = vlist.ScrollBarArrowsBoth
	}
	click := vlist.TrackClickBehaviorPage
	if strings.EqualFold(cfg.ScrollBarClick, "jump") {
		click = vlist.TrackClickBehaviorJumpToClick
	}
	bar.SetArrows(arrows).SetTrackClickBehavior(click)
}

// rangeFooter describes the rows with at least one line on screen, such as
// " 10-29 of 10000 ".
func rangeFooter[T any](window *vlist.VirtualWindow[T]) string {
	rowHeight, viewport := window.RowHeight(), window.ViewportHeight()
	count := window.ContentHeight() / rowHeight
	if count == 0 || viewport <= 0 {
		return ""
	}
	offset := window.ScrollOffset()
	first := offset / rowHeight
	last := min((offset+viewport-1)/rowHeight, count-1)
	return fmt.Sprintf(" %d-%d of %d ", first, last, count)
}

// onItemSelected writes the toggle back to the model, which is the source of
// truth for rows built later.
func (v *demoView) onItemSelected(event vlist.ItemSelectedEvent[entry]) {
	v.model.SetSelected(event.Value, event.Selected)
	state := "deselected"
	if event.Selected {
		state = "selected"
	}
	v.logger.Debug().Int("index", event.Value.Index).Bool("selected", event.Selected).Msg("item toggled")
	v.lastToggle = fmt.Sprintf("%s row %d", state, event.Value.Index)
}

func (v *demoView) updateStatus() {
	count, _ := v.model.RowCount()
	text := fmt.Sprintf("%d rows, %d selected, %d live", count, len(v.model.Selected()), len(v.window.MaterializedIndices()))
	if v.lastToggle != "" {
		text += ", " + v.lastToggle
	}
	v.status.SetText(text)
	if v.footer {
		v.window.SetFooter(rangeFooter(v.window))
	}
}

// SetRect lays out the children.
func (v *demoView) SetRect(x, y, width, height int) {
	v.Box.SetRect(x, y, width, height)

	helpHeight := min(v.help.Height(width), max(height-2, 0))
	listHeight := max(height-helpHeight-1, 0)
	v.window.SetRect(x, y, width, listHeight)
	v.status.SetRect(x, y+listHeight, width, min(1, height-listHeight))
	v.help.SetRect(x, y+listHeight+1, width, helpHeight)
}

// HasFocus keeps key events flowing to the view after a click focused the
// list.
func (v *demoView) HasFocus() bool {
	return v.Box.HasFocus() || v.window.HasFocus()
}

// Err reports layout failures of the list.
func (v *demoView) Err() error {
	return v.window.Err()
}

func (v *demoView) Draw(screen tcell.Screen) {
	v.updateStatus()
	v.window.Draw(screen)
	v.status.Draw(screen)
	v.help.Draw(screen)
}

func (v *demoView) InputHandler(event *tcell.EventKey) vlist.Command {
	switch {
	case keybind.Matches(event, v.keys.Quit):
		return vlist.QuitCommand{}
	case keybind.Matches(event, v.keys.Help):
		v.help.SetShowAll(!v.help.ShowAll())
		// The help height changed, so the children need a new layout.
		x, y, width, height := v.GetRect()
		v.SetRect(x, y, width, height)
		return vlist.RedrawCommand{}
	}
	return v.window.InputHandler(event)
}

func (v *demoView) MouseHandler(action vlist.MouseAction, event *tcell.EventMouse) (vlist.Primitive, vlist.Command) {
	return v.window.MouseHandler(action, event)
}

// Destroy releases the list's rows.
func (v *demoView) Destroy() {
	v.window.Destroy()
}
