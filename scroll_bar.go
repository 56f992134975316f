package vlist

import (
	"strings"

	"github.com/gdamore/tcell/v3"
)

// ScrollBarArrows selects the arrow endcaps drawn around the track.
type ScrollBarArrows uint8

const (
	ScrollBarArrowsNone ScrollBarArrows = iota
	ScrollBarArrowsStart
	ScrollBarArrowsEnd
	ScrollBarArrowsBoth
)

func (a ScrollBarArrows) hasStart() bool {
	return a == ScrollBarArrowsStart || a == ScrollBarArrowsBoth
}

func (a ScrollBarArrows) hasEnd() bool {
	return a == ScrollBarArrowsEnd || a == ScrollBarArrowsBoth
}

// count returns the number of cells taken by arrows.
func (a ScrollBarArrows) count() int {
	n := 0
	if a.hasStart() {
		n++
	}
	if a.hasEnd() {
		n++
	}
	return n
}

// TrackClickBehavior decides what a click on the track outside the thumb
// does.
type TrackClickBehavior uint8

const (
	// TrackClickBehaviorPage moves one viewport towards the click.
	TrackClickBehaviorPage TrackClickBehavior = iota
	// TrackClickBehaviorJumpToClick centers the thumb on the click.
	TrackClickBehaviorJumpToClick
)

// ScrollLengths bundles content and viewport lengths in lines.
type ScrollLengths struct {
	ContentLen  int
	ViewportLen int
}

// subcell is the number of thumb steps per cell, one per eighth block glyph.
const subcell = 8

// GlyphSet holds the glyphs of a vertical scrollBar. ThumbLower[i] fills the
// bottom i+1 eighths of a cell and ThumbUpper[i] the top i+1 eighths.
type GlyphSet struct {
	Track      string
	ArrowStart string
	ArrowEnd   string
	ThumbLower [subcell]string
	ThumbUpper [subcell]string
}

var lowerEighths = [subcell]string{
	BlockLowerOneEighthBlock, BlockLowerOneQuarterBlock, BlockLowerThreeEighths, BlockLowerHalfBlock,
	BlockLowerFiveEighths, BlockLowerThreeQuarters, BlockLowerSevenEighths, BlockFullBlock,
}

// MinimalGlyphSet draws no track and a thumb with eighth-cell precision.
func MinimalGlyphSet() GlyphSet {
	g := LegacyComputingGlyphSet()
	g.Track = " "
	return g
}

// LegacyComputingGlyphSet uses the Symbols for Legacy Computing block for
// the upper thumb edge, which not every font covers.
func LegacyComputingGlyphSet() GlyphSet {
	return GlyphSet{
		Track:      BoxDrawingsLightVertical,
		ArrowStart: "▲",
		ArrowEnd:   "▼",
		ThumbLower: lowerEighths,
		ThumbUpper: [subcell]string{"▔", "🮂", "🮃", "▀", "🮄", "🮅", "🮆", "█"},
	}
}

// UnicodeGlyphSet approximates the upper thumb edge with the block elements
// available in most fonts.
func UnicodeGlyphSet() GlyphSet {
	g := LegacyComputingGlyphSet()
	g.ThumbUpper = [subcell]string{
		BlockUpperOneEighthBlock, BlockUpperOneEighthBlock, BlockUpperHalfBlock, BlockUpperHalfBlock,
		BlockUpperHalfBlock, BlockUpperHalfBlock, BlockFullBlock, BlockFullBlock,
	}
	return g
}

// GlyphSetByName returns the glyph set registered under name: "minimal",
// "legacy" or "unicode". The second return value is false for unknown names.
func GlyphSetByName(name string) (GlyphSet, bool) {
	switch strings.ToLower(name) {
	case "minimal", "":
		return MinimalGlyphSet(), true
	case "legacy":
		return LegacyComputingGlyphSet(), true
	case "unicode":
		return UnicodeGlyphSet(), true
	}
	return GlyphSet{}, false
}

// ScrollBar draws the position of a viewport within its content on a
// single column. It is hidden while the content fits the viewport.
type ScrollBar struct {
	*Box

	contentLen  int
	viewportLen int
	offset      int

	glyphs     GlyphSet
	arrows     ScrollBarArrows
	trackClick TrackClickBehavior
	scrollStep int
}

// NewScrollBar returns a scrollBar with the minimal glyph set, no arrows and
// paging track clicks.
func NewScrollBar() *ScrollBar {
	return &ScrollBar{
		Box:        NewBox(),
		glyphs:     MinimalGlyphSet(),
		scrollStep: 1,
	}
}

// SetLengths sets the content and viewport lengths.
func (s *ScrollBar) SetLengths(lengths ScrollLengths) *ScrollBar {
	s.contentLen = max(lengths.ContentLen, 0)
	s.viewportLen = max(lengths.ViewportLen, 0)
	return s
}

// SetOffset sets the viewport offset within the content.
func (s *ScrollBar) SetOffset(offset int) *ScrollBar {
	s.offset = max(offset, 0)
	return s
}

// SetGlyphSet sets the glyphs used for drawing.
func (s *ScrollBar) SetGlyphSet(glyphs GlyphSet) *ScrollBar {
	s.glyphs = glyphs
	return s
}

// SetArrows sets which arrow endcaps are drawn.
func (s *ScrollBar) SetArrows(arrows ScrollBarArrows) *ScrollBar {
	s.arrows = arrows
	return s
}

// SetTrackClickBehavior sets what a track click does.
func (s *ScrollBar) SetTrackClickBehavior(behavior TrackClickBehavior) *ScrollBar {
	s.trackClick = behavior
	return s
}

// SetScrollStep sets the distance an arrow click scrolls.
func (s *ScrollBar) SetScrollStep(step int) *ScrollBar {
	s.scrollStep = max(step, 1)
	return s
}

// ScrollStep returns the distance an arrow click scrolls.
func (s *ScrollBar) ScrollStep() int {
	return s.scrollStep
}

// scrollMetrics is the thumb geometry in subcells.
type scrollMetrics struct {
	trackCells int
	trackLen   int
	thumbLen   int
	thumbStart int
}

// lengths returns the content length and the viewport length clamped to
// [1, content length], for a scrollBar of the given height.
func (s *ScrollBar) lengths(height int) (content, viewport int) {
	content = max(s.contentLen, 1)
	viewport = s.viewportLen
	if viewport == 0 {
		viewport = height
	}
	return content, min(max(viewport, 1), content)
}

func (s *ScrollBar) metrics(height int) scrollMetrics {
	if height <= 0 {
		return scrollMetrics{}
	}
	_, viewport := s.lengths(height)
	return computeScrollMetrics(max(height-s.arrows.count(), 0), s.contentLen, viewport, s.offset)
}

// computeScrollMetrics sizes the thumb in proportion to the visible share of
// the content, with a minimum of one cell, and places it by offset.
func computeScrollMetrics(trackCells, contentLen, viewportLen, offset int) scrollMetrics {
	trackLen := trackCells * subcell
	if trackLen == 0 {
		return scrollMetrics{}
	}

	contentLen = max(contentLen, 1)
	viewportLen = min(max(viewportLen, 1), contentLen)
	maxOffset := contentLen - viewportLen
	if maxOffset == 0 {
		return scrollMetrics{trackCells: trackCells, trackLen: trackLen, thumbLen: trackLen}
	}
	offset = clamp(offset, 0, maxOffset)

	thumbLen := min(max(trackLen*viewportLen/contentLen, subcell), trackLen)
	thumbStart := (trackLen - thumbLen) * offset / maxOffset
	return scrollMetrics{trackCells: trackCells, trackLen: trackLen, thumbLen: thumbLen, thumbStart: thumbStart}
}

// Visible reports whether the scrollBar draws anything at the given height.
func (s *ScrollBar) Visible(height int) bool {
	if s.metrics(height).trackLen == 0 || s.contentLen <= 0 {
		return false
	}
	content, viewport := s.lengths(height)
	return content > viewport
}

// OffsetForClick returns the offset resulting from a click on row, counted
// from the top of a scrollBar of the given height. Arrows move by the scroll
// step and the track behaves according to the track click behavior. The
// result is not clamped.
func (s *ScrollBar) OffsetForClick(row, height int) int {
	if row < 0 || row >= height {
		return s.offset
	}
	if s.arrows.hasStart() {
		if row == 0 {
			return s.offset - s.scrollStep
		}
		row--
	}
	m := s.metrics(height)
	if s.arrows.hasEnd() && row >= m.trackCells {
		return s.offset + s.scrollStep
	}
	if m.trackLen == 0 {
		return s.offset
	}

	content, viewport := s.lengths(height)
	clicked := row*subcell + subcell/2
	if s.trackClick == TrackClickBehaviorJumpToClick {
		travel := m.trackLen - m.thumbLen
		if travel <= 0 {
			return s.offset
		}
		start := clamp(clicked-m.thumbLen/2, 0, travel)
		return (start*(content-viewport) + travel/2) / travel
	}
	switch {
	case clicked < m.thumbStart:
		return s.offset - viewport
	case clicked >= m.thumbStart+m.thumbLen:
		return s.offset + viewport
	}
	return s.offset
}

// cellGlyph returns the glyph and style of track cell i.
func (s *ScrollBar) cellGlyph(m scrollMetrics, i int) (string, tcell.Style) {
	cellStart := i * subcell
	start := max(m.thumbStart, cellStart)
	end := min(m.thumbStart+m.thumbLen, cellStart+subcell)
	fill := end - start
	switch {
	case fill <= 0:
		return s.glyphs.Track, Styles.ScrollTrackStyle
	case fill >= subcell:
		return BlockFullBlock, Styles.ScrollThumbStyle
	case start == cellStart:
		// The thumb covers the top of the cell and ends inside it.
		return s.glyphs.ThumbUpper[fill-1], Styles.ScrollThumbStyle
	}
	return s.glyphs.ThumbLower[fill-1], Styles.ScrollThumbStyle
}

// Draw draws the arrows and the track with the thumb.
func (s *ScrollBar) Draw(screen tcell.Screen) {
	s.DrawFrame(screen)

	x, y, _, height := s.GetInnerRect()
	if !s.Visible(height) {
		return
	}
	arrowStyle := tcell.StyleDefault.Dim(true)
	if s.arrows.hasStart() {
		screen.Put(x, y, s.glyphs.ArrowStart, arrowStyle)
		y++
	}
	m := s.metrics(height)
	for i := 0; i < m.trackCells; i++ {
		glyph, style := s.cellGlyph(m, i)
		screen.Put(x, y+i, glyph, style)
	}
	if s.arrows.hasEnd() {
		screen.Put(x, y+m.trackCells, s.glyphs.ArrowEnd, arrowStyle)
	}
}

var _ Primitive = &ScrollBar{}
