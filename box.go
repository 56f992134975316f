package vlist

import (
	"github.com/gdamore/tcell/v3"
)

// Box is the base of every primitive in this package: a rectangle with an
// optional border, a title on its top edge and a footer on its bottom edge.
// Content is drawn within the inner rectangle left by those.
type Box struct {
	x, y, width, height int

	// The inner rectangle is cached after a draw. A negative innerX means it
	// must be computed.
	innerX, innerY, innerWidth, innerHeight int

	backgroundColor tcell.Color
	// dontClear skips filling the background, for containers whose children
	// cover the whole rectangle.
	dontClear bool

	borders     Borders
	borderSet   BorderSet
	borderStyle tcell.Style

	title       string
	titleStyle  tcell.Style
	footer      string
	footerStyle tcell.Style

	hasFocus bool
}

// NewBox returns a Box without a border.
func NewBox() *Box {
	return &Box{
		width:           15,
		height:          10,
		innerX:          -1,
		backgroundColor: Styles.PrimitiveBackgroundColor,
		borderStyle:     tcell.StyleDefault.Foreground(Styles.BorderColor).Background(Styles.PrimitiveBackgroundColor),
		borderSet:       BorderSetPlain(),
		titleStyle:      tcell.StyleDefault.Foreground(Styles.TitleColor),
		footerStyle:     tcell.StyleDefault.Foreground(Styles.SecondaryTextColor),
	}
}

// GetRect returns the position of the box: x, y, width and height.
func (b *Box) GetRect() (int, int, int, int) {
	return b.x, b.y, b.width, b.height
}

// GetInnerRect returns the rectangle left for content once the border, the
// title and the footer are taken out. Width and height are never negative.
func (b *Box) GetInnerRect() (int, int, int, int) {
	if b.innerX >= 0 {
		return b.innerX, b.innerY, b.innerWidth, b.innerHeight
	}

	x, y, width, height := b.GetRect()
	if b.title != "" || b.borders.Has(BordersTop) {
		y++
		height--
	}
	if b.footer != "" || b.borders.Has(BordersBottom) {
		height--
	}
	if b.borders.Has(BordersLeft) {
		x++
		width--
	}
	if b.borders.Has(BordersRight) {
		width--
	}
	return x, y, max(width, 0), max(height, 0)
}

// SetRect moves and resizes the box.
func (b *Box) SetRect(x, y, width, height int) {
	if b.x != x || b.y != y || b.width != width || b.height != height {
		b.x, b.y, b.width, b.height = x, y, width, height
		b.innerX = -1
	}
}

// InputHandler ignores all key events.
func (b *Box) InputHandler(event *tcell.EventKey) Command {
	return nil
}

// MouseHandler requests focus when the box is pressed.
func (b *Box) MouseHandler(action MouseAction, event *tcell.EventMouse) (Primitive, Command) {
	if action == MouseLeftDown && b.InRect(event.Position()) {
		return nil, SetFocusCommand{Target: b}
	}
	return nil, nil
}

// InRect reports whether (x, y) lies within the box.
func (b *Box) InRect(x, y int) bool {
	rectX, rectY, width, height := b.GetRect()
	return x >= rectX && x < rectX+width && y >= rectY && y < rectY+height
}

// InInnerRect reports whether (x, y) lies within the inner rectangle.
func (b *Box) InInnerRect(x, y int) bool {
	rectX, rectY, width, height := b.GetInnerRect()
	return x >= rectX && x < rectX+width && y >= rectY && y < rectY+height
}

// SetBackgroundColor sets the color the box is cleared with.
func (b *Box) SetBackgroundColor(color tcell.Color) *Box {
	b.backgroundColor = color
	b.borderStyle = b.borderStyle.Background(color)
	return b
}

// SetDontClear keeps the box from clearing its background while drawing.
func (b *Box) SetDontClear(dontClear bool) *Box {
	b.dontClear = dontClear
	return b
}

// GetBorders returns the drawn borders.
func (b *Box) GetBorders() Borders {
	return b.borders
}

// SetBorders sets which borders to draw.
func (b *Box) SetBorders(flag Borders) *Box {
	if b.borders != flag {
		b.borders = flag
		b.innerX = -1
	}
	return b
}

// SetBorderSet sets the glyphs used to draw the borders.
func (b *Box) SetBorderSet(borderSet BorderSet) *Box {
	b.borderSet = borderSet
	return b
}

// GetTitle returns the title.
func (b *Box) GetTitle() string {
	return b.title
}

// SetTitle sets the title drawn centered on the top edge.
func (b *Box) SetTitle(title string) *Box {
	if b.title != title {
		b.title = title
		b.innerX = -1
	}
	return b
}

// GetFooter returns the footer.
func (b *Box) GetFooter() string {
	return b.footer
}

// SetFooter sets the text drawn left-aligned on the bottom edge.
func (b *Box) SetFooter(footer string) *Box {
	if b.footer != footer {
		b.footer = footer
		b.innerX = -1
	}
	return b
}

// Draw draws the box.
func (b *Box) Draw(screen tcell.Screen) {
	b.DrawFrame(screen)
}

// DrawFrame clears the box, draws its border, title and footer, and caches
// the inner rectangle. Primitives embedding a Box call it before drawing
// their content.
func (b *Box) DrawFrame(screen tcell.Screen) {
	if b.width <= 0 || b.height <= 0 {
		return
	}

	if !b.dontClear {
		fillRect(screen, b.x, b.y, b.width, b.height, tcell.StyleDefault.Background(b.backgroundColor))
	}
	if b.borders != BordersNone && b.width >= 2 && b.height >= 2 {
		b.drawBorders(screen)
	}
	if b.title != "" && b.width >= 4 {
		b.drawLabel(screen, b.title, b.y, AlignmentCenter, b.titleStyle)
	}
	if b.footer != "" && b.width >= 4 {
		b.drawLabel(screen, b.footer, b.y+b.height-1, AlignmentLeft, b.footerStyle)
	}

	b.innerX = -1
	b.innerX, b.innerY, b.innerWidth, b.innerHeight = b.GetInnerRect()
}

func (b *Box) drawBorders(screen tcell.Screen) {
	left, right := b.x, b.x+b.width-1
	top, bottom := b.y, b.y+b.height-1
	set, style := b.borderSet, b.borderStyle

	for x := left + 1; x < right; x++ {
		if b.borders.Has(BordersTop) {
			screen.Put(x, top, set.Top, style)
		}
		if b.borders.Has(BordersBottom) {
			screen.Put(x, bottom, set.Bottom, style)
		}
	}
	for y := top + 1; y < bottom; y++ {
		if b.borders.Has(BordersLeft) {
			screen.Put(left, y, set.Left, style)
		}
		if b.borders.Has(BordersRight) {
			screen.Put(right, y, set.Right, style)
		}
	}

	corners := []struct {
		sides Borders
		x, y  int
		glyph string
	}{
		{BordersTop | BordersLeft, left, top, set.TopLeft},
		{BordersTop | BordersRight, right, top, set.TopRight},
		{BordersBottom | BordersLeft, left, bottom, set.BottomLeft},
		{BordersBottom | BordersRight, right, bottom, set.BottomRight},
	}
	for _, c := range corners {
		if b.borders.Has(c.sides) {
			screen.Put(c.x, c.y, c.glyph, style)
		}
	}
}

// drawLabel prints a title or footer on row y between the corners, marking
// truncation with an ellipsis.
func (b *Box) drawLabel(screen tcell.Screen, text string, y int, alignment Alignment, style tcell.Style) {
	start, end, _ := PrintWithStyle(screen, text, b.x+1, y, b.width-2, alignment, style, true)
	printed := end - start
	if len(text) <= printed || printed <= 0 {
		return
	}
	_, existing, _ := screen.Get(b.x+b.width-2, y)
	Print(screen, SemigraphicsHorizontalEllipsis, b.x+b.width-2, y, 1, AlignmentLeft, existing.GetForeground())
}

// Focus is called when the box receives focus.
func (b *Box) Focus(delegate func(p Primitive)) {
	b.hasFocus = true
}

// Blur is called when the box loses focus.
func (b *Box) Blur() {
	b.hasFocus = false
}

// HasFocus reports whether the box has focus.
func (b *Box) HasFocus() bool {
	return b.hasFocus
}
