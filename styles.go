package vlist

import (
	"github.com/gdamore/tcell/v3"
	"github.com/gdamore/tcell/v3/color"
)

// Theme defines the colors used when primitives are initialized.
type Theme struct {
	PrimitiveBackgroundColor tcell.Color // Main background color for primitives.
	ContrastBackgroundColor  tcell.Color // Background color for contrasting elements.
	BorderColor              tcell.Color // Box borders.
	TitleColor               tcell.Color // Box titles.
	PrimaryTextColor         tcell.Color // Primary text.
	SecondaryTextColor       tcell.Color // Secondary text (e.g. labels).
	TertiaryTextColor        tcell.Color // Tertiary text (e.g. notes).

	RowStyle         tcell.Style // Unselected rows.
	SelectedRowStyle tcell.Style // Selected rows.
	ScrollThumbStyle tcell.Style
	ScrollTrackStyle tcell.Style
}

// Styles defines the theme for applications. The default is for a black
// background and some basic colors: black, white, yellow, green and blue.
var Styles = Theme{
	PrimitiveBackgroundColor: color.Black,
	ContrastBackgroundColor:  color.Blue,
	BorderColor:              color.White,
	TitleColor:               color.White,
	PrimaryTextColor:         color.White,
	SecondaryTextColor:       color.Yellow,
	TertiaryTextColor:        color.Green,

	RowStyle:         tcell.StyleDefault.Foreground(color.White).Background(color.Black),
	SelectedRowStyle: tcell.StyleDefault.Foreground(color.Black).Background(color.Yellow),
	ScrollThumbStyle: tcell.StyleDefault.Foreground(color.White),
	ScrollTrackStyle: tcell.StyleDefault.Dim(true),
}
