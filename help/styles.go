package help

import (
	"github.com/ayn2op/vlist"
	"github.com/gdamore/tcell/v3"
)

// Styles holds the styles of every help segment.
type Styles struct {
	ShortKeyStyle       tcell.Style
	ShortDescStyle      tcell.Style
	ShortSeparatorStyle tcell.Style

	FullKeyStyle       tcell.Style
	FullDescStyle      tcell.Style
	FullSeparatorStyle tcell.Style

	EllipsisStyle tcell.Style
}

// DefaultStyles derives the help styles from the vlist theme: keys in the
// secondary text color, descriptions in the primary one.
func DefaultStyles() Styles {
	key := tcell.StyleDefault.Foreground(vlist.Styles.SecondaryTextColor)
	desc := tcell.StyleDefault.Foreground(vlist.Styles.PrimaryTextColor)
	dim := tcell.StyleDefault.Dim(true)
	return Styles{
		ShortKeyStyle:       key,
		ShortDescStyle:      desc,
		ShortSeparatorStyle: dim,
		FullKeyStyle:        key,
		FullDescStyle:       desc,
		FullSeparatorStyle:  dim,
		EllipsisStyle:       dim,
	}
}
