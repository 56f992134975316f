package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ayn2op/vlist"
	"github.com/ayn2op/vlist/internal/config"
)

type renderOptions struct {
	offset int
	width  int
	height int
}

func newRenderCmd(opts *options) *cobra.Command {
	ro := &renderOptions{}
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Print a single frame of the list",
		Long:  "render draws the list off-screen, scrolled to --offset, and prints the frame as text.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			lines, err := opts.loadRows()
			if err != nil {
				return err
			}
			canvas, err := renderFrame(opts.cfg, newEntries(lines), *ro)
			if err != nil {
				return err
			}
			opts.logger.Debug().Int("offset", ro.offset).Msg("rendered frame")
			_, err = io.WriteString(cmd.OutOrStdout(), canvas.String()+"\n")
			return err
		},
	}

	cmd.Flags().IntVar(&ro.offset, "offset", 0, "scroll offset in lines")
	cmd.Flags().IntVar(&ro.width, "width", 60, "frame width in columns")
	cmd.Flags().IntVar(&ro.height, "height", 20, "frame height in lines")
	return cmd
}

// renderFrame draws one frame of the list onto a canvas.
func renderFrame(cfg *config.Config, rows []entry, ro renderOptions) (*vlist.Canvas, error) {
	if ro.width < 1 || ro.height < 1 {
		return nil, fmt.Errorf("frame size must be positive, got %dx%d", ro.width, ro.height)
	}

	model := vlist.NewSliceModel(rows...)
	window := vlist.NewVirtualWindow[entry]().
		SetRowRenderer(vlist.TextRenderer(formatEntry)).
		SetScrollBarVisible(cfg.ScrollBar).
		SetModel(model)
	defer window.Destroy()
	applyBorder(window.Box, cfg)
	applyScrollBar(window.ScrollBar(), cfg)

	window.SetRect(0, 0, ro.width, ro.height)
	if err := window.SetRowHeight(cfg.RowHeight); err != nil {
		return nil, err
	}
	if err := window.ScrollTo(ro.offset); err != nil {
		return nil, err
	}
	if showFooter(cfg) {
		window.SetFooter(rangeFooter(window))
	}

	canvas := vlist.NewCanvas(ro.width, ro.height)
	window.Draw(canvas)
	return canvas, nil
}
