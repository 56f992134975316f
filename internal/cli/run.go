package cli

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/ayn2op/vlist"
)

// errNoTerminal is returned by run when stdout is not a terminal.
var errNoTerminal = errors.New("run needs a terminal, use render for non-interactive output")

func newRunCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Browse the list interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !isTerminal(os.Stdout) {
				return errNoTerminal
			}

			lines, err := opts.loadRows()
			if err != nil {
				return err
			}
			view, err := newDemoView(opts.cfg, newEntries(lines), opts.logger)
			if err != nil {
				return err
			}
			defer view.Destroy()

			app := vlist.NewApplication().
				SetLogger(opts.logger).
				EnableMouse(true).
				SetRoot(view)
			opts.logger.Info().Int("rows", len(lines)).Msg("starting")
			return app.Run()
		},
	}
}
