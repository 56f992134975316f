// Package cli implements the vlistdemo command line.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ayn2op/vlist/internal/config"
)

// options holds the flags and state shared by all subcommands.
type options struct {
	configPath string
	debug      bool
	rows       int
	rowHeight  int
	file       string

	lookupEnv func(string) (string, bool)

	cfg    *config.Config
	logger zerolog.Logger
	closer io.Closer
}

// NewRootCmd creates the root command of the vlistdemo binary.
func NewRootCmd(version string) *cobra.Command {
	return NewRootCmdWithEnv(version, os.LookupEnv)
}

// NewRootCmdWithEnv creates the root command with an explicit environment
// lookup for tests.
func NewRootCmdWithEnv(version string, lookupEnv func(string) (string, bool)) *cobra.Command {
	opts := &options{lookupEnv: lookupEnv, logger: zerolog.Nop()}

	cmd := &cobra.Command{
		Use:           "vlistdemo",
		Short:         "Scroll through a very long list in the terminal",
		Long:          "vlistdemo shows a virtualized list that only builds the rows on screen.",
		Version:       version,
		Example:       rootCmdExample,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.setup(cmd)
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			if opts.closer != nil {
				return opts.closer.Close()
			}
			return nil
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "path to a YAML config file")
	flags.BoolVar(&opts.debug, "debug", false, "enable debug logging")
	flags.IntVar(&opts.rows, "rows", 0, "number of generated rows (overrides config)")
	flags.IntVar(&opts.rowHeight, "row-height", 0, "height of every row in lines (overrides config)")
	flags.StringVar(&opts.file, "file", "", "read rows from a file, one per line")

	cmd.AddCommand(newRunCmd(opts), newRenderCmd(opts))
	return cmd
}

const rootCmdExample = `  # Browse ten thousand generated rows
  vlistdemo run

  # Browse the lines of a file with two lines per row
  vlistdemo run --file /etc/services --row-height 2

  # Print one frame scrolled to line 500
  vlistdemo render --offset 500 --width 60 --height 20`

// setup loads the configuration, applies flag overrides and builds the
// logger. Interactive sessions only log to a file since the terminal belongs
// to the screen.
func (o *options) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(o.configPath, o.lookupEnv)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("rows") {
		cfg.Rows = o.rows
	}
	if flags.Changed("row-height") {
		cfg.RowHeight = o.rowHeight
	}
	if o.debug {
		cfg.Logging.Level = zerolog.DebugLevel.String()
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	var fallback io.Writer
	if cmd.Name() != "run" {
		fallback = cmd.ErrOrStderr()
	}
	logger, closer, err := cfg.Logging.NewLogger(fallback)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}

	o.cfg, o.logger, o.closer = cfg, logger, closer
	o.logger.Debug().
		Str("command", cmd.Name()).
		Int("rows", cfg.Rows).
		Int("row_height", cfg.RowHeight).
		Str("file", o.file).
		Msg("configured")
	return nil
}

// loadRows returns the lines of the input file, or generated rows when no file
// is set.
func (o *options) loadRows() ([]string, error) {
	if o.file == "" {
		rows := make([]string, o.cfg.Rows)
		for i := range rows {
			rows[i] = fmt.Sprintf("Row %d", i)
		}
		return rows, nil
	}

	f, err := os.Open(o.file)
	if err != nil {
		return nil, fmt.Errorf("open rows: %w", err)
	}
	defer f.Close()

	var rows []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		rows = append(rows, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	return rows, nil
}

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
