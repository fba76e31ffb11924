package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"dndbridge/internal/config"
	"dndbridge/internal/dragdrop"
	"dndbridge/internal/errors"
	"dndbridge/internal/gui"
	"dndbridge/internal/log"
	"dndbridge/internal/sink"
	"dndbridge/internal/trace"
	"dndbridge/internal/tui"
	"dndbridge/internal/watch"

	"github.com/spf13/cobra"
)

// controllerFlags override the controller and sink sections of the config
type controllerFlags struct {
	shape  string
	hover  bool
	accept []string
}

func (f *controllerFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.shape, "shape", "s", "", "event shape: drag-drop or file-drop")
	cmd.Flags().BoolVar(&f.hover, "hover", false, "emit hover events on motion")
	cmd.Flags().StringSliceVarP(&f.accept, "accept", "a", nil, "glob patterns the application accepts")
}

// apply returns a copy of cfg with the flags that were set.
func (f *controllerFlags) apply(cmd *cobra.Command, cfg *config.Config) (*config.Config, error) {
	c := *cfg
	if cmd.Flags().Changed("shape") {
		c.Controller.Shape = f.shape
	}
	if cmd.Flags().Changed("hover") {
		c.Controller.Hover = f.hover
	}
	if cmd.Flags().Changed("accept") {
		c.Sink.Accept = f.accept
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// newPlayer loads the trace at path and prepares it for replay. The
// application behind the sink accepts whatever passes the accept filter.
func newPlayer(cfg *config.Config, path string) (*trace.Player, error) {
	t, err := trace.Load(path)
	if err != nil {
		return nil, err
	}
	opts, err := dragdrop.OptionsFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	next, err := sink.FromConfig(cfg, log.Default(), func(dragdrop.Event) bool { return true })
	if err != nil {
		return nil, err
	}
	return trace.NewPlayer(t, next, opts...)
}

func decodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decode URI...",
		Short: "Decode file:// URIs into local paths",
		Long: `Decode file:// URIs the way dropped payloads are decoded: the scheme is
stripped, percent escapes are resolved and invalid UTF-8 is replaced.`,
		Args: cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			for _, p := range dragdrop.PathsFromURIs(args) {
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
		},
	}
}

func replayCmd(a *app) *cobra.Command {
	var flags controllerFlags

	cmd := &cobra.Command{
		Use:   "replay TRACE",
		Short: "Replay a recorded signal trace",
		Long:  `Feed every signal of a trace file through a fresh controller and print the events and replies it produced.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.apply(cmd, a.cfg)
			if err != nil {
				return err
			}
			return replay(cmd.OutOrStdout(), cfg, args[0])
		},
	}
	flags.register(cmd)
	return cmd
}

func replay(w io.Writer, cfg *config.Config, path string) error {
	p, err := newPlayer(cfg, path)
	if err != nil {
		return err
	}
	printResults(w, p.Trace(), cfg.Controller.Shape, p.Run())
	return nil
}

func watchCmd(a *app) *cobra.Command {
	var flags controllerFlags

	cmd := &cobra.Command{
		Use:   "watch TRACE",
		Short: "Replay a trace every time it changes",
		Long:  `Replay a trace file once and again whenever it is saved. Press Ctrl+C to stop.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.apply(cmd, a.cfg)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			out := cmd.OutOrStdout()
			err = watch.Run(ctx, args[0], func(path string) {
				if err := replay(out, cfg, path); err != nil {
					log.LogError(err, "Replay failed")
					fmt.Fprintln(out, errorStyle.Render(err.Error()))
				}
			})
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}
	flags.register(cmd)
	return cmd
}

func tuiCmd(a *app) *cobra.Command {
	var flags controllerFlags

	cmd := &cobra.Command{
		Use:   "tui TRACE",
		Short: "Step through a trace interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.apply(cmd, a.cfg)
			if err != nil {
				return err
			}
			// Event logging would draw over the terminal UI
			cfg.Sink.LogEvents = false
			p, err := newPlayer(cfg, args[0])
			if err != nil {
				return err
			}
			return tui.Run(p)
		},
	}
	flags.register(cmd)
	return cmd
}

func guiCmd(a *app) *cobra.Command {
	var (
		flags  controllerFlags
		record string
	)

	cmd := &cobra.Command{
		Use:   "gui",
		Short: "Open a drop target window",
		Long: `Open a window that accepts dropped files and shows the events the
controller delivers. With --record the signals are saved as a trace when
the window closes.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !gui.IsGUIAvailable() {
				return fmt.Errorf("GUI not available in this build")
			}
			cfg, err := flags.apply(cmd, a.cfg)
			if err != nil {
				return err
			}
			return gui.Run(cfg, record)
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVarP(&record, "record", "r", "", "save the session as a trace file")
	return cmd
}

func configCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or create the configuration file",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := configYAML(a.cfg)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	})

	var force bool
	initCmd := &cobra.Command{
		Use:   "init [PATH]",
		Short: "Write a default configuration file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.cfgFile
			if len(args) > 0 {
				path = args[0]
			}
			if path == "" {
				var err error
				if path, err = config.DefaultPath(); err != nil {
					return err
				}
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists, use --force to overwrite", path)
			}
			if err := config.SaveConfig(config.New(), path); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render("Wrote "+path))
			return nil
		},
	}
	initCmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")
	cmd.AddCommand(initCmd)

	return cmd
}
