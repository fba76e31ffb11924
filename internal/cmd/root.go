// Package cmd implements the dndbridge command line.
package cmd

import (
	"os"

	"dndbridge/internal/config"
	"dndbridge/internal/log"

	"github.com/spf13/cobra"
)

// app holds what every subcommand shares
type app struct {
	cfgFile string
	debug   bool
	cfg     *config.Config
}

// NewRootCmd builds the command tree.
func NewRootCmd(version string) *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:     "dndbridge",
		Short:   "Translate web view drag signals into drop events",
		Version: version,
		Long: `dndbridge turns the raw drag signals a GTK web view emits into a
clean Enter, Over, Drop and Leave event stream.

Recorded signal traces can be replayed, stepped through interactively,
or re-run whenever the trace file changes. The gui command opens a drop
target window that feeds real drops through the same controller.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.loadConfig()
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is $HOME/.config/dndbridge/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&a.debug, "debug", false, "log raw signals and transitions")

	rootCmd.AddCommand(decodeCmd())
	rootCmd.AddCommand(replayCmd(a))
	rootCmd.AddCommand(watchCmd(a))
	rootCmd.AddCommand(tuiCmd(a))
	rootCmd.AddCommand(guiCmd(a))
	rootCmd.AddCommand(configCmd(a))

	return rootCmd
}

// Execute runs the command line
func Execute(version string) error {
	return NewRootCmd(version).Execute()
}

// loadConfig reads the configuration and sets up logging. A broken default
// config falls back to defaults; an explicit --config must load.
func (a *app) loadConfig() error {
	var err error
	if a.cfgFile != "" {
		a.cfg, err = config.LoadConfigFile(a.cfgFile)
		if err != nil {
			return err
		}
	} else {
		a.cfg, err = config.LoadConfig()
		if err != nil {
			log.Warnf("Using default settings: %v", err)
			a.cfg = config.New()
		}
	}

	opts := []log.Option{log.WithOutput(os.Stderr)}
	if a.cfg.Log.JSON {
		opts = append(opts, log.WithJSON())
	}
	if a.cfg.Log.File != "" {
		opts = append(opts, log.WithFile(a.cfg.Log.File))
	}
	log.Configure(opts...)
	log.SetDebug(a.debug || a.cfg.Log.Debug)
	return nil
}
