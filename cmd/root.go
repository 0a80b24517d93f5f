/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/cristianoliveira/barscan/internal/config"
	clierrors "github.com/cristianoliveira/barscan/internal/errors"
	"github.com/cristianoliveira/barscan/internal/logging"
	"github.com/cristianoliveira/barscan/internal/tui/app"
	"github.com/cristianoliveira/barscan/internal/version"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// flagKeys maps persistent flags to the configuration keys they override.
var flagKeys = map[string]string{
	"source":            "source",
	"device":            "device_path",
	"frames-dir":        "frames_dir",
	"capture-command":   "capture_command",
	"capture-interval":  "capture_interval",
	"history-backend":   "history_backend",
	"clipboard-command": "clipboard_command",
	"theme":             "theme",
	"debug":             "debug",
	"quiet":             "quiet",
}

// RootCmd is the barscan command tree.
var RootCmd = NewRootCmd()

// NewRootCmd builds the command tree. Without a subcommand it runs the TUI.
func NewRootCmd() *cobra.Command {
	tuiCmd := NewTUICmd(newTUIClient)

	root := &cobra.Command{
		Use:   "barscan",
		Short: "Scan retail barcodes from the terminal.",
		Long: `Scan EAN-13, EAN-8, UPC-A and UPC-E barcodes from a keyboard-wedge
scanner, a device, a directory of camera frames or a capture command.

Run without a command to open the interactive scanner.`,
		Version:           version.String(),
		SilenceUsage:      true,
		SilenceErrors:     true,
		Args:              cobra.NoArgs,
		PersistentPreRunE: setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logging.ShutdownGlobal()
		},
		RunE: tuiCmd.RunE,
	}
	root.CompletionOptions.HiddenDefaultCmd = true

	flags := root.PersistentFlags()
	flags.String("source", "", "barcode source: wedge, stdin, device, dir or command")
	flags.String("device", "", "scanner device path for the device source")
	flags.String("frames-dir", "", "directory watched by the dir source")
	flags.String("capture-command", "", "frame capture command, {output} is the frame path")
	flags.String("capture-interval", "", "delay between captures, e.g. 500ms")
	flags.String("history-backend", "", "history store: memory or sqlite")
	flags.String("clipboard-command", "", "extra copy command, e.g. wl-copy")
	flags.String("theme", "", "color theme: dark or light")
	flags.Bool("debug", false, "enable debug output")
	flags.Bool("quiet", false, "only print errors")

	root.AddCommand(
		tuiCmd,
		NewScanCmd(),
		NewDecodeCmd(),
		NewVersionCmd(versionClient{}),
		NewConfigCmd(),
	)
	return root
}

// setup loads configuration, applies flag overrides and starts logging.
func setup(cmd *cobra.Command, args []string) error {
	config.Load()
	cmd.Flags().Visit(func(f *pflag.Flag) {
		if key, ok := flagKeys[f.Name]; ok {
			config.Set(key, f.Value.String())
		}
	})
	if err := logging.InitGlobal(); err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	logging.GetGlobal().Debug("command start", "command", cmd.Name())
	return nil
}

func newTUIClient() tuiClient {
	return app.NewDefaultClient(nil, nil, logging.GetGlobal())
}

// Execute runs the root command and reports a failure on the console.
func Execute() error {
	return execute(RootCmd, clierrors.NewDefaultCLIHandler())
}

func execute(root *cobra.Command, handler clierrors.ErrorHandler) error {
	c, err := root.ExecuteC()
	clierrors.Report(handler, c.CommandPath(), err)
	return err
}
