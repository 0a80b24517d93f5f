package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cristianoliveira/barscan/internal/barcode"
	"github.com/cristianoliveira/barscan/internal/camera"
	"github.com/cristianoliveira/barscan/internal/colors"
	"github.com/cristianoliveira/barscan/internal/config"
	"github.com/cristianoliveira/barscan/internal/dedup"
	"github.com/cristianoliveira/barscan/internal/feedback"
	"github.com/cristianoliveira/barscan/internal/formatter"
	"github.com/cristianoliveira/barscan/internal/hooks"
	"github.com/cristianoliveira/barscan/internal/lifecycle"
	"github.com/cristianoliveira/barscan/internal/logging"
	"github.com/spf13/cobra"
)

type scanOptions struct {
	json   bool
	count  int
	format string
	hooks  *hooks.Runner
}

type scanLine struct {
	Text      string    `json:"text"`
	Symbology string    `json:"symbology,omitempty"`
	Source    string    `json:"source"`
	At        time.Time `json:"at"`
}

// NewScanCmd creates the headless scan command.
func NewScanCmd() *cobra.Command {
	opts := &scanOptions{}
	scanCmd := &cobra.Command{
		Use:   "scan",
		Short: "Print scanned barcodes until interrupted",
		Long: `Run the configured source and print every accepted barcode, one per
line. A value identical to the previous one is skipped.

The wedge source reads stdin in this mode.

EXAMPLES:
    # Read a serial scanner
    barscan scan --source device --device /dev/ttyACM0

    # Decode frames written by another program, as JSON lines
    barscan scan --source dir --frames-dir /tmp/frames --json

    # Tab separated output
    barscan scan --format tsv

Executable scripts in {hooks_dir}/on-scan/ run after every accepted value.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			settings := camera.SettingsFromConfig()
			if settings.Kind == config.SourceWedge {
				settings.Kind = config.SourceStdin
			}
			settings.Stdin = cmd.InOrStdin()
			settings.Logger = logging.With("component", "camera")
			capability, err := camera.New(settings)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("format") {
				opts.format = config.Get("output_format", "plain")
			}
			hookSettings := hooks.SettingsFromConfig()
			hookSettings.Logger = logging.GetGlobal()
			opts.hooks = hooks.New(hookSettings)
			defer opts.hooks.Wait()
			return runScan(ctx, capability, feedback.FromConfig(cmd.ErrOrStderr()), cmd.OutOrStdout(), opts)
		},
	}
	scanCmd.Flags().BoolVar(&opts.json, "json", false, "print JSON lines")
	scanCmd.Flags().IntVarP(&opts.count, "count", "n", 0, "stop after this many accepted scans")
	scanCmd.Flags().StringVarP(&opts.format, "format", "f", "plain",
		"output preset ("+formatter.PresetNames(formatter.NewPresetRegistry())+") or template like '{{text}} {{symbology}}'")
	return scanCmd
}

// runScan holds focus on the source for its whole duration and prints each
// value the deduplicator accepts.
func runScan(ctx context.Context, capability camera.Capability, notifier feedback.Notifier, out io.Writer, opts *scanOptions) error {
	format, err := formatter.New(opts.format)
	if err != nil {
		return err
	}
	if p := capability.Permission(ctx); !p.Granted() {
		if p = capability.RequestPermission(ctx); !p.Granted() {
			return fmt.Errorf("%w: %s source is %s", camera.ErrPermissionDenied, capability.Name(), p)
		}
	}

	logger := logging.With("component", "scan")
	gate := lifecycle.New(lifecycle.FromCapability(capability), lifecycle.WithLogger(logger))
	if err := gate.Focus(ctx); err != nil {
		return err
	}
	defer gate.Blur()
	stopped := gate.Stopped()

	var d dedup.Deduplicator
	accepted := 0
	handle := func(ev lifecycle.Event) (bool, error) {
		if !gate.Admit(ev) || !d.Accept(ev.Text).Changed {
			return false, nil
		}
		notifier.Success()
		accepted++
		if err := printScan(out, format, ev, accepted, opts.json); err != nil {
			return true, err
		}
		logger.Debug("scan accepted", "text", ev.Text)

		env := hooks.ScanEnv(ev.Text, symbologyLabel(ev.Symbology), ev.Source, 0)
		if err := opts.hooks.Run(ctx, hooks.PointScan, env); err != nil {
			if opts.hooks.Aborts() {
				return true, err
			}
			colors.Warning(err.Error())
		}
		return opts.count > 0 && accepted >= opts.count, nil
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-gate.Events():
			if done, err := handle(ev); done || err != nil {
				return err
			}
		case <-stopped:
			for {
				select {
				case ev := <-gate.Events():
					if done, err := handle(ev); done || err != nil {
						return err
					}
				default:
					return gate.Err()
				}
			}
		}
	}
}

func printScan(out io.Writer, format *formatter.Formatter, ev lifecycle.Event, count int, asJSON bool) error {
	if asJSON {
		line := scanLine{Text: ev.Text, Symbology: symbologyLabel(ev.Symbology), Source: ev.Source, At: ev.At}
		return json.NewEncoder(out).Encode(line)
	}
	text, err := format.Format(formatter.VariableContext{
		Text:      ev.Text,
		Symbology: ev.Symbology,
		Source:    ev.Source,
		Time:      ev.At,
		Count:     count,
	})
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, text)
	return err
}

func symbologyLabel(s barcode.Symbology) string {
	if s == barcode.SymbologyUnknown {
		return ""
	}
	return s.String()
}
