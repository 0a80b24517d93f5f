package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/cristianoliveira/barscan/internal/barcode"
	"github.com/cristianoliveira/barscan/internal/colors"
	"github.com/cristianoliveira/barscan/internal/formatter"
	"github.com/spf13/cobra"
)

type decodeLine struct {
	File      string `json:"file"`
	Text      string `json:"text,omitempty"`
	Symbology string `json:"symbology,omitempty"`
	Error     string `json:"error,omitempty"`
}

// NewDecodeCmd creates the decode command.
func NewDecodeCmd() *cobra.Command {
	var (
		asJSON bool
		format string
	)
	decodeCmd := &cobra.Command{
		Use:   "decode FILE...",
		Short: "Decode barcodes from image files",
		Long: `Decode one barcode from each PNG or JPEG file. Use - to read an image
from stdin.

Files without a readable barcode are reported and make the command fail
after every file was tried.

With --format each value is rendered through a preset or template; the
file name is available as {{source}}.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var f *formatter.Formatter
			if format != "" {
				var err error
				if f, err = formatter.New(format); err != nil {
					return err
				}
			}
			return runDecode(barcode.NewDecoder(), args, cmd.InOrStdin(), cmd.OutOrStdout(), asJSON, f)
		},
	}
	decodeCmd.Flags().BoolVar(&asJSON, "json", false, "print JSON lines")
	decodeCmd.Flags().StringVarP(&format, "format", "f", "", "output preset or template, e.g. '{{source}}: {{text}}'")
	return decodeCmd
}

var errDecodeFailed = errors.New("some files could not be decoded")

// runDecode decodes every file. A nil format prints the bare value for a
// single file and "file: value (symbology)" otherwise.
func runDecode(d *barcode.Decoder, files []string, stdin io.Reader, out io.Writer, asJSON bool, format *formatter.Formatter) error {
	failed := 0
	enc := json.NewEncoder(out)
	for i, file := range files {
		var (
			res barcode.Result
			err error
		)
		if file == "-" {
			res, err = d.Decode(stdin)
		} else {
			res, err = d.DecodeFile(file)
		}

		if err != nil {
			failed++
			if asJSON {
				if encErr := enc.Encode(decodeLine{File: file, Error: err.Error()}); encErr != nil {
					return encErr
				}
			} else {
				colors.Error(fmt.Sprintf("%s: %v", file, err))
			}
			continue
		}

		if asJSON {
			if err := enc.Encode(decodeLine{File: file, Text: res.Text, Symbology: res.Symbology.String()}); err != nil {
				return err
			}
			continue
		}
		if format != nil {
			line, err := format.Format(formatter.VariableContext{
				Text:      res.Text,
				Symbology: res.Symbology,
				Source:    file,
				Count:     i + 1,
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(out, line)
		} else if len(files) == 1 {
			fmt.Fprintln(out, res.Text)
		} else {
			fmt.Fprintf(out, "%s: %s (%s)\n", file, res.Text, res.Symbology)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%w: %d of %d", errDecodeFailed, failed, len(files))
	}
	return nil
}
