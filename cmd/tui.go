package cmd

import (
	"github.com/cristianoliveira/barscan/internal/tui/state"
	"github.com/spf13/cobra"
)

type tuiClient interface {
	CreateModel() (*state.Model, error)
	RunProgram(model *state.Model) error
}

// NewTUICmd creates the tui command. newClient is called at run time, after
// configuration and logging are set up.
func NewTUICmd(newClient func() tuiClient) *cobra.Command {
	if newClient == nil {
		panic("NewTUICmd: client factory cannot be nil")
	}
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive scanner",
		Long: `Open the interactive scanner with the Home, Scanner and History screens.

The source only runs while the Scanner screen is focused. Scanned values are
kept in memory for this session and can be copied or deleted from History.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client := newClient()
			model, err := client.CreateModel()
			if err != nil {
				return err
			}
			return client.RunProgram(model)
		},
	}
}
