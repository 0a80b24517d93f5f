package cmd

import (
	"fmt"

	"github.com/cristianoliveira/barscan/internal/version"
	"github.com/spf13/cobra"
)

type versionProvider interface {
	Version() string
}

type versionClient struct{}

func (versionClient) Version() string { return version.String() }

// NewVersionCmd creates the version command with explicit dependencies.
func NewVersionCmd(client versionProvider) *cobra.Command {
	if client == nil {
		panic("NewVersionCmd: client dependency cannot be nil")
	}
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "barscan version %s\n", client.Version())
			return nil
		},
	}
}
