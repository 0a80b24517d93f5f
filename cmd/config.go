package cmd

import (
	"path/filepath"

	"github.com/cristianoliveira/barscan/internal/colors"
	"github.com/cristianoliveira/barscan/internal/config"
	"github.com/spf13/cobra"
)

// NewConfigCmd creates the config command group.
func NewConfigCmd() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
		Args:  cobra.NoArgs,
	}

	var path string
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a sample config.toml with the default values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			target := path
			if target == "" {
				target = filepath.Join(config.Get("config_dir", ""), "config"+config.FileExtTOML)
			}
			if err := config.WriteSample(target); err != nil {
				return err
			}
			colors.Success("wrote " + target)
			return nil
		},
	}
	initCmd.Flags().StringVar(&path, "path", "", "destination file (default {config_dir}/config.toml)")
	configCmd.AddCommand(initCmd)
	return configCmd
}
