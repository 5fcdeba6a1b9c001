package cmd

import (
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/tidesh/tidesh/core/config"
)

// initCmd scaffolds a default configuration file.
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config.yaml",
	RunE: func(cmd *cobra.Command, args []string) error {
		return config.Initialize(afero.NewOsFs(), cfgPath)
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
