package main

import (
	"fmt"

	"jobwatch-engine/internal/config"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a sample config file to get started",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := resolveConfigPath()
		if err := config.WriteSample(path); err != nil {
			return err
		}
		fmt.Printf("Sample config written to %s. Edit it with your sources and Telegram settings.\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
