package main

import (
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Run a single check cycle and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := setupLogger()

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		m, cleanup, err := buildMonitor(cfg, logger)
		if err != nil {
			return err
		}
		defer cleanup()

		_, err = m.RunOnce(cmd.Context())
		return err
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
