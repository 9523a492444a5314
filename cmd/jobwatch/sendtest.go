package main

import (
	"errors"

	"jobwatch-engine/internal/notify"
	"jobwatch-engine/internal/secrets"

	"github.com/spf13/cobra"
)

var sendTestCmd = &cobra.Command{
	Use:   "send-test",
	Short: "Send a test Telegram message to verify the bot wiring",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		token := secrets.BotToken(cfg)
		if token == "" || cfg.Telegram.ChatID == 0 {
			return errors.New("telegram bot token and chat id must be configured")
		}

		tg, err := notify.NewTelegramNotifier(token, cfg.Telegram.ChatID)
		if err != nil {
			return err
		}
		return tg.SendTest(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(sendTestCmd)
}
