package secrets

import (
	"strings"

	"jobwatch-engine/internal/config"

	"github.com/zalando/go-keyring"
)

// KeyringService groups this app's secrets in the OS keychain.
const KeyringService = "jobwatch"

// BotToken resolves the Telegram bot token: OS keyring first, then whatever
// the config carries (which already includes env overrides). Empty means
// Telegram is unconfigured and alerts fall back to the log notifier.
func BotToken(cfg config.Config) string {
	if acct := strings.TrimSpace(cfg.Telegram.KeyringAccount); acct != "" {
		if tok, err := keyring.Get(KeyringService, acct); err == nil && strings.TrimSpace(tok) != "" {
			return tok
		}
	}
	return strings.TrimSpace(cfg.Telegram.BotToken)
}

// SetBotToken stores the token in the OS keychain under the given account.
func SetBotToken(account, token string) error {
	return keyring.Set(KeyringService, account, token)
}

// DeleteBotToken removes the stored token.
func DeleteBotToken(account string) error {
	return keyring.Delete(KeyringService, account)
}
