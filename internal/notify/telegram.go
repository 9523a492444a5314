package notify

import (
	"context"
	"fmt"
	"html"

	"jobwatch-engine/internal/domain"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

var _ Notifier = (*TelegramNotifier)(nil)

// TelegramNotifier sends one HTML-formatted message per new posting to a
// configured chat.
type TelegramNotifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

func NewTelegramNotifier(botToken string, chatID int64) (*TelegramNotifier, error) {
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, fmt.Errorf("init telegram bot: %w", err)
	}
	return &TelegramNotifier{bot: bot, chatID: chatID}, nil
}

func (t *TelegramNotifier) NotifyNewJob(ctx context.Context, rec domain.JobRecord) error {
	text := fmt.Sprintf(
		"🆕 <b>New Job Posted!</b>\n\n"+
			"🏢 <b>Company:</b> %s\n"+
			"💼 <b>Position:</b> %s",
		html.EscapeString(rec.SourceName),
		html.EscapeString(rec.Title),
	)
	if rec.Location != "" {
		text += fmt.Sprintf("\n📍 <b>Location:</b> %s", html.EscapeString(rec.Location))
	}
	if rec.URL != "" {
		text += fmt.Sprintf("\n🔗 <a href=%q>View Job</a>", rec.URL)
	}
	return t.send(ctx, text)
}

// SendTest delivers a throwaway message so deployments can verify the bot
// token and chat id before the first real alert.
func (t *TelegramNotifier) SendTest(ctx context.Context) error {
	return t.send(ctx, "✅ jobwatch is connected and will report new postings here.")
}

func (t *TelegramNotifier) send(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := tgbotapi.NewMessage(t.chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	if _, err := t.bot.Send(msg); err != nil {
		return fmt.Errorf("telegram send: %w", err)
	}
	return nil
}
