package notify

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// TelegramNotifier sends review reminders to a user's linked Telegram chat
type TelegramNotifier struct {
	api *tgbotapi.BotAPI
}

// NewTelegramNotifier creates a notifier from a bot token
func NewTelegramNotifier(token string) (*TelegramNotifier, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Telegram bot: %v", err)
	}
	return &TelegramNotifier{api: api}, nil
}

// SendReminder tells the user how many words are waiting for review
func (n *TelegramNotifier) SendReminder(chatID int64, dueCount int) error {
	msg := tgbotapi.NewMessage(chatID, fmt.Sprintf(
		"You have %d %s ready for review. Open the app to keep your streak going!",
		dueCount, pluralWords(dueCount),
	))
	if _, err := n.api.Send(msg); err != nil {
		return fmt.Errorf("failed to send reminder: %v", err)
	}
	return nil
}

func pluralWords(n int) string {
	if n == 1 {
		return "word"
	}
	return "words"
}
