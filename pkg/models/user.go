package models

import "time"

// User is an account in the application.
type User struct {
	ID       int64  `json:"id" db:"id"`
	Username string `json:"username" db:"username"`
	Email    string `json:"email" db:"email"`
	APIToken string `json:"-" db:"api_token"`

	// Telegram review reminders. TelegramChatID is zero when the user has
	// not linked a chat.
	TelegramChatID      int64 `json:"telegram_chat_id" db:"telegram_chat_id"`
	NotificationEnabled bool  `json:"notification_enabled" db:"notification_enabled"`
	NotificationHour    int   `json:"notification_hour" db:"notification_hour"` // 0-23, UTC

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
