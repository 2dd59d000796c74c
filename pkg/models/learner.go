package models

import "time"

// Learner is a user who can receive review reminders
type Learner struct {
	UserID           string    `json:"user_id" db:"user_id"`
	TelegramChatID   int64     `json:"telegram_chat_id" db:"telegram_chat_id"`
	RemindersEnabled bool      `json:"reminders_enabled" db:"reminders_enabled"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time `json:"updated_at" db:"updated_at"`
}
