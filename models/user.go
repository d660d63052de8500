package models

import "time"

// User отражает запись таблицы users — одного пользователя Telegram-бота.
// telegram_id уникален: на один внешний идентификатор приходится не более одной записи.
// Счётчики total_tokens и dialogs_count только растут, запись никогда не удаляется.
type User struct {
	ID           int       `json:"id"`
	TelegramID   int64     `json:"telegram_id"`
	Name         string    `json:"name"`
	Email        *string   `json:"email"`
	Premium      bool      `json:"premium"`
	TotalTokens  int       `json:"total_tokens"`
	DialogsCount int       `json:"dialogs_count"`
	LastActive   time.Time `json:"last_active"`
}
