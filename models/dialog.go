package models

import "time"

// Статусы диалога, как их хранит бот.
const (
	DialogStatusCompleted = "Завершён"
	DialogStatusActive    = "Активный"
)

// Dialog отражает запись таблицы dialogs — один завершённый диалог с ботом.
// Запись создаётся ровно один раз при приёме события и дальше не изменяется.
type Dialog struct {
	ID         int       `json:"id"`
	UserID     int       `json:"user_id"`
	TelegramID int64     `json:"telegram_id"`
	Tokens     int       `json:"tokens"`
	Model      string    `json:"model"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
