package storage

import (
	"database/sql"
	"errors"
	"log"
	"time"

	"botstats_go/models"
)

// RecordDialog сохраняет одно событие завершённого диалога: обновляет или создаёт
// пользователя, вставляет запись диалога и ведёт суточный агрегат токенов.
// Все записи выполняются в одной транзакции — либо сохраняется всё, либо ничего.
func (db *DB) RecordDialog(ev models.IngestionEvent) (dialogID, userID int, err error) {
	tx, err := db.Conn.Begin()
	if err != nil {
		log.Printf("[DB ERROR] начало транзакции: %v", err)
		return 0, 0, err
	}
	defer tx.Rollback()

	now := time.Now()

	// Пользователь с таким telegram_id либо уже есть, либо создаётся здесь же.
	var totalTokens, dialogsCount int
	err = tx.QueryRow(
		`SELECT id, total_tokens, dialogs_count FROM users WHERE telegram_id = $1`,
		ev.TelegramID,
	).Scan(&userID, &totalTokens, &dialogsCount)
	switch {
	case err == nil:
		// Счётчики только накапливаются, а premium перезаписывается входящим
		// значением: последнее событие побеждает, даже если снимает подписку.
		_, err = tx.Exec(
			`UPDATE users SET total_tokens = $1, dialogs_count = $2, last_active = $3, premium = $4 WHERE id = $5`,
			totalTokens+ev.Tokens, dialogsCount+1, now, ev.Premium, userID,
		)
		if err != nil {
			return 0, 0, err
		}
	case errors.Is(err, sql.ErrNoRows):
		err = tx.QueryRow(
			`INSERT INTO users (telegram_id, name, email, premium, total_tokens, dialogs_count, last_active)
			 VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`,
			ev.TelegramID, ev.Name, ev.Email, ev.Premium, ev.Tokens, 1, now,
		).Scan(&userID)
		if err != nil {
			return 0, 0, err
		}
	default:
		return 0, 0, err
	}

	// Вебхук принимает только завершённые диалоги, статус фиксированный.
	err = tx.QueryRow(
		`INSERT INTO dialogs (user_id, telegram_id, tokens, model, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`,
		userID, ev.TelegramID, ev.Tokens, ev.Model, models.DialogStatusCompleted, now, now,
	).Scan(&dialogID)
	if err != nil {
		return 0, 0, err
	}

	// Число уникальных пользователей за сутки считаем до вставки агрегата:
	// при конфликте по дате значение просто не используется, поэтому
	// active_users остаётся зафиксированным первой записью дня.
	today := now.Format("2006-01-02")
	var activeUsers int
	if err = tx.QueryRow(
		`SELECT COUNT(DISTINCT telegram_id) FROM dialogs WHERE DATE(created_at) = $1`,
		today,
	).Scan(&activeUsers); err != nil {
		return 0, 0, err
	}

	// Атомарный upsert исключает гонку двух первых событий дня:
	// уникальный индекс по date плюс ON CONFLICT вместо select-then-insert.
	_, err = tx.Exec(
		`INSERT INTO token_stats (date, total_tokens, active_users) VALUES ($1, $2, $3)
		 ON CONFLICT (date) DO UPDATE SET total_tokens = token_stats.total_tokens + EXCLUDED.total_tokens`,
		today, ev.Tokens, activeUsers,
	)
	if err != nil {
		return 0, 0, err
	}

	if err = tx.Commit(); err != nil {
		log.Printf("[DB ERROR] фиксация транзакции: %v", err)
		return 0, 0, err
	}
	return dialogID, userID, nil
}
