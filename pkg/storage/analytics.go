package storage

import (
	"database/sql"
	"fmt"
	"math"
	"time"

	"botstats_go/models"
)

// FilterAll — значение фильтра, означающее отсутствие фильтрации.
const FilterAll = "all"

// Summary возвращает верхние показатели дашборда.
func (db *DB) Summary() (models.Summary, error) {
	var s models.Summary

	if err := db.Conn.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&s.TotalUsers); err != nil {
		return s, err
	}
	if err := db.Conn.QueryRow(`SELECT COUNT(*) FROM users WHERE premium = true`).Scan(&s.PremiumUsers); err != nil {
		return s, err
	}
	// Активные диалоги считаются по фиксированному статусу,
	// фильтр status из запроса на этот показатель не влияет.
	if err := db.Conn.QueryRow(
		`SELECT COUNT(*) FROM dialogs WHERE status = $1`, models.DialogStatusActive,
	).Scan(&s.ActiveDialogs); err != nil {
		return s, err
	}
	if err := db.Conn.QueryRow(`SELECT COALESCE(SUM(total_tokens), 0) FROM users`).Scan(&s.TotalTokens); err != nil {
		return s, err
	}
	return s, nil
}

// TokenStatsSince возвращает суточные агрегаты начиная с указанной даты,
// по возрастанию. Дата переформатируется в ДД.ММ для графика.
func (db *DB) TokenStatsSince(start time.Time) ([]models.TokenStatPoint, error) {
	rows, err := db.Conn.Query(
		`SELECT date, total_tokens, active_users FROM token_stats WHERE date >= $1 ORDER BY date`,
		start.Format("2006-01-02"),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	// Дашборд ждёт массив даже при отсутствии данных, поэтому не nil-срез.
	points := make([]models.TokenStatPoint, 0)
	for rows.Next() {
		var date time.Time
		var p models.TokenStatPoint
		if err := rows.Scan(&date, &p.TotalTokens, &p.ActiveUsers); err != nil {
			return nil, err
		}
		p.Date = date.Format("02.01")
		points = append(points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return points, nil
}

// RecentDialogs возвращает до 100 последних диалогов вместе с именем и premium-флагом
// владельца. Фильтры по модели и статусу применяются только при значении, отличном
// от FilterAll, и сравнивают строку точно.
func (db *DB) RecentDialogs(model, status string) ([]models.DialogRow, error) {
	query := `SELECT d.id, u.name, d.created_at, d.tokens, d.model, d.status, u.premium
		FROM dialogs d JOIN users u ON d.user_id = u.id WHERE 1=1`
	var args []any

	if model != FilterAll {
		args = append(args, model)
		query += fmt.Sprintf(" AND d.model = $%d", len(args))
	}
	if status != FilterAll {
		args = append(args, status)
		query += fmt.Sprintf(" AND d.status = $%d", len(args))
	}
	query += " ORDER BY d.created_at DESC LIMIT 100"

	rows, err := db.Conn.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	dialogs := make([]models.DialogRow, 0)
	for rows.Next() {
		var d models.DialogRow
		var createdAt time.Time
		if err := rows.Scan(&d.ID, &d.User, &createdAt, &d.Tokens, &d.Model, &d.Status, &d.Premium); err != nil {
			return nil, err
		}
		d.Date = createdAt.Format("02.01.2006 15:04")
		dialogs = append(dialogs, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return dialogs, nil
}

// UsersByTokens возвращает всех пользователей по убыванию потреблённых токенов.
func (db *DB) UsersByTokens() ([]models.UserRow, error) {
	rows, err := db.Conn.Query(
		`SELECT id, name, email, total_tokens, dialogs_count, premium, last_active
		 FROM users ORDER BY total_tokens DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]models.UserRow, 0)
	for rows.Next() {
		var u models.UserRow
		var email sql.NullString
		var lastActive time.Time
		if err := rows.Scan(&u.ID, &u.Name, &email, &u.TotalTokens, &u.DialogsCount, &u.Premium, &lastActive); err != nil {
			return nil, err
		}
		if email.Valid {
			u.Email = &email.String
		}
		u.LastActive = lastActive.Format("02.01.2006")
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return users, nil
}

// ModelDistribution возвращает распределение диалогов по моделям с долей
// в целых процентах. Без диалогов каждая доля равна нулю, деления на ноль нет.
func (db *DB) ModelDistribution() ([]models.ModelShare, error) {
	rows, err := db.Conn.Query(`SELECT model, COUNT(*) FROM dialogs GROUP BY model`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	shares := make([]models.ModelShare, 0)
	total := 0
	for rows.Next() {
		var s models.ModelShare
		if err := rows.Scan(&s.Name, &s.Count); err != nil {
			return nil, err
		}
		total += s.Count
		shares = append(shares, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if total > 0 {
		for i := range shares {
			shares[i].Value = int(math.Round(float64(shares[i].Count) / float64(total) * 100))
		}
	}
	return shares, nil
}
