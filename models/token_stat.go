package models

import "time"

// TokenStat отражает запись таблицы token_stats — суточный агрегат потребления токенов.
// На каждую дату существует не более одной записи (уникальный индекс по date).
// active_users фиксируется в момент создания записи и при последующих событиях
// того же дня не пересчитывается.
type TokenStat struct {
	ID          int       `json:"id"`
	Date        time.Time `json:"date"`
	TotalTokens int       `json:"total_tokens"`
	ActiveUsers int       `json:"active_users"`
}
