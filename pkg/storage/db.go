package storage

import (
	"database/sql"

	_ "github.com/lib/pq"
)

// DB оборачивает пул соединений с Postgres.
// Пул создаётся один раз в main и передаётся обработчикам явно,
// никакого процесс-глобального состояния у хранилища нет.
type DB struct {
	Conn *sql.DB
}

func NewDB(conn *sql.DB) *DB {
	return &DB{Conn: conn}
}
