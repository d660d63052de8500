package models

// IngestionEvent — тело POST-запроса вебхука: одно событие завершённого диалога.
// Поля без значения получают дефолты ещё при разборе запроса, поэтому хранилище
// работает с уже заполненной структурой.
type IngestionEvent struct {
	TelegramID TelegramID `json:"telegram_id"`
	Name       string     `json:"name"`
	Tokens     int        `json:"tokens"`
	Model      string     `json:"model"`
	Premium    bool       `json:"premium"`
	Email      *string    `json:"email"`
}
