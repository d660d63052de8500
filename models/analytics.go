package models

// Типы ответа аналитики. Имена JSON-полей зафиксированы дашбордом:
// summary в camelCase, строки таблиц — в snake_case, отформатированные даты
// подменяют исходные timestamp-поля (date, lastActive).

// Summary — верхние карточки дашборда.
type Summary struct {
	TotalUsers    int `json:"totalUsers"`
	PremiumUsers  int `json:"premiumUsers"`
	ActiveDialogs int `json:"activeDialogs"`
	TotalTokens   int `json:"totalTokens"`
}

// TokenStatPoint — точка графика потребления токенов, дата в формате ДД.ММ.
type TokenStatPoint struct {
	Date        string `json:"date"`
	TotalTokens int    `json:"total_tokens"`
	ActiveUsers int    `json:"active_users"`
}

// DialogRow — строка таблицы диалогов, объединённая с владельцем.
type DialogRow struct {
	ID      int    `json:"id"`
	User    string `json:"user"`
	Tokens  int    `json:"tokens"`
	Model   string `json:"model"`
	Status  string `json:"status"`
	Premium bool   `json:"premium"`
	Date    string `json:"date"` // created_at в формате ДД.ММ.ГГГГ ЧЧ:ММ
}

// UserRow — строка таблицы пользователей, отсортированной по потреблению.
type UserRow struct {
	ID           int     `json:"id"`
	Name         string  `json:"name"`
	Email        *string `json:"email"`
	TotalTokens  int     `json:"total_tokens"`
	DialogsCount int     `json:"dialogs_count"`
	Premium      bool    `json:"premium"`
	LastActive   string  `json:"lastActive"` // last_active в формате ДД.ММ.ГГГГ
}

// ModelShare — доля модели в общем числе диалогов, value в целых процентах.
type ModelShare struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
	Count int    `json:"count"`
}

// AnalyticsPayload — составной ответ аналитического обработчика.
type AnalyticsPayload struct {
	Summary           Summary          `json:"summary"`
	TokenStats        []TokenStatPoint `json:"tokenStats"`
	Dialogs           []DialogRow      `json:"dialogs"`
	Users             []UserRow        `json:"users"`
	ModelDistribution []ModelShare     `json:"modelDistribution"`
}
