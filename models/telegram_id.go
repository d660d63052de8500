package models

import (
	"database/sql/driver"
	"encoding/json"
	"strconv"
)

// jsonKind — вид JSON-значения, из которого пришёл идентификатор.
// Вид нужен валидации: "ложность" значения зависит от типа, а не от текста,
// поэтому строка "0" допустима, а число 0 в любой записи — нет.
type jsonKind int

const (
	kindAbsent jsonKind = iota
	kindNull
	kindString
	kindNumber
	kindBool
	kindOther
)

// TelegramID хранит идентификатор пользователя так, как он пришёл в JSON.
// Бот присылает его числом, но фронтенд и сторонние интеграции могут прислать
// строку, поэтому принимаем любой скаляр и передаём его в БД как есть:
// нечисловое значение отклонит уже Postgres при сравнении с bigint.
type TelegramID struct {
	raw  string
	kind jsonKind
}

// UnmarshalJSON принимает число, строку, bool или null, запоминая вид значения.
func (id *TelegramID) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch val := v.(type) {
	case nil:
		*id = TelegramID{kind: kindNull}
	case string:
		*id = TelegramID{raw: val, kind: kindString}
	case bool:
		raw := "false"
		if val {
			raw = "true"
		}
		*id = TelegramID{raw: raw, kind: kindBool}
	case float64:
		// Числа переписываем исходным текстом, чтобы не терять точность int64.
		*id = TelegramID{raw: string(data), kind: kindNumber}
	default:
		*id = TelegramID{raw: string(data), kind: kindOther}
	}
	return nil
}

// IsZero сообщает, что идентификатор отсутствует либо "ложный" в смысле своего
// типа: null, число ноль в любой записи (0, 0.00, -0, 0e0), пустая строка,
// false. Строки "0" и "false" при этом остаются допустимыми значениями.
func (id TelegramID) IsZero() bool {
	switch id.kind {
	case kindAbsent, kindNull:
		return true
	case kindString:
		return id.raw == ""
	case kindNumber:
		f, err := strconv.ParseFloat(id.raw, 64)
		return err == nil && f == 0
	case kindBool:
		return id.raw == "false"
	}
	return false
}

// String возвращает исходный текст идентификатора.
func (id TelegramID) String() string {
	return id.raw
}

// Value передаёт идентификатор драйверу как текст.
func (id TelegramID) Value() (driver.Value, error) {
	return id.raw, nil
}
