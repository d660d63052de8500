package models

import (
	"encoding/json"
	"testing"
)

func decodeTelegramID(t *testing.T, body string) TelegramID {
	t.Helper()
	var ev IngestionEvent
	if err := json.Unmarshal([]byte(body), &ev); err != nil {
		t.Fatalf("разбор %s завершился ошибкой: %v", body, err)
	}
	return ev.TelegramID
}

// TestTelegramIDUnmarshalScalars проверяет, что идентификатор принимает
// любой JSON-скаляр и сохраняет его исходный текст без потери точности.
func TestTelegramIDUnmarshalScalars(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"число", `{"telegram_id": 123}`, "123"},
		{"большое число", `{"telegram_id": 9007199254740993}`, "9007199254740993"},
		{"строка", `{"telegram_id": "123"}`, "123"},
		{"null", `{"telegram_id": null}`, ""},
		{"bool", `{"telegram_id": true}`, "true"},
		{"отсутствует", `{}`, ""},
	}

	for _, tc := range cases {
		id := decodeTelegramID(t, tc.body)
		if id.String() != tc.want {
			t.Fatalf("%s: ожидалось %q, получено %q", tc.name, tc.want, id.String())
		}
	}
}

// TestTelegramIDIsZero проверяет типозависимую "ложность": число ноль отклоняется
// в любой записи, а строки "0" и "false" остаются допустимыми значениями.
func TestTelegramIDIsZero(t *testing.T) {
	falsy := []string{
		`{}`,
		`{"telegram_id": null}`,
		`{"telegram_id": 0}`,
		`{"telegram_id": 0.00}`,
		`{"telegram_id": -0}`,
		`{"telegram_id": 0e0}`,
		`{"telegram_id": ""}`,
		`{"telegram_id": false}`,
	}
	for _, body := range falsy {
		if id := decodeTelegramID(t, body); !id.IsZero() {
			t.Fatalf("значение из %s должно считаться пустым", body)
		}
	}

	truthy := []string{
		`{"telegram_id": 1}`,
		`{"telegram_id": -1}`,
		`{"telegram_id": "0"}`,
		`{"telegram_id": "0.0"}`,
		`{"telegram_id": "false"}`,
		`{"telegram_id": "abc"}`,
		`{"telegram_id": "007"}`,
		`{"telegram_id": true}`,
	}
	for _, body := range truthy {
		if id := decodeTelegramID(t, body); id.IsZero() {
			t.Fatalf("значение из %s не должно считаться пустым", body)
		}
	}
}
