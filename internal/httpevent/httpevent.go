// Package httpevent описывает событие и ответ в том виде, в котором их доставляет
// и ожидает API-шлюз. Обработчики не разбирают сырой HTTP: они получают готовую
// запись запроса и возвращают конверт со статусом, заголовками и телом.
package httpevent

import (
	"encoding/json"
	"log"
	"net/http"
)

// Request — входное событие: метод, заголовки, query-параметры и тело.
type Request struct {
	Method      string
	Headers     map[string]string
	QueryParams map[string]string
	Body        string
}

// Query возвращает query-параметр либо значение по умолчанию.
func (r Request) Query(name, def string) string {
	if v, ok := r.QueryParams[name]; ok && v != "" {
		return v
	}
	return def
}

// Response — конверт ответа шлюза.
type Response struct {
	StatusCode      int               `json:"statusCode"`
	Headers         map[string]string `json:"headers"`
	Body            string            `json:"body"`
	IsBase64Encoded bool              `json:"isBase64Encoded"`
}

// JSON собирает ответ с JSON-телом. CORS-заголовок ставится на каждый ответ,
// чтобы дашборд в браузере мог читать в том числе ошибки.
func JSON(status int, payload any) Response {
	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("[RESPONSE ERROR] сериализация тела ответа: %v", err)
		return Response{
			StatusCode: http.StatusInternalServerError,
			Headers:    baseHeaders(),
		}
	}
	return Response{
		StatusCode: status,
		Headers:    baseHeaders(),
		Body:       string(body),
	}
}

// Error собирает ответ с ошибкой в едином формате {"error": ...}.
func Error(status int, msg string) Response {
	return JSON(status, map[string]string{"error": msg})
}

// Preflight отвечает на CORS-preflight: пустое тело и полный набор
// заголовков доступа. К данным такой запрос не обращается.
func Preflight(allowMethods, allowHeaders string) Response {
	return Response{
		StatusCode: http.StatusOK,
		Headers: map[string]string{
			"Access-Control-Allow-Origin":  "*",
			"Access-Control-Allow-Methods": allowMethods,
			"Access-Control-Allow-Headers": allowHeaders,
			"Access-Control-Max-Age":       "86400",
		},
	}
}

func baseHeaders() map[string]string {
	return map[string]string{
		"Content-Type":                "application/json",
		"Access-Control-Allow-Origin": "*",
	}
}
