package httpevent

import (
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// HandlerFunc — чистая функция обработчика: событие на входе, конверт на выходе.
type HandlerFunc func(Request) Response

// Bind превращает обработчик события в gin-обработчик. Каждому вызову
// присваивается request_id, который попадает в лог шлюза.
func Bind(h HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := uuid.NewString()

		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			log.Printf("[GATEWAY ERROR] чтение тела запроса: %v request_id=%s", err, requestID)
			writeResponse(c, Error(http.StatusInternalServerError, "Internal server error"))
			return
		}

		event := Request{
			Method:      c.Request.Method,
			Headers:     flatten(c.Request.Header),
			QueryParams: flatten(c.Request.URL.Query()),
			Body:        string(body),
		}

		resp := h(event)
		log.Printf("[GATEWAY] %s %s -> %d request_id=%s",
			event.Method, c.Request.URL.Path, resp.StatusCode, requestID)
		writeResponse(c, resp)
	}
}

func writeResponse(c *gin.Context, resp Response) {
	contentType := ""
	for name, value := range resp.Headers {
		if http.CanonicalHeaderKey(name) == "Content-Type" {
			contentType = value
			continue
		}
		c.Header(name, value)
	}
	// Ответ без типа содержимого (preflight) не должен получить
	// пустой заголовок Content-Type на проводе.
	if contentType == "" {
		c.Status(resp.StatusCode)
		if resp.Body != "" {
			_, _ = c.Writer.WriteString(resp.Body)
		}
		return
	}
	c.Data(resp.StatusCode, contentType, []byte(resp.Body))
}

// flatten оставляет по первому значению каждого ключа — шлюз передаёт
// обработчику одиночные значения, как и исходная платформа.
func flatten(values map[string][]string) map[string]string {
	out := make(map[string]string, len(values))
	for name, vals := range values {
		if len(vals) > 0 {
			out[name] = vals[0]
		}
	}
	return out
}
