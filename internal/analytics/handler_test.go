package analytics

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"botstats_go/internal/httpevent"
	"botstats_go/models"
	"botstats_go/pkg/storage"
)

// reportDriver отдаёт канонический набор данных для всех запросов отчёта.
type reportDriver struct{}

type reportConn struct{}

type reportRows struct {
	columns []string
	data    [][]driver.Value
	idx     int
}

var reportQueries []string

func (reportDriver) Open(string) (driver.Conn, error) { return &reportConn{}, nil }

func (*reportConn) Prepare(string) (driver.Stmt, error) {
	return nil, errors.New("not implemented")
}
func (*reportConn) Close() error              { return nil }
func (*reportConn) Begin() (driver.Tx, error) { return nil, errors.New("not implemented") }

func (*reportConn) QueryContext(ctx context.Context, query string, args []driver.NamedValue) (driver.Rows, error) {
	reportQueries = append(reportQueries, query)
	switch {
	case strings.Contains(query, "COUNT(*) FROM users WHERE premium"):
		return &reportRows{columns: []string{"count"}, data: [][]driver.Value{{int64(3)}}}, nil
	case strings.Contains(query, "COUNT(*) FROM users"):
		return &reportRows{columns: []string{"count"}, data: [][]driver.Value{{int64(12)}}}, nil
	case strings.Contains(query, "COUNT(*) FROM dialogs WHERE status"):
		return &reportRows{columns: []string{"count"}, data: [][]driver.Value{{int64(2)}}}, nil
	case strings.Contains(query, "COALESCE(SUM(total_tokens), 0)"):
		return &reportRows{columns: []string{"total"}, data: [][]driver.Value{{int64(5000)}}}, nil
	case strings.Contains(query, "FROM token_stats"):
		return &reportRows{
			columns: []string{"date", "total_tokens", "active_users"},
			data:    [][]driver.Value{{time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), int64(800), int64(5)}},
		}, nil
	case strings.Contains(query, "FROM dialogs d JOIN users u"):
		return &reportRows{
			columns: []string{"id", "name", "created_at", "tokens", "model", "status", "premium"},
			data:    [][]driver.Value{{int64(1), "Иван", time.Date(2026, 9, 1, 9, 15, 0, 0, time.UTC), int64(120), "GPT-4", "Завершён", false}},
		}, nil
	case strings.Contains(query, "ORDER BY total_tokens DESC"):
		return &reportRows{
			columns: []string{"id", "name", "email", "total_tokens", "dialogs_count", "premium", "last_active"},
			data:    [][]driver.Value{{int64(1), "Иван", nil, int64(5000), int64(40), false, time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)}},
		}, nil
	case strings.Contains(query, "GROUP BY model"):
		return &reportRows{columns: []string{"model", "count"}, data: [][]driver.Value{{"GPT-4", int64(1)}}}, nil
	}
	return nil, fmt.Errorf("неожиданный запрос: %s", query)
}

func (r *reportRows) Columns() []string { return r.columns }
func (r *reportRows) Close() error      { return nil }
func (r *reportRows) Next(dest []driver.Value) error {
	if r.idx >= len(r.data) {
		return io.EOF
	}
	copy(dest, r.data[r.idx])
	r.idx++
	return nil
}

func init() {
	sql.Register("reportScript", reportDriver{})
}

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	reportQueries = nil
	db, err := sql.Open("reportScript", "")
	if err != nil {
		t.Fatalf("не удалось открыть фейковую БД: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return NewHandler(storage.NewDB(db))
}

// TestHandlePreflight проверяет CORS-preflight аналитики без обращений к БД.
func TestHandlePreflight(t *testing.T) {
	h := newTestHandler(t)

	resp := h.Handle(httpevent.Request{Method: http.MethodOptions})
	if resp.StatusCode != http.StatusOK || resp.Body != "" {
		t.Fatalf("ожидался 200 с пустым телом, получено %d %q", resp.StatusCode, resp.Body)
	}
	if resp.Headers["Access-Control-Allow-Methods"] != "GET, OPTIONS" {
		t.Fatalf("неверные методы preflight: %v", resp.Headers)
	}
	if len(reportQueries) != 0 {
		t.Fatalf("preflight не должен обращаться к БД, запросов: %d", len(reportQueries))
	}
}

// TestHandleMethodNotAllowed проверяет 405 для записи в аналитический эндпоинт.
func TestHandleMethodNotAllowed(t *testing.T) {
	h := newTestHandler(t)

	resp := h.Handle(httpevent.Request{Method: http.MethodPost})
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Fatalf("ожидался 405, получено %d", resp.StatusCode)
	}
	if resp.Body != `{"error":"Method not allowed"}` {
		t.Fatalf("неверное тело ошибки: %s", resp.Body)
	}
}

// TestHandleReport проверяет сборку составного ответа целиком:
// сводка, график, диалоги, пользователи и распределение моделей.
func TestHandleReport(t *testing.T) {
	h := newTestHandler(t)

	resp := h.Handle(httpevent.Request{
		Method:      http.MethodGet,
		QueryParams: map[string]string{"days": "14", "model": "GPT-4"},
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("ожидался 200, получено %d: %s", resp.StatusCode, resp.Body)
	}
	if resp.Headers["Content-Type"] != "application/json" {
		t.Fatalf("ответ должен быть JSON: %v", resp.Headers)
	}

	var payload models.AnalyticsPayload
	if err := json.Unmarshal([]byte(resp.Body), &payload); err != nil {
		t.Fatalf("тело ответа не разобралось: %v", err)
	}

	wantSummary := models.Summary{TotalUsers: 12, PremiumUsers: 3, ActiveDialogs: 2, TotalTokens: 5000}
	if payload.Summary != wantSummary {
		t.Fatalf("неверная сводка: %+v", payload.Summary)
	}
	if len(payload.TokenStats) != 1 || payload.TokenStats[0].Date != "01.09" {
		t.Fatalf("неверный график токенов: %+v", payload.TokenStats)
	}
	if len(payload.Dialogs) != 1 || payload.Dialogs[0].Date != "01.09.2026 09:15" {
		t.Fatalf("неверный список диалогов: %+v", payload.Dialogs)
	}
	if len(payload.Users) != 1 || payload.Users[0].LastActive != "01.09.2026" {
		t.Fatalf("неверный список пользователей: %+v", payload.Users)
	}
	if len(payload.ModelDistribution) != 1 || payload.ModelDistribution[0].Value != 100 {
		t.Fatalf("неверное распределение моделей: %+v", payload.ModelDistribution)
	}

	// Фильтр модели пришёл из запроса, фильтр статуса остался "all".
	joined := strings.Join(reportQueries, "\n")
	if !strings.Contains(joined, "d.model = $1") || strings.Contains(joined, "d.status = ") {
		t.Fatalf("фильтры применены неверно:\n%s", joined)
	}
}

// TestHandleReportBadDays проверяет, что нечисловой параметр days не роняет
// обработчик, а превращается в ответ 500 с CORS-заголовком.
func TestHandleReportBadDays(t *testing.T) {
	h := newTestHandler(t)

	resp := h.Handle(httpevent.Request{
		Method:      http.MethodGet,
		QueryParams: map[string]string{"days": "week"},
	})
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("ожидался 500, получено %d", resp.StatusCode)
	}
	if resp.Headers["Access-Control-Allow-Origin"] != "*" {
		t.Fatalf("ответ с ошибкой должен нести CORS-заголовок: %v", resp.Headers)
	}
	if len(reportQueries) != 0 {
		t.Fatalf("при ошибке разбора параметров запросов к БД быть не должно: %d", len(reportQueries))
	}
}
