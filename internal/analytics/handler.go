package analytics

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"botstats_go/internal/httpevent"
	"botstats_go/models"
	"botstats_go/pkg/storage"
)

// Handler отдаёт сводную аналитику для дашборда.
type Handler struct {
	DB *storage.DB
}

func NewHandler(db *storage.DB) *Handler {
	return &Handler{DB: db}
}

// Handle разбирает событие шлюза по HTTP-методу.
func (h *Handler) Handle(req httpevent.Request) httpevent.Response {
	switch req.Method {
	case http.MethodOptions:
		return httpevent.Preflight("GET, OPTIONS", "Content-Type")
	case http.MethodGet:
		return h.report(req)
	default:
		return httpevent.Error(http.StatusMethodNotAllowed, "Method not allowed")
	}
}

// report собирает составной ответ: сводку, график токенов за окно в days дней,
// отфильтрованные диалоги, пользователей по потреблению и распределение моделей.
func (h *Handler) report(req httpevent.Request) httpevent.Response {
	days, err := strconv.Atoi(req.Query("days", "7"))
	if err != nil {
		log.Printf("[HANDLER ERROR] разбор параметра days: %v", err)
		return httpevent.Error(http.StatusInternalServerError, "Internal server error")
	}
	filterModel := req.Query("model", storage.FilterAll)
	filterStatus := req.Query("status", storage.FilterAll)

	summary, err := h.DB.Summary()
	if err != nil {
		return h.storeError("сводные показатели", err)
	}

	// Окно графика включает сегодняшний день, поэтому days-1.
	windowStart := time.Now().AddDate(0, 0, -(days - 1))
	tokenStats, err := h.DB.TokenStatsSince(windowStart)
	if err != nil {
		return h.storeError("суточные агрегаты", err)
	}

	dialogs, err := h.DB.RecentDialogs(filterModel, filterStatus)
	if err != nil {
		return h.storeError("список диалогов", err)
	}

	users, err := h.DB.UsersByTokens()
	if err != nil {
		return h.storeError("список пользователей", err)
	}

	distribution, err := h.DB.ModelDistribution()
	if err != nil {
		return h.storeError("распределение моделей", err)
	}

	return httpevent.JSON(http.StatusOK, models.AnalyticsPayload{
		Summary:           summary,
		TokenStats:        tokenStats,
		Dialogs:           dialogs,
		Users:             users,
		ModelDistribution: distribution,
	})
}

func (h *Handler) storeError(what string, err error) httpevent.Response {
	log.Printf("[HANDLER ERROR] %s: %v", what, err)
	return httpevent.Error(http.StatusInternalServerError, "Internal server error")
}
