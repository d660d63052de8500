package webhook

import (
	"encoding/json"
	"log"
	"net/http"

	"botstats_go/internal/httpevent"
	"botstats_go/models"
	"botstats_go/pkg/storage"

	"github.com/gin-gonic/gin"
)

// Дефолты полей события: так же заполняет их бот, если поле опущено.
const (
	defaultName  = "Пользователь"
	defaultModel = "GPT-3.5"
)

// Handler принимает события завершённых диалогов от Telegram-бота.
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
		return httpevent.Preflight("POST, GET, OPTIONS", "Content-Type, X-Api-Key")
	case http.MethodPost:
		return h.ingest(req)
	case http.MethodGet:
		// Liveness-проверка, к данным не обращается.
		return httpevent.JSON(http.StatusOK, gin.H{"status": "Bot webhook API is running"})
	default:
		return httpevent.Error(http.StatusMethodNotAllowed, "Method not allowed")
	}
}

// ingest сохраняет одно событие. Валидация умышленно минимальная:
// отклоняется только отсутствующий telegram_id, остальные поля получают дефолты.
func (h *Handler) ingest(req httpevent.Request) httpevent.Response {
	ev := models.IngestionEvent{Name: defaultName, Model: defaultModel}
	if req.Body != "" {
		if err := json.Unmarshal([]byte(req.Body), &ev); err != nil {
			log.Printf("[HANDLER ERROR] разбор тела события: %v", err)
			return httpevent.Error(http.StatusInternalServerError, "Internal server error")
		}
	}

	if ev.TelegramID.IsZero() {
		return httpevent.Error(http.StatusBadRequest, "telegram_id is required")
	}

	dialogID, userID, err := h.DB.RecordDialog(ev)
	if err != nil {
		log.Printf("[HANDLER ERROR] сохранение события диалога: %v", err)
		return httpevent.Error(http.StatusInternalServerError, "Internal server error")
	}

	return httpevent.JSON(http.StatusOK, gin.H{
		"success":   true,
		"dialog_id": dialogID,
		"user_id":   userID,
	})
}
