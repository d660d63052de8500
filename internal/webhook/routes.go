package webhook

import (
	"log"

	"botstats_go/internal/httpevent"
	"botstats_go/pkg/storage"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.RouterGroup, db *storage.DB) {
	handler := NewHandler(db)
	// Метод разбирает сам обработчик, поэтому регистрируем все методы разом.
	r.Any("", httpevent.Bind(handler.Handle))

	log.Printf("[ROUTER] Webhook routes registered")
}
