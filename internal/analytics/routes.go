package analytics

import (
	"log"

	"botstats_go/internal/httpevent"
	"botstats_go/pkg/storage"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.RouterGroup, db *storage.DB) {
	handler := NewHandler(db)
	r.Any("", httpevent.Bind(handler.Handle))

	log.Printf("[ROUTER] Analytics routes registered")
}
