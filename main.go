package main

import (
	"botstats_go/internal/analytics"
	"botstats_go/internal/config"
	"botstats_go/internal/webhook"
	"botstats_go/pkg/storage"
	"database/sql"
	"log"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"
)

func main() {
	// Настройки процесса: строка подключения и порт
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Инициализация подключения к БД
	dbConn, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer dbConn.Close()

	// Проверка подключения
	if err := dbConn.Ping(); err != nil {
		log.Fatalf("Database ping failed: %v", err)
	}

	// Инициализация хранилища
	db := storage.NewDB(dbConn)

	// Настройка роутера
	r := setupRouter(db)

	// Запуск сервера
	log.Printf("Starting server on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

// Настройка маршрутов
func setupRouter(db *storage.DB) *gin.Engine {
	r := gin.Default()

	// Приём событий от Telegram-бота
	webhookGroup := r.Group("/webhook")
	webhook.SetupRoutes(webhookGroup, db)

	// Аналитика для дашборда
	analyticsGroup := r.Group("/analytics")
	analytics.SetupRoutes(analyticsGroup, db)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Логирование зарегистрированных роутов
	log.Printf("[ROUTER] Routes initialized:")
	log.Printf("[ROUTER] ANY /webhook")
	log.Printf("[ROUTER] ANY /analytics")
	log.Printf("[ROUTER] GET /health")

	return r
}
