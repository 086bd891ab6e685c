// cmd/icms/main.go
package main

import (
	"log"
	"net/http"
	"time"

	"icms-service/internal/api/handlers"
	"icms-service/internal/api/responses"
	"icms-service/internal/config"
	"icms-service/internal/core/icms"
	"icms-service/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadConfig()

	if err := responses.InitLogger(cfg.LogLevel); err != nil {
		log.Fatal("Falha ao iniciar o logger: ", err)
	}
	logger := responses.Logger()
	defer logger.Sync()

	icmsService := icms.NewService()
	store := session.NewStore(cfg.SessionTTL, cfg.SessionCleanup)
	icmsHandler := handlers.NewICMSHandler(icmsService, store, cfg.ColumnPolicy, cfg.MaxUploadSizeBytes)

	router := gin.Default()
	router.MaxMultipartMemory = cfg.MaxUploadSizeBytes

	apiV1 := router.Group("/api/v1")
	handlers.RegisterRoutes(apiV1, icmsHandler)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "UP", "service": "icms-service"})
	})

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
		ExposedHeaders: []string{"Content-Disposition"},
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           corsHandler.Handler(router),
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("🚀 ICMS Service (Go) iniciado", zap.String("port", cfg.Port), zap.String("policy", string(cfg.ColumnPolicy)))
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("Falha ao iniciar o servidor de cálculo", zap.Error(err))
	}
}
