package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"icms-service/internal/domain"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	Port               string
	LogLevel           string
	ColumnPolicy       domain.ColumnPolicy
	SessionTTL         time.Duration
	SessionCleanup     time.Duration
	MaxUploadSizeBytes int64
	CORSAllowedOrigins []string
}

// LoadConfig lê o .env (se existir) e as variáveis de ambiente, aplicando os padrões.
func LoadConfig() *AppConfig {
	if err := godotenv.Load(); err != nil {
		log.Println("Arquivo .env não encontrado, prosseguindo com variáveis de ambiente")
	}

	policy, err := domain.ParseColumnPolicy(getEnv("ICMS_COLUMN_POLICY", string(domain.PolicyLenient)))
	if err != nil {
		log.Printf("AVISO: %v. Usando %q", err, domain.PolicyLenient)
		policy = domain.PolicyLenient
	}

	maxUploadMB := getEnvAsInt("MAX_UPLOAD_SIZE_MB", 10)
	if maxUploadMB <= 0 {
		log.Printf("AVISO: MAX_UPLOAD_SIZE_MB inválido (%d). Usando 10", maxUploadMB)
		maxUploadMB = 10
	}

	cfg := &AppConfig{
		Port:               getEnv("PORT", "8084"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		ColumnPolicy:       policy,
		SessionTTL:         getEnvAsDuration("SESSION_TTL", 30*time.Minute),
		SessionCleanup:     getEnvAsDuration("SESSION_CLEANUP_INTERVAL", time.Hour),
		MaxUploadSizeBytes: int64(maxUploadMB) << 20,
		CORSAllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
	}

	log.Printf("Configuração carregada: Port=%s, LogLevel=%s, Policy=%s, SessionTTL=%s",
		cfg.Port, cfg.LogLevel, cfg.ColumnPolicy, cfg.SessionTTL)
	return cfg
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback
	}
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	log.Printf("AVISO: valor inteiro inválido para %s ('%s'), usando padrão: %d", key, valueStr, fallback)
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback
	}
	if value, err := time.ParseDuration(valueStr); err == nil && value > 0 {
		return value
	}
	log.Printf("AVISO: duração inválida para %s ('%s'), usando padrão: %s", key, valueStr, fallback)
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
