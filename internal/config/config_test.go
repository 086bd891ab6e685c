package config

import (
	"reflect"
	"testing"
	"time"

	"icms-service/internal/domain"
)

func TestLoadConfig_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "LOG_LEVEL", "ICMS_COLUMN_POLICY", "SESSION_TTL",
		"SESSION_CLEANUP_INTERVAL", "MAX_UPLOAD_SIZE_MB", "CORS_ALLOWED_ORIGINS"} {
		t.Setenv(key, "")
	}

	cfg := LoadConfig()

	if cfg.Port != "8084" {
		t.Errorf("Port = %q, want 8084", cfg.Port)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
	if cfg.ColumnPolicy != domain.PolicyLenient {
		t.Errorf("ColumnPolicy = %q, want lenient", cfg.ColumnPolicy)
	}
	if cfg.SessionTTL != 30*time.Minute || cfg.SessionCleanup != time.Hour {
		t.Errorf("session durations = %s/%s", cfg.SessionTTL, cfg.SessionCleanup)
	}
	if cfg.MaxUploadSizeBytes != 10<<20 {
		t.Errorf("MaxUploadSizeBytes = %d, want %d", cfg.MaxUploadSizeBytes, 10<<20)
	}
	if !reflect.DeepEqual(cfg.CORSAllowedOrigins, []string{"*"}) {
		t.Errorf("CORSAllowedOrigins = %v", cfg.CORSAllowedOrigins)
	}
}

func TestLoadConfig_FromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("ICMS_COLUMN_POLICY", "Strict")
	t.Setenv("SESSION_TTL", "5m")
	t.Setenv("SESSION_CLEANUP_INTERVAL", "10m")
	t.Setenv("MAX_UPLOAD_SIZE_MB", "2")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:3000, https://app.exemplo.com.br ,")

	cfg := LoadConfig()

	if cfg.Port != "9090" || cfg.LogLevel != "debug" {
		t.Errorf("Port/LogLevel = %q/%q", cfg.Port, cfg.LogLevel)
	}
	if cfg.ColumnPolicy != domain.PolicyStrict {
		t.Errorf("ColumnPolicy = %q, want strict", cfg.ColumnPolicy)
	}
	if cfg.SessionTTL != 5*time.Minute || cfg.SessionCleanup != 10*time.Minute {
		t.Errorf("session durations = %s/%s", cfg.SessionTTL, cfg.SessionCleanup)
	}
	if cfg.MaxUploadSizeBytes != 2<<20 {
		t.Errorf("MaxUploadSizeBytes = %d", cfg.MaxUploadSizeBytes)
	}
	want := []string{"http://localhost:3000", "https://app.exemplo.com.br"}
	if !reflect.DeepEqual(cfg.CORSAllowedOrigins, want) {
		t.Errorf("CORSAllowedOrigins = %v, want %v", cfg.CORSAllowedOrigins, want)
	}
}

func TestLoadConfig_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("ICMS_COLUMN_POLICY", "rigida")
	t.Setenv("SESSION_TTL", "meia hora")
	t.Setenv("SESSION_CLEANUP_INTERVAL", "-1m")
	t.Setenv("MAX_UPLOAD_SIZE_MB", "0")

	cfg := LoadConfig()

	if cfg.ColumnPolicy != domain.PolicyLenient {
		t.Errorf("ColumnPolicy = %q, want lenient", cfg.ColumnPolicy)
	}
	if cfg.SessionTTL != 30*time.Minute || cfg.SessionCleanup != time.Hour {
		t.Errorf("session durations = %s/%s", cfg.SessionTTL, cfg.SessionCleanup)
	}
	if cfg.MaxUploadSizeBytes != 10<<20 {
		t.Errorf("MaxUploadSizeBytes = %d", cfg.MaxUploadSizeBytes)
	}
}

func TestGetEnvAsInt(t *testing.T) {
	t.Setenv("ICMS_TEST_INT", "abc")
	if got := getEnvAsInt("ICMS_TEST_INT", 7); got != 7 {
		t.Errorf("getEnvAsInt(invalid) = %d, want 7", got)
	}
	t.Setenv("ICMS_TEST_INT", " 42 ")
	if got := getEnvAsInt("ICMS_TEST_INT", 7); got != 42 {
		t.Errorf("getEnvAsInt(42) = %d, want 42", got)
	}
}
