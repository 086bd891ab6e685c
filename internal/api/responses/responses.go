// internal/api/responses/responses.go
package responses

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var logger = zap.NewNop()

// APIResponse defines the standard envelope for API responses.
type APIResponse struct {
	Status  string      `json:"status"` // "success" or "error"
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
	Errors  []string    `json:"errors,omitempty"`
}

// InitLogger initializes the structured logger at the given level ("debug", "info", ...).
// Unknown levels fall back to info.
func InitLogger(level string) error {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	l, err := cfg.Build()
	if err != nil {
		return err
	}
	logger = l
	return nil
}

// Logger returns the shared structured logger.
func Logger() *zap.Logger {
	return logger
}

// Success sends a response with the provided status code, data and message.
func Success(c *gin.Context, code int, data interface{}, message string) {
	c.JSON(code, APIResponse{Status: "success", Data: data, Message: message})
	logger.Info("API success", zap.String("path", c.Request.URL.Path), zap.Int("status", code))
}

// Error sends an error response with the provided code, message, and optional errors.
func Error(c *gin.Context, code int, message string, errs ...string) {
	ErrorWithData(c, code, nil, message, errs...)
}

// ErrorWithData sends an error response that also carries a structured payload.
func ErrorWithData(c *gin.Context, code int, data interface{}, message string, errs ...string) {
	c.JSON(code, APIResponse{Status: "error", Data: data, Message: message, Errors: errs})
	logger.Error("API error", zap.String("path", c.Request.URL.Path), zap.Int("status", code), zap.Strings("errors", errs))
}
