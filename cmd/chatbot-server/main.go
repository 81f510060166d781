// cmd/chatbot-server/main.go
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"hrms-chatbot/internal/chatbot"
	"hrms-chatbot/internal/common/config"
	"hrms-chatbot/internal/common/database"
	apperrors "hrms-chatbot/internal/common/errors"
	"hrms-chatbot/internal/common/logger"
	"hrms-chatbot/internal/common/observability"
	"hrms-chatbot/internal/common/validation"
	"hrms-chatbot/internal/models"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2 // Exponential backoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	zapLog := logger.New("info", "console")
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting chatbot server...")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	obs := observability.New("chatbot-server")
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Init MySQL with retry ---
	var db *database.MySQLClient
	err = retryWithBackoff(func() error {
		var err error
		db, err = database.NewMySQL(cfg.Database.MySQL)
		if err != nil {
			return err
		}
		return db.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "MySQL connection")

	if err != nil {
		zapLog.Fatal("mysql failed after retries", zap.Error(err))
	}
	defer db.Close()
	zapLog.Info("MySQL connected successfully")

	// --- Init Redis with retry ---
	// Redis only backs the prompt-stats cache, so a dead Redis degrades
	// instead of failing startup.
	var rds *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		rds, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		return rds.Ping(ctx)
	}, 5, 2*time.Second, zapLog, "Redis connection")

	if err != nil {
		zapLog.Warn("redis unavailable, stats cache disabled", zap.Error(err))
		rds = nil
	} else {
		defer rds.Close()
		zapLog.Info("Redis connected successfully")
	}

	svc := chatbot.NewService(cfg, log, db, rds, obs)
	defer svc.Close()

	mux := http.NewServeMux()
	mux.HandleFunc("/api/chat", handleChat(svc, log))
	mux.HandleFunc("/api/health", handleHealth(svc))
	mux.Handle("/metrics", promhttp.Handler())

	addr := cfg.App.ListenAddr
	if addr == "" {
		addr = ":8080"
	}
	server := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	go func() {
		zapLog.Info("HTTP server listening", zap.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error shutting down HTTP server", zap.Error(err))
	}

	zapLog.Info("Chatbot server stopped gracefully")
}

func handleChat(svc *chatbot.Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		requestID := uuid.New().String()
		reqLog := log.With(map[string]interface{}{"requestId": requestID})

		body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse("could not read request body"))
			return
		}

		if err := validation.ValidateChatRequest(body); err != nil {
			msg := "invalid request"
			var verr *apperrors.ValidationError
			if errors.As(err, &verr) {
				msg = verr.Message
				reqLog.Warn("request validation failed", map[string]interface{}{
					"field": verr.Field,
					"error": verr.Message,
				})
			}
			writeJSON(w, http.StatusBadRequest, errorResponse(msg))
			return
		}

		var req models.ChatRequest
		if err := json.Unmarshal(body, &req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse("invalid JSON body"))
			return
		}

		requester := models.RequesterContext{
			Identifier: r.Header.Get("X-Requester-Id"),
			Company:    r.Header.Get("X-Requester-Company"),
			Role:       r.Header.Get("X-Requester-Role"),
		}

		resp := svc.Handle(r.Context(), req, requester)
		w.Header().Set("X-Request-Id", requestID)
		writeJSON(w, http.StatusOK, resp)
	}
}

func handleHealth(svc *chatbot.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Health(r.Context()); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "unhealthy",
				"error":  err.Error(),
				"time":   time.Now().Format(time.RFC3339),
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	}
}

func errorResponse(msg string) models.ChatResponse {
	return models.ChatResponse{Reply: "Sorry, I couldn't process that request.", Error: &msg}
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
