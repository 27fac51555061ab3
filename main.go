package main

import (
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"petcare-chatbot/config"
	"petcare-chatbot/controllers"
	"petcare-chatbot/services"
)

func main() {
	// .env is optional; the process environment wins either way
	_ = godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg := config.Load()

	completion := services.NewCompletionService(cfg.OpenRouterAPIKey, cfg.CompletionURL, cfg.Model)
	knowledge := services.NewKnowledgeService(cfg.BackendURL)
	products := services.NewProductService(cfg.BackendURL)
	chatbot := services.NewChatbot(knowledge, products, completion, logger)
	discord := services.NewDiscordService(cfg.DiscordBotToken, cfg.DiscordCommandPrefix, chatbot, logger)

	controller := controllers.NewController(chatbot, discord, cfg.Model, logger)

	logger.Info("starting petcare chatbot",
		zap.String("model", cfg.Model),
		zap.String("backend", cfg.BackendURL),
		zap.Bool("completion_configured", completion.IsConfigured()),
		zap.Bool("discord_enabled", discord.IsEnabled()))

	if err := controller.StartServices(); err != nil {
		logger.Warn("failed to start background services", zap.Error(err))
	}

	router := mux.NewRouter()
	router.HandleFunc("/", controller.IndexHandler).Methods(http.MethodGet)
	router.HandleFunc("/health", controller.HealthHandler).Methods(http.MethodGet)
	router.HandleFunc("/chat", controller.ChatHandler).Methods(http.MethodPost)

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	handler := c.Handler(requestLogging(logger)(router))

	port := cfg.Port
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}

	server := &http.Server{Addr: port, Handler: handler}

	go func() {
		logger.Info("server listening", zap.String("addr", port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	if err := controller.StopServices(); err != nil {
		logger.Warn("failed to stop background services", zap.Error(err))
	}
	server.Close()
}

// requestLogging tags each request with an ID and logs the turn
func requestLogging(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := uuid.NewString()
			w.Header().Set("X-Request-ID", requestID)

			start := time.Now()
			next.ServeHTTP(w, r)

			logger.Info("request",
				zap.String("request_id", requestID),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Duration("duration", time.Since(start)))
		})
	}
}
