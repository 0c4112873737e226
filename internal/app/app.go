package app

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"

	"blinkchat/backend/internal/api"
	"blinkchat/backend/internal/config"
	"blinkchat/backend/internal/database"
	"blinkchat/backend/internal/gateway"
	"blinkchat/backend/internal/genai"
	"blinkchat/backend/internal/service"
)

// App holds the wired application: the persistence gateway, the services on
// top of it, and the HTTP server that exposes them.
type App struct {
	Server  *http.Server
	Gateway gateway.Gateway

	cleanup func()
}

// NewApp wires the full dependency graph from configuration. The caller owns
// the lifecycle: start with Server.ListenAndServe, release with Close.
func NewApp(cfg *config.Config) (*App, error) {
	gw, cleanup, err := buildGateway(cfg)
	if err != nil {
		return nil, err
	}

	completer, summarizer := genai.NewOllamaClient(cfg.OllamaURL, cfg.MainModel, cfg.SupportModel)

	conversationService := service.NewConversationService(gw, summarizer, cfg.DefaultTitle)
	reactionService := service.NewReactionService(gw)

	conversationHandler := api.NewConversationHandler(conversationService, reactionService)
	sessionHandler := api.NewSessionHandler(gw, completer, conversationService)
	router := api.NewRouter(conversationHandler, sessionHandler)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.AppPort),
		Handler:           router,
		ReadHeaderTimeout: 20 * time.Second,
		WriteTimeout:      0, // Disabled for the long-lived websocket route.
		IdleTimeout:       120 * time.Second,
	}

	return &App{Server: server, Gateway: gw, cleanup: cleanup}, nil
}

// Close releases the persistence backend.
func (a *App) Close() {
	if a.cleanup != nil {
		a.cleanup()
	}
}

func Run() int {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		return 1
	}

	setupLogger(cfg.LogLevel)
	logConfigSource()

	app, err := NewApp(cfg)
	if err != nil {
		slog.Error("Failed to initialize application", "error", err)
		return 1
	}
	defer app.Close()

	waitForOllama(cfg.OllamaURL)

	slog.Info("Starting server", "port", cfg.AppPort, "persistence", cfg.Persistence)
	if err := app.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server failed", "error", err)
		return 1
	}

	return 0
}

// buildGateway selects the persistence backend from configuration.
func buildGateway(cfg *config.Config) (gateway.Gateway, func(), error) {
	switch strings.ToLower(cfg.Persistence) {
	case "redis":
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		slog.Info("Using Redis persistence", "addr", cfg.RedisAddr)
		return gateway.NewRedisGateway(rdb), func() {
			if err := rdb.Close(); err != nil {
				slog.Error("Failed to close Redis client", "error", err)
			}
		}, nil
	case "", "sqlite":
		db, err := database.InitDB(cfg.DatabasePath)
		if err != nil {
			return nil, nil, err
		}
		slog.Info("Using SQLite persistence", "path", cfg.DatabasePath)
		return gateway.NewSQLiteGateway(db), func() {
			if err := db.Close(); err != nil {
				slog.Error("Failed to close database connection", "error", err)
			}
		}, nil
	default:
		return nil, nil, fmt.Errorf("unknown persistence backend %q", cfg.Persistence)
	}
}

func logConfigSource() {
	configFileUsed := viper.ConfigFileUsed()
	if configFileUsed != "" {
		slog.Info("Successfully loaded configuration from file.", "file", configFileUsed)
	} else {
		slog.Info("Configuration file not found. Using environment variables and defaults.")
	}
}

func setupLogger(logLevel string) {
	var level slog.Level
	switch strings.ToUpper(logLevel) {
	case "DEBUG":
		level = slog.LevelDebug
	case "WARN":
		level = slog.LevelWarn
	case "ERROR":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
}

// waitForOllama gives the generation service a short grace period on boot.
// The server still starts if it never comes up; sends will surface
// completion errors until it does.
func waitForOllama(ollamaURL string) {
	client := &http.Client{Timeout: 2 * time.Second}
	for i := 0; i < 10; i++ {
		resp, err := client.Get(ollamaURL)
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				slog.Info("Ollama is ready.")
				return
			}
		}
		slog.Debug("Ollama not ready yet, retrying in 3 seconds...", "url", ollamaURL, "error", err)
		time.Sleep(3 * time.Second)
	}
	slog.Warn("Ollama did not become ready in time; continuing without it.", "url", ollamaURL)
}
