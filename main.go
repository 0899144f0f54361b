package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/joho/godotenv"

	"turnkit/core"
	"turnkit/factories"
	wstransport "turnkit/transports/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

func main() {
	if err := godotenv.Load(".env.local"); err != nil {
		core.GetLogger().With(map[string]any{"error": err}).Warn("No .env.local file found or failed to load")
	}

	settings := loadSettings()
	keys := factories.APIKeysFromEnv()
	logger := core.GetLogger()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		serveSession(ctx, w, r, settings, keys)
	})

	server := &http.Server{Addr: settings.ListenAddr, Handler: mux}
	go func() {
		<-ctx.Done()
		logger.Info("Shutting down...")
		server.Shutdown(context.Background())
	}()

	logger.With(map[string]any{"addr": settings.ListenAddr}).Info("listening for sessions")
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server failed", "error", err)
	}
}

func loadSettings() factories.SettingsConfig {
	path := os.Getenv("SETTINGS_PATH")
	if path == "" {
		path = "settings.json"
	}
	settings, err := factories.SettingsConfigFromFile(path)
	if err != nil {
		core.GetLogger().With(map[string]any{"error": err, "path": path}).Warn("failed to load settings, using defaults")
		return factories.DefaultSettingsConfig()
	}
	return settings
}

// serveSession upgrades the connection and runs one full conversational
// session over it, with a dedicated per-session log file.
func serveSession(ctx context.Context, w http.ResponseWriter, r *http.Request, settings factories.SettingsConfig, keys factories.APIKeys) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		core.GetLogger().With(map[string]any{"error": err}).Error("websocket upgrade failed")
		return
	}
	defer conn.Close()

	sessionID := uuid.New().String()
	logger := core.GetLogger().With(map[string]any{"session_id": sessionID})

	logWriter, err := core.NewSessionLogWriter(settings.LogDir, sessionID)
	if err != nil {
		logger.With(map[string]any{"error": err}).Warn("session log unavailable")
	} else {
		defer logWriter.Close()
		logger = core.NewSessionLogger(logger, logWriter)
	}

	session, err := factories.BuildSession(ctx, settings, keys, logger)
	if err != nil {
		logger.With(map[string]any{"error": err}).Error("failed to build session")
		return
	}
	defer session.Cleanup()

	logger.Info("session started")
	ctx = core.ContextWithSessionLogger(ctx, logger)
	if err := wstransport.NewSession(conn, session.Orchestrator, logger).Run(ctx); err != nil && ctx.Err() == nil {
		logger.With(map[string]any{"error": err}).Error("session ended with error")
		return
	}
	logger.Info("session ended")
}
