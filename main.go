package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/Tomoki-K-0409/line-like-chat-app/internal/chat"
	"github.com/Tomoki-K-0409/line-like-chat-app/internal/config"
	"github.com/Tomoki-K-0409/line-like-chat-app/internal/hub"
	"github.com/Tomoki-K-0409/line-like-chat-app/internal/store"
	internalhttp "github.com/Tomoki-K-0409/line-like-chat-app/internal/transport/http"
	"github.com/Tomoki-K-0409/line-like-chat-app/internal/ws"
)

func main() {
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting chat service...")
	log.Printf("Port: %d", cfg.Port)
	log.Printf("Database: %s", cfg.DatabaseURL)
	log.Printf("Allowed origins: %v", cfg.AllowedOrigins)

	// Initialize store; migrations run here, before any listener starts
	db, err := store.NewSQLiteStore(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer db.Close()

	// Initialize hub
	connectionHub := hub.NewHub()
	go connectionHub.Run()

	// Initialize chat service
	svc := chat.New(db, connectionHub)

	// Initialize WebSocket server
	wsServer := ws.NewServer(cfg, connectionHub, svc)

	// Create HTTP server
	e := internalhttp.NewServer(cfg, svc, wsServer)

	// Start server
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Port)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	log.Printf("Chat service started on port %d", cfg.Port)

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down chat service...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("Failed to shutdown server gracefully: %v", err)
	}

	log.Println("Chat service stopped")
}
