package main

import (
	"context"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"partyhub"
	"partyhub/internal/config"
	"partyhub/internal/game"
	"partyhub/internal/handlers"
)

func main() {
	// .env is for local development; deployments set real env vars.
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment from .env")
	}

	// Load server configuration
	cfg, err := config.LoadConfig("")
	if err != nil {
		log.Fatal("Failed to load configuration: ", err)
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	// Parse the embedded prompt decks with fail-fast initialization
	decks, err := game.NewDeckService(partyhub.PromptDecksYAML, rng)
	if err != nil {
		log.Fatal("Failed to load prompt decks: ", err)
	}
	log.Printf("Loaded prompt decks: %v", decks.Sizes())

	// One process, one party
	session := game.NewSession(cfg.Game, decks, rng)
	h := handlers.New(session, cfg)
	r := handlers.SetupRouter(h, cfg, nil)

	addr := cfg.Server.Host + ":" + cfg.Server.Port
	joinURL := cfg.Server.BaseURL
	if joinURL == "" {
		joinURL = "http://localhost:" + cfg.Server.Port
	}

	// Create custom server with production settings
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Printf("🚀 Party server listening on %s", addr)
		log.Printf("📡 Players join at %s", joinURL)
		log.Printf("🔑 Host key: %s", session.HostKey())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start:", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server gracefully stopped")
}
