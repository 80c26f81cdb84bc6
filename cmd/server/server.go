package main

import (
	"log"
	"math/rand"
	"net/http"
	"time"

	"partyhub"
	"partyhub/internal/config"
	"partyhub/internal/game"
	"partyhub/internal/handlers"
)

// SetupServer wires a complete server the way main does, returning the
// handler and the session so tests can reach the host key.
func SetupServer() (http.Handler, *game.Session) {
	cfg, err := config.LoadConfig("")
	if err != nil {
		log.Fatal("Failed to load configuration: ", err)
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	decks, err := game.NewDeckService(partyhub.PromptDecksYAML, rng)
	if err != nil {
		log.Fatal("Failed to load prompt decks: ", err)
	}

	session := game.NewSession(cfg.Game, decks, rng)
	h := handlers.New(session, cfg)

	r := handlers.SetupRouter(h, cfg, &handlers.RouterOptions{
		DisableRequestLogger: true,
	})
	return r, session
}
