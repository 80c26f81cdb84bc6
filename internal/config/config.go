package config

import (
	"fmt"
	"time"
)

// This file defines the configuration structures used by viper_config.go
// The actual loading is handled by viper in viper_config.go

// Config represents the full server configuration
type Config struct {
	Server ServerSettings `yaml:"server"`
	Game   GameRules      `yaml:"game"`
}

// ServerSettings contains server-wide settings
type ServerSettings struct {
	Port    string `yaml:"port" envconfig:"PORT"`
	Host    string `yaml:"host" envconfig:"HOST"`
	BaseURL string `yaml:"baseUrl" envconfig:"BASE_URL"` // overrides the join URL printed for players

	ReadTimeout     time.Duration `yaml:"readTimeout" envconfig:"READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `yaml:"writeTimeout" envconfig:"WRITE_TIMEOUT" default:"45s"`
	IdleTimeout     time.Duration `yaml:"idleTimeout" envconfig:"IDLE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout" envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`
	RequestTimeout  time.Duration `yaml:"requestTimeout"` // Timeout for regular HTTP requests (middleware)

	// Long-poll window for GET /api/state?wait=1. Must stay below
	// WriteTimeout and RequestTimeout or waiting polls get cut off.
	PollTimeout time.Duration `yaml:"pollTimeout" envconfig:"POLL_TIMEOUT" default:"25s"`

	// Rate limiting (using golang.org/x/time/rate)
	RateLimit      float64 `yaml:"rateLimit" envconfig:"RATE_LIMIT" default:"20"`            // requests per second per IP
	RateLimitBurst int     `yaml:"rateLimitBurst" envconfig:"RATE_LIMIT_BURST" default:"40"` // burst size

	// Request limits
	MaxRequestSize int64 `yaml:"maxRequestSize" envconfig:"MAX_REQUEST_SIZE" default:"65536"` // 64KB, bodies are tiny JSON
}

// GameRules contains the tunable game parameters. Scoring constants are
// deliberately configuration, not code: point values per mode are product
// tuning, not structure.
type GameRules struct {
	// Text limits (runes, after whitespace collapsing)
	NameMaxLen       int `yaml:"nameMaxLen"`
	TextMaxLen       int `yaml:"textMaxLen"`
	QuickDrawMaxLen  int `yaml:"quickDrawMaxLen"`
	VoteBattleMaxLen int `yaml:"voteBattleMaxLen"`

	// Profanity screen: "off", "mild" or "strict"
	ProfanityFilter string `yaml:"profanityFilter"`

	// Points
	MostLikelyPoints int `yaml:"mostLikelyPoints"` // per winner, ties all win
	MajorityPoints   int `yaml:"majorityPoints"`   // would-you-rather majority bonus, 0 disables
	TriviaPoints     int `yaml:"triviaPoints"`     // per correct answer
	WavelengthPoints int `yaml:"wavelengthPoints"` // closest guess, ties share
	QuickDrawPoints  int `yaml:"quickDrawPoints"`  // per unique answer in "unique" scoring
	VoteBattlePoints int `yaml:"voteBattlePoints"` // winning entry's author, ties all win
	SpyCaughtPoints  int `yaml:"spyCaughtPoints"`  // each non-spy when the spy is caught
	SpyEscapePoints  int `yaml:"spyEscapePoints"`  // the spy when not caught

	// QuickDrawScoring: "unique" auto-awards unique answers at reveal,
	// "host" leaves scoring to explicit host awards
	QuickDrawScoring string `yaml:"quickDrawScoring"`

	// Spyfall
	SpyfallSelfVote bool `yaml:"spyfallSelfVote"` // allow accusing yourself

	// Mafia
	MafiaMinPlayers  int  `yaml:"mafiaMinPlayers"`
	MafiaWolves      int  `yaml:"mafiaWolves"` // 0 = auto (2 when >=7 players, else 1)
	MafiaSeer        bool `yaml:"mafiaSeer"`   // include a seer when player count allows
	MafiaRevealRoles bool `yaml:"mafiaRevealRoles"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerSettings{
			Port: "", // Must be set via env
			Host: "", // Must be set via env

			ReadTimeout:     15 * time.Second,
			WriteTimeout:    45 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 30 * time.Second,
			RequestTimeout:  60 * time.Second,
			PollTimeout:     25 * time.Second,

			RateLimit:      20,
			RateLimitBurst: 40,

			MaxRequestSize: 65536,
		},
		Game: DefaultGameRules(),
	}
}

// DefaultGameRules returns the stock rule set used when no overrides are
// configured. Tests build sessions from this.
func DefaultGameRules() GameRules {
	return GameRules{
		NameMaxLen:       24,
		TextMaxLen:       120,
		QuickDrawMaxLen:  40,
		VoteBattleMaxLen: 80,

		ProfanityFilter: "mild",

		MostLikelyPoints: 1,
		MajorityPoints:   0,
		TriviaPoints:     1,
		WavelengthPoints: 1,
		QuickDrawPoints:  1,
		VoteBattlePoints: 1,
		SpyCaughtPoints:  1,
		SpyEscapePoints:  2,

		QuickDrawScoring: "unique",

		SpyfallSelfVote: false,

		MafiaMinPlayers:  3,
		MafiaWolves:      0,
		MafiaSeer:        true,
		MafiaRevealRoles: true,
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT environment variable must be set")
	}
	if c.Server.Host == "" {
		return fmt.Errorf("HOST environment variable must be set")
	}

	if c.Server.PollTimeout >= c.Server.WriteTimeout {
		return fmt.Errorf("pollTimeout (%s) must be below writeTimeout (%s)",
			c.Server.PollTimeout, c.Server.WriteTimeout)
	}
	if c.Server.RateLimit <= 0 {
		return fmt.Errorf("rateLimit must be positive")
	}
	if c.Server.MaxRequestSize < 1024 {
		return fmt.Errorf("maxRequestSize must be at least 1KB")
	}

	return c.Game.Validate()
}

// Validate checks the game rules for values the engine cannot work with.
func (g *GameRules) Validate() error {
	if g.NameMaxLen < 1 {
		return fmt.Errorf("nameMaxLen must be at least 1")
	}
	if g.TextMaxLen < 1 || g.QuickDrawMaxLen < 1 || g.VoteBattleMaxLen < 1 {
		return fmt.Errorf("text length limits must be at least 1")
	}

	switch g.ProfanityFilter {
	case "off", "mild", "strict":
	default:
		return fmt.Errorf("profanityFilter must be off, mild or strict, got %q", g.ProfanityFilter)
	}

	switch g.QuickDrawScoring {
	case "unique", "host":
	default:
		return fmt.Errorf("quickDrawScoring must be unique or host, got %q", g.QuickDrawScoring)
	}

	if g.MafiaMinPlayers < 3 {
		return fmt.Errorf("mafiaMinPlayers must be at least 3")
	}
	if g.MafiaWolves < 0 {
		return fmt.Errorf("mafiaWolves cannot be negative")
	}

	return nil
}
