package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// LoadConfig loads configuration using Viper
// Priority order: Environment variables > Config file > Defaults
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	// Set config file details
	v.SetConfigName("partyhub")
	v.SetConfigType("yaml")

	// Add config paths
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/partyhub")
	}

	// Enable environment variable binding
	v.SetEnvPrefix("PARTYHUB")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Bind specific environment variables
	// These allow both PARTYHUB_SERVER_PORT and PORT to work
	v.BindEnv("server.port", "PORT")
	v.BindEnv("server.host", "HOST")
	v.BindEnv("server.baseurl", "BASE_URL")
	v.BindEnv("server.ratelimit", "RATE_LIMIT")
	v.BindEnv("server.ratelimitburst", "RATE_LIMIT_BURST")
	v.BindEnv("server.maxrequestsize", "MAX_REQUEST_SIZE")
	v.BindEnv("server.polltimeout", "POLL_TIMEOUT")
	v.BindEnv("game.profanityfilter", "PROFANITY_FILTER")
	v.BindEnv("game.quickdrawscoring", "QUICKDRAW_SCORING")

	// Timeout defaults
	v.SetDefault("server.readtimeout", "15s")
	v.SetDefault("server.writetimeout", "45s")
	v.SetDefault("server.idletimeout", "60s")
	v.SetDefault("server.shutdowntimeout", "30s")
	v.SetDefault("server.requesttimeout", "60s")
	v.SetDefault("server.polltimeout", "25s")

	// Rate limiting defaults
	v.SetDefault("server.ratelimit", 20.0)
	v.SetDefault("server.ratelimitburst", 40)

	// Request limits
	v.SetDefault("server.maxrequestsize", 65536)

	// Game rule defaults, kept in sync with DefaultGameRules
	rules := DefaultGameRules()
	v.SetDefault("game.namemaxlen", rules.NameMaxLen)
	v.SetDefault("game.textmaxlen", rules.TextMaxLen)
	v.SetDefault("game.quickdrawmaxlen", rules.QuickDrawMaxLen)
	v.SetDefault("game.votebattlemaxlen", rules.VoteBattleMaxLen)
	v.SetDefault("game.profanityfilter", rules.ProfanityFilter)
	v.SetDefault("game.mostlikelypoints", rules.MostLikelyPoints)
	v.SetDefault("game.majoritypoints", rules.MajorityPoints)
	v.SetDefault("game.triviapoints", rules.TriviaPoints)
	v.SetDefault("game.wavelengthpoints", rules.WavelengthPoints)
	v.SetDefault("game.quickdrawpoints", rules.QuickDrawPoints)
	v.SetDefault("game.votebattlepoints", rules.VoteBattlePoints)
	v.SetDefault("game.spycaughtpoints", rules.SpyCaughtPoints)
	v.SetDefault("game.spyescapepoints", rules.SpyEscapePoints)
	v.SetDefault("game.quickdrawscoring", rules.QuickDrawScoring)
	v.SetDefault("game.spyfallselfvote", rules.SpyfallSelfVote)
	v.SetDefault("game.mafiaminplayers", rules.MafiaMinPlayers)
	v.SetDefault("game.mafiawolves", rules.MafiaWolves)
	v.SetDefault("game.mafiaseer", rules.MafiaSeer)
	v.SetDefault("game.mafiarevealroles", rules.MafiaRevealRoles)

	// Try to read config file (it's optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			if strings.Contains(err.Error(), "no such file or directory") {
				// File doesn't exist, continue with defaults
			} else {
				// Config file was found but another error occurred
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		}
		// Config file not found; continue with env vars and defaults
	}

	// Create config struct
	cfg := &Config{}

	// Unmarshal into the struct
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate required fields early for a clearer message
	if v.GetString("server.port") == "" {
		return nil, fmt.Errorf("PORT environment variable must be set")
	}
	if v.GetString("server.host") == "" {
		return nil, fmt.Errorf("HOST environment variable must be set")
	}

	// Additional validation
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}
