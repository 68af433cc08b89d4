package config

import (
	"errors"
	"log"

	"github.com/spf13/viper"
)

// Config holds the application configuration. It is loaded once in main and
// passed down by injection.
type Config struct {
	ServerAddress        string `mapstructure:"SERVER_ADDRESS"`
	DatabaseURL          string `mapstructure:"DATABASE_URL"`
	JWTSecret            string `mapstructure:"JWT_SECRET"`
	JWTIssuer            string `mapstructure:"JWT_ISSUER"`
	JWTAudience          string `mapstructure:"JWT_AUDIENCE"`
	JWTExpirationMinutes int    `mapstructure:"JWT_EXPIRATION_MINUTES"`
}

// Load reads the configuration from a .env file and environment variables.
// The token signing settings are mandatory: without them no token can be
// issued or verified, so their absence fails startup.
func Load() (*Config, error) {
	viper.AddConfigPath(".")
	viper.SetConfigName(".env")
	viper.SetConfigType("env")

	viper.AutomaticEnv()

	viper.SetDefault("SERVER_ADDRESS", ":8080")
	viper.SetDefault("DATABASE_URL", "")
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("JWT_ISSUER", "")
	viper.SetDefault("JWT_AUDIENCE", "")
	viper.SetDefault("JWT_EXPIRATION_MINUTES", 60)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("Warning: .env file not found, loading from environment variables")
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.JWTSecret == "" || cfg.JWTIssuer == "" || cfg.JWTAudience == "" {
		return nil, errors.New("JWT_SECRET, JWT_ISSUER and JWT_AUDIENCE must be set")
	}
	if cfg.JWTExpirationMinutes <= 0 {
		return nil, errors.New("JWT_EXPIRATION_MINUTES must be positive")
	}

	return &cfg, nil
}
