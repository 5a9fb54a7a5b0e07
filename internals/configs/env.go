package configs

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// =======================
// ENV LOADER
// =======================

// LoadEnv loads .env outside managed environments (Railway injects real env).
func LoadEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT") != "" {
		log.Info().Msg("[CONFIG] running on Railway, using system environment")
		return
	}
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg("[CONFIG] no .env file found, using system environment")
		return
	}
	log.Info().Msg("[CONFIG] .env loaded")
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}
