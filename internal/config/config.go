package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port           string
	DBDSN          string
	MediaDir       string
	LogFile        string
	WhatsAppNumber string
	JWTSecret      string
}

func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] no .env file, using process environment")
	}

	cfg := Config{
		Port:           getenv("PORT", "8080"),
		DBDSN:          getenv("DB_DSN", "jeetech.db"), // sqlite file in project root
		MediaDir:       getenv("MEDIA_DIR", "./web/media"),
		LogFile:        getenv("LOG_FILE", "./jeetech.log"),
		WhatsAppNumber: getenv("WHATSAPP_NUMBER", "919344998602"),
		JWTSecret:      getenv("JWT_SECRET", "dev-only-change-in-production"),
	}
	log.Printf("[config] PORT=%s DB_DSN=%s MEDIA_DIR=%s LOG_FILE=%s", cfg.Port, cfg.DBDSN, cfg.MediaDir, cfg.LogFile)
	return cfg
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
