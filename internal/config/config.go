package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	ServerPort string
	UploadDir  string
	// SweepTime is the local HH:MM at which the daily recurrence
	// sweep runs.
	SweepTime string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg("no .env file found, using system environment variables")
	}

	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "taskflow_user"),
		DBPassword: getEnv("DB_PASSWORD", "taskflow_pass"),
		DBName:     getEnv("DB_NAME", "taskflow_db"),
		ServerPort: getEnv("SERVER_PORT", "8080"),
		UploadDir:  getEnv("UPLOAD_DIR", "uploads"),
		SweepTime:  getEnv("SWEEP_TIME", "00:05"),
	}
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}
