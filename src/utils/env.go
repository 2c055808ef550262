package utils

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// InitEnvironmentVariables loads a .env.<goEnv> file from the working
// directory. Production deploys inject real environment variables, so the
// file is a development convenience only.
func InitEnvironmentVariables(goEnv string) error {
	if goEnv == "production" || os.Getenv("ENV") == "production" {
		log.Info("Running in production environment")
		return nil
	}

	envFile := fmt.Sprintf(".env.%s", goEnv)

	if err := godotenv.Load(envFile); err != nil {
		return fmt.Errorf("failed to load %s file: %v", envFile, err)
	}

	return nil
}

func GetEnvDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return fallback
}

func GetEnvBool(key string) bool {
	value, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return false
	}

	return value
}

func GetEnvInt(key string, fallback int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("GetEnvInt: %s is not an integer: %v", key, err)
	}

	return value, nil
}
