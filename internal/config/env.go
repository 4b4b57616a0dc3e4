package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/anilpal6795/crime-linker/internal/logger"
)

// LoadEnv reads a .env file into the process environment. A missing file is
// not an error; variables already set win over the file.
func LoadEnv(files ...string) {
	if err := godotenv.Load(files...); err != nil {
		logger.Debug("no .env file loaded", "err", err)
	}
}

func GetEnvString(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return v
	}
	return fallback
}

func GetEnvBool(key string, fallback bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		logger.Warn("ignoring malformed boolean", "key", key, "value", v)
		return fallback
	}
	return b
}
