package config

import (
	"crypto/rand"
	"encoding/base64"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port           string
	BackendURL     string
	BackendTimeout time.Duration
	ImgBBKey       string
	ImgBBEndpoint  string
	LegacyCatalog  string
	CSRFKey        []byte
	SessionKey     []byte
	CookieDomain   string
	CookieSecure   bool
}

func LoadConfig() (*Config, error) {
	// Optional .env for local development; missing file is fine.
	_ = godotenv.Load()

	cfg := &Config{
		Port:          getEnv("PORT", "8585"),
		BackendURL:    getEnv("BACKEND_URL", "http://localhost:3000"),
		ImgBBKey:      os.Getenv("IMGBB_KEY"),
		ImgBBEndpoint: getEnv("IMGBB_ENDPOINT", "https://api.imgbb.com/1/upload"),
		LegacyCatalog: getEnv("LEGACY_CATALOG", "./static/products.json"),
		CookieDomain:  getEnv("COOKIE_DOMAIN", ""),
		CookieSecure:  getEnv("COOKIE_SECURE", "false") == "true",
	}

	timeoutStr := getEnv("BACKEND_TIMEOUT", "10s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		slog.Warn("Invalid BACKEND_TIMEOUT, falling back to 10s", "value", timeoutStr)
		timeout = 10 * time.Second
	}
	cfg.BackendTimeout = timeout

	cfg.CSRFKey = loadKey("CSRF_KEY")
	cfg.SessionKey = loadKey("SESSION_KEY")

	if _, err := strconv.Atoi(cfg.Port); err != nil {
		slog.Error("Invalid PORT environment variable. Falling back to default.", "PORT", os.Getenv("PORT"))
		cfg.Port = "8585"
	}

	if cfg.ImgBBKey == "" {
		slog.Warn("IMGBB_KEY is not set. Product image upload will fail until it is configured.")
	}

	return cfg, nil
}

// loadKey reads a base64 key from the environment, falling back to a random
// development key when unset or invalid. Random keys change on every restart,
// so sessions and CSRF tokens will not survive a restart without real keys.
func loadKey(name string) []byte {
	raw := os.Getenv(name)
	if raw == "" {
		slog.Warn(name + " environment variable not set. Generating a random key for development. PLEASE SET " + name + " IN PRODUCTION!")
		return generateRandomBytes(32)
	}
	decoded, err := base64.StdEncoding.DecodeString(raw)
	if err != nil || len(decoded) < 32 {
		slog.Warn(name + " is invalid or too short (min 32 bytes). Generating a random key for development. PLEASE SET A SECURE " + name + " IN PRODUCTION!")
		return generateRandomBytes(32)
	}
	return decoded
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func generateRandomBytes(n int) []byte {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		slog.Error("Failed to read random bytes", "error", err)
		// Panic-prevention fallback only; crypto/rand failing is already fatal
		// for anything security sensitive.
		fallbackKey := "fallback-insecure-key-" + strconv.FormatInt(time.Now().UnixNano(), 10)
		if len(fallbackKey) < n {
			padded := make([]byte, n)
			copy(padded, fallbackKey)
			return padded
		}
		return []byte(fallbackKey)[:n]
	}
	return b
}
