package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Settings backends
const (
	BackendFile  = "file"
	BackendRedis = "redis"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Settings SettingsConfig
	Artwork  ArtworkConfig
	Redis    RedisConfig
	LogLevel string
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port         int
	ReadTimeout  int
	WriteTimeout int
}

// SettingsConfig selects where the shared app list is read from
type SettingsConfig struct {
	Backend string // "file" or "redis"
	File    string // YAML suite file for the file backend
	Suite   string
}

// ArtworkConfig holds the locations used to resolve tile images
type ArtworkConfig struct {
	AppGroup      string
	ContainerPath string // empty when the shared container is unavailable
	BundlePath    string
	Placeholder   string
}

// RedisConfig holds Redis-related configuration
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (optional)
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:         getEnvAsInt("SERVER_PORT", 8080),
			ReadTimeout:  getEnvAsInt("SERVER_READ_TIMEOUT", 10),
			WriteTimeout: getEnvAsInt("SERVER_WRITE_TIMEOUT", 10),
		},
		Settings: SettingsConfig{
			Backend: strings.ToLower(getEnv("SETTINGS_BACKEND", BackendFile)),
			File:    getEnv("SETTINGS_FILE", "/opt/moonlight/settings.yaml"),
			Suite:   getEnv("SETTINGS_SUITE", "group.MoonlightTV"),
		},
		Artwork: ArtworkConfig{
			AppGroup:      getEnv("APP_GROUP", "group.MoonlightTV"),
			ContainerPath: getEnv("APP_GROUP_CONTAINER", ""),
			BundlePath:    getEnv("BUNDLE_PATH", "/opt/moonlight/bundle"),
			Placeholder:   getEnv("PLACEHOLDER_IMAGE", "NoAppImage"),
		},
		Redis: RedisConfig{
			Addr:     getRedisAddr(),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	return cfg, nil
}

// getRedisAddr prefers REDIS_URL, with or without the redis:// prefix, over REDIS_ADDR
func getRedisAddr() string {
	if url := os.Getenv("REDIS_URL"); url != "" {
		return strings.TrimPrefix(url, "redis://")
	}
	return getEnv("REDIS_ADDR", "localhost:6379")
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an environment variable as int or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
