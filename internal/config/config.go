package config

import (
	"os"
	"strconv"
)

// ContentConfig holds the locations of the guide's on-disk assets.
type ContentConfig struct {
	// Dir is the directory containing one markdown file per guide chapter.
	Dir string
	// StaticDir is the directory of CSS/SVG/PNG assets served under /static.
	StaticDir string
	// ViewsDir is the directory of HTML templates.
	ViewsDir string
	// Watch enables filesystem watching so content edits are picked up
	// without a restart.
	Watch bool
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port string
	// StaticMaxAgeSec is the Cache-Control max-age applied to static assets.
	StaticMaxAgeSec int
	// ShutdownTimeoutSec bounds graceful shutdown on SIGTERM.
	ShutdownTimeoutSec int
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables.
type AppConfig struct {
	LogLevel string
	Server   ServerConfig
	Content  ContentConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Server: ServerConfig{
			Port:               getEnv("PORT", "8080"),
			StaticMaxAgeSec:    getEnvInt("STATIC_MAX_AGE_SEC", 7200),
			ShutdownTimeoutSec: getEnvInt("SHUTDOWN_TIMEOUT_SEC", 10),
		},
		Content: ContentConfig{
			Dir:       getEnv("CONTENT_DIR", "content"),
			StaticDir: getEnv("STATIC_DIR", "static"),
			ViewsDir:  getEnv("VIEWS_DIR", "views"),
			Watch:     getEnvBool("WATCH_CONTENT", false),
		},
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}
