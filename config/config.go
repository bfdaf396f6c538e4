package config

import (
	"os"
)

type Config struct {
	Server  ServerConfig
	Gateway GatewayConfig
	JWT     JWTConfig
	State   StateConfig
	Monitor MonitorConfig
}

type ServerConfig struct {
	Port string
}

// GatewayConfig points at the hosted backend providing rows, file storage,
// auth and the realtime change feed.
type GatewayConfig struct {
	URL     string
	AnonKey string
}

type JWTConfig struct {
	Secret string
	Expiry string
}

// StateConfig locates the local sqlite file holding persisted UI preferences.
type StateConfig struct {
	Path string
}

type MonitorConfig struct {
	FFmpegPath string
}

func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
		},
		Gateway: GatewayConfig{
			URL:     getEnv("GATEWAY_URL", "http://localhost:54321"),
			AnonKey: getEnv("GATEWAY_ANON_KEY", ""),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
			Expiry: getEnv("JWT_EXPIRY", "24h"),
		},
		State: StateConfig{
			Path: getEnv("STATE_DB_PATH", "./console_state.db"),
		},
		Monitor: MonitorConfig{
			FFmpegPath: getEnv("FFMPEG_PATH", "ffmpeg"),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
