package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Strava    StravaConfig
	Calendar  CalendarConfig
	WebSocket WebSocketConfig
	CORS      CORSConfig
}

type ServerConfig struct {
	Port string
	Host string
	Env  string
}

type DatabaseConfig struct {
	Path string
}

type StravaConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
}

type CalendarConfig struct {
	// Timezone fixes the day boundary for the calendar view.
	Timezone string
}

type WebSocketConfig struct {
	WriteWait  time.Duration
	PongWait   time.Duration
	PingPeriod time.Duration
}

type CORSConfig struct {
	AllowedOrigins string
	AllowedMethods string
	AllowedHeaders string
}

func Load() (*Config, error) {
	godotenv.Load()

	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "3000"),
			Host: getEnv("HOST", "0.0.0.0"),
			Env:  getEnv("ENV", "development"),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "data/gearlog.db"),
		},
		Strava: StravaConfig{
			ClientID:     getEnv("STRAVA_CLIENT_ID", ""),
			ClientSecret: getEnv("STRAVA_CLIENT_SECRET", ""),
			RedirectURI:  getEnv("STRAVA_REDIRECT_URI", "http://localhost:3000/api/strava/callback"),
		},
		Calendar: CalendarConfig{
			Timezone: getEnv("CALENDAR_TIMEZONE", "America/Los_Angeles"),
		},
		WebSocket: WebSocketConfig{
			WriteWait:  10 * time.Second,
			PongWait:   60 * time.Second,
			PingPeriod: 54 * time.Second,
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
			AllowedMethods: getEnv("CORS_ALLOWED_METHODS", "GET,POST,PUT,DELETE,OPTIONS"),
			AllowedHeaders: getEnv("CORS_ALLOWED_HEADERS", "Content-Type,Authorization"),
		},
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
