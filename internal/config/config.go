// Package config содержит загрузку и валидацию конфигурации.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"discography/internal/gateway/spotify"
	"discography/internal/model"

	"github.com/joho/godotenv"
)

// Config представляет конфигурацию приложения
type Config struct {
	// Spotify
	SpotifyClientID     string
	SpotifyClientSecret string
	SpotifyAuthURL      string
	SpotifyAPIURL       string

	// Извлечение
	ArtistName string

	// Warehouse
	DatabaseURL    string
	WarehouseTable string

	// Каталог для NDJSON вместо базы данных
	OutputDir string

	// Logging
	LogLevel string

	// App Data Directory
	AppDataDir string
}

// Load загружает конфигурацию из переменных окружения
func Load() (*Config, error) {
	// Загружаем .env файл если он существует
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	config := &Config{
		SpotifyClientID:     getEnv("SPOTIFY_CLIENT_ID", ""),
		SpotifyClientSecret: getEnv("SPOTIFY_CLIENT_SECRET", ""),
		SpotifyAuthURL:      getEnv("SPOTIFY_AUTH_URL", spotify.DefaultAuthURL),
		SpotifyAPIURL:       getEnv("SPOTIFY_API_URL", spotify.DefaultAPIURL),
		ArtistName:          getEnv("ARTIST_NAME", "Bad Bunny"),
		DatabaseURL:         getEnv("DB_DSN", ""),
		WarehouseTable:      getEnv("WAREHOUSE_TABLE", model.DefaultTrackTable),
		OutputDir:           getEnv("OUTPUT_DIR", ""),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		AppDataDir:          getEnv("APP_DATA_DIR", "./data"),
	}

	return config, nil
}

// Validate проверяет конфигурацию
func (c *Config) Validate() error {
	if c.SpotifyClientID == "" {
		return fmt.Errorf("SPOTIFY_CLIENT_ID is required")
	}

	if c.SpotifyClientSecret == "" {
		return fmt.Errorf("SPOTIFY_CLIENT_SECRET is required")
	}

	if c.ArtistName == "" {
		return fmt.Errorf("ARTIST_NAME is required")
	}

	if c.WarehouseTable == "" {
		return fmt.Errorf("WAREHOUSE_TABLE is required")
	}

	// Без каталога вывода пишем в базу
	if c.OutputDir == "" && c.DatabaseURL == "" {
		return fmt.Errorf("DB_DSN is required")
	}

	return nil
}

// SpotifyConfig возвращает параметры клиента Spotify
func (c *Config) SpotifyConfig() spotify.Config {
	return spotify.Config{
		ClientID:     c.SpotifyClientID,
		ClientSecret: c.SpotifyClientSecret,
		AuthURL:      c.SpotifyAuthURL,
		APIURL:       c.SpotifyAPIURL,
	}
}

// getEnv получает переменную окружения с значением по умолчанию
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
