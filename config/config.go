package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"netboxbot/core/log"
)

type NetBoxConfig struct {
	APIURL     string
	APIToken   string
	CACertPath string
}

type TelegramConfig struct {
	BotToken string
}

type AppConfig struct {
	// Core configuration
	Port               string // Optional with default "8000"
	CORSAllowedOrigins string // Optional with default "*"
	Environment        string
	LogLevel           slog.Level
	LogFile            string
	WorkerPoolSize     int

	// Alerting (optional)
	SlackAlertWebhookURL string
	ServerLogsURL        string

	NetBoxConfig   NetBoxConfig
	TelegramConfig TelegramConfig
}

// LoadConfig reads the environment, optionally seeded from envFile.
// Values already present in the environment win over the file.
func LoadConfig(envFile string) (*AppConfig, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			log.Warn("⚠️ Could not load env file, continuing with system env vars", "file", envFile)
		}
	}

	netboxURL, err := getEnvRequired("NETBOX_API_URL")
	if err != nil {
		return nil, err
	}

	netboxToken, err := getEnvRequired("NETBOX_API_TOKEN")
	if err != nil {
		return nil, err
	}

	caCertPath, err := getEnvRequired("SSL_CA_CERT")
	if err != nil {
		return nil, err
	}

	botToken, err := getEnvRequired("TELEGRAM_BOT_TOKEN")
	if err != nil {
		return nil, err
	}

	logLevel, err := log.ParseLevel(getEnvWithDefault("LOG_LEVEL", "info"))
	if err != nil {
		return nil, fmt.Errorf("LOG_LEVEL: %w", err)
	}

	workerPoolSize, err := strconv.Atoi(getEnvWithDefault("WORKER_POOL_SIZE", "10"))
	if err != nil || workerPoolSize < 1 {
		return nil, fmt.Errorf("WORKER_POOL_SIZE must be a positive integer, got %q", os.Getenv("WORKER_POOL_SIZE"))
	}

	config := &AppConfig{
		Port:               getEnvWithDefault("PORT", "8000"),
		CORSAllowedOrigins: getEnvWithDefault("CORS_ALLOWED_ORIGINS", "*"),
		Environment:        getEnvWithDefault("ENVIRONMENT", "dev"),
		LogLevel:           logLevel,
		LogFile:            getEnvWithDefault("LOG_FILE", "app.log"),
		WorkerPoolSize:     workerPoolSize,

		SlackAlertWebhookURL: os.Getenv("SLACK_ALERT_WEBHOOK_URL"),
		ServerLogsURL:        os.Getenv("SERVER_LOGS_URL"),

		NetBoxConfig: NetBoxConfig{
			APIURL:     netboxURL,
			APIToken:   netboxToken,
			CACertPath: caCertPath,
		},
		TelegramConfig: TelegramConfig{
			BotToken: botToken,
		},
	}

	if config.SlackAlertWebhookURL == "" {
		log.Warn("⚠️ Slack alert webhook not configured - error alerts will be disabled")
	}

	return config, nil
}

func getEnvRequired(key string) (string, error) {
	value := os.Getenv(key)
	if value == "" {
		return "", fmt.Errorf("%s is not set", key)
	}
	return value, nil
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
