package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type RabbitMQConfig struct {
	User string
	Pass string
	Host string
	Port string
}

type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Pass     string
	From     string
	NotifyTo string
}

// Enabled: notificação por email é opcional; sem host configurado, não envia.
func (c SMTPConfig) Enabled() bool {
	return c.Host != "" && c.NotifyTo != ""
}

type Config struct {
	Environment string
	LogLevel    string
	HTTPPort    string
	RabbitMQ    RabbitMQConfig
	SMTP        SMTPConfig
}

func Load() *Config {
	godotenv.Load()

	smtpPort, _ := strconv.Atoi(getEnv("MAIL_PORT", "587"))

	return &Config{
		Environment: getEnv("APP_ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		HTTPPort:    getEnv("HTTP_PORT", "8080"),
		RabbitMQ: RabbitMQConfig{
			User: getEnv("RABBITMQ_USER", "guest"),
			Pass: getEnv("RABBITMQ_PASS", "guest"),
			Host: getEnv("RABBITMQ_HOST", "localhost"),
			Port: getEnv("RABBITMQ_PORT", "5672"),
		},
		SMTP: SMTPConfig{
			Host:     os.Getenv("MAIL_HOST"),
			Port:     smtpPort,
			User:     os.Getenv("MAIL_USER"),
			Pass:     os.Getenv("MAIL_PASS"),
			From:     getEnv("MAIL_FROM", "noreply@localhost"),
			NotifyTo: os.Getenv("MAIL_NOTIFY_TO"),
		},
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
