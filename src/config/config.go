package config

import (
	"fmt"
	"os"
	"strconv"
)

// QUEUE_EVENTS_EXCHANGE is the fanout exchange queue events are published to.
const QUEUE_EVENTS_EXCHANGE = "scheduler.queue-events"

// DatabaseConfig holds the PostgreSQL connection settings.
type DatabaseConfig struct {
	host     string
	port     int
	user     string
	password string
	dbName   string
}

func (c DatabaseConfig) GetHost() string { return c.host }

func (c DatabaseConfig) GetPort() int { return c.port }

func (c DatabaseConfig) GetUser() string { return c.user }

func (c DatabaseConfig) GetPassword() string { return c.password }

func (c DatabaseConfig) GetDBName() string { return c.dbName }

type GlobalConfig struct {
	LogLevel   string
	Host       string
	Port       string
	database   DatabaseConfig
	RabbitHost string
	RabbitPort int32
	RabbitUser string
	RabbitPass string
}

func (c *GlobalConfig) GetHost() string { return c.Host }

func (c *GlobalConfig) GetPort() string { return c.Port }

func (c *GlobalConfig) GetDatabaseConfig() *DatabaseConfig { return &c.database }

// NotifierEnabled reports whether queue-event publishing is configured.
// The notifier is optional: leaving RABBITMQ_HOST unset disables it.
func (c *GlobalConfig) NotifierEnabled() bool { return c.RabbitHost != "" }

// GetRabbitURL returns the AMQP connection URL for the configured broker.
func (c *GlobalConfig) GetRabbitURL() string {
	return fmt.Sprintf("amqp://%s:%s@%s:%d/", c.RabbitUser, c.RabbitPass, c.RabbitHost, c.RabbitPort)
}

func NewConfig() (GlobalConfig, error) {
	// Set log level from environment
	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		return GlobalConfig{}, fmt.Errorf("LOG_LEVEL environment variable is required")
	}

	host := os.Getenv("HOST")
	if host == "" {
		return GlobalConfig{}, fmt.Errorf("HOST environment variable is required")
	}

	port := os.Getenv("PORT")
	if port == "" {
		return GlobalConfig{}, fmt.Errorf("PORT environment variable is required")
	}

	// Get database connection details from environment
	dbHost := os.Getenv("DB_HOST")
	if dbHost == "" {
		return GlobalConfig{}, fmt.Errorf("DB_HOST environment variable is required")
	}

	dbPortStr := os.Getenv("DB_PORT")
	if dbPortStr == "" {
		return GlobalConfig{}, fmt.Errorf("DB_PORT environment variable is required")
	}
	dbPort, err := strconv.Atoi(dbPortStr)
	if err != nil {
		return GlobalConfig{}, fmt.Errorf("DB_PORT must be a valid integer: %w", err)
	}

	dbUser := os.Getenv("DB_USER")
	if dbUser == "" {
		return GlobalConfig{}, fmt.Errorf("DB_USER environment variable is required")
	}

	dbPass := os.Getenv("DB_PASS")
	if dbPass == "" {
		return GlobalConfig{}, fmt.Errorf("DB_PASS environment variable is required")
	}

	dbName := os.Getenv("DB_NAME")
	if dbName == "" {
		return GlobalConfig{}, fmt.Errorf("DB_NAME environment variable is required")
	}

	cfg := GlobalConfig{
		LogLevel: logLevel,
		Host:     host,
		Port:     port,
		database: DatabaseConfig{
			host:     dbHost,
			port:     dbPort,
			user:     dbUser,
			password: dbPass,
			dbName:   dbName,
		},
	}

	// RabbitMQ is optional: queue-event publishing is disabled when unset
	rabbitHost := os.Getenv("RABBITMQ_HOST")
	if rabbitHost == "" {
		return cfg, nil
	}

	rabbitPortStr := os.Getenv("RABBITMQ_PORT")
	if rabbitPortStr == "" {
		return GlobalConfig{}, fmt.Errorf("RABBITMQ_PORT environment variable is required when RABBITMQ_HOST is set")
	}
	rabbitPort, err := strconv.ParseInt(rabbitPortStr, 10, 32)
	if err != nil {
		return GlobalConfig{}, fmt.Errorf("RABBITMQ_PORT must be a valid integer: %w", err)
	}

	rabbitUser := os.Getenv("RABBITMQ_USER")
	if rabbitUser == "" {
		return GlobalConfig{}, fmt.Errorf("RABBITMQ_USER environment variable is required when RABBITMQ_HOST is set")
	}

	rabbitPass := os.Getenv("RABBITMQ_PASS")
	if rabbitPass == "" {
		return GlobalConfig{}, fmt.Errorf("RABBITMQ_PASS environment variable is required when RABBITMQ_HOST is set")
	}

	cfg.RabbitHost = rabbitHost
	cfg.RabbitPort = int32(rabbitPort)
	cfg.RabbitUser = rabbitUser
	cfg.RabbitPass = rabbitPass

	return cfg, nil
}
