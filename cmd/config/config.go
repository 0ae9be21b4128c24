package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite3"
)

type Config struct {
	Environment string
	Log         LogConfig
	Client      ClientConfig
	Server      ServerConfig
	Database    DatabaseConfig
	Redis       RedisConfig
	RabbitMQ    RabbitMQConfig
}

// LogConfig tunes utils/logger. An empty File keeps the default stderr sink.
type LogConfig struct {
	Level string
	File  string
}

// ClientConfig is read by the terminal client.
type ClientConfig struct {
	ServerURL string
	PageSize  int
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	// PublicURL prefixes the image links handed out by the dev backend.
	PublicURL string
}

type DatabaseConfig struct {
	Driver          string
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	Path            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	ImageTTL time.Duration
}

// RabbitMQConfig is optional; the publisher is skipped when Host is empty.
type RabbitMQConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Exchange string
}

// Load reads .env when present, then the process environment.
func Load() *Config {
	_ = godotenv.Load()

	serverURL := getEnv("EDUZAP_SERVER_URL", "")
	if serverURL == "" {
		serverURL = getEnv("EXPO_PUBLIC_SERVER_URL", "http://localhost:8080")
	}

	port := getEnv("SERVER_PORT", "8080")

	return &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", ""),
			File:  getEnv("LOG_FILE", ""),
		},
		Client: ClientConfig{
			ServerURL: strings.TrimRight(serverURL, "/"),
			PageSize:  getEnvInt("CLIENT_PAGE_SIZE", 5),
		},
		Server: ServerConfig{
			Port:         port,
			ReadTimeout:  getEnvDuration("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout: getEnvDuration("SERVER_WRITE_TIMEOUT", 15*time.Second),
			IdleTimeout:  getEnvDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),
			PublicURL:    strings.TrimRight(getEnv("SERVER_PUBLIC_URL", "http://localhost:"+port), "/"),
		},
		Database: DatabaseConfig{
			Driver:          getEnv("DB_DRIVER", DriverSQLite),
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnvInt("DB_PORT", 3306),
			User:            getEnv("DB_USER", "root"),
			Password:        getEnv("DB_PASSWORD", ""),
			Name:            getEnv("DB_NAME", "eduzap"),
			Path:            getEnv("DB_PATH", "eduzap.db"),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", ""),
			Port:     getEnvInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
			ImageTTL: getEnvDuration("REDIS_IMAGE_TTL", 0),
		},
		RabbitMQ: RabbitMQConfig{
			Host:     getEnv("RABBITMQ_HOST", ""),
			Port:     getEnvInt("RABBITMQ_PORT", 5672),
			User:     getEnv("RABBITMQ_USER", "guest"),
			Password: getEnv("RABBITMQ_PASSWORD", "guest"),
			Exchange: getEnv("RABBITMQ_EXCHANGE", "eduzap.requests"),
		},
	}
}

// GetDSN returns the data source name for the configured driver
func (c *Config) GetDSN() string {
	if c.Database.Driver == DriverSQLite {
		return c.Database.Path
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
	)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return v
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return d
}
