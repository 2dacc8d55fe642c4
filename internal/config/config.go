package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
)

type Config struct {
	Server   ServerConfig
	Redis    RedisConfig
	Postgres PostgresConfig
	Sheet    SheetConfig
	Admin    AdminConfig

	// StoreDriver selects where order records live: "redis" (default) or
	// "postgres". Redis is always required for the cache, countdown and
	// pub/sub pieces.
	StoreDriver string
}

type ServerConfig struct {
	Host string
	Port int
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type PostgresConfig struct {
	User     string
	Password string
	Name     string
	Host     string
	Port     int
	SSLMode  string
}

type SheetConfig struct {
	// URL of the Apps Script web app mirroring orders to the spreadsheet.
	// Empty disables remote sync.
	URL string
}

type AdminConfig struct {
	Password string
}

func New() (*Config, error) {
	const op = "config.New"

	_ = godotenv.Load()

	serverHost := os.Getenv("SERVER_HOST")
	if serverHost == "" {
		serverHost = "localhost"
	}

	serverPortStr := os.Getenv("SERVER_PORT")
	if serverPortStr == "" {
		serverPortStr = "8080"
	}

	serverPort, err := strconv.Atoi(serverPortStr)
	if err != nil {
		return nil, fmt.Errorf("%s: invalid SERVER_PORT: %w", op, err)
	}

	serverCfg := ServerConfig{
		Host: serverHost,
		Port: serverPort,
	}

	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}

	redisDBStr := os.Getenv("REDIS_DB")
	if redisDBStr == "" {
		redisDBStr = "0"
	}

	redisDB, err := strconv.Atoi(redisDBStr)
	if err != nil {
		return nil, fmt.Errorf("%s: invalid REDIS_DB: %w", op, err)
	}

	redisCfg := RedisConfig{
		Addr:     redisAddr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       redisDB,
	}

	storeDriver := os.Getenv("STORE_DRIVER")
	if storeDriver == "" {
		storeDriver = DriverRedis
	}
	if storeDriver != DriverRedis && storeDriver != DriverPostgres {
		return nil, fmt.Errorf("%s: invalid STORE_DRIVER %q", op, storeDriver)
	}

	var postgresCfg PostgresConfig
	if storeDriver == DriverPostgres {
		postgresCfg, err = newPostgresConfig()
		if err != nil {
			return nil, fmt.Errorf("%s:%w", op, err)
		}
	}

	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminPassword == "" {
		return nil, fmt.Errorf("%s: missing ADMIN_PASSWORD", op)
	}

	return &Config{
		Server:      serverCfg,
		Redis:       redisCfg,
		Postgres:    postgresCfg,
		Sheet:       SheetConfig{URL: os.Getenv("SHEET_URL")},
		Admin:       AdminConfig{Password: adminPassword},
		StoreDriver: storeDriver,
	}, nil
}

func newPostgresConfig() (PostgresConfig, error) {
	postgresHost := os.Getenv("POSTGRES_HOST")
	if postgresHost == "" {
		postgresHost = "localhost"
	}

	postgresPortStr := os.Getenv("POSTGRES_PORT")
	if postgresPortStr == "" {
		postgresPortStr = "5432"
	}

	postgresPort, err := strconv.Atoi(postgresPortStr)
	if err != nil {
		return PostgresConfig{}, fmt.Errorf("invalid POSTGRES_PORT: %w", err)
	}

	postgresUser := os.Getenv("POSTGRES_USER")
	if postgresUser == "" {
		return PostgresConfig{}, fmt.Errorf("missing POSTGRES_USER")
	}

	postgresPassword := os.Getenv("POSTGRES_PASSWORD")
	if postgresPassword == "" {
		return PostgresConfig{}, fmt.Errorf("missing POSTGRES_PASSWORD")
	}

	postgresDB := os.Getenv("POSTGRES_DB")
	if postgresDB == "" {
		return PostgresConfig{}, fmt.Errorf("missing POSTGRES_DB")
	}

	postgresSSLMode := os.Getenv("POSTGRES_SSLMODE")
	if postgresSSLMode == "" {
		postgresSSLMode = "disable"
	}

	return PostgresConfig{
		User:     postgresUser,
		Password: postgresPassword,
		Name:     postgresDB,
		Host:     postgresHost,
		Port:     postgresPort,
		SSLMode:  postgresSSLMode,
	}, nil
}
