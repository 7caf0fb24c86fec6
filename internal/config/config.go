package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database DatabaseConfig
	JWT      JWTConfig
	App      AppConfig
	Worker   WorkerConfig
	Payslip  PayslipConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxConns int
	MinConns int
}

// JWTConfig holds token verification settings. Tokens are issued elsewhere.
type JWTConfig struct {
	Secret string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
}

// WorkerConfig bounds the per-employee payroll computation pool.
type WorkerConfig struct {
	Concurrency int
}

// PayslipConfig controls document storage and dispatch retry.
type PayslipConfig struct {
	StorageDir         string
	DispatchRetryAfter time.Duration
	DispatchRetryEvery time.Duration
	DispatchRetryLimit int
}

func Load() (*Config, error) {
	// Missing .env is fine in containerized deployments.
	_ = godotenv.Load()

	config := &Config{}

	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}
	maxConns, err := strconv.Atoi(getEnv("DB_MAX_CONNS", "25"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_CONNS: %w", err)
	}
	minConns, err := strconv.Atoi(getEnv("DB_MIN_CONNS", "5"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MIN_CONNS: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "lumorahr"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		MaxConns: maxConns,
		MinConns: minConns,
	}

	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	config.JWT = JWTConfig{
		Secret: getEnv("JWT_SECRET_KEY", ""),
	}

	concurrency, err := strconv.Atoi(getEnv("PAYROLL_WORKER_CONCURRENCY", "8"))
	if err != nil {
		return nil, fmt.Errorf("invalid PAYROLL_WORKER_CONCURRENCY: %w", err)
	}
	config.Worker = WorkerConfig{Concurrency: concurrency}

	retryAfter, err := time.ParseDuration(getEnv("PAYSLIP_DISPATCH_RETRY_AFTER", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid PAYSLIP_DISPATCH_RETRY_AFTER: %w", err)
	}
	retryEvery, err := time.ParseDuration(getEnv("PAYSLIP_DISPATCH_RETRY_EVERY", "1h"))
	if err != nil {
		return nil, fmt.Errorf("invalid PAYSLIP_DISPATCH_RETRY_EVERY: %w", err)
	}
	retryLimit, err := strconv.Atoi(getEnv("PAYSLIP_DISPATCH_RETRY_LIMIT", "100"))
	if err != nil {
		return nil, fmt.Errorf("invalid PAYSLIP_DISPATCH_RETRY_LIMIT: %w", err)
	}
	config.Payslip = PayslipConfig{
		StorageDir:         getEnv("PAYSLIP_STORAGE_DIR", "storage/payslips"),
		DispatchRetryAfter: retryAfter,
		DispatchRetryEvery: retryEvery,
		DispatchRetryLimit: retryLimit,
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Worker.Concurrency < 1 {
		return fmt.Errorf("PAYROLL_WORKER_CONCURRENCY must be at least 1")
	}
	if c.Database.MaxConns < c.Worker.Concurrency {
		return fmt.Errorf("DB_MAX_CONNS must not be below PAYROLL_WORKER_CONCURRENCY")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
