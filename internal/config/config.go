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
	Redis    RedisConfig
	HRMS     HRMSConfig
	Service  ServiceAccountConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret            string
	RefreshExpiration string
	AccessExpiration  string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
}

// RedisConfig holds cache configuration. An empty Addr disables caching.
type RedisConfig struct {
	Addr         string
	Password     string
	DB           int
	DashboardTTL time.Duration
}

// HRMSConfig holds the upstream HR system connection. An empty BaseURL
// disables the sync job.
type HRMSConfig struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
	TokenURL     string
	SyncInterval time.Duration
	PageSize     int
}

// ServiceAccountConfig identifies the principal that system jobs run as.
type ServiceAccountConfig struct {
	Email string
}

func (h HRMSConfig) Enabled() bool {
	return h.BaseURL != ""
}

func Load() (*Config, error) {
	// Optional in containerised deployments where env comes from the runtime.
	_ = godotenv.Load()

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "skillsphere"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Redis configuration
	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	dashboardTTL, err := time.ParseDuration(getEnv("DASHBOARD_CACHE_TTL", "5m"))
	if err != nil {
		return nil, fmt.Errorf("invalid DASHBOARD_CACHE_TTL: %w", err)
	}

	config.Redis = RedisConfig{
		Addr:         getEnv("REDIS_ADDR", ""),
		Password:     getEnv("REDIS_PASSWORD", ""),
		DB:           redisDB,
		DashboardTTL: dashboardTTL,
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	// JWT configuration
	jwtRefreshExpiration := getEnv("JWT_REFRESH_EXPIRATION_TIME", "168h")
	jwtAccessExpiration := getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h")

	config.JWT = JWTConfig{
		Secret:            getEnv("JWT_SECRET_KEY", ""),
		RefreshExpiration: jwtRefreshExpiration,
		AccessExpiration:  jwtAccessExpiration,
	}

	// HRMS sync configuration
	syncInterval, err := time.ParseDuration(getEnv("HRMS_SYNC_INTERVAL", "6h"))
	if err != nil {
		return nil, fmt.Errorf("invalid HRMS_SYNC_INTERVAL: %w", err)
	}

	pageSize, err := strconv.Atoi(getEnv("HRMS_PAGE_SIZE", "200"))
	if err != nil {
		return nil, fmt.Errorf("invalid HRMS_PAGE_SIZE: %w", err)
	}

	config.HRMS = HRMSConfig{
		BaseURL:      getEnv("HRMS_BASE_URL", ""),
		ClientID:     getEnv("HRMS_CLIENT_ID", ""),
		ClientSecret: getEnv("HRMS_CLIENT_SECRET", ""),
		TokenURL:     getEnv("HRMS_TOKEN_URL", ""),
		SyncInterval: syncInterval,
		PageSize:     pageSize,
	}

	config.Service = ServiceAccountConfig{
		Email: getEnv("SERVICE_ACCOUNT_EMAIL", "sync@skillsphere.internal"),
	}

	// Validate required fields
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
	if c.HRMS.Enabled() {
		if c.HRMS.ClientID == "" {
			return fmt.Errorf("HRMS_CLIENT_ID is required when HRMS_BASE_URL is set")
		}
		if c.HRMS.ClientSecret == "" {
			return fmt.Errorf("HRMS_CLIENT_SECRET is required when HRMS_BASE_URL is set")
		}
		if c.HRMS.TokenURL == "" {
			return fmt.Errorf("HRMS_TOKEN_URL is required when HRMS_BASE_URL is set")
		}
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
