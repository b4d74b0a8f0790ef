package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds application configuration
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	JWT        JWTConfig
	Storage    StorageConfig
	Auth       AuthConfig
	Assembly   AssemblyConfig
	Groq       GroqConfig
	Worker     WorkerConfig
	Submission SubmissionConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string
	Host            string
	Environment     string
	AllowedOrigins  []string
	ShutdownTimeout int
	PublicURL       string
	MaxUploadMB     int64
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host          string
	Port          string
	User          string
	Password      string
	Name          string
	SSLMode       string
	MaxConns      int
	MinConns      int
	MigrationsDir string
}

// RedisConfig holds Redis configuration. Redis is optional; an empty host
// keeps the submission guard in memory.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	AccessSecret string
	AccessExpiry time.Duration
}

// StorageConfig holds storage configuration
type StorageConfig struct {
	Enabled         bool
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	UseSSL          bool
}

// AuthConfig is the single operator login.
type AuthConfig struct {
	Enabled  bool   `envconfig:"ENABLED" default:"false"`
	Username string `envconfig:"USERNAME" default:"admin"`
	Password string `envconfig:"PASSWORD"`
}

// AssemblyConfig configures AssemblyAI transcription.
type AssemblyConfig struct {
	APIKey        string `envconfig:"API_KEY"`
	WebhookSecret string `envconfig:"WEBHOOK_SECRET"`
	MaxConcurrent int    `envconfig:"MAX_CONCURRENT" default:"3"`
}

// GroqConfig configures the analysis LLM.
type GroqConfig struct {
	APIKey      string        `envconfig:"API_KEY"`
	BaseURL     string        `envconfig:"BASE_URL" default:"https://api.groq.com/openai/v1"`
	Model       string        `envconfig:"MODEL" default:"llama-3.3-70b-versatile"`
	Temperature float64       `envconfig:"TEMPERATURE" default:"0.2"`
	MaxTokens   int           `envconfig:"MAX_TOKENS" default:"4096"`
	Timeout     time.Duration `envconfig:"TIMEOUT" default:"90s"`
}

// WorkerConfig configures the AI job worker pool.
type WorkerConfig struct {
	Count        int           `envconfig:"COUNT" default:"2"`
	PollInterval time.Duration `envconfig:"POLL_INTERVAL" default:"10s"`
	JobTimeout   time.Duration `envconfig:"JOB_TIMEOUT" default:"5m"`
	MaxRetries   int           `envconfig:"MAX_RETRIES" default:"3"`
	RetryDelay   time.Duration `envconfig:"RETRY_DELAY" default:"5s"`
}

// SubmissionConfig tunes the per-record dispatch of extracted records.
type SubmissionConfig struct {
	Concurrency int           `envconfig:"CONCURRENCY" default:"4"`
	MaxAttempts int           `envconfig:"MAX_ATTEMPTS" default:"3"`
	GuardTTL    time.Duration `envconfig:"GUARD_TTL" default:"720h"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables or defaults")
	}

	config := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			Host:            getEnv("HOST", "0.0.0.0"),
			Environment:     getEnv("ENVIRONMENT", "development"),
			AllowedOrigins:  splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173")),
			ShutdownTimeout: getEnvAsInt("SHUTDOWN_TIMEOUT", 10),
			PublicURL:       getEnv("PUBLIC_URL", "http://localhost:8080"),
			MaxUploadMB:     int64(getEnvAsInt("MAX_UPLOAD_MB", 200)),
		},
		Database: DatabaseConfig{
			Host:          getEnv("DB_HOST", "localhost"),
			Port:          getEnv("DB_PORT", "5432"),
			User:          getEnv("DB_USER", "postgres"),
			Password:      getEnv("DB_PASSWORD", "postgres"),
			Name:          getEnv("DB_NAME", "minutemind"),
			SSLMode:       getEnv("DB_SSLMODE", "disable"),
			MaxConns:      getEnvAsInt("DB_MAX_CONNS", 25),
			MinConns:      getEnvAsInt("DB_MIN_CONNS", 5),
			MigrationsDir: getEnv("DB_MIGRATIONS_DIR", "migrations"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", ""),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			AccessSecret: getEnv("JWT_ACCESS_SECRET", "your-access-secret-change-in-production"),
			AccessExpiry: getEnvAsDuration("JWT_ACCESS_EXPIRY", "8h"),
		},
		Storage: StorageConfig{
			Enabled:         getEnvAsBool("STORAGE_ENABLED", true),
			Endpoint:        getEnv("STORAGE_ENDPOINT", "localhost:9000"),
			AccessKeyID:     getEnv("STORAGE_ACCESS_KEY", "minioadmin"),
			SecretAccessKey: getEnv("STORAGE_SECRET_KEY", "minioadmin"),
			BucketName:      getEnv("STORAGE_BUCKET", "minutemind"),
			UseSSL:          getEnvAsBool("STORAGE_USE_SSL", false),
		},
	}

	sections := []struct {
		prefix string
		target interface{}
	}{
		{"AUTH", &config.Auth},
		{"ASSEMBLYAI", &config.Assembly},
		{"GROQ", &config.Groq},
		{"WORKER", &config.Worker},
		{"SUBMISSION", &config.Submission},
	}
	for _, s := range sections {
		if err := envconfig.Process(s.prefix, s.target); err != nil {
			return nil, fmt.Errorf("failed to load %s config: %w", s.prefix, err)
		}
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Auth.Enabled && c.Auth.Password == "" {
		return fmt.Errorf("AUTH_PASSWORD is required when AUTH_ENABLED=true")
	}
	if c.Auth.Enabled && c.JWT.AccessSecret == "" {
		return fmt.Errorf("JWT_ACCESS_SECRET is required when AUTH_ENABLED=true")
	}
	if c.Worker.Count < 0 {
		return fmt.Errorf("WORKER_COUNT must not be negative")
	}
	if c.Submission.Concurrency < 1 {
		return fmt.Errorf("SUBMISSION_CONCURRENCY must be at least 1")
	}
	return nil
}

// AIEnabled reports whether both AI backends are configured.
func (c *Config) AIEnabled() bool {
	return c.Assembly.APIKey != "" && c.Groq.APIKey != ""
}

// GetDatabaseDSN returns the database connection string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// GetRedisAddr returns the Redis address, or "" when Redis is not configured.
func (c *Config) GetRedisAddr() string {
	if c.Redis.Host == "" {
		return ""
	}
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		duration, _ = time.ParseDuration(defaultValue)
	}
	return duration
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
