package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Server    ServerConfig
	Folders   FoldersConfig
	Upload    UploadConfig
	Retention RetentionConfig
	Assembly  AssemblyAIConfig
	Groq      GroqConfig
	Storage   StorageConfig
	Retry     RetryConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string
	Host            string
	Environment     string
	AllowedOrigins  []string
	ShutdownTimeout int
}

// FoldersConfig holds the working directories of the pipeline
type FoldersConfig struct {
	UploadDir     string
	TranscriptDir string
	ArtifactDir   string
}

// UploadConfig holds upload intake limits
type UploadConfig struct {
	MaxBytes int64
}

// RetentionConfig holds the retention sweep settings
type RetentionConfig struct {
	MaxFileAge time.Duration
}

// AssemblyAIConfig holds AssemblyAI transcription configuration
type AssemblyAIConfig struct {
	APIKey string
}

// GroqConfig holds Groq completion configuration
type GroqConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float64
	MaxTokens   int
}

// StorageConfig holds artifact store configuration.
// Type selects the backend: "local" (filesystem) or "minio".
type StorageConfig struct {
	Type            string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	UseSSL          bool
}

// RetryConfig holds the external-call retry policy.
// MaxAttempts of 1 means single attempt, no retry.
type RetryConfig struct {
	MaxAttempts     int
	InitialInterval time.Duration
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
			AllowedOrigins:  []string{getEnv("ALLOWED_ORIGINS", "http://localhost:3000")},
			ShutdownTimeout: getEnvAsInt("SHUTDOWN_TIMEOUT", 10),
		},
		Folders: FoldersConfig{
			UploadDir:     getEnv("UPLOAD_DIR", "uploads"),
			TranscriptDir: getEnv("TRANSCRIPT_DIR", "transcripts"),
			ArtifactDir:   getEnv("ARTIFACT_DIR", "artifacts"),
		},
		Upload: UploadConfig{
			MaxBytes: getEnvAsInt64("UPLOAD_MAX_BYTES", 25*1024*1024),
		},
		Retention: RetentionConfig{
			MaxFileAge: getEnvAsDuration("RETENTION_MAX_FILE_AGE", "1h"),
		},
		Assembly: AssemblyAIConfig{
			APIKey: getEnv("ASSEMBLYAI_API_KEY", ""),
		},
		Groq: GroqConfig{
			APIKey:      getEnv("GROQ_API_KEY", ""),
			BaseURL:     getEnv("GROQ_API_URL", "https://api.groq.com"),
			Model:       getEnv("GROQ_MODEL", "llama-3.3-70b-versatile"),
			Temperature: getEnvAsFloat("GROQ_TEMPERATURE", 0.3),
			MaxTokens:   getEnvAsInt("GROQ_MAX_TOKENS", 4000),
		},
		Storage: StorageConfig{
			Type:            getEnv("STORAGE_TYPE", "local"),
			Endpoint:        getEnv("STORAGE_ENDPOINT", "localhost:9000"),
			AccessKeyID:     getEnv("STORAGE_ACCESS_KEY", "minioadmin"),
			SecretAccessKey: getEnv("STORAGE_SECRET_KEY", "minioadmin"),
			BucketName:      getEnv("STORAGE_BUCKET", "meeting-scribe"),
			UseSSL:          getEnvAsBool("STORAGE_USE_SSL", false),
		},
		Retry: RetryConfig{
			MaxAttempts:     getEnvAsInt("EXTERNAL_CALL_MAX_ATTEMPTS", 1),
			InitialInterval: getEnvAsDuration("EXTERNAL_CALL_RETRY_INTERVAL", "2s"),
		},
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Assembly.APIKey == "" {
		return fmt.Errorf("ASSEMBLYAI_API_KEY is required")
	}
	if c.Groq.APIKey == "" {
		return fmt.Errorf("GROQ_API_KEY is required")
	}
	if c.Storage.Type != "local" && c.Storage.Type != "minio" {
		return fmt.Errorf("STORAGE_TYPE must be \"local\" or \"minio\", got %q", c.Storage.Type)
	}
	if c.Retry.MaxAttempts < 1 {
		return fmt.Errorf("EXTERNAL_CALL_MAX_ATTEMPTS must be >= 1")
	}
	return nil
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

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
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
