package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// StorageConfig holds object storage credentials and addressing. All four of
// AccessKey, SecretKey, Bucket, and Domain must be set before upload
// credentials can be issued.
type StorageConfig struct {
	AccessKey string
	SecretKey string
	Bucket    string
	Domain    string // public base URL clients read assets from
	Region    string
	Endpoint  string // S3-compatible endpoint, empty for AWS

	UploadTokenTTL time.Duration
}

// Configured reports whether every setting required for minting upload
// credentials is present.
func (s StorageConfig) Configured() bool {
	return s.AccessKey != "" && s.SecretKey != "" && s.Bucket != "" && s.Domain != ""
}

// Config is built once at process start and passed into each component
// constructor. No component reads the environment directly.
type Config struct {
	Port        string
	DatabaseURL string

	JWTSecret  []byte
	BcryptCost int

	MaxFileSize int64         // bytes
	MaxDuration time.Duration // per-sound length bound

	Storage StorageConfig

	LogLevel string
	LogFile  string
}

const (
	defaultMaxFileSize = 5 * 1024 * 1024 // 5MB
	defaultMaxDuration = 30 * time.Second
	defaultTokenTTL    = time.Hour
)

// Load reads configuration from the environment. JWT_SECRET is the only
// hard requirement; storage settings are validated lazily when an upload
// token is requested.
func Load() (*Config, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is required")
	}

	cfg := &Config{
		Port:        getEnvOrDefault("PORT", "3000"),
		DatabaseURL: databaseURL(),
		JWTSecret:   []byte(secret),
		BcryptCost:  getEnvInt("BCRYPT_COST", bcrypt.DefaultCost),
		MaxFileSize: int64(getEnvInt("MAX_FILE_SIZE", defaultMaxFileSize)),
		MaxDuration: time.Duration(getEnvInt("MAX_DURATION_SECONDS", int(defaultMaxDuration.Seconds()))) * time.Second,
		Storage: StorageConfig{
			AccessKey:      os.Getenv("STORAGE_ACCESS_KEY"),
			SecretKey:      os.Getenv("STORAGE_SECRET_KEY"),
			Bucket:         os.Getenv("STORAGE_BUCKET"),
			Domain:         os.Getenv("STORAGE_DOMAIN"),
			Region:         getEnvOrDefault("STORAGE_REGION", "us-east-1"),
			Endpoint:       os.Getenv("STORAGE_ENDPOINT"),
			UploadTokenTTL: defaultTokenTTL,
		},
		LogLevel: getEnvOrDefault("LOG_LEVEL", "info"),
		LogFile:  getEnvOrDefault("LOG_FILE", "server.log"),
	}

	return cfg, nil
}

// MaxFileSizeMB returns the upload size limit in whole megabytes, for
// user-facing validation messages.
func (c *Config) MaxFileSizeMB() int64 {
	return c.MaxFileSize / 1024 / 1024
}

func databaseURL() string {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return url
	}

	host := getEnvOrDefault("DB_HOST", "localhost")
	port := getEnvOrDefault("DB_PORT", "5432")
	user := getEnvOrDefault("DB_USER", "postgres")
	password := getEnvOrDefault("DB_PASSWORD", "")
	dbname := getEnvOrDefault("DB_NAME", "soundboard")
	sslmode := getEnvOrDefault("DB_SSLMODE", "disable")

	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, dbname, sslmode)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
