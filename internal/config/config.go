package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Storage  StorageConfig
	Folders  FoldersConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type JWTConfig struct {
	Secret     string
	Expiration string
}

type StorageConfig struct {
	Provider      string
	Path          string
	PublicURL     string
	MaxUploadSize int64
	S3            S3Config
}

type S3Config struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	PublicURL       string
	Endpoint        string
	ForcePathStyle  bool
}

// FoldersConfig selects where the folder collection blob lives.
type FoldersConfig struct {
	// Backend is "db" (blobs table) or "file" (local JSON file).
	Backend string
	// Path is the directory used by the file backend.
	Path string
}

var config *Config

func Load() (*Config, error) {
	// A missing .env is fine; the environment may carry everything.
	_ = godotenv.Load()

	config = &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
			Env:  getEnv("ENV", "development"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "echoplay"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		JWT: JWTConfig{
			Secret:     getEnv("JWT_SECRET", "your-secret-key"),
			Expiration: getEnv("JWT_EXPIRATION", "24h"),
		},
		Storage: StorageConfig{
			Provider:      getEnv("STORAGE_PROVIDER", "local"),
			Path:          getEnv("STORAGE_PATH", "./storage/media"),
			PublicURL:     getEnv("STORAGE_PUBLIC_URL", ""),
			MaxUploadSize: int64(getEnvAsInt("MAX_UPLOAD_SIZE", 10485760)),
			S3: S3Config{
				Region:          getEnv("AWS_REGION", "us-east-1"),
				AccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
				SecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
				BucketName:      getEnv("AWS_BUCKET_NAME", ""),
				PublicURL:       getEnv("AWS_PUBLIC_URL", ""),
				Endpoint:        getEnv("AWS_ENDPOINT", ""),
				ForcePathStyle:  getEnvAsBool("AWS_FORCE_PATH_STYLE", false),
			},
		},
		Folders: FoldersConfig{
			Backend: getEnv("FOLDERS_BACKEND", "db"),
			Path:    getEnv("FOLDERS_PATH", "./data"),
		},
	}

	return config, nil
}

// GetConfig returns the configuration loaded by Load.
func GetConfig() *Config {
	return config
}

func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		var intVal int
		if _, err := fmt.Sscanf(value, "%d", &intVal); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		return value == "true" || value == "1" || value == "yes"
	}
	return defaultValue
}
