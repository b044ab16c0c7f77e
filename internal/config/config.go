package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Storage  StorageConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	AttachmentTopic    string
}

type DatabaseConfig struct {
	Connection string
}

type StorageConfig struct {
	Endpoint      string
	Region        string
	AccessKeyID   string
	SecretKey     string
	Bucket        string
	UsePathStyle  bool
	SignedURLTTL  int // seconds
	MaxUploadSize int // bytes
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			AttachmentTopic:    getEnv("ATTACHMENT_UPLOADED_TOPIC_NAME", "ATTACHMENT_UPLOADED"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Storage: StorageConfig{
			Endpoint:      getEnv("STORAGE_S3_ENDPOINT", ""),
			Region:        getEnv("STORAGE_S3_REGION", "us-east-1"),
			AccessKeyID:   getEnv("STORAGE_S3_ACCESS_KEY_ID", ""),
			SecretKey:     getEnv("STORAGE_S3_SECRET_KEY", ""),
			Bucket:        getEnv("STORAGE_S3_BUCKET", "attachments"),
			UsePathStyle:  getEnv("STORAGE_S3_USE_PATH_STYLE", "true") == "true",
			SignedURLTTL:  getEnvAsInt("STORAGE_SIGNED_URL_TTL", 3600),
			MaxUploadSize: getEnvAsInt("STORAGE_MAX_UPLOAD_SIZE", 10*1024*1024),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}
