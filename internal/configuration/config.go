package configuration

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	SMTP     SMTPConfig
	Upload   UploadConfig
	Links    LinkConfig
	MinIO    MinIOConfig
	Mail     MailConfig
	WhatsApp WhatsAppConfig
	NATSURL  string
	CLAMAVURL string
}

type ServerConfig struct {
	Port        string
	Environment string
	// PublicBaseURL is the externally advertised base for download links in
	// production; in development links point at the local server.
	PublicBaseURL string
}

type SMTPConfig struct {
	Host     string
	Port     int
	Secure   bool
	User     string
	Password string
}

type MailConfig struct {
	Recipient string
}

type WhatsAppConfig struct {
	Number string
}

type UploadConfig struct {
	Dir     string
	Backend string
}

type LinkConfig struct {
	MaxDownloads  int
	Lifetime      time.Duration
	SweepInterval time.Duration
}

type MinIOConfig struct {
	Endpoint   string
	AccessKey  string
	SecretKey  string
	BucketName string
	UseSSL     bool
}

func Load() *Config {
	// Missing .env is fine; plain environment variables still apply.
	_ = godotenv.Load()

	return &Config{
		Server: ServerConfig{
			Port:          getEnv("PORT", "3001"),
			Environment:   getEnv("ENVIRONMENT", "development"),
			PublicBaseURL: getEnv("PUBLIC_BASE_URL", "https://aportecapital.com.br"),
		},
		SMTP: SMTPConfig{
			Host:     getEnv("SMTP_HOST", "smtp.gmail.com"),
			Port:     getEnvInt("SMTP_PORT", 587),
			Secure:   getEnv("SMTP_SECURE", "false") == "true",
			User:     getEnv("EMAIL_USER", ""),
			Password: getEnv("EMAIL_PASS", ""),
		},
		Mail: MailConfig{
			Recipient: getEnv("RECIPIENT_EMAIL", "contato@aportecapitalcred.com.br"),
		},
		WhatsApp: WhatsAppConfig{
			Number: getEnv("WHATSAPP_NUMBER", "5592999889392"),
		},
		Upload: UploadConfig{
			Dir:     getEnv("UPLOAD_DIR", "./uploads"),
			Backend: getEnv("STORAGE_BACKEND", "local"),
		},
		Links: LinkConfig{
			MaxDownloads:  getEnvInt("LINK_MAX_DOWNLOADS", 5),
			Lifetime:      time.Duration(getEnvInt("LINK_LIFETIME_HOURS", 48)) * time.Hour,
			SweepInterval: getEnvDuration("SWEEP_INTERVAL", time.Hour),
		},
		MinIO: MinIOConfig{
			Endpoint:   getEnv("MINIO_ENDPOINT", "localhost:9000"),
			AccessKey:  getEnv("MINIO_ACCESS_KEY", "minioadmin"),
			SecretKey:  getEnv("MINIO_SECRET_KEY", "minioadmin"),
			BucketName: getEnv("MINIO_BUCKET", "consultoria-uploads"),
			UseSSL:     getEnv("MINIO_USE_SSL", "false") == "true",
		},
		NATSURL:   getEnv("NATS_URL", ""),
		CLAMAVURL: getEnv("CLAMAV_URL", ""),
	}
}

// BaseURL is the address embedded in download links handed to clients.
func (c *Config) BaseURL() string {
	if c.Server.Environment == "production" {
		return c.Server.PublicBaseURL
	}
	return fmt.Sprintf("http://localhost:%s", c.Server.Port)
}

// Development reports whether error details may be exposed in responses.
func (c *Config) Development() bool {
	return c.Server.Environment == "development"
}

func getEnv(key, defaultValue string) string {
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

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
