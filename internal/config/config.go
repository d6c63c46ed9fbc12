package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Momo     MomoConfig
	SMTP     SMTPConfig
	Events   EventsConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	WsLogFilePath      string
	CorsAllowedOrigins string
	ProductCacheTTL    time.Duration
	OtelEndpoint       string
}

type DatabaseConfig struct {
	Connection string
}

type AuthConfig struct {
	JwtSecret string
}

type MomoConfig struct {
	Endpoint    string
	PartnerCode string
	PartnerName string
	StoreId     string
	AccessKey   string
	SecretKey   string
	RedirectUrl string
	IpnUrl      string
	RequestType string
	OrderInfo   string
	Lang        string
	AutoCapture bool
	Timeout     time.Duration
}

type SMTPConfig struct {
	Host       string
	Port       int
	Email      string
	Password   string
	SenderName string
}

type EventsConfig struct {
	NatsURL        string
	RedisURL       string
	FinalizedTopic string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	baseURL := getEnv("APP_BASE_URL", "http://localhost:3000")

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            baseURL,
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			WsLogFilePath:      getEnv("WS_LOG_FILE_PATH", "logs/websocket.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			ProductCacheTTL:    time.Duration(getEnvAsInt("PRODUCT_CACHE_TTL_SECONDS", 300)) * time.Second,
			OtelEndpoint:       getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Auth: AuthConfig{
			JwtSecret: getEnv("JWT_SECRET", ""),
		},
		Momo: MomoConfig{
			Endpoint:    getEnv("MOMO_ENDPOINT", "https://test-payment.momo.vn"),
			PartnerCode: getEnv("MOMO_PARTNER_CODE", "MOMO"),
			PartnerName: getEnv("MOMO_PARTNER_NAME", "Fashion Chatbot"),
			StoreId:     getEnv("MOMO_STORE_ID", ""),
			AccessKey:   getEnv("MOMO_ACCESS_KEY", ""),
			SecretKey:   getEnv("MOMO_SECRET_KEY", ""),
			RedirectUrl: getEnv("MOMO_REDIRECT_URL", "http://localhost:5173/payment-result"),
			IpnUrl:      getEnv("MOMO_IPN_URL", baseURL+"/api/chatbot/momo/callback"),
			RequestType: getEnv("MOMO_REQUEST_TYPE", "captureWallet"),
			OrderInfo:   getEnv("MOMO_ORDER_INFO", "Thanh toán đơn hàng thời trang"),
			Lang:        getEnv("MOMO_LANG", "vi"),
			AutoCapture: getEnvAsBool("MOMO_AUTO_CAPTURE", true),
			Timeout:     time.Duration(getEnvAsInt("MOMO_TIMEOUT_SECONDS", 30)) * time.Second,
		},
		SMTP: SMTPConfig{
			Host:       getEnv("SMTP_HOST", ""),
			Port:       getEnvAsInt("SMTP_PORT", 587),
			Email:      getEnv("SMTP_EMAIL", ""),
			Password:   getEnv("SMTP_PASSWORD", ""),
			SenderName: getEnv("SMTP_SENDER_NAME", "Fashion Chatbot"),
		},
		Events: EventsConfig{
			NatsURL:        getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:       getEnv("REDIS_URL", "redis://localhost:6379"),
			FinalizedTopic: getEnv("ORDER_FINALIZED_TOPIC_NAME", "ORDER_FINALIZED"),
		},
	}
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
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

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}
