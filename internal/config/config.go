package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var AppEnv Config

type Config struct {
	Port      string
	MongoURI  string
	DBName    string
	JWTSecret string

	StripeSecretKey string

	// The deployment processes domestic transactions only; every intent is
	// forced to this currency/country pair no matter what the client sent.
	Currency string
	Country  string

	EmailJSBaseURL    string
	EmailJSServiceID  string
	EmailJSTemplateID string
	EmailJSUserID     string
	OperatorEmail     string

	NotifyTimeout time.Duration

	LogFile string
}

func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println(".env not loaded:", err)
	}
	AppEnv = Config{
		Port:      getEnvOrDefault("PORT", "5000"),
		MongoURI:  getEnvOrDefault("MONGO_URI", ""),
		DBName:    getEnvOrDefault("DB_NAME", "storefront"),
		JWTSecret: getEnvOrDefault("JWT_SECRET", ""),

		StripeSecretKey: getEnvOrDefault("STRIPE_SECRET_KEY", ""),

		Currency: getEnvOrDefault("PAYMENT_CURRENCY", "inr"),
		Country:  getEnvOrDefault("PAYMENT_COUNTRY", "IN"),

		EmailJSBaseURL:    getEnvOrDefault("EMAILJS_BASE_URL", "https://api.emailjs.com"),
		EmailJSServiceID:  getEnvOrDefault("EMAILJS_SERVICE_ID", ""),
		EmailJSTemplateID: getEnvOrDefault("EMAILJS_TEMPLATE_ID", ""),
		EmailJSUserID:     getEnvOrDefault("EMAILJS_USER_ID", ""),
		OperatorEmail:     getEnvOrDefault("OPERATOR_EMAIL", ""),

		NotifyTimeout: getDurationEnv("NOTIFY_TIMEOUT", 10, time.Second),

		LogFile: getEnvOrDefault("LOG_FILE", "./logs/app.log"),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue int, unit time.Duration) time.Duration {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			return time.Duration(parsed) * unit
		}
	}
	return time.Duration(defaultValue) * unit
}
