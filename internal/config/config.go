package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config semua pengaturan aplikasi, dibaca dari environment (.env)
type Config struct {
	Port    string
	GinMode string

	DBDriver string // mysql | postgres
	DBDSN    string

	JWTSecret string
	JWTTTL    time.Duration

	RateLimitRPS   float64
	RateLimitBurst int

	CORSOrigins []string // kosong atau "*" = semua origin

	KafkaBrokers []string
	KafkaTopic   string

	FCMCredentials   string
	ExpiryWindowDays int

	LogLevel string
	LogFile  string

	AdminUsername string
	AdminPassword string
}

// Load membaca .env (kalau ada) lalu environment
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	return &Config{
		Port:    getEnv("PORT", "8080"),
		GinMode: getEnv("GIN_MODE", "release"),

		DBDriver: strings.ToLower(getEnv("DB_DRIVER", "mysql")),
		DBDSN:    getEnv("DB_DSN", "root:@tcp(127.0.0.1:3306)/simrs?charset=utf8mb4&parseTime=True&loc=Local"),

		JWTSecret: os.Getenv("JWT_SECRET"),
		JWTTTL:    getDuration("JWT_TTL", 24*time.Hour),

		RateLimitRPS:   getFloat("RATE_LIMIT_RPS", 5),
		RateLimitBurst: getInt("RATE_LIMIT_BURST", 10),

		CORSOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),

		KafkaBrokers: splitList(os.Getenv("KAFKA_BROKERS")),
		KafkaTopic:   getEnv("KAFKA_TOPIC", "simrs.patients"),

		FCMCredentials:   os.Getenv("FCM_CREDENTIALS"),
		ExpiryWindowDays: getInt("EXPIRY_WINDOW_DAYS", 30),

		LogLevel: getEnv("LOG_LEVEL", "info"),
		LogFile:  os.Getenv("LOG_FILE"),

		AdminUsername: os.Getenv("ADMIN_USERNAME"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
	}
}

func getEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return def
	}
	return v
}

func getFloat(key string, def float64) float64 {
	v, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil {
		return def
	}
	return v
}

func getDuration(key string, def time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return def
	}
	return v
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
