package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// ───── Infrastructure ─────
	DatabaseURL  string
	RedisAddr    string
	KafkaBrokers []string

	// ───── Runtime ─────
	HTTPAddr    string
	ObsHTTPAddr string
	ServiceName string
	AppEnv      string
	LogLevel    string

	// ───── Identity Provider tokens ─────
	JWTSecret   string
	JWTIssuer   string
	JWTAudience string

	// ───── Image store ─────
	S3Bucket           string
	S3Region           string
	S3Endpoint         string
	S3AccessKeyID      string
	S3SecretKey        string
	ImagePublicBaseURL string
	ImageStoreTimeout  time.Duration
	ImageStoreRetries  int

	// ───── Email ─────
	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	MailFrom     string
	AdminEmail   string

	// ───── HTTP edge ─────
	RateLimitRequests  int
	RateLimitWindow    string
	CORSAllowedOrigins []string
	RequestTimeout     time.Duration

	// ───── Jobs ─────
	FeaturedSweepCron string

	// ───── Observability ─────
	TracingEnabled bool
	JaegerURL      string
}

// Load reads the configuration from the environment. A .env file in the
// working directory, when present, is applied first without overriding
// variables that are already set.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		// Infra
		DatabaseURL:  mustEnv("DATABASE_URL"),
		RedisAddr:    mustEnv("REDIS_ADDR"),
		KafkaBrokers: getEnvSlice("KAFKA_BROKERS", []string{"localhost:9092"}),

		// Runtime
		HTTPAddr:    fixPort(getEnv("HTTP_ADDR", ":8080")),
		ObsHTTPAddr: fixPort(getEnv("OBS_HTTP_ADDR", ":9090")),
		ServiceName: getEnv("SERVICE_NAME", "memberclub"),
		AppEnv:      getEnv("APP_ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),

		// JWT
		JWTSecret:   mustEnv("JWT_SECRET"),
		JWTIssuer:   getEnv("JWT_ISSUER", "memberclub-identity"),
		JWTAudience: getEnv("JWT_AUDIENCE", "memberclub-clients"),

		// Image store
		S3Bucket:           mustEnv("S3_BUCKET"),
		S3Region:           getEnv("S3_REGION", "ap-south-1"),
		S3Endpoint:         getEnv("S3_ENDPOINT", ""),
		S3AccessKeyID:      getEnv("S3_ACCESS_KEY_ID", ""),
		S3SecretKey:        getEnv("S3_SECRET_ACCESS_KEY", ""),
		ImagePublicBaseURL: getEnv("IMAGE_PUBLIC_BASE_URL", ""),
		ImageStoreTimeout:  getEnvDuration("IMAGE_STORE_TIMEOUT", 120*time.Second),
		ImageStoreRetries:  getEnvInt("IMAGE_STORE_RETRIES", 3),

		// Email
		SMTPHost:     getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:     getEnvInt("SMTP_PORT", 587),
		SMTPUser:     getEnv("SMTP_USER", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		MailFrom:     getEnv("MAIL_FROM", "no-reply@memberclub.local"),
		AdminEmail:   getEnv("ADMIN_EMAIL", ""),

		// HTTP edge
		RateLimitRequests:  getEnvInt("RATE_LIMIT_REQUESTS", 100),
		RateLimitWindow:    getEnv("RATE_LIMIT_WINDOW", "1m"),
		CORSAllowedOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS", []string{"*"}),
		RequestTimeout:     getEnvDuration("REQUEST_TIMEOUT", 150*time.Second),

		// Jobs
		FeaturedSweepCron: getEnv("FEATURED_SWEEP_CRON", "*/15 * * * *"),

		// Observability
		TracingEnabled: getEnvBool("TRACING_ENABLED", false),
		JaegerURL:      getEnv("JAEGER_URL", "http://jaeger:14268/api/traces"),
	}
}

// DatabaseURL loads only what the migration tool needs.
func DatabaseURL() string {
	_ = godotenv.Load()
	return mustEnv("DATABASE_URL")
}

// IsProduction reports whether upstream error detail must be hidden from clients.
func (c Config) IsProduction() bool { return strings.EqualFold(c.AppEnv, "production") }

func fixPort(port string) string {
	if port != "" && !strings.Contains(port, ":") {
		return ":" + port
	}
	return port
}

func mustEnv(k string) string {
	v := os.Getenv(k)
	if v == "" {
		log.Fatalf("missing required env: %s", k)
	}
	return v
}

func getEnv(k, d string) string {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	return v
}

func getEnvInt(k string, d int) int {
	v := os.Getenv(k)
	if v == "" {
		return d
	}

	i, err := strconv.Atoi(v)
	if err != nil {
		log.Fatalf("invalid int env %s: %v", k, err)
	}
	return i
}

func getEnvBool(k string, d bool) bool {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	return strings.ToLower(v) == "true"
}

func getEnvDuration(k string, d time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return d
	}

	dur, err := time.ParseDuration(v)
	if err != nil {
		log.Fatalf("invalid duration env %s: %v", k, err)
	}
	return dur
}

func getEnvSlice(k string, d []string) []string {
	v := os.Getenv(k)
	if v == "" {
		return d
	}

	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
