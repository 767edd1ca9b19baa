package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	Env           string
	LogLevel      string
	AllowedOrigin string
	FrontendURL   string // Used for payment redirect URLs

	// Document store
	MongoURI         string
	MongoDatabase    string
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// Sessions
	JWTSecret      string
	TokenExpiry    time.Duration
	SecureCookies  bool
	SellerEmail    string
	SellerPassword string

	// R2 Storage (image host)
	R2AccountID       string
	R2AccessKeyID     string
	R2AccessKeySecret string
	R2BucketName      string
	R2PublicURL       string
	MaxUploadSizeMB   int64
	R2UploadTimeout   time.Duration

	// Cache
	CacheBackend    string // "memory" or "redis"
	RedisAddr       string
	RedisPassword   string
	CacheProductTTL time.Duration

	// Payments
	StripeSecretKey     string
	StripeWebhookSecret string
	Currency            string
	TaxRate             float64

	// Business Rules
	MaxCartQuantity int

	// Rate limiting
	RateLimitRPS   float64
	RateLimitBurst int
	// Comma-separated proxy IPs or CIDRs whose X-Forwarded-For is honoured
	TrustedProxies string
}

func LoadConfig() *Config {
	configFile := os.Getenv("CONFIG_FILE")
	if configFile != "" {
		if err := godotenv.Load(configFile); err != nil {
			log.Printf("Warning: Failed to load config file '%s': %v", configFile, err)
		} else {
			log.Printf("Loaded configuration from %s", configFile)
		}
	} else {
		// .env is optional; containers usually rely on real env vars.
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file found or error loading it, relying on system env vars")
		}
	}

	env := getEnv("ENV", "development")
	cfg := &Config{
		Port:          getEnv("PORT", "4000"),
		Env:           env,
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		AllowedOrigin: getEnv("ALLOWED_ORIGIN", "http://localhost:5173"),
		FrontendURL:   getEnv("FRONTEND_URL", "http://localhost:5173"),

		MongoURI:         getEnv("MONGODB_URI", ""),
		MongoDatabase:    getEnv("MONGODB_DATABASE", "greencart"),
		MongoMaxPoolSize: uint64(getIntEnv("MONGODB_MAX_POOL_SIZE", 100)),
		MongoMinPoolSize: uint64(getIntEnv("MONGODB_MIN_POOL_SIZE", 10)),

		JWTSecret:      getEnv("JWT_SECRET", "default_secret_CHANGE_ME"),
		TokenExpiry:    getDurationEnv("TOKEN_EXPIRY", 7*24*time.Hour),
		SecureCookies:  env == "production",
		SellerEmail:    getEnv("SELLER_EMAIL", ""),
		SellerPassword: getEnv("SELLER_PASSWORD", ""),

		R2AccountID:       getEnv("R2_ACCOUNT_ID", ""),
		R2AccessKeyID:     getEnv("R2_ACCESS_KEY_ID", ""),
		R2AccessKeySecret: getEnv("R2_ACCESS_KEY_SECRET", ""),
		R2BucketName:      getEnv("R2_BUCKET_NAME", ""),
		R2PublicURL:       getEnv("R2_PUBLIC_URL", ""),
		MaxUploadSizeMB:   getInt64Env("MAX_UPLOAD_SIZE_MB", 10),
		R2UploadTimeout:   getDurationEnv("R2_UPLOAD_TIMEOUT", 30*time.Second),

		CacheBackend:    getEnv("CACHE_BACKEND", "memory"),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		CacheProductTTL: getDurationEnv("CACHE_PRODUCT_TTL", 10*time.Minute),

		StripeSecretKey:     getEnv("STRIPE_SECRET_KEY", ""),
		StripeWebhookSecret: getEnv("STRIPE_WEBHOOK_SECRET", ""),
		Currency:            getEnv("CURRENCY", "usd"),
		TaxRate:             getFloatEnv("TAX_RATE", 0.02),

		MaxCartQuantity: getIntEnv("MAX_CART_QUANTITY", 1000),

		RateLimitRPS:   getFloatEnv("RATE_LIMIT_RPS", 50),
		RateLimitBurst: getIntEnv("RATE_LIMIT_BURST", 100),
		TrustedProxies: getEnv("TRUSTED_PROXIES", ""),
	}

	cfg.Validate()
	return cfg
}

func (c *Config) Validate() {
	if c.MongoURI == "" {
		log.Fatal("CRITICAL: MONGODB_URI environment variable is required")
	}
	if c.JWTSecret == "default_secret_CHANGE_ME" {
		log.Println("WARNING: Using default JWT secret. Setting up for failure in production.")
	}
	if c.SellerEmail == "" || c.SellerPassword == "" {
		log.Println("WARNING: SELLER_EMAIL/SELLER_PASSWORD not set, seller login is disabled")
	}
	if c.StripeSecretKey == "" {
		log.Println("WARNING: STRIPE_SECRET_KEY not set, online payment is disabled")
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		log.Printf("Invalid duration for %s, using fallback", key)
	}
	return fallback
}

func getIntEnv(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
		log.Printf("Invalid int for %s, using fallback", key)
	}
	return fallback
}

func getInt64Env(key string, fallback int64) int64 {
	if value, exists := os.LookupEnv(key); exists {
		if i, err := strconv.ParseInt(value, 10, 64); err == nil {
			return i
		}
		log.Printf("Invalid int64 for %s, using fallback", key)
	}
	return fallback
}
