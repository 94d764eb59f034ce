package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"

	StorageNone = "none"
	StorageS3   = "s3"
	StorageGCS  = "gcs"

	defaultJWTSecret = "a-very-secret-key-should-be-longer-and-random"
	defaultPIN       = "1996"
)

// Config holds application configuration.
type Config struct {
	Port          string
	IsProduction  bool
	DataBackend   string
	DatabaseURL   string
	SQLiteDBPath  string
	EnableDBCheck bool

	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string
	AppPIN            string

	VeryfiClientID     string
	VeryfiClientSecret string
	VeryfiUsername     string
	VeryfiAPIKey       string
	VeryfiURL          string

	ShopifyStoreURL    string
	ShopifyAccessToken string

	DeepgramAPIKey string

	StorageBackend     string
	S3Bucket           string
	S3Region           string
	S3Endpoint         string
	S3AccessKey        string
	S3SecretKey        string
	S3UsePathStyle     bool
	S3PublicBaseURL    string
	GCSBucket          string
	GCSCredentialsJSON string

	RedisURL     string
	AMQPURL      string
	AMQPExchange string

	PosthogAPIKey      string
	CORSAllowedOrigins []string

	SettingsCachePath string
	SettingsDebounce  time.Duration
	HTTPClientTimeout time.Duration
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("DATA_BACKEND", BackendPostgres)
	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("SQLITE_DB_PATH", "./data/expenses.db")
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("JWT_SECRET", defaultJWTSecret)
	viper.SetDefault("JWT_EXPIRY_DURATION", "24h")
	viper.SetDefault("JWT_ISSUER", "expense-tracker")
	viper.SetDefault("APP_PIN", defaultPIN)
	viper.SetDefault("VERYFI_URL", "https://api.veryfi.com/api/v8/partner/documents")
	viper.SetDefault("STORAGE_BACKEND", StorageNone)
	viper.SetDefault("S3_REGION", "us-east-1")
	viper.SetDefault("S3_USE_PATH_STYLE", false)
	viper.SetDefault("AMQP_EXCHANGE", "expense_tracker.events")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("SETTINGS_CACHE_PATH", "./data/app_settings.json")
	viper.SetDefault("SETTINGS_DEBOUNCE", "500ms")
	viper.SetDefault("HTTP_CLIENT_TIMEOUT", "60s")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.DataBackend = strings.ToLower(viper.GetString("DATA_BACKEND"))
	if cfg.DataBackend != BackendPostgres && cfg.DataBackend != BackendSQLite {
		log.Printf("Warning: Unknown DATA_BACKEND ('%s'). Defaulting to %s.\n", cfg.DataBackend, BackendPostgres)
		cfg.DataBackend = BackendPostgres
	}
	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DataBackend == BackendPostgres && cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}
	cfg.SQLiteDBPath = viper.GetString("SQLITE_DB_PATH")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "" || cfg.JWTSecret == defaultJWTSecret {
		cfg.JWTSecret = defaultJWTSecret // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiryDuration = 24 * time.Hour
		if jwtExpiryStr != "" {
			log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration.String())
		}
	}
	cfg.JWTExpiryDuration = jwtExpiryDuration

	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")
	if cfg.JWTIssuer == "" {
		cfg.JWTIssuer = "expense-tracker"
		log.Printf("Warning: JWT_ISSUER not set. Defaulting to %s.\n", cfg.JWTIssuer)
	}

	cfg.AppPIN = viper.GetString("APP_PIN")
	if cfg.AppPIN == "" || cfg.AppPIN == defaultPIN {
		cfg.AppPIN = defaultPIN
		log.Println("Warning: APP_PIN not set. Using the default PIN.")
	}

	cfg.VeryfiClientID = viper.GetString("VERYFI_CLIENT_ID")
	cfg.VeryfiClientSecret = viper.GetString("VERYFI_CLIENT_SECRET")
	cfg.VeryfiUsername = viper.GetString("VERYFI_USERNAME")
	cfg.VeryfiAPIKey = viper.GetString("VERYFI_API_KEY")
	cfg.VeryfiURL = viper.GetString("VERYFI_URL")
	if cfg.VeryfiClientID == "" || cfg.VeryfiUsername == "" || cfg.VeryfiAPIKey == "" {
		log.Println("Warning: Veryfi credentials not set. Receipt processing will not function.")
	}

	cfg.ShopifyStoreURL = strings.TrimRight(viper.GetString("SHOPIFY_STORE_URL"), "/")
	cfg.ShopifyAccessToken = viper.GetString("SHOPIFY_ACCESS_TOKEN")
	if cfg.ShopifyStoreURL == "" || cfg.ShopifyAccessToken == "" {
		log.Println("Warning: SHOPIFY_STORE_URL or SHOPIFY_ACCESS_TOKEN not set. Revenue analytics will not function.")
	}

	cfg.DeepgramAPIKey = viper.GetString("DEEPGRAM_API_KEY")

	cfg.StorageBackend = strings.ToLower(viper.GetString("STORAGE_BACKEND"))
	cfg.S3Bucket = viper.GetString("S3_BUCKET")
	cfg.S3Region = viper.GetString("S3_REGION")
	cfg.S3Endpoint = viper.GetString("S3_ENDPOINT")
	cfg.S3AccessKey = viper.GetString("S3_ACCESS_KEY")
	cfg.S3SecretKey = viper.GetString("S3_SECRET_KEY")
	cfg.S3UsePathStyle = viper.GetBool("S3_USE_PATH_STYLE")
	cfg.S3PublicBaseURL = strings.TrimRight(viper.GetString("S3_PUBLIC_BASE_URL"), "/")
	cfg.GCSBucket = viper.GetString("GCS_BUCKET")
	cfg.GCSCredentialsJSON = viper.GetString("GCS_CREDENTIALS_JSON")
	switch cfg.StorageBackend {
	case StorageS3:
		if cfg.S3Bucket == "" {
			log.Println("Warning: STORAGE_BACKEND is s3 but S3_BUCKET is not set.")
		}
	case StorageGCS:
		if cfg.GCSBucket == "" {
			log.Println("Warning: STORAGE_BACKEND is gcs but GCS_BUCKET is not set.")
		}
	case StorageNone:
	default:
		log.Printf("Warning: Unknown STORAGE_BACKEND ('%s'). File uploads are disabled.\n", cfg.StorageBackend)
		cfg.StorageBackend = StorageNone
	}

	cfg.RedisURL = viper.GetString("REDIS_URL")
	cfg.AMQPURL = viper.GetString("AMQP_URL")
	cfg.AMQPExchange = viper.GetString("AMQP_EXCHANGE")
	cfg.PosthogAPIKey = viper.GetString("POSTHOG_API_KEY")
	cfg.CORSAllowedOrigins = splitAndTrim(viper.GetString("CORS_ALLOWED_ORIGINS"))

	cfg.SettingsCachePath = viper.GetString("SETTINGS_CACHE_PATH")
	cfg.SettingsDebounce = durationOrDefault("SETTINGS_DEBOUNCE", 500*time.Millisecond)
	cfg.HTTPClientTimeout = durationOrDefault("HTTP_CLIENT_TIMEOUT", 60*time.Second)

	return cfg, nil
}

// VeryfiConfigured reports whether all credentials needed for receipt OCR are present.
func (c *Config) VeryfiConfigured() bool {
	return c.VeryfiClientID != "" && c.VeryfiUsername != "" && c.VeryfiAPIKey != ""
}

// MissingVeryfiCredentials lists the env var names of the missing receipt OCR credentials.
func (c *Config) MissingVeryfiCredentials() []string {
	missing := []string{}
	if c.VeryfiClientID == "" {
		missing = append(missing, "VERYFI_CLIENT_ID")
	}
	if c.VeryfiClientSecret == "" {
		missing = append(missing, "VERYFI_CLIENT_SECRET")
	}
	if c.VeryfiUsername == "" {
		missing = append(missing, "VERYFI_USERNAME")
	}
	if c.VeryfiAPIKey == "" {
		missing = append(missing, "VERYFI_API_KEY")
	}
	return missing
}

// ShopifyConfigured reports whether the store URL and access token are present.
func (c *Config) ShopifyConfigured() bool {
	return c.ShopifyStoreURL != "" && c.ShopifyAccessToken != ""
}

func durationOrDefault(key string, def time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, def.String())
		}
		return def
	}
	return d
}

func splitAndTrim(raw string) []string {
	out := []string{}
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
