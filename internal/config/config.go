package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"storefront-service/internal/storage"
)

// Storage drivers
const (
	StorageMemory   = "memory"
	StorageRedis    = "redis"
	StoragePostgres = "postgres"
)

type Config struct {
	// Database
	DBHost     string
	DBPort     int
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Server
	Port        string
	Environment string
	LogLevel    string

	// Auth
	JWTSecret     string
	SessionTTL    time.Duration
	AuthRateLimit float64
	AuthBurst     int

	// Storage
	StorageDriver string
	StorageTTL    time.Duration
	RedisURL      string

	// Events
	NATSURL string

	// Voice agent
	HamsaAPIKey       string
	EnglishAgentID    string
	ArabicAgentID     string
	VoicePollInterval time.Duration
	VoiceIdleTTL      time.Duration

	// Storefront
	CartIdleTTL     time.Duration
	WidgetScriptURL string
	AllowedOrigins  string
}

func Load() *Config {
	dbPort, _ := strconv.Atoi(getEnv("DB_PORT", "5432"))
	authRate, _ := strconv.ParseFloat(getEnv("AUTH_RATE_LIMIT", "5"), 64)
	authBurst, _ := strconv.Atoi(getEnv("AUTH_RATE_BURST", "10"))

	return &Config{
		// Database
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     dbPort,
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBName:     getEnv("DB_NAME", "storefront_db"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		// Server
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),

		// Auth
		JWTSecret:     getEnv("JWT_SECRET", "change-me-in-production"),
		SessionTTL:    getDuration("SESSION_TTL", 30*24*time.Hour),
		AuthRateLimit: authRate,
		AuthBurst:     authBurst,

		// Storage
		StorageDriver: getEnv("STORAGE_DRIVER", StorageMemory),
		StorageTTL:    getDuration("STORAGE_TTL", 0),
		RedisURL:      getEnv("REDIS_URL", ""),

		// Events
		NATSURL: getEnv("NATS_URL", ""),

		// Voice agent
		HamsaAPIKey:       getEnv("HAMSA_API_KEY", ""),
		EnglishAgentID:    getEnv("HAMSA_ENGLISH_AGENT_ID", ""),
		ArabicAgentID:     getEnv("HAMSA_ARABIC_AGENT_ID", ""),
		VoicePollInterval: getDuration("VOICE_POLL_INTERVAL", time.Second),
		VoiceIdleTTL:      getDuration("VOICE_IDLE_TTL", 30*time.Minute),

		// Storefront
		CartIdleTTL:     getDuration("CART_IDLE_TTL", 24*time.Hour),
		WidgetScriptURL: getEnv("WIDGET_SCRIPT_URL", "https://widget.zibda.ai/embed.js"),
		AllowedOrigins:  getEnv("CORS_ALLOWED_ORIGINS", "*"),
	}
}

// VoiceDemoMode reports whether the voice agent lacks credentials.
func (c *Config) VoiceDemoMode() bool {
	return c.HamsaAPIKey == "" || c.EnglishAgentID == "" || c.ArabicAgentID == ""
}

func InitDB(cfg *Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBSSLMode)

	var logLevel logger.LogLevel
	if cfg.Environment == "production" {
		logLevel = logger.Error
	} else {
		logLevel = logger.Warn
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(&storage.KVEntry{}); err != nil {
		return nil, fmt.Errorf("failed to migrate kv_entries: %w", err)
	}
	return db, nil
}

// InitRedis connects to REDIS_URL. It returns nil when Redis is not
// configured or unreachable.
func InitRedis(cfg *Config, log *logrus.Logger) *redis.Client {
	if cfg.RedisURL == "" {
		return nil
	}
	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.WithError(err).Warn("Failed to parse Redis URL, continuing without Redis")
		return nil
	}
	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.WithError(err).Warn("Failed to connect to Redis, continuing without Redis")
		client.Close()
		return nil
	}
	log.Info("Connected to Redis")
	return client
}

// NewStorage builds the configured key-value backend. Redis falls back
// to memory when unreachable; a Postgres failure is fatal to the caller.
func NewStorage(cfg *Config, log *logrus.Logger) (storage.Store, func(), error) {
	switch cfg.StorageDriver {
	case StoragePostgres:
		db, err := InitDB(cfg)
		if err != nil {
			return nil, nil, err
		}
		store := storage.NewPostgresStore(db, cfg.StorageTTL)
		closeFn := func() {
			if sqlDB, err := db.DB(); err == nil {
				sqlDB.Close()
			}
		}
		return store, closeFn, nil
	case StorageRedis:
		if client := InitRedis(cfg, log); client != nil {
			return storage.NewRedisStore(client, cfg.StorageTTL), func() { client.Close() }, nil
		}
		log.Warn("Redis storage unavailable, using in-memory storage")
		return storage.NewMemoryStore(cfg.StorageTTL), func() {}, nil
	case StorageMemory, "":
		return storage.NewMemoryStore(cfg.StorageTTL), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
