package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Config holds Redis connection configuration
type Config struct {
	Address  string // Redis server address (host:port)
	Password string // Redis password (empty if no password)
	DB       int    // Redis database number (0-15)

	// Connection pool settings; zero values fall back to the defaults below
	PoolSize     int
	MinIdleConns int

	// Timeouts; zero values fall back to the defaults below
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// RedisConfig mirrors the main config package's Redis section so callers can
// hand it over without a manual field-by-field translation.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	Addr     string
}

var redisClient *redis.Client

// NewConfigFromRedisConfig creates a cache.Config from a RedisConfig.
// An explicit Addr wins over the Host/Port pair.
func NewConfigFromRedisConfig(rc RedisConfig) Config {
	address := rc.Addr
	if address == "" {
		address = rc.Host + ":" + rc.Port
	}

	return Config{
		Address:  address,
		Password: rc.Password,
		DB:       rc.DB,
	}
}

// Init initializes the package-level Redis client with the provided
// configuration and verifies the connection.
func Init(cfg Config) error {
	if cfg.Address == "" {
		return fmt.Errorf("redis address cannot be empty")
	}

	if cfg.PoolSize == 0 {
		cfg.PoolSize = 10
	}
	if cfg.MinIdleConns == 0 {
		cfg.MinIdleConns = 5
	}
	if cfg.DialTimeout == 0 {
		cfg.DialTimeout = 5 * time.Second
	}
	if cfg.ReadTimeout == 0 {
		cfg.ReadTimeout = 3 * time.Second
	}
	if cfg.WriteTimeout == 0 {
		cfg.WriteTimeout = 3 * time.Second
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,

		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,

		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to connect to Redis at %s: %w", cfg.Address, err)
	}

	redisClient = client
	return nil
}

// InitWithRedisConfig initializes the Redis client using the main
// application's config shape.
func InitWithRedisConfig(rc RedisConfig) error {
	return Init(NewConfigFromRedisConfig(rc))
}

// Client returns the Redis client instance.
// Returns nil if Init() hasn't been called successfully.
func Client() *redis.Client {
	return redisClient
}

// Close closes the Redis connection
func Close() error {
	if redisClient == nil {
		return fmt.Errorf("redis client is not initialized")
	}

	if err := redisClient.Close(); err != nil {
		return fmt.Errorf("failed to close Redis connection: %w", err)
	}

	redisClient = nil
	return nil
}

// IsInitialized checks if the Redis client has been initialized
func IsInitialized() bool {
	return redisClient != nil
}

// Ping tests the Redis connection
func Ping(ctx context.Context) error {
	if redisClient == nil {
		return fmt.Errorf("redis client is not initialized")
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}

	return nil
}
