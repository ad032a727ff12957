package conversation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	DriverMemory   = "memory"
	DriverUpstash  = "upstash"
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
)

var ErrUnknownDriver = errors.New("unknown conversation driver")

// Config is loaded with the CONVERSATION prefix.
type Config struct {
	Driver         string        `split_words:"true" default:"memory"`
	TTL            time.Duration `split_words:"true" default:"24h"`
	KeyPrefix      string        `split_words:"true" default:"chative:conversation:"`
	RedisURL       string        `split_words:"true"`
	UpstashURL     string        `split_words:"true"`
	UpstashToken   string        `split_words:"true"`
	UpstashTimeout time.Duration `split_words:"true" default:"10s"`
	PostgresDSN    string        `split_words:"true"`
}

func (c *Config) Validate() error {
	switch c.driver() {
	case DriverMemory:
	case DriverUpstash:
		if strings.TrimSpace(c.UpstashURL) == "" || strings.TrimSpace(c.UpstashToken) == "" {
			return errors.New("CONVERSATION_UPSTASH_URL and CONVERSATION_UPSTASH_TOKEN are required for the upstash driver")
		}
	case DriverRedis:
		if strings.TrimSpace(c.RedisURL) == "" {
			return errors.New("CONVERSATION_REDIS_URL is required for the redis driver")
		}
	case DriverPostgres:
		if strings.TrimSpace(c.PostgresDSN) == "" {
			return errors.New("CONVERSATION_POSTGRES_DSN is required for the postgres driver")
		}
	default:
		return fmt.Errorf("%w: %s", ErrUnknownDriver, c.Driver)
	}
	return nil
}

func (c *Config) driver() string {
	d := strings.ToLower(strings.TrimSpace(c.Driver))
	if d == "" {
		return DriverMemory
	}
	return d
}

// NewStore opens the driver named in cfg.
func NewStore(ctx context.Context, cfg Config) (Store, error) {
	switch cfg.driver() {
	case DriverMemory:
		return NewMemoryStore(cfg.TTL), nil
	case DriverUpstash:
		return NewUpstashStore(UpstashConfig{
			URL:     cfg.UpstashURL,
			Token:   cfg.UpstashToken,
			Timeout: cfg.UpstashTimeout,
		}, WithTTL(cfg.TTL), WithKeyPrefix(cfg.KeyPrefix))
	case DriverRedis:
		return NewRedisStoreFromURL(ctx, cfg.RedisURL, cfg.TTL, cfg.KeyPrefix)
	case DriverPostgres:
		return OpenPostgresStore(ctx, cfg.PostgresDSN, cfg.TTL)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownDriver, cfg.Driver)
	}
}
