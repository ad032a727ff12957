package conversation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/eino/schema"
	"github.com/redis/go-redis/v9"
)

// RedisStore keeps transcripts in a Redis server reached over the native protocol.
type RedisStore struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

// NewRedisStore stores keys as keyPrefix+token; an empty prefix falls back to the default.
func NewRedisStore(client *redis.Client, ttl time.Duration, keyPrefix string) *RedisStore {
	if ttl < 0 {
		ttl = defaultTTL
	}
	keyPrefix = strings.TrimSpace(keyPrefix)
	if keyPrefix == "" {
		keyPrefix = defaultKeyPrefix
	}
	return &RedisStore{
		client:    client,
		keyPrefix: keyPrefix,
		ttl:       ttl,
	}
}

// NewRedisStoreFromURL parses a redis:// or rediss:// URL and checks the server is reachable.
func NewRedisStoreFromURL(ctx context.Context, rawURL string, ttl time.Duration, keyPrefix string) (*RedisStore, error) {
	opts, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return NewRedisStore(client, ttl, keyPrefix), nil
}

func (s *RedisStore) Load(ctx context.Context, token string) ([]*schema.Message, error) {
	key, err := s.key(token)
	if err != nil {
		return nil, err
	}
	val, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrConversationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}
	return decodeTranscript(val)
}

func (s *RedisStore) Save(ctx context.Context, token string, messages []*schema.Message) error {
	key, err := s.key(token)
	if err != nil {
		return err
	}
	payload, err := encodeTranscript(messages)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, key, payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

func (s *RedisStore) key(token string) (string, error) {
	trimmed, err := normalizeToken(token)
	if err != nil {
		return "", err
	}
	return s.keyPrefix + trimmed, nil
}
