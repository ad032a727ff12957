// Package conversation persists dispatcher transcripts under opaque resumption tokens.
package conversation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/eino/schema"
)

var (
	ErrConversationNotFound = errors.New("conversation not found")
	ErrInvalidToken         = errors.New("resumption token is empty")
)

const (
	defaultKeyPrefix     = "chative:conversation:"
	defaultTTL           = 24 * time.Hour
	maxResponseSizeBytes = 2 << 20
)

// Store keeps the user, assistant and tool messages of a run. System instructions are not stored.
type Store interface {
	Load(ctx context.Context, token string) ([]*schema.Message, error)
	Save(ctx context.Context, token string, messages []*schema.Message) error
	Close() error
}

func normalizeToken(token string) (string, error) {
	trimmed := strings.TrimSpace(token)
	if trimmed == "" {
		return "", ErrInvalidToken
	}
	return trimmed, nil
}

func encodeTranscript(messages []*schema.Message) ([]byte, error) {
	kept := make([]*schema.Message, 0, len(messages))
	for _, m := range messages {
		if m == nil || m.Role == schema.System {
			continue
		}
		kept = append(kept, m)
	}
	raw, err := json.Marshal(kept)
	if err != nil {
		return nil, fmt.Errorf("marshal transcript: %w", err)
	}
	return raw, nil
}

func decodeTranscript(raw []byte) ([]*schema.Message, error) {
	var messages []*schema.Message
	if err := json.Unmarshal(raw, &messages); err != nil {
		return nil, fmt.Errorf("unmarshal transcript: %w", err)
	}
	return messages, nil
}

func ttlSeconds(ttl time.Duration) int64 {
	seconds := ttl / time.Second
	if seconds <= 0 {
		return 1
	}
	if ttl%time.Second != 0 {
		seconds++
	}
	return int64(seconds)
}
