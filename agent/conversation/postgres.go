package conversation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/cloudwego/eino/schema"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
)

type conversationRecord struct {
	bun.BaseModel `bun:"table:conversations,alias:c"`

	Token     string            `bun:"token,pk"`
	Messages  []*schema.Message `bun:"messages,type:jsonb,notnull"`
	CreatedAt time.Time         `bun:"created_at,notnull,default:current_timestamp"`
	ExpiresAt time.Time         `bun:"expires_at,nullzero"`
}

// PostgresStore keeps transcripts in a jsonb column, one row per token.
type PostgresStore struct {
	db  *bun.DB
	ttl time.Duration
	now func() time.Time
}

func NewPostgresStore(db *bun.DB, ttl time.Duration) *PostgresStore {
	return &PostgresStore{db: db, ttl: ttl, now: time.Now}
}

// OpenPostgresStore connects with dsn and creates the conversations table when missing.
func OpenPostgresStore(ctx context.Context, dsn string, ttl time.Duration) (*PostgresStore, error) {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	db := bun.NewDB(sqldb, pgdialect.New())

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	_, err := db.NewCreateTable().
		Model((*conversationRecord)(nil)).
		IfNotExists().
		Exec(ctx)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create conversations table: %w", err)
	}

	return NewPostgresStore(db, ttl), nil
}

func (s *PostgresStore) Load(ctx context.Context, token string) ([]*schema.Message, error) {
	key, err := normalizeToken(token)
	if err != nil {
		return nil, err
	}

	rec := new(conversationRecord)
	err = s.selectQuery(rec, key).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrConversationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select conversation: %w", err)
	}
	return rec.Messages, nil
}

func (s *PostgresStore) Save(ctx context.Context, token string, messages []*schema.Message) error {
	rec, err := s.record(token, messages)
	if err != nil {
		return err
	}

	if _, err := s.upsertQuery(rec).Exec(ctx); err != nil {
		return fmt.Errorf("upsert conversation: %w", err)
	}
	return nil
}

// selectQuery skips rows whose expires_at has passed; rows without one never expire.
func (s *PostgresStore) selectQuery(rec *conversationRecord, token string) *bun.SelectQuery {
	return s.db.NewSelect().
		Model(rec).
		Where("token = ?", token).
		Where("expires_at IS NULL OR expires_at > ?", s.now().UTC())
}

func (s *PostgresStore) upsertQuery(rec *conversationRecord) *bun.InsertQuery {
	return s.db.NewInsert().
		Model(rec).
		On("CONFLICT (token) DO UPDATE").
		Set("messages = EXCLUDED.messages").
		Set("expires_at = EXCLUDED.expires_at")
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}

func (s *PostgresStore) record(token string, messages []*schema.Message) (*conversationRecord, error) {
	key, err := normalizeToken(token)
	if err != nil {
		return nil, err
	}

	kept := make([]*schema.Message, 0, len(messages))
	for _, m := range messages {
		if m == nil || m.Role == schema.System {
			continue
		}
		kept = append(kept, m)
	}

	now := s.now().UTC()
	rec := &conversationRecord{
		Token:     key,
		Messages:  kept,
		CreatedAt: now,
	}
	if s.ttl > 0 {
		rec.ExpiresAt = now.Add(s.ttl)
	}
	return rec, nil
}
