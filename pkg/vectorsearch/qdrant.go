package vectorsearch

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/qdrant/go-client/qdrant"
)

const (
	qdrantDefaultPort = 6334
	payloadTextKey    = "embedding_text"
)

type pointQuerier interface {
	Query(ctx context.Context, request *qdrant.QueryPoints) ([]*qdrant.ScoredPoint, error)
	Close() error
}

// QdrantSearcher queries a Qdrant collection whose points carry the product text in their payload.
type QdrantSearcher struct {
	client     pointQuerier
	collection string
}

func NewQdrantSearcher(cfg Config) (*QdrantSearcher, error) {
	raw := strings.TrimSpace(cfg.QdrantURL)
	if raw == "" {
		return nil, fmt.Errorf("qdrant url is required")
	}
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse qdrant url: %w", err)
	}

	port := qdrantDefaultPort
	if u.Port() != "" {
		port, err = strconv.Atoi(u.Port())
		if err != nil {
			return nil, fmt.Errorf("invalid qdrant port: %w", err)
		}
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   u.Hostname(),
		Port:   port,
		APIKey: cfg.QdrantAPIKey,
		UseTLS: u.Scheme == "https",
	})
	if err != nil {
		return nil, fmt.Errorf("create qdrant client: %w", err)
	}

	return &QdrantSearcher{client: client, collection: cfg.QdrantCollection}, nil
}

func (s *QdrantSearcher) Search(ctx context.Context, vector []float64, limit int) ([]Match, error) {
	query := make([]float32, len(vector))
	for i, v := range vector {
		query[i] = float32(v)
	}

	l := uint64(limit)
	points, err := s.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: s.collection,
		Query:          qdrant.NewQuery(query...),
		Limit:          &l,
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("qdrant query: %w", err)
	}

	matches := make([]Match, 0, len(points))
	for _, p := range points {
		m := Match{Score: float64(p.GetScore())}
		if id := p.GetId(); id != nil {
			if u := id.GetUuid(); u != "" {
				m.ID = u
			} else {
				m.ID = id.GetNum()
			}
		}
		if v, ok := p.GetPayload()[payloadTextKey]; ok {
			m.Text = v.GetStringValue()
		}
		matches = append(matches, m)
	}
	return matches, nil
}

func (s *QdrantSearcher) Close(context.Context) error {
	return s.client.Close()
}
