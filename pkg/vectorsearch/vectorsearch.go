// Package vectorsearch embeds free-text product queries and runs them against a vector index.
package vectorsearch

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
)

const (
	BackendMongo  = "mongo"
	BackendQdrant = "qdrant"

	DefaultLimit = 10

	resultsHeader  = "Here are All the Products Fetched from the vector Database:\n"
	resultTemplate = "\nID: %v, \nProduct: %s, \nMatch score: %v\n"
)

var (
	ErrEmptyQuery     = errors.New("vector query is empty")
	ErrEmbedding      = errors.New("embedding failed")
	ErrSearch         = errors.New("vector search failed")
	ErrUnknownBackend = errors.New("unknown vector backend")
)

type Config struct {
	Backend          string `split_words:"true" default:"mongo"`
	Index            string `split_words:"true" default:"vector_index"`
	Path             string `split_words:"true" default:"embedding"`
	MongoURI         string `split_words:"true"`
	MongoDatabase    string `split_words:"true" default:"Spark"`
	MongoCollection  string `split_words:"true" default:"products"`
	QdrantURL        string `split_words:"true"`
	QdrantAPIKey     string `split_words:"true"`
	QdrantCollection string `split_words:"true" default:"products"`
}

// Validate checks that the selected backend has its connection settings.
func (c *Config) Validate() error {
	switch strings.ToLower(strings.TrimSpace(c.Backend)) {
	case "", BackendMongo:
		if strings.TrimSpace(c.MongoURI) == "" {
			return errors.New("VECTOR_MONGO_URI is required for the mongo backend")
		}
	case BackendQdrant:
		if strings.TrimSpace(c.QdrantURL) == "" {
			return errors.New("VECTOR_QDRANT_URL is required for the qdrant backend")
		}
	default:
		return fmt.Errorf("%w: %s", ErrUnknownBackend, c.Backend)
	}
	return nil
}

// Match is a single product hit.
type Match struct {
	ID    any
	Text  string
	Score float64
}

type Embedder interface {
	Embed(ctx context.Context, text string) ([]float64, error)
}

type Searcher interface {
	Search(ctx context.Context, vector []float64, limit int) ([]Match, error)
	Close(ctx context.Context) error
}

// Retriever ties an Embedder to a Searcher and renders matches for the model.
type Retriever struct {
	embedder Embedder
	searcher Searcher
}

func NewRetriever(embedder Embedder, searcher Searcher) (*Retriever, error) {
	if embedder == nil {
		return nil, errors.New("vectorsearch: embedder is required")
	}
	if searcher == nil {
		return nil, errors.New("vectorsearch: searcher is required")
	}
	return &Retriever{embedder: embedder, searcher: searcher}, nil
}

// Retrieve embeds query with newlines flattened to spaces and renders the top limit matches.
func (r *Retriever) Retrieve(ctx context.Context, query string, limit int) (string, error) {
	normalized := strings.TrimSpace(strings.ReplaceAll(query, "\n", " "))
	if normalized == "" {
		return "", ErrEmptyQuery
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	vector, err := r.embedder.Embed(ctx, normalized)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrEmbedding, err)
	}

	matches, err := r.searcher.Search(ctx, vector, limit)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSearch, err)
	}

	log.Ctx(ctx).Debug().Int("matches", len(matches)).Int("limit", limit).Msg("vector retrieval complete")
	return Render(matches), nil
}

func (r *Retriever) Close(ctx context.Context) error {
	return r.searcher.Close(ctx)
}

func Render(matches []Match) string {
	var b strings.Builder
	b.WriteString(resultsHeader)
	for _, m := range matches {
		fmt.Fprintf(&b, resultTemplate, m.ID, m.Text, m.Score)
	}
	return b.String()
}

// NewSearcher connects the backend named in cfg.
func NewSearcher(ctx context.Context, cfg Config) (Searcher, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Backend)) {
	case "", BackendMongo:
		return NewMongoSearcher(ctx, cfg)
	case BackendQdrant:
		return NewQdrantSearcher(cfg)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownBackend, cfg.Backend)
	}
}
