package vectorsearch

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type aggregator interface {
	Aggregate(ctx context.Context, pipeline any, opts ...*options.AggregateOptions) (*mongo.Cursor, error)
}

// MongoSearcher runs Atlas $vectorSearch aggregations over the products collection.
type MongoSearcher struct {
	client *mongo.Client
	coll   aggregator
	index  string
	path   string
}

func NewMongoSearcher(ctx context.Context, cfg Config) (*MongoSearcher, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	coll := client.Database(cfg.MongoDatabase).Collection(cfg.MongoCollection)
	return &MongoSearcher{
		client: client,
		coll:   coll,
		index:  cfg.Index,
		path:   cfg.Path,
	}, nil
}

type mongoMatch struct {
	ID            any     `bson:"_id"`
	EmbeddingText string  `bson:"embedding_text"`
	Score         float64 `bson:"score"`
}

func (s *MongoSearcher) Search(ctx context.Context, vector []float64, limit int) ([]Match, error) {
	cursor, err := s.coll.Aggregate(ctx, vectorSearchPipeline(s.index, s.path, vector, limit))
	if err != nil {
		return nil, fmt.Errorf("aggregate: %w", err)
	}

	var docs []mongoMatch
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("read cursor: %w", err)
	}

	matches := make([]Match, 0, len(docs))
	for _, d := range docs {
		id := d.ID
		if oid, ok := id.(primitive.ObjectID); ok {
			id = oid.Hex()
		}
		matches = append(matches, Match{ID: id, Text: d.EmbeddingText, Score: d.Score})
	}
	return matches, nil
}

func (s *MongoSearcher) Close(ctx context.Context) error {
	if s.client == nil {
		return nil
	}
	return s.client.Disconnect(ctx)
}

// vectorSearchPipeline builds an exact-match $vectorSearch stage followed by a projection of
// the id, display text and search score.
func vectorSearchPipeline(index, path string, vector []float64, limit int) mongo.Pipeline {
	return mongo.Pipeline{
		bson.D{{Key: "$vectorSearch", Value: bson.D{
			{Key: "index", Value: index},
			{Key: "queryVector", Value: vector},
			{Key: "path", Value: path},
			{Key: "exact", Value: true},
			{Key: "limit", Value: limit},
		}}},
		bson.D{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 1},
			{Key: "embedding_text", Value: 1},
			{Key: "score", Value: bson.D{{Key: "$meta", Value: "vectorSearchScore"}}},
		}}},
	}
}
