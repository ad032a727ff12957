package vectorsearch

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/qdrant/go-client/qdrant"
	configx "github.com/tanpawarit/Chative-Shopping-Assistant/pkg/config"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type fakeEmbedder struct {
	got string
	vec []float64
	err error
}

func (f *fakeEmbedder) Embed(_ context.Context, text string) ([]float64, error) {
	f.got = text
	return f.vec, f.err
}

type fakeSearcher struct {
	gotVector []float64
	gotLimit  int
	matches   []Match
	err       error
}

func (f *fakeSearcher) Search(_ context.Context, vector []float64, limit int) ([]Match, error) {
	f.gotVector = vector
	f.gotLimit = limit
	return f.matches, f.err
}

func (f *fakeSearcher) Close(context.Context) error { return nil }

func TestRetrieveRendersMatches(t *testing.T) {
	t.Parallel()

	emb := &fakeEmbedder{vec: []float64{0.1, 0.2}}
	search := &fakeSearcher{matches: []Match{
		{ID: "a1", Text: "Red dress", Score: 0.91},
		{ID: 7, Text: "Blue dress", Score: 0.5},
	}}
	r, err := NewRetriever(emb, search)
	if err != nil {
		t.Fatalf("NewRetriever() error = %v", err)
	}

	got, err := r.Retrieve(context.Background(), "summer\ndress", 0)
	if err != nil {
		t.Fatalf("Retrieve() error = %v", err)
	}

	want := "Here are All the Products Fetched from the vector Database:\n" +
		"\nID: a1, \nProduct: Red dress, \nMatch score: 0.91\n" +
		"\nID: 7, \nProduct: Blue dress, \nMatch score: 0.5\n"
	if got != want {
		t.Fatalf("Retrieve() = %q, want %q", got, want)
	}
	if emb.got != "summer dress" {
		t.Fatalf("embedded text = %q, want newlines flattened", emb.got)
	}
	if search.gotLimit != DefaultLimit {
		t.Fatalf("limit = %d, want %d", search.gotLimit, DefaultLimit)
	}
}

func TestRetrieveErrors(t *testing.T) {
	t.Parallel()

	r, _ := NewRetriever(&fakeEmbedder{err: errors.New("quota")}, &fakeSearcher{})
	if _, err := r.Retrieve(context.Background(), "hat", 3); !errors.Is(err, ErrEmbedding) {
		t.Fatalf("Retrieve() error = %v, want ErrEmbedding", err)
	}
	if _, err := r.Retrieve(context.Background(), " \n ", 3); !errors.Is(err, ErrEmptyQuery) {
		t.Fatalf("Retrieve() error = %v, want ErrEmptyQuery", err)
	}

	r, _ = NewRetriever(&fakeEmbedder{vec: []float64{1}}, &fakeSearcher{err: errors.New("down")})
	if _, err := r.Retrieve(context.Background(), "hat", 3); !errors.Is(err, ErrSearch) {
		t.Fatalf("Retrieve() error = %v, want ErrSearch", err)
	}
}

func TestVectorSearchPipeline(t *testing.T) {
	t.Parallel()

	p := vectorSearchPipeline("vector_index", "embedding", []float64{0.5}, 4)
	if len(p) != 2 {
		t.Fatalf("pipeline stages = %d, want 2", len(p))
	}

	stage := p[0].Map()["$vectorSearch"].(bson.D).Map()
	if stage["index"] != "vector_index" || stage["path"] != "embedding" {
		t.Fatalf("vector stage = %v", stage)
	}
	if stage["exact"] != true || stage["limit"] != 4 {
		t.Fatalf("vector stage = %v", stage)
	}

	project := p[1].Map()["$project"].(bson.D).Map()
	score := project["score"].(bson.D).Map()
	if score["$meta"] != "vectorSearchScore" {
		t.Fatalf("score projection = %v", score)
	}
}

type fakeAggregator struct {
	docs []any
}

func (f *fakeAggregator) Aggregate(context.Context, any, ...*options.AggregateOptions) (*mongo.Cursor, error) {
	return mongo.NewCursorFromDocuments(f.docs, nil, nil)
}

func TestMongoSearcherDecodesMatches(t *testing.T) {
	t.Parallel()

	oid := primitive.NewObjectID()
	s := &MongoSearcher{
		coll: &fakeAggregator{docs: []any{
			bson.D{{Key: "_id", Value: oid}, {Key: "embedding_text", Value: "Linen shirt"}, {Key: "score", Value: 0.8}},
		}},
		index: "vector_index",
		path:  "embedding",
	}

	got, err := s.Search(context.Background(), []float64{0.1}, 1)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(got) != 1 || got[0].ID != oid.Hex() || got[0].Text != "Linen shirt" || got[0].Score != 0.8 {
		t.Fatalf("Search() = %+v", got)
	}
}

type fakeQuerier struct {
	req    *qdrant.QueryPoints
	points []*qdrant.ScoredPoint
}

func (f *fakeQuerier) Query(_ context.Context, req *qdrant.QueryPoints) ([]*qdrant.ScoredPoint, error) {
	f.req = req
	return f.points, nil
}

func (f *fakeQuerier) Close() error { return nil }

func TestQdrantSearcherDecodesPayload(t *testing.T) {
	t.Parallel()

	q := &fakeQuerier{points: []*qdrant.ScoredPoint{
		{
			Id:      qdrant.NewIDNum(12),
			Score:   0.75,
			Payload: qdrant.NewValueMap(map[string]any{"embedding_text": "Wool scarf"}),
		},
	}}
	s := &QdrantSearcher{client: q, collection: "products"}

	got, err := s.Search(context.Background(), []float64{0.25, 0.5}, 3)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(got) != 1 || got[0].ID != uint64(12) || got[0].Text != "Wool scarf" {
		t.Fatalf("Search() = %+v", got)
	}
	if q.req.GetCollectionName() != "products" || q.req.GetLimit() != 3 {
		t.Fatalf("request = %+v", q.req)
	}
}

func TestOpenAIEmbedder(t *testing.T) {
	t.Parallel()

	var gotModel string
	var gotInput []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/embeddings") {
			http.NotFound(w, r)
			return
		}
		var body struct {
			Model string   `json:"model"`
			Input []string `json:"input"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		gotModel, gotInput = body.Model, body.Input
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"object":"list","model":"text-embedding-3-large","data":[{"object":"embedding","index":0,"embedding":[0.25,0.5]}],"usage":{"prompt_tokens":2,"total_tokens":2}}`))
	}))
	t.Cleanup(server.Close)

	client := openai.NewClient(option.WithAPIKey("sk-test"), option.WithBaseURL(server.URL))
	emb, err := NewOpenAIEmbedder(&client, "")
	if err != nil {
		t.Fatalf("NewOpenAIEmbedder() error = %v", err)
	}

	got, err := emb.Embed(context.Background(), "red hat")
	if err != nil {
		t.Fatalf("Embed() error = %v", err)
	}
	if len(got) != 2 || got[0] != 0.25 {
		t.Fatalf("Embed() = %v", got)
	}
	if gotModel != DefaultEmbeddingModel || len(gotInput) != 1 || gotInput[0] != "red hat" {
		t.Fatalf("request model=%q input=%v", gotModel, gotInput)
	}
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	if err := (&Config{Backend: "mongo"}).Validate(); err == nil {
		t.Fatal("expected mongo uri error")
	}
	if err := (&Config{Backend: "qdrant", QdrantURL: "localhost:6334"}).Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if err := (&Config{Backend: "pinecone"}).Validate(); !errors.Is(err, ErrUnknownBackend) {
		t.Fatalf("Validate() error = %v, want ErrUnknownBackend", err)
	}
}

func TestConfigDefaultsSurviveProcessPath(t *testing.T) {
	t.Setenv("PATH", "/usr/bin:/bin")
	t.Setenv("INDEX", "wrong_index")
	t.Setenv("BACKEND", "pinecone")
	t.Setenv("VECTOR_MONGO_URI", "mongodb://localhost:27017")

	conf, err := configx.New[Config]("VECTOR")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if conf.Path != "embedding" || conf.Index != "vector_index" || conf.Backend != BackendMongo {
		t.Fatalf("config = %+v, want defaults", conf)
	}
}
