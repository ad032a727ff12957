package commerce

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(Config{BaseURL: server.URL}, WithHTTPClient(server.Client()))
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	return client
}

func TestNewClientValidatesBaseURL(t *testing.T) {
	t.Parallel()

	if _, err := NewClient(Config{BaseURL: " "}); err == nil {
		t.Fatal("expected error for empty base url")
	}
	if _, err := NewClient(Config{BaseURL: "not a url"}); err == nil {
		t.Fatal("expected error for invalid base url")
	}
}

func TestLookupByID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{
			name:   "found",
			status: http.StatusOK,
			body:   `{"product":{"_id":7,"embedding_text":"Red shirt, size M"}}`,
			want:   "Red shirt, size M",
		},
		{
			name:   "empty text",
			status: http.StatusOK,
			body:   `{"product":{"_id":7}}`,
			want:   msgNoProductDetails,
		},
		{
			name:   "not found",
			status: http.StatusNotFound,
			body:   `{}`,
			want:   msgProductNotFound,
		},
		{
			name:   "server error",
			status: http.StatusInternalServerError,
			body:   `oops`,
			want:   msgTroubleProductDetails,
		},
		{
			name:   "bad body",
			status: http.StatusOK,
			body:   `{`,
			want:   msgTroubleProductDetails,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var gotPath string
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				gotPath = r.URL.Path
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			})

			got := client.LookupByID(context.Background(), 7)
			if got != tc.want {
				t.Fatalf("LookupByID() = %q, want %q", got, tc.want)
			}
			if gotPath != "/app/search/id/7" {
				t.Fatalf("path = %q", gotPath)
			}
		})
	}
}

func TestLookupByIDTransportFailure(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	baseURL := server.URL
	server.Close()

	client, err := NewClient(Config{BaseURL: baseURL})
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	if got := client.LookupByID(context.Background(), 1); got != msgTroubleProductDetails {
		t.Fatalf("LookupByID() = %q, want %q", got, msgTroubleProductDetails)
	}
}

func TestSearchByCategory(t *testing.T) {
	t.Parallel()

	var gotPath, gotPage, gotLimit string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		gotPage = r.URL.Query().Get("page")
		gotLimit = r.URL.Query().Get("limit")
		_, _ = w.Write([]byte(`{"products":[{"embedding_text":"Sneaker A"},{"embedding_text":"Sneaker B"}]}`))
	})

	got := client.SearchByCategory(context.Background(), "running shoes", 0)
	if got != "Sneaker A\nSneaker B" {
		t.Fatalf("SearchByCategory() = %q", got)
	}
	if gotPath != "/app/search/category/running%20shoes" {
		t.Fatalf("path = %q", gotPath)
	}
	if gotPage != "1" || gotLimit != "15" {
		t.Fatalf("page=%q limit=%q, want 1 and 15", gotPage, gotLimit)
	}
}

func TestSearchByCategoryEmpty(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"products":[]}`))
	})

	if got := client.SearchByCategory(context.Background(), "hats", 5); got != msgNoProductsInCategory {
		t.Fatalf("SearchByCategory() = %q", got)
	}
}

func TestFuzzySearch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{name: "hits", status: http.StatusOK, body: `{"products":[{"embedding_text":"Blue jeans"}]}`, want: "Blue jeans"},
		{name: "not found", status: http.StatusNotFound, body: `{}`, want: msgNoProductsMatchingText},
		{name: "bad gateway", status: http.StatusBadGateway, body: ``, want: msgTroubleProducts},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var gotQuery, gotLimit string
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				gotQuery = r.URL.Query().Get("q")
				gotLimit = r.URL.Query().Get("limit")
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			})

			got := client.FuzzySearch(context.Background(), "  jeans ", 3)
			if got != tc.want {
				t.Fatalf("FuzzySearch() = %q, want %q", got, tc.want)
			}
			if gotQuery != "jeans" || gotLimit != "3" {
				t.Fatalf("q=%q limit=%q", gotQuery, gotLimit)
			}
		})
	}
}

func TestCatalogCallsAreUnauthenticated(t *testing.T) {
	t.Parallel()

	var auth string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"products":[]}`))
	})

	client.FuzzySearch(context.Background(), "x", 1)
	if strings.TrimSpace(auth) != "" {
		t.Fatalf("Authorization = %q, want empty", auth)
	}
}
