package commerce

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

const DefaultSearchLimit = 15

const (
	msgNoProductDetails       = "No details available for this product."
	msgProductNotFound        = "Product not found."
	msgTroubleProductDetails  = "Trouble fetching product details"
	msgNoProductsInCategory   = "No products found in this category."
	msgNoProductsMatchingText = "No products found matching the query."
	msgTroubleProducts        = "Trouble fetching products"
)

type productResponse struct {
	Product *Product `json:"product"`
}

type productListResponse struct {
	Products []*Product `json:"products"`
}

// LookupByID returns the display text of a single product. It never fails: transport and
// decoding problems come back as a fallback string.
func (c *Client) LookupByID(ctx context.Context, productID int) string {
	path := "/app/search/id/" + strconv.Itoa(productID)
	resp, err := c.do(ctx, http.MethodGet, path, nil, "", nil)
	if err != nil {
		log.Ctx(ctx).Warn().Err(err).Int("product_id", productID).Msg("catalog lookup by id failed")
		return msgTroubleProductDetails
	}

	switch resp.status {
	case http.StatusOK:
		var out productResponse
		if err := resp.decode(&out); err != nil {
			log.Ctx(ctx).Warn().Err(err).Int("product_id", productID).Msg("catalog lookup by id returned bad body")
			return msgTroubleProductDetails
		}
		if out.Product == nil || out.Product.EmbeddingText == "" {
			return msgNoProductDetails
		}
		return out.Product.EmbeddingText
	case http.StatusNotFound:
		return msgProductNotFound
	default:
		return msgTroubleProductDetails
	}
}

func (c *Client) SearchByCategory(ctx context.Context, category string, limit int) string {
	path := "/app/search/category/" + url.PathEscape(strings.TrimSpace(category))
	return c.searchList(ctx, path, pageQuery(nil, limit), msgNoProductsInCategory)
}

func (c *Client) FuzzySearch(ctx context.Context, query string, limit int) string {
	q := url.Values{}
	q.Set("q", strings.TrimSpace(query))
	return c.searchList(ctx, "/app/search/fuzzy", pageQuery(q, limit), msgNoProductsMatchingText)
}

func (c *Client) searchList(ctx context.Context, path string, query url.Values, notFound string) string {
	resp, err := c.do(ctx, http.MethodGet, path, query, "", nil)
	if err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("path", path).Msg("catalog search failed")
		return msgTroubleProducts
	}

	switch resp.status {
	case http.StatusOK:
		var out productListResponse
		if err := resp.decode(&out); err != nil {
			log.Ctx(ctx).Warn().Err(err).Str("path", path).Msg("catalog search returned bad body")
			return msgTroubleProducts
		}
		texts := joinEmbeddingTexts(out.Products)
		if len(texts) == 0 {
			return notFound
		}
		return strings.Join(texts, "\n")
	case http.StatusNotFound:
		return notFound
	default:
		return msgTroubleProducts
	}
}

func pageQuery(q url.Values, limit int) url.Values {
	if q == nil {
		q = url.Values{}
	}
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	q.Set("page", "1")
	q.Set("limit", strconv.Itoa(limit))
	return q
}
