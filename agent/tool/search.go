package tool

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/schema"
	contractx "github.com/tanpawarit/Chative-Shopping-Assistant/agent/contract"
)

const defaultVectorLimit = 10

type searchByIDArgs struct {
	ProductID int `json:"product_id"`
}

type searchByCategoryArgs struct {
	Category string `json:"category"`
	Limit    int    `json:"limit"`
}

type fuzzySearchArgs struct {
	Query string `json:"query"`
	Limit int    `json:"limit"`
}

type vectorRetrieveArgs struct {
	Query string `json:"query"`
	Limit int    `json:"limit"`
}

func searchByID(catalog Catalog) contractx.Capability {
	return newTool(&schema.ToolInfo{
		Name: ToolSearchByID,
		Desc: "Get the full details of a single product by its Product ID.",
		ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
			"product_id": {Type: schema.Integer, Desc: "The Product ID of the product to search for.", Required: true},
		}),
	}, func(ctx context.Context, _ contractx.SessionContext, args searchByIDArgs) (string, error) {
		if args.ProductID <= 0 {
			return invalidArgs(ToolSearchByID, "product_id is required"), nil
		}
		return catalog.LookupByID(ctx, args.ProductID), nil
	})
}

func searchByCategory(catalog Catalog) contractx.Capability {
	return newTool(&schema.ToolInfo{
		Name: ToolSearchByCategory,
		Desc: "List products in a category, for example electronics, clothing or groceries.",
		ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
			"category": {Type: schema.String, Desc: "The category to search in.", Required: true},
			"limit":    {Type: schema.Integer, Desc: "The number of products to return. Default is 15."},
		}),
	}, func(ctx context.Context, _ contractx.SessionContext, args searchByCategoryArgs) (string, error) {
		if strings.TrimSpace(args.Category) == "" {
			return invalidArgs(ToolSearchByCategory, "category is required"), nil
		}
		return catalog.SearchByCategory(ctx, args.Category, args.Limit), nil
	})
}

func fuzzySearch(catalog Catalog) contractx.Capability {
	return newTool(&schema.ToolInfo{
		Name: ToolFuzzySearch,
		Desc: "Search products by name or description with a tolerant text match.",
		ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
			"query": {Type: schema.String, Desc: "The search query string.", Required: true},
			"limit": {Type: schema.Integer, Desc: "The number of products to return. Default is 15."},
		}),
	}, func(ctx context.Context, _ contractx.SessionContext, args fuzzySearchArgs) (string, error) {
		if strings.TrimSpace(args.Query) == "" {
			return invalidArgs(ToolFuzzySearch, "query is required"), nil
		}
		return catalog.FuzzySearch(ctx, args.Query, args.Limit), nil
	})
}

// vectorRetrieve degrades retrieval failures to text so a flaky index does not end the turn.
func vectorRetrieve(retriever contractx.Retriever) contractx.Capability {
	return newTool(&schema.ToolInfo{
		Name: ToolVectorRetrieve,
		Desc: "Retrieve products semantically close to a detailed request. Use it when the user is specific " +
			"and enough context is known; results include product ids and match scores.",
		ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
			"query": {Type: schema.String, Desc: "The full user request, enriched with conversation context.", Required: true},
			"limit": {Type: schema.Integer, Desc: "The number of products to return. Default is 10."},
		}),
	}, func(ctx context.Context, _ contractx.SessionContext, args vectorRetrieveArgs) (string, error) {
		if strings.TrimSpace(args.Query) == "" {
			return invalidArgs(ToolVectorRetrieve, "query is required"), nil
		}
		limit := args.Limit
		if limit <= 0 {
			limit = defaultVectorLimit
		}
		out, err := retriever.Retrieve(ctx, args.Query, limit)
		if err != nil {
			return fmt.Sprintf("Vector retrieval failed: %v", err), nil
		}
		return out, nil
	})
}

func getUserInfo() contractx.Capability {
	return newTool(&schema.ToolInfo{
		Name: ToolGetUserInfo,
		Desc: "Get the name and age of the current user.",
		ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{}),
	}, func(_ context.Context, session contractx.SessionContext, _ struct{}) (string, error) {
		return fmt.Sprintf("%s is %d years old.", session.DisplayName, session.Age), nil
	})
}
