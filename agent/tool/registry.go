package tool

import (
	"context"
	"errors"
	"fmt"

	contractx "github.com/tanpawarit/Chative-Shopping-Assistant/agent/contract"
)

const (
	ToolSearchByID       = "search_by_id"
	ToolSearchByCategory = "search_by_category"
	ToolFuzzySearch      = "fuzzy_search"
	ToolVectorRetrieve   = "vector_retrieve"
	ToolGetUserInfo      = "get_user_info"
	ToolCartAdd          = "cart_add"
	ToolCartList         = "cart_list"
	ToolCartRemove       = "cart_remove"
	ToolCartClear        = "cart_clear"
)

type Catalog interface {
	LookupByID(ctx context.Context, productID int) string
	SearchByCategory(ctx context.Context, category string, limit int) string
	FuzzySearch(ctx context.Context, query string, limit int) string
}

type Cart interface {
	Add(ctx context.Context, token string, productID, quantity int, color, size string) (string, error)
	List(ctx context.Context, token string) (string, error)
	Remove(ctx context.Context, token string, productID int, color, size string) (string, error)
	Clear(ctx context.Context, token string) (string, error)
}

// Deps are the backends the capabilities call into.
type Deps struct {
	Catalog   Catalog
	Cart      Cart
	Retriever contractx.Retriever
}

// BuildForAgent returns the fixed capability set of an agent. Handoffs are not capabilities;
// see Handoff.
func BuildForAgent(agentType contractx.AgentType, deps Deps) ([]contractx.Capability, error) {
	if deps.Catalog == nil {
		return nil, errors.New("catalog is required")
	}

	switch agentType {
	case contractx.AgentTypeShopping:
		if deps.Retriever == nil {
			return nil, errors.New("vector retriever is required")
		}
		return []contractx.Capability{
			searchByCategory(deps.Catalog),
			searchByID(deps.Catalog),
			fuzzySearch(deps.Catalog),
			vectorRetrieve(deps.Retriever),
			getUserInfo(),
		}, nil
	case contractx.AgentTypeCart:
		if deps.Cart == nil {
			return nil, errors.New("cart client is required")
		}
		return []contractx.Capability{
			searchByID(deps.Catalog),
			fuzzySearch(deps.Catalog),
			cartAdd(deps.Cart),
			cartList(deps.Cart),
			cartRemove(deps.Cart),
			cartClear(deps.Cart),
		}, nil
	default:
		return nil, fmt.Errorf("%w: unknown agent type %q", contractx.ErrValidation, agentType)
	}
}

// Unavailable is what the model reads back when it calls a tool its agent does not own.
func Unavailable(tool string, agentType contractx.AgentType) string {
	return fmt.Sprintf("tool=%s is unavailable for agent=%s", tool, agentType)
}
