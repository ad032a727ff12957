package tool

import (
	"context"
	"errors"
	"strings"
	"testing"

	contractx "github.com/tanpawarit/Chative-Shopping-Assistant/agent/contract"
)

func TestSearchCapabilities(t *testing.T) {
	t.Parallel()

	catalog := &fakeCatalog{}
	retriever := &fakeRetriever{}
	caps, err := BuildForAgent(contractx.AgentTypeShopping, Deps{Catalog: catalog, Retriever: retriever})
	if err != nil {
		t.Fatalf("BuildForAgent() error = %v", err)
	}
	ctx := context.Background()
	session := contractx.SessionContext{DisplayName: "Ann", Age: 31}

	out, err := findTool(t, caps, ToolSearchByID).Invoke(ctx, session, `{"product_id":42}`)
	if err != nil || out != "product details" || catalog.lastID != 42 {
		t.Fatalf("search_by_id = %q, %v (id=%d)", out, err, catalog.lastID)
	}

	out, _ = findTool(t, caps, ToolSearchByCategory).Invoke(ctx, session, `{"category":"shoes"}`)
	if out != "category results" || catalog.lastCategory != "shoes" || catalog.lastLimit != 0 {
		t.Fatalf("search_by_category = %q (category=%q limit=%d)", out, catalog.lastCategory, catalog.lastLimit)
	}

	out, _ = findTool(t, caps, ToolFuzzySearch).Invoke(ctx, session, `{"query":"red hat","limit":4}`)
	if out != "fuzzy results" || catalog.lastQuery != "red hat" || catalog.lastLimit != 4 {
		t.Fatalf("fuzzy_search = %q", out)
	}

	out, _ = findTool(t, caps, ToolVectorRetrieve).Invoke(ctx, session, `{"query":"waterproof hiking boots"}`)
	if out != "vector results" || retriever.limit != defaultVectorLimit {
		t.Fatalf("vector_retrieve = %q (limit=%d)", out, retriever.limit)
	}

	out, _ = findTool(t, caps, ToolGetUserInfo).Invoke(ctx, session, "")
	if out != "Ann is 31 years old." {
		t.Fatalf("get_user_info = %q", out)
	}
}

func TestCapabilityBadArguments(t *testing.T) {
	t.Parallel()

	catalog := &fakeCatalog{}
	caps, _ := BuildForAgent(contractx.AgentTypeShopping, Deps{Catalog: catalog, Retriever: &fakeRetriever{}})
	ctx := context.Background()

	out, err := findTool(t, caps, ToolSearchByID).Invoke(ctx, contractx.SessionContext{}, `{"product_id":"abc"}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(out, "invalid arguments for tool=search_by_id") {
		t.Fatalf("out = %q", out)
	}

	out, _ = findTool(t, caps, ToolSearchByID).Invoke(ctx, contractx.SessionContext{}, `{}`)
	if out != "invalid arguments for tool=search_by_id: product_id is required" {
		t.Fatalf("out = %q", out)
	}
	if catalog.lastID != 0 {
		t.Fatal("catalog must not be called with bad arguments")
	}
}

func TestVectorRetrieveFailureIsText(t *testing.T) {
	t.Parallel()

	caps, _ := BuildForAgent(contractx.AgentTypeShopping, Deps{
		Catalog:   &fakeCatalog{},
		Retriever: &fakeRetriever{err: errors.New("index offline")},
	})
	out, err := findTool(t, caps, ToolVectorRetrieve).Invoke(context.Background(), contractx.SessionContext{}, `{"query":"x"}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "index offline") {
		t.Fatalf("out = %q", out)
	}
}

func TestCartCapabilitiesUseSessionToken(t *testing.T) {
	t.Parallel()

	cart := &fakeCart{}
	caps, err := BuildForAgent(contractx.AgentTypeCart, Deps{Catalog: &fakeCatalog{}, Cart: cart})
	if err != nil {
		t.Fatalf("BuildForAgent() error = %v", err)
	}
	ctx := context.Background()
	session := contractx.SessionContext{AuthToken: "jwt-9"}

	if _, err := findTool(t, caps, ToolCartAdd).Invoke(ctx, session, `{"product_id":42,"quantity":2}`); err != nil {
		t.Fatalf("cart_add error = %v", err)
	}
	if _, err := findTool(t, caps, ToolCartRemove).Invoke(ctx, session, `{"product_id":42,"size":"M"}`); err != nil {
		t.Fatalf("cart_remove error = %v", err)
	}
	if _, err := findTool(t, caps, ToolCartList).Invoke(ctx, session, `{}`); err != nil {
		t.Fatalf("cart_list error = %v", err)
	}
	if _, err := findTool(t, caps, ToolCartClear).Invoke(ctx, session, ""); err != nil {
		t.Fatalf("cart_clear error = %v", err)
	}

	if len(cart.calls) != 4 {
		t.Fatalf("cart calls = %d, want 4", len(cart.calls))
	}
	add := cart.calls[0]
	if add.op != "add" || add.token != "jwt-9" || add.productID != 42 || add.quantity != 2 || add.color != "" || add.size != "" {
		t.Fatalf("add call = %+v", add)
	}
	remove := cart.calls[1]
	if remove.op != "remove" || remove.size != "M" || remove.color != "" {
		t.Fatalf("remove call = %+v", remove)
	}
	for _, c := range cart.calls {
		if c.token != "jwt-9" {
			t.Fatalf("call %s used token %q", c.op, c.token)
		}
	}
}

func TestCartAddRejectsNonPositiveQuantity(t *testing.T) {
	t.Parallel()

	cart := &fakeCart{}
	caps, _ := BuildForAgent(contractx.AgentTypeCart, Deps{Catalog: &fakeCatalog{}, Cart: cart})

	out, err := findTool(t, caps, ToolCartAdd).Invoke(context.Background(), contractx.SessionContext{}, `{"product_id":1,"quantity":0}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "quantity must be positive") {
		t.Fatalf("out = %q", out)
	}
	if len(cart.calls) != 0 {
		t.Fatal("cart must not be called")
	}
}

func TestCartTransportErrorPropagates(t *testing.T) {
	t.Parallel()

	cart := &fakeCart{err: errors.New("connection refused")}
	caps, _ := BuildForAgent(contractx.AgentTypeCart, Deps{Catalog: &fakeCatalog{}, Cart: cart})

	if _, err := findTool(t, caps, ToolCartList).Invoke(context.Background(), contractx.SessionContext{AuthToken: "x"}, ""); err == nil {
		t.Fatal("expected transport error")
	}
}
