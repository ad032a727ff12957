package tool

import (
	"context"

	"github.com/cloudwego/eino/schema"
	contractx "github.com/tanpawarit/Chative-Shopping-Assistant/agent/contract"
)

type cartAddArgs struct {
	ProductID int    `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Color     string `json:"color"`
	Size      string `json:"size"`
}

type cartRemoveArgs struct {
	ProductID int    `json:"product_id"`
	Color     string `json:"color"`
	Size      string `json:"size"`
}

// Cart capabilities read the auth token from the session, never from model arguments.

func cartAdd(cart Cart) contractx.Capability {
	return newTool(&schema.ToolInfo{
		Name: ToolCartAdd,
		Desc: "Add a product to the user's cart.",
		ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
			"product_id": {Type: schema.Integer, Desc: "The Product ID of the product to add.", Required: true},
			"quantity":   {Type: schema.Integer, Desc: "How many units to add.", Required: true},
			"color":      {Type: schema.String, Desc: "The color of the product, when it has variants."},
			"size":       {Type: schema.String, Desc: "The size of the product, when it has variants."},
		}),
	}, func(ctx context.Context, session contractx.SessionContext, args cartAddArgs) (string, error) {
		if args.ProductID <= 0 {
			return invalidArgs(ToolCartAdd, "product_id is required"), nil
		}
		if args.Quantity <= 0 {
			return invalidArgs(ToolCartAdd, "quantity must be positive"), nil
		}
		return cart.Add(ctx, session.AuthToken, args.ProductID, args.Quantity, args.Color, args.Size)
	})
}

func cartList(cart Cart) contractx.Capability {
	return newTool(&schema.ToolInfo{
		Name:        ToolCartList,
		Desc:        "Show every item currently in the user's cart.",
		ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{}),
	}, func(ctx context.Context, session contractx.SessionContext, _ struct{}) (string, error) {
		return cart.List(ctx, session.AuthToken)
	})
}

func cartRemove(cart Cart) contractx.Capability {
	return newTool(&schema.ToolInfo{
		Name: ToolCartRemove,
		Desc: "Remove one product from the user's cart.",
		ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
			"product_id": {Type: schema.Integer, Desc: "The Product ID of the product to remove.", Required: true},
			"color":      {Type: schema.String, Desc: "The color variant to remove."},
			"size":       {Type: schema.String, Desc: "The size variant to remove."},
		}),
	}, func(ctx context.Context, session contractx.SessionContext, args cartRemoveArgs) (string, error) {
		if args.ProductID <= 0 {
			return invalidArgs(ToolCartRemove, "product_id is required"), nil
		}
		return cart.Remove(ctx, session.AuthToken, args.ProductID, args.Color, args.Size)
	})
}

func cartClear(cart Cart) contractx.Capability {
	return newTool(&schema.ToolInfo{
		Name:        ToolCartClear,
		Desc:        "Remove every item from the user's cart.",
		ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{}),
	}, func(ctx context.Context, session contractx.SessionContext, _ struct{}) (string, error) {
		return cart.Clear(ctx, session.AuthToken)
	})
}
