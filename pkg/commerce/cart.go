package commerce

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// MsgNoCredential is returned by every cart call made without an auth token.
const MsgNoCredential = "No user JWT token was provided."

const (
	msgNoReason           = "No reason provided"
	msgNoCartItems        = "No items in the cart."
	msgCartNotFound       = "Cart not found."
	msgAddNotFound        = "Failed to add item to cart."
	msgRemoveNotFound     = "Item not found in cart."
	msgTroubleAdd         = "Trouble adding products to cart"
	msgTroubleList        = "Trouble fetching cart items"
	msgTroubleRemove      = "Trouble removing item from cart"
	msgTroubleClear       = "Trouble removing items from cart"
	msgCartItemNoDetails  = "No details available for this product."
	cartItemsHeader       = "All items in the cart:\n"
	msgClearedCart        = "All items removed from the cart successfully."
	msgAddFailedPrefix    = "Item could not be added, Reason: "
	msgListFailedPrefix   = "Failed to fetch cart items, Reason: "
	msgRemoveFailedPrefix = "Failed to remove item from cart, Reason: "
	msgClearFailedPrefix  = "Failed to remove items from cart, Reason: "
	addedTemplate         = "Item with Product ID %d added to cart successfully."
	removedTemplate       = "Item with Product ID %d removed from cart successfully."
)

// CartItemRequest is the payload for add and remove. Color and size are left out of the
// JSON body when empty.
type CartItemRequest struct {
	Quantity  int    `json:"quantity,omitempty"`
	ProductID int    `json:"productId"`
	Color     string `json:"color,omitempty"`
	Size      string `json:"size,omitempty"`
}

type cartResult struct {
	Success bool   `json:"success"`
	Reason  string `json:"reason"`
	Data    struct {
		Products []*Product `json:"products"`
	} `json:"data"`
}

func (r cartResult) reason() string {
	if strings.TrimSpace(r.Reason) == "" {
		return msgNoReason
	}
	return r.Reason
}

type cartOutcome struct {
	onSuccess     func(cartResult) string
	failurePrefix string
	notFound      string
	trouble       string
}

// Add puts quantity units of a product in the cart.
func (c *Client) Add(ctx context.Context, token string, productID, quantity int, color, size string) (string, error) {
	if strings.TrimSpace(token) == "" {
		return MsgNoCredential, nil
	}
	payload := CartItemRequest{
		Quantity:  quantity,
		ProductID: productID,
		Color:     strings.TrimSpace(color),
		Size:      strings.TrimSpace(size),
	}
	return c.cartCall(ctx, http.MethodPost, "/app/cart/add", token, payload, cartOutcome{
		onSuccess: func(cartResult) string {
			return fmt.Sprintf(addedTemplate, productID)
		},
		failurePrefix: msgAddFailedPrefix,
		notFound:      msgAddNotFound,
		trouble:       msgTroubleAdd,
	})
}

// List renders every line of the cart.
func (c *Client) List(ctx context.Context, token string) (string, error) {
	if strings.TrimSpace(token) == "" {
		return MsgNoCredential, nil
	}
	return c.cartCall(ctx, http.MethodGet, "/app/cart", token, nil, cartOutcome{
		onSuccess: func(res cartResult) string {
			items := make([]string, 0, len(res.Data.Products))
			for _, p := range res.Data.Products {
				if p == nil {
					continue
				}
				text := p.EmbeddingText
				if text == "" {
					text = msgCartItemNoDetails
				}
				items = append(items, text)
			}
			if len(items) == 0 {
				return cartItemsHeader + msgNoCartItems
			}
			return cartItemsHeader + strings.Join(items, "\n")
		},
		failurePrefix: msgListFailedPrefix,
		notFound:      msgCartNotFound,
		trouble:       msgTroubleList,
	})
}

// Remove deletes one product line, optionally narrowed by color and size.
func (c *Client) Remove(ctx context.Context, token string, productID int, color, size string) (string, error) {
	if strings.TrimSpace(token) == "" {
		return MsgNoCredential, nil
	}
	payload := CartItemRequest{
		ProductID: productID,
		Color:     strings.TrimSpace(color),
		Size:      strings.TrimSpace(size),
	}
	path := "/app/cart/remove/" + strconv.Itoa(productID)
	return c.cartCall(ctx, http.MethodDelete, path, token, payload, cartOutcome{
		onSuccess: func(cartResult) string {
			return fmt.Sprintf(removedTemplate, productID)
		},
		failurePrefix: msgRemoveFailedPrefix,
		notFound:      msgRemoveNotFound,
		trouble:       msgTroubleRemove,
	})
}

func (c *Client) Clear(ctx context.Context, token string) (string, error) {
	if strings.TrimSpace(token) == "" {
		return MsgNoCredential, nil
	}
	return c.cartCall(ctx, http.MethodDelete, "/app/cart/clearCart", token, nil, cartOutcome{
		onSuccess: func(cartResult) string {
			return msgClearedCart
		},
		failurePrefix: msgClearFailedPrefix,
		notFound:      msgCartNotFound,
		trouble:       msgTroubleClear,
	})
}

func (c *Client) cartCall(
	ctx context.Context,
	method string,
	path string,
	token string,
	payload any,
	outcome cartOutcome,
) (string, error) {
	resp, err := c.do(ctx, method, path, nil, token, payload)
	if err != nil {
		return "", err
	}

	switch resp.status {
	case http.StatusOK:
		var res cartResult
		if err := resp.decode(&res); err != nil {
			return outcome.trouble, nil
		}
		if !res.Success {
			return outcome.failurePrefix + res.reason(), nil
		}
		return outcome.onSuccess(res), nil
	case http.StatusNotFound:
		return outcome.notFound, nil
	default:
		return outcome.trouble, nil
	}
}
