package client

import (
	"context"
	"net/url"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/amresh-singh-kipm/quick-admin/models"
)

// InventoryRequest upserts one stock row. A nil ShopID targets the product's
// global, platform-wide stock.
type InventoryRequest struct {
	ShopID        *int64          `json:"shop_id"`
	ProductID     int64           `json:"product_id"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stock_quantity"`
}

// Inventory fetches all stock rows, joined with product and shop names.
func (c *Client) Inventory(ctx context.Context) ([]models.InventoryItem, error) {
	var resp struct {
		Inventory []models.InventoryItem `json:"inventory"`
	}
	if err := c.do(ctx, "GET", "/admin/inventory", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Inventory, nil
}

// UpsertInventory creates or updates the stock row identified by the
// request's (product, shop-or-global) pair.
func (c *Client) UpsertInventory(ctx context.Context, req InventoryRequest) error {
	return c.do(ctx, "POST", "/admin/inventory", nil, req, nil)
}

// DeleteInventory removes one stock row. The shop_id query parameter is sent
// only for shop-scoped rows; a global row is addressed by product_id alone.
func (c *Client) DeleteInventory(ctx context.Context, productID int64, shopID *int64) error {
	query := url.Values{}
	query.Set("product_id", strconv.FormatInt(productID, 10))
	if shopID != nil {
		query.Set("shop_id", strconv.FormatInt(*shopID, 10))
	}
	return c.do(ctx, "DELETE", "/admin/inventory", query, nil, nil)
}
