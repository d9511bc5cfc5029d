package client

import (
	"context"
	"fmt"

	"github.com/amresh-singh-kipm/quick-admin/models"
)

// ShopRequest creates or updates a shop.
type ShopRequest struct {
	Name        string  `json:"name"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Description string  `json:"description"`
	Status      string  `json:"status"`
}

// Shops fetches the full shop collection.
func (c *Client) Shops(ctx context.Context) ([]models.Shop, error) {
	var resp struct {
		Shops []models.Shop `json:"shops"`
	}
	if err := c.do(ctx, "GET", "/admin/shops", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Shops, nil
}

func (c *Client) CreateShop(ctx context.Context, req ShopRequest) error {
	return c.do(ctx, "POST", "/admin/shops", nil, req, nil)
}

func (c *Client) UpdateShop(ctx context.Context, id int64, req ShopRequest) error {
	return c.do(ctx, "PUT", fmt.Sprintf("/admin/shops/%d", id), nil, req, nil)
}

func (c *Client) DeleteShop(ctx context.Context, id int64) error {
	return c.do(ctx, "DELETE", fmt.Sprintf("/admin/shops/%d", id), nil, nil, nil)
}
