package client

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/amresh-singh-kipm/quick-admin/models"
)

// ProductRequest creates or updates a catalog product. Size is the combined
// quantity+unit string; nil means the product has no size. Optional money and
// stock fields are pointers so absent values stay absent on the wire.
type ProductRequest struct {
	Name          string           `json:"name"`
	CategoryID    int64            `json:"category_id"`
	Brand         string           `json:"brand"`
	Description   string           `json:"description"`
	Size          *string          `json:"size"`
	MRP           *decimal.Decimal `json:"mrp,omitempty"`
	ActualPrice   *decimal.Decimal `json:"actual_price,omitempty"`
	ImageURL      string           `json:"image_url"`
	StockQuantity *int             `json:"stock_quantity,omitempty"`
}

// Products fetches the full catalog, joined with category names by the server.
func (c *Client) Products(ctx context.Context) ([]models.Product, error) {
	var resp struct {
		Products []models.Product `json:"products"`
	}
	if err := c.do(ctx, "GET", "/admin/products", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Products, nil
}

func (c *Client) CreateProduct(ctx context.Context, req ProductRequest) error {
	return c.do(ctx, "POST", "/admin/products", nil, req, nil)
}

func (c *Client) UpdateProduct(ctx context.Context, id int64, req ProductRequest) error {
	return c.do(ctx, "PUT", fmt.Sprintf("/admin/products/%d", id), nil, req, nil)
}

func (c *Client) DeleteProduct(ctx context.Context, id int64) error {
	return c.do(ctx, "DELETE", fmt.Sprintf("/admin/products/%d", id), nil, nil, nil)
}
