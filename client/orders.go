package client

import (
	"context"
	"fmt"

	"github.com/amresh-singh-kipm/quick-admin/models"
)

type statusRequest struct {
	Status string `json:"status"`
}

// Orders fetches the full order collection.
func (c *Client) Orders(ctx context.Context) ([]models.Order, error) {
	var resp struct {
		Orders []models.Order `json:"orders"`
	}
	if err := c.do(ctx, "GET", "/admin/orders", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Orders, nil
}

// UpdateOrderStatus moves an order to a new status. Status is the only order
// field this console mutates.
func (c *Client) UpdateOrderStatus(ctx context.Context, id int64, status string) error {
	if !models.ValidOrderStatus(status) {
		return fmt.Errorf("unknown order status %q", status)
	}
	return c.do(ctx, "PUT", fmt.Sprintf("/admin/orders/%d/status", id), nil, statusRequest{Status: status}, nil)
}
