package client

import (
	"context"
	"fmt"

	"github.com/amresh-singh-kipm/quick-admin/models"
)

// CategoryRequest creates or updates a category. A nil ParentID makes it a
// top-level category.
type CategoryRequest struct {
	Name     string `json:"name"`
	ParentID *int64 `json:"parent_id"`
}

// Categories fetches the full category collection.
func (c *Client) Categories(ctx context.Context) ([]models.Category, error) {
	var resp struct {
		Categories []models.Category `json:"categories"`
	}
	if err := c.do(ctx, "GET", "/admin/categories", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Categories, nil
}

func (c *Client) CreateCategory(ctx context.Context, req CategoryRequest) error {
	return c.do(ctx, "POST", "/admin/categories", nil, req, nil)
}

func (c *Client) UpdateCategory(ctx context.Context, id int64, req CategoryRequest) error {
	return c.do(ctx, "PUT", fmt.Sprintf("/admin/categories/%d", id), nil, req, nil)
}

func (c *Client) DeleteCategory(ctx context.Context, id int64) error {
	return c.do(ctx, "DELETE", fmt.Sprintf("/admin/categories/%d", id), nil, nil, nil)
}
