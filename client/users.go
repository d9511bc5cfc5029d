package client

import (
	"context"
	"fmt"

	"github.com/amresh-singh-kipm/quick-admin/models"
)

// UserUpdate is the editable slice of a platform user.
type UserUpdate struct {
	FullName     string `json:"full_name"`
	MobileNumber string `json:"mobile_number"`
	Role         string `json:"role"`
	IsActive     int    `json:"is_active"`
}

// Users fetches the full user collection.
func (c *Client) Users(ctx context.Context) ([]models.User, error) {
	var resp struct {
		Users []models.User `json:"users"`
	}
	if err := c.do(ctx, "GET", "/admin/users", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Users, nil
}

// UpdateUser submits edited user fields.
func (c *Client) UpdateUser(ctx context.Context, id int64, update UserUpdate) error {
	return c.do(ctx, "PUT", fmt.Sprintf("/admin/users/%d", id), nil, update, nil)
}

// DeactivateUser disables an account. The platform treats this delete as a
// deactivation, not a removal.
func (c *Client) DeactivateUser(ctx context.Context, id int64) error {
	return c.do(ctx, "DELETE", fmt.Sprintf("/admin/users/%d", id), nil, nil, nil)
}
