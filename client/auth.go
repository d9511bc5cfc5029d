package client

import (
	"context"

	"github.com/amresh-singh-kipm/quick-admin/models"
)

type loginRequest struct {
	Mobile   string `json:"mobile"`
	Password string `json:"password"`
}

type loginResponse struct {
	Success bool               `json:"success"`
	Token   string             `json:"token"`
	User    models.UserProfile `json:"user"`
}

// Login authenticates against POST /auth/login. The console only admits
// administrators: a response that is anything short of success with an ADMIN
// role returns ErrAccessDenied and no token leaves this function.
func (c *Client) Login(ctx context.Context, mobile, password string) (string, models.UserProfile, error) {
	var resp loginResponse
	if err := c.do(ctx, "POST", "/auth/login", nil, loginRequest{Mobile: mobile, Password: password}, &resp); err != nil {
		return "", models.UserProfile{}, err
	}
	if !resp.Success || resp.User.Role != models.RoleAdmin {
		return "", models.UserProfile{}, ErrAccessDenied
	}
	return resp.Token, resp.User, nil
}
