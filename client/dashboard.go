package client

import (
	"context"
	"net/url"

	"github.com/amresh-singh-kipm/quick-admin/models"
)

// StatsFilter narrows the dashboard aggregates. Empty fields are omitted from
// the request entirely, so an unbounded range carries no date parameters.
type StatsFilter struct {
	StartDate string // YYYY-MM-DD
	EndDate   string // YYYY-MM-DD
	ShopID    string
}

// DashboardStats fetches the server-computed aggregates for the filter.
func (c *Client) DashboardStats(ctx context.Context, filter StatsFilter) (models.DashboardStats, error) {
	query := url.Values{}
	if filter.StartDate != "" {
		query.Set("startDate", filter.StartDate)
	}
	if filter.EndDate != "" {
		query.Set("endDate", filter.EndDate)
	}
	if filter.ShopID != "" {
		query.Set("shopId", filter.ShopID)
	}

	var resp struct {
		Stats models.DashboardStats `json:"stats"`
	}
	if err := c.do(ctx, "GET", "/admin/dashboard-stats", query, nil, &resp); err != nil {
		return models.DashboardStats{}, err
	}
	return resp.Stats, nil
}
