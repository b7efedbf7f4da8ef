package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/harentsoaR/medics-admin/internal/models"
)

type CreateAdminRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

func (c *Client) CreateAdmin(ctx context.Context, req CreateAdminRequest) (models.User, error) {
	body, err := c.do(ctx, call{method: http.MethodPost, path: "/admin", body: req})
	if err != nil {
		return models.User{}, err
	}
	return decodeEntity[models.User](body)
}

type StatsParams struct {
	StartDate  string // yyyy-MM-dd
	EndDate    string
	TimeFilter string
}

func (c *Client) DashboardStats(ctx context.Context, p StatsParams) (models.DashboardStats, error) {
	q := params{}.
		str("startDate", p.StartDate).
		str("endDate", p.EndDate).
		str("timeFilter", p.TimeFilter)
	body, err := c.do(ctx, call{method: http.MethodGet, path: "/admin/dashboard-stats", query: q.values()})
	if err != nil {
		return models.DashboardStats{}, err
	}
	return decodeEntity[models.DashboardStats](body)
}

func decodePage[T any](body []byte) (models.Page[T], error) {
	var page models.Page[T]
	if err := json.Unmarshal(body, &page); err != nil {
		return page, fmt.Errorf("decode page: %w", err)
	}
	if page.Data == nil {
		page.Data = make([]T, 0)
	}
	return page, nil
}
