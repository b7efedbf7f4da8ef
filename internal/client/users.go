package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/harentsoaR/medics-admin/internal/models"
)

type UserListParams struct {
	Page  int
	Limit int
	Role  string
}

func (c *Client) ListUsers(ctx context.Context, p UserListParams) (models.Page[models.User], error) {
	q := params{}.num("page", p.Page).num("limit", p.Limit).str("role", p.Role)
	body, err := c.do(ctx, call{
		method:       http.MethodGet,
		path:         "/admin/users",
		query:        q.values(),
		requireToken: p.Role == models.RoleDoctor,
	})
	if err != nil {
		return models.Page[models.User]{}, err
	}
	return decodePage[models.User](body)
}

// ListDoctors defaults to the first page of ten.
func (c *Client) ListDoctors(ctx context.Context, page, limit int) (models.Page[models.User], error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	return c.ListUsers(ctx, UserListParams{Page: page, Limit: limit, Role: models.RoleDoctor})
}

func (c *Client) ListPatients(ctx context.Context, page, limit int) (models.Page[models.User], error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	return c.ListUsers(ctx, UserListParams{Page: page, Limit: limit, Role: models.RolePatient})
}

func (c *Client) GetUser(ctx context.Context, id string) (models.User, error) {
	body, err := c.do(ctx, call{method: http.MethodGet, path: "/admin/users/" + url.PathEscape(id)})
	if err != nil {
		return models.User{}, err
	}
	return decodeEntity[models.User](body)
}

// GetDoctor is GetUser for doctor screens, which refuse to run without a token.
func (c *Client) GetDoctor(ctx context.Context, id string) (models.User, error) {
	body, err := c.do(ctx, call{method: http.MethodGet, path: "/admin/users/" + url.PathEscape(id), requireToken: true})
	if err != nil {
		return models.User{}, err
	}
	return decodeEntity[models.User](body)
}

type UserUpdate struct {
	DocProfile *models.DocProfile `json:"docProfile,omitempty"`
	Country    string             `json:"country,omitempty"`
	City       string             `json:"city,omitempty"`
	FCMToken   string             `json:"fcmToken,omitempty"`
}

// UpdateUser is a full-document PUT, so repeating it is safe.
func (c *Client) UpdateUser(ctx context.Context, id string, upd UserUpdate) (models.User, error) {
	body, err := c.do(ctx, call{method: http.MethodPut, path: "/users/" + url.PathEscape(id), body: upd, requireToken: true})
	if err != nil {
		return models.User{}, err
	}
	return decodeEntity[models.User](body)
}
