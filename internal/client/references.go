package client

import (
	"context"
	"net/http"

	"github.com/harentsoaR/medics-admin/internal/models"
)

func (c *Client) References(ctx context.Context) (models.ReferenceBundle, error) {
	body, err := c.do(ctx, call{method: http.MethodGet, path: "/users/references"})
	if err != nil {
		return models.ReferenceBundle{}, err
	}
	return decodeEntity[models.ReferenceBundle](body)
}
