package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/harentsoaR/medics-admin/internal/models"
)

func (c *Client) DoctorReviews(ctx context.Context, doctorID string) ([]models.Review, error) {
	body, err := c.do(ctx, call{
		method:       http.MethodGet,
		path:         "/reviews/doctor/" + url.PathEscape(doctorID),
		requireToken: true,
	})
	if err != nil {
		return nil, err
	}
	reviews, err := decodeEntity[[]models.Review](body)
	if err != nil {
		return nil, err
	}
	if reviews == nil {
		reviews = make([]models.Review, 0)
	}
	return reviews, nil
}
