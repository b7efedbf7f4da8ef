package client

import (
	"context"
	"errors"
	"net/http"

	"github.com/harentsoaR/medics-admin/internal/models"
)

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

func (c *Client) EmailLogin(ctx context.Context, creds Credentials) (LoginResponse, error) {
	body, err := c.do(ctx, call{method: http.MethodPost, path: "/users/email-login", body: creds})
	if err != nil {
		return LoginResponse{}, err
	}
	out, err := decodeEntity[LoginResponse](body)
	if err != nil {
		return LoginResponse{}, err
	}
	if out.Token == "" {
		return LoginResponse{}, errors.New("login response carried no token")
	}
	return out, nil
}
