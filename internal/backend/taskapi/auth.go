package taskapi

import (
	"context"
	"net/http"
)

type credentials struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, login, password string) (string, error) {
	var out struct {
		Token string `json:"token"`
	}
	err := c.do(ctx, call{op: "login", method: http.MethodPost, path: "/login", in: credentials{login, password}, out: &out})
	if err != nil {
		return "", err
	}
	return out.Token, nil
}

// Register creates an account. The response body is ignored.
func (c *Client) Register(ctx context.Context, login, password string) error {
	return c.do(ctx, call{op: "register", method: http.MethodPost, path: "/register", in: credentials{login, password}})
}
