package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/scottbass3/dgui/internal/session"
)

func (c *Client) Login(ctx context.Context, username, password string) (LoginResponse, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return LoginResponse{}, validationError("username and password are required")
	}
	return mutate(ctx, c, "login|"+username, func(ctx context.Context) (LoginResponse, error) {
		var resp LoginResponse
		payload := map[string]string{"username": username, "password": password}
		if err := c.do(ctx, http.MethodPost, "/login", nil, payload, &resp); err != nil {
			return LoginResponse{}, err
		}
		return resp, nil
	})
}

func (c *Client) CurrentUser(ctx context.Context) (session.User, error) {
	return query(ctx, c, NewKey(ResourceCurrentUser), func(ctx context.Context) (session.User, error) {
		var user session.User
		err := c.do(ctx, http.MethodGet, "/user/me", nil, nil, &user)
		return user, err
	})
}

func (c *Client) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	if oldPassword == "" || newPassword == "" {
		return validationError("old and new password are required")
	}
	_, err := mutate(ctx, c, "changePassword", func(ctx context.Context) (struct{}, error) {
		payload := map[string]string{"old_password": oldPassword, "new_password": newPassword}
		return struct{}{}, c.do(ctx, http.MethodPost, "/user/password", nil, payload, nil)
	})
	return err
}
